package memory

import (
	"context"
	"github.com/nikolayk812/shop-pricing/internal/domain"
	"slices"
	"sync"
)

type EventBuffer struct {
	mu     sync.RWMutex
	events []domain.Event
}

func NewEventBuffer() *EventBuffer {
	return &EventBuffer{}
}

func (b *EventBuffer) Publish(ctx context.Context, events []domain.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, e := range events {
		if e != nil {
			b.events = append(b.events, e)
		}
	}

	return nil
}

func (b *EventBuffer) Events() []domain.Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return slices.Clone(b.events)
}

func (b *EventBuffer) ByAggregate(aggregateID string) []domain.Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var result []domain.Event
	for _, e := range b.events {
		if e.AggregateID() == aggregateID {
			result = append(result, e)
		}
	}

	return result
}

func (b *EventBuffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.events)
}
