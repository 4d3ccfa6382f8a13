package dispatch

import (
	"context"
	"errors"
	"fmt"
	"github.com/nikolayk812/shop-pricing/internal/domain"
	"github.com/nikolayk812/shop-pricing/internal/port"
	"go.uber.org/zap"
)

type Source interface {
	PopDomainEvents() []domain.Event
}

type Dispatcher struct {
	sinks  []port.EventSink
	logger *zap.Logger
}

func New(logger *zap.Logger, sinks ...port.EventSink) *Dispatcher {
	return &Dispatcher{
		sinks:  sinks,
		logger: logger.With(zap.String("component", "event-dispatcher")),
	}
}

// Dispatch drains source and publishes the events to all sinks, even when one of them fails.
// The drained events are always returned so the caller can retry a failed publication.
func (d *Dispatcher) Dispatch(ctx context.Context, source Source) ([]domain.Event, error) {
	if source == nil {
		return nil, fmt.Errorf("source is nil")
	}

	events := source.PopDomainEvents()
	if len(events) == 0 {
		return events, nil
	}

	return events, d.Publish(ctx, events)
}

func (d *Dispatcher) Publish(ctx context.Context, events []domain.Event) error {
	var errs []error

	for i, sink := range d.sinks {
		if err := sink.Publish(ctx, events); err != nil {
			d.logger.Warn("sink rejected events",
				zap.Int("sink", i),
				zap.String("sink_type", fmt.Sprintf("%T", sink)),
				zap.Int("events", len(events)),
				zap.Error(err))
			errs = append(errs, fmt.Errorf("sink[%d].Publish: %w", i, err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	d.logger.Debug("events dispatched",
		zap.Int("events", len(events)),
		zap.Int("sinks", len(d.sinks)))

	return nil
}
