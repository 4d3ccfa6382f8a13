package port

import (
	"context"
	"github.com/google/uuid"
	"github.com/nikolayk812/shop-pricing/internal/domain"
)

type EventSink interface {
	Publish(ctx context.Context, events []domain.Event) error
}

type EventStore interface {
	EventSink
	ListEvents(ctx context.Context, cartID uuid.UUID) ([]domain.ProductAddedToCart, error)
}
