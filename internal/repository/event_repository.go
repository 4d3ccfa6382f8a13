package repository

import (
	"context"
	"fmt"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/shop-pricing/internal/db"
	"github.com/nikolayk812/shop-pricing/internal/domain"
	"github.com/nikolayk812/shop-pricing/internal/port"
)

type eventRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewEventStore(pool *pgxpool.Pool) port.EventStore {
	return &eventRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewEventStoreWithTx(tx pgx.Tx) port.EventStore {
	return &eventRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

// Publish appends all events in one transaction, either all of them are stored or none.
func (r *eventRepository) Publish(ctx context.Context, events []domain.Event) error {
	if len(events) == 0 {
		return nil
	}

	params := make([]db.AppendEventParams, 0, len(events))
	for _, event := range events {
		p, err := mapEventToParams(event)
		if err != nil {
			return fmt.Errorf("mapEventToParams: %w", err)
		}
		params = append(params, p)
	}

	_, err := withTx(ctx, r.pool, r.q, func(q *db.Queries) (struct{}, error) {
		for _, p := range params {
			if err := q.AppendEvent(ctx, p); err != nil {
				return struct{}{}, fmt.Errorf("q.AppendEvent: %w", err)
			}
		}

		return struct{}{}, nil
	})
	if err != nil {
		return fmt.Errorf("withTx: %w", err)
	}

	return nil
}

func (r *eventRepository) ListEvents(ctx context.Context, cartID uuid.UUID) ([]domain.ProductAddedToCart, error) {
	if cartID == uuid.Nil {
		return nil, fmt.Errorf("cartID is empty")
	}

	rows, err := r.q.ListEvents(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("q.ListEvents: %w", err)
	}

	events := make([]domain.ProductAddedToCart, 0, len(rows))
	for _, row := range rows {
		event, err := mapListEventsRowToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapListEventsRowToDomain: %w", err)
		}

		events = append(events, event)
	}

	return events, nil
}

func mapEventToParams(event domain.Event) (db.AppendEventParams, error) {
	switch e := event.(type) {
	case domain.ProductAddedToCart:
		return db.AppendEventParams{
			EventType:         e.EventType(),
			CartID:            e.CartID,
			CustomerID:        e.CustomerID,
			Product:           e.Product.String(),
			QuantityAdded:     int64(e.QuantityAdded),
			NewTotalQuantity:  int64(e.NewTotalQuantity),
			UnitPriceAmount:   e.UnitPrice.Amount(),
			UnitPriceCurrency: e.UnitPrice.Currency().String(),
			OccurredAt:        e.OccurredOn,
		}, nil
	case nil:
		return db.AppendEventParams{}, fmt.Errorf("event is nil")
	default:
		return db.AppendEventParams{}, fmt.Errorf("event type[%s] is not supported", event.EventType())
	}
}

func mapListEventsRowToDomain(row db.ListEventsRow) (domain.ProductAddedToCart, error) {
	if row.EventType != domain.EventTypeProductAddedToCart {
		return domain.ProductAddedToCart{}, fmt.Errorf("event type[%s] is not supported", row.EventType)
	}

	product, err := domain.ParseProductType(row.Product)
	if err != nil {
		return domain.ProductAddedToCart{}, fmt.Errorf("domain.ParseProductType: %w", err)
	}

	unitPrice, err := domain.ParseMoney(row.UnitPriceAmount, row.UnitPriceCurrency)
	if err != nil {
		return domain.ProductAddedToCart{}, fmt.Errorf("domain.ParseMoney: %w", err)
	}

	return domain.ProductAddedToCart{
		CartID:           row.CartID,
		CustomerID:       row.CustomerID,
		Product:          product,
		QuantityAdded:    int(row.QuantityAdded),
		NewTotalQuantity: int(row.NewTotalQuantity),
		UnitPrice:        unitPrice,
		OccurredOn:       row.OccurredAt.UTC(),
	}, nil
}
