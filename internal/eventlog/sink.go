package eventlog

import (
	"context"
	"github.com/nikolayk812/shop-pricing/internal/domain"
	"go.uber.org/zap"
)

type Sink struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Sink {
	return &Sink{logger: logger.With(zap.String("component", "event-log"))}
}

func (s *Sink) Publish(_ context.Context, events []domain.Event) error {
	for _, event := range events {
		if event == nil {
			continue
		}

		eventLogger := s.logger.With(
			zap.String("event_type", event.EventType()),
			zap.String("aggregate_id", event.AggregateID()),
			zap.Time("occurred_at", event.OccurredAt()),
		)

		logEventDetails(eventLogger, event)
	}

	return nil
}

func logEventDetails(eventLogger *zap.Logger, event domain.Event) {
	switch e := event.(type) {
	case domain.ProductAddedToCart:
		eventLogger.Info("event",
			zap.String("customer_id", e.CustomerID),
			zap.Stringer("product", e.Product),
			zap.Int("quantity_added", e.QuantityAdded),
			zap.Int("new_total_quantity", e.NewTotalQuantity),
			zap.Stringer("unit_price", e.UnitPrice))
	default:
		eventLogger.Info("event")
	}
}
