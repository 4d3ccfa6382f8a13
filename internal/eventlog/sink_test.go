package eventlog_test

import (
	"testing"
	"time"

	"github.com/nikolayk812/shop-pricing/internal/domain"
	"github.com/nikolayk812/shop-pricing/internal/eventlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"
)

func TestSink_Publish(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	sink := eventlog.New(zap.New(core))

	customer, err := domain.NewIndividualCustomer("C001", "Jean", "Dupont")
	require.NoError(t, err)

	cart, err := domain.NewCart(customer)
	require.NoError(t, err)
	require.NoError(t, cart.AddProduct(domain.Laptop, 2))

	events := append(cart.PopDomainEvents(), nil, unknownEvent{})

	require.NoError(t, sink.Publish(t.Context(), events))

	entries := logs.FilterMessage("event").All()
	require.Len(t, entries, 2)

	fields := entries[0].ContextMap()
	assert.Equal(t, "event-log", fields["component"])
	assert.Equal(t, domain.EventTypeProductAddedToCart, fields["event_type"])
	assert.Equal(t, cart.ID().String(), fields["aggregate_id"])
	assert.Equal(t, "C001", fields["customer_id"])
	assert.Equal(t, "laptop", fields["product"])
	assert.EqualValues(t, 2, fields["quantity_added"])
	assert.EqualValues(t, 2, fields["new_total_quantity"])
	assert.Equal(t, "1200.00 EUR", fields["unit_price"])

	assert.Equal(t, "cart.unknown", entries[1].ContextMap()["event_type"])
}

type unknownEvent struct{}

func (unknownEvent) EventType() string     { return "cart.unknown" }
func (unknownEvent) AggregateID() string   { return "unknown" }
func (unknownEvent) OccurredAt() time.Time { return time.Now() }
