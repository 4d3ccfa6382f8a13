package domain

import (
	"github.com/google/uuid"
	"time"
)

// Event is a record of a state change queued for publication.
type Event interface {
	EventType() string
	AggregateID() string
	OccurredAt() time.Time
}

const EventTypeProductAddedToCart = "cart.product_added"

type ProductAddedToCart struct {
	CartID           uuid.UUID   `json:"cart_id"`
	CustomerID       string      `json:"customer_id"`
	Product          ProductType `json:"product"`
	QuantityAdded    int         `json:"quantity_added"`
	NewTotalQuantity int         `json:"new_total_quantity"`
	UnitPrice        Money       `json:"unit_price"`
	OccurredOn       time.Time   `json:"occurred_on"`
}

func (e ProductAddedToCart) EventType() string {
	return EventTypeProductAddedToCart
}

func (e ProductAddedToCart) AggregateID() string {
	return e.CartID.String()
}

func (e ProductAddedToCart) OccurredAt() time.Time {
	return e.OccurredOn
}
