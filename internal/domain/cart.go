package domain

import (
	"fmt"
	"github.com/google/uuid"
	"maps"
	"slices"
	"time"
)

// Cart is the aggregate root for a customer's line items.
//
// Invariants:
//   - a cart always belongs to exactly one customer with a non-blank id;
//   - every stored quantity is strictly positive;
//   - only products priced by the customer's current strategy are stored.
//
// A Cart is not safe for concurrent use.
type Cart struct {
	id         uuid.UUID
	customer   Customer
	quantities map[ProductType]int
	events     []Event

	now func() time.Time
}

type CartOption func(*Cart)

// WithClock sets the time source used to stamp emitted events.
func WithClock(now func() time.Time) CartOption {
	return func(c *Cart) {
		c.now = now
	}
}

func NewCart(customer Customer, opts ...CartOption) (*Cart, error) {
	if isNilCustomer(customer) {
		return nil, ErrMissingCustomer
	}
	if isBlank(customer.ID()) {
		return nil, fmt.Errorf("%w: %w", ErrMissingCustomer, ErrMissingCustomerID)
	}

	c := &Cart{
		id:         uuid.New(),
		customer:   customer,
		quantities: make(map[ProductType]int),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *Cart) ID() uuid.UUID {
	return c.id
}

func (c *Cart) Customer() Customer {
	return c.customer
}

func (c *Cart) Items() map[ProductType]int {
	return maps.Clone(c.quantities)
}

// AddProduct adds a positive quantity of a priced product. On error nothing is mutated
// and no event is recorded.
func (c *Cart) AddProduct(product ProductType, quantity int) error {
	if quantity <= 0 {
		return &QuantityError{Quantity: quantity}
	}

	strategy, err := c.pricingStrategy()
	if err != nil {
		return err
	}

	if _, ok := strategy.TryGetUnitPrice(product); !ok {
		return &ProductError{Product: product, Err: ErrInvalidProductType}
	}

	previous, existed := c.quantities[product]
	newQuantity := previous + quantity
	// overflow of the accumulated quantity
	if newQuantity <= 0 {
		return &QuantityError{Quantity: newQuantity}
	}

	c.quantities[product] = newQuantity

	// the event carries the price resolved against the committed state
	unitPrice, err := c.unitPrice(product)
	if err != nil {
		if existed {
			c.quantities[product] = previous
		} else {
			delete(c.quantities, product)
		}
		return err
	}

	c.events = append(c.events, ProductAddedToCart{
		CartID:           c.id,
		CustomerID:       c.customer.ID(),
		Product:          product,
		QuantityAdded:    quantity,
		NewTotalQuantity: newQuantity,
		UnitPrice:        unitPrice,
		OccurredOn:       c.now().UTC(),
	})

	return nil
}

func (c *Cart) CalculateTotal() (Money, error) {
	strategy, err := c.pricingStrategy()
	if err != nil {
		return Money{}, err
	}

	total := ZeroMoney()
	for product, quantity := range c.quantities {
		unitPrice, err := strategy.UnitPrice(product)
		if err != nil {
			return Money{}, err
		}

		subtotal, err := unitPrice.Scale(quantity)
		if err != nil {
			return Money{}, err
		}

		total = total.Add(subtotal)
	}

	return total, nil
}

func (c *Cart) DomainEvents() []Event {
	return slices.Clone(c.events)
}

func (c *Cart) ClearDomainEvents() {
	c.events = nil
}

// PopDomainEvents returns the recorded events and clears the log.
func (c *Cart) PopDomainEvents() []Event {
	events := c.events
	c.events = nil

	if events == nil {
		return []Event{}
	}
	return events
}

func (c *Cart) pricingStrategy() (PricingStrategy, error) {
	strategy := c.customer.PricingStrategy()
	if strategy == nil {
		return nil, ErrMissingPricingStrategy
	}

	return strategy, nil
}

func (c *Cart) unitPrice(product ProductType) (Money, error) {
	strategy, err := c.pricingStrategy()
	if err != nil {
		return Money{}, err
	}

	unitPrice, ok := strategy.TryGetUnitPrice(product)
	if !ok {
		return Money{}, &ProductError{Product: product, Err: ErrInvalidProductType}
	}

	return unitPrice, nil
}
