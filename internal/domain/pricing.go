package domain

import "fmt"

// PricingStrategy maps catalog products to unit prices. Implementations are read-only
// and safe for concurrent use.
type PricingStrategy interface {
	Name() string
	// TryGetUnitPrice never fails; ok is false when the product has no price.
	TryGetUnitPrice(product ProductType) (Money, bool)
	UnitPrice(product ProductType) (Money, error)
}

type priceTable struct {
	name   string
	prices map[ProductType]Money
}

var (
	individualPricing = &priceTable{
		name: "individual",
		prices: map[ProductType]Money{
			HighEndPhone:  mustEUR(1500),
			MidRangePhone: mustEUR(800),
			Laptop:        mustEUR(1200),
		},
	}

	smallBusinessPricing = &priceTable{
		name: "small_business",
		prices: map[ProductType]Money{
			HighEndPhone:  mustEUR(1150),
			MidRangePhone: mustEUR(600),
			Laptop:        mustEUR(1000),
		},
	}

	largeBusinessPricing = &priceTable{
		name: "large_business",
		prices: map[ProductType]Money{
			HighEndPhone:  mustEUR(1000),
			MidRangePhone: mustEUR(550),
			Laptop:        mustEUR(900),
		},
	}
)

func IndividualPricing() PricingStrategy {
	return individualPricing
}

func SmallBusinessPricing() PricingStrategy {
	return smallBusinessPricing
}

func LargeBusinessPricing() PricingStrategy {
	return largeBusinessPricing
}

func (t *priceTable) Name() string {
	return t.name
}

func (t *priceTable) TryGetUnitPrice(product ProductType) (Money, bool) {
	price, ok := t.prices[product]
	return price, ok
}

func (t *priceTable) UnitPrice(product ProductType) (Money, error) {
	price, ok := t.prices[product]
	if !ok {
		return Money{}, &ProductError{Product: product, Err: ErrUnknownProduct}
	}

	return price, nil
}

// PricingStrategyFor resolves the strategy of a known customer type from the outside.
func PricingStrategyFor(customer Customer) (PricingStrategy, error) {
	if isNilCustomer(customer) {
		return nil, ErrMissingCustomer
	}

	switch c := customer.(type) {
	case *IndividualCustomer, *BusinessCustomer:
		return c.PricingStrategy(), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidCustomerType, customer)
	}
}
