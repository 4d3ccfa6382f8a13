package domain

import (
	"errors"
	"fmt"
	"github.com/shopspring/decimal"
)

// Error kinds. Every domain error wraps exactly one of them.
var (
	ErrValidation         = errors.New("validation failed")
	ErrInvariantViolation = errors.New("invariant violation")
	ErrLookup             = errors.New("lookup failed")
)

var (
	ErrMissingCustomerID         = fmt.Errorf("%w: customer id is required", ErrValidation)
	ErrInvalidFirstName          = fmt.Errorf("%w: first name is required", ErrValidation)
	ErrInvalidLastName           = fmt.Errorf("%w: last name is required", ErrValidation)
	ErrInvalidCompanyName        = fmt.Errorf("%w: company name is required", ErrValidation)
	ErrInvalidRegistrationNumber = fmt.Errorf("%w: registration number is required", ErrValidation)
	ErrInvalidAnnualTurnover     = fmt.Errorf("%w: annual turnover must be non-negative", ErrValidation)
	ErrInvalidCustomerType       = fmt.Errorf("%w: unsupported customer type", ErrValidation)
	ErrInvalidCurrency           = fmt.Errorf("%w: unsupported currency", ErrValidation)

	ErrInvalidAmount          = fmt.Errorf("%w: amount must be non-negative", ErrInvariantViolation)
	ErrInvalidQuantity        = fmt.Errorf("%w: quantity must be positive", ErrInvariantViolation)
	ErrInvalidProductType     = fmt.Errorf("%w: product is not priced by the current strategy", ErrInvariantViolation)
	ErrMissingCustomer        = fmt.Errorf("%w: cart requires a customer", ErrInvariantViolation)
	ErrMissingPricingStrategy = fmt.Errorf("%w: customer has no pricing strategy", ErrInvariantViolation)

	ErrUnknownProduct = fmt.Errorf("%w: unknown product", ErrLookup)
)

// QuantityError reports the offending quantity.
type QuantityError struct {
	Quantity int
}

func (e *QuantityError) Error() string {
	return fmt.Sprintf("%s: got %d", ErrInvalidQuantity, e.Quantity)
}

func (e *QuantityError) Unwrap() error {
	return ErrInvalidQuantity
}

// ProductError reports the offending product. Err is ErrInvalidProductType or ErrUnknownProduct.
type ProductError struct {
	Product ProductType
	Err     error
}

func (e *ProductError) Error() string {
	return fmt.Sprintf("%s: %q", e.Err, string(e.Product))
}

func (e *ProductError) Unwrap() error {
	return e.Err
}

// AmountError reports the offending monetary amount.
type AmountError struct {
	Amount decimal.Decimal
}

func (e *AmountError) Error() string {
	return fmt.Sprintf("%s: got %s", ErrInvalidAmount, e.Amount)
}

func (e *AmountError) Unwrap() error {
	return ErrInvalidAmount
}
