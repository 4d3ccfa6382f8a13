package domain

import (
	"fmt"
	"github.com/shopspring/decimal"
	"reflect"
	"strings"
)

var largeAccountThreshold = decimal.NewFromInt(10_000_000)

// LargeAccountThreshold is exclusive: a turnover of exactly this value is a small account.
func LargeAccountThreshold() decimal.Decimal {
	return largeAccountThreshold
}

type Customer interface {
	ID() string
	PricingStrategy() PricingStrategy
}

type IndividualCustomer struct {
	id        string
	firstName string
	lastName  string
}

func NewIndividualCustomer(id, firstName, lastName string) (*IndividualCustomer, error) {
	if isBlank(id) {
		return nil, ErrMissingCustomerID
	}
	if isBlank(firstName) {
		return nil, ErrInvalidFirstName
	}
	if isBlank(lastName) {
		return nil, ErrInvalidLastName
	}

	return &IndividualCustomer{
		id:        id,
		firstName: firstName,
		lastName:  lastName,
	}, nil
}

func (c *IndividualCustomer) ID() string        { return c.id }
func (c *IndividualCustomer) FirstName() string { return c.firstName }
func (c *IndividualCustomer) LastName() string  { return c.lastName }

func (c *IndividualCustomer) PricingStrategy() PricingStrategy {
	return IndividualPricing()
}

type BusinessCustomer struct {
	id                 string
	companyName        string
	registrationNumber string
	annualTurnover     decimal.Decimal
	vatNumber          string
}

type BusinessCustomerOption func(*BusinessCustomer)

func WithVATNumber(vatNumber string) BusinessCustomerOption {
	return func(c *BusinessCustomer) {
		c.vatNumber = strings.TrimSpace(vatNumber)
	}
}

func NewBusinessCustomer(
	id, companyName, registrationNumber string,
	annualTurnover decimal.Decimal,
	opts ...BusinessCustomerOption,
) (*BusinessCustomer, error) {
	if isBlank(id) {
		return nil, ErrMissingCustomerID
	}
	if isBlank(companyName) {
		return nil, ErrInvalidCompanyName
	}
	if isBlank(registrationNumber) {
		return nil, ErrInvalidRegistrationNumber
	}
	if annualTurnover.IsNegative() {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidAnnualTurnover, annualTurnover)
	}

	c := &BusinessCustomer{
		id:                 id,
		companyName:        companyName,
		registrationNumber: registrationNumber,
		annualTurnover:     annualTurnover,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *BusinessCustomer) ID() string                      { return c.id }
func (c *BusinessCustomer) CompanyName() string             { return c.companyName }
func (c *BusinessCustomer) RegistrationNumber() string      { return c.registrationNumber }
func (c *BusinessCustomer) AnnualTurnover() decimal.Decimal { return c.annualTurnover }

// VATNumber returns false when the customer has no VAT number.
func (c *BusinessCustomer) VATNumber() (string, bool) {
	return c.vatNumber, c.vatNumber != ""
}

func (c *BusinessCustomer) IsLargeAccount() bool {
	return c.annualTurnover.GreaterThan(largeAccountThreshold)
}

func (c *BusinessCustomer) PricingStrategy() PricingStrategy {
	if c.IsLargeAccount() {
		return LargeBusinessPricing()
	}
	return SmallBusinessPricing()
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// isNilCustomer also catches typed nil pointers stored in the interface.
func isNilCustomer(c Customer) bool {
	if c == nil {
		return true
	}

	v := reflect.ValueOf(c)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
