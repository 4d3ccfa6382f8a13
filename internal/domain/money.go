package domain

import (
	"encoding/json"
	"fmt"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Money is a non-negative amount in euros. The zero value is not valid, use ZeroMoney().
type Money struct {
	amount   decimal.Decimal
	currency currency.Unit
}

func ZeroMoney() Money {
	return Money{amount: decimal.Zero, currency: currency.EUR}
}

func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, &AmountError{Amount: amount}
	}

	return Money{amount: amount, currency: currency.EUR}, nil
}

// ParseMoney rebuilds Money from a stored amount and ISO currency code.
func ParseMoney(amount decimal.Decimal, currencyCode string) (Money, error) {
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return Money{}, fmt.Errorf("%w: currency[%s] is not valid: %w", ErrInvalidCurrency, currencyCode, err)
	}
	if unit != currency.EUR {
		return Money{}, fmt.Errorf("%w: %s", ErrInvalidCurrency, unit)
	}

	return NewMoney(amount)
}

func mustEUR(amount int64) Money {
	m, err := NewMoney(decimal.NewFromInt(amount))
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Amount() decimal.Decimal {
	return m.amount
}

func (m Money) Currency() currency.Unit {
	return m.currency
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// Add never fails: the sum of two non-negative amounts is non-negative.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount), currency: currency.EUR}
}

func (m Money) Scale(quantity int) (Money, error) {
	if quantity < 0 {
		return Money{}, &QuantityError{Quantity: quantity}
	}

	return NewMoney(m.amount.Mul(decimal.NewFromInt(int64(quantity))))
}

// Equal compares by value, so 10 and 10.00 are equal.
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount) && m.currency == other.currency
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(2), m.currency)
}

type moneyJSON struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{Amount: m.amount, Currency: m.currency.String()})
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var raw moneyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("json.Unmarshal: %w", err)
	}

	parsed, err := ParseMoney(raw.Amount, raw.Currency)
	if err != nil {
		return err
	}

	*m = parsed
	return nil
}
