package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/nikolayk812/shop-pricing/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func TestNewMoney(t *testing.T) {
	tests := []struct {
		name      string
		amount    decimal.Decimal
		wantError error
	}{
		{
			name:   "zero: ok",
			amount: decimal.Zero,
		},
		{
			name:   "very small positive: ok",
			amount: decimal.RequireFromString("0.0000000001"),
		},
		{
			name:   "large positive: ok",
			amount: decimal.RequireFromString("79228162514264337593543950335"),
		},
		{
			name:      "minus one cent: error",
			amount:    decimal.RequireFromString("-0.01"),
			wantError: domain.ErrInvalidAmount,
		},
		{
			name:      "minus one thousand: error",
			amount:    decimal.NewFromInt(-1000),
			wantError: domain.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := domain.NewMoney(tt.amount)
			if tt.wantError != nil {
				require.ErrorIs(t, err, tt.wantError)
				require.ErrorIs(t, err, domain.ErrInvariantViolation)

				var amountErr *domain.AmountError
				require.ErrorAs(t, err, &amountErr)
				assert.True(t, tt.amount.Equal(amountErr.Amount))
				return
			}
			require.NoError(t, err)

			assert.True(t, tt.amount.Equal(m.Amount()))
			assert.Equal(t, currency.EUR, m.Currency())
		})
	}
}

func TestMoney_Add(t *testing.T) {
	for range 20 {
		m := eur(t, gofakeit.Price(0, 10_000))

		assert.Empty(t, cmp.Diff(m, domain.ZeroMoney().Add(m)), "zero is the identity")
		assert.Empty(t, cmp.Diff(m, m.Add(domain.ZeroMoney())), "zero is the identity")
	}

	sum := eur(t, 1500).Add(eur(t, 2400.5))
	assert.Empty(t, cmp.Diff(eur(t, 3900.5), sum))
}

func TestMoney_Scale(t *testing.T) {
	tests := []struct {
		name      string
		money     domain.Money
		quantity  int
		want      domain.Money
		wantError error
	}{
		{
			name:     "scale by zero: ok",
			money:    eur(t, 1200),
			quantity: 0,
			want:     domain.ZeroMoney(),
		},
		{
			name:     "scale by one: ok",
			money:    eur(t, 1200),
			quantity: 1,
			want:     eur(t, 1200),
		},
		{
			name:     "scale by five: ok",
			money:    eur(t, 900),
			quantity: 5,
			want:     eur(t, 4500),
		},
		{
			name:     "scale by half of max int32: ok",
			money:    eur(t, 1500),
			quantity: 1073741823,
			want:     eur(t, 1610612734500),
		},
		{
			name:      "scale by minus one: error",
			money:     eur(t, 1200),
			quantity:  -1,
			wantError: domain.ErrInvalidQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.money.Scale(tt.quantity)
			if tt.wantError != nil {
				require.ErrorIs(t, err, tt.wantError)

				var quantityErr *domain.QuantityError
				require.ErrorAs(t, err, &quantityErr)
				assert.Equal(t, tt.quantity, quantityErr.Quantity)
				return
			}
			require.NoError(t, err)

			assert.Empty(t, cmp.Diff(tt.want, got))
		})
	}
}

func TestMoney_EqualAndString(t *testing.T) {
	a := eur(t, 10)
	b, err := domain.NewMoney(decimal.RequireFromString("10.00"))
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(eur(t, 10.01)))
	assert.Equal(t, "10.00 EUR", a.String())
	assert.True(t, domain.ZeroMoney().IsZero())
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		name      string
		amount    decimal.Decimal
		code      string
		wantError error
	}{
		{
			name:   "eur: ok",
			amount: decimal.NewFromInt(550),
			code:   "EUR",
		},
		{
			name:      "usd: error",
			amount:    decimal.NewFromInt(550),
			code:      "USD",
			wantError: domain.ErrInvalidCurrency,
		},
		{
			name:      "not a currency: error",
			amount:    decimal.NewFromInt(550),
			code:      "XYZW",
			wantError: domain.ErrInvalidCurrency,
		},
		{
			name:      "negative eur: error",
			amount:    decimal.NewFromInt(-1),
			code:      "EUR",
			wantError: domain.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := domain.ParseMoney(tt.amount, tt.code)
			if tt.wantError != nil {
				require.ErrorIs(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			assert.True(t, tt.amount.Equal(m.Amount()))
		})
	}
}

func TestMoney_JSON(t *testing.T) {
	data, err := json.Marshal(eur(t, 1150))
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"1150","currency":"EUR"}`, string(data))

	var decoded domain.Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Empty(t, cmp.Diff(eur(t, 1150), decoded))

	err = json.Unmarshal([]byte(`{"amount":"-5","currency":"EUR"}`), &decoded)
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func eur(t *testing.T, amount float64) domain.Money {
	t.Helper()

	m, err := domain.NewMoney(decimal.NewFromFloat(amount))
	require.NoError(t, err)

	return m
}
