// Package money provides the Money value object: a decimal amount paired with a
// currency code.
//
// Invariants:
//   - A Money value is never mutated after construction.
//   - Two values are equal iff both amount and currency are equal.
//   - There is no cross-currency comparison or conversion.
package money

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount is returned when an amount cannot be parsed as a decimal.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidFormat is returned when a composed money string cannot be parsed.
	ErrInvalidFormat = errors.New("invalid money format")
)

// CodePattern is the accepted shape of a currency code.
const CodePattern = `^[A-Z]{3}$`

var codeRegexp = regexp.MustCompile(CodePattern)

// IsValidCode reports whether code is three upper-case ASCII letters.
func IsValidCode(code string) bool {
	return codeRegexp.MatchString(code)
}

// Money is an amount in a specific currency.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// New creates a Money value from a decimal amount and a currency code.
// The currency code is stored as given; syntax checks belong to the caller.
func New(amount decimal.Decimal, currency string) Money {
	return Money{amount: amount, currency: currency}
}

// NewFromString creates a Money value from a string amount such as "9.99".
func NewFromString(amount, currency string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}
	return New(d, currency), nil
}

// Must is like NewFromString but panics on error. Meant for declarations and tests.
func Must(amount, currency string) Money {
	m, err := NewFromString(amount, currency)
	if err != nil {
		panic(fmt.Sprintf("money.Must(%q, %q): %v", amount, currency, err))
	}
	return m
}

// Parse reads a composed value in either "EUR 9.99" or "9.99 EUR" form.
func Parse(s string) (Money, error) {
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	if d, err := decimal.NewFromString(parts[1]); err == nil {
		return New(d, parts[0]), nil
	}
	if d, err := decimal.NewFromString(parts[0]); err == nil {
		return New(d, parts[1]), nil
	}
	return Money{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code.
func (m Money) Currency() string {
	return m.currency
}

// Equal reports whether both amount and currency match. 9.99 and 9.990 are equal.
func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// String returns the composed form, e.g. "EUR 9.99".
func (m Money) String() string {
	return m.currency + " " + m.amount.String()
}

type moneyJSON struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// MarshalJSON encodes the amount as a string to keep its precision.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{
		Amount:   m.amount.String(),
		Currency: m.currency,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Money) UnmarshalJSON(data []byte) error {
	var aux moneyJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	parsed, err := NewFromString(aux.Amount, aux.Currency)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
