// Package moneyform presents a money attribute as one logical form input made of
// an amount sub-input (<name>_0) and a currency sub-input (<name>_1).
package moneyform

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/SscSPs/moneyfield/pkg/config"
	"github.com/SscSPs/moneyfield/pkg/money"
	"github.com/SscSPs/moneyfield/pkg/moneyfield"
	"github.com/shopspring/decimal"
)

// MsgInvalidMoney is reported when a pre-composed value cannot be parsed.
const MsgInvalidMoney = "Enter an amount and a currency, e.g. \"EUR 9.99\"."

// Inputs are the raw sub-input values of a money form field.
type Inputs struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// FormField is the form counterpart of a money attribute.
type FormField struct {
	field    *moneyfield.Field
	required bool
	label    string
}

// FieldOption configures a FormField.
type FieldOption func(*FormField)

// WithRequired overrides whether an empty amount is an error.
func WithRequired(required bool) FieldOption {
	return func(ff *FormField) {
		ff.required = required
	}
}

// WithLabel sets the displayed label.
func WithLabel(label string) FieldOption {
	return func(ff *FormField) {
		ff.label = label
	}
}

// NewFormField returns the form field of f. It is required unless f allows blank.
func NewFormField(f *moneyfield.Field, opts ...FieldOption) *FormField {
	ff := &FormField{
		field:    f,
		required: !f.Blank(),
		label:    capitalize(f.VerboseName()),
	}
	for _, opt := range opts {
		opt(ff)
	}
	return ff
}

func (ff *FormField) Field() *moneyfield.Field { return ff.field }
func (ff *FormField) Name() string             { return ff.field.Name() }
func (ff *FormField) Label() string            { return ff.label }
func (ff *FormField) Required() bool           { return ff.required }
func (ff *FormField) Fixed() bool              { return ff.field.IsFixed() }

// ReadOnlyCurrency reports whether the currency sub-input is a display of a constant.
func (ff *FormField) ReadOnlyCurrency() bool { return ff.field.IsFixed() }

// Choices returns the selectable currencies. A fixed field offers only its
// currency; nil means any well-formed code.
func (ff *FormField) Choices() []config.Choice {
	if ff.field.IsFixed() {
		return config.Choices(ff.field.FixedCurrency())
	}
	return ff.field.CurrencyChoices()
}

// RawNames returns the names of the amount and currency sub-inputs.
func (ff *FormField) RawNames() []string {
	return []string{ff.amountName(), ff.currencyName()}
}

func (ff *FormField) amountName() string   { return ff.Name() + "_0" }
func (ff *FormField) currencyName() string { return ff.Name() + "_1" }

// Initial returns the sub-inputs of an empty field: no amount and the fixed or
// default currency.
func (ff *FormField) Initial() Inputs {
	return Inputs{Currency: ff.field.InitialCurrency()}
}

// Decompress splits m into sub-inputs for re-display. A value in another
// currency than a fixed one cannot be displayed and is a validation error.
func (ff *FormField) Decompress(m *money.Money) (Inputs, error) {
	if m == nil {
		return ff.Initial(), nil
	}
	if ff.field.IsFixed() && m.Currency() != ff.field.FixedCurrency() {
		return Inputs{}, moneyfield.NewValidationError(ff.Name(),
			fmt.Sprintf("Currency %s does not match the fixed currency %s.", m.Currency(), ff.field.FixedCurrency()))
	}
	return Inputs{
		Amount:   ff.formatAmount(m.Amount()),
		Currency: m.Currency(),
	}, nil
}

func (ff *FormField) formatAmount(d decimal.Decimal) string {
	if -d.Exponent() > int32(ff.field.DecimalPlaces()) {
		return d.String()
	}
	return d.StringFixed(int32(ff.field.DecimalPlaces()))
}

// Compress combines raw sub-inputs into a Money value. An empty amount yields
// nil, or a validation error when the field is required. A fixed field accepts
// an empty currency.
func (ff *FormField) Compress(amount, currency string) (*money.Money, error) {
	amount, currency = strings.TrimSpace(amount), strings.TrimSpace(currency)
	if amount == "" {
		if ff.required {
			return nil, moneyfield.NewValidationError(ff.Name(), moneyfield.MsgRequired)
		}
		return nil, nil
	}

	verr := &moneyfield.ValidationError{}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		verr.Add(ff.Name(), moneyfield.MsgInvalidNumber)
	} else {
		verr.Add(ff.Name(), ff.field.CheckAmount(d)...)
	}

	switch {
	case ff.field.IsFixed() && currency == "":
		currency = ff.field.FixedCurrency()
	case currency == "":
		verr.Add(ff.Name(), moneyfield.MsgRequired)
	default:
		verr.Add(ff.Name(), ff.field.CheckCurrency(currency)...)
	}

	if err := verr.Err(); err != nil {
		return nil, err
	}
	m := money.New(d, currency)
	return &m, nil
}

// Clean reads the field from submitted data. A <name> key holds a pre-composed
// value such as "EUR 9.99" and takes precedence over <name>_0 and <name>_1.
func (ff *FormField) Clean(data url.Values) (*money.Money, error) {
	if data.Has(ff.Name()) {
		composed := strings.TrimSpace(data.Get(ff.Name()))
		if composed == "" {
			return ff.Compress("", "")
		}
		m, err := money.Parse(composed)
		if err != nil {
			return nil, moneyfield.NewValidationError(ff.Name(), MsgInvalidMoney)
		}
		return ff.Compress(m.Amount().String(), m.Currency())
	}
	return ff.Compress(data.Get(ff.amountName()), data.Get(ff.currencyName()))
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
