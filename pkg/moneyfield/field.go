// Package moneyfield maps one logical money attribute of a record onto its
// persisted sub-columns: X_amount always, and X_currency when the currency is
// variable.
//
// A Field is declared once, bound into a Schema through a SchemaBuilder, and
// read-only afterwards. Records hold raw sub-column values; the logical value is
// read and written through the Schema's Accessor for the attribute.
package moneyfield

import (
	"regexp"
	"slices"
	"strings"

	"github.com/SscSPs/moneyfield/pkg/config"
	"github.com/SscSPs/moneyfield/pkg/money"
	"github.com/shopspring/decimal"
)

var identRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Field is the definition of a money attribute.
type Field struct {
	name               string
	verboseName        string
	maxDigits          int
	decimalPlaces      int
	fixedCurrency      string
	currencyChoices    []config.Choice
	currencyDefault    string
	hasCurrencyDefault bool
	amountDefault      decimal.Decimal
	hasAmountDefault   bool
	def                *money.Money
	null               bool
	blank              bool
}

type fieldOptions struct {
	verboseName     string
	maxDigits       *int
	decimalPlaces   *int
	fixedCurrency   string
	currencyChoices []config.Choice
	currencyDefault *string
	amountDefault   *decimal.Decimal
	def             any
	hasDefault      bool
	null            bool
	blank           bool
}

// Option configures a Field.
type Option func(*fieldOptions)

// WithMaxDigits sets the total number of digits of the amount.
func WithMaxDigits(n int) Option {
	return func(o *fieldOptions) {
		o.maxDigits = &n
	}
}

// WithDecimalPlaces sets the number of digits after the decimal point.
func WithDecimalPlaces(n int) Option {
	return func(o *fieldOptions) {
		o.decimalPlaces = &n
	}
}

// WithFixedCurrency makes the attribute single-currency. No currency column is created.
func WithFixedCurrency(code string) Option {
	return func(o *fieldOptions) {
		o.fixedCurrency = code
	}
}

// WithCurrencyChoices restricts a variable currency to the given codes.
func WithCurrencyChoices(choices ...config.Choice) Option {
	return func(o *fieldOptions) {
		o.currencyChoices = slices.Clone(choices)
	}
}

// WithCurrencyDefault sets the default code of a variable currency.
func WithCurrencyDefault(code string) Option {
	return func(o *fieldOptions) {
		o.currencyDefault = &code
	}
}

// WithSettings applies the process-wide currency choices and default.
func WithSettings(s config.Settings) Option {
	return func(o *fieldOptions) {
		if len(s.CurrencyChoices) > 0 {
			o.currencyChoices = slices.Clone(s.CurrencyChoices)
		}
		if s.CurrencyDefault != "" {
			code := s.CurrencyDefault
			o.currencyDefault = &code
		}
	}
}

// WithDefault sets a whole-value default. It must be a money.Money or *money.Money.
func WithDefault(v any) Option {
	return func(o *fieldOptions) {
		o.def = v
		o.hasDefault = true
	}
}

// WithAmountDefault sets the default of the amount alone.
func WithAmountDefault(d decimal.Decimal) Option {
	return func(o *fieldOptions) {
		o.amountDefault = &d
	}
}

// WithNull allows both sub-columns to be unset.
func WithNull() Option {
	return func(o *fieldOptions) {
		o.null = true
	}
}

// WithBlank marks the attribute as optional in forms.
func WithBlank() Option {
	return func(o *fieldOptions) {
		o.blank = true
	}
}

// WithVerboseName sets the human readable name.
func WithVerboseName(s string) Option {
	return func(o *fieldOptions) {
		o.verboseName = s
	}
}

// New validates the options and returns the attribute definition. Every failure
// wraps ErrFieldConfig, except a default of the wrong type which wraps ErrInvalidType.
func New(name string, opts ...Option) (*Field, error) {
	o := fieldOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	if o.decimalPlaces == nil {
		return nil, configError(name, "decimal_places is required")
	}
	if *o.decimalPlaces < 0 {
		return nil, configError(name, "decimal_places must be a non-negative integer, got %d", *o.decimalPlaces)
	}
	if o.maxDigits == nil {
		return nil, configError(name, "max_digits is required")
	}
	if *o.maxDigits <= 0 {
		return nil, configError(name, "max_digits must be a positive integer, got %d", *o.maxDigits)
	}
	if *o.decimalPlaces > *o.maxDigits {
		return nil, configError(name, "max_digits must be greater or equal to decimal_places")
	}

	f := &Field{
		name:          name,
		verboseName:   o.verboseName,
		maxDigits:     *o.maxDigits,
		decimalPlaces: *o.decimalPlaces,
		fixedCurrency: o.fixedCurrency,
		null:          o.null,
		blank:         o.blank,
	}

	if f.fixedCurrency != "" {
		if len(o.currencyChoices) > 0 || o.currencyDefault != nil {
			return nil, configError(name, "has fixed currency %s, currency_choices and currency_default are not allowed", f.fixedCurrency)
		}
		if !money.IsValidCode(f.fixedCurrency) {
			return nil, configError(name, "invalid fixed currency %q", f.fixedCurrency)
		}
	}
	for _, c := range o.currencyChoices {
		if !money.IsValidCode(c.Code) {
			return nil, configError(name, "invalid currency choice %q", c.Code)
		}
	}
	f.currencyChoices = o.currencyChoices

	if o.currencyDefault != nil {
		f.currencyDefault, f.hasCurrencyDefault = *o.currencyDefault, true
	}
	if o.amountDefault != nil {
		f.amountDefault, f.hasAmountDefault = *o.amountDefault, true
	}

	if o.hasDefault && o.def != nil {
		var def money.Money
		switch v := o.def.(type) {
		case money.Money:
			def = v
		case *money.Money:
			if v == nil {
				return nil, fieldTypeError(name, o.def)
			}
			def = *v
		default:
			return nil, fieldTypeError(name, o.def)
		}

		if f.fixedCurrency != "" && def.Currency() != f.fixedCurrency {
			return nil, configError(name, "default currency %s conflicts with fixed currency %s", def.Currency(), f.fixedCurrency)
		}
		if f.hasAmountDefault {
			return nil, configError(name, "default and amount_default are mutually exclusive")
		}
		if f.hasCurrencyDefault {
			return nil, configError(name, "default and currency_default are mutually exclusive")
		}

		f.def = &def
		f.amountDefault, f.hasAmountDefault = def.Amount(), true
		if f.fixedCurrency == "" {
			f.currencyDefault, f.hasCurrencyDefault = def.Currency(), true
		}
	}

	if !identRegexp.MatchString(name) {
		return nil, configError(name, "name must be a valid identifier")
	}
	if f.verboseName == "" {
		f.verboseName = strings.ReplaceAll(name, "_", " ")
	}
	return f, nil
}

// Must is like New but panics on error. Meant for package-level declarations.
func Must(name string, opts ...Option) *Field {
	f, err := New(name, opts...)
	if err != nil {
		panic(err)
	}
	return f
}

// Name returns the logical attribute name.
func (f *Field) Name() string { return f.name }

// VerboseName returns the human readable name.
func (f *Field) VerboseName() string { return f.verboseName }

// AmountColumn returns the name of the amount sub-column.
func (f *Field) AmountColumn() string { return f.name + "_amount" }

// CurrencyColumn returns the name of the currency sub-column, empty when the currency is fixed.
func (f *Field) CurrencyColumn() string {
	if f.IsFixed() {
		return ""
	}
	return f.name + "_currency"
}

// IsFixed reports whether the attribute is single-currency.
func (f *Field) IsFixed() bool { return f.fixedCurrency != "" }

// FixedCurrency returns the fixed currency code, empty when variable.
func (f *Field) FixedCurrency() string { return f.fixedCurrency }

// MaxDigits returns the total number of digits allowed.
func (f *Field) MaxDigits() int { return f.maxDigits }

// DecimalPlaces returns the number of digits allowed after the decimal point.
func (f *Field) DecimalPlaces() int { return f.decimalPlaces }

// CurrencyChoices returns a copy of the allowed currencies; empty means any code.
func (f *Field) CurrencyChoices() []config.Choice { return slices.Clone(f.currencyChoices) }

// CurrencyDefault returns the default currency of a variable attribute.
func (f *Field) CurrencyDefault() (string, bool) { return f.currencyDefault, f.hasCurrencyDefault }

// AmountDefault returns the default amount.
func (f *Field) AmountDefault() (decimal.Decimal, bool) { return f.amountDefault, f.hasAmountDefault }

// Default returns the whole-value default, or nil.
func (f *Field) Default() *money.Money {
	if f.def == nil {
		return nil
	}
	d := *f.def
	return &d
}

// Null reports whether the attribute may be unset.
func (f *Field) Null() bool { return f.null }

// Blank reports whether the attribute is optional in forms.
func (f *Field) Blank() bool { return f.blank }

// InitialCurrency is the currency shown for an empty input: the fixed currency,
// else the currency default.
func (f *Field) InitialCurrency() string {
	if f.IsFixed() {
		return f.fixedCurrency
	}
	return f.currencyDefault
}

// Columns returns the persisted sub-columns: the amount, then the currency when variable.
func (f *Field) Columns() []Column {
	amount := DecimalColumn(f.AmountColumn(), f.maxDigits, f.decimalPlaces)
	amount.Null, amount.Blank, amount.MoneyField = f.null, f.blank, f.name
	if f.hasAmountDefault {
		amount.Default = f.amountDefault
	}
	if f.IsFixed() {
		return []Column{amount}
	}

	currency := CharColumn(f.CurrencyColumn(), 3).WithChoices(f.currencyChoices...)
	currency.Null, currency.Blank, currency.MoneyField = f.null, f.blank, f.name
	if f.hasCurrencyDefault {
		currency.Default = f.currencyDefault
	}
	return []Column{amount, currency}
}
