package moneyfield

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/moneyfield/pkg/config"
	"github.com/SscSPs/moneyfield/pkg/money"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	mustRegister(v, "currency_code", func(fl validator.FieldLevel) bool {
		return money.IsValidCode(fl.Field().String())
	})
	mustRegister(v, "max_digits", digitsRule(func(digits, _ int) int { return digits }))
	mustRegister(v, "decimal_places", digitsRule(func(_, decimals int) int { return decimals }))
	mustRegister(v, "whole_digits", digitsRule(func(digits, decimals int) int { return digits - decimals }))
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// digitsRule validates the string form of a decimal against an upper bound
// given as the tag parameter.
func digitsRule(count func(digits, decimals int) int) validator.Func {
	return func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		d, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		digits, decimals := countDigits(d)
		return count(digits, decimals) <= limit
	}
}

// countDigits returns the number of significant digits and of decimal places of
// d, counting trailing zeros of the scale ("45.00" has 4 digits, 2 decimals).
func countDigits(d decimal.Decimal) (digits, decimals int) {
	coef := d.Coefficient()
	coefDigits := len(strings.TrimPrefix(coef.String(), "-"))
	exp := int(d.Exponent())
	if exp >= 0 {
		digits = coefDigits
		if coef.Sign() != 0 {
			digits += exp
		}
		return digits, 0
	}
	if -exp > coefDigits {
		return -exp, -exp
	}
	return coefDigits, -exp
}

// CheckAmount returns the messages for an amount that does not fit the
// attribute's precision envelope. Trailing zeros of the scale count, so "9.990"
// does not fit two decimal places.
func (f *Field) CheckAmount(d decimal.Decimal) []string {
	return checkDecimal(d, f.maxDigits, f.decimalPlaces)
}

// fullPrecision formats d without dropping the trailing zeros of its scale.
func fullPrecision(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}

func checkDecimal(d decimal.Decimal, maxDigits, decimalPlaces int) []string {
	tag := fmt.Sprintf("max_digits=%d,decimal_places=%d,whole_digits=%d", maxDigits, decimalPlaces, maxDigits-decimalPlaces)
	err := validate.Var(fullPrecision(d), tag)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{MsgInvalidNumber}
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "max_digits":
			msgs = append(msgs, fmt.Sprintf("Ensure that there are no more than %s digits in total.", fe.Param()))
		case "decimal_places":
			msgs = append(msgs, fmt.Sprintf("Ensure that there are no more than %s decimal places.", fe.Param()))
		case "whole_digits":
			msgs = append(msgs, fmt.Sprintf("Ensure that there are no more than %s digits before the decimal point.", fe.Param()))
		}
	}
	return msgs
}

// CheckCurrency returns the messages for a currency code that is malformed or
// not one of the attribute's choices. A fixed attribute accepts only its currency.
func (f *Field) CheckCurrency(code string) []string {
	if f.IsFixed() {
		if code != f.fixedCurrency {
			return []string{msgInvalidChoice(code)}
		}
		return nil
	}
	return checkCurrency(code, f.currencyChoices)
}

func checkCurrency(code string, choices []config.Choice) []string {
	if err := validate.Var(code, "currency_code"); err != nil {
		return []string{MsgCurrencyCode}
	}
	if len(choices) == 0 {
		return nil
	}
	tag := "oneof=" + strings.Join(config.ChoiceCodes(choices), " ")
	if err := validate.Var(code, tag); err != nil {
		return []string{msgInvalidChoice(code)}
	}
	return nil
}

// Validate is the explicit validation pass. It first fills unset money
// sub-columns from their defaults, then checks every column. The id column is
// not checked. It returns a *ValidationError or nil.
func (s *Schema) Validate(r *Record) error {
	for _, f := range s.moneyFields {
		if _, ok := r.Get(f.AmountColumn()); !ok && f.hasAmountDefault {
			r.values[f.AmountColumn()] = f.amountDefault
		}
		if f.IsFixed() {
			continue
		}
		if _, ok := r.Get(f.CurrencyColumn()); !ok && f.hasCurrencyDefault {
			r.values[f.CurrencyColumn()] = f.currencyDefault
		}
	}

	verr := &ValidationError{}
	for _, c := range s.columns {
		if c.Kind == KindID {
			continue
		}
		verr.Add(c.Name, checkColumn(c, r.values[c.Name])...)
	}
	return verr.Err()
}

func checkColumn(c Column, v any) []string {
	if v == nil {
		if c.Null {
			return nil
		}
		return []string{MsgNull}
	}

	switch val := v.(type) {
	case decimal.Decimal:
		return checkDecimal(val, c.MaxDigits, c.DecimalPlaces)
	case string:
		if val == "" {
			if c.Blank {
				return nil
			}
			return []string{MsgBlank}
		}
		if c.IsMoneyPart() {
			return checkCurrency(val, c.Choices)
		}
		if c.Kind == KindChar && c.MaxLength > 0 {
			if n := len([]rune(val)); n > c.MaxLength {
				return []string{fmt.Sprintf("Ensure this value has at most %d characters (it has %d).", c.MaxLength, n)}
			}
		}
		if len(c.Choices) > 0 && !hasChoice(c.Choices, val) {
			return []string{msgInvalidChoice(val)}
		}
	}
	return nil
}

func hasChoice(choices []config.Choice, code string) bool {
	for _, c := range choices {
		if c.Code == code {
			return true
		}
	}
	return false
}
