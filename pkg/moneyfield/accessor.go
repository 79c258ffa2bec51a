package moneyfield

import (
	"fmt"

	"github.com/SscSPs/moneyfield/pkg/money"
)

// Accessor reads and writes the logical money value of a record.
type Accessor interface {
	// Field returns the attribute definition.
	Field() *Field
	// Get combines the sub-columns into a Money, or returns nil when a part is unset.
	Get(r *Record) *money.Money
	// Set decomposes v into the sub-columns. v must be money.Money, *money.Money or nil.
	Set(r *Record, v any) error
}

func newAccessor(f *Field) Accessor {
	if f.IsFixed() {
		return fixedAccessor{field: f}
	}
	return variableAccessor{field: f}
}

type fixedAccessor struct {
	field *Field
}

func (a fixedAccessor) Field() *Field {
	return a.field
}

func (a fixedAccessor) Get(r *Record) *money.Money {
	amount, ok := r.decimal(a.field.AmountColumn())
	if !ok {
		return nil
	}
	m := money.New(amount, a.field.fixedCurrency)
	return &m
}

func (a fixedAccessor) Set(r *Record, v any) error {
	m, err := toMoney(a.field, v)
	if err != nil {
		return err
	}
	if m == nil {
		r.clear(a.field.AmountColumn())
		return nil
	}
	if m.Currency() != a.field.fixedCurrency {
		return fmt.Errorf("%w: field %q is %s-only", ErrInvalidType, a.field.name, a.field.fixedCurrency)
	}
	r.values[a.field.AmountColumn()] = m.Amount()
	return nil
}

type variableAccessor struct {
	field *Field
}

func (a variableAccessor) Field() *Field {
	return a.field
}

func (a variableAccessor) Get(r *Record) *money.Money {
	amount, ok := r.decimal(a.field.AmountColumn())
	if !ok {
		return nil
	}
	currency, ok := r.str(a.field.CurrencyColumn())
	if !ok {
		return nil
	}
	m := money.New(amount, currency)
	return &m
}

func (a variableAccessor) Set(r *Record, v any) error {
	m, err := toMoney(a.field, v)
	if err != nil {
		return err
	}
	if m == nil {
		r.clear(a.field.AmountColumn())
		r.clear(a.field.CurrencyColumn())
		return nil
	}
	r.values[a.field.AmountColumn()] = m.Amount()
	r.values[a.field.CurrencyColumn()] = m.Currency()
	return nil
}

func toMoney(f *Field, v any) (*money.Money, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case money.Money:
		return &val, nil
	case *money.Money:
		return val, nil
	}
	return nil, fieldTypeError(f.name, v)
}

func fieldTypeError(name string, v any) error {
	return fmt.Errorf("%w: cannot assign %T to money field %q", ErrInvalidType, v, name)
}
