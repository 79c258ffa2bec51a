package moneyfield

import (
	"database/sql"
	"fmt"
	"slices"

	"github.com/SscSPs/moneyfield/pkg/config"
	"github.com/shopspring/decimal"
)

// IDColumn is the implicit primary key of every schema.
const IDColumn = "id"

// ColumnKind is the storage kind of a persisted column.
type ColumnKind string

const (
	KindID      ColumnKind = "id"
	KindText    ColumnKind = "text"
	KindChar    ColumnKind = "char"
	KindDecimal ColumnKind = "decimal"
)

// Column describes one persisted column. Sub-columns of a money attribute carry
// the attribute's name in MoneyField.
type Column struct {
	Name          string
	Kind          ColumnKind
	MaxLength     int
	MaxDigits     int
	DecimalPlaces int
	Choices       []config.Choice
	Default       any
	Null          bool
	Blank         bool
	MoneyField    string
}

// CharColumn returns a bounded string column.
func CharColumn(name string, maxLength int) Column {
	return Column{Name: name, Kind: KindChar, MaxLength: maxLength}
}

// TextColumn returns an unbounded string column.
func TextColumn(name string) Column {
	return Column{Name: name, Kind: KindText}
}

// DecimalColumn returns a fixed-precision decimal column.
func DecimalColumn(name string, maxDigits, decimalPlaces int) Column {
	return Column{Name: name, Kind: KindDecimal, MaxDigits: maxDigits, DecimalPlaces: decimalPlaces}
}

// Nullable allows the column to hold no value.
func (c Column) Nullable() Column {
	c.Null = true
	return c
}

// AllowBlank allows an empty string value.
func (c Column) AllowBlank() Column {
	c.Blank = true
	return c
}

// WithDefault sets the value applied to new records.
func (c Column) WithDefault(v any) Column {
	c.Default = v
	return c
}

// WithChoices restricts the column to the given values.
func (c Column) WithChoices(choices ...config.Choice) Column {
	c.Choices = slices.Clone(choices)
	return c
}

// IsMoneyPart reports whether the column backs a money attribute.
func (c Column) IsMoneyPart() bool {
	return c.MoneyField != ""
}

func (c Column) isString() bool {
	return c.Kind == KindChar || c.Kind == KindText || c.Kind == KindID
}

// Coerce converts v to the column's storage representation: decimal.Decimal for
// decimal columns, string for the others. nil means unset.
func (c Column) Coerce(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	if c.Kind == KindDecimal {
		return c.coerceDecimal(v)
	}
	switch val := v.(type) {
	case string:
		return val, nil
	case *string:
		if val == nil {
			return nil, nil
		}
		return *val, nil
	case sql.NullString:
		if !val.Valid {
			return nil, nil
		}
		return val.String, nil
	}
	return nil, fmt.Errorf("%w: cannot assign %T to column %q", ErrInvalidType, v, c.Name)
}

func (c Column) coerceDecimal(v any) (any, error) {
	switch val := v.(type) {
	case decimal.Decimal:
		return val, nil
	case *decimal.Decimal:
		if val == nil {
			return nil, nil
		}
		return *val, nil
	case decimal.NullDecimal:
		if !val.Valid {
			return nil, nil
		}
		return val.Decimal, nil
	case string:
		if val == "" {
			return nil, nil
		}
		d, err := decimal.NewFromString(val)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a decimal value for column %q", ErrInvalidType, val, c.Name)
		}
		return d, nil
	case int:
		return decimal.NewFromInt(int64(val)), nil
	case int64:
		return decimal.NewFromInt(val), nil
	case float64:
		return decimal.NewFromFloat(val), nil
	}
	return nil, fmt.Errorf("%w: cannot assign %T to column %q", ErrInvalidType, v, c.Name)
}
