package moneyfield

import (
	"fmt"
	"maps"
	"slices"

	"github.com/SscSPs/moneyfield/pkg/money"
	"github.com/shopspring/decimal"
)

// Record holds the raw column values of one instance of a schema. A missing key
// means the column is unset.
type Record struct {
	schema *Schema
	values map[string]any
}

// NewRecord returns a record with column defaults applied, then values written
// as raw columns. Money attributes are not columns and are rejected here.
func (s *Schema) NewRecord(values map[string]any) (*Record, error) {
	r := &Record{schema: s, values: make(map[string]any, len(s.columns))}
	for _, c := range s.columns {
		if c.Default == nil {
			continue
		}
		if err := r.Set(c.Name, c.Default); err != nil {
			return nil, fmt.Errorf("default of column %q: %w", c.Name, err)
		}
	}
	for _, name := range slices.Sorted(maps.Keys(values)) {
		if err := r.Set(name, values[name]); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// MustNewRecord is like NewRecord but panics on error.
func (s *Schema) MustNewRecord(values map[string]any) *Record {
	r, err := s.NewRecord(values)
	if err != nil {
		panic(err)
	}
	return r
}

// Schema returns the record's schema.
func (r *Record) Schema() *Schema {
	return r.schema
}

// Set writes a raw column value after coercing it to the column type. No
// validation happens here.
func (r *Record) Set(column string, v any) error {
	c, ok := r.schema.Column(column)
	if !ok {
		if _, isMoney := r.schema.fields[column]; isMoney {
			return fmt.Errorf("%w: %q is a money field of %q, not a column", ErrInvalidType, column, r.schema.table)
		}
		return fmt.Errorf("%w: %q is not a column of %q", ErrInvalidType, column, r.schema.table)
	}
	val, err := c.Coerce(v)
	if err != nil {
		return err
	}
	if val == nil {
		r.clear(column)
		return nil
	}
	r.values[column] = val
	return nil
}

// Get returns a raw column value and whether it is set.
func (r *Record) Get(column string) (any, bool) {
	v, ok := r.values[column]
	return v, ok && v != nil
}

// ID returns the primary key, empty when unsaved.
func (r *Record) ID() string {
	id, _ := r.str(IDColumn)
	return id
}

// SetID sets the primary key.
func (r *Record) SetID(id string) {
	if id == "" {
		r.clear(IDColumn)
		return
	}
	r.values[IDColumn] = id
}

// Values returns a copy of the set column values.
func (r *Record) Values() map[string]any {
	return maps.Clone(r.values)
}

// Money reads a money attribute through its accessor.
func (r *Record) Money(name string) (*money.Money, error) {
	a, ok := r.schema.Accessor(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q has no money field %q", ErrFieldConfig, r.schema.table, name)
	}
	return a.Get(r), nil
}

// SetMoney writes a money attribute through its accessor.
func (r *Record) SetMoney(name string, v any) error {
	a, ok := r.schema.Accessor(name)
	if !ok {
		return fmt.Errorf("%w: %q has no money field %q", ErrFieldConfig, r.schema.table, name)
	}
	return a.Set(r, v)
}

// FullClean runs the validation pass of the record's schema.
func (r *Record) FullClean() error {
	return r.schema.Validate(r)
}

func (r *Record) decimal(column string) (decimal.Decimal, bool) {
	d, ok := r.values[column].(decimal.Decimal)
	return d, ok
}

func (r *Record) str(column string) (string, bool) {
	if column == "" {
		return "", false
	}
	s, ok := r.values[column].(string)
	return s, ok
}

func (r *Record) clear(column string) {
	if column != "" {
		delete(r.values, column)
	}
}
