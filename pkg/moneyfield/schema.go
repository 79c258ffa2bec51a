package moneyfield

import (
	"errors"
	"fmt"
	"slices"
)

// Member is one declared entry of a schema: a plain column or a money attribute.
type Member struct {
	Name   string
	Column Column
	Money  *Field
}

// IsMoney reports whether the member is a money attribute.
func (m Member) IsMoney() bool {
	return m.Money != nil
}

// SchemaBuilder collects columns and money attributes in declaration order.
type SchemaBuilder struct {
	table   string
	members []Member
	errs    []error
}

// NewSchemaBuilder starts the schema of a record type stored in table.
func NewSchemaBuilder(table string) *SchemaBuilder {
	return &SchemaBuilder{table: table}
}

// Column declares a plain column.
func (b *SchemaBuilder) Column(c Column) *SchemaBuilder {
	if c.IsMoneyPart() {
		b.errs = append(b.errs, fmt.Errorf("%w: column %q belongs to money field %q, declare the field instead", ErrFieldConfig, c.Name, c.MoneyField))
		return b
	}
	b.members = append(b.members, Member{Name: c.Name, Column: c})
	return b
}

// Money declares a money attribute.
func (b *SchemaBuilder) Money(f *Field) *SchemaBuilder {
	if f == nil {
		b.errs = append(b.errs, fmt.Errorf("%w: nil money field in %q", ErrFieldConfig, b.table))
		return b
	}
	b.members = append(b.members, Member{Name: f.Name(), Money: f})
	return b
}

// Build binds every member and returns the immutable schema.
func (b *SchemaBuilder) Build() (*Schema, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	if !identRegexp.MatchString(b.table) {
		return nil, fmt.Errorf("%w: invalid table name %q", ErrFieldConfig, b.table)
	}

	s := &Schema{
		table:       b.table,
		columnIndex: make(map[string]int),
		fields:      make(map[string]*Field),
		accessors:   make(map[string]Accessor),
		members:     slices.Clone(b.members),
	}
	taken := map[string]bool{}
	addColumn := func(c Column) error {
		if !identRegexp.MatchString(c.Name) {
			return fmt.Errorf("%w: invalid column name %q in %q", ErrFieldConfig, c.Name, b.table)
		}
		if taken[c.Name] {
			return fmt.Errorf("%w: duplicate name %q in %q", ErrFieldConfig, c.Name, b.table)
		}
		taken[c.Name] = true
		s.columnIndex[c.Name] = len(s.columns)
		s.columns = append(s.columns, c)
		return nil
	}

	if err := addColumn(Column{Name: IDColumn, Kind: KindID}); err != nil {
		return nil, err
	}
	for _, m := range b.members {
		if !m.IsMoney() {
			if err := addColumn(m.Column); err != nil {
				return nil, err
			}
			continue
		}
		if taken[m.Name] {
			return nil, fmt.Errorf("%w: duplicate name %q in %q", ErrFieldConfig, m.Name, b.table)
		}
		taken[m.Name] = true
		for _, c := range m.Money.Columns() {
			if err := addColumn(c); err != nil {
				return nil, err
			}
		}
		s.fields[m.Name] = m.Money
		s.moneyFields = append(s.moneyFields, m.Money)
		s.accessors[m.Name] = newAccessor(m.Money)
	}
	return s, nil
}

// MustBuild is like Build but panics on error.
func (b *SchemaBuilder) MustBuild() *Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// Schema is the static description of a record type. It is never modified after
// Build and may be shared between goroutines.
type Schema struct {
	table       string
	columns     []Column
	columnIndex map[string]int
	members     []Member
	moneyFields []*Field
	fields      map[string]*Field
	accessors   map[string]Accessor
}

// Table returns the table name.
func (s *Schema) Table() string { return s.table }

// Columns returns the persisted columns, id first.
func (s *Schema) Columns() []Column { return slices.Clone(s.columns) }

// ColumnNames returns the persisted column names, id first.
func (s *Schema) ColumnNames() []string {
	names := make([]string, len(s.columns))
	for i, c := range s.columns {
		names[i] = c.Name
	}
	return names
}

// Column looks up a persisted column.
func (s *Schema) Column(name string) (Column, bool) {
	i, ok := s.columnIndex[name]
	if !ok {
		return Column{}, false
	}
	return s.columns[i], true
}

// Members returns the declared plain columns and money attributes in declaration order.
func (s *Schema) Members() []Member { return slices.Clone(s.members) }

// MoneyFields returns the money attributes in declaration order.
func (s *Schema) MoneyFields() []*Field { return slices.Clone(s.moneyFields) }

// Field returns the definition of a money attribute.
func (s *Schema) Field(name string) (*Field, bool) {
	f, ok := s.fields[name]
	return f, ok
}

// Accessor returns the accessor of a money attribute.
func (s *Schema) Accessor(name string) (Accessor, bool) {
	a, ok := s.accessors[name]
	return a, ok
}
