package moneyfield

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// CheckFilter rejects filters the store cannot resolve. A money attribute's
// logical name is never a column; callers must filter on its sub-columns.
func (s *Schema) CheckFilter(filters map[string]any) error {
	for _, name := range slices.Sorted(maps.Keys(filters)) {
		if f, ok := s.fields[name]; ok {
			cols := []string{f.AmountColumn()}
			if !f.IsFixed() {
				cols = append(cols, f.CurrencyColumn())
			}
			return fmt.Errorf("%w: cannot filter on composed value %q, use %s", ErrFieldConfig, name, strings.Join(cols, " / "))
		}
		if _, ok := s.Column(name); !ok {
			return fmt.Errorf("%w: cannot resolve %q into a column of %q", ErrFieldConfig, name, s.table)
		}
	}
	return nil
}

// CleanFilter checks filters and coerces every value to its column type.
func (s *Schema) CleanFilter(filters map[string]any) (map[string]any, error) {
	if err := s.CheckFilter(filters); err != nil {
		return nil, err
	}
	cleaned := make(map[string]any, len(filters))
	for name, v := range filters {
		c, _ := s.Column(name)
		val, err := c.Coerce(v)
		if err != nil {
			return nil, err
		}
		cleaned[name] = val
	}
	return cleaned, nil
}
