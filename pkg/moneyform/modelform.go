package moneyform

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/SscSPs/moneyfield/pkg/money"
	"github.com/SscSPs/moneyfield/pkg/moneyfield"
	"github.com/shopspring/decimal"
)

// ErrModelForm is returned when a form cannot be built for a schema.
var ErrModelForm = errors.New("money model form error")

// Member is one input of a ModelForm: a money field or a plain column.
type Member struct {
	Name   string
	Label  string
	Money  *FormField
	Column moneyfield.Column
}

// IsMoney reports whether the member is a money field.
func (m Member) IsMoney() bool { return m.Money != nil }

// Required reports whether an empty value is an error.
func (m Member) Required() bool {
	if m.Money != nil {
		return m.Money.Required()
	}
	return !m.Column.Blank
}

// Cleaned holds cleaned form values: *money.Money for money fields, the column's
// storage value for plain columns. A nil value means empty.
type Cleaned map[string]any

// ModelForm builds a form for every money attribute and plain column of a schema.
// Money sub-columns are never inputs of their own.
type ModelForm struct {
	schema  *moneyfield.Schema
	members []Member
}

type formOptions struct {
	exclude []string
	fields  []string
}

// FormOption configures a ModelForm.
type FormOption func(*formOptions)

// WithExclude leaves the given columns out of the form. Excluding every
// sub-column of a money attribute, or its logical name, drops the attribute.
func WithExclude(columns ...string) FormOption {
	return func(o *formOptions) {
		o.exclude = append(o.exclude, columns...)
	}
}

// WithFields restricts the form to the given plain columns and money attributes.
func WithFields(names ...string) FormOption {
	return func(o *formOptions) {
		o.fields = append(o.fields, names...)
	}
}

// NewModelForm returns the form of schema.
func NewModelForm(schema *moneyfield.Schema, opts ...FormOption) (*ModelForm, error) {
	o := formOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if len(schema.MoneyFields()) == 0 {
		return nil, fmt.Errorf("%w: %q has no money fields", ErrModelForm, schema.Table())
	}

	excluded := func(name string) bool { return slices.Contains(o.exclude, name) }
	form := &ModelForm{schema: schema}
	for _, m := range schema.Members() {
		if len(o.fields) > 0 && !slices.Contains(o.fields, m.Name) {
			continue
		}
		if !m.IsMoney() {
			if !excluded(m.Name) {
				form.members = append(form.members, Member{Name: m.Name, Label: capitalize(strings.ReplaceAll(m.Name, "_", " ")), Column: m.Column})
			}
			continue
		}

		f := m.Money
		if excluded(f.Name()) {
			continue
		}
		amountOut := excluded(f.AmountColumn())
		if f.IsFixed() {
			if amountOut {
				continue
			}
		} else {
			currencyOut := excluded(f.CurrencyColumn())
			if amountOut && currencyOut {
				continue
			}
			if amountOut != currencyOut {
				return nil, fmt.Errorf("%w: money field %q: exclude both %s and %s or neither",
					ErrModelForm, f.Name(), f.AmountColumn(), f.CurrencyColumn())
			}
		}
		ff := NewFormField(f)
		form.members = append(form.members, Member{Name: f.Name(), Label: ff.Label(), Money: ff})
	}
	return form, nil
}

// Schema returns the schema the form was built for.
func (mf *ModelForm) Schema() *moneyfield.Schema { return mf.schema }

// Fields returns the form inputs in declaration order.
func (mf *ModelForm) Fields() []Member { return slices.Clone(mf.members) }

// FieldNames returns the names of the form inputs in declaration order.
func (mf *ModelForm) FieldNames() []string {
	names := make([]string, len(mf.members))
	for i, m := range mf.members {
		names[i] = m.Name
	}
	return names
}

// Clean validates data field by field and collects every failure into one
// *moneyfield.ValidationError.
func (mf *ModelForm) Clean(data url.Values) (Cleaned, error) {
	cleaned := make(Cleaned, len(mf.members))
	verr := &moneyfield.ValidationError{}

	for _, m := range mf.members {
		if m.IsMoney() {
			v, err := m.Money.Clean(data)
			if err != nil {
				if !mergeValidation(verr, err) {
					return nil, err
				}
				continue
			}
			cleaned[m.Name] = v
			continue
		}

		raw := strings.TrimSpace(data.Get(m.Name))
		if raw == "" && m.Required() {
			verr.Add(m.Name, moneyfield.MsgRequired)
			continue
		}
		v, err := m.Column.Coerce(raw)
		if err != nil {
			verr.Add(m.Name, moneyfield.MsgInvalidNumber)
			continue
		}
		cleaned[m.Name] = v
	}

	if err := verr.Err(); err != nil {
		return nil, err
	}
	return cleaned, nil
}

// Save cleans data, writes it into rec and runs the record validation pass.
func (mf *ModelForm) Save(data url.Values, rec *moneyfield.Record) error {
	if rec.Schema() != mf.schema {
		if rec.Schema().Table() == mf.schema.Table() {
			return fmt.Errorf("%w: record of %q built from another schema instance (%p) than the form's (%p)",
				ErrModelForm, mf.schema.Table(), rec.Schema(), mf.schema)
		}
		return fmt.Errorf("%w: record of %q saved through form of %q", ErrModelForm, rec.Schema().Table(), mf.schema.Table())
	}
	cleaned, err := mf.Clean(data)
	if err != nil {
		return err
	}

	for _, m := range mf.members {
		v := cleaned[m.Name]
		if m.IsMoney() {
			err = rec.SetMoney(m.Name, v)
		} else {
			err = rec.Set(m.Name, v)
		}
		if err != nil {
			return err
		}
	}
	return rec.FullClean()
}

// Initial returns the raw input values to display for rec. overrides replace
// record values and may carry money.Money for money fields. A nil rec shows a new
// record with its defaults. Fixed currencies are not part of the raw values.
func (mf *ModelForm) Initial(rec *moneyfield.Record, overrides map[string]any) (map[string]string, error) {
	if rec == nil {
		var err error
		if rec, err = mf.schema.NewRecord(nil); err != nil {
			return nil, err
		}
	}

	out := make(map[string]string)
	for _, m := range mf.members {
		override, hasOverride := overrides[m.Name]
		if !m.IsMoney() {
			v, ok := override, hasOverride
			if !hasOverride {
				v, ok = rec.Get(m.Name)
			}
			if ok && v != nil {
				out[m.Name] = formatValue(v)
			}
			continue
		}

		var value *money.Money
		if hasOverride {
			switch v := override.(type) {
			case nil:
			case money.Money:
				value = &v
			case *money.Money:
				value = v
			default:
				return nil, fmt.Errorf("%w: cannot display %T in money field %q", moneyfield.ErrInvalidType, override, m.Name)
			}
		} else {
			a, _ := mf.schema.Accessor(m.Name)
			value = a.Get(rec)
		}

		var inputs Inputs
		if value == nil {
			inputs = m.Money.Initial()
			if v, ok := rec.Get(m.Money.Field().AmountColumn()); ok && !hasOverride {
				inputs.Amount = formatValue(v)
			}
			if c := m.Money.Field().CurrencyColumn(); c != "" && !hasOverride {
				if v, ok := rec.Get(c); ok {
					inputs.Currency = formatValue(v)
				}
			}
		} else {
			var err error
			if inputs, err = m.Money.Decompress(value); err != nil {
				return nil, err
			}
		}

		out[m.Money.amountName()] = inputs.Amount
		if !m.Money.Fixed() {
			out[m.Money.currencyName()] = inputs.Currency
		}
	}
	return out, nil
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case decimal.Decimal:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

func mergeValidation(dst *moneyfield.ValidationError, err error) bool {
	var verr *moneyfield.ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	dst.Merge(verr)
	return true
}
