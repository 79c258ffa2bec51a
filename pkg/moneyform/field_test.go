package moneyform_test

import (
	"errors"
	"net/url"
	"testing"

	"github.com/SscSPs/moneyfield/pkg/config"
	"github.com/SscSPs/moneyfield/pkg/money"
	"github.com/SscSPs/moneyfield/pkg/moneyfield"
	"github.com/SscSPs/moneyfield/pkg/moneyform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formField(t *testing.T, s *moneyfield.Schema, name string, opts ...moneyform.FieldOption) *moneyform.FormField {
	t.Helper()
	f, ok := s.Field(name)
	require.True(t, ok)
	return moneyform.NewFormField(f, opts...)
}

func requireFieldError(t *testing.T, err error, name string) []string {
	t.Helper()
	require.Error(t, err)
	var verr *moneyfield.ValidationError
	require.True(t, errors.As(err, &verr), "expected a validation error, got %v", err)
	require.Contains(t, verr.Errors, name)
	return verr.Errors[name]
}

func TestFormField_Describe(t *testing.T) {
	fixed := formField(t, fixedSchema(), "price")
	assert.Equal(t, "price", fixed.Name())
	assert.Equal(t, "Price", fixed.Label())
	assert.True(t, fixed.Required())
	assert.True(t, fixed.ReadOnlyCurrency())
	assert.Equal(t, config.Choices("EUR"), fixed.Choices())
	assert.Equal(t, []string{"price_0", "price_1"}, fixed.RawNames())
	assert.Equal(t, moneyform.Inputs{Currency: "EUR"}, fixed.Initial())

	choices := formField(t, choicesSchema(), "price", moneyform.WithLabel("Fee"), moneyform.WithRequired(false))
	assert.Equal(t, "Fee", choices.Label())
	assert.False(t, choices.Required())
	assert.False(t, choices.ReadOnlyCurrency())
	assert.Equal(t, config.Choices("EUR", "USD", "CNY"), choices.Choices())
	assert.Equal(t, moneyform.Inputs{Currency: "USD"}, choices.Initial())

	assert.Nil(t, formField(t, freeSchema(), "price").Choices())
}

func TestFormField_Decompress(t *testing.T) {
	ff := formField(t, freeSchema(), "price")

	inputs, err := ff.Decompress(nil)
	require.NoError(t, err)
	assert.Equal(t, moneyform.Inputs{}, inputs)

	m := money.Must("1234", "USD")
	inputs, err = ff.Decompress(&m)
	require.NoError(t, err)
	assert.Equal(t, moneyform.Inputs{Amount: "1234.00", Currency: "USD"}, inputs)

	m = money.Must("0.125", "USD")
	inputs, err = ff.Decompress(&m)
	require.NoError(t, err)
	assert.Equal(t, "0.125", inputs.Amount)
}

func TestFormField_DecompressFixedMismatch(t *testing.T) {
	ff := formField(t, fixedSchema(), "price")

	m := money.Must("1234.00", "USD")
	_, err := ff.Decompress(&m)
	msgs := requireFieldError(t, err, "price")
	assert.Contains(t, msgs[0], "USD")

	m = money.Must("1234.00", "EUR")
	inputs, err := ff.Decompress(&m)
	require.NoError(t, err)
	assert.Equal(t, moneyform.Inputs{Amount: "1234.00", Currency: "EUR"}, inputs)
}

func TestFormField_Clean(t *testing.T) {
	tests := []struct {
		name    string
		schema  *moneyfield.Schema
		data    url.Values
		want    *money.Money
		wantErr bool
	}{
		{"decompressed", freeSchema(), url.Values{"price_0": {"1234.00"}, "price_1": {"EUR"}}, ptr(money.Must("1234", "EUR")), false},
		{"compressed", freeSchema(), url.Values{"price": {"EUR 1234.00"}}, ptr(money.Must("1234", "EUR")), false},
		{"compressed reversed", freeSchema(), url.Values{"price": {"1234.00 EUR"}}, ptr(money.Must("1234", "EUR")), false},
		{"compressed wins", freeSchema(), url.Values{"price": {"EUR 1"}, "price_0": {"2"}, "price_1": {"USD"}}, ptr(money.Must("1", "EUR")), false},
		{"garbage compressed", freeSchema(), url.Values{"price": {"lots"}}, nil, true},
		{"fixed amount only", fixedSchema(), url.Values{"price_0": {"1234.00"}}, ptr(money.Must("1234", "EUR")), false},
		{"fixed matching currency", fixedSchema(), url.Values{"price_0": {"1"}, "price_1": {"EUR"}}, ptr(money.Must("1", "EUR")), false},
		{"fixed mismatch decompressed", fixedSchema(), url.Values{"price_0": {"1234.00"}, "price_1": {"GBP"}}, nil, true},
		{"fixed mismatch compressed", fixedSchema(), url.Values{"price": {"GBP 1234.00"}}, nil, true},
		{"variable without currency", freeSchema(), url.Values{"price_0": {"1"}}, nil, true},
		{"malformed currency", freeSchema(), url.Values{"price_0": {"1"}, "price_1": {"eu"}}, nil, true},
		{"currency not a choice", choicesSchema(), url.Values{"price_0": {"1"}, "price_1": {"GBP"}}, nil, true},
		{"choice", choicesSchema(), url.Values{"price_0": {"1"}, "price_1": {"CNY"}}, ptr(money.Must("1", "CNY")), false},
		{"not a number", freeSchema(), url.Values{"price_0": {"abc"}, "price_1": {"EUR"}}, nil, true},
		{"too many digits", freeSchema(), url.Values{"price_0": {"1234567"}, "price_1": {"EUR"}}, nil, true},
		{"required", freeSchema(), url.Values{}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formField(t, tt.schema, "price").Clean(tt.data)
			if tt.wantErr {
				requireFieldError(t, err, "price")
				return
			}
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "got %s, want %s", got, tt.want)
		})
	}
}

func TestFormField_CleanOptionalEmpty(t *testing.T) {
	ff := formField(t, freeSchema(), "price", moneyform.WithRequired(false))

	got, err := ff.Clean(url.Values{"price_0": {""}, "price_1": {"EUR"}})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func ptr(m money.Money) *money.Money {
	return &m
}
