package moneyfield_test

import (
	"testing"

	"github.com/SscSPs/moneyfield/pkg/money"
	"github.com/SscSPs/moneyfield/pkg/moneyfield"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema_FixedCurrencyColumns(t *testing.T) {
	s := fixedCurrencySchema()

	assert.Equal(t, "books", s.Table())
	assert.Equal(t, []string{"id", "title", "price_amount"}, s.ColumnNames())
	_, ok := s.Column("price")
	assert.False(t, ok, "the logical name is never a column")
	_, ok = s.Column("price_currency")
	assert.False(t, ok, "fixed currency has no currency column")

	amount, ok := s.Column("price_amount")
	require.True(t, ok)
	assert.Equal(t, moneyfield.KindDecimal, amount.Kind)
	assert.Equal(t, 8, amount.MaxDigits)
	assert.Equal(t, 2, amount.DecimalPlaces)
}

func TestSchema_VariableCurrencyColumns(t *testing.T) {
	s := choicesCurrencySchema()

	assert.Equal(t, []string{"id", "name", "fee_amount", "fee_currency"}, s.ColumnNames())
	_, ok := s.Column("fee")
	assert.False(t, ok)
	currency, ok := s.Column("fee_currency")
	require.True(t, ok)
	assert.Equal(t, "fee", currency.MoneyField)
	assert.Equal(t, "USD", currency.Default)
}

func TestSchema_Registry(t *testing.T) {
	price := moneyfield.Must("price", moneyfield.WithDecimalPlaces(2), moneyfield.WithMaxDigits(8))
	fee := moneyfield.Must("fee", moneyfield.WithDecimalPlaces(2), moneyfield.WithMaxDigits(8), moneyfield.WithFixedCurrency("EUR"))
	s := moneyfield.NewSchemaBuilder("things").
		Money(price).
		Column(moneyfield.TextColumn("note").Nullable()).
		Money(fee).
		MustBuild()

	assert.Equal(t, []*moneyfield.Field{price, fee}, s.MoneyFields())

	members := s.Members()
	require.Len(t, members, 3)
	assert.Equal(t, "price", members[0].Name)
	assert.True(t, members[0].IsMoney())
	assert.Equal(t, "note", members[1].Name)
	assert.False(t, members[1].IsMoney())
	assert.Equal(t, "fee", members[2].Name)
	assert.Equal(t, []string{"id", "price_amount", "price_currency", "note", "fee_amount"}, s.ColumnNames())
}

func TestSchemaBuilder_Errors(t *testing.T) {
	price := moneyfield.Must("price", moneyfield.WithDecimalPlaces(2), moneyfield.WithMaxDigits(8))

	tests := []struct {
		name    string
		builder *moneyfield.SchemaBuilder
	}{
		{"duplicate sub-column", moneyfield.NewSchemaBuilder("t").Column(moneyfield.CharColumn("price_amount", 10)).Money(price)},
		{"column named like the attribute", moneyfield.NewSchemaBuilder("t").Column(moneyfield.CharColumn("price", 10)).Money(price)},
		{"duplicate attribute", moneyfield.NewSchemaBuilder("t").Money(price).Money(price)},
		{"explicit id", moneyfield.NewSchemaBuilder("t").Column(moneyfield.TextColumn("id"))},
		{"nil field", moneyfield.NewSchemaBuilder("t").Money(nil)},
		{"bad table", moneyfield.NewSchemaBuilder("my table").Money(price)},
		{"bad column", moneyfield.NewSchemaBuilder("t").Column(moneyfield.TextColumn("a-b"))},
		{"sub-column declared as plain", moneyfield.NewSchemaBuilder("t").Column(price.Columns()[0])},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder.Build()
			assert.ErrorIs(t, err, moneyfield.ErrFieldConfig)
		})
	}

	assert.Panics(t, func() {
		moneyfield.NewSchemaBuilder("t").Money(nil).MustBuild()
	})
}

func TestNewRecord_AppliesDefaults(t *testing.T) {
	r := fixedCurrencyDefaultSchema().MustNewRecord(nil)

	got, err := r.Money("price")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, money.Must("1234.00", "EUR").Equal(*got))

	c := choicesCurrencySchema().MustNewRecord(map[string]any{"fee_amount": "1234.00"})
	got, err = c.Money("fee")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, money.Must("1234.00", "USD").Equal(*got))

	c = choicesCurrencySchema().MustNewRecord(map[string]any{"fee_amount": "1234.00", "fee_currency": "CNY"})
	got, _ = c.Money("fee")
	require.NotNil(t, got)
	assert.Equal(t, "CNY", got.Currency())
}

func TestNewRecord_RejectsUnknownKeys(t *testing.T) {
	_, err := fixedCurrencySchema().NewRecord(map[string]any{"price": money.Must("1234.00", "EUR")})
	assert.ErrorIs(t, err, moneyfield.ErrInvalidType)

	_, err = fixedCurrencySchema().NewRecord(map[string]any{"price_amount": "1234.00", "price_currency": "USD"})
	assert.ErrorIs(t, err, moneyfield.ErrInvalidType)

	_, err = fixedCurrencySchema().NewRecord(map[string]any{"price_amount": "abc"})
	assert.ErrorIs(t, err, moneyfield.ErrInvalidType)
}

func TestRecord_SetCoercion(t *testing.T) {
	s := choicesCurrencySchema()
	r := s.MustNewRecord(nil)
	one := decimal.NewFromInt(1)

	for _, v := range []any{one, &one, "1", 1, int64(1), 1.0, decimal.NullDecimal{Decimal: one, Valid: true}} {
		require.NoError(t, r.Set("fee_amount", v), "%T", v)
		got, ok := r.Get("fee_amount")
		require.True(t, ok)
		assert.True(t, one.Equal(got.(decimal.Decimal)), "%T", v)
	}

	require.NoError(t, r.Set("fee_amount", decimal.NullDecimal{}))
	_, ok := r.Get("fee_amount")
	assert.False(t, ok)

	name := "Ada"
	require.NoError(t, r.Set("name", &name))
	got, _ := r.Get("name")
	assert.Equal(t, "Ada", got)

	assert.ErrorIs(t, r.Set("name", 42), moneyfield.ErrInvalidType)
	assert.ErrorIs(t, r.Set("fee_amount", true), moneyfield.ErrInvalidType)
}

func TestRecord_IDAndValues(t *testing.T) {
	r := fixedCurrencySchema().MustNewRecord(map[string]any{"title": "Dune"})
	assert.Empty(t, r.ID())

	r.SetID("abc")
	assert.Equal(t, "abc", r.ID())

	values := r.Values()
	assert.Equal(t, "abc", values["id"])
	values["title"] = "changed"
	got, _ := r.Get("title")
	assert.Equal(t, "Dune", got)

	r.SetID("")
	assert.Empty(t, r.ID())
}
