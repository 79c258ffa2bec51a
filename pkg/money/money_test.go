package money_test

import (
	"encoding/json"
	"testing"

	"github.com/SscSPs/moneyfield/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney_Equal(t *testing.T) {
	tests := []struct {
		name string
		a    money.Money
		b    money.Money
		want bool
	}{
		{"same amount and currency", money.Must("9.99", "EUR"), money.Must("9.99", "EUR"), true},
		{"trailing zeros are ignored", money.Must("9.99", "EUR"), money.Must("9.990", "EUR"), true},
		{"different currency", money.Must("9.99", "EUR"), money.Must("9.99", "USD"), false},
		{"different amount", money.Must("9.99", "EUR"), money.Must("19.99", "EUR"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
		})
	}
}

func TestNewFromString_InvalidAmount(t *testing.T) {
	_, err := money.NewFromString("nine", "EUR")
	require.Error(t, err)
	assert.ErrorIs(t, err, money.ErrInvalidAmount)
}

func TestMust_Panics(t *testing.T) {
	assert.Panics(t, func() {
		money.Must("abc", "EUR")
	})
}

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    money.Money
		wantErr bool
	}{
		{input: "EUR 1234.00", want: money.Must("1234.00", "EUR")},
		{input: "1234.00 USD", want: money.Must("1234", "USD")},
		{input: "  GBP   0.5 ", want: money.Must("0.5", "GBP")},
		{input: "1234.00", wantErr: true},
		{input: "EUR USD", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := money.Parse(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, money.ErrInvalidFormat)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s, want %s", got, tt.want)
		})
	}
}

func TestMoney_String(t *testing.T) {
	m := money.New(decimal.RequireFromString("9.99"), "EUR")
	assert.Equal(t, "EUR 9.99", m.String())

	parsed, err := money.Parse(m.String())
	require.NoError(t, err)
	assert.True(t, m.Equal(parsed))
}

func TestMoney_JSON(t *testing.T) {
	m := money.Must("1234.50", "USD")

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"1234.5","currency":"USD"}`, string(data))

	var decoded money.Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equal(decoded))

	err = json.Unmarshal([]byte(`{"amount":"x","currency":"USD"}`), &decoded)
	assert.ErrorIs(t, err, money.ErrInvalidAmount)
}

func TestIsValidCode(t *testing.T) {
	for _, code := range []string{"EUR", "USD", "CNY", "XXX"} {
		assert.True(t, money.IsValidCode(code), code)
	}
	for _, code := range []string{"", "XX", "eur", "EURO", "123", "E1R", " EU"} {
		assert.False(t, money.IsValidCode(code), code)
	}
}
