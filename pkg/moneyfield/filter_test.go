package moneyfield_test

import (
	"testing"

	"github.com/SscSPs/moneyfield/pkg/money"
	"github.com/SscSPs/moneyfield/pkg/moneyfield"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckFilter_ComposedValueRejected(t *testing.T) {
	err := fixedCurrencySchema().CheckFilter(map[string]any{"price": money.Must("1234.00", "EUR")})
	require.Error(t, err)
	assert.ErrorIs(t, err, moneyfield.ErrFieldConfig)
	assert.Contains(t, err.Error(), "price_amount")

	err = choicesCurrencySchema().CheckFilter(map[string]any{"fee": "EUR 1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fee_amount / fee_currency")
}

func TestCheckFilter_SubColumnsAccepted(t *testing.T) {
	s := choicesCurrencySchema()
	assert.NoError(t, s.CheckFilter(map[string]any{"fee_amount": "1234.00", "fee_currency": "EUR", "name": "Ada"}))
	assert.ErrorIs(t, s.CheckFilter(map[string]any{"unknown": 1}), moneyfield.ErrFieldConfig)
}

func TestCleanFilter_Coerces(t *testing.T) {
	cleaned, err := choicesCurrencySchema().CleanFilter(map[string]any{"fee_amount": "1234.00", "fee_currency": "EUR"})
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("1234").Equal(cleaned["fee_amount"].(decimal.Decimal)))
	assert.Equal(t, "EUR", cleaned["fee_currency"])

	_, err = choicesCurrencySchema().CleanFilter(map[string]any{"fee_amount": "abc"})
	assert.ErrorIs(t, err, moneyfield.ErrInvalidType)
}
