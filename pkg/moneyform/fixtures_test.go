package moneyform_test

import (
	"github.com/SscSPs/moneyfield/pkg/config"
	"github.com/SscSPs/moneyfield/pkg/moneyfield"
)

func dummySchema() *moneyfield.Schema {
	return moneyfield.NewSchemaBuilder("dummy").
		Column(moneyfield.CharColumn("name", 100).AllowBlank()).
		MustBuild()
}

func someMoneySchema() *moneyfield.Schema {
	return moneyfield.NewSchemaBuilder("some_money").
		Column(moneyfield.CharColumn("field1", 100).AllowBlank()).
		Money(moneyfield.Must("field2", moneyfield.WithDecimalPlaces(2), moneyfield.WithMaxDigits(8))).
		Column(moneyfield.CharColumn("field3", 100).AllowBlank()).
		MustBuild()
}

func fixedSchema() *moneyfield.Schema {
	return moneyfield.NewSchemaBuilder("fixed_currency").
		Money(moneyfield.Must("price",
			moneyfield.WithDecimalPlaces(2),
			moneyfield.WithMaxDigits(8),
			moneyfield.WithFixedCurrency("EUR"),
		)).
		MustBuild()
}

func freeSchema() *moneyfield.Schema {
	return moneyfield.NewSchemaBuilder("free_currency").
		Money(moneyfield.Must("price", moneyfield.WithDecimalPlaces(2), moneyfield.WithMaxDigits(8))).
		MustBuild()
}

func choicesSchema() *moneyfield.Schema {
	return moneyfield.NewSchemaBuilder("choices_currency").
		Money(moneyfield.Must("price",
			moneyfield.WithDecimalPlaces(2),
			moneyfield.WithMaxDigits(8),
			moneyfield.WithCurrencyChoices(config.Choices("EUR", "USD", "CNY")...),
			moneyfield.WithCurrencyDefault("USD"),
		)).
		MustBuild()
}
