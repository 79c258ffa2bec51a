package moneyfield_test

import (
	"github.com/SscSPs/moneyfield/pkg/config"
	"github.com/SscSPs/moneyfield/pkg/money"
	"github.com/SscSPs/moneyfield/pkg/moneyfield"
)

func fixedCurrencySchema() *moneyfield.Schema {
	return moneyfield.NewSchemaBuilder("books").
		Column(moneyfield.CharColumn("title", 200).AllowBlank().WithDefault("")).
		Money(moneyfield.Must("price",
			moneyfield.WithDecimalPlaces(2),
			moneyfield.WithMaxDigits(8),
			moneyfield.WithFixedCurrency("EUR"),
		)).
		MustBuild()
}

func fixedCurrencyDefaultSchema() *moneyfield.Schema {
	return moneyfield.NewSchemaBuilder("books_with_default").
		Money(moneyfield.Must("price",
			moneyfield.WithDecimalPlaces(2),
			moneyfield.WithMaxDigits(8),
			moneyfield.WithFixedCurrency("EUR"),
			moneyfield.WithDefault(money.Must("1234.00", "EUR")),
		)).
		MustBuild()
}

func freeCurrencySchema() *moneyfield.Schema {
	return moneyfield.NewSchemaBuilder("prices").
		Money(moneyfield.Must("price",
			moneyfield.WithDecimalPlaces(2),
			moneyfield.WithMaxDigits(8),
		)).
		MustBuild()
}

func choicesCurrencySchema() *moneyfield.Schema {
	return moneyfield.NewSchemaBuilder("translators").
		Column(moneyfield.CharColumn("name", 100)).
		Money(moneyfield.Must("fee",
			moneyfield.WithDecimalPlaces(2),
			moneyfield.WithMaxDigits(8),
			moneyfield.WithCurrencyChoices(config.Choices("EUR", "USD", "CNY")...),
			moneyfield.WithCurrencyDefault("USD"),
		)).
		MustBuild()
}
