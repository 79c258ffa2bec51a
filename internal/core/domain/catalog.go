package domain

import (
	"fmt"
	"slices"

	"github.com/SscSPs/moneyfield/internal/apperrors"
	"github.com/SscSPs/moneyfield/pkg/config"
	"github.com/SscSPs/moneyfield/pkg/money"
	"github.com/SscSPs/moneyfield/pkg/moneyfield"
	"github.com/shopspring/decimal"
)

// Record kinds served by the API. Each kind is stored in the table of the same name.
const (
	KindBooks       = "books"
	KindTranslators = "translators"
	KindDonations   = "donations"
)

// Catalog holds the schema of every record kind. It is built once at startup
// and read-only afterwards.
type Catalog struct {
	schemas map[string]*moneyfield.Schema
	kinds   []string
}

// NewCatalog builds the record kinds. Currency choices and the default
// currency of translator fees come from settings.
func NewCatalog(settings config.Settings) (*Catalog, error) {
	books, err := moneyfield.NewSchemaBuilder(KindBooks).
		Column(moneyfield.CharColumn("title", 200).AllowBlank().WithDefault("")).
		Money(moneyfield.Must("price",
			moneyfield.WithMaxDigits(8),
			moneyfield.WithDecimalPlaces(2),
			moneyfield.WithFixedCurrency("EUR"),
		)).
		Build()
	if err != nil {
		return nil, fmt.Errorf("building %s schema: %w", KindBooks, err)
	}

	fee, err := moneyfield.New("fee",
		moneyfield.WithMaxDigits(8),
		moneyfield.WithDecimalPlaces(2),
		moneyfield.WithSettings(settings),
	)
	if err != nil {
		return nil, fmt.Errorf("building %s schema: %w", KindTranslators, err)
	}
	translators, err := moneyfield.NewSchemaBuilder(KindTranslators).
		Column(moneyfield.CharColumn("name", 100)).
		Money(fee).
		Build()
	if err != nil {
		return nil, fmt.Errorf("building %s schema: %w", KindTranslators, err)
	}

	donations, err := moneyfield.NewSchemaBuilder(KindDonations).
		Column(moneyfield.CharColumn("donor", 100).Nullable().AllowBlank()).
		Money(moneyfield.Must("amount",
			moneyfield.WithMaxDigits(10),
			moneyfield.WithDecimalPlaces(2),
			moneyfield.WithDefault(money.New(decimal.RequireFromString("5.00"), "EUR")),
		)).
		Build()
	if err != nil {
		return nil, fmt.Errorf("building %s schema: %w", KindDonations, err)
	}

	return &Catalog{
		schemas: map[string]*moneyfield.Schema{
			KindBooks:       books,
			KindTranslators: translators,
			KindDonations:   donations,
		},
		kinds: []string{KindBooks, KindTranslators, KindDonations},
	}, nil
}

// Schema returns the schema of kind.
func (c *Catalog) Schema(kind string) (*moneyfield.Schema, error) {
	s, ok := c.schemas[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown record kind %q", apperrors.ErrNotFound, kind)
	}
	return s, nil
}

// Kinds returns the record kinds in a stable order.
func (c *Catalog) Kinds() []string {
	return slices.Clone(c.kinds)
}
