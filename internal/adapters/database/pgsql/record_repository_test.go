package pgsql

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/SscSPs/moneyfield/internal/apperrors"
	"github.com/SscSPs/moneyfield/internal/core/domain"
	"github.com/SscSPs/moneyfield/internal/utils/pagination"
	"github.com/SscSPs/moneyfield/pkg/config"
	"github.com/SscSPs/moneyfield/pkg/money"
	"github.com/SscSPs/moneyfield/pkg/moneyfield"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*RecordRepository, sqlmock.Sqlmock, *domain.Catalog) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	settings := config.Settings{
		CurrencyChoices: config.Choices("EUR", "USD", "CNY"),
		CurrencyDefault: "USD",
	}
	catalog, err := domain.NewCatalog(settings)
	require.NoError(t, err)
	return NewRecordRepository(db), mock, catalog
}

func mustSchema(t *testing.T, c *domain.Catalog, kind string) *moneyfield.Schema {
	t.Helper()
	s, err := c.Schema(kind)
	require.NoError(t, err)
	return s
}

func TestSaveRecord_InsertAssignsID(t *testing.T) {
	repo, mock, catalog := newTestRepo(t)
	books := mustSchema(t, catalog, domain.KindBooks)

	rec := books.MustNewRecord(map[string]any{"title": "Dune"})
	require.NoError(t, rec.SetMoney("price", money.Must("9.99", "EUR")))

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "books" ("id", "title", "price_amount")`)).
		WithArgs(sqlmock.AnyArg(), "Dune", "9.99").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SaveRecord(context.Background(), rec)
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveRecord_UpsertKeepsIDAndWritesNull(t *testing.T) {
	repo, mock, catalog := newTestRepo(t)
	donations := mustSchema(t, catalog, domain.KindDonations)

	rec := donations.MustNewRecord(map[string]any{"id": "d1"})

	mock.ExpectExec(regexp.QuoteMeta(`ON CONFLICT ("id") DO UPDATE SET "donor" = EXCLUDED."donor", "amount_amount" = EXCLUDED."amount_amount", "amount_currency" = EXCLUDED."amount_currency"`)).
		WithArgs("d1", nil, "5", "EUR").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SaveRecord(context.Background(), rec))
	assert.Equal(t, "d1", rec.ID())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveRecord_UniqueViolation(t *testing.T) {
	repo, mock, catalog := newTestRepo(t)
	books := mustSchema(t, catalog, domain.KindBooks)
	rec := books.MustNewRecord(map[string]any{"id": "b1", "title": "Dune", "price_amount": "1.00"})

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "books"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", Detail: "Key (title) already exists."})

	err := repo.SaveRecord(context.Background(), rec)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindRecordByID(t *testing.T) {
	repo, mock, catalog := newTestRepo(t)
	translators := mustSchema(t, catalog, domain.KindTranslators)

	rows := sqlmock.NewRows([]string{"id", "name", "fee_amount", "fee_currency"}).
		AddRow("t1", "Ann", "12.50", "CNY")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id", "name", "fee_amount", "fee_currency" FROM "translators" WHERE "id" = $1`)).
		WithArgs("t1").
		WillReturnRows(rows)

	rec, err := repo.FindRecordByID(context.Background(), translators, "t1")
	require.NoError(t, err)
	assert.Equal(t, "t1", rec.ID())

	fee, err := rec.Money("fee")
	require.NoError(t, err)
	require.NotNil(t, fee)
	assert.True(t, money.Must("12.5", "CNY").Equal(*fee))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindRecordByID_NullSubColumnReadsAsMissing(t *testing.T) {
	repo, mock, catalog := newTestRepo(t)
	translators := mustSchema(t, catalog, domain.KindTranslators)

	rows := sqlmock.NewRows([]string{"id", "name", "fee_amount", "fee_currency"}).
		AddRow("t2", "Bob", "3.00", nil)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM "translators" WHERE "id" = $1`)).
		WithArgs("t2").
		WillReturnRows(rows)

	rec, err := repo.FindRecordByID(context.Background(), translators, "t2")
	require.NoError(t, err)

	fee, err := rec.Money("fee")
	require.NoError(t, err)
	assert.Nil(t, fee)

	_, ok := rec.Get("fee_currency")
	assert.False(t, ok, "NULL must not be replaced by the column default")
}

func TestFindRecordByID_NotFound(t *testing.T) {
	repo, mock, catalog := newTestRepo(t)
	books := mustSchema(t, catalog, domain.KindBooks)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM "books" WHERE "id" = $1`)).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindRecordByID(context.Background(), books, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListRecords_Pagination(t *testing.T) {
	repo, mock, catalog := newTestRepo(t)
	books := mustSchema(t, catalog, domain.KindBooks)
	cols := []string{"id", "title", "price_amount"}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id", "title", "price_amount" FROM "books" ORDER BY "id" LIMIT $1`)).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("a", "A", "1.00").
			AddRow("b", "B", "2.00").
			AddRow("c", "C", "3.00"))

	page, err := repo.ListRecords(context.Background(), books, domain.ListRecordsParams{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Records, 2)
	require.NotNil(t, page.NextToken)
	assert.Equal(t, pagination.EncodeRecordToken("books", "b"), *page.NextToken)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM "books" WHERE "id" > $1 ORDER BY "id" LIMIT $2`)).
		WithArgs("b", 3).
		WillReturnRows(sqlmock.NewRows(cols).AddRow("c", "C", "3.00"))

	page, err = repo.ListRecords(context.Background(), books, domain.ListRecordsParams{Limit: 2, NextToken: page.NextToken})
	require.NoError(t, err)
	require.Len(t, page.Records, 1)
	assert.Nil(t, page.NextToken)

	price, err := page.Records[0].Money("price")
	require.NoError(t, err)
	assert.True(t, money.Must("3", "EUR").Equal(*price))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRecords_TokenOfOtherKind(t *testing.T) {
	repo, _, catalog := newTestRepo(t)
	books := mustSchema(t, catalog, domain.KindBooks)

	token := pagination.EncodeRecordToken("translators", "x")
	_, err := repo.ListRecords(context.Background(), books, domain.ListRecordsParams{NextToken: &token})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestFilterRecords_BySubColumns(t *testing.T) {
	repo, mock, catalog := newTestRepo(t)
	translators := mustSchema(t, catalog, domain.KindTranslators)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM "translators" WHERE "fee_amount" = $1 AND "fee_currency" = $2 ORDER BY "id"`)).
		WithArgs(sqlmock.AnyArg(), "USD").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "fee_amount", "fee_currency"}).
			AddRow("t1", "Ann", "12.50", "USD"))

	records, err := repo.FilterRecords(context.Background(), translators, map[string]any{
		"fee_amount":   "12.50",
		"fee_currency": "USD",
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Ann", records[0].Values()["name"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFilterRecords_NilMatchesNull(t *testing.T) {
	repo, mock, catalog := newTestRepo(t)
	donations := mustSchema(t, catalog, domain.KindDonations)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM "donations" WHERE "donor" IS NULL ORDER BY "id"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "donor", "amount_amount", "amount_currency"}))

	records, err := repo.FilterRecords(context.Background(), donations, map[string]any{"donor": nil})
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFilterRecords_ComposedValueRejected(t *testing.T) {
	repo, mock, catalog := newTestRepo(t)
	translators := mustSchema(t, catalog, domain.KindTranslators)

	_, err := repo.FilterRecords(context.Background(), translators, map[string]any{
		"fee": money.Must("12.50", "USD"),
	})
	assert.ErrorIs(t, err, apperrors.ErrFieldError)
	assert.Contains(t, err.Error(), "fee_amount / fee_currency")
	assert.NoError(t, mock.ExpectationsWereMet())
}
