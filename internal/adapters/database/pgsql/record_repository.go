package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/SscSPs/moneyfield/internal/apperrors"
	"github.com/SscSPs/moneyfield/internal/core/domain"
	portsrepo "github.com/SscSPs/moneyfield/internal/core/ports/repositories"
	"github.com/SscSPs/moneyfield/internal/utils/pagination"
	"github.com/SscSPs/moneyfield/pkg/moneyfield"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

const uniqueViolation = "23505"

// RecordRepository stores records of any schema in the table named after it.
type RecordRepository struct {
	db *sql.DB
}

// NewRecordRepository creates a new repository for record data.
func NewRecordRepository(db *sql.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

// NewRepositoryProvider wires every repository over one database handle.
func NewRepositoryProvider(db *sql.DB) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		RecordRepo: NewRecordRepository(db),
	}
}

var _ portsrepo.RecordRepositoryFacade = (*RecordRepository)(nil)

// SaveRecord inserts a record or updates all of its columns when the ID exists.
// Records without an ID get a fresh UUID.
func (r *RecordRepository) SaveRecord(ctx context.Context, rec *moneyfield.Record) error {
	schema := rec.Schema()
	if rec.ID() == "" {
		rec.SetID(uuid.NewString())
	}

	names := schema.ColumnNames()
	placeholders := make([]string, len(names))
	updates := make([]string, 0, len(names)-1)
	args := make([]any, len(names))
	for i, name := range names {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		v, _ := rec.Get(name)
		args[i] = v
		if name != moneyfield.IDColumn {
			col := quote(name)
			updates = append(updates, col+" = EXCLUDED."+col)
		}
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES (%s)
		ON CONFLICT (%s) DO UPDATE SET %s;`,
		quote(schema.Table()),
		quoteAll(names),
		strings.Join(placeholders, ", "),
		quote(moneyfield.IDColumn),
		strings.Join(updates, ", "),
	)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: %s record %s: %s", apperrors.ErrDuplicate, schema.Table(), rec.ID(), pgErr.Detail)
		}
		return fmt.Errorf("failed to save %s record %s: %w", schema.Table(), rec.ID(), err)
	}
	return nil
}

// FindRecordByID retrieves a record by its primary key.
func (r *RecordRepository) FindRecordByID(ctx context.Context, schema *moneyfield.Schema, id string) (*moneyfield.Record, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1;`,
		quoteAll(schema.ColumnNames()), quote(schema.Table()), quote(moneyfield.IDColumn))

	rec, err := scanRecord(schema, r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s record %s", apperrors.ErrNotFound, schema.Table(), id)
		}
		return nil, fmt.Errorf("failed to find %s record %s: %w", schema.Table(), id, err)
	}
	return rec, nil
}

// ListRecords returns records ordered by ID, starting after the record the page
// token points at.
func (r *RecordRepository) ListRecords(ctx context.Context, schema *moneyfield.Schema, params domain.ListRecordsParams) (*domain.RecordPage, error) {
	params = params.Normalize()

	var (
		query string
		args  []any
	)
	cols, table, id := quoteAll(schema.ColumnNames()), quote(schema.Table()), quote(moneyfield.IDColumn)
	if params.NextToken != nil && *params.NextToken != "" {
		lastID, err := pagination.DecodeRecordToken(*params.NextToken, schema.Table())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		query = fmt.Sprintf(`SELECT %s FROM %s WHERE %s > $1 ORDER BY %s LIMIT $2;`, cols, table, id, id)
		args = []any{lastID, params.Limit + 1}
	} else {
		query = fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s LIMIT $1;`, cols, table, id)
		args = []any{params.Limit + 1}
	}

	records, err := r.queryRecords(ctx, schema, query, args...)
	if err != nil {
		return nil, err
	}

	page := &domain.RecordPage{Records: records}
	if len(records) > params.Limit {
		page.Records = records[:params.Limit]
		token := pagination.EncodeRecordToken(schema.Table(), page.Records[params.Limit-1].ID())
		page.NextToken = &token
	}
	return page, nil
}

// FilterRecords returns the records whose columns equal the given values. A nil
// value matches SQL NULL.
func (r *RecordRepository) FilterRecords(ctx context.Context, schema *moneyfield.Schema, filters map[string]any) ([]*moneyfield.Record, error) {
	cleaned, err := schema.CleanFilter(filters)
	if err != nil {
		if errors.Is(err, moneyfield.ErrFieldConfig) {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrFieldError, err)
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	var (
		conds []string
		args  []any
	)
	for _, name := range slices.Sorted(maps.Keys(cleaned)) {
		if cleaned[name] == nil {
			conds = append(conds, quote(name)+" IS NULL")
			continue
		}
		args = append(args, cleaned[name])
		conds = append(conds, fmt.Sprintf("%s = $%d", quote(name), len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM %s`, quoteAll(schema.ColumnNames()), quote(schema.Table()))
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY %s;", quote(moneyfield.IDColumn))

	return r.queryRecords(ctx, schema, query, args...)
}

func (r *RecordRepository) queryRecords(ctx context.Context, schema *moneyfield.Schema, query string, args ...any) ([]*moneyfield.Record, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s records: %w", schema.Table(), err)
	}
	defer rows.Close()

	records := []*moneyfield.Record{}
	for rows.Next() {
		rec, err := scanRecord(schema, rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s record: %w", schema.Table(), err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s records: %w", schema.Table(), err)
	}
	return records, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanRecord reads one row in schema column order. SQL NULL leaves the column
// unset, so a money attribute with a NULL sub-column reads as missing.
func scanRecord(schema *moneyfield.Schema, row rowScanner) (*moneyfield.Record, error) {
	columns := schema.Columns()
	dest := make([]any, len(columns))
	for i, c := range columns {
		if c.Kind == moneyfield.KindDecimal {
			dest[i] = &decimal.NullDecimal{}
		} else {
			dest[i] = &sql.NullString{}
		}
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	rec, err := schema.NewRecord(nil)
	if err != nil {
		return nil, err
	}
	for i, c := range columns {
		var v any
		switch d := dest[i].(type) {
		case *decimal.NullDecimal:
			v = *d
		case *sql.NullString:
			v = *d
		}
		if err := rec.Set(c.Name, v); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

func quote(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func quoteAll(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = quote(n)
	}
	return strings.Join(quoted, ", ")
}
