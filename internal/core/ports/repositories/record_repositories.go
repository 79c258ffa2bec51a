package repositories

import (
	"context"

	"github.com/SscSPs/moneyfield/internal/core/domain"
	"github.com/SscSPs/moneyfield/pkg/moneyfield"
)

// RecordReader defines read operations for records of any schema.
type RecordReader interface {
	// FindRecordByID retrieves one record of schema by its primary key.
	FindRecordByID(ctx context.Context, schema *moneyfield.Schema, id string) (*moneyfield.Record, error)

	// ListRecords retrieves a page of records ordered by primary key.
	ListRecords(ctx context.Context, schema *moneyfield.Schema, params domain.ListRecordsParams) (*domain.RecordPage, error)

	// FilterRecords retrieves records whose columns equal the given values.
	// Filtering on a money attribute's logical name is rejected.
	FilterRecords(ctx context.Context, schema *moneyfield.Schema, filters map[string]any) ([]*moneyfield.Record, error)
}

// RecordWriter defines write operations for records.
type RecordWriter interface {
	// SaveRecord inserts or updates a record, assigning an ID when it has none.
	SaveRecord(ctx context.Context, rec *moneyfield.Record) error
}

// RecordRepositoryFacade combines all record-related repository interfaces
type RecordRepositoryFacade interface {
	RecordReader
	RecordWriter
}
