package services

import (
	"context"
	"net/url"

	"github.com/SscSPs/moneyfield/internal/core/domain"
	"github.com/SscSPs/moneyfield/pkg/moneyfield"
)

// RecordReaderSvc defines read operations for records
type RecordReaderSvc interface {
	// Kinds lists the record kinds served.
	Kinds(ctx context.Context) []string

	// GetRecord retrieves a specific record by its ID.
	GetRecord(ctx context.Context, kind, id string) (*moneyfield.Record, error)

	// ListRecords retrieves a page of records of kind.
	ListRecords(ctx context.Context, kind string, params domain.ListRecordsParams) (*domain.RecordPage, error)

	// FilterRecords retrieves records matching equality filters on columns.
	FilterRecords(ctx context.Context, kind string, filters map[string]any) ([]*moneyfield.Record, error)

	// GetForm returns the model form of kind, filled from the record id when id is set.
	GetForm(ctx context.Context, kind, id string) (*domain.RecordForm, error)
}

// RecordWriterSvc defines write operations for records
type RecordWriterSvc interface {
	// CreateRecord cleans submitted form data into a new record and persists it.
	CreateRecord(ctx context.Context, kind string, data url.Values, creatorUserID string) (*moneyfield.Record, error)

	// UpdateRecord cleans submitted form data into an existing record and persists it.
	UpdateRecord(ctx context.Context, kind, id string, data url.Values, updaterUserID string) (*moneyfield.Record, error)
}

// RecordSvcFacade combines all record-related service interfaces
type RecordSvcFacade interface {
	RecordReaderSvc
	RecordWriterSvc
}
