package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/SscSPs/moneyfield/internal/apperrors"
	"github.com/SscSPs/moneyfield/internal/core/domain"
	portsrepo "github.com/SscSPs/moneyfield/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/moneyfield/internal/core/ports/services"
	"github.com/SscSPs/moneyfield/pkg/moneyfield"
	"github.com/SscSPs/moneyfield/pkg/moneyform"
)

// recordService implements the RecordSvcFacade interface
type recordService struct {
	BaseService
	recordRepo  portsrepo.RecordRepositoryFacade
	catalog     *domain.Catalog
	formOptions map[string][]moneyform.FormOption
}

// RecordServiceOption is a functional option for configuring the record service
type RecordServiceOption func(*recordService)

// WithFormOptions restricts the model form used for kind, e.g. to exclude columns.
func WithFormOptions(kind string, opts ...moneyform.FormOption) RecordServiceOption {
	return func(s *recordService) {
		s.formOptions[kind] = append(s.formOptions[kind], opts...)
	}
}

// NewRecordService creates a new record service with the provided options
func NewRecordService(repo portsrepo.RecordRepositoryFacade, catalog *domain.Catalog, options ...RecordServiceOption) portssvc.RecordSvcFacade {
	svc := &recordService{
		recordRepo:  repo,
		catalog:     catalog,
		formOptions: map[string][]moneyform.FormOption{},
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure recordService implements the RecordSvcFacade interface
var _ portssvc.RecordSvcFacade = (*recordService)(nil)

func (s *recordService) Kinds(_ context.Context) []string {
	return s.catalog.Kinds()
}

func (s *recordService) CreateRecord(ctx context.Context, kind string, data url.Values, creatorUserID string) (*moneyfield.Record, error) {
	form, err := s.form(kind)
	if err != nil {
		return nil, err
	}

	rec, err := form.Schema().NewRecord(nil)
	if err != nil {
		s.LogError(ctx, err, kind, "", "Failed to initialise record")
		return nil, fmt.Errorf("failed to initialise %s record: %w", kind, err)
	}
	if err := form.Save(data, rec); err != nil {
		s.LogDebug(ctx, kind, "", "Record data rejected", slog.String("error", err.Error()))
		return nil, mapFormError(err)
	}

	if err := s.recordRepo.SaveRecord(ctx, rec); err != nil {
		s.LogError(ctx, err, kind, rec.ID(), "Failed to save record")
		return nil, err
	}

	s.LogInfo(ctx, kind, rec.ID(), "Record created", slog.String("user_id", creatorUserID))
	return rec, nil
}

func (s *recordService) UpdateRecord(ctx context.Context, kind, id string, data url.Values, updaterUserID string) (*moneyfield.Record, error) {
	form, err := s.form(kind)
	if err != nil {
		return nil, err
	}

	rec, err := s.recordRepo.FindRecordByID(ctx, form.Schema(), id)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, kind, id, "Failed to find record for update")
		}
		return nil, err
	}
	if err := form.Save(data, rec); err != nil {
		s.LogDebug(ctx, kind, id, "Record data rejected", slog.String("error", err.Error()))
		return nil, mapFormError(err)
	}

	if err := s.recordRepo.SaveRecord(ctx, rec); err != nil {
		s.LogError(ctx, err, kind, id, "Failed to save record")
		return nil, err
	}

	s.LogInfo(ctx, kind, id, "Record updated", slog.String("user_id", updaterUserID))
	return rec, nil
}

func (s *recordService) GetRecord(ctx context.Context, kind, id string) (*moneyfield.Record, error) {
	schema, err := s.catalog.Schema(kind)
	if err != nil {
		return nil, err
	}

	rec, err := s.recordRepo.FindRecordByID(ctx, schema, id)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, kind, id, "Failed to find record by ID")
		}
		return nil, err
	}

	s.LogDebug(ctx, kind, id, "Record retrieved successfully")
	return rec, nil
}

func (s *recordService) ListRecords(ctx context.Context, kind string, params domain.ListRecordsParams) (*domain.RecordPage, error) {
	schema, err := s.catalog.Schema(kind)
	if err != nil {
		return nil, err
	}

	page, err := s.recordRepo.ListRecords(ctx, schema, params.Normalize())
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, kind, "", "Failed to list records")
		}
		return nil, err
	}

	s.LogDebug(ctx, kind, "", "Records listed successfully", slog.Int("count", len(page.Records)))
	return page, nil
}

func (s *recordService) FilterRecords(ctx context.Context, kind string, filters map[string]any) ([]*moneyfield.Record, error) {
	schema, err := s.catalog.Schema(kind)
	if err != nil {
		return nil, err
	}

	records, err := s.recordRepo.FilterRecords(ctx, schema, filters)
	if err != nil {
		if !errors.Is(err, apperrors.ErrFieldError) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, kind, "", "Failed to filter records")
		}
		return nil, err
	}

	s.LogDebug(ctx, kind, "", "Records filtered successfully", slog.Int("count", len(records)))
	return records, nil
}

func (s *recordService) GetForm(ctx context.Context, kind, id string) (*domain.RecordForm, error) {
	form, err := s.form(kind)
	if err != nil {
		return nil, err
	}

	var rec *moneyfield.Record
	if id != "" {
		if rec, err = s.recordRepo.FindRecordByID(ctx, form.Schema(), id); err != nil {
			return nil, err
		}
	}

	initial, err := form.Initial(rec, nil)
	if err != nil {
		s.LogError(ctx, err, kind, id, "Failed to build form initial values")
		return nil, mapFormError(err)
	}

	return &domain.RecordForm{
		Kind:     kind,
		RecordID: id,
		Form:     form,
		Initial:  initial,
	}, nil
}

func (s *recordService) form(kind string) (*moneyform.ModelForm, error) {
	schema, err := s.catalog.Schema(kind)
	if err != nil {
		return nil, err
	}
	form, err := moneyform.NewModelForm(schema, s.formOptions[kind]...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFieldError, err)
	}
	return form, nil
}

// mapFormError wraps errors of the money packages in the application sentinels.
// The original error stays in the chain so callers can reach its field details.
func mapFormError(err error) error {
	switch {
	case errors.Is(err, moneyfield.ErrValidation), errors.Is(err, moneyfield.ErrInvalidType):
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	case errors.Is(err, moneyfield.ErrFieldConfig), errors.Is(err, moneyform.ErrModelForm):
		return fmt.Errorf("%w: %w", apperrors.ErrFieldError, err)
	default:
		return err
	}
}
