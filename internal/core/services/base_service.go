package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/moneyfield/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct{}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		// Return a default logger if not found in context
		return slog.Default()
	}
	return logger
}

// RecordLogger returns the request logger scoped to a record kind and, when
// recordID is not empty, to one record of it.
func (s *BaseService) RecordLogger(ctx context.Context, kind, recordID string) *slog.Logger {
	logger := s.GetLogger(ctx).With(slog.String("kind", kind))
	if recordID != "" {
		logger = logger.With(slog.String("record_id", recordID))
	}
	return logger
}

// LogError logs an error about records of kind, or about recordID if set.
func (s *BaseService) LogError(ctx context.Context, err error, kind, recordID, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.RecordLogger(ctx, kind, recordID).Error(msg, args...)
}

// LogInfo logs an info message about records of kind, or about recordID if set.
func (s *BaseService) LogInfo(ctx context.Context, kind, recordID, msg string, keyvals ...any) {
	s.RecordLogger(ctx, kind, recordID).Info(msg, keyvals...)
}

// LogDebug logs a debug message about records of kind, or about recordID if set.
func (s *BaseService) LogDebug(ctx context.Context, kind, recordID, msg string, keyvals ...any) {
	s.RecordLogger(ctx, kind, recordID).Debug(msg, keyvals...)
}
