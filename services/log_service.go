package services

import (
	"context"
	"fmt"

	"github.com/blogem/proof-calc/models"
	"github.com/blogem/proof-calc/repositories"
)

// LogService interface defines access to the calculation log
type LogService interface {
	List(ctx context.Context, query models.LogQuery) ([]models.LogEntry, error)
	Clear(ctx context.Context, operatorID string, all bool) (int64, error)
}

// logService implements LogService interface
type logService struct {
	logRepo repositories.LogRepository
}

// NewLogService creates a new log service
func NewLogService(logRepo repositories.LogRepository) LogService {
	return &logService{logRepo: logRepo}
}

// List returns the entries selected by query, ordered and limited as it asks
func (s *logService) List(ctx context.Context, query models.LogQuery) ([]models.LogEntry, error) {
	if query.Limit < 0 {
		return nil, fmt.Errorf("invalid log limit: %d", query.Limit)
	}

	var (
		entries []models.LogEntry
		err     error
	)
	if query.All {
		entries, err = s.logRepo.ListAll(ctx)
	} else {
		entries, err = s.logRepo.ListByOperator(ctx, query.OperatorID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list log entries: %w", err)
	}

	return query.Apply(entries), nil
}

// Clear removes every entry when all is set, otherwise only operatorID's entries
func (s *logService) Clear(ctx context.Context, operatorID string, all bool) (int64, error) {
	var (
		removed int64
		err     error
	)
	if all {
		removed, err = s.logRepo.ClearAll(ctx)
	} else {
		removed, err = s.logRepo.ClearByOperator(ctx, operatorID)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to clear log: %w", err)
	}
	return removed, nil
}
