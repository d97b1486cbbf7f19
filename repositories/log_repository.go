package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/blogem/proof-calc/models"
)

// ErrDuplicateEntry is returned when an entry ID is appended twice
var ErrDuplicateEntry = errors.New("log entry already exists")

// LogRepository is the append-only calculation log. Listings are always in
// insertion order; entries are never updated, only cleared.
type LogRepository interface {
	Append(ctx context.Context, entry *models.LogEntry) error
	ListAll(ctx context.Context) ([]models.LogEntry, error)
	ListByOperator(ctx context.Context, operatorID string) ([]models.LogEntry, error)
	ClearAll(ctx context.Context) (int64, error)
	ClearByOperator(ctx context.Context, operatorID string) (int64, error)
}

// logRepository implements LogRepository on SQLite
type logRepository struct {
	db *sql.DB
}

// NewLogRepository creates a new SQLite log repository
func NewLogRepository(db *sql.DB) LogRepository {
	return &logRepository{db: db}
}

// Append inserts an entry; seq assigns the insertion order
func (r *logRepository) Append(ctx context.Context, entry *models.LogEntry) error {
	query := `
		INSERT INTO calculation_log (id, timestamp, mode, operator_id, inputs, outputs)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	inputs, err := json.Marshal(entry.Inputs)
	if err != nil {
		return fmt.Errorf("failed to encode log inputs: %w", err)
	}
	outputs, err := json.Marshal(entry.Outputs)
	if err != nil {
		return fmt.Errorf("failed to encode log outputs: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query,
		entry.ID,
		models.FormatTimestamp(entry.Timestamp),
		string(entry.Mode),
		entry.OperatorID,
		string(inputs),
		string(outputs),
	)
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return fmt.Errorf("%w: %s", ErrDuplicateEntry, entry.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to append log entry: %w", err)
	}

	return nil
}

// ListAll retrieves every entry
func (r *logRepository) ListAll(ctx context.Context) ([]models.LogEntry, error) {
	query := `
		SELECT id, timestamp, mode, operator_id, inputs, outputs
		FROM calculation_log
		ORDER BY seq ASC
	`
	return r.query(ctx, query)
}

// ListByOperator retrieves the entries recorded for one operator
func (r *logRepository) ListByOperator(ctx context.Context, operatorID string) ([]models.LogEntry, error) {
	query := `
		SELECT id, timestamp, mode, operator_id, inputs, outputs
		FROM calculation_log
		WHERE operator_id = ?
		ORDER BY seq ASC
	`
	return r.query(ctx, query, operatorID)
}

// ClearAll deletes every entry
func (r *logRepository) ClearAll(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM calculation_log")
	if err != nil {
		return 0, fmt.Errorf("failed to clear log: %w", err)
	}
	return result.RowsAffected()
}

// ClearByOperator deletes one operator's entries
func (r *logRepository) ClearByOperator(ctx context.Context, operatorID string) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM calculation_log WHERE operator_id = ?", operatorID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear log for operator: %w", err)
	}
	return result.RowsAffected()
}

func (r *logRepository) query(ctx context.Context, query string, args ...any) ([]models.LogEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query log entries: %w", err)
	}
	defer rows.Close()

	entries := []models.LogEntry{}
	for rows.Next() {
		var (
			entry           models.LogEntry
			timestamp, mode string
			inputs, outputs string
		)

		err := rows.Scan(
			&entry.ID,
			&timestamp,
			&mode,
			&entry.OperatorID,
			&inputs,
			&outputs,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan log entry: %w", err)
		}

		if entry.Timestamp, err = models.ParseTimestamp(timestamp); err != nil {
			return nil, fmt.Errorf("log entry %s has bad timestamp: %w", entry.ID, err)
		}
		if entry.Mode, err = models.ParseMode(mode); err != nil {
			return nil, fmt.Errorf("log entry %s: %w", entry.ID, err)
		}
		if err := json.Unmarshal([]byte(inputs), &entry.Inputs); err != nil {
			return nil, fmt.Errorf("log entry %s has bad inputs: %w", entry.ID, err)
		}
		if err := json.Unmarshal([]byte(outputs), &entry.Outputs); err != nil {
			return nil, fmt.Errorf("log entry %s has bad outputs: %w", entry.ID, err)
		}

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating log entries: %w", err)
	}

	return entries, nil
}
