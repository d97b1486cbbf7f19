package repositories

import (
	"context"
	"fmt"
	"sync"

	"github.com/blogem/proof-calc/models"
)

// memoryLogRepository keeps the log in process memory. Appends hold the write
// lock, so concurrent callers are serialized in arrival order; readers get a copy
// taken under the read lock and never see a half-written entry.
type memoryLogRepository struct {
	mu      sync.RWMutex
	entries []models.LogEntry
	ids     map[string]struct{}
}

// NewMemoryLogRepository creates an empty in-memory log
func NewMemoryLogRepository() LogRepository {
	return &memoryLogRepository{ids: make(map[string]struct{})}
}

func (r *memoryLogRepository) Append(ctx context.Context, entry *models.LogEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.ids[entry.ID]; dup {
		return fmt.Errorf("%w: %s", ErrDuplicateEntry, entry.ID)
	}
	r.entries = append(r.entries, cloneEntry(*entry))
	r.ids[entry.ID] = struct{}{}
	return nil
}

func (r *memoryLogRepository) ListAll(ctx context.Context) ([]models.LogEntry, error) {
	return r.list(ctx, func(models.LogEntry) bool { return true })
}

func (r *memoryLogRepository) ListByOperator(ctx context.Context, operatorID string) ([]models.LogEntry, error) {
	return r.list(ctx, func(e models.LogEntry) bool { return e.Owned(operatorID) })
}

func (r *memoryLogRepository) ClearAll(ctx context.Context) (int64, error) {
	return r.clear(ctx, func(models.LogEntry) bool { return true })
}

func (r *memoryLogRepository) ClearByOperator(ctx context.Context, operatorID string) (int64, error) {
	return r.clear(ctx, func(e models.LogEntry) bool { return e.Owned(operatorID) })
}

func (r *memoryLogRepository) list(ctx context.Context, keep func(models.LogEntry) bool) ([]models.LogEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.LogEntry{}
	for _, e := range r.entries {
		if keep(e) {
			out = append(out, cloneEntry(e))
		}
	}
	return out, nil
}

func (r *memoryLogRepository) clear(ctx context.Context, drop func(models.LogEntry) bool) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.entries[:0]
	var removed int64
	for _, e := range r.entries {
		if drop(e) {
			delete(r.ids, e.ID)
			removed++
			continue
		}
		kept = append(kept, e)
	}
	r.entries = kept
	return removed, nil
}

// cloneEntry copies the pointer fields so stored entries cannot be changed
// through a caller's copy
func cloneEntry(e models.LogEntry) models.LogEntry {
	if e.Outputs.NewWeight != nil {
		v := *e.Outputs.NewWeight
		e.Outputs.NewWeight = &v
	}
	if e.Outputs.TargetConversionFactor != nil {
		v := *e.Outputs.TargetConversionFactor
		e.Outputs.TargetConversionFactor = &v
	}
	return e
}
