package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/blogem/proof-calc/database"
	"github.com/blogem/proof-calc/models"
)

func setupTestDB(t *testing.T) *sql.DB {
	// Create a temporary database for testing
	dbPath := filepath.Join(t.TempDir(), "test.db")

	// Initialize test database using the actual migration system
	db, _, err := database.InitializeDatabase(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func float(v float64) *float64 { return &v }

func sampleEntries() []models.LogEntry {
	base := time.Date(2026, 10, 19, 8, 30, 0, 123456789, time.UTC)
	return []models.LogEntry{
		{
			ID:         "e1",
			Timestamp:  base,
			Mode:       models.ModeTop,
			OperatorID: "auth0|alice",
			Inputs:     models.LogInputs{Weight: "100", Proof: "80.620"},
			Outputs: models.LogOutputs{
				ConversionFactor: 0.62345,
				WaterToAdd:       59.38947638127153,
				NewWeight:        float(595.3082330198046),
			},
		},
		{
			ID:        "e2",
			Timestamp: base.Add(time.Second),
			Mode:      models.ModeBottom,
			Inputs:    models.LogInputs{DistWeight: "512.5", DistProof: "90.5"},
			Outputs: models.LogOutputs{
				ConversionFactor: 0.11566,
				WaterToAdd:       8.97766390419451,
			},
		},
		{
			ID:         "e3",
			Timestamp:  base.Add(2 * time.Second),
			Mode:       models.ModeVariable,
			OperatorID: "auth0|bob",
			Inputs:     models.LogInputs{Weight: "1000", CurrentProof: "177.726", TargetProof: "90.0"},
			Outputs: models.LogOutputs{
				ConversionFactor:       0.24716,
				TargetConversionFactor: float(0.11493),
				WaterToAdd:             177.98981337318914,
				NewWeight:              float(2484.435043532398),
			},
		},
		{
			ID:         "e4",
			Timestamp:  base.Add(3 * time.Second),
			Mode:       models.ModeTop,
			OperatorID: "auth0|alice",
			Inputs:     models.LogInputs{Weight: "1e-3", Proof: "80.100"},
			Outputs: models.LogOutputs{
				ConversionFactor: 0.30000000000000004,
				WaterToAdd:       1.0 / 3.0,
				NewWeight:        float(4.000000000000001),
			},
		},
	}
}

func testLogRepository(t *testing.T, repo LogRepository) {
	ctx := context.Background()
	entries := sampleEntries()

	for i := range entries {
		require.NoError(t, repo.Append(ctx, &entries[i]))
	}

	// full listing keeps insertion order and every field
	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(entries, all); diff != "" {
		t.Errorf("ListAll() mismatch (-want +got):\n%s", diff)
	}

	alice, err := repo.ListByOperator(ctx, "auth0|alice")
	require.NoError(t, err)
	require.Len(t, alice, 2)
	assert.Equal(t, "e1", alice[0].ID)
	assert.Equal(t, "e4", alice[1].ID)

	anonymous, err := repo.ListByOperator(ctx, "")
	require.NoError(t, err)
	require.Len(t, anonymous, 1)
	assert.Equal(t, "e2", anonymous[0].ID)

	err = repo.Append(ctx, &entries[0])
	assert.ErrorIs(t, err, ErrDuplicateEntry)

	// scoped clear leaves other operators alone
	removed, err := repo.ClearByOperator(ctx, "auth0|alice")
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	all, err = repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "e2", all[0].ID)
	assert.Equal(t, "e3", all[1].ID)

	removed, err = repo.ClearAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	all, err = repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.NotNil(t, all)
}

func TestSQLiteLogRepository(t *testing.T) {
	testLogRepository(t, NewLogRepository(setupTestDB(t)))
}

func TestMemoryLogRepository(t *testing.T) {
	testLogRepository(t, NewMemoryLogRepository())
}

func TestSQLiteLogRepositoryPersistsAcrossConnections(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "persist.db")
	ctx := context.Background()
	entries := sampleEntries()

	db, _, err := database.InitializeDatabase(dbPath)
	require.NoError(t, err)
	repo := NewLogRepository(db)
	for i := range entries {
		require.NoError(t, repo.Append(ctx, &entries[i]))
	}
	require.NoError(t, db.Close())

	db, _, err = database.InitializeDatabase(dbPath)
	require.NoError(t, err)
	defer db.Close()

	reloaded, err := NewLogRepository(db).ListAll(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(entries, reloaded); diff != "" {
		t.Errorf("reloaded entries mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoryLogRepositoryIsolatesCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryLogRepository()

	entry := sampleEntries()[0]
	require.NoError(t, repo.Append(ctx, &entry))

	*entry.Outputs.NewWeight = -1
	listed, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 595.3082330198046, *listed[0].Outputs.NewWeight)

	*listed[0].Outputs.NewWeight = -2
	again, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 595.3082330198046, *again[0].Outputs.NewWeight)
}

func TestMemoryLogRepositoryConcurrentAppends(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := context.Background()
	repo := NewMemoryLogRepository()

	const writers, perWriter = 8, 50
	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				entry := models.LogEntry{
					ID:         fmt.Sprintf("w%d-%03d", w, i),
					Mode:       models.ModeBottom,
					OperatorID: fmt.Sprintf("op%d", w),
				}
				assert.NoError(t, repo.Append(ctx, &entry))

				// readers run alongside the writers and only ever see whole entries
				snapshot, err := repo.ListAll(ctx)
				assert.NoError(t, err)
				for _, e := range snapshot {
					assert.NotEmpty(t, e.ID)
				}
			}
		}(w)
	}
	wg.Wait()

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, writers*perWriter)

	// each writer's own entries stay in the order it appended them
	for w := 0; w < writers; w++ {
		mine, err := repo.ListByOperator(ctx, fmt.Sprintf("op%d", w))
		require.NoError(t, err)
		require.Len(t, mine, perWriter)
		for i, e := range mine {
			assert.Equal(t, fmt.Sprintf("w%d-%03d", w, i), e.ID)
		}
	}
}

func TestMemoryLogRepositoryHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := NewMemoryLogRepository()
	assert.ErrorIs(t, repo.Append(ctx, &models.LogEntry{ID: "x"}), context.Canceled)
	_, err := repo.ListAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
