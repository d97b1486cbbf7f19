package database

import (
	"path/filepath"
	"testing"
	"testing/fstest"
)

func TestInitializeDatabaseIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, ran, err := InitializeDatabase(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	if len(ran) == 0 {
		t.Error("Expected migrations to run on a new database")
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM calculation_log").Scan(&count); err != nil {
		t.Fatalf("Expected calculation_log table: %v", err)
	}
	db.Close()

	db, ran, err = InitializeDatabase(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen database: %v", err)
	}
	defer db.Close()
	if len(ran) != 0 {
		t.Errorf("Expected no pending migrations, got %v", ran)
	}
}

func TestLoadMigrationsSorted(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/002_b.sql": {Data: []byte("SELECT 2;")},
		"migrations/001_a.sql": {Data: []byte("SELECT 1;")},
		"migrations/notes.txt": {Data: []byte("ignored")},
	}

	migrations, err := loadMigrations(fsys)
	if err != nil {
		t.Fatalf("Failed to load migrations: %v", err)
	}
	if len(migrations) != 2 {
		t.Fatalf("Expected 2 migrations, got %d", len(migrations))
	}
	if migrations[0].Version != "001_a" || migrations[1].Version != "002_b" {
		t.Errorf("Expected sorted versions, got %s, %s", migrations[0].Version, migrations[1].Version)
	}

	if _, err := loadMigrations(fstest.MapFS{}); err == nil {
		t.Error("Expected error when no migrations exist")
	}
}
