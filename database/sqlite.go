package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// OpenDB opens the SQLite database and checks the connection
func OpenDB(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// One writer at a time keeps appends strictly ordered
	db.SetMaxOpenConns(1)

	return db, nil
}

// InitializeDatabase opens the database connection and runs migrations.
// It returns the filenames of the migrations that were applied.
func InitializeDatabase(dataSourceName string) (*sql.DB, []string, error) {
	db, err := OpenDB(dataSourceName)
	if err != nil {
		return nil, nil, err
	}

	ran, err := RunMigrations(db)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, ran, nil
}
