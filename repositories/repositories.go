package repositories

import (
	"database/sql"
)

// Repositories struct holds all repository interfaces
type Repositories struct {
	Log LogRepository
}

// NewRepositories creates the SQLite-backed repositories
func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Log: NewLogRepository(db),
	}
}

// NewMemoryRepositories creates repositories that live only for the process
func NewMemoryRepositories() *Repositories {
	return &Repositories{
		Log: NewMemoryLogRepository(),
	}
}
