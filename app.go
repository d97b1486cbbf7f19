package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/blogem/proof-calc/config"
	"github.com/blogem/proof-calc/database"
	"github.com/blogem/proof-calc/prooftable"
	"github.com/blogem/proof-calc/repositories"
)

// openRepositories opens the log store selected by LOG_STORE. The returned func
// releases it.
func openRepositories(cfg *config.Config, logger *zap.Logger) (*repositories.Repositories, func() error, error) {
	if cfg.LogStore == config.StoreMemory {
		logger.Info("using in-memory calculation log")
		return repositories.NewMemoryRepositories(), func() error { return nil }, nil
	}

	db, applied, err := database.InitializeDatabase(cfg.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	for _, name := range applied {
		logger.Info("applied migration", zap.String("migration", name))
	}

	return repositories.NewRepositories(db), db.Close, nil
}

// loadTable reads the proof table named by PROOF_TABLE_SOURCE, bounded by
// TABLE_LOAD_TIMEOUT
func loadTable(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*prooftable.Table, error) {
	if cfg.ProofTableSource == "" {
		return nil, errors.New("PROOF_TABLE_SOURCE is not set")
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.TableLoadTimeout)
	defer cancel()

	client := &http.Client{Timeout: cfg.TableLoadTimeout}
	start := time.Now()
	table, err := prooftable.Open(ctx, cfg.ProofTableSource, client)
	if err != nil {
		return nil, err
	}

	keys := table.Keys()
	logger.Info("proof table loaded",
		zap.String("source", cfg.ProofTableSource),
		zap.Int("entries", table.Len()),
		zap.Stringer("lowest_proof", keys[0]),
		zap.Stringer("highest_proof", keys[len(keys)-1]),
		zap.Duration("took", time.Since(start)),
	)
	return table, nil
}
