package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ndewijer/crypto-trade-simulator/internal/database"
	"github.com/ndewijer/crypto-trade-simulator/internal/repository"
	"github.com/ndewijer/crypto-trade-simulator/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db          *sql.DB
	balanceRepo *repository.BalanceRepository
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB, balanceRepo *repository.BalanceRepository) *SystemService {
	return &SystemService{
		db:          db,
		balanceRepo: balanceRepo,
	}
}

// CheckHealth reports whether the store is reachable and holds a balance.
func (s *SystemService) CheckHealth(ctx context.Context) error {
	if err := database.HealthCheck(s.db); err != nil {
		return storageError("database unreachable", err)
	}
	if _, err := s.balanceRepo.Get(ctx); err != nil {
		return storageError("balance unreadable", err)
	}
	return nil
}

// CheckVersion returns the version the binary was built with.
func (s *SystemService) CheckVersion() string {
	return version.Version
}

// SchemaVersion returns the highest applied migration.
func (s *SystemService) SchemaVersion(ctx context.Context) (int64, error) {
	v, err := database.SchemaVersion(ctx, s.db)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return v, nil
}
