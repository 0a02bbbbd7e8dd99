package storage

import (
	"fmt"
	"time"

	"github.com/arbstatistix/financial-engineering/src/interfaces"
	"github.com/arbstatistix/financial-engineering/src/logger"
	"github.com/arbstatistix/financial-engineering/src/models"

	"github.com/google/uuid"
)

// Supported store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// -----------------------------------------------------------------------------

// NewSnapshotStore builds the store for driver. It does not connect; call
// Initialize on the result.
func NewSnapshotStore(driver, dsn string, log *logger.Logger) (interfaces.ISnapshotStore, error) {
	switch driver {
	case DriverSQLite:
		return NewSQLiteStore(dsn, log)
	case DriverPostgres:
		return NewPostgresStore(dsn, DefaultPostgresSchema, log)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", driver)
	}
}

// -----------------------------------------------------------------------------

// NewSnapshot stamps entries with a fresh id and the current time.
func NewSnapshot(source string, entries []models.MFlatEntry) models.MSnapshot {
	return models.MSnapshot{
		ID:       uuid.NewString(),
		Source:   source,
		LoadedAt: time.Now().UTC(),
		Entries:  entries,
	}
}
