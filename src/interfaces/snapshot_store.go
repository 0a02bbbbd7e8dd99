package interfaces

import "github.com/arbstatistix/financial-engineering/src/models"

// -----------------------------------------------------------------------------
// ISnapshotStore defines the contract for persisting flattened configurations.
// -----------------------------------------------------------------------------

type ISnapshotStore interface {

	// -----------------------------------------------------------------------------

	// Initialize opens the connection and creates missing tables.
	Initialize() error

	// -----------------------------------------------------------------------------

	// SaveSnapshot stores one snapshot and its entries atomically.
	SaveSnapshot(snap models.MSnapshot) error

	// -----------------------------------------------------------------------------

	// LatestSnapshot returns the most recent snapshot of source, or nil when
	// none was recorded.
	LatestSnapshot(source string) (*models.MSnapshot, error)

	// -----------------------------------------------------------------------------

	// PruneSnapshots keeps only the newest keep snapshots of source.
	PruneSnapshots(source string, keep int) error

	// -----------------------------------------------------------------------------

	// Close the database connection
	Close() error
}
