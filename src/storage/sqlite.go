package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/arbstatistix/financial-engineering/src/logger"
	"github.com/arbstatistix/financial-engineering/src/models"

	_ "modernc.org/sqlite"
)

// -----------------------------------------------------------------------------

type SQLiteStore struct {
	DSN    string
	DB     *sql.DB
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewSQLiteStore(dsn string, log *logger.Logger) (*SQLiteStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("sqlite store needs a database path")
	}
	return &SQLiteStore{
		DSN:    dsn,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteStore) Initialize() error {
	db, err := sql.Open("sqlite", d.DSN)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return err
	}

	// single writer; also keeps ":memory:" on one connection
	db.SetMaxOpenConns(1)
	d.DB = db

	// PRAGMA optimizations
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		d.Logger.Warning("Failed to set WAL mode: %v", err)
	}
	if _, err := db.Exec("PRAGMA synchronous = NORMAL;"); err != nil {
		d.Logger.Warning("Failed to set synchronous mode: %v", err)
	}

	return d.createTables()
}

// -----------------------------------------------------------------------------

func (d *SQLiteStore) createTables() error {
	query := `
		CREATE TABLE IF NOT EXISTS config_snapshots (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			loaded_at INTEGER NOT NULL
		);
	`
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create config_snapshots: %w", err)
	}

	query = `
		CREATE TABLE IF NOT EXISTS snapshot_entries (
			snapshot_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			key TEXT NOT NULL,
			value TEXT NOT NULL,
			PRIMARY KEY (snapshot_id, position)
		);
	`
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create snapshot_entries: %w", err)
	}

	if _, err := d.DB.Exec(`CREATE INDEX IF NOT EXISTS idx_snapshots_source ON config_snapshots (source, loaded_at)`); err != nil {
		return fmt.Errorf("failed to create snapshot index: %w", err)
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteStore) SaveSnapshot(snap models.MSnapshot) error {
	tx, err := d.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO config_snapshots (id, source, loaded_at) VALUES (?, ?, ?)`,
		snap.ID, snap.Source, snap.LoadedAt.UnixNano(),
	); err != nil {
		return fmt.Errorf("failed to insert snapshot %s: %w", snap.ID, err)
	}

	stmt, err := tx.Prepare(`INSERT INTO snapshot_entries (snapshot_id, position, key, value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, e := range snap.Entries {
		if _, err := stmt.Exec(snap.ID, i, e.Key, e.Value); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// -----------------------------------------------------------------------------

func (d *SQLiteStore) LatestSnapshot(source string) (*models.MSnapshot, error) {
	snap := &models.MSnapshot{Source: source}
	var loadedAt int64

	row := d.DB.QueryRow(
		`SELECT id, loaded_at FROM config_snapshots WHERE source = ? ORDER BY loaded_at DESC LIMIT 1`,
		source,
	)
	if err := row.Scan(&snap.ID, &loadedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	snap.LoadedAt = time.Unix(0, loadedAt).UTC()

	rows, err := d.DB.Query(`SELECT key, value FROM snapshot_entries WHERE snapshot_id = ? ORDER BY position`, snap.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snap.Entries = []models.MFlatEntry{}
	for rows.Next() {
		var e models.MFlatEntry
		if err := rows.Scan(&e.Key, &e.Value); err != nil {
			return nil, err
		}
		snap.Entries = append(snap.Entries, e)
	}
	return snap, rows.Err()
}

// -----------------------------------------------------------------------------

func (d *SQLiteStore) PruneSnapshots(source string, keep int) error {
	if keep < 0 {
		keep = 0
	}

	tx, err := d.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stale := `
		SELECT id FROM config_snapshots WHERE source = ?
		ORDER BY loaded_at DESC LIMIT -1 OFFSET ?
	`
	if _, err := tx.Exec(`DELETE FROM snapshot_entries WHERE snapshot_id IN (`+stale+`)`, source, keep); err != nil {
		return fmt.Errorf("failed to prune snapshot entries: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM config_snapshots WHERE id IN (`+stale+`)`, source, keep); err != nil {
		return fmt.Errorf("failed to prune snapshots: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	d.Logger.Info("Pruned snapshots of %s down to %d", source, keep)
	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteStore) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
