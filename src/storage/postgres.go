package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/arbstatistix/financial-engineering/src/logger"
	"github.com/arbstatistix/financial-engineering/src/models"

	"github.com/lib/pq"
)

const DefaultPostgresSchema = "pipeline_config"

// -----------------------------------------------------------------------------

type PostgresStore struct {
	DSN    string
	DB     *sql.DB
	Schema string
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewPostgresStore(dsn, schema string, log *logger.Logger) (*PostgresStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres store needs a connection string")
	}
	if schema == "" {
		schema = DefaultPostgresSchema
	}
	return &PostgresStore{
		DSN:    dsn,
		Schema: schema,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *PostgresStore) Initialize() error {
	db, err := sql.Open("postgres", d.DSN)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return err
	}

	d.DB = db

	if _, err := d.DB.Exec(fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS %s`, pq.QuoteIdentifier(d.Schema))); err != nil {
		return fmt.Errorf("failed to create schema %s: %w", d.Schema, err)
	}

	if err := d.createTables(); err != nil {
		return err
	}

	d.Logger.Info("PostgresStore initialized successfully (Schema: %s)", d.Schema)
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresStore) table(name string) string {
	return pq.QuoteIdentifier(d.Schema) + "." + pq.QuoteIdentifier(name)
}

func (d *PostgresStore) createTables() error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id UUID PRIMARY KEY,
			source TEXT NOT NULL,
			loaded_at BIGINT NOT NULL
		);
	`, d.table("config_snapshots"))
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create config_snapshots: %w", err)
	}

	query = fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			snapshot_id UUID NOT NULL,
			position INTEGER NOT NULL,
			key TEXT NOT NULL,
			value TEXT NOT NULL,
			PRIMARY KEY (snapshot_id, position)
		);
	`, d.table("snapshot_entries"))
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create snapshot_entries: %w", err)
	}

	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresStore) SaveSnapshot(snap models.MSnapshot) error {
	tx, err := d.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := fmt.Sprintf(`INSERT INTO %s (id, source, loaded_at) VALUES ($1, $2, $3)`, d.table("config_snapshots"))
	if _, err := tx.Exec(query, snap.ID, snap.Source, snap.LoadedAt.UnixNano()); err != nil {
		return fmt.Errorf("failed to insert snapshot %s: %w", snap.ID, err)
	}

	// COPY is the fast path for bulk rows in lib/pq
	stmt, err := tx.Prepare(pq.CopyInSchema(d.Schema, "snapshot_entries", "snapshot_id", "position", "key", "value"))
	if err != nil {
		return err
	}

	for i, e := range snap.Entries {
		if _, err := stmt.Exec(snap.ID, i, e.Key, e.Value); err != nil {
			stmt.Close()
			return err
		}
	}
	if _, err := stmt.Exec(); err != nil {
		stmt.Close()
		return err
	}
	if err := stmt.Close(); err != nil {
		return err
	}

	return tx.Commit()
}

// -----------------------------------------------------------------------------

func (d *PostgresStore) LatestSnapshot(source string) (*models.MSnapshot, error) {
	snap := &models.MSnapshot{Source: source}
	var loadedAt int64

	query := fmt.Sprintf(`SELECT id, loaded_at FROM %s WHERE source = $1 ORDER BY loaded_at DESC LIMIT 1`, d.table("config_snapshots"))
	if err := d.DB.QueryRow(query, source).Scan(&snap.ID, &loadedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	snap.LoadedAt = time.Unix(0, loadedAt).UTC()

	query = fmt.Sprintf(`SELECT key, value FROM %s WHERE snapshot_id = $1 ORDER BY position`, d.table("snapshot_entries"))
	rows, err := d.DB.Query(query, snap.ID)
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

func (d *PostgresStore) PruneSnapshots(source string, keep int) error {
	if keep < 0 {
		keep = 0
	}

	tx, err := d.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stale := fmt.Sprintf(`SELECT id FROM %s WHERE source = $1 ORDER BY loaded_at DESC OFFSET $2`, d.table("config_snapshots"))

	query := fmt.Sprintf(`DELETE FROM %s WHERE snapshot_id IN (%s)`, d.table("snapshot_entries"), stale)
	if _, err := tx.Exec(query, source, keep); err != nil {
		return fmt.Errorf("failed to prune snapshot entries: %w", err)
	}
	query = fmt.Sprintf(`DELETE FROM %s WHERE id IN (%s)`, d.table("config_snapshots"), stale)
	if _, err := tx.Exec(query, source, keep); err != nil {
		return fmt.Errorf("failed to prune snapshots: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	d.Logger.Info("Pruned snapshots of %s down to %d", source, keep)
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresStore) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
