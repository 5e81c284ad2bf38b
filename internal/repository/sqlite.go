package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mr1hm/go-quake-analyser/internal/geojson"
)

var ErrNoSnapshots = errors.New("no snapshots stored")

var _ FeatureStore = (*SQLiteDB)(nil)

type SQLiteDB struct {
	db *sql.DB
}

func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	// :memory: databases are per connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}

	s := &SQLiteDB{
		db: db,
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error while migrating to database: %w", err)
	}

	return s, nil
}

func (s *SQLiteDB) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS snapshots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL,
			feature_count INTEGER NOT NULL,
			created_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS features (
			snapshot_id INTEGER NOT NULL,
			seq INTEGER NOT NULL,
			feature_id TEXT,
			raw BLOB NOT NULL,
			PRIMARY KEY (snapshot_id, seq),
			FOREIGN KEY (snapshot_id) REFERENCES snapshots(id)
		);

		CREATE INDEX IF NOT EXISTS idx_snapshots_created_at ON snapshots(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteDB) SaveSnapshot(ctx context.Context, source string, features []geojson.Feature) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("error beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (source, feature_count, created_at) VALUES (?, ?, ?)`,
		source, len(features), time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("error inserting snapshot: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("error reading snapshot id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO features (snapshot_id, seq, feature_id, raw) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("error preparing feature insert: %w", err)
	}
	defer stmt.Close()

	for i, f := range features {
		raw, err := json.Marshal(f)
		if err != nil {
			return 0, fmt.Errorf("error encoding feature %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx, id, i, f.ID, raw); err != nil {
			return 0, fmt.Errorf("error inserting feature %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("error committing snapshot: %w", err)
	}
	return id, nil
}

func (s *SQLiteDB) LoadSnapshot(ctx context.Context, id int64) ([]geojson.Feature, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT raw FROM features WHERE snapshot_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("error querying features: %w", err)
	}
	defer rows.Close()

	features := make([]geojson.Feature, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("error scanning feature: %w", err)
		}
		var f geojson.Feature
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("error decoding feature: %w", err)
		}
		features = append(features, f)
	}
	return features, rows.Err()
}

func (s *SQLiteDB) LoadLatest(ctx context.Context) ([]geojson.Feature, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM snapshots ORDER BY id DESC LIMIT 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshots
	}
	if err != nil {
		return nil, fmt.Errorf("error finding latest snapshot: %w", err)
	}
	return s.LoadSnapshot(ctx, id)
}

func (s *SQLiteDB) ListSnapshots(ctx context.Context) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, feature_count, created_at FROM snapshots ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error querying snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		var snap Snapshot
		if err := rows.Scan(&snap.ID, &snap.Source, &snap.FeatureCount, &snap.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning snapshot: %w", err)
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, rows.Err()
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}
