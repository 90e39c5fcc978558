// Package store persists the imported player-season dataset in SQL so the server
// can start without re-reading the source export.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"footdash/dataset"

	_ "github.com/glebarez/go-sqlite"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

var ErrNoImport = errors.New("no dataset has been imported")

const schema = `
CREATE TABLE IF NOT EXISTS player_seasons (
    import_id TEXT NOT NULL,
    seq INTEGER NOT NULL,
    name TEXT NOT NULL,
    position TEXT,
    age_bucket TEXT,
    year INTEGER,
    team TEXT,
    base_salary DOUBLE PRECISION,
    minutes DOUBLE PRECISION,
    birth_year INTEGER,
    player_id TEXT,
    metrics TEXT
);

CREATE TABLE IF NOT EXISTS imports (
    id TEXT PRIMARY KEY,
    source TEXT,
    row_count INTEGER,
    imported_at TEXT
);
`

// sortable in lexical order, unlike RFC3339Nano
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Import describes one dataset load.
type Import struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	RowCount   int       `json:"row_count"`
	ImportedAt time.Time `json:"imported_at"`
}

type importRecord struct {
	ID         string `db:"id"`
	Source     string `db:"source"`
	RowCount   int    `db:"row_count"`
	ImportedAt string `db:"imported_at"`
}

type seasonRecord struct {
	Name       string          `db:"name"`
	Position   sql.NullString  `db:"position"`
	AgeBucket  sql.NullString  `db:"age_bucket"`
	Year       sql.NullInt64   `db:"year"`
	Team       sql.NullString  `db:"team"`
	BaseSalary sql.NullFloat64 `db:"base_salary"`
	Minutes    sql.NullFloat64 `db:"minutes"`
	BirthYear  sql.NullInt64   `db:"birth_year"`
	PlayerID   sql.NullString  `db:"player_id"`
	Metrics    sql.NullString  `db:"metrics"`
}

type Store struct {
	db *sqlx.DB
}

// DriverFor picks the database/sql driver for a DSN: postgres URLs go to lib/pq,
// anything else is treated as a sqlite path.
func DriverFor(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return "postgres"
	}
	return "sqlite"
}

// Open connects and creates the schema if needed.
func Open(ctx context.Context, dsn string) (*Store, error) {
	driver := DriverFor(dsn)
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == "sqlite" {
		// one connection keeps ":memory:" databases shared and avoids SQLITE_BUSY
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Replace swaps the stored dataset for rows in a single transaction.
func (s *Store) Replace(ctx context.Context, source string, rows []dataset.Row) (Import, error) {
	imp := Import{
		ID:         uuid.NewString(),
		Source:     source,
		RowCount:   len(rows),
		ImportedAt: time.Now().UTC(),
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return Import{}, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM player_seasons`); err != nil {
		return Import{}, fmt.Errorf("clear seasons: %w", err)
	}

	stmt, err := tx.PreparexContext(ctx, tx.Rebind(`
        INSERT INTO player_seasons (import_id, seq, name, position, age_bucket, year, team, base_salary, minutes, birth_year, player_id, metrics)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`))
	if err != nil {
		return Import{}, err
	}
	defer stmt.Close()

	for i, r := range rows {
		metrics, err := json.Marshal(r.Metrics)
		if err != nil {
			return Import{}, err
		}
		if _, err := stmt.ExecContext(ctx, imp.ID, i, r.Name, r.Position, r.AgeBucket, r.Year, r.Team,
			r.BaseSalary, r.Minutes, r.BirthYear, r.PlayerID, string(metrics)); err != nil {
			return Import{}, fmt.Errorf("insert row %d (%s): %w", i, r.Name, err)
		}
	}

	if _, err := tx.ExecContext(ctx, tx.Rebind(`INSERT INTO imports (id, source, row_count, imported_at) VALUES (?, ?, ?, ?)`),
		imp.ID, imp.Source, imp.RowCount, imp.ImportedAt.Format(timeLayout)); err != nil {
		return Import{}, fmt.Errorf("record import: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Import{}, err
	}
	return imp, nil
}

// Load reads the stored rows in import order.
func (s *Store) Load(ctx context.Context) (*dataset.Dataset, error) {
	var recs []seasonRecord
	err := s.db.SelectContext(ctx, &recs, `
        SELECT name, position, age_bucket, year, team, base_salary, minutes, birth_year, player_id, metrics
        FROM player_seasons ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("load seasons: %w", err)
	}

	rows := make([]dataset.Row, 0, len(recs))
	for _, rec := range recs {
		row := dataset.Row{
			Name:       rec.Name,
			Position:   rec.Position.String,
			AgeBucket:  rec.AgeBucket.String,
			Year:       int(rec.Year.Int64),
			Team:       rec.Team.String,
			BaseSalary: rec.BaseSalary.Float64,
			Minutes:    rec.Minutes.Float64,
			BirthYear:  int(rec.BirthYear.Int64),
			PlayerID:   rec.PlayerID.String,
			Metrics:    map[string]float64{},
		}
		if rec.Metrics.Valid && rec.Metrics.String != "" {
			if err := json.Unmarshal([]byte(rec.Metrics.String), &row.Metrics); err != nil {
				return nil, fmt.Errorf("decode metrics for %s: %w", rec.Name, err)
			}
		}
		rows = append(rows, row)
	}
	return dataset.New(rows), nil
}

// LastImport returns the most recent import, or ErrNoImport.
func (s *Store) LastImport(ctx context.Context) (Import, error) {
	var rec importRecord
	err := s.db.GetContext(ctx, &rec, `SELECT id, source, row_count, imported_at FROM imports ORDER BY imported_at DESC LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return Import{}, ErrNoImport
	}
	if err != nil {
		return Import{}, err
	}

	imp := Import{ID: rec.ID, Source: rec.Source, RowCount: rec.RowCount}
	imp.ImportedAt, err = time.Parse(timeLayout, rec.ImportedAt)
	if err != nil {
		return Import{}, fmt.Errorf("parse import time: %w", err)
	}
	return imp, nil
}
