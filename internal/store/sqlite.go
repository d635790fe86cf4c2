package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dgallion1/tripgest/internal/itinerary"
	"github.com/dgallion1/tripgest/internal/trip"
)

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS trips (
    id          TEXT PRIMARY KEY,
    title       TEXT NOT NULL,
    destination TEXT NOT NULL,
    start_date  TEXT NOT NULL DEFAULT '',
    end_date    TEXT NOT NULL DEFAULT '',
    budget      REAL NOT NULL DEFAULT 0,
    travelers   INTEGER NOT NULL DEFAULT 1,
    status      TEXT NOT NULL,
    created_at  TEXT NOT NULL,
    updated_at  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS trips_updated_at ON trips(updated_at);

CREATE TABLE IF NOT EXISTS items (
    trip_id        TEXT NOT NULL,
    position       INTEGER NOT NULL,
    id             TEXT NOT NULL,
    day            INTEGER NOT NULL,
    time           TEXT NOT NULL,
    activity       TEXT NOT NULL,
    location       TEXT NOT NULL DEFAULT '',
    description    TEXT NOT NULL DEFAULT '',
    estimated_cost REAL NOT NULL DEFAULT 0,
    duration       INTEGER NOT NULL DEFAULT 0,
    type           TEXT NOT NULL DEFAULT 'activity',
    booking        TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (trip_id, position)
);

CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);
`

// schemaVersion is bumped whenever the tables above change shape.
const schemaVersion = "1"

const (
	dateLayout = "2006-01-02"
	// Fixed width so updated_at sorts lexically.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// SQLiteStore keeps trips in a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// One writer at a time; WAL still lets readers proceed.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	if _, err := db.Exec("INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)", schemaVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("record schema version: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveTrip(ctx context.Context, t *trip.Trip) error {
	now := time.Now().UTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO trips (id, title, destination, start_date, end_date, budget, travelers, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			destination = excluded.destination,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			budget = excluded.budget,
			travelers = excluded.travelers,
			status = excluded.status,
			updated_at = excluded.updated_at`,
		t.ID, t.Title, t.Destination, formatDate(t.StartDate), formatDate(t.EndDate),
		t.Budget, t.Travelers, string(t.Status),
		t.CreatedAt.UTC().Format(timeLayout), t.UpdatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("upsert trip %s: %w", t.ID, err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM items WHERE trip_id = ?", t.ID); err != nil {
		return fmt.Errorf("clear items %s: %w", t.ID, err)
	}
	for i, it := range t.Items {
		booking := ""
		if it.Booking != nil {
			b, err := json.Marshal(it.Booking)
			if err != nil {
				return fmt.Errorf("marshal booking: %w", err)
			}
			booking = string(b)
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO items (trip_id, position, id, day, time, activity, location, description, estimated_cost, duration, type, booking)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, i, it.ID, it.Day, it.Time, it.Activity.Activity, it.Location, it.Description,
			it.EstimatedCost, it.Duration, string(it.Type), booking,
		)
		if err != nil {
			return fmt.Errorf("insert item %d of %s: %w", i, t.ID, err)
		}
	}
	return tx.Commit()
}

const tripColumns = "id, title, destination, start_date, end_date, budget, travelers, status, created_at, updated_at"

type scanner interface {
	Scan(dest ...any) error
}

func scanTrip(row scanner) (*trip.Trip, error) {
	var (
		t                    trip.Trip
		status               string
		start, end           string
		createdAt, updatedAt string
	)
	if err := row.Scan(&t.ID, &t.Title, &t.Destination, &start, &end, &t.Budget, &t.Travelers, &status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	t.Status = trip.Status(status)
	t.StartDate = parseDate(start)
	t.EndDate = parseDate(end)
	t.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	t.UpdatedAt, _ = time.Parse(timeLayout, updatedAt)
	return &t, nil
}

func (s *SQLiteStore) GetTrip(ctx context.Context, id string) (*trip.Trip, error) {
	t, err := scanTrip(s.db.QueryRowContext(ctx, "SELECT "+tripColumns+" FROM trips WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get trip %s: %w", id, err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, day, time, activity, location, description, estimated_cost, duration, type, booking
		FROM items WHERE trip_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("get items %s: %w", id, err)
	}
	defer rows.Close()

	t.Items = []trip.Item{}
	for rows.Next() {
		var (
			it      trip.Item
			typ     string
			booking string
		)
		if err := rows.Scan(&it.ID, &it.Day, &it.Time, &it.Activity.Activity, &it.Location, &it.Description,
			&it.EstimatedCost, &it.Duration, &typ, &booking); err != nil {
			return nil, err
		}
		it.Type = itinerary.Category(typ)
		if booking != "" {
			var b trip.Booking
			if err := json.Unmarshal([]byte(booking), &b); err != nil {
				return nil, fmt.Errorf("decode booking: %w", err)
			}
			it.Booking = &b
		}
		t.Items = append(t.Items, it)
	}
	return t, rows.Err()
}

func (s *SQLiteStore) ListTrips(ctx context.Context, limit int) ([]trip.Trip, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+tripColumns+" FROM trips ORDER BY updated_at DESC, id LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	defer rows.Close()

	trips := []trip.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, *t)
	}
	return trips, rows.Err()
}

func (s *SQLiteStore) DeleteTrip(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM items WHERE trip_id = ?", id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM trips WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, _ := time.Parse(dateLayout, s)
	return t
}
