// Package sqlite is the sqlite-backed Store. The state document lives as
// one versioned row; log entries are additionally mirrored into their own
// table keyed by the deterministic log id, so re-completing a session on
// the same date upserts instead of duplicating, and the training log stays
// queryable outside the document blob.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/mvdberg/spoor/internal/storage"
	"github.com/mvdberg/spoor/internal/types"
)

const schema = `
CREATE TABLE IF NOT EXISTS planner_state (
	id          INTEGER PRIMARY KEY CHECK (id = 1),
	version     TEXT NOT NULL,
	document_id TEXT NOT NULL DEFAULT '',
	updated_at  DATETIME NOT NULL,
	data        TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS logs (
	id            TEXT PRIMARY KEY,
	date          TEXT NOT NULL,
	week_id       TEXT NOT NULL,
	session_id    TEXT NOT NULL,
	surface       TEXT NOT NULL DEFAULT '',
	weather       TEXT NOT NULL DEFAULT '',
	success_score INTEGER NOT NULL DEFAULT 0,
	focus         TEXT NOT NULL DEFAULT '',
	notes         TEXT NOT NULL DEFAULT '',
	photo_ref     TEXT NOT NULL DEFAULT '',
	nose_down     INTEGER NOT NULL DEFAULT 0,
	calm_pace     INTEGER NOT NULL DEFAULT 0,
	found_turn    INTEGER,
	distracted    INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_logs_date ON logs(date);
CREATE INDEX IF NOT EXISTS idx_logs_session ON logs(session_id);
`

// Store implements storage.Store on sqlite.
type Store struct {
	db *sql.DB
}

// New opens (and if needed creates) the database at path. ":memory:" is
// supported for tests.
func New(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(10000)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Single-user tool; one connection also keeps ":memory:" databases
	// coherent across the pool.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Load reads the state document and overlays the log table, which is
// authoritative for log entries.
func (s *Store) Load(ctx context.Context) (*types.PlannerState, error) {
	var (
		version string
		data    string
	)
	err := s.db.QueryRowContext(ctx, `SELECT version, data FROM planner_state WHERE id = 1`).Scan(&version, &data)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state row: %w", err)
	}

	if storage.NewerThanSupported(version) {
		return nil, fmt.Errorf("%w: document version %s is newer than %s", storage.ErrIncompatible, version, storage.DocVersion)
	}

	var st types.PlannerState
	if err := json.Unmarshal([]byte(data), &st); err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrIncompatible, err)
	}
	if err := storage.ValidateState(&st); err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrIncompatible, err)
	}

	logs, err := s.loadLogs(ctx)
	if err != nil {
		return nil, err
	}
	st.Logs = logs

	return &st, nil
}

// Save writes the document row and upserts every log entry in one
// transaction.
func (s *Store) Save(ctx context.Context, st *types.PlannerState) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var existingID string
	err = tx.QueryRowContext(ctx, `SELECT document_id FROM planner_state WHERE id = 1`).Scan(&existingID)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("failed to read existing document id: %w", err)
	}
	incomingID := st.Program.DocumentID
	if existingID != "" && incomingID != "" && existingID != incomingID {
		return fmt.Errorf("%w: stored %s, saving %s", storage.ErrDocumentMismatch, existingID, incomingID)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO planner_state (id, version, document_id, updated_at, data)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			version = excluded.version,
			document_id = excluded.document_id,
			updated_at = excluded.updated_at,
			data = excluded.data`,
		storage.DocVersion, incomingID, time.Now().UTC(), string(data))
	if err != nil {
		return fmt.Errorf("failed to write state row: %w", err)
	}

	for _, entry := range st.Logs {
		if err := upsertLog(ctx, tx, entry); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

func upsertLog(ctx context.Context, tx *sql.Tx, entry types.LogEntry) error {
	var foundTurn sql.NullBool
	if entry.Observations.FoundTurn != nil {
		foundTurn = sql.NullBool{Bool: *entry.Observations.FoundTurn, Valid: true}
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO logs (id, date, week_id, session_id, surface, weather,
			success_score, focus, notes, photo_ref,
			nose_down, calm_pace, found_turn, distracted)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			week_id = excluded.week_id,
			session_id = excluded.session_id,
			surface = excluded.surface,
			weather = excluded.weather,
			success_score = excluded.success_score,
			focus = excluded.focus,
			notes = excluded.notes,
			photo_ref = excluded.photo_ref,
			nose_down = excluded.nose_down,
			calm_pace = excluded.calm_pace,
			found_turn = excluded.found_turn,
			distracted = excluded.distracted`,
		entry.ID, entry.Date, entry.WeekID.String(), entry.SessionID.String(),
		entry.Surface, entry.Weather, entry.SuccessScore, entry.Focus,
		entry.Notes, entry.PhotoRef,
		entry.Observations.NoseDown, entry.Observations.CalmPace,
		foundTurn, entry.Observations.Distracted)
	if err != nil {
		return fmt.Errorf("failed to upsert log %s: %w", entry.ID, err)
	}
	return nil
}

func (s *Store) loadLogs(ctx context.Context) ([]types.LogEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, week_id, session_id, surface, weather,
			success_score, focus, notes, photo_ref,
			nose_down, calm_pace, found_turn, distracted
		FROM logs ORDER BY date, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query logs: %w", err)
	}
	defer rows.Close()

	logs := []types.LogEntry{}
	for rows.Next() {
		var (
			entry     types.LogEntry
			weekID    string
			sessionID string
			foundTurn sql.NullBool
		)
		err := rows.Scan(&entry.ID, &entry.Date, &weekID, &sessionID,
			&entry.Surface, &entry.Weather, &entry.SuccessScore, &entry.Focus,
			&entry.Notes, &entry.PhotoRef,
			&entry.Observations.NoseDown, &entry.Observations.CalmPace,
			&foundTurn, &entry.Observations.Distracted)
		if err != nil {
			return nil, fmt.Errorf("failed to scan log row: %w", err)
		}
		if entry.WeekID, err = types.ParseWeekID(weekID); err != nil {
			return nil, fmt.Errorf("%w: %v", storage.ErrIncompatible, err)
		}
		if entry.SessionID, err = types.ParseSessionID(sessionID); err != nil {
			return nil, fmt.Errorf("%w: %v", storage.ErrIncompatible, err)
		}
		if foundTurn.Valid {
			v := foundTurn.Bool
			entry.Observations.FoundTurn = &v
		}
		logs = append(logs, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read logs: %w", err)
	}
	return logs, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
