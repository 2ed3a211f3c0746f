// Package store persists tracking events, daily aggregates, and file review
// status in a local SQLite database. The scoring and classification packages
// never touch it; commands wire the two sides together.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/halcyon-ops/aiscope/internal/tracking"
)

// Store wraps the SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path, creating parent directories as
// needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(context.Background(), pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set pragma: %w", err)
		}
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS events (
			id              TEXT PRIMARY KEY,
			ts              TEXT NOT NULL,
			lines_of_code   INTEGER NOT NULL DEFAULT 0,
			lines_removed   INTEGER NOT NULL DEFAULT 0,
			language        TEXT NOT NULL DEFAULT '',
			acceptance_ms   INTEGER NOT NULL DEFAULT 0,
			detection       TEXT NOT NULL DEFAULT '',
			source          TEXT NOT NULL DEFAULT 'ai',
			event_type      TEXT NOT NULL DEFAULT '',
			agent_session   TEXT NOT NULL DEFAULT '',
			agent_mode      INTEGER NOT NULL DEFAULT 0,
			agent_generated INTEGER NOT NULL DEFAULT 0,
			closed_file_mod INTEGER NOT NULL DEFAULT 0,
			file_open       INTEGER NOT NULL DEFAULT 0,
			tool            TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_ts ON events(ts)`,
		`CREATE TABLE IF NOT EXISTS daily_metrics (
			day           TEXT PRIMARY KEY,
			total_lines   INTEGER NOT NULL DEFAULT 0,
			ai_lines      INTEGER NOT NULL DEFAULT 0,
			ai_percentage REAL NOT NULL DEFAULT 0,
			avg_review_ms REAL NOT NULL DEFAULT 0,
			events        INTEGER NOT NULL DEFAULT 0,
			acceptances   INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS file_reviews (
			day      TEXT NOT NULL,
			path     TEXT NOT NULL,
			was_open INTEGER NOT NULL DEFAULT 0,
			reviewed INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (day, path)
		)`,
	}
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(context.Background(), stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertEvent stores one event, assigning a UUID when the tracker did not.
// Returns the event ID.
func (s *Store) InsertEvent(ev tracking.TrackingEvent) (string, error) {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(context.Background(),
		`INSERT OR REPLACE INTO events
		 (id, ts, lines_of_code, lines_removed, language, acceptance_ms,
		  detection, source, event_type, agent_session, agent_mode,
		  agent_generated, closed_file_mod, file_open, tool)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.ID,
		ev.Timestamp.UTC().Format(time.RFC3339Nano),
		ev.LinesOfCode,
		ev.LinesRemoved,
		ev.Language,
		ev.AcceptanceTimeMs,
		string(ev.DetectionMethod),
		string(ev.Source),
		string(ev.EventType),
		ev.AgentSessionID,
		boolInt(ev.AgentMode),
		boolInt(ev.AgentGenerated),
		boolInt(ev.ClosedFileModification),
		triInt(ev.FileWasOpen),
		string(ev.Tool),
	)
	if err != nil {
		return "", fmt.Errorf("insert event: %w", err)
	}
	return ev.ID, nil
}

// ListEventsSince returns events observed at or after since, oldest first.
func (s *Store) ListEventsSince(since time.Time) ([]tracking.TrackingEvent, error) {
	rows, err := s.db.QueryContext(context.Background(),
		`SELECT id, ts, lines_of_code, lines_removed, language, acceptance_ms,
		        detection, source, event_type, agent_session, agent_mode,
		        agent_generated, closed_file_mod, file_open, tool
		 FROM events WHERE ts >= ? ORDER BY ts ASC`,
		since.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []tracking.TrackingEvent
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func scanEvent(rows *sql.Rows) (tracking.TrackingEvent, error) {
	var (
		ev                                   tracking.TrackingEvent
		ts                                   string
		detection, source, eventType, tool   string
		agentMode, agentGenerated, closedMod int
		fileOpen                             int
	)
	err := rows.Scan(&ev.ID, &ts, &ev.LinesOfCode, &ev.LinesRemoved,
		&ev.Language, &ev.AcceptanceTimeMs, &detection, &source, &eventType,
		&ev.AgentSessionID, &agentMode, &agentGenerated, &closedMod,
		&fileOpen, &tool)
	if err != nil {
		return ev, fmt.Errorf("scan event: %w", err)
	}

	ev.Timestamp, err = time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return ev, fmt.Errorf("parse event timestamp %q: %w", ts, err)
	}
	ev.DetectionMethod = tracking.DetectionMethod(detection)
	ev.Source = tracking.Source(source)
	ev.EventType = tracking.EventType(eventType)
	ev.Tool = tracking.Tool(tool)
	ev.AgentMode = agentMode != 0
	ev.AgentGenerated = agentGenerated != 0
	ev.ClosedFileModification = closedMod != 0
	ev.FileWasOpen = intTri(fileOpen)
	return ev, nil
}

// UpsertDailyMetrics writes one day's aggregate row.
func (s *Store) UpsertDailyMetrics(m tracking.DailyMetrics) error {
	_, err := s.db.ExecContext(context.Background(),
		`INSERT INTO daily_metrics
		 (day, total_lines, ai_lines, ai_percentage, avg_review_ms, events, acceptances)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(day) DO UPDATE SET
		   total_lines = excluded.total_lines,
		   ai_lines = excluded.ai_lines,
		   ai_percentage = excluded.ai_percentage,
		   avg_review_ms = excluded.avg_review_ms,
		   events = excluded.events,
		   acceptances = excluded.acceptances`,
		m.Day, m.TotalLines, m.AILines, m.AIPercentage, m.AvgReviewTimeMs,
		m.Events, m.Acceptances)
	if err != nil {
		return fmt.Errorf("upsert daily metrics: %w", err)
	}
	return nil
}

// GetDailyMetrics returns one day's aggregate row, or false when absent.
func (s *Store) GetDailyMetrics(day string) (tracking.DailyMetrics, bool, error) {
	var m tracking.DailyMetrics
	err := s.db.QueryRowContext(context.Background(),
		`SELECT day, total_lines, ai_lines, ai_percentage, avg_review_ms, events, acceptances
		 FROM daily_metrics WHERE day = ?`, day).
		Scan(&m.Day, &m.TotalLines, &m.AILines, &m.AIPercentage,
			&m.AvgReviewTimeMs, &m.Events, &m.Acceptances)
	if err == sql.ErrNoRows {
		return m, false, nil
	}
	if err != nil {
		return m, false, fmt.Errorf("get daily metrics: %w", err)
	}
	return m, true, nil
}

// RecentDailyMetrics returns the newest n aggregate rows, newest first.
func (s *Store) RecentDailyMetrics(n int) ([]tracking.DailyMetrics, error) {
	rows, err := s.db.QueryContext(context.Background(),
		`SELECT day, total_lines, ai_lines, ai_percentage, avg_review_ms, events, acceptances
		 FROM daily_metrics ORDER BY day DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("recent daily metrics: %w", err)
	}
	defer rows.Close()

	var out []tracking.DailyMetrics
	for rows.Next() {
		var m tracking.DailyMetrics
		if err := rows.Scan(&m.Day, &m.TotalLines, &m.AILines, &m.AIPercentage,
			&m.AvgReviewTimeMs, &m.Events, &m.Acceptances); err != nil {
			return nil, fmt.Errorf("scan daily metrics: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// UpsertFileReview writes one file's review-status row.
func (s *Store) UpsertFileReview(r tracking.FileReviewStatus) error {
	_, err := s.db.ExecContext(context.Background(),
		`INSERT INTO file_reviews (day, path, was_open, reviewed)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(day, path) DO UPDATE SET
		   was_open = excluded.was_open,
		   reviewed = excluded.reviewed`,
		r.Day, r.Path, boolInt(r.WasFileOpen), boolInt(r.Reviewed))
	if err != nil {
		return fmt.Errorf("upsert file review: %w", err)
	}
	return nil
}

// ListFileReviewsSince returns review-status rows for days at or after day.
func (s *Store) ListFileReviewsSince(day string) ([]tracking.FileReviewStatus, error) {
	rows, err := s.db.QueryContext(context.Background(),
		`SELECT day, path, was_open, reviewed FROM file_reviews
		 WHERE day >= ? ORDER BY day, path`, day)
	if err != nil {
		return nil, fmt.Errorf("list file reviews: %w", err)
	}
	defer rows.Close()

	var out []tracking.FileReviewStatus
	for rows.Next() {
		var r tracking.FileReviewStatus
		var wasOpen, reviewed int
		if err := rows.Scan(&r.Day, &r.Path, &wasOpen, &reviewed); err != nil {
			return nil, fmt.Errorf("scan file review: %w", err)
		}
		r.WasFileOpen = wasOpen != 0
		r.Reviewed = reviewed != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// triInt maps TriBool to storage: 0 unknown, 1 true, 2 false.
func triInt(t tracking.TriBool) int {
	switch t {
	case tracking.TriTrue:
		return 1
	case tracking.TriFalse:
		return 2
	default:
		return 0
	}
}

func intTri(v int) tracking.TriBool {
	switch v {
	case 1:
		return tracking.TriTrue
	case 2:
		return tracking.TriFalse
	default:
		return tracking.TriUnknown
	}
}
