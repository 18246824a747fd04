package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// AttemptRecord is one immutable attempt-log row.
type AttemptRecord struct {
	ID         string   `db:"id"`
	TS         int64    `db:"ts"`
	Lang       string   `db:"lang"`
	CardID     string   `db:"card_id"`
	Variant    string   `db:"variant"`
	Prompt     string   `db:"prompt"`
	UserAnswer string   `db:"user_answer"`
	Correct    bool     `db:"correct"`
	LatencyMs  int64    `db:"latency_ms"`
	Quality    int      `db:"quality"`
	Tags       []string `db:"-"`
	TagsJSON   string   `db:"tags"`
}

// AttemptTotals summarizes the log for stats display.
type AttemptTotals struct {
	Attempts int `db:"attempts"`
	Correct  int `db:"correct"`
}

const attemptSchema = `
CREATE TABLE IF NOT EXISTS attempt_events (
	id          TEXT PRIMARY KEY,
	ts          INTEGER NOT NULL,
	lang        TEXT NOT NULL,
	card_id     TEXT NOT NULL,
	variant     TEXT NOT NULL,
	prompt      TEXT NOT NULL,
	user_answer TEXT NOT NULL,
	correct     INTEGER NOT NULL,
	latency_ms  INTEGER NOT NULL,
	quality     INTEGER NOT NULL,
	tags        TEXT NOT NULL DEFAULT '[]'
);
CREATE INDEX IF NOT EXISTS idx_attempt_events_ts ON attempt_events(ts);
CREATE INDEX IF NOT EXISTS idx_attempt_events_lang ON attempt_events(lang);
`

// AttemptLog is the append-only attempt event store.
type AttemptLog struct {
	db *sqlx.DB
}

// OpenAttemptLog opens (and migrates) the attempt log database at path.
func OpenAttemptLog(path string) (*AttemptLog, error) {
	if err := EnsureDir(path); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open attempt log: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	}

	if _, err := db.Exec(attemptSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate attempt log: %w", err)
	}

	return &AttemptLog{db: db}, nil
}

// Append inserts one attempt row. A zero ID gets a fresh UUID.
func (l *AttemptLog) Append(ctx context.Context, rec AttemptRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	tags, err := json.Marshal(rec.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}
	rec.TagsJSON = string(tags)

	_, err = l.db.NamedExecContext(ctx, `
		INSERT INTO attempt_events (id, ts, lang, card_id, variant, prompt, user_answer, correct, latency_ms, quality, tags)
		VALUES (:id, :ts, :lang, :card_id, :variant, :prompt, :user_answer, :correct, :latency_ms, :quality, :tags)`,
		rec)
	if err != nil {
		return fmt.Errorf("append attempt: %w", err)
	}
	return nil
}

// Totals returns overall attempt counts for a language.
func (l *AttemptLog) Totals(ctx context.Context, lang string) (AttemptTotals, error) {
	var totals AttemptTotals
	err := l.db.GetContext(ctx, &totals, `
		SELECT COUNT(*) AS attempts, COALESCE(SUM(correct), 0) AS correct
		FROM attempt_events WHERE lang = ?`, lang)
	if err != nil {
		return AttemptTotals{}, fmt.Errorf("attempt totals: %w", err)
	}
	return totals, nil
}

// Recent returns the most recent n attempts for a language, newest first.
func (l *AttemptLog) Recent(ctx context.Context, lang string, n int) ([]AttemptRecord, error) {
	var rows []AttemptRecord
	err := l.db.SelectContext(ctx, &rows, `
		SELECT id, ts, lang, card_id, variant, prompt, user_answer, correct, latency_ms, quality, tags
		FROM attempt_events WHERE lang = ? ORDER BY ts DESC LIMIT ?`, lang, n)
	if err != nil {
		return nil, fmt.Errorf("recent attempts: %w", err)
	}
	for i := range rows {
		if rows[i].TagsJSON != "" {
			_ = json.Unmarshal([]byte(rows[i].TagsJSON), &rows[i].Tags)
		}
	}
	return rows, nil
}

// Close closes the underlying database.
func (l *AttemptLog) Close() error {
	return l.db.Close()
}
