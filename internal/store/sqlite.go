package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/inostartas/grant-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	idea       TEXT NOT NULL,
	status     TEXT NOT NULL DEFAULT 'extracted',
	record     TEXT,
	usage      TEXT,
	created_at DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS validation_reports (
	session_id TEXT PRIMARY KEY REFERENCES sessions(id),
	summary    TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_sessions_status ON sessions(status);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateSession(ctx context.Context, idea string) (*model.Session, error) {
	sess := &model.Session{
		ID:        uuid.New().String(),
		Idea:      idea,
		Status:    model.SessionStatusExtracted,
		Record:    model.NewRecord(),
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	recordJSON, usageJSON, err := marshalSessionBlobs(sess)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, idea, status, record, usage, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.Idea, string(sess.Status), recordJSON, usageJSON, sess.CreatedAt, sess.UpdatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert session")
	}
	return sess, nil
}

func (s *SQLiteStore) UpdateSession(ctx context.Context, sess *model.Session) error {
	sess.UpdatedAt = time.Now().UTC()

	recordJSON, usageJSON, err := marshalSessionBlobs(sess)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET idea = ?, status = ?, record = ?, usage = ?, updated_at = ? WHERE id = ?`,
		sess.Idea, string(sess.Status), recordJSON, usageJSON, sess.UpdatedAt, sess.ID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update session %s", sess.ID)
	}
	return checkRowsAffected(res, "session", sess.ID)
}

func (s *SQLiteStore) GetSession(ctx context.Context, id string) (*model.Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, idea, status, record, usage, created_at, updated_at FROM sessions WHERE id = ?`, id)
	return scanSession(row)
}

func (s *SQLiteStore) ListSessions(ctx context.Context, filter SessionFilter) ([]model.Session, error) {
	query := `SELECT id, idea, status, record, usage, created_at, updated_at FROM sessions`
	var args []any
	if filter.Status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(filter.Status))
	}
	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += ` OFFSET ?`
			args = append(args, filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list sessions")
	}
	defer rows.Close()

	var sessions []model.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *sess)
	}
	return sessions, eris.Wrap(rows.Err(), "sqlite: iterate sessions")
}

func (s *SQLiteStore) SaveValidation(ctx context.Context, sessionID string, summary *model.ValidationSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal validation summary")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO validation_reports (session_id, summary, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(session_id) DO UPDATE SET summary = excluded.summary, created_at = excluded.created_at`,
		sessionID, string(data), time.Now().UTC(),
	)
	return eris.Wrapf(err, "sqlite: save validation %s", sessionID)
}

func (s *SQLiteStore) GetValidation(ctx context.Context, sessionID string) (*model.ValidationSummary, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT summary FROM validation_reports WHERE session_id = ?`, sessionID).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, eris.Errorf("validation report not found: %s", sessionID)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get validation %s", sessionID)
	}

	var summary model.ValidationSummary
	if err := json.Unmarshal([]byte(data), &summary); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal validation summary")
	}
	return &summary, nil
}

func marshalSessionBlobs(sess *model.Session) (string, string, error) {
	recordJSON, err := json.Marshal(sess.Record)
	if err != nil {
		return "", "", eris.Wrap(err, "sqlite: marshal record")
	}
	usageJSON, err := json.Marshal(sess.Usage)
	if err != nil {
		return "", "", eris.Wrap(err, "sqlite: marshal usage")
	}
	return string(recordJSON), string(usageJSON), nil
}

func checkRowsAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return eris.Errorf("%s not found: %s", entity, id)
	}
	return nil
}

// scannable abstracts *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

func scanSession(row scannable) (*model.Session, error) {
	var sess model.Session
	var status, recordJSON, usageJSON string

	err := row.Scan(&sess.ID, &sess.Idea, &status, &recordJSON, &usageJSON, &sess.CreatedAt, &sess.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, eris.New("session not found")
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan session")
	}

	sess.Status = model.SessionStatus(status)
	if recordJSON != "" {
		if err := json.Unmarshal([]byte(recordJSON), &sess.Record); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal record")
		}
	}
	if sess.Record.Values == nil {
		sess.Record = model.NewRecord()
	}
	if usageJSON != "" {
		if err := json.Unmarshal([]byte(usageJSON), &sess.Usage); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal usage")
		}
	}
	return &sess, nil
}
