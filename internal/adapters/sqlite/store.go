package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/thandol/j101-generator/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	session_id TEXT PRIMARY KEY,
	state      TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
);`

// Store persists wizard sessions keyed by the browser's session cookie.
// Each row holds the full serialized WizardState; there is no per-step
// table, a session is always written and read as a whole.
type Store struct {
	db       *sql.DB
	pipeline []domain.StepConfig
}

// New opens the SQLite database and ensures the sessions table exists.
func New(dsn string, pipeline []domain.StepConfig) (*Store, error) {
	db, err := sql.Open("sqlite3", dsn+"?_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, pipeline: pipeline}, nil
}

// Load returns the state for sessionID. An unknown session yields a
// fresh empty state, not an error; the caller cannot tell a brand-new
// visitor from an expired one and should not have to.
func (s *Store) Load(ctx context.Context, sessionID string) (*domain.WizardState, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT state FROM sessions WHERE session_id=?`, sessionID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewWizardState(s.pipeline), nil
	}
	if err != nil {
		return nil, err
	}
	return domain.UnmarshalWizardState(raw)
}

func (s *Store) Save(ctx context.Context, sessionID string, st *domain.WizardState) error {
	raw, err := st.Marshal()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (session_id, state, updated_at) VALUES (?,?,?)
		ON CONFLICT(session_id) DO UPDATE SET state=excluded.state, updated_at=excluded.updated_at`,
		sessionID, raw, time.Now())
	return err
}

func (s *Store) Delete(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE session_id=?`, sessionID)
	return err
}

func (s *Store) Close() error { return s.db.Close() }
