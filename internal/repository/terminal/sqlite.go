package terminal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log"
	"time"

	"sowin-pos/internal/domain"

	"github.com/jmoiron/sqlx"
)

type sqliteRepo struct {
	db     *sqlx.DB
	logger *log.Logger
}

// NewSQLite stores terminal state in a local sqlite file, for tills that run
// without a shared database.
func NewSQLite(db *sqlx.DB, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &sqliteRepo{db: db, logger: logger}
}

type prefRow struct {
	Key   string `db:"key"`
	Value string `db:"value"`
}

type sessionRow struct {
	Token      string    `db:"token"`
	TerminalID string    `db:"terminal_id"`
	UserBlob   string    `db:"user_blob"`
	CreatedAt  time.Time `db:"created_at"`
}

func (r *sqliteRepo) Get(ctx context.Context, terminalID, key string) (string, error) {
	var value string
	err := r.db.GetContext(ctx, &value, `SELECT value FROM terminal_preferences WHERE terminal_id = ? AND key = ?`, terminalID, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		r.logger.Printf("terminal repo: get terminal=%s key=%s error=%v", terminalID, key, err)
		return "", err
	}
	return value, nil
}

func (r *sqliteRepo) Set(ctx context.Context, terminalID, key, value string) error {
	const q = `
INSERT INTO terminal_preferences (terminal_id, key, value, updated_at)
VALUES (?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(terminal_id, key) DO UPDATE SET
    value = excluded.value,
    updated_at = CURRENT_TIMESTAMP
`
	if _, err := r.db.ExecContext(ctx, q, terminalID, key, value); err != nil {
		r.logger.Printf("terminal repo: set terminal=%s key=%s error=%v", terminalID, key, err)
		return err
	}
	return nil
}

func (r *sqliteRepo) Delete(ctx context.Context, terminalID string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	q, args, err := sqlx.In(`DELETE FROM terminal_preferences WHERE terminal_id = ? AND key IN (?)`, terminalID, keys)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, r.db.Rebind(q), args...)
	return err
}

func (r *sqliteRepo) List(ctx context.Context, terminalID string) (map[string]string, error) {
	var rows []prefRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT key, value FROM terminal_preferences WHERE terminal_id = ?`, terminalID); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Value
	}
	return out, nil
}

func (r *sqliteRepo) SaveSession(ctx context.Context, s domain.TerminalSession) error {
	blob, err := json.Marshal(s.User)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO terminal_sessions (token, terminal_id, user_blob)
VALUES (?, ?, ?)
ON CONFLICT(token) DO UPDATE SET user_blob = excluded.user_blob
`
	if _, err := r.db.ExecContext(ctx, q, s.Token, s.TerminalID, string(blob)); err != nil {
		r.logger.Printf("terminal repo: save session terminal=%s error=%v", s.TerminalID, err)
		return err
	}
	return nil
}

func (r *sqliteRepo) GetSession(ctx context.Context, token string) (*domain.TerminalSession, error) {
	var row sessionRow
	err := r.db.GetContext(ctx, &row, `SELECT token, terminal_id, user_blob, created_at FROM terminal_sessions WHERE token = ?`, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	s := domain.TerminalSession{Token: row.Token, TerminalID: row.TerminalID, CreatedAt: row.CreatedAt}
	if err := json.Unmarshal([]byte(row.UserBlob), &s.User); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sqliteRepo) DeleteSession(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM terminal_sessions WHERE token = ?`, token)
	return err
}

func (r *sqliteRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
