package terminal

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"

	"sowin-pos/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Get(ctx context.Context, terminalID, key string) (string, error) {
	const q = `
SELECT value
FROM terminal_preferences
WHERE terminal_id = $1 AND key = $2
`
	var value string
	if err := r.pool.QueryRow(ctx, q, terminalID, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		r.logger.Printf("terminal repo: get terminal=%s key=%s error=%v", terminalID, key, err)
		return "", err
	}
	return value, nil
}

func (r *postgresRepo) Set(ctx context.Context, terminalID, key, value string) error {
	const q = `
INSERT INTO terminal_preferences (terminal_id, key, value)
VALUES ($1, $2, $3)
ON CONFLICT (terminal_id, key) DO UPDATE SET
    value = EXCLUDED.value,
    updated_at = now()
`
	if _, err := r.pool.Exec(ctx, q, terminalID, key, value); err != nil {
		r.logger.Printf("terminal repo: set terminal=%s key=%s error=%v", terminalID, key, err)
		return err
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, terminalID string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	const q = `
DELETE FROM terminal_preferences
WHERE terminal_id = $1 AND key = ANY($2)
`
	_, err := r.pool.Exec(ctx, q, terminalID, keys)
	return err
}

func (r *postgresRepo) List(ctx context.Context, terminalID string) (map[string]string, error) {
	const q = `
SELECT key, value
FROM terminal_preferences
WHERE terminal_id = $1
`
	rows, err := r.pool.Query(ctx, q, terminalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, rows.Err()
}

func (r *postgresRepo) SaveSession(ctx context.Context, s domain.TerminalSession) error {
	blob, err := json.Marshal(s.User)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO terminal_sessions (token, terminal_id, user_blob)
VALUES ($1, $2, $3)
ON CONFLICT (token) DO UPDATE SET user_blob = EXCLUDED.user_blob
`
	if _, err := r.pool.Exec(ctx, q, s.Token, s.TerminalID, blob); err != nil {
		r.logger.Printf("terminal repo: save session terminal=%s error=%v", s.TerminalID, err)
		return err
	}
	return nil
}

func (r *postgresRepo) GetSession(ctx context.Context, token string) (*domain.TerminalSession, error) {
	const q = `
SELECT token, terminal_id, user_blob, created_at
FROM terminal_sessions
WHERE token = $1
`
	var s domain.TerminalSession
	var blob []byte
	if err := r.pool.QueryRow(ctx, q, token).Scan(&s.Token, &s.TerminalID, &blob, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(blob, &s.User); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *postgresRepo) DeleteSession(ctx context.Context, token string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM terminal_sessions WHERE token = $1`, token)
	return err
}

func (r *postgresRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
