package terminal

import (
	"context"

	"sowin-pos/internal/domain"
)

// Repository persists per-terminal preferences and issued terminal sessions.
type Repository interface {
	Get(ctx context.Context, terminalID, key string) (string, error)
	Set(ctx context.Context, terminalID, key, value string) error
	Delete(ctx context.Context, terminalID string, keys ...string) error
	List(ctx context.Context, terminalID string) (map[string]string, error)

	SaveSession(ctx context.Context, s domain.TerminalSession) error
	GetSession(ctx context.Context, token string) (*domain.TerminalSession, error)
	DeleteSession(ctx context.Context, token string) error

	Ping(ctx context.Context) error
}
