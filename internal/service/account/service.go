package account

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"sowin-pos/internal/domain"
	userrepo "sowin-pos/internal/repository/user"
)

type sessionStore interface {
	SaveSession(ctx context.Context, s domain.TerminalSession) error
	GetSession(ctx context.Context, token string) (*domain.TerminalSession, error)
	DeleteSession(ctx context.Context, token string) error
}

type Service struct {
	users      userrepo.Repository
	sessions   sessionStore
	terminalID string
	logger     *log.Logger
	now        func() time.Time
}

func New(users userrepo.Repository, sessions sessionStore, terminalID string, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{users: users, sessions: sessions, terminalID: terminalID, logger: logger, now: time.Now}
}

type LoginInput struct {
	Username string `json:"nombre_usuario"`
	Password string `json:"contrasena"`
	Role     string `json:"rol"`
}

// Login checks the credentials with the backend and opens a terminal
// session. When a role is selected it must match the user's role.
func (s *Service) Login(ctx context.Context, in LoginInput) (*domain.TerminalSession, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", domain.ErrValidation)
	}
	user, err := s.users.Login(ctx, username, in.Password)
	if err != nil {
		s.logger.Printf("account: login user=%s error=%v", username, err)
		return nil, err
	}
	if role := strings.TrimSpace(in.Role); role != "" && !strings.EqualFold(role, user.RoleLabel()) {
		s.logger.Printf("account: login user=%s role mismatch selected=%s", username, role)
		return nil, fmt.Errorf("%w: the selected role does not match the user", domain.ErrUnauthorized)
	}

	sess := domain.TerminalSession{
		Token:      uuid.NewString(),
		TerminalID: s.terminalID,
		User:       *user,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.sessions.SaveSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	s.logger.Printf("account: login user=%s terminal=%s", username, s.terminalID)
	return &sess, nil
}

// Authenticate resolves a token issued by Login on this terminal.
func (s *Service) Authenticate(ctx context.Context, token string) (*domain.TerminalSession, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}
	sess, err := s.sessions.GetSession(ctx, token)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	if sess.TerminalID != s.terminalID {
		return nil, domain.ErrUnauthorized
	}
	return sess, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.DeleteSession(ctx, token)
}

func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

type RegisterInput struct {
	Username string `json:"nombre_usuario"`
	Password string `json:"contrasena"`
	RoleID   int64  `json:"id_rol"`
}

// Register creates a user after checking the name is not taken.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	username := strings.TrimSpace(in.Username)
	var fields []string
	if username == "" {
		fields = append(fields, "nombre_usuario")
	}
	if in.Password == "" {
		fields = append(fields, "contrasena")
	}
	if in.RoleID == 0 {
		fields = append(fields, "id_rol")
	}
	if len(fields) > 0 {
		return nil, fmt.Errorf("%w: missing %s", domain.ErrValidation, strings.Join(fields, ", "))
	}

	existing, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range existing {
		if strings.EqualFold(u.Username, username) {
			return nil, fmt.Errorf("%w: user %s already exists", domain.ErrValidation, username)
		}
	}
	return s.users.Register(ctx, domain.User{Username: username, Password: in.Password, RoleID: in.RoleID})
}

// DeleteUser removes a user other than the one acting.
func (s *Service) DeleteUser(ctx context.Context, actor domain.User, id int64) error {
	if actor.ID == id {
		return fmt.Errorf("%w: cannot delete the logged in user", domain.ErrValidation)
	}
	return s.users.Delete(ctx, id)
}

func (s *Service) ListRoles(ctx context.Context) ([]domain.Role, error) {
	return s.users.ListRoles(ctx)
}

func (s *Service) CreateRole(ctx context.Context, name string) (*domain.Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: missing nombre_rol", domain.ErrValidation)
	}
	return s.users.CreateRole(ctx, name)
}

func (s *Service) DeleteRole(ctx context.Context, id int64) error {
	return s.users.DeleteRole(ctx, id)
}
