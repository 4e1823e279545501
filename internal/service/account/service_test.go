package account

import (
	"context"
	"errors"
	"testing"

	"sowin-pos/internal/domain"
)

type stubUsers struct {
	user       *domain.User
	loginErr   error
	users      []domain.User
	registered []domain.User
	deleted    []int64
}

func (s *stubUsers) Login(context.Context, string, string) (*domain.User, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	u := *s.user
	return &u, nil
}
func (s *stubUsers) List(context.Context) ([]domain.User, error) { return s.users, nil }
func (s *stubUsers) Register(_ context.Context, u domain.User) (*domain.User, error) {
	s.registered = append(s.registered, u)
	u.ID = 99
	u.Password = ""
	return &u, nil
}
func (s *stubUsers) Delete(_ context.Context, id int64) error {
	s.deleted = append(s.deleted, id)
	return nil
}
func (s *stubUsers) ListRoles(context.Context) ([]domain.Role, error) { return nil, nil }
func (s *stubUsers) CreateRole(_ context.Context, name string) (*domain.Role, error) {
	return &domain.Role{ID: 1, Name: name}, nil
}
func (s *stubUsers) DeleteRole(context.Context, int64) error { return nil }

type memSessions map[string]domain.TerminalSession

func (m memSessions) SaveSession(_ context.Context, s domain.TerminalSession) error {
	m[s.Token] = s
	return nil
}
func (m memSessions) GetSession(_ context.Context, token string) (*domain.TerminalSession, error) {
	s, ok := m[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}
func (m memSessions) DeleteSession(_ context.Context, token string) error {
	delete(m, token)
	return nil
}

func TestFoldKey(t *testing.T) {
	cases := map[string]string{
		"CATEGORÍAS":        "categorias",
		"/ventasCaja":       "ventascaja",
		"ENTRADA/PRODUCTOS": "entradaproductos",
		"Administración 2":  "administracion2",
		"":                  "",
	}
	for in, want := range cases {
		if got := FoldKey(in); got != want {
			t.Fatalf("FoldKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCanAccess(t *testing.T) {
	admin := domain.User{Role: "Administrador", Permissions: []domain.Permission{{ModuleName: "Dashboard"}}}
	if !CanAccess(admin, ModuleUsers) {
		t.Fatal("admin should access every module")
	}
	open := domain.User{Role: "cajero"}
	if !CanAccess(open, ModuleMovements) {
		t.Fatal("user without permissions should access every module")
	}
	cashier := domain.User{Role: "cajero", Permissions: []domain.Permission{
		{ModuleName: "VENTAS CAJA"},
		{Route: "/categorías"},
	}}
	if !CanAccess(cashier, ModuleSales) || !CanAccess(cashier, ModuleCategories) {
		t.Fatal("granted modules should be accessible")
	}
	if CanAccess(cashier, ModuleUsers) {
		t.Fatal("users module should be denied")
	}
	if got := len(Allowed(cashier)); got != 2 {
		t.Fatalf("expected 2 allowed modules, got %d", got)
	}
}

func newService(users *stubUsers) (*Service, memSessions) {
	sessions := memSessions{}
	return New(users, sessions, "caja-1", nil), sessions
}

func TestLoginIssuesSession(t *testing.T) {
	svc, sessions := newService(&stubUsers{user: &domain.User{ID: 4, Username: "ana", Role: "Cajero"}})
	sess, err := svc.Login(context.Background(), LoginInput{Username: " ana ", Password: "x", Role: "cajero"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sess.Token == "" || sess.TerminalID != "caja-1" || sess.User.ID != 4 {
		t.Fatalf("unexpected session %+v", sess)
	}
	if _, ok := sessions[sess.Token]; !ok {
		t.Fatal("session not stored")
	}

	got, err := svc.Authenticate(context.Background(), sess.Token)
	if err != nil || got.User.Username != "ana" {
		t.Fatalf("Authenticate: %+v %v", got, err)
	}
	if err := svc.Logout(context.Background(), sess.Token); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), sess.Token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized after logout, got %v", err)
	}
}

func TestLoginRejectsRoleMismatch(t *testing.T) {
	svc, sessions := newService(&stubUsers{user: &domain.User{ID: 4, Username: "ana", Role: "Cajero"}})
	_, err := svc.Login(context.Background(), LoginInput{Username: "ana", Password: "x", Role: "Administrador"})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if len(sessions) != 0 {
		t.Fatal("no session should be stored")
	}
}

func TestLoginRequiresCredentials(t *testing.T) {
	svc, _ := newService(&stubUsers{})
	if _, err := svc.Login(context.Background(), LoginInput{Username: "ana"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAuthenticateRejectsOtherTerminal(t *testing.T) {
	svc, sessions := newService(&stubUsers{})
	sessions["t1"] = domain.TerminalSession{Token: "t1", TerminalID: "caja-2"}
	if _, err := svc.Authenticate(context.Background(), "t1"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestRegisterRefusesDuplicate(t *testing.T) {
	users := &stubUsers{users: []domain.User{{ID: 1, Username: "Ana"}}}
	svc, _ := newService(users)
	_, err := svc.Register(context.Background(), RegisterInput{Username: "ana", Password: "p", RoleID: 2})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	u, err := svc.Register(context.Background(), RegisterInput{Username: "luis", Password: "p", RoleID: 2})
	if err != nil || u.ID != 99 || len(users.registered) != 1 {
		t.Fatalf("Register: %+v %v", u, err)
	}
}

func TestDeleteUserRefusesSelf(t *testing.T) {
	users := &stubUsers{}
	svc, _ := newService(users)
	if err := svc.DeleteUser(context.Background(), domain.User{ID: 3}, 3); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := svc.DeleteUser(context.Background(), domain.User{ID: 3}, 5); err != nil || len(users.deleted) != 1 {
		t.Fatalf("DeleteUser: %v %v", err, users.deleted)
	}
}
