package terminal

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"sowin-pos/internal/db"
	"sowin-pos/internal/domain"
	"sowin-pos/internal/migrate"
	terminalrepo "sowin-pos/internal/repository/terminal"
)

func newService(t *testing.T) *Service {
	t.Helper()
	ctx := context.Background()
	sqlDB, err := db.OpenSQLite(ctx, filepath.Join(t.TempDir(), "terminal.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })
	if err := migrate.ApplySQLite(ctx, sqlDB); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return New(terminalrepo.NewSQLite(sqlDB, nil), "caja-1")
}

func TestDefaults(t *testing.T) {
	svc := newService(t)
	prefs, err := svc.Preferences(context.Background())
	if err != nil {
		t.Fatalf("Preferences: %v", err)
	}
	if prefs.Theme != ThemeLight || prefs.SidebarCollapsed || prefs.Business.Name != "SOWIN" {
		t.Fatalf("unexpected defaults %+v", prefs)
	}
	theme, err := svc.Theme(context.Background())
	if err != nil || theme != ThemeLight {
		t.Fatalf("Theme: %q %v", theme, err)
	}
}

func TestThemeAndSidebar(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	if err := svc.SetTheme(ctx, "purple"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := svc.SetTheme(ctx, " Dark "); err != nil {
		t.Fatalf("SetTheme: %v", err)
	}
	if err := svc.SetSidebarCollapsed(ctx, true); err != nil {
		t.Fatalf("SetSidebarCollapsed: %v", err)
	}
	prefs, _ := svc.Preferences(ctx)
	if prefs.Theme != ThemeDark || !prefs.SidebarCollapsed {
		t.Fatalf("unexpected preferences %+v", prefs)
	}
}

func TestSetBusinessRequiresAdmin(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	profile := domain.BusinessProfile{Name: " Tienda Luna ", Phone: "5555"}

	if err := svc.SetBusiness(ctx, domain.User{Role: "cajero"}, profile); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if err := svc.SetBusiness(ctx, domain.User{Role: "Administrador"}, profile); err != nil {
		t.Fatalf("SetBusiness: %v", err)
	}
	got, err := svc.Business(ctx)
	if err != nil {
		t.Fatalf("Business: %v", err)
	}
	if got.Name != "Tienda Luna" || got.Phone != "5555" || got.Address != "" {
		t.Fatalf("unexpected profile %+v", got)
	}
}
