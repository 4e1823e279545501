package terminal

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"sowin-pos/internal/db"
	"sowin-pos/internal/domain"
	"sowin-pos/internal/migrate"
)

func newSQLiteRepo(ctx context.Context, t *testing.T) Repository {
	t.Helper()
	conn, err := db.OpenSQLite(ctx, filepath.Join(t.TempDir(), "terminal.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := migrate.ApplySQLite(ctx, conn); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return NewSQLite(conn, nil)
}

func TestSQLite_Preferences(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepo(ctx, t)

	if _, err := repo.Get(ctx, "caja-1", "theme"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := repo.Set(ctx, "caja-1", "theme", "dark"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := repo.Set(ctx, "caja-1", "theme", "light"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	if err := repo.Set(ctx, "caja-1", "business_name", "Tienda"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := repo.Set(ctx, "caja-2", "theme", "dark"); err != nil {
		t.Fatalf("Set other terminal: %v", err)
	}

	got, err := repo.Get(ctx, "caja-1", "theme")
	if err != nil || got != "light" {
		t.Fatalf("expected light, got %q err=%v", got, err)
	}

	all, err := repo.List(ctx, "caja-1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 || all["business_name"] != "Tienda" {
		t.Fatalf("unexpected preferences %v", all)
	}

	if err := repo.Delete(ctx, "caja-1", "theme", "business_name"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	all, _ = repo.List(ctx, "caja-1")
	if len(all) != 0 {
		t.Fatalf("expected empty preferences, got %v", all)
	}
	if v, _ := repo.Get(ctx, "caja-2", "theme"); v != "dark" {
		t.Fatalf("other terminal must be untouched, got %q", v)
	}
}

func TestSQLite_Sessions(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepo(ctx, t)

	sess := domain.TerminalSession{
		Token:      "tok-1",
		TerminalID: "caja-1",
		User:       domain.User{ID: 7, Username: "ana", Role: "Cajero"},
	}
	if err := repo.SaveSession(ctx, sess); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	got, err := repo.GetSession(ctx, "tok-1")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got.User.ID != 7 || got.User.Username != "ana" || got.TerminalID != "caja-1" {
		t.Fatalf("unexpected session %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Fatalf("expected created_at to be set")
	}

	if err := repo.DeleteSession(ctx, "tok-1"); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if _, err := repo.GetSession(ctx, "tok-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}
