package session

import (
	"context"
	"path/filepath"
	"testing"

	"smarttravel/models"
)

func newTestSQLiteStore(t *testing.T, scope string) *SQLiteStore {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "creds.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSQLiteStore(db, scope)
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t, "tab1")

	if creds, err := s.Load(ctx); err != nil || creds != nil {
		t.Fatalf("Load() on empty store = %+v, %v", creds, err)
	}

	want := Credentials{Token: "tok", User: &models.User{ID: "u1", Nombre: "Ana"}}
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Token != "tok" || got.User == nil || got.User.ID != "u1" {
		t.Errorf("Load() = %+v", got)
	}

	// Save is an upsert: a second write replaces, never duplicates.
	want.Token = "tok2"
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("second Save() error = %v", err)
	}
	got, _ = s.Load(ctx)
	if got.Token != "tok2" {
		t.Errorf("token after upsert = %q", got.Token)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if creds, _ := s.Load(ctx); creds != nil {
		t.Errorf("credentials survived Clear: %+v", creds)
	}
}

func TestSQLiteStoreTokenOnly(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t, "tab1")

	if err := s.Save(ctx, Credentials{Token: "tok"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.User != nil {
		t.Errorf("user = %+v, want nil when only a token was stored", got.User)
	}
}

func TestSQLiteStoreScopesIsolated(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "creds.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	a := NewSQLiteStore(db, "a")
	b := NewSQLiteStore(db, "b")

	a.Save(ctx, Credentials{Token: "tok-a"})
	b.Save(ctx, Credentials{Token: "tok-b"})
	a.Clear(ctx)

	if creds, _ := a.Load(ctx); creds != nil {
		t.Error("scope a survived its own clear")
	}
	creds, err := b.Load(ctx)
	if err != nil || creds == nil || creds.Token != "tok-b" {
		t.Errorf("scope b = %+v, %v", creds, err)
	}
}
