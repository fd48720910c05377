package displayinfo

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"

	"github.com/janisto/profile-pages/internal/platform/auth"
	"github.com/janisto/profile-pages/internal/platform/config"
	"github.com/janisto/profile-pages/internal/platform/database"
	applog "github.com/janisto/profile-pages/internal/platform/logging"
	profilesvc "github.com/janisto/profile-pages/internal/service/profile"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(context.Background(), config.BackendSQLite, filepath.Join(t.TempDir(), "display.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func newSQLStore(t *testing.T) *SQLStore {
	t.Helper()
	ctx := context.Background()
	store := NewSQLStore(openSQLite(t))
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store
}

func TestSQLStoreLifecycle(t *testing.T) {
	store := newSQLStore(t)
	ctx := context.Background()

	if _, err := store.Get(ctx, "p-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	created, err := store.Create(ctx, "p-1", FormData{DisplayName: " Ada ", WhatsAppLink: "https://wa.me/1", EmailContact: "ADA@EXAMPLE.COM"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.DisplayName != "Ada" || created.EmailContact != "ada@example.com" {
		t.Fatalf("unexpected record %+v", created.FormData)
	}
	if _, err := store.Create(ctx, "p-1", FormData{}); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	// Update replaces every field, including clearing ones left empty.
	updated, err := store.Update(ctx, "p-1", FormData{Headline: "Engines"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Headline != "Engines" || updated.DisplayName != "" {
		t.Fatalf("unexpected update %+v", updated.FormData)
	}
	got, err := store.Get(ctx, "p-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.FormData != updated.FormData || got.WhatsAppLink != "" {
		t.Fatalf("stored %+v, want %+v", got.FormData, updated.FormData)
	}
	if got.CreatedAt.IsZero() {
		t.Fatal("created_at must survive updates")
	}

	if err := store.Delete(ctx, "p-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Delete(ctx, "p-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.Update(ctx, "p-1", FormData{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLStoreWithManager(t *testing.T) {
	store := newSQLStore(t)
	m, inv := newManager(store)
	ctx := context.Background()

	s, err := m.Open(ctx, "p-2")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Submit(ctx, FormData{Bio: "hello"}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	hero, err := m.OpenHero(ctx, "p-2")
	if err != nil {
		t.Fatalf("OpenHero: %v", err)
	}
	if err := hero.Submit(ctx, HeroForm{Headline: "H", Subheadline: "S", CallToAction: "Go"}); err != nil {
		t.Fatalf("hero Submit: %v", err)
	}
	d, _ := store.Get(ctx, "p-2")
	if d.Bio != "hello" || d.Headline != "H" {
		t.Fatalf("unexpected record %+v", d.FormData)
	}
	if inv.Calls() != 1 {
		t.Fatalf("expected one invalidation for the hero save, got %v", inv.Reasons())
	}
}

func TestSQLProfileDeleteRemovesDisplayInfo(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)
	pages := NewSQLStore(db)
	profiles := profilesvc.NewSQLStore(db, pages.DeleteOwned)
	if err := errors.Join(profiles.Migrate(ctx), pages.Migrate(ctx)); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	ensurer := profilesvc.NewEnsurer(profiles)
	identity := profilesvc.Identity{ID: "user-1", Email: "ada@example.com"}

	p, err := ensurer.Ensure(ctx, identity)
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if _, err := pages.Create(ctx, p.ID, FormData{DisplayName: "Ada"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := pages.Create(ctx, "other-profile", FormData{DisplayName: "Grace"}); err != nil {
		t.Fatalf("Create other: %v", err)
	}

	if err := profiles.Delete(ctx, identity.ID); err != nil {
		t.Fatalf("Delete profile: %v", err)
	}
	if _, err := pages.Get(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected display info of deleted profile to be gone, got %v", err)
	}
	if _, err := pages.Get(ctx, "other-profile"); err != nil {
		t.Fatalf("unrelated display info must survive: %v", err)
	}

	// A profile without display info deletes cleanly too.
	again, err := ensurer.Ensure(ctx, identity)
	if err != nil {
		t.Fatalf("Ensure again: %v", err)
	}
	if again.ID == p.ID {
		t.Fatal("expected a fresh profile after deletion")
	}
	if err := profiles.Delete(ctx, identity.ID); err != nil {
		t.Fatalf("Delete profile without display info: %v", err)
	}
}

func TestSQLStoreAuditsActingUser(t *testing.T) {
	store := newSQLStore(t)
	core, logs := observer.New(zapcore.InfoLevel)
	ctx := applog.WithLogger(context.Background(), zap.New(core))

	if _, err := store.Create(auth.WithUser(ctx, &auth.User{UID: "uid-7"}), "p-7", FormData{}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := store.Delete(ctx, "p-7"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	entries := logs.FilterMessage("Audit event").All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 audit events, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["audit.user_id"]; got != "uid-7" {
		t.Fatalf("create audit user = %v, want uid-7", got)
	}
	if got := entries[1].ContextMap()["audit.user_id"]; got != "p-7" {
		t.Fatalf("audit without a request user = %v, want the profile ID", got)
	}
}
