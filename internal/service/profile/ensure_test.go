package profile

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestEnsureCreatesSeededProfile(t *testing.T) {
	store := NewMockStore()
	e := NewEnsurer(store)
	id := Identity{ID: "user-1", Email: "Ada@Example.com", FullName: "Ada Lovelace"}

	p, err := e.Ensure(context.Background(), id)
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if p.UserID != "user-1" || p.FullName != "Ada Lovelace" || p.InternalEmail != "ada@example.com" {
		t.Fatalf("unexpected profile %+v", p)
	}
	if p.ID == "" || p.CreatedAt.IsZero() {
		t.Fatalf("expected ID and timestamps, got %+v", p)
	}

	again, err := e.Ensure(context.Background(), id)
	if err != nil {
		t.Fatalf("second Ensure: %v", err)
	}
	if again.ID != p.ID {
		t.Fatalf("expected same profile, got %s and %s", p.ID, again.ID)
	}
	if store.CreateCount() != 1 {
		t.Fatalf("expected one create, got %d", store.CreateCount())
	}
}

func TestEnsureReturnsExisting(t *testing.T) {
	store := NewMockStore()
	store.Put(Profile{ID: "p-1", UserID: "user-1", FullName: "Existing"})

	p, err := NewEnsurer(store).Ensure(context.Background(), Identity{ID: "user-1", FullName: "Other"})
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if p.ID != "p-1" || p.FullName != "Existing" {
		t.Fatalf("expected existing profile, got %+v", p)
	}
	if store.CreateCount() != 0 {
		t.Fatal("must not create when a profile exists")
	}
}

func TestEnsurePropagatesLookupFailure(t *testing.T) {
	store := NewMockStore()
	outage := errors.New("rpc error: code = Unavailable")
	store.GetErr = outage

	_, err := NewEnsurer(store).Ensure(context.Background(), Identity{ID: "user-1"})
	if !errors.Is(err, outage) {
		t.Fatalf("expected outage error, got %v", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatal("outage must not look like not-found")
	}
	if store.CreateCount() != 0 {
		t.Fatal("must not create on lookup failure")
	}
}

func TestEnsureRejectsEmptyIdentity(t *testing.T) {
	if _, err := NewEnsurer(NewMockStore()).Ensure(context.Background(), Identity{}); err == nil {
		t.Fatal("expected error for empty identity")
	}
}

// racingStore reports not-found on the first Get so two callers both try to
// create.
type racingStore struct {
	*MockStore
	once sync.Once
}

func (s *racingStore) Get(ctx context.Context, userID string) (*Profile, error) {
	first := false
	s.once.Do(func() { first = true })
	if first {
		// Another request wins the create between our lookup and insert.
		_, _ = s.MockStore.Create(ctx, userID, CreateParams{FullName: "Winner"})
		return nil, ErrNotFound
	}
	return s.MockStore.Get(ctx, userID)
}

func TestEnsureRecoversFromCreateRace(t *testing.T) {
	store := &racingStore{MockStore: NewMockStore()}

	p, err := NewEnsurer(store).Ensure(context.Background(), Identity{ID: "user-1", FullName: "Loser"})
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if p.FullName != "Winner" {
		t.Fatalf("expected the winner's row, got %+v", p)
	}
	if store.CreateCount() != 1 {
		t.Fatalf("expected one row, got %d creates", store.CreateCount())
	}
}
