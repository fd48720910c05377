package profile

import (
	"context"
	"errors"

	"github.com/janisto/profile-pages/internal/service/cachesync"
	"github.com/janisto/profile-pages/internal/service/editor"
)

// Syncer is the part of the cache-sync coordinator the managers use.
type Syncer interface {
	SyncAfterEdit(ctx context.Context, group cachesync.Group, subject string) bool
}

// Session is an editing session over one identity's profile.
type Session = editor.Session[Profile, FormData]

// Manager opens profile editing sessions scoped to an identity.
type Manager struct {
	store  Store
	syncer Syncer
}

func NewManager(store Store, syncer Syncer) *Manager {
	return &Manager{store: store, syncer: syncer}
}

// Open loads the identity's profile. A missing profile opens in create mode.
func (m *Manager) Open(ctx context.Context, userID string) (*Session, error) {
	return editor.Open(ctx, &backend{store: m.store, userID: userID}, editor.Hooks[Profile, FormData]{
		Noun:     "profile",
		Format:   Format,
		Empty:    Empty,
		Validate: Validate,
		AfterSave: func(ctx context.Context, _, saved *Profile) {
			// Profile fields are internal; the coordinator skips the call.
			m.syncer.SyncAfterEdit(ctx, cachesync.GroupProfile, saved.ID)
		},
	})
}

// backend adapts Store to editor.Backend for one identity.
type backend struct {
	store  Store
	userID string
}

func (b *backend) Load(ctx context.Context) (*Profile, error) {
	p, err := b.store.Get(ctx, b.userID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return p, err
}

func (b *backend) Insert(ctx context.Context, f FormData) (*Profile, error) {
	return b.store.Create(ctx, b.userID, f.createParams())
}

func (b *backend) Update(ctx context.Context, f FormData) (*Profile, error) {
	return b.store.Update(ctx, b.userID, f.updateParams())
}

func (b *backend) Delete(ctx context.Context) error {
	return b.store.Delete(ctx, b.userID)
}
