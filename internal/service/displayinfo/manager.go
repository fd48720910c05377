package displayinfo

import (
	"context"
	"errors"

	"github.com/janisto/profile-pages/internal/service/cachesync"
	"github.com/janisto/profile-pages/internal/service/editor"
	"github.com/janisto/profile-pages/internal/validation"
)

// Syncer is the part of the cache-sync coordinator the manager uses.
type Syncer interface {
	SyncAfterEdit(ctx context.Context, group cachesync.Group, subject string) bool
	SyncGroups(ctx context.Context, groups []cachesync.Group, subject string) bool
}

// Editing sessions over a profile's display info: the whole record, or one
// of its externally visible sections.
type (
	Session       = editor.Session[DisplayInfo, FormData]
	HeaderSession = editor.Session[DisplayInfo, HeaderForm]
	HeroSession   = editor.Session[DisplayInfo, HeroForm]
)

// Manager opens display-info editing sessions scoped to a profile.
type Manager struct {
	store  Store
	syncer Syncer
}

func NewManager(store Store, syncer Syncer) *Manager {
	return &Manager{store: store, syncer: syncer}
}

// Open starts a session over every field. A save syncs each visible group
// whose fields changed, in one webhook call.
func (m *Manager) Open(ctx context.Context, profileID string) (*Session, error) {
	b := &backend[FormData]{
		store:     m.store,
		profileID: profileID,
		merge:     func(_ FormData, f FormData) FormData { return f },
		insert:    true,
	}
	return editor.Open(ctx, b, editor.Hooks[DisplayInfo, FormData]{
		Noun:     "display info",
		Format:   Format,
		Empty:    Empty,
		Validate: Validate,
		AfterSave: func(ctx context.Context, prev, saved *DisplayInfo) {
			m.syncer.SyncGroups(ctx, ChangedGroups(prev, saved), profileID)
		},
	})
}

// OpenHeader starts a header-section session. Section saves update an
// existing record only; without one they fail with ErrNotFound.
func (m *Manager) OpenHeader(ctx context.Context, profileID string) (*HeaderSession, error) {
	return openSection(ctx, m, profileID, cachesync.GroupHeader, "header",
		FormatHeader, EmptyHeader, ValidateHeader, FormData.WithHeader)
}

// OpenHero starts a hero-section session.
func (m *Manager) OpenHero(ctx context.Context, profileID string) (*HeroSession, error) {
	return openSection(ctx, m, profileID, cachesync.GroupHero, "hero section",
		FormatHero, EmptyHero, ValidateHero, FormData.WithHero)
}

func openSection[F any](
	ctx context.Context,
	m *Manager,
	profileID string,
	group cachesync.Group,
	noun string,
	format func(*DisplayInfo) F,
	empty func() F,
	validate func(F) validation.Result,
	merge func(FormData, F) FormData,
) (*editor.Session[DisplayInfo, F], error) {
	b := &backend[F]{store: m.store, profileID: profileID, merge: merge}
	return editor.Open(ctx, b, editor.Hooks[DisplayInfo, F]{
		Noun:     noun,
		Format:   format,
		Empty:    empty,
		Validate: validate,
		AfterSave: func(ctx context.Context, _, _ *DisplayInfo) {
			m.syncer.SyncAfterEdit(ctx, group, profileID)
		},
	})
}

// backend adapts Store to editor.Backend. Updates merge the submitted form
// into the stored record so a section save leaves other fields alone.
type backend[F any] struct {
	store     Store
	profileID string
	merge     func(FormData, F) FormData
	insert    bool
}

func (b *backend[F]) Load(ctx context.Context) (*DisplayInfo, error) {
	d, err := b.store.Get(ctx, b.profileID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return d, err
}

func (b *backend[F]) Insert(ctx context.Context, f F) (*DisplayInfo, error) {
	if !b.insert {
		return nil, ErrNotFound
	}
	return b.store.Create(ctx, b.profileID, b.merge(Empty(), f))
}

func (b *backend[F]) Update(ctx context.Context, f F) (*DisplayInfo, error) {
	current, err := b.store.Get(ctx, b.profileID)
	if err != nil {
		return nil, err
	}
	return b.store.Update(ctx, b.profileID, b.merge(current.FormData, f))
}

func (b *backend[F]) Delete(ctx context.Context) error {
	return b.store.Delete(ctx, b.profileID)
}
