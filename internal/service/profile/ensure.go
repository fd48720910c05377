package profile

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	applog "github.com/janisto/profile-pages/internal/platform/logging"
)

// Identity is the authenticated caller as the identity provider reports it.
// FullName comes from profile metadata and may be empty.
type Identity struct {
	ID       string
	Email    string
	FullName string
}

// Ensurer guarantees that an identity has a profile, creating it on first
// access.
type Ensurer struct {
	store Store
}

func NewEnsurer(store Store) *Ensurer {
	return &Ensurer{store: store}
}

// Ensure returns the identity's profile, creating one seeded from the
// identity when the lookup reports ErrNotFound. Any other lookup failure is
// returned unchanged so outages never look like missing profiles. A create
// that loses a race to a concurrent one re-reads the winner's row.
func (e *Ensurer) Ensure(ctx context.Context, id Identity) (*Profile, error) {
	if id.ID == "" {
		return nil, errors.New("ensure profile: empty identity")
	}

	p, err := e.store.Get(ctx, id.ID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("lookup profile: %w", err)
	}

	p, err = e.store.Create(ctx, id.ID, CreateParams{
		FullName:      id.FullName,
		InternalEmail: id.Email,
	})
	if errors.Is(err, ErrAlreadyExists) {
		p, err = e.store.Get(ctx, id.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	applog.LogInfo(ctx, "profile created on first access", zap.String("profileId", p.ID))
	return p, nil
}
