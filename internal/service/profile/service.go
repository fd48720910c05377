package profile

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("profile not found")
	ErrAlreadyExists = errors.New("profile already exists")
)

// Profile is the internal account record of one identity.
type Profile struct {
	ID            string
	UserID        string
	FullName      string
	InternalEmail string
	InternalPhone string
	CompanyName   string
	DocumentID    string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CreateParams seeds a new profile.
type CreateParams struct {
	FullName      string
	InternalEmail string
	InternalPhone string
	CompanyName   string
	DocumentID    string
}

// UpdateParams changes only the non-nil fields.
type UpdateParams struct {
	FullName      *string
	InternalEmail *string
	InternalPhone *string
	CompanyName   *string
	DocumentID    *string
}

// Store persists profiles keyed by the owning identity. Every operation is
// scoped to userID; there is no way to reach another identity's row.
//
// Implementations normalize input: InternalEmail is trimmed and lowercased,
// the other fields are trimmed. Get and Delete return ErrNotFound when no
// row exists; Create returns ErrAlreadyExists when one does.
type Store interface {
	Get(ctx context.Context, userID string) (*Profile, error)
	Create(ctx context.Context, userID string, params CreateParams) (*Profile, error)
	Update(ctx context.Context, userID string, params UpdateParams) (*Profile, error)
	Delete(ctx context.Context, userID string) error
}
