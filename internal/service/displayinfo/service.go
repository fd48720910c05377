// Package displayinfo manages the public-page configuration of a profile:
// header and hero content, contact details, social and utility links.
package displayinfo

import (
	"context"
	"errors"
	"time"

	"github.com/janisto/profile-pages/internal/platform/auth"
	applog "github.com/janisto/profile-pages/internal/platform/logging"
)

var (
	ErrNotFound      = errors.New("display info not found")
	ErrAlreadyExists = errors.New("display info already exists")
)

// DisplayInfo is the page configuration of one profile. It does not exist
// until the owner creates it.
type DisplayInfo struct {
	ProfileID string
	FormData
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store persists display info keyed by profile ID. Update replaces every
// editable field. Implementations trim all values and lowercase
// email_contact.
type Store interface {
	Get(ctx context.Context, profileID string) (*DisplayInfo, error)
	Create(ctx context.Context, profileID string, data FormData) (*DisplayInfo, error)
	Update(ctx context.Context, profileID string, data FormData) (*DisplayInfo, error)
	Delete(ctx context.Context, profileID string) error
}

func auditCategory(err error) string {
	switch {
	case errors.Is(err, ErrAlreadyExists):
		return "already_exists"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "internal_error"
	}
}

// audit logs a store event. The acting identity comes from the request;
// work without one is attributed to the profile itself.
func audit(ctx context.Context, action, profileID string, err error) {
	ev := applog.AuditEvent{Action: action, UserID: profileID, ResourceType: "display_info", ResourceID: profileID}
	if u := auth.UserFromContext(ctx); u != nil {
		ev.UserID = u.UID
	}
	if err != nil {
		ev.Result = applog.AuditFailure
		ev.Details = map[string]any{"error": auditCategory(err)}
	}
	applog.LogAuditEvent(ctx, ev)
}
