package profile

import (
	"github.com/janisto/profile-pages/internal/notify"
	"github.com/janisto/profile-pages/internal/platform/timeutil"
	"github.com/janisto/profile-pages/internal/service/editor"
	profilesvc "github.com/janisto/profile-pages/internal/service/profile"
)

// Profile is the profile response: stored fields plus completion metrics.
type Profile struct {
	ID string `json:"id" doc:"Unique identifier" example:"0d8a4d6e-3f55-4b8e-9c43-3b1f0e8c2a11"`
	profilesvc.FormData
	Mode       editor.Mode   `json:"mode"       enum:"view,edit,create" doc:"Editor mode after the request"`
	Completion int           `json:"completion" minimum:"0" maximum:"100" doc:"Share of filled fields"`
	IsComplete bool          `json:"isComplete" doc:"Full name, internal email and internal phone are set"`
	CreatedAt  timeutil.Time `json:"createdAt"  doc:"Creation timestamp"    example:"2024-01-15T10:30:00.000Z"`
	UpdatedAt  timeutil.Time `json:"updatedAt"  doc:"Last update timestamp" example:"2024-01-15T10:30:00.000Z"`
}

// SaveResult is returned by writes.
type SaveResult struct {
	Profile       *Profile              `json:"profile,omitempty" doc:"Profile after the write; absent after delete"`
	Notifications []notify.Notification `json:"notifications"     doc:"Messages raised by the write and cache sync"`
}
