package displayinfo

import (
	"github.com/janisto/profile-pages/internal/notify"
	"github.com/janisto/profile-pages/internal/platform/timeutil"
	"github.com/janisto/profile-pages/internal/service/editor"
	displayinfosvc "github.com/janisto/profile-pages/internal/service/displayinfo"
)

// DisplayInfo is the public-page configuration of a profile. Before the
// first save Exists is false and every field is empty.
type DisplayInfo struct {
	ProfileID string      `json:"profileId" doc:"Owning profile"`
	Exists    bool        `json:"exists"    doc:"Whether a record has been saved"`
	Mode      editor.Mode `json:"mode"      enum:"view,edit,create" doc:"Editor mode after the request"`
	displayinfosvc.FormData
	Completion       int                         `json:"completion"       minimum:"0" maximum:"100"`
	HeaderCompletion int                         `json:"headerCompletion" minimum:"0" maximum:"100"`
	HeroCompletion   int                         `json:"heroCompletion"   minimum:"0" maximum:"100"`
	IsComplete       bool                        `json:"isComplete"       doc:"Display name, contact email and phone are set"`
	IsHeaderComplete bool                        `json:"isHeaderComplete"`
	IsHeroComplete   bool                        `json:"isHeroComplete"`
	SocialLinks      []displayinfosvc.SocialLink `json:"socialLinks"      doc:"Filled social links with their validity"`
	CreatedAt        *timeutil.Time              `json:"createdAt,omitempty" example:"2024-01-15T10:30:00.000Z"`
	UpdatedAt        *timeutil.Time              `json:"updatedAt,omitempty" example:"2024-01-15T10:30:00.000Z"`
}

// SaveResult is returned by writes.
type SaveResult struct {
	DisplayInfo   DisplayInfo           `json:"displayInfo"`
	Notifications []notify.Notification `json:"notifications" doc:"Messages raised by the write and cache sync"`
}

// Fields describes the editor form.
type Fields struct {
	Categories []displayinfosvc.Category `json:"categories"`
	Labels     map[string]string         `json:"labels"`
}
