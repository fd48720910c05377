package displayinfo

import displayinfosvc "github.com/janisto/profile-pages/internal/service/displayinfo"

// GetInput for GET /display-info (no body needed)
type GetInput struct{}

// SaveInput for PUT /display-info. The body replaces every editable field.
type SaveInput struct {
	Body displayinfosvc.FormData
}

// HeaderInput for PUT /display-info/header
type HeaderInput struct {
	Body displayinfosvc.HeaderForm
}

// HeroInput for PUT /display-info/hero
type HeroInput struct {
	Body displayinfosvc.HeroForm
}

// DeleteInput for DELETE /display-info
type DeleteInput struct {
	Confirm bool `query:"confirm" doc:"Must be true; deletion cannot be undone"`
}
