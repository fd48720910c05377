package profile

import profilesvc "github.com/janisto/profile-pages/internal/service/profile"

// ProfileGetInput for GET /profile (no body needed)
type ProfileGetInput struct{}

// ProfileSaveInput for PUT /profile. The body replaces every editable field.
type ProfileSaveInput struct {
	Body profilesvc.FormData
}

// ProfileDeleteInput for DELETE /profile
type ProfileDeleteInput struct {
	Confirm bool `query:"confirm" doc:"Must be true; deletion cannot be undone"`
}
