package profile

// ProfileGetOutput for GET /profile
type ProfileGetOutput struct {
	Body Profile
}

// ProfileSaveOutput for PUT and DELETE /profile
type ProfileSaveOutput struct {
	Body SaveResult
}
