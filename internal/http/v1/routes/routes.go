package routes

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/profile-pages/internal/http/v1/displayinfo"
	"github.com/janisto/profile-pages/internal/http/v1/profile"
	"github.com/janisto/profile-pages/internal/platform/auth"
	displayinfosvc "github.com/janisto/profile-pages/internal/service/displayinfo"
	profilesvc "github.com/janisto/profile-pages/internal/service/profile"
)

// Services are the dependencies of the v1 operations.
type Services struct {
	Verifier      auth.Verifier
	Profiles      *profilesvc.Ensurer
	ProfileEditor *profilesvc.Manager
	DisplayEditor *displayinfosvc.Manager
}

// Register wires all HTTP routes into the provided API router.
func Register(api huma.API, svc Services) {
	// Apply auth middleware for protected endpoints
	api.UseMiddleware(auth.Middleware(api, svc.Verifier))

	profile.Register(api, svc.Profiles, svc.ProfileEditor)
	displayinfo.Register(api, svc.Profiles, svc.DisplayEditor)
}
