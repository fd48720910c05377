package profile

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/profile-pages/internal/http/v1/problem"
	"github.com/janisto/profile-pages/internal/notify"
	"github.com/janisto/profile-pages/internal/platform/auth"
	"github.com/janisto/profile-pages/internal/platform/timeutil"
	"github.com/janisto/profile-pages/internal/service/editor"
	profilesvc "github.com/janisto/profile-pages/internal/service/profile"
)

var sentinels = problem.Sentinels{
	NotFound:      profilesvc.ErrNotFound,
	AlreadyExists: profilesvc.ErrAlreadyExists,
}

// Register registers profile endpoints.
func Register(api huma.API, ensurer *profilesvc.Ensurer, manager *profilesvc.Manager) {
	huma.Register(api, huma.Operation{
		OperationID: "get-profile",
		Method:      http.MethodGet,
		Path:        "/profile",
		Summary:     "Get current user's profile",
		Description: "Returns the profile of the authenticated user, creating it from the identity on first access.",
		Tags:        []string{"Profile"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, _ *ProfileGetInput) (*ProfileGetOutput, error) {
		p, err := ensurer.Ensure(ctx, Identity(auth.UserFromContext(ctx)))
		if err != nil {
			return nil, problem.FromEditor(ctx, err, "profile", sentinels)
		}
		return &ProfileGetOutput{Body: toHTTPProfile(p, editor.View)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "save-profile",
		Method:      http.MethodPut,
		Path:        "/profile",
		Summary:     "Save current user's profile",
		Description: "Validates and saves every profile field. Creates the profile when none exists.",
		Tags:        []string{"Profile"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *ProfileSaveInput) (*ProfileSaveOutput, error) {
		user := auth.UserFromContext(ctx)
		ctx, rec := notify.WithRecorder(ctx)

		s, err := manager.Open(ctx, user.UID)
		if err != nil {
			return nil, problem.FromEditor(ctx, err, "profile", sentinels)
		}
		if err := s.Submit(ctx, input.Body); err != nil {
			return nil, problem.FromEditor(ctx, err, "profile", sentinels)
		}
		body := toHTTPProfile(s.Record(), s.Mode())
		return &ProfileSaveOutput{Body: SaveResult{Profile: &body, Notifications: rec.Notifications()}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-profile",
		Method:      http.MethodDelete,
		Path:        "/profile",
		Summary:     "Delete current user's profile",
		Description: "Permanently deletes the authenticated user's profile. Requires confirm=true.",
		Tags:        []string{"Profile"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *ProfileDeleteInput) (*ProfileSaveOutput, error) {
		user := auth.UserFromContext(ctx)
		ctx, rec := notify.WithRecorder(ctx)

		s, err := manager.Open(ctx, user.UID)
		if err != nil {
			return nil, problem.FromEditor(ctx, err, "profile", sentinels)
		}
		if !s.Exists() {
			return nil, huma.Error404NotFound("profile not found")
		}
		if err := s.Delete(ctx, input.Confirm); err != nil {
			return nil, problem.FromEditor(ctx, err, "profile", sentinels)
		}
		return &ProfileSaveOutput{Body: SaveResult{Notifications: rec.Notifications()}}, nil
	})
}

// Identity maps the authenticated user to the identity a profile is seeded
// from.
func Identity(user *auth.User) profilesvc.Identity {
	if user == nil {
		return profilesvc.Identity{}
	}
	return profilesvc.Identity{ID: user.UID, Email: user.Email, FullName: user.Name}
}

func toHTTPProfile(p *profilesvc.Profile, mode editor.Mode) Profile {
	return Profile{
		ID:         p.ID,
		FormData:   profilesvc.Format(p),
		Mode:       mode,
		Completion: profilesvc.CompletionPercentage(p),
		IsComplete: profilesvc.IsComplete(p),
		CreatedAt:  timeutil.NewTime(p.CreatedAt),
		UpdatedAt:  timeutil.NewTime(p.UpdatedAt),
	}
}
