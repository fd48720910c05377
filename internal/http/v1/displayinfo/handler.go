package displayinfo

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/profile-pages/internal/http/v1/problem"
	"github.com/janisto/profile-pages/internal/notify"
	"github.com/janisto/profile-pages/internal/platform/auth"
	"github.com/janisto/profile-pages/internal/platform/timeutil"
	displayinfosvc "github.com/janisto/profile-pages/internal/service/displayinfo"
	"github.com/janisto/profile-pages/internal/service/editor"
	profilesvc "github.com/janisto/profile-pages/internal/service/profile"
)

var (
	sentinels = problem.Sentinels{
		NotFound:      displayinfosvc.ErrNotFound,
		AlreadyExists: displayinfosvc.ErrAlreadyExists,
	}
	bearer = []map[string][]string{{"bearerAuth": {}}}
)

// Handler serves the display-info endpoints. Every request first resolves the
// caller's profile, creating it when missing.
type Handler struct {
	profiles *profilesvc.Ensurer
	manager  *displayinfosvc.Manager
}

// Register registers display-info endpoints.
func Register(api huma.API, profiles *profilesvc.Ensurer, manager *displayinfosvc.Manager) {
	h := &Handler{profiles: profiles, manager: manager}

	huma.Register(api, huma.Operation{
		OperationID: "get-display-info-fields",
		Method:      http.MethodGet,
		Path:        "/display-info/fields",
		Summary:     "Describe the display-info form",
		Description: "Lists field labels and the categories the editor groups them into.",
		Tags:        []string{"Display info"},
	}, func(_ context.Context, _ *struct{}) (*FieldsOutput, error) {
		return &FieldsOutput{Body: Fields{Categories: displayinfosvc.Categories, Labels: displayinfosvc.Labels}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-display-info",
		Method:      http.MethodGet,
		Path:        "/display-info",
		Summary:     "Get current user's display info",
		Description: "Returns the public-page configuration, or an empty form in create mode when none is saved.",
		Tags:        []string{"Display info"},
		Security:    bearer,
	}, h.get)

	huma.Register(api, huma.Operation{
		OperationID: "save-display-info",
		Method:      http.MethodPut,
		Path:        "/display-info",
		Summary:     "Save current user's display info",
		Description: "Validates and saves every field, creating the record when none exists. Header or hero changes invalidate the public page cache.",
		Tags:        []string{"Display info"},
		Security:    bearer,
	}, func(ctx context.Context, input *SaveInput) (*SaveOutput, error) {
		return submit(ctx, h, h.manager.Open, input.Body)
	})

	huma.Register(api, huma.Operation{
		OperationID: "save-display-info-header",
		Method:      http.MethodPut,
		Path:        "/display-info/header",
		Summary:     "Save the page header",
		Description: "Updates display name and logo. The display info must already exist.",
		Tags:        []string{"Display info"},
		Security:    bearer,
	}, func(ctx context.Context, input *HeaderInput) (*SaveOutput, error) {
		return submit(ctx, h, h.manager.OpenHeader, input.Body)
	})

	huma.Register(api, huma.Operation{
		OperationID: "save-display-info-hero",
		Method:      http.MethodPut,
		Path:        "/display-info/hero",
		Summary:     "Save the page hero section",
		Description: "Updates headline, subheadline, call to action and hero image. The display info must already exist.",
		Tags:        []string{"Display info"},
		Security:    bearer,
	}, func(ctx context.Context, input *HeroInput) (*SaveOutput, error) {
		return submit(ctx, h, h.manager.OpenHero, input.Body)
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-display-info",
		Method:      http.MethodDelete,
		Path:        "/display-info",
		Summary:     "Delete current user's display info",
		Description: "Permanently deletes the public-page configuration. Requires confirm=true.",
		Tags:        []string{"Display info"},
		Security:    bearer,
	}, h.delete)
}

func (h *Handler) profileID(ctx context.Context) (string, error) {
	user := auth.UserFromContext(ctx)
	id := profilesvc.Identity{}
	if user != nil {
		id = profilesvc.Identity{ID: user.UID, Email: user.Email, FullName: user.Name}
	}
	p, err := h.profiles.Ensure(ctx, id)
	if err != nil {
		return "", problem.FromEditor(ctx, err, "profile", problem.Sentinels{})
	}
	return p.ID, nil
}

func (h *Handler) get(ctx context.Context, _ *GetInput) (*GetOutput, error) {
	profileID, err := h.profileID(ctx)
	if err != nil {
		return nil, err
	}
	s, err := h.manager.Open(ctx, profileID)
	if err != nil {
		return nil, problem.FromEditor(ctx, err, "display info", sentinels)
	}
	return &GetOutput{Body: toHTTPDisplayInfo(profileID, s.Record(), s.Mode())}, nil
}

func submit[F any](
	ctx context.Context,
	h *Handler,
	open func(context.Context, string) (*editor.Session[displayinfosvc.DisplayInfo, F], error),
	form F,
) (*SaveOutput, error) {
	profileID, err := h.profileID(ctx)
	if err != nil {
		return nil, err
	}
	ctx, rec := notify.WithRecorder(ctx)

	s, err := open(ctx, profileID)
	if err != nil {
		return nil, problem.FromEditor(ctx, err, "display info", sentinels)
	}
	if err := s.Submit(ctx, form); err != nil {
		return nil, problem.FromEditor(ctx, err, "display info", sentinels)
	}
	return &SaveOutput{Body: SaveResult{
		DisplayInfo:   toHTTPDisplayInfo(profileID, s.Record(), s.Mode()),
		Notifications: rec.Notifications(),
	}}, nil
}

func (h *Handler) delete(ctx context.Context, input *DeleteInput) (*SaveOutput, error) {
	profileID, err := h.profileID(ctx)
	if err != nil {
		return nil, err
	}
	ctx, rec := notify.WithRecorder(ctx)

	s, err := h.manager.Open(ctx, profileID)
	if err != nil {
		return nil, problem.FromEditor(ctx, err, "display info", sentinels)
	}
	if !s.Exists() {
		return nil, huma.Error404NotFound("display info not found")
	}
	if err := s.Delete(ctx, input.Confirm); err != nil {
		return nil, problem.FromEditor(ctx, err, "display info", sentinels)
	}
	return &SaveOutput{Body: SaveResult{
		DisplayInfo:   toHTTPDisplayInfo(profileID, nil, s.Mode()),
		Notifications: rec.Notifications(),
	}}, nil
}

func toHTTPDisplayInfo(profileID string, d *displayinfosvc.DisplayInfo, mode editor.Mode) DisplayInfo {
	out := DisplayInfo{
		ProfileID:        profileID,
		Exists:           d != nil,
		Mode:             mode,
		FormData:         displayinfosvc.Format(d),
		Completion:       displayinfosvc.CompletionPercentage(d),
		HeaderCompletion: displayinfosvc.HeaderCompletionPercentage(d),
		HeroCompletion:   displayinfosvc.HeroCompletionPercentage(d),
		IsComplete:       displayinfosvc.IsComplete(d),
		IsHeaderComplete: displayinfosvc.IsHeaderComplete(d),
		IsHeroComplete:   displayinfosvc.IsHeroComplete(d),
		SocialLinks:      displayinfosvc.ExtractSocialLinks(d),
	}
	if d != nil {
		created, updated := timeutil.NewTime(d.CreatedAt), timeutil.NewTime(d.UpdatedAt)
		out.CreatedAt, out.UpdatedAt = &created, &updated
	}
	return out
}
