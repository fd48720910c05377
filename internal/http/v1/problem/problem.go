// Package problem maps editing-session errors to Huma problem responses.
package problem

import (
	"context"
	"errors"
	"maps"
	"net/http"
	"slices"

	"github.com/danielgtaylor/huma/v2"

	applog "github.com/janisto/profile-pages/internal/platform/logging"
	"github.com/janisto/profile-pages/internal/service/editor"
)

// Sentinels are a store's not-found and already-exists errors.
type Sentinels struct {
	NotFound      error
	AlreadyExists error
}

// FromEditor converts an error returned by an editing session. noun names the
// record in details, e.g. "profile".
func FromEditor(ctx context.Context, err error, noun string, s Sentinels) error {
	var (
		verr *editor.ValidationError
		perr *editor.PersistenceError
	)
	switch {
	case errors.As(err, &verr):
		return Validation(verr)
	case errors.Is(err, editor.ErrConfirmationRequired):
		return huma.NewError(http.StatusPreconditionRequired, "delete requires confirm=true")
	case s.NotFound != nil && errors.Is(err, s.NotFound):
		return huma.Error404NotFound(noun + " not found")
	case s.AlreadyExists != nil && errors.Is(err, s.AlreadyExists):
		return huma.Error409Conflict(noun + " already exists")
	case errors.Is(err, editor.ErrIllegalTransition):
		return huma.Error409Conflict(err.Error())
	case errors.As(err, &perr):
		return huma.Error500InternalServerError(perr.Error())
	default:
		applog.LogError(ctx, "request failed", err)
		return huma.Error500InternalServerError("internal error")
	}
}

// Validation is a 422 with one detail per field, ordered by field name.
func Validation(verr *editor.ValidationError) error {
	details := make([]error, 0, len(verr.Fields))
	for _, field := range slices.Sorted(maps.Keys(verr.Fields)) {
		details = append(details, &huma.ErrorDetail{
			Message:  verr.Fields[field],
			Location: "body." + field,
		})
	}
	return huma.Error422UnprocessableEntity("validation failed", details...)
}
