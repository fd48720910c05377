package auth

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	applog "github.com/janisto/profile-pages/internal/platform/logging"
)

// rejection is how a failed authentication is reported to the client.
type rejection struct {
	status int
	detail string
	header string
	value  string
}

var (
	rejectMissing     = rejection{http.StatusUnauthorized, "missing or invalid authorization header", "WWW-Authenticate", "Bearer"}
	rejectInvalid     = rejection{http.StatusUnauthorized, "invalid or expired token", "WWW-Authenticate", "Bearer"}
	rejectUnavailable = rejection{http.StatusServiceUnavailable, "authentication service temporarily unavailable", "Retry-After", "30"}
)

// Middleware authenticates operations that declare a Security requirement
// and stores the resulting User in the request context.
func Middleware(api huma.API, verifier Verifier) func(huma.Context, func(huma.Context)) {
	reject := func(ctx huma.Context, err error, r rejection) {
		applog.LogWarn(ctx.Context(), "auth rejected",
			zap.String("operation", ctx.Operation().OperationID),
			zap.String("reason", reason(err)),
		)
		ctx.SetHeader(r.header, r.value)
		_ = huma.WriteErr(api, ctx, r.status, r.detail)
	}

	return func(ctx huma.Context, next func(huma.Context)) {
		if len(ctx.Operation().Security) == 0 {
			next(ctx)
			return
		}

		token, err := ExtractBearerToken(ctx.Header("Authorization"))
		if err != nil {
			reject(ctx, err, rejectMissing)
			return
		}
		user, err := verifier.Verify(ctx.Context(), token)
		switch {
		case errors.Is(err, ErrCertificateFetch):
			reject(ctx, err, rejectUnavailable)
			return
		case err != nil:
			reject(ctx, err, rejectInvalid)
			return
		}
		next(huma.WithContext(ctx, WithUser(ctx.Context(), user)))
	}
}

var reasons = []struct {
	err  error
	name string
}{
	{ErrNoToken, "no_token"},
	{ErrTokenExpired, "token_expired"},
	{ErrTokenRevoked, "token_revoked"},
	{ErrUserDisabled, "user_disabled"},
	{ErrCertificateFetch, "certificate_fetch_failed"},
	{ErrInvalidToken, "invalid_token"},
}

// reason is a log-safe category; token contents are never logged.
func reason(err error) string {
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.name
		}
	}
	return "unknown"
}
