package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	applog "github.com/janisto/profile-pages/internal/platform/logging"
)

// Response is the payload for the health endpoint.
type Response struct {
	Status string `json:"status"`
	Store  string `json:"store"`
}

// Checker probes a dependency; nil means healthy.
type Checker func(ctx context.Context) error

// Handler reports liveness of the process and of the record store named by
// store. A nil check always passes.
func Handler(store string, check Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, code := "healthy", http.StatusOK
		if check != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				applog.LogError(ctx, "health check failed", err)
				status, code = "unhealthy", http.StatusServiceUnavailable
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(Response{Status: status, Store: store})
	}
}
