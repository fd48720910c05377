package middleware

import (
	"context"
	"net/http"
	"strings"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const maxRequestIDLength = 128

// clientRequestID returns the caller's X-Request-Id when it is short
// printable ASCII, so it can go into logs verbatim.
func clientRequestID(r *http.Request) (string, bool) {
	id := r.Header.Get(chimiddleware.RequestIDHeader)
	if id == "" || len(id) > maxRequestIDLength {
		return "", false
	}
	if strings.IndexFunc(id, func(c rune) bool { return c < 0x20 || c > 0x7E }) >= 0 {
		return "", false
	}
	return id, true
}

// RequestID keeps a valid incoming X-Request-Id or mints a UUIDv4, stores it
// where chi's GetReqID finds it and echoes it on the response.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := clientRequestID(r)
			if !ok {
				id = uuid.NewString()
			}
			w.Header().Set(chimiddleware.RequestIDHeader, id)
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), chimiddleware.RequestIDKey, id)))
		})
	}
}
