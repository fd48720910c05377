// Package middleware holds the net/http middleware shared by every route.
package middleware

import (
	"net/http"
	"strings"
)

// securityHeaders follow the OWASP REST guidance. Cache-Control is no-store
// because every response carries per-identity data.
var securityHeaders = [][2]string{
	{"Cache-Control", "no-store"},
	{"Content-Security-Policy", "frame-ancestors 'none'"},
	{"Cross-Origin-Opener-Policy", "same-origin"},
	{"Cross-Origin-Resource-Policy", "same-origin"},
	{"Permissions-Policy", "camera=(), geolocation=(), microphone=(), payment=(), usb=()"},
	{"Referrer-Policy", "strict-origin-when-cross-origin"},
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "DENY"},
}

// Security sets securityHeaders on every response outside skipPrefixes. The
// API docs UI is skipped so it can load its assets.
func Security(skipPrefixes ...string) func(http.Handler) http.Handler {
	skipped := func(path string) bool {
		for _, p := range skipPrefixes {
			if strings.HasPrefix(path, p) {
				return true
			}
		}
		return false
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !skipped(r.URL.Path) {
				h := w.Header()
				for _, kv := range securityHeaders {
					h.Set(kv[0], kv[1])
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
