package middleware

import "net/http"

// Vary appends request headers the response is negotiated on. With no
// arguments it adds Accept, since bodies are JSON or CBOR by Accept.
func Vary(headers ...string) func(http.Handler) http.Handler {
	if len(headers) == 0 {
		headers = []string{"Accept"}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, h := range headers {
				w.Header().Add("Vary", h)
			}
			next.ServeHTTP(w, r)
		})
	}
}
