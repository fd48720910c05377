// Package respond writes RFC 9457 problem documents for responses produced
// outside Huma operations: unknown routes, wrong methods and panics.
package respond

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2/negotiation"
	"github.com/fxamacker/cbor/v2"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	applog "github.com/janisto/profile-pages/internal/platform/logging"
)

const (
	contentTypeJSON = "application/problem+json"
	contentTypeCBOR = "application/problem+cbor"
	schemaPath      = "/schemas/ErrorModel.json"
)

var offers = []string{"application/json", "application/cbor"}

// problem mirrors huma.ErrorModel with the $schema link Huma adds to its own
// error responses.
type problem struct {
	Schema string `json:"$schema,omitempty" cbor:"$schema,omitempty"`
	Title  string `json:"title"             cbor:"title"`
	Status int    `json:"status"            cbor:"status"`
	Detail string `json:"detail,omitempty"  cbor:"detail,omitempty"`
}

// wantsCBOR reports whether the client prefers CBOR. JSON wins ties and is
// the default when nothing matches.
func wantsCBOR(accept string) bool {
	if accept == "" {
		return false
	}
	return negotiation.SelectQValueFast(accept, offers) == "application/cbor"
}

func schemaURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return scheme + "://" + r.Host + schemaPath
}

// WriteProblem encodes a problem document in the negotiated format.
func WriteProblem(w http.ResponseWriter, r *http.Request, status int, detail string) {
	p := problem{
		Schema: schemaURL(r),
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	}

	var (
		body []byte
		err  error
		ct   = contentTypeJSON
	)
	if wantsCBOR(r.Header.Get("Accept")) {
		ct = contentTypeCBOR
		body, err = cbor.Marshal(p)
	} else {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		err = enc.Encode(p)
		body = buf.Bytes()
	}
	if err != nil {
		applog.LogError(r.Context(), "problem encode failed", err)
		w.WriteHeader(status)
		return
	}

	h := w.Header()
	h.Set("Content-Type", ct)
	h.Add("Link", fmt.Sprintf("<%s>; rel=\"describedBy\"", schemaPath))
	h.Add("Vary", "Accept")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// NotFoundHandler answers unknown routes.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteProblem(w, r, http.StatusNotFound, "resource not found")
	}
}

// MethodNotAllowedHandler answers known routes hit with the wrong method and
// lists the valid ones in Allow.
func MethodNotAllowedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if allowed := allowedMethods(r); len(allowed) > 0 {
			w.Header().Set("Allow", strings.Join(allowed, ", "))
		}
		WriteProblem(w, r, http.StatusMethodNotAllowed, fmt.Sprintf("method %s not allowed", r.Method))
	}
}

func allowedMethods(r *http.Request) []string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || rctx.Routes == nil {
		return nil
	}
	path := r.URL.RawPath
	if path == "" {
		path = r.URL.Path
	}
	var methods []string
	for _, m := range []string{
		http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions,
	} {
		if rctx.Routes.Match(chi.NewRouteContext(), m, path) {
			methods = append(methods, m)
		}
	}
	return methods
}

// statusWriter tracks whether headers were sent so a panic after a partial
// response does not write a second status line.
type statusWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}

func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// Recoverer turns panics into logged 500 problems. http.ErrAbortHandler is
// re-panicked so net/http can abort the connection.
func Recoverer() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := &statusWriter{ResponseWriter: w}
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}
				applog.LogError(r.Context(), "panic recovered", fmt.Errorf("%v", rec),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Stack("stack"),
				)
				if !sw.wroteHeader {
					WriteProblem(sw, r, http.StatusInternalServerError, "internal server error")
				}
			}()
			next.ServeHTTP(sw, r)
		})
	}
}
