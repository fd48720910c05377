package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func containsHeader(headerValue, target string) bool {
	for part := range strings.SplitSeq(headerValue, ",") {
		if strings.EqualFold(strings.TrimSpace(part), target) {
			return true
		}
	}
	return false
}

func TestSecurityHeaders(t *testing.T) {
	h := Security("/api-docs")(okHandler())

	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/v1/profile", nil))

	want := map[string]string{
		"Cache-Control":          "no-store",
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
	}
	for k, v := range want {
		if got := resp.Header().Get(k); got != v {
			t.Errorf("%s: got %q, want %q", k, got, v)
		}
	}
}

func TestSecuritySkipsDocs(t *testing.T) {
	h := Security("/api-docs")(okHandler())

	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api-docs/index.html", nil))

	if got := resp.Header().Get("X-Frame-Options"); got != "" {
		t.Fatalf("expected no X-Frame-Options on docs, got %q", got)
	}
}

func TestCORSPreflightAllowsPutAndTraceHeaders(t *testing.T) {
	called := false
	h := CORS()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "/v1/display-info", nil)
	req.Header.Set("Origin", "http://editor.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, traceparent")
	resp := httptest.NewRecorder()

	h.ServeHTTP(resp, req)

	if called {
		t.Fatal("expected preflight to be answered without calling next")
	}
	if got := resp.Header().Get("Access-Control-Allow-Methods"); !containsHeader(got, http.MethodPut) {
		t.Fatalf("expected PUT in allowed methods, got %q", got)
	}
	allowed := resp.Header().Get("Access-Control-Allow-Headers")
	for _, h := range []string{"Authorization", "traceparent"} {
		if !containsHeader(allowed, h) {
			t.Fatalf("expected %s in allowed headers, got %q", h, allowed)
		}
	}
}

func TestCORSExposesRequestID(t *testing.T) {
	h := CORS("http://editor.example.com")(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/v1/profile", nil)
	req.Header.Set("Origin", "http://editor.example.com")
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)

	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "http://editor.example.com" {
		t.Fatalf("unexpected allow origin %q", got)
	}
	if got := resp.Header().Get("Access-Control-Expose-Headers"); !containsHeader(got, "X-Request-Id") {
		t.Fatalf("expected X-Request-Id exposed, got %q", got)
	}
}

func TestVaryAddsAccept(t *testing.T) {
	h := Vary()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Origin")
	}))

	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))

	values := resp.Header().Values("Vary")
	if len(values) != 2 || values[0] != "Accept" {
		t.Fatalf("unexpected Vary values: %v", values)
	}
}

func TestRequestIDReusesValidHeader(t *testing.T) {
	var got string
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = chimiddleware.GetReqID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(chimiddleware.RequestIDHeader, "client-id-1")
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)

	if got != "client-id-1" {
		t.Fatalf("expected client-id-1, got %q", got)
	}
	if resp.Header().Get(chimiddleware.RequestIDHeader) != "client-id-1" {
		t.Fatal("expected request ID echoed in response")
	}
}

func TestRequestIDReplacesInvalidHeader(t *testing.T) {
	tests := []string{"", "bad\nid", strings.Repeat("a", maxRequestIDLength+1), "caf\xc3\xa9"}
	for _, in := range tests {
		var got string
		h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = chimiddleware.GetReqID(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(chimiddleware.RequestIDHeader, in)
		h.ServeHTTP(httptest.NewRecorder(), req)

		if _, err := uuid.Parse(got); err != nil {
			t.Errorf("input %q: expected generated UUID, got %q", in, got)
		}
	}
}

func TestVaryCustomHeaders(t *testing.T) {
	h := Vary("Accept", "Accept-Encoding")(okHandler())

	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))

	if got := resp.Header().Values("Vary"); len(got) != 2 || got[1] != "Accept-Encoding" {
		t.Fatalf("unexpected Vary values: %v", got)
	}
}
