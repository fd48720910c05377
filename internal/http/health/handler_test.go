package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func serve(t *testing.T, h http.Handler) (int, Response) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)

	if ct := resp.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", ct)
	}
	var body Response
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp.Code, body
}

func TestHealthHandler(t *testing.T) {
	code, body := serve(t, Handler("sqlite", func(context.Context) error { return nil }))
	if code != http.StatusOK || body.Status != "healthy" || body.Store != "sqlite" {
		t.Fatalf("unexpected %d %+v", code, body)
	}
}

func TestHealthHandlerWithoutCheck(t *testing.T) {
	if code, body := serve(t, Handler("firestore", nil)); code != http.StatusOK || body.Status != "healthy" {
		t.Fatalf("unexpected %d %+v", code, body)
	}
}

func TestHealthHandlerUnhealthy(t *testing.T) {
	code, body := serve(t, Handler("postgres", func(context.Context) error { return errors.New("dial tcp: refused") }))
	if code != http.StatusServiceUnavailable || body.Status != "unhealthy" {
		t.Fatalf("unexpected %d %+v", code, body)
	}
}
