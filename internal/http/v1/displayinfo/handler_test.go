package displayinfo

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"

	"github.com/janisto/profile-pages/internal/notify"
	"github.com/janisto/profile-pages/internal/platform/auth"
	"github.com/janisto/profile-pages/internal/service/cachesync"
	displayinfosvc "github.com/janisto/profile-pages/internal/service/displayinfo"
	profilesvc "github.com/janisto/profile-pages/internal/service/profile"
)

type fixture struct {
	router http.Handler
	store  *displayinfosvc.MockStore
	inv    *cachesync.MockInvalidator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	profiles := profilesvc.NewMockStore()
	store := displayinfosvc.NewMockStore()
	inv := &cachesync.MockInvalidator{}

	router := chi.NewRouter()
	api := humachi.New(router, huma.DefaultConfig("DisplayInfoTest", "test"))
	api.UseMiddleware(auth.Middleware(api, &auth.MockVerifier{User: auth.TestUser()}))
	Register(api, profilesvc.NewEnsurer(profiles), displayinfosvc.NewManager(store, cachesync.New(inv)))

	return &fixture{router: router, store: store, inv: inv}
}

func (f *fixture) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("Authorization", "Bearer valid-token")
	resp := httptest.NewRecorder()
	f.router.ServeHTTP(resp, req)
	return resp
}

func decode[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(resp.Body.Bytes(), &v); err != nil {
		t.Fatalf("json unmarshal: %v: %s", err, resp.Body.String())
	}
	return v
}

func categories(ns []notify.Notification) map[notify.Category]bool {
	out := map[notify.Category]bool{}
	for _, n := range ns {
		out[n.Category] = true
	}
	return out
}

const fullBody = `{"display_name":"Ada","email_contact":"ada@example.com","phone_number":"+44 20 7946 0000",` +
	`"headline":"Engines","subheadline":"Analytical","call_to_action":"Book","instagram_link":"https://example.com/ada"}`

func TestGetWithoutRecord(t *testing.T) {
	f := newFixture(t)

	resp := f.do(http.MethodGet, "/display-info", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	out := decode[DisplayInfo](t, resp)
	if out.Exists || out.Mode != "create" || out.ProfileID == "" || out.Completion != 0 {
		t.Fatalf("unexpected body %+v", out)
	}
	if out.SocialLinks == nil || out.CreatedAt != nil {
		t.Fatalf("expected empty links and no timestamps, got %s", resp.Body.String())
	}
}

func TestSaveCreatesAndInvalidates(t *testing.T) {
	f := newFixture(t)

	resp := f.do(http.MethodPut, "/display-info", fullBody)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	out := decode[SaveResult](t, resp)
	d := out.DisplayInfo
	if !d.Exists || d.Mode != "view" || !d.IsComplete || !d.IsHeroComplete || d.HeaderCompletion != 50 {
		t.Fatalf("unexpected display info %+v", d)
	}
	if len(d.SocialLinks) != 1 || !d.SocialLinks[0].IsValid {
		t.Fatalf("expected one permissive instagram link, got %+v", d.SocialLinks)
	}
	if f.inv.Calls() != 1 {
		t.Fatalf("expected one invalidation, got %v", f.inv.Reasons())
	}
	if c := categories(out.Notifications); !c[notify.Success] || c[notify.Warning] {
		t.Fatalf("unexpected notifications %+v", out.Notifications)
	}
}

func TestHeroSaveValidation(t *testing.T) {
	f := newFixture(t)
	f.do(http.MethodPut, "/display-info", fullBody)
	writes := f.store.Writes()

	resp := f.do(http.MethodPut, "/display-info/hero", `{"headline":"","subheadline":"s","call_to_action":"c"}`)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", resp.Code, resp.Body.String())
	}
	problem := decode[huma.ErrorModel](t, resp)
	if len(problem.Errors) != 1 || problem.Errors[0].Location != "body.headline" {
		t.Fatalf("unexpected details %+v", problem.Errors)
	}
	if f.store.Writes() != writes {
		t.Fatal("validation failure must not write")
	}
}

func TestHeaderSaveRequiresRecord(t *testing.T) {
	f := newFixture(t)

	resp := f.do(http.MethodPut, "/display-info/header", `{"display_name":"Ada"}`)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", resp.Code, resp.Body.String())
	}
	if f.inv.Calls() != 0 {
		t.Fatal("no invalidation expected")
	}
}

func TestHeaderSaveWebhookFailureWarns(t *testing.T) {
	f := newFixture(t)
	f.do(http.MethodPut, "/display-info", fullBody)
	f.inv.Err = &cachesync.WebhookError{Status: http.StatusInternalServerError, Body: "boom"}

	resp := f.do(http.MethodPut, "/display-info/header", `{"display_name":"Ada Lovelace","logo_url":"https://example.com/logo.png"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	out := decode[SaveResult](t, resp)
	if out.DisplayInfo.DisplayName != "Ada Lovelace" || out.DisplayInfo.Headline != "Engines" {
		t.Fatalf("unexpected record %+v", out.DisplayInfo.FormData)
	}
	c := categories(out.Notifications)
	if !c[notify.Success] || !c[notify.Warning] || c[notify.Error] {
		t.Fatalf("expected success and warning only, got %+v", out.Notifications)
	}
}

func TestDeleteDisplayInfo(t *testing.T) {
	f := newFixture(t)
	f.do(http.MethodPut, "/display-info", fullBody)

	if resp := f.do(http.MethodDelete, "/display-info", ""); resp.Code != http.StatusPreconditionRequired {
		t.Fatalf("expected 428, got %d", resp.Code)
	}
	resp := f.do(http.MethodDelete, "/display-info?confirm=true", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if out := decode[SaveResult](t, resp); out.DisplayInfo.Exists || out.DisplayInfo.Mode != "create" {
		t.Fatalf("unexpected body %+v", out.DisplayInfo)
	}
	if resp := f.do(http.MethodDelete, "/display-info?confirm=true", ""); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestFieldsArePublic(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/display-info/fields", nil)
	resp := httptest.NewRecorder()
	f.router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	out := decode[Fields](t, resp)
	if len(out.Categories) != len(displayinfosvc.Categories) || out.Labels[displayinfosvc.FieldHeadline] == "" {
		t.Fatalf("unexpected fields %+v", out)
	}
}
