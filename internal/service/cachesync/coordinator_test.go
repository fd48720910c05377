package cachesync

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/janisto/profile-pages/internal/notify"
	"github.com/janisto/profile-pages/internal/platform/config"
	applog "github.com/janisto/profile-pages/internal/platform/logging"
)

func TestVisibleGroups(t *testing.T) {
	for _, g := range []Group{GroupHeader, GroupHero} {
		if !g.Visible() {
			t.Errorf("%s should be visible", g)
		}
	}
	for _, g := range []Group{GroupProfile, GroupSettings, GroupPersonal, GroupContact, GroupSocial, GroupLinks} {
		if g.Visible() {
			t.Errorf("%s should not be visible", g)
		}
	}
}

func TestSyncAfterEditSkipsInternalGroups(t *testing.T) {
	ctx, rec := notify.WithRecorder(context.Background())
	inv := &MockInvalidator{}

	if ok := New(inv).SyncAfterEdit(ctx, GroupProfile, "user-1"); !ok {
		t.Fatal("internal group should report success")
	}
	if inv.Calls() != 0 {
		t.Fatalf("expected no webhook call, got %d", inv.Calls())
	}
	if len(rec.Notifications()) != 0 {
		t.Fatalf("expected no notifications, got %v", rec.Categories())
	}
}

func TestSyncAfterEditSuccess(t *testing.T) {
	ctx, rec := notify.WithRecorder(context.Background())
	inv := &MockInvalidator{}

	if ok := New(inv).SyncAfterEdit(ctx, GroupHeader, "profile-1"); !ok {
		t.Fatal("expected success")
	}
	reasons := inv.Reasons()
	if len(reasons) != 1 || !strings.Contains(reasons[0], "header") || !strings.Contains(reasons[0], "profile-1") {
		t.Fatalf("unexpected reasons %v", reasons)
	}
	if got := rec.Categories(); len(got) != 1 || got[0] != notify.Success {
		t.Fatalf("expected one success notification, got %v", got)
	}
}

func TestSyncAfterEditFailureWarns(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	ctx := applog.WithLogger(context.Background(), zap.New(core))
	ctx, rec := notify.WithRecorder(ctx)
	inv := &MockInvalidator{Err: &WebhookError{Status: http.StatusInternalServerError}}

	if ok := New(inv).SyncAfterEdit(ctx, GroupHero, "profile-1"); ok {
		t.Fatal("expected failure")
	}
	if !rec.Has(notify.Warning) || rec.Has(notify.Error) {
		t.Fatalf("expected warning and no error, got %v", rec.Categories())
	}
	entries := logs.FilterMessage("cache invalidation failed").All()
	if len(entries) != 1 {
		t.Fatalf("expected one warn log, got %d", len(entries))
	}
	if status := entries[0].ContextMap()["status"]; status != int64(http.StatusInternalServerError) {
		t.Fatalf("expected status field, got %v", status)
	}
}

func TestSyncGroupsIssuesSingleCall(t *testing.T) {
	ctx := context.Background()
	inv := &MockInvalidator{}
	c := New(inv)

	if !c.SyncGroups(ctx, []Group{GroupContact, GroupHeader, GroupHero, GroupHeader}, "p") {
		t.Fatal("expected success")
	}
	if inv.Calls() != 1 {
		t.Fatalf("expected exactly one call, got %d", inv.Calls())
	}
	if reason := inv.Reasons()[0]; !strings.HasPrefix(reason, "header+hero") {
		t.Fatalf("unexpected reason %q", reason)
	}

	if !c.SyncGroups(ctx, []Group{GroupSocial, GroupLinks}, "p") || inv.Calls() != 1 {
		t.Fatal("invisible groups must not trigger a call")
	}
}

func TestNewFromConfigUnconfiguredWarns(t *testing.T) {
	ctx, rec := notify.WithRecorder(context.Background())
	c := NewFromConfig(config.WebhookConfig{Timeout: time.Second})

	if c.SyncAfterEdit(ctx, GroupHeader, "p") {
		t.Fatal("unconfigured webhook should report failure")
	}
	if !rec.Has(notify.Warning) {
		t.Fatalf("expected warning, got %v", rec.Categories())
	}
}

func TestNewFromConfigPostsToWebhook(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewFromConfig(config.WebhookConfig{URL: srv.URL, Timeout: time.Second})
	if !c.SyncAfterEdit(context.Background(), GroupHero, "p") {
		t.Fatal("expected success")
	}
	if hits.Load() != 1 {
		t.Fatalf("expected one hit, got %d", hits.Load())
	}
}

func TestSyncDoesNotMaskNonWebhookErrors(t *testing.T) {
	ctx, rec := notify.WithRecorder(context.Background())
	inv := &MockInvalidator{Err: errors.New("dial tcp: connection refused")}

	if New(inv).SyncAfterEdit(ctx, GroupHeader, "p") {
		t.Fatal("expected failure")
	}
	if !rec.Has(notify.Warning) {
		t.Fatalf("expected warning, got %v", rec.Categories())
	}
}
