// Package cachesync decides when an edit must invalidate the cached public
// page and performs the invalidation in degraded mode: failures become
// warnings and never undo the committed write.
package cachesync

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/janisto/profile-pages/internal/notify"
	"github.com/janisto/profile-pages/internal/platform/config"
	applog "github.com/janisto/profile-pages/internal/platform/logging"
)

// Group is a set of fields edited together.
type Group string

const (
	GroupProfile  Group = "profile"
	GroupSettings Group = "settings"
	GroupHeader   Group = "header"
	GroupHero     Group = "hero"
	GroupPersonal Group = "personal"
	GroupContact  Group = "contact"
	GroupSocial   Group = "social"
	GroupLinks    Group = "links"
)

// visibleGroups are rendered on the cached public page.
var visibleGroups = []Group{GroupHeader, GroupHero}

// Visible reports whether edits to g require cache invalidation.
func (g Group) Visible() bool {
	return slices.Contains(visibleGroups, g)
}

// Coordinator routes edits to the Invalidator. It holds no per-request
// state and is safe for concurrent use.
type Coordinator struct {
	invalidator Invalidator
}

// New builds a Coordinator around any Invalidator.
func New(inv Invalidator) *Coordinator {
	return &Coordinator{invalidator: inv}
}

// NewFromConfig builds a Coordinator backed by a WebhookClient configured
// from cfg.
func NewFromConfig(cfg config.WebhookConfig) *Coordinator {
	var opts []Option
	if cfg.Token != "" {
		opts = append(opts, WithToken(cfg.Token))
	}
	httpClient := &http.Client{Timeout: cfg.Timeout}
	return New(NewWebhookClient(httpClient, cfg.URL, opts...))
}

// SyncAfterEdit invalidates the public-page cache when group is visible.
// subject identifies the edited record in the reason payload. It reports
// whether the cache is known to be consistent.
func (c *Coordinator) SyncAfterEdit(ctx context.Context, group Group, subject string) bool {
	return c.SyncGroups(ctx, []Group{group}, subject)
}

// SyncGroups is SyncAfterEdit for a save touching several groups. At most
// one invalidation is issued, and none when no group is visible.
func (c *Coordinator) SyncGroups(ctx context.Context, groups []Group, subject string) bool {
	var visible []string
	for _, g := range groups {
		if g.Visible() && !slices.Contains(visible, string(g)) {
			visible = append(visible, string(g))
		}
	}
	if len(visible) == 0 {
		applog.LoggerFromContext(ctx).Debug("cache sync skipped", zap.Any("groups", groups))
		return true
	}

	reason := fmt.Sprintf("%s updated for %s", strings.Join(visible, "+"), subject)
	err := c.invalidator.Invalidate(ctx, reason)
	if err != nil {
		fields := []zap.Field{zap.Strings("groups", visible), zap.Error(err)}
		var werr *WebhookError
		if errors.As(err, &werr) {
			fields = append(fields, zap.Int("status", werr.Status))
		}
		applog.LogWarn(ctx, "cache invalidation failed", fields...)
		notify.Send(ctx, notify.Warning,
			"Saved, but the public page cache could not be refreshed. Changes may take a few minutes to appear.")
		return false
	}

	applog.LogInfo(ctx, "cache invalidated", zap.Strings("groups", visible))
	notify.Send(ctx, notify.Success, "Public page cache refreshed. Changes will appear shortly.")
	return true
}
