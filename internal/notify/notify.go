// Package notify carries user-facing notifications (the toasts a page editor
// shows after a save, delete or cache sync) from the service layer back to
// the response.
package notify

import (
	"context"
	"sync"

	"go.uber.org/zap"

	applog "github.com/janisto/profile-pages/internal/platform/logging"
)

// Category is how prominently a notification is shown. Tests assert on the
// category, never on message text.
type Category string

const (
	Success Category = "success"
	Warning Category = "warning"
	Error   Category = "error"
	Info    Category = "info"
)

// Notification is one user-facing message.
type Notification struct {
	Category Category `json:"category" cbor:"category" enum:"success,warning,error,info" doc:"Notification category"`
	Message  string   `json:"message"  cbor:"message"  doc:"Human-readable message"`
}

// Notifier receives notifications.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// Recorder keeps the notifications of a single request in emission order.
// It is safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

func (r *Recorder) Notify(_ context.Context, n Notification) {
	r.mu.Lock()
	r.items = append(r.items, n)
	r.mu.Unlock()
}

// Notifications returns a copy of everything recorded so far. It never
// returns nil so JSON responses always carry an array.
func (r *Recorder) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.items))
	copy(out, r.items)
	return out
}

// Categories lists the recorded categories in order.
func (r *Recorder) Categories() []Category {
	items := r.Notifications()
	out := make([]Category, len(items))
	for i, n := range items {
		out[i] = n.Category
	}
	return out
}

// Has reports whether any notification of category c was recorded.
func (r *Recorder) Has(c Category) bool {
	for _, got := range r.Categories() {
		if got == c {
			return true
		}
	}
	return false
}

// logNotifier is used when no Recorder is attached: notifications still
// reach the request log.
type logNotifier struct{}

func (logNotifier) Notify(ctx context.Context, n Notification) {
	applog.LoggerFromContext(ctx).Debug("notification",
		zap.String("category", string(n.Category)),
		zap.String("message", n.Message),
	)
}

type notifierContextKey struct{}

// WithNotifier attaches n to ctx.
func WithNotifier(ctx context.Context, n Notifier) context.Context {
	return context.WithValue(ctx, notifierContextKey{}, n)
}

// WithRecorder attaches a fresh Recorder to ctx and returns both.
func WithRecorder(ctx context.Context) (context.Context, *Recorder) {
	rec := &Recorder{}
	return WithNotifier(ctx, rec), rec
}

// FromContext returns the attached Notifier or one that only logs.
func FromContext(ctx context.Context) Notifier {
	if n, ok := ctx.Value(notifierContextKey{}).(Notifier); ok && n != nil {
		return n
	}
	return logNotifier{}
}

// Send delivers a notification of category c to the Notifier in ctx.
func Send(ctx context.Context, c Category, msg string) {
	FromContext(ctx).Notify(ctx, Notification{Category: c, Message: msg})
}
