package editor

import (
	"context"
	"fmt"
	"maps"

	"go.uber.org/zap"

	"github.com/janisto/profile-pages/internal/notify"
	applog "github.com/janisto/profile-pages/internal/platform/logging"
	"github.com/janisto/profile-pages/internal/validation"
)

// Backend persists one owner-scoped record. Load returns (nil, nil) when no
// record exists; any error is a lookup failure and is propagated.
type Backend[R, F any] interface {
	Load(ctx context.Context) (*R, error)
	Insert(ctx context.Context, form F) (*R, error)
	Update(ctx context.Context, form F) (*R, error)
	Delete(ctx context.Context) error
}

// Hooks adapts a session to a record type.
type Hooks[R, F any] struct {
	// Noun names the record in notifications, e.g. "profile".
	Noun string
	// Format maps a stored record to its form shape.
	Format func(*R) F
	// Empty is the form used when no record exists.
	Empty func() F
	// Validate runs before every write.
	Validate func(F) validation.Result
	// AfterSave runs once the write has committed; prev is nil after an
	// insert. It must not fail the save.
	AfterSave func(ctx context.Context, prev, saved *R)
}

// Session is one editing session over a single record. It is not safe for
// concurrent use.
type Session[R, F any] struct {
	backend Backend[R, F]
	hooks   Hooks[R, F]

	mode   Mode
	record *R
	form   F
	errs   map[string]string
}

// Open loads the record and starts in view mode if it exists, create mode
// otherwise.
func Open[R, F any](ctx context.Context, backend Backend[R, F], hooks Hooks[R, F]) (*Session[R, F], error) {
	record, err := backend.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", hooks.Noun, err)
	}
	s := &Session[R, F]{backend: backend, hooks: hooks}
	s.reset(record)
	return s, nil
}

func (s *Session[R, F]) reset(record *R) {
	s.record = record
	s.mode = Initial(record != nil)
	s.errs = nil
	if record != nil {
		s.form = s.hooks.Format(record)
	} else {
		s.form = s.hooks.Empty()
	}
}

func (s *Session[R, F]) Mode() Mode   { return s.mode }
func (s *Session[R, F]) Record() *R   { return s.record }
func (s *Session[R, F]) Form() F      { return s.form }
func (s *Session[R, F]) Exists() bool { return s.record != nil }

// Errors returns a copy of the current field errors.
func (s *Session[R, F]) Errors() map[string]string {
	return maps.Clone(s.errs)
}

func (s *Session[R, F]) apply(ev Event) error {
	next, err := Transition(s.mode, ev, s.record != nil)
	if err != nil {
		return err
	}
	s.mode = next
	return nil
}

// BeginEdit moves view to edit.
func (s *Session[R, F]) BeginEdit() error {
	return s.apply(EventEdit)
}

// BeginCreate enters create mode; it fails while a record exists.
func (s *Session[R, F]) BeginCreate() error {
	if err := s.apply(EventCreate); err != nil {
		return err
	}
	s.form = s.hooks.Empty()
	return nil
}

// SetForm replaces the in-progress values. Only editable modes accept input.
func (s *Session[R, F]) SetForm(form F) error {
	if !s.mode.Editable() {
		return fmt.Errorf("%w: set form in %s", ErrIllegalTransition, s.mode)
	}
	s.form = form
	return nil
}

// ClearError drops the error recorded for field, as when the user edits it.
func (s *Session[R, F]) ClearError(field string) {
	delete(s.errs, field)
}

// Cancel reverts edit to the persisted values and returns to view. In create
// mode the form is cleared and the session stays in create.
func (s *Session[R, F]) Cancel() error {
	if err := s.apply(EventCancel); err != nil {
		return err
	}
	s.errs = nil
	if s.record != nil {
		s.form = s.hooks.Format(s.record)
	} else {
		s.form = s.hooks.Empty()
	}
	return nil
}

// Save validates the form and inserts (create) or updates (edit) the record.
// A validation failure aborts before any store call. A store failure keeps
// the mode and form. On success the session re-reads the record and returns
// to view.
func (s *Session[R, F]) Save(ctx context.Context) error {
	if _, err := Transition(s.mode, EventSaved, s.record != nil); err != nil {
		return err
	}

	if res := s.hooks.Validate(s.form); !res.Valid() {
		s.errs = maps.Clone(res.Errors)
		notify.Send(ctx, notify.Error, "Please fix the highlighted fields.")
		return &ValidationError{Fields: maps.Clone(res.Errors)}
	}
	s.errs = nil

	prev := s.record
	op := "update " + s.hooks.Noun
	write := s.backend.Update
	if s.mode == Create {
		op = "create " + s.hooks.Noun
		write = s.backend.Insert
	}

	saved, err := write(ctx, s.form)
	if err != nil {
		applog.LogError(ctx, "save failed", err, zap.String("op", op))
		notify.Send(ctx, notify.Error, fmt.Sprintf("Could not save %s: %v", s.hooks.Noun, err))
		return &PersistenceError{Op: op, Err: err}
	}
	notify.Send(ctx, notify.Success, fmt.Sprintf("%s saved.", capitalize(s.hooks.Noun)))

	if s.hooks.AfterSave != nil {
		s.hooks.AfterSave(ctx, prev, saved)
	}

	s.reset(s.refresh(ctx, saved))
	return nil
}

// Submit is the one-shot save used by request handlers: it enters edit when
// a record exists, replaces the form and saves.
func (s *Session[R, F]) Submit(ctx context.Context, form F) error {
	if s.mode == View {
		if err := s.BeginEdit(); err != nil {
			return err
		}
	}
	if err := s.SetForm(form); err != nil {
		return err
	}
	return s.Save(ctx)
}

// refresh re-reads the committed record so the view reflects store-applied
// values. A failed or empty re-read falls back to what the write returned.
func (s *Session[R, F]) refresh(ctx context.Context, saved *R) *R {
	fresh, err := s.backend.Load(ctx)
	if err != nil {
		applog.LogWarn(ctx, "refresh after save failed", zap.String("record", s.hooks.Noun), zap.Error(err))
		return saved
	}
	if fresh == nil {
		return saved
	}
	return fresh
}

// Delete removes the record once confirmed and moves to create with an empty
// form. Failures leave the session untouched.
func (s *Session[R, F]) Delete(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	if _, err := Transition(s.mode, EventDeleted, s.record != nil); err != nil {
		return err
	}

	op := "delete " + s.hooks.Noun
	if err := s.backend.Delete(ctx); err != nil {
		applog.LogError(ctx, "delete failed", err, zap.String("op", op))
		notify.Send(ctx, notify.Error, fmt.Sprintf("Could not delete %s: %v", s.hooks.Noun, err))
		return &PersistenceError{Op: op, Err: err}
	}
	notify.Send(ctx, notify.Success, fmt.Sprintf("%s deleted.", capitalize(s.hooks.Noun)))

	s.reset(nil)
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if c := s[0]; c >= 'a' && c <= 'z' {
		return string(c-'a'+'A') + s[1:]
	}
	return s
}
