// Package editor implements the record-manager lifecycle shared by the
// profile and display-info editors: a view/edit/create state machine and an
// editing session that validates, persists, syncs and refreshes a record.
package editor

import (
	"errors"
	"fmt"
)

// Mode is the state of an editing session.
type Mode string

const (
	// View shows a persisted record read-only.
	View Mode = "view"
	// Edit makes a persisted record's fields editable.
	Edit Mode = "edit"
	// Create edits a form destined for insert; no record exists.
	Create Mode = "create"
)

// Event drives Transition.
type Event string

const (
	EventEdit    Event = "edit"
	EventCreate  Event = "create"
	EventSaved   Event = "saved"
	EventCancel  Event = "cancel"
	EventDeleted Event = "deleted"
)

// ErrIllegalTransition is returned for moves the state machine forbids, such
// as entering create while a record still exists.
var ErrIllegalTransition = errors.New("illegal mode transition")

// Initial is the mode a session opens in.
func Initial(hasRecord bool) Mode {
	if hasRecord {
		return View
	}
	return Create
}

// Transition validates a move and returns the next mode. hasRecord reports
// whether a persisted record exists before the event is applied.
func Transition(from Mode, ev Event, hasRecord bool) (Mode, error) {
	next, ok := step(from, ev, hasRecord)
	if !ok {
		return from, fmt.Errorf("%w: %s on %q (record=%t)", ErrIllegalTransition, from, ev, hasRecord)
	}
	return next, nil
}

func step(from Mode, ev Event, hasRecord bool) (Mode, bool) {
	switch ev {
	case EventEdit:
		if from == View && hasRecord {
			return Edit, true
		}
	case EventCreate:
		if (from == View || from == Edit || from == Create) && !hasRecord {
			return Create, true
		}
	case EventSaved:
		if (from == Edit && hasRecord) || from == Create {
			return View, true
		}
	case EventCancel:
		switch from {
		case Edit:
			return View, true
		case Create:
			return Create, true
		}
	case EventDeleted:
		if hasRecord && (from == View || from == Edit) {
			return Create, true
		}
	}
	return from, false
}

// Editable reports whether fields may be changed in m.
func (m Mode) Editable() bool {
	return m == Edit || m == Create
}
