package editor

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ErrConfirmationRequired is returned by Delete when the caller did not
// confirm.
var ErrConfirmationRequired = errors.New("delete requires confirmation")

// ValidationError reports field-level failures. Nothing was written.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := slices.Sorted(maps.Keys(e.Fields))
	return "validation failed: " + strings.Join(keys, ", ")
}

// PersistenceError wraps a store failure on the write path. The session keeps
// its mode and form values.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
