package validation

import (
	"math"
	"strings"
)

// Result collects per-field messages. The zero value is valid and empty.
type Result struct {
	Errors map[string]string
}

// Valid reports whether no field failed.
func (r *Result) Valid() bool {
	return len(r.Errors) == 0
}

// Add records msg for field. The first message for a field wins.
func (r *Result) Add(field, msg string) {
	if r.Errors == nil {
		r.Errors = make(map[string]string)
	}
	if _, exists := r.Errors[field]; !exists {
		r.Errors[field] = msg
	}
}

// Required fails field when value is blank.
func (r *Result) Required(field, value, msg string) {
	if Blank(value) {
		r.Add(field, msg)
	}
}

// Check fails field when ok rejects the trimmed value. Blank values are
// optional and always pass; stores trim before writing, so surrounding
// whitespace is not an error.
func (r *Result) Check(field, value string, ok func(string) bool, msg string) {
	if value = strings.TrimSpace(value); value != "" && !ok(value) {
		r.Add(field, msg)
	}
}

// Completion is the share of non-blank values as a whole percentage,
// rounded half up. An empty set is 0%.
func Completion(values []string) int {
	if len(values) == 0 {
		return 0
	}
	filled := 0
	for _, v := range values {
		if !Blank(v) {
			filled++
		}
	}
	return int(math.Floor(float64(filled)*100/float64(len(values)) + 0.5))
}
