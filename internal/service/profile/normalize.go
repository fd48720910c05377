package profile

import (
	"errors"
	"strings"
)

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (p CreateParams) normalized() CreateParams {
	return CreateParams{
		FullName:      strings.TrimSpace(p.FullName),
		InternalEmail: normalizeEmail(p.InternalEmail),
		InternalPhone: strings.TrimSpace(p.InternalPhone),
		CompanyName:   strings.TrimSpace(p.CompanyName),
		DocumentID:    strings.TrimSpace(p.DocumentID),
	}
}

// apply writes the non-nil fields of p onto dst.
func (p UpdateParams) apply(dst *Profile) {
	set := func(dst *string, src *string, norm func(string) string) {
		if src != nil {
			*dst = norm(*src)
		}
	}
	set(&dst.FullName, p.FullName, strings.TrimSpace)
	set(&dst.InternalEmail, p.InternalEmail, normalizeEmail)
	set(&dst.InternalPhone, p.InternalPhone, strings.TrimSpace)
	set(&dst.CompanyName, p.CompanyName, strings.TrimSpace)
	set(&dst.DocumentID, p.DocumentID, strings.TrimSpace)
}

// auditCategory maps store errors to values safe for audit logs.
func auditCategory(err error) string {
	switch {
	case errors.Is(err, ErrAlreadyExists):
		return "already_exists"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "internal_error"
	}
}
