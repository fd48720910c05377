// Package validation holds the field rules shared by the profile and display
// info forms. Every check is pure and leaves its input untouched.
package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	validate = validator.New(validator.WithRequiredStructEnabled())

	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern    = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)
	whatsAppPattern = regexp.MustCompile(`^https://wa\.me/\d+$`)
	nonDigits       = regexp.MustCompile(`\D`)

	socialPatterns = map[Platform]*regexp.Regexp{
		Facebook:  regexp.MustCompile(`^https://(www\.)?facebook\.com/`),
		Instagram: regexp.MustCompile(`^https://(www\.)?instagram\.com/`),
		LinkedIn:  regexp.MustCompile(`^https://(www\.)?linkedin\.com/`),
	}
)

// Platform names a social network a page can link to.
type Platform string

const (
	Facebook  Platform = "facebook"
	Instagram Platform = "instagram"
	LinkedIn  Platform = "linkedin"
	WhatsApp  Platform = "whatsapp"
)

// Digits strips every non-digit character.
func Digits(s string) string {
	return nonDigits.ReplaceAllString(s, "")
}

// Blank reports whether s is empty or whitespace only.
func Blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsEmail accepts the local@domain.tld shape.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsPhone accepts 1 to 16 digits once formatting is stripped; the first digit
// cannot be zero.
func IsPhone(s string) bool {
	return phonePattern.MatchString(Digits(s))
}

// IsURL accepts any well-formed absolute URL.
func IsURL(s string) bool {
	return validate.Var(strings.TrimSpace(s), "required,url") == nil
}

// IsDocument accepts CPF (11 digits) or CNPJ (14 digits) after stripping
// punctuation.
func IsDocument(s string) bool {
	n := len(Digits(s))
	return n == 11 || n == 14
}

// IsWhatsAppLink accepts a wa.me link or, failing that, any valid URL.
func IsWhatsAppLink(s string) bool {
	return whatsAppPattern.MatchString(s) || IsURL(s)
}

// IsSocialLink accepts the platform's canonical https prefix or, failing
// that, any valid URL. WhatsApp delegates to IsWhatsAppLink.
func IsSocialLink(platform Platform, s string) bool {
	if platform == WhatsApp {
		return IsWhatsAppLink(s)
	}
	if p, ok := socialPatterns[platform]; ok && p.MatchString(s) {
		return true
	}
	return IsURL(s)
}
