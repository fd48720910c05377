package displayinfo

import (
	"regexp"
	"strings"

	"github.com/janisto/profile-pages/internal/validation"
)

// SocialLink is a social profile linked from the page.
type SocialLink struct {
	Platform validation.Platform `json:"platform" cbor:"platform" enum:"facebook,instagram,linkedin,whatsapp"`
	URL      string              `json:"url"      cbor:"url"`
	IsValid  bool                `json:"isValid"  cbor:"isValid"`
}

// ExtractSocialLinks returns the filled social links in platform order
// (facebook, instagram, linkedin, whatsapp), each tagged with the result of
// the platform's validator.
func ExtractSocialLinks(d *DisplayInfo) []SocialLink {
	f := Format(d)
	candidates := []struct {
		platform validation.Platform
		url      string
	}{
		{validation.Facebook, f.FacebookLink},
		{validation.Instagram, f.InstagramLink},
		{validation.LinkedIn, f.LinkedInLink},
		{validation.WhatsApp, f.WhatsAppLink},
	}
	links := []SocialLink{}
	for _, c := range candidates {
		if c.url == "" {
			continue
		}
		links = append(links, SocialLink{
			Platform: c.platform,
			URL:      c.url,
			IsValid:  validation.IsSocialLink(c.platform, c.url),
		})
	}
	return links
}

// FormatWhatsAppLink builds a wa.me link from a formatted phone number.
func FormatWhatsAppLink(phone string) string {
	return "https://wa.me/" + validation.Digits(phone)
}

var (
	socialBaseURLs = map[validation.Platform]string{
		validation.Facebook:  "https://facebook.com/",
		validation.Instagram: "https://instagram.com/",
		validation.LinkedIn:  "https://linkedin.com/in/",
	}
	socialPrefix = regexp.MustCompile(`^https?://(www\.)?(facebook|instagram|linkedin)\.com/(in/)?`)
)

// FormatSocialLink turns a username, @handle or existing profile URL into
// the platform's canonical profile URL. WhatsApp input is treated as a phone
// number.
func FormatSocialLink(username string, platform validation.Platform) string {
	if platform == validation.WhatsApp {
		return FormatWhatsAppLink(username)
	}
	clean := strings.TrimPrefix(strings.TrimSpace(username), "@")
	clean = socialPrefix.ReplaceAllString(clean, "")
	return socialBaseURLs[platform] + clean
}
