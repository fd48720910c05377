package displayinfo

import (
	"slices"

	"github.com/janisto/profile-pages/internal/service/cachesync"
	"github.com/janisto/profile-pages/internal/validation"
)

// HeaderForm is the header section of the page.
type HeaderForm struct {
	DisplayName string `json:"display_name" cbor:"display_name" required:"false" maxLength:"120"  doc:"Name shown in the page header"`
	LogoURL     string `json:"logo_url"     cbor:"logo_url"     required:"false" maxLength:"2048" doc:"Header logo URL"`
}

// HeroForm is the hero (promotional) section of the page.
type HeroForm struct {
	Headline        string `json:"headline"           cbor:"headline"           required:"false" maxLength:"200"`
	Subheadline     string `json:"subheadline"        cbor:"subheadline"        required:"false" maxLength:"300"`
	CallToAction    string `json:"call_to_action"     cbor:"call_to_action"     required:"false" maxLength:"80"`
	CallToActionURL string `json:"call_to_action_url" cbor:"call_to_action_url" required:"false" maxLength:"2048"`
	HeroImageURL    string `json:"hero_image_url"     cbor:"hero_image_url"     required:"false" maxLength:"2048"`
}

func Empty() FormData         { return FormData{} }
func EmptyHeader() HeaderForm { return HeaderForm{} }
func EmptyHero() HeroForm     { return HeroForm{} }

// Format maps a stored record to its form. A nil record yields Empty.
func Format(d *DisplayInfo) FormData {
	if d == nil {
		return Empty()
	}
	return d.FormData
}

func FormatHeader(d *DisplayInfo) HeaderForm {
	f := Format(d)
	return HeaderForm{DisplayName: f.DisplayName, LogoURL: f.LogoURL}
}

func FormatHero(d *DisplayInfo) HeroForm {
	f := Format(d)
	return HeroForm{
		Headline:        f.Headline,
		Subheadline:     f.Subheadline,
		CallToAction:    f.CallToAction,
		CallToActionURL: f.CallToActionURL,
		HeroImageURL:    f.HeroImageURL,
	}
}

// WithHeader returns f with the header fields replaced by h.
func (f FormData) WithHeader(h HeaderForm) FormData {
	f.DisplayName = h.DisplayName
	f.LogoURL = h.LogoURL
	return f
}

// WithHero returns f with the hero fields replaced by h.
func (f FormData) WithHero(h HeroForm) FormData {
	f.Headline = h.Headline
	f.Subheadline = h.Subheadline
	f.CallToAction = h.CallToAction
	f.CallToActionURL = h.CallToActionURL
	f.HeroImageURL = h.HeroImageURL
	return f
}

// CompletionPercentage is measured over every editable field.
func CompletionPercentage(d *DisplayInfo) int {
	return validation.Completion(Format(d).values(Fields))
}

func HeaderCompletionPercentage(d *DisplayInfo) int {
	return validation.Completion(Format(d).values(HeaderFields))
}

func HeroCompletionPercentage(d *DisplayInfo) int {
	return validation.Completion(Format(d).values(HeroFields))
}

func allSet(values ...string) bool {
	for _, v := range values {
		if v == "" {
			return false
		}
	}
	return true
}

// IsComplete requires display name, contact email and phone.
func IsComplete(d *DisplayInfo) bool {
	return d != nil && allSet(d.DisplayName, d.EmailContact, d.PhoneNumber)
}

func IsHeaderComplete(d *DisplayInfo) bool {
	return d != nil && allSet(d.DisplayName)
}

// IsHeroComplete requires headline, subheadline and call to action; the
// image and button URL are optional.
func IsHeroComplete(d *DisplayInfo) bool {
	return d != nil && allSet(d.Headline, d.Subheadline, d.CallToAction)
}

func socialChecker(p validation.Platform) func(string) bool {
	return func(s string) bool { return validation.IsSocialLink(p, s) }
}

// Validate checks the format of every filled field. Nothing is required.
func Validate(f FormData) validation.Result {
	var r validation.Result
	r.Check(FieldEmailContact, f.EmailContact, validation.IsEmail, "Invalid email address")
	r.Check(FieldPhoneNumber, f.PhoneNumber, validation.IsPhone, "Invalid phone number")
	r.Check(FieldAvatarURL, f.AvatarURL, validation.IsURL, "Invalid avatar URL")
	r.Check(FieldWebsiteURL, f.WebsiteURL, validation.IsURL, "Invalid website URL")
	r.Check(FieldAgendaLink, f.AgendaLink, validation.IsURL, "Invalid agenda URL")
	r.Check(FieldWhatsAppLink, f.WhatsAppLink, validation.IsWhatsAppLink, "Invalid WhatsApp URL")
	r.Check(FieldFacebookLink, f.FacebookLink, socialChecker(validation.Facebook), "Invalid Facebook URL")
	r.Check(FieldInstagramLink, f.InstagramLink, socialChecker(validation.Instagram), "Invalid Instagram URL")
	r.Check(FieldLinkedInLink, f.LinkedInLink, socialChecker(validation.LinkedIn), "Invalid LinkedIn URL")
	r.Check(FieldHeroImageURL, f.HeroImageURL, validation.IsURL, "Invalid hero image URL")
	r.Check(FieldCallToActionURL, f.CallToActionURL, validation.IsURL, "Invalid call to action URL")
	r.Check(FieldLogoURL, f.LogoURL, validation.IsURL, "Invalid logo URL")
	return r
}

// ValidateHeader requires a display name.
func ValidateHeader(h HeaderForm) validation.Result {
	var r validation.Result
	r.Required(FieldDisplayName, h.DisplayName, "Display name is required")
	r.Check(FieldLogoURL, h.LogoURL, validation.IsURL, "Logo URL must be valid")
	return r
}

// ValidateHero requires headline, subheadline and call to action.
func ValidateHero(h HeroForm) validation.Result {
	var r validation.Result
	r.Required(FieldHeadline, h.Headline, "Headline is required")
	r.Required(FieldSubheadline, h.Subheadline, "Subheadline is required")
	r.Required(FieldCallToAction, h.CallToAction, "Call to action is required")
	r.Check(FieldHeroImageURL, h.HeroImageURL, validation.IsURL, "Image URL must be valid")
	r.Check(FieldCallToActionURL, h.CallToActionURL, validation.IsURL, "Call to action URL must be valid")
	return r
}

// ChangedGroups lists the category groups whose fields differ between prev
// and next, in Categories order. With no prev every group holding a value
// counts as changed.
func ChangedGroups(prev, next *DisplayInfo) []cachesync.Group {
	before, after := Format(prev), Format(next)
	var groups []cachesync.Group
	for _, c := range Categories {
		if !slices.Equal(before.values(c.Fields), after.values(c.Fields)) {
			groups = append(groups, c.Group)
		}
	}
	return groups
}
