package displayinfo

import (
	"strings"

	"github.com/janisto/profile-pages/internal/service/cachesync"
)

const (
	FieldDisplayName     = "display_name"
	FieldLogoURL         = "logo_url"
	FieldHeadline        = "headline"
	FieldSubheadline     = "subheadline"
	FieldCallToAction    = "call_to_action"
	FieldCallToActionURL = "call_to_action_url"
	FieldHeroImageURL    = "hero_image_url"
	FieldAvatarURL       = "avatar_url"
	FieldBio             = "bio"
	FieldPhoneNumber     = "phone_number"
	FieldEmailContact    = "email_contact"
	FieldWhatsAppLink    = "whatsapp_link"
	FieldFacebookLink    = "facebook_link"
	FieldInstagramLink   = "instagram_link"
	FieldInstagramAt     = "instagram_at"
	FieldLinkedInLink    = "linkedin_link"
	FieldWebsiteURL      = "website_url"
	FieldAgendaLink      = "agenda_link"
)

// Fields lists every editable field. Completion is measured over this set.
var Fields = []string{
	FieldDisplayName,
	FieldAvatarURL,
	FieldPhoneNumber,
	FieldEmailContact,
	FieldAgendaLink,
	FieldWhatsAppLink,
	FieldFacebookLink,
	FieldInstagramLink,
	FieldLinkedInLink,
	FieldWebsiteURL,
	FieldBio,
	FieldHeadline,
	FieldSubheadline,
	FieldCallToAction,
	FieldCallToActionURL,
	FieldHeroImageURL,
	FieldLogoURL,
	FieldInstagramAt,
}

var (
	HeaderFields = []string{FieldDisplayName, FieldLogoURL}
	HeroFields   = []string{FieldHeadline, FieldSubheadline, FieldCallToAction, FieldCallToActionURL, FieldHeroImageURL}
)

var Labels = map[string]string{
	FieldDisplayName:     "Display name",
	FieldAvatarURL:       "Avatar URL",
	FieldPhoneNumber:     "Phone",
	FieldEmailContact:    "Contact email",
	FieldAgendaLink:      "Agenda link",
	FieldWhatsAppLink:    "WhatsApp link",
	FieldFacebookLink:    "Facebook",
	FieldInstagramLink:   "Instagram",
	FieldLinkedInLink:    "LinkedIn",
	FieldWebsiteURL:      "Website",
	FieldBio:             "Bio",
	FieldHeadline:        "Headline",
	FieldSubheadline:     "Subheadline",
	FieldCallToAction:    "Call to action",
	FieldCallToActionURL: "Call to action URL",
	FieldHeroImageURL:    "Hero image",
	FieldLogoURL:         "Logo",
	FieldInstagramAt:     "Instagram @",
}

// Category groups fields for the editor UI. Its Group decides whether an
// edit reaches the cached public page.
type Category struct {
	Group  cachesync.Group `json:"group"  cbor:"group"`
	Label  string          `json:"label"  cbor:"label"`
	Fields []string        `json:"fields" cbor:"fields"`
}

var Categories = []Category{
	{Group: cachesync.GroupHero, Label: "Hero", Fields: HeroFields},
	{Group: cachesync.GroupHeader, Label: "Header", Fields: HeaderFields},
	{Group: cachesync.GroupPersonal, Label: "Personal information", Fields: []string{FieldAvatarURL, FieldBio}},
	{Group: cachesync.GroupContact, Label: "Contact", Fields: []string{FieldEmailContact, FieldPhoneNumber, FieldWhatsAppLink}},
	{Group: cachesync.GroupSocial, Label: "Social networks", Fields: []string{FieldFacebookLink, FieldInstagramLink, FieldInstagramAt, FieldLinkedInLink}},
	{Group: cachesync.GroupLinks, Label: "Useful links", Fields: []string{FieldWebsiteURL, FieldAgendaLink}},
}

// FormData holds the editable fields. Every value is a plain string; absent
// values are empty.
type FormData struct {
	DisplayName     string `json:"display_name"       cbor:"display_name"       required:"false" maxLength:"120"  doc:"Name shown in the page header"`
	LogoURL         string `json:"logo_url"           cbor:"logo_url"           required:"false" maxLength:"2048" doc:"Header logo URL"`
	Headline        string `json:"headline"           cbor:"headline"           required:"false" maxLength:"200"  doc:"Hero headline"`
	Subheadline     string `json:"subheadline"        cbor:"subheadline"        required:"false" maxLength:"300"  doc:"Hero subheadline"`
	CallToAction    string `json:"call_to_action"     cbor:"call_to_action"     required:"false" maxLength:"80"   doc:"Hero button text"`
	CallToActionURL string `json:"call_to_action_url" cbor:"call_to_action_url" required:"false" maxLength:"2048" doc:"Hero button target"`
	HeroImageURL    string `json:"hero_image_url"     cbor:"hero_image_url"     required:"false" maxLength:"2048" doc:"Hero image URL"`
	AvatarURL       string `json:"avatar_url"         cbor:"avatar_url"         required:"false" maxLength:"2048"`
	Bio             string `json:"bio"                cbor:"bio"                required:"false" maxLength:"2000"`
	PhoneNumber     string `json:"phone_number"       cbor:"phone_number"       required:"false" maxLength:"32"`
	EmailContact    string `json:"email_contact"      cbor:"email_contact"      required:"false" maxLength:"254"`
	WhatsAppLink    string `json:"whatsapp_link"      cbor:"whatsapp_link"      required:"false" maxLength:"2048"`
	FacebookLink    string `json:"facebook_link"      cbor:"facebook_link"      required:"false" maxLength:"2048"`
	InstagramLink   string `json:"instagram_link"     cbor:"instagram_link"     required:"false" maxLength:"2048"`
	InstagramAt     string `json:"instagram_at"       cbor:"instagram_at"       required:"false" maxLength:"64"`
	LinkedInLink    string `json:"linkedin_link"      cbor:"linkedin_link"      required:"false" maxLength:"2048"`
	WebsiteURL      string `json:"website_url"        cbor:"website_url"        required:"false" maxLength:"2048"`
	AgendaLink      string `json:"agenda_link"        cbor:"agenda_link"        required:"false" maxLength:"2048"`
}

// ref returns the storage of field, or nil for unknown names.
func (f *FormData) ref(field string) *string {
	switch field {
	case FieldDisplayName:
		return &f.DisplayName
	case FieldLogoURL:
		return &f.LogoURL
	case FieldHeadline:
		return &f.Headline
	case FieldSubheadline:
		return &f.Subheadline
	case FieldCallToAction:
		return &f.CallToAction
	case FieldCallToActionURL:
		return &f.CallToActionURL
	case FieldHeroImageURL:
		return &f.HeroImageURL
	case FieldAvatarURL:
		return &f.AvatarURL
	case FieldBio:
		return &f.Bio
	case FieldPhoneNumber:
		return &f.PhoneNumber
	case FieldEmailContact:
		return &f.EmailContact
	case FieldWhatsAppLink:
		return &f.WhatsAppLink
	case FieldFacebookLink:
		return &f.FacebookLink
	case FieldInstagramLink:
		return &f.InstagramLink
	case FieldInstagramAt:
		return &f.InstagramAt
	case FieldLinkedInLink:
		return &f.LinkedInLink
	case FieldWebsiteURL:
		return &f.WebsiteURL
	case FieldAgendaLink:
		return &f.AgendaLink
	}
	return nil
}

// Value returns the named field, or "" for unknown names.
func (f FormData) Value(field string) string {
	if p := f.ref(field); p != nil {
		return *p
	}
	return ""
}

func (f FormData) values(fields []string) []string {
	out := make([]string, len(fields))
	for i, name := range fields {
		out[i] = f.Value(name)
	}
	return out
}

// normalized trims every field and lowercases the contact email.
func (f FormData) normalized() FormData {
	for _, name := range Fields {
		p := f.ref(name)
		*p = strings.TrimSpace(*p)
	}
	f.EmailContact = strings.ToLower(f.EmailContact)
	return f
}
