package profile

import "github.com/janisto/profile-pages/internal/validation"

// Form field names, shared by validation errors, labels and the wire format.
const (
	FieldFullName      = "full_name"
	FieldInternalEmail = "internal_email"
	FieldInternalPhone = "internal_phone"
	FieldCompanyName   = "company_name"
	FieldDocumentID    = "document_id"
)

// Fields lists the editable fields in display order. Completion is measured
// over this set.
var Fields = []string{
	FieldFullName,
	FieldInternalEmail,
	FieldInternalPhone,
	FieldCompanyName,
	FieldDocumentID,
}

// Labels are the human-readable field names.
var Labels = map[string]string{
	FieldFullName:      "Full name",
	FieldInternalEmail: "Internal email",
	FieldInternalPhone: "Internal phone",
	FieldCompanyName:   "Company name",
	FieldDocumentID:    "Document (CPF/CNPJ)",
}

// FormData is the editable shape of a profile. Every field is a plain
// string; absent values are empty.
type FormData struct {
	FullName      string `json:"full_name"      cbor:"full_name"      required:"false" maxLength:"200" doc:"Full name"`
	InternalEmail string `json:"internal_email" cbor:"internal_email" required:"false" maxLength:"254" doc:"Internal contact email"`
	InternalPhone string `json:"internal_phone" cbor:"internal_phone" required:"false" maxLength:"32"  doc:"Internal contact phone"`
	CompanyName   string `json:"company_name"   cbor:"company_name"   required:"false" maxLength:"200" doc:"Company name"`
	DocumentID    string `json:"document_id"    cbor:"document_id"    required:"false" maxLength:"32"  doc:"CPF (11 digits) or CNPJ (14 digits)"`
}

// Empty is the form shown before a profile exists.
func Empty() FormData {
	return FormData{}
}

// Format maps a stored profile to its form. A nil profile yields Empty.
func Format(p *Profile) FormData {
	if p == nil {
		return Empty()
	}
	return FormData{
		FullName:      p.FullName,
		InternalEmail: p.InternalEmail,
		InternalPhone: p.InternalPhone,
		CompanyName:   p.CompanyName,
		DocumentID:    p.DocumentID,
	}
}

func (f FormData) values() []string {
	return []string{f.FullName, f.InternalEmail, f.InternalPhone, f.CompanyName, f.DocumentID}
}

func (f FormData) updateParams() UpdateParams {
	return UpdateParams{
		FullName:      &f.FullName,
		InternalEmail: &f.InternalEmail,
		InternalPhone: &f.InternalPhone,
		CompanyName:   &f.CompanyName,
		DocumentID:    &f.DocumentID,
	}
}

func (f FormData) createParams() CreateParams {
	return CreateParams(f)
}

// CompletionPercentage reports how many of Fields are filled, 0 to 100.
func CompletionPercentage(p *Profile) int {
	return validation.Completion(Format(p).values())
}

// IsComplete requires full name, internal email and internal phone.
func IsComplete(p *Profile) bool {
	if p == nil {
		return false
	}
	return p.FullName != "" && p.InternalEmail != "" && p.InternalPhone != ""
}

// Validate checks format rules on the filled fields. Every field is optional.
func Validate(f FormData) validation.Result {
	var r validation.Result
	r.Check(FieldInternalEmail, f.InternalEmail, validation.IsEmail, "Invalid email address")
	r.Check(FieldInternalPhone, f.InternalPhone, validation.IsPhone, "Invalid phone number")
	r.Check(FieldDocumentID, f.DocumentID, validation.IsDocument, "Invalid document: expected 11 (CPF) or 14 (CNPJ) digits")
	return r
}
