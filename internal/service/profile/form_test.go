package profile

import (
	"testing"
)

func TestFormatIsTotal(t *testing.T) {
	if got := Format(nil); got != Empty() {
		t.Fatalf("Format(nil) = %+v, want empty", got)
	}
	p := &Profile{FullName: "Ada", InternalEmail: "ada@example.com"}
	got := Format(p)
	if got.FullName != "Ada" || got.InternalEmail != "ada@example.com" || got.CompanyName != "" {
		t.Fatalf("unexpected form %+v", got)
	}
}

func TestFormatEmptyIsIdempotent(t *testing.T) {
	empty := Empty()
	p := &Profile{
		FullName:      empty.FullName,
		InternalEmail: empty.InternalEmail,
		InternalPhone: empty.InternalPhone,
		CompanyName:   empty.CompanyName,
		DocumentID:    empty.DocumentID,
	}
	if Format(p) != empty {
		t.Fatal("formatting an empty form must yield the empty form")
	}
}

func TestCompletionPercentage(t *testing.T) {
	p := &Profile{}
	if got := CompletionPercentage(p); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}

	steps := []func(*Profile){
		func(p *Profile) { p.FullName = "Ada" },
		func(p *Profile) { p.InternalEmail = "ada@example.com" },
		func(p *Profile) { p.InternalPhone = "+5511987654321" },
		func(p *Profile) { p.CompanyName = "Engines Ltd" },
		func(p *Profile) { p.DocumentID = "12345678909" },
	}
	prev := 0
	for i, step := range steps {
		step(p)
		got := CompletionPercentage(p)
		if got < prev {
			t.Fatalf("step %d: completion decreased from %d to %d", i, prev, got)
		}
		prev = got
	}
	if prev != 100 {
		t.Fatalf("expected 100 when all fields filled, got %d", prev)
	}

	if got := CompletionPercentage(&Profile{FullName: "   "}); got != 0 {
		t.Fatalf("whitespace must not count, got %d", got)
	}
	if got := CompletionPercentage(&Profile{FullName: "A"}); got != 20 {
		t.Fatalf("expected 20, got %d", got)
	}
}

func TestIsComplete(t *testing.T) {
	if IsComplete(nil) {
		t.Fatal("nil profile is not complete")
	}
	p := &Profile{FullName: "Ada", InternalEmail: "ada@example.com"}
	if IsComplete(p) {
		t.Fatal("missing phone should not be complete")
	}
	p.InternalPhone = "11987654321"
	if !IsComplete(p) {
		t.Fatal("expected complete")
	}
}

func TestValidate(t *testing.T) {
	if res := Validate(Empty()); !res.Valid() {
		t.Fatalf("empty form should be valid, got %v", res.Errors)
	}

	res := Validate(FormData{
		InternalEmail: "not-an-email",
		InternalPhone: "0000",
		DocumentID:    "123",
	})
	for _, field := range []string{FieldInternalEmail, FieldInternalPhone, FieldDocumentID} {
		if res.Errors[field] == "" {
			t.Errorf("expected error for %s", field)
		}
	}

	ok := Validate(FormData{
		FullName:      "Ada Lovelace",
		InternalEmail: "ada@example.com",
		InternalPhone: "+55 (11) 98765-4321",
		DocumentID:    "12.345.678/0001-95",
	})
	if !ok.Valid() {
		t.Fatalf("expected valid form, got %v", ok.Errors)
	}
}

func TestLabelsCoverFields(t *testing.T) {
	for _, f := range Fields {
		if Labels[f] == "" {
			t.Errorf("missing label for %s", f)
		}
	}
}
