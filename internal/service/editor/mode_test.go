package editor

import (
	"errors"
	"testing"
)

func TestInitial(t *testing.T) {
	if Initial(true) != View {
		t.Fatal("existing record should open in view")
	}
	if Initial(false) != Create {
		t.Fatal("missing record should open in create")
	}
}

func TestTransition(t *testing.T) {
	tests := []struct {
		from      Mode
		ev        Event
		hasRecord bool
		want      Mode
		wantErr   bool
	}{
		{from: View, ev: EventEdit, hasRecord: true, want: Edit},
		{from: View, ev: EventEdit, hasRecord: false, wantErr: true},
		{from: Create, ev: EventEdit, hasRecord: false, wantErr: true},
		{from: Edit, ev: EventCreate, hasRecord: true, wantErr: true},
		{from: View, ev: EventCreate, hasRecord: false, want: Create},
		{from: Edit, ev: EventSaved, hasRecord: true, want: View},
		{from: Create, ev: EventSaved, hasRecord: false, want: View},
		{from: View, ev: EventSaved, hasRecord: true, wantErr: true},
		{from: Edit, ev: EventCancel, hasRecord: true, want: View},
		{from: Create, ev: EventCancel, hasRecord: false, want: Create},
		{from: View, ev: EventCancel, hasRecord: true, wantErr: true},
		{from: View, ev: EventDeleted, hasRecord: true, want: Create},
		{from: Edit, ev: EventDeleted, hasRecord: true, want: Create},
		{from: Create, ev: EventDeleted, hasRecord: false, wantErr: true},
	}
	for _, tt := range tests {
		got, err := Transition(tt.from, tt.ev, tt.hasRecord)
		if tt.wantErr {
			if !errors.Is(err, ErrIllegalTransition) {
				t.Errorf("%s+%s(record=%t): expected ErrIllegalTransition, got %v", tt.from, tt.ev, tt.hasRecord, err)
			}
			if got != tt.from {
				t.Errorf("%s+%s: rejected transition must keep mode, got %s", tt.from, tt.ev, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s+%s(record=%t): unexpected error %v", tt.from, tt.ev, tt.hasRecord, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s+%s(record=%t) = %s, want %s", tt.from, tt.ev, tt.hasRecord, got, tt.want)
		}
	}
}

func TestEditable(t *testing.T) {
	if View.Editable() || !Edit.Editable() || !Create.Editable() {
		t.Fatal("unexpected Editable results")
	}
}
