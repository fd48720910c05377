package timeutil

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimeMarshalJSONUsesMillis(t *testing.T) {
	ts := NewTime(time.Date(2024, 1, 15, 10, 30, 0, 123456789, time.FixedZone("EET", 2*3600)))

	data, err := json.Marshal(ts)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2024-01-15T08:30:00.123Z"` {
		t.Fatalf("unexpected output: %s", data)
	}
}

func TestTimeUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"millis", `"2024-01-15T10:30:00.000Z"`, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"seconds", `"2024-01-15T10:30:00Z"`, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"offset", `"2024-01-15T12:30:00+02:00"`, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Time
			if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Fatalf("got %v, want %v", got.Time, tt.want)
			}
		})
	}
}

func TestTimeUnmarshalNullPreservesValue(t *testing.T) {
	orig := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	got := NewTime(orig)
	if err := json.Unmarshal([]byte("null"), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !got.Equal(orig) {
		t.Fatalf("expected value preserved, got %v", got.Time)
	}
}

func TestTimeUnmarshalInvalid(t *testing.T) {
	var got Time
	if err := json.Unmarshal([]byte(`"yesterday"`), &got); err == nil {
		t.Fatal("expected error for invalid timestamp")
	}
}
