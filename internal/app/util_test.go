package app

import (
	"encoding/json"
	"testing"
)

func TestShortID(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"short", "short"},
		{"12345678901234", "12345678901234"},
		{"123456789012345", "123456…012345"},
	}

	for _, tt := range tests {
		if got := shortID(tt.input); got != tt.expected {
			t.Errorf("shortID(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestNz(t *testing.T) {
	if got := nz("value", "fallback"); got != "value" {
		t.Errorf("unexpected result: %q", got)
	}
	if got := nz("", "fallback"); got != "fallback" {
		t.Errorf("unexpected result: %q", got)
	}
	if got := nz("   ", "fallback"); got != "fallback" {
		t.Errorf("unexpected result: %q", got)
	}
}

func TestParseMaybeJSONStringArray(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []string
		wantErr  bool
	}{
		{"plain array", `["a","b"]`, []string{"a", "b"}, false},
		{"string-encoded array", `"[\"a\",\"b\"]"`, []string{"a", "b"}, false},
		{"number array", `[0.5, 0.5]`, []string{"0.5", "0.5"}, false},
		{"null", `null`, nil, false},
		{"empty", ``, nil, false},
		{"not an array", `"abc"`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseMaybeJSONStringArray(json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("unexpected error state: %v", err)
			}
			if len(got) != len(tt.expected) {
				t.Fatalf("length mismatch: got %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("element %d: got %q, want %q", i, got[i], tt.expected[i])
				}
			}
		})
	}
}
