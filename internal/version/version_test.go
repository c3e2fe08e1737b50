package version

import (
	"strings"
	"testing"
)

func TestCalculateBuildID(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		expected  int
		wantError bool
	}{
		{name: "epoch date", date: "2026-01-01", expected: 0},
		{name: "next day after epoch", date: "2026-01-02", expected: 1},
		{name: "one year later", date: "2027-01-01", expected: 365},
		{name: "leap year included", date: "2029-01-01", expected: 1096},
		{name: "invalid format", date: "invalid", wantError: true},
		{name: "empty date", date: "", wantError: true},
		{name: "before epoch", date: "2025-12-31", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateBuildID(tt.date)

			if tt.wantError {
				if err == nil {
					t.Fatalf("expected error, got nil (id=%d)", got)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.expected {
				t.Errorf("CalculateBuildID() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestString(t *testing.T) {
	old := BuildDate
	defer func() { BuildDate = old }()

	BuildDate = "2026-03-01"
	if s := String(); !strings.Contains(s, "build 59") || !strings.HasPrefix(s, Program) {
		t.Errorf("unexpected version string %q", s)
	}

	BuildDate = ""
	if s := String(); !strings.Contains(s, "unknown") {
		t.Errorf("expected unknown build, got %q", s)
	}
}
