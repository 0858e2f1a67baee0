// pattern: Functional Core

package logging

import (
	"testing"
)

func TestParseEntry(t *testing.T) {
	line := []byte(`{"level":"warn","ts":1772615700.5,"logger":"build.space","msg":"build failed","exit_code":2,"caller":"x.go:1"}` + "\n")

	entry, err := parseEntry(line)
	if err != nil {
		t.Fatalf("parseEntry() error = %v", err)
	}
	if entry.Level != "WARN" {
		t.Errorf("Level = %q, want %q", entry.Level, "WARN")
	}
	if entry.Scope != "build.space" {
		t.Errorf("Scope = %q, want %q", entry.Scope, "build.space")
	}
	if entry.Message != "build failed" {
		t.Errorf("Message = %q, want %q", entry.Message, "build failed")
	}
	if entry.Fields["exit_code"] != float64(2) {
		t.Errorf("Fields[exit_code] = %v, want 2", entry.Fields["exit_code"])
	}
	if _, ok := entry.Fields["caller"]; ok {
		t.Error("caller should not be kept as a field")
	}
	if got := entry.Timestamp.UnixMilli(); got != 1772615700500 {
		t.Errorf("Timestamp = %d ms, want 1772615700500", got)
	}
}

func TestParseEntry_NotJSON(t *testing.T) {
	if _, err := parseEntry([]byte("plain text\n")); err == nil {
		t.Error("expected error for non-JSON line")
	}
}

func TestLogEntry_MatchesScope(t *testing.T) {
	tests := []struct {
		name   string
		scope  string
		prefix string
		want   bool
	}{
		{name: "empty prefix matches all", scope: "copier", prefix: "", want: true},
		{name: "exact match", scope: "build.space", prefix: "build.space", want: true},
		{name: "child scope", scope: "build.space.stderr", prefix: "build.space", want: true},
		{name: "sibling", scope: "build.space", prefix: "build.racer", want: false},
		{name: "different root", scope: "pipeline", prefix: "build", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := LogEntry{Scope: tt.scope}
			if got := entry.MatchesScope(tt.prefix); got != tt.want {
				t.Errorf("MatchesScope(%q) = %v, want %v", tt.prefix, got, tt.want)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"debug", "DEBUG"},
		{"Info", "INFO"},
		{"warn", "WARN"},
		{"warning", "WARN"},
		{"ERROR", "ERROR"},
		{"fatal", "INFO"},
		{"", "INFO"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
