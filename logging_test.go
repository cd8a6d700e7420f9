package main

import "testing"

func TestParseLogLevel(t *testing.T) {
	cases := []struct {
		in   string
		want logLevel
		ok   bool
	}{
		{"debug", logLevelDebug, true},
		{"INFO", logLevelInfo, true},
		{" warn ", logLevelWarn, true},
		{"warning", logLevelWarn, true},
		{"error", logLevelError, true},
		{"loud", logLevelInfo, false},
		{"", logLevelInfo, false},
	}
	for _, tc := range cases {
		got, ok := parseLogLevel(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("parseLogLevel(%q)=(%v,%v), want (%v,%v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestFormatAttrs(t *testing.T) {
	if got := formatAttrs(nil); got != "" {
		t.Fatalf("formatAttrs(nil)=%q, want empty", got)
	}
	if got := formatAttrs([]any{"key", "value", "n", 3}); got != "key=value n=3" {
		t.Fatalf("formatAttrs=%q, want %q", got, "key=value n=3")
	}
	// Odd trailing attribute is kept bare rather than dropped.
	if got := formatAttrs([]any{"key", "value", "orphan"}); got != "key=value orphan" {
		t.Fatalf("formatAttrs=%q, want %q", got, "key=value orphan")
	}
}
