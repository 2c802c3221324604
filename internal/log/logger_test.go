package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		ok   bool
	}{
		{"debug", LevelDebug, true},
		{"INFO", LevelInfo, true},
		{"warning", LevelWarn, true},
		{"Error", LevelError, true},
		{"loud", LevelInfo, false},
		{"", LevelInfo, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLevel(tt.in)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ParseLevel(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	defer SetLevel(LevelInfo)

	SetLevel(LevelWarn)
	Debugf("hidden %d", 1)
	Infof("hidden %d", 2)
	Warnf("shown %d", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("messages below the level were logged: %q", out)
	}
	if !strings.Contains(out, "[WARN] shown 3") {
		t.Errorf("warning missing from output: %q", out)
	}

	buf.Reset()
	SetLevel(LevelDebug)
	Debugf("now %s", "visible")
	if !strings.Contains(buf.String(), "[DEBUG] now visible") {
		t.Errorf("debug missing from output: %q", buf.String())
	}
}

func TestLevelString(t *testing.T) {
	if got := LevelWarn.String(); got != "WARN" {
		t.Errorf("LevelWarn = %q", got)
	}
	if got := Level(9).String(); got != "Level(9)" {
		t.Errorf("Level(9) = %q", got)
	}
}
