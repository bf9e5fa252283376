package glitch

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewLogger(LoggerOptions{Level: "WARN", Writer: &buf})
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	log.Info().Msg("hidden")
	log.Warn().Str("field", "Count").Msg("option adjusted")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info message logged at warn level")
	}
	if !strings.Contains(out, `"message":"option adjusted"`) || !strings.Contains(out, `"field":"Count"`) {
		t.Errorf("output = %q", out)
	}
}

func TestNewLoggerHumanReadable(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewLogger(LoggerOptions{Level: "debug", HumanReadable: true, Writer: &buf})
	if err != nil {
		t.Fatal(err)
	}
	log.Debug().Msg("frame")
	if out := buf.String(); strings.HasPrefix(out, "{") || !strings.Contains(out, "frame") {
		t.Errorf("output = %q, want console format", out)
	}
}

func TestNewLoggerInvalidLevel(t *testing.T) {
	if _, err := NewLogger(LoggerOptions{Level: "loud"}); err == nil {
		t.Error("expected an error for an unknown level")
	}
}
