package glitch

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestDebugLogsFrames(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)
	h := NewHeadless(HeadlessConfig{Effect: FamilySnow, Options: Options{Seed: 1}, Width: 20, Height: 20, Logger: &log, Debug: true})
	defer h.Close()
	h.Run(2)
	out := buf.String()
	if !strings.Contains(out, `"message":"frame"`) || !strings.Contains(out, `"entities":120`) {
		t.Errorf("debug output = %q", out)
	}
}

func TestDebugOffIsQuiet(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)
	h := NewHeadless(HeadlessConfig{Effect: FamilySnow, Options: Options{Seed: 1}, Width: 20, Height: 20, Logger: &log})
	defer h.Close()
	h.Run(2)
	if strings.Contains(buf.String(), `"message":"frame"`) {
		t.Error("frame stats logged without Debug")
	}
}

func TestFrameOverBudgetWarns(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	e := &Engine{log: log, debug: true}
	e.debugLog(frameStats{update: 10 * time.Millisecond, draw: 10 * time.Millisecond})
	if !strings.Contains(buf.String(), "frame over budget") {
		t.Errorf("output = %q", buf.String())
	}
	if got := (frameStats{update: 1, link: 2, draw: 3}).total(); got != 6 {
		t.Errorf("total = %v, want 6", got)
	}
}

func TestFrameWithinBudgetIsQuiet(t *testing.T) {
	var buf bytes.Buffer
	e := &Engine{log: zerolog.New(&buf).Level(zerolog.WarnLevel), debug: true}
	e.debugLog(frameStats{update: 8 * time.Millisecond, draw: 8 * time.Millisecond})
	if strings.Contains(buf.String(), "over budget") {
		t.Errorf("16ms frame reported over budget: %q", buf.String())
	}
}
