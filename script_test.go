package glitch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadScriptErrors(t *testing.T) {
	tests := []struct {
		name, data, want string
	}{
		{"invalid json", `{"steps": [`, "parse script"},
		{"no steps", `{"steps": []}`, "no steps"},
		{"unknown action", `{"steps": [{"action": "click"}]}`, `unknown action "click"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScript([]byte(tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestHeadlessRun(t *testing.T) {
	h := NewHeadless(HeadlessConfig{Effect: FamilySnow, Options: Options{Seed: 3}, Width: 64, Height: 32})
	defer h.Close()
	if err := h.Run(12); err != nil {
		t.Fatal(err)
	}
	st := h.Handle().Engine().State()
	if st.Ticks != 12 || h.Now() != 12*nominalFrame {
		t.Errorf("ticks %d now %v", st.Ticks, h.Now())
	}
	painted := false
	for _, b := range h.Surface.Image().Pix {
		if b != 0 {
			painted = true
			break
		}
	}
	if !painted {
		t.Error("nothing drawn")
	}
}

func TestHeadlessInjectSweep(t *testing.T) {
	h := NewHeadless(HeadlessConfig{Effect: FamilyParticles, Options: Options{Seed: 3}, Width: 100, Height: 100})
	defer h.Close()
	h.InjectSweep(0, 0, 90, 30, 4)
	var xs []float64
	for range 4 {
		if err := h.Tick(nil); err != nil {
			t.Fatal(err)
		}
		xs = append(xs, h.Handle().Engine().State().Pointer.X)
	}
	want := []float64{0, 30, 60, 90}
	for i := range want {
		assertNear(t, "pointer x", xs[i], want[i])
	}
	h.InjectLeave()
	h.Tick(nil)
	if h.Handle().Engine().State().Pointer != PointerAway {
		t.Error("leave not delivered")
	}
}

func TestRunScriptWritesSnapshots(t *testing.T) {
	dir := t.TempDir()
	script, err := LoadScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "move", "x": 10, "y": 10},
		{"action": "resize", "width": 40, "height": 20},
		{"action": "snapshot", "label": "after resize"},
		{"action": "leave"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	h := NewHeadless(HeadlessConfig{Effect: FamilyBubbles, Options: Options{Seed: 5}, Width: 80, Height: 60, SnapshotDir: dir})
	defer h.Close()
	if err := h.RunScript(script, 100); err != nil {
		t.Fatal(err)
	}
	if st := h.Handle().Engine().State(); st.Width != 40 || st.Height != 20 {
		t.Errorf("size = %vx%v, want 40x20", st.Width, st.Height)
	}
	written := h.Written()
	if len(written) != 1 || !strings.HasSuffix(written[0], "_after_resize.png") {
		t.Fatalf("written = %v", written)
	}
	if filepath.Dir(written[0]) != dir {
		t.Errorf("snapshot outside %s: %s", dir, written[0])
	}
	if _, err := os.Stat(written[0]); err != nil {
		t.Error(err)
	}
}

func TestRunScriptMaxFrames(t *testing.T) {
	script, err := LoadScript([]byte(`{"steps": [{"action": "wait", "frames": 50}]}`))
	if err != nil {
		t.Fatal(err)
	}
	h := NewHeadless(HeadlessConfig{Width: 10, Height: 10})
	defer h.Close()
	if err := h.RunScript(script, 5); err == nil {
		t.Error("expected an unfinished script error")
	}
}
