package glitch

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// scriptStep represents a single action in a script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Width  int     `json:"width,omitempty"`
	Height int     `json:"height,omitempty"`
	Scale  float64 `json:"scale,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// scriptFile is the top-level JSON structure of a script.
type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// Script sequences injected pointer and resize events and snapshots across
// frames of a Headless host:
//
//	{"steps": [
//	  {"action": "wait", "frames": 30},
//	  {"action": "move", "x": 120, "y": 80},
//	  {"action": "sweep", "fromX": 0, "fromY": 0, "toX": 300, "toY": 200, "frames": 20},
//	  {"action": "leave"},
//	  {"action": "resize", "width": 200, "height": 100},
//	  {"action": "snapshot", "label": "after-resize"}
//	]}
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON script.
func LoadScript(jsonData []byte) (*Script, error) {
	var file scriptFile
	if err := json.Unmarshal(jsonData, &file); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(file.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range file.Steps {
		switch st.Action {
		case "wait", "move", "sweep", "leave", "resize", "snapshot":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: file.Steps}, nil
}

// Done reports whether all steps have been executed.
func (r *Script) Done() bool {
	return r.done
}

// step advances the script by one frame.
func (r *Script) step(h *Headless) {
	if r.done {
		return
	}
	// Wait for injected events to drain before advancing.
	if len(h.inject) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "snapshot":
		h.Snapshot(st.Label)
	case "move":
		h.InjectMove(st.X, st.Y)
	case "sweep":
		h.InjectSweep(st.FromX, st.FromY, st.ToX, st.ToY, max(st.Frames, 2))
	case "leave":
		h.InjectLeave()
	case "resize":
		h.InjectResize(st.Width, st.Height, st.Scale)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(h.inject) == 0 {
		r.done = true
	}
}

// HeadlessConfig configures a Headless host.
type HeadlessConfig struct {
	Effect        Family
	Options       Options
	Width, Height int
	Scale         float64
	// SnapshotDir receives PNG files for snapshot steps. Empty means ".".
	SnapshotDir string
	Logger      *zerolog.Logger
	Debug       bool
}

// Headless runs an engine on an ImageSurface with a simulated clock. Each
// Tick injects at most one queued event, then flushes one frame.
type Headless struct {
	Frames   FrameQueue
	Viewport EventTarget
	Element  EventTarget
	Surface  *ImageSurface

	handle    *Handle
	now       time.Duration
	inject    []Event
	snapshots []string
	dir       string
	written   []string
	log       zerolog.Logger
}

// NewHeadless mounts an effect on a fresh ImageSurface.
func NewHeadless(cfg HeadlessConfig) *Headless {
	h := &Headless{dir: cfg.SnapshotDir, log: zerolog.Nop()}
	if cfg.Logger != nil {
		h.log = *cfg.Logger
	}
	if h.dir == "" {
		h.dir = "."
	}
	h.Surface = NewImageSurface(cfg.Width, cfg.Height, cfg.Scale)
	h.handle = Mount(MountConfig{
		Effect:   cfg.Effect,
		Options:  cfg.Options,
		Surface:  h.Surface,
		Frames:   &h.Frames,
		Viewport: &h.Viewport,
		Element:  &h.Element,
		Width:    cfg.Width,
		Height:   cfg.Height,
		Scale:    cfg.Scale,
		Logger:   cfg.Logger,
		Debug:    cfg.Debug,
	})
	return h
}

// Handle returns the mounted engine handle.
func (h *Headless) Handle() *Handle { return h.handle }

// Now returns the simulated clock.
func (h *Headless) Now() time.Duration { return h.now }

// Written returns the paths of snapshots written so far.
func (h *Headless) Written() []string { return h.written }

// InjectMove queues a pointer move to logical (x, y).
func (h *Headless) InjectMove(x, y float64) {
	h.inject = append(h.inject, Event{Type: EventPointerMove, X: x, Y: y})
}

// InjectLeave queues a pointer leave.
func (h *Headless) InjectLeave() {
	h.inject = append(h.inject, Event{Type: EventPointerLeave})
}

// InjectSweep queues pointer moves linearly interpolated from (fromX, fromY)
// to (toX, toY) over the given number of frames.
func (h *Headless) InjectSweep(fromX, fromY, toX, toY float64, frames int) {
	frames = max(frames, 2)
	for i := range frames {
		t := float64(i) / float64(frames-1)
		h.InjectMove(lerp(fromX, toX, t), lerp(fromY, toY, t))
	}
}

// InjectResize queues a resize of both the viewport and the element.
func (h *Headless) InjectResize(width, height int, scale float64) {
	h.inject = append(h.inject, Event{Type: EventViewportResize, Width: width, Height: height, Scale: scale})
}

// Snapshot queues a PNG snapshot taken after the next frame.
func (h *Headless) Snapshot(label string) {
	h.snapshots = append(h.snapshots, label)
}

// Tick advances the clock by one nominal frame, dispatches one injected
// event and flushes the frame queue. It returns the first snapshot error.
func (h *Headless) Tick(script *Script) error {
	h.now += nominalFrame
	if script != nil {
		script.step(h)
	}
	if len(h.inject) > 0 {
		ev := h.inject[0]
		copy(h.inject, h.inject[1:])
		h.inject = h.inject[:len(h.inject)-1]
		h.dispatch(ev)
	}
	h.Frames.Flush(h.now)
	return h.flushSnapshots()
}

func (h *Headless) dispatch(ev Event) {
	switch ev.Type {
	case EventViewportResize, EventContainerResize:
		ev.Type = EventViewportResize
		h.Viewport.Dispatch(ev)
		ev.Type = EventContainerResize
		h.Element.Dispatch(ev)
	default:
		h.Element.Dispatch(ev)
	}
}

func (h *Headless) flushSnapshots() error {
	if len(h.snapshots) == 0 {
		return nil
	}
	defer func() { h.snapshots = h.snapshots[:0] }()
	for _, label := range h.snapshots {
		path := filepath.Join(h.dir, fmt.Sprintf("%06d_%s.png", h.handle.Engine().State().Ticks, sanitizeLabel(label)))
		if err := SavePNG(path, h.Surface); err != nil {
			return fmt.Errorf("snapshot %q: %w", label, err)
		}
		h.written = append(h.written, path)
		h.log.Debug().Str("path", path).Msg("snapshot written")
	}
	return nil
}

// Run ticks n frames.
func (h *Headless) Run(n int) error {
	for range n {
		if err := h.Tick(nil); err != nil {
			return err
		}
	}
	return nil
}

// RunScript ticks until the script is done or maxFrames have run.
func (h *Headless) RunScript(s *Script, maxFrames int) error {
	for i := 0; i < maxFrames && !s.Done(); i++ {
		if err := h.Tick(s); err != nil {
			return err
		}
	}
	if !s.Done() {
		return fmt.Errorf("script not finished after %d frames", maxFrames)
	}
	return nil
}

// Close releases the engine.
func (h *Headless) Close() {
	h.handle.Release()
}
