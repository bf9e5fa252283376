// Package term runs glitch effects inside a terminal. Each character cell
// shows two vertically stacked pixels using the upper half block glyph, with
// the foreground colour for the top pixel and the background for the bottom.
package term

import (
	"context"
	"image"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/glitch"
	"github.com/rs/zerolog"
)

// upperHalf is the glyph whose foreground covers the top half of a cell.
const upperHalf = '▀'

// Config configures a terminal host.
type Config struct {
	Effect  glitch.Family
	Options glitch.Options
	// CellSize is the number of logical pixels per terminal pixel. Zero
	// means 4, so an 80×24 terminal is a 320×192 logical surface.
	CellSize int
	// Background is composited under the effect. The zero value is black.
	Background color.RGBA
	// Tick is the frame interval. Zero means 16ms.
	Tick   time.Duration
	Logger *zerolog.Logger
	Debug  bool
}

// Host adapts one engine to a tcell screen. It is driven either by Run or,
// in tests, by calling HandleEvent and Tick directly.
type Host struct {
	screen   tcell.Screen
	cfg      Config
	frames   glitch.FrameQueue
	viewport glitch.EventTarget
	element  glitch.EventTarget
	surface  *glitch.ImageSurface
	handle   *glitch.Handle
	cols     int
	rows     int
}

// NewHost mounts cfg.Effect on a surface sized to the screen. The screen
// must already be initialised.
func NewHost(screen tcell.Screen, cfg Config) *Host {
	if cfg.CellSize <= 0 {
		cfg.CellSize = 4
	}
	if cfg.Tick <= 0 {
		cfg.Tick = 16 * time.Millisecond
	}
	h := &Host{screen: screen, cfg: cfg}
	h.cols, h.rows = screen.Size()
	w, ht, scale := h.logical(h.cols, h.rows)
	h.surface = glitch.NewImageSurface(w, ht, scale)
	h.handle = glitch.Mount(glitch.MountConfig{
		Effect:   cfg.Effect,
		Options:  cfg.Options,
		Surface:  h.surface,
		Frames:   &h.frames,
		Viewport: &h.viewport,
		Element:  &h.element,
		Width:    w,
		Height:   ht,
		Scale:    scale,
		Logger:   cfg.Logger,
		Debug:    cfg.Debug,
	})
	return h
}

// logical converts a cell grid to a logical surface size and scale.
func (h *Host) logical(cols, rows int) (int, int, float64) {
	cell := h.cfg.CellSize
	return cols * cell, rows * 2 * cell, 1 / float64(cell)
}

// Handle returns the mounted engine handle.
func (h *Host) Handle() *glitch.Handle { return h.handle }

// Surface returns the software surface painted to the screen.
func (h *Host) Surface() *glitch.ImageSurface { return h.surface }

// HandleEvent translates a tcell event. It returns false when the user asked
// to quit.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
	case *tcell.EventMouse:
		col, row := ev.Position()
		cell := float64(h.cfg.CellSize)
		h.element.Dispatch(glitch.Event{
			Type: glitch.EventPointerMove,
			X:    (float64(col) + 0.5) * cell,
			Y:    (float64(row)*2 + 1) * cell,
		})
	case *tcell.EventFocus:
		if !ev.Focused {
			h.element.Dispatch(glitch.Event{Type: glitch.EventPointerLeave})
		}
	case *tcell.EventResize:
		h.cols, h.rows = ev.Size()
		w, ht, scale := h.logical(h.cols, h.rows)
		h.viewport.Dispatch(glitch.Event{Type: glitch.EventViewportResize, Width: w, Height: ht, Scale: scale})
		h.element.Dispatch(glitch.Event{Type: glitch.EventContainerResize, Width: w, Height: ht, Scale: scale})
		h.screen.Sync()
	}
	return true
}

// Tick delivers pending frames and paints the surface.
func (h *Host) Tick(now time.Duration) {
	h.frames.Flush(now)
	Paint(h.screen, h.surface.Image(), h.cfg.Background)
	h.screen.Show()
}

// Close releases the engine. The screen is left to the caller.
func (h *Host) Close() {
	h.handle.Release()
}

// Paint draws img onto screen, two pixel rows per character row. img holds
// premultiplied pixels, which are composited over bg.
func Paint(screen tcell.Screen, img *image.RGBA, bg color.RGBA) {
	cols, rows := screen.Size()
	b := img.Bounds()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top := composite(img, b, col, row*2, bg)
			bottom := composite(img, b, col, row*2+1, bg)
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			screen.SetContent(col, row, upperHalf, nil, style)
		}
	}
}

func composite(img *image.RGBA, b image.Rectangle, x, y int, bg color.RGBA) tcell.Color {
	if !(image.Point{X: x, Y: y}).In(b) {
		return tcell.NewRGBColor(int32(bg.R), int32(bg.G), int32(bg.B))
	}
	i := img.PixOffset(x, y)
	p := img.Pix[i : i+4 : i+4]
	inv := 255 - int32(p[3])
	return tcell.NewRGBColor(
		int32(p[0])+int32(bg.R)*inv/255,
		int32(p[1])+int32(bg.G)*inv/255,
		int32(p[2])+int32(bg.B)*inv/255,
	)
}

// Run shows cfg.Effect on screen until ctx is cancelled or the user presses
// Escape, q or Ctrl-C. The screen must be initialised; Run enables mouse and
// focus reporting but does not finalise it.
func Run(ctx context.Context, screen tcell.Screen, cfg Config) error {
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()

	h := NewHost(screen, cfg)
	defer h.Close()

	done := make(chan struct{})
	defer close(done)
	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(h.cfg.Tick)
	defer ticker.Stop()
	start := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-eventChan:
			if !h.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			h.Tick(time.Since(start))
		}
	}
}
