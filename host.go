package glitch

import (
	"errors"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
)

// RunConfig configures the desktop host started by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	Effect        Family
	Options       Options
	// Background fills the window behind the effect. The zero value is black.
	Background color.RGBA
	ShowFPS    bool
	Logger     *zerolog.Logger
	Debug      bool
}

// Run opens a window and runs one effect until the window is closed or
// Escape is pressed. The window acts as both viewport and element: cursor
// movement becomes pointer events and window resizes become resize events.
//
//	err := glitch.Run(glitch.RunConfig{
//		Title: "snow", Width: 800, Height: 600, Effect: glitch.FamilySnow,
//	})
func Run(cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 800
	}
	if cfg.Height <= 0 {
		cfg.Height = 600
	}
	if cfg.Title == "" {
		cfg.Title = "glitch: " + string(cfg.Effect)
	}
	g := &game{start: time.Now(), background: cfg.Background}
	g.background.A = 255
	g.surface = NewEbitenSurface(cfg.Width, cfg.Height, 1)
	g.handle = Mount(MountConfig{
		Effect:   cfg.Effect,
		Options:  cfg.Options,
		Surface:  g.surface,
		Frames:   &g.frames,
		Viewport: &g.viewport,
		Element:  &g.element,
		Width:    cfg.Width,
		Height:   cfg.Height,
		Scale:    1,
		Logger:   cfg.Logger,
		Debug:    cfg.Debug,
	})
	if cfg.ShowFPS {
		g.fps = newFPSOverlay()
	}
	defer g.close()

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// game adapts an engine to ebiten.Game. Update drains the frame queue, so
// the engine runs at the ebiten tick rate.
type game struct {
	frames     FrameQueue
	viewport   EventTarget
	element    EventTarget
	surface    *EbitenSurface
	handle     *Handle
	fps        *fpsOverlay
	start      time.Time
	background color.RGBA

	width, height int
	scale         float64
	inside        bool
	lastX, lastY  float64
	op            ebiten.DrawImageOptions
}

func (g *game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.pollPointer()
	g.frames.Flush(time.Since(g.start))
	if g.fps != nil {
		g.fps.update(1/float64(ebiten.TPS()), g.handle.Engine())
	}
	return nil
}

// pollPointer turns cursor polling into move and leave events.
func (g *game) pollPointer() {
	cx, cy := ebiten.CursorPosition()
	scale := max(g.scale, 1)
	x, y := float64(cx)/scale, float64(cy)/scale
	in := ebiten.IsFocused() && x >= 0 && y >= 0 && x < float64(g.width) && y < float64(g.height)
	switch {
	case in && (!g.inside || x != g.lastX || y != g.lastY):
		g.element.Dispatch(Event{Type: EventPointerMove, X: x, Y: y})
	case !in && g.inside:
		g.element.Dispatch(Event{Type: EventPointerLeave})
	}
	g.inside, g.lastX, g.lastY = in, x, y
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(g.background)
	if img := g.surface.Image(); img != nil {
		screen.DrawImage(img, &g.op)
	}
	if g.fps != nil {
		g.fps.draw(screen)
	}
}

// Layout reports a screen in physical pixels and dispatches a resize when
// the window or its device scale changes.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := 1.0
	if m := ebiten.Monitor(); m != nil {
		scale = m.DeviceScaleFactor()
	}
	if outsideWidth != g.width || outsideHeight != g.height || scale != g.scale {
		g.width, g.height, g.scale = outsideWidth, outsideHeight, scale
		ev := Event{Type: EventViewportResize, Width: outsideWidth, Height: outsideHeight, Scale: scale}
		g.viewport.Dispatch(ev)
		ev.Type = EventContainerResize
		g.element.Dispatch(ev)
	}
	w, h, _ := physicalSize(outsideWidth, outsideHeight, scale)
	return max(w, 1), max(h, 1)
}

func (g *game) close() {
	g.handle.Release()
	g.surface.Dispose()
	if g.fps != nil {
		g.fps.dispose()
	}
}
