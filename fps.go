package glitch

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsOverlay displays FPS, TPS and engine counters in the top-left corner.
// The text is redrawn every ~0.5 seconds.
type fpsOverlay struct {
	img     *ebiten.Image
	elapsed float64
	op      ebiten.DrawImageOptions
}

func newFPSOverlay() *fpsOverlay {
	// 140x64 fits four short lines of debug text.
	return &fpsOverlay{img: ebiten.NewImage(140, 64), elapsed: 1}
}

func (o *fpsOverlay) update(dt float64, e *Engine) {
	o.elapsed += dt
	if o.elapsed < 0.5 {
		return
	}
	o.elapsed = 0

	o.img.Clear()
	// Semi-transparent background for readability
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	st := e.State()
	ebitenutil.DebugPrint(o.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nEntities: %d\nLinks: %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), st.Store.Len(), len(st.Links)))
}

func (o *fpsOverlay) draw(screen *ebiten.Image) {
	screen.DrawImage(o.img, &o.op)
}

func (o *fpsOverlay) dispose() {
	o.img.Deallocate()
}
