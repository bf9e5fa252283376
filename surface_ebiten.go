package glitch

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// EbitenSurface is a Surface backed by an offscreen *ebiten.Image. The host
// draws it onto the screen each frame.
type EbitenSurface struct {
	image     *ebiten.Image
	w, h      int
	scale     float64
	glowCache map[int]*ebiten.Image
	imgOp     ebiten.DrawImageOptions
}

// NewEbitenSurface creates an offscreen surface for the given logical size.
func NewEbitenSurface(width, height int, scale float64) *EbitenSurface {
	s := &EbitenSurface{}
	s.Resize(width, height, scale)
	return s
}

// Image returns the underlying *ebiten.Image. It is replaced on Resize and
// is nil while the surface has zero area.
func (s *EbitenSurface) Image() *ebiten.Image {
	return s.image
}

// Size implements Surface.
func (s *EbitenSurface) Size() (int, int) {
	return s.w, s.h
}

// Scale implements Surface.
func (s *EbitenSurface) Scale() float64 {
	return s.scale
}

// Usable implements Surface.
func (s *EbitenSurface) Usable() bool {
	return s != nil
}

// Resize deallocates the old image and creates a new one at the given
// dimensions. A zero-area size leaves the surface without an image.
func (s *EbitenSurface) Resize(width, height int, scale float64) {
	if s.image != nil {
		s.image.Deallocate()
		s.image = nil
	}
	s.w, s.h, s.scale = physicalSize(width, height, scale)
	if s.w > 0 && s.h > 0 {
		s.image = ebiten.NewImage(s.w, s.h)
	}
}

// Clear implements Surface.
func (s *EbitenSurface) Clear() {
	if s.image != nil {
		s.image.Clear()
	}
}

// WritePixels implements Surface.
func (s *EbitenSurface) WritePixels(pix []byte) {
	if s.image == nil || len(pix) != 4*s.w*s.h {
		return
	}
	s.image.WritePixels(pix)
}

// FillCircle implements Surface.
func (s *EbitenSurface) FillCircle(cx, cy, r float64, c RGBA) {
	if s.image == nil || r <= 0 {
		return
	}
	vector.DrawFilledCircle(s.image, float32(cx), float32(cy), float32(r), c.NRGBA(), true)
}

// StrokeCircle implements Surface.
func (s *EbitenSurface) StrokeCircle(cx, cy, r, width float64, c RGBA) {
	if s.image == nil || r <= 0 || width <= 0 {
		return
	}
	vector.StrokeCircle(s.image, float32(cx), float32(cy), float32(r), float32(width), c.NRGBA(), true)
}

// StrokeLine implements Surface.
func (s *EbitenSurface) StrokeLine(x0, y0, x1, y1, width float64, c RGBA) {
	if s.image == nil || width <= 0 {
		return
	}
	vector.StrokeLine(s.image, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), c.NRGBA(), true)
}

// FillGlow implements Surface by drawing a cached feathered circle, scaled
// to r and tinted with c.
func (s *EbitenSurface) FillGlow(cx, cy, r float64, c RGBA) {
	if s.image == nil || r <= 0 || c.A <= 0 {
		return
	}
	glow := s.glow(r)
	size := float64(glow.Bounds().Dx())

	op := &s.imgOp
	op.GeoM.Reset()
	op.GeoM.Scale(2*r/size, 2*r/size)
	op.GeoM.Translate(cx-r, cy-r)
	op.ColorScale.Reset()
	a := float32(c.A)
	op.ColorScale.Scale(float32(c.R)/255*a, float32(c.G)/255*a, float32(c.B)/255*a, a)
	op.Blend = ebiten.BlendSourceOver
	s.image.DrawImage(glow, op)
}

// glow returns a cached feathered circle texture for the given radius.
// Radius is quantised to the next integer.
func (s *EbitenSurface) glow(radius float64) *ebiten.Image {
	key := max(int(math.Ceil(radius)), 1)
	if s.glowCache == nil {
		s.glowCache = make(map[int]*ebiten.Image)
	}
	if img, ok := s.glowCache[key]; ok {
		return img
	}
	size := 2 * key
	img := ebiten.NewImage(size, size)
	img.WritePixels(glowPixels(float64(key)))
	s.glowCache[key] = img
	return img
}

// Dispose releases the surface image and cached glow textures.
func (s *EbitenSurface) Dispose() {
	if s.image != nil {
		s.image.Deallocate()
		s.image = nil
	}
	for _, img := range s.glowCache {
		img.Deallocate()
	}
	s.glowCache = nil
}

// glowPixels returns a premultiplied white disc of side 2*radius whose alpha
// falls from 1 at the center to 0 at the edge with a smoothstep curve.
func glowPixels(radius float64) []byte {
	size := int(math.Ceil(radius * 2))
	pix := make([]byte, size*size*4)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - radius
			dy := float64(y) + 0.5 - radius
			dist := math.Sqrt(dx*dx+dy*dy) / radius
			var alpha float64
			if dist < 1 {
				t := 1 - dist
				alpha = t * t * (3 - 2*t)
			}
			a := uint8(alpha * 255)
			off := (y*size + x) * 4
			pix[off+0] = a
			pix[off+1] = a
			pix[off+2] = a
			pix[off+3] = a
		}
	}
	return pix
}
