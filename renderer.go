package glitch

// Falloff controls link opacity: LineOpacity at zero distance, fading
// linearly to nothing at MaxDistance.
type Falloff struct {
	MaxDistance float64
	LineOpacity float64
	LineWidth   float64
}

// Alpha returns the link opacity for a distance.
func (f Falloff) Alpha(distance float64) float64 {
	if f.MaxDistance <= 0 || distance >= f.MaxDistance {
		return 0
	}
	return clamp01(f.LineOpacity * (1 - distance/f.MaxDistance))
}

// Renderer issues drawing calls against one Surface. Positions are logical
// pixels and are scaled by the surface's device pixel ratio.
type Renderer struct {
	surface Surface
	pix     []byte
}

// NewRenderer creates a renderer drawing onto s.
func NewRenderer(s Surface) *Renderer {
	return &Renderer{surface: s}
}

// Surface returns the renderer's surface.
func (r *Renderer) Surface() Surface {
	return r.surface
}

// Empty reports whether the surface has zero area.
func (r *Renderer) Empty() bool {
	w, h := r.surface.Size()
	return w <= 0 || h <= 0
}

// Clear clears the surface.
func (r *Renderer) Clear() {
	r.surface.Clear()
}

// DrawEntity draws e as a filled disc using its own radius and opacity.
func (r *Renderer) DrawEntity(e *Entity, c RGBA) {
	if e.Radius <= 0 || e.Opacity <= 0 {
		return
	}
	s := r.surface.Scale()
	r.surface.FillCircle(e.X*s, e.Y*s, e.Radius*s, c.WithAlpha(e.Opacity))
}

// DrawRing draws e as an outlined circle with a faint fill, for bubbles.
func (r *Renderer) DrawRing(e *Entity, c RGBA, lineWidth float64) {
	if e.Radius <= 0 || e.Opacity <= 0 {
		return
	}
	s := r.surface.Scale()
	r.surface.FillCircle(e.X*s, e.Y*s, e.Radius*s, c.WithAlpha(e.Opacity*0.15))
	r.surface.StrokeCircle(e.X*s, e.Y*s, e.Radius*s, lineWidth*s, c.WithAlpha(e.Opacity))
}

// DrawGlow draws a feathered halo of glowRadius around e followed by its core.
func (r *Renderer) DrawGlow(e *Entity, c RGBA, glowRadius float64) {
	if e.Opacity <= 0 {
		return
	}
	s := r.surface.Scale()
	if glowRadius > 0 {
		r.surface.FillGlow(e.X*s, e.Y*s, glowRadius*s, c.WithAlpha(e.Opacity*0.6))
	}
	r.DrawEntity(e, c)
}

// DrawLink draws a line between a and b whose opacity fades with the link
// distance.
func (r *Renderer) DrawLink(a, b *Entity, l Link, c RGBA, f Falloff) {
	alpha := f.Alpha(l.Distance)
	if alpha <= 0 {
		return
	}
	width := f.LineWidth
	if width <= 0 {
		width = 1
	}
	s := r.surface.Scale()
	r.surface.StrokeLine(a.X*s, a.Y*s, b.X*s, b.Y*s, width*s, c.WithAlpha(alpha))
}

// DrawField evaluates sampler over the whole surface and writes a full pixel
// buffer. Samples are taken every step physical pixels and each sample fills
// its step×step block. Returns false without drawing on a zero-area surface.
func (r *Renderer) DrawField(sampler Sampler, t float64, step int) bool {
	w, h := r.surface.Size()
	if w <= 0 || h <= 0 || sampler == nil {
		return false
	}
	step = max(step, 1)
	n := 4 * w * h
	if cap(r.pix) < n {
		r.pix = make([]byte, n)
	}
	pix := r.pix[:n]
	scale := r.surface.Scale()

	for by := 0; by < h; by += step {
		for bx := 0; bx < w; bx += step {
			c := sampler.Sample(float64(bx)/scale, float64(by)/scale, t)
			a := clamp01(c.A)
			pr := uint8(float64(c.R)*a + 0.5)
			pg := uint8(float64(c.G)*a + 0.5)
			pb := uint8(float64(c.B)*a + 0.5)
			pa := uint8(a*255 + 0.5)
			for y := by; y < min(by+step, h); y++ {
				off := (y*w + bx) * 4
				for x := bx; x < min(bx+step, w); x++ {
					pix[off] = pr
					pix[off+1] = pg
					pix[off+2] = pb
					pix[off+3] = pa
					off += 4
				}
			}
		}
	}
	r.surface.WritePixels(pix)
	return true
}
