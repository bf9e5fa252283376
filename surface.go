package glitch

// Surface is the 2D drawing target owned by one engine. Coordinates passed
// to drawing calls are physical pixels; the Renderer applies the scale.
type Surface interface {
	// Size returns the physical size in pixels.
	Size() (width, height int)
	// Scale returns the device pixel ratio (physical / logical).
	Scale() float64
	// Resize reallocates the backing store for the given logical size and
	// scale. Previous contents are discarded.
	Resize(width, height int, scale float64)
	// Clear fills the surface with transparent black.
	Clear()
	// FillCircle draws a filled, anti-aliased circle.
	FillCircle(cx, cy, r float64, c RGBA)
	// StrokeCircle draws an anti-aliased ring of the given line width.
	StrokeCircle(cx, cy, r, width float64, c RGBA)
	// FillGlow draws a feathered circle whose alpha falls to zero at r.
	FillGlow(cx, cy, r float64, c RGBA)
	// StrokeLine draws an anti-aliased line segment.
	StrokeLine(x0, y0, x1, y1, width float64, c RGBA)
	// WritePixels replaces every pixel from a premultiplied RGBA buffer of
	// length 4*width*height.
	WritePixels(pix []byte)
	// Usable reports whether the surface can be drawn to at all. An engine
	// mounted on an unusable surface stays inert.
	Usable() bool
}

// physicalSize converts a logical size to whole physical pixels.
func physicalSize(width, height int, scale float64) (int, int, float64) {
	if scale <= 0 {
		scale = 1
	}
	w := int(float64(max(width, 0))*scale + 0.5)
	h := int(float64(max(height, 0))*scale + 0.5)
	return w, h, scale
}
