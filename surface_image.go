package glitch

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// kappa is the cubic Bézier control distance for a quarter circle.
const kappa = 0.5522847498

// ImageSurface is a software Surface backed by an *image.RGBA. Shapes are
// rasterised with golang.org/x/image/vector, one bounding box at a time.
type ImageSurface struct {
	img    *image.RGBA
	scale  float64
	raster *vector.Rasterizer
}

// NewImageSurface creates a software surface for the given logical size.
func NewImageSurface(width, height int, scale float64) *ImageSurface {
	s := &ImageSurface{raster: vector.NewRasterizer(0, 0)}
	s.Resize(width, height, scale)
	return s
}

// Image returns the backing image. It is replaced on Resize.
func (s *ImageSurface) Image() *image.RGBA {
	return s.img
}

// Size implements Surface.
func (s *ImageSurface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Scale implements Surface.
func (s *ImageSurface) Scale() float64 {
	return s.scale
}

// Resize implements Surface.
func (s *ImageSurface) Resize(width, height int, scale float64) {
	w, h, sc := physicalSize(width, height, scale)
	s.img = image.NewRGBA(image.Rect(0, 0, w, h))
	s.scale = sc
}

// Usable implements Surface.
func (s *ImageSurface) Usable() bool {
	return s != nil && s.img != nil
}

// Clear implements Surface.
func (s *ImageSurface) Clear() {
	clear(s.img.Pix)
}

// WritePixels implements Surface. Buffers of the wrong length are ignored.
func (s *ImageSurface) WritePixels(pix []byte) {
	if len(pix) != len(s.img.Pix) {
		return
	}
	copy(s.img.Pix, pix)
}

// FillCircle implements Surface.
func (s *ImageSurface) FillCircle(cx, cy, r float64, c RGBA) {
	if r <= 0 || c.A <= 0 {
		return
	}
	s.fill(circleBounds(cx, cy, r), c, func(z *vector.Rasterizer, ox, oy float64) {
		circlePath(z, cx-ox, cy-oy, r, false)
	})
}

// StrokeCircle implements Surface.
func (s *ImageSurface) StrokeCircle(cx, cy, r, width float64, c RGBA) {
	if r <= 0 || width <= 0 || c.A <= 0 {
		return
	}
	outer := r + width/2
	inner := r - width/2
	s.fill(circleBounds(cx, cy, outer), c, func(z *vector.Rasterizer, ox, oy float64) {
		circlePath(z, cx-ox, cy-oy, outer, false)
		if inner > 0 {
			circlePath(z, cx-ox, cy-oy, inner, true)
		}
	})
}

// StrokeLine implements Surface.
func (s *ImageSurface) StrokeLine(x0, y0, x1, y1, width float64, c RGBA) {
	if width <= 0 || c.A <= 0 {
		return
	}
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	// Half-width normal.
	nx, ny := -dy/length*width/2, dx/length*width/2
	bounds := image.Rect(
		int(math.Floor(math.Min(x0, x1)-width)), int(math.Floor(math.Min(y0, y1)-width)),
		int(math.Ceil(math.Max(x0, x1)+width)), int(math.Ceil(math.Max(y0, y1)+width)),
	)
	s.fill(bounds, c, func(z *vector.Rasterizer, ox, oy float64) {
		z.MoveTo(float32(x0+nx-ox), float32(y0+ny-oy))
		z.LineTo(float32(x1+nx-ox), float32(y1+ny-oy))
		z.LineTo(float32(x1-nx-ox), float32(y1-ny-oy))
		z.LineTo(float32(x0-nx-ox), float32(y0-ny-oy))
		z.ClosePath()
	})
}

// FillGlow implements Surface with a smoothstep falloff composited over the
// existing pixels.
func (s *ImageSurface) FillGlow(cx, cy, r float64, c RGBA) {
	if r <= 0 || c.A <= 0 {
		return
	}
	b := circleBounds(cx, cy, r).Intersect(s.img.Bounds())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			dist := math.Sqrt(dx*dx+dy*dy) / r
			if dist >= 1 {
				continue
			}
			t := 1 - dist
			blendOver(s.img.Pix[s.img.PixOffset(x, y):], c, t*t*(3-2*t))
		}
	}
}

// fill rasterises the path produced by build, clipped to bounds, and
// composites c over the image. build receives the offset of the rasteriser
// origin in surface coordinates.
func (s *ImageSurface) fill(bounds image.Rectangle, c RGBA, build func(z *vector.Rasterizer, ox, oy float64)) {
	r := bounds.Intersect(s.img.Bounds())
	if r.Empty() {
		return
	}
	z := s.raster
	z.Reset(r.Dx(), r.Dy())
	z.DrawOp = draw.Over
	build(z, float64(r.Min.X), float64(r.Min.Y))
	z.Draw(s.img, r, image.NewUniform(c.NRGBA()), image.Point{})
}

func circleBounds(cx, cy, r float64) image.Rectangle {
	return image.Rect(
		int(math.Floor(cx-r)), int(math.Floor(cy-r)),
		int(math.Ceil(cx+r))+1, int(math.Ceil(cy+r))+1,
	)
}

// circlePath appends a closed circle of four cubic arcs. reverse flips the
// winding so the circle subtracts from an enclosing one.
func circlePath(z *vector.Rasterizer, cx, cy, r float64, reverse bool) {
	k := r * kappa
	f := func(v float64) float32 { return float32(v) }
	sy := 1.0
	if reverse {
		sy = -1
	}
	z.MoveTo(f(cx+r), f(cy))
	z.CubeTo(f(cx+r), f(cy+k*sy), f(cx+k), f(cy+r*sy), f(cx), f(cy+r*sy))
	z.CubeTo(f(cx-k), f(cy+r*sy), f(cx-r), f(cy+k*sy), f(cx-r), f(cy))
	z.CubeTo(f(cx-r), f(cy-k*sy), f(cx-k), f(cy-r*sy), f(cx), f(cy-r*sy))
	z.CubeTo(f(cx+k), f(cy-r*sy), f(cx+r), f(cy-k*sy), f(cx+r), f(cy))
	z.ClosePath()
}

// blendOver composites c at the given coverage over one premultiplied pixel.
func blendOver(px []byte, c RGBA, coverage float64) {
	a := clamp01(c.A * coverage)
	if a <= 0 {
		return
	}
	inv := 1 - a
	px[0] = uint8(float64(c.R)*a + float64(px[0])*inv + 0.5)
	px[1] = uint8(float64(c.G)*a + float64(px[1])*inv + 0.5)
	px[2] = uint8(float64(c.B)*a + float64(px[2])*inv + 0.5)
	px[3] = uint8(255*a + float64(px[3])*inv + 0.5)
}
