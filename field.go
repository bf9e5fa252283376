package glitch

import (
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/lucasb-eyer/go-colorful"
)

// Sampler computes the color of one field sample. Implementations must be
// pure functions of (x, y, t).
type Sampler interface {
	Sample(x, y, t float64) RGBA
}

// Ramp maps [0, 1] onto a piecewise-linear gradient across its stops, which
// are spread evenly.
type Ramp struct {
	stops []colorful.Color
	alpha []float64
}

// NewRamp builds a ramp from resolved colors. An empty list yields a ramp of
// FallbackColor.
func NewRamp(colors []RGBA) Ramp {
	if len(colors) == 0 {
		colors = []RGBA{FallbackColor}
	}
	r := Ramp{
		stops: make([]colorful.Color, len(colors)),
		alpha: make([]float64, len(colors)),
	}
	for i, c := range colors {
		r.stops[i] = c.Colorful()
		r.alpha[i] = c.A
	}
	return r
}

// At returns the ramp color at v, clamped to [0, 1].
func (r Ramp) At(v float64) RGBA {
	v = clamp01(v)
	n := len(r.stops)
	if n == 1 {
		return fromColorful(r.stops[0], r.alpha[0])
	}
	pos := v * float64(n-1)
	i := int(pos)
	if i >= n-1 {
		return fromColorful(r.stops[n-1], r.alpha[n-1])
	}
	t := pos - float64(i)
	c := r.stops[i].BlendRgb(r.stops[i+1], t)
	return fromColorful(c, lerp(r.alpha[i], r.alpha[i+1], t))
}

func fromColorful(c colorful.Color, a float64) RGBA {
	r, g, b := c.Clamped().RGB255()
	return RGBA{R: r, G: g, B: b, A: a}
}

// Plasma is the classic sine plasma: radial, diagonal, angular and horizontal
// sine terms, normalised to [0, 1] and mapped through a ramp.
type Plasma struct {
	// Frequency scales spatial coordinates. Zero means 0.02.
	Frequency float64
	// Speed scales time. Zero means 1.
	Speed float64
	// CenterX and CenterY anchor the radial and angular terms.
	CenterX, CenterY float64
	Ramp             Ramp
}

// Value returns the normalised plasma value at (x, y, t).
func (p Plasma) Value(x, y, t float64) float64 {
	freq := p.Frequency
	if freq == 0 {
		freq = 0.02
	}
	speed := p.Speed
	if speed == 0 {
		speed = 1
	}
	ts := t * speed
	dx := x - p.CenterX
	dy := y - p.CenterY

	v := math.Sin(x*freq + ts)
	v += math.Sin((x+y)*freq*0.5 + ts*1.3)
	v += math.Sin(math.Sqrt(dx*dx+dy*dy)*freq + ts*0.7)
	v += math.Sin(math.Atan2(dy, dx)*3 + ts*0.5)
	return (v + 4) / 8
}

// Sample implements Sampler.
func (p Plasma) Sample(x, y, t float64) RGBA {
	return p.Ramp.At(p.Value(x, y, t))
}

// NoiseField samples three-dimensional Perlin noise with time as the third
// axis. A fixed seed keeps it deterministic.
type NoiseField struct {
	noise *perlin.Perlin
	// Scale maps pixels to noise space. Zero means 0.01.
	Scale float64
	// Speed scales time. Zero means 0.2.
	Speed float64
	Ramp  Ramp
}

// NewNoiseField builds a Perlin field with the given seed.
func NewNoiseField(seed int64, ramp Ramp) *NoiseField {
	return &NoiseField{
		noise: perlin.NewPerlin(2, 2, 3, seed),
		Ramp:  ramp,
	}
}

// Value returns the normalised noise value at (x, y, t).
func (n *NoiseField) Value(x, y, t float64) float64 {
	scale := n.Scale
	if scale == 0 {
		scale = 0.01
	}
	speed := n.Speed
	if speed == 0 {
		speed = 0.2
	}
	// Noise3D stays within roughly [-1, 1].
	return clamp01((n.noise.Noise3D(x*scale, y*scale, t*speed) + 1) / 2)
}

// Sample implements Sampler.
func (n *NoiseField) Sample(x, y, t float64) RGBA {
	return n.Ramp.At(n.Value(x, y, t))
}
