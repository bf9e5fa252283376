package glitch

import (
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBA is a resolved color: R, G and B in 0–255, A in [0, 1]. Not premultiplied.
type RGBA struct {
	R, G, B uint8
	A       float64
}

// FallbackColor is returned for any color expression that cannot be parsed.
var FallbackColor = RGBA{R: 255, G: 255, B: 255, A: 1}

// WithAlpha returns c with its alpha multiplied by a, clamped to [0, 1].
func (c RGBA) WithAlpha(a float64) RGBA {
	c.A = clamp01(c.A * a)
	return c
}

// NRGBA converts c to a straight-alpha image/color value.
func (c RGBA) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(clamp01(c.A)*255 + 0.5)}
}

// Colorful converts the opaque part of c to a go-colorful color.
func (c RGBA) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// ResolveColor parses "#rrggbb", "#rgb", "rgb(r,g,b)" or "rgba(r,g,b[,a])".
// Out-of-range channels are clamped. Anything else yields FallbackColor.
func ResolveColor(expr string) RGBA {
	c, ok := parseColor(expr)
	if !ok {
		return FallbackColor
	}
	return c
}

// ValidColor reports whether expr parses without falling back.
func ValidColor(expr string) bool {
	_, ok := parseColor(expr)
	return ok
}

func parseColor(expr string) (RGBA, bool) {
	s := strings.ToLower(strings.TrimSpace(expr))
	switch {
	case strings.HasPrefix(s, "#") && (len(s) == 4 || len(s) == 7):
		// go-colorful accepts both the 3 and 6 digit forms.
		c, err := colorful.Hex(s)
		if err != nil {
			return RGBA{}, false
		}
		r, g, b := c.RGB255()
		return RGBA{R: r, G: g, B: b, A: 1}, true
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		return parseFunctional(s[len("rgba(") : len(s)-1])
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseFunctional(s[len("rgb(") : len(s)-1])
	}
	return RGBA{}, false
}

// parseFunctional parses the argument list of rgb()/rgba(): three channels and
// an optional alpha.
func parseFunctional(args string) (RGBA, bool) {
	parts := strings.Split(args, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return RGBA{}, false
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil || !finite(v) {
			return RGBA{}, false
		}
		ch[i] = uint8(Range{0, 255}.Clamp(v) + 0.5)
	}
	a := 1.0
	if len(parts) == 4 {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || !finite(v) {
			return RGBA{}, false
		}
		a = clamp01(v)
	}
	return RGBA{R: ch[0], G: ch[1], B: ch[2], A: a}, true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Resolver memoises ResolveColor per distinct input string. It belongs to a
// single engine and is not safe for concurrent use.
type Resolver struct {
	cache map[string]RGBA
}

// Resolve returns the cached resolution of expr, computing it on first use.
func (r *Resolver) Resolve(expr string) RGBA {
	if c, ok := r.cache[expr]; ok {
		return c
	}
	if r.cache == nil {
		r.cache = make(map[string]RGBA)
	}
	c := ResolveColor(expr)
	r.cache[expr] = c
	return c
}

// Len returns the number of cached expressions.
func (r *Resolver) Len() int {
	return len(r.cache)
}
