package glitch

import (
	"math"
	"math/rand/v2"
	"time"
)

// NominalDT is the fixed step every strategy receives, regardless of how much
// wall-clock time actually passed between frames.
const NominalDT = 1.0 / 60.0

// nominalFrame is NominalDT as a time.Duration.
const nominalFrame = time.Second / 60

// MaxEntities is the hard ceiling applied to Options.Count.
const MaxEntities = 2000

// Vec2 is a 2D vector used for positions, velocities and pointer coordinates.
type Vec2 struct {
	X, Y float64
}

// PointerAway is the pointer position used while no pointer is over the
// surface. It is far enough outside any bounds that every force falls to zero.
var PointerAway = Vec2{X: -1e9, Y: -1e9}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Range is a general-purpose min/max range.
type Range struct {
	Min, Max float64
}

// Rand returns a value in [Min, Max] drawn from rng.
// A swapped range (Min > Max) is tolerated.
func (r Range) Rand(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Clamp limits v to the range. A swapped range is normalised first.
func (r Range) Clamp(v float64) float64 {
	lo, hi := r.Min, r.Max
	if lo > hi {
		lo, hi = hi, lo
	}
	return math.Max(lo, math.Min(hi, v))
}

// Family names an effect family. Each family picks its strategies and
// renderer calls; see NewEffect.
type Family string

const (
	FamilyParticles Family = "particles" // linked particle network with pointer forces
	FamilySnow      Family = "snow"      // falling flakes with sideways wobble
	FamilyFireflies Family = "fireflies" // wandering, breathing glow points
	FamilyBubbles   Family = "bubbles"   // rising rings
	FamilyStarfield Family = "starfield" // pseudo-3D projected stars
	FamilyPlasma    Family = "plasma"    // per-pixel sine plasma
	FamilyFog       Family = "fog"       // per-pixel Perlin noise
)

// Families lists every effect family in display order.
var Families = []Family{
	FamilyParticles, FamilySnow, FamilyFireflies, FamilyBubbles,
	FamilyStarfield, FamilyPlasma, FamilyFog,
}

// Direction is the travel direction of top-down style effects.
type Direction string

const (
	DirectionDown  Direction = "down"
	DirectionUp    Direction = "up"
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// Position selects which size the surface tracks.
type Position string

const (
	PositionFixed    Position = "fixed"    // follows the viewport
	PositionAbsolute Position = "absolute" // follows the containing element
)

// MouseMode selects attraction or repulsion for the force field.
type MouseMode string

const (
	MouseRepel   MouseMode = "repel"
	MouseAttract MouseMode = "attract"
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
