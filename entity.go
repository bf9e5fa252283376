package glitch

import (
	"math"
	"math/rand/v2"
)

// Entity holds the per-unit simulation state of one particle, flake, firefly,
// bubble or star.
type Entity struct {
	X, Y    float64 // surface pixels; normalised [-1, 1] for projected effects
	VX, VY  float64 // pixels per nominal frame
	Radius  float64 // stays inside the seeded [MinSize, MaxSize] band
	Opacity float64 // [0, 1]
	Depth   float64 // projected effects only
	Speed   float64 // per-entity speed factor (depth speed, fall speed)
	Phase   float64 // wobble / pulse phase in radians
	Reset   bool    // set by a strategy when the entity was respawned this frame
}

// SeedConfig controls how Store.Seed initialises entities.
type SeedConfig struct {
	// MinSize and MaxSize bound the radius. A swapped band is tolerated.
	MinSize, MaxSize float64
	// Velocity is the range each velocity component is drawn from before
	// scaling by Speed.
	Velocity Range
	// Speed multiplies the drawn velocity.
	Speed float64
	// Opacity is the initial opacity range, clamped to [0, 1].
	Opacity Range
	// Init, when set, customises each entity after the defaults are applied and
	// before the new array is published.
	Init func(e *Entity, rng *rand.Rand)
}

// Store owns the entity array of one engine. The array is only ever replaced
// as a whole, so its length is stable for the duration of a frame.
type Store struct {
	entities   []Entity
	generation uint64
}

// Seed replaces the whole entity array with count freshly initialised
// entities spread uniformly over bounds. The previous array is dropped and the
// store generation advances. Count is clamped to [0, MaxEntities].
func (s *Store) Seed(count int, bounds Rect, cfg SeedConfig, rng *rand.Rand) uint64 {
	count = max(0, min(count, MaxEntities))
	size := Range{cfg.MinSize, cfg.MaxSize}
	next := make([]Entity, count)
	for i := range next {
		e := &next[i]
		e.X = bounds.X + rng.Float64()*bounds.Width
		e.Y = bounds.Y + rng.Float64()*bounds.Height
		e.VX = cfg.Velocity.Rand(rng) * cfg.Speed
		e.VY = cfg.Velocity.Rand(rng) * cfg.Speed
		e.Radius = size.Clamp(size.Rand(rng))
		e.Opacity = clamp01(cfg.Opacity.Rand(rng))
		e.Speed = 1
		e.Phase = rng.Float64() * 2 * math.Pi
		if cfg.Init != nil {
			cfg.Init(e, rng)
			e.Radius = size.Clamp(e.Radius)
			e.Opacity = clamp01(e.Opacity)
		}
	}
	s.entities = next
	s.generation++
	return s.generation
}

// Entities returns the live entity array. The slice is owned by the store;
// callers may mutate elements but must not retain it across a reseed.
func (s *Store) Entities() []Entity {
	return s.entities
}

// Len returns the number of entities.
func (s *Store) Len() int {
	return len(s.entities)
}

// Generation returns the generation of the current array.
func (s *Store) Generation() uint64 {
	return s.generation
}

// Drop releases the entity array. The generation still advances so any
// callback bound to the old array sees itself as stale.
func (s *Store) Drop() {
	s.entities = nil
	s.generation++
}
