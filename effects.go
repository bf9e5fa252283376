package glitch

import (
	"math"
	"math/rand/v2"
)

// Effect is one background effect family: how to seed the store, how to step
// it and how to draw it.
type Effect interface {
	Family() Family
	// Seed rebuilds the store (and any size-dependent state) for the
	// current bounds in st.
	Seed(st *State)
	// Update advances st by one nominal frame.
	Update(st *State)
	// Draw renders st. Links, when enabled, are already computed.
	Draw(r *Renderer, st *State)
}

// LinkingEffect is implemented by effects that draw neighbour links.
type LinkingEffect interface {
	LinkDistance() float64
}

// NewEffect builds the effect for a family from normalised options.
// Unknown families fall back to particles.
func NewEffect(f Family, o Options) Effect {
	switch f {
	case FamilySnow:
		return newSnow(o)
	case FamilyFireflies:
		return newFireflies(o)
	case FamilyBubbles:
		return newBubbles(o)
	case FamilyStarfield:
		return newStarfield(o)
	case FamilyPlasma:
		return newPlasma(o)
	case FamilyFog:
		return newFog(o)
	default:
		return newParticles(o)
	}
}

// entityEffect drives an entity store through a list of strategies.
type entityEffect struct {
	family     Family
	seed       SeedConfig
	strategies []Strategy
	linkDist   float64
	falloff    Falloff
	draw       func(r *Renderer, e *Entity, c RGBA)
}

func (fx *entityEffect) Family() Family { return fx.family }

func (fx *entityEffect) Seed(st *State) {
	st.Store.Seed(st.Options.Count, st.Bounds(), fx.seed, st.Rand)
}

func (fx *entityEffect) Update(st *State) {
	stepAll(st.Store.Entities(), fx.strategies, NominalDT, st.Context())
}

func (fx *entityEffect) Draw(r *Renderer, st *State) {
	r.Clear()
	entities := st.Store.Entities()
	for _, l := range st.Links {
		r.DrawLink(&entities[l.I], &entities[l.J], l, st.Color, fx.falloff)
	}
	for i := range entities {
		fx.draw(r, &entities[i], st.Color)
	}
}

func drawDisc(r *Renderer, e *Entity, c RGBA) {
	r.DrawEntity(e, c)
}

// linkedEffect is an entityEffect that also draws neighbour links.
type linkedEffect struct {
	*entityEffect
}

func (fx linkedEffect) LinkDistance() float64 {
	return fx.linkDist
}

func newParticles(o Options) Effect {
	fx := &entityEffect{
		family: FamilyParticles,
		seed: SeedConfig{
			MinSize:  o.MinSize,
			MaxSize:  o.MaxSize,
			Velocity: Range{-0.5, 0.5},
			Speed:    o.Speed,
			Opacity:  Range{0.5, 1},
		},
		linkDist: o.ConnectionDistance,
		falloff:  Falloff{MaxDistance: o.ConnectionDistance, LineOpacity: o.LineOpacity, LineWidth: 1},
		draw:     drawDisc,
	}
	if o.Interactive() {
		fx.strategies = append(fx.strategies, ForceField{
			Radius:   o.MouseRadius,
			Strength: 0.6,
			Mode:     o.MouseMode,
			MaxSpeed: o.MaxSpeed,
		})
	}
	fx.strategies = append(fx.strategies, Kinematic{Edge: EdgeBounce})
	return linkedEffect{fx}
}

// directional returns an Init hook that points velocity along dir with a
// random speed in [0.5, 1.5]×speed and a small cross-axis drift.
func directional(dir Direction, speed, drift float64) func(e *Entity, rng *rand.Rand) {
	return func(e *Entity, rng *rand.Rand) {
		along := (0.5 + rng.Float64()) * speed
		cross := (rng.Float64() - 0.5) * drift * speed
		switch dir {
		case DirectionUp:
			e.VX, e.VY = cross, -along
		case DirectionLeft:
			e.VX, e.VY = -along, cross
		case DirectionRight:
			e.VX, e.VY = along, cross
		default:
			e.VX, e.VY = cross, along
		}
	}
}

func newSnow(o Options) Effect {
	return &entityEffect{
		family: FamilySnow,
		seed: SeedConfig{
			MinSize: o.MinSize,
			MaxSize: o.MaxSize,
			Speed:   o.Speed,
			Opacity: Range{0.4, 1},
			Init:    directional(o.Direction, o.Speed, 0.5),
		},
		strategies: []Strategy{
			Kinematic{Edge: EdgeRespawn, Direction: o.Direction, Wobble: 0.4, WobbleSpeed: 0.02},
		},
		draw: drawDisc,
	}
}

func newFireflies(o Options) Effect {
	return &entityEffect{
		family: FamilyFireflies,
		seed: SeedConfig{
			MinSize:  o.MinSize,
			MaxSize:  o.MaxSize,
			Velocity: Range{-0.5, 0.5},
			Speed:    o.Speed,
			Opacity:  Range{0.1, 1},
		},
		strategies: []Strategy{
			Kinematic{Edge: EdgeWrap, Wander: 0.1 * o.Speed, MaxWander: o.Speed},
			NewPulse(0.1, 1, 1.5),
		},
		draw: func(r *Renderer, e *Entity, c RGBA) {
			r.DrawGlow(e, c, e.Radius*4)
		},
	}
}

func newBubbles(o Options) Effect {
	return &entityEffect{
		family: FamilyBubbles,
		seed: SeedConfig{
			MinSize: o.MinSize,
			MaxSize: o.MaxSize,
			Speed:   o.Speed,
			Opacity: Range{0.3, 0.8},
			Init:    directional(o.Direction, o.Speed, 0.3),
		},
		strategies: []Strategy{
			Kinematic{Edge: EdgeRespawn, Direction: o.Direction, Wobble: 0.6, WobbleSpeed: 0.03},
		},
		draw: func(r *Renderer, e *Entity, c RGBA) {
			r.DrawRing(e, c, 1)
		},
	}
}

// starfield projects entities through a Projector.
type starfield struct {
	proj Projector
	seed SeedConfig
	tmp  Entity
}

func newStarfield(o Options) Effect {
	sf := &starfield{proj: Projector{MaxDepth: o.Depth, Speed: o.Speed}}
	md := sf.proj.maxDepth()
	sf.seed = SeedConfig{
		MinSize: o.MinSize,
		MaxSize: o.MaxSize,
		Opacity: Range{0.6, 1},
		Init: func(e *Entity, rng *rand.Rand) {
			e.X = rng.Float64()*2 - 1
			e.Y = rng.Float64()*2 - 1
			// (0, md]: never seed on the viewer plane.
			e.Depth = md * (1 - rng.Float64())
			e.Speed = (0.5 + rng.Float64()) * md / 1000
		},
	}
	return sf
}

func (sf *starfield) Family() Family { return FamilyStarfield }

func (sf *starfield) Seed(st *State) {
	st.Store.Seed(st.Options.Count, Rect{X: -1, Y: -1, Width: 2, Height: 2}, sf.seed, st.Rand)
}

func (sf *starfield) Update(st *State) {
	stepAll(st.Store.Entities(), []Strategy{sf.proj}, NominalDT, st.Context())
}

func (sf *starfield) Draw(r *Renderer, st *State) {
	r.Clear()
	entities := st.Store.Entities()
	for i := range entities {
		x, y, radius, opacity, ok := sf.proj.Project(&entities[i], st.Width, st.Height)
		if !ok || x < -radius || x > st.Width+radius || y < -radius || y > st.Height+radius {
			continue
		}
		sf.tmp = Entity{X: x, Y: y, Radius: radius, Opacity: opacity}
		r.DrawEntity(&sf.tmp, st.Color)
	}
}

// fieldEffect renders a per-pixel Sampler and keeps no entities.
type fieldEffect struct {
	family     Family
	resolution int
	sampler    func(st *State) Sampler
	current    Sampler
}

func (fx *fieldEffect) Family() Family { return fx.family }

func (fx *fieldEffect) Seed(st *State) {
	st.Store.Seed(0, st.Bounds(), SeedConfig{}, st.Rand)
	fx.current = fx.sampler(st)
}

func (fx *fieldEffect) Update(*State) {}

func (fx *fieldEffect) Draw(r *Renderer, st *State) {
	r.DrawField(fx.current, st.Time(), int(math.Ceil(float64(fx.resolution)*r.Surface().Scale())))
}

func resolveColors(exprs []string) []RGBA {
	var res Resolver
	out := make([]RGBA, len(exprs))
	for i, c := range exprs {
		out[i] = res.Resolve(c)
	}
	return out
}

func newPlasma(o Options) Effect {
	ramp := NewRamp(resolveColors(o.Colors))
	return &fieldEffect{
		family:     FamilyPlasma,
		resolution: o.Resolution,
		sampler: func(st *State) Sampler {
			return Plasma{
				Frequency: 0.02,
				Speed:     o.Speed,
				CenterX:   st.Width / 2,
				CenterY:   st.Height / 2,
				Ramp:      ramp,
			}
		},
	}
}

func newFog(o Options) Effect {
	ramp := NewRamp(resolveColors(o.Colors))
	return &fieldEffect{
		family:     FamilyFog,
		resolution: o.Resolution,
		sampler: func(st *State) Sampler {
			n := NewNoiseField(o.Seed, ramp)
			n.Speed = 0.2 * o.Speed
			return n
		},
	}
}
