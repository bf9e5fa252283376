package glitch

import "math/rand/v2"

// StepContext is the per-frame input shared by all strategies.
type StepContext struct {
	// Width and Height are the logical surface size.
	Width, Height float64
	// Pointer is the pointer position in logical pixels, or PointerAway.
	Pointer Vec2
	// Time is the effect clock in seconds: frame count times NominalDT.
	Time float64
	// Frame counts frames since the current generation started.
	Frame uint64
	// Generation identifies the entity array being stepped.
	Generation uint64
	// Rand is the engine's random source.
	Rand *rand.Rand
	// Index is the index of the entity being stepped.
	Index int
}

// Strategy advances one entity by one nominal step, in place.
// Implementations must not assume dt matches wall-clock time.
type Strategy interface {
	Step(e *Entity, dt float64, ctx *StepContext)
}

// StrategyFunc adapts a plain function to Strategy.
type StrategyFunc func(e *Entity, dt float64, ctx *StepContext)

// Step calls f.
func (f StrategyFunc) Step(e *Entity, dt float64, ctx *StepContext) {
	f(e, dt, ctx)
}

// stepAll runs every strategy over every entity, in strategy order per entity.
func stepAll(entities []Entity, strategies []Strategy, dt float64, ctx *StepContext) {
	for i := range entities {
		e := &entities[i]
		e.Reset = false
		ctx.Index = i
		for _, s := range strategies {
			s.Step(e, dt, ctx)
		}
	}
}

// frames converts dt to a multiple of the nominal frame.
func frames(dt float64) float64 {
	if dt <= 0 {
		return 0
	}
	return dt / NominalDT
}
