package glitch

import "math"

// ForceField pushes entities away from (or pulls them toward) the pointer.
// Entities farther than Radius are untouched, so PointerAway turns the field
// off without a special case.
type ForceField struct {
	// Radius is the influence radius in logical pixels.
	Radius float64
	// Strength scales the per-frame velocity delta at zero distance.
	Strength float64
	// Mode selects repulsion (default) or attraction.
	Mode MouseMode
	// MaxSpeed caps the velocity magnitude after the increment.
	MaxSpeed float64
}

// Step implements Strategy.
func (ff ForceField) Step(e *Entity, dt float64, ctx *StepContext) {
	if ff.Radius <= 0 {
		return
	}
	dx := ctx.Pointer.X - e.X
	dy := ctx.Pointer.Y - e.Y
	dist := math.Hypot(dx, dy)
	if dist >= ff.Radius || dist == 0 {
		return
	}

	strength := ff.Strength
	if strength == 0 {
		strength = 1
	}
	force := (ff.Radius - dist) / ff.Radius * strength * frames(dt)
	ux, uy := dx/dist, dy/dist
	if ff.Mode != MouseAttract {
		ux, uy = -ux, -uy
	}
	e.VX += ux * force
	e.VY += uy * force
	e.VX, e.VY = clampSpeed(e.VX, e.VY, ff.MaxSpeed)
}
