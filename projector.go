package glitch

import "math/rand/v2"

// Projector moves entities toward the viewer through a depth axis and maps
// them to screen space by perspective division. Entity X and Y are normalised
// to [-1, 1]; Depth lives in (0, MaxDepth].
type Projector struct {
	// MaxDepth is the far plane. Zero means 1.
	MaxDepth float64
	// Speed multiplies each entity's own depth speed.
	Speed float64
}

func (p Projector) maxDepth() float64 {
	if p.MaxDepth <= 0 {
		return 1
	}
	return p.MaxDepth
}

// Step implements Strategy. Depth falls by the entity's speed each step and
// stops at zero; the following step respawns the entity at the far plane.
func (p Projector) Step(e *Entity, dt float64, ctx *StepContext) {
	if e.Depth <= 0 {
		p.Respawn(e, ctx.Rand)
		return
	}
	speed := p.Speed
	if speed == 0 {
		speed = 1
	}
	e.Depth -= e.Speed * speed * frames(dt)
	if e.Depth < 0 {
		e.Depth = 0
	}
}

// Respawn places e at the far plane with a new random normalised position.
func (p Projector) Respawn(e *Entity, rng *rand.Rand) {
	e.X = rng.Float64()*2 - 1
	e.Y = rng.Float64()*2 - 1
	e.Depth = p.maxDepth()
	e.Reset = true
}

// Project returns the screen position, apparent radius and opacity of e on a
// surface of the given logical size. ok is false when the entity is at the
// viewer plane or the surface has no area.
func (p Projector) Project(e *Entity, width, height float64) (x, y, radius, opacity float64, ok bool) {
	if e.Depth <= 0 || width <= 0 || height <= 0 {
		return 0, 0, 0, 0, false
	}
	md := p.maxDepth()
	cx, cy := width/2, height/2
	x = cx + (e.X/e.Depth)*cx*md
	y = cy + (e.Y/e.Depth)*cy*md
	near := clamp01(1 - e.Depth/md)
	return x, y, e.Radius * near, clamp01(e.Opacity * near), true
}
