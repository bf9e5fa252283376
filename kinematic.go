package glitch

import "math"

// EdgeMode selects what Kinematic does when an entity leaves the surface.
type EdgeMode uint8

const (
	EdgeWrap    EdgeMode = iota // re-enter from the opposite edge
	EdgeRespawn                 // restart at the originating edge with a new cross-axis coordinate
	EdgeBounce                  // reflect velocity at the surface edge
)

// Kinematic integrates velocity and keeps entities within
// [-r, width+r] × [-r, height+r]. Each axis gets exactly one edge check per step.
type Kinematic struct {
	// Speed multiplies velocity. Zero means 1.
	Speed float64
	// Edge selects wrap, respawn or bounce behaviour.
	Edge EdgeMode
	// Direction is the travel direction used by EdgeRespawn.
	Direction Direction
	// Wobble is the cross-axis sway amplitude in pixels per frame. Zero disables it.
	Wobble float64
	// WobbleSpeed is the phase advance in radians per frame.
	WobbleSpeed float64
	// Wander adds a random velocity jitter of up to ±Wander/2 per frame.
	Wander float64
	// MaxWander caps the speed reached through wander jitter. Zero means no cap.
	MaxWander float64
}

// Step implements Strategy.
func (k Kinematic) Step(e *Entity, dt float64, ctx *StepContext) {
	f := frames(dt)
	speed := k.Speed
	if speed == 0 {
		speed = 1
	}

	if k.Wander > 0 {
		e.VX += (ctx.Rand.Float64() - 0.5) * k.Wander * f
		e.VY += (ctx.Rand.Float64() - 0.5) * k.Wander * f
		if k.MaxWander > 0 {
			e.VX, e.VY = clampSpeed(e.VX, e.VY, k.MaxWander)
		}
	}

	e.X += e.VX * speed * e.Speed * f
	e.Y += e.VY * speed * e.Speed * f

	if k.Wobble != 0 {
		e.Phase += k.WobbleSpeed * f
		sway := math.Sin(e.Phase) * k.Wobble * f
		if k.Direction == DirectionLeft || k.Direction == DirectionRight {
			e.Y += sway
		} else {
			e.X += sway
		}
	}

	w, h, r := ctx.Width, ctx.Height, e.Radius
	switch k.Edge {
	case EdgeWrap:
		e.X = wrapAxis(e.X, r, w)
		e.Y = wrapAxis(e.Y, r, h)
	case EdgeBounce:
		e.X, e.VX = bounceAxis(e.X, e.VX, w)
		e.Y, e.VY = bounceAxis(e.Y, e.VY, h)
	case EdgeRespawn:
		k.respawn(e, ctx)
	}
}

// respawn handles EdgeRespawn: the travel axis restarts at the originating
// edge, the cross axis wraps.
func (k Kinematic) respawn(e *Entity, ctx *StepContext) {
	w, h, r := ctx.Width, ctx.Height, e.Radius
	switch k.Direction {
	case DirectionUp:
		if e.Y < -r {
			e.Y = h + r
			e.X = ctx.Rand.Float64() * w
			e.Reset = true
		} else if e.Y > h+r {
			e.Y = h + r
		}
		e.X = wrapAxis(e.X, r, w)
	case DirectionLeft:
		if e.X < -r {
			e.X = w + r
			e.Y = ctx.Rand.Float64() * h
			e.Reset = true
		} else if e.X > w+r {
			e.X = w + r
		}
		e.Y = wrapAxis(e.Y, r, h)
	case DirectionRight:
		if e.X > w+r {
			e.X = -r
			e.Y = ctx.Rand.Float64() * h
			e.Reset = true
		} else if e.X < -r {
			e.X = -r
		}
		e.Y = wrapAxis(e.Y, r, h)
	default:
		if e.Y > h+r {
			e.Y = -r
			e.X = ctx.Rand.Float64() * w
			e.Reset = true
		} else if e.Y < -r {
			e.Y = -r
		}
		e.X = wrapAxis(e.X, r, w)
	}
}

// wrapAxis moves a coordinate that left [-r, size+r] to the opposite edge.
func wrapAxis(v, r, size float64) float64 {
	if v > size+r {
		return -r
	}
	if v < -r {
		return size + r
	}
	return v
}

// bounceAxis reflects velocity when the coordinate leaves [0, size].
func bounceAxis(v, vel, size float64) (float64, float64) {
	if v < 0 {
		return 0, math.Abs(vel)
	}
	if v > size {
		return size, -math.Abs(vel)
	}
	return v, vel
}

// clampSpeed scales (vx, vy) down so its magnitude does not exceed limit.
func clampSpeed(vx, vy, limit float64) (float64, float64) {
	if limit <= 0 {
		return vx, vy
	}
	m := math.Hypot(vx, vy)
	if m <= limit || m == 0 {
		return vx, vy
	}
	s := limit / m
	return vx * s, vy * s
}
