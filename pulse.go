package glitch

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Pulse breathes entity opacity between Min and Max with eased tweens, one per
// entity. Tween state is rebuilt whenever the entity array is reseeded.
type Pulse struct {
	// Min and Max bound the opacity.
	Min, Max float64
	// Period is the mean duration of one fade, in seconds.
	Period float32
	// Ease is the easing function. Nil means ease.InOutSine.
	Ease ease.TweenFunc

	tweens []*gween.Tween
	rising []bool
	gen    uint64
}

// NewPulse creates a Pulse with the given opacity band and fade duration.
func NewPulse(minOpacity, maxOpacity float64, period float32) *Pulse {
	return &Pulse{Min: minOpacity, Max: maxOpacity, Period: period}
}

// Step implements Strategy.
func (p *Pulse) Step(e *Entity, dt float64, ctx *StepContext) {
	if ctx.Generation != p.gen {
		p.tweens = p.tweens[:0]
		p.rising = p.rising[:0]
		p.gen = ctx.Generation
	}
	for len(p.tweens) <= ctx.Index {
		p.tweens = append(p.tweens, nil)
		p.rising = append(p.rising, ctx.Rand.IntN(2) == 0)
	}

	tw := p.tweens[ctx.Index]
	if tw == nil {
		tw = p.next(e.Opacity, ctx)
		p.tweens[ctx.Index] = tw
	}
	val, done := tw.Update(float32(dt))
	e.Opacity = Range{p.Min, p.Max}.Clamp(float64(val))
	if done {
		p.rising[ctx.Index] = !p.rising[ctx.Index]
		p.tweens[ctx.Index] = p.next(e.Opacity, ctx)
	}
}

// next builds the tween for the entity's next fade.
func (p *Pulse) next(from float64, ctx *StepContext) *gween.Tween {
	to := p.Min
	if p.rising[ctx.Index] {
		to = p.Max
	}
	period := p.Period
	if period <= 0 {
		period = 1.5
	}
	duration := period * float32(0.5+ctx.Rand.Float64())
	fn := p.Ease
	if fn == nil {
		fn = ease.InOutSine
	}
	return gween.New(float32(from), float32(to), duration, fn)
}
