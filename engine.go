package glitch

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"
)

// MountConfig describes where and how an effect is mounted.
type MountConfig struct {
	// Effect selects the family. Empty means particles.
	Effect  Family
	Options Options
	// Surface is the drawing target. A nil or unusable surface mounts an
	// inert engine.
	Surface Surface
	// Frames delivers frame callbacks. Required.
	Frames FrameSource
	// Viewport receives EventViewportResize for PositionFixed effects.
	Viewport *EventTarget
	// Element receives pointer events and, for PositionAbsolute effects,
	// EventContainerResize.
	Element *EventTarget
	// Width and Height are the initial logical size; Scale the device pixel
	// ratio (zero means 1).
	Width, Height int
	Scale         float64
	Logger        *zerolog.Logger
	// Debug logs per-frame timing at debug level.
	Debug bool
}

// Engine runs one mounted effect. All methods must be called from the
// goroutine that drains the engine's FrameSource.
type Engine struct {
	family   Family
	effect   Effect
	state    State
	renderer *Renderer
	sched    *Scheduler
	resize   *ResizeManager
	handles  []ListenerHandle
	adjusted []Adjustment
	log      zerolog.Logger
	debug    bool
	disabled bool
	inFrame  bool
	lastNow  time.Duration
}

// Handle is the acquire/release token returned by Mount.
type Handle struct {
	engine   *Engine
	released bool
}

// Mount creates an engine for cfg, seeds it for the initial size and starts
// its frame loop. It never fails: configuration problems are clamped and
// logged, and an unusable surface yields a disabled engine that registers no
// listeners and requests no frames.
func Mount(cfg MountConfig) *Handle {
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}
	family := cfg.Effect
	if family == "" {
		family = FamilyParticles
	}
	e := &Engine{family: family, log: log.With().Str("effect", string(family)).Logger(), debug: cfg.Debug}
	h := &Handle{engine: e}

	if _, err := ParseFamily(string(family)); err != nil {
		e.log.Warn().Err(err).Msg("falling back to particles")
		family = FamilyParticles
		e.family = family
	}
	if cfg.Surface == nil || !cfg.Surface.Usable() || cfg.Frames == nil {
		e.log.Warn().Msg("no usable drawing surface, effect disabled")
		e.disabled = true
		return h
	}

	opts, adj := Normalize(family, cfg.Options)
	for _, a := range adj {
		e.log.Warn().Str("field", a.Field).Str("rule", a.Rule).Str("from", a.From).Str("to", a.To).Msg("option adjusted")
	}
	e.adjusted = adj

	var colors Resolver
	e.state = State{
		Options: opts,
		Color:   colors.Resolve(opts.Color),
		Pointer: PointerAway,
		Rand:    newRand(opts.Seed),
	}
	e.effect = NewEffect(family, opts)
	e.renderer = NewRenderer(cfg.Surface)
	e.sched = NewScheduler(cfg.Frames, e.frame)
	e.resize = NewResizeManager(e.sched, e.reseed, func() bool { return e.inFrame })

	e.resize.Apply(cfg.Width, cfg.Height, cfg.Scale)
	e.listen(cfg)
	e.sched.Start(e.state.Generation())
	e.log.Debug().Int("count", e.state.Store.Len()).Int("width", cfg.Width).Int("height", cfg.Height).Msg("mounted")
	return h
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

// listen registers pointer and resize listeners. Pointer listeners are only
// added for interactive options.
func (e *Engine) listen(cfg MountConfig) {
	if cfg.Element != nil && e.state.Options.Interactive() {
		e.handles = append(e.handles,
			cfg.Element.On(EventPointerMove, func(ev Event) {
				e.state.Pointer = Vec2{X: ev.X, Y: ev.Y}
			}),
			cfg.Element.On(EventPointerLeave, func(Event) {
				e.state.Pointer = PointerAway
			}),
		)
	}
	target, kind := cfg.Viewport, EventViewportResize
	if e.state.Options.Position == PositionAbsolute {
		target, kind = cfg.Element, EventContainerResize
	}
	if target != nil {
		e.handles = append(e.handles, target.On(kind, e.resize.Observe))
	}
}

// reseed resizes the surface and rebuilds the store. Only called by the
// ResizeManager inside Scheduler.Reseed, never during a frame.
func (e *Engine) reseed(width, height int, scale float64) uint64 {
	if e.disabled {
		return e.state.Generation()
	}
	e.renderer.Surface().Resize(width, height, scale)
	e.state.Width, e.state.Height = float64(max(width, 0)), float64(max(height, 0))
	e.state.Frame = 0
	e.state.Links = e.state.Links[:0]
	e.effect.Seed(&e.state)
	return e.state.Generation()
}

// frame runs one frame: generation check, zero-area check, update, link,
// draw. A panic disables the engine.
func (e *Engine) frame(gen uint64, now time.Duration) {
	if e.disabled || gen != e.state.Generation() {
		return
	}
	if e.renderer.Empty() {
		return
	}
	e.inFrame = true
	defer func() {
		e.inFrame = false
		if r := recover(); r != nil {
			e.log.Error().Str("panic", fmt.Sprint(r)).Uint64("frame", e.state.Frame).Msg("frame failed, effect disabled")
			e.disable()
			return
		}
		e.resize.Flush()
	}()

	var stats frameStats
	mark := time.Now()
	e.effect.Update(&e.state)
	stats.update = time.Since(mark)

	mark = time.Now()
	if le, ok := e.effect.(LinkingEffect); ok && le.LinkDistance() > 0 {
		e.state.Links = Links(e.state.Store.Entities(), le.LinkDistance(), e.state.Links[:0])
	}
	stats.link = time.Since(mark)

	mark = time.Now()
	e.effect.Draw(e.renderer, &e.state)
	stats.draw = time.Since(mark)

	e.state.Frame++
	e.state.Ticks++
	stats.interval = now - e.lastNow
	e.lastNow = now
	stats.entities = e.state.Store.Len()
	stats.links = len(e.state.Links)
	e.debugLog(stats)
}

func (e *Engine) disable() {
	e.disabled = true
	if e.sched != nil {
		e.sched.Stop()
	}
}

// Family returns the mounted effect family.
func (e *Engine) Family() Family { return e.family }

// State returns the engine state. Callers must treat it as read-only.
func (e *Engine) State() *State { return &e.state }

// Scheduler returns the engine's frame scheduler, or nil when disabled at
// mount.
func (e *Engine) Scheduler() *Scheduler { return e.sched }

// Resizer returns the engine's resize manager, or nil when disabled at mount.
func (e *Engine) Resizer() *ResizeManager { return e.resize }

// Renderer returns the engine's renderer, or nil when disabled at mount.
func (e *Engine) Renderer() *Renderer { return e.renderer }

// Disabled reports whether the engine is inert.
func (e *Engine) Disabled() bool { return e.disabled }

// Adjustments returns the option changes Normalize made at mount.
func (e *Engine) Adjustments() []Adjustment { return e.adjusted }

// Engine returns the mounted engine.
func (h *Handle) Engine() *Engine { return h.engine }

// Released reports whether Release has been called.
func (h *Handle) Released() bool { return h.released }

// Release stops the frame loop, removes every listener the engine registered
// and drops the entity store. Calling it again does nothing.
func (h *Handle) Release() {
	if h.released {
		return
	}
	h.released = true
	e := h.engine
	e.disable()
	for _, l := range e.handles {
		l.Remove()
	}
	e.handles = nil
	e.state.Store.Drop()
	e.state.Links = nil
	e.log.Debug().Msg("released")
}
