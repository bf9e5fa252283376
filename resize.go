package glitch

// ResizeManager turns resize events into stop → resize → reseed → start
// cycles on a Scheduler. Resizes observed while a frame is executing are
// held and applied by Flush once the frame has finished; only the latest
// held size is kept.
type ResizeManager struct {
	sched *Scheduler
	apply func(width, height int, scale float64) uint64
	busy  func() bool

	width, height int
	scale         float64
	applied       bool

	deferred   bool
	defW, defH int
	defScale   float64
	resizes    uint64
}

// NewResizeManager creates a manager that reseeds through sched. apply must
// resize the surface, reseed the store and return the new generation. busy
// reports whether a frame is executing; nil means never.
func NewResizeManager(sched *Scheduler, apply func(width, height int, scale float64) uint64, busy func() bool) *ResizeManager {
	return &ResizeManager{sched: sched, apply: apply, busy: busy}
}

// Size returns the last applied logical size and scale.
func (m *ResizeManager) Size() (width, height int, scale float64) {
	return m.width, m.height, m.scale
}

// Resizes returns how many resizes have been applied.
func (m *ResizeManager) Resizes() uint64 {
	return m.resizes
}

// Deferred reports whether a resize is waiting for the current frame to end.
func (m *ResizeManager) Deferred() bool {
	return m.deferred
}

// Observe handles a resize event. Sizes equal to the applied size are
// ignored. A non-positive Scale keeps the current scale.
func (m *ResizeManager) Observe(ev Event) {
	scale := ev.Scale
	if scale <= 0 {
		scale = m.scale
	}
	if m.applied && ev.Width == m.width && ev.Height == m.height && scale == m.scale {
		m.deferred = false
		return
	}
	if m.busy != nil && m.busy() {
		m.deferred = true
		m.defW, m.defH, m.defScale = ev.Width, ev.Height, scale
		return
	}
	m.Apply(ev.Width, ev.Height, scale)
}

// Flush applies a deferred resize, if any.
func (m *ResizeManager) Flush() {
	if !m.deferred {
		return
	}
	m.deferred = false
	m.Apply(m.defW, m.defH, m.defScale)
}

// Apply resizes unconditionally.
func (m *ResizeManager) Apply(width, height int, scale float64) {
	if scale <= 0 {
		scale = 1
	}
	m.width, m.height, m.scale = max(width, 0), max(height, 0), scale
	m.applied = true
	m.resizes++
	m.sched.Reseed(func() uint64 {
		return m.apply(m.width, m.height, m.scale)
	})
}
