package glitch

import "time"

// SchedulerState is the lifecycle state of a Scheduler.
type SchedulerState uint8

const (
	StateIdle    SchedulerState = iota // no loop; nothing pending
	StateSeeding                       // loop stopped while the store and surface are rebuilt
	StateRunning                       // exactly one frame callback pending or executing
)

// String returns the state name.
func (s SchedulerState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSeeding:
		return "seeding"
	case StateRunning:
		return "running"
	default:
		return "unknown"
	}
}

// TickFunc runs one frame for the given generation.
type TickFunc func(gen uint64, now time.Duration)

// Scheduler owns the per-frame callback loop of one engine. At most one loop
// is active at any time: Start is a no-op while running, and every callback
// carries the generation and frame id it was requested for so that a
// callback delivered after Stop or a reseed does nothing.
type Scheduler struct {
	frames  FrameSource
	tick    TickFunc
	state   SchedulerState
	gen     uint64
	pending FrameID
	waiting bool
	loops   uint64
}

// NewScheduler creates an idle scheduler.
func NewScheduler(frames FrameSource, tick TickFunc) *Scheduler {
	return &Scheduler{frames: frames, tick: tick}
}

// State returns the current state.
func (s *Scheduler) State() SchedulerState {
	return s.state
}

// Generation returns the generation the loop is bound to.
func (s *Scheduler) Generation() uint64 {
	return s.gen
}

// Loops returns how many loops have been started over the scheduler's life.
func (s *Scheduler) Loops() uint64 {
	return s.loops
}

// Start begins the frame loop for gen. It returns false and changes nothing
// when a loop is already running.
func (s *Scheduler) Start(gen uint64) bool {
	if s.state == StateRunning {
		return false
	}
	s.gen = gen
	s.state = StateRunning
	s.loops++
	s.request()
	return true
}

// Stop cancels the pending frame callback and returns to Idle.
func (s *Scheduler) Stop() {
	if s.waiting {
		s.frames.CancelFrame(s.pending)
		s.waiting = false
	}
	s.state = StateIdle
}

// Reseed stops the loop, runs seed in the Seeding state and restarts the
// loop for the generation seed returns. The restart only happens if the
// scheduler was running beforehand.
func (s *Scheduler) Reseed(seed func() uint64) {
	wasRunning := s.state == StateRunning
	s.Stop()
	s.state = StateSeeding
	gen := seed()
	s.state = StateIdle
	if wasRunning {
		s.Start(gen)
	} else {
		s.gen = gen
	}
}

func (s *Scheduler) request() {
	gen := s.gen
	var id FrameID
	id = s.frames.RequestFrame(func(now time.Duration) {
		s.deliver(gen, id, now)
	})
	s.pending = id
	s.waiting = true
}

// deliver runs a frame callback unless it is stale.
func (s *Scheduler) deliver(gen uint64, id FrameID, now time.Duration) {
	if s.state != StateRunning || gen != s.gen || !s.waiting || id != s.pending {
		return
	}
	s.waiting = false
	s.tick(gen, now)
	if s.state == StateRunning && s.gen == gen && !s.waiting {
		s.request()
	}
}
