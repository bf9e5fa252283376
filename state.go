package glitch

import "math/rand/v2"

// State is everything one engine instance mutates between frames. It is
// owned by the engine and handed by reference to the effect's step and draw
// functions; nothing outside the engine writes to it.
type State struct {
	Store   Store
	Options Options
	// Color is the resolved Options.Color.
	Color RGBA
	// Width and Height are the logical surface size of the current generation.
	Width, Height float64
	// Pointer is the last pointer position, or PointerAway.
	Pointer Vec2
	// Frame counts frames in the current generation; Ticks counts all frames.
	Frame, Ticks uint64
	// Links holds the neighbour pairs computed for the current frame.
	Links []Link
	Rand  *rand.Rand

	ctx StepContext
}

// Generation returns the generation of the current store/surface pair.
func (st *State) Generation() uint64 {
	return st.Store.Generation()
}

// Time returns the effect clock in seconds.
func (st *State) Time() float64 {
	return float64(st.Ticks) * NominalDT
}

// Bounds returns the logical surface rectangle.
func (st *State) Bounds() Rect {
	return Rect{Width: st.Width, Height: st.Height}
}

// Context returns the step context for the current frame.
func (st *State) Context() *StepContext {
	st.ctx = StepContext{
		Width:      st.Width,
		Height:     st.Height,
		Pointer:    st.Pointer,
		Time:       st.Time(),
		Frame:      st.Frame,
		Generation: st.Generation(),
		Rand:       st.Rand,
	}
	return &st.ctx
}
