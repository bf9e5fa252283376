package glitch

import (
	"math"
	"math/rand/v2"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func testRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x5bd1e995))
}

func testContext(w, h float64, seed uint64) *StepContext {
	return &StepContext{Width: w, Height: h, Pointer: PointerAway, Rand: testRand(seed)}
}

// --- Rect.Contains ---

func TestRectContains(t *testing.T) {
	r := Rect{10, 20, 100, 50}
	tests := []struct {
		name   string
		x, y   float64
		expect bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"outside left", 9, 40, false},
		{"outside right", 111, 40, false},
		{"outside above", 50, 19, false},
		{"outside below", 50, 71, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Contains(tt.x, tt.y)
			if got != tt.expect {
				t.Errorf("Rect%v.Contains(%v, %v) = %v, want %v", r, tt.x, tt.y, got, tt.expect)
			}
		})
	}
}

func TestRectEmpty(t *testing.T) {
	if !(Rect{Width: 0, Height: 10}).Empty() {
		t.Error("zero width should be empty")
	}
	if (Rect{Width: 1, Height: 1}).Empty() {
		t.Error("1x1 should not be empty")
	}
}

// --- Range ---

func TestRangeRandWithinBounds(t *testing.T) {
	rng := testRand(1)
	for _, r := range []Range{{2, 5}, {5, 2}, {-1, 1}} {
		for i := 0; i < 1000; i++ {
			v := r.Rand(rng)
			if v < math.Min(r.Min, r.Max) || v > math.Max(r.Min, r.Max) {
				t.Fatalf("Range%v.Rand() = %v out of bounds", r, v)
			}
		}
	}
	if got := (Range{3, 3}).Rand(rng); got != 3 {
		t.Errorf("degenerate Rand = %v, want 3", got)
	}
}

func TestRangeClamp(t *testing.T) {
	tests := []struct {
		r       Range
		v, want float64
	}{
		{Range{0, 1}, -1, 0},
		{Range{0, 1}, 2, 1},
		{Range{0, 1}, 0.5, 0.5},
		{Range{4, 1}, 10, 4},
		{Range{4, 1}, 0, 1},
	}
	for _, tt := range tests {
		assertNear(t, "Clamp", tt.r.Clamp(tt.v), tt.want)
	}
}

func TestClamp01AndLerp(t *testing.T) {
	assertNear(t, "clamp01(-1)", clamp01(-1), 0)
	assertNear(t, "clamp01(2)", clamp01(2), 1)
	assertNear(t, "lerp", lerp(2, 4, 0.25), 2.5)
}

func TestNominalFrameMatchesDT(t *testing.T) {
	assertNear(t, "nominalFrame", nominalFrame.Seconds(), NominalDT)
	assertNear(t, "frames(NominalDT)", frames(NominalDT), 1)
}
