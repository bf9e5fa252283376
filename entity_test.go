package glitch

import (
	"math/rand/v2"
	"testing"
)

func TestSeedCountAndBounds(t *testing.T) {
	var s Store
	rng := testRand(1)
	cfg := SeedConfig{MinSize: 1, MaxSize: 3, Velocity: Range{-1, 1}, Speed: 2, Opacity: Range{0.2, 0.9}}
	bounds := Rect{X: 10, Y: 20, Width: 100, Height: 50}

	s.Seed(40, bounds, cfg, rng)
	if s.Len() != 40 {
		t.Fatalf("Len = %d, want 40", s.Len())
	}
	for i, e := range s.Entities() {
		if !bounds.Contains(e.X, e.Y) {
			t.Errorf("entity %d at (%v, %v) outside %v", i, e.X, e.Y, bounds)
		}
		if e.Radius < 1 || e.Radius > 3 {
			t.Errorf("entity %d radius %v outside [1, 3]", i, e.Radius)
		}
		if e.Opacity < 0.2 || e.Opacity > 0.9 {
			t.Errorf("entity %d opacity %v outside [0.2, 0.9]", i, e.Opacity)
		}
		if e.VX < -2 || e.VX > 2 || e.VY < -2 || e.VY > 2 {
			t.Errorf("entity %d velocity (%v, %v) outside ±2", i, e.VX, e.VY)
		}
	}
}

func TestReseedYieldsExactCount(t *testing.T) {
	var s Store
	rng := testRand(2)
	bounds := Rect{Width: 200, Height: 200}
	for _, n := range []int{10, 500, 0, 3, 3, 1999, 1} {
		s.Seed(n, bounds, SeedConfig{MinSize: 1, MaxSize: 2}, rng)
		if s.Len() != n {
			t.Errorf("after Seed(%d) Len = %d", n, s.Len())
		}
	}
}

func TestSeedClampsCount(t *testing.T) {
	var s Store
	s.Seed(MaxEntities+500, Rect{Width: 10, Height: 10}, SeedConfig{}, testRand(3))
	if s.Len() != MaxEntities {
		t.Errorf("Len = %d, want %d", s.Len(), MaxEntities)
	}
	s.Seed(-4, Rect{Width: 10, Height: 10}, SeedConfig{}, testRand(3))
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
}

func TestSeedToleratesSwappedSizeBand(t *testing.T) {
	var s Store
	s.Seed(100, Rect{Width: 10, Height: 10}, SeedConfig{MinSize: 5, MaxSize: 2}, testRand(4))
	for _, e := range s.Entities() {
		if e.Radius < 2 || e.Radius > 5 {
			t.Fatalf("radius %v outside [2, 5]", e.Radius)
		}
	}
}

func TestSeedInitIsReclamped(t *testing.T) {
	var s Store
	cfg := SeedConfig{
		MinSize: 1, MaxSize: 2,
		Init: func(e *Entity, _ *rand.Rand) {
			e.Radius = 50
			e.Opacity = -3
			e.Depth = 7
		},
	}
	s.Seed(5, Rect{Width: 10, Height: 10}, cfg, testRand(5))
	for _, e := range s.Entities() {
		assertNear(t, "radius", e.Radius, 2)
		assertNear(t, "opacity", e.Opacity, 0)
		assertNear(t, "depth", e.Depth, 7)
	}
}

func TestSeedReplacesArrayAndBumpsGeneration(t *testing.T) {
	var s Store
	rng := testRand(6)
	g1 := s.Seed(10, Rect{Width: 10, Height: 10}, SeedConfig{}, rng)
	old := s.Entities()
	g2 := s.Seed(10, Rect{Width: 10, Height: 10}, SeedConfig{}, rng)
	if g2 <= g1 || s.Generation() != g2 {
		t.Errorf("generation %d -> %d, Generation() = %d", g1, g2, s.Generation())
	}
	if &old[0] == &s.Entities()[0] {
		t.Error("reseed must publish a fresh array")
	}
}

func TestStoreDrop(t *testing.T) {
	var s Store
	g := s.Seed(10, Rect{Width: 10, Height: 10}, SeedConfig{}, testRand(7))
	s.Drop()
	if s.Entities() != nil || s.Len() != 0 {
		t.Error("Drop should release the array")
	}
	if s.Generation() <= g {
		t.Error("Drop should advance the generation")
	}
}
