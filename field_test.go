package glitch

import "testing"

func TestRampEndpointsAndMidpoint(t *testing.T) {
	r := NewRamp([]RGBA{{0, 0, 0, 0}, {255, 255, 255, 1}})
	lo, hi, mid := r.At(-1), r.At(2), r.At(0.5)
	if lo.R != 0 || hi.R != 255 {
		t.Errorf("endpoints = %+v, %+v", lo, hi)
	}
	if mid.R < 126 || mid.R > 129 {
		t.Errorf("midpoint R = %d, want ~127", mid.R)
	}
	assertNear(t, "midpoint alpha", mid.A, 0.5)
}

func TestRampEmptyUsesFallback(t *testing.T) {
	r := NewRamp(nil)
	if got := r.At(0.3); got != FallbackColor {
		t.Errorf("At = %+v, want fallback", got)
	}
}

func TestRampThreeStops(t *testing.T) {
	r := NewRamp([]RGBA{{255, 0, 0, 1}, {0, 255, 0, 1}, {0, 0, 255, 1}})
	if got := r.At(0.5); got.G != 255 || got.R != 0 || got.B != 0 {
		t.Errorf("At(0.5) = %+v, want pure green", got)
	}
}

func TestPlasmaDeterministicAndNormalised(t *testing.T) {
	p := Plasma{CenterX: 160, CenterY: 90, Ramp: NewRamp([]RGBA{{0, 0, 0, 1}, {255, 255, 255, 1}})}
	for _, pt := range [][3]float64{{0, 0, 0}, {160, 90, 1.5}, {319, 179, 42}, {-10, 500, 1e4}} {
		a := p.Value(pt[0], pt[1], pt[2])
		b := p.Value(pt[0], pt[1], pt[2])
		if a != b {
			t.Errorf("Value%v not deterministic: %v vs %v", pt, a, b)
		}
		if a < 0 || a > 1 {
			t.Errorf("Value%v = %v outside [0, 1]", pt, a)
		}
		if p.Sample(pt[0], pt[1], pt[2]) != p.Sample(pt[0], pt[1], pt[2]) {
			t.Errorf("Sample%v not deterministic", pt)
		}
	}
	if p.Value(10, 10, 0) == p.Value(10, 10, 1) {
		t.Error("plasma should animate over time")
	}
}

func TestNoiseFieldDeterministicPerSeed(t *testing.T) {
	ramp := NewRamp([]RGBA{{0, 0, 0, 1}, {255, 255, 255, 1}})
	a := NewNoiseField(42, ramp)
	b := NewNoiseField(42, ramp)
	for _, pt := range [][3]float64{{0.5, 0.5, 0}, {120, 33, 2}, {999, 1, 10}} {
		va, vb := a.Value(pt[0], pt[1], pt[2]), b.Value(pt[0], pt[1], pt[2])
		if va != vb {
			t.Errorf("Value%v differs between equal seeds: %v vs %v", pt, va, vb)
		}
		if va < 0 || va > 1 {
			t.Errorf("Value%v = %v outside [0, 1]", pt, va)
		}
	}
}
