package glitch

import "testing"

type samplerFunc func(x, y, t float64) RGBA

func (f samplerFunc) Sample(x, y, t float64) RGBA { return f(x, y, t) }

func TestFalloffAlpha(t *testing.T) {
	f := Falloff{MaxDistance: 100, LineOpacity: 0.5}
	tests := []struct {
		dist, want float64
	}{
		{0, 0.5},
		{50, 0.25},
		{100, 0},
		{150, 0},
	}
	for _, tt := range tests {
		assertNear(t, "Alpha", f.Alpha(tt.dist), tt.want)
	}
	assertNear(t, "disabled", Falloff{LineOpacity: 1}.Alpha(0), 0)
}

func pixelAt(s *ImageSurface, x, y int) [4]uint8 {
	off := s.Image().PixOffset(x, y)
	p := s.Image().Pix[off : off+4]
	return [4]uint8{p[0], p[1], p[2], p[3]}
}

func TestDrawEntityPaintsCenter(t *testing.T) {
	s := NewImageSurface(40, 40, 1)
	r := NewRenderer(s)
	r.DrawEntity(&Entity{X: 20, Y: 20, Radius: 5, Opacity: 1}, RGBA{255, 0, 0, 1})
	if p := pixelAt(s, 20, 20); p[0] == 0 || p[3] == 0 {
		t.Errorf("center pixel = %v, want red", p)
	}
	if p := pixelAt(s, 2, 2); p[3] != 0 {
		t.Errorf("corner pixel = %v, want transparent", p)
	}
}

func TestDrawEntityRespectsScale(t *testing.T) {
	s := NewImageSurface(20, 20, 2)
	if w, h := s.Size(); w != 40 || h != 40 {
		t.Fatalf("Size = %dx%d, want 40x40", w, h)
	}
	NewRenderer(s).DrawEntity(&Entity{X: 15, Y: 15, Radius: 2, Opacity: 1}, RGBA{0, 0, 255, 1})
	if p := pixelAt(s, 30, 30); p[2] == 0 {
		t.Errorf("scaled center pixel = %v, want blue", p)
	}
	if p := pixelAt(s, 15, 15); p[3] != 0 {
		t.Errorf("unscaled position painted: %v", p)
	}
}

func TestDrawEntitySkipsInvisible(t *testing.T) {
	s := NewImageSurface(10, 10, 1)
	r := NewRenderer(s)
	r.DrawEntity(&Entity{X: 5, Y: 5, Radius: 3, Opacity: 0}, RGBA{255, 255, 255, 1})
	r.DrawEntity(&Entity{X: 5, Y: 5, Radius: 0, Opacity: 1}, RGBA{255, 255, 255, 1})
	for _, b := range s.Image().Pix {
		if b != 0 {
			t.Fatal("invisible entity painted pixels")
		}
	}
}

func TestDrawLinkFadesToNothing(t *testing.T) {
	s := NewImageSurface(40, 10, 1)
	r := NewRenderer(s)
	a, b := &Entity{X: 0, Y: 5}, &Entity{X: 40, Y: 5}
	f := Falloff{MaxDistance: 40, LineOpacity: 1, LineWidth: 2}
	r.DrawLink(a, b, Link{Distance: 40}, RGBA{255, 255, 255, 1}, f)
	for _, px := range s.Image().Pix {
		if px != 0 {
			t.Fatal("link at max distance painted pixels")
		}
	}
	r.DrawLink(a, b, Link{Distance: 10}, RGBA{255, 255, 255, 1}, f)
	if p := pixelAt(s, 20, 5); p[3] == 0 {
		t.Errorf("link pixel = %v, want painted", p)
	}
}

func TestDrawFieldFillsBuffer(t *testing.T) {
	s := NewImageSurface(7, 5, 1)
	r := NewRenderer(s)
	var calls int
	ok := r.DrawField(samplerFunc(func(x, y, t float64) RGBA {
		calls++
		return RGBA{10, 20, 30, 1}
	}), 0, 2)
	if !ok {
		t.Fatal("DrawField returned false")
	}
	// ceil(7/2) * ceil(5/2)
	if calls != 12 {
		t.Errorf("sampler calls = %d, want 12", calls)
	}
	for y := 0; y < 5; y++ {
		for x := 0; x < 7; x++ {
			if p := pixelAt(s, x, y); p != [4]uint8{10, 20, 30, 255} {
				t.Fatalf("pixel (%d, %d) = %v", x, y, p)
			}
		}
	}
}

func TestDrawFieldPremultiplies(t *testing.T) {
	s := NewImageSurface(2, 2, 1)
	NewRenderer(s).DrawField(samplerFunc(func(x, y, t float64) RGBA {
		return RGBA{200, 100, 0, 0.5}
	}), 0, 1)
	if p := pixelAt(s, 1, 1); p != [4]uint8{100, 50, 0, 128} {
		t.Errorf("pixel = %v, want premultiplied {100 50 0 128}", p)
	}
}

func TestDrawFieldSamplesLogicalCoordinates(t *testing.T) {
	s := NewImageSurface(10, 10, 2)
	var maxX float64
	NewRenderer(s).DrawField(samplerFunc(func(x, y, t float64) RGBA {
		maxX = max(maxX, x)
		return RGBA{}
	}), 0, 1)
	// Physical 20 columns map back to logical 0..9.5.
	assertNear(t, "max sample x", maxX, 9.5)
}

func TestDrawFieldZeroArea(t *testing.T) {
	s := NewImageSurface(0, 10, 1)
	called := false
	ok := NewRenderer(s).DrawField(samplerFunc(func(x, y, t float64) RGBA {
		called = true
		return RGBA{}
	}), 0, 1)
	if ok || called {
		t.Errorf("zero-area DrawField = %v, sampler called %v", ok, called)
	}
}

func TestImageSurfaceResizeAndWritePixels(t *testing.T) {
	s := NewImageSurface(4, 4, 1)
	s.Resize(3, 2, 1.5)
	if w, h := s.Size(); w != 5 || h != 3 {
		t.Errorf("Size = %dx%d, want 5x3", w, h)
	}
	assertNear(t, "Scale", s.Scale(), 1.5)

	s.WritePixels([]byte{1, 2, 3})
	for _, b := range s.Image().Pix {
		if b != 0 {
			t.Fatal("short buffer should be ignored")
		}
	}
	full := make([]byte, len(s.Image().Pix))
	full[0] = 9
	s.WritePixels(full)
	if s.Image().Pix[0] != 9 {
		t.Error("full buffer not written")
	}
	s.Clear()
	if s.Image().Pix[0] != 0 {
		t.Error("Clear left pixels behind")
	}
}

func TestImageSurfaceNonPositiveScale(t *testing.T) {
	s := NewImageSurface(10, 10, 0)
	assertNear(t, "Scale", s.Scale(), 1)
	if w, _ := s.Size(); w != 10 {
		t.Errorf("width = %d, want 10", w)
	}
	if !s.Usable() {
		t.Error("surface should be usable")
	}
	var nilSurface *ImageSurface
	if nilSurface.Usable() {
		t.Error("nil surface should not be usable")
	}
}
