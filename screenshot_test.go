package glitch

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"after-resize", "after-resize"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"back\\slash", "back_slash"},
		{"special!@#$%", "special_____"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"MixedCase123", "MixedCase123"},
	}
	for _, tt := range tests {
		got := sanitizeLabel(tt.in)
		if got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSnapshotUnpremultiplies(t *testing.T) {
	s := NewImageSurface(2, 1, 1)
	s.WritePixels([]byte{100, 50, 0, 128, 10, 20, 30, 255})
	img := Snapshot(s)
	if got := img.Pix[0:4]; got[0] != 199 || got[1] != 99 || got[2] != 0 || got[3] != 128 {
		t.Errorf("half-transparent pixel = %v", got)
	}
	if got := img.Pix[4:8]; got[0] != 10 || got[1] != 20 || got[2] != 30 || got[3] != 255 {
		t.Errorf("opaque pixel = %v", got)
	}
}

func TestEncodePNG(t *testing.T) {
	s := NewImageSurface(7, 3, 2)
	var buf bytes.Buffer
	if err := EncodePNG(&buf, s); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 14 || b.Dy() != 6 {
		t.Errorf("bounds = %v, want 14x6", b)
	}
}

func TestSavePNGCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "frame.png")
	if err := SavePNG(path, NewImageSurface(4, 4, 1)); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Error(err)
	}
}
