package environment

import (
	"image"
	"image/color"
	"math"
	"testing"

	"raindiver/engine/spherical"
)

func checkerboard(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 0, A: 255}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestNewRejectsNonEquirectangular(t *testing.T) {
	img := checkerboard(100, 100)
	if _, err := New(img); err == nil {
		t.Fatal("expected error for square image")
	}
}

func TestNewAcceptsTwoToOne(t *testing.T) {
	img := checkerboard(200, 100)
	env, err := New(img)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w, h := env.Bounds()
	if w != 200 || h != 100 {
		t.Errorf("Bounds() = (%d,%d), want (200,100)", w, h)
	}
}

func TestSampleNorthPoleIsTopRow(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 10))
	for x := 0; x < 20; x++ {
		img.SetRGBA(x, 0, color.RGBA{R: 255, A: 255})
		img.SetRGBA(x, 9, color.RGBA{B: 255, A: 255})
	}
	env, err := New(img)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	north := env.Sample(spherical.NewMapAngle(0, 0.5))
	if north.R != 255 {
		t.Errorf("north pole sample = %+v, want red top row", north)
	}
	south := env.Sample(spherical.NewMapAngle(math.Pi-1e-6, 0.5))
	if south.B != 255 {
		t.Errorf("south pole sample = %+v, want blue bottom row", south)
	}
}

func TestSampleInBounds(t *testing.T) {
	env, err := New(checkerboard(64, 32))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, theta := range []float64{0, math.Pi / 2, math.Pi} {
		for _, phi := range []float64{0, math.Pi, 2*math.Pi - 1e-9} {
			_ = env.Sample(spherical.NewMapAngle(theta, phi))
		}
	}
}
