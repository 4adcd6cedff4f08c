// Package environment holds the equirectangular background image the
// renderer samples for every ray that escapes the black hole's shadow.
package environment

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"raindiver/engine/spherical"
)

// ErrNotEquirectangular is returned by New when the source image's aspect
// ratio is not exactly 2:1, the shape an equirectangular projection
// requires.
var ErrNotEquirectangular = fmt.Errorf("environment: image is not 2:1 equirectangular")

// Environment is an immutable equirectangular background. Scenes hold a
// *Environment so sharing one across many scenes/keyframes is just
// sharing the pointer — no copying, no reference counting needed in Go.
type Environment struct {
	img    image.Image
	width  int
	height int
}

// New validates that img is 2:1 (width == 2*height) and wraps it.
func New(img image.Image) (*Environment, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if h == 0 || w != 2*h {
		return nil, fmt.Errorf("%w: got %dx%d", ErrNotEquirectangular, w, h)
	}
	return &Environment{img: img, width: w, height: h}, nil
}

// Bounds returns the pixel dimensions of the environment image.
func (e *Environment) Bounds() (width, height int) { return e.width, e.height }

// Sample returns the background color in the direction of angle, via
// nearest-neighbor lookup. theta=0 is the north pole (top row), matching
// camera.PixelToRainAngle's equirectangular convention.
func (e *Environment) Sample(angle spherical.MapAngle) color.RGBA {
	x := int(angle.Phi() / (2 * math.Pi) * float64(e.width))
	y := int(angle.Theta() / math.Pi * float64(e.height))

	if x >= e.width {
		x = e.width - 1
	}
	if y >= e.height {
		y = e.height - 1
	}

	b := e.img.Bounds()
	r, g, bl, a := e.img.At(b.Min.X+x, b.Min.Y+y).RGBA()
	return color.RGBA{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(bl >> 8),
		A: uint8(a >> 8),
	}
}
