// Package camera implements the observer's viewing rig: an orientation
// in world space, a field of view, and the projections (perspective and
// equirectangular) used to turn a pixel coordinate into a rain-frame
// direction for the geodesic solver.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"raindiver/engine/spherical"
)

// dragSensitivityScale and zoomSensitivityScale are the "k" constants
// from the original drag/zoom formulas, tuned so a sensitivity of 1.0
// feels natural at a mouse-drag scale of screen pixels.
const (
	dragSensitivityScale = 5e-4
	zoomSensitivityScale = 5e-4
)

// Projection selects how a pixel coordinate maps to a ray direction.
type Projection int

const (
	Perspective Projection = iota
	Equirectangular
)

// Camera holds the observer's field of view and orientation. The
// projection itself is not camera state — it belongs to RenderSettings —
// because the same camera orientation can be previewed under either
// projection.
type Camera struct {
	FOV float64
	R   Rotation3
}

// New returns a camera with the given field of view (radians) looking
// down -Z with no roll.
func New(fov float64) Camera {
	return Camera{FOV: fov, R: Identity()}
}

// NewEquirectangular returns the convenience camera used for full-sphere
// preview: identity orientation, FOV unused by the equirectangular
// projection (spec.md §8 "Supplemented features").
func NewEquirectangular() Camera {
	return Camera{FOV: math.Pi, R: Identity()}
}

// LookAt points the camera along dir, using up to fix roll. It is a
// no-op (keeping the previous orientation) if dir is parallel to up.
func (c *Camera) LookAt(dir, up r3.Vec) error {
	r, err := LookAt(dir, up)
	if err != nil {
		return err
	}
	c.R = r
	return nil
}

// Pitch tilts the camera up (positive angle) or down around its current
// right axis.
func (c *Camera) Pitch(angle float64) { c.R = c.R.Pitch(angle) }

// Yaw turns the camera left or right around the world up axis.
func (c *Camera) Yaw(angle float64) { c.R = c.R.Yaw(angle) }

// DragDelta applies a mouse-drag gesture as a combined pitch/yaw,
// scaled by the camera's field of view so a drag covers roughly the
// same screen-space distance regardless of zoom level.
func (c *Camera) DragDelta(dx, dy, sensitivity float64) {
	scale := c.FOV * dragSensitivityScale * sensitivity
	c.Pitch(-dy * scale)
	c.Yaw(-dx * scale)
}

// Zoom narrows or widens the field of view multiplicatively, clamped to
// (0, pi].
func (c *Camera) Zoom(scroll, sensitivity float64) {
	factor := math.Pow(2, -scroll*zoomSensitivityScale*sensitivity)
	fov := c.FOV * factor
	switch {
	case fov <= 0:
		fov = 1e-6
	case fov > math.Pi:
		fov = math.Pi
	}
	c.FOV = fov
}

// SetFocalLength derives FOV from a focal length in pixels given the
// image height, inverting the pinhole-camera relationship used by
// PixelToRainAngle: focalLengthPx = (height/2) / tan(fov/2).
func (c *Camera) SetFocalLength(focalLengthPx float64, height int) {
	c.FOV = 2 * math.Atan(float64(height)/2/focalLengthPx)
}

// FocalLength returns the focal length in pixels implied by the current
// FOV and image height.
func (c Camera) FocalLength(height int) float64 {
	return float64(height) / 2 / math.Tan(c.FOV/2)
}

// PixelToRainAngle converts a pixel coordinate (with (0,0) at the
// top-left) in an image of the given resolution to the rain-frame
// direction that pixel samples, under the given projection.
func (c Camera) PixelToRainAngle(proj Projection, px, py float64, width, height int) spherical.RainAngle {
	w, h := float64(width), float64(height)

	var local r3.Vec
	switch proj {
	case Equirectangular:
		theta := math.Pi * py / h
		phi := math.Pi * px / h
		sinT, cosT := math.Sincos(theta)
		sinP, cosP := math.Sincos(phi)
		local = r3.Vec{X: sinT * cosP, Y: sinT * sinP, Z: cosT}
	default: // Perspective
		focal := h / 2 / math.Tan(c.FOV/2)
		local = r3.Unit(r3.Vec{
			X: px - w/2,
			Y: h/2 - py,
			Z: -focal,
		})
	}

	world := c.R.Transform(local)
	return spherical.RainAngleFromVector(world)
}
