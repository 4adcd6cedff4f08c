package interpolate

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"raindiver/engine/camera"
)

func TestLerpEndpoints(t *testing.T) {
	if got := Lerp(2, 8, 0); got != 2 {
		t.Errorf("Lerp(2,8,0) = %v, want 2", got)
	}
	if got := Lerp(2, 8, 1); got != 8 {
		t.Errorf("Lerp(2,8,1) = %v, want 8", got)
	}
	if got := Lerp(2, 8, 0.5); got != 5 {
		t.Errorf("Lerp(2,8,0.5) = %v, want 5", got)
	}
}

func TestLerpIntRounds(t *testing.T) {
	if got := LerpInt(0, 10, 0.24); got != 2 {
		t.Errorf("LerpInt(0,10,0.24) = %v, want 2", got)
	}
	if got := LerpInt(0, 10, 0.26); got != 3 {
		t.Errorf("LerpInt(0,10,0.26) = %v, want 3", got)
	}
}

func TestSlerpRotationEndpoints(t *testing.T) {
	a := camera.New(1).R
	b, _ := camera.LookAt(r3.Vec{X: 1}, r3.Vec{Y: 1})

	got := SlerpRotation(a, b, 0)
	if math.Abs(got.Z.X-a.Z.X) > 1e-6 {
		t.Errorf("SlerpRotation(a,b,0) != a: got %+v want %+v", got.Z, a.Z)
	}
}
