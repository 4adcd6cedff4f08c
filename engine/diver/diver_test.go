package diver

import (
	"math"
	"testing"
)

func TestFinalTime(t *testing.T) {
	d := New(10)
	want := (sqrt2 / 3) * math.Pow(10, 1.5)
	if math.Abs(d.FinalTime()-want) > 1e-9 {
		t.Errorf("FinalTime() = %v, want %v", d.FinalTime(), want)
	}
}

func TestPositionMonotonicity(t *testing.T) {
	d := New(10)
	final := d.FinalTime()
	times := []float64{0, final * 0.1, final * 0.5, final * 0.9, final}
	prev := math.Inf(1)
	for _, tm := range times {
		d.SetT(tm)
		r := d.Position()
		if r > prev {
			t.Errorf("position not monotonically decreasing: r(%v)=%v > prev=%v", tm, r, prev)
		}
		if r < 0 {
			t.Errorf("position went negative: %v", r)
		}
		prev = r
	}
	if d.Position() != 0 {
		t.Errorf("Position() at t_final should be exactly 0, got %v", d.Position())
	}
}

func TestHorizonCrossing(t *testing.T) {
	d := New(10)
	d.SetT(d.FinalTime())
	if d.Position() != 0 {
		t.Errorf("Position() = %v, want 0", d.Position())
	}
	if d.RemainingTime() != 0 {
		t.Errorf("RemainingTime() = %v, want 0", d.RemainingTime())
	}
}

func TestSetTClampsAboveFinal(t *testing.T) {
	d := New(10)
	final := d.FinalTime()
	d.SetT(final + 100)
	if d.T != final {
		t.Errorf("T = %v, want clamped to final time %v", d.T, final)
	}
}

func TestSetTAllowsNegative(t *testing.T) {
	d := New(10)
	d.SetT(-5)
	if d.T != -5 {
		t.Errorf("T = %v, want -5 (negative T must not be clamped)", d.T)
	}
	if d.Position() <= d.RInit {
		t.Errorf("Position() at negative T should exceed RInit, got %v", d.Position())
	}
}

func TestSpeedAtHorizon(t *testing.T) {
	d := New(10)
	d.SetT(d.FinalTime())
	if !math.IsInf(d.Speed(), 1) {
		t.Errorf("Speed() at horizon = %v, want +Inf", d.Speed())
	}
}

func TestSetRInitClampsNegative(t *testing.T) {
	d := New(5)
	d.SetRInit(-3)
	if d.RInit != 0 {
		t.Errorf("RInit = %v, want 0", d.RInit)
	}
}
