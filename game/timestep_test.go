package game

import (
	"math"
	"testing"
	"time"
)

func TestTimestepFirstTickIsFresh(t *testing.T) {
	ts := NewTimestep(false)
	step := ts.Tick(time.Now())

	if !step.Fresh {
		t.Error("first tick should read as a fresh start")
	}
	if step.Delta != targetFrameTime {
		t.Errorf("fresh step delta = %v, want %v", step.Delta, targetFrameTime)
	}
	if step.Mult != 1.0 {
		t.Errorf("fresh step mult = %v, want 1.0", step.Mult)
	}
}

func TestTimestepClamping(t *testing.T) {
	tests := []struct {
		name    string
		gap     time.Duration
		wantMin float64
		wantMax float64
	}{
		{"steady 60fps", 16670 * time.Microsecond, 0.99, 1.01},
		{"fast 240fps clamps up", 4 * time.Millisecond, 0.5, 0.5},
		{"slow 15fps clamps down", 66 * time.Millisecond, 1.9, 2.0},
		{"slow 80ms within threshold", 80 * time.Millisecond, 1.9, 2.0},
		{"stall resets", 250 * time.Millisecond, 1.0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := NewTimestep(false)
			base := time.Now()
			ts.Tick(base)
			step := ts.Tick(base.Add(tt.gap))

			// Gaps past the reset threshold come back as fresh steps
			fresh := tt.gap > resetThreshold
			if step.Fresh != fresh {
				t.Errorf("Fresh = %v, want %v", step.Fresh, fresh)
			}
			if step.Mult < tt.wantMin || step.Mult > tt.wantMax {
				t.Errorf("Mult = %v, want within [%v, %v]", step.Mult, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestTimestepResetForgetsLastFrame(t *testing.T) {
	ts := NewTimestep(false)
	base := time.Now()
	ts.Tick(base)
	ts.Reset()

	step := ts.Tick(base.Add(16 * time.Millisecond))
	if !step.Fresh {
		t.Error("tick after Reset should be fresh, not a compensated delta")
	}
}

func TestTimestepTouchScale(t *testing.T) {
	ts := NewTimestep(true)
	step := ts.Tick(time.Now())
	if math.Abs(step.Mult-touchScale) > 1e-9 {
		t.Errorf("touch-mode fresh mult = %v, want %v", step.Mult, touchScale)
	}

	ts.SetTouch(false)
	base := time.Now()
	ts.Reset()
	ts.Tick(base)
	step = ts.Tick(base.Add(targetFrameTime))
	if math.Abs(step.Mult-1.0) > 0.01 {
		t.Errorf("mult after disabling touch = %v, want ~1.0", step.Mult)
	}
}

func TestFixedStep(t *testing.T) {
	tests := []struct {
		fps     float64
		wantMin float64
		wantMax float64
	}{
		{60, 0.99, 1.01},
		{30, 1.9, 2.0},
		{120, 0.5, 0.51},
		{240, 0.5, 0.5}, // clamps at the floor
		{15, 1.9, 2.0},  // delta clamp caps it at the 30fps value
	}

	for _, tt := range tests {
		step := FixedStep(tt.fps)
		if step.Mult < tt.wantMin || step.Mult > tt.wantMax {
			t.Errorf("FixedStep(%v).Mult = %v, want within [%v, %v]",
				tt.fps, step.Mult, tt.wantMin, tt.wantMax)
		}
		if step.Delta < minFrameTime || step.Delta > maxFrameTime {
			t.Errorf("FixedStep(%v).Delta = %v escaped the clamp band", tt.fps, step.Delta)
		}
	}
}
