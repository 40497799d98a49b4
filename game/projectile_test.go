package game

import (
	"math"
	"testing"
)

func TestBulletFliesStraight(t *testing.T) {
	w := newTestWorld(1)

	right := NewBullet(100, 200, FacingRight)
	left := NewBullet(700, 200, FacingLeft)
	for i := 0; i < 10; i++ {
		right.Update(1.0, w)
		left.Update(1.0, w)
	}

	if math.Abs(right.X-(100+10*bulletSpeed)) > 1e-9 {
		t.Errorf("rightward bullet X = %v, want %v", right.X, 100+10*bulletSpeed)
	}
	if math.Abs(left.X-(700-10*bulletSpeed)) > 1e-9 {
		t.Errorf("leftward bullet X = %v, want %v", left.X, 700-10*bulletSpeed)
	}
	if right.Y != 200 || left.Y != 200 {
		t.Errorf("bullet Y drifted: %v, %v, want 200", right.Y, left.Y)
	}
}

func TestBulletExpiresOffCanvas(t *testing.T) {
	w := newTestWorld(1)
	b := NewBullet(float64(w.Config.ScreenWidth), 200, FacingRight)

	for i := 0; i < 4; i++ {
		b.Update(1.0, w)
		if !b.Active {
			t.Fatalf("bullet died at X=%v, still inside the margin", b.X)
		}
	}
	b.Update(1.0, w)
	if b.Active {
		t.Errorf("bullet survived past the canvas margin at X=%v", b.X)
	}
}

func TestEnemyShotExpiresByLifetime(t *testing.T) {
	w := newTestWorld(1)
	// Aimed shots can wander diagonally; lifetime is the backstop that
	// keeps a slow diagonal from living forever
	s := NewEnemyShotAt(400, 100, 420, 5000)
	s.VX, s.VY = 0, 0.01

	for i := 0.0; i < enemyShotLifeFrames-1; i++ {
		s.Update(1.0, w)
	}
	if !s.Active {
		t.Fatal("shot died before its lifetime")
	}
	for i := 0; i < 3; i++ {
		s.Update(1.0, w)
	}
	if s.Active {
		t.Error("shot outlived its lifetime")
	}
}

func TestHeatseekerConvergesOnStationaryTarget(t *testing.T) {
	w := newTestWorld(1)
	e := NewEnemy(EnemyBasic, 600, 120, 0, 1.0)
	e.Phase = PhaseActive
	w.AddEnemy(e)

	m := NewHeatseeker(100, 480, FacingRight)
	dist := func() float64 {
		return math.Hypot(
			e.X+e.W/2-(m.X+m.W/2),
			e.Y+e.H/2-(m.Y+m.H/2),
		)
	}

	start := dist()
	min := start
	for i := 0; i < 600 && dist() > 30; i++ {
		m.Update(1.0, w)
		if d := dist(); d < min {
			min = d
		}
	}

	if min > 30 {
		t.Fatalf("closest approach = %v from %v, want under 30", min, start)
	}
	if m.TargetID != e.ID {
		t.Errorf("target lock = %d, want %d", m.TargetID, e.ID)
	}
	if m.Stopped {
		t.Error("missile reports stopped while chasing")
	}
}

func TestHeatseekerHoldsWithoutTarget(t *testing.T) {
	w := newTestWorld(1)
	m := NewHeatseeker(400, 300, FacingRight)

	for i := 0; i < 60; i++ {
		m.Update(1.0, w)
	}

	if !m.Stopped {
		t.Error("missile should report the holding pattern")
	}
	if m.Speed > heatseekerHoldDrift+1e-9 {
		t.Errorf("hold speed = %v, want decayed to %v", m.Speed, heatseekerHoldDrift)
	}
	// Sixty frames of drift at hold speed stays well on screen
	if math.Hypot(m.X-400, m.Y-300) > 120 {
		t.Errorf("missile drifted %v px while holding", math.Hypot(m.X-400, m.Y-300))
	}
	if !m.Active {
		t.Error("holding missile expired early")
	}
}

func TestHeatseekerReacquiresAfterHold(t *testing.T) {
	w := newTestWorld(1)
	m := NewHeatseeker(400, 300, FacingRight)

	for i := 0; i < 30; i++ {
		m.Update(1.0, w)
	}
	if !m.Stopped {
		t.Fatal("missile should be holding with an empty sky")
	}

	e := NewEnemy(EnemyBasic, 600, 200, 0, 1.0)
	e.Phase = PhaseActive
	w.AddEnemy(e)

	m.Update(1.0, w)
	if m.Stopped {
		t.Error("missile still holding with a target available")
	}
	if m.TargetID != e.ID {
		t.Errorf("target lock = %d, want %d", m.TargetID, e.ID)
	}
}

func TestHeatseekerSwitchesWhenTargetDies(t *testing.T) {
	w := newTestWorld(1)
	near := NewEnemy(EnemyBasic, 500, 300, 0, 1.0)
	near.Phase = PhaseActive
	far := NewEnemy(EnemyBasic, 700, 300, 0, 1.0)
	far.Phase = PhaseActive
	w.AddEnemy(near)
	w.AddEnemy(far)

	m := NewHeatseeker(400, 300, FacingRight)
	m.Update(1.0, w)
	if m.TargetID != near.ID {
		t.Fatalf("initial lock = %d, want nearest %d", m.TargetID, near.ID)
	}

	near.Phase = PhaseExploding
	m.Update(1.0, w)
	if m.TargetID != far.ID {
		t.Errorf("lock after target death = %d, want %d", m.TargetID, far.ID)
	}
}

func TestHeatseekerLifetime(t *testing.T) {
	w := newTestWorld(1)
	m := NewHeatseeker(400, 300, FacingRight)

	for i := 0.0; i < heatseekerLifeFrames-1; i++ {
		m.Update(1.0, w)
	}
	if !m.Active {
		t.Fatal("missile expired before its lifetime")
	}
	for i := 0; i < 3; i++ {
		m.Update(1.0, w)
	}
	if m.Active {
		t.Error("missile outlived its lifetime")
	}
}

func TestRotateToward(t *testing.T) {
	tests := []struct {
		name             string
		current, target  float64
		maxStep          float64
		want             float64
	}{
		{name: "within step snaps", current: 0, target: 0.05, maxStep: 0.1, want: 0.05},
		{name: "clamps to step", current: 0, target: 1.0, maxStep: 0.1, want: 0.1},
		{name: "clamps negative", current: 1.0, target: 0, maxStep: 0.1, want: 0.9},
		{name: "wraps the short way up", current: 3.0, target: -3.0, maxStep: 0.1, want: 3.1},
		{name: "wraps the short way down", current: -3.0, target: 3.0, maxStep: 0.1, want: -3.1},
		{name: "already there", current: 1.5, target: 1.5, maxStep: 0.1, want: 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rotateToward(tt.current, tt.target, tt.maxStep)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("rotateToward(%v, %v, %v) = %v, want %v",
					tt.current, tt.target, tt.maxStep, got, tt.want)
			}
		})
	}
}
