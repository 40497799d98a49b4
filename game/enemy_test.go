package game

import (
	"math/rand"
	"testing"
)

func newTestWorld(seed int64) *World {
	cfg := DefaultConfig()
	cfg.Headless = true
	return NewWorld(cfg, rand.New(rand.NewSource(seed)))
}

func TestEnemyPhaseLadderOnlyMovesForward(t *testing.T) {
	w := newTestWorld(1)
	e := NewEnemy(EnemyBasic, 5000, 200, 0, 1.0)
	w.AddEnemy(e)

	prevPhase := e.Phase
	prevHits := e.HitsTaken
	check := func(label string) {
		t.Helper()
		if e.Phase < prevPhase {
			t.Fatalf("%s: phase went backward, %s -> %s", label, prevPhase, e.Phase)
		}
		if e.HitsTaken < prevHits {
			t.Fatalf("%s: hits taken went backward, %d -> %d", label, prevHits, e.HitsTaken)
		}
		prevPhase = e.Phase
		prevHits = e.HitsTaken
	}

	if e.Phase != PhaseSpawning {
		t.Fatalf("fresh enemy phase = %s, want spawning", e.Phase)
	}
	if e.Collidable() {
		t.Error("spawning enemy should not be collidable")
	}

	// A hit during spawn-in must bounce off entirely
	if e.Hit(false) {
		t.Error("hit on a spawning enemy reported a kill")
	}
	if e.HitsTaken != 0 {
		t.Errorf("hits taken after ignored hit = %d, want 0", e.HitsTaken)
	}

	for i := 0; i < 40 && e.Phase == PhaseSpawning; i++ {
		e.Update(1.0, w)
		check("spawn-in")
	}
	if e.Phase != PhaseActive {
		t.Fatalf("phase after spawn-in = %s, want active", e.Phase)
	}
	if !e.Collidable() {
		t.Error("active enemy should be collidable")
	}

	if e.Hit(false) {
		t.Error("first bullet hit reported a kill")
	}
	check("first hit")
	if e.Phase != PhaseAggressive {
		t.Fatalf("phase after first hit = %s, want aggressive", e.Phase)
	}

	if !e.Hit(false) {
		t.Error("second bullet hit should kill")
	}
	check("second hit")
	if e.Phase != PhaseExploding {
		t.Fatalf("phase after second hit = %s, want exploding", e.Phase)
	}
	if e.Collidable() {
		t.Error("exploding enemy should not be collidable")
	}

	// Hits on a corpse change nothing
	hits := e.HitsTaken
	if e.Hit(false) || e.Hit(true) {
		t.Error("hit on an exploding enemy reported a kill")
	}
	if e.HitsTaken != hits {
		t.Errorf("hits taken moved on an exploding enemy: %d -> %d", hits, e.HitsTaken)
	}
	if e.ForceExplode() {
		t.Error("force-exploding a corpse reported a fresh kill")
	}

	for i := 0; i < 60 && e.Phase == PhaseExploding; i++ {
		e.Update(1.0, w)
		check("explosion")
	}
	if e.Phase != PhaseRemoved {
		t.Fatalf("phase after explosion = %s, want removed", e.Phase)
	}
	if e.Alive() {
		t.Error("removed enemy still reports alive")
	}
}

func TestAggressiveEnemyIsFaster(t *testing.T) {
	e := NewEnemy(EnemyBasic, 500, 200, 0, 1.0)
	e.Phase = PhaseActive
	base := e.speed()

	e.Phase = PhaseAggressive
	if got := e.speed(); got <= base {
		t.Errorf("aggressive speed = %v, want above base %v", got, base)
	}
}

func TestHeatseekerHitSkipsAggressive(t *testing.T) {
	e := NewEnemy(EnemyZigzag, 500, 200, 0, 1.0)
	e.Phase = PhaseActive

	if !e.Hit(true) {
		t.Fatal("lethal hit on an active enemy should kill")
	}
	if e.Phase != PhaseExploding {
		t.Errorf("phase after lethal hit = %s, want exploding", e.Phase)
	}
}

func TestCityEnemyApproach(t *testing.T) {
	w := newTestWorld(2)
	e := NewEnemy(EnemyCity, 400, float64(w.Config.ScreenHeight)+60, 0, 1.0)
	e.TargetAltitude = 200
	w.AddEnemy(e)

	if e.Phase != PhaseApproaching {
		t.Fatalf("fresh city enemy phase = %s, want approaching", e.Phase)
	}

	sawReady := false
	for i := 0; i < 800 && e.Phase != PhaseActive; i++ {
		e.Update(1.0, w)
		if e.Phase == PhaseApproaching && e.Collidable() {
			t.Fatal("approaching enemy became collidable")
		}
		if e.Phase == PhaseReady {
			sawReady = true
			if !e.Collidable() {
				t.Fatal("ready enemy should be collidable")
			}
		}
	}

	if !sawReady {
		t.Error("city enemy never held at ready")
	}
	if e.Phase != PhaseActive {
		t.Fatalf("phase after approach = %s, want active", e.Phase)
	}
	if e.Y > 200+e.cfg.BobAmp+1 {
		t.Errorf("station altitude = %v, want near target 200", e.Y)
	}
}

func TestCityEnemyShootableWhileReady(t *testing.T) {
	e := NewEnemy(EnemyCity, 400, 300, 0, 1.0)
	e.Phase = PhaseReady

	if e.Hit(false) {
		t.Fatal("first bullet on a ready enemy reported a kill")
	}
	if e.Phase != PhaseAggressive {
		t.Errorf("phase after hit at ready = %s, want aggressive", e.Phase)
	}
}

func TestBasicEnemyStaysInBobBand(t *testing.T) {
	w := newTestWorld(3)
	e := NewEnemy(EnemyBasic, 5000, 250, 0, 1.0)
	e.Phase = PhaseActive
	w.AddEnemy(e)

	lastX := e.X
	for i := 0; i < 400; i++ {
		e.Update(1.0, w)
		if e.X >= lastX {
			t.Fatalf("frame %d: X did not decrease (%v -> %v)", i, lastX, e.X)
		}
		lastX = e.X
		if e.Y < e.BaseY-e.cfg.BobAmp-0.01 || e.Y > e.BaseY+e.cfg.BobAmp+0.01 {
			t.Fatalf("frame %d: Y %v left the bob band around %v", i, e.Y, e.BaseY)
		}
	}
}

func TestZigzagEnemyReflectsAtBandEdges(t *testing.T) {
	w := newTestWorld(4)
	e := NewEnemy(EnemyZigzag, 5000, 300, 0, 1.0)
	e.Phase = PhaseActive
	w.AddEnemy(e)

	top, bottom := e.Y, e.Y
	for i := 0; i < 600; i++ {
		e.Update(1.0, w)
		if e.Y < top {
			top = e.Y
		}
		if e.Y > bottom {
			bottom = e.Y
		}
		if e.Y < e.BaseY-e.cfg.ZigAmp-0.01 || e.Y > e.BaseY+e.cfg.ZigAmp+0.01 {
			t.Fatalf("frame %d: Y %v left the zigzag band", i, e.Y)
		}
	}

	// The pattern must actually sweep the band, not sit still
	if bottom-top < e.cfg.ZigAmp {
		t.Errorf("zigzag swept only %v px, want most of the %v band", bottom-top, 2*e.cfg.ZigAmp)
	}
}

func TestEnemyDespawnsPastLeftEdge(t *testing.T) {
	w := newTestWorld(5)
	e := NewEnemy(EnemyBasic, -200, 200, 0, 1.0)
	e.Phase = PhaseActive
	w.AddEnemy(e)

	e.Update(1.0, w)
	if e.Phase != PhaseRemoved {
		t.Errorf("off-screen enemy phase = %s, want removed", e.Phase)
	}
}

func TestEnemyFireCadence(t *testing.T) {
	w := newTestWorld(6)
	e := NewEnemy(EnemyBasic, 5000, 200, 0, 1.0)
	e.Phase = PhaseActive
	w.AddEnemy(e)

	interval := GetEnemyConfig(EnemyBasic).FireInterval
	for i := 0.0; i < interval-1; i++ {
		e.Update(1.0, w)
	}
	w.flushProjectiles()
	if len(w.Projectiles) != 0 {
		t.Fatalf("shots before the interval elapsed = %d, want 0", len(w.Projectiles))
	}

	for i := 0; i < 3; i++ {
		e.Update(1.0, w)
	}
	w.flushProjectiles()
	if len(w.Projectiles) != 1 {
		t.Fatalf("shots after the interval = %d, want 1", len(w.Projectiles))
	}
	if w.Projectiles[0].Kind != ProjectileEnemyShot {
		t.Errorf("shot kind = %v, want enemy shot", w.Projectiles[0].Kind)
	}

	// Aggression shortens the interval
	e2 := NewEnemy(EnemyBasic, 5000, 200, 0, 1.0)
	e2.Phase = PhaseAggressive
	w2 := newTestWorld(6)
	w2.AddEnemy(e2)
	for i := 0.0; i < interval*aggressiveFireFactor+2; i++ {
		e2.Update(1.0, w2)
	}
	w2.flushProjectiles()
	if len(w2.Projectiles) == 0 {
		t.Error("aggressive enemy did not fire within the shortened interval")
	}
}

func TestZigzagNeverFires(t *testing.T) {
	w := newTestWorld(7)
	e := NewEnemy(EnemyZigzag, 5000, 300, 0, 1.0)
	e.Phase = PhaseActive
	w.AddEnemy(e)

	for i := 0; i < 1000; i++ {
		e.Update(1.0, w)
	}
	w.flushProjectiles()
	if len(w.Projectiles) != 0 {
		t.Errorf("zigzag enemy fired %d shots, want 0", len(w.Projectiles))
	}
}

func TestEnemyHoldsFireOnDeadPlayer(t *testing.T) {
	w := newTestWorld(8)
	w.Player.Exploding = true
	e := NewEnemy(EnemyBasic, 5000, 200, 0, 1.0)
	e.Phase = PhaseActive
	w.AddEnemy(e)

	for i := 0; i < 500; i++ {
		e.Update(1.0, w)
	}
	w.flushProjectiles()
	if len(w.Projectiles) != 0 {
		t.Errorf("enemy fired %d shots at an exploding player, want 0", len(w.Projectiles))
	}
}

func TestSpeedBoostScalesDrift(t *testing.T) {
	slow := NewEnemy(EnemyBasic, 1000, 200, 0, 1.0)
	fast := NewEnemy(EnemyBasic, 1000, 200, 0, 1.5)
	slow.Phase = PhaseActive
	fast.Phase = PhaseActive

	for i := 0; i < 50; i++ {
		slow.Update(1.0, nil)
		fast.Update(1.0, nil)
	}
	if fast.X >= slow.X {
		t.Errorf("boosted enemy X = %v, want left of baseline %v", fast.X, slow.X)
	}
}
