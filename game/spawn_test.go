package game

import (
	"math/rand"
	"testing"
)

func newTestSpawner(seed int64) (*Spawner, *World) {
	cfg := DefaultConfig()
	cfg.Headless = true
	rng := rand.New(rand.NewSource(seed))
	w := NewWorld(cfg, rng)
	return NewSpawner(cfg, w, rng), w
}

func TestDifficultyRampIsMonotonic(t *testing.T) {
	s, _ := newTestSpawner(1)
	cfg := s.cfg

	prevMax, prevInterval, prevBoost := s.Difficulty()
	for score := 0; score <= cfg.ScoreStep*20; score += 137 {
		s.applyDifficulty(score)
		maxE, interval, boost := s.Difficulty()

		if maxE < prevMax {
			t.Fatalf("score %d: enemy cap dropped %d -> %d", score, prevMax, maxE)
		}
		if interval > prevInterval {
			t.Fatalf("score %d: spawn interval rose %d -> %d", score, prevInterval, interval)
		}
		if boost < prevBoost {
			t.Fatalf("score %d: speed boost dropped %v -> %v", score, prevBoost, boost)
		}
		if maxE > cfg.MaxEnemiesCap {
			t.Fatalf("score %d: enemy cap %d above ceiling %d", score, maxE, cfg.MaxEnemiesCap)
		}
		if interval < cfg.MinEnemyInterval {
			t.Fatalf("score %d: interval %d under floor %d", score, interval, cfg.MinEnemyInterval)
		}
		if boost > cfg.SpeedBoostCap+1e-9 {
			t.Fatalf("score %d: boost %v above cap %v", score, boost, cfg.SpeedBoostCap)
		}
		prevMax, prevInterval, prevBoost = maxE, interval, boost
	}

	// Far enough along, every knob sits at its limit
	s.applyDifficulty(1_000_000)
	maxE, interval, boost := s.Difficulty()
	if maxE != cfg.MaxEnemiesCap {
		t.Errorf("terminal enemy cap = %d, want %d", maxE, cfg.MaxEnemiesCap)
	}
	if interval != cfg.MinEnemyInterval {
		t.Errorf("terminal interval = %d, want %d", interval, cfg.MinEnemyInterval)
	}
	if boost != cfg.SpeedBoostCap {
		t.Errorf("terminal boost = %v, want %v", boost, cfg.SpeedBoostCap)
	}
}

func TestDifficultyStepRaisesLiveEnemies(t *testing.T) {
	s, w := newTestSpawner(2)

	slow := NewEnemy(EnemyBasic, 700, 200, 0, 1.0)
	fast := NewEnemy(EnemyBasic, 700, 300, 0, 1.7)
	w.AddEnemy(slow)
	w.AddEnemy(fast)

	s.applyDifficulty(s.cfg.ScoreStep)
	_, _, boost := s.Difficulty()

	if slow.SpeedBoost != boost {
		t.Errorf("slow enemy boost = %v, want raised to %v", slow.SpeedBoost, boost)
	}
	// An enemy already above the ramp never slows down
	if fast.SpeedBoost != 1.7 {
		t.Errorf("fast enemy boost = %v, want untouched 1.7", fast.SpeedBoost)
	}
}

func TestSpawnCadence(t *testing.T) {
	s, w := newTestSpawner(3)

	for i := 0; i < s.cfg.EnemyInterval-1; i++ {
		s.Step(1.0, 0)
	}
	if len(w.Enemies) != 0 {
		t.Fatalf("enemies before the first interval = %d, want 0", len(w.Enemies))
	}

	for i := 0; i < 3; i++ {
		s.Step(1.0, 0)
	}
	if len(w.Enemies) == 0 {
		t.Fatal("no spawn after the interval elapsed")
	}
	if len(w.Enemies) > s.maxEnemies {
		t.Fatalf("spawned %d enemies, cap %d", len(w.Enemies), s.maxEnemies)
	}
}

func TestSpawnRespectsCap(t *testing.T) {
	s, w := newTestSpawner(4)

	// Park the world at capacity far from the despawn edge
	for i := 0; i < s.maxEnemies; i++ {
		e := NewEnemy(EnemyBasic, 5000, 150+float64(i)*60, 0, 1.0)
		e.Phase = PhaseActive
		w.AddEnemy(e)
	}

	for i := 0; i < s.cfg.EnemyInterval*3; i++ {
		s.Step(1.0, 0)
		if len(w.Enemies) > s.maxEnemies {
			t.Fatalf("frame %d: population %d over cap %d", i, len(w.Enemies), s.maxEnemies)
		}
	}
	if len(w.Enemies) != s.maxEnemies {
		t.Errorf("population = %d, want unchanged %d", len(w.Enemies), s.maxEnemies)
	}
}

func TestFormationsShareThePattern(t *testing.T) {
	type member struct {
		kind  EnemyKind
		x, y  float64
		phase float64
		boost float64
	}
	capture := func(seed int64) []member {
		s, w := newTestSpawner(seed)
		s.spawnFormation()
		got := make([]member, 0, len(w.Enemies))
		for _, e := range w.Enemies {
			got = append(got, member{kind: e.Kind, x: e.X, y: e.Y, phase: e.PatternPhase, boost: e.SpeedBoost})
		}
		return got
	}

	a := capture(99)
	b := capture(99)

	if len(a) < 3 || len(a) > 5 {
		t.Fatalf("formation size = %d, want 3 to 5", len(a))
	}
	if len(a) != len(b) {
		t.Fatalf("same seed produced different sizes: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("member %d differs across seeds: %+v vs %+v", i, a[i], b[i])
		}
	}

	// One kind per formation
	for _, m := range a[1:] {
		if m.kind != a[0].kind {
			t.Errorf("mixed kinds in one formation: %v and %v", a[0].kind, m.kind)
		}
	}

	// Formations spawn off the right edge inside the vertical play band
	for i, m := range a {
		if m.x <= float64(DefaultConfig().ScreenWidth) {
			t.Errorf("member %d at X=%v, want past the right edge", i, m.x)
		}
		if m.y < 70 || m.y > DefaultConfig().GroundY-160 {
			t.Errorf("member %d at Y=%v, outside the play band", i, m.y)
		}
	}
}

func TestFormationClampsToRoom(t *testing.T) {
	s, w := newTestSpawner(5)

	for i := 0; i < s.maxEnemies-1; i++ {
		e := NewEnemy(EnemyBasic, 5000, 150+float64(i)*60, 0, 1.0)
		e.Phase = PhaseActive
		w.AddEnemy(e)
	}

	s.spawnFormation()
	if len(w.Enemies) > s.maxEnemies {
		t.Errorf("formation pushed population to %d, cap %d", len(w.Enemies), s.maxEnemies)
	}
}

func TestPickupScheduleExclusivity(t *testing.T) {
	s, w := newTestSpawner(6)

	// Nothing drops during the grace period no matter how ripe the timers
	s.ammoAcc = 1e6
	s.lifeAcc = 1e6
	s.powerAcc = 1e6
	remaining := s.grace
	for i := 0.0; i < remaining-1; i++ {
		s.stepPickups(1.0)
	}
	if w.ActivePickupCount() != 0 {
		t.Fatalf("pickup dropped during the grace period")
	}

	// The first ripe timer wins once grace ends
	for i := 0; i < 3; i++ {
		s.stepPickups(1.0)
	}
	if got := w.ActivePickupCount(); got != 1 {
		t.Fatalf("pickups after grace = %d, want 1", got)
	}

	// Every later timer stays ripe, but the screen is occupied
	for i := 0; i < 50; i++ {
		s.stepPickups(1.0)
	}
	if got := w.ActivePickupCount(); got != 1 {
		t.Fatalf("pickups with one active = %d, want still 1", got)
	}

	// Collecting frees the slot for the next drop
	w.Pickups[0].Active = false
	s.ammoAcc = 1e6
	s.stepPickups(1.0)
	if got := w.ActivePickupCount(); got != 1 {
		t.Errorf("pickups after the slot freed = %d, want 1", got)
	}
}

func TestPickupDropPlacement(t *testing.T) {
	s, w := newTestSpawner(7)
	sw := float64(s.cfg.ScreenWidth)

	for i := 0; i < 40; i++ {
		s.dropPickup(PickupAmmo)
	}
	for i, p := range w.Pickups {
		if p.X < 80-pickupSwayAmp || p.X > sw-80+pickupSwayAmp {
			t.Errorf("drop %d at X=%v, outside the drop band", i, p.X)
		}
		if p.Y >= 0 {
			t.Errorf("drop %d starts at Y=%v, want above the canvas", i, p.Y)
		}
		if p.Fall < pickupMinFall || p.Fall > pickupMaxFall {
			t.Errorf("drop %d fall speed %v outside [%v, %v]", i, p.Fall, pickupMinFall, pickupMaxFall)
		}
	}
}
