package game

import "testing"

func TestCheckCollision(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Rect
		padding float64
		want    bool
	}{
		{
			name: "clear overlap",
			a:    Rect{X: 0, Y: 0, W: 100, H: 100},
			b:    Rect{X: 50, Y: 50, W: 100, H: 100},
			want: true,
		},
		{
			name: "far apart",
			a:    Rect{X: 0, Y: 0, W: 100, H: 100},
			b:    Rect{X: 300, Y: 0, W: 100, H: 100},
			want: false,
		},
		{
			name: "edges touching is not a hit",
			a:    Rect{X: 0, Y: 0, W: 100, H: 100},
			b:    Rect{X: 100, Y: 0, W: 100, H: 100},
			want: false,
		},
		{
			name:    "padding eats a graze",
			a:       Rect{X: 0, Y: 0, W: 100, H: 100},
			b:       Rect{X: 90, Y: 0, W: 100, H: 100},
			padding: 10,
			want:    false,
		},
		{
			name:    "padding leaves a real overlap",
			a:       Rect{X: 0, Y: 0, W: 100, H: 100},
			b:       Rect{X: 70, Y: 0, W: 100, H: 100},
			padding: 10,
			want:    true,
		},
		{
			name: "vertical separation",
			a:    Rect{X: 0, Y: 0, W: 100, H: 100},
			b:    Rect{X: 0, Y: 150, W: 100, H: 100},
			want: false,
		},
		{
			// The padding would swallow these boxes whole; the inset cap
			// keeps a core so they can still collide
			name:    "small boxes survive big padding",
			a:       Rect{X: 0, Y: 0, W: 10, H: 10},
			b:       Rect{X: 1, Y: 1, W: 10, H: 10},
			padding: collisionPadding,
			want:    true,
		},
		{
			name:    "small boxes still separate",
			a:       Rect{X: 0, Y: 0, W: 10, H: 10},
			b:       Rect{X: 6, Y: 6, W: 10, H: 10},
			padding: collisionPadding,
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checkCollision(tt.a, tt.b, tt.padding); got != tt.want {
				t.Errorf("checkCollision(%+v, %+v, %v) = %v, want %v",
					tt.a, tt.b, tt.padding, got, tt.want)
			}
			// Overlap is symmetric
			if got := checkCollision(tt.b, tt.a, tt.padding); got != tt.want {
				t.Errorf("checkCollision(%+v, %+v, %v) = %v, want %v",
					tt.b, tt.a, tt.padding, got, tt.want)
			}
		})
	}
}

func TestRectInset(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 100, H: 60}

	got := r.inset(5)
	want := Rect{X: 15, Y: 15, W: 90, H: 50}
	if got != want {
		t.Errorf("inset(5) = %+v, want %+v", got, want)
	}

	// Padding above the cap clamps to 40% of the short side
	got = r.inset(50)
	want = Rect{X: 34, Y: 34, W: 52, H: 12}
	if got != want {
		t.Errorf("inset(50) = %+v, want %+v", got, want)
	}
	if got.W <= 0 || got.H <= 0 {
		t.Errorf("inset inverted the box: %+v", got)
	}
}

func TestApproachingCityEnemyIsScenery(t *testing.T) {
	g := newTestGame(t, 41)
	pressStart(t, g)
	p := g.world.Player

	e := NewEnemy(EnemyCity, p.X, p.Y, 0, 1.0)
	e.TargetAltitude = p.Y
	g.world.AddEnemy(e)
	if e.Phase != PhaseApproaching {
		t.Fatalf("fresh city enemy phase = %s, want approaching", e.Phase)
	}

	// Sitting right on the player, but still rising: no contact
	g.collision.Resolve()
	if p.Lives != 3 {
		t.Fatalf("lives after overlap with approaching enemy = %d, want 3", p.Lives)
	}
	if e.Phase != PhaseApproaching {
		t.Fatalf("approaching enemy phase changed to %s", e.Phase)
	}

	// Once on station it is a real threat
	e.Phase = PhaseReady
	g.collision.Resolve()
	if p.Lives != 2 {
		t.Errorf("lives after overlap with ready enemy = %d, want 2", p.Lives)
	}
	if e.Phase != PhaseExploding {
		t.Errorf("ready enemy after ramming = %s, want exploding", e.Phase)
	}
}

func TestProjectilePassRunsBeforeBodyContact(t *testing.T) {
	g := newTestGame(t, 43)
	pressStart(t, g)
	p := g.world.Player

	// An enemy one hit from death overlaps the player and a bullet in the
	// same frame. The bullet pass lands first, so the frame is a kill, not
	// a collision.
	e := addActiveEnemy(g, EnemyBasic, p.X, p.Y)
	e.Phase = PhaseAggressive
	bullet := NewBullet(e.X+e.W/2, e.Y+e.H/2, FacingRight)
	g.world.Projectiles = append(g.world.Projectiles, bullet)

	g.collision.Resolve()

	if e.Phase != PhaseExploding {
		t.Fatalf("enemy phase = %s, want exploding", e.Phase)
	}
	if p.Lives != 3 {
		t.Errorf("lives = %d, want 3: the kill should preempt body contact", p.Lives)
	}
	if g.score != e.Score() {
		t.Errorf("score = %d, want %d from the kill", g.score, e.Score())
	}
	if bullet.Active {
		t.Error("bullet should be spent")
	}
}

func TestShootingDownPickup(t *testing.T) {
	g := newTestGame(t, 47)
	pressStart(t, g)

	pk := NewPickup(PickupAmmo, 400, 2)
	pk.Y = 200
	pk.X = 400
	g.world.AddPickup(pk)
	bullet := NewBullet(pk.X+pk.W/2, pk.Y+pk.H/2, FacingRight)
	g.world.Projectiles = append(g.world.Projectiles, bullet)

	before := g.heatseekers
	g.collision.Resolve()

	if pk.Active {
		t.Error("shot pickup still active")
	}
	if bullet.Active {
		t.Error("bullet should be spent on the pickup")
	}
	if g.heatseekers != before+g.config.AmmoPerCrate {
		t.Errorf("heatseekers = %d, want %d", g.heatseekers, before+g.config.AmmoPerCrate)
	}
}

func TestEnemyShotsIgnoreEnemies(t *testing.T) {
	g := newTestGame(t, 53)
	pressStart(t, g)

	e := addActiveEnemy(g, EnemyBasic, 400, 200)
	shot := NewEnemyShot(e.X+e.W/2, e.Y+e.H/2)
	g.world.Projectiles = append(g.world.Projectiles, shot)

	g.collision.Resolve()

	if !shot.Active {
		t.Error("enemy shot spent on an enemy")
	}
	if e.Phase != PhaseActive {
		t.Errorf("enemy phase = %s, want active: friendly fire is off", e.Phase)
	}
}
