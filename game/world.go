package game

import "math/rand"

// World owns every live entity collection for one run. All mutation is
// sequential within a frame: entities queue spawns instead of appending
// mid-iteration, and removal is a mark-then-compact pass after collision
// resolution.
type World struct {
	Config Config
	Rand   *rand.Rand

	// Frame is the scaled frame accumulator driving spawn gates and
	// animation phases. Monotonic within a run.
	Frame float64

	Player      *Player
	Enemies     []*Enemy
	Projectiles []*Projectile
	Pickups     []*Pickup
	Floaters    []*Floater
	Particles   ParticlePool

	Sky    *Sky
	City   *City
	Stars  []Star
	Clouds []Cloud
	Comets []Comet

	pendingProjectiles []*Projectile
	nextEnemyID        uint64
}

// NewWorld builds a fresh run: player on the ground, empty hostile
// collections, newly generated skyline and parallax layers
func NewWorld(cfg Config, rng *rand.Rand) *World {
	return &World{
		Config:      cfg,
		Rand:        rng,
		Player:      NewPlayer(cfg),
		Enemies:     make([]*Enemy, 0, 16),
		Projectiles: make([]*Projectile, 0, 64),
		Pickups:     make([]*Pickup, 0, 4),
		Floaters:    make([]*Floater, 0, 8),
		Sky:         NewSky(cfg),
		City:        NewCity(cfg, rng),
		Stars:       newStars(cfg, rng),
		Clouds:      newClouds(cfg, rng),
		Comets:      make([]Comet, 0, 4),
	}
}

// AddEnemy registers an enemy and assigns its ID
func (w *World) AddEnemy(e *Enemy) {
	w.nextEnemyID++
	e.ID = w.nextEnemyID
	w.Enemies = append(w.Enemies, e)
}

// AddPickup registers a pickup
func (w *World) AddPickup(p *Pickup) {
	w.Pickups = append(w.Pickups, p)
}

// AddFloater registers rising score text
func (w *World) AddFloater(x, y float64, text string) {
	w.Floaters = append(w.Floaters, &Floater{X: x, Y: y, Text: text, Life: floaterLife, Active: true})
}

// QueueProjectile defers a spawn until the current update sweep finishes,
// so firing never grows the slice being iterated
func (w *World) QueueProjectile(p *Projectile) {
	w.pendingProjectiles = append(w.pendingProjectiles, p)
}

func (w *World) flushProjectiles() {
	w.Projectiles = append(w.Projectiles, w.pendingProjectiles...)
	w.pendingProjectiles = w.pendingProjectiles[:0]
}

// EnemyByID finds a live enemy by ID. Populations are small enough that a
// scan beats bookkeeping.
func (w *World) EnemyByID(id uint64) *Enemy {
	for _, e := range w.Enemies {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// NearestTargetableEnemy returns the closest collidable enemy to a point,
// or nil when nothing can be locked
func (w *World) NearestTargetableEnemy(x, y float64) *Enemy {
	var nearest *Enemy
	best := 0.0
	for _, e := range w.Enemies {
		if !e.Collidable() {
			continue
		}
		dx := e.X + e.W/2 - x
		dy := e.Y + e.H/2 - y
		d := dx*dx + dy*dy
		if nearest == nil || d < best {
			nearest = e
			best = d
		}
	}
	return nearest
}

// ActivePickupCount reports how many pickups are falling right now
func (w *World) ActivePickupCount() int {
	n := 0
	for _, p := range w.Pickups {
		if p.Active {
			n++
		}
	}
	return n
}

// Update runs one simulation sweep: player, hostiles, projectiles,
// pickups, then the ambient layers
func (w *World) Update(mult float64, in Intent) {
	w.Frame += mult

	w.Player.Update(mult, in, w)

	for _, e := range w.Enemies {
		e.Update(mult, w)
	}
	// Shots queued during the enemy sweep start moving next frame
	w.flushProjectiles()

	for _, p := range w.Projectiles {
		p.Update(mult, w)
	}
	for _, p := range w.Pickups {
		p.Update(mult, w)
	}

	w.Particles.Update(mult)
	w.updateFloaters(mult)
	w.updateDecor(mult)
	w.Sky.Update(mult, w.Rand)
	w.City.Update(mult, w)
}

// UpdateAmbient advances only the scenery. The title and game-over
// screens run this so the sky keeps breathing behind the overlay.
func (w *World) UpdateAmbient(mult float64) {
	w.Frame += mult
	w.Particles.Update(mult)
	w.updateFloaters(mult)
	w.updateDecor(mult)
	w.Sky.Update(mult, w.Rand)
	w.City.Update(mult, w)
}

// Compact drops removed enemies, dead projectiles, collected pickups and
// expired floaters. Runs once per frame after collision resolution.
func (w *World) Compact() {
	enemies := w.Enemies[:0]
	for _, e := range w.Enemies {
		if e.Alive() {
			enemies = append(enemies, e)
		}
	}
	w.Enemies = enemies

	projectiles := w.Projectiles[:0]
	for _, p := range w.Projectiles {
		if p.Active {
			projectiles = append(projectiles, p)
		}
	}
	w.Projectiles = projectiles

	pickups := w.Pickups[:0]
	for _, p := range w.Pickups {
		if p.Active {
			pickups = append(pickups, p)
		}
	}
	w.Pickups = pickups

	floaters := w.Floaters[:0]
	for _, f := range w.Floaters {
		if f.Active {
			floaters = append(floaters, f)
		}
	}
	w.Floaters = floaters
}
