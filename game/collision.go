package game

import "math"

const (
	// collisionPadding compensates for the transparent margin baked into
	// the sprite art. Both boxes shrink by it from all four sides before
	// the overlap test, so grazing sprites do not register.
	collisionPadding = 22.0

	// Smaller insets for pairs involving projectiles and pickups, whose
	// boxes are already close to their visible pixels
	projectilePadding = 6.0
	shotPadding       = 8.0
	pickupPadding     = 10.0

	// insetLimit caps how much of a box the padding may eat per side, so
	// small boxes keep a usable core instead of inverting
	insetLimit = 0.4
)

// Rect is an axis-aligned box in canvas coordinates
type Rect struct {
	X, Y, W, H float64
}

// inset shrinks the box by pad from all four sides, clamped so the box
// never inverts
func (r Rect) inset(pad float64) Rect {
	limit := insetLimit * math.Min(r.W, r.H)
	if pad > limit {
		pad = limit
	}
	return Rect{
		X: r.X + pad,
		Y: r.Y + pad,
		W: r.W - 2*pad,
		H: r.H - 2*pad,
	}
}

// checkCollision reports whether the two boxes overlap after both are
// inset by padding
func checkCollision(a, b Rect, padding float64) bool {
	a = a.inset(padding)
	b = b.inset(padding)
	return a.X < b.X+b.W &&
		a.X+a.W > b.X &&
		a.Y < b.Y+b.H &&
		a.Y+a.H > b.Y
}

// CollisionSystem runs the per-frame overlap passes and dispatches each
// hit to the game's resolution handlers
type CollisionSystem struct {
	world *World
	game  *Game
}

// NewCollisionSystem creates a collision system for the given world
func NewCollisionSystem(world *World) *CollisionSystem {
	return &CollisionSystem{world: world}
}

// SetGame wires the system to the game so resolutions can mutate score,
// lives and effects
func (c *CollisionSystem) SetGame(game *Game) {
	c.game = game
}

// Resolve checks every collision pair for the frame. Pass order matters:
// projectile hits land before body contact, so shooting an enemy the same
// frame it reaches the player counts as a kill, not a collision.
func (c *CollisionSystem) Resolve() {
	c.playerProjectilesVsEnemies()
	c.playerProjectilesVsPickups()
	c.playerVsEnemies()
	c.enemyShotsVsPlayer()
	c.playerVsPickups()
}

func (c *CollisionSystem) playerProjectilesVsEnemies() {
	for _, proj := range c.world.Projectiles {
		if !proj.Active || proj.Kind == ProjectileEnemyShot {
			continue
		}
		for _, enemy := range c.world.Enemies {
			if !enemy.Collidable() {
				continue
			}
			if !checkCollision(proj.Bounds(), enemy.Bounds(), projectilePadding) {
				continue
			}
			proj.Active = false
			c.game.hitEnemy(enemy, proj.Kind == ProjectileHeatseeker)
			break
		}
	}
}

func (c *CollisionSystem) playerProjectilesVsPickups() {
	for _, proj := range c.world.Projectiles {
		if !proj.Active || proj.Kind == ProjectileEnemyShot {
			continue
		}
		for _, pickup := range c.world.Pickups {
			if !pickup.Active {
				continue
			}
			if !checkCollision(proj.Bounds(), pickup.Bounds(), projectilePadding) {
				continue
			}
			proj.Active = false
			c.game.collectPickup(pickup)
			break
		}
	}
}

func (c *CollisionSystem) playerVsEnemies() {
	player := c.world.Player
	if player == nil || player.Exploding {
		return
	}
	for _, enemy := range c.world.Enemies {
		if !enemy.Collidable() {
			continue
		}
		if !checkCollision(player.Bounds(), enemy.Bounds(), collisionPadding) {
			continue
		}
		c.game.rammedEnemy(enemy)
		c.game.hurtPlayer()
	}
}

func (c *CollisionSystem) enemyShotsVsPlayer() {
	player := c.world.Player
	if player == nil || player.Exploding {
		return
	}
	for _, proj := range c.world.Projectiles {
		if !proj.Active || proj.Kind != ProjectileEnemyShot {
			continue
		}
		if !checkCollision(proj.Bounds(), player.Bounds(), shotPadding) {
			continue
		}
		proj.Active = false
		c.game.hurtPlayer()
	}
}

func (c *CollisionSystem) playerVsPickups() {
	player := c.world.Player
	if player == nil || player.Exploding {
		return
	}
	for _, pickup := range c.world.Pickups {
		if !pickup.Active {
			continue
		}
		if !checkCollision(player.Bounds(), pickup.Bounds(), pickupPadding) {
			continue
		}
		c.game.collectPickup(pickup)
	}
}
