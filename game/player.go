package game

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Facing is the player's horizontal direction
type Facing int

const (
	FacingRight Facing = iota
	FacingLeft
)

const (
	playerWidth  = 48.0
	playerHeight = 56.0
	playerSpawnX = 120.0

	// Horizontal movement, px per reference frame
	playerRunSpeed = 4.5
	playerRunAccel = 0.6
	playerFriction = 0.82

	// Vertical movement
	playerJumpImpulse = 13.5
	playerGravity     = 0.65
	playerMaxFall     = 14.0

	// Dash burst
	playerDashSpeed    = 11.0
	playerDashFrames   = 10.0
	playerDashCooldown = 45.0

	// Damage handling, in frames
	playerInvincibleFrames = 90.0
	playerExplosionFrames  = 60.0

	// Fire cooldowns, in frames
	playerShootCooldown = 12.0
	playerRapidCooldown = 5.0

	playerRunAnimRate = 0.18
)

// Player is the controllable character. It runs on the ground plane,
// jumps, dashes and takes damage; everything else reacts to it.
type Player struct {
	X, Y   float64
	VX, VY float64
	W, H   float64

	Facing   Facing
	Grounded bool
	Jumping  bool

	// Dash state, in frames
	DashFrames   float64
	DashCooldown float64

	Lives      int
	Invincible bool
	InvTimer   float64

	Exploding     bool
	ExplodeFrames float64

	// ShootCooldown gates bullet fire; the game ticks and resets it
	ShootCooldown float64

	AnimFrame float64

	// Movement bounds derived from the config at construction
	maxX    float64
	groundY float64
}

// NewPlayer creates the player standing on the ground at the spawn column
func NewPlayer(cfg Config) *Player {
	p := &Player{
		W:       playerWidth,
		H:       playerHeight,
		X:       playerSpawnX,
		Facing:  FacingRight,
		Lives:   cfg.StartLives,
		maxX:    float64(cfg.ScreenWidth) - playerWidth,
		groundY: cfg.GroundY,
	}
	p.Y = p.groundY - p.H
	p.Grounded = true
	return p
}

// Update advances physics, timers and animation by one scaled frame
func (p *Player) Update(mult float64, in Intent, w *World) {
	if p.Exploding {
		p.ExplodeFrames -= mult
		if p.ExplodeFrames < 0 {
			p.ExplodeFrames = 0
		}
		return
	}

	scale := in.MoveScale
	if scale <= 0 {
		scale = 1.0
	}

	if p.DashFrames > 0 {
		p.DashFrames -= mult
		if w != nil {
			emitDashTrail(&w.Particles, p.X+p.W/2, p.Y+p.H/2, p.Facing, w.Rand)
		}
	} else {
		target := 0.0
		if in.MovingLeft {
			target -= playerRunSpeed * scale
			p.Facing = FacingLeft
		}
		if in.MovingRight {
			target += playerRunSpeed * scale
			p.Facing = FacingRight
		}
		if target != 0 {
			step := playerRunAccel * scale * mult
			if p.VX < target {
				p.VX = math.Min(p.VX+step, target)
			} else if p.VX > target {
				p.VX = math.Max(p.VX-step, target)
			}
		} else {
			p.VX *= math.Pow(playerFriction, mult)
			if math.Abs(p.VX) < 0.05 {
				p.VX = 0
			}
		}
	}

	if in.DashPressed && p.DashCooldown <= 0 && p.DashFrames <= 0 {
		dir := 1.0
		if p.Facing == FacingLeft {
			dir = -1.0
		}
		p.VX = playerDashSpeed * dir
		p.DashFrames = playerDashFrames
		p.DashCooldown = playerDashCooldown
	}

	if in.JumpPressed && p.Grounded {
		p.VY = -playerJumpImpulse
		p.Grounded = false
		p.Jumping = true
	}

	if !p.Grounded {
		p.VY += playerGravity * mult
		if p.VY > playerMaxFall {
			p.VY = playerMaxFall
		}
	}

	p.X += p.VX * mult
	p.Y += p.VY * mult

	if p.Y >= p.groundY-p.H {
		wasAirborne := !p.Grounded
		p.Y = p.groundY - p.H
		p.VY = 0
		p.Grounded = true
		p.Jumping = false
		if wasAirborne && w != nil {
			emitLandingDust(&w.Particles, p.X+p.W/2, p.groundY, w.Rand)
		}
	}

	if p.X < 0 {
		p.X = 0
		p.VX = 0
	}
	if p.X > p.maxX {
		p.X = p.maxX
		p.VX = 0
	}

	if p.DashCooldown > 0 {
		p.DashCooldown -= mult
		if p.DashCooldown < 0 {
			p.DashCooldown = 0
		}
	}
	if p.ShootCooldown > 0 {
		p.ShootCooldown -= mult
		if p.ShootCooldown < 0 {
			p.ShootCooldown = 0
		}
	}
	if p.Invincible {
		p.InvTimer -= mult
		if p.InvTimer <= 0 {
			p.InvTimer = 0
			p.Invincible = false
		}
	}

	if p.Grounded && p.VX != 0 {
		p.AnimFrame += playerRunAnimRate * mult
		if p.AnimFrame >= 4 {
			p.AnimFrame -= 4
		}
	} else if p.Grounded {
		p.AnimFrame = 0
	}
}

// Hit applies one point of damage. Reports false when invincibility or an
// in-progress explosion swallowed it.
func (p *Player) Hit() bool {
	if p.Invincible || p.Exploding {
		return false
	}
	p.Lives--
	if p.Lives < 0 {
		p.Lives = 0
	}
	if p.Lives == 0 {
		p.Exploding = true
		p.ExplodeFrames = playerExplosionFrames
		return true
	}
	p.Invincible = true
	p.InvTimer = playerInvincibleFrames
	return true
}

// ExplosionDone reports whether the death sequence has played out
func (p *Player) ExplosionDone() bool {
	return p.Exploding && p.ExplodeFrames <= 0
}

// Bounds returns the collision box
func (p *Player) Bounds() Rect {
	return Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// Draw renders the player, or the death explosion once lives run out
func (p *Player) Draw(dst *ebiten.Image, bank *SpriteBank) {
	if p.Exploding {
		p.drawExplosion(dst)
		return
	}

	// Blink while invincible
	if p.Invincible && int(p.InvTimer/4)%2 == 0 {
		return
	}

	if img, ok := bank.Get(SpritePlayer); ok {
		op := &ebiten.DrawImageOptions{}
		if p.Facing == FacingLeft {
			op.GeoM.Scale(-1, 1)
			op.GeoM.Translate(p.W, 0)
		}
		bob := 0.0
		if p.Grounded && p.VX != 0 {
			bob = math.Sin(p.AnimFrame*math.Pi/2) * 1.5
		}
		op.GeoM.Translate(p.X, p.Y+bob)
		dst.DrawImage(img, op)
		return
	}

	// Placeholder body with a visor stripe
	vector.DrawFilledRect(dst, float32(p.X), float32(p.Y), float32(p.W), float32(p.H),
		color.NRGBA{R: 70, G: 160, B: 220, A: 255}, true)
	visorX := p.X + p.W - 16
	if p.Facing == FacingLeft {
		visorX = p.X + 4
	}
	vector.DrawFilledRect(dst, float32(visorX), float32(p.Y+10), 12, 8,
		color.NRGBA{R: 230, G: 240, B: 255, A: 255}, true)
}

func (p *Player) drawExplosion(dst *ebiten.Image) {
	progress := 1.0 - p.ExplodeFrames/playerExplosionFrames
	cx := float32(p.X + p.W/2)
	cy := float32(p.Y + p.H/2)
	radius := float32(10 + progress*46)
	alpha := uint8(math.Max(0, 255*(1-progress)))
	vector.DrawFilledCircle(dst, cx, cy, radius,
		color.NRGBA{R: 255, G: 140, B: 40, A: alpha}, true)
	vector.DrawFilledCircle(dst, cx, cy, radius*0.55,
		color.NRGBA{R: 255, G: 230, B: 120, A: alpha}, true)
}
