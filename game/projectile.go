package game

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ProjectileKind separates player bullets, player heatseekers and enemy
// shots. The kind also encodes ownership: enemy shots only hurt the
// player, the other two only hurt enemies.
type ProjectileKind int

const (
	ProjectileBullet ProjectileKind = iota
	ProjectileHeatseeker
	ProjectileEnemyShot
)

const (
	bulletW     = 14.0
	bulletH     = 6.0
	bulletSpeed = 9.0

	heatseekerW           = 20.0
	heatseekerH           = 10.0
	heatseekerLaunchSpeed = 3.0
	heatseekerMaxSpeed    = 7.0
	heatseekerAccel       = 0.25
	heatseekerTurnRate    = 0.08
	heatseekerLifeFrames  = 600.0

	// While no target is on screen a heatseeker holds position instead of
	// flying off at its last angle
	heatseekerHoldDecay = 0.90
	heatseekerHoldDrift = 0.5

	enemyShotSize       = 10.0
	enemyShotSpeed      = 4.5
	enemyShotLifeFrames = 420.0

	projectileMargin = 40.0
	heatseekerMargin = 140.0
)

// Projectile is any shot in flight
type Projectile struct {
	Kind ProjectileKind

	X, Y   float64
	W, H   float64
	VX, VY float64

	Active bool

	// Heatseeker steering state
	Angle    float64
	Speed    float64
	Stopped  bool
	TargetID uint64

	// Life is the remaining lifespan in frames for kinds that expire;
	// bullets only die by collision or leaving the canvas
	Life float64

	bobPhase float64
	trailAcc float64
}

// NewBullet creates a straight shot leaving the player's weapon
func NewBullet(x, y float64, facing Facing) *Projectile {
	vx := bulletSpeed
	if facing == FacingLeft {
		vx = -bulletSpeed
	}
	return &Projectile{
		Kind:   ProjectileBullet,
		X:      x,
		Y:      y,
		W:      bulletW,
		H:      bulletH,
		VX:     vx,
		Active: true,
	}
}

// NewHeatseeker creates a homing missile. It launches with a slight
// upward tilt and accelerates while steering toward its target.
func NewHeatseeker(x, y float64, facing Facing) *Projectile {
	angle := -0.35
	if facing == FacingLeft {
		angle = math.Pi + 0.35
	}
	return &Projectile{
		Kind:   ProjectileHeatseeker,
		X:      x,
		Y:      y,
		W:      heatseekerW,
		H:      heatseekerH,
		Angle:  angle,
		Speed:  heatseekerLaunchSpeed,
		Life:   heatseekerLifeFrames,
		Active: true,
	}
}

// NewEnemyShot creates a plain leftward enemy shot
func NewEnemyShot(x, y float64) *Projectile {
	return &Projectile{
		Kind:   ProjectileEnemyShot,
		X:      x,
		Y:      y,
		W:      enemyShotSize,
		H:      enemyShotSize,
		VX:     -enemyShotSpeed,
		Life:   enemyShotLifeFrames,
		Active: true,
	}
}

// NewEnemyShotAt creates an enemy shot aimed at a point
func NewEnemyShotAt(x, y, targetX, targetY float64) *Projectile {
	angle := math.Atan2(targetY-y, targetX-x)
	return &Projectile{
		Kind:   ProjectileEnemyShot,
		X:      x,
		Y:      y,
		W:      enemyShotSize,
		H:      enemyShotSize,
		VX:     math.Cos(angle) * enemyShotSpeed,
		VY:     math.Sin(angle) * enemyShotSpeed,
		Life:   enemyShotLifeFrames,
		Active: true,
	}
}

// Update advances the projectile by one scaled frame
func (p *Projectile) Update(mult float64, w *World) {
	if !p.Active {
		return
	}

	if p.Kind == ProjectileHeatseeker {
		p.updateHeatseeker(mult, w)
	} else {
		p.X += p.VX * mult
		p.Y += p.VY * mult
	}

	if p.Life > 0 {
		p.Life -= mult
		if p.Life <= 0 {
			p.Active = false
			return
		}
	}

	margin := projectileMargin
	if p.Kind == ProjectileHeatseeker {
		margin = heatseekerMargin
	}
	sw := float64(w.Config.ScreenWidth)
	sh := float64(w.Config.ScreenHeight)
	if p.X+p.W < -margin || p.X > sw+margin || p.Y+p.H < -margin || p.Y > sh+margin {
		p.Active = false
	}
}

func (p *Projectile) updateHeatseeker(mult float64, w *World) {
	target := p.acquireTarget(w)

	if target == nil {
		// Holding pattern: bleed off speed and bob in place until a
		// target shows up
		p.Stopped = true
		p.Speed *= math.Pow(heatseekerHoldDecay, mult)
		if p.Speed < heatseekerHoldDrift {
			p.Speed = heatseekerHoldDrift
		}
		p.bobPhase += 0.1 * mult
		p.X += math.Cos(p.Angle) * p.Speed * mult
		p.Y += math.Sin(p.Angle)*p.Speed*mult + math.Sin(p.bobPhase)*0.4*mult
		return
	}

	p.Stopped = false
	p.TargetID = target.ID

	desired := math.Atan2(
		target.Y+target.H/2-(p.Y+p.H/2),
		target.X+target.W/2-(p.X+p.W/2),
	)
	p.Angle = rotateToward(p.Angle, desired, heatseekerTurnRate*mult)

	p.Speed += heatseekerAccel * mult
	if p.Speed > heatseekerMaxSpeed {
		p.Speed = heatseekerMaxSpeed
	}

	p.VX = math.Cos(p.Angle) * p.Speed
	p.VY = math.Sin(p.Angle) * p.Speed
	p.X += p.VX * mult
	p.Y += p.VY * mult

	p.trailAcc += mult
	if p.trailAcc >= 3 {
		p.trailAcc = 0
		emitThrust(&w.Particles, p.X+p.W/2-math.Cos(p.Angle)*p.W/2,
			p.Y+p.H/2-math.Sin(p.Angle)*p.H/2, w.Rand)
	}
}

// acquireTarget keeps the locked target while it remains valid, otherwise
// picks the nearest collidable enemy. The lock is a lookup, not
// ownership: the enemy can die independently at any time.
func (p *Projectile) acquireTarget(w *World) *Enemy {
	if p.TargetID != 0 {
		if e := w.EnemyByID(p.TargetID); e != nil && e.Collidable() {
			return e
		}
		p.TargetID = 0
	}
	return w.NearestTargetableEnemy(p.X+p.W/2, p.Y+p.H/2)
}

// Bounds returns the collision box
func (p *Projectile) Bounds() Rect {
	return Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// Draw renders the projectile
func (p *Projectile) Draw(dst *ebiten.Image, bank *SpriteBank) {
	if !p.Active {
		return
	}
	switch p.Kind {
	case ProjectileBullet:
		vector.DrawFilledRect(dst, float32(p.X), float32(p.Y), float32(p.W), float32(p.H),
			color.NRGBA{R: 120, G: 230, B: 255, A: 255}, true)
		tipX := p.X + p.W
		if p.VX < 0 {
			tipX = p.X
		}
		vector.DrawFilledCircle(dst, float32(tipX), float32(p.Y+p.H/2), float32(p.H/2),
			color.NRGBA{R: 200, G: 250, B: 255, A: 255}, true)
	case ProjectileHeatseeker:
		if img, ok := bank.Get(SpriteHeatseeker); ok {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(-p.W/2, -p.H/2)
			op.GeoM.Rotate(p.Angle)
			op.GeoM.Translate(p.X+p.W/2, p.Y+p.H/2)
			dst.DrawImage(img, op)
			return
		}
		cx := float32(p.X + p.W/2)
		cy := float32(p.Y + p.H/2)
		vector.DrawFilledCircle(dst, cx, cy, 5, color.NRGBA{R: 255, G: 200, B: 80, A: 255}, true)
		tip := float32(0.0)
		if p.Stopped {
			tip = 2
		}
		vector.DrawFilledCircle(dst, cx, cy-tip, 2.5, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, true)
	case ProjectileEnemyShot:
		vector.DrawFilledCircle(dst, float32(p.X+p.W/2), float32(p.Y+p.H/2), float32(p.W/2),
			color.NRGBA{R: 255, G: 90, B: 90, A: 255}, true)
	}
}

// rotateToward moves an angle toward a target angle by at most maxStep,
// taking the short way around the circle
func rotateToward(current, target, maxStep float64) float64 {
	diff := target - current
	for diff > math.Pi {
		diff -= 2 * math.Pi
	}
	for diff < -math.Pi {
		diff += 2 * math.Pi
	}
	if math.Abs(diff) > maxStep {
		if diff > 0 {
			diff = maxStep
		} else {
			diff = -maxStep
		}
	}
	return current + diff
}
