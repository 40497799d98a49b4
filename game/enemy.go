package game

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// EnemyKind defines the enemy archetypes
type EnemyKind int

const (
	EnemyBasic  EnemyKind = iota // Drifts left with a sine bob
	EnemyZigzag                  // Drifts left in a triangle-wave band
	EnemyCity                    // Rises out of the skyline, then tracks and fires
)

// EnemyPhase is the lifecycle stage. Transitions only move forward.
type EnemyPhase int

const (
	PhaseSpawning    EnemyPhase = iota // Entering the canvas, not collidable
	PhaseApproaching                   // City only: rising behind the skyline
	PhaseReady                         // City only: on station, holding fire
	PhaseActive                        // In play
	PhaseAggressive                    // After the first hit: faster, angrier
	PhaseExploding                     // Death animation running
	PhaseRemoved                       // Waiting for the compact pass
)

func (p EnemyPhase) String() string {
	switch p {
	case PhaseSpawning:
		return "spawning"
	case PhaseApproaching:
		return "approaching"
	case PhaseReady:
		return "ready"
	case PhaseActive:
		return "active"
	case PhaseAggressive:
		return "aggressive"
	case PhaseExploding:
		return "exploding"
	case PhaseRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// EnemyConfig holds the per-kind tuning
type EnemyConfig struct {
	Kind   EnemyKind
	W, H   float64
	Speed  float64 // Leftward drift, px per reference frame
	Score  int
	Sprite SpriteID

	// FireInterval is frames between shots; 0 means the kind never fires
	FireInterval float64

	// Basic bob / zigzag band parameters
	BobAmp  float64
	BobRate float64
	ZigAmp  float64
	ZigRate float64

	// City approach parameters
	RiseSpeed  float64
	TrackSpeed float64
}

// GetEnemyConfig returns the tuning for an enemy kind
func GetEnemyConfig(kind EnemyKind) EnemyConfig {
	switch kind {
	case EnemyBasic:
		return EnemyConfig{
			Kind:         EnemyBasic,
			W:            64.0,
			H:            48.0,
			Speed:        2.2,
			Score:        100,
			Sprite:       SpriteEnemyBasic,
			FireInterval: 210.0,
			BobAmp:       26.0,
			BobRate:      0.045,
		}
	case EnemyZigzag:
		return EnemyConfig{
			Kind:    EnemyZigzag,
			W:       56.0,
			H:       56.0,
			Speed:   1.9,
			Score:   150,
			Sprite:  SpriteEnemyZigzag,
			ZigAmp:  70.0,
			ZigRate: 3.2,
		}
	case EnemyCity:
		return EnemyConfig{
			Kind:         EnemyCity,
			W:            72.0,
			H:            56.0,
			Speed:        0.4,
			Score:        250,
			Sprite:       SpriteEnemyCity,
			FireInterval: 140.0,
			BobAmp:       8.0,
			BobRate:      0.06,
			RiseSpeed:    1.2,
			TrackSpeed:   1.6,
		}
	default:
		return GetEnemyConfig(EnemyBasic)
	}
}

const (
	// aggressiveSpeedFactor and aggressiveFireFactor kick in after the
	// first hit
	aggressiveSpeedFactor = 1.4
	aggressiveFireFactor  = 0.6

	enemySpawnFrames   = 24.0
	enemyReadyFrames   = 40.0
	enemyExplodeFrames = 36.0

	// enemyDespawnMargin is how far past the left edge an enemy may drift
	// before the compact pass reclaims it
	enemyDespawnMargin = 80.0
)

// Enemy is one hostile unit of any kind. Behavior differences live in the
// kind switch inside Update, not in separate types.
type Enemy struct {
	ID    uint64
	Kind  EnemyKind
	Phase EnemyPhase

	X, Y float64
	W, H float64

	// BaseY anchors the bob/zigzag band; PatternPhase is the phase offset,
	// shared across a formation so members move in lockstep
	BaseY        float64
	PatternPhase float64
	zigDir       float64

	// SpeedBoost is the difficulty multiplier applied at spawn and raised
	// in place by later difficulty steps. Never decreases.
	SpeedBoost float64

	// HitsTaken only increments
	HitsTaken int

	// TargetAltitude is where a city enemy stops rising
	TargetAltitude float64

	phaseTimer float64
	fireAcc    float64
	trailAcc   float64

	cfg EnemyConfig
}

// NewEnemy creates an enemy at the given position. Basic and zigzag kinds
// enter from the right edge; city kinds rise from below the skyline.
func NewEnemy(kind EnemyKind, x, y, patternPhase, speedBoost float64) *Enemy {
	cfg := GetEnemyConfig(kind)
	e := &Enemy{
		Kind:         kind,
		X:            x,
		Y:            y,
		W:            cfg.W,
		H:            cfg.H,
		BaseY:        y,
		PatternPhase: patternPhase,
		zigDir:       1.0,
		SpeedBoost:   speedBoost,
		cfg:          cfg,
	}
	if kind == EnemyCity {
		e.Phase = PhaseApproaching
	} else {
		e.Phase = PhaseSpawning
		e.phaseTimer = enemySpawnFrames
	}
	return e
}

// speed is the current leftward drift including difficulty and aggression
func (e *Enemy) speed() float64 {
	s := e.cfg.Speed * e.SpeedBoost
	if e.Phase == PhaseAggressive {
		s *= aggressiveSpeedFactor
	}
	return s
}

// Collidable reports whether the enemy participates in collision this
// frame. Approaching city enemies are scenery; exploding ones are already
// dead.
func (e *Enemy) Collidable() bool {
	switch e.Kind {
	case EnemyCity:
		return e.Phase >= PhaseReady && e.Phase < PhaseExploding
	default:
		return e.Phase >= PhaseActive && e.Phase < PhaseExploding
	}
}

// Alive reports whether the enemy still occupies a slot in the world
func (e *Enemy) Alive() bool {
	return e.Phase != PhaseRemoved
}

// Update advances the enemy by one scaled frame
func (e *Enemy) Update(mult float64, w *World) {
	switch e.Phase {
	case PhaseSpawning:
		e.phaseTimer -= mult
		e.move(mult)
		if e.phaseTimer <= 0 {
			e.Phase = PhaseActive
		}
	case PhaseApproaching:
		e.Y -= e.cfg.RiseSpeed * mult
		if e.Y <= e.TargetAltitude {
			e.Y = e.TargetAltitude
			e.BaseY = e.Y
			e.Phase = PhaseReady
			e.phaseTimer = enemyReadyFrames
		}
	case PhaseReady:
		e.phaseTimer -= mult
		e.hover(mult, w)
		if e.phaseTimer <= 0 {
			e.Phase = PhaseActive
		}
	case PhaseActive, PhaseAggressive:
		if e.Kind == EnemyCity {
			e.hover(mult, w)
		} else {
			e.move(mult)
		}
		e.updateFire(mult, w)
		if e.Phase == PhaseAggressive {
			e.emitAngerTrail(mult, w)
		}
	case PhaseExploding:
		e.phaseTimer -= mult
		if e.phaseTimer <= 0 {
			e.Phase = PhaseRemoved
		}
	}

	if e.X+e.W < -enemyDespawnMargin && e.Phase < PhaseExploding {
		e.Phase = PhaseRemoved
	}
}

// move is the drift pattern for basic and zigzag kinds
func (e *Enemy) move(mult float64) {
	e.X -= e.speed() * mult
	e.PatternPhase += e.cfg.BobRate * mult

	switch e.Kind {
	case EnemyBasic:
		e.Y = e.BaseY + math.Sin(e.PatternPhase)*e.cfg.BobAmp
	case EnemyZigzag:
		e.Y += e.zigDir * e.cfg.ZigRate * mult
		if e.Y > e.BaseY+e.cfg.ZigAmp {
			e.Y = e.BaseY + e.cfg.ZigAmp
			e.zigDir = -1.0
		} else if e.Y < e.BaseY-e.cfg.ZigAmp {
			e.Y = e.BaseY - e.cfg.ZigAmp
			e.zigDir = 1.0
		}
	}
}

// hover keeps a city enemy on station, easing sideways toward the player
func (e *Enemy) hover(mult float64, w *World) {
	e.PatternPhase += e.cfg.BobRate * mult
	e.Y = e.BaseY + math.Sin(e.PatternPhase)*e.cfg.BobAmp

	if w == nil || w.Player == nil {
		return
	}
	track := e.cfg.TrackSpeed * e.SpeedBoost
	if e.Phase == PhaseAggressive {
		track *= aggressiveSpeedFactor
	}
	targetX := w.Player.X + w.Player.W/2 - e.W/2
	if math.Abs(targetX-e.X) > track*mult {
		if targetX > e.X {
			e.X += track * mult
		} else {
			e.X -= track * mult
		}
	}
	// Stay on the canvas while tracking
	limit := float64(w.Config.ScreenWidth) - e.W
	if e.X < 0 {
		e.X = 0
	}
	if e.X > limit {
		e.X = limit
	}
}

// updateFire accumulates toward the next shot and queues it
func (e *Enemy) updateFire(mult float64, w *World) {
	if e.cfg.FireInterval <= 0 || w == nil || w.Player == nil || w.Player.Exploding {
		return
	}
	interval := e.cfg.FireInterval
	if e.Phase == PhaseAggressive {
		interval *= aggressiveFireFactor
	}
	e.fireAcc += mult
	if e.fireAcc < interval {
		return
	}
	e.fireAcc = 0

	// City enemies aim at the player; basic ones fire straight ahead
	sx := e.X + e.W*0.2
	sy := e.Y + e.H*0.7
	if e.Kind == EnemyCity {
		w.QueueProjectile(NewEnemyShotAt(sx, sy, w.Player.X+w.Player.W/2, w.Player.Y+w.Player.H/2))
	} else {
		w.QueueProjectile(NewEnemyShot(sx, sy))
	}
}

func (e *Enemy) emitAngerTrail(mult float64, w *World) {
	if w == nil {
		return
	}
	e.trailAcc += mult
	if e.trailAcc < 4 {
		return
	}
	e.trailAcc = 0
	emitFireTrail(&w.Particles, e.X+e.W, e.Y+e.H/2, w.Rand)
}

// Hit registers one projectile hit. Lethal hits (heatseekers) skip the
// aggressive stage. Reports whether the enemy died on this hit.
func (e *Enemy) Hit(lethal bool) bool {
	if !e.Collidable() {
		return false
	}
	e.HitsTaken++
	if lethal {
		e.explode()
		return true
	}
	switch e.Phase {
	case PhaseReady, PhaseActive:
		e.Phase = PhaseAggressive
		return false
	default:
		e.explode()
		return true
	}
}

// ForceExplode destroys the enemy outright, as when it rams the player
func (e *Enemy) ForceExplode() bool {
	if e.Phase >= PhaseExploding {
		return false
	}
	e.HitsTaken++
	e.explode()
	return true
}

func (e *Enemy) explode() {
	e.Phase = PhaseExploding
	e.phaseTimer = enemyExplodeFrames
}

// Score is the point value for destroying this enemy
func (e *Enemy) Score() int {
	return e.cfg.Score
}

// Bounds returns the collision box
func (e *Enemy) Bounds() Rect {
	return Rect{X: e.X, Y: e.Y, W: e.W, H: e.H}
}

// Draw renders the enemy for its current phase
func (e *Enemy) Draw(dst *ebiten.Image, bank *SpriteBank) {
	switch e.Phase {
	case PhaseRemoved:
		return
	case PhaseExploding:
		e.drawExplosion(dst)
		return
	}

	var alpha float32 = 1.0
	if e.Phase == PhaseSpawning {
		alpha = float32(1.0 - e.phaseTimer/enemySpawnFrames)
	}
	if e.Kind == EnemyCity && e.Phase == PhaseApproaching {
		alpha = 0.55
	}

	if img, ok := bank.Get(e.cfg.Sprite); ok {
		op := &ebiten.DrawImageOptions{}
		op.ColorScale.ScaleAlpha(alpha)
		op.GeoM.Translate(e.X, e.Y)
		dst.DrawImage(img, op)
		return
	}

	// Placeholder hull, tinted red once aggressive
	body := color.NRGBA{R: 120, G: 60, B: 160, A: uint8(alpha * 255)}
	if e.Phase == PhaseAggressive {
		body = color.NRGBA{R: 200, G: 60, B: 60, A: uint8(alpha * 255)}
	}
	vector.DrawFilledRect(dst, float32(e.X), float32(e.Y), float32(e.W), float32(e.H), body, true)
}

func (e *Enemy) drawExplosion(dst *ebiten.Image) {
	progress := 1.0 - e.phaseTimer/enemyExplodeFrames
	cx := float32(e.X + e.W/2)
	cy := float32(e.Y + e.H/2)
	radius := float32(8 + progress*float64(e.W)*0.6)
	alpha := uint8(math.Max(0, 255*(1-progress)))
	vector.DrawFilledCircle(dst, cx, cy, radius,
		color.NRGBA{R: 255, G: 150, B: 50, A: alpha}, true)
	vector.DrawFilledCircle(dst, cx, cy, radius*0.5,
		color.NRGBA{R: 255, G: 240, B: 170, A: alpha}, true)
}
