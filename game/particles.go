package game

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const maxParticles = 700

// Particle is one short-lived visual fleck. Particles never affect
// gameplay; they are skipped entirely when the pool is full.
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Life    float64
	MaxLife float64
	Size    float64
	Gravity float64
	Color   color.NRGBA
}

// ParticlePool owns every live particle. Emission silently drops when the
// pool is at capacity rather than growing without bound.
type ParticlePool struct {
	items []Particle
}

// Emit adds one particle if there is room
func (pp *ParticlePool) Emit(p Particle) {
	if len(pp.items) >= maxParticles {
		return
	}
	if p.MaxLife <= 0 {
		p.MaxLife = p.Life
	}
	pp.items = append(pp.items, p)
}

// Update advances every particle and compacts the dead ones away
func (pp *ParticlePool) Update(mult float64) {
	kept := pp.items[:0]
	for i := range pp.items {
		p := &pp.items[i]
		p.Life -= mult
		if p.Life <= 0 {
			continue
		}
		p.VY += p.Gravity * mult
		p.X += p.VX * mult
		p.Y += p.VY * mult
		kept = append(kept, *p)
	}
	pp.items = kept
}

// Len reports the live particle count
func (pp *ParticlePool) Len() int {
	return len(pp.items)
}

// Clear drops every particle
func (pp *ParticlePool) Clear() {
	pp.items = pp.items[:0]
}

// Draw renders every particle as a fading disc
func (pp *ParticlePool) Draw(dst *ebiten.Image) {
	for i := range pp.items {
		p := &pp.items[i]
		fade := p.Life / p.MaxLife
		c := p.Color
		c.A = uint8(float64(c.A) * fade)
		vector.DrawFilledCircle(dst, float32(p.X), float32(p.Y), float32(p.Size*fade+0.5), c, true)
	}
}

// emitExplosion is the full destruction burst
func emitExplosion(pp *ParticlePool, x, y float64, base color.NRGBA, rng *rand.Rand) {
	for i := 0; i < 22; i++ {
		angle := rng.Float64() * 2 * math.Pi
		speed := 1.0 + rng.Float64()*3.5
		c := base
		if i%3 == 0 {
			c = color.NRGBA{R: 255, G: 230, B: 150, A: 255}
		}
		pp.Emit(Particle{
			X: x, Y: y,
			VX:      math.Cos(angle) * speed,
			VY:      math.Sin(angle) * speed,
			Life:    20 + rng.Float64()*25,
			Size:    2 + rng.Float64()*3,
			Gravity: 0.04,
			Color:   c,
		})
	}
}

// emitDamageBurst marks a non-lethal hit
func emitDamageBurst(pp *ParticlePool, x, y float64, rng *rand.Rand) {
	for i := 0; i < 10; i++ {
		angle := rng.Float64() * 2 * math.Pi
		speed := 0.8 + rng.Float64()*2.2
		pp.Emit(Particle{
			X: x, Y: y,
			VX:    math.Cos(angle) * speed,
			VY:    math.Sin(angle) * speed,
			Life:  12 + rng.Float64()*14,
			Size:  1.5 + rng.Float64()*2,
			Color: color.NRGBA{R: 255, G: 120, B: 90, A: 255},
		})
	}
}

// emitFireTrail streams off aggressive enemies
func emitFireTrail(pp *ParticlePool, x, y float64, rng *rand.Rand) {
	pp.Emit(Particle{
		X:     x + rng.Float64()*6 - 3,
		Y:     y + rng.Float64()*6 - 3,
		VX:    0.6 + rng.Float64()*0.8,
		VY:    -0.3 + rng.Float64()*0.6,
		Life:  14 + rng.Float64()*10,
		Size:  1.5 + rng.Float64()*2,
		Color: color.NRGBA{R: 255, G: uint8(100 + rng.Intn(100)), B: 40, A: 220},
	})
}

// emitThrust is the heatseeker exhaust
func emitThrust(pp *ParticlePool, x, y float64, rng *rand.Rand) {
	pp.Emit(Particle{
		X: x, Y: y,
		VX:    rng.Float64()*0.8 - 0.4,
		VY:    rng.Float64()*0.8 - 0.4,
		Life:  10 + rng.Float64()*8,
		Size:  1.5 + rng.Float64(),
		Color: color.NRGBA{R: 255, G: 200, B: 120, A: 200},
	})
}

// emitDashTrail streaks behind a dashing player
func emitDashTrail(pp *ParticlePool, x, y float64, facing Facing, rng *rand.Rand) {
	dir := -1.0
	if facing == FacingLeft {
		dir = 1.0
	}
	pp.Emit(Particle{
		X:     x,
		Y:     y + rng.Float64()*16 - 8,
		VX:    dir * (0.8 + rng.Float64()),
		Life:  10 + rng.Float64()*6,
		Size:  2 + rng.Float64()*2,
		Color: color.NRGBA{R: 140, G: 210, B: 255, A: 180},
	})
}

// emitLandingDust puffs at the ground contact point
func emitLandingDust(pp *ParticlePool, x, groundY float64, rng *rand.Rand) {
	for i := 0; i < 6; i++ {
		dir := 1.0
		if i%2 == 0 {
			dir = -1.0
		}
		pp.Emit(Particle{
			X:     x,
			Y:     groundY - 2,
			VX:    dir * (0.5 + rng.Float64()*1.2),
			VY:    -0.3 - rng.Float64()*0.5,
			Life:  12 + rng.Float64()*8,
			Size:  1.5 + rng.Float64()*1.5,
			Color: color.NRGBA{R: 150, G: 140, B: 130, A: 160},
		})
	}
}

// emitSparkle celebrates a collected pickup
func emitSparkle(pp *ParticlePool, x, y float64, base color.NRGBA, rng *rand.Rand) {
	for i := 0; i < 14; i++ {
		angle := rng.Float64() * 2 * math.Pi
		speed := 0.8 + rng.Float64()*2
		pp.Emit(Particle{
			X: x, Y: y,
			VX:      math.Cos(angle) * speed,
			VY:      math.Sin(angle)*speed - 0.8,
			Life:    16 + rng.Float64()*16,
			Size:    1.5 + rng.Float64()*2,
			Gravity: 0.03,
			Color:   base,
		})
	}
}

// emitFlame feeds the burning buildings in the skyline
func emitFlame(pp *ParticlePool, x, y float64, rng *rand.Rand) {
	pp.Emit(Particle{
		X:     x + rng.Float64()*10 - 5,
		Y:     y,
		VX:    rng.Float64()*0.4 - 0.2,
		VY:    -0.6 - rng.Float64()*0.8,
		Life:  18 + rng.Float64()*14,
		Size:  2 + rng.Float64()*2.5,
		Color: color.NRGBA{R: 255, G: uint8(110 + rng.Intn(90)), B: 30, A: 210},
	})
}

// emitSmoke drifts above the flames
func emitSmoke(pp *ParticlePool, x, y float64, rng *rand.Rand) {
	pp.Emit(Particle{
		X:     x + rng.Float64()*12 - 6,
		Y:     y,
		VX:    0.2 + rng.Float64()*0.3,
		VY:    -0.4 - rng.Float64()*0.4,
		Life:  30 + rng.Float64()*25,
		Size:  3 + rng.Float64()*3,
		Color: color.NRGBA{R: 90, G: 90, B: 100, A: 110},
	})
}

// emitMuzzle flashes at the player's weapon
func emitMuzzle(pp *ParticlePool, x, y float64, facing Facing, rng *rand.Rand) {
	dir := 1.0
	if facing == FacingLeft {
		dir = -1.0
	}
	for i := 0; i < 3; i++ {
		pp.Emit(Particle{
			X: x, Y: y,
			VX:    dir * (1.5 + rng.Float64()),
			VY:    rng.Float64()*0.8 - 0.4,
			Life:  5 + rng.Float64()*4,
			Size:  1.5 + rng.Float64(),
			Color: color.NRGBA{R: 255, G: 240, B: 180, A: 230},
		})
	}
}
