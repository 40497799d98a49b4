package game

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	starCount  = 70
	cloudCount = 6

	// cometChance is the per-frame odds of a new comet or shooting star
	cometChance = 1.0 / 2400.0
)

// Star is one background pinprick. Stars only show against dark sky.
type Star struct {
	X, Y    float64
	Size    float64
	Drift   float64
	Twinkle float64
}

// Cloud is a parallax blob drifting left at its own layer speed
type Cloud struct {
	X, Y  float64
	W, H  float64
	Speed float64
	Alpha uint8
}

// Comet streaks across the upper sky. Fast ones read as shooting stars,
// slow ones drag a long tail.
type Comet struct {
	X, Y   float64
	VX, VY float64
	Life   float64
	Tail   float64
}

// Floater is rising score text spawned where an enemy died
type Floater struct {
	X, Y   float64
	Text   string
	Life   float64
	Active bool
}

const floaterLife = 45.0

func newStars(cfg Config, rng *rand.Rand) []Star {
	stars := make([]Star, starCount)
	for i := range stars {
		stars[i] = Star{
			X:       rng.Float64() * float64(cfg.ScreenWidth),
			Y:       rng.Float64() * cfg.GroundY * 0.7,
			Size:    0.5 + rng.Float64()*1.5,
			Drift:   0.05 + rng.Float64()*0.1,
			Twinkle: rng.Float64() * 2 * math.Pi,
		}
	}
	return stars
}

func newClouds(cfg Config, rng *rand.Rand) []Cloud {
	clouds := make([]Cloud, cloudCount)
	for i := range clouds {
		clouds[i] = Cloud{
			X:     rng.Float64() * float64(cfg.ScreenWidth),
			Y:     40 + rng.Float64()*180,
			W:     90 + rng.Float64()*120,
			H:     22 + rng.Float64()*18,
			Speed: 0.15 + rng.Float64()*0.35,
			Alpha: uint8(40 + rng.Intn(50)),
		}
	}
	return clouds
}

// updateDecor drifts the parallax layers and occasionally launches a comet
func (w *World) updateDecor(mult float64) {
	sw := float64(w.Config.ScreenWidth)

	for i := range w.Stars {
		s := &w.Stars[i]
		s.X -= s.Drift * mult
		s.Twinkle += 0.04 * mult
		if s.X < -2 {
			s.X = sw + 2
			s.Y = w.Rand.Float64() * w.Config.GroundY * 0.7
		}
	}

	for i := range w.Clouds {
		c := &w.Clouds[i]
		c.X -= c.Speed * mult
		if c.X+c.W < 0 {
			c.X = sw
			c.Y = 40 + w.Rand.Float64()*180
		}
	}

	if w.Rand.Float64() < cometChance*mult {
		w.spawnComet()
	}
	kept := w.Comets[:0]
	for i := range w.Comets {
		c := &w.Comets[i]
		c.X += c.VX * mult
		c.Y += c.VY * mult
		c.Life -= mult
		if c.Life > 0 && c.X > -100 && c.Y < w.Config.GroundY {
			kept = append(kept, *c)
		}
	}
	w.Comets = kept
}

func (w *World) spawnComet() {
	sw := float64(w.Config.ScreenWidth)
	if w.Rand.Float64() < 0.5 {
		// Shooting star: fast, short-lived
		w.Comets = append(w.Comets, Comet{
			X:    w.Rand.Float64() * sw,
			Y:    20 + w.Rand.Float64()*120,
			VX:   -6 - w.Rand.Float64()*4,
			VY:   2 + w.Rand.Float64()*2,
			Life: 40,
			Tail: 18,
		})
		return
	}
	w.Comets = append(w.Comets, Comet{
		X:    sw + 40,
		Y:    30 + w.Rand.Float64()*150,
		VX:   -1.2 - w.Rand.Float64(),
		VY:   0.3 + w.Rand.Float64()*0.3,
		Life: 600,
		Tail: 46,
	})
}

// updateFloaters rises and expires the score text
func (w *World) updateFloaters(mult float64) {
	for _, f := range w.Floaters {
		f.Y -= 1.0 * mult
		f.Life -= mult
		if f.Life <= 0 {
			f.Active = false
		}
	}
}

// drawDecor renders stars, clouds and comets. Star brightness follows the
// sky's darkness so they fade out at noon.
func (w *World) drawDecor(dst *ebiten.Image) {
	darkness := w.Sky.Darkness()

	if darkness > 0.05 {
		for i := range w.Stars {
			s := &w.Stars[i]
			a := (0.5 + 0.5*math.Sin(s.Twinkle)) * darkness
			c := color.NRGBA{R: 255, G: 255, B: 240, A: uint8(a * 255)}
			vector.DrawFilledCircle(dst, float32(s.X), float32(s.Y), float32(s.Size), c, true)
		}
	}

	for i := range w.Clouds {
		c := &w.Clouds[i]
		col := color.NRGBA{R: 235, G: 238, B: 245, A: c.Alpha}
		vector.DrawFilledRect(dst, float32(c.X), float32(c.Y), float32(c.W), float32(c.H), col, true)
		vector.DrawFilledCircle(dst, float32(c.X+c.W*0.3), float32(c.Y), float32(c.H*0.9), col, true)
		vector.DrawFilledCircle(dst, float32(c.X+c.W*0.7), float32(c.Y+2), float32(c.H*0.7), col, true)
	}

	for i := range w.Comets {
		c := &w.Comets[i]
		mag := math.Hypot(c.VX, c.VY)
		if mag == 0 {
			continue
		}
		tx := c.X - c.VX/mag*c.Tail
		ty := c.Y - c.VY/mag*c.Tail
		vector.StrokeLine(dst, float32(tx), float32(ty), float32(c.X), float32(c.Y), 2,
			color.NRGBA{R: 255, G: 250, B: 210, A: 140}, true)
		vector.DrawFilledCircle(dst, float32(c.X), float32(c.Y), 2.5,
			color.NRGBA{R: 255, G: 255, B: 230, A: 230}, true)
	}
}
