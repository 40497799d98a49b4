package game

import (
	"image/color"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	windowW       = 6.0
	windowH       = 8.0
	windowGapX    = 12.0
	windowGapY    = 16.0
	windowFlicker = 1.0 / 600.0

	// burnChance marks buildings already on fire when the city generates
	burnChance = 0.18
	burnEmit   = 6.0
)

// Window is one spot on a building facade. Lit windows glow at night.
type Window struct {
	X, Y float64 // Relative to the building's top-left
	Lit  bool
}

// Building is one tower of the skyline
type Building struct {
	X, W, H float64
	Shade   uint8
	Windows []Window
	Burning bool
}

// City is the battered skyline the enemies rise out of. It is scenery
// with two moving parts: window lights that flicker, and fires that feed
// the particle pool.
type City struct {
	Buildings []Building
	width     float64
	groundY   float64
	burnAcc   float64
}

// NewCity generates a skyline spanning the canvas width
func NewCity(cfg Config, rng *rand.Rand) *City {
	c := &City{width: float64(cfg.ScreenWidth), groundY: cfg.GroundY}

	x := -20.0
	sw := float64(cfg.ScreenWidth)
	for x < sw {
		w := 42 + rng.Float64()*55
		h := 70 + rng.Float64()*170
		b := Building{
			X:       x,
			W:       w,
			H:       h,
			Shade:   uint8(26 + rng.Intn(20)),
			Burning: rng.Float64() < burnChance,
		}

		cols := int((w - windowGapX) / windowGapX)
		rows := int((h - windowGapY) / windowGapY)
		for cx := 0; cx < cols; cx++ {
			for cy := 0; cy < rows; cy++ {
				b.Windows = append(b.Windows, Window{
					X:   windowGapX*0.7 + float64(cx)*windowGapX,
					Y:   windowGapY*0.6 + float64(cy)*windowGapY,
					Lit: rng.Float64() < 0.35,
				})
			}
		}

		c.Buildings = append(c.Buildings, b)
		x += w + 4 + rng.Float64()*14
	}
	return c
}

// Update flickers windows and feeds the building fires
func (c *City) Update(mult float64, w *World) {
	for i := range c.Buildings {
		b := &c.Buildings[i]
		for j := range b.Windows {
			if w.Rand.Float64() < windowFlicker*mult {
				b.Windows[j].Lit = !b.Windows[j].Lit
			}
		}
	}

	c.burnAcc += mult
	if c.burnAcc < burnEmit {
		return
	}
	c.burnAcc = 0
	for i := range c.Buildings {
		b := &c.Buildings[i]
		if !b.Burning {
			continue
		}
		fx := b.X + b.W/2
		fy := c.groundY - b.H
		emitFlame(&w.Particles, fx, fy, w.Rand)
		if w.Rand.Float64() < 0.5 {
			emitSmoke(&w.Particles, fx, fy-6, w.Rand)
		}
	}
}

// Draw renders the skyline. Window glow strengthens at night.
func (c *City) Draw(dst *ebiten.Image, night bool) {
	for i := range c.Buildings {
		b := &c.Buildings[i]
		top := c.groundY - b.H
		body := color.NRGBA{R: b.Shade, G: b.Shade, B: b.Shade + 10, A: 255}
		vector.DrawFilledRect(dst, float32(b.X), float32(top), float32(b.W), float32(b.H), body, true)

		var lit color.NRGBA
		if night {
			lit = color.NRGBA{R: 255, G: 220, B: 120, A: 230}
		} else {
			lit = color.NRGBA{R: 200, G: 190, B: 150, A: 70}
		}
		dark := color.NRGBA{R: 15, G: 15, B: 25, A: 200}

		for j := range b.Windows {
			win := &b.Windows[j]
			col := dark
			if win.Lit {
				col = lit
			}
			vector.DrawFilledRect(dst, float32(b.X+win.X), float32(top+win.Y),
				float32(windowW), float32(windowH), col, true)
		}
	}

	// Ground strip under the skyline
	vector.DrawFilledRect(dst, 0, float32(c.groundY), float32(c.width), 60,
		color.NRGBA{R: 22, G: 22, B: 30, A: 255}, true)
}
