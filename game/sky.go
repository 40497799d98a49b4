package game

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	skyBands    = 16
	flashFrames = 8.0
)

// skyKey is a gradient keyframe at one point of the day/night cycle
type skyKey struct {
	top    color.NRGBA
	bottom color.NRGBA
}

// Keyframes at 0, 90, 180 and 270 degrees: dawn, noon, dusk, midnight
var skyKeys = [4]skyKey{
	{top: color.NRGBA{R: 60, G: 70, B: 120, A: 255}, bottom: color.NRGBA{R: 230, G: 140, B: 100, A: 255}},
	{top: color.NRGBA{R: 100, G: 170, B: 230, A: 255}, bottom: color.NRGBA{R: 185, G: 220, B: 250, A: 255}},
	{top: color.NRGBA{R: 70, G: 60, B: 110, A: 255}, bottom: color.NRGBA{R: 240, G: 120, B: 80, A: 255}},
	{top: color.NRGBA{R: 8, G: 10, B: 30, A: 255}, bottom: color.NRGBA{R: 30, G: 35, B: 70, A: 255}},
}

// Sky owns the day/night cycle and the random all-white flash
type Sky struct {
	// Cycle wraps through [0, 360); 90 is noon, 270 is midnight
	Cycle float64

	// FlashLeft is the remaining frames of the white flash
	FlashLeft float64

	step        float64
	flashChance float64
	width       float64
	height      float64
}

// NewSky creates a sky starting at dawn
func NewSky(cfg Config) *Sky {
	return &Sky{
		step:        cfg.DayNightStep,
		flashChance: cfg.SkyFlashChance,
		width:       float64(cfg.ScreenWidth),
		height:      float64(cfg.ScreenHeight),
	}
}

// Update advances the cycle and rolls for a flash
func (s *Sky) Update(mult float64, rng *rand.Rand) {
	s.Cycle += s.step * mult
	for s.Cycle >= 360 {
		s.Cycle -= 360
	}

	if s.FlashLeft > 0 {
		s.FlashLeft -= mult
		if s.FlashLeft < 0 {
			s.FlashLeft = 0
		}
	} else if rng.Float64() < s.flashChance*mult {
		s.FlashLeft = flashFrames
	}
}

// Darkness is 0 at noon and 1 at midnight, varying smoothly between
func (s *Sky) Darkness() float64 {
	return 0.5 + 0.5*math.Cos((s.Cycle-270)*math.Pi/180)
}

// IsNight reports whether the city windows should light up
func (s *Sky) IsNight() bool {
	return s.Darkness() > 0.6
}

// Draw paints the gradient, the sun or moon, and the flash override
func (s *Sky) Draw(dst *ebiten.Image) {
	if s.FlashLeft > 0 {
		dst.Fill(color.NRGBA{R: 255, G: 255, B: 255, A: 255})
		return
	}

	top, bottom := s.palette()
	bandH := s.height / skyBands
	for i := 0; i < skyBands; i++ {
		t := float64(i) / float64(skyBands-1)
		c := lerpColor(top, bottom, t)
		vector.DrawFilledRect(dst, 0, float32(float64(i)*bandH), float32(s.width), float32(bandH+1), c, true)
	}

	s.drawOrb(dst)
}

// drawOrb arcs the sun across the day half of the cycle and the moon
// across the night half
func (s *Sky) drawOrb(dst *ebiten.Image) {
	cycle := s.Cycle
	night := cycle >= 180
	t := cycle / 180
	if night {
		t = (cycle - 180) / 180
	}
	x := float32(s.width * t)
	y := float32(s.height*0.45 - math.Sin(t*math.Pi)*s.height*0.32)

	if night {
		top, _ := s.palette()
		vector.DrawFilledCircle(dst, x, y, 16, color.NRGBA{R: 225, G: 228, B: 240, A: 255}, true)
		// Offset disc of sky color carves the crescent
		vector.DrawFilledCircle(dst, x+6, y-3, 13, top, true)
	} else {
		vector.DrawFilledCircle(dst, x, y, 22, color.NRGBA{R: 255, G: 235, B: 150, A: 90}, true)
		vector.DrawFilledCircle(dst, x, y, 15, color.NRGBA{R: 255, G: 225, B: 110, A: 255}, true)
	}
}

// palette returns the interpolated gradient endpoints for the current cycle
func (s *Sky) palette() (color.NRGBA, color.NRGBA) {
	seg := int(s.Cycle/90) % 4
	next := (seg + 1) % 4
	t := math.Mod(s.Cycle, 90) / 90
	return lerpColor(skyKeys[seg].top, skyKeys[next].top, t),
		lerpColor(skyKeys[seg].bottom, skyKeys[next].bottom, t)
}

func lerpColor(a, b color.NRGBA, t float64) color.NRGBA {
	return color.NRGBA{
		R: uint8(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: uint8(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: uint8(float64(a.B) + (float64(b.B)-float64(a.B))*t),
		A: 255,
	}
}
