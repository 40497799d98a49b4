package game

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// PickupKind defines the falling pickup categories
type PickupKind int

const (
	PickupAmmo  PickupKind = iota // Crate of heatseeker missiles
	PickupLife                    // Extra life
	PickupPower                   // Rapid-fire window
)

func (k PickupKind) String() string {
	switch k {
	case PickupAmmo:
		return "ammo"
	case PickupLife:
		return "life"
	case PickupPower:
		return "power"
	default:
		return "unknown"
	}
}

const (
	pickupSize        = 36.0
	pickupMinFall     = 1.5
	pickupMaxFall     = 2.3
	pickupSwayAmp     = 14.0
	pickupSwayRate    = 0.05
	pickupGroundLimit = 12.0
)

// Pickup is a falling collectible. The player touches it or shoots it;
// either way it is collected. One that reaches the ground is lost.
type Pickup struct {
	Kind PickupKind

	X, Y float64
	W, H float64

	Fall     float64
	Active   bool
	anchorX  float64
	swayBase float64
}

// NewPickup creates a pickup falling from above the canvas
func NewPickup(kind PickupKind, x, fall float64) *Pickup {
	return &Pickup{
		Kind:    kind,
		X:       x,
		Y:       -pickupSize,
		W:       pickupSize,
		H:       pickupSize,
		Fall:    fall,
		Active:  true,
		anchorX: x,
	}
}

// Update advances the fall and sway by one scaled frame
func (p *Pickup) Update(mult float64, w *World) {
	if !p.Active {
		return
	}
	p.Y += p.Fall * mult
	p.swayBase += pickupSwayRate * mult
	p.X = p.anchorX + math.Sin(p.swayBase)*pickupSwayAmp

	if p.Y > w.Config.GroundY-p.H+pickupGroundLimit {
		p.Active = false
	}
}

// Bounds returns the collision box
func (p *Pickup) Bounds() Rect {
	return Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// Draw renders the pickup with a soft glow so it reads against the city
func (p *Pickup) Draw(dst *ebiten.Image, bank *SpriteBank) {
	if !p.Active {
		return
	}

	glow := glowColor(p.Kind)
	vector.DrawFilledCircle(dst, float32(p.X+p.W/2), float32(p.Y+p.H/2), float32(p.W*0.75), glow, true)

	sprite := SpriteCrate
	switch p.Kind {
	case PickupLife:
		sprite = SpriteHeart
	case PickupPower:
		sprite = SpritePower
	}
	if img, ok := bank.Get(sprite); ok {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(p.X, p.Y)
		dst.DrawImage(img, op)
		return
	}

	body := bodyColor(p.Kind)
	vector.DrawFilledRect(dst, float32(p.X), float32(p.Y), float32(p.W), float32(p.H), body, true)
}

func glowColor(kind PickupKind) color.NRGBA {
	switch kind {
	case PickupLife:
		return color.NRGBA{R: 255, G: 110, B: 140, A: 50}
	case PickupPower:
		return color.NRGBA{R: 255, G: 215, B: 90, A: 50}
	default:
		return color.NRGBA{R: 110, G: 220, B: 160, A: 50}
	}
}

func bodyColor(kind PickupKind) color.NRGBA {
	switch kind {
	case PickupLife:
		return color.NRGBA{R: 230, G: 70, B: 110, A: 255}
	case PickupPower:
		return color.NRGBA{R: 250, G: 200, B: 60, A: 255}
	default:
		return color.NRGBA{R: 90, G: 190, B: 130, A: 255}
	}
}
