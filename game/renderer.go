package game

import (
	"bytes"
	"fmt"
	"image/color"
	"log"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	shakeDuration  = 20.0
	shakeMagnitude = 6.0

	flashOverlayFrames = 12.0
	powerBarHeight     = 8.0
)

// Renderer owns the draw pipeline. The world renders into an offscreen
// image first so screen shake can nudge the whole scene in one blit; the
// phase overlays draw on top, unshaken.
type Renderer struct {
	cfg      Config
	worldImg *ebiten.Image

	fontSource *text.GoTextFaceSource
	hudFace    *text.GoTextFace
	smallFace  *text.GoTextFace
	bigFace    *text.GoTextFace
}

// NewRenderer builds the offscreen surface and the HUD typeface
func NewRenderer(cfg Config) *Renderer {
	r := &Renderer{
		cfg:      cfg,
		worldImg: ebiten.NewImage(cfg.ScreenWidth, cfg.ScreenHeight),
	}

	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Printf("HUD font unavailable, text disabled: %v", err)
		return r
	}
	r.fontSource = src
	r.hudFace = &text.GoTextFace{Source: src, Size: 18}
	r.smallFace = &text.GoTextFace{Source: src, Size: 13}
	r.bigFace = &text.GoTextFace{Source: src, Size: 42}
	return r
}

// Render draws one complete frame. Layer order is fixed back-to-front;
// reordering anything here breaks occlusion, most visibly the city
// enemies that must rise behind the skyline.
func (r *Renderer) Render(screen *ebiten.Image, g *Game) {
	w := g.world
	img := r.worldImg
	img.Clear()

	w.Sky.Draw(img)
	w.drawDecor(img)

	// Approaching city enemies sit behind the skyline
	for _, e := range w.Enemies {
		if e.Kind == EnemyCity && e.Phase == PhaseApproaching {
			e.Draw(img, g.sprites)
		}
	}

	w.City.Draw(img, w.Sky.IsNight())

	if g.gameActive() {
		r.drawHUD(img, g)
	}

	for _, e := range w.Enemies {
		if e.Kind == EnemyCity && e.Phase == PhaseApproaching {
			continue
		}
		e.Draw(img, g.sprites)
	}
	for _, p := range w.Projectiles {
		p.Draw(img, g.sprites)
	}
	for _, p := range w.Pickups {
		p.Draw(img, g.sprites)
	}

	w.Particles.Draw(img)
	r.drawFloaters(img, w)

	w.Player.Draw(img, g.sprites)

	op := &ebiten.DrawImageOptions{}
	if g.shakeFrames > 0 {
		mag := shakeMagnitude * g.shakeFrames / shakeDuration
		op.GeoM.Translate((rand.Float64()*2-1)*mag, (rand.Float64()*2-1)*mag)
	}
	screen.DrawImage(img, op)

	if g.flashFrames > 0 {
		c := g.flashColor
		c.A = uint8(115 * g.flashFrames / flashOverlayFrames)
		r.fill(screen, c)
	}

	if g.powerTimer > 0 {
		r.drawPowerBar(screen, g)
	}

	switch g.phase {
	case PhaseTitle:
		r.drawTitle(screen, g)
	case PhasePaused:
		r.drawPaused(screen)
	case PhaseGameOver:
		r.drawGameOver(screen, g)
	case PhaseFault:
		r.drawFault(screen, g)
	}

	if g.config.Debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS %.0f  enemies %d  particles %d",
			g.fps, len(w.Enemies), w.Particles.Len()))
	}
}

func (r *Renderer) drawHUD(dst *ebiten.Image, g *Game) {
	sw := float64(r.cfg.ScreenWidth)
	vector.DrawFilledRect(dst, 0, 0, float32(sw), float32(r.cfg.HUDHeight),
		color.NRGBA{R: 8, G: 10, B: 20, A: 165}, true)

	r.drawText(dst, fmt.Sprintf("SCORE %06d", g.score), r.hudFace, 14, 12,
		color.NRGBA{R: 240, G: 240, B: 255, A: 255})
	r.drawText(dst, fmt.Sprintf("HI %06d", g.highScore), r.smallFace, 200, 16,
		color.NRGBA{R: 170, G: 180, B: 210, A: 255})

	// Heatseeker ammo, centered
	x := sw/2 - 60
	if img, ok := g.sprites.Get(SpriteHeatseeker); ok {
		iop := &ebiten.DrawImageOptions{}
		iop.GeoM.Translate(x, 18)
		dst.DrawImage(img, iop)
	} else {
		vector.DrawFilledCircle(dst, float32(x+10), float32(r.cfg.HUDHeight/2), 6,
			color.NRGBA{R: 255, G: 200, B: 80, A: 255}, true)
	}
	r.drawText(dst, fmt.Sprintf("x %d", g.heatseekers), r.hudFace, x+30, 12,
		color.NRGBA{R: 255, G: 210, B: 120, A: 255})

	// Lives, right-aligned hearts
	for i := 0; i < g.world.Player.Lives; i++ {
		hx := sw - 34 - float64(i)*28
		if img, ok := g.sprites.Get(SpriteHeart); ok {
			iop := &ebiten.DrawImageOptions{}
			scale := 22.0 / pickupSize
			iop.GeoM.Scale(scale, scale)
			iop.GeoM.Translate(hx, 13)
			dst.DrawImage(img, iop)
		} else {
			vector.DrawFilledCircle(dst, float32(hx+11), float32(r.cfg.HUDHeight/2), 9,
				color.NRGBA{R: 235, G: 80, B: 110, A: 255}, true)
		}
	}
}

func (r *Renderer) drawFloaters(dst *ebiten.Image, w *World) {
	if r.smallFace == nil {
		return
	}
	for _, f := range w.Floaters {
		if !f.Active {
			continue
		}
		alpha := uint8(255 * f.Life / floaterLife)
		r.drawText(dst, f.Text, r.smallFace, f.X, f.Y,
			color.NRGBA{R: 255, G: 225, B: 130, A: alpha})
	}
}

func (r *Renderer) drawPowerBar(dst *ebiten.Image, g *Game) {
	sw := float64(r.cfg.ScreenWidth)
	sh := float64(r.cfg.ScreenHeight)
	frac := g.powerTimer / r.cfg.PowerUpDuration
	y := sh - 16
	vector.DrawFilledRect(dst, 16, float32(y), float32(sw-32), powerBarHeight,
		color.NRGBA{R: 40, G: 36, B: 20, A: 200}, true)
	vector.DrawFilledRect(dst, 16, float32(y), float32((sw-32)*frac), powerBarHeight,
		color.NRGBA{R: 250, G: 205, B: 60, A: 255}, true)
}

func (r *Renderer) drawTitle(screen *ebiten.Image, g *Game) {
	sw := float64(r.cfg.ScreenWidth)

	if img, ok := g.sprites.Get(SpriteLogo); ok {
		op := &ebiten.DrawImageOptions{}
		bounds := img.Bounds()
		op.GeoM.Translate((sw-float64(bounds.Dx()))/2, 120)
		screen.DrawImage(img, op)
	} else {
		r.drawCentered(screen, "GUARDIANS OF LUMARA", r.bigFace, 150,
			color.NRGBA{R: 255, G: 240, B: 200, A: 255})
	}

	// Blink on the world clock so pause in ambient mode never freezes it
	if math.Mod(g.world.Frame, 60) < 38 {
		r.drawCentered(screen, "PRESS ENTER", r.hudFace, 330,
			color.NRGBA{R: 240, G: 240, B: 255, A: 255})
	}
	if g.highScore > 0 {
		r.drawCentered(screen, fmt.Sprintf("HIGH SCORE %d", g.highScore), r.hudFace, 370,
			color.NRGBA{R: 255, G: 210, B: 120, A: 255})
	}
	r.drawCentered(screen, "ARROWS MOVE   SPACE FIRE   X MISSILE   SHIFT DASH   P PAUSE",
		r.smallFace, 560, color.NRGBA{R: 170, G: 180, B: 210, A: 255})
}

func (r *Renderer) drawPaused(screen *ebiten.Image) {
	r.fill(screen, color.NRGBA{A: 120})
	r.drawCentered(screen, "PAUSED", r.bigFace, 250, color.NRGBA{R: 240, G: 240, B: 255, A: 255})
	r.drawCentered(screen, "P TO RESUME", r.hudFace, 330, color.NRGBA{R: 200, G: 205, B: 225, A: 255})
}

func (r *Renderer) drawGameOver(screen *ebiten.Image, g *Game) {
	r.fill(screen, color.NRGBA{A: 150})
	r.drawCentered(screen, "GAME OVER", r.bigFace, 210, color.NRGBA{R: 255, G: 110, B: 100, A: 255})
	r.drawCentered(screen, fmt.Sprintf("SCORE %d", g.score), r.hudFace, 300,
		color.NRGBA{R: 240, G: 240, B: 255, A: 255})
	if g.newHigh {
		r.drawCentered(screen, "NEW HIGH SCORE", r.hudFace, 335,
			color.NRGBA{R: 255, G: 215, B: 90, A: 255})
	} else {
		r.drawCentered(screen, fmt.Sprintf("BEST %d", g.highScore), r.hudFace, 335,
			color.NRGBA{R: 200, G: 205, B: 225, A: 255})
	}
	r.drawCentered(screen, "ENTER TO RETRY", r.hudFace, 400,
		color.NRGBA{R: 240, G: 240, B: 255, A: 255})
}

func (r *Renderer) drawFault(screen *ebiten.Image, g *Game) {
	r.fill(screen, color.NRGBA{R: 40, A: 200})
	r.drawCentered(screen, "SIMULATION ERROR", r.bigFace, 240,
		color.NRGBA{R: 255, G: 150, B: 140, A: 255})
	msg := "unknown error"
	if g.faultErr != nil {
		msg = g.faultErr.Error()
		if len(msg) > 80 {
			msg = msg[:80]
		}
	}
	r.drawCentered(screen, msg, r.smallFace, 320, color.NRGBA{R: 230, G: 210, B: 210, A: 255})
	r.drawCentered(screen, "RESTART TO CONTINUE", r.hudFace, 380,
		color.NRGBA{R: 240, G: 240, B: 255, A: 255})
}

func (r *Renderer) fill(dst *ebiten.Image, c color.NRGBA) {
	vector.DrawFilledRect(dst, 0, 0, float32(r.cfg.ScreenWidth), float32(r.cfg.ScreenHeight), c, true)
}

func (r *Renderer) drawText(dst *ebiten.Image, s string, face *text.GoTextFace, x, y float64, c color.NRGBA) {
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(dst, s, face, op)
}

func (r *Renderer) drawCentered(dst *ebiten.Image, s string, face *text.GoTextFace, y float64, c color.NRGBA) {
	if face == nil {
		return
	}
	advance, _ := text.Measure(s, face, 0)
	r.drawText(dst, s, face, (float64(r.cfg.ScreenWidth)-advance)/2, y, c)
}
