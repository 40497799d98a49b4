package game

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

//go:embed assets/*.svg
var assetFS embed.FS

// SpriteID names every sprite in the manifest
type SpriteID int

const (
	SpritePlayer SpriteID = iota
	SpriteEnemyBasic
	SpriteEnemyZigzag
	SpriteEnemyCity
	SpriteHeatseeker
	SpriteCrate
	SpriteHeart
	SpritePower
	SpriteLogo
	spriteCount
)

// spriteEntry describes one asset: its file, raster size, and whether a
// load failure is worth retrying. Only the player sprite is critical; all
// others degrade to placeholder draws.
type spriteEntry struct {
	id       SpriteID
	path     string
	w, h     int
	critical bool
}

var spriteManifest = []spriteEntry{
	{SpritePlayer, "assets/player.svg", int(playerWidth), int(playerHeight), true},
	{SpriteEnemyBasic, "assets/enemy_basic.svg", 64, 48, false},
	{SpriteEnemyZigzag, "assets/enemy_zigzag.svg", 56, 56, false},
	{SpriteEnemyCity, "assets/enemy_city.svg", 72, 56, false},
	{SpriteHeatseeker, "assets/heatseeker.svg", int(heatseekerW), int(heatseekerH), false},
	{SpriteCrate, "assets/crate.svg", int(pickupSize), int(pickupSize), false},
	{SpriteHeart, "assets/heart.svg", int(pickupSize), int(pickupSize), false},
	{SpritePower, "assets/power.svg", int(pickupSize), int(pickupSize), false},
	{SpriteLogo, "assets/logo.svg", 420, 120, false},
}

const (
	spriteRetries   = 3
	spriteRetryBase = 50 * time.Millisecond
)

// SpriteBank holds the rasterized sprites. A nil bank (headless mode) and
// a missing entry both report not-loaded, and callers fall back to
// placeholder draws.
type SpriteBank struct {
	images [spriteCount]*ebiten.Image
	loaded [spriteCount]bool
}

// Get returns the sprite and whether it is usable
func (b *SpriteBank) Get(id SpriteID) (*ebiten.Image, bool) {
	if b == nil || id < 0 || id >= spriteCount || !b.loaded[id] {
		return nil, false
	}
	return b.images[id], true
}

// LoadSprites rasterizes the embedded SVG manifest. Critical entries get
// bounded retries with backoff; everything else logs and moves on.
func LoadSprites() *SpriteBank {
	bank := &SpriteBank{}
	for _, entry := range spriteManifest {
		img, err := loadSprite(entry)
		if err != nil {
			log.Printf("sprite %s unavailable, using placeholder: %v", entry.path, err)
			continue
		}
		bank.images[entry.id] = img
		bank.loaded[entry.id] = true
	}
	return bank
}

func loadSprite(entry spriteEntry) (*ebiten.Image, error) {
	attempts := 1
	if entry.critical {
		attempts = spriteRetries
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			time.Sleep(spriteRetryBase << (i - 1))
		}
		data, err := assetFS.ReadFile(entry.path)
		if err != nil {
			lastErr = fmt.Errorf("read %s: %w", entry.path, err)
			continue
		}
		raster, err := rasterizeSVG(data, entry.w, entry.h)
		if err != nil {
			lastErr = fmt.Errorf("rasterize %s: %w", entry.path, err)
			continue
		}
		return ebiten.NewImageFromImage(raster), nil
	}
	return nil, lastErr
}

// rasterizeSVG renders SVG markup into an RGBA image of the given size
func rasterizeSVG(svgData []byte, width, height int) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svgData))
	if err != nil {
		return nil, err
	}
	icon.SetTarget(0, 0, float64(width), float64(height))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1.0)

	return img, nil
}
