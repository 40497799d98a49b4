package game

import (
	"fmt"
	"image/color"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// GamePhase is the top-level state machine. Exactly one phase is current;
// it decides which subsystems run each frame.
type GamePhase int

const (
	PhaseTitle GamePhase = iota
	PhasePlaying
	PhasePaused
	PhaseGameOver
	PhaseFault
)

func (p GamePhase) String() string {
	switch p {
	case PhaseTitle:
		return "title"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "gameover"
	case PhaseFault:
		return "fault"
	default:
		return "unknown"
	}
}

const (
	// fpsWindow is how often the FPS estimate refreshes
	fpsWindow = 500 * time.Millisecond

	// fpsDropThreshold arms the slow-frame profiler; the startup grace
	// keeps shader compilation out of the captures
	fpsDropThreshold = 45.0
	fpsStartupGrace  = 3 * time.Second
)

// Game owns one session of Guardians of Lumara: the world, the collision
// and spawn systems, the renderer, and the phase machine that decides what
// runs each frame. It implements ebiten.Game.
type Game struct {
	config Config
	phase  GamePhase

	world     *World
	collision *CollisionSystem
	spawner   *Spawner
	renderer  *Renderer
	input     *InputAdapter
	timestep  *Timestep
	sprites   *SpriteBank
	sounds    *SoundBank
	profiler  *Profiler
	scores    *HighScoreStore
	sink      StateSink

	rng *rand.Rand

	score       int
	highScore   int
	savedHigh   int
	heatseekers int
	newHigh     bool

	// Full-screen effects, in frames
	shakeFrames float64
	flashFrames float64
	flashColor  color.NRGBA
	powerTimer  float64

	// faultErr latches the first recovered panic; the phase machine never
	// leaves PhaseFault once it is set
	faultErr error

	// FPS tracking over half-second windows
	fps        float64
	fpsFrames  int
	fpsStart   time.Time
	launchTime time.Time

	publishAcc int
}

// NewGame builds a session on the title screen. A nil sink is valid; the
// host only gets snapshots if it asked for them. Headless configs skip
// every GPU and audio resource so tests and batch runs need no display.
func NewGame(cfg Config, sink StateSink) *Game {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	g := &Game{
		config:      cfg,
		phase:       PhaseTitle,
		rng:         rng,
		input:       NewInputAdapter(),
		timestep:    NewTimestep(cfg.TouchMode),
		scores:      NewHighScoreStore(cfg.HighScorePath),
		sink:        sink,
		heatseekers: cfg.StartHeatseekers,
		fps:         60.0,
		launchTime:  time.Now(),
	}
	g.highScore = g.scores.Load()
	g.savedHigh = g.highScore

	if !cfg.Headless {
		g.sprites = LoadSprites()
		g.sounds = NewSoundBank()
		g.renderer = NewRenderer(cfg)
		if cfg.Debug {
			g.profiler = NewProfiler()
		}
	}

	g.world = NewWorld(cfg, rng)
	g.collision = NewCollisionSystem(g.world)
	g.collision.SetGame(g)
	g.spawner = NewSpawner(cfg, g.world, rng)

	g.publish()
	return g
}

// Input exposes the adapter so hosts can push virtual joystick and button
// events from their own control surface
func (g *Game) Input() *InputAdapter {
	return g.input
}

// World exposes the live entity collections, mainly for the batch
// simulator's end-of-run reporting
func (g *Game) World() *World {
	return g.world
}

// Phase reports the current state-machine phase
func (g *Game) Phase() GamePhase {
	return g.phase
}

// Score reports the current run's score
func (g *Game) Score() int {
	return g.score
}

// Snapshot builds the state summary the sink receives. The fault path
// publishes against whatever state the recovered panic left behind, so the
// world and player may be nil here.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Score:       g.score,
		HighScore:   g.highScore,
		Heatseekers: g.heatseekers,
		GameActive:  g.gameActive(),
		Paused:      g.phase == PhasePaused,
		GameOver:    g.phase == PhaseGameOver,
	}
	if g.world != nil && g.world.Player != nil {
		s.Lives = g.world.Player.Lives
	}
	return s
}

// Update implements ebiten.Game. It measures real frame time, polls every
// input source, and advances the simulation one step.
func (g *Game) Update() error {
	if g.phase == PhaseFault {
		return nil
	}
	if g.input.TouchActive() {
		g.timestep.SetTouch(true)
	}

	in := g.input.Poll()
	step := g.timestep.Tick(time.Now())
	g.Step(step, in)
	g.trackFPS()
	return nil
}

// Step advances the simulation by one externally supplied step. The real
// loop calls it through Update; tests and the batch simulator call it
// directly with fixed steps and scripted intents.
//
// A panic anywhere in the frame latches the fault phase instead of
// rescheduling with corrupted state.
func (g *Game) Step(step Step, in Intent) {
	if g.phase == PhaseFault {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			g.faultErr = fmt.Errorf("frame update: %v", r)
			log.Printf("simulation fault, freezing: %v", g.faultErr)
			g.phase = PhaseFault
			g.publish()
		}
	}()

	mult := step.Mult

	switch g.phase {
	case PhaseTitle:
		g.world.UpdateAmbient(mult)
		if in.EnterPressed {
			g.startRun()
		}

	case PhasePlaying:
		if in.PausePressed {
			g.phase = PhasePaused
			g.publish()
			return
		}
		g.stepPlaying(mult, in)

	case PhasePaused:
		// The frozen scene keeps rendering; nothing simulates
		if in.PausePressed {
			g.phase = PhasePlaying
			g.timestep.Reset()
			g.publish()
		}

	case PhaseGameOver:
		g.world.UpdateAmbient(mult)
		g.decayEffects(mult)
		if in.EnterPressed {
			g.startRun()
		}
	}
}

// stepPlaying is one frame of live gameplay, in the fixed order: intent,
// spawning, entity updates, collision, compaction, end-of-run check
func (g *Game) stepPlaying(mult float64, in Intent) {
	g.fireWeapons(in)
	g.spawner.Step(mult, g.score)

	g.world.Update(mult, in)
	g.collision.Resolve()
	g.world.Compact()

	g.decayEffects(mult)
	if g.powerTimer > 0 {
		g.powerTimer -= mult
		if g.powerTimer < 0 {
			g.powerTimer = 0
		}
	}

	if g.world.Player.ExplosionDone() {
		g.finishRun()
		return
	}

	g.publishAcc++
	if g.publishAcc >= g.config.SnapshotEvery {
		g.publish()
	}
}

// fireWeapons turns the frame's discrete fire actions into projectiles
func (g *Game) fireWeapons(in Intent) {
	p := g.world.Player
	if p.Exploding {
		return
	}

	if in.ShootPressed && p.ShootCooldown <= 0 {
		p.ShootCooldown = playerShootCooldown
		if g.powerTimer > 0 {
			p.ShootCooldown = playerRapidCooldown
		}
		mx := p.X + p.W - 2
		if p.Facing == FacingLeft {
			mx = p.X + 2 - bulletW
		}
		my := p.Y + p.H*0.42
		g.world.QueueProjectile(NewBullet(mx, my, p.Facing))
		emitMuzzle(&g.world.Particles, mx+bulletW/2, my+bulletH/2, p.Facing, g.world.Rand)
		g.sounds.Play(SoundShoot)
	}

	if in.HeatseekerPressed && g.heatseekers > 0 {
		g.heatseekers--
		g.world.QueueProjectile(NewHeatseeker(p.X+p.W/2-heatseekerW/2, p.Y-heatseekerH, p.Facing))
		g.sounds.Play(SoundMissile)
		g.publish()
	}
}

// hitEnemy resolves a player projectile landing on an enemy. Heatseeker
// hits are lethal outright; bullets walk the enemy up its phase ladder.
func (g *Game) hitEnemy(e *Enemy, lethal bool) {
	died := e.Hit(lethal)
	cx := e.X + e.W/2
	cy := e.Y + e.H/2
	if !died {
		emitDamageBurst(&g.world.Particles, cx, cy, g.world.Rand)
		return
	}
	g.addScore(e.Score())
	g.world.AddFloater(cx, e.Y, fmt.Sprintf("+%d", e.Score()))
	emitExplosion(&g.world.Particles, cx, cy, color.NRGBA{R: 255, G: 120, B: 60, A: 255}, g.world.Rand)
	g.sounds.Play(SoundExplosion)
}

// rammedEnemy destroys an enemy that body-checked the player. No points:
// trading a life for a kill is not a scoring play.
func (g *Game) rammedEnemy(e *Enemy) {
	if !e.ForceExplode() {
		return
	}
	emitExplosion(&g.world.Particles, e.X+e.W/2, e.Y+e.H/2,
		color.NRGBA{R: 255, G: 120, B: 60, A: 255}, g.world.Rand)
	g.sounds.Play(SoundExplosion)
}

// hurtPlayer applies one point of contact damage with all its side
// effects. Invincibility swallows the hit entirely.
func (g *Game) hurtPlayer() {
	p := g.world.Player
	if !p.Hit() {
		return
	}

	g.shakeFrames = shakeDuration
	g.flashFrames = flashOverlayFrames
	g.flashColor = color.NRGBA{R: 255, G: 40, B: 30}
	emitDamageBurst(&g.world.Particles, p.X+p.W/2, p.Y+p.H/2, g.world.Rand)

	if p.Exploding {
		emitExplosion(&g.world.Particles, p.X+p.W/2, p.Y+p.H/2,
			color.NRGBA{R: 255, G: 170, B: 70, A: 255}, g.world.Rand)
		g.sounds.Play(SoundExplosion)
	} else {
		g.sounds.Play(SoundHurt)
	}
	g.publish()
}

// collectPickup applies a pickup's effect, whether the player touched it
// or shot it down
func (g *Game) collectPickup(p *Pickup) {
	p.Active = false

	switch p.Kind {
	case PickupAmmo:
		g.heatseekers += g.config.AmmoPerCrate
		if g.heatseekers > g.config.MaxHeatseekers {
			g.heatseekers = g.config.MaxHeatseekers
		}
	case PickupLife:
		pl := g.world.Player
		pl.Lives++
		if pl.Lives > g.config.MaxLives {
			pl.Lives = g.config.MaxLives
		}
	case PickupPower:
		g.powerTimer = g.config.PowerUpDuration
		g.flashFrames = flashOverlayFrames
		g.flashColor = color.NRGBA{R: 255, G: 215, B: 90}
	}

	emitSparkle(&g.world.Particles, p.X+p.W/2, p.Y+p.H/2, bodyColor(p.Kind), g.world.Rand)
	g.sounds.Play(SoundPickup)
	g.publish()
}

// addScore clamps at zero and tracks the running high score, persisting
// each time the stored value falls behind.
func (g *Game) addScore(points int) {
	if points <= 0 {
		return
	}
	g.score += points
	if g.score > g.highScore {
		g.highScore = g.score
		g.newHigh = true
		g.persistHigh()
	}
}

// persistHigh writes the high score whenever the file is stale. A failed
// write leaves savedHigh behind so the next call retries.
func (g *Game) persistHigh() {
	if g.highScore <= g.savedHigh {
		return
	}
	if err := g.scores.Save(g.highScore); err != nil {
		log.Printf("high score not saved: %v", err)
		return
	}
	g.savedHigh = g.highScore
}

func (g *Game) decayEffects(mult float64) {
	if g.shakeFrames > 0 {
		g.shakeFrames -= mult
		if g.shakeFrames < 0 {
			g.shakeFrames = 0
		}
	}
	if g.flashFrames > 0 {
		g.flashFrames -= mult
		if g.flashFrames < 0 {
			g.flashFrames = 0
		}
	}
}

// startRun resets everything a run owns and enters play. The high score
// and the session RNG are the only survivors, so the title screen, a
// restart and a retry all share one code path.
func (g *Game) startRun() {
	g.world = NewWorld(g.config, g.rng)
	g.collision = NewCollisionSystem(g.world)
	g.collision.SetGame(g)
	g.spawner = NewSpawner(g.config, g.world, g.rng)

	g.score = 0
	g.newHigh = false
	g.heatseekers = g.config.StartHeatseekers
	g.shakeFrames = 0
	g.flashFrames = 0
	g.powerTimer = 0
	g.publishAcc = 0

	g.timestep.Reset()
	g.phase = PhasePlaying
	g.publish()
}

// finishRun enters the game-over screen once the player explosion has
// played out. The persist here catches writes that failed mid-run.
func (g *Game) finishRun() {
	g.phase = PhaseGameOver
	g.powerTimer = 0
	g.persistHigh()
	g.publish()
}

// Close flushes a high score that failed to write during play
func (g *Game) Close() error {
	if g.highScore > g.savedHigh {
		if err := g.scores.Save(g.highScore); err != nil {
			return err
		}
		g.savedHigh = g.highScore
	}
	return nil
}

// gameActive reports whether a run is in progress. The HUD only draws
// while it is.
func (g *Game) gameActive() bool {
	return g.phase == PhasePlaying || g.phase == PhasePaused
}

func (g *Game) publish() {
	g.publishAcc = 0
	if g.sink == nil {
		return
	}
	g.sink.Publish(g.Snapshot())
}

// trackFPS refreshes the estimate every half second and hands sustained
// drops to the profiler
func (g *Game) trackFPS() {
	if g.fpsStart.IsZero() {
		g.fpsStart = time.Now()
	}
	g.fpsFrames++

	elapsed := time.Since(g.fpsStart)
	if elapsed < fpsWindow {
		return
	}
	g.fps = float64(g.fpsFrames) / elapsed.Seconds()
	g.fpsFrames = 0
	g.fpsStart = time.Now()

	if g.profiler != nil && g.fps < fpsDropThreshold && time.Since(g.launchTime) > fpsStartupGrace {
		fmt.Printf("FPS drop detected (%.0f FPS), capturing profile\n", g.fps)
		g.profiler.CaptureOnDrop(g.fps, len(g.world.Enemies), g.world.Particles.Len())
	}
}

// Draw implements ebiten.Game
func (g *Game) Draw(screen *ebiten.Image) {
	if g.renderer == nil {
		return
	}
	g.renderer.Render(screen, g)
}

// Layout implements ebiten.Game. The logical canvas is fixed; the runtime
// scales it to whatever window or screen the host provides.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.config.ScreenWidth, g.config.ScreenHeight
}
