package game

// Config holds the tuning knobs for a game session. Values that read as
// "per frame" are calibrated against the 60fps reference frame and get
// scaled by the timestep multiplier at run time.
type Config struct {
	// ScreenWidth is the logical canvas width in pixels
	ScreenWidth int

	// ScreenHeight is the logical canvas height in pixels
	ScreenHeight int

	// HUDHeight is the height of the status strip at the top of the canvas
	HUDHeight float64

	// GroundY is the Y coordinate of the ground plane the player runs on
	GroundY float64

	// Seed feeds the session RNG; 0 means derive one from the clock
	Seed int64

	// TouchMode marks a touch-first device and slows simulation slightly
	TouchMode bool

	// Headless skips sprite, font and audio setup for tests and batch runs
	Headless bool

	// Debug draws the FPS line and enables the slow-frame profiler
	Debug bool

	// StartLives and MaxLives bound the player's life counter
	StartLives int
	MaxLives   int

	// StartHeatseekers and MaxHeatseekers bound the missile ammo counter
	StartHeatseekers int
	MaxHeatseekers   int

	// AmmoPerCrate is how many heatseekers an ammo crate grants
	AmmoPerCrate int

	// EnemyInterval is the starting gap between spawn attempts, in frames
	EnemyInterval int

	// MinEnemyInterval is the floor the interval ratchets down to
	MinEnemyInterval int

	// IntervalStep is how many frames each difficulty step removes
	IntervalStep int

	// MaxEnemies is the starting concurrent enemy cap
	MaxEnemies int

	// MaxEnemiesCap is the hard ceiling the cap ratchets up to
	MaxEnemiesCap int

	// ScoreStep is the score distance between difficulty steps
	ScoreStep int

	// SpeedBoostStep multiplies enemy speed at each difficulty step
	SpeedBoostStep float64

	// SpeedBoostCap is the ceiling for the accumulated speed multiplier
	SpeedBoostCap float64

	// FormationChance is the odds a spawn attempt produces a formation
	// while the enemy population sits below half capacity
	FormationChance float64

	// PickupGrace is how many frames pass before any pickup may drop
	PickupGrace float64

	// Pickup cadence, in frames, with a random jitter band around each
	AmmoInterval  float64
	AmmoJitter    float64
	LifeInterval  float64
	LifeJitter    float64
	PowerInterval float64
	PowerJitter   float64

	// PowerUpDuration is how long rapid fire lasts, in frames
	PowerUpDuration float64

	// DayNightStep is degrees of sky cycle advanced per frame
	DayNightStep float64

	// SkyFlashChance is the per-frame odds of a lightning flash
	SkyFlashChance float64

	// SnapshotEvery is the frame cadence for publishing state snapshots
	SnapshotEvery int

	// HighScorePath overrides where the high score file lives.
	// Empty means the platform user config directory.
	HighScorePath string
}

// DefaultConfig returns the shipping configuration
func DefaultConfig() Config {
	return Config{
		ScreenWidth:      800,
		ScreenHeight:     600,
		HUDHeight:        48.0,
		GroundY:          540.0,
		StartLives:       3,
		MaxLives:         3,
		StartHeatseekers: 3,
		MaxHeatseekers:   10,
		AmmoPerCrate:     3,
		EnemyInterval:    120,
		MinEnemyInterval: 45,
		IntervalStep:     10,
		MaxEnemies:       4,
		MaxEnemiesCap:    8,
		ScoreStep:        750,
		SpeedBoostStep:   1.05,
		SpeedBoostCap:    1.8,
		FormationChance:  0.10,
		PickupGrace:      300.0,
		AmmoInterval:     900.0,
		AmmoJitter:       240.0,
		LifeInterval:     1800.0,
		LifeJitter:       600.0,
		PowerInterval:    1400.0,
		PowerJitter:      400.0,
		PowerUpDuration:  480.0,
		DayNightStep:     0.02,
		SkyFlashChance:   1.0 / 9000.0,
		SnapshotEvery:    10,
	}
}
