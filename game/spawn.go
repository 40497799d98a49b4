package game

import (
	"math"
	"math/rand"
)

// Formation names the geometric arrangements a batch spawn can take
type Formation int

const (
	FormationV Formation = iota
	FormationLine
	FormationCircle
	FormationWave
	formationCount
)

func (f Formation) String() string {
	switch f {
	case FormationV:
		return "v"
	case FormationLine:
		return "line"
	case FormationCircle:
		return "circle"
	case FormationWave:
		return "wave"
	default:
		return "unknown"
	}
}

// Enemy kind weights: basic / zigzag / city
const (
	weightBasic  = 0.40
	weightZigzag = 0.30
)

// Spawner owns enemy and pickup scheduling plus the difficulty ramp.
// Every timer is a frame accumulator ticked by the simulation multiplier,
// so runs are deterministic for a fixed seed and input sequence.
type Spawner struct {
	cfg   Config
	world *World
	rng   *rand.Rand

	enemyAcc      float64
	enemyInterval int
	maxEnemies    int
	speedBoost    float64
	nextThreshold int

	grace     float64
	ammoAcc   float64
	ammoNext  float64
	lifeAcc   float64
	lifeNext  float64
	powerAcc  float64
	powerNext float64
}

// NewSpawner creates a spawner at the starting difficulty
func NewSpawner(cfg Config, world *World, rng *rand.Rand) *Spawner {
	s := &Spawner{
		cfg:           cfg,
		world:         world,
		rng:           rng,
		enemyInterval: cfg.EnemyInterval,
		maxEnemies:    cfg.MaxEnemies,
		speedBoost:    1.0,
		nextThreshold: cfg.ScoreStep,
		grace:         cfg.PickupGrace,
	}
	s.ammoNext = s.jittered(cfg.AmmoInterval, cfg.AmmoJitter)
	s.lifeNext = s.jittered(cfg.LifeInterval, cfg.LifeJitter)
	s.powerNext = s.jittered(cfg.PowerInterval, cfg.PowerJitter)
	return s
}

// Step runs once per playing frame
func (s *Spawner) Step(mult float64, score int) {
	s.applyDifficulty(score)

	s.enemyAcc += mult
	if s.enemyAcc >= float64(s.enemyInterval) {
		s.enemyAcc -= float64(s.enemyInterval)
		s.trySpawnEnemies()
	}

	s.stepPickups(mult)
}

// Difficulty reports the current ramp state
func (s *Spawner) Difficulty() (maxEnemies, interval int, boost float64) {
	return s.maxEnemies, s.enemyInterval, s.speedBoost
}

// applyDifficulty ratchets the ramp for every threshold the score has
// crossed. Each knob moves one way only and stops at its cap or floor.
func (s *Spawner) applyDifficulty(score int) {
	for score >= s.nextThreshold {
		s.nextThreshold += s.cfg.ScoreStep

		if s.maxEnemies < s.cfg.MaxEnemiesCap {
			s.maxEnemies++
		}
		if s.enemyInterval > s.cfg.MinEnemyInterval {
			s.enemyInterval -= s.cfg.IntervalStep
			if s.enemyInterval < s.cfg.MinEnemyInterval {
				s.enemyInterval = s.cfg.MinEnemyInterval
			}
		}
		boosted := s.speedBoost * s.cfg.SpeedBoostStep
		if boosted > s.cfg.SpeedBoostCap {
			boosted = s.cfg.SpeedBoostCap
		}
		s.speedBoost = boosted

		// Enemies already in flight speed up too
		for _, e := range s.world.Enemies {
			e.SpeedBoost = math.Max(e.SpeedBoost, s.speedBoost)
		}
	}
}

func (s *Spawner) trySpawnEnemies() {
	live := len(s.world.Enemies)
	if live >= s.maxEnemies {
		return
	}

	if live < s.maxEnemies/2 && s.rng.Float64() < s.cfg.FormationChance {
		s.spawnFormation()
		return
	}
	s.spawnOne(s.pickKind())
}

func (s *Spawner) pickKind() EnemyKind {
	roll := s.rng.Float64()
	switch {
	case roll < weightBasic:
		return EnemyBasic
	case roll < weightBasic+weightZigzag:
		return EnemyZigzag
	default:
		return EnemyCity
	}
}

func (s *Spawner) spawnOne(kind EnemyKind) {
	sw := float64(s.cfg.ScreenWidth)
	cfg := GetEnemyConfig(kind)

	switch kind {
	case EnemyCity:
		x := 50 + s.rng.Float64()*(sw-100-cfg.W)
		e := NewEnemy(kind, x, float64(s.cfg.ScreenHeight)+cfg.H, s.rng.Float64()*2*math.Pi, s.speedBoost)
		e.TargetAltitude = 140 + s.rng.Float64()*160
		s.world.AddEnemy(e)
	default:
		x := sw + 10 + s.rng.Float64()*50
		y := 110 + s.rng.Float64()*200
		s.world.AddEnemy(NewEnemy(kind, x, y, s.rng.Float64()*2*math.Pi, s.speedBoost))
	}
}

// spawnFormation places 3 to 5 enemies of one kind in a shared pattern
// with phase offsets that keep them bobbing in lockstep
func (s *Spawner) spawnFormation() {
	n := 3 + s.rng.Intn(3)
	if room := s.maxEnemies - len(s.world.Enemies); n > room {
		n = room
	}
	if n < 1 {
		return
	}

	kind := EnemyBasic
	if s.rng.Float64() < 0.5 {
		kind = EnemyZigzag
	}
	formation := Formation(s.rng.Intn(int(formationCount)))

	sw := float64(s.cfg.ScreenWidth)
	x0 := sw + 40
	y0 := 150 + s.rng.Float64()*180
	basePhase := s.rng.Float64() * 2 * math.Pi

	for i := 0; i < n; i++ {
		var x, y, phase float64
		switch formation {
		case FormationV:
			row := (i + 1) / 2
			sign := 1.0
			if i%2 == 1 {
				sign = -1.0
			}
			x = x0 + float64(row)*52
			y = y0 + sign*float64(row)*46
			phase = basePhase
		case FormationLine:
			x = x0
			y = y0 + float64(i-n/2)*58
			phase = basePhase
		case FormationCircle:
			angle := 2 * math.Pi * float64(i) / float64(n)
			x = x0 + 70 + math.Cos(angle)*70
			y = y0 + math.Sin(angle)*70
			phase = basePhase + angle
		case FormationWave:
			x = x0 + float64(i)*56
			y = y0
			phase = basePhase + float64(i)*0.8
		}

		if y < 70 {
			y = 70
		}
		if y > s.cfg.GroundY-160 {
			y = s.cfg.GroundY - 160
		}
		s.world.AddEnemy(NewEnemy(kind, x, y, phase, s.speedBoost))
	}
}

// stepPickups schedules the three drop kinds. A drop waits for its own
// timer, the post-start grace period, and an empty screen: at most one
// pickup exists at any instant, whatever its kind.
func (s *Spawner) stepPickups(mult float64) {
	if s.grace > 0 {
		s.grace -= mult
		return
	}

	s.ammoAcc += mult
	s.lifeAcc += mult
	s.powerAcc += mult

	if s.world.ActivePickupCount() > 0 {
		return
	}

	switch {
	case s.ammoAcc >= s.ammoNext:
		s.dropPickup(PickupAmmo)
		s.ammoAcc = 0
		s.ammoNext = s.jittered(s.cfg.AmmoInterval, s.cfg.AmmoJitter)
	case s.lifeAcc >= s.lifeNext:
		s.dropPickup(PickupLife)
		s.lifeAcc = 0
		s.lifeNext = s.jittered(s.cfg.LifeInterval, s.cfg.LifeJitter)
	case s.powerAcc >= s.powerNext:
		s.dropPickup(PickupPower)
		s.powerAcc = 0
		s.powerNext = s.jittered(s.cfg.PowerInterval, s.cfg.PowerJitter)
	}
}

func (s *Spawner) dropPickup(kind PickupKind) {
	sw := float64(s.cfg.ScreenWidth)
	x := 80 + s.rng.Float64()*(sw-160)
	fall := pickupMinFall + s.rng.Float64()*(pickupMaxFall-pickupMinFall)
	s.world.AddPickup(NewPickup(kind, x, fall))
}

func (s *Spawner) jittered(interval, jitter float64) float64 {
	return interval + (s.rng.Float64()*2-1)*jitter
}
