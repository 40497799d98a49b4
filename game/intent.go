package game

// Intent is the normalized input for one simulation frame. Every source
// (keyboard, gamepad, virtual joystick) folds into the same struct, so the
// simulation never knows which device produced it.
type Intent struct {
	// Held movement
	MovingLeft  bool
	MovingRight bool

	// MoveScale is the acceleration factor contributed by the source's
	// joystick zone. Keyboard and full stick deflection give 1.0.
	MoveScale float64

	// Edge-triggered actions
	JumpPressed       bool
	DashPressed       bool
	HeatseekerPressed bool
	PausePressed      bool
	EnterPressed      bool

	// ShootPressed is held; the fire cooldown does the rate limiting
	ShootPressed bool
}

// JoystickZone buckets a stick deflection magnitude into a control band
type JoystickZone int

const (
	// ZoneDead ignores the stick entirely
	ZoneDead JoystickZone = iota

	// ZonePrecision gives fine movement at half acceleration
	ZonePrecision

	// ZoneStandard is normal movement
	ZoneStandard

	// ZoneRapid overdrives acceleration for fast repositioning
	ZoneRapid
)

const (
	deadZoneRadius  = 0.15
	precisionRadius = 0.45
	standardRadius  = 0.80

	// stickHorizontalBias is the minimum X deflection that reads as
	// horizontal movement once the stick has left the dead zone
	stickHorizontalBias = 0.25

	// stickJumpPull is the upward Y deflection that triggers a jump edge
	stickJumpPull = -0.55
)

// ZoneFor buckets a deflection magnitude. Magnitudes above 1 clamp into
// the rapid zone rather than erroring; hosts report slightly overshooting
// vectors near the joystick rim.
func ZoneFor(magnitude float64) JoystickZone {
	switch {
	case magnitude < deadZoneRadius:
		return ZoneDead
	case magnitude < precisionRadius:
		return ZonePrecision
	case magnitude < standardRadius:
		return ZoneStandard
	default:
		return ZoneRapid
	}
}

// Accel returns the acceleration factor the zone applies to movement
func (z JoystickZone) Accel() float64 {
	switch z {
	case ZonePrecision:
		return 0.5
	case ZoneStandard:
		return 1.0
	case ZoneRapid:
		return 1.5
	default:
		return 0.0
	}
}

func (z JoystickZone) String() string {
	switch z {
	case ZoneDead:
		return "dead"
	case ZonePrecision:
		return "precision"
	case ZoneStandard:
		return "standard"
	case ZoneRapid:
		return "rapid"
	default:
		return "unknown"
	}
}
