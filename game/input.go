package game

import (
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// VirtualControl identifies a button on the host-provided touch overlay
type VirtualControl int

const (
	VirtualShoot VirtualControl = iota
	VirtualHeatseeker
	VirtualDash
	VirtualPause
	VirtualEnter
	virtualControlCount
)

// InputAdapter merges keyboard, gamepad and host-pushed virtual joystick
// input into one Intent per frame. Hosts embedding the game on a touch
// device feed PushStick and PushButton from their overlay; those calls are
// safe from any goroutine.
type InputAdapter struct {
	mu sync.Mutex

	// Latest virtual stick vector, components in [-1, 1]
	stickX, stickY float64

	// Virtual button state. tapped latches presses between drains so a
	// tap shorter than one frame still registers.
	held   [virtualControlCount]bool
	tapped [virtualControlCount]bool

	touchSeen bool

	// Edge tracking per stick source
	prevVirtualJump bool
	prevPadJump     bool

	// Polling scratch, reused across frames
	gamepadIDs []ebiten.GamepadID
	touchIDs   []ebiten.TouchID
}

// NewInputAdapter creates an adapter with no devices attached yet
func NewInputAdapter() *InputAdapter {
	return &InputAdapter{
		gamepadIDs: make([]ebiten.GamepadID, 0, 4),
		touchIDs:   make([]ebiten.TouchID, 0, 8),
	}
}

// PushStick updates the virtual joystick vector. Components follow screen
// convention: negative Y is up.
func (a *InputAdapter) PushStick(x, y float64) {
	a.mu.Lock()
	a.stickX = x
	a.stickY = y
	a.touchSeen = true
	a.mu.Unlock()
}

// PushButton updates a virtual button. Press edges latch until the next
// frame is drained.
func (a *InputAdapter) PushButton(ctl VirtualControl, pressed bool) {
	if ctl < 0 || ctl >= virtualControlCount {
		return
	}
	a.mu.Lock()
	if pressed && !a.held[ctl] {
		a.tapped[ctl] = true
	}
	a.held[ctl] = pressed
	a.touchSeen = true
	a.mu.Unlock()
}

// TouchActive reports whether any virtual input has arrived this session
func (a *InputAdapter) TouchActive() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.touchSeen
}

// Drain consumes the virtual-only state and returns the Intent it implies.
// It never touches the display backend, so batch runs and tests can call it
// without a window.
func (a *InputAdapter) Drain() Intent {
	a.mu.Lock()
	defer a.mu.Unlock()

	var it Intent
	a.applyStick(&it, a.stickX, a.stickY, &a.prevVirtualJump)

	if a.held[VirtualShoot] || a.tapped[VirtualShoot] {
		it.ShootPressed = true
	}
	if a.tapped[VirtualHeatseeker] {
		it.HeatseekerPressed = true
	}
	if a.tapped[VirtualDash] {
		it.DashPressed = true
	}
	if a.tapped[VirtualPause] {
		it.PausePressed = true
	}
	if a.tapped[VirtualEnter] {
		it.EnterPressed = true
	}
	for i := range a.tapped {
		a.tapped[i] = false
	}

	return it
}

// Poll returns the merged Intent for this frame: virtual state first, then
// keyboard and gamepad layered on top. Only the real game loop calls this.
func (a *InputAdapter) Poll() Intent {
	it := a.Drain()
	a.pollKeyboard(&it)
	a.pollGamepad(&it)
	a.pollTouch(&it)
	return it
}

func (a *InputAdapter) pollKeyboard(it *Intent) {
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		it.MovingLeft = true
		it.MoveScale = math.Max(it.MoveScale, 1.0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		it.MovingRight = true
		it.MoveScale = math.Max(it.MoveScale, 1.0)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) || inpututil.IsKeyJustPressed(ebiten.KeyW) {
		it.JumpPressed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyShiftLeft) || inpututil.IsKeyJustPressed(ebiten.KeyShiftRight) {
		it.DashPressed = true
	}
	if ebiten.IsKeyPressed(ebiten.KeySpace) {
		it.ShootPressed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		it.HeatseekerPressed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		it.PausePressed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		it.EnterPressed = true
	}
}

func (a *InputAdapter) pollGamepad(it *Intent) {
	a.gamepadIDs = ebiten.AppendGamepadIDs(a.gamepadIDs[:0])
	for _, id := range a.gamepadIDs {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}

		x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		y := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		a.applyStick(it, x, y, &a.prevPadJump)

		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom) {
			it.JumpPressed = true
			it.EnterPressed = true
		}
		if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightLeft) {
			it.ShootPressed = true
		}
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightTop) {
			it.HeatseekerPressed = true
		}
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightRight) {
			it.DashPressed = true
		}
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight) {
			it.PausePressed = true
		}

		// First standard-layout pad wins
		break
	}
}

// pollTouch watches for raw screen touches outside the virtual overlay.
// A bare tap only confirms menus; gameplay needs the overlay controls.
func (a *InputAdapter) pollTouch(it *Intent) {
	a.touchIDs = inpututil.AppendJustPressedTouchIDs(a.touchIDs[:0])
	if len(a.touchIDs) == 0 {
		return
	}
	it.EnterPressed = true
	a.mu.Lock()
	a.touchSeen = true
	a.mu.Unlock()
}

// applyStick folds one stick vector into the intent using the zone bands
func (a *InputAdapter) applyStick(it *Intent, x, y float64, prevJump *bool) {
	zone := ZoneFor(math.Hypot(x, y))

	if zone != ZoneDead {
		if x < -stickHorizontalBias {
			it.MovingLeft = true
			it.MoveScale = math.Max(it.MoveScale, zone.Accel())
		}
		if x > stickHorizontalBias {
			it.MovingRight = true
			it.MoveScale = math.Max(it.MoveScale, zone.Accel())
		}
	}

	jump := zone != ZoneDead && y <= stickJumpPull
	if jump && !*prevJump {
		it.JumpPressed = true
	}
	*prevJump = jump
}
