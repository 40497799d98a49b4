package game

// Snapshot is the periodic state summary pushed to the host for display
// outside the canvas
type Snapshot struct {
	Score       int
	HighScore   int
	Lives       int
	Heatseekers int
	GameActive  bool
	Paused      bool
	GameOver    bool
}

// StateSink receives snapshots. The game publishes on a fixed frame
// cadence and immediately after every phase transition; hosts that only
// mirror the HUD can ignore the cadence ones.
type StateSink interface {
	Publish(Snapshot)
}

// SinkFunc adapts a function to the StateSink interface
type SinkFunc func(Snapshot)

// Publish calls the function
func (f SinkFunc) Publish(s Snapshot) {
	f(s)
}
