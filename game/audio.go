package game

import (
	"bytes"
	"encoding/binary"
	"log"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

const audioSampleRate = 44100

// SoundID names every effect in the bank
type SoundID int

const (
	SoundShoot SoundID = iota
	SoundMissile
	SoundExplosion
	SoundPickup
	SoundHurt
	soundCount
)

// SoundBank owns the audio context and one player per effect. All sounds
// are synthesized at startup; there are no audio files to ship or fail to
// load. A nil bank plays nothing, which is how headless runs stay silent.
type SoundBank struct {
	ctx     *audio.Context
	players [soundCount]*audio.Player
}

// NewSoundBank builds the context and synthesizes every effect
func NewSoundBank() *SoundBank {
	b := &SoundBank{ctx: audio.NewContext(audioSampleRate)}

	defs := []struct {
		id   SoundID
		data []byte
	}{
		{SoundShoot, synthSweep(900, 1400, 0.06, 0.25)},
		{SoundMissile, synthSweep(280, 950, 0.25, 0.30)},
		{SoundExplosion, synthNoise(0.35, 0.45)},
		{SoundPickup, synthChime(660, 990, 0.18, 0.30)},
		{SoundHurt, synthSweep(420, 140, 0.30, 0.35)},
	}

	for _, s := range defs {
		stream, err := wav.DecodeWithoutResampling(bytes.NewReader(s.data))
		if err != nil {
			log.Printf("sound %d decode failed: %v", s.id, err)
			continue
		}
		player, err := b.ctx.NewPlayer(stream)
		if err != nil {
			log.Printf("sound %d player failed: %v", s.id, err)
			continue
		}
		b.players[s.id] = player
	}
	return b
}

// Play restarts the effect from the top. Safe on a nil bank.
func (b *SoundBank) Play(id SoundID) {
	if b == nil || id < 0 || id >= soundCount {
		return
	}
	p := b.players[id]
	if p == nil {
		return
	}
	if err := p.Rewind(); err != nil {
		return
	}
	p.Play()
}

// synthSweep renders a sine sweep from freq0 to freq1 with a linear decay
func synthSweep(freq0, freq1, seconds, gain float64) []byte {
	n := int(audioSampleRate * seconds)
	samples := make([]int16, n)
	phase := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n)
		freq := freq0 + (freq1-freq0)*t
		phase += 2 * math.Pi * freq / audioSampleRate
		env := (1 - t) * gain
		samples[i] = int16(math.Sin(phase) * env * math.MaxInt16)
	}
	return wavBytes(samples)
}

// synthNoise renders a white-noise burst with exponential decay
func synthNoise(seconds, gain float64) []byte {
	n := int(audioSampleRate * seconds)
	samples := make([]int16, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n)
		env := math.Exp(-4*t) * gain
		samples[i] = int16((rand.Float64()*2 - 1) * env * math.MaxInt16)
	}
	return wavBytes(samples)
}

// synthChime renders two rising notes back to back
func synthChime(freq0, freq1, seconds, gain float64) []byte {
	n := int(audioSampleRate * seconds)
	half := n / 2
	samples := make([]int16, n)
	phase := 0.0
	for i := 0; i < n; i++ {
		freq := freq0
		if i >= half {
			freq = freq1
		}
		phase += 2 * math.Pi * freq / audioSampleRate
		local := float64(i%half) / float64(half)
		env := (1 - local*0.7) * gain
		samples[i] = int16(math.Sin(phase) * env * math.MaxInt16)
	}
	return wavBytes(samples)
}

// wavBytes wraps mono 16-bit samples in a minimal RIFF/WAVE container so
// the standard decoder can stream them
func wavBytes(samples []int16) []byte {
	dataLen := len(samples) * 2
	buf := &bytes.Buffer{}
	buf.Grow(44 + dataLen)

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+dataLen))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(buf, binary.LittleEndian, uint16(1)) // mono
	binary.Write(buf, binary.LittleEndian, uint32(audioSampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(audioSampleRate*2))
	binary.Write(buf, binary.LittleEndian, uint16(2))
	binary.Write(buf, binary.LittleEndian, uint16(16))

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(dataLen))
	for _, s := range samples {
		buf.WriteByte(byte(s))
		buf.WriteByte(byte(s >> 8))
	}
	return buf.Bytes()
}
