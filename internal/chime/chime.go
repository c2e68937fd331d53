// Package chime plays a short tone whenever the animation moves to another
// depth. Deeper levels sound higher.
package chime

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/gogpu/spiral"
)

const (
	sampleRate = beep.SampleRate(48000)

	// BaseFrequency is the pitch of depth 1 in Hz.
	BaseFrequency = 220.0

	toneLength = 120 * time.Millisecond
	volume     = 0.25
)

// pentatonic holds the semitone offsets of the major pentatonic scale.
var pentatonic = [...]int{0, 2, 4, 7, 9}

// Pitch returns the frequency for depth. Depths walk up the major
// pentatonic scale from BaseFrequency, one octave every five levels.
func Pitch(depth int) float64 {
	if depth < 1 {
		depth = 1
	}
	i := depth - 1
	semitones := 12*(i/len(pentatonic)) + pentatonic[i%len(pentatonic)]
	return BaseFrequency * math.Exp2(float64(semitones)/12)
}

// Player queues a tone on every depth change.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	sink        func(beep.Streamer)
	initialized bool
	depth       int
}

// New returns a player writing to the system speaker once Initialize has
// succeeded.
func New() *Player {
	p := &Player{mixer: &beep.Mixer{}}
	p.sink = p.mixer.Add
	return p
}

// NewWithSink returns a player handing every tone to sink instead of the
// speaker.
func NewWithSink(sink func(beep.Streamer)) *Player {
	return &Player{sink: sink, initialized: true}
}

// Initialize opens the speaker.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Observe plays a tone when step starts a new depth. Its signature matches
// backend.Observer.
func (p *Player) Observe(_ spiral.Progress, step spiral.Step) {
	p.mu.Lock()
	changed := step.Depth != p.depth
	p.depth = step.Depth
	p.mu.Unlock()

	if changed {
		p.Play(step.Depth)
	}
}

// Play queues the tone for depth.
func (p *Player) Play(depth int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	s, err := Tone(Pitch(depth))
	if err != nil {
		spiral.Logger().Warn("chime: tone", "depth", depth, "err", err)
		return
	}
	if p.mixer != nil {
		speaker.Lock()
		defer speaker.Unlock()
	}
	p.sink(s)
}

// Close silences pending tones.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.mixer == nil {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// Tone returns a short sine tone at freq that fades out.
func Tone(freq float64) (beep.Streamer, error) {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return nil, err
	}
	n := sampleRate.N(toneLength)
	return &fade{s: beep.Take(n, sine), total: n}, nil
}

// fade scales a streamer by a linearly falling envelope.
type fade struct {
	s     beep.Streamer
	pos   int
	total int
}

func (f *fade) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.s.Stream(samples)
	for i := range samples[:n] {
		env := volume * (1 - float64(f.pos)/float64(f.total))
		samples[i][0] *= env
		samples[i][1] *= env
		f.pos++
	}
	return n, ok
}

func (f *fade) Err() error {
	return f.s.Err()
}
