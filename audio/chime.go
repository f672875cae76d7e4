// Package audio plays a bell arpeggio whenever a yuletree scene toggles:
// rising while the tree assembles, falling as it scatters.
//
// Tones are synthesized with beep streamers, so there are no sample assets.
// A Chime that failed to open the audio device stays silent; the scene runs
// the same either way.
package audio

import (
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/phanxgames/yuletree"
)

// SampleRate is the default output rate.
const SampleRate = beep.SampleRate(48000)

// Arpeggio timing.
const (
	noteGap  = 90 * time.Millisecond
	noteRing = 900 * time.Millisecond
	attack   = 4 * time.Millisecond
)

// C major, C6 to C7.
var assembleNotes = []float64{1046.50, 1318.51, 1567.98, 2093.00}

// ChimeNotes returns the arpeggio frequencies played on entering state.
func ChimeNotes(state yuletree.TreeState) []float64 {
	notes := make([]float64, len(assembleNotes))
	copy(notes, assembleNotes)
	if state == yuletree.StateScattered {
		for i, j := 0, len(notes)-1; i < j; i, j = i+1, j-1 {
			notes[i], notes[j] = notes[j], notes[i]
		}
	}
	return notes
}

// bell is a sine fundamental with an octave overtone, a short linear attack
// and an exponential decay.
type bell struct {
	sr     beep.SampleRate
	freq   float64
	pos    int
	total  int
	attack int
	decay  float64
}

// NewBell returns a single bell strike lasting dur.
func NewBell(freq float64, dur time.Duration, sr beep.SampleRate) beep.Streamer {
	return &bell{
		sr:     sr,
		freq:   freq,
		total:  sr.N(dur),
		attack: max(sr.N(attack), 1),
		// Down to about 1% by the end of the ring.
		decay: 4.6 / dur.Seconds(),
	}
}

func (b *bell) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if b.pos >= b.total {
			return i, i > 0
		}
		t := float64(b.pos) / float64(b.sr)
		env := math.Min(float64(b.pos)/float64(b.attack), 1) * math.Exp(-b.decay*t)
		v := env * (0.7*math.Sin(2*math.Pi*b.freq*t) + 0.3*math.Sin(4*math.Pi*b.freq*t))
		samples[i][0] = v
		samples[i][1] = v
		b.pos++
	}
	return len(samples), true
}

func (b *bell) Err() error { return nil }

// NewArpeggio strikes one bell per frequency, gap apart, each ringing for
// ring. Notes overlap.
func NewArpeggio(freqs []float64, gap, ring time.Duration, sr beep.SampleRate) beep.Streamer {
	voices := make([]beep.Streamer, len(freqs))
	for i, f := range freqs {
		voices[i] = beep.Seq(
			beep.Silence(sr.N(time.Duration(i)*gap)),
			NewBell(f, ring, sr),
		)
	}
	// Keep the sum of overlapping voices inside [-1, 1].
	return newVolume(beep.Mix(voices...), 1/float64(max(len(freqs), 1)))
}

// newVolume scales s linearly; zero or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// ChimeConfig holds optional parameters for NewChime.
type ChimeConfig struct {
	// Volume is the linear output gain. Defaults to 0.6; negative mutes.
	Volume float64
	// SampleRate defaults to SampleRate.
	SampleRate beep.SampleRate
}

func (c ChimeConfig) withDefaults() ChimeConfig {
	if c.Volume == 0 {
		c.Volume = 0.6
	}
	if c.SampleRate <= 0 {
		c.SampleRate = SampleRate
	}
	return c
}

// Chime is a yuletree.ToggleListener that plays an arpeggio per toggle.
type Chime struct {
	mu      sync.Mutex
	cfg     ChimeConfig
	mixer   *beep.Mixer
	enabled bool // accepts sounds
	speaker bool // mixer is owned by the speaker
}

// NewChime creates a chime. Call Init to open the audio device.
func NewChime(cfg ChimeConfig) *Chime {
	return &Chime{
		cfg:   cfg.withDefaults(),
		mixer: &beep.Mixer{},
	}
}

// Init opens the default audio device and starts the mixer. On failure the
// chime stays silent and the error is returned for the caller to log.
func (c *Chime) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.enabled {
		return nil
	}
	sr := c.cfg.SampleRate
	if err := speaker.Init(sr, sr.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("yuletree: audio init: %w", err)
	}
	speaker.Play(c.mixer)
	c.enabled = true
	c.speaker = true
	return nil
}

// Enabled reports whether sounds are being played.
func (c *Chime) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// OnToggle implements yuletree.ToggleListener.
func (c *Chime) OnToggle(event yuletree.ToggleEvent) {
	c.Play(event.To)
}

// Play queues the arpeggio for entering state.
func (c *Chime) Play(state yuletree.TreeState) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled {
		return
	}
	s := newVolume(NewArpeggio(ChimeNotes(state), noteGap, noteRing, c.cfg.SampleRate), c.cfg.Volume)
	if c.speaker {
		speaker.Lock()
		defer speaker.Unlock()
	}
	c.mixer.Add(s)
}

// Close stops playback and releases the device.
func (c *Chime) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled {
		return
	}
	if c.speaker {
		speaker.Clear()
		speaker.Close()
	}
	c.mixer.Clear()
	c.enabled = false
	c.speaker = false
}

// Attach opens the device and registers c on scene's controller. If the
// device cannot be opened it logs a warning and the scene runs silent.
func (c *Chime) Attach(scene *yuletree.Scene) {
	if err := c.Init(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[yuletree] warning: %v; running without sound\n", err)
	}
	scene.Controller().AddListener(c)
}
