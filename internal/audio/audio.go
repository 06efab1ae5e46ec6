package audio

import (
	"fmt"
	"io"
	"math"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/oto/v2"

	"handracer/internal/game"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
)

// SoundKind identifies different sound effects.
type SoundKind int

const (
	SoundCrash SoundKind = iota
	SoundPass
	SoundGameOver
	SoundRestart
	SoundLaneChange
)

func (k SoundKind) String() string {
	switch k {
	case SoundCrash:
		return "crash"
	case SoundPass:
		return "pass"
	case SoundGameOver:
		return "game_over"
	case SoundRestart:
		return "restart"
	case SoundLaneChange:
		return "lane_change"
	}
	return "unknown"
}

// System plays procedural sound effects and a continuous engine hum. A nil
// *System is valid and silent.
type System struct {
	ctx    *oto.Context
	ready  chan struct{}
	engine oto.Player
	hum    *engineReader
	log    *log.Logger

	sfxVolume float64
	crashes   atomic.Int32 // crash sounds currently playing
	variant   atomic.Uint64
}

// New opens the audio device. Playback starts once the device is ready;
// sounds requested before that are dropped.
func New(logger *log.Logger) (*System, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, oto.FormatFloat32LE)
	if err != nil {
		return nil, fmt.Errorf("audio context: %w", err)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &System{
		ctx:       ctx,
		ready:     ready,
		hum:       newEngineReader(),
		log:       logger.WithPrefix("audio"),
		sfxVolume: 0.58,
	}, nil
}

func (s *System) isReady() bool {
	if s == nil || s.ctx == nil {
		return false
	}
	select {
	case <-s.ready:
		return true
	default:
		return false
	}
}

// Play starts a sound effect in the background.
func (s *System) Play(kind SoundKind) {
	if !s.isReady() {
		return
	}
	// Limit simultaneous crashes to 2; more causes speaker clipping.
	if kind == SoundCrash {
		if s.crashes.Load() >= 2 {
			return
		}
		s.crashes.Add(1)
	}
	samples := generateSound(kind, s.variant.Add(1))
	if len(samples) == 0 {
		if kind == SoundCrash {
			s.crashes.Add(-1)
		}
		return
	}
	go func() {
		if kind == SoundCrash {
			defer s.crashes.Add(-1)
		}
		player := s.ctx.NewPlayer(&soundReader{data: samples})
		player.SetVolume(s.sfxVolume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		if err := player.Close(); err != nil {
			s.log.Debug("close player", "sound", kind, "err", err)
		}
	}()
}

// SetEngineSpeed retunes the engine hum; speed 0 silences it. The hum
// player is started on first use after the device is ready.
func (s *System) SetEngineSpeed(speed float64) {
	if !s.isReady() {
		return
	}
	s.hum.SetSpeed(speed)
	if s.engine == nil {
		s.engine = s.ctx.NewPlayer(s.hum)
		s.engine.SetVolume(0.12)
		s.engine.Play()
	}
}

// Subscribe plays the matching effect for every game event.
func (s *System) Subscribe(bus *game.EventBus) {
	if s == nil || bus == nil {
		return
	}
	bus.Subscribe(game.EventCrash, func(game.Event) { s.Play(SoundCrash) })
	bus.Subscribe(game.EventPass, func(game.Event) { s.Play(SoundPass) })
	bus.Subscribe(game.EventGameOver, func(game.Event) { s.Play(SoundGameOver) })
	bus.Subscribe(game.EventRestart, func(game.Event) { s.Play(SoundRestart) })
	bus.Subscribe(game.EventLaneChange, func(game.Event) { s.Play(SoundLaneChange) })
}

func (s *System) Close() error {
	if s == nil || s.engine == nil {
		return nil
	}
	return s.engine.Close()
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// engineReader is an endless FM drone whose pitch follows the road speed.
type engineReader struct {
	speed atomic.Uint64 // math.Float64bits
	phase float64
	level float64 // smoothed amplitude, follows speed > 0
	freq  float64 // smoothed frequency
	seed  uint64
	lp    float64
}

func newEngineReader() *engineReader {
	return &engineReader{seed: 0x5EED, freq: engineFreq(0)}
}

func engineFreq(speed float64) float64 { return 42 + speed*5.5 }

func (e *engineReader) SetSpeed(speed float64) {
	e.speed.Store(math.Float64bits(math.Max(0, speed)))
}

func (e *engineReader) Read(p []byte) (int, error) {
	n := len(p) / 8
	speed := math.Float64frombits(e.speed.Load())
	targetLevel := 0.0
	if speed > 0 {
		targetLevel = 0.35 + 0.02*speed
	}
	targetFreq := engineFreq(speed)
	for i := 0; i < n; i++ {
		e.level += (targetLevel - e.level) * 0.0005
		e.freq += (targetFreq - e.freq) * 0.0002
		e.phase += 2 * math.Pi * e.freq / SampleRate
		if e.phase > 2*math.Pi {
			e.phase -= 2 * math.Pi
		}
		mod := math.Sin(e.phase * 0.5)
		tone := math.Sin(e.phase + 1.6*mod)
		e.lp = e.lp*0.92 + lcg(&e.seed)*0.08
		putStereoF32(p, i, softSat((tone*0.8+e.lp*0.4)*e.level))
	}
	return n * 8, nil
}
