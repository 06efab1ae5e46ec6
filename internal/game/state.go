package game

import "math"

type Mode int

const (
	ModePlaying  Mode = iota
	ModeGameOver      // out of lives, waiting for a hand to restart
)

func (m Mode) String() string {
	if m == ModeGameOver {
		return "game_over"
	}
	return "playing"
}

// State is everything the loop mutates. Subsystems receive it explicitly.
type State struct {
	Mode     Mode
	Score    int
	Lives    Lives
	Tick     uint64
	Cooldown int // frames until a restart is accepted

	Player    PlayerCar
	Traffic   *TrafficSystem
	Particles *ParticleSystem
	Shake     Shake

	DashOffset float64
	Hand       HandSample
	Camera     CameraStatus

	Lanes    int
	MaxSpeed float64
	Seed     uint64
	Runs     int // completed restarts, varies the RNG streams between runs
}

func NewState(cfg Config) *State {
	cfg = cfg.normalized()
	s := &State{
		Lanes:     cfg.Lanes,
		MaxSpeed:  cfg.MaxSpeed,
		Seed:      cfg.Seed,
		Traffic:   NewTrafficSystem(cfg.Seed, cfg.Lanes, cfg.MaxEnemies),
		Particles: NewParticleSystem(MaxParticles, cfg.Seed^0xBEAD),
	}
	s.Reset()
	return s
}

// Reset starts a fresh run. Camera status and the last hand sample survive.
func (s *State) Reset() {
	s.Mode = ModePlaying
	s.Score = 0
	s.Lives = NewLives(StartLives)
	s.Tick = 0
	s.Cooldown = 0
	s.Player = NewPlayerCar(s.Lanes)
	s.Traffic.Reseed(hashTick(s.Seed, uint64(s.Runs)))
	s.Traffic.Reset()
	s.Particles.Clear()
	s.Shake = Shake{}
	s.DashOffset = 0
}

// Difficulty returns the current enemy speed and base spawn interval.
func (s *State) Difficulty() (float64, int) {
	return Difficulty(s.Score, s.MaxSpeed)
}

func (s *State) Speed() float64 {
	speed, _ := s.Difficulty()
	return speed
}

// advanceDash scrolls the lane markers by one frame at speed.
func (s *State) advanceDash(speed float64) {
	step := float64(DashLen + DashGap)
	s.DashOffset = math.Mod(s.DashOffset+speed*DashScroll, step)
}
