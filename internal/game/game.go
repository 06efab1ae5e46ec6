package game

// Game advances State one frame at a time. It never touches the window,
// the camera or the GPU, so every frame can be driven from tests.
type Game struct {
	cfg   Config
	State *State
	Bus   *EventBus
	dt    float64
}

func New(cfg Config, bus *EventBus) *Game {
	cfg = cfg.normalized()
	if bus == nil {
		bus = NewEventBus()
	}
	return &Game{
		cfg:   cfg,
		State: NewState(cfg),
		Bus:   bus,
		dt:    1.0 / float64(cfg.TargetFPS),
	}
}

func (g *Game) Config() Config { return g.cfg }

// Poll reads the gesture input for this frame and records the camera status.
func (g *Game) Poll(in *GestureInput) HandSample {
	if in == nil {
		g.State.Camera = CameraMissing
		return NoHand
	}
	hand := in.Poll()
	g.State.Camera = in.Status()
	return hand
}

// Step runs one frame: steering, spawning, movement, collisions and effects
// while playing; only the restart check while the game is over.
func (g *Game) Step(hand HandSample) {
	s := g.State
	s.Tick++
	s.Hand = hand

	speed, interval := s.Difficulty()

	switch s.Mode {
	case ModePlaying:
		if UpdateLane(&s.Player, hand, s.Lanes) {
			g.Bus.Emit(Event{Type: EventLaneChange, X: s.Player.X, Lane: s.Player.Lane, Score: s.Score, Lives: s.Lives.Current})
		}
		s.Traffic.Tick(interval)
		s.Traffic.Advance(speed)
		ResolveCollisions(s, g.Bus)

	case ModeGameOver:
		if s.Cooldown > 0 {
			s.Cooldown--
		} else if hand.Detected {
			g.restart()
			return
		}
	}

	s.advanceDash(speed)
	s.Particles.Update()
	s.Shake.Update(g.dt, hashTick(s.Seed, s.Tick))
}

func (g *Game) restart() {
	s := g.State
	final := s.Score
	s.Runs++
	s.Reset()
	g.Bus.Emit(Event{Type: EventRestart, Score: final, Lives: s.Lives.Current})
}
