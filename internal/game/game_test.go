package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects every event published on a bus.
type recorder struct {
	events []Event
}

func (r *recorder) count(t EventType) int {
	n := 0
	for _, e := range r.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

func newTestGame(t *testing.T) (*Game, *recorder) {
	t.Helper()
	bus := NewEventBus()
	rec := &recorder{}
	bus.SubscribeAll(func(e Event) { rec.events = append(rec.events, e) })
	return New(DefaultConfig(), bus), rec
}

func TestCrashCostsOneLife(t *testing.T) {
	g, rec := newTestGame(t)
	s := g.State
	speed := s.Speed()
	s.Traffic.Inject(s.Player.Lane, PlayerY-speed, 0)

	g.Step(NoHand)

	assert.Equal(t, 2, s.Lives.Current)
	assert.Equal(t, 0, s.Traffic.AliveCount())
	assert.Empty(t, s.Traffic.Cars, "crashed enemy is removed")
	assert.Equal(t, 0, s.Score, "a crash never scores")
	assert.Equal(t, 1, rec.count(EventCrash))
	assert.Len(t, s.Particles.P, BurstSize, "crash spawns a burst")
	assert.Greater(t, s.Shake.Timer, 0.0)
	assert.Equal(t, ModePlaying, s.Mode)
}

func TestCrashInNeighbouringLaneMisses(t *testing.T) {
	g, rec := newTestGame(t)
	s := g.State
	s.Traffic.Inject(0, PlayerY-s.Speed(), 0)

	g.Step(NoHand)

	assert.Equal(t, StartLives, s.Lives.Current)
	assert.Equal(t, 1, s.Traffic.AliveCount())
	assert.Zero(t, rec.count(EventCrash))
}

func TestLastLifeEndsGame(t *testing.T) {
	g, rec := newTestGame(t)
	s := g.State
	lane := s.Player.Lane
	for i := 0; i < 4; i++ {
		s.Traffic.Inject(lane, PlayerY-s.Speed()-float64(5*i), 0)
	}

	g.Step(NoHand)

	require.Equal(t, ModeGameOver, s.Mode)
	assert.Equal(t, 0, s.Lives.Current)
	assert.True(t, s.Lives.IsOut())
	assert.Equal(t, 3, rec.count(EventCrash))
	assert.Equal(t, 1, rec.count(EventGameOver))
	assert.Equal(t, RestartCooldown, s.Cooldown)
	assert.Equal(t, 1, s.Traffic.AliveCount(), "the fourth enemy is never processed")
}

func TestGameOverFreezesTrafficAndScore(t *testing.T) {
	g, _ := newTestGame(t)
	s := g.State
	s.Lives = NewLives(1)
	s.Traffic.Inject(s.Player.Lane, PlayerY-s.Speed(), 0)
	s.Traffic.Inject(0, WindowHeight-s.Speed()-20, 0)
	g.Step(NoHand)
	require.Equal(t, ModeGameOver, s.Mode)

	countdown := s.Traffic.Countdown
	cars := append([]EnemyCar(nil), s.Traffic.Cars...)
	for i := 0; i < 60; i++ {
		g.Step(NoHand)
		assert.Equal(t, 0, s.Score)
		assert.Equal(t, 0, s.Lives.Current)
	}
	assert.Equal(t, countdown, s.Traffic.Countdown, "spawner is halted")
	assert.Equal(t, cars, s.Traffic.Cars, "enemies are frozen")
}

func TestScoreOnlyOnPass(t *testing.T) {
	g, rec := newTestGame(t)
	s := g.State
	speed := s.Speed()
	s.Traffic.Inject(0, WindowHeight-speed+1, 0)
	s.Traffic.Inject(2, 100, 0)

	g.Step(NoHand)

	assert.Equal(t, 1, s.Score)
	assert.Equal(t, 1, rec.count(EventPass))
	assert.Equal(t, 1, s.Traffic.AliveCount(), "only the passed enemy is retired")

	for i := 0; i < 5; i++ {
		g.Step(NoHand)
	}
	assert.Equal(t, 1, s.Score)
}

func TestRestartAfterCooldown(t *testing.T) {
	g, rec := newTestGame(t)
	s := g.State
	s.Lives = NewLives(1)
	s.Traffic.Inject(s.Player.Lane, PlayerY-s.Speed(), 0)
	s.Score = 17
	g.Step(NoHand)
	require.Equal(t, ModeGameOver, s.Mode)

	hand := HandSample{X: 0.5, Y: 0.5, Detected: true}
	for i := 0; i < RestartCooldown; i++ {
		g.Step(hand)
		require.Equal(t, ModeGameOver, s.Mode, "restarted during cooldown at frame %d", i)
	}
	assert.Zero(t, s.Cooldown)

	g.Step(NoHand)
	assert.Equal(t, ModeGameOver, s.Mode, "no hand, no restart")

	g.Step(hand)
	assert.Equal(t, ModePlaying, s.Mode)
	assert.Equal(t, StartLives, s.Lives.Current)
	assert.Equal(t, 0, s.Score)
	assert.Empty(t, s.Traffic.Cars)
	assert.Equal(t, 1, s.Runs)
	require.Equal(t, 1, rec.count(EventRestart))
	assert.Equal(t, 17, rec.events[len(rec.events)-1].Score)
}

func TestNoHandKeepsCentreLane(t *testing.T) {
	g, _ := newTestGame(t)
	s := g.State
	for i := 0; i < 300; i++ {
		g.Step(NoHand)
		if s.Mode != ModePlaying {
			break
		}
		assert.Equal(t, 1, s.Player.Lane)
		assert.Equal(t, LaneCenter(1, LaneCount), s.Player.X)
	}
}

func TestStepIsDeterministic(t *testing.T) {
	run := func() *State {
		g := New(Config{Seed: 42}, nil)
		for i := 0; i < 2000; i++ {
			x := float64(i%240) / 240
			g.Step(HandSample{X: x, Y: 0.5, Detected: i%5 != 0})
		}
		return g.State
	}
	a, b := run(), run()
	assert.Equal(t, a.Score, b.Score)
	assert.Equal(t, a.Lives, b.Lives)
	assert.Equal(t, a.Mode, b.Mode)
	assert.Equal(t, a.Traffic.Cars, b.Traffic.Cars)
}

func TestLongRunInvariants(t *testing.T) {
	g, _ := newTestGame(t)
	s := g.State
	prevSpeed := s.Speed()
	for i := 0; i < 5000; i++ {
		x := 0.5
		if (i/90)%2 == 0 {
			x = 0.1
		}
		g.Step(HandSample{X: x, Detected: true})

		require.GreaterOrEqual(t, s.Lives.Current, 0)
		require.LessOrEqual(t, s.Traffic.AliveCount(), MaxEnemies)
		require.GreaterOrEqual(t, s.Player.X, float64(RoadLeft))
		require.LessOrEqual(t, s.Player.X, float64(RoadRight))
		if s.Mode == ModePlaying && s.Score > 0 {
			require.GreaterOrEqual(t, s.Speed(), prevSpeed)
		}
		prevSpeed = s.Speed()
	}
}

func TestLives(t *testing.T) {
	l := NewLives(2)
	assert.False(t, l.Lose())
	assert.InDelta(t, 0.5, l.Fraction(), 1e-9)
	assert.True(t, l.Lose())
	assert.True(t, l.Lose(), "stays out")
	assert.Equal(t, 0, l.Current)
}

func TestEventBus(t *testing.T) {
	bus := NewEventBus()
	var crashes, all int
	bus.Subscribe(EventCrash, func(Event) { crashes++ })
	bus.SubscribeAll(func(Event) { all++ })

	bus.Emit(Event{Type: EventCrash})
	bus.Emit(Event{Type: EventPass})

	assert.Equal(t, 1, crashes)
	assert.Equal(t, 2, all)

	var nilBus *EventBus
	assert.NotPanics(t, func() { nilBus.Emit(Event{Type: EventCrash}) })
	assert.Equal(t, "game_over", EventGameOver.String())
}
