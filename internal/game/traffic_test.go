package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDifficulty(t *testing.T) {
	speed, interval := Difficulty(0, MaxSpeed)
	assert.Equal(t, StartSpeed, speed)
	assert.Equal(t, MaxSpawnInterval, interval)

	speed, interval = Difficulty(8, MaxSpeed)
	assert.Equal(t, 5.5, speed)
	assert.Equal(t, 69, interval)

	speed, interval = Difficulty(1000, MaxSpeed)
	assert.Equal(t, MaxSpeed, speed)
	assert.Equal(t, MinSpawnInterval, interval)

	prevSpeed, prevInterval := Difficulty(0, MaxSpeed)
	for score := 1; score <= 2000; score++ {
		s, i := Difficulty(score, MaxSpeed)
		require.GreaterOrEqual(t, s, prevSpeed, "score %d", score)
		require.LessOrEqual(t, i, prevInterval, "score %d", score)
		require.LessOrEqual(t, s, MaxSpeed)
		require.GreaterOrEqual(t, i, MinSpawnInterval)
		prevSpeed, prevInterval = s, i
	}
}

func TestFirstSpawnWaitsFullInterval(t *testing.T) {
	ts := NewTrafficSystem(7, LaneCount, MaxEnemies)
	for i := 0; i < MaxSpawnInterval-1; i++ {
		require.False(t, ts.Tick(MaxSpawnInterval))
	}
	assert.True(t, ts.Tick(MaxSpawnInterval))
	require.Len(t, ts.Cars, 1)
	assert.Equal(t, float64(SpawnY), ts.Cars[0].Y)
	assert.GreaterOrEqual(t, ts.Countdown, MaxSpawnInterval-SpawnJitter)
	assert.LessOrEqual(t, ts.Countdown, MaxSpawnInterval+SpawnJitter)
}

// assertFair checks that no two enemies in a lane overlap and that the top
// band never has every lane occupied.
func assertFair(t *testing.T, ts *TrafficSystem, lanes int, frame int) {
	t.Helper()
	occupied := map[int]bool{}
	for i, a := range ts.Cars {
		if !a.Alive {
			continue
		}
		if a.Y < SpawnY+WallBand {
			occupied[a.Lane] = true
		}
		for _, b := range ts.Cars[i+1:] {
			if b.Alive && a.Lane == b.Lane {
				require.False(t, a.Bounds(lanes).Overlaps(b.Bounds(lanes)),
					"frame %d: overlapping enemies in lane %d", frame, a.Lane)
			}
		}
	}
	require.Less(t, len(occupied), lanes, "frame %d: wall across all lanes", frame)
}

func TestSpawnerFairnessUnderPressure(t *testing.T) {
	for _, seed := range []uint64{1, 2, 3, 99, 12345} {
		ts := NewTrafficSystem(seed, LaneCount, MaxEnemies)
		spawned := 0
		for frame := 0; frame < 3000; frame++ {
			if ts.Tick(1) {
				spawned++
			}
			ts.Advance(MaxSpeed)
			for i := range ts.Cars {
				if ts.Cars[i].Y > WindowHeight {
					ts.Cars[i].Alive = false
				}
			}
			ts.RemoveDead()

			require.LessOrEqual(t, ts.AliveCount(), MaxEnemies)
			assertFair(t, ts, LaneCount, frame)
		}
		assert.Greater(t, spawned, 100, "seed %d barely spawned", seed)
	}
}

func TestSpawnerRespectsCap(t *testing.T) {
	ts := NewTrafficSystem(5, LaneCount, 4)
	for frame := 0; frame < 2000; frame++ {
		ts.Tick(1)
		ts.Advance(StartSpeed)
		require.LessOrEqual(t, ts.AliveCount(), 4)
	}
	assert.Equal(t, 4, ts.AliveCount(), "cars never leave, so the cap is reached")
}

func TestSpawnerUsesEveryLane(t *testing.T) {
	ts := NewTrafficSystem(11, LaneCount, MaxEnemies)
	seen := map[int]int{}
	for frame := 0; frame < 5000; frame++ {
		if ts.Tick(MinSpawnInterval) {
			seen[ts.Cars[len(ts.Cars)-1].Lane]++
		}
		ts.Advance(StartSpeed)
		for i := range ts.Cars {
			if ts.Cars[i].Y > WindowHeight {
				ts.Cars[i].Alive = false
			}
		}
		ts.RemoveDead()
	}
	for lane := 0; lane < LaneCount; lane++ {
		assert.Greater(t, seen[lane], 20, "lane %d", lane)
	}
}

func TestTrafficResetIsReproducible(t *testing.T) {
	run := func(ts *TrafficSystem) []EnemyCar {
		for frame := 0; frame < 600; frame++ {
			ts.Tick(30)
			ts.Advance(6)
		}
		return append([]EnemyCar(nil), ts.Cars...)
	}
	ts := NewTrafficSystem(3, LaneCount, MaxEnemies)
	first := run(ts)
	ts.Reset()
	assert.Equal(t, first, run(ts))
}

func TestInjectClampsLane(t *testing.T) {
	ts := NewTrafficSystem(1, LaneCount, MaxEnemies)
	ts.Inject(9, 0, 99)
	ts.Inject(-2, 0, -1)
	assert.Equal(t, LaneCount-1, ts.Cars[0].Lane)
	assert.Equal(t, 0, ts.Cars[1].Lane)
	assert.Equal(t, len(EnemyPalettes)-1, ts.Cars[0].Style)
}
