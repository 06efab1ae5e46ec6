package game

// SpawnY is the top edge of a freshly spawned enemy: just above the screen.
const SpawnY = -EnemyH

type EnemyCar struct {
	Lane  int
	Y     float64 // top edge
	Style int     // index into EnemyPalettes
	Alive bool
}

// Bounds returns the enemy's collision rectangle.
func (e EnemyCar) Bounds(lanes int) RectF {
	cx := LaneCenter(e.Lane, lanes)
	return RectF{
		X0: cx - EnemyW/2, Y0: e.Y,
		X1: cx + EnemyW/2, Y1: e.Y + EnemyH,
	}
}

// TrafficSystem owns the live enemy set and the spawn countdown.
type TrafficSystem struct {
	Cars      []EnemyCar
	Countdown int

	lanes int
	max   int
	seed  uint64
	rng   *Rand
	order []int // scratch for lane shuffles
}

func NewTrafficSystem(seed uint64, lanes, maxEnemies int) *TrafficSystem {
	if seed == 0 {
		seed = 1
	}
	if lanes <= 0 {
		lanes = LaneCount
	}
	if maxEnemies <= 0 {
		maxEnemies = MaxEnemies
	}
	ts := &TrafficSystem{
		Cars:  make([]EnemyCar, 0, maxEnemies),
		lanes: lanes,
		max:   maxEnemies,
		seed:  seed,
		order: make([]int, lanes),
	}
	ts.Reset()
	return ts
}

// Reset clears all enemies and rearms the first spawn.
func (ts *TrafficSystem) Reset() {
	ts.Cars = ts.Cars[:0]
	ts.Countdown = MaxSpawnInterval
	ts.rng = NewRand(ts.seed ^ 0xCAFE)
}

// Reseed changes the RNG stream used after the next Reset.
func (ts *TrafficSystem) Reseed(seed uint64) {
	if seed == 0 {
		seed = 1
	}
	ts.seed = seed
}

func (ts *TrafficSystem) AliveCount() int {
	n := 0
	for i := range ts.Cars {
		if ts.Cars[i].Alive {
			n++
		}
	}
	return n
}

// Tick runs one frame of the spawner. It returns true when an enemy was
// created. A spawn that is refused (cap reached or no fair lane) is retried
// on the next frame.
func (ts *TrafficSystem) Tick(interval int) bool {
	ts.Countdown--
	if ts.Countdown > 0 {
		return false
	}
	if ts.AliveCount() >= ts.max {
		return false
	}
	lane, ok := ts.pickLane()
	if !ok {
		return false
	}
	ts.Cars = append(ts.Cars, EnemyCar{
		Lane:  lane,
		Y:     SpawnY,
		Style: ts.rng.Intn(len(EnemyPalettes)),
		Alive: true,
	})
	next := interval + ts.rng.Range(-SpawnJitter, SpawnJitter)
	if next < 1 {
		next = 1
	}
	ts.Countdown = next
	return true
}

// pickLane draws a uniformly random lane and falls back to the other lanes
// in random order when it is not fair to spawn there.
func (ts *TrafficSystem) pickLane() (int, bool) {
	for i := range ts.order {
		ts.order[i] = i
	}
	for i := len(ts.order) - 1; i > 0; i-- {
		j := ts.rng.Intn(i + 1)
		ts.order[i], ts.order[j] = ts.order[j], ts.order[i]
	}
	for _, lane := range ts.order {
		if ts.laneFree(lane) && !ts.closesWall(lane) {
			return lane, true
		}
	}
	return 0, false
}

// laneFree reports whether no enemy in the lane is still close enough to the
// top to overlap a new spawn.
func (ts *TrafficSystem) laneFree(lane int) bool {
	for i := range ts.Cars {
		c := &ts.Cars[i]
		if c.Alive && c.Lane == lane && c.Y < SpawnY+SpawnClearance {
			return false
		}
	}
	return true
}

// closesWall reports whether spawning in lane would occupy every lane within
// WallBand of the top, leaving the player no gap.
func (ts *TrafficSystem) closesWall(lane int) bool {
	if ts.lanes <= 1 {
		return false
	}
	occupied := make([]bool, ts.lanes)
	occupied[lane] = true
	for i := range ts.Cars {
		c := &ts.Cars[i]
		if c.Alive && c.Y < SpawnY+WallBand && c.Lane >= 0 && c.Lane < ts.lanes {
			occupied[c.Lane] = true
		}
	}
	for _, o := range occupied {
		if !o {
			return false
		}
	}
	return true
}

// Advance moves every live enemy down by speed pixels.
func (ts *TrafficSystem) Advance(speed float64) {
	for i := range ts.Cars {
		if ts.Cars[i].Alive {
			ts.Cars[i].Y += speed
		}
	}
}

func (ts *TrafficSystem) RemoveDead() {
	n := 0
	for _, c := range ts.Cars {
		if c.Alive {
			ts.Cars[n] = c
			n++
		}
	}
	ts.Cars = ts.Cars[:n]
}

// Inject places an enemy directly, bypassing the spawner. Used for scripted
// scenarios.
func (ts *TrafficSystem) Inject(lane int, y float64, style int) {
	ts.Cars = append(ts.Cars, EnemyCar{
		Lane:  clamp(lane, 0, ts.lanes-1),
		Y:     y,
		Style: clamp(style, 0, len(EnemyPalettes)-1),
		Alive: true,
	})
}
