package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLaneForPosition(t *testing.T) {
	tests := []struct {
		name string
		p    float64
		want int
	}{
		{"left edge", 0, 0},
		{"left third", 0.2, 0},
		{"just below first third", 1.0/3 - 1e-9, 0},
		{"exact first third", 1.0 / 3, 1},
		{"middle", 0.5, 1},
		{"just below second third", 2.0/3 - 1e-9, 1},
		{"exact second third", 2.0 / 3, 2},
		{"right third", 0.9, 2},
		{"right edge", 1, 2},
		{"below range clamps", -0.4, 0},
		{"above range clamps", 1.7, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LaneForPosition(tt.p, 3))
		})
	}
}

func TestLaneForPositionSingleLane(t *testing.T) {
	assert.Equal(t, 0, LaneForPosition(0.99, 1))
}

func TestLaneCenters(t *testing.T) {
	assert.InDelta(t, 186.67, LaneCenter(0, 3), 0.01)
	assert.InDelta(t, 400.0, LaneCenter(1, 3), 0.01)
	assert.InDelta(t, 613.33, LaneCenter(2, 3), 0.01)
	assert.InDelta(t, 293.33, LaneBoundary(0, 3), 0.01)
}

func TestPlayerConvergesToRightLane(t *testing.T) {
	p := NewPlayerCar(LaneCount)
	require.Equal(t, 1, p.Lane)
	hand := HandSample{X: 0.9, Y: 0.5, Detected: true}
	target := LaneCenter(2, LaneCount)

	prev := p.X
	for i := 0; i < 10; i++ {
		UpdateLane(&p, hand, LaneCount)
		assert.GreaterOrEqual(t, p.X, prev, "frame %d moved backwards", i)
		assert.LessOrEqual(t, p.X, target, "frame %d overshot", i)
		prev = p.X
	}
	assert.Equal(t, 2, p.Lane)
	assert.InDelta(t, target, p.X, 15)

	converged := -1
	for i := 0; i < 30; i++ {
		UpdateLane(&p, hand, LaneCount)
		assert.LessOrEqual(t, p.X, target)
		if p.X == target {
			converged = i
			break
		}
	}
	require.NotEqual(t, -1, converged, "player never reached the lane centre")
	assert.Equal(t, target, p.X)
}

func TestUpdateLaneIsIdempotentOnceConverged(t *testing.T) {
	p := NewPlayerCar(LaneCount)
	hand := HandSample{X: 0.1, Detected: true}

	assert.True(t, UpdateLane(&p, hand, LaneCount), "first input changes the lane")
	for i := 0; i < 60; i++ {
		assert.False(t, UpdateLane(&p, hand, LaneCount))
	}
	x := p.X
	for i := 0; i < 10; i++ {
		UpdateLane(&p, hand, LaneCount)
		assert.Equal(t, x, p.X)
	}
	assert.Equal(t, LaneCenter(0, LaneCount), p.X)
}

func TestUpdateLaneHoldsWithoutHand(t *testing.T) {
	p := NewPlayerCar(LaneCount)
	UpdateLane(&p, HandSample{X: 0.05, Detected: true}, LaneCount)
	for i := 0; i < 100; i++ {
		assert.False(t, UpdateLane(&p, NoHand, LaneCount))
		assert.Equal(t, 0, p.Lane)
	}
	assert.Equal(t, LaneCenter(0, LaneCount), p.X)
}

func TestRectOverlap(t *testing.T) {
	a := RectF{X0: 0, Y0: 0, X1: 10, Y1: 10}
	assert.True(t, a.Overlaps(RectF{X0: 5, Y0: 5, X1: 15, Y1: 15}))
	assert.False(t, a.Overlaps(RectF{X0: 10, Y0: 0, X1: 20, Y1: 10}), "touching edges do not overlap")
	assert.False(t, a.Overlaps(RectF{X0: 0, Y0: 11, X1: 10, Y1: 20}))
}
