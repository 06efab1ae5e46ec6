package game

import "math"

// PlayerCar is the steered car. X is the centre of the car; it slides toward
// the centre of Lane.
type PlayerCar struct {
	Lane int
	X    float64
	Y    float64
}

// LaneForPosition partitions [0,1] into lanes equal strips. A position on a
// boundary belongs to the upper lane.
func LaneForPosition(p float64, lanes int) int {
	if lanes <= 1 {
		return 0
	}
	p = clampF(p, 0, 1)
	for i := lanes - 1; i > 0; i-- {
		if p >= float64(i)/float64(lanes) {
			return i
		}
	}
	return 0
}

// LaneCenter returns the x of lane i's centre line.
func LaneCenter(lane, lanes int) float64 {
	if lanes <= 0 {
		lanes = LaneCount
	}
	w := float64(RoadWidth) / float64(lanes)
	return float64(RoadLeft) + w*float64(lane) + w/2
}

// LaneBoundary returns the x of the separator to the right of lane i.
func LaneBoundary(lane, lanes int) float64 {
	w := float64(RoadWidth) / float64(lanes)
	return float64(RoadLeft) + w*float64(lane+1)
}

func NewPlayerCar(lanes int) PlayerCar {
	center := lanes / 2
	return PlayerCar{
		Lane: center,
		X:    LaneCenter(center, lanes),
		Y:    PlayerY,
	}
}

// UpdateLane applies one frame of steering. A missing hand holds the current
// target lane. It returns true when the target lane changed.
func UpdateLane(p *PlayerCar, hand HandSample, lanes int) bool {
	changed := false
	if hand.Detected {
		target := LaneForPosition(hand.X, lanes)
		if target != p.Lane {
			p.Lane = target
			changed = true
		}
	}

	tx := LaneCenter(p.Lane, lanes)
	if math.Abs(tx-p.X) <= LaneSnap {
		p.X = tx
	} else {
		p.X = lerp(p.X, tx, LaneLerp)
	}
	return changed
}

// Bounds returns the player's collision rectangle.
func (p PlayerCar) Bounds() RectF {
	return RectF{
		X0: p.X - CarW/2, Y0: p.Y,
		X1: p.X + CarW/2, Y1: p.Y + CarH,
	}
}

// RectF is an axis-aligned rectangle [X0,X1) x [Y0,Y1).
type RectF struct {
	X0, Y0, X1, Y1 float64
}

func (r RectF) Overlaps(o RectF) bool {
	return r.X0 < o.X1 && o.X0 < r.X1 && r.Y0 < o.Y1 && o.Y0 < r.Y1
}

func (r RectF) Center() (float64, float64) {
	return (r.X0 + r.X1) / 2, (r.Y0 + r.Y1) / 2
}
