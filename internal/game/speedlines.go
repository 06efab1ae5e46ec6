package game

// Streak is one vertical motion line drawn over the road.
type Streak struct {
	X      float64
	Y0, Y1 float64
	Alpha  float64
}

// SpeedLineCount returns how many streaks are drawn at a speed.
func SpeedLineCount(speed float64) int {
	if speed < SpeedLineMin {
		return 0
	}
	return int(speed * 1.5)
}

// SpeedLineAlphaFor returns the streak opacity at a speed.
func SpeedLineAlphaFor(speed float64) float64 {
	if speed < SpeedLineMin {
		return 0
	}
	return clampF((speed-SpeedLineMin)/SpeedLineRange, 0, 1) * SpeedLineAlpha
}

// SpeedLines appends the streaks for a frame. The layout is stable for
// SpeedLineReseed ticks at a time so the lines flicker rather than strobe.
func SpeedLines(dst []Streak, speed float64, tick, seed uint64) []Streak {
	n := SpeedLineCount(speed)
	if n == 0 {
		return dst
	}
	alpha := SpeedLineAlphaFor(speed)
	r := NewRand(hashTick(seed^0x5EED11E5, tick/SpeedLineReseed))
	for range n {
		x := float64(r.Range(RoadLeft, RoadRight))
		y0 := float64(r.Range(0, WindowHeight))
		ln := float64(r.Range(20, 60))
		y1 := y0 + ln
		if y1 > WindowHeight {
			y1 = WindowHeight
		}
		dst = append(dst, Streak{X: x, Y0: y0, Y1: y1, Alpha: alpha})
	}
	return dst
}
