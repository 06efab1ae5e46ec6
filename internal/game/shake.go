package game

// Shake offsets the world layers after a crash.
type Shake struct {
	X, Y      float64 // current offset in pixels
	Timer     float64 // remaining shake time (seconds)
	Intensity float64 // max offset magnitude
}

const (
	CrashShakeIntensity = 6.0
	CrashShakeDuration  = 0.3
)

// Add triggers shake with given intensity and duration. Overlapping shakes
// keep the stronger of each.
func (c *Shake) Add(intensity, duration float64) {
	if intensity > c.Intensity {
		c.Intensity = intensity
	}
	if duration > c.Timer {
		c.Timer = duration
	}
}

// Update decays shake and computes random offsets.
func (c *Shake) Update(dt float64, seed uint64) {
	if c.Timer <= 0 {
		c.X = 0
		c.Y = 0
		c.Intensity = 0
		return
	}
	c.Timer -= dt
	if c.Timer < 0 {
		c.Timer = 0
	}
	// Decaying intensity.
	t := c.Timer
	rr := NewRand(seed ^ uint64(t*10000))
	mag := c.Intensity * (t / (t + 0.08))
	c.X = rr.RangeF(-mag, mag)
	c.Y = rr.RangeF(-mag, mag)
}
