package game

// Difficulty returns the enemy speed (pixels per frame) and base spawn
// interval (frames) for a score. Speed never decreases and is capped at
// maxSpeed; the interval never increases and bottoms out at MinSpawnInterval.
func Difficulty(score int, maxSpeed float64) (speed float64, interval int) {
	if score < 0 {
		score = 0
	}
	if maxSpeed <= 0 {
		maxSpeed = MaxSpeed
	}
	speed = StartSpeed + SpeedStep*float64(score/SpeedEvery)
	if speed > maxSpeed {
		speed = maxSpeed
	}
	interval = MaxSpawnInterval - score/SpawnScoreDiv
	if interval < MinSpawnInterval {
		interval = MinSpawnInterval
	}
	return speed, interval
}
