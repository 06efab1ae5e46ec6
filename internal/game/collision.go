package game

// ResolveCollisions consumes every live enemy that overlaps the player and
// retires enemies that left the bottom of the field. A crash costs exactly
// one life; a clean pass scores ScorePerPass. Reaching zero lives switches
// to ModeGameOver and stops processing for the frame.
func ResolveCollisions(s *State, bus *EventBus) (crashes, passes int) {
	if s.Mode != ModePlaying {
		return 0, 0
	}
	player := s.Player.Bounds()
	cars := s.Traffic.Cars

	for i := range cars {
		e := &cars[i]
		if !e.Alive {
			continue
		}
		eb := e.Bounds(s.Lanes)
		switch {
		case player.Overlaps(eb):
			e.Alive = false
			crashes++
			out := s.Lives.Lose()
			cx, cy := eb.Center()
			s.Particles.SpawnCrash(cx, cy, EnemyPalettes[e.Style%len(EnemyPalettes)])
			s.Shake.Add(CrashShakeIntensity, CrashShakeDuration)
			bus.Emit(Event{Type: EventCrash, X: cx, Y: cy, Lane: e.Lane, Score: s.Score, Lives: s.Lives.Current})
			if out {
				s.Mode = ModeGameOver
				s.Cooldown = RestartCooldown
				bus.Emit(Event{Type: EventGameOver, X: cx, Y: cy, Score: s.Score})
				s.Traffic.RemoveDead()
				return crashes, passes
			}
		case e.Y > WindowHeight:
			e.Alive = false
			passes++
			s.Score += ScorePerPass
			bus.Emit(Event{Type: EventPass, Lane: e.Lane, Score: s.Score, Lives: s.Lives.Current})
		}
	}
	s.Traffic.RemoveDead()
	return crashes, passes
}
