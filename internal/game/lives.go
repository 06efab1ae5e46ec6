package game

// Lives tracks the remaining lives of the player.
type Lives struct {
	Current int
	Max     int
}

func NewLives(max int) Lives {
	return Lives{Current: max, Max: max}
}

// Lose removes one life and reports whether the player is out of lives.
func (l *Lives) Lose() bool {
	if l.Current > 0 {
		l.Current--
	}
	return l.Current == 0
}

func (l *Lives) Fraction() float64 {
	if l.Max <= 0 {
		return 0
	}
	return clampF(float64(l.Current)/float64(l.Max), 0, 1)
}

func (l *Lives) IsOut() bool {
	return l.Current <= 0
}
