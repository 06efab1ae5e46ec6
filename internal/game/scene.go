package game

// BuildFrame describes the current state as a Frame. It does not mutate s;
// passing the same state twice yields the same frame. f is reused when
// non-nil.
func BuildFrame(f *Frame, s *State, preview *Preview) *Frame {
	if f == nil {
		f = NewFrame()
	}
	f.reset()
	f.Clear = Palette.Grass
	f.ShakeX = float32(s.Shake.X)
	f.ShakeY = float32(s.Shake.Y)

	road := &f.Layers[LayerRoad]
	road.Shaken = true
	drawRoad(road, s)

	cars := &f.Layers[LayerCars]
	cars.Shaken = true
	for i := range s.Traffic.Cars {
		e := &s.Traffic.Cars[i]
		if e.Alive {
			drawEnemyCar(cars, LaneCenter(e.Lane, s.Lanes), e.Y, EnemyPalettes[e.Style%len(EnemyPalettes)])
		}
	}
	if s.Mode == ModePlaying {
		drawPlayerCar(cars, s.Player.X-CarW/2, s.Player.Y)
	}

	fx := &f.Layers[LayerEffects]
	fx.Shaken = true
	fx.Discs = s.Particles.ParticleRenderData(fx.Discs)

	if s.Mode == ModeGameOver {
		f.Layers[LayerOverlay].rect(0, 0, WindowWidth, WindowHeight, 0, Palette.Panel, 0.55)
	}

	buildHUD(f, s, preview)
	return f
}

func drawRoad(l *Layer, s *State) {
	// Grass comes from the clear colour; shake can expose the window edge so
	// it is also drawn oversized.
	l.rect(-16, -16, WindowWidth+32, WindowHeight+32, 0, Palette.Grass, 1)
	l.rect(RoadLeft-ShoulderWidth, -16, ShoulderWidth, WindowHeight+32, 0, Palette.Shoulder, 1)
	l.rect(RoadRight, -16, ShoulderWidth, WindowHeight+32, 0, Palette.Shoulder, 1)
	l.rect(RoadLeft, -16, RoadWidth, WindowHeight+32, 0, Palette.Road, 1)
	l.rect(RoadLeft-1, -16, 3, WindowHeight+32, 0, Palette.Edge, 1)
	l.rect(RoadRight-2, -16, 3, WindowHeight+32, 0, Palette.Edge, 1)

	// Dashed separators between lanes, scrolling toward the player.
	step := float64(DashLen + DashGap)
	for lane := 0; lane < s.Lanes-1; lane++ {
		bx := LaneBoundary(lane, s.Lanes)
		for y := -s.DashOffset; y < WindowHeight; y += step {
			l.rect(bx-1, y, 2, DashLen, 0, Palette.LaneDash, 1)
		}
	}
	cx := float64(WindowWidth / 2)
	for y := -s.DashOffset; y < WindowHeight; y += step {
		l.rect(cx-1.5, y, 3, DashLen, 0, Palette.CenterDash, 1)
	}

	var streaks [64]Streak
	for _, st := range SpeedLines(streaks[:0], s.Speed(), s.Tick, s.Seed) {
		l.rect(st.X, st.Y0, 1, st.Y1-st.Y0, 0, Palette.Text, st.Alpha)
	}
}

// drawPlayerCar draws the player's car with its top-left corner at (x, y).
func drawPlayerCar(l *Layer, x, y float64) {
	body := Palette.Player
	l.rect(x, y, CarW, CarH, 14, body.Body, 1)
	l.rect(x+8, y+10, CarW-16, CarH-48, 8, body.Dark, 1)
	l.rect(x+12, y+18, CarW-24, 18, 4, Palette.Glass, 1)
	l.rect(x+8, y+2, 12, 9, 4.5, Palette.Headlight, 1)
	l.rect(x+CarW-20, y+2, 12, 9, 4.5, Palette.Headlight, 1)
	l.rect(x+8, y+CarH-10, 12, 8, 4, Palette.Taillight, 1)
	l.rect(x+CarW-20, y+CarH-10, 12, 8, 4, Palette.Taillight, 1)

	l.disc(x+12, y+CarH-12, 10, Palette.Tyre, 1)
	l.disc(x+CarW-12, y+CarH-12, 10, Palette.Tyre, 1)
	l.disc(x+12, y+12, 8, Palette.Hub, 1)
	l.disc(x+CarW-12, y+12, 8, Palette.Hub, 1)

	l.glow(x+14, y-6, 46, Palette.Headlight, 0.30)
	l.glow(x+CarW-14, y-6, 46, Palette.Headlight, 0.30)
}

// drawEnemyCar draws an oncoming car centred on cx with its top edge at y.
// Its lights face the player: tail lights on top, headlights at the bottom.
func drawEnemyCar(l *Layer, cx, y float64, pal CarPalette) {
	x := cx - EnemyW/2
	l.rect(x, y, EnemyW, EnemyH, 14, pal.Body, 1)
	l.rect(x+8, y+10, EnemyW-16, EnemyH-48, 8, pal.Dark, 1)
	l.rect(x+12, y+EnemyH-36, EnemyW-24, 18, 4, Palette.EnemyGlass, 1)
	l.rect(x+8, y+2, 12, 9, 4.5, Palette.Taillight, 1)
	l.rect(x+EnemyW-20, y+2, 12, 9, 4.5, Palette.Taillight, 1)
	l.rect(x+8, y+EnemyH-10, 12, 8, 4, Palette.Headlight, 1)
	l.rect(x+EnemyW-20, y+EnemyH-10, 12, 8, 4, Palette.Headlight, 1)

	l.disc(x+12, y+12, 8, Palette.Tyre, 1)
	l.disc(x+EnemyW-12, y+12, 8, Palette.Tyre, 1)
	l.disc(x+12, y+EnemyH-12, 10, Palette.Tyre, 1)
	l.disc(x+EnemyW-12, y+EnemyH-12, 10, Palette.Tyre, 1)

	l.glow(x+14, y+EnemyH+6, 50, Palette.Headlight, 0.35)
	l.glow(x+EnemyW-14, y+EnemyH+6, 50, Palette.Headlight, 0.35)
}
