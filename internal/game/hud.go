package game

import "fmt"

// buildHUD adds the score panel, lives, camera preview and game-over screen.
func buildHUD(f *Frame, s *State, preview *Preview) {
	hud := &f.Layers[LayerHUD]

	switch s.Mode {
	case ModePlaying:
		hud.rect(10, 10, 200, 104, 8, Palette.Panel, 0.63)
		f.text(fmt.Sprintf("Score: %d", s.Score), 18, 18, 2.5, Palette.Text)
		f.text(fmt.Sprintf("Speed  %.1f", s.Speed()), 18, 56, 1.5, Palette.TextSpeed)
		for i := 0; i < s.Lives.Current; i++ {
			drawLifeIcon(hud, 20+float64(i)*26, 84)
		}

	case ModeGameOver:
		cx := WindowWidth / 2
		cy := WindowHeight / 2
		f.textCentered("GAME OVER", cx, cy-90, 6, Palette.TextOver)
		f.textCentered(fmt.Sprintf("Final Score: %d", s.Score), cx, cy-6, 2.5, Palette.Text)
		hint := "Show your hand to restart"
		if s.Cooldown > 0 {
			secs := (s.Cooldown + TargetFPS - 1) / TargetFPS
			hint = fmt.Sprintf("Restart in %d...", secs)
		}
		f.textCentered(hint, cx, cy+44, 1.6, Palette.TextSoft)
	}

	buildPreview(f, &f.Layers[LayerOverlay], hud, s, preview)
}

// drawLifeIcon draws a small car standing for one remaining life.
func drawLifeIcon(l *Layer, x, y float64) {
	l.rect(x, y, 16, 24, 5, Palette.Heart, 1)
	l.rect(x+3, y+5, 10, 8, 3, Palette.Glass, 1)
}

// buildPreview places the camera thumbnail. Its backdrop goes on the overlay
// layer, under the image; the hand marker goes on the HUD layer, above it.
func buildPreview(f *Frame, backdrop, hud *Layer, s *State, preview *Preview) {
	backdrop.rect(PreviewX-PreviewPad, PreviewY-PreviewPad, PreviewW+2*PreviewPad, PreviewH+2*PreviewPad, 4, Palette.PreviewBack, 1)
	labelY := PreviewY + PreviewH + PreviewPad + 4

	if s.Camera == CameraMissing || preview == nil || len(preview.Pix) == 0 {
		msg := "NO CAMERA SIGNAL"
		if s.Camera != CameraMissing {
			msg = "WAITING FOR CAMERA"
		}
		f.textCentered(msg, PreviewX+PreviewW/2, PreviewY+PreviewH/2-6, 1.5, Palette.TextWarn)
		f.text("Camera", PreviewX, labelY, 1.5, Palette.TextCamera)
		return
	}

	f.previewQuad = PreviewQuad{
		X: PreviewX, Y: PreviewY, W: PreviewW, H: PreviewH,
		Image: preview,
	}
	f.Preview = &f.previewQuad

	f.text("Camera", PreviewX, labelY, 1.5, Palette.TextCamera)
	if s.Hand.Detected {
		lane := LaneForPosition(s.Hand.X, s.Lanes)
		label := fmt.Sprintf("HAND  L%d", lane+1)
		f.text(label, PreviewX+PreviewW-TextWidth(label, 1.5), labelY, 1.5, Palette.TextSpeed)
		hud.disc(PreviewX+s.Hand.X*PreviewW, PreviewY+s.Hand.Y*PreviewH, 5, Palette.CenterDash, 0.9)
	} else {
		label := "NO HAND"
		f.text(label, PreviewX+PreviewW-TextWidth(label, 1.5), labelY, 1.5, Palette.TextWarn)
	}
}
