package render

import "handracer/internal/game"

// Floats per element in each streaming buffer.
const (
	rectStride   = 9 // x, y, w, h, r, g, b, a, radius
	spriteStride = 8 // x, y, size, r, g, b, a, rotation
	quadStride   = 8 // x, y, u, v, r, g, b, a
)

func rgbf(c game.RGB) (float32, float32, float32) {
	return float32(c.R) / 255.0, float32(c.G) / 255.0, float32(c.B) / 255.0
}

// appendRects appends one instance per rect.
func appendRects(buf []float32, rects []game.Rect) []float32 {
	for _, rc := range rects {
		if rc.W <= 0 || rc.H <= 0 || rc.Alpha <= 0 {
			continue
		}
		r, g, b := rgbf(rc.Col)
		buf = append(buf, rc.X, rc.Y, rc.W, rc.H, r, g, b, rc.Alpha, rc.Radius)
	}
	return buf
}

// appendQuad appends two triangles covering (x, y, w, h) with the given UV
// rectangle: TL, TR, BL then TR, BR, BL.
func appendQuad(buf []float32, x, y, w, h, u0, v0, u1, v1, r, g, b, a float32) []float32 {
	return append(buf,
		x, y, u0, v0, r, g, b, a,
		x+w, y, u1, v0, r, g, b, a,
		x, y+h, u0, v1, r, g, b, a,
		x+w, y, u1, v0, r, g, b, a,
		x+w, y+h, u1, v1, r, g, b, a,
		x, y+h, u0, v1, r, g, b, a,
	)
}

// glyphUV returns the atlas UV rectangle of a printable ASCII character.
func glyphUV(ch rune) (u0, v0, u1, v1 float32, ok bool) {
	if ch < game.FontFirst || ch > game.FontLast {
		return 0, 0, 0, 0, false
	}
	idx := int(ch) - game.FontFirst
	column := idx % game.FontCols
	row := idx / game.FontCols

	u0 = float32(column*game.FontCellW) / float32(game.FontAtlasW)
	v0 = float32(row*game.FontCellH) / float32(game.FontAtlasH)
	u1 = float32((column+1)*game.FontCellW) / float32(game.FontAtlasW)
	v1 = float32((row+1)*game.FontCellH) / float32(game.FontAtlasH)
	return u0, v0, u1, v1, true
}

// appendText queues a text run as glyph quads. Characters outside the atlas
// still advance the pen.
func appendText(buf []float32, t game.Text) []float32 {
	advance := float32(game.FontCellW) * t.Scale
	lineAdvance := float32(game.FontCellH) * t.Scale
	w, h := advance, lineAdvance
	baseX := float32(t.X)
	x := baseX
	y := float32(t.Y)
	r, g, b := rgbf(t.Col)
	for _, ch := range t.Str {
		if ch == '\n' {
			x = baseX
			y += lineAdvance
			continue
		}
		if u0, v0, u1, v1, ok := glyphUV(ch); ok && ch != ' ' {
			buf = appendQuad(buf, x, y, w, h, u0, v0, u1, v1, r, g, b, 1)
		}
		x += advance
	}
	return buf
}
