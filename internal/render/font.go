package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/bitmapfont/v4"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"handracer/internal/game"
)

// buildFontAtlas rasterises the printable ASCII range of the bitmap font
// into a grid of FontCellW x FontCellH cells, white on transparent.
func buildFontAtlas() *image.RGBA {
	atlas := image.NewRGBA(image.Rect(0, 0, game.FontAtlasW, game.FontAtlasH))
	ascent := bitmapfont.Face.Metrics().Ascent.Ceil()

	for ch := game.FontFirst; ch <= game.FontLast; ch++ {
		idx := ch - game.FontFirst
		x := (idx % game.FontCols) * game.FontCellW
		y := (idx / game.FontCols) * game.FontCellH
		cell := atlas.SubImage(image.Rect(x, y, x+game.FontCellW, y+game.FontCellH)).(*image.RGBA)

		d := font.Drawer{
			Dst:  cell,
			Src:  image.NewUniform(color.White),
			Face: bitmapfont.Face,
			Dot:  fixed.P(x, y+ascent),
		}
		d.DrawString(string(rune(ch)))
	}
	return atlas
}
