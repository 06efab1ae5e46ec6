package game

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

func (c RGB) Scale(k float64) RGB {
	k = clampF(k, 0, 1)
	return RGB{
		R: uint8(float64(c.R) * k),
		G: uint8(float64(c.G) * k),
		B: uint8(float64(c.B) * k),
	}
}

// floats returns the colour as normalized GL components.
func (c RGB) floats() (float32, float32, float32) {
	return float32(c.R) / 255.0, float32(c.G) / 255.0, float32(c.B) / 255.0
}

// CarPalette is the body and trim colour of one car style.
type CarPalette struct {
	Body RGB
	Dark RGB
}

// EnemyPalettes are picked uniformly per spawned enemy; EnemyCar.Style indexes it.
var EnemyPalettes = [...]CarPalette{
	{Body: RGB{R: 220, G: 50, B: 50}, Dark: RGB{R: 140, G: 20, B: 20}},
	{Body: RGB{R: 255, G: 140, B: 0}, Dark: RGB{R: 180, G: 80, B: 0}},
	{Body: RGB{R: 160, G: 50, B: 220}, Dark: RGB{R: 100, G: 20, B: 150}},
	{Body: RGB{R: 50, G: 200, B: 100}, Dark: RGB{R: 20, G: 130, B: 50}},
	{Body: RGB{R: 200, G: 200, B: 50}, Dark: RGB{R: 130, G: 130, B: 10}},
}

var Palette = struct {
	Grass       RGB
	Shoulder    RGB
	Road        RGB
	Edge        RGB
	LaneDash    RGB
	CenterDash  RGB
	Player      CarPalette
	Glass       RGB
	EnemyGlass  RGB
	Tyre        RGB
	Hub         RGB
	Headlight   RGB
	Taillight   RGB
	SparkHot    RGB
	SparkMid    RGB
	Panel       RGB
	Heart       RGB
	Text        RGB
	TextSoft    RGB
	TextSpeed   RGB
	TextCamera  RGB
	TextWarn    RGB
	TextOver    RGB
	PreviewBack RGB
}{
	Grass:       RGB{R: 34, G: 85, B: 34},
	Shoulder:    RGB{R: 80, G: 80, B: 80},
	Road:        RGB{R: 52, G: 52, B: 55},
	Edge:        RGB{R: 220, G: 220, B: 220},
	LaneDash:    RGB{R: 160, G: 160, B: 160},
	CenterDash:  RGB{R: 255, G: 215, B: 0},
	Player:      CarPalette{Body: RGB{R: 33, G: 150, B: 243}, Dark: RGB{R: 15, G: 87, B: 187}},
	Glass:       RGB{R: 180, G: 220, B: 240},
	EnemyGlass:  RGB{R: 160, G: 200, B: 220},
	Tyre:        RGB{R: 30, G: 30, B: 30},
	Hub:         RGB{R: 80, G: 80, B: 80},
	Headlight:   RGB{R: 255, G: 255, B: 120},
	Taillight:   RGB{R: 255, G: 80, B: 80},
	SparkHot:    RGB{R: 255, G: 255, B: 200},
	SparkMid:    RGB{R: 255, G: 180, B: 0},
	Panel:       RGB{R: 0, G: 0, B: 0},
	Heart:       RGB{R: 220, G: 50, B: 80},
	Text:        RGB{R: 255, G: 255, B: 255},
	TextSoft:    RGB{R: 200, G: 200, B: 200},
	TextSpeed:   RGB{R: 180, G: 220, B: 255},
	TextCamera:  RGB{R: 160, G: 200, B: 255},
	TextWarn:    RGB{R: 255, G: 170, B: 60},
	TextOver:    RGB{R: 255, G: 60, B: 60},
	PreviewBack: RGB{R: 20, G: 20, B: 20},
}
