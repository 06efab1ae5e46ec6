package game

// Rect is a filled rectangle with optionally rounded corners, in logical
// pixels with the origin at the top-left of the window.
type Rect struct {
	X, Y, W, H float32
	Radius     float32
	Col        RGB
	Alpha      float32
}

// Text is a run of ASCII glyphs drawn from the font atlas. X, Y is the
// top-left corner of the first glyph.
type Text struct {
	Str   string
	X, Y  int
	Scale float32
	Col   RGB
}

// Layer groups primitives that are drawn together: rects first, then disc
// sprites, then additive glow sprites. Sprite buffers use the format
// [x, y, size, r, g, b, a, rotation] * N.
type Layer struct {
	Rects  []Rect
	Discs  []float32
	Glows  []float32
	Shaken bool // offset by the frame's shake
}

func (l *Layer) reset() {
	l.Rects = l.Rects[:0]
	l.Discs = l.Discs[:0]
	l.Glows = l.Glows[:0]
	l.Shaken = false
}

func (l *Layer) rect(x, y, w, h, radius float64, col RGB, alpha float64) {
	l.Rects = append(l.Rects, Rect{
		X: float32(x), Y: float32(y), W: float32(w), H: float32(h),
		Radius: float32(radius), Col: col, Alpha: float32(alpha),
	})
}

// disc queues a filled circle of radius r centred at (x, y).
func (l *Layer) disc(x, y, r float64, col RGB, alpha float64) {
	rc, gc, bc := col.floats()
	l.Discs = append(l.Discs, float32(x), float32(y), float32(2*r), rc, gc, bc, float32(alpha), 0)
}

// glow queues an additive radial light; brightness pre-multiplies the colour.
func (l *Layer) glow(x, y, size float64, col RGB, brightness float64) {
	rc, gc, bc := col.floats()
	b := float32(brightness)
	l.Glows = append(l.Glows, float32(x), float32(y), float32(size), rc*b, gc*b, bc*b, 1, 0)
}

// Preview is an RGBA camera thumbnail. Seq increases whenever Pix changes so
// the renderer only re-uploads new images.
type Preview struct {
	W, H int
	Pix  []byte
	Seq  uint64
}

// PreviewQuad places a preview image on screen.
type PreviewQuad struct {
	X, Y, W, H float32
	Image      *Preview
}

// Frame is a complete description of one rendered frame. Layers are drawn in
// order with the preview image right after LayerOverlay; texts come last.
type Frame struct {
	Clear          RGB
	Layers         []Layer
	Preview        *PreviewQuad
	Texts          []Text
	ShakeX, ShakeY float32

	previewQuad PreviewQuad
}

// Layer indices, in draw order.
const (
	LayerRoad = iota
	LayerCars
	LayerEffects
	LayerOverlay
	LayerHUD
	layerCount
)

func NewFrame() *Frame {
	return &Frame{Layers: make([]Layer, layerCount)}
}

func (f *Frame) reset() {
	if len(f.Layers) != layerCount {
		f.Layers = make([]Layer, layerCount)
	}
	for i := range f.Layers {
		f.Layers[i].reset()
	}
	f.Texts = f.Texts[:0]
	f.Preview = nil
	f.ShakeX, f.ShakeY = 0, 0
}

func (f *Frame) text(s string, x, y int, scale float32, col RGB) {
	f.Texts = append(f.Texts, Text{Str: s, X: x, Y: y, Scale: scale, Col: col})
}

// textCentered queues s horizontally centred on cx.
func (f *Frame) textCentered(s string, cx, y int, scale float32, col RGB) {
	f.text(s, cx-TextWidth(s, scale)/2, y, scale, col)
}

// TextWidth returns the width in pixels of a single line at given scale.
func TextWidth(text string, scale float32) int {
	return int(float32(len(text)*FontCellW) * scale)
}
