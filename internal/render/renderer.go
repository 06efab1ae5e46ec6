package render

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"handracer/internal/game"
)

// MaxSprites caps the sprites drawn per layer and blend mode.
const MaxSprites = 4096

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// Renderer draws game.Frame values. It must be created and used on the
// thread that owns the GL context.
type Renderer struct {
	// Rounded rect program, instanced over a unit quad.
	rectProg    uint32
	rectVAO     uint32
	quadVBO     uint32
	rectVBO     uint32
	rectURes    int32
	rectUOffset int32

	// Point sprite programs share one VAO.
	discProg    uint32
	glowProg    uint32
	spriteVAO   uint32
	spriteVBO   uint32
	discURes    int32
	discUOffset int32
	discUScale  int32
	glowURes    int32
	glowUOffset int32
	glowUScale  int32

	// Textured quads: glyphs and the camera preview.
	texProg uint32
	texVAO  uint32
	texVBO  uint32
	texURes int32
	texUTex int32
	fontTex uint32
	camTex  uint32
	camW    int
	camH    int
	camSeq  uint64

	rectBuf []float32
	textBuf []float32
	quadBuf []float32
}

func NewRenderer() (*Renderer, error) {
	rectProg, err := linkProgram(rectVertSrc, rectFragSrc)
	if err != nil {
		return nil, fmt.Errorf("rect program: %w", err)
	}
	discProg, err := linkProgram(spriteVertSrc, discFragSrc)
	if err != nil {
		gl.DeleteProgram(rectProg)
		return nil, fmt.Errorf("disc program: %w", err)
	}
	glowProg, err := linkProgram(spriteVertSrc, glowFragSrc)
	if err != nil {
		gl.DeleteProgram(rectProg)
		gl.DeleteProgram(discProg)
		return nil, fmt.Errorf("glow program: %w", err)
	}
	texProg, err := linkProgram(quadVertSrc, quadFragSrc)
	if err != nil {
		gl.DeleteProgram(rectProg)
		gl.DeleteProgram(discProg)
		gl.DeleteProgram(glowProg)
		return nil, fmt.Errorf("texture program: %w", err)
	}

	r := &Renderer{
		rectProg: rectProg,
		discProg: discProg,
		glowProg: glowProg,
		texProg:  texProg,
	}
	r.initRects()
	r.initSprites()
	r.initQuads()
	gl.BindVertexArray(0)
	return r, nil
}

func (r *Renderer) initRects() {
	var vao, quad, inst uint32
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &quad)
	gl.GenBuffers(1, &inst)
	gl.BindVertexArray(vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, quad)
	quadVerts := [12]float32{
		0, 0, 1, 0, 1, 1,
		0, 0, 1, 1, 0, 1,
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVerts)*4, gl.Ptr(&quadVerts[0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, glOffset(0))

	gl.BindBuffer(gl.ARRAY_BUFFER, inst)
	stride := int32(rectStride * 4)
	gl.BufferData(gl.ARRAY_BUFFER, 1024*int(stride), nil, gl.STREAM_DRAW)
	// aRect (vec4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, stride, glOffset(0))
	gl.VertexAttribDivisor(1, 1)
	// aColor (vec4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(4*4))
	gl.VertexAttribDivisor(2, 1)
	// aRadius (float)
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointer(3, 1, gl.FLOAT, false, stride, glOffset(8*4))
	gl.VertexAttribDivisor(3, 1)

	r.rectVAO, r.quadVBO, r.rectVBO = vao, quad, inst
	r.rectURes = gl.GetUniformLocation(r.rectProg, gl.Str("uResolution\x00"))
	r.rectUOffset = gl.GetUniformLocation(r.rectProg, gl.Str("uOffset\x00"))
}

func (r *Renderer) initSprites() {
	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)

	stride := int32(spriteStride * 4)
	gl.BufferData(gl.ARRAY_BUFFER, MaxSprites*int(stride), nil, gl.STREAM_DRAW)
	// aPos (vec2)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	// aSize (float)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 1, gl.FLOAT, false, stride, glOffset(2*4))
	// aColor (vec4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(3*4))
	// aRotation (float)
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointer(3, 1, gl.FLOAT, false, stride, glOffset(7*4))

	r.spriteVAO, r.spriteVBO = vao, vbo
	r.discURes = gl.GetUniformLocation(r.discProg, gl.Str("uResolution\x00"))
	r.discUOffset = gl.GetUniformLocation(r.discProg, gl.Str("uOffset\x00"))
	r.discUScale = gl.GetUniformLocation(r.discProg, gl.Str("uScale\x00"))
	r.glowURes = gl.GetUniformLocation(r.glowProg, gl.Str("uResolution\x00"))
	r.glowUOffset = gl.GetUniformLocation(r.glowProg, gl.Str("uOffset\x00"))
	r.glowUScale = gl.GetUniformLocation(r.glowProg, gl.Str("uScale\x00"))
}

func (r *Renderer) initQuads() {
	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)

	stride := int32(quadStride * 4)
	gl.BufferData(gl.ARRAY_BUFFER, 512*6*int(stride), nil, gl.STREAM_DRAW)
	gl.EnableVertexAttribArray(0) // aPos
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1) // aUV
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, glOffset(2*4))
	gl.EnableVertexAttribArray(2) // aColor
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(4*4))

	r.texVAO, r.texVBO = vao, vbo
	gl.UseProgram(r.texProg)
	r.texURes = gl.GetUniformLocation(r.texProg, gl.Str("uResolution\x00"))
	r.texUTex = gl.GetUniformLocation(r.texProg, gl.Str("uTex\x00"))
	gl.Uniform1i(r.texUTex, 2) // texture unit 2
}

// InitFont uploads the glyph atlas used for all text.
func (r *Renderer) InitFont() error {
	atlas := buildFontAtlas()
	b := atlas.Bounds()
	if b.Dx() != game.FontAtlasW || b.Dy() != game.FontAtlasH {
		return fmt.Errorf("font atlas is %dx%d, want %dx%d", b.Dx(), b.Dy(), game.FontAtlasW, game.FontAtlasH)
	}
	r.fontTex = newTexture(b.Dx(), b.Dy(), atlas.Pix)
	return nil
}

func newTexture(w, h int, pix []byte) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	var ptr unsafe.Pointer
	if len(pix) > 0 {
		ptr = gl.Ptr(pix)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8,
		int32(w), int32(h), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, ptr)
	return tex
}

func (r *Renderer) Destroy() {
	for _, id := range []uint32{r.quadVBO, r.rectVBO, r.spriteVBO, r.texVBO} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	for _, id := range []uint32{r.rectVAO, r.spriteVAO, r.texVAO} {
		if id != 0 {
			gl.DeleteVertexArrays(1, &id)
		}
	}
	for _, id := range []uint32{r.rectProg, r.discProg, r.glowProg, r.texProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
	for _, id := range []uint32{r.fontTex, r.camTex} {
		if id != 0 {
			gl.DeleteTextures(1, &id)
		}
	}
}

// Draw renders a frame into the current framebuffer. Logical coordinates
// are stretched over the whole framebuffer.
func (r *Renderer) Draw(f *game.Frame, fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	cr, cg, cb := rgbf(f.Clear)
	gl.ClearColor(cr, cg, cb, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	scale := float32(fbW) / float32(game.WindowWidth)
	gl.Enable(gl.BLEND)
	for i := range f.Layers {
		l := &f.Layers[i]
		var ox, oy float32
		if l.Shaken {
			ox, oy = f.ShakeX, f.ShakeY
		}
		r.drawRects(l.Rects, ox, oy)
		r.drawSprites(r.discProg, r.discURes, r.discUOffset, r.discUScale, l.Discs, ox, oy, scale, false)
		r.drawSprites(r.glowProg, r.glowURes, r.glowUOffset, r.glowUScale, l.Glows, ox, oy, scale, true)
		if i == game.LayerOverlay && f.Preview != nil {
			r.drawPreview(f.Preview)
		}
	}
	r.drawTexts(f.Texts)
	gl.Disable(gl.BLEND)
}

func (r *Renderer) drawRects(rects []game.Rect, ox, oy float32) {
	r.rectBuf = appendRects(r.rectBuf[:0], rects)
	if len(r.rectBuf) == 0 {
		return
	}
	count := len(r.rectBuf) / rectStride

	gl.UseProgram(r.rectProg)
	gl.BindVertexArray(r.rectVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.rectVBO)
	gl.Uniform2f(r.rectURes, game.WindowWidth, game.WindowHeight)
	gl.Uniform2f(r.rectUOffset, ox, oy)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.BufferData(gl.ARRAY_BUFFER, len(r.rectBuf)*4, gl.Ptr(r.rectBuf), gl.STREAM_DRAW)
	gl.DrawArraysInstanced(gl.TRIANGLES, 0, 6, int32(count))
}

// drawSprites renders point sprites. additive selects ONE/ONE blending for
// light sprites; otherwise standard alpha blending.
func (r *Renderer) drawSprites(prog uint32, uRes, uOffset, uScale int32, buf []float32, ox, oy, scale float32, additive bool) {
	if len(buf) == 0 {
		return
	}
	count := len(buf) / spriteStride
	if count > MaxSprites {
		count = MaxSprites
	}

	gl.UseProgram(prog)
	gl.BindVertexArray(r.spriteVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.spriteVBO)
	gl.Uniform2f(uRes, game.WindowWidth, game.WindowHeight)
	gl.Uniform2f(uOffset, ox, oy)
	gl.Uniform1f(uScale, scale)

	if additive {
		gl.BlendFunc(gl.ONE, gl.ONE)
	} else {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}

	gl.BufferData(gl.ARRAY_BUFFER, count*spriteStride*4, gl.Ptr(buf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.POINTS, 0, int32(count))
}

// drawPreview uploads the camera image when it changed and draws it.
func (r *Renderer) drawPreview(q *game.PreviewQuad) {
	img := q.Image
	if img == nil || img.W <= 0 || img.H <= 0 || len(img.Pix) < img.W*img.H*4 {
		return
	}
	gl.ActiveTexture(gl.TEXTURE2)
	switch {
	case r.camTex == 0 || img.W != r.camW || img.H != r.camH:
		if r.camTex != 0 {
			gl.DeleteTextures(1, &r.camTex)
		}
		r.camTex = newTexture(img.W, img.H, img.Pix)
		r.camW, r.camH, r.camSeq = img.W, img.H, img.Seq
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	case img.Seq != r.camSeq:
		gl.BindTexture(gl.TEXTURE_2D, r.camTex)
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(img.W), int32(img.H),
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
		r.camSeq = img.Seq
	default:
		gl.BindTexture(gl.TEXTURE_2D, r.camTex)
	}

	r.quadBuf = appendQuad(r.quadBuf[:0], q.X, q.Y, q.W, q.H, 0, 0, 1, 1, 1, 1, 1, 1)
	r.drawQuads(r.quadBuf)
	gl.ActiveTexture(gl.TEXTURE0)
}

func (r *Renderer) drawTexts(texts []game.Text) {
	if r.fontTex == 0 {
		return
	}
	r.textBuf = r.textBuf[:0]
	for _, t := range texts {
		r.textBuf = appendText(r.textBuf, t)
	}
	if len(r.textBuf) == 0 {
		return
	}
	gl.ActiveTexture(gl.TEXTURE2)
	gl.BindTexture(gl.TEXTURE_2D, r.fontTex)
	r.drawQuads(r.textBuf)
	gl.ActiveTexture(gl.TEXTURE0)
}

// drawQuads draws textured triangles with the texture bound to unit 2.
func (r *Renderer) drawQuads(buf []float32) {
	gl.UseProgram(r.texProg)
	gl.BindVertexArray(r.texVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.texVBO)
	gl.Uniform2f(r.texURes, game.WindowWidth, game.WindowHeight)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	count := len(buf) / quadStride
	gl.BufferData(gl.ARRAY_BUFFER, len(buf)*4, gl.Ptr(buf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(count))
}
