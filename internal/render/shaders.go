package render

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Rect vertex shader: one unit quad per instance, stretched over the
// instance rectangle. All positions are in logical window pixels.
const rectVertSrc = `#version 410 core

layout(location = 0) in vec2 aCorner; // 0..1 quad vertex
layout(location = 1) in vec4 aRect;   // x, y, w, h
layout(location = 2) in vec4 aColor;
layout(location = 3) in float aRadius;

uniform vec2 uResolution;
uniform vec2 uOffset;

out vec2 vLocal;
out vec2 vHalf;
out vec4 vColor;
out float vRadius;

void main() {
    vec2 pos = aRect.xy + aCorner * aRect.zw + uOffset;
    vHalf = aRect.zw * 0.5;
    vLocal = (aCorner - 0.5) * aRect.zw;
    vColor = aColor;
    vRadius = min(aRadius, min(vHalf.x, vHalf.y));
    vec2 ndc = (pos / uResolution) * 2.0 - 1.0;
    ndc.y = -ndc.y;
    gl_Position = vec4(ndc, 0.0, 1.0);
}
` + "\x00"

// Rect fragment shader: rounded box SDF with a one pixel soft edge.
const rectFragSrc = `#version 410 core

in vec2 vLocal;
in vec2 vHalf;
in vec4 vColor;
in float vRadius;
out vec4 FragColor;

float roundBox(vec2 p, vec2 b, float r) {
    vec2 q = abs(p) - b + r;
    return length(max(q, 0.0)) + min(max(q.x, q.y), 0.0) - r;
}

void main() {
    float d = roundBox(vLocal, vHalf, vRadius);
    float cover = vRadius > 0.0 ? clamp(0.5 - d, 0.0, 1.0) : 1.0;
    if (cover <= 0.0) discard;
    FragColor = vec4(vColor.rgb, vColor.a * cover);
}
` + "\x00"

// Sprite vertex shader: point sprites with per-vertex pos/size/color/rotation.
// uScale converts logical pixels to framebuffer pixels for gl_PointSize.
const spriteVertSrc = `#version 410 core

layout(location = 0) in vec2 aPos;
layout(location = 1) in float aSize;
layout(location = 2) in vec4 aColor;
layout(location = 3) in float aRotation;

uniform vec2 uResolution;
uniform vec2 uOffset;
uniform float uScale;

out vec4 vColor;

void main() {
    vec2 ndc = ((aPos + uOffset) / uResolution) * 2.0 - 1.0;
    ndc.y = -ndc.y;
    gl_Position = vec4(ndc, 0.0, 1.0);
    gl_PointSize = max(1.0, floor(aSize * uScale + 0.5));
    vColor = aColor;
}
` + "\x00"

// Disc fragment shader: round point sprite with an anti-aliased rim.
const discFragSrc = `#version 410 core

in vec4 vColor;
out vec4 FragColor;

void main() {
    float dist = length(gl_PointCoord - vec2(0.5)) * 2.0;
    float edge = fwidth(dist);
    float cover = 1.0 - smoothstep(1.0 - edge, 1.0, dist);
    if (cover <= 0.0) discard;
    FragColor = vec4(vColor.rgb, vColor.a * cover);
}
` + "\x00"

// Glow fragment shader: additive radial falloff for light sprites.
// vColor.rgb is pre-multiplied by the desired brightness.
const glowFragSrc = `#version 410 core

in vec4 vColor;
out vec4 FragColor;

void main() {
    float dist = length(gl_PointCoord - vec2(0.5)) * 2.0;
    float falloff = clamp(1.0 - dist, 0.0, 1.0);
    falloff = falloff * falloff;
    FragColor = vec4(vColor.rgb * falloff, 1.0);
}
` + "\x00"

// Quad vertex shader: screen-space textured quads for glyphs and the
// camera preview.
const quadVertSrc = `#version 410 core

layout(location = 0) in vec2 aPos;
layout(location = 1) in vec2 aUV;
layout(location = 2) in vec4 aColor;

uniform vec2 uResolution;

out vec2 vUV;
out vec4 vColor;

void main() {
    vec2 ndc = (aPos / uResolution) * 2.0 - 1.0;
    ndc.y = -ndc.y;
    gl_Position = vec4(ndc, 0.0, 1.0);
    vUV = aUV;
    vColor = aColor;
}
` + "\x00"

// Quad fragment shader: texture sampling with color tint.
const quadFragSrc = `#version 410 core

uniform sampler2D uTex;

in vec2 vUV;
in vec4 vColor;
out vec4 FragColor;

void main() {
    vec4 t = texture(uTex, vUV);
    if (t.a < 0.01) discard;
    FragColor = vec4(t.rgb * vColor.rgb, t.a * vColor.a);
}
` + "\x00"

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(buf))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile shader: %s", strings.TrimRight(buf, "\x00"))
	}
	return shader, nil
}

func linkProgram(vertSrc, fragSrc string) (uint32, error) {
	vs, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	gl.DetachShader(program, vs)
	gl.DetachShader(program, fs)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(program, logLen, nil, gl.Str(buf))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link program: %s", strings.TrimRight(buf, "\x00"))
	}
	return program, nil
}
