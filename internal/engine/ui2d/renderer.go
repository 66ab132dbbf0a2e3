// Package ui2d provides a small immediate-mode 2D UI drawn with OpenGL over
// the 3D scene.
package ui2d

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/font/basicfont"

	"github.com/Faultbox/cityblocks/internal/engine/shader"
	"github.com/Faultbox/cityblocks/pkg/math"
)

const (
	solidStride = 7 // pos3 + color4
	textStride  = 9 // pos3 + uv2 + color4
)

// Renderer batches quads and text for one frame and draws them in End.
// Coordinates are in window points with the origin at the top left.
type Renderer struct {
	screenWidth  int
	screenHeight int

	font *Font

	// nil for a layout renderer
	solidProgram *shader.Program
	textProgram  *shader.Program

	solidVAO, solidVBO uint32
	textVAO, textVBO   uint32

	solidVertices []float32
	textVertices  []float32

	clip    Rect
	clipped bool
}

// NewLayoutRenderer returns a renderer that batches geometry without a GL
// context. End discards the batch.
func NewLayoutRenderer(width, height int) *Renderer {
	return &Renderer{
		screenWidth:   width,
		screenHeight:  height,
		font:          newFont(basicfont.Face7x13),
		solidVertices: make([]float32, 0, 4096),
		textVertices:  make([]float32, 0, 4096),
	}
}

// New creates a renderer that draws with OpenGL.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(width, height int) (*Renderer, error) {
	r := NewLayoutRenderer(width, height)

	var err error
	r.solidProgram, err = shader.NewProgram(solidVertexShader, solidFragmentShader, map[string]uint32{
		"a_position": 0,
		"a_color":    1,
	})
	if err != nil {
		return nil, fmt.Errorf("create solid shader: %w", err)
	}
	r.textProgram, err = shader.NewProgram(textVertexShader, textFragmentShader, map[string]uint32{
		"a_position": 0,
		"a_texcoord": 1,
		"a_color":    2,
	})
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("create text shader: %w", err)
	}

	// Solid: position (location 0), color (location 1)
	r.solidVAO, r.solidVBO = createBuffers(solidStride, []int32{3, 4})
	// Text: position, texcoord, color
	r.textVAO, r.textVBO = createBuffers(textStride, []int32{3, 2, 4})

	r.font.upload()
	return r, nil
}

// createBuffers creates a VAO/VBO pair with interleaved float attributes of
// the given sizes at locations 0..n-1.
func createBuffers(stride int, sizes []int32) (vao, vbo uint32) {
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)

	offset := uintptr(0)
	for loc, n := range sizes {
		gl.VertexAttribPointerWithOffset(uint32(loc), n, gl.FLOAT, false, int32(stride*4), offset)
		gl.EnableVertexAttribArray(uint32(loc))
		offset += uintptr(n) * 4
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return vao, vbo
}

// Resize updates the screen dimensions.
func (r *Renderer) Resize(width, height int) {
	r.screenWidth = width
	r.screenHeight = height
}

// ScreenSize returns the current screen dimensions.
func (r *Renderer) ScreenSize() (int, int) {
	return r.screenWidth, r.screenHeight
}

// Begin starts a new UI frame.
func (r *Renderer) Begin() {
	r.solidVertices = r.solidVertices[:0]
	r.textVertices = r.textVertices[:0]
	r.clipped = false
}

// End draws everything queued since Begin.
func (r *Renderer) End() {
	if r.solidProgram == nil {
		return
	}

	// Save OpenGL state
	var prevBlend, prevDepth, prevCull int32
	gl.GetIntegerv(gl.BLEND, &prevBlend)
	gl.GetIntegerv(gl.DEPTH_TEST, &prevDepth)
	gl.GetIntegerv(gl.CULL_FACE, &prevCull)

	// Setup state for 2D rendering
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)

	proj := math.Orthographic(0, float32(r.screenWidth), float32(r.screenHeight), 0, -1, 1)

	// Solid quads first, text on top
	if len(r.solidVertices) > 0 {
		r.solidProgram.Use()
		r.solidProgram.SetMat4("u_projection", proj)
		drawBatch(r.solidVAO, r.solidVBO, r.solidVertices, solidStride)
	}
	if len(r.textVertices) > 0 {
		r.textProgram.Use()
		r.textProgram.SetMat4("u_projection", proj)
		r.textProgram.SetInt("u_atlas", 0)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, r.font.TextureID())
		drawBatch(r.textVAO, r.textVBO, r.textVertices, textStride)
	}

	// Restore state
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)

	if prevBlend == gl.FALSE {
		gl.Disable(gl.BLEND)
	}
	if prevDepth == gl.TRUE {
		gl.Enable(gl.DEPTH_TEST)
	}
	if prevCull == gl.TRUE {
		gl.Enable(gl.CULL_FACE)
	}
}

func drawBatch(vao, vbo uint32, vertices []float32, stride int) {
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(vertices)/stride))
}

// Close releases renderer resources.
func (r *Renderer) Close() {
	if r.font != nil {
		r.font.Close()
	}
	for _, id := range []*uint32{&r.solidVAO, &r.textVAO} {
		if *id != 0 {
			gl.DeleteVertexArrays(1, id)
			*id = 0
		}
	}
	for _, id := range []*uint32{&r.solidVBO, &r.textVBO} {
		if *id != 0 {
			gl.DeleteBuffers(1, id)
			*id = 0
		}
	}
	if r.solidProgram != nil {
		r.solidProgram.Delete()
	}
	if r.textProgram != nil {
		r.textProgram.Delete()
	}
}

// SetClip restricts drawing to rect until ClearClip.
func (r *Renderer) SetClip(rect Rect) {
	r.clip = rect
	r.clipped = true
}

// ClearClip removes the clip rectangle.
func (r *Renderer) ClearClip() {
	r.clipped = false
}

// clipQuad trims a quad to the clip rectangle, scaling its texture
// coordinates with it. It returns false when nothing is left.
func (r *Renderer) clipQuad(x, y, w, h, u0, v0, u1, v1 float32) (float32, float32, float32, float32, float32, float32, float32, float32, bool) {
	if !r.clipped {
		return x, y, w, h, u0, v0, u1, v1, w > 0 && h > 0
	}
	c := r.clip
	x0, y0 := max(x, c.X), max(y, c.Y)
	x1, y1 := min(x+w, c.X+c.W), min(y+h, c.Y+c.H)
	if x1 <= x0 || y1 <= y0 {
		return 0, 0, 0, 0, 0, 0, 0, 0, false
	}
	du, dv := u1-u0, v1-v0
	nu0 := u0 + (x0-x)/w*du
	nu1 := u0 + (x1-x)/w*du
	nv0 := v0 + (y0-y)/h*dv
	nv1 := v0 + (y1-y)/h*dv
	return x0, y0, x1 - x0, y1 - y0, nu0, nv0, nu1, nv1, true
}

// DrawRect draws a filled rectangle.
func (r *Renderer) DrawRect(x, y, width, height float32, color Color) {
	r.addQuad(x, y, width, height, color)
}

// DrawRectOutline draws a rectangle outline.
func (r *Renderer) DrawRectOutline(x, y, width, height, thickness float32, color Color) {
	// Top
	r.addQuad(x, y, width, thickness, color)
	// Bottom
	r.addQuad(x, y+height-thickness, width, thickness, color)
	// Left
	r.addQuad(x, y+thickness, thickness, height-thickness*2, color)
	// Right
	r.addQuad(x+width-thickness, y+thickness, thickness, height-thickness*2, color)
}

// DrawPanel draws a panel with border.
func (r *Renderer) DrawPanel(x, y, width, height float32, bg, border Color) {
	r.DrawRect(x, y, width, height, bg)
	r.DrawRectOutline(x, y, width, height, 1, border)
}

// addQuad adds a solid color quad as two triangles.
func (r *Renderer) addQuad(x, y, w, h float32, c Color) {
	x, y, w, h, _, _, _, _, ok := r.clipQuad(x, y, w, h, 0, 0, 0, 0)
	if !ok {
		return
	}
	r.solidVertices = append(r.solidVertices,
		x, y, 0, c.R, c.G, c.B, c.A,
		x+w, y, 0, c.R, c.G, c.B, c.A,
		x+w, y+h, 0, c.R, c.G, c.B, c.A,

		x, y, 0, c.R, c.G, c.B, c.A,
		x+w, y+h, 0, c.R, c.G, c.B, c.A,
		x, y+h, 0, c.R, c.G, c.B, c.A,
	)
}

// addTexturedQuad adds a glyph quad to the text batch.
func (r *Renderer) addTexturedQuad(x, y, w, h, u0, v0, u1, v1 float32, c Color) {
	x, y, w, h, u0, v0, u1, v1, ok := r.clipQuad(x, y, w, h, u0, v0, u1, v1)
	if !ok {
		return
	}
	r.textVertices = append(r.textVertices,
		x, y, 0, u0, v0, c.R, c.G, c.B, c.A,
		x+w, y, 0, u1, v0, c.R, c.G, c.B, c.A,
		x+w, y+h, 0, u1, v1, c.R, c.G, c.B, c.A,

		x, y, 0, u0, v0, c.R, c.G, c.B, c.A,
		x+w, y+h, 0, u1, v1, c.R, c.G, c.B, c.A,
		x, y+h, 0, u0, v1, c.R, c.G, c.B, c.A,
	)
}

// DrawText draws text with its top left corner at (x, y).
func (r *Renderer) DrawText(x, y float32, text string, scale float32, color Color) {
	gw, gh := r.font.GlyphSize()
	charW := float32(gw) * scale
	charH := float32(gh) * scale

	curX := x
	for _, char := range text {
		if char == '\n' {
			curX = x
			y += charH
			continue
		}
		if char != ' ' {
			u0, v0, u1, v1 := r.font.GlyphUV(char)
			r.addTexturedQuad(curX, y, charW, charH, u0, v0, u1, v1, color)
		}
		curX += charW
	}
}

// MeasureText returns the width and height of rendered text.
func (r *Renderer) MeasureText(text string, scale float32) (float32, float32) {
	return r.font.MeasureText(text, scale)
}

const solidVertexShader = `#version 410 core
in vec3 a_position;
in vec4 a_color;

uniform mat4 u_projection;

out vec4 v_color;

void main() {
    gl_Position = u_projection * vec4(a_position, 1.0);
    v_color = a_color;
}
`

const solidFragmentShader = `#version 410 core
in vec4 v_color;
out vec4 outColor;

void main() {
    outColor = v_color;
}
`

const textVertexShader = `#version 410 core
in vec3 a_position;
in vec2 a_texcoord;
in vec4 a_color;

uniform mat4 u_projection;

out vec2 v_texcoord;
out vec4 v_color;

void main() {
    gl_Position = u_projection * vec4(a_position, 1.0);
    v_texcoord = a_texcoord;
    v_color = a_color;
}
`

// The atlas is single channel coverage.
const textFragmentShader = `#version 410 core
uniform sampler2D u_atlas;

in vec2 v_texcoord;
in vec4 v_color;
out vec4 outColor;

void main() {
    float coverage = texture(u_atlas, v_texcoord).r;
    outColor = vec4(v_color.rgb, v_color.a * coverage);
}
`
