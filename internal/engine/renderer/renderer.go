// Package renderer provides the OpenGL backend: it creates textures and
// drawables for the asset loader and draws them with the mesh program.
package renderer

import (
	"context"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/cityblocks/internal/assets"
	"github.com/Faultbox/cityblocks/internal/engine/shader"
	"github.com/Faultbox/cityblocks/internal/logger"
	"github.com/Faultbox/cityblocks/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor [4]float32
}

// Frame holds the uniforms shared by every draw of one pass.
type Frame struct {
	View           math.Mat4
	Projection     math.Mat4
	CameraPosition math.Vec3
	LightDirection math.Vec3 // normalized
	AmbientLight   [3]float32
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config  Config
	fetcher assets.Fetcher
	program *shader.Program
	log     *zap.Logger

	textures  []*Texture
	drawables []*Drawable
}

// New creates a new renderer. Locator textures are loaded through fetcher.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config, fetcher assets.Fetcher) (*Renderer, error) {
	r := &Renderer{
		config:  cfg,
		fetcher: fetcher,
		log:     logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	program, err := shader.NewProgram(shader.MeshVertexShader, shader.MeshFragmentShader, shader.MeshAttribs)
	if err != nil {
		return nil, fmt.Errorf("mesh shader: %w", err)
	}
	r.program = program
	r.Resize(cfg.Width, cfg.Height)

	return r, nil
}

// Close releases every resource the renderer created.
func (r *Renderer) Close() {
	r.log.Info("closing renderer",
		zap.Int("textures", len(r.textures)),
		zap.Int("drawables", len(r.drawables)),
	)
	for _, d := range r.drawables {
		d.delete()
	}
	for _, t := range r.textures {
		gl.DeleteTextures(1, &t.ID)
	}
	r.drawables, r.textures = nil, nil
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the current viewport size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	c := r.config.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// ClearDepth clears only the depth buffer so a following pass draws over
// everything already on screen.
func (r *Renderer) ClearDepth() {
	gl.Clear(gl.DEPTH_BUFFER_BIT)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
}

// SetFrame activates the mesh program and uploads the shared uniforms.
func (r *Renderer) SetFrame(f Frame) {
	p := r.program
	p.Use()
	p.SetMat4("u_view", f.View)
	p.SetMat4("u_projection", f.Projection)
	p.SetVec3("u_viewWorldPosition", f.CameraPosition.Array())
	p.SetVec3("u_lightDirection", f.LightDirection.Array())
	p.SetVec3("u_ambientLight", f.AmbientLight)
	p.SetInt("diffuseMap", 0)
}

// DrawPart draws one asset part with the given world matrix. SetFrame must
// have been called for the current pass.
func (r *Renderer) DrawPart(part assets.Part, world math.Mat4) {
	d, ok := part.Drawable.(*Drawable)
	if !ok || d == nil {
		return
	}

	p := r.program
	m := part.Material
	p.SetMat4("u_world", world)
	p.SetVec3("diffuse", m.Diffuse)
	p.SetVec3("ambient", m.Ambient)
	p.SetVec3("emissive", m.Emissive)
	p.SetVec3("specular", m.Specular)
	p.SetFloat("shininess", m.Shininess)
	p.SetFloat("opacity", m.Opacity)

	gl.ActiveTexture(gl.TEXTURE0)
	if t, ok := m.DiffuseMap.(*Texture); ok && t != nil {
		gl.BindTexture(gl.TEXTURE_2D, t.ID)
	} else {
		gl.BindTexture(gl.TEXTURE_2D, 0)
	}

	d.draw()
}

var _ assets.Backend = (*Renderer)(nil)

// CreateTexture implements assets.Backend.
func (r *Renderer) CreateTexture(ctx context.Context, desc assets.TextureDescriptor) (assets.Texture, error) {
	img, err := loadImage(ctx, r.fetcher, desc)
	if err != nil {
		return nil, err
	}
	t := uploadTexture(img)
	r.textures = append(r.textures, t)
	r.log.Debug("texture created",
		zap.Uint32("id", t.ID),
		zap.String("locator", desc.Locator),
		zap.Int("width", t.Width),
		zap.Int("height", t.Height),
	)
	return t, nil
}

// CreateDrawable implements assets.Backend.
func (r *Renderer) CreateDrawable(b assets.AttributeBuffers) (assets.Drawable, error) {
	streams, skipped, err := layout(b)
	if err != nil {
		return nil, err
	}
	for _, msg := range skipped {
		r.log.Warn("attribute stream skipped", zap.String("reason", msg))
	}
	d := uploadDrawable(streams, b)
	r.drawables = append(r.drawables, d)
	return d, nil
}
