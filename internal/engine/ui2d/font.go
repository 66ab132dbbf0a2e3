package ui2d

import (
	"image"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Printable ASCII is all the panel needs.
const (
	firstGlyph = ' '
	lastGlyph  = '~'
	atlasCols  = 16
)

// Font is a fixed-cell glyph atlas rasterized from a font.Face. Each
// glyph occupies one cell of GlyphSize pixels.
type Font struct {
	atlas   *image.Alpha
	cellW   int
	cellH   int
	texture uint32
}

// newFont rasterizes the printable ASCII range of face into an atlas. It
// does not touch OpenGL; see upload.
func newFont(face font.Face) *Font {
	m := face.Metrics()
	ascent := m.Ascent.Ceil()
	cellH := ascent + m.Descent.Ceil()
	adv, _ := face.GlyphAdvance('M')
	cellW := adv.Ceil()

	n := int(lastGlyph-firstGlyph) + 1
	rows := (n + atlasCols - 1) / atlasCols
	f := &Font{
		atlas: image.NewAlpha(image.Rect(0, 0, atlasCols*cellW, rows*cellH)),
		cellW: cellW,
		cellH: cellH,
	}

	for r := firstGlyph; r <= lastGlyph; r++ {
		cell := f.cell(r)
		dot := fixed.P(cell.Min.X, cell.Min.Y+ascent)
		dr, mask, maskp, _, ok := face.Glyph(dot, r)
		if !ok {
			continue
		}
		draw.DrawMask(f.atlas, dr.Intersect(cell), image.Opaque, image.Point{}, mask, maskp, draw.Over)
	}
	return f
}

// cell returns the atlas rectangle of r. Runes outside the atlas map to '?'.
func (f *Font) cell(r rune) image.Rectangle {
	if r < firstGlyph || r > lastGlyph {
		r = '?'
	}
	i := int(r - firstGlyph)
	x := (i % atlasCols) * f.cellW
	y := (i / atlasCols) * f.cellH
	return image.Rect(x, y, x+f.cellW, y+f.cellH)
}

// upload creates the single-channel atlas texture.
func (f *Font) upload() {
	b := f.atlas.Bounds()

	gl.GenTextures(1, &f.texture)
	gl.BindTexture(gl.TEXTURE_2D, f.texture)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R8, int32(b.Dx()), int32(b.Dy()), 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(f.atlas.Pix))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)

	// Nearest keeps the bitmap glyphs crisp when scaled
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// GlyphSize returns the cell size in pixels.
func (f *Font) GlyphSize() (int, int) {
	return f.cellW, f.cellH
}

// GlyphUV returns the texture coordinates of r's cell.
func (f *Font) GlyphUV(r rune) (u0, v0, u1, v1 float32) {
	c := f.cell(r)
	b := f.atlas.Bounds()
	w, h := float32(b.Dx()), float32(b.Dy())
	return float32(c.Min.X) / w, float32(c.Min.Y) / h, float32(c.Max.X) / w, float32(c.Max.Y) / h
}

// MeasureText returns the size of text drawn at scale.
func (f *Font) MeasureText(text string, scale float32) (float32, float32) {
	if text == "" {
		return 0, 0
	}
	lines := strings.Split(text, "\n")
	widest := 0
	for _, l := range lines {
		if n := len([]rune(l)); n > widest {
			widest = n
		}
	}
	return float32(widest*f.cellW) * scale, float32(len(lines)*f.cellH) * scale
}

// TextureID returns the atlas texture, 0 before upload.
func (f *Font) TextureID() uint32 {
	return f.texture
}

// Close releases the atlas texture.
func (f *Font) Close() {
	if f.texture != 0 {
		gl.DeleteTextures(1, &f.texture)
		f.texture = 0
	}
}
