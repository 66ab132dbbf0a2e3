package ui2d

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/image/font/basicfont"
)

func coverage(f *Font, r rune) int {
	cell := f.cell(r)
	sum := 0
	for y := cell.Min.Y; y < cell.Max.Y; y++ {
		for x := cell.Min.X; x < cell.Max.X; x++ {
			sum += int(f.atlas.AlphaAt(x, y).A)
		}
	}
	return sum
}

func TestFont_Atlas(t *testing.T) {
	f := newFont(basicfont.Face7x13)

	w, h := f.GlyphSize()
	assert.Equal(t, 7, w)
	assert.Equal(t, 13, h)
	assert.Equal(t, 16*7, f.atlas.Bounds().Dx())
	assert.Equal(t, 6*13, f.atlas.Bounds().Dy())

	assert.Positive(t, coverage(f, 'A'))
	assert.Positive(t, coverage(f, '~'))
	assert.Zero(t, coverage(f, ' '))
	assert.Zero(t, f.TextureID())
}

func TestFont_GlyphUV(t *testing.T) {
	f := newFont(basicfont.Face7x13)

	// 'A' is glyph 33: column 1, row 2
	u0, v0, u1, v1 := f.GlyphUV('A')
	assert.InDelta(t, 7.0/112, u0, 1e-6)
	assert.InDelta(t, 26.0/78, v0, 1e-6)
	assert.InDelta(t, 14.0/112, u1, 1e-6)
	assert.InDelta(t, 39.0/78, v1, 1e-6)

	qu0, qv0, _, _ := f.GlyphUV('?')
	eu0, ev0, _, _ := f.GlyphUV('é')
	assert.Equal(t, qu0, eu0)
	assert.Equal(t, qv0, ev0)
}

func TestFont_MeasureText(t *testing.T) {
	f := newFont(basicfont.Face7x13)

	w, h := f.MeasureText("ab\ncde", 2)
	assert.Equal(t, float32(42), w)
	assert.Equal(t, float32(52), h)

	w, h = f.MeasureText("", 1)
	assert.Zero(t, w)
	assert.Zero(t, h)
}
