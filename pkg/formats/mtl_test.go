package formats

import (
	"strings"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMTL_DiffuseAndDissolve(t *testing.T) {
	mtl := ParseMTL("newmtl M\nKd 0.5 0.5 0.5\nd 0.8")

	require.Contains(t, mtl.Materials, "M")
	m := mtl.Materials["M"]

	require.NotNil(t, m.Diffuse)
	assert.Equal(t, Color{0.5, 0.5, 0.5}, *m.Diffuse)
	require.NotNil(t, m.Opacity)
	assert.Equal(t, float32(0.8), *m.Opacity)

	// Everything else stays unset until merge time.
	assert.Nil(t, m.Ambient)
	assert.Nil(t, m.Specular)
	assert.Nil(t, m.Emissive)
	assert.Nil(t, m.Shininess)
	assert.Nil(t, m.OpticalDensity)
	assert.Nil(t, m.Illum)
	assert.Empty(t, m.TextureRefs())
	assert.Empty(t, mtl.Warnings)
}

const cityMTL = `
# Blender MTL File
newmtl Brick
Ns 96.078431
Ka 1.000000 1.000000 1.000000
Kd 0.640000 0.640000 0.640000
Ks 0.5
Ke 0.000000 0.000000 0.000000
Ni 1.000000
d 1.000000
illum 2
map_Kd textures/brick wall.png

newmtl Glass
Tr 0.25
map_Ns glass_spec.png
bump -bm 0.5 glass_normal.png

newmtl Asphalt
map_bump asphalt_n.png
`

func TestParseMTL_FullRecords(t *testing.T) {
	mtl := ParseMTL(cityMTL)

	assert.Equal(t, []string{"Brick", "Glass", "Asphalt"}, mtl.Order)
	assert.Empty(t, mtl.Warnings)

	brick := mtl.Materials["Brick"]
	require.NotNil(t, brick)
	assert.InDelta(t, 96.078431, *brick.Shininess, 1e-4)
	assert.Equal(t, Color{1, 1, 1}, *brick.Ambient)
	assert.Equal(t, Color{0.64, 0.64, 0.64}, *brick.Diffuse)
	assert.Equal(t, Color{0.5, 0.5, 0.5}, *brick.Specular, "single value applies to all channels")
	assert.Equal(t, Color{}, *brick.Emissive)
	assert.Equal(t, float32(1), *brick.OpticalDensity)
	assert.Equal(t, float32(1), *brick.Opacity)
	assert.Equal(t, 2, *brick.Illum)
	assert.Equal(t, "textures/brick wall.png", brick.DiffuseMap)

	glass := mtl.Materials["Glass"]
	require.NotNil(t, glass)
	assert.Equal(t, float32(0.75), *glass.Opacity)
	assert.Equal(t, "glass_spec.png", glass.SpecularMap)
	assert.Equal(t, "-bm 0.5 glass_normal.png", glass.NormalMap, "map options are passed through")
	assert.Equal(t, []string{"glass_spec.png", "-bm 0.5 glass_normal.png"}, glass.TextureRefs())

	asphalt := mtl.Materials["Asphalt"]
	require.NotNil(t, asphalt)
	assert.Equal(t, "asphalt_n.png", asphalt.NormalMap)
}

func TestParseMTL_RedeclaredMaterialReplaces(t *testing.T) {
	mtl := ParseMTL("newmtl A\nKd 1 0 0\nnewmtl B\nnewmtl A\nNs 10")

	assert.Equal(t, []string{"A", "B"}, mtl.Order)
	a := mtl.Materials["A"]
	assert.Nil(t, a.Diffuse)
	require.NotNil(t, a.Shininess)
	assert.Equal(t, float32(10), *a.Shininess)
}

func TestParseMTL_Diagnostics(t *testing.T) {
	src := "Kd 1 1 1\nnewmtl A\nKd 1 q 1\nPr 0.5\nillum two\nKs"
	mtl := ParseMTL(src)

	a := mtl.Materials["A"]
	require.NotNil(t, a)
	require.NotNil(t, a.Diffuse)
	assert.True(t, math32.IsNaN(a.Diffuse[1]))
	assert.Equal(t, Color{}, *a.Specular)

	joined := strings.Join(mtl.Warnings, "\n")
	assert.Contains(t, joined, `line 1: "Kd" before any newmtl`)
	assert.Contains(t, joined, `line 3: malformed number "q" in "Kd"`)
	assert.Contains(t, joined, `line 4: unhandled keyword "Pr"`)
	assert.Contains(t, joined, `line 5: malformed integer "two" in "illum"`)
	assert.Contains(t, joined, `line 6: "Ks" without values`)
}

func TestReadMTL(t *testing.T) {
	mtl, err := ReadMTL(strings.NewReader(cityMTL))
	require.NoError(t, err)
	assert.Len(t, mtl.Materials, 3)
}
