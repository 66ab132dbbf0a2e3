package ui2d

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Batches(t *testing.T) {
	r := NewLayoutRenderer(800, 600)
	r.Begin()

	r.DrawRect(0, 0, 10, 10, ColorText)
	assert.Len(t, r.solidVertices, 6*solidStride)

	r.DrawText(0, 0, "a b", 1, ColorText)
	assert.Len(t, r.textVertices, 2*6*textStride, "spaces emit no quad")

	// End without GL keeps the batch; Begin clears it.
	r.End()
	r.Begin()
	assert.Empty(t, r.solidVertices)
	assert.Empty(t, r.textVertices)
}

func TestRenderer_Clip(t *testing.T) {
	r := NewLayoutRenderer(100, 100)
	r.Begin()
	r.SetClip(Rect{10, 10, 20, 20})

	r.DrawRect(0, 0, 15, 100, ColorText)
	require.Len(t, r.solidVertices, 6*solidStride)
	assert.Equal(t, []float32{10, 10}, r.solidVertices[0:2])
	// third vertex is the bottom right corner
	assert.Equal(t, []float32{15, 30}, r.solidVertices[2*solidStride:2*solidStride+2])

	r.DrawRect(50, 50, 5, 5, ColorText)
	assert.Len(t, r.solidVertices, 6*solidStride, "outside the clip")

	// Texture coordinates shrink with the quad.
	r.addTexturedQuad(0, 10, 20, 10, 0, 0, 1, 1, ColorText)
	require.Len(t, r.textVertices, 6*textStride)
	assert.Equal(t, float32(10), r.textVertices[0])
	assert.InDelta(t, 0.5, r.textVertices[3], 1e-6)
	assert.InDelta(t, 1.0, r.textVertices[textStride+3], 1e-6)

	r.ClearClip()
	r.DrawRect(50, 50, 5, 5, ColorText)
	assert.Len(t, r.solidVertices, 12*solidStride)
}
