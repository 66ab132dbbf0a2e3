package renderer

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/cityblocks/internal/assets"
	"github.com/Faultbox/cityblocks/internal/engine/shader"
)

var errEmptyDrawable = errors.New("drawable has no vertices")

// stream is one attribute buffer bound to a fixed shader location.
type stream struct {
	name     string
	location uint32
	size     int32
	data     []float32
}

// layout lists the streams to upload. Optional attributes whose length
// disagrees with Position (a mesh mixing corner forms) are left out and
// returned as skipped; the shader then reads their constant value.
func layout(b assets.AttributeBuffers) (streams []stream, skipped []string, err error) {
	n := b.VertexCount()
	if n == 0 {
		return nil, nil, errEmptyDrawable
	}

	streams = []stream{{"position", shader.AttribPosition, 3, b.Position}}
	optional := []stream{
		{"normal", shader.AttribNormal, 3, b.Normal},
		{"texcoord", shader.AttribTexCoord, 2, b.TexCoord},
		{"color", shader.AttribColor, 3, b.Color.Data},
	}
	for _, s := range optional {
		if s.data == nil {
			continue
		}
		if len(s.data) != n*int(s.size) {
			skipped = append(skipped, fmt.Sprintf("%s: %d values for %d vertices", s.name, len(s.data), n))
			continue
		}
		streams = append(streams, s)
	}
	return streams, skipped, nil
}

// constantColor is the color used when no color stream is uploaded.
func constantColor(streams []stream, b assets.AttributeBuffers) *[4]float32 {
	for _, s := range streams {
		if s.location == shader.AttribColor {
			return nil
		}
	}
	c := b.Color.Constant
	if b.Color.Data != nil {
		// skipped stream
		c = [4]float32{1, 1, 1, 1}
	}
	return &c
}

// Drawable is uploaded vertex data in a vertex array object.
type Drawable struct {
	vao   uint32
	vbos  []uint32
	count int32

	// constant values for attributes without a buffer
	constColor *[4]float32
}

func uploadDrawable(streams []stream, b assets.AttributeBuffers) *Drawable {
	d := &Drawable{count: int32(b.VertexCount())}

	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)

	d.vbos = make([]uint32, len(streams))
	gl.GenBuffers(int32(len(d.vbos)), &d.vbos[0])
	for i, s := range streams {
		gl.BindBuffer(gl.ARRAY_BUFFER, d.vbos[i])
		gl.BufferData(gl.ARRAY_BUFFER, len(s.data)*4, unsafe.Pointer(&s.data[0]), gl.STATIC_DRAW)
		gl.VertexAttribPointerWithOffset(s.location, s.size, gl.FLOAT, false, 0, 0)
		gl.EnableVertexAttribArray(s.location)
	}

	d.constColor = constantColor(streams, b)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return d
}

func (d *Drawable) draw() {
	gl.BindVertexArray(d.vao)
	// Current attribute values are context state, so constants are set per draw.
	if d.constColor != nil {
		c := d.constColor
		gl.VertexAttrib4f(shader.AttribColor, c[0], c[1], c[2], c[3])
	}
	gl.DrawArrays(gl.TRIANGLES, 0, d.count)
}

func (d *Drawable) delete() {
	if len(d.vbos) > 0 {
		gl.DeleteBuffers(int32(len(d.vbos)), &d.vbos[0])
	}
	gl.DeleteVertexArrays(1, &d.vao)
}
