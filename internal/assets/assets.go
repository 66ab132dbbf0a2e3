// Package assets loads the mesh catalog: it fetches OBJ and MTL text,
// resolves materials and textures, and turns every geometry into a drawable
// through a rendering backend.
package assets

import (
	"context"
	"errors"

	"github.com/chewxy/math32"
)

// ErrResourceUnavailable is returned when a mesh, material library or
// texture cannot be fetched.
var ErrResourceUnavailable = errors.New("resource unavailable")

// Texture is an opaque handle to a texture owned by the backend.
type Texture interface{}

// Drawable is an opaque handle to uploaded vertex data owned by the backend.
type Drawable interface{}

// TextureDescriptor describes a texture to create. Either Pixels holds
// inline RGBA data of Width x Height, or Locator names an image to load.
type TextureDescriptor struct {
	Pixels        []byte
	Width, Height int

	Locator string
	FlipY   bool
}

// ColorAttribute is the vertex color input of a drawable. When Data is nil
// every vertex uses Constant.
type ColorAttribute struct {
	Data     []float32 // 3 per vertex
	Constant [4]float32
}

// AttributeBuffers is the per-vertex input of a drawable. TexCoord and
// Normal are nil when the geometry does not reference them.
type AttributeBuffers struct {
	Position []float32
	TexCoord []float32
	Normal   []float32
	Color    ColorAttribute
}

// VertexCount returns the number of vertices described by Position.
func (b AttributeBuffers) VertexCount() int {
	return len(b.Position) / 3
}

// Backend creates GPU resources. Implementations are not required to be
// safe for concurrent use; the loader only calls them from one goroutine.
type Backend interface {
	CreateTexture(ctx context.Context, desc TextureDescriptor) (Texture, error)
	CreateDrawable(buffers AttributeBuffers) (Drawable, error)
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// EmptyBounds returns inverted bounds that any point will extend.
func EmptyBounds() Bounds {
	inf := math32.Inf(1)
	return Bounds{
		Min: [3]float32{inf, inf, inf},
		Max: [3]float32{-inf, -inf, -inf},
	}
}

// Extend grows b to contain every xyz triple in positions. NaN and
// infinite coordinates (malformed mesh numbers) are skipped per axis.
func (b *Bounds) Extend(positions []float32) {
	for i := 0; i+2 < len(positions); i += 3 {
		for j := 0; j < 3; j++ {
			v := positions[i+j]
			if math32.IsNaN(v) || math32.IsInf(v, 0) {
				continue
			}
			b.Min[j] = math32.Min(b.Min[j], v)
			b.Max[j] = math32.Max(b.Max[j], v)
		}
	}
}

// Finite returns b with every axis that was never extended collapsed to
// zero.
func (b Bounds) Finite() Bounds {
	for j := 0; j < 3; j++ {
		if b.Min[j] > b.Max[j] {
			b.Min[j], b.Max[j] = 0, 0
		}
	}
	return b
}

// Range returns Max - Min.
func (b Bounds) Range() [3]float32 {
	return [3]float32{b.Max[0] - b.Min[0], b.Max[1] - b.Min[1], b.Max[2] - b.Min[2]}
}

// CenteringOffset returns the translation that moves the center of b to
// the origin.
func (b Bounds) CenteringOffset() [3]float32 {
	r := b.Range()
	var off [3]float32
	for i := range off {
		off[i] = -(b.Min[i] + r[i]*0.5)
	}
	return off
}

// Part is one drawable of an asset with its merged material.
type Part struct {
	Drawable     Drawable
	Material     Material
	MaterialName string
	VertexCount  int
}

// Asset is a loaded catalog entry.
type Asset struct {
	Name   string
	Index  int // position in the catalog
	Parts  []Part
	Bounds Bounds
	Offset [3]float32 // centering offset
}

// Library holds the assets that loaded, addressable by catalog index or name.
type Library struct {
	byIndex []*Asset
	byName  map[string]*Asset
}

func newLibrary(size int) *Library {
	return &Library{
		byIndex: make([]*Asset, size),
		byName:  make(map[string]*Asset, size),
	}
}

func (l *Library) add(a *Asset) {
	l.byIndex[a.Index] = a
	l.byName[a.Name] = a
}

// At returns the asset of catalog entry i, or nil when it failed to load.
func (l *Library) At(i int) *Asset {
	if i < 0 || i >= len(l.byIndex) {
		return nil
	}
	return l.byIndex[i]
}

// Get returns the asset with the given catalog name.
func (l *Library) Get(name string) (*Asset, bool) {
	a, ok := l.byName[name]
	return a, ok
}

// Assets returns the loaded assets in catalog order.
func (l *Library) Assets() []*Asset {
	out := make([]*Asset, 0, len(l.byName))
	for _, a := range l.byIndex {
		if a != nil {
			out = append(out, a)
		}
	}
	return out
}

// Len returns the number of loaded assets.
func (l *Library) Len() int {
	return len(l.byName)
}

// CatalogSize returns the number of catalog entries, loaded or not.
func (l *Library) CatalogSize() int {
	return len(l.byIndex)
}

// MaxExtent returns the length of the largest bounding box diagonal among
// the loaded assets.
func (l *Library) MaxExtent() float32 {
	var longest float32
	for _, a := range l.Assets() {
		r := a.Bounds.Range()
		longest = math32.Max(longest, math32.Sqrt(r[0]*r[0]+r[1]*r[1]+r[2]*r[2]))
	}
	return longest
}
