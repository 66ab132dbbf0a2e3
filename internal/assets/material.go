package assets

import (
	"github.com/Faultbox/cityblocks/pkg/formats"
)

// Material is a renderer-ready material. Every field has a value; textures
// may be nil except DiffuseMap.
type Material struct {
	Ambient  [3]float32
	Diffuse  [3]float32
	Specular [3]float32
	Emissive [3]float32

	Shininess      float32
	Opacity        float32
	OpticalDensity float32
	Illum          int

	DiffuseMap  Texture
	SpecularMap Texture
	NormalMap   Texture
}

// WhitePixel is the inline RGBA data of the fallback diffuse texture.
var WhitePixel = []byte{255, 255, 255, 255}

// DefaultMaterial returns the material every geometry starts from: white
// diffuse over the white fallback texture, black ambient, white specular,
// shininess 400 and full opacity.
func DefaultMaterial(white Texture) Material {
	return Material{
		Diffuse:    [3]float32{1, 1, 1},
		DiffuseMap: white,
		Ambient:    [3]float32{0, 0, 0},
		Specular:   [3]float32{1, 1, 1},
		Shininess:  400,
		Opacity:    1,
	}
}

// MergeMaterial overlays the fields src defines onto base. Texture
// references are looked up in textures by raw filename; a reference
// missing from textures leaves the base map. A nil src returns base.
func MergeMaterial(base Material, src *formats.MTLMaterial, textures map[string]Texture) Material {
	if src == nil {
		return base
	}

	m := base
	if src.Ambient != nil {
		m.Ambient = *src.Ambient
	}
	if src.Diffuse != nil {
		m.Diffuse = *src.Diffuse
	}
	if src.Specular != nil {
		m.Specular = *src.Specular
	}
	if src.Emissive != nil {
		m.Emissive = *src.Emissive
	}
	if src.Shininess != nil {
		m.Shininess = *src.Shininess
	}
	if src.Opacity != nil {
		m.Opacity = *src.Opacity
	}
	if src.OpticalDensity != nil {
		m.OpticalDensity = *src.OpticalDensity
	}
	if src.Illum != nil {
		m.Illum = *src.Illum
	}

	if tex, ok := textures[src.DiffuseMap]; ok && src.DiffuseMap != "" {
		m.DiffuseMap = tex
	}
	if tex, ok := textures[src.SpecularMap]; ok && src.SpecularMap != "" {
		m.SpecularMap = tex
	}
	if tex, ok := textures[src.NormalMap]; ok && src.NormalMap != "" {
		m.NormalMap = tex
	}
	return m
}

// NormalizeColor converts a parsed color array into a drawable color input.
// Only an array with exactly one color per position is used; anything else
// becomes constant opaque white.
func NormalizeColor(data formats.OBJVertexData) ColorAttribute {
	if data.Color != nil && len(data.Color) == len(data.Position) {
		return ColorAttribute{Data: data.Color}
	}
	return ColorAttribute{Constant: [4]float32{1, 1, 1, 1}}
}
