package formats

import (
	"fmt"
	"io"
	"strconv"
)

// Color is an RGB color with components in [0, 1].
type Color [3]float32

// MTLMaterial is one named material record. Fields the document never set
// stay nil (or empty for texture references); defaults are applied later by
// whoever consumes the record.
type MTLMaterial struct {
	Ambient  *Color // Ka
	Diffuse  *Color // Kd
	Specular *Color // Ks
	Emissive *Color // Ke

	Shininess      *float32 // Ns
	OpticalDensity *float32 // Ni
	Opacity        *float32 // d, or 1-Tr
	Illum          *int     // illum

	// Raw texture map arguments. Option flags such as -s or -o are not
	// parsed and stay part of the string.
	DiffuseMap  string // map_Kd
	SpecularMap string // map_Ns
	NormalMap   string // map_Bump, bump
}

// TextureRefs returns the non-empty texture references of the material in
// diffuse, specular, normal order.
func (m *MTLMaterial) TextureRefs() []string {
	var refs []string
	for _, ref := range []string{m.DiffuseMap, m.SpecularMap, m.NormalMap} {
		if ref != "" {
			refs = append(refs, ref)
		}
	}
	return refs
}

// MTL represents a parsed MTL document.
type MTL struct {
	Materials map[string]*MTLMaterial
	Order     []string // material names in declaration order
	Warnings  []string
}

// ParseMTL parses MTL text. Unknown keywords are reported in MTL.Warnings
// and skipped.
func ParseMTL(text string) *MTL {
	p := &mtlParser{
		result: &MTL{Materials: make(map[string]*MTLMaterial)},
	}
	scanDirectives(text, mtlKeywords, p.handle)
	p.result.Warnings = p.warn
	return p.result
}

// ReadMTL reads all of r and parses it as MTL text.
func ReadMTL(r io.Reader) (*MTL, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading mtl: %w", err)
	}
	return ParseMTL(string(data)), nil
}

type mtlParser struct {
	result  *MTL
	current *MTLMaterial
	warn    warnings
}

func (p *mtlParser) handle(d directive) {
	if d.kind == dirNewMaterial {
		p.current = &MTLMaterial{}
		if _, exists := p.result.Materials[d.raw]; !exists {
			p.result.Order = append(p.result.Order, d.raw)
		}
		p.result.Materials[d.raw] = p.current
		return
	}
	if d.kind == dirUnknown {
		p.warn.unhandled(d)
		return
	}
	if p.current == nil {
		p.warn.add(d.line, "%q before any newmtl", d.keyword)
		return
	}

	m := p.current
	switch d.kind {
	case dirShininess:
		m.Shininess = p.scalar(d)
	case dirOpticalDensity:
		m.OpticalDensity = p.scalar(d)
	case dirDissolve:
		m.Opacity = p.scalar(d)
	case dirTransparency:
		tr := p.scalar(d)
		opacity := 1 - *tr
		m.Opacity = &opacity
	case dirIllum:
		m.Illum = p.integer(d)
	case dirAmbient:
		m.Ambient = p.color(d)
	case dirDiffuse:
		m.Diffuse = p.color(d)
	case dirSpecular:
		m.Specular = p.color(d)
	case dirEmissive:
		m.Emissive = p.color(d)
	case dirDiffuseMap:
		m.DiffuseMap = parseMapArgs(d.raw)
	case dirSpecularMap:
		m.SpecularMap = parseMapArgs(d.raw)
	case dirNormalMap:
		m.NormalMap = parseMapArgs(d.raw)
	default:
		p.warn.unhandled(d)
	}
}

// parseMapArgs is where texture options would be split from the filename.
// The raw arguments are returned unchanged.
func parseMapArgs(raw string) string {
	return raw
}

func (p *mtlParser) scalar(d directive) *float32 {
	v := p.float(d, 0)
	return &v
}

func (p *mtlParser) integer(d directive) *int {
	var s string
	if len(d.args) > 0 {
		s = d.args[0]
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		p.warn.add(d.line, "malformed integer %q in %q", s, d.keyword)
	}
	return &v
}

// color reads up to three components. A single value applies to all three
// channels.
func (p *mtlParser) color(d directive) *Color {
	var c Color
	switch len(d.args) {
	case 0:
		p.warn.add(d.line, "%q without values", d.keyword)
	case 1:
		v := p.float(d, 0)
		c = Color{v, v, v}
	default:
		for i := range c {
			if i < len(d.args) {
				c[i] = p.float(d, i)
			}
		}
	}
	return &c
}

func (p *mtlParser) float(d directive, i int) float32 {
	var s string
	if i < len(d.args) {
		s = d.args[i]
	}
	v, ok := parseFloat(s)
	if !ok {
		p.warn.add(d.line, "malformed number %q in %q", s, d.keyword)
	}
	return v
}
