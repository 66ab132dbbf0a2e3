package formats

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// OBJVertexData holds flat per-corner attribute arrays for one geometry.
// A nil slice means the attribute was never referenced.
type OBJVertexData struct {
	Position []float32 // 3 per corner
	TexCoord []float32 // 2 per corner
	Normal   []float32 // 3 per corner
	Color    []float32 // 3 per corner, only when the source has vertex colors
}

// VertexCount returns the number of triangle corners in the geometry.
func (d *OBJVertexData) VertexCount() int {
	return len(d.Position) / 3
}

// OBJGeometry is a run of triangles sharing one object, group set and material.
type OBJGeometry struct {
	Object   string
	Groups   []string
	Material string
	Data     OBJVertexData
}

// OBJ represents a parsed OBJ document.
type OBJ struct {
	Geometries   []OBJGeometry
	MaterialLibs []string // raw mtllib arguments, unsplit
	Warnings     []string
}

const defaultOBJName = "default"

// objParser holds the mutable state of a single OBJ parse.
// Every source table starts with a zero sentinel at index 0 so that
// 1-based file indices address the tables directly.
type objParser struct {
	positions [][3]float32
	texcoords [][2]float32
	normals   [][3]float32
	colors    [][3]float32

	object   string
	groups   []string
	material string
	current  int // index into geometries, -1 when no geometry is open

	geometries   []OBJGeometry
	materialLibs []string
	warn         warnings
}

func newOBJParser() *objParser {
	return &objParser{
		positions: [][3]float32{{}},
		texcoords: [][2]float32{{}},
		normals:   [][3]float32{{}},
		colors:    [][3]float32{{}},
		object:    defaultOBJName,
		groups:    []string{defaultOBJName},
		material:  defaultOBJName,
		current:   -1,
	}
}

// ParseOBJ parses OBJ text. Unknown keywords and malformed numbers are
// reported in OBJ.Warnings and never stop the parse.
func ParseOBJ(text string) *OBJ {
	p := newOBJParser()
	scanDirectives(text, objKeywords, p.handle)

	for i := range p.geometries {
		pruneEmpty(&p.geometries[i].Data)
	}

	return &OBJ{
		Geometries:   p.geometries,
		MaterialLibs: p.materialLibs,
		Warnings:     p.warn,
	}
}

// ReadOBJ reads all of r and parses it as OBJ text.
func ReadOBJ(r io.Reader) (*OBJ, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading obj: %w", err)
	}
	return ParseOBJ(string(data)), nil
}

func (p *objParser) handle(d directive) {
	switch d.kind {
	case dirVertex:
		p.vertex(d)
	case dirNormal:
		var n [3]float32
		p.floats(d, n[:])
		p.normals = append(p.normals, n)
	case dirTexCoord:
		var uv [2]float32
		p.floats(d, uv[:])
		p.texcoords = append(p.texcoords, uv)
	case dirFace:
		p.face(d)
	case dirSmoothing:
		// no effect
	case dirMaterialLib:
		p.materialLibs = append(p.materialLibs, d.raw)
	case dirUseMaterial:
		p.material = d.raw
		p.closeGeometry()
	case dirGroup:
		p.groups = d.args
		p.closeGeometry()
	case dirObject:
		p.object = d.raw
		p.closeGeometry()
	default:
		p.warn.unhandled(d)
	}
}

// vertex handles "v x y z [r g b]". More than three values means the
// trailing ones are a vertex color.
func (p *objParser) vertex(d directive) {
	var pos [3]float32
	p.floats(d, pos[:])
	p.positions = append(p.positions, pos)

	if len(d.args) > 3 {
		var col [3]float32
		for i := range col {
			if 3+i < len(d.args) {
				col[i] = p.float(d, d.args[3+i])
			}
		}
		p.colors = append(p.colors, col)
	}
}

// floats fills dst from the directive arguments in order. Missing
// arguments leave zeros.
func (p *objParser) floats(d directive, dst []float32) {
	for i := range dst {
		if i < len(d.args) {
			dst[i] = p.float(d, d.args[i])
		}
	}
}

func (p *objParser) float(d directive, s string) float32 {
	v, ok := parseFloat(s)
	if !ok {
		p.warn.add(d.line, "malformed number %q in %q", s, d.keyword)
	}
	return v
}

// face fan-triangulates a polygon around its first corner.
func (p *objParser) face(d directive) {
	if len(d.args) < 3 {
		p.warn.add(d.line, "face with %d corners skipped", len(d.args))
		return
	}

	geom := p.openGeometry()
	for k := 1; k < len(d.args)-1; k++ {
		p.corner(geom, d, d.args[0])
		p.corner(geom, d, d.args[k])
		p.corner(geom, d, d.args[k+1])
	}
}

// corner appends every attribute referenced by a "v/vt/vn" descriptor.
func (p *objParser) corner(geom *OBJGeometry, d directive, desc string) {
	for slot, field := range strings.SplitN(desc, "/", 3) {
		if field == "" {
			continue
		}
		switch slot {
		case 0:
			idx := p.resolve(d, field, len(p.positions))
			pos := p.positions[idx]
			geom.Data.Position = append(geom.Data.Position, pos[:]...)
			if len(p.colors) > 1 {
				var col [3]float32
				if idx < len(p.colors) {
					col = p.colors[idx]
				}
				geom.Data.Color = append(geom.Data.Color, col[:]...)
			}
		case 1:
			uv := p.texcoords[p.resolve(d, field, len(p.texcoords))]
			geom.Data.TexCoord = append(geom.Data.TexCoord, uv[:]...)
		case 2:
			n := p.normals[p.resolve(d, field, len(p.normals))]
			geom.Data.Normal = append(geom.Data.Normal, n[:]...)
		}
	}
}

// resolve turns a 1-based or negative file index into a table index.
// Negative values count back from the current table length, sentinel
// included, so -1 is the most recent record. Unusable indices resolve to
// the sentinel.
func (p *objParser) resolve(d directive, field string, tableLen int) int {
	idx, err := strconv.Atoi(field)
	if err != nil {
		p.warn.add(d.line, "malformed index %q", field)
		return 0
	}
	if idx < 0 {
		idx += tableLen
	}
	if idx < 0 || idx >= tableLen {
		p.warn.add(d.line, "index %s out of range", field)
		return 0
	}
	return idx
}

// openGeometry returns the open geometry, starting a new one with the
// current object, groups and material if none is open.
func (p *objParser) openGeometry() *OBJGeometry {
	if p.current < 0 {
		p.geometries = append(p.geometries, OBJGeometry{
			Object:   p.object,
			Groups:   p.groups,
			Material: p.material,
		})
		p.current = len(p.geometries) - 1
	}
	return &p.geometries[p.current]
}

// closeGeometry ends the open geometry if it already holds vertices.
func (p *objParser) closeGeometry() {
	if p.current >= 0 && len(p.geometries[p.current].Data.Position) > 0 {
		p.current = -1
	}
}

func pruneEmpty(d *OBJVertexData) {
	for _, arr := range []*[]float32{&d.Position, &d.TexCoord, &d.Normal, &d.Color} {
		if len(*arr) == 0 {
			*arr = nil
		}
	}
}
