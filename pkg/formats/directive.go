package formats

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
)

// directiveKind identifies a known keyword of the OBJ or MTL text formats.
type directiveKind int

const (
	dirUnknown directiveKind = iota

	// OBJ
	dirVertex
	dirNormal
	dirTexCoord
	dirFace
	dirSmoothing
	dirMaterialLib
	dirUseMaterial
	dirGroup
	dirObject

	// MTL
	dirNewMaterial
	dirShininess
	dirAmbient
	dirDiffuse
	dirSpecular
	dirEmissive
	dirDiffuseMap
	dirSpecularMap
	dirNormalMap
	dirOpticalDensity
	dirDissolve
	dirTransparency
	dirIllum
)

var objKeywords = map[string]directiveKind{
	"v":      dirVertex,
	"vn":     dirNormal,
	"vt":     dirTexCoord,
	"f":      dirFace,
	"s":      dirSmoothing,
	"mtllib": dirMaterialLib,
	"usemtl": dirUseMaterial,
	"g":      dirGroup,
	"o":      dirObject,
}

var mtlKeywords = map[string]directiveKind{
	"newmtl":   dirNewMaterial,
	"Ns":       dirShininess,
	"Ka":       dirAmbient,
	"Kd":       dirDiffuse,
	"Ks":       dirSpecular,
	"Ke":       dirEmissive,
	"map_Kd":   dirDiffuseMap,
	"map_Ns":   dirSpecularMap,
	"map_Bump": dirNormalMap,
	"map_bump": dirNormalMap,
	"bump":     dirNormalMap,
	"Ni":       dirOpticalDensity,
	"d":        dirDissolve,
	"Tr":       dirTransparency,
	"illum":    dirIllum,
}

// directive is one tokenized line of an OBJ or MTL document.
type directive struct {
	line    int      // 1-based source line
	keyword string   // leading word characters
	kind    directiveKind
	args    []string // remainder split on whitespace
	raw     string   // remainder unsplit, filenames may contain spaces
}

// scanDirectives tokenizes text line by line and calls fn for every directive.
// Blank lines and comments never reach fn.
func scanDirectives(text string, keywords map[string]directiveKind, fn func(d directive)) {
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if idx := strings.IndexByte(line, '#'); idx > 0 {
			line = strings.TrimSpace(line[:idx])
		}

		end := 0
		for end < len(line) && isWordByte(line[end]) {
			end++
		}
		keyword := line[:end]

		var args []string
		if fields := strings.Fields(line); len(fields) > 1 {
			args = fields[1:]
		}

		fn(directive{
			line:    i + 1,
			keyword: keyword,
			kind:    keywords[keyword],
			args:    args,
			raw:     strings.TrimLeft(line[end:], " \t"),
		})
	}
}

func isWordByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

// parseFloat parses s as a float32. Malformed input yields NaN and ok=false.
// Out of range values saturate to ±Inf and are accepted.
func parseFloat(s string) (v float32, ok bool) {
	f, err := strconv.ParseFloat(s, 32)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math32.NaN(), false
	}
	return float32(f), true
}

// warnings collects non-fatal diagnostics for a single parse.
type warnings []string

func (w *warnings) add(line int, format string, args ...any) {
	*w = append(*w, fmt.Sprintf("line %d: ", line)+fmt.Sprintf(format, args...))
}

func (w *warnings) unhandled(d directive) {
	w.add(d.line, "unhandled keyword %q", d.keyword)
}
