package primitive

import (
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/gocad/scadcore/csg"
)

// FontFace wraps a parsed TrueType font for Text. primitive only consumes a
// parsed font; nothing in this module loads font files, and the evaluator's
// text() passes no face.
type FontFace struct {
	Font *truetype.Font
}

// fallbackGlyphOutline approximates a glyph as a simple rectangle when no
// font face is available or the face yields no usable glyph, so text() never
// aborts evaluation outright. There is no bundled default face: a nil face
// goes straight to this block glyph, and no warning is recorded.
func fallbackGlyphOutline(size float64) []csg.Vec3 {
	w, h := size*0.6, size
	return []csg.Vec3{
		{X: 0, Y: 0}, {X: float32(w), Y: 0}, {X: float32(w), Y: float32(h)}, {X: 0, Y: float32(h)},
	}
}

// Text lays out `s` at the given point size using face (nil selects the
// block-glyph fallback), producing one flat outline per character advanced
// along +X, unioned into a single mesh (spec §4.5 text()).
func Text(s string, size float64, face *FontFace, halign, valign string) *csg.Handle {
	if s == "" {
		return csg.NewHandle(csg.Mesh{})
	}
	var tris []csg.Triangle
	advance := 0.0
	totalWidth := 0.0

	type glyphPlacement struct {
		outline []csg.Vec3
		x       float64
	}
	var placements []glyphPlacement

	for _, r := range s {
		if r == ' ' {
			advance += size * 0.5
			continue
		}
		outline := glyphOutline(r, size, face)
		placements = append(placements, glyphPlacement{outline: outline, x: advance})
		advance += size * 0.6
	}
	totalWidth = advance

	dx, dy := 0.0, 0.0
	switch halign {
	case "center":
		dx = -totalWidth / 2
	case "right":
		dx = -totalWidth
	}
	switch valign {
	case "center":
		dy = -size / 2
	case "top":
		dy = -size
	}

	for _, p := range placements {
		shifted := make([]csg.Vec3, len(p.outline))
		for i, v := range p.outline {
			shifted[i] = csg.Vec3{X: v.X + float32(p.x+dx), Y: v.Y + float32(dy), Z: v.Z}
		}
		tris = append(tris, flatten(shifted)...)
	}
	return csg.NewHandle(csg.Mesh{Triangles: tris})
}

// glyphOutline extracts r's outline from face at the given point size,
// using the glyph's on- and off-curve points in order as polygon vertices
// (curve segments are not subdivided); falls back to a block glyph when face
// is nil or the rune has no glyph.
func glyphOutline(r rune, size float64, face *FontFace) []csg.Vec3 {
	if face == nil || face.Font == nil {
		return fallbackGlyphOutline(size)
	}
	idx := face.Font.Index(r)
	if idx == 0 {
		return fallbackGlyphOutline(size)
	}

	var glyphBuf truetype.GlyphBuf
	scale := fixed.Int26_6(size * 64)
	if err := glyphBuf.Load(face.Font, scale, idx, font.HintingNone); err != nil {
		return fallbackGlyphOutline(size)
	}

	var pts []csg.Vec3
	start := 0
	for _, end := range glyphBuf.Ends {
		for i := start; i < end; i++ {
			p := glyphBuf.Points[i]
			x := float64(p.X) / 64
			y := float64(p.Y) / 64
			pts = append(pts, csg.Vec3{X: float32(x), Y: float32(y)})
		}
		start = end
	}
	if len(pts) < 3 {
		return fallbackGlyphOutline(size)
	}
	return pts
}
