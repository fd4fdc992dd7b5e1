package primitive

import (
	"image/png"
	"io"

	"golang.org/x/image/bmp"

	"github.com/gocad/scadcore/csg"
)

// DecodeHeightmap decodes a PNG or BMP image (detected by trying PNG then
// BMP) into a grid of heights, one per pixel, taken from luminance in [0,1];
// no inversion is applied (spec §4.5.2: no other raster formats or DEM/text
// grid formats are supported — direct image decode only).
func DecodeHeightmap(r io.Reader) (width, height int, values []float64, err error) {
	data, readErr := io.ReadAll(r)
	if readErr != nil {
		return 0, 0, nil, readErr
	}

	img, decodeErr := png.Decode(newReader(data))
	if decodeErr != nil {
		img, decodeErr = bmp.Decode(newReader(data))
		if decodeErr != nil {
			return 0, 0, nil, decodeErr
		}
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			lum := (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 65535
			out[y*w+x] = lum
		}
	}
	return w, h, out, nil
}

func newReader(b []byte) *byteReader { return &byteReader{data: b} }

// byteReader is a minimal io.Reader over an in-memory buffer, avoiding a
// bytes.Reader import purely for symmetry with how small helper types are
// kept local in this package.
type byteReader struct {
	data []byte
	pos  int
}

func (r *byteReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// Surface builds a height-mapped mesh from a decoded grid: one quad per
// 2x2 pixel neighborhood, height scaled by `heightScale`, optionally
// centered on X/Y (spec §4.5 surface()). The mesh is the height surface
// only: no side walls or base are added, so it is not closed.
func Surface(width, height int, values []float64, heightScale float64, center bool) *csg.Handle {
	if width < 2 || height < 2 {
		return csg.NewHandle(csg.Mesh{})
	}
	var ox, oy float64
	if center {
		ox, oy = -float64(width-1)/2, -float64(height-1)/2
	}
	at := func(x, y int) csg.Vec3 {
		v := values[y*width+x]
		return csg.Vec3{
			X: float32(float64(x) + ox),
			Y: float32(float64(y) + oy),
			Z: float32(v * heightScale),
		}
	}
	var tris []csg.Triangle
	for y := 0; y+1 < height; y++ {
		for x := 0; x+1 < width; x++ {
			a, b, c, d := at(x, y), at(x+1, y), at(x+1, y+1), at(x, y+1)
			tris = append(tris, csg.Triangle{A: a, B: b, C: c}, csg.Triangle{A: a, B: c, C: d})
		}
	}
	return csg.NewHandle(csg.Mesh{Triangles: tris})
}
