// Package lut parses .cube 3D color lookup tables and applies them to
// images. It implements the subset of the Adobe cube format the
// vibrance tables use: a LUT_3D_SIZE line followed by size^3 RGB rows
// in red-fastest order.
package lut

import (
	"bufio"
	"image"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/proxypress/proxypress/pkg/errors"
)

// LUT is a parsed 3D lookup table.
type LUT struct {
	Size int
	// data holds Size^3 RGB triples, red index varying fastest.
	data []float64
}

// Parse reads a .cube file.
func Parse(path string) (*LUT, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open LUT %s", path)
	}
	defer f.Close()

	l := &LUT{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "TITLE", "DOMAIN_MIN", "DOMAIN_MAX", "LUT_1D_SIZE":
			// Header lines the vibrance tables never vary; 1D tables
			// are not supported and fail below for lack of 3D data.
			continue
		case "LUT_3D_SIZE":
			if len(fields) != 2 {
				return nil, errors.New(errors.ErrCodeInvalidLUT, "malformed LUT_3D_SIZE in %s", path)
			}
			size, err := strconv.Atoi(fields[1])
			if err != nil || size < 2 {
				return nil, errors.New(errors.ErrCodeInvalidLUT, "bad LUT_3D_SIZE %q in %s", fields[1], path)
			}
			l.Size = size
			l.data = make([]float64, 0, size*size*size*3)
			continue
		}

		if len(fields) != 3 {
			return nil, errors.New(errors.ErrCodeInvalidLUT, "bad data row %q in %s", line, path)
		}
		for _, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidLUT, err, "bad value %q in %s", field, path)
			}
			l.data = append(l.data, v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidLUT, err, "read LUT %s", path)
	}

	if l.Size == 0 {
		return nil, errors.New(errors.ErrCodeInvalidLUT, "%s has no LUT_3D_SIZE", path)
	}
	if want := l.Size * l.Size * l.Size * 3; len(l.data) != want {
		return nil, errors.New(errors.ErrCodeInvalidLUT,
			"%s has %d values, want %d for size %d", path, len(l.data), want, l.Size)
	}
	return l, nil
}

// at returns the table entry for integer lattice coordinates.
func (l *LUT) at(r, g, b int) (float64, float64, float64) {
	i := ((b*l.Size+g)*l.Size + r) * 3
	return l.data[i], l.data[i+1], l.data[i+2]
}

// Lookup maps one normalized RGB triple through the table with
// trilinear interpolation.
func (l *LUT) Lookup(r, g, b float64) (float64, float64, float64) {
	n := float64(l.Size - 1)
	fr, fg, fb := clamp01(r)*n, clamp01(g)*n, clamp01(b)*n

	r0, g0, b0 := int(fr), int(fg), int(fb)
	r1, g1, b1 := min(r0+1, l.Size-1), min(g0+1, l.Size-1), min(b0+1, l.Size-1)
	tr, tg, tb := fr-float64(r0), fg-float64(g0), fb-float64(b0)

	var out [3]float64
	corners := [8]struct {
		r, g, b int
		w       float64
	}{
		{r0, g0, b0, (1 - tr) * (1 - tg) * (1 - tb)},
		{r1, g0, b0, tr * (1 - tg) * (1 - tb)},
		{r0, g1, b0, (1 - tr) * tg * (1 - tb)},
		{r1, g1, b0, tr * tg * (1 - tb)},
		{r0, g0, b1, (1 - tr) * (1 - tg) * tb},
		{r1, g0, b1, tr * (1 - tg) * tb},
		{r0, g1, b1, (1 - tr) * tg * tb},
		{r1, g1, b1, tr * tg * tb},
	}
	for _, c := range corners {
		cr, cg, cb := l.at(c.r, c.g, c.b)
		out[0] += c.w * cr
		out[1] += c.w * cg
		out[2] += c.w * cb
	}
	return out[0], out[1], out[2]
}

// Apply maps every pixel through the table, blending the result with
// the source by strength: 0 returns the image unchanged, 1 applies the
// table fully.
func (l *LUT) Apply(img image.Image, strength float64) *image.NRGBA {
	bounds := img.Bounds()
	dst := image.NewNRGBA(bounds)
	strength = clamp01(strength)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			r, g, b := float64(c.R)/255, float64(c.G)/255, float64(c.B)/255
			lr, lg, lb := l.Lookup(r, g, b)
			dst.SetNRGBA(x, y, color.NRGBA{
				R: to8(r + (lr-r)*strength),
				G: to8(g + (lg-g)*strength),
				B: to8(b + (lb-b)*strength),
				A: c.A,
			})
		}
	}
	return dst
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func to8(v float64) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}
