// Package proofsink renders planner events into per-page PNG proof
// images using fogleman/gg, so a layout can be checked without a PDF
// viewer. One PNG is written per page: base-1.png, base-2.png, ...
package proofsink

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/proxypress/proxypress/pkg/errors"
	"github.com/proxypress/proxypress/pkg/render"
)

// DefaultScale is the raster scale in pixels per point (2x ≈ 144 dpi).
const DefaultScale = 2.0

// Writer renders pages as PNG proofs. Create it with New and drive it
// through render.Run.
type Writer struct {
	base   string // output path without extension
	assets string
	pageW  float64
	pageH  float64
	scale  float64
	page   int
	ctx    *gg.Context
}

var _ render.Writer = (*Writer)(nil)

// New creates a proof writer. The out path's extension is dropped and
// each page is written as out-N.png. A scale of 0 uses DefaultScale.
func New(out, assetDir string, pageW, pageH, scale float64) *Writer {
	if scale <= 0 {
		scale = DefaultScale
	}
	w := &Writer{
		base:   strings.TrimSuffix(out, filepath.Ext(out)),
		assets: assetDir,
		pageW:  pageW,
		pageH:  pageH,
		scale:  scale,
		page:   1,
	}
	w.ctx = w.blankPage()
	return w
}

func (w *Writer) blankPage() *gg.Context {
	ctx := gg.NewContext(int(w.pageW*w.scale), int(w.pageH*w.scale))
	ctx.SetRGB(1, 1, 1)
	ctx.Clear()
	return ctx
}

// DrawImage loads the processed image for ref, scales it to the card
// cell and pastes it. Events use a bottom-left origin; the raster is
// top-left, so y is flipped here.
func (w *Writer) DrawImage(ref string, x, y, width, height float64) error {
	path := filepath.Join(w.assets, filepath.Base(ref))
	img, err := imaging.Open(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeAssetNotFound, err, "no processed image for %q", ref)
	}

	pxW := int(width * w.scale)
	pxH := int(height * w.scale)
	scaled := imaging.Resize(img, pxW, pxH, imaging.Lanczos)

	top := (w.pageH - y - height) * w.scale
	w.ctx.DrawImage(scaled, int(x*w.scale), int(top))
	return nil
}

// NewPage flushes the current page to disk and starts a fresh one.
func (w *Writer) NewPage() error {
	if err := w.flush(); err != nil {
		return err
	}
	w.page++
	w.ctx = w.blankPage()
	return nil
}

// StrokeLine draws one registration stroke with the dash pattern and
// phase mapped onto the raster dash state.
func (w *Writer) StrokeLine(x1, y1, x2, y2 float64, c render.Color, width float64, dash render.Dash) error {
	w.ctx.SetRGB255(int(c.R), int(c.G), int(c.B))
	w.ctx.SetLineWidth(width * w.scale)
	if len(dash.Pattern) > 0 {
		scaled := make([]float64, len(dash.Pattern))
		for i, d := range dash.Pattern {
			scaled[i] = d * w.scale
		}
		w.ctx.SetDash(scaled...)
		w.ctx.SetDashOffset(dash.Phase * w.scale)
	} else {
		w.ctx.SetDash()
	}
	w.ctx.DrawLine(x1*w.scale, (w.pageH-y1)*w.scale, x2*w.scale, (w.pageH-y2)*w.scale)
	w.ctx.Stroke()
	return nil
}

// Finalize flushes the last page.
func (w *Writer) Finalize() error {
	return w.flush()
}

func (w *Writer) flush() error {
	path := fmt.Sprintf("%s-%d.png", w.base, w.page)
	if err := w.ctx.SavePNG(path); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}

// Pages returns the proof file paths written so far, for logging.
func (w *Writer) Pages() []string {
	paths := make([]string, 0, w.page)
	for i := 1; i <= w.page; i++ {
		paths = append(paths, fmt.Sprintf("%s-%d.png", w.base, i))
	}
	return paths
}
