// Package pdfsink writes planner events into a print-ready PDF document
// using signintech/gopdf.
package pdfsink

import (
	"os"
	"path/filepath"

	"github.com/signintech/gopdf"

	"github.com/proxypress/proxypress/pkg/errors"
	"github.com/proxypress/proxypress/pkg/render"
)

// Writer renders one PDF document. Create it with New, drive it through
// render.Run, and read the result from the output path after Finalize.
type Writer struct {
	pdf     *gopdf.GoPdf
	assets  string // directory holding processed card images
	out     string
	pageH   float64
	started bool
}

var _ render.Writer = (*Writer)(nil)

// New creates a PDF writer for a document of the given page size in
// points. Image refs are resolved relative to assetDir.
func New(out, assetDir string, pageW, pageH float64) *Writer {
	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: gopdf.Rect{W: pageW, H: pageH}})
	pdf.AddPage()
	return &Writer{
		pdf:    pdf,
		assets: assetDir,
		out:    out,
		pageH:  pageH,
	}
}

// DrawImage places the processed image for ref. Events use a bottom-left
// origin; gopdf uses top-left, so y is flipped here.
func (w *Writer) DrawImage(ref string, x, y, width, height float64) error {
	path := filepath.Join(w.assets, filepath.Base(ref))
	if _, err := os.Stat(path); err != nil {
		return errors.Wrap(errors.ErrCodeAssetNotFound, err, "no processed image for %q", ref)
	}

	top := w.pageH - y - height
	if err := w.pdf.Image(path, x, top, &gopdf.Rect{W: width, H: height}); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "draw %q", ref)
	}
	return nil
}

// NewPage finalizes the current page and starts the next one.
func (w *Writer) NewPage() error {
	w.pdf.AddPage()
	return nil
}

// StrokeLine draws one registration stroke, mapping the dash pattern and
// phase onto the PDF dash operator.
func (w *Writer) StrokeLine(x1, y1, x2, y2 float64, c render.Color, width float64, dash render.Dash) error {
	w.pdf.SetLineWidth(width)
	w.pdf.SetStrokeColor(c.R, c.G, c.B)
	if len(dash.Pattern) > 0 {
		w.pdf.SetCustomLineType(dash.Pattern, dash.Phase)
	} else {
		w.pdf.SetLineType("")
	}
	w.pdf.Line(x1, w.pageH-y1, x2, w.pageH-y2)
	return nil
}

// Finalize writes the document to the output path.
func (w *Writer) Finalize() error {
	if err := w.pdf.WritePdf(w.out); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", w.out)
	}
	return nil
}
