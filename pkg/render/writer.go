package render

// Color is an 8-bit RGB stroke color.
type Color struct {
	R, G, B uint8
}

var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
)

// Dash describes a stroke dash pattern. An empty Pattern is a solid line.
// Phase shifts where the pattern starts, letting two overlaid strokes
// interleave their dashes.
type Dash struct {
	Pattern []float64
	Phase   float64
}

// Writer is a single-document output backend driven by Run.
//
// DrawImage resolves ref to previously processed pixel data and draws it
// at the given page position and size; failing to resolve ref is an
// ASSET_NOT_FOUND error and aborts the render. NewPage finalizes the
// current page and starts the next. Finalize writes the document out;
// Run calls it exactly once, after the last event.
type Writer interface {
	DrawImage(ref string, x, y, w, h float64) error
	NewPage() error
	StrokeLine(x1, y1, x2, y2 float64, c Color, width float64, dash Dash) error
	Finalize() error
}

