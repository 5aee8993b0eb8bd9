package render

import "github.com/proxypress/proxypress/pkg/layout"

// MarkStyle configures registration cross rendering.
type MarkStyle struct {
	// Half is the distance from the cross center to each arm tip.
	Half float64
	// Width is the stroke width; it is also the dash segment length.
	Width float64
}

// DefaultMarkStyle matches the physical cutter marks: 6pt arms, 1pt strokes.
var DefaultMarkStyle = MarkStyle{Half: 6, Width: 1}

// Stroke is one line of a registration cross.
type Stroke struct {
	X1, Y1, X2, Y2 float64
	Color          Color
	Width          float64
	Dash           Dash
}

// CrossStrokes expands one registration point into its four strokes, in
// draw order. All strokes share the dash pattern [w, w]; the first pair
// draws at phase 0, the second at phase w, so black and white dashes
// interleave along both axes:
//
//  1. white vertical, phase 0
//  2. black horizontal, phase 0
//  3. white horizontal, phase w
//  4. black vertical, phase w
func (m MarkStyle) CrossStrokes(p layout.Point) []Stroke {
	c, w := m.Half, m.Width
	pattern := []float64{w, w}
	return []Stroke{
		{X1: p.X, Y1: p.Y - c, X2: p.X, Y2: p.Y + c, Color: White, Width: w, Dash: Dash{Pattern: pattern}},
		{X1: p.X - c, Y1: p.Y, X2: p.X + c, Y2: p.Y, Color: Black, Width: w, Dash: Dash{Pattern: pattern}},
		{X1: p.X - c, Y1: p.Y, X2: p.X + c, Y2: p.Y, Color: White, Width: w, Dash: Dash{Pattern: pattern, Phase: w}},
		{X1: p.X, Y1: p.Y - c, X2: p.X, Y2: p.Y + c, Color: Black, Width: w, Dash: Dash{Pattern: pattern, Phase: w}},
	}
}
