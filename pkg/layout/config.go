package layout

import "math"

// CardSize holds the physical size of one printed card in points.
type CardSize struct {
	Width  float64
	Height float64
}

// DefaultCardSize is the standard vertical trading-card size,
// 2.48in x 3.46in at 72 points per inch.
var DefaultCardSize = CardSize{Width: 2.48 * 72, Height: 3.46 * 72}

// Config is the immutable input to the planner. It is passed by value;
// the planner never reads ambient or global state.
type Config struct {
	Card      CardSize
	PageW     float64 // portrait page width in points
	PageH     float64 // portrait page height in points
	Landscape bool
}

// Geometry is the derived per-page grid: how many cards fit, and the
// centering margins around the grid.
type Geometry struct {
	PageW   float64
	PageH   float64
	Card    CardSize
	Cols    int
	Rows    int
	MarginX float64
	MarginY float64
}

// PerPage returns the number of card cells on one page.
func (g Geometry) PerPage() int { return g.Cols * g.Rows }

// Geometry computes the page grid for this configuration. Landscape
// swaps the page dimensions before packing. Margins are rounded to whole
// points so the grid sits centered on the page.
func (c Config) Geometry() Geometry {
	pw, ph := c.PageW, c.PageH
	if c.Landscape {
		pw, ph = ph, pw
	}

	cols := int(math.Floor(pw / c.Card.Width))
	rows := int(math.Floor(ph / c.Card.Height))
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}

	return Geometry{
		PageW:   pw,
		PageH:   ph,
		Card:    c.Card,
		Cols:    cols,
		Rows:    rows,
		MarginX: math.Round((pw - c.Card.Width*float64(cols)) / 2),
		MarginY: math.Round((ph - c.Card.Height*float64(rows)) / 2),
	}
}
