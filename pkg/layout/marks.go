package layout

// Point is a position on the page in points, bottom-left origin.
type Point struct {
	X, Y float64
}

// GridPoints returns the registration mark positions for one page: the
// (Rows+1) x (Cols+1) intersections of the card grid, row by row from
// the bottom margin. The grid always spans the page's full nominal cut
// grid even when the page holds fewer cards.
func (g Geometry) GridPoints() []Point {
	points := make([]Point, 0, (g.Rows+1)*(g.Cols+1))
	for cy := 0; cy <= g.Rows; cy++ {
		for cx := 0; cx <= g.Cols; cx++ {
			points = append(points, Point{
				X: g.MarginX + g.Card.Width*float64(cx),
				Y: g.MarginY + g.Card.Height*float64(cy),
			})
		}
	}
	return points
}
