package layout

import "github.com/proxypress/proxypress/pkg/errors"

// CardCount pairs a card image reference with its repeat count.
// Slice order is placement order; repeats of a card are contiguous.
type CardCount struct {
	Ref   string
	Count int
}

// Event is one instruction in the planner's output sequence.
// The concrete types are Place, PageBreak and MarkPage.
type Event interface {
	event()
}

// Place instructs the consumer to draw a card image at a page-relative
// position. X and Y are the bottom-left corner of the card.
type Place struct {
	Ref        string
	X, Y, W, H float64
}

// PageBreak finalizes the current page and starts a new one. It is
// emitted before the first Place of every page except the first.
type PageBreak struct{}

// MarkPage carries the registration mark positions for the current page.
// It is emitted once per page, after all of that page's Place events.
type MarkPage struct {
	Points []Point
}

func (Place) event()     {}
func (PageBreak) event() {}
func (MarkPage) event()  {}

// Plan tiles the flattened card sequence onto pages and returns the full
// event sequence. It is a pure function: identical input yields an
// identical event list, and no state survives between calls.
//
// An empty card list yields a nil event list. A configuration whose page
// cannot hold a single card is a CARD_TOO_LARGE error, reported before
// any event exists; this check precedes the empty-project case so a bad
// configuration never passes silently. Negative repeat counts violate the
// planner's contract and are rejected.
func Plan(cards []CardCount, cfg Config) ([]Event, error) {
	geom := cfg.Geometry()
	perPage := geom.PerPage()
	if perPage == 0 {
		return nil, errors.New(errors.ErrCodeCardTooLarge,
			"card %.0fx%.0fpt does not fit on page %.0fx%.0fpt",
			cfg.Card.Width, cfg.Card.Height, geom.PageW, geom.PageH)
	}

	total := 0
	for _, c := range cards {
		if c.Count < 0 {
			return nil, errors.New(errors.ErrCodeInvalidProject,
				"negative repeat count %d for card %q", c.Count, c.Ref)
		}
		total += c.Count
	}
	if total == 0 {
		return nil, nil
	}

	marks := geom.GridPoints()
	events := make([]Event, 0, total+2*(total/perPage+1))

	i := 0
	for _, c := range cards {
		for rep := 0; rep < c.Count; rep++ {
			j := i % perPage
			row := j / geom.Cols
			col := j % geom.Cols
			if row >= geom.Rows || col >= geom.Cols {
				// Unreachable by construction; a hit means the grid
				// arithmetic above is broken.
				return nil, errors.New(errors.ErrCodeInternal,
					"placement (%d,%d) outside %dx%d grid", row, col, geom.Rows, geom.Cols)
			}

			if j == 0 && i > 0 {
				events = append(events, PageBreak{})
			}
			events = append(events, Place{
				Ref: c.Ref,
				X:   float64(col)*cfg.Card.Width + geom.MarginX,
				Y:   float64(row)*cfg.Card.Height + geom.MarginY,
				W:   cfg.Card.Width,
				H:   cfg.Card.Height,
			})
			if j == perPage-1 || i == total-1 {
				events = append(events, MarkPage{Points: marks})
			}
			i++
		}
	}

	return events, nil
}

// Pages returns the number of pages a plan of total cards occupies,
// which equals ceil(total/perPage).
func Pages(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}
