// Package layout implements the page layout planner for card sheets.
//
// # Overview
//
// The planner takes an ordered multiset of card images with per-card repeat
// counts and a page configuration, and produces a deterministic sequence of
// placement events: where each card goes on which page, where pages break,
// and where registration marks belong. The planner never draws anything
// itself; it drives a consumer (see the render package) through the event
// list, which keeps the packing arithmetic testable without a PDF backend.
//
// # Coordinates
//
// All coordinates are PDF points (1/72 inch) with the origin at the
// bottom-left of the page and y increasing upward. Sinks that use a
// top-left origin translate when consuming events.
//
// # Usage
//
//	cfg := layout.Config{
//	    Card:      layout.DefaultCardSize,
//	    PageW:     pagespec.Letter.Width,
//	    PageH:     pagespec.Letter.Height,
//	    Landscape: false,
//	}
//	events, err := layout.Plan(cards, cfg)
//	if err != nil {
//	    return err
//	}
//	for _, ev := range events {
//	    switch ev := ev.(type) {
//	    case layout.Place:
//	        // draw ev.Ref at (ev.X, ev.Y)
//	    case layout.PageBreak:
//	        // start a new page
//	    case layout.MarkPage:
//	        // draw registration crosses at ev.Points
//	    }
//	}
//
// Marks are emitted once per page: when the grid fills up, or after the
// globally last card for a partially filled final page. The mark grid always
// covers the page's full nominal cut grid, regardless of how many cells the
// final page actually used — marks describe the cut grid, not occupancy.
package layout
