package render

import (
	"github.com/proxypress/proxypress/pkg/errors"
	"github.com/proxypress/proxypress/pkg/layout"
)

// Run replays a planner event sequence onto w, rendering MarkPage events
// as crosses in the given mark style. The first error aborts the replay;
// Finalize is only reached when every event succeeded, so a missing asset
// never produces a misleading half-written document.
func Run(events []layout.Event, w Writer, marks MarkStyle) error {
	for _, ev := range events {
		if err := apply(ev, w, marks); err != nil {
			return err
		}
	}
	return w.Finalize()
}

func apply(ev layout.Event, w Writer, marks MarkStyle) error {
	switch ev := ev.(type) {
	case layout.Place:
		return w.DrawImage(ev.Ref, ev.X, ev.Y, ev.W, ev.H)
	case layout.PageBreak:
		return w.NewPage()
	case layout.MarkPage:
		for _, p := range ev.Points {
			for _, s := range marks.CrossStrokes(p) {
				if err := w.StrokeLine(s.X1, s.Y1, s.X2, s.Y2, s.Color, s.Width, s.Dash); err != nil {
					return err
				}
			}
		}
		return nil
	default:
		return errors.New(errors.ErrCodeInternal, "unknown layout event %T", ev)
	}
}
