package render

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/proxypress/proxypress/pkg/errors"
	"github.com/proxypress/proxypress/pkg/layout"
)

// fakeWriter records every call so tests can assert on the exact
// instruction stream a plan produces.
type fakeWriter struct {
	ops       []string
	strokes   []Stroke
	finalized bool
	missing   map[string]bool
}

func (f *fakeWriter) DrawImage(ref string, x, y, w, h float64) error {
	if f.missing[ref] {
		return errors.New(errors.ErrCodeAssetNotFound, "no processed image for %q", ref)
	}
	f.ops = append(f.ops, fmt.Sprintf("image %s %.0f,%.0f %gx%g", ref, x, y, w, h))
	return nil
}

func (f *fakeWriter) NewPage() error {
	f.ops = append(f.ops, "newpage")
	return nil
}

func (f *fakeWriter) StrokeLine(x1, y1, x2, y2 float64, c Color, width float64, dash Dash) error {
	f.ops = append(f.ops, "stroke")
	f.strokes = append(f.strokes, Stroke{X1: x1, Y1: y1, X2: x2, Y2: y2, Color: c, Width: width, Dash: dash})
	return nil
}

func (f *fakeWriter) Finalize() error {
	f.finalized = true
	return nil
}

func TestRunReplaysEvents(t *testing.T) {
	events := []layout.Event{
		layout.Place{Ref: "a.png", X: 10, Y: 20, W: 100, H: 140},
		layout.PageBreak{},
		layout.Place{Ref: "b.png", X: 10, Y: 20, W: 100, H: 140},
		layout.MarkPage{Points: []layout.Point{{X: 10, Y: 20}}},
	}

	w := &fakeWriter{}
	if err := Run(events, w, DefaultMarkStyle); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	wantOps := []string{
		"image a.png 10,20 100x140",
		"newpage",
		"image b.png 10,20 100x140",
		"stroke", "stroke", "stroke", "stroke",
	}
	if !reflect.DeepEqual(w.ops, wantOps) {
		t.Errorf("ops = %v, want %v", w.ops, wantOps)
	}
	if !w.finalized {
		t.Error("writer was not finalized")
	}
}

func TestRunMissingAssetAborts(t *testing.T) {
	events := []layout.Event{
		layout.Place{Ref: "a.png", X: 0, Y: 0, W: 100, H: 140},
		layout.Place{Ref: "gone.png", X: 100, Y: 0, W: 100, H: 140},
		layout.MarkPage{Points: []layout.Point{{X: 0, Y: 0}}},
	}

	w := &fakeWriter{missing: map[string]bool{"gone.png": true}}
	err := Run(events, w, DefaultMarkStyle)
	if err == nil {
		t.Fatal("Run() error = nil, want asset error")
	}
	if !errors.Is(err, errors.ErrCodeAssetNotFound) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeAssetNotFound)
	}
	if w.finalized {
		t.Error("writer finalized despite aborted render")
	}
	if len(w.strokes) != 0 {
		t.Errorf("strokes drawn after abort: %d", len(w.strokes))
	}
}

func TestRunEmptyPlanStillFinalizes(t *testing.T) {
	w := &fakeWriter{}
	if err := Run(nil, w, DefaultMarkStyle); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !w.finalized {
		t.Error("writer was not finalized")
	}
	if len(w.ops) != 0 {
		t.Errorf("ops = %v, want none", w.ops)
	}
}
