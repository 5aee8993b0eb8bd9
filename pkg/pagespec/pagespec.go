// Package pagespec resolves named paper sizes and orientations to
// physical page dimensions in PDF points (1/72 inch).
package pagespec

import (
	"sort"
	"strings"

	"github.com/proxypress/proxypress/pkg/errors"
)

// Size holds physical page dimensions in points, portrait orientation.
type Size struct {
	Name   string
	Width  float64
	Height float64
}

// Standard paper sizes in points.
var (
	Letter = Size{Name: "Letter", Width: 612, Height: 792}
	A4     = Size{Name: "A4", Width: 595, Height: 842}
	Legal  = Size{Name: "Legal", Width: 612, Height: 1008}
)

// sizes indexes the known paper sizes by lowercase name.
var sizes = map[string]Size{
	"letter": Letter,
	"a4":     A4,
	"legal":  Legal,
}

// Orientation selects portrait or landscape page placement.
type Orientation string

const (
	Portrait  Orientation = "Portrait"
	Landscape Orientation = "Landscape"
)

// ParseOrientation resolves an orientation name case-insensitively.
func ParseOrientation(name string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "portrait", "":
		return Portrait, nil
	case "landscape":
		return Landscape, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown orientation: %q (must be Portrait or Landscape)", name)
}

// Lookup resolves a paper size by name, case-insensitively.
// The error message lists the valid names.
func Lookup(name string) (Size, error) {
	if s, ok := sizes[strings.ToLower(strings.TrimSpace(name))]; ok {
		return s, nil
	}
	return Size{}, errors.New(errors.ErrCodeInvalidPageSize,
		"unknown page size: %q (must be one of: %s)", name, strings.Join(Names(), ", "))
}

// Names returns the known paper size names, sorted.
func Names() []string {
	names := make([]string, 0, len(sizes))
	for _, s := range sizes {
		names = append(names, s.Name)
	}
	sort.Strings(names)
	return names
}

// Oriented returns the page dimensions with width and height swapped
// when the orientation is landscape.
func (s Size) Oriented(o Orientation) (width, height float64) {
	if o == Landscape {
		return s.Height, s.Width
	}
	return s.Width, s.Height
}
