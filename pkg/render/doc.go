// Package render replays planner events onto an output document.
//
// # Overview
//
// A [Writer] is one output backend: it draws card images, breaks pages,
// strokes registration lines and finalizes the document. This package
// provides the backend-independent pieces:
//
//   - [Run]: replays a layout event sequence onto a Writer
//   - [CrossStrokes]: expands one registration point into its stroke list
//
// Concrete writers live in subpackages: pdfsink (signintech/gopdf, the
// print-ready document) and proofsink (fogleman/gg, per-page PNG proofs).
//
// # Registration marks
//
// Each mark is a cross of four dashed strokes, two per axis in alternating
// colors and dash phases, so the finished mark shows alternating black and
// white dashes and stays visible against both light and dark card edges.
//
// # Coordinates
//
// Events arrive in page coordinates with a bottom-left origin (see the
// layout package). Writers translate to their native coordinate system.
package render
