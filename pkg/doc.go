// Package pkg provides the core libraries for proxypress card printing.
//
// # Overview
//
// Proxypress turns a directory of scanned card images into a
// print-ready document: cards are tiled onto fixed-size pages with
// registration marks for cutting. The pkg directory is organized into
// these areas:
//
//  1. [crop] - Scan preparation (border trim, vibrance LUT, resolution cap)
//  2. [layout] - The page planner (tiling, page breaks, mark positions)
//  3. [render] - Plan replay into output sinks (PDF, PNG proofs)
//  4. [project] / [config] - The print.json card list and TOML settings
//  5. [pipeline] - Orchestration (crop → plan → render)
//
// # Architecture
//
// The typical data flow through proxypress:
//
//	images/ (raw scans)
//	         ↓
//	    [crop] package (trim borders, color, cache)
//	         ↓
//	    [project] package (ordered card list with repeat counts)
//	         ↓
//	    [layout] package (pages of Place/PageBreak/MarkPage events)
//	         ↓
//	    [render] package (pdfsink or proofsink)
//	         ↓
//	    PDF / PNG output
//
// # Quick Start
//
// Most callers should use the pipeline package, which wires the stages
// together the same way the CLI does:
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, pipeline.Options{WorkDir: "."})
package pkg
