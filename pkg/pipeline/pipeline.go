// Package pipeline provides the core print pipeline.
//
// This package implements the complete crop → plan → render flow used
// by the CLI. Centralizing it keeps behavior identical no matter which
// command triggers a render.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Crop: Prepare raw scans into print-ready card images
//  2. Plan: Tile every card copy onto pages and position cut marks
//  3. Render: Replay the plan into a PDF or per-page PNG proofs
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    WorkDir: ".",
//	    Format:  pipeline.FormatPDF,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.OutputPath)
package pipeline

import (
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/proxypress/proxypress/pkg/crop"
	"github.com/proxypress/proxypress/pkg/errors"
)

// Format constants for render output.
const (
	FormatPDF = "pdf"
	FormatPNG = "png"
)

// ValidFormats is the set of supported render formats.
var ValidFormats = map[string]bool{
	FormatPDF: true,
	FormatPNG: true,
}

// Workspace directory names under the work dir.
const (
	ImagesDir = "images"
	CropDir   = "crop"
)

// Options contains all configuration for one pipeline run.
type Options struct {
	// WorkDir is the workspace root holding print.json, the settings
	// file and the images directory. Defaults to the current directory.
	WorkDir string

	// PageSize overrides the project's page size for this run.
	PageSize string

	// Orient overrides the project's orientation for this run.
	Orient string

	// Format selects the render output, pdf or png proofs.
	Format string

	// Output overrides the computed output path.
	Output string

	// SkipCrop renders from the existing processed images without
	// touching the source scans.
	SkipCrop bool

	// ForceCrop reprocesses every scan even when cached.
	ForceCrop bool

	// Logger receives stage progress. Defaults to a silent logger.
	Logger *log.Logger

	validated bool
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// Idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.WorkDir == "" {
		o.WorkDir = "."
	}
	if o.Format == "" {
		o.Format = FormatPDF
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	if o.SkipCrop && o.ForceCrop {
		return errors.New(errors.ErrCodeInvalidInput, "skip-crop and force-crop are mutually exclusive")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ValidateFormat checks that a render format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: pdf, png)", format)
	}
	return nil
}

// SourceDir returns the raw scan directory for the workspace.
func (o *Options) SourceDir() string {
	return filepath.Join(o.WorkDir, ImagesDir)
}

// ProcessedDir returns the processed image directory for the workspace.
func (o *Options) ProcessedDir() string {
	return filepath.Join(o.WorkDir, ImagesDir, CropDir)
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this execution in logs.
	RunID string

	// OutputPath is where the document (or the first proof page)
	// was written.
	OutputPath string

	// Crop summarizes the crop stage, nil when skipped.
	Crop *crop.Result

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Cards      int
	Pages      int
	CropTime   time.Duration
	PlanTime   time.Duration
	RenderTime time.Duration
}
