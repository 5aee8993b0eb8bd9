package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/proxypress/proxypress/pkg/config"
	"github.com/proxypress/proxypress/pkg/crop"
	"github.com/proxypress/proxypress/pkg/layout"
	"github.com/proxypress/proxypress/pkg/lut"
	"github.com/proxypress/proxypress/pkg/pagespec"
	"github.com/proxypress/proxypress/pkg/project"
	"github.com/proxypress/proxypress/pkg/render"
	"github.com/proxypress/proxypress/pkg/render/pdfsink"
	"github.com/proxypress/proxypress/pkg/render/proofsink"
)

// Runner executes the pipeline. It is stateless except for the logger,
// so multiple goroutines can share one Runner with different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger falls back to log.Default.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete crop → plan → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{RunID: uuid.NewString()}
	logger := opts.Logger.With("run", result.RunID[:8])

	cfg, err := config.Load(filepath.Join(opts.WorkDir, config.DefaultFile))
	if err != nil {
		return nil, err
	}
	proj, err := project.Load(filepath.Join(opts.WorkDir, project.DefaultFile))
	if err != nil {
		return nil, err
	}

	// Stage 1: Crop
	if !opts.SkipCrop {
		cropStart := time.Now()
		cropRes, err := r.runCrop(ctx, cfg, opts)
		if err != nil {
			return nil, err
		}
		result.Crop = cropRes
		result.Stats.CropTime = time.Since(cropStart)

		logger.Info("prepared card images",
			"processed", cropRes.Processed,
			"skipped", cropRes.Skipped,
			"failed", cropRes.Failed,
			"duration", result.Stats.CropTime)
	}

	// New images become printable cards with one copy each.
	if err := proj.Sync(opts.ProcessedDir()); err != nil {
		return nil, err
	}
	if err := proj.Save(filepath.Join(opts.WorkDir, project.DefaultFile)); err != nil {
		return nil, err
	}

	// Stage 2: Plan
	planStart := time.Now()
	size, orient, err := resolvePage(proj, opts)
	if err != nil {
		return nil, err
	}
	pageW, pageH := size.Oriented(orient)

	layoutCfg := layout.Config{
		Card:  layout.DefaultCardSize,
		PageW: pageW,
		PageH: pageH,
	}
	events, err := layout.Plan(proj.CardCounts(), layoutCfg)
	if err != nil {
		return nil, err
	}
	geom := layoutCfg.Geometry()
	result.Stats.Cards = proj.TotalCards()
	result.Stats.Pages = layout.Pages(result.Stats.Cards, geom.PerPage())
	result.Stats.PlanTime = time.Since(planStart)

	logger.Info("planned layout",
		"cards", result.Stats.Cards,
		"pages", result.Stats.Pages,
		"grid", fmt.Sprintf("%dx%d", geom.Cols, geom.Rows),
		"page", size.Name,
		"orient", orient)

	if result.Stats.Cards == 0 {
		logger.Warn("project has no cards to print, output will be a blank page")
	}

	// Stage 3: Render
	renderStart := time.Now()
	out := opts.Output
	if out == "" {
		out = proj.OutputPath(opts.WorkDir, opts.Format)
	}

	var w render.Writer
	switch opts.Format {
	case FormatPDF:
		w = pdfsink.New(out, opts.ProcessedDir(), pageW, pageH)
	case FormatPNG:
		w = proofsink.New(out, opts.ProcessedDir(), pageW, pageH, 0)
	}
	if err := render.Run(events, w, render.DefaultMarkStyle); err != nil {
		return nil, err
	}
	result.OutputPath = out
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("rendered document",
		"format", opts.Format,
		"path", out,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// runCrop assembles crop options from the settings file and runs the
// crop stage.
func (r *Runner) runCrop(ctx context.Context, cfg *config.Config, opts Options) (*crop.Result, error) {
	var table *lut.LUT
	if cfg.CubeFile != "" && cfg.VibranceBump > 0 {
		path := cfg.CubeFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(opts.WorkDir, path)
		}
		var err error
		table, err = lut.Parse(path)
		if err != nil {
			return nil, err
		}
	}

	return crop.Run(ctx, crop.Options{
		SourceDir:   opts.SourceDir(),
		OutputDir:   opts.ProcessedDir(),
		MaxDPI:      cfg.MaxDPI,
		LUT:         table,
		LUTStrength: cfg.VibranceBump,
		Force:       opts.ForceCrop,
		Logger:      opts.Logger,
	})
}

// resolvePage picks the page size and orientation, with run options
// taking precedence over the project file.
func resolvePage(proj *project.Project, opts Options) (pagespec.Size, pagespec.Orientation, error) {
	sizeName := opts.PageSize
	if sizeName == "" {
		sizeName = proj.PageSize
	}
	size, err := pagespec.Lookup(sizeName)
	if err != nil {
		return pagespec.Size{}, "", err
	}

	orientName := opts.Orient
	if orientName == "" {
		orientName = proj.Orient
	}
	orient, err := pagespec.ParseOrientation(orientName)
	if err != nil {
		return pagespec.Size{}, "", err
	}
	return size, orient, nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
