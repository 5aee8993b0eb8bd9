package cli

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	apperrors "github.com/proxypress/proxypress/pkg/errors"
	"github.com/proxypress/proxypress/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	dir       string // workspace directory
	output    string // output file override
	format    string // pdf or png
	pageSize  string // page size override
	orient    string // orientation override
	skipCrop  bool   // render from existing processed images
	forceCrop bool   // reprocess all scans first
	open      bool   // open the result in the system viewer
}

// renderCommand creates the render command for producing the document.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{format: pipeline.FormatPDF}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the print document",
		Long: `Render the print document.

Runs the full pipeline: scans are cropped, every card copy is tiled
onto pages with registration marks at the grid intersections, and the
result is written as a PDF (default) or as one PNG proof per page.

Page size and orientation default to the project settings and can be
overridden per run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateFormat(opts.format); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.dir, "dir", "C", ".", "workspace directory")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: from project filename)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: pdf (default), png")
	cmd.Flags().StringVar(&opts.pageSize, "page-size", "", "page size: Letter, A4, Legal (default: from project)")
	cmd.Flags().StringVar(&opts.orient, "orient", "", "orientation: Portrait, Landscape (default: from project)")
	cmd.Flags().BoolVar(&opts.skipCrop, "skip-crop", false, "render from existing processed images")
	cmd.Flags().BoolVar(&opts.forceCrop, "force-crop", false, "reprocess all scans before rendering")
	cmd.Flags().BoolVar(&opts.open, "open", false, "open the result in the system viewer")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, opts *renderOpts) error {
	spin := newSpinner(ctx, "rendering "+opts.format)
	spin.Start()

	runner := pipeline.NewRunner(c.Logger)
	res, err := runner.Execute(ctx, pipeline.Options{
		WorkDir:   opts.dir,
		PageSize:  opts.pageSize,
		Orient:    opts.orient,
		Format:    opts.format,
		Output:    opts.output,
		SkipCrop:  opts.skipCrop,
		ForceCrop: opts.forceCrop,
		Logger:    c.Logger,
	})
	if err != nil {
		spin.StopWithError(apperrors.UserMessage(err))
		return err
	}
	spin.StopWithSuccess(fmt.Sprintf("%d card(s) on %d page(s)", res.Stats.Cards, res.Stats.Pages))

	printFile(res.OutputPath)
	if res.Crop != nil && res.Crop.Failed > 0 {
		printWarning("%d scan(s) failed to process", res.Crop.Failed)
	}

	if opts.open {
		if err := openInViewer(res.OutputPath); err != nil {
			printWarning("could not open %s: %v", res.OutputPath, err)
		}
	}
	return nil
}

// openInViewer hands the file to the platform's default opener.
func openInViewer(path string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", path).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", path).Start()
	default:
		return exec.Command("xdg-open", path).Start()
	}
}
