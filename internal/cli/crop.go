package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/proxypress/proxypress/pkg/config"
	"github.com/proxypress/proxypress/pkg/crop"
	apperrors "github.com/proxypress/proxypress/pkg/errors"
	"github.com/proxypress/proxypress/pkg/lut"
	"github.com/proxypress/proxypress/pkg/project"
)

// cropCommand creates the crop command for preparing card scans.
func (c *CLI) cropCommand() *cobra.Command {
	var (
		dir   string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "crop",
		Short: "Prepare raw scans into print-ready card images",
		Long: `Prepare raw scans into print-ready card images.

Every supported image in images/ gets its bleed border trimmed and is
written to images/crop/. Already-processed images are skipped unless
their content changed or --force is given. New images are added to the
project with one copy each.

The settings file controls the resolution cap and the optional vibrance
LUT; see 'proxypress config show'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCrop(cmd.Context(), dir, force)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "C", ".", "workspace directory")
	cmd.Flags().BoolVar(&force, "force", false, "reprocess images even when cached")

	return cmd
}

func (c *CLI) runCrop(ctx context.Context, dir string, force bool) error {
	ws := newWorkspace(dir)

	cfg, err := config.Load(ws.settingsPath())
	if err != nil {
		return err
	}

	var table *lut.LUT
	if cfg.CubeFile != "" && cfg.VibranceBump > 0 {
		path := cfg.CubeFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(ws.dir, path)
		}
		if table, err = lut.Parse(path); err != nil {
			return err
		}
		c.Logger.Debug("loaded vibrance LUT", "file", cfg.CubeFile, "strength", cfg.VibranceBump)
	}

	prog := newProgress(c.Logger)
	spin := newSpinner(ctx, "processing scans")
	spin.Start()

	res, err := crop.Run(ctx, crop.Options{
		SourceDir:   ws.imagesDir(),
		OutputDir:   ws.cropDir(),
		MaxDPI:      cfg.MaxDPI,
		LUT:         table,
		LUTStrength: cfg.VibranceBump,
		Force:       force,
		Logger:      c.Logger,
	})
	if err != nil {
		spin.StopWithError(apperrors.UserMessage(err))
		return err
	}
	spin.StopWithSuccess(fmt.Sprintf("processed %d, skipped %d, failed %d",
		res.Processed, res.Skipped, res.Failed))
	prog.done("crop finished")

	// Make the new images printable right away.
	proj, err := project.Load(ws.projectPath())
	if err != nil {
		return err
	}
	if err := proj.Sync(ws.cropDir()); err != nil {
		return err
	}
	if err := proj.Save(ws.projectPath()); err != nil {
		return err
	}

	if res.Failed > 0 {
		printWarning("%d image(s) failed, run with --verbose for details", res.Failed)
	}
	printNextStep("review counts", appName+" cards list")
	return nil
}
