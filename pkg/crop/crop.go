// Package crop prepares raw card scans for printing.
//
// Scans from most sources carry a full-bleed border around the card
// face. Cropping trims that border proportionally to the scan size,
// optionally applies a vibrance LUT and caps the effective print
// resolution, then writes the result into the output directory the
// layout stages read from.
package crop

import (
	"context"
	"image"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/proxypress/proxypress/pkg/errors"
	"github.com/proxypress/proxypress/pkg/lut"
)

// borderRatio is the border fraction of the nominal card size: the
// bleed is 0.12in on a 2.72in by 3.7in scan.
const (
	borderRatio  = 0.12
	scanWidthIn  = 2.72
	scanHeightIn = 3.7
)

// supportedExts are the image types picked up from the source dir.
var supportedExts = map[string]bool{
	".gif":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Options configures a crop run.
type Options struct {
	// SourceDir holds the raw scans.
	SourceDir string

	// OutputDir receives the processed images and the manifest.
	OutputDir string

	// MaxDPI caps the stored resolution. Images whose border math
	// implies a higher density are downscaled. Zero disables the cap.
	MaxDPI int

	// LUT is an optional color table applied at LUTStrength.
	LUT         *lut.LUT
	LUTStrength float64

	// Force reprocesses every image regardless of the manifest.
	Force bool

	// Logger receives per-image progress. Defaults to a silent logger.
	Logger *log.Logger
}

// ValidateAndSetDefaults checks required fields and applies defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.SourceDir == "" {
		return errors.New(errors.ErrCodeInvalidInput, "source directory is required")
	}
	if o.OutputDir == "" {
		return errors.New(errors.ErrCodeInvalidInput, "output directory is required")
	}
	if o.MaxDPI < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max dpi must not be negative, got %d", o.MaxDPI)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// Result summarizes a crop run.
type Result struct {
	Processed int
	Skipped   int
	Failed    int
}

// Run processes every supported image in the source directory. A bad
// individual image is logged and counted, not fatal; only setup
// problems abort the run.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(opts.SourceDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read source dir %s", opts.SourceDir)
	}
	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create output dir %s", opts.OutputDir)
	}

	manifest := LoadManifest(opts.OutputDir)
	res := &Result{}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		name := entry.Name()
		if entry.IsDir() || !supportedExts[strings.ToLower(filepath.Ext(name))] {
			continue
		}

		src := filepath.Join(opts.SourceDir, name)
		dst := filepath.Join(opts.OutputDir, name)

		hash, err := HashFile(src)
		if err != nil {
			opts.Logger.Warn("skipping unreadable image", "image", name, "err", err)
			res.Failed++
			continue
		}
		if !opts.Force && manifest.Fresh(name, hash) && exists(dst) {
			res.Skipped++
			continue
		}

		if err := processOne(src, dst, opts); err != nil {
			opts.Logger.Warn("failed to process image", "image", name, "err", err)
			res.Failed++
			continue
		}

		manifest.Record(name, hash)
		opts.Logger.Debug("processed image", "image", name)
		res.Processed++
	}

	if err := manifest.Save(); err != nil {
		return res, errors.Wrap(errors.ErrCodeInternal, err, "save crop manifest")
	}
	return res, nil
}

// processOne crops, color-corrects and downscales a single scan.
func processOne(src, dst string, opts Options) error {
	img, err := imaging.Open(src)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", src)
	}

	border, dpi := BorderSize(img.Bounds().Dx(), img.Bounds().Dy())
	out := imaging.Crop(img, image.Rect(
		border, border,
		img.Bounds().Dx()-border, img.Bounds().Dy()-border,
	))

	if opts.LUT != nil && opts.LUTStrength > 0 {
		out = opts.LUT.Apply(out, opts.LUTStrength)
	}

	if opts.MaxDPI > 0 && dpi > float64(opts.MaxDPI) {
		factor := float64(opts.MaxDPI) / dpi
		w := int(math.Round(float64(out.Bounds().Dx()) * factor))
		h := int(math.Round(float64(out.Bounds().Dy()) * factor))
		out = imaging.Sharpen(imaging.Resize(out, w, h, imaging.CatmullRom), 0.5)
	}

	if err := imaging.Save(out, dst, imaging.JPEGQuality(98)); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", dst)
	}
	return nil
}

// BorderSize derives the bleed border in pixels and the implied print
// density for a scan of the given pixel dimensions. The border scales
// with whichever axis is tighter against the nominal scan size.
func BorderSize(w, h int) (border int, dpi float64) {
	tight := math.Min(float64(w)/scanWidthIn, float64(h)/scanHeightIn)
	border = int(math.Round(borderRatio * tight))
	dpi = float64(border) / borderRatio
	return border, dpi
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
