package pipeline

import (
	"context"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/proxypress/proxypress/pkg/crop"
	"github.com/proxypress/proxypress/pkg/errors"
	"github.com/proxypress/proxypress/pkg/project"
)

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if opts.WorkDir != "." || opts.Format != FormatPDF {
		t.Errorf("defaults = %q/%q, want ./pdf", opts.WorkDir, opts.Format)
	}
	if opts.Logger == nil {
		t.Error("logger default not applied")
	}
}

func TestOptionsRejectsBadFormat(t *testing.T) {
	opts := Options{Format: "svg"}
	err := opts.ValidateAndSetDefaults()
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidFormat)
	}
}

func TestOptionsRejectsConflictingCropFlags(t *testing.T) {
	opts := Options{SkipCrop: true, ForceCrop: true}
	err := opts.ValidateAndSetDefaults()
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
	}
}

func TestOptionsDirs(t *testing.T) {
	opts := Options{WorkDir: "ws"}
	if got := opts.SourceDir(); got != filepath.Join("ws", "images") {
		t.Errorf("SourceDir() = %q", got)
	}
	if got := opts.ProcessedDir(); got != filepath.Join("ws", "images", "crop") {
		t.Errorf("ProcessedDir() = %q", got)
	}
}

// newWorkspace builds a workspace with n raw scans.
func newWorkspace(t *testing.T, n int) string {
	t.Helper()
	dir := t.TempDir()
	src := filepath.Join(dir, ImagesDir)
	if err := os.MkdirAll(src, 0755); err != nil {
		t.Fatal(err)
	}
	colors := []color.NRGBA{
		{R: 200, G: 60, B: 60, A: 255},
		{R: 60, G: 200, B: 60, A: 255},
		{R: 60, G: 60, B: 200, A: 255},
	}
	for i := 0; i < n; i++ {
		img := imaging.New(272, 370, colors[i%len(colors)])
		name := filepath.Join(src, "card"+string(rune('a'+i))+".png")
		if err := imaging.Save(img, name); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestExecuteProducesProofPages(t *testing.T) {
	dir := newWorkspace(t, 2)

	runner := NewRunner(nil)
	res, err := runner.Execute(context.Background(), Options{
		WorkDir: dir,
		Format:  FormatPNG,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if res.Crop == nil || res.Crop.Processed != 2 {
		t.Fatalf("crop result = %+v, want 2 processed", res.Crop)
	}
	if res.Stats.Cards != 2 || res.Stats.Pages != 1 {
		t.Errorf("stats = %+v, want 2 cards on 1 page", res.Stats)
	}
	if res.RunID == "" {
		t.Error("run id missing")
	}

	// One proof page next to the project file.
	proof := filepath.Join(dir, "_printme-1.png")
	if _, err := os.Stat(proof); err != nil {
		t.Errorf("proof page missing: %v", err)
	}

	// Sync added both cards to the project with one copy each.
	proj, err := project.Load(filepath.Join(dir, project.DefaultFile))
	if err != nil {
		t.Fatal(err)
	}
	if got := proj.Get("carda.png"); got != 1 {
		t.Errorf("carda.png count = %d, want 1", got)
	}
	if got := proj.Get("cardb.png"); got != 1 {
		t.Errorf("cardb.png count = %d, want 1", got)
	}
	// The crop cache shares the directory with the images and must
	// never be synced as a card.
	if got := proj.Get(crop.ManifestFile); got != -1 {
		t.Errorf("%s was synced as a card with count %d", crop.ManifestFile, got)
	}
}

func TestExecuteWritesPDF(t *testing.T) {
	dir := newWorkspace(t, 1)

	runner := NewRunner(nil)
	res, err := runner.Execute(context.Background(), Options{WorkDir: dir})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if res.OutputPath != filepath.Join(dir, "_printme.pdf") {
		t.Errorf("OutputPath = %q", res.OutputPath)
	}
	info, err := os.Stat(res.OutputPath)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("output is empty")
	}
}

func TestExecuteHonorsOverrides(t *testing.T) {
	dir := newWorkspace(t, 1)
	out := filepath.Join(dir, "proofs", "deck.png")
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		t.Fatal(err)
	}

	runner := NewRunner(nil)
	res, err := runner.Execute(context.Background(), Options{
		WorkDir:  dir,
		Format:   FormatPNG,
		PageSize: "A4",
		Orient:   "Landscape",
		Output:   out,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.OutputPath != out {
		t.Errorf("OutputPath = %q, want %q", res.OutputPath, out)
	}
	// A4 landscape still fits a 3-wide grid, one page for one card.
	if res.Stats.Pages != 1 {
		t.Errorf("pages = %d, want 1", res.Stats.Pages)
	}
	if _, err := os.Stat(filepath.Join(dir, "proofs", "deck-1.png")); err != nil {
		t.Errorf("proof page missing: %v", err)
	}
}

func TestExecuteRejectsUnknownPageSize(t *testing.T) {
	dir := newWorkspace(t, 1)

	runner := NewRunner(nil)
	_, err := runner.Execute(context.Background(), Options{
		WorkDir:  dir,
		PageSize: "Tabloid",
	})
	if !errors.Is(err, errors.ErrCodeInvalidPageSize) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidPageSize)
	}
}

func TestExecuteSkipCropUsesExistingImages(t *testing.T) {
	dir := newWorkspace(t, 1)

	runner := NewRunner(nil)
	// First run crops and renders.
	if _, err := runner.Execute(context.Background(), Options{WorkDir: dir, Format: FormatPNG}); err != nil {
		t.Fatal(err)
	}

	// Remove the raw scans; skip-crop must still work off images/crop.
	if err := os.Remove(filepath.Join(dir, ImagesDir, "carda.png")); err != nil {
		t.Fatal(err)
	}
	res, err := runner.Execute(context.Background(), Options{
		WorkDir:  dir,
		Format:   FormatPNG,
		SkipCrop: true,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.Crop != nil {
		t.Errorf("crop ran despite SkipCrop: %+v", res.Crop)
	}
	if res.Stats.Cards != 1 {
		t.Errorf("cards = %d, want 1", res.Stats.Cards)
	}
}
