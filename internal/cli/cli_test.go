package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/proxypress/proxypress/pkg/config"
	"github.com/proxypress/proxypress/pkg/project"
)

func newTestCLI() *CLI {
	return New(io.Discard, LogInfo)
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newTestCLI().RootCommand()

	want := []string{"init", "crop", "render", "cards", "config", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestRunInitCreatesWorkspace(t *testing.T) {
	dir := t.TempDir()
	c := newTestCLI()

	if err := c.runInit(dir); err != nil {
		t.Fatalf("runInit() error = %v", err)
	}

	for _, path := range []string{
		filepath.Join(dir, "images", "crop"),
		filepath.Join(dir, project.DefaultFile),
		filepath.Join(dir, config.DefaultFile),
	} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("missing %s: %v", path, err)
		}
	}
}

func TestRunInitKeepsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	c := newTestCLI()

	// Pre-seed a project with one card.
	proj := project.New()
	proj.Cards = project.CardList{{Name: "keep.png", Count: 4}}
	if err := proj.Save(filepath.Join(dir, project.DefaultFile)); err != nil {
		t.Fatal(err)
	}

	if err := c.runInit(dir); err != nil {
		t.Fatalf("runInit() error = %v", err)
	}

	got, err := project.Load(filepath.Join(dir, project.DefaultFile))
	if err != nil {
		t.Fatal(err)
	}
	if got.Get("keep.png") != 4 {
		t.Errorf("init overwrote the existing project: %+v", got.Cards)
	}
}

func TestWorkspacePaths(t *testing.T) {
	ws := newWorkspace("deck")
	if got := ws.projectPath(); got != filepath.Join("deck", "print.json") {
		t.Errorf("projectPath() = %q", got)
	}
	if got := ws.settingsPath(); got != filepath.Join("deck", "proxypress.toml") {
		t.Errorf("settingsPath() = %q", got)
	}
	if got := ws.cropDir(); got != filepath.Join("deck", "images", "crop") {
		t.Errorf("cropDir() = %q", got)
	}

	// Empty dir falls back to the current directory.
	if got := newWorkspace("").imagesDir(); got != "images" {
		t.Errorf("imagesDir() = %q, want images", got)
	}
}
