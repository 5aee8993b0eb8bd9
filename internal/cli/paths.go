package cli

import (
	"path/filepath"

	"github.com/proxypress/proxypress/pkg/config"
	"github.com/proxypress/proxypress/pkg/pipeline"
	"github.com/proxypress/proxypress/pkg/project"
)

// workspace resolves the standard file locations inside a work dir.
type workspace struct {
	dir string
}

func newWorkspace(dir string) workspace {
	if dir == "" {
		dir = "."
	}
	return workspace{dir: dir}
}

func (w workspace) projectPath() string {
	return filepath.Join(w.dir, project.DefaultFile)
}

func (w workspace) settingsPath() string {
	return filepath.Join(w.dir, config.DefaultFile)
}

func (w workspace) imagesDir() string {
	return filepath.Join(w.dir, pipeline.ImagesDir)
}

func (w workspace) cropDir() string {
	return filepath.Join(w.dir, pipeline.ImagesDir, pipeline.CropDir)
}
