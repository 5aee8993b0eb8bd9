// Package config loads the application settings file.
//
// Settings live in a TOML file next to the project, separate from
// print.json: the project file describes one deck, the settings file
// tunes how every deck is processed.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/proxypress/proxypress/pkg/errors"
)

// DefaultFile is the settings file name inside a workspace.
const DefaultFile = "proxypress.toml"

// DefaultMaxDPI caps the resolution processed card images are stored at.
const DefaultMaxDPI = 300

// Config holds the tunable image-processing settings.
type Config struct {
	// MaxDPI downscales cropped images that exceed this print density.
	// Zero disables downscaling.
	MaxDPI int `toml:"max_dpi"`

	// VibranceBump boosts saturation during cropping when a LUT file is
	// configured. Expressed in LUT application strength, 0 to disable.
	VibranceBump float64 `toml:"vibrance_bump"`

	// CubeFile points at a .cube 3D LUT applied during cropping.
	CubeFile string `toml:"cube_file"`
}

// Default returns the settings used when no file exists.
func Default() *Config {
	return &Config{MaxDPI: DefaultMaxDPI}
}

// Load reads a settings file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read settings %s", path)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse settings %s", path)
	}
	if cfg.MaxDPI < 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "max_dpi must not be negative, got %d", cfg.MaxDPI)
	}
	return cfg, nil
}

// Save writes the settings file.
func (c *Config) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write settings %s", path)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode settings")
	}
	return nil
}
