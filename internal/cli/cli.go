// Package cli implements the proxypress command-line interface.
//
// This package provides commands for bootstrapping a print workspace,
// preparing card scans, editing the card list, and rendering the final
// print document. The CLI is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - init: Bootstrap a workspace with the standard layout
//   - crop: Prepare raw scans into print-ready card images
//   - render: Produce the print PDF or per-page PNG proofs
//   - cards: Inspect and edit card repeat counts
//   - config: Inspect and edit the settings file
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/proxypress/proxypress/pkg/buildinfo"
)

// appName is the application name used for display and file names.
const appName = "proxypress"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Proxypress lays out card images for print",
		Long:         `Proxypress prepares scanned card images and tiles them onto fixed-size pages with registration marks, producing a print-ready PDF or PNG proofs.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.initCommand())
	root.AddCommand(c.cropCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.cardsCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}
