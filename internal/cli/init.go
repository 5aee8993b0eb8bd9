package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/proxypress/proxypress/pkg/config"
	"github.com/proxypress/proxypress/pkg/project"
)

// initCommand creates the init command for bootstrapping a workspace.
func (c *CLI) initCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init [dir]",
		Short: "Bootstrap a print workspace",
		Long: `Bootstrap a print workspace in the given directory (default: current).

Creates the standard layout:

  images/       raw card scans go here
  images/crop/  processed images, managed by proxypress
  print.json    the card list and page settings
  proxypress.toml  image-processing settings

Existing files are left untouched, so init is safe to re-run.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return c.runInit(dir)
		},
	}
}

func (c *CLI) runInit(dir string) error {
	ws := newWorkspace(dir)

	if err := os.MkdirAll(ws.cropDir(), 0755); err != nil {
		return err
	}

	if _, err := os.Stat(ws.projectPath()); os.IsNotExist(err) {
		if err := project.New().Save(ws.projectPath()); err != nil {
			return err
		}
		printSuccess("created %s", ws.projectPath())
	} else {
		printInfo("%s already exists", ws.projectPath())
	}

	if _, err := os.Stat(ws.settingsPath()); os.IsNotExist(err) {
		if err := config.Default().Save(ws.settingsPath()); err != nil {
			return err
		}
		printSuccess("created %s", ws.settingsPath())
	} else {
		printInfo("%s already exists", ws.settingsPath())
	}

	printSuccess("workspace ready in %s", dir)
	printDetail("drop card scans into %s", ws.imagesDir())
	printNextStep("then render the print sheet", appName+" render")
	return nil
}
