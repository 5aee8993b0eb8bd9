package cli

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/proxypress/proxypress/pkg/config"
)

// configCommand creates the config command group for the settings file.
func (c *CLI) configCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and edit the settings file",
		Long: `Inspect and edit the settings file.

Settings control image processing: the resolution cap for processed
images and the optional vibrance LUT. They live in ` + config.DefaultFile + `
next to the project file.`,
	}

	cmd.PersistentFlags().StringVarP(&dir, "dir", "C", ".", "workspace directory")

	cmd.AddCommand(c.configShowCommand(&dir))
	cmd.AddCommand(c.configPathCommand(&dir))
	cmd.AddCommand(c.configEditCommand(&dir))

	return cmd
}

// configShowCommand prints the effective settings.
func (c *CLI) configShowCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws := newWorkspace(*dir)
			cfg, err := config.Load(ws.settingsPath())
			if err != nil {
				return err
			}

			printKeyValue("max_dpi", strconv.Itoa(cfg.MaxDPI))
			printKeyValue("vibrance_bump", strconv.FormatFloat(cfg.VibranceBump, 'g', -1, 64))
			cube := cfg.CubeFile
			if cube == "" {
				cube = StyleDim.Render("(none)")
			}
			printKeyValue("cube_file", cube)
			return nil
		},
	}
}

// configPathCommand prints the settings file location.
func (c *CLI) configPathCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the settings file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(newWorkspace(*dir).settingsPath())
			return nil
		},
	}
}

// configEditCommand opens the settings file in $EDITOR, creating it
// with defaults first if needed.
func (c *CLI) configEditCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:     "edit",
		Aliases: []string{"open"},
		Short:   "Open the settings file in $EDITOR",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws := newWorkspace(*dir)
			path := ws.settingsPath()

			if _, err := os.Stat(path); os.IsNotExist(err) {
				if err := config.Default().Save(path); err != nil {
					return err
				}
				printInfo("created %s with defaults", path)
			}

			editor := os.Getenv("EDITOR")
			if editor == "" {
				return fmt.Errorf("$EDITOR is not set, edit %s directly", path)
			}

			edit := exec.Command(editor, path)
			edit.Stdin = os.Stdin
			edit.Stdout = os.Stdout
			edit.Stderr = os.Stderr
			return edit.Run()
		},
	}
}
