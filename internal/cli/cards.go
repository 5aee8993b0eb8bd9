package cli

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/proxypress/proxypress/pkg/project"
)

// cardsCommand creates the cards command group for managing repeat counts.
func (c *CLI) cardsCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "cards",
		Short: "Inspect and edit card repeat counts",
		Long: `Inspect and edit card repeat counts.

Each processed image is a card with a repeat count: how many copies of
it end up on the print sheet. Use 'list' to see the current counts,
'set' to change one, or 'edit' for an interactive editor.`,
	}

	cmd.PersistentFlags().StringVarP(&dir, "dir", "C", ".", "workspace directory")

	cmd.AddCommand(c.cardsListCommand(&dir))
	cmd.AddCommand(c.cardsSetCommand(&dir))
	cmd.AddCommand(c.cardsEditCommand(&dir))

	return cmd
}

// cardsListCommand lists every card with its count.
func (c *CLI) cardsListCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cards and their repeat counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws := newWorkspace(*dir)
			proj, err := project.Load(ws.projectPath())
			if err != nil {
				return err
			}
			if len(proj.Cards) == 0 {
				printInfo("no cards yet, run '%s crop' after adding scans", appName)
				return nil
			}

			for _, card := range proj.Cards {
				printKeyValue(card.Name, strconv.Itoa(card.Count))
			}
			printDetail("%d card(s), %d cop(ies) total", len(proj.Cards), proj.TotalCards())
			return nil
		},
	}
}

// cardsSetCommand sets the count of a single card.
func (c *CLI) cardsSetCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "set <name> <count>",
		Short: "Set the repeat count of a card",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("count must be a number, got %q", args[1])
			}

			ws := newWorkspace(*dir)
			proj, err := project.Load(ws.projectPath())
			if err != nil {
				return err
			}
			if err := proj.Set(args[0], count); err != nil {
				return err
			}
			if err := proj.Save(ws.projectPath()); err != nil {
				return err
			}
			printSuccess("%s × %d", args[0], proj.Get(args[0]))
			return nil
		},
	}
}

// cardsEditCommand opens the interactive count editor.
func (c *CLI) cardsEditCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit repeat counts interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws := newWorkspace(*dir)
			proj, err := project.Load(ws.projectPath())
			if err != nil {
				return err
			}
			if len(proj.Cards) == 0 {
				printInfo("no cards yet, run '%s crop' after adding scans", appName)
				return nil
			}

			model := newCardEditModel(proj.Cards)
			final, err := tea.NewProgram(model).Run()
			if err != nil {
				return err
			}

			result := final.(cardEditModel)
			if !result.saved {
				printInfo("no changes saved")
				return nil
			}

			proj.Cards = result.cards
			if err := proj.Save(ws.projectPath()); err != nil {
				return err
			}
			printSuccess("saved %d card(s), %d cop(ies) total", len(proj.Cards), proj.TotalCards())
			return nil
		},
	}
}
