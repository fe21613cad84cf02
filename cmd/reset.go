package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/vocabz/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase review progress for the selected deck",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		e, err := newEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		d, err := e.loadDeck(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !yes {
			fmt.Fprintf(out, "Erase all progress for %s (%d cards)? [y/N] ", d.Name, len(d.Cards))
			scanner := bufio.NewScanner(cmd.InOrStdin())
			if !scanner.Scan() || !strings.EqualFold(strings.TrimSpace(scanner.Text()), "y") {
				fmt.Fprintln(out, "Aborted.")
				return nil
			}
		}

		if err := e.svc.Reset(ctx, d.ID); err != nil {
			return err
		}
		if err := e.store.SettingsRepo().Delete(ctx, store.FilterSettingKey(d.ID)); err != nil {
			return fmt.Errorf("clear saved filter: %w", err)
		}
		fmt.Fprintf(out, "Progress for %s erased.\n", d.Name)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
