package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/vocabz/internal/config"
	"github.com/abhisek/vocabz/internal/deck"
)

var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Inspect and maintain decks",
}

var deckListCmd = &cobra.Command{
	Use:   "list",
	Short: "List decks configured in config.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cmd.Flags())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(cfg.Decks) == 0 {
			fmt.Fprintln(out, "No decks configured.")
			return nil
		}

		fmt.Fprintf(out, "%-16s  %-24s  %-7s  %s\n", "ID", "Label", "Enabled", "Location")
		fmt.Fprintln(out, strings.Repeat("─", 80))
		for _, s := range cfg.Decks {
			enabled := "yes"
			if !s.IsEnabled() {
				enabled = "no"
			}
			fmt.Fprintf(out, "%-16s  %-24s  %-7s  %s\n", s.ID, s.Label, enabled, s.Location)
		}
		return nil
	},
}

var deckValidateCmd = &cobra.Command{
	Use:   "validate <file-or-url>",
	Short: "Check a deck file and report invalid cards",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := deck.Load(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %d valid card(s)\n", d.Name, len(d.Cards))
		for _, e := range d.Invalid {
			fmt.Fprintf(out, "  %s\n", e.Error())
		}
		if len(d.Invalid) > 0 {
			return fmt.Errorf("%d invalid card(s)", len(d.Invalid))
		}
		return nil
	},
}

var deckSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Create records for new cards and prune removed ones",
	RunE: func(cmd *cobra.Command, args []string) error {
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
		modes := make([]string, 0, len(deck.Modes()))
		for _, m := range deck.Modes() {
			modes = append(modes, m.ID)
		}
		res, err := e.svc.Sync(ctx, d.ID, d.CardIDs(), modes)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d card(s), %d record(s) created, %d pruned, %d flag(s) pruned\n",
			d.ID, len(d.Cards), res.Created, res.PrunedRecords, res.PrunedFlags)
		return nil
	},
}

var deckSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find cards by pinyin, hanzi or definition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		d, err := e.loadDeck(cmd.Context())
		if err != nil {
			return err
		}
		field := deck.SearchPinyin
		if byDef, _ := cmd.Flags().GetBool("def"); byDef {
			field = deck.SearchDef
		}

		out := cmd.OutOrStdout()
		hits := deck.Search(d.Cards, args[0], field)
		if len(hits) == 0 {
			fmt.Fprintln(out, "No matching cards.")
			return nil
		}
		for _, c := range hits {
			fmt.Fprintf(out, "%-8s  %-10s  %-16s  %s\n", c.ID, c.Hanzi, c.Pinyin, c.Def)
		}
		return nil
	},
}

func init() {
	deckSearchCmd.Flags().Bool("def", false, "match the English definition instead of pinyin")

	deckCmd.AddCommand(deckListCmd)
	deckCmd.AddCommand(deckValidateCmd)
	deckCmd.AddCommand(deckSyncCmd)
	deckCmd.AddCommand(deckSearchCmd)
}
