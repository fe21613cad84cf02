package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/vocabz/internal/ui/report"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show progress for the selected deck and mode",
	RunE: func(cmd *cobra.Command, args []string) error {
		width, _ := cmd.Flags().GetInt("width")

		e, err := newEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		sess, err := e.openSession(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), report.FromSession(sess).Render(width))
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("width", 80, "Output width in columns")
}
