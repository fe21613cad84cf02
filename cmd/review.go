package cmd

import "github.com/spf13/cobra"

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Start reviewing due cards right away",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, true)
	},
}
