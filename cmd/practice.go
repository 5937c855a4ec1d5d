package cmd

import (
	"github.com/spf13/cobra"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Jump straight into a practice run",
	Long: `Launch the TUI directly in practice mode: an endless stream of
questions aimed at your weak concepts, with escalating feedback on
repeated misses.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, true)
	},
}
