package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studiz/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete test history and mastery data",
	RunE: func(cmd *cobra.Command, args []string) error {
		includeContent, _ := cmd.Flags().GetBool("content")
		yes, _ := cmd.Flags().GetBool("yes")

		if !yes {
			what := "all test history and mastery data"
			if includeContent {
				what += ", plus imported documents and courses"
			}
			fmt.Printf("This deletes %s. Continue? [y/N] ", what)
			scanner := bufio.NewScanner(os.Stdin)
			if !scanner.Scan() {
				return nil
			}
			answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
			if answer != "y" && answer != "yes" {
				fmt.Println("Canceled.")
				return nil
			}
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		if err := st.Reset(context.Background(), includeContent); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
		fmt.Println("Done.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("content", false, "Also delete imported documents and courses")
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
