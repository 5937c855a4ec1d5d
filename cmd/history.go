package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studiz/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List completed self-tests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		sums, err := st.EventRepo().QueryTestSummaries(context.Background(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query summaries: %w", err)
		}
		if len(sums) == 0 {
			fmt.Println("No tests recorded yet.")
			return nil
		}

		fmt.Printf("%-12s  %-13s  %7s  %6s  %-17s  %8s  %s\n",
			"Date", "Mode", "Result", "Score", "Readiness", "Duration", "Topics")
		fmt.Println(strings.Repeat("─", 96))

		for _, s := range sums {
			readiness := s.Readiness
			if s.TimedOut {
				readiness += " ⏱"
			}
			fmt.Printf("%-12s  %-13s  %3d/%-3d  %5.0f%%  %-17s  %5d:%02d  %s\n",
				s.Timestamp.Local().Format("Jan 02, 2006"),
				s.Mode,
				s.Correct, s.Total,
				s.Score*100,
				readiness,
				s.DurationSecs/60, s.DurationSecs%60,
				strings.Join(s.Topics, ", "),
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of tests to show")
}
