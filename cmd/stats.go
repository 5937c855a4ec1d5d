package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studiz/internal/selftest"
	"github.com/abhisek/studiz/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-concept mastery",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx := context.Background()
		records, err := st.EventRepo().ConceptAccuracy(ctx)
		if err != nil {
			return fmt.Errorf("query accuracy: %w", err)
		}
		if len(records) == 0 {
			fmt.Println("No attempts recorded yet. Take a self-test to start tracking.")
			return nil
		}

		fmt.Printf("%-32s  %8s  %8s  %9s\n", "Concept", "Attempts", "Correct", "Accuracy")
		fmt.Println(strings.Repeat("─", 64))

		weak := 0
		for _, r := range records {
			acc := r.Accuracy()
			marker := ""
			if acc < selftest.MasteryThreshold {
				weak++
				marker = "  ← weak"
			}
			fmt.Printf("%-32s  %8d  %8d  %8.0f%%%s\n",
				clipName(r.Concept, 32), r.Total, r.Correct, acc*100, marker)
		}

		fmt.Println(strings.Repeat("─", 64))
		fmt.Printf("%d concepts tracked, %d weak (below %.0f%%)\n",
			len(records), weak, selftest.MasteryThreshold*100)

		sums, err := st.EventRepo().QueryTestSummaries(ctx, store.QueryOpts{Limit: 1})
		if err == nil && len(sums) > 0 {
			fmt.Printf("Last test: %s — %s\n",
				sums[0].Timestamp.Local().Format("Jan 02, 2006"), sums[0].Readiness)
		}
		return nil
	},
}

func clipName(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
