package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studiz/internal/grading"
	"github.com/abhisek/studiz/internal/llm"
	"github.com/abhisek/studiz/internal/quizgen"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview LLM-generated questions for a topic (no database)",
	Long: `Generate and interactively answer questions for a topic.

This is a stateless developer tool — no database, no mastery tracking, no
events. Useful for evaluating question quality before a real test.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringSlice("topic", nil, "Topic to generate questions for (repeatable, required)")
	previewCmd.Flags().String("difficulty", "mixed", "Difficulty: easy, mixed or hard")
	previewCmd.Flags().Int("count", 5, "Number of questions to generate")
	_ = previewCmd.MarkFlagRequired("topic")
}

func runPreview(cmd *cobra.Command, args []string) error {
	topics, _ := cmd.Flags().GetStringSlice("topic")
	difficulty, _ := cmd.Flags().GetString("difficulty")
	count, _ := cmd.Flags().GetInt("count")

	switch difficulty {
	case "easy", "mixed", "hard":
	default:
		return fmt.Errorf("invalid difficulty %q: must be easy, mixed or hard", difficulty)
	}

	// Create LLM provider (no EventRepo — logging skipped).
	ctx := context.Background()
	provider, err := llm.NewProviderFromEnv(ctx, nil)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	gen := quizgen.New(provider, quizgen.DefaultConfig())
	evaluator := grading.NewLocal()
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Printf("Topics: %s (%s)\n", strings.Join(topics, ", "), difficulty)
	fmt.Printf("Generating %d questions...\n\n", count)

	questions, err := gen.GenerateSet(ctx, quizgen.SetRequest{
		Topics:     topics,
		Difficulty: difficulty,
		Count:      count,
		Mode:       "custom",
	})
	if err != nil {
		return fmt.Errorf("generate set: %w", err)
	}

	var correct int
	for i := range questions {
		q := &questions[i]

		fmt.Printf("── Question %d/%d · %s ──\n", i+1, len(questions), q.Concept)
		fmt.Println(q.Prompt)
		for j, c := range previewChoices(q) {
			fmt.Printf("  %d) %s\n", j+1, c)
		}

		fmt.Print("\nYour answer: ")
		if !scanner.Scan() {
			fmt.Println("\n(input closed)")
			break
		}
		answer := strings.TrimSpace(scanner.Text())
		if answer == "" {
			fmt.Print("(skipped)\n\n")
			continue
		}

		fb, err := evaluator.GradeAnswer(ctx, grading.AnswerRequest{
			Question: *q,
			Answer:   answer,
			Attempt:  1,
		})
		if err != nil {
			fmt.Printf("grading failed: %v\n\n", err)
			continue
		}
		if fb.Correct {
			correct++
			fmt.Println("\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Printf("\033[31m✗ Wrong.\033[0m Answer: %s\n", q.Answer)
		}
		if q.Explanation != "" {
			fmt.Printf("Explanation: %s\n", q.Explanation)
		}
		fmt.Println()
	}

	fmt.Printf("── Summary: %d/%d correct ──\n", correct, len(questions))
	return nil
}

// previewChoices returns the selectable options for closed question types.
func previewChoices(q *quizgen.Question) []string {
	switch q.Type {
	case quizgen.TypeMultipleChoice:
		return q.Choices
	case quizgen.TypeApproachSelection:
		return q.Approaches
	case quizgen.TypeTrueFalse:
		return []string{"True", "False"}
	}
	return nil
}
