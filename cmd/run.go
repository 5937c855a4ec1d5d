package cmd

import (
	"fmt"
	"os"

	"github.com/abhisek/studiz/internal/app"
	"github.com/abhisek/studiz/internal/grading"
	"github.com/abhisek/studiz/internal/llm"
	"github.com/abhisek/studiz/internal/quizgen"
	"github.com/abhisek/studiz/internal/speech"
	"github.com/abhisek/studiz/internal/store"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command, startInPractice bool) error {
	ctx := cmd.Context()
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	eventRepo := st.EventRepo()
	opts := app.Options{
		Events:          eventRepo,
		Snapshots:       st.SnapshotRepo(),
		Content:         st.ContentRepo(),
		Evaluator:       grading.NewLocal(),
		StartInPractice: startInPractice,
	}

	provider, err := llm.NewProviderFromEnv(ctx, eventRepo)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Question generation will be unavailable.")
	} else {
		opts.Generator = quizgen.New(provider, quizgen.DefaultConfig())
		opts.Evaluator = grading.New(provider, grading.DefaultConfig())
	}

	// Scripted speech stands in for a microphone backend; without a
	// script the vocal-explanation option stays off.
	if script := os.Getenv("STUDIZ_SPEECH_SCRIPT"); script != "" {
		opts.Transcriber = speech.NewScripted(0, speech.ScriptText(script))
	}

	return app.Run(opts)
}
