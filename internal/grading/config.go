package grading

// Config controls the behavior of the LLMEvaluator.
type Config struct {
	// MaxTokens is the token budget for the LLM response. Batch grading
	// returns one grade per question, so the budget scales with set size.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0). Grading wants
	// consistency, so the default is low.
	Temperature float64

	// MaxTranscript is the maximum number of characters of a vocal
	// transcript included per question.
	MaxTranscript int
}

// DefaultConfig returns a Config with recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:     8192,
		Temperature:   0.2,
		MaxTranscript: 2000,
	}
}
