package quizgen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators is the ordered list of validators to run on every
	// generated question. They execute in order; the first failure
	// stops the pipeline.
	Validators []Validator

	// MaxTokens is the token budget for the LLM response. Set generation
	// returns whole sets, so the budget scales with the largest count.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxAvoidPrompts is the maximum number of recently served prompts to
	// include in the prompt for deduplication.
	MaxAvoidPrompts int

	// MaxDocExcerpt is the maximum number of characters of a document
	// excerpt included per document.
	MaxDocExcerpt int
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&ChoicesValidator{},
		},
		MaxTokens:       8192,
		Temperature:     0.7,
		MaxAvoidPrompts: 12,
		MaxDocExcerpt:   2000,
	}
}
