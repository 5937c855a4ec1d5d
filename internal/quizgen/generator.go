package quizgen

import "context"

// Generator produces question sets using an LLM provider.
type Generator interface {
	// GenerateSet produces exactly req.Count validated questions for the
	// given request context. Returns the ordered set or an error; partial
	// sets are never returned.
	GenerateSet(ctx context.Context, req SetRequest) ([]Question, error)
}
