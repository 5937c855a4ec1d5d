package selftest

// MasteryThreshold separates weak concepts from strong ones: a concept
// whose mean mastery falls below it is weak.
const MasteryThreshold = 0.7

// Readiness bands, keyed off the overall score.
const (
	ReadinessExcellent        = "Excellent"
	ReadinessGood             = "Good"
	ReadinessNeedsImprovement = "Needs Improvement"
)

// ReadinessBand maps an overall score to its qualitative band.
func ReadinessBand(score float64) string {
	switch {
	case score >= 0.8:
		return ReadinessExcellent
	case score >= 0.6:
		return ReadinessGood
	default:
		return ReadinessNeedsImprovement
	}
}

// QuestionScore is the graded outcome for one question.
type QuestionScore struct {
	// QuestionID identifies the question.
	QuestionID string

	// Concept is the concept the question tested.
	Concept string

	// Correct is the externally scored correctness.
	Correct bool

	// Confidence is the learner's self-rating, 0 when not rated.
	Confidence int

	// TimeMs is the time attributed to the question.
	TimeMs int64

	// Feedback is per-question feedback from the evaluation, may be empty.
	Feedback string
}

// ConceptScore is a concept's aggregate mastery with a study suggestion.
type ConceptScore struct {
	// Concept names the concept.
	Concept string

	// Score is the mean mastery across the questions testing it, 0-1.
	Score float64

	// Suggestion is a short next-step hint for the concept.
	Suggestion string
}

// Result is the immutable outcome of a completed test. Produced once at
// the results phase; a new session produces a new Result.
type Result struct {
	// Score is correct answers over total questions, 0-1.
	Score float64

	// Correct and Total are the raw counts behind Score.
	Correct int
	Total   int

	// AvgConfidence is the mean self-rating across all questions, with
	// unrated questions counted as 0.
	AvgConfidence float64

	// TotalTimeMs is the whole-test wall time.
	TotalTimeMs int64

	// Questions holds per-question outcomes in session order.
	Questions []QuestionScore

	// WeakConcepts lists concepts below MasteryThreshold, weakest first.
	WeakConcepts []ConceptScore

	// StrongConcepts lists concepts at or above the threshold, sorted by
	// name.
	StrongConcepts []string

	// Recommendations are free-text next-step suggestions.
	Recommendations []string

	// Readiness is the qualitative band for Score.
	Readiness string
}
