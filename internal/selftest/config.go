package selftest

import (
	"errors"
	"time"
)

// Mode selects how the question set for a test is chosen.
type Mode string

const (
	// ModeComprehensive covers the selected topics evenly.
	ModeComprehensive Mode = "comprehensive"

	// ModeWeakAreas builds the set from historically weak concepts; the
	// only mode that does not require explicit topics.
	ModeWeakAreas Mode = "weak-areas"

	// ModeCustom follows the learner's topics and focus areas verbatim.
	ModeCustom Mode = "custom"
)

// Difficulty is the requested difficulty mix for a test.
type Difficulty string

const (
	DifficultyEasy  Difficulty = "easy"
	DifficultyMixed Difficulty = "mixed"
	DifficultyHard  Difficulty = "hard"
)

// QuestionCounts is the closed set of selectable test lengths.
var QuestionCounts = []int{5, 10, 20}

// ErrNoTopics rejects configurations that need topics but have none.
var ErrNoTopics = errors.New("select at least one topic")

// Config is a proposed test configuration, assembled on the setup screen
// and validated before a session may start.
type Config struct {
	// Topics are the selected study topics. May be empty only when Mode is
	// ModeWeakAreas.
	Topics []string

	// Difficulty is the requested difficulty mix.
	Difficulty Difficulty

	// QuestionCount is the test length; one of QuestionCounts.
	QuestionCount int

	// TimeLimitMinutes caps the whole test. 0 means unlimited.
	TimeLimitMinutes int

	// VocalExplanations requires spoken explanations on questions that ask
	// for one.
	VocalExplanations bool

	// FocusAreas are free-form emphasis hints passed to generation.
	FocusAreas []string

	// Mode selects how the question set is chosen.
	Mode Mode
}

// DefaultConfig returns the canonical starting configuration.
func DefaultConfig() Config {
	return Config{
		Difficulty:    DifficultyMixed,
		QuestionCount: 10,
		Mode:          ModeComprehensive,
	}
}

// Validate reports whether the configuration may start a session.
// The only rejection: every mode except weak-areas needs at least one
// topic. Counts, difficulties and modes are drawn from closed sets and
// normalized at the edges, so no other combination can be malformed.
func (c Config) Validate() error {
	if c.Mode != ModeWeakAreas && len(c.Topics) == 0 {
		return ErrNoTopics
	}
	return nil
}

// TimeLimit returns the configured limit as a duration, 0 if unlimited.
func (c Config) TimeLimit() time.Duration {
	if c.TimeLimitMinutes <= 0 {
		return 0
	}
	return time.Duration(c.TimeLimitMinutes) * time.Minute
}

// ValidQuestionCount reports whether n is a selectable test length.
func ValidQuestionCount(n int) bool {
	for _, c := range QuestionCounts {
		if n == c {
			return true
		}
	}
	return false
}
