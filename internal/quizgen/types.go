package quizgen

// Question represents a generated study question ready for display.
type Question struct {
	// ID uniquely identifies the question within its set.
	// Assigned by the generator (UUID) when the model omits one.
	ID string

	// Prompt is the question text displayed to the learner.
	Prompt string

	// Type indicates how the learner answers this question.
	Type QuestionType

	// Choices is populated for TypeMultipleChoice: the options shown to the
	// learner, one of which matches Answer.
	Choices []string

	// Approaches is populated for TypeApproachSelection: candidate
	// problem-solving approaches, one of which matches Answer.
	Approaches []string

	// Answer is the canonical correct answer as a string.
	// For choice types: the text of the correct option.
	// For true-false: "true" or "false".
	Answer string

	// Explanation is a brief teaching explanation, shown after grading and
	// mined for hints by the feedback escalation.
	// Always present.
	Explanation string

	// Difficulty is the difficulty this question was generated at
	// ("easy", "medium", "hard").
	Difficulty string

	// Concept is the concept this question tests, used for mastery grouping.
	Concept string

	// SourceDocID references the content-store document this question was
	// drawn from. Empty when generated from topics alone.
	SourceDocID string

	// RequiresVocal marks questions whose answer must be accompanied by a
	// spoken explanation when the test configuration asks for them.
	RequiresVocal bool
}

// QuestionType describes how the learner provides their answer.
type QuestionType string

const (
	// TypeMultipleChoice means the learner picks one of Choices.
	TypeMultipleChoice QuestionType = "multiple-choice"

	// TypeTrueFalse means the learner answers "true" or "false".
	TypeTrueFalse QuestionType = "true-false"

	// TypeShortAnswer means the learner types a short free-form answer.
	TypeShortAnswer QuestionType = "short-answer"

	// TypeExplanation means the learner writes out their reasoning.
	TypeExplanation QuestionType = "explanation"

	// TypeApproachSelection means the learner picks the best approach from
	// Approaches rather than solving the problem outright.
	TypeApproachSelection QuestionType = "approach-selection"
)

// KnownType reports whether t is one of the supported question types.
func KnownType(t QuestionType) bool {
	switch t {
	case TypeMultipleChoice, TypeTrueFalse, TypeShortAnswer, TypeExplanation, TypeApproachSelection:
		return true
	}
	return false
}

// Closed reports whether the type has a machine-checkable canonical answer.
// Open types (short-answer, explanation) need the evaluation service.
func (t QuestionType) Closed() bool {
	switch t {
	case TypeMultipleChoice, TypeTrueFalse, TypeApproachSelection:
		return true
	}
	return false
}

// SetRequest holds all context needed to generate a question set.
type SetRequest struct {
	// Topics are the learner-selected topics. May be empty for weak-area
	// requests, where WeakConcepts drives selection instead.
	Topics []string

	// Difficulty is the requested difficulty mix: "easy", "mixed" or "hard".
	Difficulty string

	// Count is the exact number of questions to produce.
	Count int

	// Mode is the test mode the set is for ("comprehensive", "weak-areas",
	// "custom"). Shapes prompt emphasis only.
	Mode string

	// FocusAreas are free-form emphasis hints from the configuration.
	FocusAreas []string

	// WeakConcepts lists concepts with low historical accuracy. Drives
	// selection for weak-area tests; advisory otherwise.
	WeakConcepts []string

	// VocalExplanations asks the generator to mark a share of questions
	// with RequiresVocal.
	VocalExplanations bool

	// AvoidPrompts lists prompts of recently served questions so a new set
	// does not repeat them.
	AvoidPrompts []string

	// Documents is optional content-store material to draw questions from.
	Documents []DocumentContext
}

// DocumentContext is a content-store excerpt supplied to generation.
type DocumentContext struct {
	// DocID is the content-store identifier, echoed into SourceDocID.
	DocID string

	// Title is the document title.
	Title string

	// Excerpt is the portion of the document text included in the prompt.
	Excerpt string
}
