package quizgen

import "testing"

func TestChoices_AnswerMustMatchAnOption(t *testing.T) {
	v := &ChoicesValidator{}
	q := validQuestion()
	q.Answer = "Something else entirely"
	err := v.Validate(q, SetRequest{})
	if err == nil {
		t.Fatal("expected error when answer matches no choice")
	}
	if err.Validator != "choices" {
		t.Errorf("expected validator %q, got %q", "choices", err.Validator)
	}
}

func TestChoices_MatchIsCaseInsensitive(t *testing.T) {
	v := &ChoicesValidator{}
	q := validQuestion()
	q.Answer = "rate of CHANGE"
	if err := v.Validate(q, SetRequest{}); err != nil {
		t.Errorf("expected case-insensitive match, got %v", err)
	}
}

func TestChoices_TooFewOptions(t *testing.T) {
	v := &ChoicesValidator{}
	q := validQuestion()
	q.Choices = []string{"Rate of change"}
	if err := v.Validate(q, SetRequest{}); err == nil {
		t.Fatal("expected error for a single option")
	}
}

func TestChoices_ApproachSelection(t *testing.T) {
	v := &ChoicesValidator{}
	q := &Question{
		Prompt:      "How would you find the area under the curve?",
		Type:        TypeApproachSelection,
		Approaches:  []string{"Differentiate and evaluate", "Integrate over the interval", "Take the limit of the slope"},
		Answer:      "Integrate over the interval",
		Explanation: "Area under a curve is the definite integral over the interval.",
		Difficulty:  "medium",
		Concept:     "Integrals",
	}
	if err := v.Validate(q, SetRequest{}); err != nil {
		t.Errorf("expected valid approach-selection, got %v", err)
	}

	q.Answer = "Guess"
	if err := v.Validate(q, SetRequest{}); err == nil {
		t.Fatal("expected error when answer matches no approach")
	}
}

func TestChoices_TrueFalseAnswerWords(t *testing.T) {
	v := &ChoicesValidator{}
	q := &Question{
		Prompt:      "The derivative of a constant is zero.",
		Type:        TypeTrueFalse,
		Answer:      "true",
		Explanation: "Constants do not change, so their rate of change is zero.",
		Difficulty:  "easy",
		Concept:     "Derivatives",
	}
	if err := v.Validate(q, SetRequest{}); err != nil {
		t.Errorf("expected valid true-false, got %v", err)
	}

	q.Answer = "affirmative"
	if err := v.Validate(q, SetRequest{}); err == nil {
		t.Fatal("expected error for non-boolean answer")
	}
}

func TestChoices_OpenTypesRejectOptions(t *testing.T) {
	v := &ChoicesValidator{}
	q := &Question{
		Prompt:      "Define a limit.",
		Type:        TypeShortAnswer,
		Choices:     []string{"stray option"},
		Answer:      "The value a function approaches",
		Explanation: "A limit is the value a function approaches as the input approaches a point.",
		Difficulty:  "easy",
		Concept:     "Limits",
	}
	if err := v.Validate(q, SetRequest{}); err == nil {
		t.Fatal("expected error for options on an open question type")
	}
}
