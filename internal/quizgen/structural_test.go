package quizgen

import (
	"strings"
	"testing"
)

func validQuestion() *Question {
	return &Question{
		ID:          "q-1",
		Prompt:      "What does the derivative of a function measure?",
		Type:        TypeMultipleChoice,
		Choices:     []string{"Accumulated area", "Rate of change", "Average value", "Maximum value"},
		Answer:      "Rate of change",
		Explanation: "The derivative measures the instantaneous rate of change of the function at a point.",
		Difficulty:  "easy",
		Concept:     "Derivatives",
	}
}

func TestStructural_ValidQuestion(t *testing.T) {
	v := &StructuralValidator{}
	if err := v.Validate(validQuestion(), SetRequest{}); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestStructural_EmptyPrompt(t *testing.T) {
	v := &StructuralValidator{}
	q := validQuestion()
	q.Prompt = ""
	err := v.Validate(q, SetRequest{})
	if err == nil {
		t.Fatal("expected error for empty prompt")
	}
	if err.Validator != "structural" {
		t.Errorf("expected validator %q, got %q", "structural", err.Validator)
	}
	if !err.Retryable {
		t.Error("expected retryable")
	}
}

func TestStructural_PromptTooLong(t *testing.T) {
	v := &StructuralValidator{}
	q := validQuestion()
	q.Prompt = strings.Repeat("a", 501)
	if err := v.Validate(q, SetRequest{}); err == nil {
		t.Fatal("expected error for long prompt")
	}
}

func TestStructural_UnknownType(t *testing.T) {
	v := &StructuralValidator{}
	q := validQuestion()
	q.Type = "essay"
	if err := v.Validate(q, SetRequest{}); err == nil {
		t.Fatal("expected error for unknown type")
	}
}

func TestStructural_EmptyAnswer(t *testing.T) {
	v := &StructuralValidator{}
	q := validQuestion()
	q.Answer = ""
	if err := v.Validate(q, SetRequest{}); err == nil {
		t.Fatal("expected error for empty answer")
	}
}

func TestStructural_EmptyExplanation(t *testing.T) {
	v := &StructuralValidator{}
	q := validQuestion()
	q.Explanation = ""
	if err := v.Validate(q, SetRequest{}); err == nil {
		t.Fatal("expected error for empty explanation")
	}
}

func TestStructural_EmptyConcept(t *testing.T) {
	v := &StructuralValidator{}
	q := validQuestion()
	q.Concept = ""
	if err := v.Validate(q, SetRequest{}); err == nil {
		t.Fatal("expected error for empty concept")
	}
}

func TestStructural_BadDifficulty(t *testing.T) {
	v := &StructuralValidator{}
	q := validQuestion()
	q.Difficulty = "brutal"
	if err := v.Validate(q, SetRequest{}); err == nil {
		t.Fatal("expected error for unknown difficulty")
	}
}
