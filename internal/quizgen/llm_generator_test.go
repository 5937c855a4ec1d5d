package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/abhisek/studiz/internal/llm"
)

func testSetRequest(count int) SetRequest {
	return SetRequest{
		Topics:     []string{"Calculus"},
		Difficulty: "mixed",
		Count:      count,
		Mode:       "comprehensive",
	}
}

func questionJSON(prompt string, requiresVocal bool) string {
	return fmt.Sprintf(`{
		"prompt": %q,
		"type": "multiple-choice",
		"choices": ["Rate of change", "Accumulated area", "Average value", "Maximum value"],
		"approaches": [],
		"answer": "Rate of change",
		"explanation": "The derivative measures the instantaneous rate of change.",
		"difficulty": "easy",
		"concept": "Derivatives",
		"source_doc_id": "",
		"requires_vocal": %t
	}`, prompt, requiresVocal)
}

func setJSON(questions ...string) json.RawMessage {
	return json.RawMessage(`{"questions":[` + strings.Join(questions, ",") + `]}`)
}

func TestGenerateSet_ReturnsValidatedSet(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: setJSON(questionJSON("Q one?", false), questionJSON("Q two?", false)),
	})
	gen := New(mock, DefaultConfig())

	qs, err := gen.GenerateSet(context.Background(), testSetRequest(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("got %d questions, want 2", len(qs))
	}
	if qs[0].Prompt != "Q one?" || qs[1].Prompt != "Q two?" {
		t.Errorf("prompts = %q, %q; want set order preserved", qs[0].Prompt, qs[1].Prompt)
	}
	if qs[0].Type != TypeMultipleChoice {
		t.Errorf("type = %q, want multiple-choice", qs[0].Type)
	}
	if qs[0].ID == "" || qs[1].ID == "" || qs[0].ID == qs[1].ID {
		t.Errorf("ids = %q, %q; want unique non-empty ids", qs[0].ID, qs[1].ID)
	}
	if qs[0].Concept != "Derivatives" {
		t.Errorf("concept = %q, want Derivatives", qs[0].Concept)
	}
}

func TestGenerateSet_UnderGenerationIsRetryable(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: setJSON(questionJSON("Only one?", false)),
	})
	gen := New(mock, DefaultConfig())

	_, err := gen.GenerateSet(context.Background(), testSetRequest(5))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if !verr.Retryable {
		t.Error("under-generation must be retryable")
	}
}

func TestGenerateSet_OverGenerationTruncated(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: setJSON(
			questionJSON("One?", false),
			questionJSON("Two?", false),
			questionJSON("Three?", false),
		),
	})
	gen := New(mock, DefaultConfig())

	qs, err := gen.GenerateSet(context.Background(), testSetRequest(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 2 {
		t.Errorf("got %d questions, want the set cut to 2", len(qs))
	}
}

func TestGenerateSet_InvalidQuestionRejected(t *testing.T) {
	bad := strings.Replace(questionJSON("Bad?", false), `"concept": "Derivatives"`, `"concept": ""`, 1)
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: setJSON(bad),
	})
	gen := New(mock, DefaultConfig())

	_, err := gen.GenerateSet(context.Background(), testSetRequest(1))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if verr.Validator != "structural" {
		t.Errorf("validator = %q, want structural", verr.Validator)
	}
}

func TestGenerateSet_ProviderErrorWrapped(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: errors.New("boom"),
	})
	gen := New(mock, DefaultConfig())

	_, err := gen.GenerateSet(context.Background(), testSetRequest(1))
	if err == nil || !strings.Contains(err.Error(), "LLM generation failed") {
		t.Errorf("err = %v, want wrapped generation failure", err)
	}
}

func TestGenerateSet_NothingToGenerateFrom(t *testing.T) {
	mock := llm.NewMockProvider()
	gen := New(mock, DefaultConfig())

	_, err := gen.GenerateSet(context.Background(), SetRequest{Count: 5, Difficulty: "mixed"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if verr.Retryable {
		t.Error("an empty request cannot be fixed by retrying")
	}
	if mock.CallCount() != 0 {
		t.Errorf("provider called %d times, want 0", mock.CallCount())
	}
}

func TestGenerateSet_VocalOnlyWhenRequested(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: setJSON(questionJSON("Speak about it?", true)),
	})
	gen := New(mock, DefaultConfig())

	req := testSetRequest(1) // VocalExplanations false
	qs, err := gen.GenerateSet(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if qs[0].RequiresVocal {
		t.Error("RequiresVocal must be cleared when the request does not ask for vocal explanations")
	}
}

func TestGenerateSet_SendsSchemaAndPrompt(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: setJSON(questionJSON("Q?", false)),
	})
	gen := New(mock, DefaultConfig())

	req := testSetRequest(1)
	req.WeakConcepts = []string{"Chain Rule"}
	req.AvoidPrompts = []string{"What is a derivative?"}
	if _, err := gen.GenerateSet(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(mock.Calls) != 1 {
		t.Fatalf("provider calls = %d, want 1", len(mock.Calls))
	}
	call := mock.Calls[0]
	if call.Schema != QuestionSetSchema {
		t.Error("expected the question-set schema on the request")
	}
	user := call.Messages[0].Content
	for _, want := range []string{"Calculus", "Chain Rule", "What is a derivative?", "Questions requested: 1"} {
		if !strings.Contains(user, want) {
			t.Errorf("user message missing %q", want)
		}
	}
}
