package grading

import (
	"context"
	"strings"
	"testing"

	"github.com/abhisek/studiz/internal/quizgen"
	"github.com/abhisek/studiz/internal/selftest"
)

func mcQuestion(id string) quizgen.Question {
	return quizgen.Question{
		ID:          id,
		Prompt:      "What does the derivative measure?",
		Type:        quizgen.TypeMultipleChoice,
		Choices:     []string{"Rate of change", "Accumulated area", "Average value", "Maximum value"},
		Answer:      "Rate of change",
		Explanation: "The derivative measures the instantaneous rate of change. Slope of the tangent line, not area.",
		Difficulty:  "easy",
		Concept:     "Derivatives",
	}
}

func openQuestion(id string) quizgen.Question {
	return quizgen.Question{
		ID:          id,
		Prompt:      "State the chain rule.",
		Type:        quizgen.TypeShortAnswer,
		Answer:      "The outer derivative times the inner derivative",
		Explanation: "For f(g(x)), differentiate the outer function and multiply by the derivative of the inner one.",
		Difficulty:  "medium",
		Concept:     "Chain Rule",
	}
}

func TestLocalGradeAnswer_TiersFollowPolicy(t *testing.T) {
	eval := NewLocal()
	q := mcQuestion("q1")

	tests := []struct {
		name       string
		answer     string
		attempt    int
		wantTier   selftest.Tier
		wantReveal bool
	}{
		{"correct first try", "Rate of change", 1, selftest.TierConfirm, false},
		{"correct by index", "1", 3, selftest.TierConfirm, false},
		{"first miss", "Accumulated area", 1, selftest.TierEncourage, false},
		{"second miss", "Accumulated area", 2, selftest.TierHint, false},
		{"third miss", "Accumulated area", 3, selftest.TierReveal, true},
		{"fifth miss", "Accumulated area", 5, selftest.TierReveal, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb, err := eval.GradeAnswer(context.Background(), AnswerRequest{
				Question: q,
				Answer:   tt.answer,
				Attempt:  tt.attempt,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if fb.Tier != tt.wantTier {
				t.Errorf("tier = %q, want %q", fb.Tier, tt.wantTier)
			}
			if fb.RevealAnswer != tt.wantReveal {
				t.Errorf("reveal = %t, want %t", fb.RevealAnswer, tt.wantReveal)
			}
			if fb.Feedback == "" {
				t.Error("feedback must never be empty")
			}
			if fb.Explanation != q.Explanation {
				t.Error("explanation must carry the question's canonical explanation")
			}
		})
	}
}

func TestLocalGradeAnswer_OpenTypeExactMatch(t *testing.T) {
	eval := NewLocal()
	q := openQuestion("q1")

	fb, err := eval.GradeAnswer(context.Background(), AnswerRequest{
		Question: q,
		Answer:   "  the outer derivative times the inner derivative ",
		Attempt:  1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !fb.Correct {
		t.Error("case and whitespace differences must not fail an exact match")
	}

	fb, err = eval.GradeAnswer(context.Background(), AnswerRequest{
		Question: q,
		Answer:   "multiply the derivatives",
		Attempt:  1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fb.Correct {
		t.Error("a paraphrase must not pass the strict local comparison")
	}
}

func TestLocalGradeTest_ScoresSet(t *testing.T) {
	eval := NewLocal()
	questions := []quizgen.Question{mcQuestion("q1"), mcQuestion("q2"), mcQuestion("q3")}
	questions[1].Concept = "Integrals"
	records := map[string]*selftest.AttemptRecord{
		"q1": {Answer: "Rate of change", Confidence: 5},
		"q2": {Answer: "Accumulated area", Confidence: 2},
		"q3": {Answer: "Rate of change", Confidence: 4},
	}

	res, err := eval.GradeTest(context.Background(), TestRequest{
		Questions:   questions,
		Records:     records,
		Config:      selftest.Config{Mode: selftest.ModeComprehensive},
		TotalTimeMs: 90_000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Correct != 2 || res.Total != 3 {
		t.Errorf("correct/total = %d/%d, want 2/3", res.Correct, res.Total)
	}
	if res.TotalTimeMs != 90_000 {
		t.Errorf("total time = %d, want 90000", res.TotalTimeMs)
	}
	if len(res.WeakConcepts) != 1 || res.WeakConcepts[0].Concept != "Integrals" {
		t.Errorf("weak concepts = %+v, want only Integrals", res.WeakConcepts)
	}
	// The missed question carries the explanation as review feedback.
	for _, qs := range res.Questions {
		if qs.QuestionID == "q2" && qs.Feedback == "" {
			t.Error("missed question must carry review feedback")
		}
	}
}

func TestLocalGradeTest_UnansweredAreIncorrect(t *testing.T) {
	eval := NewLocal()
	questions := []quizgen.Question{mcQuestion("q1"), mcQuestion("q2")}

	res, err := eval.GradeTest(context.Background(), TestRequest{
		Questions: questions,
		Records: map[string]*selftest.AttemptRecord{
			"q1": {Answer: "Rate of change"},
			"q2": {},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Correct != 1 {
		t.Errorf("correct = %d, want 1", res.Correct)
	}
	for _, qs := range res.Questions {
		if qs.QuestionID == "q2" && qs.Correct {
			t.Error("an unanswered question must grade incorrect")
		}
	}
}

func TestHintDoesNotRevealAnswer(t *testing.T) {
	hint := hintFrom(
		"The answer is Rate of change because the derivative tracks how fast a value moves. Area belongs to integrals.",
		"Rate of change",
	)
	if strings.Contains(strings.ToLower(hint), "rate of change") {
		t.Errorf("hint %q leaks the answer", hint)
	}
	if !strings.Contains(hint, "...") {
		t.Errorf("hint %q should mask the answer", hint)
	}
	if strings.Contains(hint, "Area belongs") {
		t.Errorf("hint %q should stop at the first sentence", hint)
	}
}

func TestMaskFoldWholeWordsOnly(t *testing.T) {
	tests := []struct {
		s, sub, want string
	}{
		{"True or false", "true", "... or false"},
		{"You construe it wrong", "true", "You construe it wrong"},
		{"the chain rule, THE CHAIN RULE", "The Chain Rule", "..., ..."},
		{"no match here", "absent", "no match here"},
	}
	for _, tt := range tests {
		if got := maskFold(tt.s, tt.sub); got != tt.want {
			t.Errorf("maskFold(%q, %q) = %q, want %q", tt.s, tt.sub, got, tt.want)
		}
	}
}
