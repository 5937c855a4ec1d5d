package grading

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/abhisek/studiz/internal/llm"
	"github.com/abhisek/studiz/internal/quizgen"
	"github.com/abhisek/studiz/internal/selftest"
)

func answerJSON(correct bool, feedback string, delta float64) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(`{"correct":%t,"feedback":%q,"mastery_delta":%g}`, correct, feedback, delta))
}

func gradeJSON(id string, correct bool, feedback string) string {
	return fmt.Sprintf(`{"question_id":%q,"correct":%t,"feedback":%q,"mastery_delta":0}`, id, correct, feedback)
}

func gradesJSON(grades ...string) json.RawMessage {
	return json.RawMessage(`{"grades":[` + strings.Join(grades, ",") + `]}`)
}

func TestGradeAnswer_OpenTypeUsesModelVerdict(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: answerJSON(true, "Exactly right: outer times inner.", 0),
	})
	eval := New(mock, DefaultConfig())

	fb, err := eval.GradeAnswer(context.Background(), AnswerRequest{
		Question: openQuestion("q1"),
		Answer:   "differentiate the outside, multiply by the inside derivative",
		Attempt:  1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !fb.Correct {
		t.Error("the model's verdict must stand for open types")
	}
	if fb.Tier != selftest.TierConfirm {
		t.Errorf("tier = %q, want confirm", fb.Tier)
	}
	if fb.Feedback != "Exactly right: outer times inner." {
		t.Errorf("feedback = %q, want the model's text", fb.Feedback)
	}
}

func TestGradeAnswer_ClosedVerdictOverridesModel(t *testing.T) {
	// The model contradicts the deterministic check; the check wins.
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: answerJSON(true, "Great work!", 0),
	})
	eval := New(mock, DefaultConfig())

	fb, err := eval.GradeAnswer(context.Background(), AnswerRequest{
		Question: mcQuestion("q1"),
		Answer:   "Accumulated area",
		Attempt:  2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fb.Correct {
		t.Error("a wrong closed-type answer must stay wrong whatever the model says")
	}
	if fb.Tier != selftest.TierHint {
		t.Errorf("tier = %q, want hint on the second miss", fb.Tier)
	}
	if fb.RevealAnswer {
		t.Error("the hint tier must not reveal the answer")
	}
}

func TestGradeAnswer_RevealOnThirdMiss(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: answerJSON(false, "The answer is Rate of change; the derivative is a slope.", 0),
	})
	eval := New(mock, DefaultConfig())

	fb, err := eval.GradeAnswer(context.Background(), AnswerRequest{
		Question: mcQuestion("q1"),
		Answer:   "Average value",
		Attempt:  3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fb.Tier != selftest.TierReveal || !fb.RevealAnswer {
		t.Errorf("tier/reveal = %q/%t, want reveal/true from the third miss", fb.Tier, fb.RevealAnswer)
	}
}

func TestGradeAnswer_SendsAssertionAndLevel(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: answerJSON(false, "Keep at it.", 0),
	})
	eval := New(mock, DefaultConfig())

	_, err := eval.GradeAnswer(context.Background(), AnswerRequest{
		Question:   mcQuestion("q1"),
		Answer:     "Maximum value",
		Transcript: "I think it has to do with peaks",
		Attempt:    1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(mock.Calls) != 1 {
		t.Fatalf("provider calls = %d, want 1", len(mock.Calls))
	}
	call := mock.Calls[0]
	if call.Schema != AnswerEvalSchema {
		t.Error("expected the answer-eval schema on the request")
	}
	user := call.Messages[0].Content
	for _, want := range []string{
		"Asserted verdict: false",
		"Feedback level: encourage",
		"Attempt number: 1",
		"Vocal transcript: I think it has to do with peaks",
	} {
		if !strings.Contains(user, want) {
			t.Errorf("user message missing %q", want)
		}
	}
}

func TestGradeAnswer_EmptyModelFeedbackFallsBack(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: answerJSON(false, "", 0),
	})
	eval := New(mock, DefaultConfig())

	fb, err := eval.GradeAnswer(context.Background(), AnswerRequest{
		Question: mcQuestion("q1"),
		Answer:   "Average value",
		Attempt:  1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fb.Feedback == "" {
		t.Error("empty model feedback must fall back to the canned tier text")
	}
}

func TestGradeAnswer_DeltaClamped(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: answerJSON(true, "Mostly there.", 3.5),
	})
	eval := New(mock, DefaultConfig())

	fb, err := eval.GradeAnswer(context.Background(), AnswerRequest{
		Question: openQuestion("q1"),
		Answer:   "outer times inner",
		Attempt:  1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fb.MasteryDelta != 1 {
		t.Errorf("delta = %v, want clamped to 1", fb.MasteryDelta)
	}
}

func TestGradeAnswer_ProviderErrorWrapped(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("boom")})
	eval := New(mock, DefaultConfig())

	_, err := eval.GradeAnswer(context.Background(), AnswerRequest{
		Question: mcQuestion("q1"),
		Answer:   "Rate of change",
		Attempt:  1,
	})
	if err == nil || !strings.Contains(err.Error(), "LLM grading failed") {
		t.Errorf("err = %v, want wrapped grading failure", err)
	}
}

func TestGradeTest_AllClosedSkipsModel(t *testing.T) {
	mock := llm.NewMockProvider()
	eval := New(mock, DefaultConfig())

	res, err := eval.GradeTest(context.Background(), TestRequest{
		Questions: []quizgen.Question{mcQuestion("q1"), mcQuestion("q2")},
		Records: map[string]*selftest.AttemptRecord{
			"q1": {Answer: "Rate of change"},
			"q2": {Answer: "Accumulated area"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.CallCount() != 0 {
		t.Errorf("provider called %d times, want 0 for an all-closed set", mock.CallCount())
	}
	if res.Correct != 1 || res.Total != 2 {
		t.Errorf("correct/total = %d/%d, want 1/2", res.Correct, res.Total)
	}
}

func TestGradeTest_TimeoutWithNoAnswersSkipsModel(t *testing.T) {
	mock := llm.NewMockProvider()
	eval := New(mock, DefaultConfig())

	res, err := eval.GradeTest(context.Background(), TestRequest{
		Questions: []quizgen.Question{openQuestion("q1"), mcQuestion("q2")},
		Records: map[string]*selftest.AttemptRecord{
			"q1": {},
			"q2": {},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.CallCount() != 0 {
		t.Errorf("provider called %d times, want 0 when nothing was answered", mock.CallCount())
	}
	if res.Correct != 0 {
		t.Errorf("correct = %d, want 0", res.Correct)
	}
	if res.Readiness != selftest.ReadinessNeedsImprovement {
		t.Errorf("readiness = %q, want %q", res.Readiness, selftest.ReadinessNeedsImprovement)
	}
}

func TestGradeTest_ModelGradesOpenTypes(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: gradesJSON(
			// The model tries to flip the asserted closed verdict; only its
			// feedback text is taken.
			gradeJSON("q1", false, "Solid recall."),
			gradeJSON("q2", true, "Right idea, phrased your own way."),
		),
	})
	eval := New(mock, DefaultConfig())

	res, err := eval.GradeTest(context.Background(), TestRequest{
		Questions: []quizgen.Question{mcQuestion("q1"), openQuestion("q2")},
		Records: map[string]*selftest.AttemptRecord{
			"q1": {Answer: "Rate of change"},
			"q2": {Answer: "take the outer derivative and multiply by the inner"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("provider calls = %d, want 1", mock.CallCount())
	}
	if res.Correct != 2 {
		t.Errorf("correct = %d, want both: local verdict for closed, model verdict for open", res.Correct)
	}
	for _, qs := range res.Questions {
		switch qs.QuestionID {
		case "q1":
			if !qs.Correct {
				t.Error("closed verdict must not be flipped by the model")
			}
			if qs.Feedback != "Solid recall." {
				t.Errorf("q1 feedback = %q, want the model's review text", qs.Feedback)
			}
		case "q2":
			if !qs.Correct {
				t.Error("open verdict must come from the model")
			}
		}
	}

	call := mock.Calls[0]
	if call.Schema != TestEvalSchema {
		t.Error("expected the test-eval schema on the request")
	}
	user := call.Messages[0].Content
	if !strings.Contains(user, "Asserted verdict: true") {
		t.Error("closed questions must carry their asserted verdict")
	}
}

func TestGradeTest_MissingOpenGradeErrors(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: gradesJSON(gradeJSON("q1", true, "ok")),
	})
	eval := New(mock, DefaultConfig())

	_, err := eval.GradeTest(context.Background(), TestRequest{
		Questions: []quizgen.Question{mcQuestion("q1"), openQuestion("q2")},
		Records: map[string]*selftest.AttemptRecord{
			"q1": {Answer: "Rate of change"},
			"q2": {Answer: "some attempt"},
		},
	})
	if err == nil || !strings.Contains(err.Error(), "missing a grade") {
		t.Errorf("err = %v, want a missing-grade error", err)
	}
}

func TestGradeTest_ProviderErrorWrapped(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("boom")})
	eval := New(mock, DefaultConfig())

	_, err := eval.GradeTest(context.Background(), TestRequest{
		Questions: []quizgen.Question{openQuestion("q1")},
		Records: map[string]*selftest.AttemptRecord{
			"q1": {Answer: "an answer"},
		},
	})
	if err == nil || !strings.Contains(err.Error(), "LLM grading failed") {
		t.Errorf("err = %v, want wrapped grading failure", err)
	}
}
