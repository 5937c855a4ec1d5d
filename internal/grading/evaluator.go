package grading

import (
	"context"

	"github.com/abhisek/studiz/internal/quizgen"
	"github.com/abhisek/studiz/internal/selftest"
)

// Evaluator grades learner submissions. GradeAnswer serves the
// single-question practice flow; GradeTest scores a whole submitted set.
type Evaluator interface {
	// GradeAnswer grades one submission and shapes feedback for the
	// attempt's escalation tier. The returned Tier and RevealAnswer always
	// match selftest.Escalate for the request's attempt and the scored
	// correctness; callers may rely on that.
	GradeAnswer(ctx context.Context, req AnswerRequest) (*AnswerFeedback, error)

	// GradeTest scores a completed question set and returns the built
	// result. Closed question types are graded deterministically; open
	// types are judged by the evaluator.
	GradeTest(ctx context.Context, req TestRequest) (*selftest.Result, error)
}

// AnswerRequest is one submission to grade.
type AnswerRequest struct {
	// Question is the question being answered.
	Question quizgen.Question

	// Answer is the learner's submitted answer text.
	Answer string

	// Transcript is the transcribed vocal explanation, empty when none was
	// given.
	Transcript string

	// Attempt is the submission count for this question including this one,
	// from the attempt tracker.
	Attempt int
}

// AnswerFeedback is the graded outcome of a single submission.
type AnswerFeedback struct {
	// Correct is the scored correctness.
	Correct bool

	// Tier is the escalation tier the feedback is written for.
	Tier selftest.Tier

	// RevealAnswer is true when the correct answer should be shown.
	RevealAnswer bool

	// Feedback is the tier-shaped message to present.
	Feedback string

	// Explanation is the question's canonical teaching explanation.
	Explanation string

	// MasteryDelta is a partial-credit adjustment in [-1, 1], applied on
	// top of the 0/1 correctness base when aggregating mastery.
	MasteryDelta float64
}

// TestRequest is a completed question set to score.
type TestRequest struct {
	// Questions is the ordered question set.
	Questions []quizgen.Question

	// Records maps question id to the learner's final attempt record.
	// Unanswered questions may be missing or hold an empty answer; both
	// grade as incorrect.
	Records map[string]*selftest.AttemptRecord

	// Config is the configuration the test ran under.
	Config selftest.Config

	// TotalTimeMs is the whole-test wall time.
	TotalTimeMs int64
}

// record returns the attempt record for a question id, never nil.
func (r TestRequest) record(questionID string) *selftest.AttemptRecord {
	if rec := r.Records[questionID]; rec != nil {
		return rec
	}
	return &selftest.AttemptRecord{}
}
