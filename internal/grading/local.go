package grading

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/studiz/internal/quizgen"
	"github.com/abhisek/studiz/internal/selftest"
)

// LocalEvaluator grades without a provider: the fallback when no API key
// is configured, and the offline mode. Closed types use the deterministic
// checker; open types get a strict normalized comparison against the
// canonical answer, so nuanced free-form judging needs the LLMEvaluator.
type LocalEvaluator struct{}

// NewLocal creates a LocalEvaluator.
func NewLocal() *LocalEvaluator {
	return &LocalEvaluator{}
}

// GradeAnswer grades one submission with canned tier-shaped feedback.
func (e *LocalEvaluator) GradeAnswer(_ context.Context, req AnswerRequest) (*AnswerFeedback, error) {
	correct := localCheck(req.Answer, &req.Question)
	esc := selftest.Escalate(req.Attempt, correct)
	return &AnswerFeedback{
		Correct:      correct,
		Tier:         esc.Tier,
		RevealAnswer: esc.RevealAnswer,
		Feedback:     tierFeedback(esc, &req.Question),
		Explanation:  req.Question.Explanation,
	}, nil
}

// GradeTest scores a completed set deterministically.
func (e *LocalEvaluator) GradeTest(_ context.Context, req TestRequest) (*selftest.Result, error) {
	grades := make(map[string]selftest.QuestionGrade, len(req.Questions))
	for i := range req.Questions {
		q := &req.Questions[i]
		rec := req.record(q.ID)

		if strings.TrimSpace(rec.Answer) == "" {
			grades[q.ID] = selftest.QuestionGrade{Feedback: "Not answered."}
			continue
		}
		g := selftest.QuestionGrade{Correct: localCheck(rec.Answer, q)}
		if !g.Correct {
			g.Feedback = q.Explanation
		}
		grades[q.ID] = g
	}

	res := selftest.BuildResult(req.Questions, req.Records, grades, req.TotalTimeMs)
	return &res, nil
}

// localCheck extends the closed-type checker to open types with an exact
// case-insensitive comparison.
func localCheck(answer string, q *quizgen.Question) bool {
	if q.Type.Closed() {
		return quizgen.CheckAnswer(answer, q)
	}
	return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(q.Answer))
}

// tierFeedback writes the canned message for an escalation tier. Shared
// with the LLMEvaluator as the fallback when the model returns no text.
func tierFeedback(esc selftest.Escalation, q *quizgen.Question) string {
	switch esc.Tier {
	case selftest.TierConfirm:
		return "Correct!"
	case selftest.TierEncourage:
		return "Not quite. Take another look and try again."
	case selftest.TierHint:
		return "Still not there. Hint: " + hintFrom(q.Explanation, q.Answer)
	default:
		return fmt.Sprintf("The correct answer is %s. %s", q.Answer, q.Explanation)
	}
}

// hintFrom derives a hint from the explanation: its first sentence, with
// whole-word occurrences of the answer masked so the hint does not give
// the answer away.
func hintFrom(explanation, answer string) string {
	masked := maskFold(explanation, answer)
	if i := strings.IndexAny(masked, ".!?"); i >= 0 {
		masked = masked[:i+1]
	}
	return strings.TrimSpace(masked)
}

// maskFold replaces whole-word occurrences of sub in s with "...",
// ignoring case. ASCII fast path: when case folding would change byte
// offsets, s is returned unmasked.
func maskFold(s, sub string) string {
	sub = strings.TrimSpace(sub)
	lower := strings.ToLower(s)
	lowerSub := strings.ToLower(sub)
	if lowerSub == "" || len(lower) != len(s) || len(lowerSub) != len(sub) {
		return s
	}

	var b strings.Builder
	start := 0
	for {
		i := strings.Index(lower[start:], lowerSub)
		if i < 0 {
			b.WriteString(s[start:])
			return b.String()
		}
		i += start
		end := i + len(lowerSub)
		if wordBoundary(lower, i, end) {
			b.WriteString(s[start:i])
			b.WriteString("...")
		} else {
			b.WriteString(s[start:end])
		}
		start = end
	}
}

// wordBoundary reports whether s[start:end] is not embedded in a longer
// word. s must already be lowercased.
func wordBoundary(s string, start, end int) bool {
	if start > 0 && wordByte(s[start-1]) {
		return false
	}
	if end < len(s) && wordByte(s[end]) {
		return false
	}
	return true
}

func wordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_'
}
