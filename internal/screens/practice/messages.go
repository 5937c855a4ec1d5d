package practice

import (
	"github.com/abhisek/studiz/internal/grading"
	"github.com/abhisek/studiz/internal/quizgen"
)

// batchReadyMsg carries a generated practice batch, or the error that
// ended the attempts.
type batchReadyMsg struct {
	questions []quizgen.Question
	err       error
}

// feedbackMsg carries the graded outcome of one submission. gen tags
// the flow generation the request was issued under; stale feedback is
// discarded by the machine.
type feedbackMsg struct {
	gen      uint64
	feedback *grading.AnswerFeedback
	err      error
}
