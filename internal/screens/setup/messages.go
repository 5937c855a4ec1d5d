package setup

import (
	"time"

	"github.com/abhisek/studiz/internal/quizgen"
)

// topicsLoadedMsg delivers the content-store topic list and the
// historically weak concepts for the weak-areas hint.
type topicsLoadedMsg struct {
	topics []string
	weak   []string
}

// questionsReadyMsg delivers the generated question set, or the error
// that ended generation. gen tags the session generation the request
// was issued under; stale responses are discarded.
type questionsReadyMsg struct {
	gen       uint64
	questions []quizgen.Question
	err       error
}

// spinnerTickMsg animates the generation banner.
type spinnerTickMsg time.Time
