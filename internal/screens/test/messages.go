package test

import (
	"time"

	"github.com/abhisek/studiz/internal/selftest"
	"github.com/abhisek/studiz/internal/speech"
)

// timerTickMsg drives the 1-second session countdown.
type timerTickMsg time.Time

// gradedMsg delivers the batch grading outcome. gen and sub tag the
// submission the request was issued under; superseded submissions are
// discarded by the machine.
type gradedMsg struct {
	gen    uint64
	sub    uint64
	result *selftest.Result
	err    error
}

// retrySubmitMsg re-issues the forced timeout submission after a
// failure.
type retrySubmitMsg struct {
	gen uint64
}

// transcriptChunkMsg carries one speech-to-text chunk. qIdx is the
// question index the capture was started for; chunks that arrive after
// navigation are dropped. ok is false when the stream closed.
type transcriptChunkMsg struct {
	qIdx  int
	chunk speech.Chunk
	ok    bool
}
