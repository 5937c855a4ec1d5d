package selftest

import (
	"time"

	"github.com/abhisek/studiz/internal/quizgen"
)

// Practice is the single-question adaptive flow: one question at a time,
// graded per submission, with feedback escalating across attempts on the
// same question. The attempt tracker persists across questions of the same
// set and resets only when a fresh set is loaded.
type Practice struct {
	// Question is the question currently being attempted, nil between
	// questions.
	Question *quizgen.Question

	// Tracker counts submissions per question id across the current set.
	Tracker *AttemptTracker

	// Pending is true while a grading request is in flight; it gates
	// submissions to at most one at a time.
	Pending bool

	// Answered is true once feedback for the current question's latest
	// submission has been applied.
	Answered bool

	// Correct and Revealed mirror the latest applied feedback; together
	// they gate advancement to the next question.
	Correct  bool
	Revealed bool

	clock      Clock
	watch      Stopwatch
	transcript *TranscriptBuffer
	generation uint64
}

// NewPractice returns an empty practice flow.
func NewPractice(clock Clock) *Practice {
	return &Practice{
		Tracker:    NewAttemptTracker(),
		clock:      clock,
		transcript: NewTranscriptBuffer(),
	}
}

// Generation returns the current flow generation for tagging requests.
func (p *Practice) Generation() uint64 {
	return p.generation
}

// SetQuestion makes q the current question. Feedback state and transcript
// reset; the attempt tracker does not, so a repeat of an earlier question
// id keeps escalating.
func (p *Practice) SetQuestion(q *quizgen.Question) {
	p.Question = q
	p.Answered = false
	p.Correct = false
	p.Revealed = false
	p.Pending = false
	p.transcript.Reset()
	p.watch = StartStopwatch(p.clock.Now())
}

// AppendTranscript adds a partial speech-to-text chunk for the current
// question.
func (p *Practice) AppendTranscript(chunk string) {
	if p.Question == nil {
		return
	}
	p.transcript.Append(chunk)
}

// Transcript returns the accumulated vocal explanation.
func (p *Practice) Transcript() string {
	return p.transcript.Text()
}

// ElapsedMs returns the time accrued on the current question so far.
func (p *Practice) ElapsedMs() int64 {
	if p.Question == nil {
		return 0
	}
	return p.watch.Elapsed(p.clock.Now()).Milliseconds()
}

// Submit counts the submission and claims the pending slot, returning the
// attempt number for the grading request and the generation tag its
// response must carry. The count happens before the request is issued so
// a transient grading failure cannot under-count attempts.
func (p *Practice) Submit() (attempt int, gen uint64, ok bool) {
	if p.Question == nil || p.Pending {
		return 0, 0, false
	}
	p.Pending = true
	return p.Tracker.Increment(p.Question.ID), p.generation, true
}

// ApplyFeedback installs the grading outcome for the latest submission.
// Stale generations report false and are discarded.
func (p *Practice) ApplyFeedback(gen uint64, correct, revealed bool) bool {
	if gen != p.generation || p.Question == nil {
		return false
	}
	p.Pending = false
	p.Answered = true
	p.Correct = correct
	p.Revealed = revealed
	return true
}

// FailSubmit releases the pending slot after a failed grading request.
// The attempt stays counted; the learner may resubmit.
func (p *Practice) FailSubmit(gen uint64) bool {
	if gen != p.generation {
		return false
	}
	p.Pending = false
	return true
}

// CanAdvance reports whether the flow may move to the next question: the
// latest submission was graded and was either correct or escalated to the
// answer reveal.
func (p *Practice) CanAdvance() bool {
	return p.Answered && (p.Correct || p.Revealed)
}

// Reset prepares the flow for a fresh question set: tracker cleared,
// current question dropped, generation advanced so in-flight responses
// become stale.
func (p *Practice) Reset() {
	p.generation++
	p.Question = nil
	p.Tracker.Reset()
	p.Pending = false
	p.Answered = false
	p.Correct = false
	p.Revealed = false
	p.transcript.Reset()
	p.watch = StartStopwatch(time.Time{})
}
