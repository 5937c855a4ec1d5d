package selftest

// AttemptRecord holds the learner's current submission for one question.
// One record per question id; overwritten on re-answer while the session
// is still in the testing phase.
type AttemptRecord struct {
	// Answer is the submitted answer text. Empty until answered.
	Answer string

	// Transcript is the transcribed vocal explanation, when one was given.
	Transcript string

	// TimeMs is the elapsed time attributed to this question, accumulated
	// across visits. Stamped on navigation and submission, never reset.
	TimeMs int64

	// Confidence is the learner's self-reported confidence, 1-5.
	// 0 means not rated.
	Confidence int
}

// AttemptTracker counts submissions per question id for the adaptive
// feedback flow. Counts only grow; the tracker resets as a whole when a
// fresh question set is loaded.
type AttemptTracker struct {
	counts map[string]int
}

// NewAttemptTracker returns an empty tracker.
func NewAttemptTracker() *AttemptTracker {
	return &AttemptTracker{counts: make(map[string]int)}
}

// Increment records a submission for the question and returns the new
// count. The first submission returns 1. Callers increment before issuing
// the grading request so a transient failure cannot under-count attempts.
func (t *AttemptTracker) Increment(questionID string) int {
	t.counts[questionID]++
	return t.counts[questionID]
}

// Count returns the submissions recorded for the question, 0 if none.
func (t *AttemptTracker) Count(questionID string) int {
	return t.counts[questionID]
}

// Len returns the number of questions with at least one submission.
func (t *AttemptTracker) Len() int {
	return len(t.counts)
}

// Reset discards all counts. Called when a new question set is loaded.
func (t *AttemptTracker) Reset() {
	t.counts = make(map[string]int)
}
