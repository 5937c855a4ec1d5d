package selftest

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/studiz/internal/quizgen"
)

// Phase represents the current phase of a test session.
type Phase int

const (
	PhaseSetup   Phase = iota // Configuring the next test
	PhaseTesting              // Question loop with live countdown
	PhaseResults              // Graded outcome on display
)

// NextAction tells the driver what a Next press produced.
type NextAction int

const (
	NextBlocked  NextAction = iota // Current answer incomplete; nothing changed
	NextAdvanced                   // Moved to the following question
	NextSubmit                     // Last question answered; submission is due
)

// TickStatus tells the driver what a countdown tick produced.
type TickStatus int

const (
	TickIdle    TickStatus = iota // Not testing, or countdown finished; stop ticking
	TickRunning                   // Countdown updated; keep ticking
	TickExpired                   // Limit just hit zero; forced submission is due
)

// ErrGenerationPending rejects a second generation request while one is in
// flight.
var ErrGenerationPending = errors.New("question generation already in progress")

// ErrSessionActive rejects generation requests outside the setup phase.
var ErrSessionActive = errors.New("a test is already in progress")

// Session is the test session state machine: setup, testing, results.
// It owns the question pointer, the attempt records, and both timers.
// All mutation happens through method calls on the driving event loop;
// the machine starts no goroutines of its own.
//
// Async responses are tagged with the session generation (and, for batch
// submissions, a submission id) at request time. Apply methods discard
// responses whose tags no longer match, so a reset session can never be
// mutated by a stale network reply.
type Session struct {
	// Phase is the current lifecycle phase.
	Phase Phase

	// Config is the configuration the session was started with. Set when
	// generation is requested; meaningless while zero-valued.
	Config Config

	// Questions is the ordered question set, fixed once generated.
	Questions []quizgen.Question

	// Index is the current question position, 0 <= Index < len(Questions).
	Index int

	// Records maps question id to the learner's attempt record.
	Records map[string]*AttemptRecord

	// StartedAt is when the testing phase began.
	StartedAt time.Time

	// Result holds the graded outcome once the session reaches results.
	Result *Result

	// TimedOut marks sessions whose submission was forced by the countdown.
	TimedOut bool

	// GenerationPending gates set generation to at most one in flight.
	GenerationPending bool

	// SubmissionPending gates batch submission to at most one in flight.
	// The forced timeout submission is the one exception: it supersedes an
	// in-flight submission with a fresh submission id.
	SubmissionPending bool

	// SessionID identifies the session in journaled events.
	SessionID string

	clock         Clock
	countdown     *Countdown
	watch         Stopwatch
	transcript    *TranscriptBuffer
	generation    uint64
	submissionSeq uint64
	submissionID  uint64
}

// NewSession returns a machine in the setup phase. clock is injected so
// all timing behavior is testable; pass SystemClock{} outside tests.
func NewSession(clock Clock) *Session {
	return &Session{
		Phase:      PhaseSetup,
		Records:    make(map[string]*AttemptRecord),
		clock:      clock,
		countdown:  NewCountdown(0, time.Time{}),
		transcript: NewTranscriptBuffer(),
	}
}

// Generation returns the current session generation for tagging requests.
func (s *Session) Generation() uint64 {
	return s.generation
}

// StartGeneration validates cfg and claims the generation pending slot.
// It returns the generation tag the eventual response must carry.
// The validator gates entry here: an invalid configuration never reaches
// the generation service.
func (s *Session) StartGeneration(cfg Config) (uint64, error) {
	if s.Phase != PhaseSetup {
		return 0, ErrSessionActive
	}
	if s.GenerationPending {
		return 0, ErrGenerationPending
	}
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	s.Config = cfg
	s.GenerationPending = true
	return s.generation, nil
}

// FailGeneration releases the pending slot after a failed generation.
// It reports false for stale generations, which callers ignore.
// The phase does not change; the configuration stays editable.
func (s *Session) FailGeneration(gen uint64) bool {
	if gen != s.generation || s.Phase != PhaseSetup {
		return false
	}
	s.GenerationPending = false
	return true
}

// Begin installs a freshly generated question set and enters the testing
// phase: start time recorded, countdown armed when a limit is set, index
// at 0. It reports false when the response is stale or the set is empty,
// leaving the machine in setup.
func (s *Session) Begin(gen uint64, questions []quizgen.Question) bool {
	if gen != s.generation || s.Phase != PhaseSetup {
		return false
	}
	s.GenerationPending = false
	if len(questions) == 0 {
		return false
	}

	now := s.clock.Now()
	s.Phase = PhaseTesting
	s.Questions = questions
	s.Records = make(map[string]*AttemptRecord)
	s.StartedAt = now
	s.Result = nil
	s.TimedOut = false
	s.SubmissionPending = false
	s.SessionID = uuid.NewString()
	s.countdown = NewCountdown(s.Config.TimeLimit(), now)
	s.focusQuestion(0, now)
	return true
}

// Current returns the question at the index, nil outside testing.
func (s *Session) Current() *quizgen.Question {
	if s.Phase != PhaseTesting || s.Index < 0 || s.Index >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.Index]
}

// Record returns the attempt record for a question id, nil if none exists.
func (s *Session) Record(questionID string) *AttemptRecord {
	return s.Records[questionID]
}

// Answer sets the current question's submitted answer, overwriting any
// previous answer for it.
func (s *Session) Answer(text string) {
	q := s.Current()
	if q == nil {
		return
	}
	s.ensureRecord(q.ID).Answer = text
}

// SetConfidence records the learner's 1-5 self-rating for the current
// question. Out-of-range values are ignored.
func (s *Session) SetConfidence(n int) {
	q := s.Current()
	if q == nil || n < 1 || n > 5 {
		return
	}
	s.ensureRecord(q.ID).Confidence = n
}

// AppendTranscript adds a partial speech-to-text chunk to the current
// question's vocal explanation. The buffer is append-only while the
// question stays current and carries into the attempt record.
func (s *Session) AppendTranscript(chunk string) {
	q := s.Current()
	if q == nil {
		return
	}
	s.transcript.Append(chunk)
	s.ensureRecord(q.ID).Transcript = s.transcript.Text()
}

// Transcript returns the vocal explanation accumulated for the current
// question.
func (s *Session) Transcript() string {
	return s.transcript.Text()
}

// CanAdvance is the single advancement predicate: the current question
// has a non-empty answer and, when the configuration requires vocal
// explanations and the question asks for one, a non-empty transcript.
// Every Next gate in the product goes through here.
func (s *Session) CanAdvance() bool {
	q := s.Current()
	if q == nil {
		return false
	}
	rec := s.Records[q.ID]
	if rec == nil || strings.TrimSpace(rec.Answer) == "" {
		return false
	}
	if s.Config.VocalExplanations && q.RequiresVocal && strings.TrimSpace(rec.Transcript) == "" {
		return false
	}
	return true
}

// Next moves to the following question when the current answer is
// complete. On the last question the index stays put and NextSubmit asks
// the driver to issue the batch submission instead.
func (s *Session) Next() NextAction {
	if s.Phase != PhaseTesting || !s.CanAdvance() {
		return NextBlocked
	}
	if s.Index == len(s.Questions)-1 {
		return NextSubmit
	}
	now := s.clock.Now()
	s.stampElapsed(now)
	s.focusQuestion(s.Index+1, now)
	return NextAdvanced
}

// Previous moves back one question, keeping the record of the question
// being left. It reports whether the index moved.
func (s *Session) Previous() bool {
	if s.Phase != PhaseTesting || s.Index <= 0 {
		return false
	}
	now := s.clock.Now()
	s.stampElapsed(now)
	s.focusQuestion(s.Index-1, now)
	return true
}

// Tick drives the whole-session countdown. It reports TickExpired exactly
// once per session, on the tick where the limit reaches zero; at that
// moment every unanswered question gets an empty record so the forced
// submission carries the full set.
func (s *Session) Tick() TickStatus {
	if s.Phase != PhaseTesting {
		return TickIdle
	}
	if !s.countdown.Enabled() {
		return TickRunning
	}
	if s.countdown.Expired() {
		return TickIdle
	}
	now := s.clock.Now()
	if !s.countdown.Tick(now) {
		return TickRunning
	}
	s.TimedOut = true
	s.stampElapsed(now)
	for i := range s.Questions {
		s.ensureRecord(s.Questions[i].ID)
	}
	return TickExpired
}

// RemainingSeconds returns the countdown's whole seconds left; 0 when the
// session is unlimited.
func (s *Session) RemainingSeconds() int {
	return s.countdown.Remaining()
}

// TimeLimited reports whether a countdown is in force.
func (s *Session) TimeLimited() bool {
	return s.countdown.Enabled()
}

// TotalElapsedMs returns wall time since the testing phase began.
func (s *Session) TotalElapsedMs() int64 {
	if s.StartedAt.IsZero() {
		return 0
	}
	return s.clock.Now().Sub(s.StartedAt).Milliseconds()
}

// StartSubmission claims the submission pending slot and allocates the
// submission id the response must carry. A regular submission is refused
// while one is in flight; a forced (timeout) submission supersedes it
// instead, so the stale response loses the id race and is discarded.
func (s *Session) StartSubmission(forced bool) (gen, sub uint64, ok bool) {
	if s.Phase != PhaseTesting {
		return 0, 0, false
	}
	if s.SubmissionPending && !forced {
		return 0, 0, false
	}
	s.stampElapsed(s.clock.Now())
	s.SubmissionPending = true
	s.submissionSeq++
	s.submissionID = s.submissionSeq
	return s.generation, s.submissionID, true
}

// ApplyResult installs the graded outcome and enters the results phase.
// Responses from a previous generation, or from a submission that has
// been superseded, report false and leave the machine untouched.
func (s *Session) ApplyResult(gen, sub uint64, res *Result) bool {
	if gen != s.generation || sub != s.submissionID || s.Phase != PhaseTesting {
		return false
	}
	if res == nil {
		return false
	}
	s.SubmissionPending = false
	s.Phase = PhaseResults
	s.Result = res
	s.countdown.Cancel()
	return true
}

// FailSubmission releases the pending slot after a failed submission,
// keeping the testing phase so the answers stay held and the submission
// can be retried. Stale failures report false and are ignored.
func (s *Session) FailSubmission(gen, sub uint64) bool {
	if gen != s.generation || sub != s.submissionID || s.Phase != PhaseTesting {
		return false
	}
	s.SubmissionPending = false
	return true
}

// Reset returns the machine to setup, clearing questions, records, result
// and timers. The session generation advances so every in-flight response
// becomes stale.
func (s *Session) Reset() {
	s.generation++
	s.Phase = PhaseSetup
	s.Questions = nil
	s.Index = 0
	s.Records = make(map[string]*AttemptRecord)
	s.StartedAt = time.Time{}
	s.Result = nil
	s.TimedOut = false
	s.GenerationPending = false
	s.SubmissionPending = false
	s.SessionID = ""
	s.countdown.Cancel()
	s.countdown = NewCountdown(0, time.Time{})
	s.transcript.Reset()
}

// focusQuestion makes index i current: stopwatch re-marked, transcript
// buffer reset and re-seeded from the record so a revisit shows what was
// already transcribed.
func (s *Session) focusQuestion(i int, now time.Time) {
	s.Index = i
	s.watch = StartStopwatch(now)
	s.transcript.Reset()
	if rec, ok := s.Records[s.Questions[i].ID]; ok && rec.Transcript != "" {
		s.transcript.Append(rec.Transcript)
	}
}

// stampElapsed adds the time accrued on the current question to its
// record. Accumulates across visits; navigation never resets it.
func (s *Session) stampElapsed(now time.Time) {
	q := s.Current()
	if q == nil {
		return
	}
	s.ensureRecord(q.ID).TimeMs += s.watch.Lap(now).Milliseconds()
}

func (s *Session) ensureRecord(questionID string) *AttemptRecord {
	rec, ok := s.Records[questionID]
	if !ok {
		rec = &AttemptRecord{}
		s.Records[questionID] = rec
	}
	return rec
}
