package selftest

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/abhisek/studiz/internal/quizgen"
)

func testConfig() Config {
	return Config{
		Topics:        []string{"Calculus"},
		Difficulty:    DifficultyMixed,
		QuestionCount: 5,
		Mode:          ModeComprehensive,
	}
}

func testQuestions(n int) []quizgen.Question {
	qs := make([]quizgen.Question, n)
	for i := range qs {
		concept := "Derivatives"
		if i%2 == 1 {
			concept = "Integrals"
		}
		qs[i] = quizgen.Question{
			ID:          fmt.Sprintf("q%d", i+1),
			Prompt:      fmt.Sprintf("Question %d?", i+1),
			Type:        quizgen.TypeShortAnswer,
			Answer:      "42",
			Explanation: "Apply the power rule.",
			Difficulty:  "easy",
			Concept:     concept,
		}
	}
	return qs
}

func startedSession(t *testing.T, clock Clock, cfg Config, n int) *Session {
	t.Helper()
	s := NewSession(clock)
	gen, err := s.StartGeneration(cfg)
	if err != nil {
		t.Fatalf("StartGeneration: %v", err)
	}
	if !s.Begin(gen, testQuestions(n)) {
		t.Fatal("Begin rejected a fresh question set")
	}
	return s
}

func TestStartGeneration_RejectsInvalidConfig(t *testing.T) {
	s := NewSession(newFakeClock())
	cfg := Config{Mode: ModeComprehensive} // no topics

	_, err := s.StartGeneration(cfg)
	if !errors.Is(err, ErrNoTopics) {
		t.Errorf("err = %v, want ErrNoTopics", err)
	}
	if s.Phase != PhaseSetup {
		t.Errorf("Phase = %v, want PhaseSetup", s.Phase)
	}
	if s.GenerationPending {
		t.Error("rejected config must not claim the pending slot")
	}
}

func TestStartGeneration_OnePendingAtATime(t *testing.T) {
	s := NewSession(newFakeClock())

	if _, err := s.StartGeneration(testConfig()); err != nil {
		t.Fatalf("first StartGeneration: %v", err)
	}
	if _, err := s.StartGeneration(testConfig()); !errors.Is(err, ErrGenerationPending) {
		t.Errorf("second StartGeneration err = %v, want ErrGenerationPending", err)
	}
}

func TestFailGeneration_StaysInSetup(t *testing.T) {
	s := NewSession(newFakeClock())
	gen, err := s.StartGeneration(testConfig())
	if err != nil {
		t.Fatalf("StartGeneration: %v", err)
	}

	if !s.FailGeneration(gen) {
		t.Error("expected current-generation failure to be applied")
	}
	if s.Phase != PhaseSetup {
		t.Errorf("Phase = %v, want PhaseSetup", s.Phase)
	}
	if s.GenerationPending {
		t.Error("pending slot must be released after failure")
	}
	// The action is retryable immediately.
	if _, err := s.StartGeneration(testConfig()); err != nil {
		t.Errorf("retry StartGeneration: %v", err)
	}
}

func TestBegin_EntersTesting(t *testing.T) {
	clock := newFakeClock()
	s := startedSession(t, clock, testConfig(), 5)

	if s.Phase != PhaseTesting {
		t.Errorf("Phase = %v, want PhaseTesting", s.Phase)
	}
	if s.Index != 0 {
		t.Errorf("Index = %d, want 0", s.Index)
	}
	if s.StartedAt != clock.Now() {
		t.Errorf("StartedAt = %v, want %v", s.StartedAt, clock.Now())
	}
	if s.SessionID == "" {
		t.Error("expected a session id to be assigned")
	}
	if s.TimeLimited() {
		t.Error("no time limit configured, countdown must be disabled")
	}
}

func TestBegin_ArmsCountdown(t *testing.T) {
	cfg := testConfig()
	cfg.TimeLimitMinutes = 2
	s := startedSession(t, newFakeClock(), cfg, 5)

	if !s.TimeLimited() {
		t.Fatal("expected countdown to be armed")
	}
	if got := s.RemainingSeconds(); got != 120 {
		t.Errorf("RemainingSeconds = %d, want 120", got)
	}
}

func TestBegin_RejectsEmptySet(t *testing.T) {
	s := NewSession(newFakeClock())
	gen, err := s.StartGeneration(testConfig())
	if err != nil {
		t.Fatalf("StartGeneration: %v", err)
	}

	if s.Begin(gen, nil) {
		t.Error("expected empty question set to be rejected")
	}
	if s.Phase != PhaseSetup {
		t.Errorf("Phase = %v, want PhaseSetup", s.Phase)
	}
	if s.GenerationPending {
		t.Error("pending slot must be released on rejection")
	}
}

func TestBegin_DiscardsStaleGeneration(t *testing.T) {
	s := NewSession(newFakeClock())
	gen, err := s.StartGeneration(testConfig())
	if err != nil {
		t.Fatalf("StartGeneration: %v", err)
	}

	// The learner resets while generation is in flight.
	s.Reset()

	if s.Begin(gen, testQuestions(5)) {
		t.Error("expected response from a previous generation to be discarded")
	}
	if s.Phase != PhaseSetup {
		t.Errorf("Phase = %v, want PhaseSetup", s.Phase)
	}
}

func TestCanAdvance_RequiresNonEmptyAnswer(t *testing.T) {
	s := startedSession(t, newFakeClock(), testConfig(), 3)

	if s.CanAdvance() {
		t.Error("unanswered question must not advance")
	}
	s.Answer("   ")
	if s.CanAdvance() {
		t.Error("whitespace answer must not advance")
	}
	s.Answer("the chain rule")
	if !s.CanAdvance() {
		t.Error("answered question must advance")
	}
}

func TestCanAdvance_VocalGate(t *testing.T) {
	cfg := testConfig()
	cfg.VocalExplanations = true
	s := NewSession(newFakeClock())
	gen, err := s.StartGeneration(cfg)
	if err != nil {
		t.Fatalf("StartGeneration: %v", err)
	}
	qs := testQuestions(2)
	qs[0].RequiresVocal = true
	if !s.Begin(gen, qs) {
		t.Fatal("Begin failed")
	}

	s.Answer("42")
	if s.CanAdvance() {
		t.Error("vocal question without transcript must not advance")
	}
	s.AppendTranscript("because the slope")
	if !s.CanAdvance() {
		t.Error("vocal question with transcript must advance")
	}
}

func TestCanAdvance_VocalNotConfigured(t *testing.T) {
	// The question asks for a vocal explanation but the configuration does
	// not require them, so the answer alone suffices.
	s := NewSession(newFakeClock())
	gen, err := s.StartGeneration(testConfig())
	if err != nil {
		t.Fatalf("StartGeneration: %v", err)
	}
	qs := testQuestions(1)
	qs[0].RequiresVocal = true
	if !s.Begin(gen, qs) {
		t.Fatal("Begin failed")
	}

	s.Answer("42")
	if !s.CanAdvance() {
		t.Error("expected answer alone to suffice when vocal mode is off")
	}
}

func TestNext_AdvancesAndStampsElapsed(t *testing.T) {
	clock := newFakeClock()
	s := startedSession(t, clock, testConfig(), 3)

	s.Answer("first")
	clock.Advance(3 * time.Second)
	if got := s.Next(); got != NextAdvanced {
		t.Fatalf("Next = %v, want NextAdvanced", got)
	}
	if s.Index != 1 {
		t.Errorf("Index = %d, want 1", s.Index)
	}
	if got := s.Record("q1").TimeMs; got != 3000 {
		t.Errorf("q1 TimeMs = %d, want 3000", got)
	}
}

func TestNext_BlockedWithoutAnswer(t *testing.T) {
	s := startedSession(t, newFakeClock(), testConfig(), 3)

	if got := s.Next(); got != NextBlocked {
		t.Errorf("Next = %v, want NextBlocked", got)
	}
	if s.Index != 0 {
		t.Errorf("Index = %d, want 0", s.Index)
	}
}

func TestNext_LastQuestionRequestsSubmission(t *testing.T) {
	s := startedSession(t, newFakeClock(), testConfig(), 2)

	s.Answer("a")
	if s.Next() != NextAdvanced {
		t.Fatal("expected advance to question 2")
	}
	s.Answer("b")
	if got := s.Next(); got != NextSubmit {
		t.Errorf("Next on last question = %v, want NextSubmit", got)
	}
	if s.Index != 1 {
		t.Errorf("Index = %d, want 1 (submission must not move the index)", s.Index)
	}
}

func TestPreviousThenNext_RestoresStateUnchanged(t *testing.T) {
	clock := newFakeClock()
	s := startedSession(t, clock, testConfig(), 3)

	s.Answer("first answer")
	s.SetConfidence(4)
	if s.Next() != NextAdvanced {
		t.Fatal("expected advance")
	}
	s.Answer("second answer")

	before := *s.Record("q2")

	if !s.Previous() {
		t.Fatal("expected Previous to move")
	}
	if s.Index != 0 {
		t.Fatalf("Index after Previous = %d, want 0", s.Index)
	}
	if s.Next() != NextAdvanced {
		t.Fatal("expected Next to move back")
	}
	if s.Index != 1 {
		t.Fatalf("Index after Next = %d, want 1", s.Index)
	}

	after := *s.Record("q2")
	if before != after {
		t.Errorf("record changed by Previous/Next round trip: %+v -> %+v", before, after)
	}
}

func TestPrevious_AtFirstQuestion(t *testing.T) {
	s := startedSession(t, newFakeClock(), testConfig(), 3)

	if s.Previous() {
		t.Error("Previous at index 0 must not move")
	}
}

func TestPrevious_KeepsRecordOfQuestionLeft(t *testing.T) {
	s := startedSession(t, newFakeClock(), testConfig(), 3)

	s.Answer("one")
	if s.Next() != NextAdvanced {
		t.Fatal("expected advance")
	}
	s.Answer("two")
	s.SetConfidence(5)

	if !s.Previous() {
		t.Fatal("expected Previous to move")
	}
	rec := s.Record("q2")
	if rec == nil || rec.Answer != "two" || rec.Confidence != 5 {
		t.Errorf("record for question left = %+v, want answer %q kept", rec, "two")
	}
}

func TestElapsed_AccumulatesAcrossRevisits(t *testing.T) {
	clock := newFakeClock()
	s := startedSession(t, clock, testConfig(), 3)

	s.Answer("one")
	clock.Advance(2 * time.Second)
	if s.Next() != NextAdvanced {
		t.Fatal("expected advance")
	}

	// Revisit the first question for three more seconds.
	if !s.Previous() {
		t.Fatal("expected Previous to move")
	}
	clock.Advance(3 * time.Second)
	if s.Next() != NextAdvanced {
		t.Fatal("expected advance")
	}

	if got := s.Record("q1").TimeMs; got != 5000 {
		t.Errorf("q1 TimeMs = %d, want 5000 (2s + 3s, never reset)", got)
	}
}

func TestSetConfidence_IgnoresOutOfRange(t *testing.T) {
	s := startedSession(t, newFakeClock(), testConfig(), 1)
	s.Answer("x")

	s.SetConfidence(0)
	s.SetConfidence(6)
	if got := s.Record("q1").Confidence; got != 0 {
		t.Errorf("Confidence = %d, want 0 (out-of-range ignored)", got)
	}
	s.SetConfidence(3)
	if got := s.Record("q1").Confidence; got != 3 {
		t.Errorf("Confidence = %d, want 3", got)
	}
}

func TestTranscript_SeededOnRevisit(t *testing.T) {
	cfg := testConfig()
	cfg.VocalExplanations = true
	s := NewSession(newFakeClock())
	gen, err := s.StartGeneration(cfg)
	if err != nil {
		t.Fatalf("StartGeneration: %v", err)
	}
	qs := testQuestions(2)
	qs[0].RequiresVocal = true
	if !s.Begin(gen, qs) {
		t.Fatal("Begin failed")
	}

	s.Answer("42")
	s.AppendTranscript("first thoughts")
	if s.Next() != NextAdvanced {
		t.Fatal("expected advance")
	}
	if got := s.Transcript(); got != "" {
		t.Errorf("transcript on new question = %q, want empty", got)
	}

	if !s.Previous() {
		t.Fatal("expected Previous to move")
	}
	if got := s.Transcript(); got != "first thoughts" {
		t.Errorf("transcript on revisit = %q, want %q", got, "first thoughts")
	}
	s.AppendTranscript("and more")
	if got := s.Record("q1").Transcript; got != "first thoughts and more" {
		t.Errorf("record transcript = %q, want appended text", got)
	}
}

func TestTick_OneMinuteLimitForcesSubmission(t *testing.T) {
	clock := newFakeClock()
	cfg := testConfig()
	cfg.TimeLimitMinutes = 1
	s := startedSession(t, clock, cfg, 5)

	// 59 ticks: running, never expired.
	for i := 1; i <= 59; i++ {
		clock.Advance(time.Second)
		if got := s.Tick(); got != TickRunning {
			t.Fatalf("tick %d: Tick = %v, want TickRunning", i, got)
		}
		if want := 60 - i; s.RemainingSeconds() != want {
			t.Fatalf("tick %d: RemainingSeconds = %d, want %d", i, s.RemainingSeconds(), want)
		}
	}

	clock.Advance(time.Second)
	if got := s.Tick(); got != TickExpired {
		t.Fatalf("tick 60: Tick = %v, want TickExpired", got)
	}
	if !s.TimedOut {
		t.Error("expected TimedOut to be set")
	}
	// Every question now has a record, answered or not.
	for _, q := range s.Questions {
		if s.Record(q.ID) == nil {
			t.Errorf("question %s has no record after timeout", q.ID)
		}
	}

	// Expiry fires exactly once.
	clock.Advance(time.Second)
	if got := s.Tick(); got != TickIdle {
		t.Errorf("tick after expiry = %v, want TickIdle", got)
	}
}

func TestTick_UnlimitedKeepsRunning(t *testing.T) {
	clock := newFakeClock()
	s := startedSession(t, clock, testConfig(), 3)

	clock.Advance(time.Hour)
	if got := s.Tick(); got != TickRunning {
		t.Errorf("Tick = %v, want TickRunning for unlimited sessions", got)
	}
}

func TestTick_OutsideTestingIsIdle(t *testing.T) {
	s := NewSession(newFakeClock())
	if got := s.Tick(); got != TickIdle {
		t.Errorf("Tick in setup = %v, want TickIdle", got)
	}
}

func TestStartSubmission_OneInFlight(t *testing.T) {
	s := startedSession(t, newFakeClock(), testConfig(), 2)

	_, _, ok := s.StartSubmission(false)
	if !ok {
		t.Fatal("first submission refused")
	}
	if _, _, ok := s.StartSubmission(false); ok {
		t.Error("second regular submission must be refused while one is pending")
	}
}

func TestStartSubmission_ForcedSupersedes(t *testing.T) {
	s := startedSession(t, newFakeClock(), testConfig(), 2)

	gen, sub1, ok := s.StartSubmission(false)
	if !ok {
		t.Fatal("first submission refused")
	}
	gen2, sub2, ok := s.StartSubmission(true)
	if !ok {
		t.Fatal("forced submission refused")
	}
	if gen2 != gen {
		t.Errorf("forced submission generation = %d, want %d", gen2, gen)
	}
	if sub2 == sub1 {
		t.Error("forced submission must get a fresh submission id")
	}

	// The superseded response arrives late and is discarded.
	if s.ApplyResult(gen, sub1, &Result{Total: 2}) {
		t.Error("superseded submission response must be discarded")
	}
	if s.Phase != PhaseTesting {
		t.Errorf("Phase = %v, want PhaseTesting", s.Phase)
	}
	// The forced one lands.
	if !s.ApplyResult(gen, sub2, &Result{Total: 2}) {
		t.Error("forced submission response must be applied")
	}
	if s.Phase != PhaseResults {
		t.Errorf("Phase = %v, want PhaseResults", s.Phase)
	}
}

func TestApplyResult_MovesToResults(t *testing.T) {
	s := startedSession(t, newFakeClock(), testConfig(), 5)
	for i := 0; i < 5; i++ {
		s.Answer(fmt.Sprintf("answer %d", i+1))
		action := s.Next()
		if i < 4 && action != NextAdvanced {
			t.Fatalf("question %d: Next = %v, want NextAdvanced", i+1, action)
		}
		if i == 4 && action != NextSubmit {
			t.Fatalf("last question: Next = %v, want NextSubmit", action)
		}
	}

	gen, sub, ok := s.StartSubmission(false)
	if !ok {
		t.Fatal("submission refused")
	}
	res := &Result{Total: 5, Correct: 5, Score: 1.0}
	if !s.ApplyResult(gen, sub, res) {
		t.Fatal("result not applied")
	}
	if s.Phase != PhaseResults {
		t.Errorf("Phase = %v, want PhaseResults", s.Phase)
	}
	if s.Result == nil || s.Result.Total != 5 {
		t.Errorf("Result = %+v, want Total 5", s.Result)
	}
	if s.SubmissionPending {
		t.Error("pending slot must be released")
	}
}

func TestApplyResult_StaleAfterReset(t *testing.T) {
	s := startedSession(t, newFakeClock(), testConfig(), 2)
	gen, sub, ok := s.StartSubmission(false)
	if !ok {
		t.Fatal("submission refused")
	}

	s.Reset()

	if s.ApplyResult(gen, sub, &Result{Total: 2}) {
		t.Error("response for a previous session generation must be discarded")
	}
	if s.Phase != PhaseSetup {
		t.Errorf("Phase = %v, want PhaseSetup", s.Phase)
	}
	if s.Result != nil {
		t.Error("stale response must not install a result")
	}
}

func TestFailSubmission_KeepsTestingAndRetries(t *testing.T) {
	s := startedSession(t, newFakeClock(), testConfig(), 2)
	gen, sub, ok := s.StartSubmission(false)
	if !ok {
		t.Fatal("submission refused")
	}

	if !s.FailSubmission(gen, sub) {
		t.Error("expected failure for the current submission to be applied")
	}
	if s.Phase != PhaseTesting {
		t.Errorf("Phase = %v, want PhaseTesting", s.Phase)
	}
	if s.SubmissionPending {
		t.Error("pending slot must be released after failure")
	}
	// Answers are still held; the submission can be retried.
	if _, _, ok := s.StartSubmission(false); !ok {
		t.Error("expected retry submission to be accepted")
	}
}

func TestReset_ClearsEverything(t *testing.T) {
	s := startedSession(t, newFakeClock(), testConfig(), 3)
	s.Answer("something")
	genBefore := s.Generation()

	s.Reset()

	if s.Phase != PhaseSetup {
		t.Errorf("Phase = %v, want PhaseSetup", s.Phase)
	}
	if len(s.Questions) != 0 || len(s.Records) != 0 {
		t.Errorf("Questions/Records not cleared: %d/%d", len(s.Questions), len(s.Records))
	}
	if s.Result != nil {
		t.Error("Result not cleared")
	}
	if s.Index != 0 {
		t.Errorf("Index = %d, want 0", s.Index)
	}
	if s.Generation() != genBefore+1 {
		t.Errorf("Generation = %d, want %d", s.Generation(), genBefore+1)
	}
}
