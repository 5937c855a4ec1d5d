package test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studiz/internal/grading"
	"github.com/abhisek/studiz/internal/quizgen"
	"github.com/abhisek/studiz/internal/router"
	"github.com/abhisek/studiz/internal/screen"
	"github.com/abhisek/studiz/internal/screens/placeholder"
	"github.com/abhisek/studiz/internal/screens/results"
	"github.com/abhisek/studiz/internal/selftest"
	"github.com/abhisek/studiz/internal/speech"
	"github.com/abhisek/studiz/internal/store"
)

// fakeClock implements selftest.Clock with a manually advanced time.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// mockEvaluator implements grading.Evaluator for testing.
type mockEvaluator struct {
	err      error
	requests []grading.TestRequest
}

func (m *mockEvaluator) GradeAnswer(_ context.Context, req grading.AnswerRequest) (*grading.AnswerFeedback, error) {
	return &grading.AnswerFeedback{}, nil
}

func (m *mockEvaluator) GradeTest(_ context.Context, req grading.TestRequest) (*selftest.Result, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	scores := make([]selftest.QuestionScore, 0, len(req.Questions))
	correct := 0
	for _, q := range req.Questions {
		rec := req.Records[q.ID]
		ok := rec != nil && strings.EqualFold(strings.TrimSpace(rec.Answer), q.Answer)
		if ok {
			correct++
		}
		scores = append(scores, selftest.QuestionScore{
			QuestionID: q.ID,
			Concept:    q.Concept,
			Correct:    ok,
		})
	}
	total := len(req.Questions)
	score := 0.0
	if total > 0 {
		score = float64(correct) / float64(total)
	}
	return &selftest.Result{
		Score:     score,
		Correct:   correct,
		Total:     total,
		Questions: scores,
		Readiness: selftest.ReadinessBand(score),
	}, nil
}

// mockEventRepo implements store.EventRepo for testing.
type mockEventRepo struct {
	testEvents    []store.TestEventData
	attemptEvents []store.AttemptEventData
}

func (m *mockEventRepo) AppendTestEvent(_ context.Context, data store.TestEventData) error {
	m.testEvents = append(m.testEvents, data)
	return nil
}
func (m *mockEventRepo) QueryTestSummaries(_ context.Context, _ store.QueryOpts) ([]store.TestSummaryRecord, error) {
	return nil, nil
}
func (m *mockEventRepo) AppendAttemptEvent(_ context.Context, data store.AttemptEventData) error {
	m.attemptEvents = append(m.attemptEvents, data)
	return nil
}
func (m *mockEventRepo) QueryAttempts(_ context.Context, _ string) ([]store.AttemptEventRecord, error) {
	return nil, nil
}
func (m *mockEventRepo) AppendFeedbackEvent(_ context.Context, _ store.FeedbackEventData) error {
	return nil
}
func (m *mockEventRepo) ConceptAccuracy(_ context.Context) ([]store.ConceptAccuracyRecord, error) {
	return nil, nil
}
func (m *mockEventRepo) WeakConcepts(_ context.Context, _ float64, _ int) ([]string, error) {
	return nil, nil
}
func (m *mockEventRepo) RecentPrompts(_ context.Context, _ int) ([]string, error) {
	return nil, nil
}
func (m *mockEventRepo) AppendLLMRequest(_ context.Context, _ store.LLMRequestEventData) error {
	return nil
}
func (m *mockEventRepo) QueryLLMEvents(_ context.Context, _ store.QueryOpts) ([]store.LLMEventRecord, error) {
	return nil, nil
}
func (m *mockEventRepo) GetLLMEvent(_ context.Context, _ int) (*store.LLMEventRecord, error) {
	return nil, nil
}
func (m *mockEventRepo) LLMUsageByPurpose(_ context.Context) ([]store.LLMUsageStat, error) {
	return nil, nil
}
func (m *mockEventRepo) LLMUsageByModel(_ context.Context) ([]store.LLMModelUsage, error) {
	return nil, nil
}

// mockSnapshotRepo implements store.SnapshotRepo for testing.
type mockSnapshotRepo struct {
	snapshots []*store.Snapshot
}

func (m *mockSnapshotRepo) Save(_ context.Context, snap *store.Snapshot) error {
	m.snapshots = append(m.snapshots, snap)
	return nil
}
func (m *mockSnapshotRepo) Latest(_ context.Context) (*store.Snapshot, error) {
	if len(m.snapshots) == 0 {
		return nil, nil
	}
	return m.snapshots[len(m.snapshots)-1], nil
}
func (m *mockSnapshotRepo) Prune(_ context.Context, _ int) error {
	return nil
}

// mockTranscriber implements speech.Transcriber with a test-fed channel.
type mockTranscriber struct {
	ch      chan speech.Chunk
	stopped int
}

func (m *mockTranscriber) Start(_ context.Context) (<-chan speech.Chunk, error) {
	m.ch = make(chan speech.Chunk, 8)
	return m.ch, nil
}

func (m *mockTranscriber) Stop() {
	m.stopped++
	if m.ch != nil {
		close(m.ch)
		m.ch = nil
	}
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testQuestions() []quizgen.Question {
	return []quizgen.Question{
		{
			ID:          "q1",
			Prompt:      "Chlorophyll absorbs green light.",
			Type:        quizgen.TypeTrueFalse,
			Answer:      "false",
			Concept:     "light reactions",
			Explanation: "Green light is reflected.",
		},
		{
			ID:          "q2",
			Prompt:      "Name the cycle that fixes carbon.",
			Type:        quizgen.TypeShortAnswer,
			Answer:      "Calvin cycle",
			Concept:     "calvin cycle",
			Explanation: "The Calvin cycle fixes CO2.",
		},
	}
}

func testConfig() selftest.Config {
	return selftest.Config{
		Topics:        []string{"photosynthesis"},
		Difficulty:    selftest.DifficultyMixed,
		QuestionCount: 5,
		Mode:          selftest.ModeComprehensive,
	}
}

func startedSession(t *testing.T, clock selftest.Clock, cfg selftest.Config, questions []quizgen.Question) *selftest.Session {
	t.Helper()
	s := selftest.NewSession(clock)
	gen, err := s.StartGeneration(cfg)
	if err != nil {
		t.Fatalf("StartGeneration: %v", err)
	}
	if !s.Begin(gen, questions) {
		t.Fatal("Begin refused a fresh question set")
	}
	return s
}

func testScreen(t *testing.T) (*TestScreen, *selftest.Session, *mockEvaluator, *mockEventRepo, *mockSnapshotRepo) {
	t.Helper()
	sess := startedSession(t, selftest.SystemClock{}, testConfig(), testQuestions())
	evaluator := &mockEvaluator{}
	events := &mockEventRepo{}
	snaps := &mockSnapshotRepo{}
	scr := New(sess, evaluator, nil, events, snaps, func() screen.Screen { return placeholder.New("Setup") })
	return scr, sess, evaluator, events, snaps
}

// drain executes a command tree, collecting every produced message.
func drain(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	var msgs []tea.Msg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg := c()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		if msg != nil {
			msgs = append(msgs, msg)
		}
	}
	return msgs
}

func TestTestScreen_Title(t *testing.T) {
	s, _, _, _, _ := testScreen(t)
	if s.Title() != "Self-Test" {
		t.Errorf("Title = %q, want %q", s.Title(), "Self-Test")
	}
}

func TestTestScreen_View_Question(t *testing.T) {
	s, _, _, _, _ := testScreen(t)
	view := s.View(80, 24)
	if view == "" {
		t.Error("expected non-empty question view")
	}
	if !strings.Contains(view, "Chlorophyll") {
		t.Error("expected the question prompt in the view")
	}
}

func TestTestScreen_QuitConfirm(t *testing.T) {
	s, _, _, _, _ := testScreen(t)

	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	ts := scr.(*TestScreen)
	if !ts.showConfirm {
		t.Error("expected quit confirmation dialog")
	}

	scr, _ = ts.Update(keyPress('n'))
	ts = scr.(*TestScreen)
	if ts.showConfirm {
		t.Error("expected quit confirmation to be dismissed")
	}
}

func TestTestScreen_QuitConfirm_Yes(t *testing.T) {
	s, sess, _, events, _ := testScreen(t)

	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	_, cmd := scr.Update(keyPress('y'))
	if cmd == nil {
		t.Fatal("expected a command after quit confirmation")
	}
	if sess.Phase != selftest.PhaseSetup {
		t.Errorf("Phase after quit = %v, want PhaseSetup", sess.Phase)
	}

	msgs := drain(t, cmd)
	var popped bool
	for _, msg := range msgs {
		if _, ok := msg.(router.PopScreenMsg); ok {
			popped = true
		}
	}
	if !popped {
		t.Error("expected a pop back to home")
	}
	if len(events.testEvents) != 1 || events.testEvents[0].Action != "reset" {
		t.Errorf("test events = %+v, want one reset event", events.testEvents)
	}
}

func TestTestScreen_ChoiceSelection(t *testing.T) {
	s, sess, _, _, _ := testScreen(t)

	var scr screen.Screen = s
	scr, _ = scr.Update(keyPress('2'))

	rec := sess.Record("q1")
	if rec == nil || rec.Answer != "False" {
		t.Fatalf("recorded answer = %+v, want False", rec)
	}
	ts := scr.(*TestScreen)
	if ts.choiceIdx != 1 {
		t.Errorf("choiceIdx = %d, want 1", ts.choiceIdx)
	}
}

func TestTestScreen_BlockedWithoutAnswer(t *testing.T) {
	s, sess, _, _, _ := testScreen(t)

	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	ts := scr.(*TestScreen)

	if sess.Index != 0 {
		t.Errorf("Index = %d, want 0 after blocked advance", sess.Index)
	}
	if ts.errMsg == "" {
		t.Error("expected a blocked-advance message")
	}
}

func TestTestScreen_AdvanceAndBack(t *testing.T) {
	s, sess, _, _, _ := testScreen(t)

	var scr screen.Screen = s
	scr, _ = scr.Update(keyPress('1'))
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	if sess.Index != 1 {
		t.Fatalf("Index after advance = %d, want 1", sess.Index)
	}

	scr, _ = scr.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if sess.Index != 0 {
		t.Errorf("Index after back = %d, want 0", sess.Index)
	}
	ts := scr.(*TestScreen)
	if ts.choiceIdx != 0 {
		t.Errorf("choiceIdx after revisit = %d, want 0 (True recorded)", ts.choiceIdx)
	}
}

func TestTestScreen_ConfidenceCycle(t *testing.T) {
	s, sess, _, _, _ := testScreen(t)

	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyTab))
	scr, _ = scr.Update(specialKey(tea.KeyTab))
	_ = scr

	rec := sess.Record("q1")
	if rec == nil || rec.Confidence != 2 {
		t.Fatalf("confidence = %+v, want 2 after two cycles", rec)
	}
}

func TestTestScreen_SubmitFlow(t *testing.T) {
	s, sess, evaluator, events, snaps := testScreen(t)

	var scr screen.Screen = s
	scr, _ = scr.Update(keyPress('2'))              // False, correct
	scr, _ = scr.Update(specialKey(tea.KeyEnter))   // advance to q2
	for _, r := range "Calvin cycle" {
		scr, _ = scr.Update(keyPress(r))
	}
	scr, cmd := scr.Update(specialKey(tea.KeyEnter)) // submit

	if !sess.SubmissionPending {
		t.Fatal("expected a pending submission after the last Enter")
	}
	if cmd == nil {
		t.Fatal("expected a grading command")
	}

	msgs := drain(t, cmd)
	if len(evaluator.requests) != 1 {
		t.Fatalf("grading requests = %d, want 1", len(evaluator.requests))
	}
	if len(msgs) != 1 {
		t.Fatalf("messages = %d, want 1 graded message", len(msgs))
	}

	scr, cmd = scr.Update(msgs[0])
	if sess.Phase != selftest.PhaseResults {
		t.Fatalf("Phase = %v, want PhaseResults", sess.Phase)
	}
	if sess.Result == nil || sess.Result.Correct != 2 {
		t.Fatalf("Result = %+v, want 2 correct", sess.Result)
	}

	var replaced bool
	for _, msg := range drain(t, cmd) {
		if rep, ok := msg.(router.ReplaceScreenMsg); ok {
			replaced = true
			if _, ok := rep.Screen.(*results.ResultsScreen); !ok {
				t.Errorf("replacement screen = %T, want *results.ResultsScreen", rep.Screen)
			}
		}
	}
	if !replaced {
		t.Error("expected a replace to the results screen")
	}

	if len(events.testEvents) != 1 || events.testEvents[0].Action != "end" {
		t.Fatalf("test events = %+v, want one end event", events.testEvents)
	}
	if events.testEvents[0].Correct != 2 {
		t.Errorf("end event correct = %d, want 2", events.testEvents[0].Correct)
	}
	if len(events.attemptEvents) != 2 {
		t.Fatalf("attempt events = %d, want 2", len(events.attemptEvents))
	}
	if events.attemptEvents[0].Topic != "photosynthesis" {
		t.Errorf("attempt topic = %q, want photosynthesis", events.attemptEvents[0].Topic)
	}

	if len(snaps.snapshots) != 1 {
		t.Fatalf("snapshots = %d, want 1", len(snaps.snapshots))
	}
	cm := snaps.snapshots[0].Data.Concepts["light reactions"]
	if cm.Attempts != 1 || cm.Correct != 1 || cm.Score != 1 {
		t.Errorf("light reactions mastery = %+v, want 1/1", cm)
	}
}

func TestTestScreen_SubmitFailureKeepsAnswers(t *testing.T) {
	s, sess, evaluator, _, _ := testScreen(t)
	evaluator.err = errors.New("llm unreachable")

	var scr screen.Screen = s
	scr, _ = scr.Update(keyPress('1'))
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	for _, r := range "guess" {
		scr, _ = scr.Update(keyPress(r))
	}
	scr, cmd := scr.Update(specialKey(tea.KeyEnter))

	msgs := drain(t, cmd)
	if len(msgs) != 1 {
		t.Fatalf("messages = %d, want 1 graded failure", len(msgs))
	}
	scr, _ = scr.Update(msgs[0])

	if sess.Phase != selftest.PhaseTesting {
		t.Fatalf("Phase = %v, want PhaseTesting after failure", sess.Phase)
	}
	if sess.SubmissionPending {
		t.Error("expected the pending slot released after failure")
	}
	if rec := sess.Record("q2"); rec == nil || rec.Answer != "guess" {
		t.Errorf("record after failure = %+v, want held answer", rec)
	}
	ts := scr.(*TestScreen)
	if !strings.Contains(ts.errMsg, "Submission failed") {
		t.Errorf("errMsg = %q, want a submission failure banner", ts.errMsg)
	}
}

func TestTestScreen_TimeoutForcesSubmission(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
	cfg := testConfig()
	cfg.TimeLimitMinutes = 1
	sess := startedSession(t, clock, cfg, testQuestions())
	evaluator := &mockEvaluator{}
	events := &mockEventRepo{}
	s := New(sess, evaluator, nil, events, &mockSnapshotRepo{}, func() screen.Screen { return placeholder.New("Setup") })

	clock.advance(61 * time.Second)
	var scr screen.Screen = s
	scr, cmd := scr.Update(timerTickMsg(clock.Now()))

	if !sess.TimedOut {
		t.Fatal("expected the session to be timed out")
	}
	if !sess.SubmissionPending {
		t.Fatal("expected a forced submission in flight")
	}

	msgs := drain(t, cmd)
	if len(msgs) != 1 {
		t.Fatalf("messages = %d, want 1 graded message", len(msgs))
	}
	scr, cmd = scr.Update(msgs[0])
	_ = scr
	drain(t, cmd)

	if sess.Phase != selftest.PhaseResults {
		t.Fatalf("Phase = %v, want PhaseResults", sess.Phase)
	}
	if len(events.testEvents) != 1 || events.testEvents[0].Action != "timeout" {
		t.Errorf("test events = %+v, want one timeout event", events.testEvents)
	}
	if got := len(evaluator.requests[0].Records); got != 2 {
		t.Errorf("submitted records = %d, want 2 (empty included)", got)
	}
}

func TestTestScreen_VocalGate(t *testing.T) {
	cfg := testConfig()
	cfg.VocalExplanations = true
	questions := testQuestions()
	questions[0].RequiresVocal = true
	sess := startedSession(t, selftest.SystemClock{}, cfg, questions)
	tr := &mockTranscriber{}
	s := New(sess, &mockEvaluator{}, tr, &mockEventRepo{}, &mockSnapshotRepo{}, func() screen.Screen { return placeholder.New("Setup") })

	_ = s.Init()
	if tr.ch == nil {
		t.Fatal("expected the transcriber to be started for a vocal question")
	}

	var scr screen.Screen = s
	scr, _ = scr.Update(keyPress('1'))
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	if sess.Index != 0 {
		t.Fatal("expected the vocal gate to block advancement")
	}

	tr.ch <- speech.Chunk{Text: "because green is reflected"}
	pump := s.pumpTranscript()
	if pump == nil {
		t.Fatal("expected a running transcript pump")
	}
	scr, _ = scr.Update(pump())

	if got := sess.Transcript(); got != "because green is reflected" {
		t.Fatalf("Transcript = %q, want the delivered chunk", got)
	}
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	_ = scr
	if sess.Index != 1 {
		t.Error("expected advancement once the transcript arrived")
	}
}

func TestTestScreen_StaleChunkDropped(t *testing.T) {
	s, sess, _, _, _ := testScreen(t)

	var scr screen.Screen = s
	scr, _ = scr.Update(transcriptChunkMsg{qIdx: 5, chunk: speech.Chunk{Text: "late"}, ok: true})
	_ = scr

	if got := sess.Transcript(); got != "" {
		t.Errorf("Transcript = %q, want empty after stale chunk", got)
	}
}

func TestTestScreen_HeaderStatus(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
	cfg := testConfig()
	cfg.TimeLimitMinutes = 5
	sess := startedSession(t, clock, cfg, testQuestions())
	s := New(sess, &mockEvaluator{}, nil, &mockEventRepo{}, &mockSnapshotRepo{}, func() screen.Screen { return placeholder.New("Setup") })

	if got := s.HeaderStatus(); got != "⏱ 5:00" {
		t.Errorf("HeaderStatus = %q, want ⏱ 5:00", got)
	}
}
