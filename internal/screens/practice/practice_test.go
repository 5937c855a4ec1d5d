package practice

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studiz/internal/grading"
	"github.com/abhisek/studiz/internal/quizgen"
	"github.com/abhisek/studiz/internal/screen"
	"github.com/abhisek/studiz/internal/selftest"
	"github.com/abhisek/studiz/internal/store"
)

// mockGenerator implements quizgen.Generator for testing.
type mockGenerator struct {
	questions []quizgen.Question
	err       error
	lastReq   quizgen.SetRequest
}

func (m *mockGenerator) GenerateSet(_ context.Context, req quizgen.SetRequest) ([]quizgen.Question, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.questions, nil
}

// mockEvaluator grades against the canonical answer and shapes feedback
// from the escalation, like the real evaluators.
type mockEvaluator struct {
	requests []grading.AnswerRequest
}

func (m *mockEvaluator) GradeAnswer(_ context.Context, req grading.AnswerRequest) (*grading.AnswerFeedback, error) {
	m.requests = append(m.requests, req)
	correct := strings.EqualFold(strings.TrimSpace(req.Answer), req.Question.Answer)
	esc := selftest.Escalate(req.Attempt, correct)
	return &grading.AnswerFeedback{
		Correct:      correct,
		Tier:         esc.Tier,
		RevealAnswer: esc.RevealAnswer,
		Feedback:     "feedback",
		Explanation:  req.Question.Explanation,
	}, nil
}

func (m *mockEvaluator) GradeTest(_ context.Context, _ grading.TestRequest) (*selftest.Result, error) {
	return &selftest.Result{}, nil
}

// mockEventRepo implements store.EventRepo for testing.
type mockEventRepo struct {
	attemptEvents  []store.AttemptEventData
	feedbackEvents []store.FeedbackEventData
	weak           []string
}

func (m *mockEventRepo) AppendTestEvent(_ context.Context, _ store.TestEventData) error {
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
func (m *mockEventRepo) AppendFeedbackEvent(_ context.Context, data store.FeedbackEventData) error {
	m.feedbackEvents = append(m.feedbackEvents, data)
	return nil
}
func (m *mockEventRepo) ConceptAccuracy(_ context.Context) ([]store.ConceptAccuracyRecord, error) {
	return nil, nil
}
func (m *mockEventRepo) WeakConcepts(_ context.Context, _ float64, _ int) ([]string, error) {
	return m.weak, nil
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

// mockContentRepo implements store.ContentRepo for testing.
type mockContentRepo struct {
	topics []string
}

func (m *mockContentRepo) PutDocument(_ context.Context, _ store.DocumentRecord) error {
	return nil
}
func (m *mockContentRepo) Documents(_ context.Context) ([]store.DocumentRecord, error) {
	return nil, nil
}
func (m *mockContentRepo) DocumentsByTopic(_ context.Context, _ string) ([]store.DocumentRecord, error) {
	return nil, nil
}
func (m *mockContentRepo) PutCourse(_ context.Context, _ store.CourseRecord) error {
	return nil
}
func (m *mockContentRepo) Courses(_ context.Context) ([]store.CourseRecord, error) {
	return nil, nil
}
func (m *mockContentRepo) Topics(_ context.Context) ([]string, error) {
	return m.topics, nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func practiceQuestions() []quizgen.Question {
	return []quizgen.Question{
		{
			ID:          "p1",
			Prompt:      "Mitochondria produce ATP.",
			Type:        quizgen.TypeTrueFalse,
			Answer:      "true",
			Concept:     "cell energy",
			Explanation: "ATP synthesis happens in the mitochondria.",
		},
		{
			ID:          "p2",
			Prompt:      "Name the cell's information molecule.",
			Type:        quizgen.TypeShortAnswer,
			Answer:      "DNA",
			Concept:     "genetics",
			Explanation: "DNA stores the genetic code.",
		},
	}
}

func testPractice() (*PracticeScreen, *mockGenerator, *mockEvaluator, *mockEventRepo, *mockSnapshotRepo) {
	gen := &mockGenerator{questions: practiceQuestions()}
	eval := &mockEvaluator{}
	events := &mockEventRepo{weak: []string{"cell energy"}}
	snaps := &mockSnapshotRepo{}
	content := &mockContentRepo{topics: []string{"biology"}}
	p := New(gen, eval, events, snaps, content)
	return p, gen, eval, events, snaps
}

// loadFirstBatch drives Init through to the first question.
func loadFirstBatch(t *testing.T, p *PracticeScreen) screen.Screen {
	t.Helper()
	cmd := p.Init()
	if cmd == nil {
		t.Fatal("expected a batch load command")
	}
	msg := cmd()
	ready, ok := msg.(batchReadyMsg)
	if !ok {
		t.Fatalf("message = %T, want batchReadyMsg", msg)
	}
	scr, _ := p.Update(ready)
	return scr
}

// submitAnswer presses Enter and feeds the resulting feedback message
// back into the screen.
func submitAnswer(t *testing.T, scr screen.Screen) screen.Screen {
	t.Helper()
	scr, cmd := scr.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a grading command")
	}
	scr, _ = scr.Update(cmd())
	return scr
}

func TestPracticeScreen_Title(t *testing.T) {
	p, _, _, _, _ := testPractice()
	if p.Title() != "Practice" {
		t.Errorf("Title = %q, want %q", p.Title(), "Practice")
	}
}

func TestPracticeScreen_WeakAreasBatch(t *testing.T) {
	p, gen, _, _, _ := testPractice()
	loadFirstBatch(t, p)

	if gen.lastReq.Mode != string(selftest.ModeWeakAreas) {
		t.Errorf("request mode = %q, want weak-areas", gen.lastReq.Mode)
	}
	if len(gen.lastReq.WeakConcepts) != 1 {
		t.Errorf("weak concepts = %v, want [cell energy]", gen.lastReq.WeakConcepts)
	}
	if p.flow.Question == nil || p.flow.Question.ID != "p1" {
		t.Fatalf("current question = %+v, want p1", p.flow.Question)
	}
}

func TestPracticeScreen_TopicsFallback(t *testing.T) {
	p, gen, _, events, _ := testPractice()
	events.weak = nil
	loadFirstBatch(t, p)

	if gen.lastReq.Mode != string(selftest.ModeComprehensive) {
		t.Errorf("request mode = %q, want comprehensive", gen.lastReq.Mode)
	}
	if len(gen.lastReq.Topics) != 1 || gen.lastReq.Topics[0] != "biology" {
		t.Errorf("request topics = %v, want [biology]", gen.lastReq.Topics)
	}
}

func TestPracticeScreen_NothingToPractice(t *testing.T) {
	gen := &mockGenerator{}
	p := New(gen, &mockEvaluator{}, &mockEventRepo{}, &mockSnapshotRepo{}, &mockContentRepo{})

	cmd := p.Init()
	msg := cmd()
	p.Update(msg)

	if p.emptyMsg == "" {
		t.Error("expected the nothing-to-practice message")
	}
	view := p.View(80, 24)
	if !strings.Contains(view, "Import study material") {
		t.Error("expected the empty-state hint in the view")
	}
}

func TestPracticeScreen_CorrectAnswerAdvances(t *testing.T) {
	p, _, _, events, snaps := testPractice()
	scr := loadFirstBatch(t, p)

	// True is correct for p1 and is the default selection.
	scr = submitAnswer(t, scr)
	pp := scr.(*PracticeScreen)
	if pp.feedback == nil || !pp.feedback.Correct {
		t.Fatalf("feedback = %+v, want correct", pp.feedback)
	}
	if !pp.flow.CanAdvance() {
		t.Fatal("expected advancement after a correct answer")
	}

	scr, _ = scr.Update(keyPress(' '))
	pp = scr.(*PracticeScreen)
	if pp.flow.Question == nil || pp.flow.Question.ID != "p2" {
		t.Fatalf("current question = %+v, want p2 after advance", pp.flow.Question)
	}
	if pp.done != 1 || pp.correct != 1 {
		t.Errorf("done/correct = %d/%d, want 1/1", pp.done, pp.correct)
	}

	if len(events.attemptEvents) != 1 {
		t.Fatalf("attempt events = %d, want 1", len(events.attemptEvents))
	}
	ev := events.attemptEvents[0]
	if !ev.Practice || ev.Attempt != 1 || !ev.Correct {
		t.Errorf("attempt event = %+v, want practice first-attempt correct", ev)
	}
	if len(events.feedbackEvents) != 1 || events.feedbackEvents[0].Tier != string(selftest.TierConfirm) {
		t.Errorf("feedback events = %+v, want one confirm tier", events.feedbackEvents)
	}

	if len(snaps.snapshots) != 1 {
		t.Fatalf("snapshots = %d, want 1", len(snaps.snapshots))
	}
	cm := snaps.snapshots[0].Data.Concepts["cell energy"]
	if cm.Attempts != 1 || cm.Correct != 1 {
		t.Errorf("cell energy mastery = %+v, want 1/1", cm)
	}
}

func TestPracticeScreen_EscalationAcrossAttempts(t *testing.T) {
	p, _, _, events, _ := testPractice()
	scr := loadFirstBatch(t, p)

	// Select False, which is wrong for p1.
	scr, _ = scr.Update(keyPress('2'))

	wantTiers := []selftest.Tier{selftest.TierEncourage, selftest.TierHint, selftest.TierReveal}
	for i, want := range wantTiers {
		scr = submitAnswer(t, scr)
		pp := scr.(*PracticeScreen)
		if pp.feedback == nil || pp.feedback.Tier != want {
			t.Fatalf("attempt %d tier = %+v, want %v", i+1, pp.feedback, want)
		}
		canAdvance := pp.flow.CanAdvance()
		if want == selftest.TierReveal && !canAdvance {
			t.Fatal("expected advancement after the reveal tier")
		}
		if want != selftest.TierReveal && canAdvance {
			t.Fatalf("attempt %d: expected a retry, not advancement", i+1)
		}

		scr, _ = scr.Update(keyPress(' '))
		if want != selftest.TierReveal {
			// Same question again; re-select the wrong answer.
			scr, _ = scr.Update(keyPress('2'))
		}
	}

	pp := scr.(*PracticeScreen)
	if pp.flow.Question == nil || pp.flow.Question.ID != "p2" {
		t.Fatalf("current question = %+v, want p2 after reveal", pp.flow.Question)
	}
	if pp.done != 1 || pp.correct != 0 {
		t.Errorf("done/correct = %d/%d, want 1/0", pp.done, pp.correct)
	}
	if len(events.attemptEvents) != 3 {
		t.Errorf("attempt events = %d, want 3", len(events.attemptEvents))
	}
}

func TestPracticeScreen_EmptyAnswerBlocked(t *testing.T) {
	p, _, eval, _, _ := testPractice()
	scr := loadFirstBatch(t, p)

	// Advance to the open question first.
	scr = submitAnswer(t, scr)
	scr, _ = scr.Update(keyPress(' '))

	scr, cmd := scr.Update(specialKey(tea.KeyEnter))
	pp := scr.(*PracticeScreen)
	if cmd != nil {
		t.Error("expected no grading command for an empty answer")
	}
	if pp.errMsg == "" {
		t.Error("expected an answer-first message")
	}
	if len(eval.requests) != 1 {
		t.Errorf("grading requests = %d, want only the first question's", len(eval.requests))
	}
}

func TestPracticeScreen_NewBatchWhenQueueEmpty(t *testing.T) {
	p, gen, _, _, _ := testPractice()
	gen.questions = practiceQuestions()[:1]
	scr := loadFirstBatch(t, p)

	scr = submitAnswer(t, scr)
	scr, cmd := scr.Update(keyPress(' '))
	pp := scr.(*PracticeScreen)

	if !pp.loading {
		t.Error("expected a new batch load once the queue drained")
	}
	if cmd == nil {
		t.Error("expected the batch load command")
	}
}
