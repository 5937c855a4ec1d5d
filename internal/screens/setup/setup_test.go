package setup

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studiz/internal/grading"
	"github.com/abhisek/studiz/internal/quizgen"
	"github.com/abhisek/studiz/internal/router"
	"github.com/abhisek/studiz/internal/screen"
	testscreen "github.com/abhisek/studiz/internal/screens/test"
	"github.com/abhisek/studiz/internal/selftest"
	"github.com/abhisek/studiz/internal/store"
)

// mockGenerator implements quizgen.Generator for testing.
type mockGenerator struct {
	questions []quizgen.Question
	err       error
	calls     int
	lastReq   quizgen.SetRequest
}

func (m *mockGenerator) GenerateSet(_ context.Context, req quizgen.SetRequest) ([]quizgen.Question, error) {
	m.calls++
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.questions, nil
}

// mockEvaluator implements grading.Evaluator for testing.
type mockEvaluator struct{}

func (m *mockEvaluator) GradeAnswer(_ context.Context, _ grading.AnswerRequest) (*grading.AnswerFeedback, error) {
	return &grading.AnswerFeedback{}, nil
}

func (m *mockEvaluator) GradeTest(_ context.Context, _ grading.TestRequest) (*selftest.Result, error) {
	return &selftest.Result{}, nil
}

// mockEventRepo implements store.EventRepo for testing.
type mockEventRepo struct {
	testEvents []store.TestEventData
	weak       []string
	prompts    []string
}

func (m *mockEventRepo) AppendTestEvent(_ context.Context, data store.TestEventData) error {
	m.testEvents = append(m.testEvents, data)
	return nil
}
func (m *mockEventRepo) QueryTestSummaries(_ context.Context, _ store.QueryOpts) ([]store.TestSummaryRecord, error) {
	return nil, nil
}
func (m *mockEventRepo) AppendAttemptEvent(_ context.Context, _ store.AttemptEventData) error {
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
	return m.weak, nil
}
func (m *mockEventRepo) RecentPrompts(_ context.Context, _ int) ([]string, error) {
	return m.prompts, nil
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

// mockContentRepo implements store.ContentRepo for testing.
type mockContentRepo struct {
	topics []string
	docs   []store.DocumentRecord
}

func (m *mockContentRepo) PutDocument(_ context.Context, _ store.DocumentRecord) error {
	return nil
}
func (m *mockContentRepo) Documents(_ context.Context) ([]store.DocumentRecord, error) {
	return m.docs, nil
}
func (m *mockContentRepo) DocumentsByTopic(_ context.Context, topic string) ([]store.DocumentRecord, error) {
	var out []store.DocumentRecord
	for _, d := range m.docs {
		if d.Topic == topic {
			out = append(out, d)
		}
	}
	return out, nil
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

func testQuestions(n int) []quizgen.Question {
	out := make([]quizgen.Question, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, quizgen.Question{
			ID:          string(rune('a' + i)),
			Prompt:      "Prompt",
			Type:        quizgen.TypeTrueFalse,
			Answer:      "true",
			Concept:     "concept",
			Explanation: "Because.",
		})
	}
	return out
}

func testSetup() (*SetupScreen, *mockGenerator, *mockEventRepo) {
	gen := &mockGenerator{questions: testQuestions(5)}
	events := &mockEventRepo{}
	content := &mockContentRepo{topics: []string{"algebra", "biology"}}
	s := New(gen, &mockEvaluator{}, nil, events, nil, content)
	s.topics = content.topics
	return s, gen, events
}

// checkTopic marks the topic at index i selected.
func checkTopic(s *SetupScreen, i int) {
	s.checked[i] = true
}

// pressStart moves focus to the start row and presses Enter.
func pressStart(s *SetupScreen) (screen.Screen, tea.Cmd) {
	var scr screen.Screen = s
	for i := 0; i < rowStart; i++ {
		scr, _ = scr.Update(keyPress('j'))
	}
	return scr.Update(specialKey(tea.KeyEnter))
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

func findReady(msgs []tea.Msg) (questionsReadyMsg, bool) {
	for _, msg := range msgs {
		if ready, ok := msg.(questionsReadyMsg); ok {
			return ready, true
		}
	}
	return questionsReadyMsg{}, false
}

func TestSetupScreen_Title(t *testing.T) {
	s, _, _ := testSetup()
	if s.Title() != "New Self-Test" {
		t.Errorf("Title = %q, want %q", s.Title(), "New Self-Test")
	}
}

func TestSetupScreen_View(t *testing.T) {
	s, _, _ := testSetup()
	view := s.View(80, 24)
	if view == "" {
		t.Error("expected non-empty setup view")
	}
	if !strings.Contains(view, "algebra") {
		t.Error("expected the loaded topics in the view")
	}
}

func TestSetupScreen_StartWithoutTopics(t *testing.T) {
	s, gen, _ := testSetup()

	scr, cmd := pressStart(s)
	ss := scr.(*SetupScreen)

	if cmd != nil {
		t.Error("expected no generation command without topics")
	}
	if ss.errMsg != "select at least one topic" {
		t.Errorf("errMsg = %q, want the topic validation message", ss.errMsg)
	}
	if gen.calls != 0 {
		t.Errorf("generator calls = %d, want 0", gen.calls)
	}
	if s.session.Phase != selftest.PhaseSetup {
		t.Errorf("Phase = %v, want PhaseSetup", s.session.Phase)
	}
}

func TestSetupScreen_WeakAreasNeedsNoTopics(t *testing.T) {
	s, _, _ := testSetup()
	s.modeIdx = 1 // weak-areas

	_, cmd := pressStart(s)
	if cmd == nil {
		t.Fatal("expected a generation command in weak-areas mode")
	}
	if !s.session.GenerationPending {
		t.Error("expected generation to be pending")
	}
}

func TestSetupScreen_GenerationFlow(t *testing.T) {
	s, gen, events := testSetup()
	checkTopic(s, 0)

	scr, cmd := pressStart(s)
	if cmd == nil {
		t.Fatal("expected a generation command")
	}

	ready, ok := findReady(drain(t, cmd))
	if !ok {
		t.Fatal("expected a questions-ready message")
	}
	if gen.calls != 1 {
		t.Errorf("generator calls = %d, want 1", gen.calls)
	}
	if got := gen.lastReq.Topics; len(got) != 1 || got[0] != "algebra" {
		t.Errorf("request topics = %v, want [algebra]", got)
	}

	scr, cmd = scr.Update(ready)
	if s.session.Phase != selftest.PhaseTesting {
		t.Fatalf("Phase = %v, want PhaseTesting", s.session.Phase)
	}

	var replaced bool
	for _, msg := range drain(t, cmd) {
		if rep, ok := msg.(router.ReplaceScreenMsg); ok {
			replaced = true
			if _, ok := rep.Screen.(*testscreen.TestScreen); !ok {
				t.Errorf("replacement screen = %T, want *test.TestScreen", rep.Screen)
			}
		}
	}
	if !replaced {
		t.Error("expected a replace to the test screen")
	}
	if len(events.testEvents) != 1 || events.testEvents[0].Action != "start" {
		t.Errorf("test events = %+v, want one start event", events.testEvents)
	}
}

func TestSetupScreen_GenerationFailureKeepsForm(t *testing.T) {
	s, gen, _ := testSetup()
	gen.err = errors.New("provider unreachable")
	checkTopic(s, 0)

	scr, cmd := pressStart(s)
	ready, ok := findReady(drain(t, cmd))
	if !ok {
		t.Fatal("expected a questions-ready message")
	}
	if gen.calls != 3 {
		t.Errorf("generator calls = %d, want 3 retries", gen.calls)
	}

	scr, _ = scr.Update(ready)
	ss := scr.(*SetupScreen)

	if s.session.Phase != selftest.PhaseSetup {
		t.Errorf("Phase = %v, want PhaseSetup after failure", s.session.Phase)
	}
	if s.session.GenerationPending {
		t.Error("expected the pending slot released after failure")
	}
	if !strings.Contains(ss.errMsg, "Generation failed") {
		t.Errorf("errMsg = %q, want a generation failure banner", ss.errMsg)
	}
}

func TestSetupScreen_NonRetryableStopsEarly(t *testing.T) {
	s, gen, _ := testSetup()
	gen.err = &quizgen.ValidationError{Validator: "structural", Message: "empty prompt", Retryable: false}
	checkTopic(s, 0)

	_, cmd := pressStart(s)
	if _, ok := findReady(drain(t, cmd)); !ok {
		t.Fatal("expected a questions-ready message")
	}
	if gen.calls != 1 {
		t.Errorf("generator calls = %d, want 1 (no retry)", gen.calls)
	}
}

func TestSetupScreen_AddTopic(t *testing.T) {
	s, _, _ := testSetup()

	var scr screen.Screen = s
	scr, _ = scr.Update(keyPress('a'))
	for _, r := range "Chemistry" {
		scr, _ = scr.Update(keyPress(r))
	}
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	ss := scr.(*SetupScreen)

	if len(ss.topics) != 3 || ss.topics[2] != "Chemistry" {
		t.Fatalf("topics = %v, want Chemistry appended", ss.topics)
	}
	if !ss.checked[2] {
		t.Error("expected the added topic to start selected")
	}
}

func TestSetupScreen_VocalNeedsTranscriber(t *testing.T) {
	s, _, _ := testSetup()
	s.row = rowVocal

	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	ss := scr.(*SetupScreen)

	if ss.vocal {
		t.Error("expected vocal to stay off without a transcriber")
	}
	if ss.errMsg == "" {
		t.Error("expected an unavailability message")
	}
}
