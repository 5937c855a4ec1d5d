package results

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studiz/internal/quizgen"
	"github.com/abhisek/studiz/internal/screen"
	"github.com/abhisek/studiz/internal/screens/placeholder"
	"github.com/abhisek/studiz/internal/selftest"
)

func testSession(t *testing.T) *selftest.Session {
	t.Helper()

	s := selftest.NewSession(selftest.SystemClock{})
	gen, err := s.StartGeneration(selftest.Config{
		Topics:        []string{"photosynthesis"},
		Difficulty:    selftest.DifficultyMixed,
		QuestionCount: 5,
		Mode:          selftest.ModeComprehensive,
	})
	if err != nil {
		t.Fatalf("StartGeneration: %v", err)
	}
	ok := s.Begin(gen, []quizgen.Question{
		{ID: "q1", Prompt: "Chlorophyll absorbs green light.", Type: quizgen.TypeTrueFalse, Answer: "false", Concept: "light reactions", Explanation: "Green is reflected, which is why leaves look green."},
		{ID: "q2", Prompt: "Name the cycle that fixes carbon.", Type: quizgen.TypeShortAnswer, Answer: "Calvin cycle", Concept: "calvin cycle", Explanation: "The Calvin cycle fixes CO2 into sugar."},
	})
	if !ok {
		t.Fatal("Begin refused a fresh question set")
	}

	g, sub, ok := s.StartSubmission(false)
	if !ok {
		t.Fatal("StartSubmission refused")
	}
	res := &selftest.Result{
		Score:         0.5,
		Correct:       1,
		Total:         2,
		AvgConfidence: 2.5,
		TotalTimeMs:   90_000,
		Questions: []selftest.QuestionScore{
			{QuestionID: "q1", Concept: "light reactions", Correct: true},
			{QuestionID: "q2", Concept: "calvin cycle", Correct: false, Feedback: "Close, but the answer names a cycle."},
		},
		WeakConcepts: []selftest.ConceptScore{
			{Concept: "calvin cycle", Score: 0, Suggestion: "Review calvin cycle: 0 of 1 answered correctly."},
		},
		StrongConcepts:  []string{"light reactions"},
		Recommendations: []string{"Focus your next session on: calvin cycle."},
		Readiness:       selftest.ReadinessNeedsImprovement,
	}
	if !s.ApplyResult(g, sub, res) {
		t.Fatal("ApplyResult refused a matching submission")
	}
	return s
}

func testRetake() screen.Screen {
	return placeholder.New("Setup")
}

func TestResultsScreen_Title(t *testing.T) {
	s := New(testSession(t), testRetake)
	if s.Title() != "Results" {
		t.Errorf("Title = %q, want %q", s.Title(), "Results")
	}
}

func TestResultsScreen_Display(t *testing.T) {
	s := New(testSession(t), testRetake)
	view := s.View(80, 24)
	if view == "" {
		t.Error("expected non-empty results view")
	}
	if !strings.Contains(view, "Needs Improvement") {
		t.Error("expected the readiness band in the view")
	}
	if !strings.Contains(view, "calvin cycle") {
		t.Error("expected the weak concept in the view")
	}
}

func TestResultsScreen_Navigation_Enter(t *testing.T) {
	sess := testSession(t)
	s := New(sess, testRetake)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Error("expected a command on Enter (replace with setup)")
	}
	if sess.Phase != selftest.PhaseSetup {
		t.Errorf("Phase after Enter = %v, want PhaseSetup", sess.Phase)
	}
}

func TestResultsScreen_Navigation_Esc(t *testing.T) {
	sess := testSession(t)
	s := New(sess, testRetake)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Error("expected a command on Esc (pop)")
	}
	if sess.Phase != selftest.PhaseSetup {
		t.Errorf("Phase after Esc = %v, want PhaseSetup", sess.Phase)
	}
}

func TestResultsScreen_KeyHints(t *testing.T) {
	s := New(testSession(t), testRetake)
	hints := s.KeyHints()
	if len(hints) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(hints))
	}
}
