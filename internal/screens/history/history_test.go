package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studiz/internal/store"
)

// mockEventRepo implements store.EventRepo for testing.
type mockEventRepo struct {
	summaries    []store.TestSummaryRecord
	summariesErr error
	attempts     map[string][]store.AttemptEventRecord
	queries      []string
}

func (m *mockEventRepo) AppendTestEvent(_ context.Context, _ store.TestEventData) error {
	return nil
}
func (m *mockEventRepo) QueryTestSummaries(_ context.Context, _ store.QueryOpts) ([]store.TestSummaryRecord, error) {
	if m.summariesErr != nil {
		return nil, m.summariesErr
	}
	return m.summaries, nil
}
func (m *mockEventRepo) AppendAttemptEvent(_ context.Context, _ store.AttemptEventData) error {
	return nil
}
func (m *mockEventRepo) QueryAttempts(_ context.Context, sessionID string) ([]store.AttemptEventRecord, error) {
	m.queries = append(m.queries, sessionID)
	return m.attempts[sessionID], nil
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

func fixtureSummaries() []store.TestSummaryRecord {
	return []store.TestSummaryRecord{
		{
			SessionID:    "s2",
			Timestamp:    time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC),
			Mode:         "comprehensive",
			Topics:       []string{"photosynthesis"},
			Correct:      9,
			Total:        10,
			Score:        0.9,
			DurationSecs: 312,
			Readiness:    "Excellent",
		},
		{
			SessionID:    "s1",
			Timestamp:    time.Date(2025, 3, 10, 16, 30, 0, 0, time.UTC),
			Mode:         "weak-areas",
			Topics:       []string{"genetics"},
			Correct:      2,
			Total:        5,
			Score:        0.4,
			DurationSecs: 600,
			Readiness:    "Needs Improvement",
			TimedOut:     true,
		},
	}
}

func fixtureAttempts() map[string][]store.AttemptEventRecord {
	return map[string][]store.AttemptEventRecord{
		"s2": {
			{
				AttemptEventData: store.AttemptEventData{
					SessionID:     "s2",
					Concept:       "light reactions",
					LearnerAnswer: "thylakoid membrane",
					Correct:       true,
				},
			},
			{
				AttemptEventData: store.AttemptEventData{
					SessionID:     "s2",
					Concept:       "calvin cycle",
					LearnerAnswer: "",
					Correct:       false,
				},
			},
		},
	}
}

// loadedHistory builds a HistoryScreen with its summaries loaded.
func loadedHistory(t *testing.T, events *mockEventRepo) *HistoryScreen {
	t.Helper()
	s := New(events)
	cmd := s.Init()
	if cmd == nil {
		t.Fatal("Init() returned nil cmd")
	}
	updated, _ := s.Update(cmd())
	return updated.(*HistoryScreen)
}

func TestHistoryScreen_Title(t *testing.T) {
	s := New(&mockEventRepo{})
	if got := s.Title(); got != "History" {
		t.Errorf("Title() = %q, want %q", got, "History")
	}
}

func TestHistoryScreen_ListsSummaries(t *testing.T) {
	s := loadedHistory(t, &mockEventRepo{summaries: fixtureSummaries()})

	view := s.View(80, 24)
	if !strings.Contains(view, "Mar 14, 2025") {
		t.Errorf("view missing date, got:\n%s", view)
	}
	if !strings.Contains(view, "9/10") {
		t.Errorf("view missing correct count, got:\n%s", view)
	}
	if !strings.Contains(view, "90%") {
		t.Errorf("view missing score, got:\n%s", view)
	}
	if !strings.Contains(view, "Excellent") {
		t.Errorf("view missing readiness band, got:\n%s", view)
	}
	if !strings.Contains(view, "timed out") {
		t.Errorf("view missing timeout marker, got:\n%s", view)
	}
}

func TestHistoryScreen_Empty(t *testing.T) {
	s := loadedHistory(t, &mockEventRepo{})

	view := s.View(80, 24)
	if !strings.Contains(view, "No tests yet") {
		t.Errorf("view missing empty message, got:\n%s", view)
	}
}

func TestHistoryScreen_LoadError(t *testing.T) {
	s := loadedHistory(t, &mockEventRepo{summariesErr: errors.New("db locked")})

	view := s.View(80, 24)
	if !strings.Contains(view, "db locked") {
		t.Errorf("view missing error, got:\n%s", view)
	}
}

func TestHistoryScreen_Navigation(t *testing.T) {
	s := loadedHistory(t, &mockEventRepo{summaries: fixtureSummaries()})

	updated, _ := s.Update(tea.KeyPressMsg{Code: 'j', Text: "j"})
	s = updated.(*HistoryScreen)
	if s.selected != 1 {
		t.Errorf("selected = %d after down, want 1", s.selected)
	}

	// Clamped at the end of the list.
	updated, _ = s.Update(tea.KeyPressMsg{Code: 'j', Text: "j"})
	s = updated.(*HistoryScreen)
	if s.selected != 1 {
		t.Errorf("selected = %d after second down, want 1", s.selected)
	}

	updated, _ = s.Update(tea.KeyPressMsg{Code: 'k', Text: "k"})
	s = updated.(*HistoryScreen)
	if s.selected != 0 {
		t.Errorf("selected = %d after up, want 0", s.selected)
	}
}

func TestHistoryScreen_ExpandLoadsAttempts(t *testing.T) {
	events := &mockEventRepo{summaries: fixtureSummaries(), attempts: fixtureAttempts()}
	s := loadedHistory(t, events)

	updated, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	s = updated.(*HistoryScreen)
	if !s.expanded[0] {
		t.Fatal("first row not expanded after enter")
	}
	if cmd == nil {
		t.Fatal("expected attempt load cmd")
	}

	updated, _ = s.Update(cmd())
	s = updated.(*HistoryScreen)

	view := s.View(80, 24)
	if !strings.Contains(view, "light reactions") {
		t.Errorf("expanded view missing concept, got:\n%s", view)
	}
	if !strings.Contains(view, "(no answer)") {
		t.Errorf("expanded view missing empty-answer marker, got:\n%s", view)
	}
	if len(events.queries) != 1 || events.queries[0] != "s2" {
		t.Errorf("queries = %v, want [s2]", events.queries)
	}
}

func TestHistoryScreen_CollapseAndCachedReopen(t *testing.T) {
	events := &mockEventRepo{summaries: fixtureSummaries(), attempts: fixtureAttempts()}
	s := loadedHistory(t, events)

	updated, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	s = updated.(*HistoryScreen)
	updated, _ = s.Update(cmd())
	s = updated.(*HistoryScreen)

	// Collapse.
	updated, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	s = updated.(*HistoryScreen)
	if s.expanded[0] {
		t.Fatal("row still expanded after second enter")
	}
	if cmd != nil {
		t.Error("collapse should not issue a cmd")
	}

	// Reopen hits the cache, no second query.
	updated, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	s = updated.(*HistoryScreen)
	if !s.expanded[0] {
		t.Fatal("row not expanded after third enter")
	}
	if cmd != nil {
		t.Error("cached reopen should not issue a cmd")
	}
	if len(events.queries) != 1 {
		t.Errorf("queries = %v, want a single query", events.queries)
	}
}
