package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studiz/internal/router"
	"github.com/abhisek/studiz/internal/screen"
	"github.com/abhisek/studiz/internal/selftest"
	"github.com/abhisek/studiz/internal/store"
	"github.com/abhisek/studiz/internal/ui/layout"
	"github.com/abhisek/studiz/internal/ui/theme"
)

type historyLoadedMsg struct {
	Summaries []store.TestSummaryRecord
	Err       error
}

type attemptsLoadedMsg struct {
	SessionID string
	Attempts  []store.AttemptEventRecord
}

// HistoryScreen lists completed self-tests, newest first, with their
// graded attempts one Enter away.
type HistoryScreen struct {
	events    store.EventRepo
	summaries []store.TestSummaryRecord
	attempts  map[string][]store.AttemptEventRecord
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(events store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		events:   events,
		attempts: make(map[string][]store.AttemptEventRecord),
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	events := s.events
	return func() tea.Msg {
		summaries, err := events.QueryTestSummaries(context.Background(), store.QueryOpts{Limit: 50})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Summaries: summaries}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.summaries = msg.Summaries
		}
		s.loaded = true
		return s, nil

	case attemptsLoadedMsg:
		s.attempts[msg.SessionID] = msg.Attempts
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.summaries)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			return s, s.toggleDetails()
		}
	}
	return s, nil
}

// toggleDetails expands the selected test, loading its attempts on the
// first open.
func (s *HistoryScreen) toggleDetails() tea.Cmd {
	if s.selected >= len(s.summaries) {
		return nil
	}
	s.expanded[s.selected] = !s.expanded[s.selected]
	if !s.expanded[s.selected] {
		return nil
	}

	sessionID := s.summaries[s.selected].SessionID
	if _, ok := s.attempts[sessionID]; ok {
		return nil
	}
	events := s.events
	return func() tea.Msg {
		attempts, err := events.QueryAttempts(context.Background(), sessionID)
		if err != nil {
			return attemptsLoadedMsg{SessionID: sessionID}
		}
		return attemptsLoadedMsg{SessionID: sessionID, Attempts: attempts}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.summaries) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No tests yet. Take your first self-test!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sum := range s.summaries {
		dateStr := sum.Timestamp.Format("Jan 02, 2006")
		durationStr := fmt.Sprintf("%d:%02d", sum.DurationSecs/60, sum.DurationSecs%60)

		timeoutStr := ""
		if sum.TimedOut {
			timeoutStr = "  ⏱ timed out"
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %s  %d/%d  %.0f%%  %s%s",
			prefix, dateStr, durationStr, sum.Correct, sum.Total, sum.Score*100,
			sum.Readiness, timeoutStr)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderDetails(width, sum))
		}
	}

	return b.String()
}

// renderDetails renders the expanded attempts of one test.
func (s *HistoryScreen) renderDetails(width int, sum store.TestSummaryRecord) string {
	var b strings.Builder

	meta := fmt.Sprintf("    %s · %s", sum.Mode, strings.Join(sum.Topics, ", "))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(bandColor(sum.Readiness)).Italic(true).Render(meta)))
	b.WriteString("\n")

	attempts, ok := s.attempts[sum.SessionID]
	if !ok {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
				Render("    Loading attempts...")))
		b.WriteString("\n")
		return b.String()
	}
	if len(attempts) == 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
				Render("    No recorded attempts")))
		b.WriteString("\n")
		return b.String()
	}

	for _, a := range attempts {
		mark := lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		if a.Correct {
			mark = lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		}
		answer := a.LearnerAnswer
		if strings.TrimSpace(answer) == "" {
			answer = "(no answer)"
		}
		line := fmt.Sprintf("    %s %s — %s", mark, a.Concept, clip(answer, 40))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

// clip shortens s to at most n runes with an ellipsis.
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func bandColor(band string) color.Color {
	switch band {
	case selftest.ReadinessExcellent:
		return theme.Success
	case selftest.ReadinessGood:
		return theme.Accent
	default:
		return theme.TextDim
	}
}
