package results

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studiz/internal/router"
	"github.com/abhisek/studiz/internal/screen"
	"github.com/abhisek/studiz/internal/selftest"
	"github.com/abhisek/studiz/internal/ui/components"
	"github.com/abhisek/studiz/internal/ui/layout"
	"github.com/abhisek/studiz/internal/ui/theme"
)

// ResultsScreen displays the graded outcome of a completed test.
type ResultsScreen struct {
	session *selftest.Session
	retake  func() screen.Screen
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)
var _ screen.EscHandler = (*ResultsScreen)(nil)

// New creates the screen for a session in the results phase. retake
// builds a fresh setup screen for the next test.
func New(session *selftest.Session, retake func() screen.Screen) *ResultsScreen {
	return &ResultsScreen{session: session, retake: retake}
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

// HandlesEsc keeps esc in the screen so leaving always resets the
// session machine.
func (s *ResultsScreen) HandlesEsc() bool {
	return true
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "New test"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter":
			s.session.Reset()
			if s.retake == nil {
				return s, func() tea.Msg { return router.PopScreenMsg{} }
			}
			next := s.retake()
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		case "esc":
			s.session.Reset()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *ResultsScreen) View(width, height int) string {
	res := s.session.Result
	if res == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Test complete!"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(readinessColor(res.Readiness)).
		Bold(true).
		Render("Readiness: " + res.Readiness))
	b.WriteString("\n\n")

	secs := res.TotalTimeMs / 1000
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Duration: %d:%02d", secs/60, secs%60)))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Questions: %d        Correct: %d        Score: %.0f%%        Confidence: %.1f/5",
		res.Total, res.Correct, res.Score*100, res.AvgConfidence)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderMarks(res)))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))

	if len(res.WeakConcepts) > 0 {
		b.WriteString(sectionHeader(width, divider, "Focus next"))
		barWidth := min(width-12, 50)
		for _, wc := range res.WeakConcepts {
			bar := components.NewProgressBar(wc.Concept, wc.Score, true, barWidth)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
			b.WriteString("\n")
			if wc.Suggestion != "" {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(wc.Suggestion)))
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}

	if len(res.StrongConcepts) > 0 {
		b.WriteString(sectionHeader(width, divider, "Looking solid"))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Success).Render(strings.Join(res.StrongConcepts, ", "))))
		b.WriteString("\n\n")
	}

	if len(res.Recommendations) > 0 {
		b.WriteString(sectionHeader(width, divider, "Next steps"))
		for _, rec := range res.Recommendations {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.Text).Render("• "+rec)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// renderMarks renders the per-question correctness row: green checks,
// red crosses, in session order.
func renderMarks(res *selftest.Result) string {
	var marks []string
	for i, qs := range res.Questions {
		mark := lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		if qs.Correct {
			mark = lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		}
		marks = append(marks, fmt.Sprintf("%d%s", i+1, mark))
	}
	return strings.Join(marks, "  ")
}

func sectionHeader(width int, divider, label string) string {
	var b strings.Builder
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(label)))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")
	return b.String()
}

// readinessColor returns the theme color for a readiness band.
func readinessColor(band string) color.Color {
	switch band {
	case selftest.ReadinessExcellent:
		return theme.Success
	case selftest.ReadinessGood:
		return theme.Accent
	default:
		return theme.Error
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
