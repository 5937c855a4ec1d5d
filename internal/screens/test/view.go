package test

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studiz/internal/selftest"
	"github.com/abhisek/studiz/internal/ui/theme"
)

func (t *TestScreen) View(width, height int) string {
	if t.showConfirm {
		return renderQuitConfirm(width, height)
	}
	if t.session.SubmissionPending {
		return t.renderSubmitting(width, height)
	}
	if t.session.Current() == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Loading question...")
	}
	return t.renderQuestion(width, height)
}

// renderQuestion renders the active question with its answer area.
func (t *TestScreen) renderQuestion(width, height int) string {
	q := t.session.Current()
	rec := t.session.Record(q.ID)

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s", q.Concept))

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d  %s",
			t.session.Index+1,
			len(t.session.Questions),
			confidenceDots(rec),
		))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 1))))
	b.WriteString("\n\n")

	promptStyle := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true)
	b.WriteString(promptStyle.Render(q.Prompt))
	b.WriteString("\n\n")

	if choices := choicesOf(q); len(choices) > 0 {
		b.WriteString(t.renderChoices(width, choices))
	} else {
		answerLine := lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Render("Answer: " + t.input.View())
		b.WriteString(answerLine)
	}

	if q.RequiresVocal && t.session.Config.VocalExplanations {
		b.WriteString("\n\n")
		b.WriteString(t.renderTranscript(width))
	}

	if t.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("⚠ " + t.errMsg))
	}

	return b.String()
}

// renderChoices renders the selectable options with the cursor on the
// recorded answer.
func (t *TestScreen) renderChoices(width int, choices []string) string {
	var b strings.Builder
	for i, choice := range choices {
		prefix := "  "
		if i == t.choiceIdx {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%d) %s", prefix, i+1, choice)

		if i == t.choiceIdx {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(line))
		}
		b.WriteString("\n")
	}

	selectLine := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("\nSelect (1-%d) or use arrows, Enter to continue", len(choices)))
	b.WriteString(selectLine)

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

// renderTranscript shows the accumulating spoken explanation under the
// answer area.
func (t *TestScreen) renderTranscript(width int) string {
	var b strings.Builder

	label := "Spoken explanation"
	if t.listening {
		label += "  " + lipgloss.NewStyle().Foreground(theme.Success).Render("● listening")
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render(label))
	b.WriteString("\n")

	transcript := t.session.Transcript()
	if transcript == "" {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("Say your reasoning out loud; it is transcribed here."))
	} else {
		b.WriteString(lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Foreground(theme.Text).
			Render(transcript))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

// renderSubmitting covers the window between submission and result.
func (t *TestScreen) renderSubmitting(width, height int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Scoring your answers..."))
	if t.session.TimedOut {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Time is up. Unanswered questions count as incorrect."))
	}
	if t.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("⚠ " + t.errMsg))
	}
	return b.String()
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width, height int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("End this test?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Your answers will be discarded."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] Yes, end test"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))

	return b.String()
}

// confidenceDots renders the 1-5 self-rating as filled dots.
func confidenceDots(rec *selftest.AttemptRecord) string {
	c := 0
	if rec != nil {
		c = rec.Confidence
	}
	if c < 0 {
		c = 0
	}
	if c > 5 {
		c = 5
	}
	return "conf " + strings.Repeat("●", c) + strings.Repeat("○", 5-c)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
