package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studiz/internal/selftest"
	"github.com/abhisek/studiz/internal/ui/theme"
)

func (p *PracticeScreen) View(width, height int) string {
	if p.emptyMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  " + p.emptyMsg)
	}
	if p.loading {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  Generating practice questions...")
	}
	if p.feedback != nil {
		return p.renderFeedback(width, height)
	}
	if p.flow.Question == nil {
		return ""
	}
	return p.renderQuestion(width, height)
}

// renderQuestion renders the active question with its answer area.
func (p *PracticeScreen) renderQuestion(width, height int) string {
	q := p.flow.Question

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s", q.Concept))

	attempt := p.flow.Tracker.Count(q.ID) + 1
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Done %d  Correct %d  Attempt %d", p.done, p.correct, attempt))

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
		b.WriteString(p.renderChoices(width, choices))
	} else {
		answerLine := lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Render("Answer: " + p.input.View())
		b.WriteString(answerLine)
	}

	if p.flow.Pending {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Checking..."))
	}

	if p.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("⚠ " + p.errMsg))
	}

	return b.String()
}

func (p *PracticeScreen) renderChoices(width int, choices []string) string {
	var b strings.Builder
	for i, choice := range choices {
		prefix := "  "
		if i == p.choiceIdx {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%d) %s", prefix, i+1, choice)

		if i == p.choiceIdx {
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
		Render(fmt.Sprintf("\nSelect (1-%d) or use arrows, Enter to submit", len(choices)))
	b.WriteString(selectLine)

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

// renderFeedback renders the graded-submission overlay. What it shows
// follows the escalation tier the evaluator graded at.
func (p *PracticeScreen) renderFeedback(width, height int) string {
	fb := p.feedback
	q := p.flow.Question

	var b strings.Builder
	b.WriteString("\n\n")

	if fb.Correct {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Bold(true).
			Render("Correct!"))
	} else {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Bold(true).
			Render("Not quite"))
		if fb.RevealAnswer && q != nil {
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.TextDim).
				Render(fmt.Sprintf("Correct answer: %s", q.Answer)))
		}
	}

	b.WriteString("\n\n")

	if fb.Feedback != "" {
		if fb.Tier == selftest.TierHint || fb.Tier == selftest.TierReveal {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(tierLabel(fb.Tier))))
			b.WriteString("\n")
		}
		msgStyle := lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Foreground(theme.Text)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, msgStyle.Render(fb.Feedback)))
		b.WriteString("\n\n")
	}

	if fb.RevealAnswer && fb.Explanation != "" {
		expStyle := lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Foreground(theme.TextDim)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, expStyle.Render(fb.Explanation)))
		b.WriteString("\n\n")
	}

	prompt := "Press any key to continue..."
	if !p.flow.CanAdvance() {
		prompt = "Press any key to try again..."
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(prompt))

	return b.String()
}

// tierLabel names a feedback tier for display.
func tierLabel(tier selftest.Tier) string {
	switch tier {
	case selftest.TierConfirm:
		return "Confirmed"
	case selftest.TierEncourage:
		return "Keep going"
	case selftest.TierHint:
		return "Hint"
	case selftest.TierReveal:
		return "Answer"
	}
	return string(tier)
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
