package setup

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studiz/internal/selftest"
	"github.com/abhisek/studiz/internal/ui/components"
	"github.com/abhisek/studiz/internal/ui/theme"
)

func (s *SetupScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	valueWidth := cw - 16
	if valueWidth < 10 {
		valueWidth = 10
	}

	var rows []string
	rows = append(rows, s.renderRow(rowTopics, "Topics", s.topicsValue(valueWidth)))
	if modes[s.modeIdx] == selftest.ModeWeakAreas {
		rows = append(rows, s.renderWeakHint(valueWidth))
	}
	rows = append(rows, s.renderRow(rowMode, "Mode", cycleValue(string(modes[s.modeIdx]))))
	rows = append(rows, s.renderRow(rowDifficulty, "Difficulty", cycleValue(string(difficulties[s.diffIdx]))))
	rows = append(rows, s.renderRow(rowCount, "Questions", cycleValue(fmt.Sprintf("%d", selftest.QuestionCounts[s.countIdx]))))
	rows = append(rows, s.renderRow(rowLimit, "Time limit", cycleValue(limitLabel(timeLimits[s.limitIdx]))))
	rows = append(rows, s.renderRow(rowVocal, "Vocal", s.vocalValue()))
	rows = append(rows, s.renderRow(rowFocus, "Focus", s.focusValue(valueWidth)))

	form := strings.Join(rows, "\n")

	var b strings.Builder
	b.WriteString(form)
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(cw, lipgloss.Center, s.renderStart()))

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(cw).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("⚠ " + s.errMsg))
	} else if s.session.GenerationPending {
		dots := strings.Repeat(".", s.spinnerDot%4)
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(cw).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Generating questions" + dots))
	}

	block := lipgloss.NewStyle().Width(cw).Render(b.String())
	return "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}

// renderRow renders one form row: focus marker, padded label, value.
func (s *SetupScreen) renderRow(row int, label, value string) string {
	if s.row == row {
		marker := lipgloss.NewStyle().Foreground(theme.Primary).Render("▸ ")
		styled := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
			Render(fmt.Sprintf("%-12s", label))
		return marker + styled + value
	}
	styled := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("%-12s", label))
	return "  " + styled + value
}

func (s *SetupScreen) topicsValue(valueWidth int) string {
	if s.editing == editTopic {
		return s.input.View()
	}
	if len(s.topics) == 0 {
		return lipgloss.NewStyle().Foreground(theme.TextDim).
			Render("none yet — press A to add one")
	}

	chips := make([]string, len(s.topics))
	for i, topic := range s.topics {
		box := "[ ] "
		if s.checked[i] {
			box = "[x] "
		}
		chip := box + topic
		switch {
		case s.row == rowTopics && i == s.topicCursor:
			chips[i] = theme.Selected.Render(chip)
		case s.checked[i]:
			chips[i] = lipgloss.NewStyle().Foreground(theme.Text).Render(chip)
		default:
			chips[i] = lipgloss.NewStyle().Foreground(theme.TextDim).Render(chip)
		}
	}
	return lipgloss.NewStyle().Width(valueWidth).
		Render(strings.Join(chips, "  "))
}

// renderWeakHint shows what weak-areas mode will target, under the mode
// row.
func (s *SetupScreen) renderWeakHint(valueWidth int) string {
	hint := "builds the set from your weakest concepts"
	if len(s.weak) > 0 {
		hint = "targets: " + strings.Join(s.weak, ", ")
	}
	return "  " + strings.Repeat(" ", 12) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Width(valueWidth).Italic(true).Render(hint)
}

func (s *SetupScreen) vocalValue() string {
	box := "[ ]"
	if s.vocal {
		box = "[x]"
	}
	return lipgloss.NewStyle().Foreground(theme.Text).
		Render(box + " spoken explanations required")
}

func (s *SetupScreen) focusValue(valueWidth int) string {
	if s.editing == editFocus {
		return s.input.View()
	}
	if s.focus == "" {
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("(none)")
	}
	return lipgloss.NewStyle().Foreground(theme.Text).Width(valueWidth).Render(s.focus)
}

func (s *SetupScreen) renderStart() string {
	if s.session.GenerationPending {
		return lipgloss.NewStyle().
			Width(24).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1).
			Render("GENERATING")
	}
	return components.SelectButton("START TEST", s.row == rowStart, 24)
}

func limitLabel(minutes int) string {
	if minutes == 0 {
		return "no limit"
	}
	return fmt.Sprintf("%d min", minutes)
}

func cycleValue(v string) string {
	arrow := lipgloss.NewStyle().Foreground(theme.TextDim)
	return arrow.Render("◂ ") +
		lipgloss.NewStyle().Foreground(theme.Text).Render(v) +
		arrow.Render(" ▸")
}
