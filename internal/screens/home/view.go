package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studiz/internal/ui/components"
	"github.com/abhisek/studiz/internal/ui/theme"
)

// Block-letter title (same art as welcome/banner.go).
const titleFull = ` ███████╗████████╗██╗   ██╗██████╗ ██╗███████╗
 ██╔════╝╚══██╔══╝██║   ██║██╔══██╗██║╚══███╔╝
 ███████╗   ██║   ██║   ██║██║  ██║██║  ███╔╝
 ╚════██║   ██║   ██║   ██║██║  ██║██║ ███╔╝
 ███████║   ██║   ╚██████╔╝██████╔╝██║███████╗
 ╚══════╝   ╚═╝    ╚═════╝ ╚═════╝ ╚═╝╚══════╝`

const titleCompact = "S · T · U · D · I · Z"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if compact {
		return lipgloss.NewStyle().
			Width(cw).
			Align(lipgloss.Center).
			Render(style.Render(titleCompact))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(titleFull))
}

// renderStatsBar renders the dashboard stats in a bordered box matching
// content width.
func renderStatsBar(tracked, weak int, readiness string, cw int, compact bool) string {
	trackedStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	weakStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	readyStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var stats string
	if tracked == 0 && readiness == "" {
		stats = dimStyle.Render("No study history yet — take your first self-test")
	} else if compact {
		stats = fmt.Sprintf("%s %s %s",
			trackedStyle.Render(fmt.Sprintf("★%d", tracked)),
			weakText(weak, true, weakStyle, dimStyle),
			readyText(readiness, true, readyStyle, dimStyle),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			trackedStyle.Render(fmt.Sprintf("★ %d CONCEPTS", tracked)),
			weakText(weak, false, weakStyle, dimStyle),
			readyText(readiness, false, readyStyle, dimStyle),
		)
	}

	// Wrap in a double-border box at the same content width
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

func weakText(weak int, compact bool, active, dim lipgloss.Style) string {
	if weak == 0 {
		if compact {
			return dim.Render("⚠0")
		}
		return dim.Render("⚠ NONE WEAK")
	}
	if compact {
		return active.Render(fmt.Sprintf("⚠%d", weak))
	}
	return active.Render(fmt.Sprintf("⚠ %d WEAK", weak))
}

func readyText(readiness string, compact bool, active, dim lipgloss.Style) string {
	if readiness == "" {
		if compact {
			return dim.Render("—")
		}
		return dim.Render("NO TESTS YET")
	}
	if compact {
		return active.Render(strings.ToUpper(readiness))
	}
	return active.Render("LAST: " + strings.ToUpper(readiness))
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 24

// renderMenuButtons renders each menu item as a fixed-width button.
func renderMenuButtons(labels []string, selected int, disabled map[int]bool, cw int) string {
	disabledBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	var buttons []string
	for i, label := range labels {
		if disabled[i] {
			buttons = append(buttons, disabledBtn.Render(label))
		} else {
			buttons = append(buttons, components.SelectButton(label, i == selected, buttonWidth))
		}
	}
	block := strings.Join(buttons, "\n")

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

// renderMenuCompact renders menu items as simple text lines (no borders)
// for very small terminals where bordered buttons would overflow.
func renderMenuCompact(labels []string, selected int, disabled map[int]bool, cw int) string {
	var lines []string
	for i, label := range labels {
		var line string
		if disabled[i] {
			line = lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Render("   " + label)
		} else if i == selected {
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Primary).
				Bold(true).
				Render(" ▸ " + label + " ")
		} else {
			line = lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   " + label)
		}
		lines = append(lines, line)
	}
	block := strings.Join(lines, "\n")

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

// renderKeyBanner renders a warning banner when no LLM API key is
// configured.
func renderKeyBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ Set an LLM API key to unlock testing (see studiz --help)")
}
