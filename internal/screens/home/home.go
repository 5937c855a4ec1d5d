package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studiz/internal/grading"
	"github.com/abhisek/studiz/internal/quizgen"
	"github.com/abhisek/studiz/internal/router"
	"github.com/abhisek/studiz/internal/screen"
	"github.com/abhisek/studiz/internal/screens/history"
	"github.com/abhisek/studiz/internal/screens/placeholder"
	practicescreen "github.com/abhisek/studiz/internal/screens/practice"
	"github.com/abhisek/studiz/internal/screens/setup"
	"github.com/abhisek/studiz/internal/selftest"
	"github.com/abhisek/studiz/internal/speech"
	"github.com/abhisek/studiz/internal/store"
	"github.com/abhisek/studiz/internal/ui/components"
)

// Deps bundles the wired services the home screen hands to its child
// screens. Any field may be nil: testing and practice are disabled
// without a generator, history falls back to a placeholder without a
// store.
type Deps struct {
	Events      store.EventRepo
	Snapshots   store.SnapshotRepo
	Content     store.ContentRepo
	Generator   quizgen.Generator
	Evaluator   grading.Evaluator
	Transcriber speech.Transcriber
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	menu          components.Menu
	menuLabels    []string
	disabled      map[int]bool
	llmMissing    bool
	tracked       int
	weak          int
	lastReadiness string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	// Load the latest snapshot for the stats bar.
	var snap *store.Snapshot
	if deps.Snapshots != nil {
		snap, _ = deps.Snapshots.Latest(context.Background())
	}

	var tracked, weak int
	if snap != nil {
		for _, cm := range snap.Data.Concepts {
			tracked++
			if cm.Score < selftest.MasteryThreshold {
				weak++
			}
		}
	}

	lastReadiness := ""
	if deps.Events != nil {
		sums, err := deps.Events.QueryTestSummaries(context.Background(), store.QueryOpts{Limit: 1})
		if err == nil && len(sums) > 0 {
			lastReadiness = sums[0].Readiness
		}
	}

	llmMissing := deps.Generator == nil

	menuLabels := []string{"START SELF-TEST", "PRACTICE", "HISTORY", "EXIT"}
	disabled := map[int]bool{0: llmMissing, 1: llmMissing}

	items := []components.MenuItem{
		{Label: menuLabels[0], Disabled: llmMissing, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: setup.New(deps.Generator, deps.Evaluator, deps.Transcriber, deps.Events, deps.Snapshots, deps.Content),
				}
			}
		}},
		{Label: menuLabels[1], Disabled: llmMissing, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: practicescreen.New(deps.Generator, deps.Evaluator, deps.Events, deps.Snapshots, deps.Content),
				}
			}
		}},
		{Label: menuLabels[2], Action: func() tea.Cmd {
			if deps.Events == nil {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: placeholder.New("History")}
				}
			}
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(deps.Events)}
			}
		}},
		{Label: menuLabels[3], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:          components.NewMenu(items),
		menuLabels:    menuLabels,
		disabled:      disabled,
		llmMissing:    llmMissing,
		tracked:       tracked,
		weak:          weak,
		lastReadiness: lastReadiness,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 30 || width < 100

	// All sections share a uniform content width so they line up.
	cw := components.ContentWidth(width)

	var sections []string

	sections = append(sections, renderTitle(cw, compact))

	sections = append(sections, renderStatsBar(
		h.tracked, h.weak, h.lastReadiness, cw, compact))

	if h.llmMissing {
		sections = append(sections, renderKeyBanner(cw))
	}

	if compact {
		sections = append(sections, renderMenuCompact(
			h.menuLabels, h.menu.Selected, h.disabled, cw))
	} else {
		sections = append(sections, renderMenuButtons(
			h.menuLabels, h.menu.Selected, h.disabled, cw))
	}

	content := strings.Join(sections, "\n\n")

	return components.PanelFrame(content, width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
