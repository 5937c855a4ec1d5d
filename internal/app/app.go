package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studiz/internal/grading"
	"github.com/abhisek/studiz/internal/quizgen"
	"github.com/abhisek/studiz/internal/router"
	"github.com/abhisek/studiz/internal/screen"
	"github.com/abhisek/studiz/internal/screens/home"
	"github.com/abhisek/studiz/internal/screens/practice"
	"github.com/abhisek/studiz/internal/screens/welcome"
	"github.com/abhisek/studiz/internal/speech"
	"github.com/abhisek/studiz/internal/store"
	"github.com/abhisek/studiz/internal/ui/layout"
)

// Options carries the wired services the screens depend on. Fields may
// be nil; the home screen disables or stubs out what cannot run.
type Options struct {
	Events      store.EventRepo
	Snapshots   store.SnapshotRepo
	Content     store.ContentRepo
	Generator   quizgen.Generator
	Evaluator   grading.Evaluator
	Transcriber speech.Transcriber

	// StartInPractice boots straight into a practice run, skipping the
	// splash. Ignored when no generator is wired.
	StartInPractice bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	initCmd tea.Cmd
	width   int
	height  int
}

// newAppModel creates a new AppModel showing the welcome splash, which
// hands off to the home screen.
func newAppModel(opts Options) AppModel {
	deps := home.Deps{
		Events:      opts.Events,
		Snapshots:   opts.Snapshots,
		Content:     opts.Content,
		Generator:   opts.Generator,
		Evaluator:   opts.Evaluator,
		Transcriber: opts.Transcriber,
	}

	var m AppModel
	if opts.StartInPractice && deps.Generator != nil {
		// Home sits under practice so Esc lands somewhere sensible.
		m.router = router.New(home.New(deps))
		m.initCmd = m.router.Push(practice.New(
			deps.Generator, deps.Evaluator, deps.Events, deps.Snapshots, deps.Content))
		return m
	}

	homeFactory := func() screen.Screen { return home.New(deps) }
	m.router = router.New(welcome.New(homeFactory))
	m.initCmd = m.router.Active().Init()
	return m
}

func (m AppModel) Init() tea.Cmd {
	return m.initCmd
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscHandler); ok && h.HandlesEsc() {
				break // screen runs its own esc handling
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	status := ""
	if sp, ok := active.(screen.StatusProvider); ok {
		status = sp.HeaderStatus()
	}

	header := layout.RenderHeader(title, status, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
