package setup

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studiz/internal/grading"
	"github.com/abhisek/studiz/internal/quizgen"
	"github.com/abhisek/studiz/internal/router"
	"github.com/abhisek/studiz/internal/screen"
	testscreen "github.com/abhisek/studiz/internal/screens/test"
	"github.com/abhisek/studiz/internal/selftest"
	"github.com/abhisek/studiz/internal/speech"
	"github.com/abhisek/studiz/internal/store"
	"github.com/abhisek/studiz/internal/ui/components"
	"github.com/abhisek/studiz/internal/ui/layout"
)

// Form rows, top to bottom.
const (
	rowTopics = iota
	rowMode
	rowDifficulty
	rowCount
	rowLimit
	rowVocal
	rowFocus
	rowStart
)

// editTarget says which free-text field the input box feeds.
type editTarget int

const (
	editNone editTarget = iota
	editTopic
	editFocus
)

var (
	modes        = []selftest.Mode{selftest.ModeComprehensive, selftest.ModeWeakAreas, selftest.ModeCustom}
	difficulties = []selftest.Difficulty{selftest.DifficultyEasy, selftest.DifficultyMixed, selftest.DifficultyHard}

	// timeLimits are the selectable whole-test limits in minutes; 0 = none.
	timeLimits = []int{0, 5, 10, 15, 30}
)

// weakMinAttempts is how many recorded attempts a concept needs before
// it can count as weak; below that the accuracy figure is noise.
const weakMinAttempts = 3

// maxAvoidPrompts caps how many recently served prompts are sent to
// generation for repeat avoidance.
const maxAvoidPrompts = 12

// SetupScreen assembles a test configuration and launches question
// generation. On success it hands the running session to the test
// screen; every failure keeps the form editable.
type SetupScreen struct {
	generator   quizgen.Generator
	evaluator   grading.Evaluator
	transcriber speech.Transcriber
	events      store.EventRepo
	snapshots   store.SnapshotRepo
	content     store.ContentRepo

	session *selftest.Session

	topics      []string
	checked     map[int]bool
	topicCursor int
	weak        []string

	row      int
	modeIdx  int
	diffIdx  int
	countIdx int
	limitIdx int
	vocal    bool
	focus    string

	editing editTarget
	input   components.TextInput

	errMsg     string
	spinnerDot int
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)
var _ screen.EscHandler = (*SetupScreen)(nil)

// New creates a new SetupScreen with the default configuration.
func New(generator quizgen.Generator, evaluator grading.Evaluator, transcriber speech.Transcriber, events store.EventRepo, snapshots store.SnapshotRepo, content store.ContentRepo) *SetupScreen {
	return &SetupScreen{
		generator:   generator,
		evaluator:   evaluator,
		transcriber: transcriber,
		events:      events,
		snapshots:   snapshots,
		content:     content,
		session:     selftest.NewSession(selftest.SystemClock{}),
		checked:     make(map[int]bool),
		modeIdx:     0, // comprehensive
		diffIdx:     1, // mixed
		countIdx:    1, // 10 questions
	}
}

func (s *SetupScreen) Init() tea.Cmd {
	events := s.events
	content := s.content
	return func() tea.Msg {
		ctx := context.Background()
		var msg topicsLoadedMsg
		if content != nil {
			msg.topics, _ = content.Topics(ctx)
		}
		if events != nil {
			msg.weak, _ = events.WeakConcepts(ctx, selftest.MasteryThreshold, weakMinAttempts)
		}
		return msg
	}
}

func (s *SetupScreen) Title() string {
	return "New Self-Test"
}

// HandlesEsc keeps esc on this screen while the text input is open so
// it cancels the entry instead of popping back home.
func (s *SetupScreen) HandlesEsc() bool {
	return s.editing != editNone
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	if s.editing != editNone {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	if s.row == rowTopics {
		return []layout.KeyHint{
			{Key: "←→", Description: "Topic"},
			{Key: "Space", Description: "Toggle"},
			{Key: "A", Description: "Add"},
			{Key: "↑↓", Description: "Field"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Field"},
		{Key: "←→", Description: "Change"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case topicsLoadedMsg:
		s.topics = msg.topics
		s.weak = msg.weak
		return s, nil

	case spinnerTickMsg:
		if !s.session.GenerationPending {
			return s, nil
		}
		s.spinnerDot++
		return s, spinnerTick()

	case questionsReadyMsg:
		return s.handleQuestionsReady(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.editing != editNone {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SetupScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.editing != editNone {
		switch msg.String() {
		case "enter":
			s.commitInput()
			return s, nil
		case "esc":
			s.editing = editNone
			return s, nil
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	switch msg.String() {
	case "up", "k":
		if s.row > 0 {
			s.row--
		}
	case "down", "j":
		if s.row < rowStart {
			s.row++
		}
	case "left", "h":
		s.cycle(-1)
	case "right", "l":
		s.cycle(1)
	case " ", "space":
		s.toggle()
	case "a":
		if s.row == rowTopics {
			s.openInput(editTopic, "Type a topic name")
			return s, s.input.Init()
		}
	case "enter":
		switch s.row {
		case rowStart:
			return s.startGeneration()
		case rowFocus:
			s.openInput(editFocus, "Focus areas, comma separated")
			return s, s.input.Init()
		case rowVocal:
			s.toggleVocal()
		default:
			s.row++
		}
	}
	return s, nil
}

// cycle moves the focused row's value left or right through its set.
func (s *SetupScreen) cycle(dir int) {
	switch s.row {
	case rowTopics:
		if len(s.topics) == 0 {
			return
		}
		s.topicCursor = (s.topicCursor + dir + len(s.topics)) % len(s.topics)
	case rowMode:
		s.modeIdx = (s.modeIdx + dir + len(modes)) % len(modes)
	case rowDifficulty:
		s.diffIdx = (s.diffIdx + dir + len(difficulties)) % len(difficulties)
	case rowCount:
		s.countIdx = (s.countIdx + dir + len(selftest.QuestionCounts)) % len(selftest.QuestionCounts)
	case rowLimit:
		s.limitIdx = (s.limitIdx + dir + len(timeLimits)) % len(timeLimits)
	case rowVocal:
		s.toggleVocal()
	}
}

// toggle flips the focused topic, or the vocal switch.
func (s *SetupScreen) toggle() {
	switch s.row {
	case rowTopics:
		if s.topicCursor < len(s.topics) {
			s.checked[s.topicCursor] = !s.checked[s.topicCursor]
		}
	case rowVocal:
		s.toggleVocal()
	}
}

// toggleVocal flips the spoken-explanation requirement. Without a
// transcriber the requirement would block every vocal question, so it
// stays off.
func (s *SetupScreen) toggleVocal() {
	if s.transcriber == nil {
		s.errMsg = "Voice capture is unavailable; spoken explanations stay off"
		return
	}
	s.vocal = !s.vocal
	s.errMsg = ""
}

func (s *SetupScreen) openInput(target editTarget, placeholder string) {
	s.editing = target
	s.input = components.NewTextInput(placeholder, false, 48)
	if target == editFocus {
		s.input.Model.SetValue(s.focus)
	}
}

func (s *SetupScreen) commitInput() {
	value := strings.TrimSpace(s.input.Value())
	switch s.editing {
	case editTopic:
		if value != "" && !containsFold(s.topics, value) {
			s.topics = append(s.topics, value)
			s.checked[len(s.topics)-1] = true
			s.topicCursor = len(s.topics) - 1
		}
	case editFocus:
		s.focus = value
	}
	s.editing = editNone
}

// buildConfig assembles the test configuration from the form state.
func (s *SetupScreen) buildConfig() selftest.Config {
	var topics []string
	for i, t := range s.topics {
		if s.checked[i] {
			topics = append(topics, t)
		}
	}
	return selftest.Config{
		Topics:            topics,
		Difficulty:        difficulties[s.diffIdx],
		QuestionCount:     selftest.QuestionCounts[s.countIdx],
		TimeLimitMinutes:  timeLimits[s.limitIdx],
		VocalExplanations: s.vocal,
		FocusAreas:        splitComma(s.focus),
		Mode:              modes[s.modeIdx],
	}
}

// startGeneration validates the configuration through the machine and,
// when accepted, launches the background generation request.
func (s *SetupScreen) startGeneration() (screen.Screen, tea.Cmd) {
	cfg := s.buildConfig()
	gen, err := s.session.StartGeneration(cfg)
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.errMsg = ""
	return s, tea.Batch(s.generateSet(gen, cfg), spinnerTick())
}

// generateSet requests a question set in the background. Retries up to
// three times; a non-retryable validation error stops immediately.
func (s *SetupScreen) generateSet(gen uint64, cfg selftest.Config) tea.Cmd {
	generator := s.generator
	events := s.events
	content := s.content
	return func() tea.Msg {
		ctx := context.Background()

		req := quizgen.SetRequest{
			Topics:            cfg.Topics,
			Difficulty:        string(cfg.Difficulty),
			Count:             cfg.QuestionCount,
			Mode:              string(cfg.Mode),
			FocusAreas:        cfg.FocusAreas,
			VocalExplanations: cfg.VocalExplanations,
		}
		if events != nil {
			req.AvoidPrompts, _ = events.RecentPrompts(ctx, maxAvoidPrompts)
			req.WeakConcepts, _ = events.WeakConcepts(ctx, selftest.MasteryThreshold, weakMinAttempts)
		}
		if content != nil {
			req.Documents = loadDocuments(ctx, content, cfg.Topics)
		}

		var lastErr error
		for attempt := 0; attempt < 3; attempt++ {
			questions, err := generator.GenerateSet(ctx, req)
			if err == nil {
				return questionsReadyMsg{gen: gen, questions: questions}
			}
			lastErr = err
			var verr *quizgen.ValidationError
			if errors.As(err, &verr) && !verr.Retryable {
				break
			}
		}
		return questionsReadyMsg{gen: gen, err: lastErr}
	}
}

func (s *SetupScreen) handleQuestionsReady(msg questionsReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.err != nil {
		if s.session.FailGeneration(msg.gen) {
			s.errMsg = "Generation failed: " + msg.err.Error()
		}
		return s, nil
	}
	if !s.session.Begin(msg.gen, msg.questions) {
		return s, nil
	}

	next := testscreen.New(s.session, s.evaluator, s.transcriber, s.events, s.snapshots, s.retake)
	return s, tea.Batch(s.recordStart(), func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	})
}

// retake builds a fresh setup screen with the same wiring; the results
// screen uses it for the take-another-test action.
func (s *SetupScreen) retake() screen.Screen {
	return New(s.generator, s.evaluator, s.transcriber, s.events, s.snapshots, s.content)
}

// recordStart journals the test start event.
func (s *SetupScreen) recordStart() tea.Cmd {
	events := s.events
	if events == nil {
		return nil
	}
	data := store.TestEventData{
		SessionID:     s.session.SessionID,
		Action:        "start",
		Mode:          string(s.session.Config.Mode),
		Topics:        s.session.Config.Topics,
		QuestionCount: len(s.session.Questions),
	}
	return func() tea.Msg {
		_ = events.AppendTestEvent(context.Background(), data)
		return nil
	}
}

// loadDocuments pulls content-store material for the selected topics.
// Excerpt clipping happens inside the generator.
func loadDocuments(ctx context.Context, content store.ContentRepo, topics []string) []quizgen.DocumentContext {
	const maxDocs = 4
	var out []quizgen.DocumentContext
	for _, topic := range topics {
		docs, err := content.DocumentsByTopic(ctx, topic)
		if err != nil {
			continue
		}
		for _, doc := range docs {
			if len(out) >= maxDocs {
				return out
			}
			out = append(out, quizgen.DocumentContext{
				DocID:   doc.DocID,
				Title:   doc.Title,
				Excerpt: doc.Content,
			})
		}
	}
	return out
}

func spinnerTick() tea.Cmd {
	return tea.Tick(300*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func splitComma(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func containsFold(items []string, v string) bool {
	for _, item := range items {
		if strings.EqualFold(item, v) {
			return true
		}
	}
	return false
}
