package practice

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/abhisek/studiz/internal/grading"
	"github.com/abhisek/studiz/internal/quizgen"
	"github.com/abhisek/studiz/internal/screen"
	"github.com/abhisek/studiz/internal/selftest"
	"github.com/abhisek/studiz/internal/store"
	"github.com/abhisek/studiz/internal/ui/components"
	"github.com/abhisek/studiz/internal/ui/layout"
)

// batchSize is how many questions one practice batch requests.
const batchSize = 5

// weakMinAttempts matches the setup screen's weak-concept floor.
const weakMinAttempts = 3

// PracticeScreen is the drop-in single-question loop: questions arrive
// in small batches, every submission is graded immediately, and feedback
// escalates across attempts on the same question. Unlike a self-test
// there is nothing to submit at the end; esc leaves at any point.
type PracticeScreen struct {
	generator quizgen.Generator
	evaluator grading.Evaluator
	events    store.EventRepo
	snapshots store.SnapshotRepo
	content   store.ContentRepo

	flow      *selftest.Practice
	sessionID string
	queue     []quizgen.Question
	done      int
	correct   int

	input     components.TextInput
	choiceIdx int
	loading   bool
	feedback  *grading.AnswerFeedback
	errMsg    string
	emptyMsg  string
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)

// New creates a new PracticeScreen. The first batch targets weak
// concepts when history has any, otherwise the content store's topics.
func New(generator quizgen.Generator, evaluator grading.Evaluator, events store.EventRepo, snapshots store.SnapshotRepo, content store.ContentRepo) *PracticeScreen {
	return &PracticeScreen{
		generator: generator,
		evaluator: evaluator,
		events:    events,
		snapshots: snapshots,
		content:   content,
		flow:      selftest.NewPractice(selftest.SystemClock{}),
		sessionID: uuid.NewString(),
	}
}

func (p *PracticeScreen) Init() tea.Cmd {
	p.loading = true
	return p.loadBatch()
}

func (p *PracticeScreen) Title() string {
	return "Practice"
}

func (p *PracticeScreen) KeyHints() []layout.KeyHint {
	if p.feedback != nil {
		return []layout.KeyHint{
			{Key: "Any key", Description: "Continue"},
			{Key: "Esc", Description: "Home"},
		}
	}
	hints := []layout.KeyHint{}
	if q := p.flow.Question; q != nil && len(choicesOf(q)) > 0 {
		hints = append(hints, layout.KeyHint{Key: "1-4", Description: "Select"})
	}
	hints = append(hints,
		layout.KeyHint{Key: "Enter", Description: "Submit"},
		layout.KeyHint{Key: "Esc", Description: "Home"},
	)
	return hints
}

func (p *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case batchReadyMsg:
		return p.handleBatchReady(msg)

	case feedbackMsg:
		return p.handleFeedback(msg)

	case tea.KeyMsg:
		return p.handleKey(msg)
	}

	if p.openTypeActive() {
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p *PracticeScreen) handleBatchReady(msg batchReadyMsg) (screen.Screen, tea.Cmd) {
	p.loading = false
	if msg.err != nil {
		p.errMsg = "Generation failed: " + msg.err.Error()
		return p, nil
	}
	if len(msg.questions) == 0 {
		p.emptyMsg = "Import study material or take a self-test first."
		return p, nil
	}
	// A fresh set clears the attempt tracker.
	p.flow.Reset()
	p.queue = msg.questions
	p.nextQuestion()
	return p, p.focusCmd()
}

func (p *PracticeScreen) handleFeedback(msg feedbackMsg) (screen.Screen, tea.Cmd) {
	if msg.err != nil {
		if p.flow.FailSubmit(msg.gen) {
			p.errMsg = "Grading failed: " + msg.err.Error() + " — press Enter to retry"
		}
		return p, nil
	}
	fb := msg.feedback
	if !p.flow.ApplyFeedback(msg.gen, fb.Correct, fb.RevealAnswer) {
		return p, nil
	}
	p.feedback = fb
	p.errMsg = ""
	return p, nil
}

func (p *PracticeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Esc always leaves; the app pops back to home.
	if key == "esc" {
		return p, nil
	}

	if p.flow.Pending || p.loading {
		return p, nil
	}

	if p.feedback != nil {
		return p.dismissFeedback()
	}

	q := p.flow.Question
	if q == nil {
		return p, nil
	}

	if key == "enter" {
		return p.submit()
	}

	if choices := choicesOf(q); len(choices) > 0 {
		switch key {
		case "1", "2", "3", "4":
			if i := int(key[0] - '1'); i < len(choices) {
				p.choiceIdx = i
			}
		case "up", "k":
			if p.choiceIdx > 0 {
				p.choiceIdx--
			}
		case "down", "j":
			if p.choiceIdx < len(choices)-1 {
				p.choiceIdx++
			}
		}
		return p, nil
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

// dismissFeedback moves on after the overlay: to the next question when
// the flow allows it, back to the same question for another try when it
// does not.
func (p *PracticeScreen) dismissFeedback() (screen.Screen, tea.Cmd) {
	p.feedback = nil
	if !p.flow.CanAdvance() {
		// Same question, fresh input.
		p.syncInput()
		return p, p.focusCmd()
	}
	p.done++
	if p.flow.Correct {
		p.correct++
	}
	if len(p.queue) == 0 {
		p.loading = true
		return p, p.loadBatch()
	}
	p.nextQuestion()
	return p, p.focusCmd()
}

// submit grades the current answer. The attempt is counted before the
// request goes out.
func (p *PracticeScreen) submit() (screen.Screen, tea.Cmd) {
	q := p.flow.Question
	answer := p.currentAnswer(q)
	if strings.TrimSpace(answer) == "" {
		p.errMsg = "Answer this question first"
		return p, nil
	}

	attempt, gen, ok := p.flow.Submit()
	if !ok {
		return p, nil
	}
	p.errMsg = ""

	evaluator := p.evaluator
	req := grading.AnswerRequest{
		Question:   *q,
		Answer:     answer,
		Transcript: p.flow.Transcript(),
		Attempt:    attempt,
	}
	journal := p.journalAttempt(q, answer, attempt)
	return p, func() tea.Msg {
		fb, err := evaluator.GradeAnswer(context.Background(), req)
		if err != nil {
			return feedbackMsg{gen: gen, err: err}
		}
		journal(fb)
		return feedbackMsg{gen: gen, feedback: fb}
	}
}

// journalAttempt captures everything the append needs on the event loop
// and returns the writer the grading goroutine calls once the outcome
// is known.
func (p *PracticeScreen) journalAttempt(q *quizgen.Question, answer string, attempt int) func(*grading.AnswerFeedback) {
	events := p.events
	snapshots := p.snapshots
	sessionID := p.sessionID
	timeMs := p.flow.ElapsedMs()
	question := *q

	return func(fb *grading.AnswerFeedback) {
		ctx := context.Background()
		if events != nil {
			_ = events.AppendAttemptEvent(ctx, store.AttemptEventData{
				SessionID:     sessionID,
				QuestionID:    question.ID,
				Concept:       question.Concept,
				QuestionText:  question.Prompt,
				CorrectAnswer: question.Answer,
				LearnerAnswer: answer,
				Correct:       fb.Correct,
				TimeMs:        timeMs,
				Attempt:       attempt,
				QuestionType:  string(question.Type),
				Practice:      true,
			})
			_ = events.AppendFeedbackEvent(ctx, store.FeedbackEventData{
				SessionID:  sessionID,
				QuestionID: question.ID,
				Concept:    question.Concept,
				Tier:       string(fb.Tier),
				Attempt:    attempt,
				Reveal:     fb.RevealAnswer,
				Message:    fb.Feedback,
			})
		}
		if snapshots != nil {
			nudgeSnapshot(ctx, snapshots, question.Concept, fb.Correct)
		}
	}
}

// nudgeSnapshot folds one graded submission into the latest mastery
// snapshot, keeping Score the lifetime accuracy.
func nudgeSnapshot(ctx context.Context, snapshots store.SnapshotRepo, concept string, correct bool) {
	if concept == "" {
		return
	}
	snap, err := snapshots.Latest(ctx)
	if err != nil {
		return
	}
	data := store.SnapshotData{
		Version:  1,
		Concepts: make(map[string]store.ConceptMasteryData),
	}
	if snap != nil {
		data.Version = snap.Data.Version
		for c, cm := range snap.Data.Concepts {
			data.Concepts[c] = cm
		}
	}
	cm := data.Concepts[concept]
	cm.Attempts++
	if correct {
		cm.Correct++
	}
	cm.Score = float64(cm.Correct) / float64(cm.Attempts)
	data.Concepts[concept] = cm
	_ = snapshots.Save(ctx, &store.Snapshot{Timestamp: time.Now(), Data: data})
	_ = snapshots.Prune(ctx, 20)
}

// loadBatch generates the next practice batch: weak concepts when
// history has any, content-store topics otherwise. An empty result
// means there is nothing to practice from yet.
func (p *PracticeScreen) loadBatch() tea.Cmd {
	generator := p.generator
	events := p.events
	content := p.content
	return func() tea.Msg {
		ctx := context.Background()

		var weak []string
		if events != nil {
			weak, _ = events.WeakConcepts(ctx, selftest.MasteryThreshold, weakMinAttempts)
		}

		req := quizgen.SetRequest{
			Difficulty: string(selftest.DifficultyMixed),
			Count:      batchSize,
		}
		switch {
		case len(weak) > 0:
			req.Mode = string(selftest.ModeWeakAreas)
			req.WeakConcepts = weak
		case content != nil:
			topics, _ := content.Topics(ctx)
			if len(topics) == 0 {
				return batchReadyMsg{}
			}
			req.Mode = string(selftest.ModeComprehensive)
			req.Topics = topics
		default:
			return batchReadyMsg{}
		}
		if events != nil {
			req.AvoidPrompts, _ = events.RecentPrompts(ctx, 12)
		}

		var lastErr error
		for attempt := 0; attempt < 3; attempt++ {
			questions, err := generator.GenerateSet(ctx, req)
			if err == nil {
				return batchReadyMsg{questions: questions}
			}
			lastErr = err
			var verr *quizgen.ValidationError
			if errors.As(err, &verr) && !verr.Retryable {
				break
			}
		}
		return batchReadyMsg{err: lastErr}
	}
}

// nextQuestion pops the queue head into the flow.
func (p *PracticeScreen) nextQuestion() {
	q := p.queue[0]
	p.queue = p.queue[1:]
	p.flow.SetQuestion(&q)
	p.syncInput()
}

func (p *PracticeScreen) syncInput() {
	p.choiceIdx = 0
	if q := p.flow.Question; q != nil && len(choicesOf(q)) == 0 {
		p.input = components.NewTextInput("Type your answer...", false, 60)
	}
	p.errMsg = ""
}

func (p *PracticeScreen) focusCmd() tea.Cmd {
	if p.openTypeActive() {
		return p.input.Init()
	}
	return nil
}

func (p *PracticeScreen) openTypeActive() bool {
	q := p.flow.Question
	return q != nil && len(choicesOf(q)) == 0 && p.feedback == nil && !p.flow.Pending && !p.loading
}

func (p *PracticeScreen) currentAnswer(q *quizgen.Question) string {
	if choices := choicesOf(q); len(choices) > 0 {
		if p.choiceIdx < len(choices) {
			return choices[p.choiceIdx]
		}
		return ""
	}
	return strings.TrimSpace(p.input.Value())
}

// choicesOf returns the selectable options for choice-style questions,
// nil for free-text types.
func choicesOf(q *quizgen.Question) []string {
	switch q.Type {
	case quizgen.TypeMultipleChoice:
		return q.Choices
	case quizgen.TypeApproachSelection:
		return q.Approaches
	case quizgen.TypeTrueFalse:
		return []string{"True", "False"}
	}
	return nil
}
