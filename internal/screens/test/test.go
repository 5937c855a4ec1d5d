package test

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studiz/internal/grading"
	"github.com/abhisek/studiz/internal/quizgen"
	"github.com/abhisek/studiz/internal/router"
	"github.com/abhisek/studiz/internal/screen"
	"github.com/abhisek/studiz/internal/screens/results"
	"github.com/abhisek/studiz/internal/selftest"
	"github.com/abhisek/studiz/internal/speech"
	"github.com/abhisek/studiz/internal/store"
	"github.com/abhisek/studiz/internal/ui/components"
	"github.com/abhisek/studiz/internal/ui/layout"
)

// snapshotKeep bounds how many mastery snapshots are retained.
const snapshotKeep = 20

// TestScreen drives a running test session: the question loop, the
// countdown, navigation, and the batch submission. The machine owns all
// session state; this screen translates messages into machine calls and
// renders what the machine holds.
type TestScreen struct {
	session     *selftest.Session
	evaluator   grading.Evaluator
	transcriber speech.Transcriber
	events      store.EventRepo
	snapshots   store.SnapshotRepo
	retake      func() screen.Screen

	input       components.TextInput
	choiceIdx   int
	showConfirm bool
	listening   bool
	stream      <-chan speech.Chunk
	errMsg      string
}

var _ screen.Screen = (*TestScreen)(nil)
var _ screen.KeyHintProvider = (*TestScreen)(nil)
var _ screen.StatusProvider = (*TestScreen)(nil)
var _ screen.EscHandler = (*TestScreen)(nil)

// New creates the screen for an already started session. The machine
// must be in the testing phase with its question set installed.
func New(session *selftest.Session, evaluator grading.Evaluator, transcriber speech.Transcriber, events store.EventRepo, snapshots store.SnapshotRepo, retake func() screen.Screen) *TestScreen {
	t := &TestScreen{
		session:     session,
		evaluator:   evaluator,
		transcriber: transcriber,
		events:      events,
		snapshots:   snapshots,
		retake:      retake,
	}
	t.syncFromRecord()
	return t
}

func (t *TestScreen) Init() tea.Cmd {
	return tea.Batch(tickCmd(), t.focusCmd())
}

func (t *TestScreen) Title() string {
	return "Self-Test"
}

// HeaderStatus puts the session clock in the header: time left when a
// limit is set, time spent otherwise.
func (t *TestScreen) HeaderStatus() string {
	if t.session.Phase != selftest.PhaseTesting {
		return ""
	}
	if t.session.TimeLimited() {
		return "⏱ " + clockFormat(int64(t.session.RemainingSeconds())*1000)
	}
	return clockFormat(t.session.TotalElapsedMs())
}

// HandlesEsc claims esc for the quit confirmation while the test runs.
func (t *TestScreen) HandlesEsc() bool {
	return true
}

func (t *TestScreen) KeyHints() []layout.KeyHint {
	if t.showConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "End test"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if t.session.SubmissionPending {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Quit"},
		}
	}
	hints := []layout.KeyHint{}
	if q := t.session.Current(); q != nil && len(choicesOf(q)) > 0 {
		hints = append(hints, layout.KeyHint{Key: "1-4", Description: "Select"})
	}
	hints = append(hints,
		layout.KeyHint{Key: "Enter", Description: t.nextLabel()},
		layout.KeyHint{Key: "Shift+Tab", Description: "Back"},
		layout.KeyHint{Key: "Tab", Description: "Confidence"},
		layout.KeyHint{Key: "Esc", Description: "Quit"},
	)
	return hints
}

func (t *TestScreen) nextLabel() string {
	if t.session.Index == len(t.session.Questions)-1 {
		return "Submit"
	}
	return "Next"
}

func (t *TestScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		return t.handleTimerTick()

	case transcriptChunkMsg:
		return t.handleTranscriptChunk(msg)

	case gradedMsg:
		return t.handleGraded(msg)

	case retrySubmitMsg:
		if msg.gen != t.session.Generation() || !t.session.TimedOut {
			return t, nil
		}
		return t.forceSubmit()

	case tea.KeyMsg:
		return t.handleKey(msg)
	}

	// Forward to the text input so cursor animation keeps running.
	if t.openTypeActive() {
		var cmd tea.Cmd
		t.input, cmd = t.input.Update(msg)
		return t, cmd
	}
	return t, nil
}

func (t *TestScreen) handleTimerTick() (screen.Screen, tea.Cmd) {
	switch t.session.Tick() {
	case selftest.TickExpired:
		return t.forceSubmit()
	case selftest.TickRunning:
		return t, tickCmd()
	default:
		// Countdown finished or the phase moved on; stop re-arming.
		return t, nil
	}
}

func (t *TestScreen) handleTranscriptChunk(msg transcriptChunkMsg) (screen.Screen, tea.Cmd) {
	if !msg.ok {
		t.listening = false
		return t, nil
	}
	// Chunks for a question the learner already left are dropped.
	if msg.qIdx != t.session.Index {
		return t, nil
	}
	if text := strings.TrimSpace(msg.chunk.Text); text != "" {
		t.session.AppendTranscript(text)
	}
	return t, t.pumpTranscript()
}

func (t *TestScreen) handleGraded(msg gradedMsg) (screen.Screen, tea.Cmd) {
	if msg.err != nil {
		if !t.session.FailSubmission(msg.gen, msg.sub) {
			return t, nil
		}
		if t.session.TimedOut {
			// The forced submission is never dropped: retry on a pause.
			t.errMsg = "Submission failed: " + msg.err.Error() + " — retrying"
			gen := t.session.Generation()
			return t, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
				return retrySubmitMsg{gen: gen}
			})
		}
		t.errMsg = "Submission failed: " + msg.err.Error() + " — press Enter to retry"
		return t, nil
	}

	if !t.session.ApplyResult(msg.gen, msg.sub, msg.result) {
		return t, nil
	}
	t.stopListening()

	next := results.New(t.session, t.retake)
	return t, tea.Batch(t.recordOutcome(msg.result), func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	})
}

func (t *TestScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if t.showConfirm {
		switch key {
		case "y", "Y":
			return t.quit()
		case "n", "N", "esc":
			t.showConfirm = false
		}
		return t, nil
	}

	if key == "esc" {
		t.showConfirm = true
		return t, nil
	}

	// While a submission is in flight the answers are frozen.
	if t.session.SubmissionPending {
		return t, nil
	}

	switch key {
	case "enter":
		return t.advance()
	case "shift+tab":
		t.commitAnswer()
		if t.session.Previous() {
			t.errMsg = ""
			t.syncFromRecord()
			return t, t.focusCmd()
		}
		return t, nil
	case "tab":
		t.cycleConfidence()
		return t, nil
	}

	q := t.session.Current()
	if q == nil {
		return t, nil
	}

	if choices := choicesOf(q); len(choices) > 0 {
		switch key {
		case "1", "2", "3", "4":
			t.selectChoice(int(key[0]-'1'), choices)
		case "up", "k":
			if t.choiceIdx > 0 {
				t.selectChoice(t.choiceIdx-1, choices)
			}
		case "down", "j":
			if t.choiceIdx < len(choices)-1 {
				t.selectChoice(t.choiceIdx+1, choices)
			}
		}
		return t, nil
	}

	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return t, cmd
}

// advance commits the current answer and asks the machine to move on.
// On the last question the machine asks for the batch submission
// instead.
func (t *TestScreen) advance() (screen.Screen, tea.Cmd) {
	t.commitAnswer()
	switch t.session.Next() {
	case selftest.NextAdvanced:
		t.errMsg = ""
		t.syncFromRecord()
		return t, t.focusCmd()
	case selftest.NextSubmit:
		gen, sub, ok := t.session.StartSubmission(false)
		if !ok {
			return t, nil
		}
		t.errMsg = ""
		return t, t.gradeCmd(gen, sub)
	default:
		t.errMsg = t.blockedReason()
		return t, nil
	}
}

// blockedReason explains why Next refused, mirroring the machine's
// advancement predicate.
func (t *TestScreen) blockedReason() string {
	q := t.session.Current()
	if q == nil {
		return ""
	}
	rec := t.session.Record(q.ID)
	if rec == nil || strings.TrimSpace(rec.Answer) == "" {
		return "Answer this question first"
	}
	return "This question needs a spoken explanation"
}

func (t *TestScreen) forceSubmit() (screen.Screen, tea.Cmd) {
	gen, sub, ok := t.session.StartSubmission(true)
	if !ok {
		return t, nil
	}
	return t, t.gradeCmd(gen, sub)
}

func (t *TestScreen) quit() (screen.Screen, tea.Cmd) {
	t.stopListening()
	abandonCmd := t.recordAbandon()
	t.session.Reset()
	return t, tea.Batch(abandonCmd, func() tea.Msg { return router.PopScreenMsg{} })
}

func (t *TestScreen) commitAnswer() {
	q := t.session.Current()
	if q == nil || len(choicesOf(q)) > 0 {
		return
	}
	t.session.Answer(strings.TrimSpace(t.input.Value()))
}

func (t *TestScreen) selectChoice(i int, choices []string) {
	if i < 0 || i >= len(choices) {
		return
	}
	t.choiceIdx = i
	t.session.Answer(choices[i])
	t.errMsg = ""
}

// cycleConfidence steps the current question's self-rating 1 through 5
// and around.
func (t *TestScreen) cycleConfidence() {
	q := t.session.Current()
	if q == nil {
		return
	}
	next := 1
	if rec := t.session.Record(q.ID); rec != nil {
		next = rec.Confidence%5 + 1
	}
	t.session.SetConfidence(next)
}

// syncFromRecord rebuilds the per-question input state from the
// machine's record, so revisiting a question shows what was answered.
func (t *TestScreen) syncFromRecord() {
	q := t.session.Current()
	if q == nil {
		return
	}
	if choices := choicesOf(q); len(choices) > 0 {
		t.choiceIdx = 0
		if rec := t.session.Record(q.ID); rec != nil && rec.Answer != "" {
			for i, c := range choices {
				if strings.EqualFold(c, rec.Answer) {
					t.choiceIdx = i
					break
				}
			}
		}
		return
	}
	t.input = components.NewTextInput(placeholderFor(q), false, 60)
	if rec := t.session.Record(q.ID); rec != nil {
		t.input.Model.SetValue(rec.Answer)
	}
}

// focusCmd starts the per-question services: input focus and, for vocal
// questions, speech capture.
func (t *TestScreen) focusCmd() tea.Cmd {
	var cmds []tea.Cmd
	if t.openTypeActive() {
		cmds = append(cmds, t.input.Init())
	}
	cmds = append(cmds, t.startListening())
	return tea.Batch(cmds...)
}

func (t *TestScreen) openTypeActive() bool {
	q := t.session.Current()
	return q != nil && len(choicesOf(q)) == 0 && !t.showConfirm && !t.session.SubmissionPending
}

// startListening restarts speech capture when the current question
// wants a spoken explanation. The transcriber supersedes its previous
// run, so the old stream drains and closes on its own.
func (t *TestScreen) startListening() tea.Cmd {
	q := t.session.Current()
	wantVocal := q != nil && q.RequiresVocal && t.session.Config.VocalExplanations
	if t.transcriber == nil || !wantVocal {
		t.stopListening()
		return nil
	}
	ch, err := t.transcriber.Start(context.Background())
	if err != nil {
		t.errMsg = "Voice capture failed: " + err.Error()
		return nil
	}
	t.listening = true
	t.stream = ch
	return t.pumpTranscript()
}

// pumpTranscript reads the next chunk off the running capture stream.
// One command per chunk; the handler re-arms after each delivery.
func (t *TestScreen) pumpTranscript() tea.Cmd {
	if !t.listening || t.stream == nil {
		return nil
	}
	ch := t.stream
	qIdx := t.session.Index
	return func() tea.Msg {
		chunk, ok := <-ch
		return transcriptChunkMsg{qIdx: qIdx, chunk: chunk, ok: ok}
	}
}

func (t *TestScreen) stopListening() {
	if t.transcriber != nil && t.listening {
		t.transcriber.Stop()
	}
	t.listening = false
}

// gradeCmd issues the batch grading request. The records map is copied
// on the event loop so the in-flight request never races the learner's
// edits.
func (t *TestScreen) gradeCmd(gen, sub uint64) tea.Cmd {
	evaluator := t.evaluator
	req := grading.TestRequest{
		Questions:   t.session.Questions,
		Records:     copyRecords(t.session.Records),
		Config:      t.session.Config,
		TotalTimeMs: t.session.TotalElapsedMs(),
	}
	return func() tea.Msg {
		res, err := evaluator.GradeTest(context.Background(), req)
		if err != nil {
			return gradedMsg{gen: gen, sub: sub, err: err}
		}
		return gradedMsg{gen: gen, sub: sub, result: res}
	}
}

// recordOutcome journals the completed test and folds its concept
// counts into a fresh mastery snapshot.
func (t *TestScreen) recordOutcome(res *selftest.Result) tea.Cmd {
	events := t.events
	snapshots := t.snapshots
	if events == nil && snapshots == nil {
		return nil
	}

	action := "end"
	if t.session.TimedOut {
		action = "timeout"
	}
	cfg := t.session.Config
	sessionID := t.session.SessionID
	questions := t.session.Questions
	records := copyRecords(t.session.Records)

	return func() tea.Msg {
		ctx := context.Background()
		if events != nil {
			_ = events.AppendTestEvent(ctx, store.TestEventData{
				SessionID:     sessionID,
				Action:        action,
				Mode:          string(cfg.Mode),
				Topics:        cfg.Topics,
				QuestionCount: res.Total,
				Correct:       res.Correct,
				Total:         res.Total,
				Score:         res.Score,
				DurationSecs:  int(res.TotalTimeMs / 1000),
				Readiness:     res.Readiness,
			})
			for i, qs := range res.Questions {
				if i >= len(questions) {
					break
				}
				q := questions[i]
				rec := records[q.ID]
				if rec == nil {
					rec = &selftest.AttemptRecord{}
				}
				_ = events.AppendAttemptEvent(ctx, store.AttemptEventData{
					SessionID:     sessionID,
					QuestionID:    q.ID,
					Concept:       q.Concept,
					Topic:         primaryTopic(cfg),
					QuestionText:  q.Prompt,
					CorrectAnswer: q.Answer,
					LearnerAnswer: rec.Answer,
					Transcript:    rec.Transcript,
					Correct:       qs.Correct,
					Confidence:    rec.Confidence,
					TimeMs:        rec.TimeMs,
					Attempt:       1,
					QuestionType:  string(q.Type),
				})
			}
		}
		if snapshots != nil {
			saveSnapshot(ctx, snapshots, res)
		}
		return nil
	}
}

// recordAbandon journals a quit mid-test. Excluded from history, which
// only lists completed tests.
func (t *TestScreen) recordAbandon() tea.Cmd {
	events := t.events
	if events == nil {
		return nil
	}
	data := store.TestEventData{
		SessionID:     t.session.SessionID,
		Action:        "reset",
		Mode:          string(t.session.Config.Mode),
		Topics:        t.session.Config.Topics,
		QuestionCount: len(t.session.Questions),
		Total:         len(t.session.Questions),
		DurationSecs:  int(t.session.TotalElapsedMs() / 1000),
	}
	return func() tea.Msg {
		_ = events.AppendTestEvent(context.Background(), data)
		return nil
	}
}

// saveSnapshot merges the result's per-concept counts into the latest
// snapshot and saves a new one. Score stays the lifetime accuracy, the
// same figure the attempt-event aggregates produce.
func saveSnapshot(ctx context.Context, snapshots store.SnapshotRepo, res *selftest.Result) {
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
		for concept, cm := range snap.Data.Concepts {
			data.Concepts[concept] = cm
		}
	}
	for _, qs := range res.Questions {
		if qs.Concept == "" {
			continue
		}
		cm := data.Concepts[qs.Concept]
		cm.Attempts++
		if qs.Correct {
			cm.Correct++
		}
		cm.Score = float64(cm.Correct) / float64(cm.Attempts)
		data.Concepts[qs.Concept] = cm
	}
	_ = snapshots.Save(ctx, &store.Snapshot{Timestamp: time.Now(), Data: data})
	_ = snapshots.Prune(ctx, snapshotKeep)
}

func copyRecords(records map[string]*selftest.AttemptRecord) map[string]*selftest.AttemptRecord {
	out := make(map[string]*selftest.AttemptRecord, len(records))
	for id, rec := range records {
		c := *rec
		out[id] = &c
	}
	return out
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

func placeholderFor(q *quizgen.Question) string {
	if q.Type == quizgen.TypeExplanation {
		return "Write out your reasoning..."
	}
	return "Type your answer..."
}

func primaryTopic(cfg selftest.Config) string {
	if len(cfg.Topics) == 0 {
		return ""
	}
	return cfg.Topics[0]
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

// clockFormat renders milliseconds as M:SS.
func clockFormat(ms int64) string {
	secs := ms / 1000
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
