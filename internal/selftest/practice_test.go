package selftest

import (
	"testing"
	"time"

	"github.com/abhisek/studiz/internal/quizgen"
)

func practiceQuestion(id string) *quizgen.Question {
	return &quizgen.Question{
		ID:          id,
		Prompt:      "Why does the chain rule work?",
		Type:        quizgen.TypeExplanation,
		Answer:      "composition of rates",
		Explanation: "The outer rate multiplies the inner rate.",
		Concept:     "Chain Rule",
	}
}

func TestPractice_SubmitCountsBeforeRequest(t *testing.T) {
	p := NewPractice(newFakeClock())
	p.SetQuestion(practiceQuestion("q1"))

	attempt, gen, ok := p.Submit()
	if !ok {
		t.Fatal("submit refused")
	}
	if attempt != 1 {
		t.Errorf("attempt = %d, want 1", attempt)
	}

	// The grading request fails; the count must survive the retry.
	if !p.FailSubmit(gen) {
		t.Error("expected failure to be applied")
	}
	attempt, _, ok = p.Submit()
	if !ok {
		t.Fatal("retry refused")
	}
	if attempt != 2 {
		t.Errorf("attempt after failed request = %d, want 2 (no under-count)", attempt)
	}
}

func TestPractice_PendingGatesSubmissions(t *testing.T) {
	p := NewPractice(newFakeClock())
	p.SetQuestion(practiceQuestion("q1"))

	if _, _, ok := p.Submit(); !ok {
		t.Fatal("first submit refused")
	}
	if _, _, ok := p.Submit(); ok {
		t.Error("second submit must be refused while grading is pending")
	}
}

func TestPractice_EscalatesAcrossAttempts(t *testing.T) {
	p := NewPractice(newFakeClock())
	p.SetQuestion(practiceQuestion("q1"))

	wantTiers := []Tier{TierEncourage, TierHint, TierReveal}
	for i, want := range wantTiers {
		attempt, gen, ok := p.Submit()
		if !ok {
			t.Fatalf("submit %d refused", i+1)
		}
		esc := Escalate(attempt, false)
		if esc.Tier != want {
			t.Errorf("attempt %d: tier = %q, want %q", attempt, esc.Tier, want)
		}
		if !p.ApplyFeedback(gen, false, esc.RevealAnswer) {
			t.Fatalf("feedback %d not applied", i+1)
		}
	}

	if !p.CanAdvance() {
		t.Error("expected advance after the answer reveal")
	}
}

func TestPractice_AdvanceGate(t *testing.T) {
	p := NewPractice(newFakeClock())
	p.SetQuestion(practiceQuestion("q1"))

	if p.CanAdvance() {
		t.Error("no feedback yet: advance must be blocked")
	}

	_, gen, _ := p.Submit()
	p.ApplyFeedback(gen, false, false)
	if p.CanAdvance() {
		t.Error("incorrect without reveal: the question must be retried")
	}

	_, gen, _ = p.Submit()
	p.ApplyFeedback(gen, true, false)
	if !p.CanAdvance() {
		t.Error("correct answer must unlock advance")
	}
}

func TestPractice_TrackerSpansQuestions(t *testing.T) {
	p := NewPractice(newFakeClock())

	p.SetQuestion(practiceQuestion("q1"))
	_, gen, _ := p.Submit()
	p.ApplyFeedback(gen, true, false)

	p.SetQuestion(practiceQuestion("q2"))
	_, gen, _ = p.Submit()
	p.ApplyFeedback(gen, true, false)

	// Returning to an earlier question id keeps escalating.
	p.SetQuestion(practiceQuestion("q1"))
	attempt, _, ok := p.Submit()
	if !ok {
		t.Fatal("submit refused")
	}
	if attempt != 2 {
		t.Errorf("attempt for repeated question = %d, want 2", attempt)
	}
}

func TestPractice_ResetDiscardsInFlight(t *testing.T) {
	p := NewPractice(newFakeClock())
	p.SetQuestion(practiceQuestion("q1"))
	_, gen, _ := p.Submit()

	p.Reset()

	if p.ApplyFeedback(gen, true, false) {
		t.Error("feedback for a previous set generation must be discarded")
	}
	if p.Question != nil {
		t.Error("expected no current question after reset")
	}
	if p.Tracker.Len() != 0 {
		t.Errorf("tracker not cleared: %d entries", p.Tracker.Len())
	}
}

func TestPractice_ElapsedTracksCurrentQuestion(t *testing.T) {
	clock := newFakeClock()
	p := NewPractice(clock)
	p.SetQuestion(practiceQuestion("q1"))

	clock.Advance(1500 * time.Millisecond)
	if got := p.ElapsedMs(); got != 1500 {
		t.Errorf("ElapsedMs = %d, want 1500", got)
	}

	p.SetQuestion(practiceQuestion("q2"))
	if got := p.ElapsedMs(); got != 0 {
		t.Errorf("ElapsedMs after new question = %d, want 0", got)
	}
}

func TestPractice_TranscriptResetsPerQuestion(t *testing.T) {
	p := NewPractice(newFakeClock())
	p.SetQuestion(practiceQuestion("q1"))
	p.AppendTranscript("spoken reasoning")

	if got := p.Transcript(); got != "spoken reasoning" {
		t.Errorf("Transcript = %q, want chunk", got)
	}

	p.SetQuestion(practiceQuestion("q2"))
	if got := p.Transcript(); got != "" {
		t.Errorf("Transcript after new question = %q, want empty", got)
	}
}
