package selftest

import (
	"strings"
	"testing"

	"github.com/abhisek/studiz/internal/quizgen"
)

// gradeAll marks the first n questions correct and the rest incorrect.
func gradeAll(qs []quizgen.Question, n int) map[string]QuestionGrade {
	grades := make(map[string]QuestionGrade, len(qs))
	for i, q := range qs {
		grades[q.ID] = QuestionGrade{Correct: i < n}
	}
	return grades
}

// recordAll gives every question a non-empty answer and the confidence c.
func recordAll(qs []quizgen.Question, c int) map[string]*AttemptRecord {
	records := make(map[string]*AttemptRecord, len(qs))
	for _, q := range qs {
		records[q.ID] = &AttemptRecord{Answer: "something", Confidence: c, TimeMs: 1000}
	}
	return records
}

func TestBuildResult_SevenOfTenIsGood(t *testing.T) {
	qs := testQuestions(10)
	res := BuildResult(qs, recordAll(qs, 3), gradeAll(qs, 7), 90_000)

	if res.Score != 0.70 {
		t.Errorf("Score = %v, want exactly 0.70", res.Score)
	}
	if res.Correct != 7 || res.Total != 10 {
		t.Errorf("Correct/Total = %d/%d, want 7/10", res.Correct, res.Total)
	}
	if res.Readiness != ReadinessGood {
		t.Errorf("Readiness = %q, want %q", res.Readiness, ReadinessGood)
	}
	if res.TotalTimeMs != 90_000 {
		t.Errorf("TotalTimeMs = %d, want 90000", res.TotalTimeMs)
	}
	if len(res.Questions) != 10 {
		t.Errorf("per-question outcomes = %d, want 10", len(res.Questions))
	}
}

func TestBuildResult_MissingConfidenceCountsAsZero(t *testing.T) {
	qs := testQuestions(2)
	records := map[string]*AttemptRecord{
		"q1": {Answer: "a", Confidence: 4},
		"q2": {Answer: "b"}, // never rated
	}
	res := BuildResult(qs, records, gradeAll(qs, 2), 0)

	if res.AvgConfidence != 2.0 {
		t.Errorf("AvgConfidence = %v, want 2.0 (missing rating counted as 0)", res.AvgConfidence)
	}
}

func TestBuildResult_UnansweredQuestionCounted(t *testing.T) {
	qs := testQuestions(2)
	records := map[string]*AttemptRecord{
		"q1": {Answer: "a", Confidence: 5},
		// q2 has no record at all (forced timeout).
	}
	grades := map[string]QuestionGrade{
		"q1": {Correct: true},
		"q2": {Correct: false},
	}
	res := BuildResult(qs, records, grades, 0)

	if res.Total != 2 || res.Correct != 1 {
		t.Errorf("Correct/Total = %d/%d, want 1/2", res.Correct, res.Total)
	}
	if res.Score != 0.5 {
		t.Errorf("Score = %v, want 0.5", res.Score)
	}
	if res.AvgConfidence != 2.5 {
		t.Errorf("AvgConfidence = %v, want 2.5", res.AvgConfidence)
	}
}

func TestBuildResult_WeakStrongSplit(t *testing.T) {
	qs := []quizgen.Question{
		{ID: "q1", Concept: "Limits"},
		{ID: "q2", Concept: "Limits"},
		{ID: "q3", Concept: "Chain Rule"},
		{ID: "q4", Concept: "Chain Rule"},
	}
	grades := map[string]QuestionGrade{
		"q1": {Correct: false},
		"q2": {Correct: false},
		"q3": {Correct: true},
		"q4": {Correct: true},
	}
	res := BuildResult(qs, nil, grades, 0)

	if len(res.WeakConcepts) != 1 || res.WeakConcepts[0].Concept != "Limits" {
		t.Fatalf("WeakConcepts = %+v, want [Limits]", res.WeakConcepts)
	}
	if res.WeakConcepts[0].Score != 0 {
		t.Errorf("Limits score = %v, want 0", res.WeakConcepts[0].Score)
	}
	if !strings.Contains(res.WeakConcepts[0].Suggestion, "0 of 2") {
		t.Errorf("Suggestion = %q, want it to cite 0 of 2", res.WeakConcepts[0].Suggestion)
	}
	if len(res.StrongConcepts) != 1 || res.StrongConcepts[0] != "Chain Rule" {
		t.Errorf("StrongConcepts = %v, want [Chain Rule]", res.StrongConcepts)
	}
}

func TestBuildResult_WeakestConceptFirst(t *testing.T) {
	qs := []quizgen.Question{
		{ID: "q1", Concept: "A"},
		{ID: "q2", Concept: "A"},
		{ID: "q3", Concept: "B"},
		{ID: "q4", Concept: "B"},
	}
	grades := map[string]QuestionGrade{
		"q1": {Correct: true},
		"q2": {Correct: false}, // A = 0.5
		"q3": {Correct: false},
		"q4": {Correct: false}, // B = 0.0
	}
	res := BuildResult(qs, nil, grades, 0)

	if len(res.WeakConcepts) != 2 {
		t.Fatalf("WeakConcepts = %+v, want 2 entries", res.WeakConcepts)
	}
	if res.WeakConcepts[0].Concept != "B" || res.WeakConcepts[1].Concept != "A" {
		t.Errorf("order = %s, %s; want B, A (weakest first)",
			res.WeakConcepts[0].Concept, res.WeakConcepts[1].Concept)
	}
}

func TestBuildResult_MasteryDeltaAdjusts(t *testing.T) {
	qs := []quizgen.Question{{ID: "q1", Concept: "Proofs"}}
	grades := map[string]QuestionGrade{
		// Incorrect but with substantial partial credit from the evaluator.
		"q1": {Correct: false, MasteryDelta: 0.75},
	}
	res := BuildResult(qs, nil, grades, 0)

	if len(res.StrongConcepts) != 1 {
		t.Fatalf("StrongConcepts = %v, want partial credit to lift Proofs to strong", res.StrongConcepts)
	}
	if len(res.WeakConcepts) != 0 {
		t.Errorf("WeakConcepts = %+v, want none", res.WeakConcepts)
	}
}

func TestBuildResult_ThresholdBoundary(t *testing.T) {
	// Exactly at the threshold counts as strong, not weak.
	qs := []quizgen.Question{{ID: "q1", Concept: "Series"}}
	grades := map[string]QuestionGrade{
		"q1": {Correct: false, MasteryDelta: MasteryThreshold},
	}
	res := BuildResult(qs, nil, grades, 0)

	if len(res.WeakConcepts) != 0 {
		t.Errorf("concept at threshold listed weak: %+v", res.WeakConcepts)
	}
	if len(res.StrongConcepts) != 1 {
		t.Errorf("StrongConcepts = %v, want [Series]", res.StrongConcepts)
	}
}

func TestBuildResult_RecommendationsNameWeakConcepts(t *testing.T) {
	qs := testQuestions(4)
	res := BuildResult(qs, recordAll(qs, 3), gradeAll(qs, 0), 0)

	if len(res.Recommendations) == 0 {
		t.Fatal("expected recommendations")
	}
	first := res.Recommendations[0]
	if !strings.Contains(first, "Derivatives") || !strings.Contains(first, "Integrals") {
		t.Errorf("first recommendation = %q, want weak concepts named", first)
	}
}

func TestBuildResult_EmptySet(t *testing.T) {
	res := BuildResult(nil, nil, nil, 0)

	if res.Total != 0 || res.Score != 0 {
		t.Errorf("Score/Total = %v/%d, want 0/0", res.Score, res.Total)
	}
	if res.Readiness != ReadinessNeedsImprovement {
		t.Errorf("Readiness = %q, want %q", res.Readiness, ReadinessNeedsImprovement)
	}
}

func TestReadinessBand(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{1.0, ReadinessExcellent},
		{0.8, ReadinessExcellent},
		{0.75, ReadinessGood},
		{0.6, ReadinessGood},
		{0.5, ReadinessNeedsImprovement},
		{0.0, ReadinessNeedsImprovement},
	}
	for _, tt := range tests {
		if got := ReadinessBand(tt.score); got != tt.want {
			t.Errorf("ReadinessBand(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
