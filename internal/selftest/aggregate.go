package selftest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/abhisek/studiz/internal/quizgen"
)

// QuestionGrade is the externally supplied scoring for one question,
// produced by the evaluation service (or the local checker).
type QuestionGrade struct {
	// Correct is the scored correctness of the recorded answer.
	Correct bool

	// Feedback is optional per-question feedback text.
	Feedback string

	// MasteryDelta nudges the question's mastery contribution, e.g. partial
	// credit on an explanation. Applied on top of the 0/1 correctness base
	// and clamped to 0-1.
	MasteryDelta float64
}

type conceptStats struct {
	masterySum float64
	correct    int
	total      int
}

// BuildResult computes the immutable test result from the ordered question
// set, the final attempt records, and the per-question grades. Pure
// transform: no side effects, deterministic ordering.
//
// Unrated questions count as confidence 0 in the average rather than being
// excluded, deliberately penalizing answers the learner did not rate.
func BuildResult(questions []quizgen.Question, records map[string]*AttemptRecord, grades map[string]QuestionGrade, totalTimeMs int64) Result {
	res := Result{
		Total:       len(questions),
		TotalTimeMs: totalTimeMs,
	}
	if len(questions) == 0 {
		res.Readiness = ReadinessBand(0)
		return res
	}

	perConcept := make(map[string]*conceptStats)
	var confidenceSum int

	for i := range questions {
		q := &questions[i]
		rec := records[q.ID]
		if rec == nil {
			rec = &AttemptRecord{}
		}
		grade := grades[q.ID]

		if grade.Correct {
			res.Correct++
		}
		confidenceSum += rec.Confidence

		res.Questions = append(res.Questions, QuestionScore{
			QuestionID: q.ID,
			Concept:    q.Concept,
			Correct:    grade.Correct,
			Confidence: rec.Confidence,
			TimeMs:     rec.TimeMs,
			Feedback:   grade.Feedback,
		})

		mastery := 0.0
		if grade.Correct {
			mastery = 1.0
		}
		mastery = clamp01(mastery + grade.MasteryDelta)

		cs := perConcept[q.Concept]
		if cs == nil {
			cs = &conceptStats{}
			perConcept[q.Concept] = cs
		}
		cs.masterySum += mastery
		cs.total++
		if grade.Correct {
			cs.correct++
		}
	}

	res.Score = float64(res.Correct) / float64(res.Total)
	res.AvgConfidence = float64(confidenceSum) / float64(res.Total)
	res.Readiness = ReadinessBand(res.Score)

	for concept, cs := range perConcept {
		score := cs.masterySum / float64(cs.total)
		if score < MasteryThreshold {
			res.WeakConcepts = append(res.WeakConcepts, ConceptScore{
				Concept:    concept,
				Score:      score,
				Suggestion: fmt.Sprintf("Review %s: %d of %d answered correctly.", concept, cs.correct, cs.total),
			})
		} else {
			res.StrongConcepts = append(res.StrongConcepts, concept)
		}
	}

	// Weakest first; ties broken by name so output is stable.
	sort.Slice(res.WeakConcepts, func(i, j int) bool {
		if res.WeakConcepts[i].Score != res.WeakConcepts[j].Score {
			return res.WeakConcepts[i].Score < res.WeakConcepts[j].Score
		}
		return res.WeakConcepts[i].Concept < res.WeakConcepts[j].Concept
	})
	sort.Strings(res.StrongConcepts)

	res.Recommendations = buildRecommendations(res)
	return res
}

// buildRecommendations derives next-step text from the weak concepts and
// the readiness band.
func buildRecommendations(res Result) []string {
	var recs []string
	if len(res.WeakConcepts) > 0 {
		names := make([]string, len(res.WeakConcepts))
		for i, c := range res.WeakConcepts {
			names[i] = c.Concept
		}
		recs = append(recs, "Focus your next study block on: "+strings.Join(names, ", ")+".")
	}
	switch res.Readiness {
	case ReadinessExcellent:
		recs = append(recs, "Keep the momentum going: raise the difficulty or add new topics.")
	case ReadinessGood:
		recs = append(recs, "You're close: shore up the weak concepts, then retest.")
	default:
		recs = append(recs, "Review the explanations above, then retake a shorter test on the same topics.")
	}
	return recs
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
