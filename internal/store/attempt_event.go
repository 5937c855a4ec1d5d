package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/abhisek/studiz/ent"
	"github.com/abhisek/studiz/ent/attemptevent"
)

func (r *eventRepo) AppendAttemptEvent(ctx context.Context, data AttemptEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.client.AttemptEvent.Create().
		SetSequence(seqNum).
		SetSessionID(data.SessionID).
		SetQuestionID(data.QuestionID).
		SetConcept(data.Concept).
		SetTopic(data.Topic).
		SetQuestionText(data.QuestionText).
		SetCorrectAnswer(data.CorrectAnswer).
		SetLearnerAnswer(data.LearnerAnswer).
		SetTranscript(data.Transcript).
		SetCorrect(data.Correct).
		SetConfidence(data.Confidence).
		SetTimeMs(data.TimeMs).
		SetAttempt(data.Attempt).
		SetQuestionType(data.QuestionType).
		SetPractice(data.Practice).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save attempt event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAttempts(ctx context.Context, sessionID string) ([]AttemptEventRecord, error) {
	events, err := r.client.AttemptEvent.Query().
		Where(attemptevent.SessionID(sessionID)).
		Order(ent.Asc(attemptevent.FieldSequence)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}

	records := make([]AttemptEventRecord, len(events))
	for i, e := range events {
		records[i] = AttemptEventRecord{
			AttemptEventData: AttemptEventData{
				SessionID:     e.SessionID,
				QuestionID:    e.QuestionID,
				Concept:       e.Concept,
				Topic:         e.Topic,
				QuestionText:  e.QuestionText,
				CorrectAnswer: e.CorrectAnswer,
				LearnerAnswer: e.LearnerAnswer,
				Transcript:    e.Transcript,
				Correct:       e.Correct,
				Confidence:    e.Confidence,
				TimeMs:        e.TimeMs,
				Attempt:       e.Attempt,
				QuestionType:  e.QuestionType,
				Practice:      e.Practice,
			},
			Sequence:  e.Sequence,
			Timestamp: e.Timestamp,
		}
	}
	return records, nil
}

func (r *eventRepo) ConceptAccuracy(ctx context.Context) ([]ConceptAccuracyRecord, error) {
	events, err := r.client.AttemptEvent.Query().All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query concept accuracy: %w", err)
	}

	byConcept := make(map[string]*ConceptAccuracyRecord)
	for _, e := range events {
		rec := byConcept[e.Concept]
		if rec == nil {
			rec = &ConceptAccuracyRecord{Concept: e.Concept}
			byConcept[e.Concept] = rec
		}
		rec.Total++
		if e.Correct {
			rec.Correct++
		}
	}

	records := make([]ConceptAccuracyRecord, 0, len(byConcept))
	for _, rec := range byConcept {
		records = append(records, *rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Concept < records[j].Concept
	})
	return records, nil
}

func (r *eventRepo) WeakConcepts(ctx context.Context, threshold float64, minAttempts int) ([]string, error) {
	records, err := r.ConceptAccuracy(ctx)
	if err != nil {
		return nil, err
	}

	weak := make([]ConceptAccuracyRecord, 0)
	for _, rec := range records {
		if rec.Total < minAttempts {
			continue
		}
		if rec.Accuracy() < threshold {
			weak = append(weak, rec)
		}
	}
	sort.Slice(weak, func(i, j int) bool {
		ai, aj := weak[i].Accuracy(), weak[j].Accuracy()
		if ai != aj {
			return ai < aj
		}
		return weak[i].Concept < weak[j].Concept
	})

	names := make([]string, len(weak))
	for i, rec := range weak {
		names[i] = rec.Concept
	}
	return names, nil
}

func (r *eventRepo) RecentPrompts(ctx context.Context, limit int) ([]string, error) {
	query := r.client.AttemptEvent.Query().
		Order(ent.Desc(attemptevent.FieldSequence))
	if limit > 0 {
		query = query.Limit(limit)
	}

	events, err := query.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query recent prompts: %w", err)
	}

	prompts := make([]string, len(events))
	for i, e := range events {
		prompts[i] = e.QuestionText
	}
	return prompts, nil
}
