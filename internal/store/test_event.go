package store

import (
	"context"
	"fmt"

	"github.com/abhisek/studiz/ent"
	"github.com/abhisek/studiz/ent/testevent"
)

func (r *eventRepo) AppendTestEvent(ctx context.Context, data TestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	builder := r.client.TestEvent.Create().
		SetSequence(seqNum).
		SetSessionID(data.SessionID).
		SetAction(data.Action).
		SetMode(data.Mode).
		SetQuestionCount(data.QuestionCount).
		SetCorrect(data.Correct).
		SetTotal(data.Total).
		SetScore(data.Score).
		SetDurationSecs(data.DurationSecs).
		SetReadiness(data.Readiness)

	if len(data.Topics) > 0 {
		builder = builder.SetTopics(data.Topics)
	}

	_, err = builder.Save(ctx)
	if err != nil {
		return fmt.Errorf("save test event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryTestSummaries(ctx context.Context, opts QueryOpts) ([]TestSummaryRecord, error) {
	query := r.client.TestEvent.Query().
		Where(testevent.ActionIn("end", "timeout")).
		Order(ent.Desc(testevent.FieldSequence))

	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.After > 0 {
		query = query.Where(testevent.SequenceGT(opts.After))
	}
	if opts.Before > 0 {
		query = query.Where(testevent.SequenceLT(opts.Before))
	}

	events, err := query.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query test summaries: %w", err)
	}

	records := make([]TestSummaryRecord, len(events))
	for i, e := range events {
		records[i] = TestSummaryRecord{
			SessionID:    e.SessionID,
			Timestamp:    e.Timestamp,
			Mode:         e.Mode,
			Topics:       e.Topics,
			Correct:      e.Correct,
			Total:        e.Total,
			Score:        e.Score,
			DurationSecs: e.DurationSecs,
			Readiness:    e.Readiness,
			TimedOut:     e.Action == "timeout",
		}
	}
	return records, nil
}
