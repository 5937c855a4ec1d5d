package store

import (
	"context"
	"fmt"
)

func (r *eventRepo) AppendFeedbackEvent(ctx context.Context, data FeedbackEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.client.FeedbackEvent.Create().
		SetSequence(seqNum).
		SetSessionID(data.SessionID).
		SetQuestionID(data.QuestionID).
		SetConcept(data.Concept).
		SetTier(data.Tier).
		SetAttempt(data.Attempt).
		SetReveal(data.Reveal).
		SetMessage(data.Message).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save feedback event: %w", err)
	}
	return nil
}
