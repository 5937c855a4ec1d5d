package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AttemptEvent records a single graded answer, from either a self-test
// or a practice session.
type AttemptEvent struct {
	ent.Schema
}

func (AttemptEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AttemptEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("Links to TestEvent, or practice session UUID"),
		field.String("question_id").
			NotEmpty().
			Comment("Question this attempt was for"),
		field.String("concept").
			NotEmpty().
			Comment("Concept the question tests"),
		field.String("topic").
			Default("").
			Comment("Topic the question belongs to"),
		field.String("question_text").
			NotEmpty().
			Comment("The prompt shown"),
		field.String("correct_answer").
			NotEmpty().
			Comment("The canonical correct answer"),
		field.String("learner_answer").
			Default("").
			Comment("What the learner entered (empty on timeout)"),
		field.Text("transcript").
			Default("").
			Comment("Vocal explanation transcript, if any"),
		field.Bool("correct").
			Comment("Whether the answer was judged correct"),
		field.Int("confidence").
			Default(0).
			Comment("Self-reported confidence 1-5, 0 if unset"),
		field.Int64("time_ms").
			Default(0).
			Comment("Milliseconds spent on the question"),
		field.Int("attempt").
			Default(1).
			Comment("Attempt number for this question"),
		field.String("question_type").
			NotEmpty().
			Comment("multiple-choice, true-false, short-answer, explanation, approach-selection"),
		field.Bool("practice").
			Default(false).
			Comment("True for practice mode, false for self-test"),
	}
}

func (AttemptEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("concept"),
		index.Fields("correct"),
	}
}
