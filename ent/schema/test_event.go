package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// TestEvent records self-test lifecycle events (start/end/timeout).
type TestEvent struct {
	ent.Schema
}

func (TestEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (TestEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("UUID grouping events in a test session"),
		field.String("action").
			NotEmpty().
			Comment("start, end, or timeout"),
		field.String("mode").
			Default("").
			Comment("comprehensive, weak-areas, or custom"),
		field.JSON("topics", []string{}).
			Optional().
			Comment("Topics the test covered"),
		field.Int("question_count").
			Default(0).
			Comment("Questions in the test"),
		field.Int("correct").
			Default(0).
			Comment("Correct answers (on end/timeout only)"),
		field.Int("total").
			Default(0).
			Comment("Graded questions (on end/timeout only)"),
		field.Float("score").
			Default(0).
			Comment("correct/total (on end/timeout only)"),
		field.Int("duration_secs").
			Default(0).
			Comment("Wall-clock test duration (on end/timeout only)"),
		field.String("readiness").
			Default("").
			Comment("Readiness band (on end/timeout only)"),
	}
}

func (TestEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("action"),
	}
}
