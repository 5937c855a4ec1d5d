package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// FeedbackEvent records escalating feedback shown during practice.
type FeedbackEvent struct {
	ent.Schema
}

func (FeedbackEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (FeedbackEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").NotEmpty(),
		field.String("question_id").NotEmpty(),
		field.String("concept").NotEmpty(),
		field.String("tier").
			NotEmpty().
			Comment("confirm, encourage, hint, or reveal"),
		field.Int("attempt").
			Comment("Attempt number the feedback responded to"),
		field.Bool("reveal").
			Default(false).
			Comment("Whether the correct answer was revealed"),
		field.Text("message").
			Default("").
			Comment("The feedback text shown"),
	}
}

func (FeedbackEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("question_id"),
	}
}
