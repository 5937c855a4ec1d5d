package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// Course is a named topic area the learner can be tested on.
type Course struct {
	ent.Schema
}

func (Course) Fields() []ent.Field {
	return []ent.Field{
		field.String("name").
			Unique().
			NotEmpty(),
		field.String("description").
			Default(""),
		field.JSON("concepts", []string{}).
			Optional().
			Comment("Concepts covered, seeded at import and grown by generation"),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
	}
}
