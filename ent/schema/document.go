package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Document is an imported piece of study material used to ground
// question generation.
type Document struct {
	ent.Schema
}

func (Document) Fields() []ent.Field {
	return []ent.Field{
		field.String("doc_id").
			Unique().
			NotEmpty().
			Comment("Stable identifier, referenced by generated questions"),
		field.String("title").
			NotEmpty(),
		field.String("topic").
			Default("").
			Comment("Topic this document belongs to"),
		field.Text("content").
			NotEmpty().
			Comment("Extracted plain text"),
		field.String("source_path").
			Default("").
			Comment("Original file path at import time"),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
	}
}

func (Document) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("topic"),
	}
}
