package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// InteractionLog records one use of a study tool.
type InteractionLog struct {
	ent.Schema
}

func (InteractionLog) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (InteractionLog) Fields() []ent.Field {
	return []ent.Field{
		field.String("log_id").
			Unique().
			Immutable(),
		field.String("kind").
			Comment("flashcards, writing, homework, mindmap, lesson, speaking, chat, guidance"),
		field.String("student_name").
			Default(""),
		field.Text("input").
			Default(""),
		field.Text("output").
			Default(""),
		field.Bool("success"),
	}
}

func (InteractionLog) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("kind"),
	}
}
