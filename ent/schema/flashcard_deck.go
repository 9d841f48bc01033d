package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// FlashcardDeck stores a generated deck together with each card's review
// schedule.
type FlashcardDeck struct {
	ent.Schema
}

func (FlashcardDeck) Fields() []ent.Field {
	return []ent.Field{
		field.String("deck_id").
			Unique().
			Immutable(),
		field.String("subject"),
		field.String("topic"),
		field.Text("cards").
			Comment("Cards and review state as a JSON array"),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
		field.Time("updated_at").
			Default(time.Now),
	}
}

func (FlashcardDeck) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("subject"),
	}
}
