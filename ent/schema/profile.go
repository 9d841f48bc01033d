package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Profile is the student identity attached to new results. Each save adds a
// row; the newest row wins.
type Profile struct {
	ent.Schema
}

func (Profile) Fields() []ent.Field {
	return []ent.Field{
		field.String("name"),
		field.String("class").
			Default(""),
		field.String("school").
			Default(""),
		field.Time("updated_at").
			Default(time.Now),
	}
}

func (Profile) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("updated_at"),
	}
}
