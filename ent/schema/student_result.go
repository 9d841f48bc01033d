package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// StudentResult is a completed assessment. Rows are written once and never
// updated.
type StudentResult struct {
	ent.Schema
}

func (StudentResult) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (StudentResult) Fields() []ent.Field {
	return []ent.Field{
		field.String("result_id").
			Unique().
			Immutable().
			Comment("UUID assigned when the result was created"),
		field.String("instrument").
			Comment("mbti, holland, iq, eq, disc"),
		field.String("code").
			Comment("Classification code, e.g. ENFP or RIA"),
		field.String("label").
			Comment("Human-readable classification label"),
		field.Float("total").
			Default(0),
		field.Int("tier").
			Default(0).
			Comment("1-based breakpoint tier for IQ and EQ, 0 otherwise"),
		field.Text("scores").
			Comment("Score vector as a JSON object"),
		field.String("student_name").
			Default(""),
		field.String("student_class").
			Default(""),
		field.String("student_school").
			Default(""),
		field.String("bank_version").
			Comment("Semver of the question bank that produced the result"),
		field.Time("completed_at"),
	}
}

func (StudentResult) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("instrument"),
		index.Fields("completed_at"),
	}
}
