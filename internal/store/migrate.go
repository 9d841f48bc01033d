package store

import (
	"context"
	"fmt"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/abhisek/laban/ent/schema"
)

// builder renders SQLite statements for every repository.
var builder = entsql.Dialect(dialect.SQLite)

// tables maps each ent schema to the table it is stored in.
var tables = []struct {
	name   string
	schema ent.Interface
}{
	{"student_results", entschema.StudentResult{}},
	{"interaction_logs", entschema.InteractionLog{}},
	{"llm_request_events", entschema.LLMRequestEvent{}},
	{"profiles", entschema.Profile{}},
	{"flashcard_decks", entschema.FlashcardDeck{}},
}

// migrate creates or extends every table from its ent schema descriptor.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	ts := make([]*schema.Table, len(tables))
	for i, t := range tables {
		ts[i] = tableFor(t.name, t.schema)
	}
	return m.Create(ctx, ts...)
}

// tableFor converts an ent schema (mixins included) into a migration table
// with an auto-increment integer primary key.
func tableFor(name string, s ent.Interface) *schema.Table {
	t := schema.NewTable(name).
		AddPrimary(&schema.Column{Name: "id", Type: field.TypeInt, Increment: true})

	var fields []ent.Field
	var indexes []ent.Index
	for _, m := range s.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, s.Fields()...)
	indexes = append(indexes, s.Indexes()...)

	for _, f := range fields {
		d := f.Descriptor()
		t.AddColumn(&schema.Column{
			Name:     d.Name,
			Type:     d.Info.Type,
			Size:     int64(d.Size),
			Unique:   d.Unique,
			Nullable: d.Optional || d.Nillable,
		})
	}
	for _, idx := range indexes {
		d := idx.Descriptor()
		t.AddIndex(name+"_"+strings.Join(d.Fields, "_"), d.Unique, d.Fields)
	}
	return t
}
