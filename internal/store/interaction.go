package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

// interactionRepo implements InteractionRepo on the interaction_logs table.
type interactionRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *interactionRepo) Append(ctx context.Context, in Interaction) error {
	if in.ID == "" {
		in.ID = uuid.NewString()
	}
	if in.Timestamp.IsZero() {
		in.Timestamp = time.Now()
	}
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder.Insert("interaction_logs").
		Columns("sequence", "timestamp", "log_id", "kind", "student_name", "input", "output", "success").
		Values(seqNum, in.Timestamp.UTC(), in.ID, in.Kind, in.Student, in.Input, in.Output, in.Success).
		Query()
	if err := exec(ctx, r.db, query, args); err != nil {
		return fmt.Errorf("save interaction: %w", err)
	}
	return nil
}

func (r *interactionRepo) List(ctx context.Context, opts QueryOpts) ([]Interaction, error) {
	sel := builder.Select("sequence", "timestamp", "log_id", "kind", "student_name", "input", "output", "success").
		From(builder.Table("interaction_logs"))
	var extra []*entsql.Predicate
	if opts.Kind != "" {
		extra = append(extra, entsql.EQ("kind", opts.Kind))
	}
	query, args := applyQueryOpts(sel, opts, extra...).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query interactions: %w", err)
	}
	defer rows.Close()

	var out []Interaction
	for rows.Next() {
		var in Interaction
		if err := rows.Scan(&in.Sequence, &in.Timestamp, &in.ID, &in.Kind, &in.Student, &in.Input, &in.Output, &in.Success); err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		out = append(out, in)
	}
	return out, rows.Err()
}
