package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/laban/internal/assessment"
)

// profileKeep is how many profile versions survive a save.
const profileKeep = 5

// profileRepo implements ProfileRepo on the profiles table.
type profileRepo struct {
	db *sql.DB
}

func (r *profileRepo) Save(ctx context.Context, st assessment.Student) error {
	query, args := builder.Insert("profiles").
		Columns("name", "class", "school", "updated_at").
		Values(st.Name, st.Class, st.School, nowUTC()).
		Query()
	if err := exec(ctx, r.db, query, args); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return r.prune(ctx, profileKeep)
}

func (r *profileRepo) Latest(ctx context.Context) (*assessment.Student, error) {
	query, args := builder.Select("name", "class", "school").
		From(builder.Table("profiles")).
		OrderBy(entsql.Desc("id")).
		Limit(1).
		Query()

	var st assessment.Student
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&st.Name, &st.Class, &st.School)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest profile: %w", err)
	}
	return &st, nil
}

// prune deletes all but the keep most recent profiles.
func (r *profileRepo) prune(ctx context.Context, keep int) error {
	query, args := builder.Select("id").
		From(builder.Table("profiles")).
		OrderBy(entsql.Desc("id")).
		Offset(keep).
		Limit(1).
		Query()

	var threshold int
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&threshold)
	if errors.Is(err, sql.ErrNoRows) {
		return nil // fewer than keep profiles exist
	}
	if err != nil {
		return fmt.Errorf("query profiles for prune: %w", err)
	}

	query, args = builder.Delete("profiles").Where(entsql.LTE("id", threshold)).Query()
	if err := exec(ctx, r.db, query, args); err != nil {
		return fmt.Errorf("prune profiles: %w", err)
	}
	return nil
}
