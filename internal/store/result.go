package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/laban/internal/assessment"
)

var resultColumns = []string{
	"result_id", "instrument", "code", "label", "total", "tier", "scores",
	"student_name", "student_class", "student_school", "bank_version", "completed_at",
}

// resultRepo implements ResultRepo on the student_results table.
type resultRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *resultRepo) Save(ctx context.Context, res assessment.Result) error {
	scores, err := json.Marshal(res.Scores)
	if err != nil {
		return fmt.Errorf("marshal scores: %w", err)
	}
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder.Insert("student_results").
		Columns(append([]string{"sequence", "timestamp"}, resultColumns...)...).
		Values(
			seqNum, nowUTC(),
			res.ID, string(res.Instrument), res.Classification.Code, res.Classification.Label,
			res.Classification.Total, res.Classification.Tier, string(scores),
			res.Student.Name, res.Student.Class, res.Student.School,
			res.BankVersion, res.CompletedAt.UTC(),
		).
		Query()
	if err := exec(ctx, r.db, query, args); err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}

func (r *resultRepo) LoadAll(ctx context.Context) ([]assessment.Result, error) {
	query, args := builder.Select(resultColumns...).
		From(builder.Table("student_results")).
		OrderBy("sequence").
		Query()
	return r.query(ctx, query, args)
}

func (r *resultRepo) Get(ctx context.Context, id string) (*assessment.Result, error) {
	query, args := builder.Select(resultColumns...).
		From(builder.Table("student_results")).
		Where(entsql.EQ("result_id", id)).
		Query()
	results, err := r.query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNotFound
	}
	return &results[0], nil
}

func (r *resultRepo) query(ctx context.Context, query string, args []any) ([]assessment.Result, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var results []assessment.Result
	for rows.Next() {
		var (
			res        assessment.Result
			instrument string
			scores     string
		)
		err := rows.Scan(
			&res.ID, &instrument, &res.Classification.Code, &res.Classification.Label,
			&res.Classification.Total, &res.Classification.Tier, &scores,
			&res.Student.Name, &res.Student.Class, &res.Student.School,
			&res.BankVersion, &res.CompletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		res.Instrument = assessment.Instrument(instrument)
		if err := decodeScores(scores, &res); err != nil {
			slog.Warn("skipping unreadable result", "id", res.ID, "err", err)
			continue
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

var errUnknownInstrument = errors.New("unknown instrument")

// decodeScores fills res.Scores and checks the instrument is one we score.
func decodeScores(raw string, res *assessment.Result) error {
	if _, err := assessment.Lookup(string(res.Instrument)); err != nil {
		return fmt.Errorf("%w %q", errUnknownInstrument, res.Instrument)
	}
	var scores assessment.ScoreVector
	if err := json.Unmarshal([]byte(raw), &scores); err != nil {
		return fmt.Errorf("decode scores: %w", err)
	}
	res.Scores = scores
	return nil
}
