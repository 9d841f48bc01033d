package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

var deckColumns = []string{"deck_id", "subject", "topic", "cards", "created_at", "updated_at"}

// deckRepo implements DeckRepo on the flashcard_decks table.
type deckRepo struct {
	db *sql.DB
}

func (r *deckRepo) SaveDeck(ctx context.Context, d *Deck) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	now := nowUTC()
	d.CreatedAt, d.UpdatedAt = now, now
	for i := range d.Cards {
		if d.Cards[i].ID == "" {
			d.Cards[i].ID = strconv.Itoa(i + 1)
		}
	}
	cards, err := json.Marshal(d.Cards)
	if err != nil {
		return fmt.Errorf("marshal cards: %w", err)
	}

	query, args := builder.Insert("flashcard_decks").
		Columns(deckColumns...).
		Values(d.ID, d.Subject, d.Topic, string(cards), d.CreatedAt, d.UpdatedAt).
		Query()
	if err := exec(ctx, r.db, query, args); err != nil {
		return fmt.Errorf("save deck: %w", err)
	}
	return nil
}

func (r *deckRepo) ListDecks(ctx context.Context) ([]Deck, error) {
	query, args := builder.Select(deckColumns...).
		From(builder.Table("flashcard_decks")).
		OrderBy(entsql.Desc("id")).
		Query()
	return r.query(ctx, query, args)
}

func (r *deckRepo) GetDeck(ctx context.Context, id string) (*Deck, error) {
	query, args := builder.Select(deckColumns...).
		From(builder.Table("flashcard_decks")).
		Where(entsql.EQ("deck_id", id)).
		Query()
	decks, err := r.query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	if len(decks) == 0 {
		return nil, ErrNotFound
	}
	return &decks[0], nil
}

func (r *deckRepo) UpdateDeck(ctx context.Context, d *Deck) error {
	cards, err := json.Marshal(d.Cards)
	if err != nil {
		return fmt.Errorf("marshal cards: %w", err)
	}
	d.UpdatedAt = nowUTC()

	query, args := builder.Update("flashcard_decks").
		Set("cards", string(cards)).
		Set("updated_at", d.UpdatedAt).
		Where(entsql.EQ("deck_id", d.ID)).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update deck: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *deckRepo) query(ctx context.Context, query string, args []any) ([]Deck, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query decks: %w", err)
	}
	defer rows.Close()

	var decks []Deck
	for rows.Next() {
		var (
			d     Deck
			cards string
		)
		if err := rows.Scan(&d.ID, &d.Subject, &d.Topic, &cards, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan deck: %w", err)
		}
		if err := json.Unmarshal([]byte(cards), &d.Cards); err != nil {
			slog.Warn("skipping unreadable deck", "id", d.ID, "err", err)
			continue
		}
		decks = append(decks, d)
	}
	return decks, rows.Err()
}
