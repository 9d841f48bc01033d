// Package redisstore keeps results and interaction logs in Redis.
//
// Each collection is a single JSON array under a fixed key and is rewritten
// in full on every append. A blob that fails to decode reads as empty.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/abhisek/laban/internal/assessment"
	"github.com/abhisek/laban/internal/store"
)

const (
	// ResultsKey holds every saved assessment result.
	ResultsKey = "laban:results"
	// LogsKey holds every study tool interaction.
	LogsKey = "laban:logs"

	maxTxRetries = 5
)

// Store is a Redis-backed ResultRepo and InteractionRepo.
type Store struct {
	client *redis.Client
}

// Open connects to the Redis server at url (redis://host:port/db) and pings it.
func Open(ctx context.Context, url string) (*Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return New(client), nil
}

// New wraps an existing client.
func New(client *redis.Client) *Store {
	return &Store{client: client}
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

// ResultRepo returns the result repository.
func (s *Store) ResultRepo() store.ResultRepo {
	return &resultRepo{s: s}
}

// InteractionRepo returns the interaction repository.
func (s *Store) InteractionRepo() store.InteractionRepo {
	return &interactionRepo{s: s}
}

// Reset deletes both collections.
func (s *Store) Reset(ctx context.Context) error {
	return s.client.Del(ctx, ResultsKey, LogsKey).Err()
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// load reads the array under key. A missing key is empty; a corrupt blob is
// logged and treated as empty.
func load[T any](ctx context.Context, g getter, key string) ([]T, error) {
	data, err := g.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return decodeList[T](key, data), nil
}

func decodeList[T any](key string, data []byte) []T {
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		slog.Warn("discarding unreadable redis collection", "key", key, "err", err)
		return nil
	}
	return items
}

// appendItem rewrites the array under key with item appended. The read and
// write run under WATCH so concurrent writers retry instead of losing data.
func appendItem[T any](ctx context.Context, c *redis.Client, key string, item T) error {
	txf := func(tx *redis.Tx) error {
		items, err := load[T](ctx, tx, key)
		if err != nil {
			return err
		}
		data, err := json.Marshal(append(items, item))
		if err != nil {
			return fmt.Errorf("marshal %s: %w", key, err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		return err
	}

	for range maxTxRetries {
		err := c.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("append to %s: %w", key, redis.TxFailedErr)
}

type resultRepo struct {
	s *Store
}

func (r *resultRepo) Save(ctx context.Context, res assessment.Result) error {
	return appendItem(ctx, r.s.client, ResultsKey, res)
}

func (r *resultRepo) LoadAll(ctx context.Context) ([]assessment.Result, error) {
	return load[assessment.Result](ctx, r.s.client, ResultsKey)
}

func (r *resultRepo) Get(ctx context.Context, id string) (*assessment.Result, error) {
	all, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, store.ErrNotFound
}

type interactionRepo struct {
	s *Store
}

func (r *interactionRepo) Append(ctx context.Context, in store.Interaction) error {
	if in.ID == "" {
		in.ID = uuid.NewString()
	}
	if in.Timestamp.IsZero() {
		in.Timestamp = time.Now().UTC()
	}
	if in.Sequence == 0 {
		in.Sequence = time.Now().UnixNano()
	}
	return appendItem(ctx, r.s.client, LogsKey, in)
}

func (r *interactionRepo) List(ctx context.Context, opts store.QueryOpts) ([]store.Interaction, error) {
	all, err := load[store.Interaction](ctx, r.s.client, LogsKey)
	if err != nil {
		return nil, err
	}
	return filterInteractions(all, opts), nil
}

// filterInteractions applies opts and returns matches newest first.
func filterInteractions(all []store.Interaction, opts store.QueryOpts) []store.Interaction {
	var out []store.Interaction
	for _, in := range slices.Backward(all) {
		switch {
		case opts.Kind != "" && in.Kind != opts.Kind:
			continue
		case opts.After > 0 && in.Sequence <= opts.After:
			continue
		case opts.Before > 0 && in.Sequence >= opts.Before:
			continue
		case !opts.From.IsZero() && in.Timestamp.Before(opts.From):
			continue
		case !opts.To.IsZero() && in.Timestamp.After(opts.To):
			continue
		}
		out = append(out, in)
		if opts.Limit > 0 && len(out) == opts.Limit {
			break
		}
	}
	return out
}
