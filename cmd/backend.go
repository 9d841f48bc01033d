package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/abhisek/laban/internal/guidance"
	"github.com/abhisek/laban/internal/llm"
	"github.com/abhisek/laban/internal/store"
	"github.com/abhisek/laban/internal/store/redisstore"
	"github.com/abhisek/laban/internal/study"
)

// backend bundles the stores a command works against. Profiles, decks and
// LLM events always live in SQLite; results and interaction logs move to
// Redis when a URL is configured.
type backend struct {
	sqlite       *store.Store
	redis        *redisstore.Store
	results      store.ResultRepo
	interactions store.InteractionRepo
}

func openBackend(ctx context.Context) (*backend, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	b := &backend{
		sqlite:       st,
		results:      st.ResultRepo(),
		interactions: st.InteractionRepo(),
	}

	if cfg.RedisURL != "" {
		rs, err := redisstore.Open(ctx, cfg.RedisURL)
		if err != nil {
			st.Close()
			return nil, fmt.Errorf("open redis: %w", err)
		}
		b.redis = rs
		b.results = rs.ResultRepo()
		b.interactions = rs.InteractionRepo()
	}
	return b, nil
}

func (b *backend) Close() {
	if b.redis != nil {
		if err := b.redis.Close(); err != nil {
			slog.Warn("failed to close redis", "err", err)
		}
	}
	if err := b.sqlite.Close(); err != nil {
		slog.Warn("failed to close database", "err", err)
	}
}

// provider builds the configured LLM provider. It returns nil, with a
// notice on stderr, when none is configured; the AI tools then answer
// with their fallback message.
func (b *backend) provider(ctx context.Context) llm.Provider {
	llmCfg, ok := llm.ResolveConfig()
	if !ok {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", llmCfg.Validate())
		fmt.Fprintln(os.Stderr, "AI features will be unavailable.")
		return nil
	}
	p, err := llm.NewProvider(ctx, llmCfg, b.sqlite.EventRepo())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		return nil
	}
	return p
}

func (b *backend) studyService(ctx context.Context) *study.Service {
	return study.NewService(b.provider(ctx), study.DefaultConfig(), b.interactions)
}

func (b *backend) analyzer(ctx context.Context) *guidance.Analyzer {
	return guidance.NewAnalyzer(b.provider(ctx), guidance.DefaultConfig(), b.interactions)
}
