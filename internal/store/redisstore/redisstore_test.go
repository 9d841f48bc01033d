package redisstore

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/laban/internal/assessment"
	"github.com/abhisek/laban/internal/store"
)

func openTestRedis(t *testing.T) *Store {
	t.Helper()
	mr := miniredis.RunT(t)
	s, err := Open(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestDecodeList(t *testing.T) {
	items := decodeList[store.Interaction](LogsKey, []byte(`[{"id":"a","kind":"chat"}]`))
	require.Len(t, items, 1)
	assert.Equal(t, "chat", items[0].Kind)

	assert.Empty(t, decodeList[store.Interaction](LogsKey, []byte(`{"id":"a"`)))
	assert.Empty(t, decodeList[assessment.Result](ResultsKey, []byte(`"not a list"`)))
}

func TestFilterInteractions(t *testing.T) {
	base := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
	var all []store.Interaction
	for i, k := range []string{"chat", "writing", "chat", "mindmap"} {
		all = append(all, store.Interaction{
			ID:        k + string(rune('0'+i)),
			Kind:      k,
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Hour),
		})
	}

	got := filterInteractions(all, store.QueryOpts{})
	require.Len(t, got, 4)
	assert.Equal(t, "mindmap", got[0].Kind)

	got = filterInteractions(all, store.QueryOpts{Kind: "chat", Limit: 1})
	require.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].Sequence)

	got = filterInteractions(all, store.QueryOpts{After: 1, Before: 4})
	assert.Len(t, got, 2)

	got = filterInteractions(all, store.QueryOpts{From: base.Add(time.Hour), To: base.Add(2 * time.Hour)})
	assert.Len(t, got, 2)
}

func TestResultRepo_Redis(t *testing.T) {
	s := openTestRedis(t)
	ctx := context.Background()
	repo := s.ResultRepo()

	all, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	sc, err := assessment.Lookup("disc")
	require.NoError(t, err)
	res, err := assessment.Grade(sc, assessment.ParseAnswers(strings.Repeat("A", 21)), assessment.Student{Name: "Hà"}, time.Now())
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, *res))

	all, err = repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "D", all[0].Classification.Code)

	got, err := repo.Get(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, res.ID, got.ID)
	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCorruptBlobReadsEmpty(t *testing.T) {
	s := openTestRedis(t)
	ctx := context.Background()
	require.NoError(t, s.client.Set(ctx, ResultsKey, "{broken", 0).Err())

	all, err := s.ResultRepo().LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	// The next write replaces the corrupt blob.
	require.NoError(t, s.client.Set(ctx, LogsKey, "[{", 0).Err())
	require.NoError(t, s.InteractionRepo().Append(ctx, store.Interaction{Kind: "chat"}))
	logs, err := s.InteractionRepo().List(ctx, store.QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestInteractionRepo_Redis(t *testing.T) {
	s := openTestRedis(t)
	ctx := context.Background()
	repo := s.InteractionRepo()

	require.NoError(t, repo.Append(ctx, store.Interaction{Kind: "chat", Input: "a"}))
	require.NoError(t, repo.Append(ctx, store.Interaction{Kind: "writing", Input: "b"}))

	logs, err := repo.List(ctx, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "writing", logs[0].Kind)
	assert.NotEmpty(t, logs[0].ID)
	assert.False(t, logs[0].Timestamp.IsZero())
}

func TestAppendRewritesSingleArray(t *testing.T) {
	s := openTestRedis(t)
	ctx := context.Background()
	repo := s.InteractionRepo()

	for _, k := range []string{"chat", "writing", "mindmap"} {
		require.NoError(t, repo.Append(ctx, store.Interaction{Kind: k}))
	}

	keys, err := s.client.Keys(ctx, "laban:*").Result()
	require.NoError(t, err)
	assert.Equal(t, []string{LogsKey}, keys)

	raw, err := s.client.Get(ctx, LogsKey).Bytes()
	require.NoError(t, err)
	var blob []store.Interaction
	require.NoError(t, json.Unmarshal(raw, &blob))
	require.Len(t, blob, 3)
	assert.Equal(t, "chat", blob[0].Kind)
	assert.Equal(t, "mindmap", blob[2].Kind)
}

func TestReset_ClearsBothKeys(t *testing.T) {
	s := openTestRedis(t)
	ctx := context.Background()
	require.NoError(t, s.InteractionRepo().Append(ctx, store.Interaction{Kind: "chat"}))
	require.NoError(t, s.client.Set(ctx, ResultsKey, "[]", 0).Err())

	require.NoError(t, s.Reset(ctx))
	n, err := s.client.Exists(ctx, ResultsKey, LogsKey).Result()
	require.NoError(t, err)
	assert.Zero(t, n)
}
