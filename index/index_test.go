package index

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/poiesic/candidex/ai/mock"
	"github.com/poiesic/candidex/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// directionEmbedder maps known texts onto fixed 3-dimensional directions so
// tests can predict similarity scores exactly.
func directionEmbedder(directions map[string][]float32) *mock.MockEmbedder {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(_ context.Context, text string) ([]float32, error) {
		if vector, ok := directions[text]; ok {
			return vector, nil
		}
		return []float32{0, 0, 1}, nil
	}
	return embedder
}

func namedRecord(key, name string) *core.CandidateRecord {
	return &core.CandidateRecord{IdentityKey: key, Name: name}
}

func TestNew(t *testing.T) {
	t.Run("requires embedder", func(t *testing.T) {
		_, err := New(nil)
		assert.ErrorIs(t, err, ErrEmbedderRequired)
	})

	t.Run("starts empty", func(t *testing.T) {
		idx, err := New(mock.NewMockEmbedder())
		require.NoError(t, err)
		defer idx.Release()

		stats := idx.Stats()
		assert.Equal(t, 0, stats.TotalCandidates)
		assert.False(t, stats.IndexBuilt)
		assert.Equal(t, DefaultDimension, stats.Dimension)
	})

	t.Run("rejects bad retry option", func(t *testing.T) {
		_, err := New(mock.NewMockEmbedder(), WithRetry(0, time.Second))
		assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
	})
}

func TestIndexBuild(t *testing.T) {
	ctx := context.Background()

	t.Run("builds from records", func(t *testing.T) {
		idx, err := New(mock.NewMockEmbedder())
		require.NoError(t, err)
		defer idx.Release()

		records := []*core.CandidateRecord{
			namedRecord("a", "Alice"),
			namedRecord("b", "Bob"),
			namedRecord("c", "Carol"),
		}
		require.NoError(t, idx.Build(ctx, records))

		stats := idx.Stats()
		assert.Equal(t, 3, stats.TotalCandidates)
		assert.True(t, stats.IndexBuilt)
		assert.Equal(t, 384, stats.Dimension) // mock embedder dimensionality
	})

	t.Run("empty input clears", func(t *testing.T) {
		idx, err := New(mock.NewMockEmbedder())
		require.NoError(t, err)
		defer idx.Release()

		require.NoError(t, idx.Build(ctx, []*core.CandidateRecord{namedRecord("a", "Alice")}))
		require.NoError(t, idx.Build(ctx, nil))

		stats := idx.Stats()
		assert.Equal(t, 0, stats.TotalCandidates)
		assert.False(t, stats.IndexBuilt)
		assert.Equal(t, DefaultDimension, stats.Dimension)
	})

	t.Run("failure preserves previous state", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		idx, err := New(embedder)
		require.NoError(t, err)
		defer idx.Release()

		require.NoError(t, idx.Build(ctx, []*core.CandidateRecord{
			namedRecord("a", "Alice"),
			namedRecord("b", "Bob"),
		}))

		embedder.EmbedTextFunc = func(context.Context, string) ([]float32, error) {
			return nil, errors.New("embedding service down")
		}
		err = idx.Build(ctx, []*core.CandidateRecord{namedRecord("c", "Carol")})
		require.Error(t, err)

		stats := idx.Stats()
		assert.Equal(t, 2, stats.TotalCandidates)
		assert.True(t, stats.IndexBuilt)
	})

	t.Run("empty vector fails build", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextFunc = func(context.Context, string) ([]float32, error) {
			return []float32{}, nil
		}
		idx, err := New(embedder, WithRetry(1, 0))
		require.NoError(t, err)
		defer idx.Release()

		err = idx.Build(ctx, []*core.CandidateRecord{namedRecord("a", "Alice")})
		assert.ErrorIs(t, err, ErrEmptyVector)
	})

	t.Run("retries transient failures", func(t *testing.T) {
		var calls atomic.Int64
		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextFunc = func(_ context.Context, text string) ([]float32, error) {
			if calls.Add(1) < 3 {
				return nil, errors.New("rate limited")
			}
			return []float32{1, 0, 0}, nil
		}

		idx, err := New(embedder, WithPoolSize(1), WithRetry(3, time.Millisecond))
		require.NoError(t, err)
		defer idx.Release()

		require.NoError(t, idx.Build(ctx, []*core.CandidateRecord{namedRecord("a", "Alice")}))
		assert.True(t, idx.Stats().IndexBuilt)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		idx, err := New(mock.NewMockEmbedder())
		require.NoError(t, err)
		defer idx.Release()

		err = idx.Build(canceled, []*core.CandidateRecord{namedRecord("a", "Alice")})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("preserves record order across the pool", func(t *testing.T) {
		idx, err := New(mock.NewMockEmbedder(), WithPoolSize(4))
		require.NoError(t, err)
		defer idx.Release()

		records := make([]*core.CandidateRecord, 50)
		for i := range records {
			records[i] = namedRecord(string(rune('a'+i%26))+string(rune('0'+i/26)), "Candidate")
		}
		require.NoError(t, idx.Build(ctx, records))
		assert.Equal(t, 50, idx.Stats().TotalCandidates)
	})
}

func TestIndexSearch(t *testing.T) {
	ctx := context.Background()

	directions := map[string][]float32{
		"Alice": {1, 0, 0},
		"Bob":   {0.6, 0.8, 0},
		"Carol": {0, 1, 0},
		"query": {1, 0, 0},
	}
	records := []*core.CandidateRecord{
		namedRecord("a", "Alice"),
		namedRecord("b", "Bob"),
		namedRecord("c", "Carol"),
	}

	newBuilt := func(t *testing.T) *Index {
		t.Helper()
		idx, err := New(directionEmbedder(directions))
		require.NoError(t, err)
		t.Cleanup(idx.Release)
		require.NoError(t, idx.Build(ctx, records))
		return idx
	}

	t.Run("rejects non-positive limit", func(t *testing.T) {
		idx := newBuilt(t)
		_, err := idx.Search(ctx, "query", 0)
		assert.ErrorIs(t, err, ErrInvalidLimit)

		_, err = idx.Search(ctx, "query", -5)
		assert.ErrorIs(t, err, ErrInvalidLimit)
	})

	t.Run("empty index yields empty results without embedding", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		idx, err := New(embedder)
		require.NoError(t, err)
		defer idx.Release()

		hits, err := idx.Search(ctx, "anything", 5)
		require.NoError(t, err)
		assert.Empty(t, hits)
		assert.Equal(t, 0, embedder.CallCount())
	})

	t.Run("ranks by similarity descending", func(t *testing.T) {
		idx := newBuilt(t)

		hits, err := idx.Search(ctx, "query", 3)
		require.NoError(t, err)
		require.Len(t, hits, 3)

		assert.Equal(t, "Alice", hits[0].Record.Name)
		assert.Equal(t, "Bob", hits[1].Record.Name)
		assert.Equal(t, "Carol", hits[2].Record.Name)

		assert.InDelta(t, 1.0, hits[0].SimilarityScore, 1e-5)
		assert.InDelta(t, 0.6, hits[1].SimilarityScore, 1e-5)
		assert.InDelta(t, 0.0, hits[2].SimilarityScore, 1e-5)

		for i, hit := range hits {
			assert.Equal(t, i+1, hit.Rank)
		}
	})

	t.Run("truncates to limit", func(t *testing.T) {
		idx := newBuilt(t)

		hits, err := idx.Search(ctx, "query", 2)
		require.NoError(t, err)
		require.Len(t, hits, 2)
		assert.Equal(t, "Alice", hits[0].Record.Name)
		assert.Equal(t, "Bob", hits[1].Record.Name)
	})

	t.Run("limit above count returns all", func(t *testing.T) {
		idx := newBuilt(t)

		hits, err := idx.Search(ctx, "query", 100)
		require.NoError(t, err)
		assert.Len(t, hits, 3)
	})

	t.Run("returns record copies", func(t *testing.T) {
		idx := newBuilt(t)

		hits, err := idx.Search(ctx, "query", 1)
		require.NoError(t, err)
		require.Len(t, hits, 1)

		hits[0].Record.Name = "Mallory"

		again, err := idx.Search(ctx, "query", 1)
		require.NoError(t, err)
		assert.Equal(t, "Alice", again[0].Record.Name)
	})

	t.Run("propagates embedding failure", func(t *testing.T) {
		embedder := directionEmbedder(directions)
		idx, err := New(embedder, WithRetry(1, 0))
		require.NoError(t, err)
		defer idx.Release()
		require.NoError(t, idx.Build(ctx, records))

		embedder.EmbedTextFunc = func(context.Context, string) ([]float32, error) {
			return nil, errors.New("embedding service down")
		}
		_, err = idx.Search(ctx, "query", 3)
		assert.Error(t, err)
	})
}

func TestIndexRemove(t *testing.T) {
	ctx := context.Background()

	records := []*core.CandidateRecord{
		namedRecord("a", "Alice"),
		namedRecord("b", "Bob"),
		namedRecord("c", "Carol"),
	}

	t.Run("removes existing candidate", func(t *testing.T) {
		idx, err := New(mock.NewMockEmbedder())
		require.NoError(t, err)
		defer idx.Release()
		require.NoError(t, idx.Build(ctx, records))

		removed, err := idx.Remove(ctx, "b")
		require.NoError(t, err)
		assert.True(t, removed)
		assert.Equal(t, 2, idx.Stats().TotalCandidates)

		hits, err := idx.Search(ctx, "Bob", 10)
		require.NoError(t, err)
		for _, hit := range hits {
			assert.NotEqual(t, "b", hit.Record.IdentityKey)
		}
	})

	t.Run("unknown key is not an error", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		idx, err := New(embedder)
		require.NoError(t, err)
		defer idx.Release()
		require.NoError(t, idx.Build(ctx, records))

		before := embedder.CallCount()
		removed, err := idx.Remove(ctx, "nobody")
		require.NoError(t, err)
		assert.False(t, removed)
		assert.Equal(t, 3, idx.Stats().TotalCandidates)
		assert.Equal(t, before, embedder.CallCount())
	})

	t.Run("removing last record empties the index", func(t *testing.T) {
		idx, err := New(mock.NewMockEmbedder())
		require.NoError(t, err)
		defer idx.Release()
		require.NoError(t, idx.Build(ctx, []*core.CandidateRecord{namedRecord("a", "Alice")}))

		removed, err := idx.Remove(ctx, "a")
		require.NoError(t, err)
		assert.True(t, removed)

		stats := idx.Stats()
		assert.Equal(t, 0, stats.TotalCandidates)
		assert.False(t, stats.IndexBuilt)
	})

	t.Run("failed rebuild leaves index unchanged", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		idx, err := New(embedder, WithRetry(1, 0))
		require.NoError(t, err)
		defer idx.Release()
		require.NoError(t, idx.Build(ctx, records))

		embedder.EmbedTextFunc = func(context.Context, string) ([]float32, error) {
			return nil, errors.New("embedding service down")
		}
		removed, err := idx.Remove(ctx, "b")
		require.Error(t, err)
		assert.False(t, removed)
		assert.Equal(t, 3, idx.Stats().TotalCandidates)
	})
}

func TestIndexClear(t *testing.T) {
	idx, err := New(mock.NewMockEmbedder(), WithDimension(768))
	require.NoError(t, err)
	defer idx.Release()

	require.NoError(t, idx.Build(context.Background(), []*core.CandidateRecord{namedRecord("a", "Alice")}))
	require.True(t, idx.Stats().IndexBuilt)

	idx.Clear()

	stats := idx.Stats()
	assert.Equal(t, 0, stats.TotalCandidates)
	assert.False(t, stats.IndexBuilt)
	assert.Equal(t, 768, stats.Dimension)
}
