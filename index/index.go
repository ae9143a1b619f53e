package index

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/candidex/ai"
	"github.com/poiesic/candidex/core"
	"golang.org/x/time/rate"
)

// DefaultDimension is the expected embedding dimensionality before a build
// has observed real vectors (OpenAI ada-002 produces 1536-float vectors).
const DefaultDimension = 1536

const (
	defaultMaxRetries   = 3
	defaultRetryDelay   = 1 * time.Second
	defaultEmbedTimeout = 30 * time.Second
)

// Index maintains a queryable vector index over candidate records.
//
// The index has two states: EMPTY (no backing structure) and BUILT (store
// and records present and consistent). Vector position i always corresponds
// to record i in the backing list; the two are rebuilt together and never
// mutated independently.
//
// Build and Remove are not reentrant-safe. Callers must serialize mutating
// access; Search is read-only and safe to run concurrently with other reads.
type Index struct {
	embedder     ai.Embedder
	records      []*core.CandidateRecord
	store        *flatStore
	defaultDim   int
	dimension    int
	pool         *ants.Pool
	limiter      *rate.Limiter
	embedTimeout time.Duration
	maxRetries   int
	retryDelay   time.Duration
	logger       *slog.Logger
}

// Option configures an Index.
type Option func(*Index) error

// WithPoolSize sets the worker pool size for concurrent embedding calls
// during Build. Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(i *Index) error {
		if size < 1 {
			size = 1
		}

		// Release old pool
		if i.pool != nil {
			i.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		i.pool = pool
		return nil
	}
}

// WithDimension sets the dimensionality reported before any build.
// Default is DefaultDimension.
func WithDimension(dim int) Option {
	return func(i *Index) error {
		if dim < 1 {
			dim = DefaultDimension
		}
		i.defaultDim = dim
		i.dimension = dim
		return nil
	}
}

// WithEmbedTimeout sets the per-call timeout for embedding requests.
// A zero duration disables the timeout. Default is 30 seconds; a timed-out
// call fails the whole build, consistent with the all-or-nothing contract.
func WithEmbedTimeout(timeout time.Duration) Option {
	return func(i *Index) error {
		if timeout < 0 {
			timeout = 0
		}
		i.embedTimeout = timeout
		return nil
	}
}

// WithRetry configures retry behavior for embedding calls.
// Defaults are 3 attempts with a 1 second base delay.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(i *Index) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		i.maxRetries = maxAttempts
		i.retryDelay = baseDelay
		return nil
	}
}

// WithRateLimit throttles embedding calls to n per second with the given
// burst. Useful against rate-limited embedding APIs. Default is unlimited.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(i *Index) error {
		if perSecond <= 0 {
			i.limiter = nil
			return nil
		}
		if burst < 1 {
			burst = 1
		}
		i.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(i *Index) error {
		if logger == nil {
			logger = slog.Default()
		}
		i.logger = logger
		return nil
	}
}

// New creates a new, empty index. Construction is separate from Build so
// callers can own many independent indices without global state.
func New(embedder ai.Embedder, opts ...Option) (*Index, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	// Default pool size
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	i := &Index{
		embedder:     embedder,
		defaultDim:   DefaultDimension,
		dimension:    DefaultDimension,
		pool:         pool,
		embedTimeout: defaultEmbedTimeout,
		maxRetries:   defaultMaxRetries,
		retryDelay:   defaultRetryDelay,
		logger:       slog.Default().With("component", "index"),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(i); optErr != nil {
			i.Release()
			return nil, optErr
		}
	}

	return i, nil
}

// Build replaces the index contents with the given records. Every record is
// embedded, vectors are L2-normalized, and a fresh inner-product store is
// populated in one batch. The build is all-or-nothing: if any embedding call
// fails, the previous index state is left untouched and an error is
// returned, so the record list and vector store never fall out of alignment.
// An empty record list clears the index.
func (i *Index) Build(ctx context.Context, records []*core.CandidateRecord) error {
	if len(records) == 0 {
		i.Clear()
		i.logger.Info("built empty index")
		return nil
	}

	texts := make([]string, len(records))
	for pos, record := range records {
		texts[pos] = EmbeddingText(record)
	}

	i.logger.Debug("embedding records for index build", "records", len(texts))
	vectors, err := i.embedAll(ctx, texts)
	if err != nil {
		i.logger.Error("index build aborted", "err", err)
		return err
	}

	store := newFlatStore(len(vectors[0]))
	for pos, vector := range vectors {
		if err := store.add(vector); err != nil {
			return fmt.Errorf("indexing record %d: %w", pos, err)
		}
	}

	// Swap both structures together only once everything succeeded.
	i.store = store
	i.records = records
	i.dimension = store.dim

	i.logger.Info("built index", "candidates", len(records), "dimension", store.dim)
	return nil
}

// Search embeds the query and returns up to min(k, record count) hits ranked
// by cosine similarity, highest first, with Rank assigned 1..N. An empty
// index yields an empty result set rather than an error. k must be positive.
func (i *Index) Search(ctx context.Context, query string, k int) ([]*core.SearchHit, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: received %d", ErrInvalidLimit, k)
	}
	if i.store == nil || len(i.records) == 0 {
		return []*core.SearchHit{}, nil
	}

	vector, err := i.embedOne(ctx, query)
	if err != nil {
		i.logger.Error("error embedding query", "err", err)
		return nil, err
	}

	scored := i.store.search(vector, k)

	hits := make([]*core.SearchHit, 0, len(scored))
	for rank, match := range scored {
		hits = append(hits, &core.SearchHit{
			Record:          i.records[match.position].Clone(),
			SimilarityScore: match.score,
			Rank:            rank + 1,
		})
	}

	return hits, nil
}

// Remove deletes the record with the given identity key and rebuilds the
// index from the remaining records. Returns false without modifying state
// when the key is not present. Removing the last record clears the index.
//
// The full rebuild costs O(N) embedding calls. That is a deliberate
// trade-off: candidate datasets are small, and wholesale reconstruction
// keeps the record/vector alignment invariant trivially true.
func (i *Index) Remove(ctx context.Context, identityKey string) (bool, error) {
	position := -1
	for pos, record := range i.records {
		if record.IdentityKey == identityKey {
			position = pos
			break
		}
	}
	if position < 0 {
		return false, nil
	}

	remaining := make([]*core.CandidateRecord, 0, len(i.records)-1)
	remaining = append(remaining, i.records[:position]...)
	remaining = append(remaining, i.records[position+1:]...)

	// Build swaps state only on success, so a failed rebuild leaves the
	// index unchanged with the record still present.
	if err := i.Build(ctx, remaining); err != nil {
		return false, err
	}

	i.logger.Info("removed candidate from index", "identityKey", identityKey, "remaining", len(remaining))
	return true, nil
}

// Stats reports read-only index introspection data.
func (i *Index) Stats() Stats {
	return Stats{
		TotalCandidates: len(i.records),
		IndexBuilt:      len(i.records) > 0,
		Dimension:       i.dimension,
	}
}

// Stats describes the current state of an Index.
type Stats struct {
	TotalCandidates int
	IndexBuilt      bool
	Dimension       int
}

// Clear empties the index, discarding records and vectors.
func (i *Index) Clear() {
	i.store = nil
	i.records = nil
	i.dimension = i.defaultDim
}

// Release releases resources including the worker pool.
// The index should not be used after calling Release.
func (i *Index) Release() {
	if i.pool != nil {
		i.pool.Release()
	}
}

// embedAll fans embedding calls out over the worker pool while preserving
// input order: the vector for texts[pos] always lands at position pos.
// Any failure aborts the whole batch.
func (i *Index) embedAll(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	setErr := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
		}
	}

	for pos, text := range texts {
		wg.Add(1)
		submitted := i.pool.Submit(func() {
			defer wg.Done()

			mu.Lock()
			failed := firstErr != nil
			mu.Unlock()
			if failed {
				return
			}

			vector, err := i.embedOne(ctx, text)
			if err != nil {
				setErr(fmt.Errorf("embedding record %d: %w", pos, err))
				return
			}
			vectors[pos] = vector
		})
		if submitted != nil {
			wg.Done()
			setErr(submitted)
		}
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return vectors, nil
}

// embedOne fetches and L2-normalizes a single embedding, applying the
// configured rate limit, timeout, and retry policy.
func (i *Index) embedOne(ctx context.Context, text string) ([]float32, error) {
	if i.limiter != nil {
		if err := i.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	callCtx := ctx
	if i.embedTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, i.embedTimeout)
		defer cancel()
	}

	var vector []float32
	err := retryWithBackoff(callCtx, func() error {
		var embedErr error
		vector, embedErr = i.embedder.EmbedText(callCtx, text)
		return embedErr
	}, i.maxRetries, i.retryDelay)
	if err != nil {
		return nil, err
	}
	if len(vector) == 0 {
		return nil, ErrEmptyVector
	}

	return NormalizeVector(vector), nil
}
