// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package candidex

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/poiesic/candidex/ai"
	"github.com/poiesic/candidex/ai/openai"
	"github.com/poiesic/candidex/answer"
	"github.com/poiesic/candidex/core"
	"github.com/poiesic/candidex/index"
	"github.com/poiesic/candidex/normalize"
	"github.com/poiesic/candidex/storage"
	"github.com/poiesic/candidex/storage/badger"
)

// Engine ties the candidate pipeline together: persistent record storage,
// normalization, the vector index, answer composition, and the audit trail.
//
// Index mutations (Ingest, Refresh, Remove) are serialized internally;
// Search and Ask take a read lock, so they run concurrently with each other
// but never against an in-progress rebuild.
type Engine struct {
	backend    *badger.Backend
	store      storage.CandidateStore
	audit      storage.AuditLog
	provider   ai.AIProvider
	normalizer *normalize.Normalizer
	index      *index.Index
	composer   *answer.Composer
	auditUser  string
	logger     *slog.Logger

	mu sync.RWMutex
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig       *ai.Config
	provider       ai.AIProvider
	inMemory       bool
	auditUser      string
	indexOpts      []index.Option
	normalizerOpts []normalize.Option
}

// WithAIConfig sets the AI service configuration used to construct the
// default OpenAI-compatible provider.
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) {
		o.aiConfig = config
	}
}

// WithProvider supplies a pre-built AI provider, bypassing the default
// OpenAI-compatible one. Used by tests to inject mocks.
func WithProvider(provider ai.AIProvider) EngineOption {
	return func(o *engineOptions) {
		o.provider = provider
	}
}

// WithInMemoryStorage stores records in memory instead of on disk.
func WithInMemoryStorage() EngineOption {
	return func(o *engineOptions) {
		o.inMemory = true
	}
}

// WithAuditUser sets the user recorded on audit entries.
// Default is "system".
func WithAuditUser(user string) EngineOption {
	return func(o *engineOptions) {
		o.auditUser = user
	}
}

// WithIndexOptions forwards options to the underlying vector index.
func WithIndexOptions(opts ...index.Option) EngineOption {
	return func(o *engineOptions) {
		o.indexOpts = append(o.indexOpts, opts...)
	}
}

// WithNormalizerOptions forwards options to the underlying normalizer.
func WithNormalizerOptions(opts ...normalize.Option) EngineOption {
	return func(o *engineOptions) {
		o.normalizerOpts = append(o.normalizerOpts, opts...)
	}
}

// NewEngine opens storage at filePath and wires together the normalizer,
// index, and answer composer. The index starts empty; call Refresh to
// rebuild it from stored records, or Ingest to load new ones.
func NewEngine(filePath string, opts ...EngineOption) (*Engine, error) {
	// Apply options
	options := &engineOptions{
		aiConfig:  ai.DefaultConfig(), // Default if not provided
		auditUser: "system",
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	// Create candidate store
	store, err := badger.NewCandidateStore(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Create audit log
	audit, err := badger.NewAuditLog(backend)
	if err != nil {
		store.Close()
		backend.Close()
		return nil, err
	}

	// Create AI provider with configured settings, unless injected
	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			audit.Close()
			store.Close()
			backend.Close()
			return nil, err
		}
	}

	normalizer, err := normalize.NewNormalizer(options.normalizerOpts...)
	if err != nil {
		provider.Close()
		audit.Close()
		store.Close()
		backend.Close()
		return nil, err
	}

	idx, err := index.New(provider.Embedder(), options.indexOpts...)
	if err != nil {
		provider.Close()
		audit.Close()
		store.Close()
		backend.Close()
		return nil, err
	}

	composer, err := answer.New(provider.TextGenerator())
	if err != nil {
		idx.Release()
		provider.Close()
		audit.Close()
		store.Close()
		backend.Close()
		return nil, err
	}

	return &Engine{
		backend:    backend,
		store:      store,
		audit:      audit,
		provider:   provider,
		normalizer: normalizer,
		index:      idx,
		composer:   composer,
		auditUser:  options.auditUser,
		logger:     slog.Default(),
	}, nil
}

// Close releases the index, AI provider, and storage.
func (e *Engine) Close() error {
	e.index.Release()

	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
	}
	if err := e.audit.Close(); err != nil {
		e.logger.Error("error closing audit log", "err", err)
		return err
	}
	if err := e.store.Close(); err != nil {
		e.logger.Error("error closing candidate store", "err", err)
		return err
	}
	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// Ingest normalizes raw records, persists the normalized set as the new
// candidate corpus, and rebuilds the index over it. Returns the number of
// records kept after deduplication. A build failure leaves the previous
// index intact, but the store already holds the new records; a subsequent
// Refresh retries the build.
func (e *Engine) Ingest(ctx context.Context, raw []*core.CandidateRecord) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	normalized := e.normalizer.NormalizeAll(raw)

	if err := e.store.WriteAll(ctx, normalized); err != nil {
		return 0, err
	}

	if err := e.index.Build(ctx, normalized); err != nil {
		return 0, err
	}

	e.logAudit(ctx, "ingest", map[string]string{
		"received": strconv.Itoa(len(raw)),
		"kept":     strconv.Itoa(len(normalized)),
	})
	e.logger.Info("ingested candidates", "received", len(raw), "kept", len(normalized))
	return len(normalized), nil
}

// Refresh rebuilds the index from the records currently in storage.
func (e *Engine) Refresh(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	records, err := e.store.ReadAll(ctx)
	if err != nil {
		return err
	}

	if err := e.index.Build(ctx, records); err != nil {
		return err
	}

	e.logAudit(ctx, "refresh", map[string]string{
		"candidates": strconv.Itoa(len(records)),
	})
	return nil
}

// Search returns up to limit candidates ranked by similarity to the query.
func (e *Engine) Search(ctx context.Context, query string, limit int) ([]*core.SearchHit, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	hits, err := e.index.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	e.logAudit(ctx, "search", map[string]string{
		"intent": string(answer.ClassifyIntent(query)),
		"hits":   strconv.Itoa(len(hits)),
	})
	return hits, nil
}

// Ask answers a recruiter question: searches the index, then composes a
// justified natural-language response over the hits.
func (e *Engine) Ask(ctx context.Context, question string, limit int) (*answer.Response, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	hits, err := e.index.Search(ctx, question, limit)
	if err != nil {
		return nil, err
	}

	response, err := e.composer.ComposeAnswer(ctx, hits, question)
	if err != nil {
		return nil, err
	}

	e.logAudit(ctx, "ask", map[string]string{
		"intent": string(answer.ClassifyIntent(question)),
		"hits":   strconv.Itoa(len(hits)),
	})
	return response, nil
}

// Remove deletes a candidate from both the index and storage.
// Returns false when the identity key is unknown.
func (e *Engine) Remove(ctx context.Context, identityKey string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	removed, err := e.index.Remove(ctx, identityKey)
	if err != nil {
		return false, err
	}
	if !removed {
		// Not indexed; the store may still hold it (e.g. before any build)
		removed, err = e.store.DeleteByKey(ctx, identityKey)
		if err != nil {
			return false, err
		}
		if removed {
			e.logAudit(ctx, "remove", map[string]string{"identity_key": identityKey})
		}
		return removed, nil
	}

	if _, err := e.store.DeleteByKey(ctx, identityKey); err != nil {
		return true, err
	}

	e.logAudit(ctx, "remove", map[string]string{"identity_key": identityKey})
	return true, nil
}

// Stats reports engine state for introspection.
type Stats struct {
	TotalCandidates  int
	IndexBuilt       bool
	Dimension        int
	StoredCandidates int
}

// Stats returns current index and storage counts.
func (e *Engine) Stats(ctx context.Context) (Stats, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	stored, err := e.store.Count(ctx)
	if err != nil {
		return Stats{}, err
	}

	indexStats := e.index.Stats()
	return Stats{
		TotalCandidates:  indexStats.TotalCandidates,
		IndexBuilt:       indexStats.IndexBuilt,
		Dimension:        indexStats.Dimension,
		StoredCandidates: stored,
	}, nil
}

// AuditTrail returns up to limit audit entries, most recent first.
func (e *Engine) AuditTrail(ctx context.Context, limit int) ([]*core.AuditEntry, error) {
	return e.audit.Recent(ctx, limit)
}

// Suggestions returns example questions for first-time users.
func (e *Engine) Suggestions() []string {
	return answer.SearchSuggestions()
}

// logAudit records an action on the audit trail. Audit failures are logged
// and swallowed; the trail never blocks the operation it describes.
func (e *Engine) logAudit(ctx context.Context, action string, details map[string]string) {
	entry := &core.AuditEntry{
		Action:  action,
		User:    e.auditUser,
		Details: details,
	}
	if err := e.audit.Append(ctx, entry); err != nil {
		e.logger.Warn("failed to record audit entry", "action", action, "err", err)
	}
}
