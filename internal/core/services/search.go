package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"github.com/custodia-labs/gsearch/internal/core/domain"
	"github.com/custodia-labs/gsearch/internal/core/ports/driven"
	"github.com/custodia-labs/gsearch/internal/core/ports/driving"
	"github.com/custodia-labs/gsearch/internal/logger"
)

// Ensure Engine implements the interface.
var _ driving.SearchService = (*Engine)(nil)

const workerExpiry = 30 * time.Second

// Engine is the fan-out search orchestrator.
type Engine struct {
	mu     sync.RWMutex
	tables []tableState

	executor driven.QueryExecutor
	recent   *RecentCache
	pool     *ants.Pool
	events   *broadcaster
	newID    func() string
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithIDGenerator overrides how search ids are generated.
func WithIDGenerator(fn func() string) EngineOption {
	return func(e *Engine) {
		e.newID = fn
	}
}

// NewEngine creates an engine with no tables configured.
// recent may be nil, in which case selections are not remembered.
func NewEngine(executor driven.QueryExecutor, recent *RecentCache, opts ...EngineOption) (*Engine, error) {
	if executor == nil {
		return nil, fmt.Errorf("%w: query executor is required", domain.ErrNotConfigured)
	}

	// A negative size makes the pool unbounded so Submit never blocks.
	pool, err := ants.NewPool(-1, ants.WithExpiryDuration(workerExpiry))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}

	e := &Engine{
		executor: executor,
		recent:   recent,
		pool:     pool,
		events:   newBroadcaster(),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Close releases the worker pool, waiting up to timeout for running queries.
func (e *Engine) Close(timeout time.Duration) error {
	return e.pool.ReleaseTimeout(timeout)
}

// Configure validates cfg and replaces the table set wholesale.
// On error the previous configuration stays in effect.
func (e *Engine) Configure(cfg domain.EngineConfig) error {
	states, err := ValidateEngineConfig(cfg)
	if err != nil {
		return err
	}

	if e.recent != nil {
		e.recent.Configure(cfg.MaxRecentItems, cfg.EffectivePersistPolicy())
	}

	e.mu.Lock()
	e.tables = states
	e.mu.Unlock()

	for _, st := range states {
		logger.Debug("Table %s: reference %s resolves from %v", st.descriptor.Table, st.template, st.template.Placeholders())
	}
	logger.Debug("Configured %d tables", len(states))
	return nil
}

// Tables returns preview metadata in configuration order.
func (e *Engine) Tables() []domain.TablePreview {
	e.mu.RLock()
	defer e.mu.RUnlock()

	previews := make([]domain.TablePreview, len(e.tables))
	for i, t := range e.tables {
		previews[i] = t.descriptor.Preview()
	}
	return previews
}

// Subscribe registers a listener for table events.
func (e *Engine) Subscribe(listener driving.SearchListener) func() {
	return e.events.subscribe(listener)
}

// Search submits one query per table and returns without waiting.
func (e *Engine) Search(ctx context.Context, term string) domain.SearchInvocation {
	logger.Section("Search")
	logger.Debug("Term: %q", term)

	if strings.TrimSpace(term) == "" {
		logger.Debug("Empty term, nothing to search")
		return domain.SearchInvocation{}
	}

	e.mu.RLock()
	tables := e.tables
	e.mu.RUnlock()

	inv := domain.SearchInvocation{
		ID:     e.newID(),
		Term:   term,
		Tables: make([]domain.TablePreview, len(tables)),
	}
	for i, t := range tables {
		inv.Tables[i] = t.descriptor.Preview()
	}

	for _, t := range tables {
		if err := e.pool.Submit(func() { e.searchTable(ctx, inv.ID, t, term) }); err != nil {
			logger.Warn("Table %s: submit failed: %v", t.descriptor.Table, err)
			e.events.publish(domain.TableSearchFailed(inv.ID, t.descriptor.Table, err))
		}
	}

	return inv
}

func (e *Engine) searchTable(ctx context.Context, searchID string, t tableState, term string) {
	table := t.descriptor.Table

	filter, err := domain.BuildFilterExpression(t.descriptor, term)
	if err != nil {
		logger.Warn("Table %s: %v", table, err)
		e.events.publish(domain.TableSearchFailed(searchID, table, err))
		return
	}
	logger.Debug("Table %s: %s contains %q", table, strings.Join(filter.Fields, "|"), filter.Term)

	records, err := e.executor.Execute(ctx, filter)
	if err != nil {
		logger.Warn("Table %s: query failed: %v", table, err)
		e.events.publish(domain.TableSearchFailed(searchID, table, fmt.Errorf("query %s: %w", table, err)))
		return
	}

	results := make([]domain.SearchResult, 0, len(records))
	for _, r := range records {
		results = append(results, t.normalize(r))
	}
	logger.Debug("Table %s: %d results", table, len(results))
	e.events.publish(domain.TableSearchCompleted(searchID, table, results))
}

// Select records result, taken from table, in the recent list.
func (e *Engine) Select(ctx context.Context, table string, result domain.SearchResult) error {
	e.mu.RLock()
	var icon string
	found := false
	for _, t := range e.tables {
		if t.descriptor.Table == table {
			icon = t.descriptor.Icon
			found = true
			break
		}
	}
	e.mu.RUnlock()

	if !found {
		return fmt.Errorf("%w: table %q", domain.ErrNotFound, table)
	}
	if e.recent == nil {
		return nil
	}

	ref, ok := result.Reference()
	if !ok {
		reason, _ := result.FailureReason()
		logger.Warn("Selected result %q has no reference: %s", result.ID(), reason)
	}
	return e.recent.Record(ctx, domain.RecentSearchEntry{
		Icon:      icon,
		Reference: ref,
		Result:    result,
	})
}
