package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/gsearch/internal/core/domain"
	"github.com/custodia-labs/gsearch/internal/core/ports/driving"
)

// TableOutcome is what one table produced for a search.
type TableOutcome struct {
	Preview domain.TablePreview
	Results []domain.SearchResult
	Err     error
	Done    bool
}

// SearchOutcome gathers every table's event for one invocation.
type SearchOutcome struct {
	Invocation domain.SearchInvocation
	Tables     []TableOutcome
}

// Complete reports whether every table has reported.
func (o SearchOutcome) Complete() bool {
	for _, t := range o.Tables {
		if !t.Done {
			return false
		}
	}
	return true
}

// SearchAndWait runs a search and blocks until every table has reported
// or ctx is done. On ctx expiry the partial outcome is returned with
// ctx.Err(); tables still pending have Done false.
func SearchAndWait(ctx context.Context, svc driving.SearchService, term string) (SearchOutcome, error) {
	var (
		mu      sync.Mutex
		pending []domain.TableSearchEvent
		notify  = make(chan struct{}, 1)
	)
	unsubscribe := svc.Subscribe(func(ev domain.TableSearchEvent) {
		mu.Lock()
		pending = append(pending, ev)
		mu.Unlock()
		select {
		case notify <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	inv := svc.Search(ctx, term)
	outcome := SearchOutcome{Invocation: inv, Tables: make([]TableOutcome, len(inv.Tables))}
	index := make(map[string]int, len(inv.Tables))
	for i, p := range inv.Tables {
		outcome.Tables[i] = TableOutcome{Preview: p}
		index[p.Table] = i
	}
	if inv.Empty() {
		return outcome, nil
	}

	remaining := len(inv.Tables)
	for remaining > 0 {
		mu.Lock()
		batch := pending
		pending = nil
		mu.Unlock()

		for _, ev := range batch {
			i, ok := index[ev.Table]
			if ev.SearchID != inv.ID || !ok || outcome.Tables[i].Done {
				continue
			}
			outcome.Tables[i].Results = ev.Results
			outcome.Tables[i].Err = ev.Err
			outcome.Tables[i].Done = true
			remaining--
		}
		if remaining == 0 {
			break
		}

		select {
		case <-notify:
		case <-ctx.Done():
			return outcome, ctx.Err()
		}
	}
	return outcome, nil
}
