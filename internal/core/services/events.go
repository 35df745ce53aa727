package services

import (
	"sync"

	"github.com/custodia-labs/gsearch/internal/core/domain"
	"github.com/custodia-labs/gsearch/internal/core/ports/driving"
)

// broadcaster delivers table events to every subscribed listener.
type broadcaster struct {
	mu        sync.RWMutex
	next      uint64
	listeners map[uint64]driving.SearchListener
}

func newBroadcaster() *broadcaster {
	return &broadcaster{listeners: make(map[uint64]driving.SearchListener)}
}

func (b *broadcaster) subscribe(listener driving.SearchListener) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	b.listeners[id] = listener

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.listeners, id)
			b.mu.Unlock()
		})
	}
}

func (b *broadcaster) publish(event domain.TableSearchEvent) {
	b.mu.RLock()
	listeners := make([]driving.SearchListener, 0, len(b.listeners))
	for _, l := range b.listeners {
		listeners = append(listeners, l)
	}
	b.mu.RUnlock()

	for _, l := range listeners {
		l(event)
	}
}
