package memory

import (
	"sync"

	"github.com/Ahmed-Sermani/pagerank/graph"
)

// snapshotIterator walks a slice of records captured while holding the
// store lock. Records are cloned on access since a concurrent upsert may
// overwrite them in place.
type snapshotIterator[T any] struct {
	mu    *sync.RWMutex
	items []*T
	pos   int
}

func (it *snapshotIterator[T]) Next() bool {
	if it.pos >= len(it.items) {
		return false
	}
	it.pos++
	return true
}

func (it *snapshotIterator[T]) current() *T {
	it.mu.RLock()
	item := new(T)
	*item = *it.items[it.pos-1]
	it.mu.RUnlock()
	return item
}

func (it *snapshotIterator[T]) Error() error { return nil }

func (it *snapshotIterator[T]) Close() error { return nil }

type linkIterator struct {
	snapshotIterator[graph.Link]
}

func (it *linkIterator) Link() *graph.Link { return it.current() }

type edgeIterator struct {
	snapshotIterator[graph.Edge]
}

func (it *edgeIterator) Edge() *graph.Edge { return it.current() }
