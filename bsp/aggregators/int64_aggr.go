package aggregators

import (
	"sync/atomic"

	"github.com/Ahmed-Sermani/pagerank/bsp"
)

var _ bsp.Aggregator = (*IntAggregator)(nil)

// IntAggregator implements a concurrent-safe accumlator for int values.
// It uses mutex free implementation.
type IntAggregator struct {
	sum int64
}

func (a *IntAggregator) Type() string {
	return "IntAggregator"
}

func (a *IntAggregator) Get() any {
	return int(atomic.LoadInt64(&a.sum))
}

func (a *IntAggregator) Set(v any) {
	atomic.StoreInt64(&a.sum, int64(v.(int)))
}

func (a *IntAggregator) Aggregate(v any) {
	_ = atomic.AddInt64(&a.sum, int64(v.(int)))
}
