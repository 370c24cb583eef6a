package aggregators

import (
	"math"
	"sync/atomic"

	"github.com/Ahmed-Sermani/pagerank/bsp"
)

var _ bsp.Aggregator = (*Float64Aggregator)(nil)

// Float64Aggregator implements a concurrent-safe accumlator for float64
// values. The value is kept as its IEEE-754 bit pattern so it can be
// updated with the atomic uint64 primitives.
type Float64Aggregator struct {
	bits uint64
}

func (a *Float64Aggregator) Type() string {
	return "Float64Aggregator"
}

func (a *Float64Aggregator) Get() any {
	return math.Float64frombits(atomic.LoadUint64(&a.bits))
}

func (a *Float64Aggregator) Set(v any) {
	atomic.StoreUint64(&a.bits, math.Float64bits(v.(float64)))
}

func (a *Float64Aggregator) Aggregate(v any) {
	for v64 := v.(float64); ; {
		oldBits := atomic.LoadUint64(&a.bits)
		newBits := math.Float64bits(math.Float64frombits(oldBits) + v64)
		if atomic.CompareAndSwapUint64(&a.bits, oldBits, newBits) {
			return
		}
	}
}
