/*
implements a single process take on the BSP https://en.wikipedia.org/wiki/Bulk_synchronous_parallel
computing model. Every superstep runs a compute function on each vertex
in parallel and no superstep starts before the previous one has finished.
*/
package bsp

import (
	"golang.org/x/xerrors"
)

var (
	ErrUnknownEdgeSource = xerrors.New("source vertex is not part of the graph")
	ErrUnknownEdgeTarget = xerrors.New("destination vertex is not part of the graph")
)

// Aggregator is implemented by values that collect a global value while
// vertices are being processed. Implementations must be safe for concurrent
// use since compute workers share them.
type Aggregator interface {
	Type() string
	Set(val any)
	Get() any
	// updates the Aggregator value based on the current value.
	Aggregate(val any)
}
