package bsp

import (
	"sync"
	"sync/atomic"

	"golang.org/x/xerrors"
)

// ComputeFunc is a function that a graph instance invokes on each vertex when
// executing a superstep.
type ComputeFunc[VT, ET any] func(g *Graph[VT, ET], v *Vertex[VT, ET]) error

type Vertex[VT any, ET any] struct {
	id    string
	value VT
	edges []*Edge[ET]
}

func (v *Vertex[VT, ET]) ID() string { return v.id }

func (v *Vertex[VT, ET]) Edges() []*Edge[ET] { return v.edges }

func (v *Vertex[VT, ET]) Value() VT { return v.value }

func (v *Vertex[VT, ET]) SetValue(val VT) { v.value = val }

type Edge[ET any] struct {
	value ET
	dstID string
}

func (e *Edge[ET]) DstID() string { return e.dstID }

func (e *Edge[ET]) Value() ET { return e.value }

func (e *Edge[ET]) SetValue(val ET) { e.value = val }

// Graph implements a parallel graph processor based on the concepts described
// in the Pregel paper https://15799.courses.cs.cmu.edu/fall2013/static/papers/p135-malewicz.pdf .
//
// Vertices only communicate through state the caller keeps outside of the
// graph and through aggregators; the superstep barrier guarantees that
// everything written during superstep N is visible to superstep N+1.
type Graph[VT, ET any] struct {
	superstep   int
	vertices    map[string]*Vertex[VT, ET]
	aggregators map[string]Aggregator
	computeFunc ComputeFunc[VT, ET]

	// wg used for compute workers
	wg sync.WaitGroup

	// vertexCh polled by compute function workers to optain the next
	// vertex to be processed
	vertexCh chan *Vertex[VT, ET]

	// errCh is buffered channel where workers publish any errors that occurs
	// during invokion the compute function.
	// When compute worker detects an error it will attempts to publish it into the channel.
	// if the channel is full, another error has already been written to it, the new error will
	// be safely ignored.
	errCh chan error

	// stepCompletedCh channel allows compute workers to signal
	// when the last enqueued vertex has been processed.
	stepCompletedCh chan struct{}

	// activeInStep is the number of vertices that are processed in the superstep
	// it will be reset at the start of superstep
	activeInStep int64

	// pendingInStep is the number of pending vertices to be processed in the superstep
	// it's set to len(vertices) at the start of the superstep
	pendingInStep int64
}

// NewGraph creates a new Graph instance using the specified configuration. It
// is important for callers to invoke Close() on the returned graph instance
// when they are done using it.
func NewGraph[VT, ET any](cfg GraphConfig[VT, ET]) (*Graph[VT, ET], error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("graph config validation failed: %w", err)
	}

	g := &Graph[VT, ET]{
		computeFunc: cfg.ComputeFn,
		aggregators: make(map[string]Aggregator),
		vertices:    make(map[string]*Vertex[VT, ET]),
	}
	g.startWorkers(cfg.ComputeWorkers)

	return g, nil
}

// Close stops the compute workers and releases any resources associated
// with the graph.
func (g *Graph[VT, ET]) Close() error {
	close(g.vertexCh)
	g.wg.Wait()

	g.Reset()
	return nil
}

// Reset the state of the graph by removing any existing vertices or
// aggregators and resetting the superstep counter.
func (g *Graph[VT, ET]) Reset() {
	g.superstep = 0
	g.vertices = make(map[string]*Vertex[VT, ET])
	g.aggregators = make(map[string]Aggregator)
}

// AddVertex inserts a new vertex with the specified id and initial value into
// the graph. If the vertex already exists, AddVertex will just overwrite its
// value with the provided initValue.
func (g *Graph[VT, ET]) AddVertex(id string, initValue VT) {
	v := g.vertices[id]
	if v == nil {
		v = &Vertex[VT, ET]{id: id}
		g.vertices[id] = v
	}
	v.SetValue(initValue)
}

// AddEdge inserts a directed edge from src to destination and annotates it
// with the specified initValue. Edges are owned by the source vertex and
// both endpoints must already be part of the graph.
func (g *Graph[VT, ET]) AddEdge(srcID, dstID string, initValue ET) error {
	srcVertex := g.vertices[srcID]
	if srcVertex == nil {
		return xerrors.Errorf("create edge from %q to %q: %w", srcID, dstID, ErrUnknownEdgeSource)
	}
	if g.vertices[dstID] == nil {
		return xerrors.Errorf("create edge from %q to %q: %w", srcID, dstID, ErrUnknownEdgeTarget)
	}

	srcVertex.edges = append(srcVertex.edges, &Edge[ET]{
		dstID: dstID,
		value: initValue,
	})
	return nil
}

func (g *Graph[VT, ET]) RegisterAggregator(name string, aggregator Aggregator) {
	g.aggregators[name] = aggregator
}

func (g *Graph[VT, ET]) Aggregator(name string) Aggregator {
	return g.aggregators[name]
}

func (g *Graph[VT, ET]) Aggregators() map[string]Aggregator { return g.aggregators }

func (g *Graph[VT, ET]) Superstep() int { return g.superstep }

func (g *Graph[VT, ET]) Vertices() map[string]*Vertex[VT, ET] { return g.vertices }

// startWorkers allocates the required channels and spins up numWorkers to
// execute each superstep.
func (g *Graph[VT, ET]) startWorkers(numWorkers int) {
	g.vertexCh = make(chan *Vertex[VT, ET])
	g.errCh = make(chan error, 1)
	g.stepCompletedCh = make(chan struct{})

	g.wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go g.stepWorker()
	}
}

// stepWorker consumes vertexCh for incoming vertices and executes the configured
// ComputeFunc for each one. The worker exits when vertexCh gets
// closed.
func (g *Graph[VT, ET]) stepWorker() {
	defer g.wg.Done()
	for v := range g.vertexCh {
		_ = atomic.AddInt64(&g.activeInStep, 1)
		if err := g.computeFunc(g, v); err != nil {
			emitError(g.errCh, xerrors.Errorf("error while running compute function for vertex %q: %w", v.ID(), err))
		}
		if atomic.AddInt64(&g.pendingInStep, -1) == 0 {
			g.stepCompletedCh <- struct{}{}
		}
	}
}

// step executes the next superstep and returns back the number of vertices
// that were processed.
func (g *Graph[VT, ET]) step() (int, error) {
	// at the start of the superstep
	// it's safe to assgin values to these variables directly
	g.activeInStep = 0
	g.pendingInStep = int64(len(g.vertices))

	// no work to do
	if g.pendingInStep == 0 {
		return 0, nil
	}

	// send vertices to the channel to be processed
	for _, v := range g.vertices {
		g.vertexCh <- v
	}

	// block until the worker pool has finished processing all vertices
	<-g.stepCompletedCh

	// get errors happend during the executing the step
	var err error
	select {
	case err = <-g.errCh:
	default: // no error
	}

	return int(atomic.LoadInt64(&g.activeInStep)), err
}

func emitError(errCh chan<- error, err error) {
	select {
	case errCh <- err:
	default: // the channel already contains an error
	}
}
