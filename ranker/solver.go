package ranker

import (
	"context"
	"math"

	"github.com/Ahmed-Sermani/pagerank/bsp"
	"github.com/Ahmed-Sermani/pagerank/bsp/aggregators"
	"github.com/Ahmed-Sermani/pagerank/corpus"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

var _ Algorithm = (*Solver)(nil)

const (
	unconvergedAggr = "unconverged"
	sadAggr         = "SAD"
	massAggr        = "mass"
	danglingAggr    = "dangling_residual"
)

// contribution annotates a reverse index edge: the page at index src links
// to the vertex owning the edge and passes on weight of its rank.
type contribution struct {
	src    int
	weight float64
}

type solverGraph = bsp.Graph[int, contribution]

// solverState keeps the two rank buffers outside of the graph. Superstep s
// reads ranks[s%2] and writes ranks[(s+1)%2], so the buffers swap roles
// after every superstep without copying.
type solverState struct {
	ranks    [2][]float64
	dangling []int
}

func (st *solverState) input(superstep int) []float64  { return st.ranks[superstep%2] }
func (st *solverState) output(superstep int) []float64 { return st.ranks[(superstep+1)%2] }

// danglingMass returns the total rank held by dangling pages before
// superstep runs.
func (st *solverState) danglingMass(superstep int) float64 {
	var (
		in  = st.input(superstep)
		sum float64
	)
	for _, idx := range st.dangling {
		sum += in[idx]
	}
	return sum
}

// Solver computes the PageRank fixed point by synchronous power iteration.
// Every superstep of the underlying BSP graph is one iteration; vertices pull
// the previous ranks of the pages linking to them through a reverse index.
type Solver struct {
	cfg SolverConfig
}

// NewSolver returns a new Solver instance using the provided config options.
func NewSolver(cfg SolverConfig) (*Solver, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("solver config validation failed: %w", err)
	}
	return &Solver{cfg: cfg}, nil
}

// Name implements Algorithm.
func (s *Solver) Name() string { return "iteration" }

// Rank iterates the PageRank update over c, starting from the uniform
// distribution, until every page changes by less than the configured
// tolerance. It fails with ErrConvergence once MaxIterations updates have
// run without reaching that point.
func (s *Solver) Rank(ctx context.Context, c *corpus.Corpus) (*Result, error) {
	n := c.Size()
	st := new(solverState)
	for i := range st.ranks {
		st.ranks[i] = make([]float64, n)
	}
	for i := range st.ranks[0] {
		st.ranks[0][i] = 1 / float64(n)
	}

	g, err := bsp.NewGraph(bsp.GraphConfig[int, contribution]{
		ComputeWorkers: s.cfg.ComputeWorkers,
		ComputeFn:      makeSolverComputeFunc(s.cfg.DampingFactor, s.cfg.Tolerance, n, st),
	})
	if err != nil {
		return nil, err
	}
	defer func() { _ = g.Close() }()

	if err = buildReverseIndex(g, c, st); err != nil {
		return nil, err
	}
	registerSolverAggregators(g)

	var iterations int
	ex := bsp.NewExecutor(g, bsp.ExecutorHooks[int, contribution]{
		PreStep: func(_ context.Context, g *solverGraph) error {
			g.Aggregator(unconvergedAggr).Set(0)
			g.Aggregator(sadAggr).Set(0.0)
			g.Aggregator(massAggr).Set(0.0)
			g.Aggregator(danglingAggr).Set(st.danglingMass(g.Superstep()) / float64(n))
			return nil
		},
		PostStepKeepRunning: func(_ context.Context, g *solverGraph, _ int) (bool, error) {
			iterations = g.Superstep() + 1
			unconverged := g.Aggregator(unconvergedAggr).Get().(int)
			s.cfg.Logger.WithFields(logrus.Fields{
				"iteration":   iterations,
				"unconverged": unconverged,
				"sad":         g.Aggregator(sadAggr).Get(),
				"mass":        g.Aggregator(massAggr).Get(),
			}).Debug("iteration completed")

			if unconverged == 0 {
				return false, nil
			}
			if iterations >= s.cfg.MaxIterations {
				return false, xerrors.Errorf("%d pages still changing after %d iterations: %w", unconverged, iterations, ErrConvergence)
			}
			return true, nil
		},
	})
	if err = ex.RunToCompletion(ctx); err != nil {
		return nil, xerrors.Errorf("power iteration: %w", err)
	}

	final := st.output(iterations - 1)
	ranks := make(Distribution, n)
	for i, rank := range final {
		ranks[c.PageAt(i)] = rank
	}

	s.cfg.Logger.WithFields(logrus.Fields{
		"pages":      n,
		"iterations": iterations,
	}).Debug("ranks converged")

	return &Result{
		Algorithm:  s.Name(),
		Ranks:      ranks,
		Iterations: iterations,
	}, nil
}

// buildReverseIndex adds a vertex for every page of c and, for every link
// q -> p, an edge from p back to q annotated with 1/outDegree(q).
//
// Dangling pages link to every page, themselves included. Rather than
// expanding them into N edges each, their indices are recorded in st and
// their rank is spread through the dangling residual aggregator.
func buildReverseIndex(g *solverGraph, c *corpus.Corpus, st *solverState) error {
	for i := 0; i < c.Size(); i++ {
		g.AddVertex(string(c.PageAt(i)), i)
	}

	for q := 0; q < c.Size(); q++ {
		outDegree := c.OutDegreeAt(q)
		if outDegree == 0 {
			st.dangling = append(st.dangling, q)
			continue
		}

		var (
			srcID  = string(c.PageAt(q))
			weight = 1 / float64(outDegree)
			err    error
		)
		c.ForEachLink(q, func(p int) {
			if err != nil {
				return
			}
			err = g.AddEdge(string(c.PageAt(p)), srcID, contribution{src: q, weight: weight})
		})
		if err != nil {
			return xerrors.Errorf("build reverse index: %w", err)
		}
	}
	return nil
}

func registerSolverAggregators(g *solverGraph) {
	g.RegisterAggregator(unconvergedAggr, new(aggregators.IntAggregator))
	g.RegisterAggregator(sadAggr, new(aggregators.Float64Aggregator))
	g.RegisterAggregator(massAggr, new(aggregators.Float64Aggregator))
	g.RegisterAggregator(danglingAggr, new(aggregators.Float64Aggregator))
}

// makeSolverComputeFunc returns a ComputeFunc that applies the PageRank
// update to a single page:
//
//	newRank[p] = (1-d)/N + d * (sum over q linking to p of oldRank[q]/outDegree(q))
//
// where the dangling residual stands in for the dangling pages.
func makeSolverComputeFunc(dampingFactor, tolerance float64, numPages int, st *solverState) bsp.ComputeFunc[int, contribution] {
	jump := (1 - dampingFactor) / float64(numPages)
	return func(g *solverGraph, v *bsp.Vertex[int, contribution]) error {
		var (
			superstep = g.Superstep()
			in        = st.input(superstep)
			out       = st.output(superstep)
			idx       = v.Value()
			incoming  = g.Aggregator(danglingAggr).Get().(float64)
		)
		for _, e := range v.Edges() {
			contrib := e.Value()
			incoming += in[contrib.src] * contrib.weight
		}

		newRank := jump + dampingFactor*incoming
		out[idx] = newRank

		delta := math.Abs(newRank - in[idx])
		g.Aggregator(sadAggr).Aggregate(delta)
		g.Aggregator(massAggr).Aggregate(newRank)
		if !(delta < tolerance) {
			g.Aggregator(unconvergedAggr).Aggregate(1)
		}
		return nil
	}
}
