package ranker_test

import (
	"context"

	"github.com/Ahmed-Sermani/pagerank/corpus"
	"github.com/Ahmed-Sermani/pagerank/ranker"
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(SolverTestSuite))

type SolverTestSuite struct{}

func (s *SolverTestSuite) TestRingConvergesToUniformRanks(c *gc.C) {
	cp := mustCorpus(c, ringCorpus)

	res := s.rank(c, ranker.SolverConfig{
		DampingFactor: 0.85,
		Tolerance:     ranker.DefaultTolerance,
	}, cp)
	c.Assert(res.Algorithm, gc.Equals, "iteration")
	c.Assert(res.Iterations, gc.Equals, 1)
	for _, p := range cp.Pages() {
		assertClose(c, res.Ranks[p], 1.0/3, 1e-9)
	}
}

func (s *SolverTestSuite) TestDanglingPageSharesRankWithEveryPage(c *gc.C) {
	cp := mustCorpus(c, danglingPairCorpus)

	// With "a" dangling and b -> a:
	//   b = (1-d)/2 + d*a/2 and a + b = 1, so b = 1/(2+d).
	for _, d := range []float64{0.15, 0.5, 0.85} {
		res := s.rank(c, ranker.SolverConfig{
			DampingFactor: d,
			Tolerance:     1e-10,
		}, cp)
		assertClose(c, res.Ranks["b"], 1/(2+d), 1e-8)
		assertClose(c, res.Ranks["a"], (1+d)/(2+d), 1e-8)
	}
}

func (s *SolverTestSuite) TestTenPageCorpus(c *gc.C) {
	for _, withDangling := range []bool{false, true} {
		cp := mustCorpus(c, tenPageCorpus(withDangling))
		if !withDangling {
			for _, p := range cp.Pages() {
				c.Assert(cp.IsDangling(p), gc.Equals, false, gc.Commentf("page %s", p))
			}
		}

		res := s.rank(c, ranker.SolverConfig{
			DampingFactor: ranker.DefaultDampingFactor,
			Tolerance:     ranker.DefaultTolerance,
		}, cp)
		c.Assert(res.Iterations <= 50, gc.Equals, true, gc.Commentf("dangling pages: %t, took %d iterations", withDangling, res.Iterations))
		c.Assert(res.Ranks.Validate(cp, 1e-3), gc.IsNil)
	}
}

func (s *SolverTestSuite) TestResultIsAFixedPoint(c *gc.C) {
	cp := mustCorpus(c, smallCorpus)
	d := ranker.DefaultDampingFactor

	res := s.rank(c, ranker.SolverConfig{
		DampingFactor: d,
		Tolerance:     1e-12,
	}, cp)

	// Applying the transition model to the converged ranks must give the
	// same ranks back.
	next := make(ranker.Distribution)
	for _, q := range cp.Pages() {
		t, err := ranker.Transition(cp, q, d)
		c.Assert(err, gc.IsNil)
		for p, w := range t {
			next[p] += res.Ranks[q] * w
		}
	}
	c.Assert(next.MaxAbsDiff(res.Ranks) < 1e-9, gc.Equals, true)
}

func (s *SolverTestSuite) TestParallelWorkersMatchSingleWorker(c *gc.C) {
	cp := mustCorpus(c, tenPageCorpus(true))

	cfg := ranker.SolverConfig{
		DampingFactor: ranker.DefaultDampingFactor,
		Tolerance:     1e-6,
	}
	single := s.rank(c, cfg, cp)

	cfg.ComputeWorkers = 4
	parallel := s.rank(c, cfg, cp)

	c.Assert(parallel.Iterations, gc.Equals, single.Iterations)
	c.Assert(parallel.Ranks.MaxAbsDiff(single.Ranks) < 1e-12, gc.Equals, true)
}

func (s *SolverTestSuite) TestIterationCap(c *gc.C) {
	cp := mustCorpus(c, smallCorpus)

	solver, err := ranker.NewSolver(ranker.SolverConfig{
		DampingFactor: ranker.DefaultDampingFactor,
		Tolerance:     1e-12,
		MaxIterations: 3,
	})
	c.Assert(err, gc.IsNil)

	res, err := solver.Rank(context.Background(), cp)
	c.Assert(xerrors.Is(err, ranker.ErrConvergence), gc.Equals, true, gc.Commentf("got %v", err))
	c.Assert(res, gc.IsNil)
}

func (s *SolverTestSuite) TestContextCancellation(c *gc.C) {
	cp := mustCorpus(c, smallCorpus)

	solver, err := ranker.NewSolver(ranker.SolverConfig{
		DampingFactor: ranker.DefaultDampingFactor,
		Tolerance:     ranker.DefaultTolerance,
	})
	c.Assert(err, gc.IsNil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := solver.Rank(ctx, cp)
	c.Assert(xerrors.Is(err, context.Canceled), gc.Equals, true)
	c.Assert(res, gc.IsNil)
}

func (s *SolverTestSuite) rank(c *gc.C, cfg ranker.SolverConfig, cp *corpus.Corpus) *ranker.Result {
	solver, err := ranker.NewSolver(cfg)
	c.Assert(err, gc.IsNil)
	res, err := solver.Rank(context.Background(), cp)
	c.Assert(err, gc.IsNil)
	return res
}
