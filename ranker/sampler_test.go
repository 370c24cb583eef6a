package ranker_test

import (
	"context"
	"math"

	"github.com/Ahmed-Sermani/pagerank/corpus"
	"github.com/Ahmed-Sermani/pagerank/ranker"
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(SamplerTestSuite))

type SamplerTestSuite struct{}

func (s *SamplerTestSuite) TestFrequenciesAreMultiplesOfSampleCount(c *gc.C) {
	cp := mustCorpus(c, smallCorpus)

	res := s.rank(c, ranker.SamplerConfig{
		DampingFactor: ranker.DefaultDampingFactor,
		Samples:       10,
		Walkers:       4,
		Seed:          7,
	}, cp)
	c.Assert(res.Algorithm, gc.Equals, "sampling")
	c.Assert(res.Samples, gc.Equals, 10)
	c.Assert(res.Ranks, gc.HasLen, cp.Size())

	var visits float64
	for _, p := range cp.Pages() {
		scaled := res.Ranks[p] * 10
		assertClose(c, scaled, math.Round(scaled), 1e-9)
		visits += scaled
	}
	assertClose(c, visits, 10, 1e-9)
}

func (s *SamplerTestSuite) TestSingleSample(c *gc.C) {
	cp := mustCorpus(c, smallCorpus)

	res := s.rank(c, ranker.SamplerConfig{
		DampingFactor: ranker.DefaultDampingFactor,
		Samples:       1,
		Walkers:       8,
		Seed:          1,
	}, cp)

	var visited int
	for _, p := range cp.Pages() {
		switch res.Ranks[p] {
		case 1:
			visited++
		case 0:
		default:
			c.Fatalf("unexpected rank %v for page %q", res.Ranks[p], p)
		}
	}
	c.Assert(visited, gc.Equals, 1)
}

func (s *SamplerTestSuite) TestSameSeedGivesSameEstimate(c *gc.C) {
	cp := mustCorpus(c, tenPageCorpus(true))

	cfg := ranker.SamplerConfig{
		DampingFactor: ranker.DefaultDampingFactor,
		Samples:       5000,
		Walkers:       3,
		Seed:          1234,
	}
	first := s.rank(c, cfg, cp)
	second := s.rank(c, cfg, cp)
	c.Assert(second.Ranks, gc.DeepEquals, first.Ranks)
}

func (s *SamplerTestSuite) TestDanglingPairEstimate(c *gc.C) {
	cp := mustCorpus(c, danglingPairCorpus)
	d := 0.85

	res := s.rank(c, ranker.SamplerConfig{
		DampingFactor: d,
		Samples:       200000,
		Walkers:       2,
		Seed:          99,
	}, cp)
	assertClose(c, res.Ranks["b"], 1/(2+d), 0.02)
	assertClose(c, res.Ranks["a"], (1+d)/(2+d), 0.02)
}

func (s *SamplerTestSuite) TestContextCancellation(c *gc.C) {
	cp := mustCorpus(c, smallCorpus)

	sampler, err := ranker.NewSampler(ranker.SamplerConfig{
		DampingFactor: ranker.DefaultDampingFactor,
		Samples:       100000,
		Walkers:       2,
	})
	c.Assert(err, gc.IsNil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := sampler.Rank(ctx, cp)
	c.Assert(xerrors.Is(err, context.Canceled), gc.Equals, true, gc.Commentf("got %v", err))
	c.Assert(res, gc.IsNil)
}

func (s *SamplerTestSuite) rank(c *gc.C, cfg ranker.SamplerConfig, cp *corpus.Corpus) *ranker.Result {
	sampler, err := ranker.NewSampler(cfg)
	c.Assert(err, gc.IsNil)
	res, err := sampler.Rank(context.Background(), cp)
	c.Assert(err, gc.IsNil)
	c.Assert(res.Ranks.Validate(cp, 1e-9), gc.IsNil)
	return res
}
