package ranker_test

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/Ahmed-Sermani/pagerank/corpus"
	"github.com/Ahmed-Sermani/pagerank/ranker"
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(EntryPointTestSuite))

func Test(t *testing.T) {
	gc.TestingT(t)
}

type EntryPointTestSuite struct{}

func (s *EntryPointTestSuite) TestInvalidDampingFactor(c *gc.C) {
	cp := mustCorpus(c, ringCorpus)
	for _, d := range []float64{0, 1, -0.5, 1.5, math.NaN()} {
		dist, err := ranker.EstimateBySampling(cp, d, 100)
		c.Assert(xerrors.Is(err, ranker.ErrInvalidParameter), gc.Equals, true, gc.Commentf("sampling with d=%v: %v", d, err))
		c.Assert(dist, gc.IsNil)

		dist, err = ranker.ComputeByIteration(cp, d, ranker.DefaultTolerance)
		c.Assert(xerrors.Is(err, ranker.ErrInvalidParameter), gc.Equals, true, gc.Commentf("iteration with d=%v: %v", d, err))
		c.Assert(dist, gc.IsNil)
	}
}

func (s *EntryPointTestSuite) TestInvalidSampleCount(c *gc.C) {
	cp := mustCorpus(c, ringCorpus)
	for _, n := range []int{0, -10} {
		dist, err := ranker.EstimateBySampling(cp, ranker.DefaultDampingFactor, n)
		c.Assert(xerrors.Is(err, ranker.ErrInvalidParameter), gc.Equals, true, gc.Commentf("n=%d: %v", n, err))
		c.Assert(dist, gc.IsNil)
	}
}

func (s *EntryPointTestSuite) TestInvalidTolerance(c *gc.C) {
	cp := mustCorpus(c, ringCorpus)
	for _, tol := range []float64{0, -0.1, math.NaN()} {
		dist, err := ranker.ComputeByIteration(cp, ranker.DefaultDampingFactor, tol)
		c.Assert(xerrors.Is(err, ranker.ErrInvalidParameter), gc.Equals, true, gc.Commentf("tolerance=%v: %v", tol, err))
		c.Assert(dist, gc.IsNil)
	}
}

func (s *EntryPointTestSuite) TestSamplingAgreesWithIteration(c *gc.C) {
	cp := mustCorpus(c, smallCorpus)

	sampler, err := ranker.NewSampler(ranker.SamplerConfig{
		DampingFactor: ranker.DefaultDampingFactor,
		Samples:       1000000,
		Walkers:       4,
		Seed:          42,
	})
	c.Assert(err, gc.IsNil)
	sampled, err := sampler.Rank(context.Background(), cp)
	c.Assert(err, gc.IsNil)

	iterated, err := ranker.ComputeByIteration(cp, ranker.DefaultDampingFactor, ranker.DefaultTolerance)
	c.Assert(err, gc.IsNil)

	for _, p := range cp.Pages() {
		assertClose(c, sampled.Ranks[p], iterated[p], 0.02)
	}
}

func (s *EntryPointTestSuite) TestEntryPointsReturnWellFormedDistributions(c *gc.C) {
	cp := mustCorpus(c, smallCorpus)

	sampled, err := ranker.EstimateBySampling(cp, ranker.DefaultDampingFactor, ranker.DefaultSamples)
	c.Assert(err, gc.IsNil)
	c.Assert(sampled.Validate(cp, 1e-9), gc.IsNil)

	iterated, err := ranker.ComputeByIteration(cp, ranker.DefaultDampingFactor, ranker.DefaultTolerance)
	c.Assert(err, gc.IsNil)
	c.Assert(iterated.Validate(cp, 1e-3), gc.IsNil)
}

var (
	ringCorpus = map[corpus.Page][]corpus.Page{
		"a": {"b"},
		"b": {"c"},
		"c": {"a"},
	}

	smallCorpus = map[corpus.Page][]corpus.Page{
		"1.html": {"2.html"},
		"2.html": {"1.html", "3.html"},
		"3.html": {"2.html", "4.html"},
		"4.html": {"2.html"},
	}

	danglingPairCorpus = map[corpus.Page][]corpus.Page{
		"a": nil,
		"b": {"a"},
	}
)

// tenPageCorpus returns a corpus of ten pages where page i links to the
// next two pages and every fourth page is dangling.
// tenPageCorpus links page i to pages i+1 and i+3. With withDangling set
// every fourth page has no links instead.
func tenPageCorpus(withDangling bool) map[corpus.Page][]corpus.Page {
	m := make(map[corpus.Page][]corpus.Page)
	for i := 0; i < 10; i++ {
		src := corpus.Page(fmt.Sprintf("%d.html", i))
		if withDangling && i%4 == 3 {
			m[src] = nil
			continue
		}
		m[src] = []corpus.Page{
			corpus.Page(fmt.Sprintf("%d.html", (i+1)%10)),
			corpus.Page(fmt.Sprintf("%d.html", (i+3)%10)),
		}
	}
	return m
}

func mustCorpus(c *gc.C, m map[corpus.Page][]corpus.Page) *corpus.Corpus {
	cp, err := corpus.FromMap(m, corpus.Config{})
	c.Assert(err, gc.IsNil)
	return cp
}

func assertClose(c *gc.C, got, want, tol float64) {
	c.Assert(math.Abs(got-want) <= tol, gc.Equals, true, gc.Commentf("got %v, want %v ± %v", got, want, tol))
}
