package ranker_test

import (
	"github.com/Ahmed-Sermani/pagerank/corpus"
	"github.com/Ahmed-Sermani/pagerank/ranker"
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(TransitionTestSuite))

type TransitionTestSuite struct{}

func (s *TransitionTestSuite) TestLinkedPage(c *gc.C) {
	cp := mustCorpus(c, smallCorpus)

	dist, err := ranker.Transition(cp, "1.html", 0.85)
	c.Assert(err, gc.IsNil)
	c.Assert(dist, gc.HasLen, 4)
	assertClose(c, dist["1.html"], 0.0375, 1e-12)
	assertClose(c, dist["2.html"], 0.8875, 1e-12)
	assertClose(c, dist["3.html"], 0.0375, 1e-12)
	assertClose(c, dist["4.html"], 0.0375, 1e-12)
}

func (s *TransitionTestSuite) TestLinkShareIsSplitEvenly(c *gc.C) {
	cp := mustCorpus(c, smallCorpus)

	dist, err := ranker.Transition(cp, "2.html", 0.5)
	c.Assert(err, gc.IsNil)
	assertClose(c, dist["1.html"], 0.125+0.25, 1e-12)
	assertClose(c, dist["2.html"], 0.125, 1e-12)
	assertClose(c, dist["3.html"], 0.125+0.25, 1e-12)
	assertClose(c, dist["4.html"], 0.125, 1e-12)
}

func (s *TransitionTestSuite) TestDanglingPageJumpsUniformly(c *gc.C) {
	cp := mustCorpus(c, map[corpus.Page][]corpus.Page{
		"a": {"b"},
		"b": {"c"},
		"c": nil,
		"d": {"a", "c"},
	})

	dist, err := ranker.Transition(cp, "c", 0.85)
	c.Assert(err, gc.IsNil)
	c.Assert(dist, gc.HasLen, 4)
	for _, p := range cp.Pages() {
		assertClose(c, dist[p], 0.25, 1e-12)
	}
}

func (s *TransitionTestSuite) TestEveryTransitionIsWellFormed(c *gc.C) {
	cp := mustCorpus(c, tenPageCorpus(true))
	for _, d := range []float64{0.01, 0.5, 0.85, 0.99} {
		for _, p := range cp.Pages() {
			dist, err := ranker.Transition(cp, p, d)
			c.Assert(err, gc.IsNil)
			c.Assert(dist.Validate(cp, 1e-9), gc.IsNil, gc.Commentf("page %q with d=%v", p, d))
		}
	}
}

func (s *TransitionTestSuite) TestUnknownPage(c *gc.C) {
	cp := mustCorpus(c, smallCorpus)

	dist, err := ranker.Transition(cp, "missing.html", 0.85)
	c.Assert(xerrors.Is(err, ranker.ErrInvalidParameter), gc.Equals, true)
	c.Assert(dist, gc.IsNil)
}

func (s *TransitionTestSuite) TestInvalidDampingFactor(c *gc.C) {
	cp := mustCorpus(c, smallCorpus)

	dist, err := ranker.Transition(cp, "1.html", 1)
	c.Assert(xerrors.Is(err, ranker.ErrInvalidParameter), gc.Equals, true)
	c.Assert(dist, gc.IsNil)
}
