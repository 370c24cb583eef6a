package ranker_test

import (
	"github.com/Ahmed-Sermani/pagerank/corpus"
	"github.com/Ahmed-Sermani/pagerank/ranker"
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(DistributionTestSuite))

type DistributionTestSuite struct{}

func (s *DistributionTestSuite) TestPagesAreSorted(c *gc.C) {
	dist := ranker.Distribution{"c": 0.2, "a": 0.5, "b": 0.3}
	c.Assert(dist.Pages(), gc.DeepEquals, []corpus.Page{"a", "b", "c"})
	assertClose(c, dist.Sum(), 1, 1e-12)
}

func (s *DistributionTestSuite) TestValidate(c *gc.C) {
	cp := mustCorpus(c, ringCorpus)

	cases := []struct {
		descr string
		dist  ranker.Distribution
		valid bool
	}{
		{"well formed", ranker.Distribution{"a": 0.2, "b": 0.3, "c": 0.5}, true},
		{"zero weight", ranker.Distribution{"a": 0, "b": 0.5, "c": 0.5}, true},
		{"missing page", ranker.Distribution{"a": 0.5, "b": 0.5}, false},
		{"unknown page", ranker.Distribution{"a": 0.5, "b": 0.5, "x": 0}, false},
		{"negative weight", ranker.Distribution{"a": -0.5, "b": 0.5, "c": 1}, false},
		{"mass too low", ranker.Distribution{"a": 0.2, "b": 0.2, "c": 0.2}, false},
	}

	for i, tc := range cases {
		c.Logf("[case %d] %s", i, tc.descr)
		err := tc.dist.Validate(cp, 1e-9)
		if tc.valid {
			c.Assert(err, gc.IsNil)
		} else {
			c.Assert(xerrors.Is(err, ranker.ErrMalformedDistribution), gc.Equals, true)
		}
	}
}

func (s *DistributionTestSuite) TestMaxAbsDiff(c *gc.C) {
	a := ranker.Distribution{"a": 0.5, "b": 0.5}
	b := ranker.Distribution{"a": 0.45, "b": 0.4, "c": 0.15}
	assertClose(c, a.MaxAbsDiff(b), 0.15, 1e-12)
	assertClose(c, b.MaxAbsDiff(a), 0.15, 1e-12)
	assertClose(c, a.MaxAbsDiff(a), 0, 0)
}
