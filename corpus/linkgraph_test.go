package corpus_test

import (
	"fmt"
	"time"

	"github.com/Ahmed-Sermani/pagerank/corpus"
	"github.com/Ahmed-Sermani/pagerank/corpus/mocks"
	"github.com/Ahmed-Sermani/pagerank/graph"
	"github.com/Ahmed-Sermani/pagerank/graph/store/memory"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(LinkGraphTestSuite))

type LinkGraphTestSuite struct{}

func (s *LinkGraphTestSuite) TestExportAndLoadRoundTrip(c *gc.C) {
	orig, err := corpus.FromMap(map[corpus.Page][]corpus.Page{
		"a.html": {"b.html", "c.html"},
		"b.html": {"c.html"},
		"c.html": {"a.html"},
		"d.html": nil,
	}, corpus.Config{})
	c.Assert(err, gc.IsNil)

	g := memory.NewInMemoryGraph()
	c.Assert(corpus.Export(g, orig), gc.IsNil)

	loaded, err := corpus.FromLinkGraph(g, time.Now().Add(time.Minute), corpus.Config{StrictMode: true})
	c.Assert(err, gc.IsNil)
	c.Assert(loaded.Pages(), gc.DeepEquals, orig.Pages())
	for _, p := range orig.Pages() {
		c.Assert(loaded.Links(p), gc.DeepEquals, orig.Links(p), gc.Commentf("page %q", p))
	}
}

func (s *LinkGraphTestSuite) TestPartitionedLoad(c *gc.C) {
	m := make(map[corpus.Page][]corpus.Page)
	for i := 0; i < 50; i++ {
		src := corpus.Page(fmt.Sprintf("%02d.html", i))
		m[src] = []corpus.Page{
			corpus.Page(fmt.Sprintf("%02d.html", (i+1)%50)),
			corpus.Page(fmt.Sprintf("%02d.html", (i*7)%50)),
		}
	}
	orig, err := corpus.FromMap(m, corpus.Config{})
	c.Assert(err, gc.IsNil)

	g := memory.NewInMemoryGraph()
	c.Assert(corpus.Export(g, orig), gc.IsNil)

	loaded, err := corpus.FromLinkGraph(g, time.Now().Add(time.Minute), corpus.Config{Partitions: 4})
	c.Assert(err, gc.IsNil)
	c.Assert(loaded.Pages(), gc.DeepEquals, orig.Pages())
	for _, p := range orig.Pages() {
		c.Assert(loaded.Links(p), gc.DeepEquals, orig.Links(p), gc.Commentf("page %q", p))
	}
}

func (s *LinkGraphTestSuite) TestEachPartitionIsQueried(c *gc.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	var (
		src  = mocks.NewMockLinkSource(ctrl)
		mid  = uuid.MustParse("80000000-0000-0000-0000-000000000000")
		asOf = time.Now()
	)
	gomock.InOrder(
		src.EXPECT().Links(uuid.Nil, mid, asOf).Return(&failingLinkIterator{}, nil),
		src.EXPECT().Links(mid, graph.MaxID, asOf).Return(&failingLinkIterator{}, nil),
		src.EXPECT().Edges(uuid.Nil, mid, asOf).Return(nil, xerrors.New("db down")),
	)

	_, err := corpus.FromLinkGraph(src, asOf, corpus.Config{Partitions: 2})
	c.Assert(err, gc.ErrorMatches, "load corpus edges: db down")
}

func (s *LinkGraphTestSuite) TestLinksAfterSnapshotAreIgnored(c *gc.C) {
	g := memory.NewInMemoryGraph()
	now := time.Now()

	old := &graph.Link{URL: "old.html", RetrievedAt: now.Add(-time.Hour)}
	c.Assert(g.UpsertLink(old), gc.IsNil)
	fresh := &graph.Link{URL: "fresh.html", RetrievedAt: now.Add(time.Hour)}
	c.Assert(g.UpsertLink(fresh), gc.IsNil)
	c.Assert(g.UpsertEdge(&graph.Edge{Src: old.ID, Dst: fresh.ID}), gc.IsNil)
	c.Assert(g.UpsertEdge(&graph.Edge{Src: fresh.ID, Dst: old.ID}), gc.IsNil)

	cp, err := corpus.FromLinkGraph(g, now.Add(time.Minute), corpus.Config{})
	c.Assert(err, gc.IsNil)
	c.Assert(cp.Pages(), gc.DeepEquals, []corpus.Page{"old.html"})
	c.Assert(cp.IsDangling("old.html"), gc.Equals, true)

	_, err = corpus.FromLinkGraph(g, now.Add(time.Minute), corpus.Config{StrictMode: true})
	c.Assert(xerrors.Is(err, corpus.ErrInvalidCorpus), gc.Equals, true)
}

func (s *LinkGraphTestSuite) TestLinkSourceErrors(c *gc.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	src := mocks.NewMockLinkSource(ctrl)
	src.EXPECT().Links(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, xerrors.New("db down"))

	_, err := corpus.FromLinkGraph(src, time.Now(), corpus.Config{})
	c.Assert(err, gc.ErrorMatches, "load corpus links: db down")
}

func (s *LinkGraphTestSuite) TestIteratorErrorsArePropagated(c *gc.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	src := mocks.NewMockLinkSource(ctrl)
	src.EXPECT().Links(gomock.Any(), graph.MaxID, gomock.Any()).Return(
		&failingLinkIterator{err: xerrors.New("connection reset")}, nil,
	)

	_, err := corpus.FromLinkGraph(src, time.Now(), corpus.Config{})
	c.Assert(err, gc.ErrorMatches, "load corpus links: connection reset")
}

func (s *LinkGraphTestSuite) TestExportErrors(c *gc.C) {
	cp, err := corpus.FromMap(map[corpus.Page][]corpus.Page{
		"a": {"b"},
		"b": nil,
	}, corpus.Config{})
	c.Assert(err, gc.IsNil)

	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	dst := mocks.NewMockLinkWriter(ctrl)
	dst.EXPECT().UpsertLink(gomock.Any()).Times(2).Return(nil)
	dst.EXPECT().UpsertEdge(gomock.Any()).Return(graph.ErrUnknownEdgeLinks)

	err = corpus.Export(dst, cp)
	c.Assert(xerrors.Is(err, graph.ErrUnknownEdgeLinks), gc.Equals, true)
	c.Assert(err, gc.ErrorMatches, `export link "a" -> "b": .*`)
}

type failingLinkIterator struct {
	err error
}

func (*failingLinkIterator) Next() bool        { return false }
func (*failingLinkIterator) Link() *graph.Link { return nil }
func (it *failingLinkIterator) Error() error   { return it.err }
func (*failingLinkIterator) Close() error      { return nil }
