// Package graphtest contains a test suite that every graph.Graph
// implementation is expected to pass.
package graphtest

import (
	"sort"
	"time"

	"github.com/Ahmed-Sermani/pagerank/graph"
	"github.com/google/uuid"
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

// SuiteBase defines a re-usable set of graph-related tests that can
// be executed against any type that implements graph.Graph.
type SuiteBase struct {
	g graph.Graph
}

// SetGraph configures the test-suite to run all tests against g.
func (s *SuiteBase) SetGraph(g graph.Graph) {
	s.g = g
}

func (s *SuiteBase) TestUpsertLink(c *gc.C) {
	original := &graph.Link{
		URL:         "https://example.com",
		RetrievedAt: time.Now().Add(-10 * time.Hour),
	}
	c.Assert(s.g.UpsertLink(original), gc.IsNil)
	c.Assert(original.ID, gc.Not(gc.Equals), uuid.Nil, gc.Commentf("expected a linkID to be assigned to the new link"))

	// Re-inserting the same URL with an older timestamp keeps the ID and the
	// most recent timestamp.
	accessedAt := original.RetrievedAt
	dup := &graph.Link{
		URL:         original.URL,
		RetrievedAt: accessedAt.Add(-time.Hour),
	}
	c.Assert(s.g.UpsertLink(dup), gc.IsNil)
	c.Assert(dup.ID, gc.Equals, original.ID)

	it, err := s.g.Links(uuid.Nil, graph.MaxID, time.Now())
	c.Assert(err, gc.IsNil)
	var got []*graph.Link
	for it.Next() {
		got = append(got, it.Link())
	}
	c.Assert(it.Error(), gc.IsNil)
	c.Assert(it.Close(), gc.IsNil)
	c.Assert(got, gc.HasLen, 1)
	c.Assert(got[0].RetrievedAt.Unix(), gc.Equals, accessedAt.Unix())
}

func (s *SuiteBase) TestUpsertEdge(c *gc.C) {
	linkIDs := s.insertLinks(c, "a.html", "b.html", "c.html")

	edge := &graph.Edge{Src: linkIDs[0], Dst: linkIDs[1]}
	c.Assert(s.g.UpsertEdge(edge), gc.IsNil)
	c.Assert(edge.ID, gc.Not(gc.Equals), uuid.Nil)
	c.Assert(edge.UpdatedAt.IsZero(), gc.Equals, false)

	// Updating the same pair of links returns the existing edge.
	other := &graph.Edge{Src: linkIDs[0], Dst: linkIDs[1]}
	c.Assert(s.g.UpsertEdge(other), gc.IsNil)
	c.Assert(other.ID, gc.Equals, edge.ID)

	c.Assert(s.g.UpsertEdge(&graph.Edge{Src: linkIDs[1], Dst: linkIDs[2]}), gc.IsNil)

	it, err := s.g.Edges(uuid.Nil, graph.MaxID, time.Now().Add(time.Minute))
	c.Assert(err, gc.IsNil)
	var pairs []string
	for it.Next() {
		e := it.Edge()
		pairs = append(pairs, e.Src.String()+"->"+e.Dst.String())
	}
	c.Assert(it.Error(), gc.IsNil)
	c.Assert(it.Close(), gc.IsNil)
	sort.Strings(pairs)

	exp := []string{
		linkIDs[0].String() + "->" + linkIDs[1].String(),
		linkIDs[1].String() + "->" + linkIDs[2].String(),
	}
	sort.Strings(exp)
	c.Assert(pairs, gc.DeepEquals, exp)
}

func (s *SuiteBase) TestUpsertEdgeWithUnknownLinks(c *gc.C) {
	linkIDs := s.insertLinks(c, "a.html")

	err := s.g.UpsertEdge(&graph.Edge{Src: linkIDs[0], Dst: uuid.New()})
	c.Assert(xerrors.Is(err, graph.ErrUnknownEdgeLinks), gc.Equals, true)

	err = s.g.UpsertEdge(&graph.Edge{Src: uuid.New(), Dst: linkIDs[0]})
	c.Assert(xerrors.Is(err, graph.ErrUnknownEdgeLinks), gc.Equals, true)
}

func (s *SuiteBase) TestLinksFilteredByRetrievalTime(c *gc.C) {
	now := time.Now()
	for i, age := range []time.Duration{time.Hour, 2 * time.Hour, -time.Hour} {
		link := &graph.Link{
			URL:         string(rune('a'+i)) + ".html",
			RetrievedAt: now.Add(-age),
		}
		c.Assert(s.g.UpsertLink(link), gc.IsNil)
	}

	it, err := s.g.Links(uuid.Nil, graph.MaxID, now)
	c.Assert(err, gc.IsNil)
	var urls []string
	for it.Next() {
		urls = append(urls, it.Link().URL)
	}
	c.Assert(it.Close(), gc.IsNil)
	sort.Strings(urls)
	c.Assert(urls, gc.DeepEquals, []string{"a.html", "b.html"})
}

func (s *SuiteBase) insertLinks(c *gc.C, urls ...string) []uuid.UUID {
	ids := make([]uuid.UUID, len(urls))
	for i, u := range urls {
		link := &graph.Link{URL: u}
		c.Assert(s.g.UpsertLink(link), gc.IsNil)
		ids[i] = link.ID
	}
	return ids
}
