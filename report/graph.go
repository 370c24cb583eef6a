package report

import (
	"fmt"
	"io"

	"github.com/Ahmed-Sermani/pagerank/corpus"
	"github.com/Ahmed-Sermani/pagerank/ranker"
	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"golang.org/x/xerrors"
)

// ErrUnsupportedFormat is returned by RenderGraph for unknown output formats.
var ErrUnsupportedFormat = xerrors.New("unsupported graph format")

var formats = map[string]graphviz.Format{
	"dot": graphviz.XDOT,
	"svg": graphviz.SVG,
	"png": graphviz.PNG,
	"jpg": graphviz.JPG,
}

// RenderGraph draws the link structure of c with every page labelled by its
// rank in dist and writes the result to w in the requested format (dot, svg,
// png or jpg). Node borders grow with the rank of the page.
func RenderGraph(w io.Writer, c *corpus.Corpus, dist ranker.Distribution, format string) error {
	f, ok := formats[format]
	if !ok {
		return xerrors.Errorf("render %q: %w", format, ErrUnsupportedFormat)
	}

	gv := graphviz.New()
	defer func() { _ = gv.Close() }()

	g, err := gv.Graph()
	if err != nil {
		return xerrors.Errorf("create graph: %w", err)
	}
	defer func() { _ = g.Close() }()

	nodes := make([]*cgraph.Node, c.Size())
	for i := 0; i < c.Size(); i++ {
		page := c.PageAt(i)
		if nodes[i], err = g.CreateNode(string(page)); err != nil {
			return xerrors.Errorf("create node %q: %w", page, err)
		}
		nodes[i].SetLabel(fmt.Sprintf("%s\n%.4f", page, dist[page]))
		nodes[i].SetPenWidth(1 + 4*dist[page])
	}

	for i := 0; i < c.Size(); i++ {
		c.ForEachLink(i, func(j int) {
			if err != nil {
				return
			}
			_, err = g.CreateEdge(fmt.Sprintf("%d-%d", i, j), nodes[i], nodes[j])
		})
		if err != nil {
			return xerrors.Errorf("create edge: %w", err)
		}
	}

	if err = gv.Render(g, f, w); err != nil {
		return xerrors.Errorf("render %q: %w", format, err)
	}
	return nil
}
