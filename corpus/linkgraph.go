package corpus

import (
	"time"

	"github.com/Ahmed-Sermani/pagerank/graph"
	"github.com/Ahmed-Sermani/pagerank/partition"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/xerrors"
)

//go:generate mockgen -package mocks -destination mocks/mocks.go github.com/Ahmed-Sermani/pagerank/corpus LinkSource,LinkWriter

// LinkSource is implemented by link graph stores that a corpus can be read
// from.
type LinkSource interface {
	Links(fromID, toID uuid.UUID, retrievedBefore time.Time) (graph.LinkIterator, error)
	Edges(fromID, toID uuid.UUID, updatedBefore time.Time) (graph.EdgeIterator, error)
}

// LinkWriter is implemented by link graph stores that a corpus can be
// exported to.
type LinkWriter interface {
	UpsertLink(link *graph.Link) error
	UpsertEdge(edge *graph.Edge) error
}

// FromLinkGraph builds a corpus from the links and edges of a link graph as
// they were at asOf. Each link becomes a page named after its URL. The link
// ID space is read in cfg.Partitions consecutive ranges.
func FromLinkGraph(src LinkSource, asOf time.Time, cfg Config) (*Corpus, error) {
	if cfg.Partitions <= 0 {
		cfg.Partitions = 1
	}
	idRange, err := partition.NewFullRange(graph.MaxID, cfg.Partitions)
	if err != nil {
		return nil, xerrors.Errorf("load corpus: %w", err)
	}

	b := NewBuilder(cfg)
	urls := make(map[uuid.UUID]Page)
	for i := 0; i < idRange.NumPartitions(); i++ {
		from, to, _ := idRange.PartitionExtents(i)
		if err = loadLinks(src, from, to, asOf, b, urls); err != nil {
			return nil, xerrors.Errorf("load corpus links: %w", err)
		}
	}

	var invalid error
	for i := 0; i < idRange.NumPartitions(); i++ {
		from, to, _ := idRange.PartitionExtents(i)
		if err = loadEdges(src, from, to, asOf, cfg, b, urls, &invalid); err != nil {
			return nil, xerrors.Errorf("load corpus edges: %w", err)
		}
	}

	c, err := b.Build()
	if err != nil || invalid != nil {
		return nil, multierror.Append(invalid, err).ErrorOrNil()
	}
	return c, nil
}

func loadLinks(src LinkSource, from, to uuid.UUID, asOf time.Time, b *Builder, urls map[uuid.UUID]Page) error {
	linkIt, err := src.Links(from, to, asOf)
	if err != nil {
		return err
	}
	for linkIt.Next() {
		link := linkIt.Link()
		urls[link.ID] = Page(link.URL)
		b.AddPage(Page(link.URL))
	}
	return drainIterator(linkIt)
}

func loadEdges(src LinkSource, from, to uuid.UUID, asOf time.Time, cfg Config, b *Builder, urls map[uuid.UUID]Page, invalid *error) error {
	edgeIt, err := src.Edges(from, to, asOf)
	if err != nil {
		return err
	}
	for edgeIt.Next() {
		edge := edgeIt.Edge()
		srcPage, ok := urls[edge.Src]
		if !ok {
			// The source link was retrieved after asOf.
			continue
		}
		dstPage, ok := urls[edge.Dst]
		if !ok {
			if cfg.StrictMode {
				*invalid = multierror.Append(*invalid, xerrors.Errorf("page %q links to unknown link %s: %w", srcPage, edge.Dst, ErrInvalidCorpus))
			}
			continue
		}
		b.AddLink(srcPage, dstPage)
	}
	return drainIterator(edgeIt)
}

// Export writes every page of c as a link and every link of c as an edge
// into dst.
func Export(dst LinkWriter, c *Corpus) error {
	ids := make([]uuid.UUID, c.Size())
	for i := 0; i < c.Size(); i++ {
		link := &graph.Link{URL: string(c.PageAt(i))}
		if err := dst.UpsertLink(link); err != nil {
			return xerrors.Errorf("export page %q: %w", link.URL, err)
		}
		ids[i] = link.ID
	}

	for i := 0; i < c.Size(); i++ {
		var err error
		c.ForEachLink(i, func(j int) {
			if err != nil {
				return
			}
			if upsertErr := dst.UpsertEdge(&graph.Edge{Src: ids[i], Dst: ids[j]}); upsertErr != nil {
				err = xerrors.Errorf("export link %q -> %q: %w", c.PageAt(i), c.PageAt(j), upsertErr)
			}
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func drainIterator(it graph.Iterator) error {
	if err := it.Error(); err != nil {
		_ = it.Close()
		return err
	}
	return it.Close()
}
