package corpus

import (
	"sort"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/xerrors"
)

// Config controls how a Builder treats links that violate the corpus
// invariants.
type Config struct {
	// StrictMode makes Build fail with ErrInvalidCorpus when a page links to
	// itself or to a page that is not part of the corpus. By default such
	// links are dropped silently.
	StrictMode bool

	// Partitions is the number of link ID ranges FromLinkGraph reads the
	// link graph in. Defaults to a single range.
	Partitions int
}

// Builder accumulates pages and links and produces an immutable Corpus.
type Builder struct {
	cfg   Config
	links map[Page]map[Page]struct{}
	err   error
}

// NewBuilder returns an empty Builder that applies the provided config when
// Build is invoked.
func NewBuilder(cfg Config) *Builder {
	return &Builder{
		cfg:   cfg,
		links: make(map[Page]map[Page]struct{}),
	}
}

// AddPage inserts p into the corpus. Adding the same page twice is a no-op.
func (b *Builder) AddPage(p Page) {
	if b.links[p] == nil {
		b.links[p] = make(map[Page]struct{})
	}
}

// AddLink records a link from src to dst, adding src as a page if needed.
// Self-links are dropped (or reported in strict mode). Whether dst belongs
// to the corpus is only checked by Build so links may be added before
// their targets.
func (b *Builder) AddLink(src, dst Page) {
	b.AddPage(src)
	if src == dst {
		if b.cfg.StrictMode {
			b.err = multierror.Append(b.err, xerrors.Errorf("page %q links to itself: %w", src, ErrInvalidCorpus))
		}
		return
	}
	b.links[src][dst] = struct{}{}
}

// Build validates the accumulated links and returns the resulting Corpus.
func (b *Builder) Build() (*Corpus, error) {
	if len(b.links) == 0 {
		return nil, xerrors.Errorf("corpus has no pages: %w", ErrInvalidCorpus)
	}

	pages := make([]Page, 0, len(b.links))
	for p := range b.links {
		pages = append(pages, p)
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i] < pages[j] })

	index := make(map[Page]int, len(pages))
	for i, p := range pages {
		index[p] = i
	}

	err := b.err
	links := make([][]int, len(pages))
	for i, src := range pages {
		out := make([]int, 0, len(b.links[src]))
		for dst := range b.links[src] {
			dstIdx, ok := index[dst]
			if !ok {
				if b.cfg.StrictMode {
					err = multierror.Append(err, xerrors.Errorf("page %q links to %q which is not part of the corpus: %w", src, dst, ErrInvalidCorpus))
				}
				continue
			}
			out = append(out, dstIdx)
		}
		sort.Ints(out)
		links[i] = out
	}

	if err != nil {
		return nil, err
	}

	return &Corpus{
		pages: pages,
		index: index,
		links: links,
	}, nil
}

// FromMap builds a Corpus from a page to outbound links mapping.
func FromMap(m map[Page][]Page, cfg Config) (*Corpus, error) {
	b := NewBuilder(cfg)
	for src, dsts := range m {
		b.AddPage(src)
		for _, dst := range dsts {
			b.AddLink(src, dst)
		}
	}
	return b.Build()
}
