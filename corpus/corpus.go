/*
Models the interlinked document corpus that page ranks are computed on.
A corpus is built once through a Builder (or one of the loaders) and is
immutable afterwards so that any number of rankers can read it
concurrently without locking.
*/
package corpus

import (
	"golang.org/x/xerrors"
)

// ErrInvalidCorpus is returned when the input link graph violates one of the
// corpus invariants.
var ErrInvalidCorpus = xerrors.New("invalid corpus")

// Page identifies a document in the corpus.
type Page string

// Corpus is an immutable directed link graph. Pages are kept sorted by
// identifier and addressed internally by their position in that order.
type Corpus struct {
	pages []Page
	index map[Page]int
	// links[i] holds the sorted indices of the pages linked from pages[i].
	links [][]int
}

// Size returns the number of pages in the corpus.
func (c *Corpus) Size() int { return len(c.pages) }

// Pages returns all pages sorted by identifier.
func (c *Corpus) Pages() []Page {
	return append([]Page(nil), c.pages...)
}

// Contains reports whether p is a page of the corpus.
func (c *Corpus) Contains(p Page) bool {
	_, ok := c.index[p]
	return ok
}

// Links returns the pages that p links to, sorted by identifier. The result
// is empty for dangling pages and for pages outside the corpus.
func (c *Corpus) Links(p Page) []Page {
	i, ok := c.index[p]
	if !ok {
		return nil
	}
	out := make([]Page, 0, len(c.links[i]))
	for _, dst := range c.links[i] {
		out = append(out, c.pages[dst])
	}
	return out
}

// OutDegree returns the number of outbound links of p.
func (c *Corpus) OutDegree(p Page) int {
	i, ok := c.index[p]
	if !ok {
		return 0
	}
	return len(c.links[i])
}

// IsDangling reports whether p is a corpus page without outbound links.
func (c *Corpus) IsDangling(p Page) bool {
	i, ok := c.index[p]
	return ok && len(c.links[i]) == 0
}

// Index returns the position of p in the sorted page order.
func (c *Corpus) Index(p Page) (int, bool) {
	i, ok := c.index[p]
	return i, ok
}

// PageAt returns the page at position i of the sorted page order.
func (c *Corpus) PageAt(i int) Page { return c.pages[i] }

// OutDegreeAt returns the number of outbound links of the page at position i.
func (c *Corpus) OutDegreeAt(i int) int { return len(c.links[i]) }

// ForEachLink invokes fn with the position of every page linked from the
// page at position i.
func (c *Corpus) ForEachLink(i int, fn func(dst int)) {
	for _, dst := range c.links[i] {
		fn(dst)
	}
}
