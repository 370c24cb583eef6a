package ranker

import (
	"math"
	"sort"

	"github.com/Ahmed-Sermani/pagerank/corpus"
	"golang.org/x/xerrors"
)

// Distribution maps pages to probabilities.
type Distribution map[corpus.Page]float64

// Sum returns the total probability mass of the distribution.
func (d Distribution) Sum() float64 {
	var sum float64
	for _, p := range d.Pages() {
		sum += d[p]
	}
	return sum
}

// Pages returns the pages of the distribution in ascending order.
func (d Distribution) Pages() []corpus.Page {
	pages := make([]corpus.Page, 0, len(d))
	for p := range d {
		pages = append(pages, p)
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i] < pages[j] })
	return pages
}

// Validate checks that d assigns a probability in [0, 1] to every page of c
// and to no other page, and that the probabilities sum to 1 within tolerance.
func (d Distribution) Validate(c *corpus.Corpus, tolerance float64) error {
	if len(d) != c.Size() {
		return xerrors.Errorf("distribution has %d pages, corpus has %d: %w", len(d), c.Size(), ErrMalformedDistribution)
	}
	for _, p := range c.Pages() {
		v, ok := d[p]
		if !ok {
			return xerrors.Errorf("page %q has no probability: %w", p, ErrMalformedDistribution)
		}
		if v < 0 || v > 1 || math.IsNaN(v) {
			return xerrors.Errorf("page %q has probability %v: %w", p, v, ErrMalformedDistribution)
		}
	}
	if sum := d.Sum(); math.Abs(sum-1) > tolerance {
		return xerrors.Errorf("probabilities sum to %v: %w", sum, ErrMalformedDistribution)
	}
	return nil
}

// MaxAbsDiff returns the largest absolute difference between the
// probabilities that d and other assign to the same page. Pages missing from
// one of the distributions count as zero.
func (d Distribution) MaxAbsDiff(other Distribution) float64 {
	var maxDiff float64
	for p, v := range d {
		if diff := math.Abs(v - other[p]); diff > maxDiff {
			maxDiff = diff
		}
	}
	for p, v := range other {
		if _, ok := d[p]; !ok && v > maxDiff {
			maxDiff = v
		}
	}
	return maxDiff
}
