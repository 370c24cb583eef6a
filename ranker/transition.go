package ranker

import (
	"github.com/Ahmed-Sermani/pagerank/corpus"
	"golang.org/x/xerrors"
)

// Transition returns the probability distribution over the page a random
// surfer visits next when it is currently on page.
//
// With probability dampingFactor the surfer follows one of the links of the
// page, chosen uniformly, and otherwise jumps to any page of the corpus. A
// dangling page sends the surfer to every page with equal probability.
func Transition(c *corpus.Corpus, page corpus.Page, dampingFactor float64) (Distribution, error) {
	if err := validateDampingFactor(dampingFactor); err != nil {
		return nil, err
	}
	idx, ok := c.Index(page)
	if !ok {
		return nil, xerrors.Errorf("page %q is not part of the corpus: %w", page, ErrInvalidParameter)
	}

	weights := make([]float64, c.Size())
	transitionWeights(c, idx, dampingFactor, weights)

	dist := make(Distribution, len(weights))
	for i, w := range weights {
		dist[c.PageAt(i)] = w
	}
	return dist, nil
}

// transitionWeights fills out, which must have one slot per corpus page, with
// the transition probabilities out of the page at index src.
func transitionWeights(c *corpus.Corpus, src int, dampingFactor float64, out []float64) {
	n := float64(len(out))
	outDegree := c.OutDegreeAt(src)
	if outDegree == 0 {
		for i := range out {
			out[i] = 1 / n
		}
		return
	}

	jump := (1 - dampingFactor) / n
	for i := range out {
		out[i] = jump
	}
	share := dampingFactor / float64(outDegree)
	c.ForEachLink(src, func(dst int) {
		out[dst] += share
	})
}
