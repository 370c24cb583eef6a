/*
Implements Google famous and first
PageRank algorithm https://en.wikipedia.org/wiki/PageRank
in two independent ways: a Monte Carlo estimate obtained by simulating a
random surfer and an exact fixed point obtained by power iteration.
*/
package ranker

import (
	"context"

	"github.com/Ahmed-Sermani/pagerank/corpus"
	"golang.org/x/xerrors"
)

/*
   PageRank works by counting the number and quality of links to
   a page to determine a rough estimate of how important the page is.
   The underlying assumption is that more important pages are likely
   to receive more links from other pages.

   To calculate the score for each page in the corpus,
   the PageRank algorithm utilizes the model of the random surfer.
   Under this model, a surfer lands on a random page of the corpus.
   From that point on, surfers randomly select one of the following two options:

       They can follow any outgoing link from the current page and navigate to a new page.
       Surfers choose this option with a predefined probability that we will be referring to with the term damping factor.

       Alternatively, they can jump to any page of the corpus, chosen uniformly at random.

   A page without outgoing links (a dangling page) is treated as if it linked
   to every page of the corpus, itself included.

   PageRank score values reflect the probability that a surfer lands on a particular page.
   By this definition, we expect the following to occur
       Each PageRank score should be a value in the [0, 1] range
       The sum of all assigned PageRank scores should be exactly equal to 1
*/

const (
	// DefaultDampingFactor is the recommended damping factor.
	DefaultDampingFactor = 0.85

	// DefaultSamples is the recommended length of the sampler random walk.
	DefaultSamples = 10000

	// DefaultTolerance is the recommended per-page convergence tolerance
	// of the iterative solver.
	DefaultTolerance = 0.001

	// DefaultMaxIterations bounds the number of solver iterations.
	DefaultMaxIterations = 10000
)

var (
	// ErrInvalidParameter is returned when a damping factor, sample count,
	// tolerance or page argument is out of range.
	ErrInvalidParameter = xerrors.New("invalid parameter")

	// ErrConvergence is returned when the iterative solver exceeds its
	// iteration cap.
	ErrConvergence = xerrors.New("ranks did not converge")

	// ErrMalformedDistribution is returned by Distribution.Validate.
	ErrMalformedDistribution = xerrors.New("malformed probability distribution")
)

// Algorithm is implemented by the rank estimators.
type Algorithm interface {
	// Name returns a short identifier for the algorithm.
	Name() string

	// Rank computes the rank of every page in c.
	Rank(ctx context.Context, c *corpus.Corpus) (*Result, error)
}

// Result is the outcome of a ranking run.
type Result struct {
	// Algorithm is the name of the algorithm that produced the result.
	Algorithm string

	// Ranks maps every page of the corpus to its rank.
	Ranks Distribution

	// Iterations is the number of synchronous updates the solver needed to
	// converge. Zero for sampling runs.
	Iterations int

	// Samples is the total number of pages visited by the random walks.
	// Zero for iterative runs.
	Samples int
}

// EstimateBySampling estimates the rank of every page of c by simulating a
// single random walk that visits sampleCount pages.
func EstimateBySampling(c *corpus.Corpus, dampingFactor float64, sampleCount int) (Distribution, error) {
	s, err := NewSampler(SamplerConfig{
		DampingFactor: dampingFactor,
		Samples:       sampleCount,
	})
	if err != nil {
		return nil, err
	}
	res, err := s.Rank(context.Background(), c)
	if err != nil {
		return nil, err
	}
	return res.Ranks, nil
}

// ComputeByIteration computes the rank of every page of c by repeatedly
// applying the PageRank update until no page changes by tolerance or more.
func ComputeByIteration(c *corpus.Corpus, dampingFactor, tolerance float64) (Distribution, error) {
	s, err := NewSolver(SolverConfig{
		DampingFactor: dampingFactor,
		Tolerance:     tolerance,
	})
	if err != nil {
		return nil, err
	}
	res, err := s.Rank(context.Background(), c)
	if err != nil {
		return nil, err
	}
	return res.Ranks, nil
}

func validateDampingFactor(d float64) error {
	if !(d > 0 && d < 1) {
		return xerrors.Errorf("damping factor %v must be in the range (0, 1): %w", d, ErrInvalidParameter)
	}
	return nil
}
