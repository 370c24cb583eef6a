package ranker

import (
	"context"

	"github.com/Ahmed-Sermani/pagerank/corpus"
	"github.com/Ahmed-Sermani/pagerank/pipeline"
	"github.com/Ahmed-Sermani/pagerank/pipeline/runners"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

var _ Algorithm = (*Sampler)(nil)

// Sampler estimates page ranks from the visit frequencies of random walks.
//
// The sample budget is split between cfg.Walkers independent walks that run
// in parallel through a worker pool; each walk owns its counters and the
// counters are summed once the walk completes.
type Sampler struct {
	cfg SamplerConfig
}

// NewSampler returns a new Sampler instance using the provided config
// options.
func NewSampler(cfg SamplerConfig) (*Sampler, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("sampler config validation failed: %w", err)
	}
	return &Sampler{cfg: cfg}, nil
}

// Name implements Algorithm.
func (s *Sampler) Name() string { return "sampling" }

// Rank runs the random walks over c and returns the visit frequency of every
// page. Calls to Rank block until all walks complete, an error occurs or the
// context is cancelled.
func (s *Sampler) Rank(ctx context.Context, c *corpus.Corpus) (*Result, error) {
	lengths := splitWalks(s.cfg.Samples, s.cfg.Walkers)
	source := &walkSource{
		lengths:  lengths,
		seed:     s.cfg.Seed,
		numPages: c.Size(),
	}
	sink := &countMerger{counts: make([]int, c.Size())}

	p := pipeline.New(
		runners.FixedWorkerPool(
			&walkRunner{c: c, dampingFactor: s.cfg.DampingFactor},
			len(lengths),
		),
	)
	if err := p.Process(ctx, source, sink); err != nil {
		return nil, xerrors.Errorf("random walk: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, xerrors.Errorf("random walk: %w", err)
	}
	if sink.walks != len(lengths) {
		return nil, xerrors.Errorf("random walk: %d of %d walks completed", sink.walks, len(lengths))
	}

	ranks := make(Distribution, c.Size())
	for i, count := range sink.counts {
		ranks[c.PageAt(i)] = float64(count) / float64(s.cfg.Samples)
	}

	s.cfg.Logger.WithFields(logrus.Fields{
		"pages":   c.Size(),
		"samples": s.cfg.Samples,
		"walkers": len(lengths),
	}).Debug("random walks completed")

	return &Result{
		Algorithm: s.Name(),
		Ranks:     ranks,
		Samples:   s.cfg.Samples,
	}, nil
}
