package ranker

import (
	"io"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

// SamplerConfig encapsulates the settings for configuring a Sampler.
type SamplerConfig struct {
	// DampingFactor is the probability that the surfer follows a link
	// instead of jumping to a random page. It must be in the (0, 1) range.
	DampingFactor float64

	// Samples is the total number of pages visited by the random walks.
	Samples int

	// Walkers is the number of independent walks that share the sample
	// budget. Each walk runs on its own goroutine. Defaults to a single
	// walk.
	Walkers int

	// Seed initializes the random sources of the walks. If zero, a
	// time-based seed is used.
	Seed int64

	// Logger receives progress and summary messages. If not specified,
	// output is discarded.
	Logger *logrus.Entry
}

func (cfg *SamplerConfig) validate() error {
	var err error
	if vErr := validateDampingFactor(cfg.DampingFactor); vErr != nil {
		err = multierror.Append(err, vErr)
	}
	if cfg.Samples <= 0 {
		err = multierror.Append(err, xerrors.Errorf("sample count %d must be positive: %w", cfg.Samples, ErrInvalidParameter))
	}
	if cfg.Walkers <= 0 {
		cfg.Walkers = 1
	}
	if cfg.Samples > 0 && cfg.Walkers > cfg.Samples {
		cfg.Walkers = cfg.Samples
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.Logger == nil {
		cfg.Logger = discardLogger()
	}
	return err
}

// SolverConfig encapsulates the settings for configuring a Solver.
type SolverConfig struct {
	// DampingFactor is the probability that the surfer follows a link
	// instead of jumping to a random page. It must be in the (0, 1) range.
	DampingFactor float64

	// Tolerance is the per-page change below which a rank is considered
	// stable. It must be positive.
	Tolerance float64

	// MaxIterations caps the number of synchronous updates. If not
	// specified, DefaultMaxIterations is used.
	MaxIterations int

	// ComputeWorkers is the number of workers that update page ranks in
	// parallel within an iteration. Defaults to a single worker.
	ComputeWorkers int

	// Logger receives progress and summary messages. If not specified,
	// output is discarded.
	Logger *logrus.Entry
}

func (cfg *SolverConfig) validate() error {
	var err error
	if vErr := validateDampingFactor(cfg.DampingFactor); vErr != nil {
		err = multierror.Append(err, vErr)
	}
	if !(cfg.Tolerance > 0) {
		err = multierror.Append(err, xerrors.Errorf("tolerance %v must be positive: %w", cfg.Tolerance, ErrInvalidParameter))
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = DefaultMaxIterations
	}
	if cfg.ComputeWorkers <= 0 {
		cfg.ComputeWorkers = 1
	}
	if cfg.Logger == nil {
		cfg.Logger = discardLogger()
	}
	return err
}

func discardLogger() *logrus.Entry {
	l := logrus.New()
	l.Out = io.Discard
	return logrus.NewEntry(l)
}
