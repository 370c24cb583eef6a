/*
A service that ranks a corpus with a single algorithm, timing the run and
recording its outcome in the metrics registry.
*/
package rank

import (
	"context"
	"io"

	"github.com/Ahmed-Sermani/pagerank/corpus"
	"github.com/Ahmed-Sermani/pagerank/metrics"
	"github.com/Ahmed-Sermani/pagerank/ranker"
	"github.com/Ahmed-Sermani/pagerank/service"
	"github.com/hashicorp/go-multierror"
	"github.com/juju/clock"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

var _ service.Service = (*Service)(nil)

// Config encapsulates the settings for configuring the rank service.
type Config struct {
	// The algorithm to run.
	Algorithm ranker.Algorithm

	// The corpus to rank.
	Corpus *corpus.Corpus

	// A clock instance for measuring run durations. If not specified,
	// the wall clock is used.
	Clock clock.Clock

	// Collectors updated after the run. Optional.
	Metrics *metrics.Metrics

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (cfg *Config) validate() error {
	var err error
	if cfg.Algorithm == nil {
		err = multierror.Append(err, xerrors.Errorf("ranking algorithm has not been provided"))
	}
	if cfg.Corpus == nil {
		err = multierror.Append(err, xerrors.Errorf("corpus has not been provided"))
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.WallClock
	}
	if cfg.Logger == nil {
		l := logrus.New()
		l.Out = io.Discard
		cfg.Logger = logrus.NewEntry(l)
	}
	return err
}

// Service runs a ranking algorithm once and keeps its result.
type Service struct {
	cfg    Config
	result *ranker.Result
}

// NewService creates a new rank service instance with the specified config.
func NewService(cfg Config) (*Service, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("rank service: config validation failed: %w", err)
	}
	return &Service{cfg: cfg}, nil
}

// Name implements service.Service
func (svc *Service) Name() string { return "rank/" + svc.cfg.Algorithm.Name() }

// Run implements service.Service
func (svc *Service) Run(ctx context.Context) error {
	var (
		algorithm = svc.cfg.Algorithm.Name()
		logger    = svc.cfg.Logger.WithField("algorithm", algorithm)
		start     = svc.cfg.Clock.Now()
	)
	logger.WithField("pages", svc.cfg.Corpus.Size()).Info("starting ranking run")

	res, err := svc.cfg.Algorithm.Rank(ctx, svc.cfg.Corpus)
	took := svc.cfg.Clock.Now().Sub(start)
	svc.record(algorithm, res, err, took.Seconds())
	if err != nil {
		logger.WithField("err", err).Error("ranking run failed")
		return err
	}
	svc.result = res

	logger.WithFields(logrus.Fields{
		"took":       took.String(),
		"iterations": res.Iterations,
		"samples":    res.Samples,
	}).Info("completed ranking run")
	return nil
}

// Result returns the outcome of the last successful run or nil.
func (svc *Service) Result() *ranker.Result { return svc.result }

func (svc *Service) record(algorithm string, res *ranker.Result, err error, seconds float64) {
	m := svc.cfg.Metrics
	if m == nil {
		return
	}
	m.CorpusPages.Set(float64(svc.cfg.Corpus.Size()))
	m.RunDuration.WithLabelValues(algorithm).Observe(seconds)
	if err != nil {
		m.RunsTotal.WithLabelValues(algorithm, "error").Inc()
		return
	}
	m.RunsTotal.WithLabelValues(algorithm, "ok").Inc()
	if res.Iterations > 0 {
		m.SolverIterations.Set(float64(res.Iterations))
	}
	if res.Samples > 0 {
		m.SamplerStepsTotal.Add(float64(res.Samples))
	}
}
