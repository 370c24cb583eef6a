package main

import (
	"context"
	"flag"
	"io"
	"net/url"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/Ahmed-Sermani/pagerank/config"
	"github.com/Ahmed-Sermani/pagerank/corpus"
	"github.com/Ahmed-Sermani/pagerank/graph"
	"github.com/Ahmed-Sermani/pagerank/graph/store/cdb"
	memgraph "github.com/Ahmed-Sermani/pagerank/graph/store/memory"
	"github.com/Ahmed-Sermani/pagerank/metrics"
	"github.com/Ahmed-Sermani/pagerank/ranker"
	"github.com/Ahmed-Sermani/pagerank/report"
	"github.com/Ahmed-Sermani/pagerank/service"
	"github.com/Ahmed-Sermani/pagerank/service/rank"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

var (
	appName = "pagerank"
	appSha  = ""
)

func main() {
	host, _ := os.Hostname()
	rootLogger := logrus.New()
	logger := rootLogger.WithFields(logrus.Fields{
		"app":  appName,
		"sha":  appSha,
		"host": host,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGHUP)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout, logger); err != nil {
		logger.WithField("err", err).Error("shutting down due to error")
		cancel()
		os.Exit(1)
	}
}

// run ranks the corpus described by args with both algorithms and writes the
// comparison to out. Nothing is written to out unless both runs succeed.
func run(ctx context.Context, args []string, out io.Writer, logger *logrus.Entry) error {
	cfg, src, err := parseConfig(args)
	if err != nil {
		return err
	}
	if err = configureLogger(logger.Logger, cfg.Logging); err != nil {
		return err
	}

	c, err := loadCorpus(cfg, src, logger)
	if err != nil {
		return err
	}
	logger.WithField("pages", c.Size()).Info("loaded corpus")

	m := metrics.New()
	sampling, iteration, err := setupServices(cfg, c, m, logger)
	if err != nil {
		return err
	}
	if err = (service.Group{sampling, iteration}).Run(ctx); err != nil {
		return err
	}

	if err = report.WriteComparison(out, sampling.Result(), iteration.Result()); err != nil {
		return xerrors.Errorf("write report: %w", err)
	}
	if cfg.Output.MetricsFile != "" {
		if err = m.WriteTextfile(cfg.Output.MetricsFile); err != nil {
			return err
		}
	}
	if cfg.Output.GraphFile != "" {
		if err = writeGraph(cfg.Output, c, iteration.Result().Ranks); err != nil {
			return err
		}
	}
	return nil
}

// corpusSource describes where the corpus is read from.
type corpusSource struct {
	dir string

	// importDir writes the corpus parsed from dir into the link graph
	// before it is read back.
	importDir bool
}

// parseConfig loads the config file named by -config and overrides it with
// the flags that were explicitly set on the command line.
func parseConfig(args []string) (*config.Config, corpusSource, error) {
	var src corpusSource
	var (
		fs    = flag.NewFlagSet(appName, flag.ContinueOnError)
		flags = config.Default()
	)

	configPath := fs.String("config", "", "Path to a YAML config file")
	fs.Float64Var(&flags.Ranking.DampingFactor, "damping", flags.Ranking.DampingFactor, "The probability of following a link instead of jumping to a random page")
	fs.IntVar(&flags.Ranking.Samples, "samples", flags.Ranking.Samples, "The number of pages visited by the random walks")
	fs.IntVar(&flags.Ranking.Walkers, "walkers", flags.Ranking.Walkers, "The number of parallel random walks sharing the sample budget")
	fs.Int64Var(&flags.Ranking.Seed, "seed", flags.Ranking.Seed, "The random walk seed (0 picks a time-based seed)")
	fs.Float64Var(&flags.Ranking.Tolerance, "tolerance", flags.Ranking.Tolerance, "The per-page rank change below which iteration stops")
	fs.IntVar(&flags.Ranking.MaxIterations, "max-iterations", flags.Ranking.MaxIterations, "The maximum number of iterations before giving up")
	fs.IntVar(&flags.Ranking.ComputeWorkers, "workers", runtime.NumCPU(), "The number of workers updating ranks in parallel (defaults to number of CPUs)")
	fs.BoolVar(&flags.Corpus.StrictMode, "strict", flags.Corpus.StrictMode, "Reject self-links and links to pages outside the corpus instead of dropping them")
	fs.StringVar(&flags.Corpus.LinkGraphURI, "link-graph-uri", flags.Corpus.LinkGraphURI, "The URI of a link graph to read the corpus from (supported URIs: in-memory://, postgresql://user@host:26257/linkgraph?sslmode=disable)")
	importDir := fs.Bool("import", false, "Write the corpus parsed from CORPUS_DIR into the link graph before ranking")
	fs.StringVar(&flags.Logging.Level, "log-level", flags.Logging.Level, "The log level (debug, info, warn, error)")
	fs.StringVar(&flags.Logging.Format, "log-format", flags.Logging.Format, "The log format (text, json)")
	fs.StringVar(&flags.Output.MetricsFile, "metrics-out", flags.Output.MetricsFile, "Write run metrics in Prometheus text format to this file")
	fs.StringVar(&flags.Output.GraphFile, "graph-out", flags.Output.GraphFile, "Render the ranked corpus to this file")
	fs.StringVar(&flags.Output.GraphFormat, "graph-format", flags.Output.GraphFormat, "The format of the rendered corpus (dot, svg, png, jpg)")
	if err := fs.Parse(args); err != nil {
		return nil, src, err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, src, err
	}
	if cfg.Ranking.ComputeWorkers == 0 {
		cfg.Ranking.ComputeWorkers = flags.Ranking.ComputeWorkers
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "damping":
			cfg.Ranking.DampingFactor = flags.Ranking.DampingFactor
		case "samples":
			cfg.Ranking.Samples = flags.Ranking.Samples
		case "walkers":
			cfg.Ranking.Walkers = flags.Ranking.Walkers
		case "seed":
			cfg.Ranking.Seed = flags.Ranking.Seed
		case "tolerance":
			cfg.Ranking.Tolerance = flags.Ranking.Tolerance
		case "max-iterations":
			cfg.Ranking.MaxIterations = flags.Ranking.MaxIterations
		case "workers":
			cfg.Ranking.ComputeWorkers = flags.Ranking.ComputeWorkers
		case "strict":
			cfg.Corpus.StrictMode = flags.Corpus.StrictMode
		case "link-graph-uri":
			cfg.Corpus.LinkGraphURI = flags.Corpus.LinkGraphURI
		case "log-level":
			cfg.Logging.Level = flags.Logging.Level
		case "log-format":
			cfg.Logging.Format = flags.Logging.Format
		case "metrics-out":
			cfg.Output.MetricsFile = flags.Output.MetricsFile
		case "graph-out":
			cfg.Output.GraphFile = flags.Output.GraphFile
		case "graph-format":
			cfg.Output.GraphFormat = flags.Output.GraphFormat
		}
	})

	if err = cfg.Validate(); err != nil {
		return nil, src, xerrors.Errorf("invalid configuration: %w", err)
	}
	if fs.NArg() > 1 {
		return nil, src, xerrors.Errorf("expected at most one corpus directory, got %d arguments", fs.NArg())
	}
	if fs.NArg() == 0 && cfg.Corpus.LinkGraphURI == "" {
		return nil, src, xerrors.Errorf("usage: %s [flags] CORPUS_DIR (or -link-graph-uri URI)", appName)
	}
	if *importDir && (fs.NArg() == 0 || cfg.Corpus.LinkGraphURI == "") {
		return nil, src, xerrors.Errorf("-import requires both CORPUS_DIR and -link-graph-uri")
	}
	if !*importDir && fs.NArg() == 1 && cfg.Corpus.LinkGraphURI != "" {
		return nil, src, xerrors.Errorf("CORPUS_DIR and -link-graph-uri are mutually exclusive unless -import is set")
	}

	src.dir, src.importDir = fs.Arg(0), *importDir
	return cfg, src, nil
}

func configureLogger(l *logrus.Logger, cfg config.LoggingConfig) error {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return err
	}
	l.SetLevel(level)
	if cfg.Format == "json" {
		l.SetFormatter(new(logrus.JSONFormatter))
	}
	return nil
}

// loadCorpus reads the corpus from src.dir or from the configured link graph.
// With src.importDir set the directory is written into the link graph first
// and the corpus is read back from it.
func loadCorpus(cfg *config.Config, src corpusSource, logger *logrus.Entry) (*corpus.Corpus, error) {
	corpusCfg := corpus.Config{StrictMode: cfg.Corpus.StrictMode}
	if cfg.Corpus.LinkGraphURI == "" {
		return corpus.LoadDir(src.dir, corpusCfg)
	}

	g, err := getLinkGraph(cfg.Corpus.LinkGraphURI, logger)
	if err != nil {
		return nil, err
	}
	if closer, ok := g.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	if src.importDir {
		c, err := corpus.LoadDir(src.dir, corpusCfg)
		if err != nil {
			return nil, err
		}
		if err = corpus.Export(g, c); err != nil {
			return nil, err
		}
		logger.WithField("pages", c.Size()).Info("imported corpus into link graph")
	}
	return corpus.FromLinkGraph(g, time.Now(), corpusCfg)
}

func getLinkGraph(linkGraphURI string, logger *logrus.Entry) (graph.Graph, error) {
	uri, err := url.Parse(linkGraphURI)
	if err != nil {
		return nil, xerrors.Errorf("could not parse link graph URI: %w", err)
	}

	switch uri.Scheme {
	case "in-memory":
		logger.Info("using in-memory graph")
		return memgraph.NewInMemoryGraph(), nil
	case "postgresql":
		logger.Info("using CDB graph")
		g, err := cdb.NewCockroachDBGraph(linkGraphURI)
		if err != nil {
			return nil, err
		}
		if err = g.EnsureSchema(); err != nil {
			_ = g.Close()
			return nil, err
		}
		return g, nil
	default:
		return nil, xerrors.Errorf("unsupported link graph URI scheme: %q", uri.Scheme)
	}
}

func setupServices(cfg *config.Config, c *corpus.Corpus, m *metrics.Metrics, logger *logrus.Entry) (*rank.Service, *rank.Service, error) {
	sampler, err := ranker.NewSampler(ranker.SamplerConfig{
		DampingFactor: cfg.Ranking.DampingFactor,
		Samples:       cfg.Ranking.Samples,
		Walkers:       cfg.Ranking.Walkers,
		Seed:          cfg.Ranking.Seed,
		Logger:        logger.WithField("algorithm", "sampling"),
	})
	if err != nil {
		return nil, nil, err
	}
	solver, err := ranker.NewSolver(ranker.SolverConfig{
		DampingFactor:  cfg.Ranking.DampingFactor,
		Tolerance:      cfg.Ranking.Tolerance,
		MaxIterations:  cfg.Ranking.MaxIterations,
		ComputeWorkers: cfg.Ranking.ComputeWorkers,
		Logger:         logger.WithField("algorithm", "iteration"),
	})
	if err != nil {
		return nil, nil, err
	}

	sampling, err := rank.NewService(rank.Config{
		Algorithm: sampler,
		Corpus:    c,
		Metrics:   m,
		Logger:    logger.WithField("service", "rank"),
	})
	if err != nil {
		return nil, nil, err
	}
	iteration, err := rank.NewService(rank.Config{
		Algorithm: solver,
		Corpus:    c,
		Metrics:   m,
		Logger:    logger.WithField("service", "rank"),
	})
	if err != nil {
		return nil, nil, err
	}
	return sampling, iteration, nil
}

func writeGraph(cfg config.OutputConfig, c *corpus.Corpus, ranks ranker.Distribution) error {
	f, err := os.Create(cfg.GraphFile)
	if err != nil {
		return xerrors.Errorf("create graph file: %w", err)
	}
	if err = report.RenderGraph(f, c, ranks, cfg.GraphFormat); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
