// Package config loads the settings of a ranking run from an optional YAML
// file, a .env file and PAGERANK_* environment variables, in increasing order
// of precedence.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/Ahmed-Sermani/pagerank/ranker"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration of a ranking run.
type Config struct {
	Ranking RankingConfig `yaml:"ranking"`
	Corpus  CorpusConfig  `yaml:"corpus"`
	Logging LoggingConfig `yaml:"logging"`
	Output  OutputConfig  `yaml:"output"`
}

// RankingConfig holds the parameters of both ranking algorithms.
type RankingConfig struct {
	DampingFactor  float64 `yaml:"dampingFactor"`
	Samples        int     `yaml:"samples"`
	Walkers        int     `yaml:"walkers"`
	Seed           int64   `yaml:"seed"`
	Tolerance      float64 `yaml:"tolerance"`
	MaxIterations  int     `yaml:"maxIterations"`
	ComputeWorkers int     `yaml:"computeWorkers"`
}

// CorpusConfig controls where the corpus is read from and how invalid links
// are treated.
type CorpusConfig struct {
	StrictMode   bool   `yaml:"strictMode"`
	LinkGraphURI string `yaml:"linkGraphUri"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// OutputConfig names the optional artifacts written after a run.
type OutputConfig struct {
	MetricsFile string `yaml:"metricsFile"`
	GraphFile   string `yaml:"graphFile"`
	GraphFormat string `yaml:"graphFormat"`
}

// Load reads a YAML config file (if provided), loads a .env file from the
// working directory (if present) and applies environment-variable overrides
// on top of the defaults. Variables that are already set in the environment
// are not replaced by .env entries.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, xerrors.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, xerrors.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, xerrors.Errorf("loading .env file: %w", err)
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, xerrors.Errorf("applying environment overrides: %w", err)
	}
	return cfg, nil
}

// Default returns a Config populated with the recommended values.
func Default() *Config {
	return &Config{
		Ranking: RankingConfig{
			DampingFactor: ranker.DefaultDampingFactor,
			Samples:       ranker.DefaultSamples,
			Walkers:       1,
			Tolerance:     ranker.DefaultTolerance,
			MaxIterations: ranker.DefaultMaxIterations,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Output: OutputConfig{
			GraphFormat: "svg",
		},
	}
}

// Validate checks the configuration and reports every problem found.
func (cfg *Config) Validate() error {
	var err error
	r := cfg.Ranking
	if !(r.DampingFactor > 0 && r.DampingFactor < 1) {
		err = multierror.Append(err, xerrors.Errorf("damping factor %v must be in the range (0, 1)", r.DampingFactor))
	}
	if r.Samples <= 0 {
		err = multierror.Append(err, xerrors.Errorf("sample count %d must be positive", r.Samples))
	}
	if r.Walkers < 0 {
		err = multierror.Append(err, xerrors.Errorf("walker count %d must not be negative", r.Walkers))
	}
	if !(r.Tolerance > 0) {
		err = multierror.Append(err, xerrors.Errorf("tolerance %v must be positive", r.Tolerance))
	}
	if r.MaxIterations < 0 {
		err = multierror.Append(err, xerrors.Errorf("max iterations %d must not be negative", r.MaxIterations))
	}
	if r.ComputeWorkers < 0 {
		err = multierror.Append(err, xerrors.Errorf("compute worker count %d must not be negative", r.ComputeWorkers))
	}
	if _, lErr := logrus.ParseLevel(cfg.Logging.Level); lErr != nil {
		err = multierror.Append(err, xerrors.Errorf("log level: %w", lErr))
	}
	switch cfg.Logging.Format {
	case "text", "json":
	default:
		err = multierror.Append(err, xerrors.Errorf("unsupported log format %q", cfg.Logging.Format))
	}
	switch cfg.Output.GraphFormat {
	case "dot", "svg", "png", "jpg":
	default:
		err = multierror.Append(err, xerrors.Errorf("unsupported graph format %q", cfg.Output.GraphFormat))
	}
	return err
}

func applyEnvOverrides(cfg *Config) error {
	var err error
	parseFloat := func(name string, dst *float64) {
		if v := os.Getenv(name); v != "" {
			f, pErr := strconv.ParseFloat(v, 64)
			if pErr != nil {
				err = multierror.Append(err, xerrors.Errorf("%s: %w", name, pErr))
				return
			}
			*dst = f
		}
	}
	parseInt := func(name string, dst *int) {
		if v := os.Getenv(name); v != "" {
			i, pErr := strconv.Atoi(v)
			if pErr != nil {
				err = multierror.Append(err, xerrors.Errorf("%s: %w", name, pErr))
				return
			}
			*dst = i
		}
	}
	parseString := func(name string, dst *string) {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}

	parseFloat("PAGERANK_DAMPING_FACTOR", &cfg.Ranking.DampingFactor)
	parseInt("PAGERANK_SAMPLES", &cfg.Ranking.Samples)
	parseInt("PAGERANK_WALKERS", &cfg.Ranking.Walkers)
	parseFloat("PAGERANK_TOLERANCE", &cfg.Ranking.Tolerance)
	parseInt("PAGERANK_MAX_ITERATIONS", &cfg.Ranking.MaxIterations)
	parseInt("PAGERANK_COMPUTE_WORKERS", &cfg.Ranking.ComputeWorkers)
	if v := os.Getenv("PAGERANK_SEED"); v != "" {
		seed, pErr := strconv.ParseInt(v, 10, 64)
		if pErr != nil {
			err = multierror.Append(err, xerrors.Errorf("PAGERANK_SEED: %w", pErr))
		} else {
			cfg.Ranking.Seed = seed
		}
	}
	if v := os.Getenv("PAGERANK_STRICT_MODE"); v != "" {
		strict, pErr := strconv.ParseBool(v)
		if pErr != nil {
			err = multierror.Append(err, xerrors.Errorf("PAGERANK_STRICT_MODE: %w", pErr))
		} else {
			cfg.Corpus.StrictMode = strict
		}
	}
	parseString("PAGERANK_LINK_GRAPH_URI", &cfg.Corpus.LinkGraphURI)
	parseString("PAGERANK_LOG_LEVEL", &cfg.Logging.Level)
	parseString("PAGERANK_LOG_FORMAT", &cfg.Logging.Format)
	parseString("PAGERANK_METRICS_FILE", &cfg.Output.MetricsFile)
	parseString("PAGERANK_GRAPH_FILE", &cfg.Output.GraphFile)
	parseString("PAGERANK_GRAPH_FORMAT", &cfg.Output.GraphFormat)
	return err
}
