package fitstat

import (
	"github.com/arloliu/fitstat/errs"
	"github.com/arloliu/fitstat/internal/options"
	"github.com/arloliu/fitstat/logging"
)

// Config holds the settings a statistic is computed with.
type Config struct {
	// Normalized divides RMSE by the range of the observed response.
	Normalized bool
	// Null is the null model used by R2 for linear mixed models.
	Null any
	// Logger receives dispatch diagnostics.
	Logger logging.Logger
}

// Option is a functional option for Config.
type Option = options.Option[*Config]

func defaultConfig() *Config {
	return &Config{Logger: logging.NoOpLogger{}}
}

func newConfig(opts []Option) (*Config, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithNormalized makes RMSE return the RMSE divided by the range of the response.
func WithNormalized() Option {
	return options.NoError(func(cfg *Config) {
		cfg.Normalized = true
	})
}

// WithNullModel sets the null (intercept-only) counterpart of a linear mixed
// model, switching R2 to the variance decomposition.
func WithNullModel(null any) Option {
	return options.New(func(cfg *Config) error {
		if null == nil {
			return errs.ErrNilNullModel
		}
		cfg.Null = null

		return nil
	})
}

// WithLogger sets the logger for dispatch diagnostics.
func WithLogger(logger logging.Logger) Option {
	return options.New(func(cfg *Config) error {
		if logger == nil {
			return errs.ErrNilLogger
		}
		cfg.Logger = logger

		return nil
	})
}
