package optimize

import (
	"fmt"
	"runtime"

	"github.com/rs/zerolog"

	"github.com/arloliu/sbpe/internal/options"
)

const (
	// DefaultAttempts is the number of shuffles tried when no option is given.
	DefaultAttempts = 10
	// DefaultStartSeed is the seed of the first attempt.
	DefaultStartSeed = 1
)

type config struct {
	attempts    int
	startSeed   uint64
	concurrency int
	logger      zerolog.Logger
}

func defaultConfig() *config {
	return &config{
		attempts:    DefaultAttempts,
		startSeed:   DefaultStartSeed,
		concurrency: runtime.GOMAXPROCS(0),
		logger:      zerolog.Nop(),
	}
}

// Option configures Optimize.
type Option = options.Option[*config]

// WithAttempts sets the number of shuffles to evaluate.
// Zero or a negative count evaluates the input order only.
func WithAttempts(n int) Option {
	return options.NoError(func(c *config) {
		c.attempts = n
	})
}

// WithStartSeed sets the seed of attempt 0; attempt i uses seed+i.
func WithStartSeed(seed uint64) Option {
	return options.NoError(func(c *config) {
		c.startSeed = seed
	})
}

// WithConcurrency bounds the number of attempts evaluated in parallel.
// Zero selects runtime.GOMAXPROCS(0).
func WithConcurrency(n int) Option {
	return options.New(func(c *config) error {
		if n < 0 {
			return fmt.Errorf("invalid concurrency: %d", n)
		}
		if n == 0 {
			n = runtime.GOMAXPROCS(0)
		}
		c.concurrency = n

		return nil
	})
}

// WithLogger sets the logger that receives progress events at debug level.
func WithLogger(logger zerolog.Logger) Option {
	return options.NoError(func(c *config) {
		c.logger = logger
	})
}
