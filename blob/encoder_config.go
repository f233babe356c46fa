package blob

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/arloliu/sbpe/internal/options"
	"github.com/arloliu/sbpe/optimize"
	"github.com/arloliu/sbpe/vocab"
)

const (
	// DefaultSeed is the seed of the first optimizer attempt.
	DefaultSeed = optimize.DefaultStartSeed
	// DefaultGenerateAttempts bounds the number of vocabulary merges.
	DefaultGenerateAttempts = 1000
	// DefaultOptimizeAttempts is the number of vocabulary orders evaluated.
	DefaultOptimizeAttempts = optimize.DefaultAttempts
)

// EncoderConfig holds the tunables of an Encoder.
type EncoderConfig struct {
	seed             uint64
	generateAttempts int
	optimizeAttempts int
	concurrency      int
	logger           zerolog.Logger
}

func defaultEncoderConfig() *EncoderConfig {
	return &EncoderConfig{
		seed:             DefaultSeed,
		generateAttempts: DefaultGenerateAttempts,
		optimizeAttempts: DefaultOptimizeAttempts,
		logger:           zerolog.Nop(),
	}
}

// Seed returns the seed of the first optimizer attempt.
func (c *EncoderConfig) Seed() uint64 {
	return c.seed
}

// GenerateAttempts returns the merge limit of the vocabulary builder.
func (c *EncoderConfig) GenerateAttempts() int {
	return c.generateAttempts
}

// OptimizeAttempts returns the number of orders the optimizer evaluates.
func (c *EncoderConfig) OptimizeAttempts() int {
	return c.optimizeAttempts
}

func (c *EncoderConfig) optimizeOptions() []optimize.Option {
	return []optimize.Option{
		optimize.WithAttempts(c.optimizeAttempts),
		optimize.WithStartSeed(c.seed),
		optimize.WithConcurrency(c.concurrency),
		optimize.WithLogger(c.logger),
	}
}

// EncoderOption configures an Encoder.
type EncoderOption = options.Option[*EncoderConfig]

// WithSeed sets the seed of the first optimizer attempt. Attempt i uses seed+i.
//
// Containers produced with the same seed and attempt counts are identical.
func WithSeed(seed uint64) EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.seed = seed
	})
}

// WithGenerateAttempts bounds the number of merges the vocabulary builder performs.
//
// Zero disables the vocabulary and stores the input as a single literal run.
// vocab.Unbounded merges until no pair repeats.
func WithGenerateAttempts(n int) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if n < 0 {
			return fmt.Errorf("invalid generate attempts: %d", n)
		}
		c.generateAttempts = n

		return nil
	})
}

// WithUnboundedVocabulary lets the vocabulary builder run to convergence.
func WithUnboundedVocabulary() EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.generateAttempts = vocab.Unbounded
	})
}

// WithOptimizeAttempts sets the number of vocabulary orders to evaluate.
//
// Zero keeps the creation order.
func WithOptimizeAttempts(n int) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if n < 0 {
			return fmt.Errorf("invalid optimize attempts: %d", n)
		}
		c.optimizeAttempts = n

		return nil
	})
}

// WithConcurrency bounds the number of optimizer attempts evaluated in parallel.
// Zero selects runtime.GOMAXPROCS(0). The output does not depend on this value.
func WithConcurrency(n int) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if n < 0 {
			return fmt.Errorf("invalid concurrency: %d", n)
		}
		c.concurrency = n

		return nil
	})
}

// WithLogger sets the logger that receives encoder and optimizer events.
func WithLogger(logger zerolog.Logger) EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.logger = logger
	})
}
