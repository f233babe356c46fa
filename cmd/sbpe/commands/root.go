// Package commands implements the sbpe command line tool.
package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/arloliu/sbpe"
	"github.com/arloliu/sbpe/blob"
)

const (
	logFormatConsole = "console"
	logFormatJSON    = "json"
)

// settings holds the flag values shared by all subcommands.
type settings struct {
	logLevel  string
	logFormat string
	logger    zerolog.Logger

	seed             uint64
	generateAttempts int
	optimizeAttempts int
	concurrency      int
}

// NewRootCommand builds the sbpe command tree.
func NewRootCommand() *cobra.Command {
	s := &settings{logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:           "sbpe",
		Short:         "sbpe compresses files with a vocabulary learned from the file itself",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), s.logLevel, s.logFormat)
			if err != nil {
				return err
			}
			s.logger = logger

			return nil
		},
	}

	root.PersistentFlags().StringVar(&s.logLevel, "log-level", zerolog.InfoLevel.String(), "log level (trace, debug, info, warn, error)")
	root.PersistentFlags().StringVar(&s.logFormat, "log-format", logFormatConsole, "log format (console or json)")

	root.AddCommand(
		newCompressCommand(s),
		newDecompressCommand(s),
		newInfoCommand(s),
		newCompareCommand(s),
		newVerifyCommand(s),
	)

	return root
}

// newLogger builds the root logger writing to w.
func newLogger(w io.Writer, level, format string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}

	switch format {
	case logFormatConsole:
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	case logFormatJSON:
	default:
		return zerolog.Nop(), fmt.Errorf("invalid log format %q", format)
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

// withEncoderFlags registers the flags that tune compression.
func withEncoderFlags(cmd *cobra.Command, s *settings) {
	cmd.Flags().Uint64Var(&s.seed, "seed", blob.DefaultSeed, "seed of the first vocabulary order attempt")
	cmd.Flags().IntVar(&s.generateAttempts, "generate-attempts", blob.DefaultGenerateAttempts, "maximum number of vocabulary merges")
	cmd.Flags().IntVar(&s.optimizeAttempts, "optimize-attempts", blob.DefaultOptimizeAttempts, "number of vocabulary orders to evaluate")
	cmd.Flags().IntVar(&s.concurrency, "concurrency", 0, "parallel order evaluations (0 = GOMAXPROCS)")
}

func (s *settings) encoderOptions() []sbpe.Option {
	return []sbpe.Option{
		sbpe.WithSeed(s.seed),
		sbpe.WithGenerateAttempts(s.generateAttempts),
		sbpe.WithOptimizeAttempts(s.optimizeAttempts),
		sbpe.WithConcurrency(s.concurrency),
		sbpe.WithLogger(s.logger),
	}
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	return data, nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint: gosec
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}

func humanSize(n int) string {
	return datasize.ByteSize(n).HumanReadable() //nolint: gosec
}
