package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arloliu/sbpe"
)

func newCompressCommand(s *settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compress <input> <output>",
		Short: "Compress a file into an sbpe container",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readFile(args[0])
			if err != nil {
				return err
			}

			b, err := sbpe.CompressWithStats(input, s.encoderOptions()...)
			if err != nil {
				return err
			}

			if err := writeFile(args[1], b.Bytes()); err != nil {
				return err
			}

			stats := b.Stats()
			s.logger.Info().
				Str("input", args[0]).
				Str("output", args[1]).
				Int("stored_entries", stats.StoredEntries).
				Int("best_score", stats.BestScore).
				Uint64("best_seed", stats.BestSeed).
				Dur("elapsed", stats.Elapsed).
				Msg("compressed")

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "input size:  %s (%d bytes)\n", humanSize(stats.InputSize), stats.InputSize)
			fmt.Fprintf(out, "output size: %s (%d bytes)\n", humanSize(stats.OutputSize), stats.OutputSize)
			fmt.Fprintf(out, "ratio:       %.4f\n", stats.Ratio())

			return nil
		},
	}
	withEncoderFlags(cmd, s)

	return cmd
}

func newDecompressCommand(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "decompress <input> <output>",
		Short: "Restore a file from an sbpe container",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readFile(args[0])
			if err != nil {
				return err
			}

			output, err := sbpe.Decompress(input)
			if err != nil {
				return fmt.Errorf("decompress %s: %w", args[0], err)
			}

			if err := writeFile(args[1], output); err != nil {
				return err
			}

			s.logger.Info().
				Str("input", args[0]).
				Str("output", args[1]).
				Msg("decompressed")

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "input size:  %s (%d bytes)\n", humanSize(len(input)), len(input))
			fmt.Fprintf(out, "output size: %s (%d bytes)\n", humanSize(len(output)), len(output))

			return nil
		},
	}
}
