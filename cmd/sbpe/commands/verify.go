package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arloliu/sbpe"
	"github.com/arloliu/sbpe/internal/hash"
)

var errVerifyFailed = errors.New("verification failed")

func newVerifyCommand(s *settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <file>",
		Short: "Compress and decompress a file in memory and compare digests",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readFile(args[0])
			if err != nil {
				return err
			}

			b, err := sbpe.CompressWithStats(data, s.encoderOptions()...)
			if err != nil {
				return err
			}

			restored, err := sbpe.Decompress(b.Bytes())
			if err != nil {
				return fmt.Errorf("%w: %w", errVerifyFailed, err)
			}

			want := b.Stats().Digest
			got := hash.Sum64(restored)
			if got != want || len(restored) != len(data) {
				return fmt.Errorf("%w: digest %016x, want %016x", errVerifyFailed, got, want)
			}

			s.logger.Info().Str("file", args[0]).Str("digest", hash.Hex(restored)).Msg("verified")
			fmt.Fprintf(cmd.OutOrStdout(), "ok %016x %s -> %s\n", got, humanSize(len(data)), humanSize(b.Len()))

			return nil
		},
	}
	withEncoderFlags(cmd, s)

	return cmd
}
