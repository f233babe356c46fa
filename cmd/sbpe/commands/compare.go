package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/arloliu/sbpe/compress"
	"github.com/arloliu/sbpe/format"
)

func newCompareCommand(s *settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <file>",
		Short: "Compare sbpe against zstd, s2, lz4 and no compression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readFile(args[0])
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CODEC\tSIZE\tBYTES\tRATIO\tCOMPRESS\tDECOMPRESS")

			for _, ct := range compress.AllCompressionTypes() {
				codec, err := compress.GetCodec(ct)
				if err != nil {
					return err
				}
				if ct == format.CompressionSBPE {
					codec = compress.NewSBPECompressor(s.encoderOptions()...)
				}

				stats, err := compress.Measure(ct, codec, data)
				if err != nil {
					return err
				}
				s.logger.Debug().
					Stringer("codec", ct).
					Int64("size", stats.CompressedSize).
					Msg("codec measured")

				fmt.Fprintf(tw, "%s\t%s\t%d\t%.4f\t%s\t%s\n",
					ct,
					humanSize(int(stats.CompressedSize)),
					stats.CompressedSize,
					stats.Ratio,
					time.Duration(stats.CompressionTimeNs).Round(time.Microsecond),
					time.Duration(stats.DecompressionTimeNs).Round(time.Microsecond),
				)
			}

			return tw.Flush()
		},
	}
	withEncoderFlags(cmd, s)

	return cmd
}
