package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/arloliu/sbpe/blob"
)

func newInfoCommand(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Show the header and section layout of an sbpe container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readFile(args[0])
			if err != nil {
				return err
			}

			layout, err := blob.Inspect(data)
			if err != nil {
				return fmt.Errorf("inspect %s: %w", args[0], err)
			}
			s.logger.Debug().Str("file", args[0]).Int("size", layout.TotalSize).Msg("container inspected")

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "container:    %s (%d bytes)\n", humanSize(layout.TotalSize), layout.TotalSize)
			fmt.Fprintf(out, "decoded size: %s (%d bytes)\n", humanSize(layout.DecodedSize), layout.DecodedSize)
			fmt.Fprintf(out, "entries:      %d\n", layout.Entries)
			fmt.Fprintf(out, "tokens:       %d in %d runs\n", layout.Tokens, layout.TokenRuns)
			fmt.Fprintf(out, "literals:     %d bytes in %d runs\n\n", layout.LiteralBytes, layout.LiteralRuns)

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SECTION\tOFFSET\tBYTES\tPADDING\tCOUNT")
			for _, sec := range layout.Sections {
				padding := "-"
				if sec.Type.IsBitPacked() {
					padding = fmt.Sprint(sec.Padding)
				}
				fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%d\n", sec.Type, sec.Offset, sec.Size, padding, sec.Count)
			}

			return tw.Flush()
		},
	}
}
