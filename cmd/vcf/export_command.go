package main

import (
	"braces.dev/errtrace"
	"github.com/spf13/cobra"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var (
		format  string
		output  string
		filters filterFlags
	)

	cmd := &cobra.Command{
		Use:   "export [file...]",
		Short: "Export vCard files to the structured form",
		Long: "Parse vCard files (or stdin) and write their structured form as JSON, YAML or CBOR.\n" +
			"The format defaults to the output file extension, then to output.format from the configuration.",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := formatOf(format, output, ctx.cfg().Output.Format)
			if err != nil {
				return errtrace.Wrap(err)
			}

			opts := ctx.parseOptions("")
			filters.apply(&opts)
			cards, err := ctx.readCards(cmd, args, opts)
			if err != nil {
				return errtrace.Wrap(err)
			}

			w, closeFn, err := createOutput(cmd, output)
			if err != nil {
				return errtrace.Wrap(err)
			}
			defer closeFn() //nolint:errcheck

			if err := encodeCards(w, format, cards); err != nil {
				return errtrace.Wrap(err)
			}
			ctx.logger.Info("vcards exported", "count", len(cards), "format", format)
			return errtrace.Wrap(closeFn())
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: json, yaml or cbor")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file, stdout by default")
	filters.register(cmd)
	return cmd
}
