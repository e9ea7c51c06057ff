package main

import (
	"fmt"
	"io"
	"os"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"

	"github.com/ghettovoice/govcard/internal/errorutil"
	"github.com/ghettovoice/govcard/vcard"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var (
		format  string
		version string
		output  string
		filters filterFlags
	)

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Build vCard text from the structured form",
		Long: "Read cards in the structured form (JSON, YAML or CBOR) from a file or stdin\n" +
			"and serialize them as vCard text for the target version.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) > 0 {
				path = args[0]
			}
			format, err := formatOf(format, path, ctx.cfg().Output.Format)
			if err != nil {
				return errtrace.Wrap(err)
			}
			if version == "" {
				version = ctx.cfg().Output.Version
			}
			if !isKnownVersion(version) {
				return errtrace.Wrap(errorutil.NewInvalidArgumentError("unsupported version %q", version))
			}

			var data []byte
			if path == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(path)
			}
			if err != nil {
				return errtrace.Errorf("read %s: %w", path, err)
			}

			opts := ctx.parseOptions(path)
			filters.apply(&opts)
			cards, err := decodeCards(data, format, &opts)
			if err != nil {
				return errtrace.Errorf("decode %s: %w", path, err)
			}

			w, closeFn, err := createOutput(cmd, output)
			if err != nil {
				return errtrace.Wrap(err)
			}
			defer closeFn() //nolint:errcheck

			sopts := &vcard.SerializeOptions{RenderOptions: vcard.RenderOptions{Version: version}}
			if _, err := vcard.SerializeTo(w, cards, sopts); err != nil {
				return errtrace.Wrap(err)
			}
			if _, err := fmt.Fprint(w, vcard.EOL); err != nil {
				return errtrace.Wrap(err)
			}
			ctx.logger.Info("vcards imported", "count", len(cards), "format", format, "version", version)
			return errtrace.Wrap(closeFn())
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Input format: json, yaml or cbor")
	cmd.Flags().StringVarP(&version, "to", "t", "", "Target vCard version")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file, stdout by default")
	filters.register(cmd)
	return cmd
}
