package main

import (
	"fmt"
	"slices"
	"strings"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"

	"github.com/ghettovoice/govcard/internal/errorutil"
	"github.com/ghettovoice/govcard/internal/util"
	"github.com/ghettovoice/govcard/vcard"
)

// filterFlags holds the card and item selection shared by several commands.
type filterFlags struct {
	exclude []string
	require []string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.exclude, "exclude", nil, "Drop properties with these names")
	cmd.Flags().StringSliceVar(&f.require, "require", nil, "Keep only cards having all of these properties")
}

func (f *filterFlags) apply(opts *vcard.ParseOptions) {
	if len(f.exclude) > 0 {
		opts.ItemFilter = func(it *vcard.Item) bool {
			return !slices.ContainsFunc(f.exclude, func(name string) bool { return util.EqFold(name, it.Name) })
		}
	}
	if len(f.require) > 0 {
		opts.CardFilter = func(c *vcard.Card) bool {
			for _, name := range f.require {
				if len(c.Find(name)) == 0 {
					return false
				}
			}
			return true
		}
	}
}

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var (
		version string
		output  string
		filters filterFlags
	)

	cmd := &cobra.Command{
		Use:   "convert [file...]",
		Short: "Rewrite vCard files for a target version",
		Long: "Parse vCard files (or stdin) and serialize them again for the target version.\n" +
			"The target defaults to output.version from the configuration.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if version == "" {
				version = ctx.cfg().Output.Version
			}
			if !isKnownVersion(version) {
				return errtrace.Wrap(errorutil.NewInvalidArgumentError("unsupported version %q", version))
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

			sopts := &vcard.SerializeOptions{RenderOptions: vcard.RenderOptions{Version: version}}
			if _, err := vcard.SerializeTo(w, cards, sopts); err != nil {
				return errtrace.Wrap(err)
			}
			if _, err := fmt.Fprint(w, vcard.EOL); err != nil {
				return errtrace.Wrap(err)
			}
			ctx.logger.Info("vcards converted", "count", len(cards), "version", version)
			return errtrace.Wrap(closeFn())
		},
	}

	cmd.Flags().StringVarP(&version, "to", "t", "", "Target vCard version: "+strings.Join(knownVersions, ", "))
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file, stdout by default")
	filters.register(cmd)
	return cmd
}

var knownVersions = []string{vcard.Version21, vcard.Version30, vcard.Version40}

func isKnownVersion(v string) bool { return slices.Contains(knownVersions, v) }
