package main

import (
	"fmt"
	"strconv"
	"strings"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"

	"github.com/ghettovoice/govcard/internal/util"
	"github.com/ghettovoice/govcard/vcard"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var (
		items   bool
		filters filterFlags
	)

	cmd := &cobra.Command{
		Use:   "inspect [file...]",
		Short: "Show a summary of vCard files",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := ctx.parseOptions("")
			filters.apply(&opts)
			cards, err := ctx.readCards(cmd, args, opts)
			if err != nil {
				return errtrace.Wrap(err)
			}

			out := cmd.OutOrStdout()
			if items {
				for i, c := range cards {
					fmt.Fprintf(out, "Card %d (%s)\n", i+1, cardTitle(c))
					fmt.Fprintln(out, renderTable(
						[]string{"Name", "Params", "Type", "Value"},
						itemRows(ctx, c),
						nil,
					))
				}
				return nil
			}

			rows := make([][]string, 0, len(cards))
			for i, c := range cards {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					c.Source(),
					valueOr(c.Version(), "-"),
					cardTitle(c),
					strconv.Itoa(c.Len()),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Source", "Version", "Name", "Items"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&items, "items", false, "List the properties of every card")
	filters.register(cmd)
	return cmd
}

func cardTitle(c *vcard.Card) string {
	for _, name := range []string{"FN", "N", "ORG", "EMAIL"} {
		if its := c.Find(name); len(its) > 0 {
			if v, err := its[0].Decode(); err == nil && v != "" {
				return util.Ellipsis(v, 40)
			}
		}
	}
	return "-"
}

func itemRows(ctx *commandContext, c *vcard.Card) [][]string {
	rows := make([][]string, 0, c.Len())
	for _, it := range c.Items() {
		value, err := it.Decode()
		if err != nil {
			ctx.logger.Warn("vcard item decode failed", "item", it, "error", err)
			value = it.Value
		}

		params := make([]string, 0, len(it.Params))
		for _, p := range it.Params {
			params = append(params, p.Name+"="+strings.Join(p.Values, ","))
		}
		rows = append(rows, []string{
			util.UCase(it.Name),
			strings.Join(params, ";"),
			string(it.Type),
			util.Ellipsis(value, 60),
		})
	}
	return rows
}

func valueOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
