// Command vcf converts, inspects and exports vCard files.
package main

import (
	"fmt"
	"os"

	"braces.dev/errtrace"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if dev, _ := cmd.PersistentFlags().GetBool("dev"); dev {
			fmt.Fprintln(os.Stderr, errtrace.FormatString(err))
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
