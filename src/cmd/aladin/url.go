package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"aladin/src/internal/plugin"
)

// newURLCmd converts between identifiers and catalog page URLs.
func newURLCmd() *cobra.Command {
	var parse bool
	cmd := &cobra.Command{
		Use:   "url KIND VALUE | url --parse URL",
		Short: "Print the catalog page for an identifier, or the identifier of a page",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if parse {
				kind, value, ok := plugin.IDFromURL(args[0])
				if !ok {
					return fmt.Errorf("not a catalog item or series page: %s", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s:%s\n", kind, value)
				return nil
			}
			if len(args) != 2 {
				return fmt.Errorf("want KIND VALUE")
			}
			link, ok := plugin.Link(strings.ToLower(args[0]), args[1])
			if !ok {
				return fmt.Errorf("no page for %s %q", args[0], args[1])
			}
			fmt.Fprintln(cmd.OutOrStdout(), link)
			return nil
		},
	}
	cmd.Flags().BoolVar(&parse, "parse", false, "parse a page URL into KIND:VALUE")
	return cmd
}
