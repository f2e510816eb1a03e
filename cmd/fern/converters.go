package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Ramsey-B/fern/pkg/converters"
	"github.com/Ramsey-B/fern/pkg/converters/registry"
)

var convertersCmd = &cobra.Command{
	Use:   "converters",
	Short: "List the registered field converters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "KEY\tDESCRIPTION")
		for _, key := range registry.Default().Keys() {
			fmt.Fprintf(w, "%s\t%s\n", key, converters.Definitions[key].Description)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(convertersCmd)
}
