package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/Ramsey-B/fern/pkg/converters"
	"github.com/Ramsey-B/fern/pkg/mapper"
)

var planCmd = &cobra.Command{
	Use:   "plan <node>",
	Short: "Show how each field of a node maps onto a model",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		newModel, ok := demoModels[modelName]
		if !ok {
			return fmt.Errorf("unknown model %q (must be one of %s)", modelName, strings.Join(demoModelNames(), ", "))
		}

		ctx := cmd.Context()
		if editMode {
			ctx = converters.WithEditMode(ctx)
		}
		node, err := env.findNode(ctx, args[0])
		if err != nil {
			return err
		}

		report, err := env.mapper.MapToWithReport(ctx, node, newModel())
		if err != nil {
			return err
		}

		if jsonOutput {
			out, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		}
		printReport(cmd, report)
		return nil
	},
}

func printReport(cmd *cobra.Command, report *mapper.Report) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "model:  %s\nnode:   %s\nschema: %s\nplan:   %s\n\n", report.Model, report.NodeID, report.Schema, planState(report.PlanHit))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FIELD\tTYPE\tCONVERTER\tSTATUS\tPLANNED")
	for _, field := range report.Fields {
		for i, outcome := range field.Outcomes {
			name, tag, planned := field.Name, field.TypeTag, fmt.Sprint(field.Productive)
			if i > 0 {
				name, tag, planned = "", "", ""
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", name, tag, outcome.Converter, outcome.Status, planned)
		}
	}
	w.Flush()
}

func planState(hit bool) string {
	if hit {
		return "cached"
	}
	return "discovered"
}

func init() {
	rootCmd.AddCommand(planCmd)
}
