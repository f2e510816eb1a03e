package main

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/Ramsey-B/fern/pkg/converters"
)

var (
	modelName string
	editMode  bool
)

var mapCmd = &cobra.Command{
	Use:   "map <node>",
	Short: "Map a node onto a model and print it",
	Long: `Map a node, given by id or by fixture name, onto one of the demo models
and print the result as JSON.`,
	Args: cobra.ExactArgs(1),
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

		model := newModel()
		if err := env.mapper.MapTo(ctx, node, model); err != nil {
			return err
		}

		out, err := json.MarshalIndent(model, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{mapCmd, planCmd} {
		c.Flags().StringVarP(&modelName, "model", "m", "article", "demo model to map onto ("+strings.Join(demoModelNames(), ", ")+")")
		c.Flags().BoolVar(&editMode, "edit", false, "map in edit mode")
	}
	rootCmd.AddCommand(mapCmd)
}
