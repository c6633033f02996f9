package main

import (
	"fmt"
	"io"

	"Armature/internal/calc/takeoff"

	"github.com/spf13/cobra"
)

func newEstimateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "estimate FILE",
		Short: "Price a bar schedule and sized elements in one bill",
		Long: `Size the listed footings, walls and stairs, schedule the bars, and price
everything in one bill of quantities. FILE holds "schedule", "elements",
"extra_items", "rates" and "options", in JSON or YAML; use "-" to read stdin.

Example elements entry:
  elements:
    - name: F1
      footing: {column_load: {value: 500}, soil_allow: {value: 150}}`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults, err := a.defaults()
			if err != nil {
				return err
			}
			var in takeoff.EstimateInput
			if err := readInput(cmd, args[0], &in); err != nil {
				return err
			}
			res, err := takeoff.Estimate(in, defaults)
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), res, func(w io.Writer) { printEstimate(w, res) })
		},
	}
}

func printEstimate(w io.Writer, r takeoff.EstimateResult) {
	if len(r.Elements) > 0 {
		heading(w, "ELEMENTS:")
		tw := newTabWriter(w)
		fmt.Fprintf(tw, "  Name\tKind\tConcrete (m³)\tSteel (kg)\tFormwork (m²)\tNotes\n")
		for _, e := range r.Elements {
			fmt.Fprintf(tw, "  %s\t%s\t%.3f\t%.2f\t%.3f\t%d\n", e.Name, e.Kind,
				e.Quantities.ConcreteVolumeM3, e.Quantities.SteelMassKg, e.FormworkM2, len(e.Notes))
		}
		tw.Flush()
	}
	if r.Schedule != nil {
		fmt.Fprintf(w, "\n  Bar schedule: %s\n", r.Schedule.Text)
	}
	printBOQ(w, r.Bill)
}
