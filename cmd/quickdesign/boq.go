package main

import (
	"fmt"
	"io"

	"Armature/internal/calc/boq"

	"github.com/spf13/cobra"
)

func newBOQCmd(a *app) *cobra.Command {
	var overheads, profit float64
	var currency string
	cmd := &cobra.Command{
		Use:   "boq FILE",
		Short: "Price a bill of quantities from a JSON or YAML item list",
		Long: `Price a bill of quantities. FILE holds "items", "rates" and optional
"options", in JSON or YAML; use "-" to read stdin.

Example:
  quickdesign boq estimate.yaml --overheads 10 --profit 15 --currency INR`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in boq.Input
			if err := readInput(cmd, args[0], &in); err != nil {
				return err
			}
			if cmd.Flags().Changed("overheads") {
				in.Options.OverheadsPercent = overheads
			}
			if cmd.Flags().Changed("profit") {
				in.Options.ProfitPercent = profit
			}
			if cmd.Flags().Changed("currency") {
				in.Options.Currency = currency
			}
			res, err := boq.Calculate(in)
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), res, func(w io.Writer) { printBOQ(w, res) })
		},
	}

	f := cmd.Flags()
	f.Float64Var(&overheads, "overheads", 0, "Overheads (%)")
	f.Float64Var(&profit, "profit", 0, "Profit (%)")
	f.StringVar(&currency, "currency", "", "Currency label")
	return cmd
}

func printBOQ(w io.Writer, r boq.Result) {
	heading(w, "BILL OF QUANTITIES:")
	tw := newTabWriter(w)
	fmt.Fprintf(tw, "  No.\tDescription\tQty\tUnit\tRate\tAmount\n")
	for _, l := range r.Lines {
		fmt.Fprintf(tw, "  %d\t%s\t%.3f\t%s\t%.2f\t%.2f\n", l.No, l.Description, l.Quantity, l.Unit, l.Rate, l.Amount)
	}
	tw.Flush()

	heading(w, "SUBTOTALS:")
	tw = newTabWriter(w)
	for _, s := range r.Subtotals {
		fmt.Fprintf(tw, "  %s\t%.2f\n", s.Category, s.Amount)
	}
	fmt.Fprintf(tw, "  Grand total %s\t%.2f\n", r.Currency, r.GrandTotal)
	tw.Flush()

	m := r.Materials
	if m != (boq.Materials{}) {
		heading(w, "MATERIALS:")
		tw = newTabWriter(w)
		fmt.Fprintf(tw, "  Cement:\t%.2f bags\n", m.CementBags)
		fmt.Fprintf(tw, "  Sand:\t%.3f m³\n", m.SandM3)
		fmt.Fprintf(tw, "  Aggregate:\t%.3f m³\n", m.AggregateM3)
		fmt.Fprintf(tw, "  Steel:\t%.2f kg\n", m.SteelKg)
		fmt.Fprintf(tw, "  Bricks:\t%.0f\n", m.Bricks)
		fmt.Fprintf(tw, "  Formwork:\t%.2f m²\n", m.FormworkM2)
		tw.Flush()
	}

	printSummary(w, r.Summary)
}
