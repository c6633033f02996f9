package main

import (
	"fmt"
	"io"

	"Armature/internal/calc/bbs"

	"github.com/spf13/cobra"
)

func newBBSCmd(a *app) *cobra.Command {
	var (
		code    string
		stock   float64
		cover   float64
		wastage float64
	)
	cmd := &cobra.Command{
		Use:   "bbs FILE",
		Short: "Build a bar bending schedule from a JSON or YAML item list",
		Long: `Build a bar bending schedule. FILE holds a document with "items" and
optional "options", in JSON or YAML; use "-" to read stdin.

Flags given on the command line override the file's options.

Example:
  quickdesign bbs schedule.yaml --stock 12 --wastage 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults, err := a.defaults()
			if err != nil {
				return err
			}
			var in bbs.Input
			if err := readInput(cmd, args[0], &in); err != nil {
				return err
			}
			if cmd.Flags().Changed("code") {
				in.Options.DesignCode = code
			}
			if cmd.Flags().Changed("stock") {
				in.Options.StockLengthM = stock
			}
			if cmd.Flags().Changed("cover") {
				in.Options.CoverMM = cover
			}
			if w := optional(cmd, "wastage", wastage); w != nil {
				in.Options.WastagePercent = w
			}
			res, err := bbs.Calculate(in, defaults)
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), res, func(w io.Writer) { printBBS(w, res) })
		},
	}

	f := cmd.Flags()
	f.StringVar(&code, "code", "", "Design code label echoed in the schedule")
	f.Float64Var(&stock, "stock", 0, "Stock bar length (m)")
	f.Float64VarP(&cover, "cover", "c", 0, "Default clear cover (mm)")
	f.Float64Var(&wastage, "wastage", 0, "Default wastage (%)")
	return cmd
}

func printBBS(w io.Writer, r bbs.Result) {
	heading(w, fmt.Sprintf("BAR BENDING SCHEDULE (%s):", r.DesignCode))
	tw := newTabWriter(w)
	fmt.Fprintf(tw, "  Mark\tMember\tType\tShape\tØ\tNo.\tCut (m)\tTotal (m)\tWeight (kg)\tHook / lap\n")
	for _, it := range r.Items {
		detail := it.Hook
		if it.Lap != "" {
			if detail != "" {
				detail += "; "
			}
			detail += it.Lap
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%.0f\t%d\t%.3f\t%.3f\t%.3f\t%s\n",
			it.BarMark, it.MemberID, it.BarType, it.Shape, it.DiameterMM, it.NumBars,
			it.CuttingLengthM, it.TotalLengthM, it.TotalWeightKg, detail)
	}
	tw.Flush()

	s := r.Summary
	heading(w, "BY DIAMETER:")
	tw = newTabWriter(w)
	fmt.Fprintf(tw, "  Ø (mm)\tBars\tLength (m)\tWeight (kg)\n")
	for _, d := range s.ByDiameter {
		fmt.Fprintf(tw, "  %.0f\t%d\t%.3f\t%.3f\n", d.DiameterMM, d.NumBars, d.TotalLengthM, d.TotalWeightKg)
	}
	fmt.Fprintf(tw, "  Total\t%d\t%.3f\t%.3f\n", s.TotalBars, s.TotalLengthM, s.TotalWeightKg)
	tw.Flush()
	if s.TotalCost != nil {
		fmt.Fprintf(w, "  Steel cost: %.2f\n", *s.TotalCost)
	}

	printNotes(w, "COMPLIANCE NOTES:", r.ComplianceNotes)
	printSummary(w, r.Text)
}
