package main

import (
	"fmt"
	"io"

	"Armature/internal/calc/materials"
	"Armature/internal/calc/stair"
	"Armature/internal/calc/units"

	"github.com/spf13/cobra"
)

func newStairCmd(a *app) *cobra.Command {
	var (
		rise, run, width        float64
		unit                    string
		live                    float64
		cover, minThk, bar, fck float64
	)
	cmd := &cobra.Command{
		Use:   "stair",
		Short: "Proportion and size a straight stair flight",
		Long: `Choose risers and treads for a straight flight and size its waist slab
as a simply supported inclined span.

Examples:
  quickdesign stair --rise 3 --run 4.5
  quickdesign stair --rise 10 --run 15 --width 4 --unit ft`,
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults, err := a.defaults()
			if err != nil {
				return err
			}
			u := units.LengthUnit(unit)
			in := stair.Input{
				TotalRise:            units.Length{Value: rise, Unit: u},
				TotalRun:             units.Length{Value: run, Unit: u},
				Width:                units.Length{Value: width, Unit: u},
				LiveLoadKNM2:         live,
				RequiredClearCoverMM: cover,
				MinThicknessMM:       minThk,
				BarDiameterMM:        bar,
			}
			if f := optional(cmd, "fck", fck); f != nil {
				in.Materials = &materials.Overrides{FckMPa: f}
			}
			res, err := stair.Calculate(in, defaults)
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), res, func(w io.Writer) { printStair(w, res) })
		},
	}

	f := cmd.Flags()
	f.Float64Var(&rise, "rise", 0, "Total rise [required]")
	f.Float64Var(&run, "run", 0, "Total horizontal run [required]")
	f.Float64VarP(&width, "width", "w", 0, "Flight width (0 uses 1 m)")
	f.StringVar(&unit, "unit", "m", "Unit of rise, run and width (m, mm, cm, ft, in)")
	f.Float64Var(&live, "live-load", 0, "Live load (kN/m²), 0 uses the registry value")
	addDetailFlags(cmd, &cover, &minThk, &bar, &fck)

	cmd.MarkFlagRequired("rise")
	cmd.MarkFlagRequired("run")
	return cmd
}

func printStair(w io.Writer, r stair.Result) {
	g, l := r.Geometry, r.Loading
	heading(w, "FLIGHT GEOMETRY:")
	tw := newTabWriter(w)
	fmt.Fprintf(tw, "  Risers:\t%d × %.0f mm\n", g.Risers, g.RiserM*1000)
	fmt.Fprintf(tw, "  Treads:\t%d × %.0f mm\n", g.Treads, g.TreadM*1000)
	fmt.Fprintf(tw, "  Inclined span:\t%.3f m\n", g.SlopeLengthM)
	fmt.Fprintf(tw, "  Width:\t%.2f m\n", g.WidthM)
	fmt.Fprintf(tw, "  Waist thickness:\t%.0f mm\n", g.ThicknessMM)
	fmt.Fprintf(tw, "  Effective depth:\t%.1f mm (required %.1f mm)\n", g.EffectiveDepthMM, g.RequiredDepthMM)
	tw.Flush()

	heading(w, "LOADING (per metre width):")
	tw = newTabWriter(w)
	fmt.Fprintf(tw, "  Self weight:\t%.2f kN/m²\n", l.SelfWeightKNM2)
	fmt.Fprintf(tw, "  Live load:\t%.2f kN/m²\n", l.LiveLoadKNM2)
	fmt.Fprintf(tw, "  Line load:\t%.2f kN/m\n", l.LineLoadKNm)
	fmt.Fprintf(tw, "  Moment:\t%.2f kN-m\n", l.MomentKNm)
	fmt.Fprintf(tw, "  Shear:\t%.2f kN\n", l.ShearKN)
	tw.Flush()

	printChecks(w, r.Checks)
	printBars(w, r.Bbs)
	printQuantities(w, r.Quantities)
	printNotes(w, "NOTES:", r.Notes)
	printSummary(w, r.Summary)
}
