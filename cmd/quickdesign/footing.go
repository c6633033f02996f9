package main

import (
	"fmt"
	"io"

	"Armature/internal/calc/footing"
	"Armature/internal/calc/materials"
	"Armature/internal/calc/units"

	"github.com/spf13/cobra"
)

func newFootingCmd(a *app) *cobra.Command {
	var (
		load, soil, colB, colD, ecc float64
		loadUnit, soilUnit, lenUnit string
		shape                       string
		moment                      float64
		cover, minThk, bar, fck     float64
		fixed                       bool
	)
	cmd := &cobra.Command{
		Use:   "footing",
		Short: "Size an isolated footing",
		Long: `Size an isolated pad footing from the column load and the allowable
bearing pressure, then check bending, punching and bearing.

Examples:
  # 500 kN column on 150 kPa soil
  quickdesign footing --load 500 --soil 150

  # Rectangular footing with an eccentric load
  quickdesign footing --load 800 --soil 200 --shape rectangular --eccentricity 0.15`,
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults, err := a.defaults()
			if err != nil {
				return err
			}
			in := footing.Input{
				ColumnLoad:           units.Force{Value: load, Unit: units.ForceUnit(loadUnit)},
				SoilAllow:            units.Pressure{Value: soil, Unit: units.PressureUnit(soilUnit)},
				Shape:                footing.Shape(shape),
				ColumnB:              units.Length{Value: colB, Unit: units.LengthUnit(lenUnit)},
				ColumnD:              units.Length{Value: colD, Unit: units.LengthUnit(lenUnit)},
				MomentKNm:            moment,
				Eccentricity:         units.Length{Value: ecc, Unit: units.LengthUnit(lenUnit)},
				RequiredClearCoverMM: cover,
				MinThicknessMM:       minThk,
				BarDiameterMM:        bar,
				FixedPlan:            fixed,
			}
			if f := optional(cmd, "fck", fck); f != nil {
				in.Materials = &materials.Overrides{FckMPa: f}
			}
			res, err := footing.Calculate(in, defaults)
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), res, func(w io.Writer) { printFooting(w, res) })
		},
	}

	f := cmd.Flags()
	f.Float64VarP(&load, "load", "p", 0, "Column service load [required]")
	f.StringVar(&loadUnit, "load-unit", "kN", "Load unit (kN, N, kgf)")
	f.Float64VarP(&soil, "soil", "q", 0, "Allowable bearing pressure [required]")
	f.StringVar(&soilUnit, "soil-unit", "kPa", "Pressure unit (kPa, MPa, kN/m²)")
	f.StringVar(&shape, "shape", "square", "Footing shape (square, rectangular, circular)")
	f.Float64Var(&colB, "column-b", 0, "Column width (0 uses 0.3 m)")
	f.Float64Var(&colD, "column-d", 0, "Column depth (0 uses 0.3 m)")
	f.Float64Var(&ecc, "eccentricity", 0, "Load eccentricity")
	f.StringVar(&lenUnit, "unit", "m", "Unit of column sizes and eccentricity (m, mm, cm, ft, in)")
	f.Float64VarP(&moment, "moment", "m", 0, "Applied column moment (kN-m)")
	f.BoolVar(&fixed, "fixed-plan", false, "Check the seeded plan without enlarging it")
	addDetailFlags(cmd, &cover, &minThk, &bar, &fck)

	cmd.MarkFlagRequired("load")
	cmd.MarkFlagRequired("soil")
	return cmd
}

// addDetailFlags registers the cover, thickness, bar and concrete grade overrides.
func addDetailFlags(cmd *cobra.Command, cover, minThk, bar, fck *float64) {
	f := cmd.Flags()
	f.Float64VarP(cover, "cover", "c", 0, "Clear cover (mm), 0 uses the registry value")
	f.Float64Var(minThk, "min-thickness", 0, "Minimum thickness (mm), 0 uses the registry value")
	f.Float64Var(bar, "bar", 0, "Bar diameter (mm), 0 uses the registry value")
	f.Float64Var(fck, "fck", 0, "Concrete strength fck (MPa)")
}

func printFooting(w io.Writer, r footing.Result) {
	g, b := r.Geometry, r.Bearing
	heading(w, "FOOTING GEOMETRY:")
	tw := newTabWriter(w)
	fmt.Fprintf(tw, "  Shape:\t%s\n", g.Shape)
	fmt.Fprintf(tw, "  Required area:\t%.3f m²\n", g.RequiredAreaM2)
	fmt.Fprintf(tw, "  Provided area:\t%.3f m²\n", g.AreaM2)
	if g.Shape == footing.Circular {
		fmt.Fprintf(tw, "  Diameter:\t%.2f m\n", g.DiameterM)
	} else {
		fmt.Fprintf(tw, "  Plan:\t%.2f m × %.2f m\n", g.LengthM, g.WidthM)
	}
	fmt.Fprintf(tw, "  Thickness:\t%.0f mm\n", g.ThicknessMM)
	fmt.Fprintf(tw, "  Effective depth:\t%.1f mm (required %.1f mm)\n", g.EffectiveDepthMM, g.RequiredDepthMM)
	fmt.Fprintf(tw, "  Clear cover:\t%.0f mm\n", g.CoverMM)
	tw.Flush()

	heading(w, "BEARING:")
	tw = newTabWriter(w)
	fmt.Fprintf(tw, "  p_max:\t%.2f kN/m²\n", b.PMaxKNm2)
	fmt.Fprintf(tw, "  p_min:\t%.2f kN/m²\n", b.PMinKNm2)
	fmt.Fprintf(tw, "  Allowable:\t%.2f kN/m²\n", b.AllowableKNm2)
	if b.MomentKNm > 0 {
		fmt.Fprintf(tw, "  Base moment:\t%.2f kN-m\n", b.MomentKNm)
	}
	fmt.Fprintf(tw, "  Design moment Mu:\t%.2f kN-m/m\n", r.DesignMomentKNm)
	tw.Flush()

	printChecks(w, r.Checks)
	printBars(w, r.Bbs)
	printQuantities(w, r.Quantities)
	printNotes(w, "NOTES:", r.Notes)
	printSummary(w, r.Summary)
}
