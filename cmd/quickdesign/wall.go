package main

import (
	"fmt"
	"io"

	"Armature/internal/calc/materials"
	"Armature/internal/calc/units"
	"Armature/internal/calc/wall"

	"github.com/spf13/cobra"
)

func newWallCmd(a *app) *cobra.Command {
	var (
		height                  float64
		unit                    string
		gamma, phi, ka, q       float64
		cover, minThk, bar, fck float64
	)
	cmd := &cobra.Command{
		Use:   "wall",
		Short: "Size a cantilever retaining wall stem",
		Long: `Size the stem of a cantilever retaining wall per metre run from the
retained height, the backfill and an optional uniform surcharge.

Examples:
  quickdesign wall --height 3 --surcharge 10
  quickdesign wall --height 3000 --unit mm --ka 0.4`,
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults, err := a.defaults()
			if err != nil {
				return err
			}
			in := wall.Input{
				Height:               units.Length{Value: height, Unit: units.LengthUnit(unit)},
				SoilUnitWeightKNM3:   gamma,
				FrictionAngleDeg:     phi,
				Ka:                   ka,
				SurchargeKNM2:        q,
				RequiredClearCoverMM: cover,
				MinThicknessMM:       minThk,
				BarDiameterMM:        bar,
			}
			if f := optional(cmd, "fck", fck); f != nil {
				in.Materials = &materials.Overrides{FckMPa: f}
			}
			res, err := wall.Calculate(in, defaults)
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), res, func(w io.Writer) { printWall(w, res) })
		},
	}

	f := cmd.Flags()
	f.Float64VarP(&height, "height", "H", 0, "Retained height [required]")
	f.StringVar(&unit, "unit", "m", "Height unit (m, mm, cm, ft, in)")
	f.Float64Var(&gamma, "gamma", 0, "Backfill unit weight (kN/m³), 0 uses the registry value")
	f.Float64Var(&phi, "phi", 0, "Backfill friction angle (degrees), 0 uses the registry value")
	f.Float64Var(&ka, "ka", 0, "Active pressure coefficient, overrides the Rankine value")
	f.Float64Var(&q, "surcharge", 0, "Uniform surcharge (kN/m²)")
	addDetailFlags(cmd, &cover, &minThk, &bar, &fck)

	cmd.MarkFlagRequired("height")
	return cmd
}

func printWall(w io.Writer, r wall.Result) {
	g, p := r.Geometry, r.Pressure
	heading(w, "EARTH PRESSURE (per metre run):")
	tw := newTabWriter(w)
	fmt.Fprintf(tw, "  Ka:\t%.4f\n", p.Ka)
	fmt.Fprintf(tw, "  Unit weight:\t%.2f kN/m³\n", p.UnitWeightKNM3)
	fmt.Fprintf(tw, "  Surcharge:\t%.2f kN/m²\n", p.SurchargeKNM2)
	fmt.Fprintf(tw, "  Triangular thrust:\t%.2f kN\n", p.TriangularKN)
	fmt.Fprintf(tw, "  Surcharge thrust:\t%.2f kN\n", p.SurchargeKN)
	fmt.Fprintf(tw, "  Base shear:\t%.2f kN\n", p.BaseShearKN)
	fmt.Fprintf(tw, "  Base moment:\t%.2f kN-m\n", p.BaseMomentKNm)
	tw.Flush()

	heading(w, "STEM:")
	tw = newTabWriter(w)
	fmt.Fprintf(tw, "  Height:\t%.2f m\n", g.HeightM)
	fmt.Fprintf(tw, "  Thickness:\t%.0f mm\n", g.ThicknessMM)
	fmt.Fprintf(tw, "  Effective depth:\t%.1f mm (required %.1f mm)\n", g.EffectiveDepthMM, g.RequiredDepthMM)
	fmt.Fprintf(tw, "  Clear cover:\t%.0f mm\n", g.CoverMM)
	tw.Flush()

	printChecks(w, r.Checks)
	printBars(w, r.Bbs)
	printQuantities(w, r.Quantities)
	printNotes(w, "NOTES:", r.Notes)
	printSummary(w, r.Summary)
}
