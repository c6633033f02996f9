package stair

import (
	"fmt"
	"math"

	"Armature/internal/calc/element"
	"Armature/internal/calc/materials"
	"Armature/internal/calc/rebar"
	"Armature/internal/calc/units"
)

// LandingNote is attached to every result: the flight is sized on its own.
const LandingNote = "Landings are not modelled; the flight is treated as a simply supported waist slab."

const maxThicknessIterations = 50

type Input struct {
	TotalRise            units.Length         `json:"total_rise" yaml:"total_rise"`
	TotalRun             units.Length         `json:"total_run" yaml:"total_run"`
	Width                units.Length         `json:"width" yaml:"width"` // flight width, 1 m when omitted
	LiveLoadKNM2         float64              `json:"live_load_kn_m2" yaml:"live_load_kn_m2"`
	RequiredClearCoverMM float64              `json:"required_clear_cover_mm" yaml:"required_clear_cover_mm"`
	MinThicknessMM       float64              `json:"min_thickness_mm" yaml:"min_thickness_mm"`
	BarDiameterMM        float64              `json:"bar_diameter_mm" yaml:"bar_diameter_mm"`
	Materials            *materials.Overrides `json:"materials,omitempty" yaml:"materials,omitempty"`
}

type Geometry struct {
	Risers           int     `json:"risers"`
	Treads           int     `json:"treads"`
	RiserM           float64 `json:"riser_m"`
	TreadM           float64 `json:"tread_m"`
	SlopeLengthM     float64 `json:"slope_length_m"`
	WidthM           float64 `json:"width_m"`
	ThicknessMM      float64 `json:"thickness_mm"`
	EffectiveDepthMM float64 `json:"effective_depth_mm"`
	RequiredDepthMM  float64 `json:"required_depth_mm"`
	CoverMM          float64 `json:"cover_mm"`
}

type Loading struct {
	SelfWeightKNM2 float64 `json:"self_weight_kn_m2"`
	LiveLoadKNM2   float64 `json:"live_load_kn_m2"`
	LineLoadKNm    float64 `json:"line_load_kn_m"` // per metre width
	MomentKNm      float64 `json:"moment_knm"`
	ShearKN        float64 `json:"shear_kn"`
}

type Result struct {
	Geometry   Geometry           `json:"geometry"`
	Loading    Loading            `json:"loading"`
	Quantities element.Quantities `json:"quantities"`
	Bbs        []element.BbsLine  `json:"bbs"`
	Checks     element.Checks     `json:"checks"`
	Notes      []string           `json:"notes"`
	Summary    string             `json:"summary"`
}

// RiserCount picks round(rise/target) within the registry's riser limits.
func RiserCount(riseM float64, s materials.Stair) int {
	n := int(math.Round(riseM / s.TargetRiserM))
	if n < s.MinRisers {
		n = s.MinRisers
	}
	if n > s.MaxRisers {
		n = s.MaxRisers
	}
	return n
}

func Calculate(in Input, defaults materials.Defaults) (Result, error) {
	d, err := defaults.With(in.Materials)
	if err != nil {
		return Result{}, err
	}

	rise, err := units.PositiveMeters("total_rise", in.TotalRise)
	if err != nil {
		return Result{}, err
	}
	run, err := units.PositiveMeters("total_run", in.TotalRun)
	if err != nil {
		return Result{}, err
	}
	width := 1.0
	if !in.Width.IsZero() {
		if width, err = units.PositiveMeters("width", in.Width); err != nil {
			return Result{}, err
		}
	}

	live := d.Stair.LiveLoadKNM2
	if in.LiveLoadKNM2 != 0 {
		if err := units.EnsureNonNegative("live_load_kn_m2", in.LiveLoadKNM2); err != nil {
			return Result{}, err
		}
		live = in.LiveLoadKNM2
	}
	cover := d.StairSlab.CoverMM
	if in.RequiredClearCoverMM != 0 {
		if err := units.EnsurePositive("required_clear_cover_mm", in.RequiredClearCoverMM); err != nil {
			return Result{}, err
		}
		cover = in.RequiredClearCoverMM
	}
	minThk := d.StairSlab.MinThicknessMM
	if in.MinThicknessMM != 0 {
		if err := units.EnsurePositive("min_thickness_mm", in.MinThicknessMM); err != nil {
			return Result{}, err
		}
		minThk = in.MinThicknessMM
	}
	bar := d.StairSlab.BarDiameterMM
	if in.BarDiameterMM != 0 {
		if err := units.EnsurePositive("bar_diameter_mm", in.BarDiameterMM); err != nil {
			return Result{}, err
		}
		bar = in.BarDiameterMM
	}

	risers := RiserCount(rise, d.Stair)
	treads := risers - 1
	riser := rise / float64(risers)
	tread := run / float64(treads)

	var notes []string
	if riser < d.Stair.RiserMinM || riser > d.Stair.RiserMaxM {
		notes = append(notes, fmt.Sprintf("Riser height %.3f m is outside the typical %.2f–%.2f m range.", riser, d.Stair.RiserMinM, d.Stair.RiserMaxM))
	}
	if tread < d.Stair.TreadMinM || tread > d.Stair.TreadMaxM {
		notes = append(notes, fmt.Sprintf("Tread width %.3f m is outside the typical %.2f–%.2f m range.", tread, d.Stair.TreadMinM, d.Stair.TreadMaxM))
	}

	span := math.Hypot(rise, run)
	k := d.Mat.MomentCoefficient
	fck := d.Material.FckMPa
	unitWeight := d.Material.ConcreteDensityKgM3 * units.StandardGravity / 1000 // kN/m³

	// self weight grows with the thickness it sizes, so iterate to a fixed point
	thickness := minThk
	var sw, w, mu, dReq float64
	for i := 0; i < maxThicknessIterations; i++ {
		sw = unitWeight * thickness / 1000
		w = sw + live
		mu = w * span * span / 8
		dReq = element.RequiredDepthMM(mu, fck, k)
		next := math.Max(minThk, dReq+cover+d.Mat.NominalBarMM)
		if math.Abs(next-thickness) < 0.01 {
			thickness = next
			break
		}
		thickness = next
	}
	dProv := thickness - cover - d.Mat.NominalBarMM
	shear := w * span / 2

	notes = append(notes, LandingNote)
	if note, low := element.CoverNote("stair slabs", cover, d.StairSlab.CoverMM); low {
		notes = append(notes, note)
	}
	shearCheck := element.NewCheck(shear, element.ShearCapacityKN(dProv, fck, d.QuickCheck.PunchingCoefficient), "kN/m")
	if !shearCheck.Pass {
		notes = append(notes, fmt.Sprintf("Support shear %.1f kN/m exceeds the indicative waist capacity.", shear))
	}
	checks := element.Checks{
		Bending: element.NewCheck(mu, element.MomentCapacityKNm(dProv, fck, k), "kN·m/m"),
		Shear:   shearCheck,
	}

	lines := element.TwoWayMat("Main bars", "Distribution bars", span, width, thickness, cover, bar, d.Mat)

	waist := span * width * thickness / 1000
	steps := float64(treads) * 0.5 * riser * tread * width
	q := element.Concrete(waist+steps, d)
	q.SteelMassKg = element.SteelMassKg(lines)

	geom := Geometry{
		Risers:           risers,
		Treads:           treads,
		RiserM:           rebar.RoundTo(riser, 3),
		TreadM:           rebar.RoundTo(tread, 3),
		SlopeLengthM:     rebar.RoundTo(span, 3),
		WidthM:           rebar.RoundTo(width, 3),
		ThicknessMM:      rebar.RoundTo(thickness, 1),
		EffectiveDepthMM: rebar.RoundTo(dProv, 1),
		RequiredDepthMM:  rebar.RoundTo(dReq, 1),
		CoverMM:          cover,
	}
	return Result{
		Geometry: geom,
		Loading: Loading{
			SelfWeightKNM2: rebar.RoundTo(sw, 3),
			LiveLoadKNM2:   live,
			LineLoadKNm:    rebar.RoundTo(w, 3),
			MomentKNm:      rebar.RoundTo(mu, 2),
			ShearKN:        rebar.RoundTo(shear, 2),
		},
		Quantities: q,
		Bbs:        lines,
		Checks:     checks,
		Notes:      notes,
		Summary: fmt.Sprintf("Straight flight: %d risers × %.0f mm, %d treads × %.0f mm, waist %.0f mm over %.2f m; concrete %.3f m³ (%d cement bags), steel %.2f kg.",
			risers, geom.RiserM*1000, treads, geom.TreadM*1000, geom.ThicknessMM, geom.SlopeLengthM, q.ConcreteVolumeM3, q.CementBags, q.SteelMassKg),
	}, nil
}
