package wall

import (
	"fmt"
	"math"

	"Armature/internal/calc/element"
	"Armature/internal/calc/materials"
	"Armature/internal/calc/rebar"
	"Armature/internal/calc/units"
	"Armature/internal/core"
)

// StemOnlyNote is attached to every result: only the stem is sized.
const StemOnlyNote = "Stem only: base slab, toe/heel, sliding and overturning checks are not computed."

type Input struct {
	Height               units.Length         `json:"height" yaml:"height"`
	SoilUnitWeightKNM3   float64              `json:"soil_unit_weight_kn_m3" yaml:"soil_unit_weight_kn_m3"`
	FrictionAngleDeg     float64              `json:"friction_angle_deg" yaml:"friction_angle_deg"`
	Ka                   float64              `json:"ka" yaml:"ka"` // overrides the Rankine value when set
	SurchargeKNM2        float64              `json:"surcharge_kn_m2" yaml:"surcharge_kn_m2"`
	RequiredClearCoverMM float64              `json:"required_clear_cover_mm" yaml:"required_clear_cover_mm"`
	MinThicknessMM       float64              `json:"min_thickness_mm" yaml:"min_thickness_mm"`
	BarDiameterMM        float64              `json:"bar_diameter_mm" yaml:"bar_diameter_mm"`
	Materials            *materials.Overrides `json:"materials,omitempty" yaml:"materials,omitempty"`
}

type Geometry struct {
	HeightM          float64 `json:"height_m"`
	ThicknessMM      float64 `json:"thickness_mm"`
	EffectiveDepthMM float64 `json:"effective_depth_mm"`
	RequiredDepthMM  float64 `json:"required_depth_mm"`
	CoverMM          float64 `json:"cover_mm"`
}

// Pressure holds the per-metre earth pressure resultants at the stem base.
type Pressure struct {
	Ka             float64 `json:"ka"`
	TriangularKN   float64 `json:"triangular_kn"`
	SurchargeKN    float64 `json:"surcharge_kn"`
	BaseShearKN    float64 `json:"base_shear_kn"`
	BaseMomentKNm  float64 `json:"base_moment_knm"`
	SurchargeKNM2  float64 `json:"surcharge_kn_m2"`
	UnitWeightKNM3 float64 `json:"unit_weight_kn_m3"`
}

type Result struct {
	Geometry   Geometry           `json:"geometry"`
	Pressure   Pressure           `json:"pressure"`
	Quantities element.Quantities `json:"quantities"` // per metre of wall
	Bbs        []element.BbsLine  `json:"bbs"`
	Checks     element.Checks     `json:"checks"`
	Notes      []string           `json:"notes"`
	Summary    string             `json:"summary"`
}

// RankineKa is the active pressure coefficient for a level backfill.
func RankineKa(phiDeg float64) float64 {
	s := math.Sin(phiDeg * math.Pi / 180)
	return (1 - s) / (1 + s)
}

func Calculate(in Input, defaults materials.Defaults) (Result, error) {
	d, err := defaults.With(in.Materials)
	if err != nil {
		return Result{}, err
	}

	h, err := units.PositiveMeters("height", in.Height)
	if err != nil {
		return Result{}, err
	}

	gamma := d.Soil.UnitWeightKNM3
	if in.SoilUnitWeightKNM3 != 0 {
		if err := units.EnsurePositive("soil_unit_weight_kn_m3", in.SoilUnitWeightKNM3); err != nil {
			return Result{}, err
		}
		gamma = in.SoilUnitWeightKNM3
	}
	if err := units.EnsureNonNegative("surcharge_kn_m2", in.SurchargeKNM2); err != nil {
		return Result{}, err
	}

	var ka float64
	switch {
	case in.Ka != 0:
		if in.Ka < 0 || in.Ka >= 1 {
			return Result{}, core.Invalid("ka", "must be between 0 and 1, got %g", in.Ka)
		}
		ka = in.Ka
	case in.FrictionAngleDeg != 0:
		if in.FrictionAngleDeg < 0 || in.FrictionAngleDeg >= 90 {
			return Result{}, core.Invalid("friction_angle_deg", "must be between 0 and 90, got %g", in.FrictionAngleDeg)
		}
		ka = RankineKa(in.FrictionAngleDeg)
	default:
		ka = RankineKa(d.Soil.FrictionAngleDeg)
	}

	cover := d.Wall.CoverMM
	if in.RequiredClearCoverMM != 0 {
		if err := units.EnsurePositive("required_clear_cover_mm", in.RequiredClearCoverMM); err != nil {
			return Result{}, err
		}
		cover = in.RequiredClearCoverMM
	}
	minThk := d.Wall.MinThicknessMM
	if in.MinThicknessMM != 0 {
		if err := units.EnsurePositive("min_thickness_mm", in.MinThicknessMM); err != nil {
			return Result{}, err
		}
		minThk = in.MinThicknessMM
	}
	bar := d.Wall.BarDiameterMM
	if in.BarDiameterMM != 0 {
		if err := units.EnsurePositive("bar_diameter_mm", in.BarDiameterMM); err != nil {
			return Result{}, err
		}
		bar = in.BarDiameterMM
	}

	p1 := 0.5 * ka * gamma * h * h
	p2 := ka * in.SurchargeKNM2 * h
	shear := p1 + p2
	mu := p1*h/3 + p2*h/2

	k := d.Mat.MomentCoefficient
	fck := d.Material.FckMPa
	dReq := element.RequiredDepthMM(mu, fck, k)
	thickness := math.Max(minThk, dReq+cover+d.Mat.NominalBarMM)
	dProv := thickness - cover - d.Mat.NominalBarMM

	notes := []string{StemOnlyNote}
	if note, low := element.CoverNote("retaining walls", cover, d.Wall.CoverMM); low {
		notes = append(notes, note)
	}

	shearCheck := element.NewCheck(shear, element.ShearCapacityKN(dProv, fck, d.QuickCheck.PunchingCoefficient), "kN/m")
	if !shearCheck.Pass {
		notes = append(notes, fmt.Sprintf("Base shear %.1f kN/m exceeds the indicative stem capacity; thicken the stem.", shear))
	}
	checks := element.Checks{
		Bending: element.NewCheck(mu, element.MomentCapacityKNm(dProv, fck, k), "kN·m/m"),
		Shear:   shearCheck,
	}

	lines := element.TwoWayMat("Vertical bars", "Horizontal bars", h, 1.0, thickness, cover, bar, d.Mat)
	q := element.Concrete(h*thickness/1000, d)
	q.SteelMassKg = element.SteelMassKg(lines)

	geom := Geometry{
		HeightM:          rebar.RoundTo(h, 3),
		ThicknessMM:      rebar.RoundTo(thickness, 1),
		EffectiveDepthMM: rebar.RoundTo(dProv, 1),
		RequiredDepthMM:  rebar.RoundTo(dReq, 1),
		CoverMM:          cover,
	}
	return Result{
		Geometry: geom,
		Pressure: Pressure{
			Ka:             rebar.RoundTo(ka, 4),
			TriangularKN:   rebar.RoundTo(p1, 2),
			SurchargeKN:    rebar.RoundTo(p2, 2),
			BaseShearKN:    rebar.RoundTo(shear, 2),
			BaseMomentKNm:  rebar.RoundTo(mu, 2),
			SurchargeKNM2:  in.SurchargeKNM2,
			UnitWeightKNM3: gamma,
		},
		Quantities: q,
		Bbs:        lines,
		Checks:     checks,
		Notes:      notes,
		Summary: fmt.Sprintf("Cantilever stem %.2f m high × %.0f mm thick (Ka %.3f, M %.1f kN·m/m); per metre: concrete %.3f m³ (%d cement bags), steel %.2f kg.",
			geom.HeightM, geom.ThicknessMM, ka, mu, q.ConcreteVolumeM3, q.CementBags, q.SteelMassKg),
	}, nil
}
