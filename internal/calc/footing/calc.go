package footing

import (
	"fmt"
	"math"

	"Armature/internal/calc/element"
	"Armature/internal/calc/materials"
	"Armature/internal/calc/rebar"
	"Armature/internal/calc/units"
	"Armature/internal/core"
)

type Shape string

const (
	Square      Shape = "square"
	Rectangular Shape = "rectangular"
	Circular    Shape = "circular"
)

// column size assumed when the input leaves it out
const defaultColumnM = 0.3

type Input struct {
	ColumnLoad           units.Force          `json:"column_load" yaml:"column_load"`
	SoilAllow            units.Pressure       `json:"soil_allow" yaml:"soil_allow"`
	Shape                Shape                `json:"shape" yaml:"shape"`
	ColumnB              units.Length         `json:"column_b" yaml:"column_b"`
	ColumnD              units.Length         `json:"column_d" yaml:"column_d"`
	MomentKNm            float64              `json:"moment_knm" yaml:"moment_knm"`
	Eccentricity         units.Length         `json:"eccentricity" yaml:"eccentricity"`
	RequiredClearCoverMM float64              `json:"required_clear_cover_mm" yaml:"required_clear_cover_mm"`
	MinThicknessMM       float64              `json:"min_thickness_mm" yaml:"min_thickness_mm"`
	BarDiameterMM        float64              `json:"bar_diameter_mm" yaml:"bar_diameter_mm"`
	FixedPlan            bool                 `json:"fixed_plan" yaml:"fixed_plan"` // check the seeded plan without enlarging it
	Materials            *materials.Overrides `json:"materials,omitempty" yaml:"materials,omitempty"`
}

type Geometry struct {
	Shape            Shape   `json:"shape"`
	RequiredAreaM2   float64 `json:"required_area_m2"`
	AreaM2           float64 `json:"area_m2"`
	LengthM          float64 `json:"length_m"`
	WidthM           float64 `json:"width_m"`
	DiameterM        float64 `json:"diameter_m,omitempty"`
	ThicknessMM      float64 `json:"thickness_mm"`
	EffectiveDepthMM float64 `json:"effective_depth_mm"`
	RequiredDepthMM  float64 `json:"required_depth_mm"`
	CoverMM          float64 `json:"cover_mm"`
}

type Bearing struct {
	PMaxKNm2      float64 `json:"p_max_kn_m2"`
	PMinKNm2      float64 `json:"p_min_kn_m2"`
	AllowableKNm2 float64 `json:"allowable_kn_m2"`
	MomentKNm     float64 `json:"moment_knm"`
	Enlarged      bool    `json:"enlarged"`
}

type Result struct {
	Geometry        Geometry           `json:"geometry"`
	Bearing         Bearing            `json:"bearing"`
	DesignMomentKNm float64            `json:"design_moment_knm"`
	Quantities      element.Quantities `json:"quantities"`
	Bbs             []element.BbsLine  `json:"bbs"`
	Checks          element.Checks     `json:"checks"`
	Notes           []string           `json:"notes"`
	Summary         string             `json:"summary"`
}

// plan is the footing outline in metres; for circular footings length = width = D.
type plan struct {
	shape  Shape
	length float64
	width  float64
}

func (p plan) area() float64 {
	if p.shape == Circular {
		return math.Pi * p.length * p.length / 4
	}
	return p.length * p.width
}

// sectionModulus about the axis resisting the moment; the moment acts along the length.
func (p plan) sectionModulus() float64 {
	if p.shape == Circular {
		return math.Pi * math.Pow(p.length, 3) / 32
	}
	return p.width * p.length * p.length / 6
}

func (p plan) scaled(k float64) plan {
	return plan{shape: p.shape, length: p.length * k, width: p.width * k}
}

func (p plan) pressures(loadKN, momentKNm float64) (pMax, pMin float64) {
	direct := loadKN / p.area()
	bending := momentKNm / p.sectionModulus()
	return direct + bending, direct - bending
}

// seedPlan sizes the outline from the required area with the flat enlargement margin.
func seedPlan(shape Shape, area float64, qc materials.QuickCheck) plan {
	m := 1 + qc.FootingEnlargement
	switch shape {
	case Rectangular:
		w := math.Sqrt(area/qc.RectangularAspect) * m
		return plan{shape: shape, length: qc.RectangularAspect * w, width: w}
	case Circular:
		d := math.Sqrt(4*area/math.Pi) * m
		return plan{shape: shape, length: d, width: d}
	default:
		s := math.Sqrt(area) * m
		return plan{shape: Square, length: s, width: s}
	}
}

// enlarge finds the smallest uniform scale ≥ 1 for which p_max fits the allowable pressure.
func enlarge(p plan, loadKN, momentKNm, allow float64) (plan, bool) {
	fits := func(k float64) bool {
		pMax, _ := p.scaled(k).pressures(loadKN, momentKNm)
		return pMax <= allow
	}
	if fits(1) {
		return p, false
	}
	lo, hi := 1.0, 2.0
	for i := 0; i < 30 && !fits(hi); i++ {
		lo, hi = hi, hi*2
	}
	if !fits(hi) {
		return p, false
	}
	for i := 0; i < 60; i++ {
		mid := (lo + hi) / 2
		if fits(mid) {
			hi = mid
		} else {
			lo = mid
		}
	}
	return p.scaled(hi), true
}

func Calculate(in Input, defaults materials.Defaults) (Result, error) {
	d, err := defaults.With(in.Materials)
	if err != nil {
		return Result{}, err
	}

	load, err := units.PositiveKN("column_load", in.ColumnLoad)
	if err != nil {
		return Result{}, err
	}
	allow, err := units.PositiveKNPerM2("soil_allow", in.SoilAllow)
	if err != nil {
		return Result{}, err
	}

	shape := in.Shape
	if shape == "" {
		shape = Square
	}
	if shape != Square && shape != Rectangular && shape != Circular {
		return Result{}, core.Invalid("shape", "must be square, rectangular or circular, got %q", in.Shape)
	}

	colB, colD := defaultColumnM, defaultColumnM
	if !in.ColumnB.IsZero() {
		if colB, err = units.PositiveMeters("column_b", in.ColumnB); err != nil {
			return Result{}, err
		}
	}
	if !in.ColumnD.IsZero() {
		if colD, err = units.PositiveMeters("column_d", in.ColumnD); err != nil {
			return Result{}, err
		}
	}

	ecc, err := in.Eccentricity.Meters()
	if err != nil {
		return Result{}, core.WithPrefix("eccentricity", err)
	}
	moment := math.Abs(in.MomentKNm) + load*math.Abs(ecc)

	cover := d.Footing.CoverMM
	if in.RequiredClearCoverMM != 0 {
		if err := units.EnsurePositive("required_clear_cover_mm", in.RequiredClearCoverMM); err != nil {
			return Result{}, err
		}
		cover = in.RequiredClearCoverMM
	}
	minThk := d.Footing.MinThicknessMM
	if in.MinThicknessMM != 0 {
		if err := units.EnsurePositive("min_thickness_mm", in.MinThicknessMM); err != nil {
			return Result{}, err
		}
		minThk = in.MinThicknessMM
	}
	bar := d.Footing.BarDiameterMM
	if in.BarDiameterMM != 0 {
		if err := units.EnsurePositive("bar_diameter_mm", in.BarDiameterMM); err != nil {
			return Result{}, err
		}
		bar = in.BarDiameterMM
	}

	var notes []string

	requiredArea := load / allow
	p := seedPlan(shape, requiredArea, d.QuickCheck)

	enlarged := false
	if moment > 0 && !in.FixedPlan {
		p, enlarged = enlarge(p, load, moment, allow)
	}
	pMax, pMin := p.pressures(load, moment)
	if enlarged {
		notes = append(notes, fmt.Sprintf("Plan enlarged to %.2f m × %.2f m so that p_max stays within the allowable bearing pressure under M = %.1f kN·m.", p.length, p.width, moment))
	}
	if pMax > allow {
		notes = append(notes, fmt.Sprintf("Bearing pressure p_max = %.1f kN/m² exceeds the allowable %.1f kN/m².", pMax, allow))
	}
	if pMin < 0 {
		notes = append(notes, fmt.Sprintf("p_min = %.1f kN/m² is negative: tension/uplift at the base, eccentricity is outside the kern.", pMin))
	}

	span := math.Max(p.length, p.width)
	strip := math.Min(p.length, p.width)
	mu := pMax * span * strip / 8

	k := d.Mat.MomentCoefficient
	fck := d.Material.FckMPa
	dReq := element.RequiredDepthMM(mu, fck, k)
	thickness := math.Max(minThk, dReq+cover+bar/2)
	dProv := thickness - cover - bar/2
	if thickness == minThk {
		notes = append(notes, fmt.Sprintf("Thickness governed by the %.0f mm minimum.", minThk))
	}

	if note, low := element.CoverNote("footings", cover, d.Footing.CoverMM); low {
		notes = append(notes, note)
	}

	// punching at the critical perimeter around the column
	b0 := 2 * (colB + colD + 4*dProv/1000)
	vPunch := load / (b0 * dProv)
	vCap := d.QuickCheck.PunchingCoefficient * math.Sqrt(fck)
	punching := element.NewCheck(vPunch, vCap, "MPa")
	if !punching.Pass {
		notes = append(notes, fmt.Sprintf("Punching shear %.3f MPa exceeds the indicative capacity %.3f MPa; increase thickness or have the footing designed in full.", vPunch, vCap))
	}

	checks := element.Checks{
		Bending:  element.NewCheck(mu, element.MomentCapacityKNm(dProv, fck, k), "kN·m/m"),
		Punching: punching,
		Bearing:  element.NewCheck(pMax, allow, "kN/m²"),
	}

	lines := element.TwoWayMat("Longitudinal bars", "Transverse bars", p.length, p.width, thickness, cover, bar, d.Mat)

	area := p.area()
	q := element.Concrete(area*thickness/1000, d)
	q.SteelMassKg = element.SteelMassKg(lines)

	geom := Geometry{
		Shape:            shape,
		RequiredAreaM2:   rebar.RoundTo(requiredArea, 3),
		AreaM2:           rebar.RoundTo(area, 3),
		LengthM:          rebar.RoundTo(p.length, 2),
		WidthM:           rebar.RoundTo(p.width, 2),
		ThicknessMM:      rebar.RoundTo(thickness, 1),
		EffectiveDepthMM: rebar.RoundTo(dProv, 1),
		RequiredDepthMM:  rebar.RoundTo(dReq, 1),
		CoverMM:          cover,
	}
	if shape == Circular {
		geom.DiameterM = geom.LengthM
	}

	return Result{
		Geometry: geom,
		Bearing: Bearing{
			PMaxKNm2:      rebar.RoundTo(pMax, 2),
			PMinKNm2:      rebar.RoundTo(pMin, 2),
			AllowableKNm2: allow,
			MomentKNm:     rebar.RoundTo(moment, 2),
			Enlarged:      enlarged,
		},
		DesignMomentKNm: rebar.RoundTo(mu, 2),
		Quantities:      q,
		Bbs:             lines,
		Checks:          checks,
		Notes:           notes,
		Summary:         summary(geom, q, len(notes)),
	}, nil
}

func summary(g Geometry, q element.Quantities, concerns int) string {
	size := fmt.Sprintf("%.2f m × %.2f m", g.LengthM, g.WidthM)
	if g.Shape == Circular {
		size = fmt.Sprintf("Ø %.2f m", g.DiameterM)
	}
	return fmt.Sprintf("%s footing %s × %.0f mm thick; concrete %.3f m³ (%d cement bags), steel %.2f kg; %d note(s) for review.",
		g.Shape, size, g.ThicknessMM, q.ConcreteVolumeM3, q.CementBags, q.SteelMassKg, concerns)
}
