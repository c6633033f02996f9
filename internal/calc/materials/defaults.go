// Package materials is the defaults registry: material properties, minimum
// covers and thicknesses, and the quick-check constants used when an input
// omits a value.
//
// The quick-check constants (PunchingCoefficient, CementFractionOfMass,
// FootingEnlargement) are indicative placeholders for fast sizing. They are
// not certified structural design values.
package materials

// Concrete and steel properties.
type Material struct {
	ConcreteDensityKgM3 float64 `json:"concrete_density_kg_m3" yaml:"concrete_density_kg_m3"`
	SteelDensityKgM3    float64 `json:"steel_density_kg_m3" yaml:"steel_density_kg_m3"`
	CementBagKg         float64 `json:"cement_bag_kg" yaml:"cement_bag_kg"`
	FckMPa              float64 `json:"fck_mpa" yaml:"fck_mpa"` // characteristic cube strength
	FyMPa               float64 `json:"fy_mpa" yaml:"fy_mpa"`   // characteristic yield strength
}

// Partial safety factors.
type Safety struct {
	GammaConcrete float64 `json:"gamma_concrete" yaml:"gamma_concrete"`
	GammaSteel    float64 `json:"gamma_steel" yaml:"gamma_steel"`
	GammaLoad     float64 `json:"gamma_load" yaml:"gamma_load"`
}

// Element holds the per-element minimums and bar defaults.
type Element struct {
	CoverMM        float64 `json:"cover_mm" yaml:"cover_mm"`
	MinThicknessMM float64 `json:"min_thickness_mm" yaml:"min_thickness_mm"`
	BarDiameterMM  float64 `json:"bar_diameter_mm" yaml:"bar_diameter_mm"`
}

// Mat rules for minimum two-way/one-way meshes.
type Mat struct {
	MinSteelRatio     float64 `json:"min_steel_ratio" yaml:"min_steel_ratio"` // of the gross per-metre strip
	MaxSpacingMM      float64 `json:"max_spacing_mm" yaml:"max_spacing_mm"`
	HookDiameters     float64 `json:"hook_diameters" yaml:"hook_diameters"`         // hook allowance per bar, in bar diameters
	NominalBarMM      float64 `json:"nominal_bar_mm" yaml:"nominal_bar_mm"`         // bar allowance added to d for walls and stairs
	MomentCoefficient float64 `json:"moment_coefficient" yaml:"moment_coefficient"` // Mu,lim = k·fck·b·d²
}

// QuickCheck constants. Indicative only.
type QuickCheck struct {
	PunchingCoefficient  float64 `json:"punching_coefficient" yaml:"punching_coefficient"`       // v_c = k·√fck (MPa)
	CementFractionOfMass float64 `json:"cement_fraction_of_mass" yaml:"cement_fraction_of_mass"` // cement mass / concrete mass
	FootingEnlargement   float64 `json:"footing_enlargement" yaml:"footing_enlargement"`         // flat plan margin
	RectangularAspect    float64 `json:"rectangular_aspect" yaml:"rectangular_aspect"`           // L/B of rectangular footings
}

type Soil struct {
	UnitWeightKNM3   float64 `json:"unit_weight_kn_m3" yaml:"unit_weight_kn_m3"`
	FrictionAngleDeg float64 `json:"friction_angle_deg" yaml:"friction_angle_deg"`
}

type Stair struct {
	TargetRiserM float64 `json:"target_riser_m" yaml:"target_riser_m"`
	MinRisers    int     `json:"min_risers" yaml:"min_risers"`
	MaxRisers    int     `json:"max_risers" yaml:"max_risers"`
	RiserMinM    float64 `json:"riser_min_m" yaml:"riser_min_m"`
	RiserMaxM    float64 `json:"riser_max_m" yaml:"riser_max_m"`
	TreadMinM    float64 `json:"tread_min_m" yaml:"tread_min_m"`
	TreadMaxM    float64 `json:"tread_max_m" yaml:"tread_max_m"`
	LiveLoadKNM2 float64 `json:"live_load_kn_m2" yaml:"live_load_kn_m2"`
}

// BBS defaults for the bar bending schedule engine.
type BBS struct {
	StockLengthM   float64 `json:"stock_length_m" yaml:"stock_length_m"`
	CoverMM        float64 `json:"cover_mm" yaml:"cover_mm"`
	WastagePercent float64 `json:"wastage_percent" yaml:"wastage_percent"`
	MinSpacingMM   float64 `json:"min_spacing_mm" yaml:"min_spacing_mm"`
	SpacingFactor  float64 `json:"spacing_factor" yaml:"spacing_factor"` // clear spacing ≥ factor·d
	DesignCode     string  `json:"design_code" yaml:"design_code"`
}

// Defaults is the registry value. It is passed by value and never mutated in
// place; per-call overrides produce a new value.
type Defaults struct {
	Material   Material   `json:"material" yaml:"material"`
	Safety     Safety     `json:"safety" yaml:"safety"`
	Footing    Element    `json:"footing" yaml:"footing"`
	Wall       Element    `json:"wall" yaml:"wall"`
	StairSlab  Element    `json:"stair_slab" yaml:"stair_slab"`
	Mat        Mat        `json:"mat" yaml:"mat"`
	QuickCheck QuickCheck `json:"quick_check" yaml:"quick_check"`
	Soil       Soil       `json:"soil" yaml:"soil"`
	Stair      Stair      `json:"stair" yaml:"stair"`
	BBS        BBS        `json:"bbs" yaml:"bbs"`
}

// Standard returns the built-in registry.
func Standard() Defaults {
	return Defaults{
		Material: Material{
			ConcreteDensityKgM3: 2400,
			SteelDensityKgM3:    7850,
			CementBagKg:         50,
			FckMPa:              25,
			FyMPa:               415,
		},
		Safety: Safety{
			GammaConcrete: 1.5,
			GammaSteel:    1.15,
			GammaLoad:     1.5,
		},
		Footing:   Element{CoverMM: 50, MinThicknessMM: 300, BarDiameterMM: 12},
		Wall:      Element{CoverMM: 40, MinThicknessMM: 200, BarDiameterMM: 12},
		StairSlab: Element{CoverMM: 20, MinThicknessMM: 150, BarDiameterMM: 10},
		Mat: Mat{
			MinSteelRatio:     0.0012,
			MaxSpacingMM:      250,
			HookDiameters:     9,
			NominalBarMM:      12,
			MomentCoefficient: 0.138,
		},
		QuickCheck: QuickCheck{
			PunchingCoefficient:  0.17,
			CementFractionOfMass: 0.15,
			FootingEnlargement:   0.10,
			RectangularAspect:    1.2,
		},
		Soil: Soil{UnitWeightKNM3: 18, FrictionAngleDeg: 30},
		Stair: Stair{
			TargetRiserM: 0.175,
			MinRisers:    10,
			MaxRisers:    22,
			RiserMinM:    0.14,
			RiserMaxM:    0.19,
			TreadMinM:    0.25,
			TreadMaxM:    0.35,
			LiveLoadKNM2: 3.0,
		},
		BBS: BBS{
			StockLengthM:   12,
			CoverMM:        25,
			WastagePercent: 3,
			MinSpacingMM:   25,
			SpacingFactor:  1.5,
			DesignCode:     "IS456",
		},
	}
}
