package materials

import (
	"fmt"
	"os"

	"Armature/internal/core"

	"gopkg.in/yaml.v3"
)

// Overrides carries optional per-call material values. Nil fields keep the registry value.
type Overrides struct {
	FckMPa               *float64 `json:"fck_mpa,omitempty" yaml:"fck_mpa,omitempty"`
	FyMPa                *float64 `json:"fy_mpa,omitempty" yaml:"fy_mpa,omitempty"`
	ConcreteDensityKgM3  *float64 `json:"concrete_density_kg_m3,omitempty" yaml:"concrete_density_kg_m3,omitempty"`
	SteelDensityKgM3     *float64 `json:"steel_density_kg_m3,omitempty" yaml:"steel_density_kg_m3,omitempty"`
	CementBagKg          *float64 `json:"cement_bag_kg,omitempty" yaml:"cement_bag_kg,omitempty"`
	PunchingCoefficient  *float64 `json:"punching_coefficient,omitempty" yaml:"punching_coefficient,omitempty"`
	CementFractionOfMass *float64 `json:"cement_fraction_of_mass,omitempty" yaml:"cement_fraction_of_mass,omitempty"`
	FootingEnlargement   *float64 `json:"footing_enlargement,omitempty" yaml:"footing_enlargement,omitempty"`
}

// With returns a copy of d with o applied. d itself is left untouched.
func (d Defaults) With(o *Overrides) (Defaults, error) {
	if o == nil {
		return d, nil
	}
	out := d
	set := func(dst *float64, src *float64, field string, allowZero bool) error {
		if src == nil {
			return nil
		}
		if *src < 0 || (!allowZero && *src == 0) {
			return core.Invalid("materials."+field, "must be greater than zero")
		}
		*dst = *src
		return nil
	}
	steps := []error{
		set(&out.Material.FckMPa, o.FckMPa, "fck_mpa", false),
		set(&out.Material.FyMPa, o.FyMPa, "fy_mpa", false),
		set(&out.Material.ConcreteDensityKgM3, o.ConcreteDensityKgM3, "concrete_density_kg_m3", false),
		set(&out.Material.SteelDensityKgM3, o.SteelDensityKgM3, "steel_density_kg_m3", false),
		set(&out.Material.CementBagKg, o.CementBagKg, "cement_bag_kg", false),
		set(&out.QuickCheck.PunchingCoefficient, o.PunchingCoefficient, "punching_coefficient", false),
		set(&out.QuickCheck.CementFractionOfMass, o.CementFractionOfMass, "cement_fraction_of_mass", false),
		set(&out.QuickCheck.FootingEnlargement, o.FootingEnlargement, "footing_enlargement", true),
	}
	for _, err := range steps {
		if err != nil {
			return Defaults{}, err
		}
	}
	return out, nil
}

// Validate checks that every value the calculators divide by or take roots of is positive.
func (d Defaults) Validate() error {
	positive := []struct {
		field string
		value float64
	}{
		{"material.concrete_density_kg_m3", d.Material.ConcreteDensityKgM3},
		{"material.steel_density_kg_m3", d.Material.SteelDensityKgM3},
		{"material.cement_bag_kg", d.Material.CementBagKg},
		{"material.fck_mpa", d.Material.FckMPa},
		{"material.fy_mpa", d.Material.FyMPa},
		{"footing.bar_diameter_mm", d.Footing.BarDiameterMM},
		{"wall.bar_diameter_mm", d.Wall.BarDiameterMM},
		{"stair_slab.bar_diameter_mm", d.StairSlab.BarDiameterMM},
		{"mat.min_steel_ratio", d.Mat.MinSteelRatio},
		{"mat.max_spacing_mm", d.Mat.MaxSpacingMM},
		{"mat.moment_coefficient", d.Mat.MomentCoefficient},
		{"quick_check.punching_coefficient", d.QuickCheck.PunchingCoefficient},
		{"quick_check.cement_fraction_of_mass", d.QuickCheck.CementFractionOfMass},
		{"quick_check.rectangular_aspect", d.QuickCheck.RectangularAspect},
		{"soil.unit_weight_kn_m3", d.Soil.UnitWeightKNM3},
		{"stair.target_riser_m", d.Stair.TargetRiserM},
		{"bbs.stock_length_m", d.BBS.StockLengthM},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return core.Invalid(p.field, "must be greater than zero")
		}
	}
	if d.QuickCheck.FootingEnlargement < 0 {
		return core.Invalid("quick_check.footing_enlargement", "must not be negative")
	}
	if d.Stair.MinRisers < 2 || d.Stair.MaxRisers < d.Stair.MinRisers {
		return core.Invalid("stair", "riser limits must satisfy 2 <= min_risers <= max_risers")
	}
	if d.Soil.FrictionAngleDeg <= 0 || d.Soil.FrictionAngleDeg >= 90 {
		return core.Invalid("soil.friction_angle_deg", "must be between 0 and 90")
	}
	return nil
}

// LoadFile reads a YAML document over the standard registry. Keys that are
// absent keep their built-in value.
func LoadFile(path string) (Defaults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Defaults{}, fmt.Errorf("read defaults: %w", err)
	}
	d := Standard()
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Defaults{}, fmt.Errorf("parse defaults: %w", err)
	}
	if err := d.Validate(); err != nil {
		return Defaults{}, fmt.Errorf("defaults file %s: %w", path, err)
	}
	return d, nil
}
