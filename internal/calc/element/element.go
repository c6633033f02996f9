// Package element holds the result model and the sizing helpers shared by
// the footing, wall and staircase calculators.
package element

import (
	"fmt"
	"math"

	"Armature/internal/calc/materials"
	"Armature/internal/calc/rebar"
)

// BbsLine is one reinforcement group of an element.
type BbsLine struct {
	Name         string  `json:"name"`
	DiameterMM   float64 `json:"diameter_mm"`
	Count        int     `json:"count"`
	SpacingMM    float64 `json:"spacing_mm"`
	UnitLengthM  float64 `json:"unit_length_m"`
	TotalLengthM float64 `json:"total_length_m"`
}

// WeightKg of the group, from the d²/162 unit weight.
func (l BbsLine) WeightKg() float64 {
	return rebar.UnitWeightKgPerM(l.DiameterMM) * l.TotalLengthM
}

// Check is one structural quick-check. Capacity is nil when the check has none.
type Check struct {
	Demand   float64  `json:"demand"`
	Capacity *float64 `json:"capacity,omitempty"`
	Unit     string   `json:"unit"`
	Pass     bool     `json:"pass"`
}

type Checks struct {
	Bending  *Check `json:"bending,omitempty"`
	Shear    *Check `json:"shear,omitempty"`
	Punching *Check `json:"punching,omitempty"`
	Bearing  *Check `json:"bearing,omitempty"`
}

type Quantities struct {
	ConcreteVolumeM3 float64 `json:"concrete_volume_m3"`
	ConcreteMassKg   float64 `json:"concrete_mass_kg"`
	CementBags       int     `json:"cement_bags"`
	SteelMassKg      float64 `json:"steel_mass_kg"`
}

// NewCheck builds a check with demand against capacity (pass when demand <= capacity).
func NewCheck(demand, capacity float64, unit string) *Check {
	c := rebar.RoundTo(capacity, 3)
	return &Check{
		Demand:   rebar.RoundTo(demand, 3),
		Capacity: &c,
		Unit:     unit,
		Pass:     demand <= capacity,
	}
}

// RequiredDepthMM solves Mu = k·fck·b·d² for d with b = 1000 mm.
func RequiredDepthMM(muKNm, fckMPa, k float64) float64 {
	if muKNm <= 0 {
		return 0
	}
	return math.Sqrt(muKNm * 1e6 / (k * fckMPa * 1000))
}

// MomentCapacityKNm is k·fck·b·d² for a 1000 mm strip.
func MomentCapacityKNm(dMM, fckMPa, k float64) float64 {
	return k * fckMPa * 1000 * dMM * dMM / 1e6
}

// ShearCapacityKN is the placeholder unit capacity k·√fck over a 1000 mm strip of depth d.
func ShearCapacityKN(dMM, fckMPa, k float64) float64 {
	return k * math.Sqrt(fckMPa) * 1000 * dMM / 1000
}

// Concrete derives volume, mass and the cement-bag estimate.
// The bag count uses CementFractionOfMass, a placeholder rather than a mix design.
func Concrete(volumeM3 float64, d materials.Defaults) Quantities {
	mass := volumeM3 * d.Material.ConcreteDensityKgM3
	bags := math.Ceil(mass * d.QuickCheck.CementFractionOfMass / d.Material.CementBagKg)
	return Quantities{
		ConcreteVolumeM3: rebar.RoundTo(volumeM3, 3),
		ConcreteMassKg:   rebar.RoundTo(mass, 1),
		CementBags:       int(bags),
	}
}

// SteelMassKg sums the weight of every line.
func SteelMassKg(lines []BbsLine) float64 {
	var total float64
	for _, l := range lines {
		total += l.WeightKg()
	}
	return rebar.RoundTo(total, 2)
}

// CoverNote returns a note when the provided cover is below the registry minimum.
func CoverNote(element string, providedMM, minimumMM float64) (string, bool) {
	if providedMM >= minimumMM {
		return "", false
	}
	return fmt.Sprintf("Clear cover %.0f mm is below the %.0f mm minimum for %s; durability and bond are not assured.", providedMM, minimumMM, element), true
}
