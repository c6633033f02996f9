// Package rebar holds the bar-level primitives shared by the element
// calculators and the bar bending schedule engine.
package rebar

import "math"

// HookType is the hook bent at each end of a bar.
type HookType string

const (
	HookNone   HookType = "none"
	Hook90     HookType = "90"
	Hook135    HookType = "135"
	Hook180    HookType = "180"
	HookCustom HookType = "custom"
)

// hook length in bar diameters
var hookFactors = map[HookType]float64{
	Hook90:  9,
	Hook135: 12,
	Hook180: 16,
}

const (
	// WeightDivisor gives kg/m as d²/162 with d in mm (steel at 7850 kg/m³).
	WeightDivisor = 162.0

	DevelopmentFactor = 40.0
	LapFactor         = 50.0
)

// UnitWeightKgPerM is the mass per metre of a bar of diameterMM.
func UnitWeightKgPerM(diameterMM float64) float64 {
	return diameterMM * diameterMM / WeightDivisor
}

// Valid reports whether h is a known hook type. The empty value means no hook.
func (h HookType) Valid() bool {
	if h == "" || h == HookNone || h == HookCustom {
		return true
	}
	_, ok := hookFactors[h]
	return ok
}

// Hooked reports whether h describes an actual hook.
func (h HookType) Hooked() bool {
	return h != "" && h != HookNone
}

// DefaultHookLengthM is the length of one hook in metres.
func DefaultHookLengthM(hook HookType, diameterMM, customLengthMM float64) float64 {
	switch {
	case !hook.Hooked():
		return 0
	case hook == HookCustom:
		return customLengthMM / 1000
	}
	return hookFactors[hook] * diameterMM / 1000
}

// TotalBendAllowanceM allows one bar diameter per 45° of each listed bend.
func TotalBendAllowanceM(angles []float64, diameterMM float64) float64 {
	d := diameterMM / 1000
	var total float64
	for _, a := range angles {
		total += (a / 45) * d
	}
	return total
}

// SuggestLapLengthM is the 50-diameter lap used when no code-specific value is given.
func SuggestLapLengthM(diameterMM float64) float64 {
	return LapFactor * diameterMM / 1000
}

// DevelopmentLengthM is the 40-diameter default development length.
func DevelopmentLengthM(diameterMM float64) float64 {
	return DevelopmentFactor * diameterMM / 1000
}

// AreaMM2 is the cross-section area of one bar.
func AreaMM2(diameterMM float64) float64 {
	return math.Pi * diameterMM * diameterMM / 4
}

// RoundTo rounds half up to the given number of decimals. Every value that
// leaves a calculator goes through it so output does not carry float noise.
func RoundTo(value float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Floor(value*p+0.5) / p
}
