// Package units normalizes mixed-unit inputs to the internal metric basis:
// metres for lengths, kilonewtons for forces and kN/m² for pressures.
package units

import (
	"errors"
	"fmt"
	"math"

	"Armature/internal/core"
)

// StandardGravity is g in m/s².
const StandardGravity = 9.80665

// ErrUnknownUnit is wrapped by the validation error returned for an unsupported unit tag.
var ErrUnknownUnit = errors.New("unknown unit")

type LengthUnit string

const (
	Meter      LengthUnit = "m"
	Millimeter LengthUnit = "mm"
	Centimeter LengthUnit = "cm"
	Foot       LengthUnit = "ft"
	Inch       LengthUnit = "in"
)

type ForceUnit string

const (
	Kilonewton    ForceUnit = "kN"
	Newton        ForceUnit = "N"
	KilogramForce ForceUnit = "kgf"
)

type PressureUnit string

const (
	Kilopascal        PressureUnit = "kPa"
	Megapascal        PressureUnit = "MPa"
	KNPerSqMeter      PressureUnit = "kN/m²"
	KNPerSqMeterASCII PressureUnit = "kN/m2"
)

// factors to the base unit of each family
var lengthFactors = map[LengthUnit]float64{
	Meter:      1,
	Millimeter: 0.001,
	Centimeter: 0.01,
	Foot:       0.3048,
	Inch:       0.0254,
}

var forceFactors = map[ForceUnit]float64{
	Kilonewton:    1,
	Newton:        0.001,
	KilogramForce: StandardGravity / 1000,
}

var pressureFactors = map[PressureUnit]float64{
	Kilopascal:        1,
	Megapascal:        1000,
	KNPerSqMeter:      1,
	KNPerSqMeterASCII: 1,
}

// LengthFactor returns the metres-per-unit factor. An empty tag means metres.
func LengthFactor(unit LengthUnit) (float64, error) {
	if unit == "" {
		return 1, nil
	}
	f, ok := lengthFactors[unit]
	if !ok {
		return 0, unknown("length unit", string(unit))
	}
	return f, nil
}

// ToMeters converts a length to metres.
func ToMeters(value float64, unit LengthUnit) (float64, error) {
	f, err := LengthFactor(unit)
	if err != nil {
		return 0, err
	}
	return value * f, nil
}

// ToKN converts a force to kilonewtons. An empty tag means kN.
func ToKN(value float64, unit ForceUnit) (float64, error) {
	if unit == "" {
		return value, nil
	}
	f, ok := forceFactors[unit]
	if !ok {
		return 0, unknown("force unit", string(unit))
	}
	return value * f, nil
}

// KNPerM2 converts a pressure to kN/m². An empty tag means kN/m².
func KNPerM2(value float64, unit PressureUnit) (float64, error) {
	if unit == "" {
		return value, nil
	}
	f, ok := pressureFactors[unit]
	if !ok {
		return 0, unknown("pressure unit", string(unit))
	}
	return value * f, nil
}

// EnsurePositive fails with a validation error naming the field unless value > 0.
func EnsurePositive(name string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return &core.ValidationError{Field: name, Message: "must be greater than zero"}
	}
	return nil
}

// EnsureNonNegative is EnsurePositive for quantities where zero is meaningful (surcharge, wastage).
func EnsureNonNegative(name string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return &core.ValidationError{Field: name, Message: "must not be negative"}
	}
	return nil
}

func unknown(kind, tag string) error {
	return &core.ValidationError{Field: "unit", Message: fmt.Sprintf("unsupported %s %q", kind, tag), Err: ErrUnknownUnit}
}
