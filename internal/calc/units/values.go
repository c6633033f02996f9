package units

import "Armature/internal/core"

// Length is a magnitude with its unit tag, as supplied by callers.
type Length struct {
	Value float64    `json:"value" yaml:"value"`
	Unit  LengthUnit `json:"unit,omitempty" yaml:"unit,omitempty"`
}

type Force struct {
	Value float64   `json:"value" yaml:"value"`
	Unit  ForceUnit `json:"unit,omitempty" yaml:"unit,omitempty"`
}

type Pressure struct {
	Value float64      `json:"value" yaml:"value"`
	Unit  PressureUnit `json:"unit,omitempty" yaml:"unit,omitempty"`
}

func M(v float64) Length {
	return Length{Value: v, Unit: Meter}
}

func MM(v float64) Length {
	return Length{Value: v, Unit: Millimeter}
}

func KN(v float64) Force {
	return Force{Value: v, Unit: Kilonewton}
}

func KPa(v float64) Pressure {
	return Pressure{Value: v, Unit: Kilopascal}
}

func (l Length) Meters() (float64, error) {
	return ToMeters(l.Value, l.Unit)
}

func (f Force) KN() (float64, error) {
	return ToKN(f.Value, f.Unit)
}

func (p Pressure) KNPerM2() (float64, error) {
	return KNPerM2(p.Value, p.Unit)
}

// IsZero reports whether no magnitude was supplied.
func (l Length) IsZero() bool {
	return l.Value == 0
}

// PositiveMeters normalizes l and requires the result to be strictly positive.
func PositiveMeters(field string, l Length) (float64, error) {
	v, err := l.Meters()
	if err != nil {
		return 0, core.WithPrefix(field, err)
	}
	if err := EnsurePositive(field, v); err != nil {
		return 0, err
	}
	return v, nil
}

// PositiveKN normalizes f and requires the result to be strictly positive.
func PositiveKN(field string, f Force) (float64, error) {
	v, err := f.KN()
	if err != nil {
		return 0, core.WithPrefix(field, err)
	}
	if err := EnsurePositive(field, v); err != nil {
		return 0, err
	}
	return v, nil
}

// PositiveKNPerM2 normalizes p and requires the result to be strictly positive.
func PositiveKNPerM2(field string, p Pressure) (float64, error) {
	v, err := p.KNPerM2()
	if err != nil {
		return 0, core.WithPrefix(field, err)
	}
	if err := EnsurePositive(field, v); err != nil {
		return 0, err
	}
	return v, nil
}
