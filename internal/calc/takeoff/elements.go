package takeoff

import (
	"fmt"
	"math"

	"Armature/internal/calc/boq"
	"Armature/internal/calc/element"
	"Armature/internal/calc/footing"
	"Armature/internal/calc/materials"
	"Armature/internal/calc/rebar"
	"Armature/internal/calc/stair"
	"Armature/internal/calc/wall"
	"Armature/internal/core"
)

// ElementTakeoff sizes one element for billing. Exactly one input must be set.
type ElementTakeoff struct {
	Name    string         `json:"name,omitempty" yaml:"name,omitempty"`
	Footing *footing.Input `json:"footing,omitempty" yaml:"footing,omitempty"`
	Wall    *wall.Input    `json:"wall,omitempty" yaml:"wall,omitempty"`
	Stair   *stair.Input   `json:"stair,omitempty" yaml:"stair,omitempty"`
}

// SizedElement is what the bill was built from.
type SizedElement struct {
	Name       string             `json:"name"`
	Kind       string             `json:"kind"`
	Quantities element.Quantities `json:"quantities"`
	FormworkM2 float64            `json:"formwork_m2"`
	Notes      []string           `json:"notes,omitempty"`
}

// Formwork areas are side shutters only; soil-cast faces are not counted.
func footingFormworkM2(g footing.Geometry) float64 {
	t := g.ThicknessMM / 1000
	if g.Shape == footing.Circular {
		return math.Pi * g.DiameterM * t
	}
	return 2 * (g.LengthM + g.WidthM) * t
}

// both faces of one metre run
func wallFormworkM2(g wall.Geometry) float64 {
	return 2 * g.HeightM
}

// soffit plus riser faces
func stairFormworkM2(g stair.Geometry) float64 {
	return g.SlopeLengthM*g.WidthM + float64(g.Risers)*g.RiserM*g.WidthM
}

// SizeElement runs the matching calculator and returns its quantities and BOQ items.
func SizeElement(e ElementTakeoff, defaults materials.Defaults) (SizedElement, []boq.Item, error) {
	set := 0
	for _, ok := range []bool{e.Footing != nil, e.Wall != nil, e.Stair != nil} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return SizedElement{}, nil, core.Invalid("", "exactly one of footing, wall or stair is required")
	}

	var out SizedElement
	switch {
	case e.Footing != nil:
		res, err := footing.Calculate(*e.Footing, defaults)
		if err != nil {
			return SizedElement{}, nil, core.WithPrefix("footing", err)
		}
		out = SizedElement{Kind: "footing", Quantities: res.Quantities, FormworkM2: footingFormworkM2(res.Geometry), Notes: res.Notes}
	case e.Wall != nil:
		res, err := wall.Calculate(*e.Wall, defaults)
		if err != nil {
			return SizedElement{}, nil, core.WithPrefix("wall", err)
		}
		out = SizedElement{Kind: "wall", Quantities: res.Quantities, FormworkM2: wallFormworkM2(res.Geometry), Notes: res.Notes}
	default:
		res, err := stair.Calculate(*e.Stair, defaults)
		if err != nil {
			return SizedElement{}, nil, core.WithPrefix("stair", err)
		}
		out = SizedElement{Kind: "stair", Quantities: res.Quantities, FormworkM2: stairFormworkM2(res.Geometry), Notes: res.Notes}
	}
	out.FormworkM2 = rebar.RoundTo(out.FormworkM2, 3)
	out.Name = e.Name
	if out.Name == "" {
		out.Name = out.Kind
	}
	return out, FromElement(out.Name, out.Quantities, out.FormworkM2), nil
}

func elementName(e ElementTakeoff, i int) ElementTakeoff {
	if e.Name == "" {
		switch {
		case e.Footing != nil:
			e.Name = fmt.Sprintf("Footing %d", i+1)
		case e.Wall != nil:
			e.Name = fmt.Sprintf("Wall %d", i+1)
		case e.Stair != nil:
			e.Name = fmt.Sprintf("Stair %d", i+1)
		}
	}
	return e
}
