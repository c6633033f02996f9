package element

import (
	"math"

	"Armature/internal/calc/materials"
	"Armature/internal/calc/rebar"
)

// MatSpacingMM is the bar spacing that meets the minimum steel ratio of the
// gross per-metre strip, floored to 5 mm and capped at the rule's maximum.
func MatSpacingMM(thicknessMM, diameterMM float64, rules materials.Mat) float64 {
	asMin := rules.MinSteelRatio * 1000 * thicknessMM
	s := 1000 * rebar.AreaMM2(diameterMM) / asMin
	s = math.Floor(s/5) * 5
	return math.Max(5, math.Min(s, rules.MaxSpacingMM))
}

// MatLine lays bars of length runM across a width of spreadM.
// Each bar is the run plus twice the cover plus the hook allowance.
func MatLine(name string, runM, spreadM, coverMM, diameterMM, spacingMM float64, rules materials.Mat) BbsLine {
	cover := coverMM / 1000
	count := int(math.Floor((spreadM-2*cover)/(spacingMM/1000))) + 1
	if count < 2 {
		count = 2
	}
	unit := runM + 2*cover + rules.HookDiameters*diameterMM/1000
	unit = rebar.RoundTo(unit, 3)
	return BbsLine{
		Name:         name,
		DiameterMM:   diameterMM,
		Count:        count,
		SpacingMM:    spacingMM,
		UnitLengthM:  unit,
		TotalLengthM: rebar.RoundTo(unit*float64(count), 3),
	}
}

// TwoWayMat is a uniform mat: bars along A spread over B, and bars along B spread over A.
func TwoWayMat(nameA, nameB string, aM, bM, thicknessMM, coverMM, diameterMM float64, rules materials.Mat) []BbsLine {
	s := MatSpacingMM(thicknessMM, diameterMM, rules)
	return []BbsLine{
		MatLine(nameA, aM, bM, coverMM, diameterMM, s, rules),
		MatLine(nameB, bM, aM, coverMM, diameterMM, s, rules),
	}
}
