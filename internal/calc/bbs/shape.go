package bbs

type Shape string

const (
	ShapeStraight Shape = "straight"
	ShapeL        Shape = "L"
	ShapeU        Shape = "U"
	ShapeCrank    Shape = "crank"
	ShapeStirrup  Shape = "stirrup"
	ShapeSpiral   Shape = "spiral"
	ShapeCustom   Shape = "custom"
)

func (s Shape) Valid() bool {
	switch s {
	case ShapeStraight, ShapeL, ShapeU, ShapeCrank, ShapeStirrup, ShapeSpiral, ShapeCustom:
		return true
	}
	return false
}

type shapeRule struct {
	match func(Item) bool
	shape Shape
}

func hasCrankBend(it Item) bool {
	for _, a := range it.BendAngles {
		if a >= 30 && a <= 60 {
			return true
		}
	}
	return false
}

// shapeRules are evaluated top to bottom and the LAST matching rule wins:
//
//  1. hooked, or exactly one bend      → L
//  2. two or more bends                → U
//  3. any bend angle within [30°, 60°] → crank
//  4. role Stirrups/Ties               → stirrup
//
// So a stirrup stays a stirrup whatever its bends, and a cranked bar with two
// bends is a crank, not a U. An item matching nothing is straight.
var shapeRules = []shapeRule{
	{match: func(it Item) bool { return it.HookType.Hooked() || len(it.BendAngles) == 1 }, shape: ShapeL},
	{match: func(it Item) bool { return len(it.BendAngles) >= 2 }, shape: ShapeU},
	{match: hasCrankBend, shape: ShapeCrank},
	{match: func(it Item) bool { return it.BarType == RoleStirrups }, shape: ShapeStirrup},
}

// InferShape classifies an item. A caller's shape preference always wins.
func InferShape(it Item) Shape {
	if it.ShapePreference != "" {
		return it.ShapePreference
	}
	shape := ShapeStraight
	for _, r := range shapeRules {
		if r.match(it) {
			shape = r.shape
		}
	}
	return shape
}
