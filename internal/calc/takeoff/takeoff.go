// Package takeoff turns schedules and element results into priced-quantity
// items for the boq package.
package takeoff

import (
	"fmt"

	"Armature/internal/calc/bbs"
	"Armature/internal/calc/boq"
	"Armature/internal/calc/element"
)

const (
	CategoryConcrete      = "Concrete"
	CategoryReinforcement = "Reinforcement"
	CategoryFormwork      = "Formwork"
)

func qty(v float64) *float64 { return &v }

// FromBBS emits one steel item per bar diameter. Schedule weights already
// include wastage, so the items carry none.
func FromBBS(res bbs.Result) []boq.Item {
	items := make([]boq.Item, 0, len(res.Summary.ByDiameter))
	for _, d := range res.Summary.ByDiameter {
		items = append(items, boq.Item{
			Description: fmt.Sprintf("Reinforcement Ø%g mm, cut and bent (%d bars)", d.DiameterMM, d.NumBars),
			Category:    CategoryReinforcement,
			Unit:        "kg",
			Quantity:    qty(d.TotalWeightKg),
			Materials:   &boq.Materials{SteelKg: 1},
		})
	}
	return items
}

// FromElement emits concrete and steel items for one sized element, and a
// formwork item when formworkM2 is positive. name prefixes the descriptions.
func FromElement(name string, q element.Quantities, formworkM2 float64) []boq.Item {
	var items []boq.Item
	if q.ConcreteVolumeM3 > 0 {
		items = append(items, boq.Item{
			Description: name + " concrete",
			Category:    CategoryConcrete,
			Unit:        "m3",
			Quantity:    qty(q.ConcreteVolumeM3),
			Materials:   &boq.Materials{CementBags: float64(q.CementBags) / q.ConcreteVolumeM3},
		})
	}
	if q.SteelMassKg > 0 {
		items = append(items, boq.Item{
			Description: name + " reinforcement",
			Category:    CategoryReinforcement,
			Unit:        "kg",
			Quantity:    qty(q.SteelMassKg),
			Materials:   &boq.Materials{SteelKg: 1},
		})
	}
	if formworkM2 > 0 {
		items = append(items, boq.Item{
			Description: name + " formwork",
			Category:    CategoryFormwork,
			Unit:        "m2",
			Quantity:    qty(formworkM2),
			Materials:   &boq.Materials{FormworkM2: 1},
		})
	}
	return items
}
