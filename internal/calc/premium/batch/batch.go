package batch

import (
	"fmt"

	"Armature/internal/calc/footing"
	"Armature/internal/calc/materials"
	"Armature/internal/calc/rebar"
	"Armature/internal/core"
)

// FootingBatchInput sizes one footing per column. Mark is optional and
// defaults to F1, F2, … in input order.
type FootingBatchInput struct {
	Items []FootingItem `json:"items"`
}

type FootingItem struct {
	Mark string `json:"mark,omitempty"`
	footing.Input
}

type FootingBatchResult struct {
	Results []MarkedFooting `json:"results"`
	Totals  Totals          `json:"totals"`
}

type MarkedFooting struct {
	Mark string `json:"mark"`
	footing.Result
}

type Totals struct {
	ConcreteVolumeM3 float64 `json:"concrete_volume_m3"`
	CementBags       int     `json:"cement_bags"`
	SteelMassKg      float64 `json:"steel_mass_kg"`
	Notes            int     `json:"notes"`
}

// Footings stops at the first failing item. The error field names its index
// and mark, e.g. "items[3](C7).column_load".
func Footings(in FootingBatchInput, defaults materials.Defaults) (FootingBatchResult, error) {
	if len(in.Items) == 0 {
		return FootingBatchResult{}, core.Invalid("items", "no items")
	}
	out := FootingBatchResult{Results: make([]MarkedFooting, 0, len(in.Items))}
	var volume, steel float64
	for i, item := range in.Items {
		mark := item.Mark
		if mark == "" {
			mark = fmt.Sprintf("F%d", i+1)
		}
		res, err := footing.Calculate(item.Input, defaults)
		if err != nil {
			return FootingBatchResult{}, core.WithPrefix(fmt.Sprintf("items[%d](%s)", i, mark), err)
		}
		out.Results = append(out.Results, MarkedFooting{Mark: mark, Result: res})
		volume += res.Quantities.ConcreteVolumeM3
		steel += res.Quantities.SteelMassKg
		out.Totals.CementBags += res.Quantities.CementBags
		out.Totals.Notes += len(res.Notes)
	}
	out.Totals.ConcreteVolumeM3 = rebar.RoundTo(volume, 3)
	out.Totals.SteelMassKg = rebar.RoundTo(steel, 2)
	return out, nil
}
