package takeoff

import (
	"fmt"

	"Armature/internal/calc/bbs"
	"Armature/internal/calc/boq"
	"Armature/internal/calc/materials"
	"Armature/internal/core"
)

// EstimateInput prices a bar schedule and sized elements together with any
// extra BOQ items. The schedule may be left empty when elements are given.
type EstimateInput struct {
	Schedule bbs.Input        `json:"schedule" yaml:"schedule"`
	Elements []ElementTakeoff `json:"elements,omitempty" yaml:"elements,omitempty"`
	Extra    []boq.Item       `json:"extra_items,omitempty" yaml:"extra_items,omitempty"`
	Rates    boq.Rates        `json:"rates" yaml:"rates"`
	Options  boq.Options      `json:"options" yaml:"options"`
}

type EstimateResult struct {
	Schedule *bbs.Result    `json:"schedule,omitempty"`
	Elements []SizedElement `json:"elements,omitempty"`
	Bill     boq.Result     `json:"bill"`
}

func Estimate(in EstimateInput, defaults materials.Defaults) (EstimateResult, error) {
	var out EstimateResult
	var items []boq.Item

	if len(in.Schedule.Items) > 0 || len(in.Elements) == 0 {
		sched, err := bbs.Calculate(in.Schedule, defaults)
		if err != nil {
			return EstimateResult{}, core.WithPrefix("schedule", err)
		}
		out.Schedule = &sched
		items = append(items, FromBBS(sched)...)
	}
	for i, e := range in.Elements {
		sized, elemItems, err := SizeElement(elementName(e, i), defaults)
		if err != nil {
			return EstimateResult{}, core.WithPrefix(fmt.Sprintf("elements[%d]", i), err)
		}
		out.Elements = append(out.Elements, sized)
		items = append(items, elemItems...)
	}
	items = append(items, in.Extra...)

	bill, err := boq.Calculate(boq.Input{Items: items, Rates: in.Rates, Options: in.Options})
	if err != nil {
		return EstimateResult{}, core.WithPrefix("bill", err)
	}
	out.Bill = bill
	return out, nil
}
