// Package boq prices quantity items into a bill of quantities.
package boq

import (
	"fmt"

	"Armature/internal/calc/rebar"
	"Armature/internal/calc/units"
	"Armature/internal/core"
)

// Materials is a set of material-category quantities. On an item it is the
// consumption per unit of the item's quantity; on a result it is a total.
type Materials struct {
	CementBags  float64 `json:"cement_bags,omitempty" yaml:"cement_bags,omitempty"`
	SandM3      float64 `json:"sand_m3,omitempty" yaml:"sand_m3,omitempty"`
	AggregateM3 float64 `json:"aggregate_m3,omitempty" yaml:"aggregate_m3,omitempty"`
	SteelKg     float64 `json:"steel_kg,omitempty" yaml:"steel_kg,omitempty"`
	Bricks      float64 `json:"bricks,omitempty" yaml:"bricks,omitempty"`
	FormworkM2  float64 `json:"formwork_m2,omitempty" yaml:"formwork_m2,omitempty"`
}

func (m Materials) scale(k float64) Materials {
	return Materials{
		CementBags:  m.CementBags * k,
		SandM3:      m.SandM3 * k,
		AggregateM3: m.AggregateM3 * k,
		SteelKg:     m.SteelKg * k,
		Bricks:      m.Bricks * k,
		FormworkM2:  m.FormworkM2 * k,
	}
}

func (m Materials) add(o Materials) Materials {
	return Materials{
		CementBags:  m.CementBags + o.CementBags,
		SandM3:      m.SandM3 + o.SandM3,
		AggregateM3: m.AggregateM3 + o.AggregateM3,
		SteelKg:     m.SteelKg + o.SteelKg,
		Bricks:      m.Bricks + o.Bricks,
		FormworkM2:  m.FormworkM2 + o.FormworkM2,
	}
}

func (m Materials) rounded() Materials {
	return Materials{
		CementBags:  rebar.RoundTo(m.CementBags, 2),
		SandM3:      rebar.RoundTo(m.SandM3, 3),
		AggregateM3: rebar.RoundTo(m.AggregateM3, 3),
		SteelKg:     rebar.RoundTo(m.SteelKg, 2),
		Bricks:      rebar.RoundTo(m.Bricks, 0),
		FormworkM2:  rebar.RoundTo(m.FormworkM2, 3),
	}
}

// Rates is the rate table keyed by material category.
type Rates struct {
	CementBag   float64 `json:"cement_bag" yaml:"cement_bag"`
	SandM3      float64 `json:"sand_m3" yaml:"sand_m3"`
	AggregateM3 float64 `json:"aggregate_m3" yaml:"aggregate_m3"`
	SteelKg     float64 `json:"steel_kg" yaml:"steel_kg"`
	Brick       float64 `json:"brick" yaml:"brick"`
	FormworkM2  float64 `json:"formwork_m2" yaml:"formwork_m2"`
	Labour      float64 `json:"labour" yaml:"labour"` // per labour unit
}

func (r Rates) validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"cement_bag", r.CementBag},
		{"sand_m3", r.SandM3},
		{"aggregate_m3", r.AggregateM3},
		{"steel_kg", r.SteelKg},
		{"brick", r.Brick},
		{"formwork_m2", r.FormworkM2},
		{"labour", r.Labour},
	} {
		if err := units.EnsureNonNegative("rates."+f.name, f.v); err != nil {
			return err
		}
	}
	return nil
}

func (r Rates) cost(m Materials) float64 {
	return m.CementBags*r.CementBag +
		m.SandM3*r.SandM3 +
		m.AggregateM3*r.AggregateM3 +
		m.SteelKg*r.SteelKg +
		m.Bricks*r.Brick +
		m.FormworkM2*r.FormworkM2
}

type Item struct {
	Description string `json:"description" yaml:"description"`
	Category    string `json:"category" yaml:"category"` // work category for subtotals
	Unit        string `json:"unit,omitempty" yaml:"unit,omitempty"`

	Quantity  *float64         `json:"quantity,omitempty" yaml:"quantity,omitempty"`
	Length    float64          `json:"length,omitempty" yaml:"length,omitempty"`
	Breadth   float64          `json:"breadth,omitempty" yaml:"breadth,omitempty"`
	Height    float64          `json:"height,omitempty" yaml:"height,omitempty"`
	Thickness float64          `json:"thickness,omitempty" yaml:"thickness,omitempty"`
	Area      float64          `json:"area,omitempty" yaml:"area,omitempty"`
	Volume    float64          `json:"volume,omitempty" yaml:"volume,omitempty"`
	DimUnit   units.LengthUnit `json:"dim_unit,omitempty" yaml:"dim_unit,omitempty"`
	Count     float64          `json:"count,omitempty" yaml:"count,omitempty"`

	PerUnitRate      *float64   `json:"per_unit_rate,omitempty" yaml:"per_unit_rate,omitempty"`
	ApplyOverheads   bool       `json:"apply_overheads,omitempty" yaml:"apply_overheads,omitempty"`
	Materials        *Materials `json:"materials,omitempty" yaml:"materials,omitempty"`
	LabourQuantity   *float64   `json:"labour_quantity,omitempty" yaml:"labour_quantity,omitempty"`
	WastagePercent   float64    `json:"wastage_percent,omitempty" yaml:"wastage_percent,omitempty"`
	OverheadsPercent *float64   `json:"overheads_percent,omitempty" yaml:"overheads_percent,omitempty"`
	ProfitPercent    *float64   `json:"profit_percent,omitempty" yaml:"profit_percent,omitempty"`
}

type Options struct {
	OverheadsPercent float64 `json:"overheads_percent" yaml:"overheads_percent"`
	ProfitPercent    float64 `json:"profit_percent" yaml:"profit_percent"`
	Currency         string  `json:"currency,omitempty" yaml:"currency,omitempty"`
}

type Input struct {
	Items   []Item  `json:"items" yaml:"items"`
	Rates   Rates   `json:"rates" yaml:"rates"`
	Options Options `json:"options" yaml:"options"`
}

type Basis string

const (
	BasisRate      Basis = "rate"
	BasisMaterials Basis = "materials"
)

type Line struct {
	No           int        `json:"no"`
	Description  string     `json:"description"`
	Category     string     `json:"category"`
	Unit         string     `json:"unit,omitempty"`
	Quantity     float64    `json:"quantity"`
	Basis        Basis      `json:"basis"`
	Rate         float64    `json:"rate"` // amount per unit quantity
	MaterialCost float64    `json:"material_cost,omitempty"`
	LabourCost   float64    `json:"labour_cost,omitempty"`
	Base         float64    `json:"base"`
	Overheads    float64    `json:"overheads"`
	Profit       float64    `json:"profit"`
	Amount       float64    `json:"amount"`
	Materials    *Materials `json:"materials,omitempty"`
}

type Subtotal struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

type Result struct {
	Lines      []Line     `json:"lines"`
	Subtotals  []Subtotal `json:"subtotals"`
	GrandTotal float64    `json:"grand_total"`
	Materials  Materials  `json:"materials"`
	Currency   string     `json:"currency,omitempty"`
	Summary    string     `json:"summary"`
}

// DeriveQuantity picks the first of: quantity, volume, L×B×(H or T), area,
// L×B, length. Dimensions are in DimUnit; the result is multiplied by Count.
func DeriveQuantity(it Item) (float64, error) {
	f, err := units.LengthFactor(it.DimUnit)
	if err != nil {
		return 0, core.WithPrefix("dim_unit", err)
	}
	for _, d := range []struct {
		name string
		v    float64
	}{
		{"length", it.Length}, {"breadth", it.Breadth}, {"height", it.Height},
		{"thickness", it.Thickness}, {"area", it.Area}, {"volume", it.Volume}, {"count", it.Count},
	} {
		if err := units.EnsureNonNegative(d.name, d.v); err != nil {
			return 0, err
		}
	}
	count := it.Count
	if count == 0 {
		count = 1
	}

	depth := it.Height
	if depth == 0 {
		depth = it.Thickness
	}
	var q float64
	switch {
	case it.Quantity != nil:
		if err := units.EnsureNonNegative("quantity", *it.Quantity); err != nil {
			return 0, err
		}
		q = *it.Quantity
	case it.Volume > 0:
		q = it.Volume * f * f * f
	case it.Length > 0 && it.Breadth > 0 && depth > 0:
		q = it.Length * it.Breadth * depth * f * f * f
	case it.Area > 0:
		q = it.Area * f * f
	case it.Length > 0 && it.Breadth > 0:
		q = it.Length * it.Breadth * f * f
	case it.Length > 0:
		q = it.Length * f
	default:
		return 0, core.Invalid("quantity", "no quantity or dimensions given")
	}
	return q * count, nil
}

func percent(item *float64, run float64) float64 {
	if item != nil {
		return *item
	}
	return run
}

func price(it Item, q float64, r Rates, o Options) (Line, Materials, error) {
	oh := percent(it.OverheadsPercent, o.OverheadsPercent)
	pr := percent(it.ProfitPercent, o.ProfitPercent)
	if err := units.EnsureNonNegative("overheads_percent", oh); err != nil {
		return Line{}, Materials{}, err
	}
	if err := units.EnsureNonNegative("profit_percent", pr); err != nil {
		return Line{}, Materials{}, err
	}
	if err := units.EnsureNonNegative("wastage_percent", it.WastagePercent); err != nil {
		return Line{}, Materials{}, err
	}

	line := Line{Description: it.Description, Category: it.Category, Unit: it.Unit}
	var used Materials
	var base float64
	layer := true

	if it.PerUnitRate != nil {
		if err := units.EnsureNonNegative("per_unit_rate", *it.PerUnitRate); err != nil {
			return Line{}, Materials{}, err
		}
		line.Basis = BasisRate
		base = q * *it.PerUnitRate
		layer = it.ApplyOverheads
	} else {
		line.Basis = BasisMaterials
		waste := 1 + it.WastagePercent/100
		if it.Materials != nil {
			used = it.Materials.scale(q * waste)
			line.MaterialCost = r.cost(used)
		}
		labourQty := q
		if it.LabourQuantity != nil {
			if err := units.EnsureNonNegative("labour_quantity", *it.LabourQuantity); err != nil {
				return Line{}, Materials{}, err
			}
			labourQty = *it.LabourQuantity
		}
		line.LabourCost = labourQty * r.Labour * waste
		base = line.MaterialCost + line.LabourCost
	}

	amount := base
	if layer {
		line.Overheads = base * oh / 100
		amount = base * (1 + oh/100)
		line.Profit = amount * pr / 100
		amount *= 1 + pr/100
	}

	line.Quantity = rebar.RoundTo(q, 3)
	line.MaterialCost = rebar.RoundTo(line.MaterialCost, 2)
	line.LabourCost = rebar.RoundTo(line.LabourCost, 2)
	line.Base = rebar.RoundTo(base, 2)
	line.Overheads = rebar.RoundTo(line.Overheads, 2)
	line.Profit = rebar.RoundTo(line.Profit, 2)
	line.Amount = rebar.RoundTo(amount, 2)
	if q > 0 {
		line.Rate = rebar.RoundTo(amount/q, 2)
	}
	if it.Materials != nil {
		m := used.rounded()
		line.Materials = &m
	}
	return line, used, nil
}

// Calculate prices every item. Subtotals keep the order in which work
// categories first appear.
func Calculate(in Input) (Result, error) {
	if len(in.Items) == 0 {
		return Result{}, core.Invalid("items", "at least one item is required")
	}
	if err := in.Rates.validate(); err != nil {
		return Result{}, err
	}

	res := Result{Lines: make([]Line, 0, len(in.Items)), Currency: in.Options.Currency}
	index := make(map[string]int)
	var total float64
	var mats Materials
	for i, it := range in.Items {
		q, err := DeriveQuantity(it)
		if err != nil {
			return Result{}, core.WithPrefix(fmt.Sprintf("items[%d]", i), err)
		}
		line, used, err := price(it, q, in.Rates, in.Options)
		if err != nil {
			return Result{}, core.WithPrefix(fmt.Sprintf("items[%d]", i), err)
		}
		line.No = i + 1
		if line.Category == "" {
			line.Category = "General"
		}
		res.Lines = append(res.Lines, line)

		j, ok := index[line.Category]
		if !ok {
			j = len(res.Subtotals)
			index[line.Category] = j
			res.Subtotals = append(res.Subtotals, Subtotal{Category: line.Category})
		}
		res.Subtotals[j].Amount += line.Amount
		total += line.Amount
		mats = mats.add(used)
	}
	for j := range res.Subtotals {
		res.Subtotals[j].Amount = rebar.RoundTo(res.Subtotals[j].Amount, 2)
	}
	res.GrandTotal = rebar.RoundTo(total, 2)
	res.Materials = mats.rounded()
	res.Summary = fmt.Sprintf("%d item(s) in %d categor%s; grand total %s%.2f.",
		len(res.Lines), len(res.Subtotals), plural(len(res.Subtotals)), currencyPrefix(res.Currency), res.GrandTotal)
	return res, nil
}

func plural(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}

func currencyPrefix(c string) string {
	if c == "" {
		return ""
	}
	return c + " "
}
