package boq

import (
	"errors"
	"testing"

	"Armature/internal/calc/units"
	"Armature/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestPerUnitRateWithOverheads(t *testing.T) {
	in := Input{
		Items: []Item{{
			Description:      "Excavation",
			Category:         "Earthwork",
			Quantity:         ptr(10),
			PerUnitRate:      ptr(100),
			OverheadsPercent: ptr(10),
			ProfitPercent:    ptr(15),
			ApplyOverheads:   true,
		}},
	}
	res, err := Calculate(in)
	require.NoError(t, err)
	require.Len(t, res.Lines, 1)

	l := res.Lines[0]
	assert.Equal(t, 1265.0, l.Amount)
	assert.Equal(t, 1000.0, l.Base)
	assert.Equal(t, 100.0, l.Overheads)
	assert.Equal(t, 165.0, l.Profit)
	assert.Equal(t, 126.5, l.Rate)
	assert.Equal(t, BasisRate, l.Basis)
	assert.Equal(t, 1265.0, res.GrandTotal)
}

func TestPerUnitRateWithoutOverheads(t *testing.T) {
	res, err := Calculate(Input{
		Items:   []Item{{Description: "Excavation", Quantity: ptr(10), PerUnitRate: ptr(100)}},
		Options: Options{OverheadsPercent: 10, ProfitPercent: 15},
	})
	require.NoError(t, err)
	assert.Equal(t, 1000.0, res.Lines[0].Amount)
	assert.Zero(t, res.Lines[0].Overheads)
	assert.Equal(t, "General", res.Lines[0].Category)
}

func TestDeriveQuantity(t *testing.T) {
	tests := []struct {
		name string
		item Item
		want float64
	}{
		{"direct quantity wins", Item{Quantity: ptr(7), Length: 100, Breadth: 2}, 7},
		{"direct quantity counted", Item{Quantity: ptr(7), Count: 3}, 21},
		{"volume", Item{Volume: 2.5, Length: 10, Breadth: 10, Height: 10}, 2.5},
		{"volume in mm", Item{Volume: 1e9, DimUnit: units.Millimeter}, 1},
		{"L×B×H", Item{Length: 4, Breadth: 0.3, Height: 0.45}, 0.54},
		{"L×B×T in cm", Item{Length: 100, Breadth: 200, Thickness: 10, DimUnit: units.Centimeter}, 0.2},
		{"area", Item{Area: 12, Length: 3}, 12},
		{"area in ft", Item{Area: 100, DimUnit: units.Foot}, 9.290304},
		{"L×B", Item{Length: 3, Breadth: 4}, 12},
		{"length", Item{Length: 7.5, Count: 4}, 30},
		{"length in mm", Item{Length: 2500, DimUnit: units.Millimeter}, 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DeriveQuantity(tt.item)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestMaterialsPricing(t *testing.T) {
	in := Input{
		Items: []Item{{
			Description:    "RCC M20 footing",
			Category:       "Concrete",
			Unit:           "m3",
			Length:         2,
			Breadth:        2,
			Thickness:      0.5,
			Materials:      &Materials{CementBags: 8, SandM3: 0.45, AggregateM3: 0.9},
			WastagePercent: 5,
		}},
		Rates:   Rates{CementBag: 400, SandM3: 1500, AggregateM3: 1200, Labour: 500},
		Options: Options{OverheadsPercent: 10, ProfitPercent: 15, Currency: "INR"},
	}
	res, err := Calculate(in)
	require.NoError(t, err)

	l := res.Lines[0]
	assert.Equal(t, BasisMaterials, l.Basis)
	assert.Equal(t, 2.0, l.Quantity)
	// 2 m³ · 1.05 = 2.1 m³ of materials: 16.8·400 + 0.945·1500 + 1.89·1200
	assert.Equal(t, 10405.5, l.MaterialCost)
	assert.Equal(t, 1050.0, l.LabourCost)
	assert.Equal(t, 11455.5, l.Base)
	// 11455.5 · 1.10 · 1.15
	assert.Equal(t, 14491.21, l.Amount)

	require.NotNil(t, l.Materials)
	assert.Equal(t, 16.8, res.Materials.CementBags)
	assert.Equal(t, 0.945, res.Materials.SandM3)
	assert.Equal(t, 1.89, res.Materials.AggregateM3)
	assert.Contains(t, res.Summary, "INR")
}

func TestExplicitLabourQuantity(t *testing.T) {
	res, err := Calculate(Input{
		Items: []Item{{Description: "Bar bending", Quantity: ptr(500), Materials: &Materials{SteelKg: 1}, LabourQuantity: ptr(4)}},
		Rates: Rates{SteelKg: 70, Labour: 800},
	})
	require.NoError(t, err)
	l := res.Lines[0]
	assert.Equal(t, 35000.0, l.MaterialCost)
	assert.Equal(t, 3200.0, l.LabourCost)
	assert.Equal(t, 38200.0, l.Amount)
	assert.Equal(t, 500.0, res.Materials.SteelKg)
}

func TestSubtotalsInFirstSeenOrder(t *testing.T) {
	res, err := Calculate(Input{Items: []Item{
		{Description: "Footing concrete", Category: "Concrete", Quantity: ptr(2), PerUnitRate: ptr(5000)},
		{Description: "Rebar", Category: "Steel", Quantity: ptr(100), PerUnitRate: ptr(70)},
		{Description: "Column concrete", Category: "Concrete", Quantity: ptr(1), PerUnitRate: ptr(5500)},
	}})
	require.NoError(t, err)

	require.Len(t, res.Subtotals, 2)
	assert.Equal(t, Subtotal{Category: "Concrete", Amount: 15500}, res.Subtotals[0])
	assert.Equal(t, Subtotal{Category: "Steel", Amount: 7000}, res.Subtotals[1])
	assert.Equal(t, 22500.0, res.GrandTotal)
	assert.Equal(t, []int{1, 2, 3}, []int{res.Lines[0].No, res.Lines[1].No, res.Lines[2].No})
}

func TestBOQValidation(t *testing.T) {
	tests := []struct {
		name  string
		in    Input
		field string
	}{
		{"no items", Input{}, "items"},
		{"no dimensions", Input{Items: []Item{{Description: "x", PerUnitRate: ptr(1)}}}, "items[0].quantity"},
		{"bad unit", Input{Items: []Item{{Length: 1, DimUnit: "yd"}}}, "items[0].dim_unit.unit"},
		{"negative length", Input{Items: []Item{{Length: -1}}}, "items[0].length"},
		{"negative rate", Input{Items: []Item{{Quantity: ptr(1)}}, Rates: Rates{Labour: -5}}, "rates.labour"},
		{"negative wastage", Input{Items: []Item{{Quantity: ptr(1), WastagePercent: -1}}}, "items[0].wastage_percent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Calculate(tt.in)
			var ve *core.ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}
