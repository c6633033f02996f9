package stair

import (
	"errors"
	"math"
	"strings"
	"testing"

	"Armature/internal/calc/materials"
	"Armature/internal/calc/units"
	"Armature/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countNotes(notes []string, substr string) int {
	n := 0
	for _, s := range notes {
		if strings.Contains(s, substr) {
			n++
		}
	}
	return n
}

func TestRiserCount(t *testing.T) {
	s := materials.Standard().Stair
	tests := []struct {
		rise float64
		want int
	}{
		{3.0, 17},
		{1.0, 10},
		{5.0, 22},
		{3.15, 18},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RiserCount(tt.rise, s), "rise %v", tt.rise)
	}
}

func TestTypicalFlight(t *testing.T) {
	res, err := Calculate(Input{TotalRise: units.M(3), TotalRun: units.M(4.5)}, materials.Standard())
	require.NoError(t, err)

	g := res.Geometry
	assert.Equal(t, 17, g.Risers)
	assert.Equal(t, 16, g.Treads)
	assert.Equal(t, 0.176, g.RiserM)
	assert.Equal(t, 0.281, g.TreadM)
	assert.Equal(t, 5.408, g.SlopeLengthM)
	assert.Equal(t, 150.0, g.ThicknessMM)
	assert.Equal(t, 118.0, g.EffectiveDepthMM)

	// 2400 kg/m³ · g · 0.15 m
	assert.Equal(t, 3.53, res.Loading.SelfWeightKNM2)
	assert.Equal(t, 3.0, res.Loading.LiveLoadKNM2)

	assert.Equal(t, 0, countNotes(res.Notes, "outside the typical"))
	assert.Equal(t, 1, countNotes(res.Notes, "Landings"))
	assert.True(t, res.Checks.Bending.Pass)

	// waist 5.408·0.15 plus 16 step wedges
	assert.InDelta(t, 1.208, res.Quantities.ConcreteVolumeM3, 0.001)
	require.Len(t, res.Bbs, 2)
	assert.Equal(t, "Main bars", res.Bbs[0].Name)
	assert.Greater(t, res.Quantities.SteelMassKg, 0.0)
}

func TestLongFlightIteratesThickness(t *testing.T) {
	res, err := Calculate(Input{TotalRise: units.M(3), TotalRun: units.M(8)}, materials.Standard())
	require.NoError(t, err)

	g := res.Geometry
	assert.Greater(t, g.ThicknessMM, 150.0)
	assert.InDelta(t, g.RequiredDepthMM+32, g.ThicknessMM, 0.2)
	unitWeight := 2400 * units.StandardGravity / 1000
	assert.InDelta(t, unitWeight*g.ThicknessMM/1000, res.Loading.SelfWeightKNM2, 0.01)
	assert.Equal(t, 1, countNotes(res.Notes, "Tread width"))
}

func TestAdvisoryProportions(t *testing.T) {
	res, err := Calculate(Input{TotalRise: units.M(1), TotalRun: units.M(1.5)}, materials.Standard())
	require.NoError(t, err)
	assert.Equal(t, 10, res.Geometry.Risers)
	assert.Equal(t, 1, countNotes(res.Notes, "Riser height"))
	assert.Equal(t, 1, countNotes(res.Notes, "Tread width"))
}

func TestStairWidthScalesQuantities(t *testing.T) {
	one, err := Calculate(Input{TotalRise: units.M(3), TotalRun: units.M(4.5)}, materials.Standard())
	require.NoError(t, err)
	two, err := Calculate(Input{TotalRise: units.M(3), TotalRun: units.M(4.5), Width: units.MM(2000)}, materials.Standard())
	require.NoError(t, err)
	assert.InDelta(t, 2*one.Quantities.ConcreteVolumeM3, two.Quantities.ConcreteVolumeM3, 0.002)
	assert.Equal(t, one.Geometry.ThicknessMM, two.Geometry.ThicknessMM)
}

func TestStairIdempotent(t *testing.T) {
	in := Input{TotalRise: units.Length{Value: 10, Unit: units.Foot}, TotalRun: units.Length{Value: 15, Unit: units.Foot}}
	a, err := Calculate(in, materials.Standard())
	require.NoError(t, err)
	b, err := Calculate(in, materials.Standard())
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.False(t, math.IsNaN(a.Geometry.ThicknessMM))
}

func TestStairValidation(t *testing.T) {
	tests := []struct {
		name  string
		in    Input
		field string
	}{
		{"zero rise", Input{TotalRun: units.M(4)}, "total_rise"},
		{"negative run", Input{TotalRise: units.M(3), TotalRun: units.M(-4)}, "total_run"},
		{"bad width unit", Input{TotalRise: units.M(3), TotalRun: units.M(4), Width: units.Length{Value: 1, Unit: "yd"}}, "width.unit"},
		{"negative live load", Input{TotalRise: units.M(3), TotalRun: units.M(4), LiveLoadKNM2: -2}, "live_load_kn_m2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Calculate(tt.in, materials.Standard())
			var ve *core.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}
