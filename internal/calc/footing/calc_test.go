package footing

import (
	"errors"
	"strings"
	"testing"

	"Armature/internal/calc/materials"
	"Armature/internal/calc/units"
	"Armature/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hasNote(notes []string, substr string) bool {
	for _, n := range notes {
		if strings.Contains(n, substr) {
			return true
		}
	}
	return false
}

func TestSquareFootingSizing(t *testing.T) {
	res, err := Calculate(Input{ColumnLoad: units.KN(500), SoilAllow: units.KPa(150)}, materials.Standard())
	require.NoError(t, err)

	// sqrt(500/150)·1.10 = 2.0083
	assert.Equal(t, 2.01, res.Geometry.LengthM)
	assert.Equal(t, 2.01, res.Geometry.WidthM)
	assert.Equal(t, 3.333, res.Geometry.RequiredAreaM2)
	assert.Equal(t, 300.0, res.Geometry.ThicknessMM)
	assert.Equal(t, 244.0, res.Geometry.EffectiveDepthMM)
	assert.Equal(t, 62.5, res.DesignMomentKNm)
	assert.False(t, res.Bearing.Enlarged)
	assert.Equal(t, res.Bearing.PMaxKNm2, res.Bearing.PMinKNm2)

	require.NotNil(t, res.Checks.Punching)
	assert.InDelta(t, 0.650, res.Checks.Punching.Demand, 0.001)
	assert.True(t, res.Checks.Punching.Pass)
	assert.True(t, res.Checks.Bearing.Pass)
	assert.True(t, res.Checks.Bending.Pass)

	require.Len(t, res.Bbs, 2)
	assert.Greater(t, res.Quantities.SteelMassKg, 0.0)
	assert.Greater(t, res.Quantities.CementBags, 0)
	assert.Contains(t, res.Summary, "square footing")
	assert.False(t, hasNote(res.Notes, "cover"))
}

func TestFootingUnitsNormalized(t *testing.T) {
	base, err := Calculate(Input{ColumnLoad: units.KN(500), SoilAllow: units.KPa(150)}, materials.Standard())
	require.NoError(t, err)
	alt, err := Calculate(Input{
		ColumnLoad: units.Force{Value: 500000, Unit: units.Newton},
		SoilAllow:  units.Pressure{Value: 150, Unit: units.KNPerSqMeter},
	}, materials.Standard())
	require.NoError(t, err)
	assert.Equal(t, base, alt)
}

func TestFootingMonotonicInLoad(t *testing.T) {
	prev := 0.0
	for load := 100.0; load <= 3000; load += 100 {
		res, err := Calculate(Input{ColumnLoad: units.KN(load), SoilAllow: units.KPa(150)}, materials.Standard())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.Geometry.LengthM, prev, "load %v", load)
		prev = res.Geometry.LengthM
	}
}

func TestFootingIdempotent(t *testing.T) {
	in := Input{
		ColumnLoad:   units.KN(800),
		SoilAllow:    units.KPa(200),
		Shape:        Rectangular,
		Eccentricity: units.MM(150),
	}
	a, err := Calculate(in, materials.Standard())
	require.NoError(t, err)
	b, err := Calculate(in, materials.Standard())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestFootingShapes(t *testing.T) {
	rect, err := Calculate(Input{ColumnLoad: units.KN(500), SoilAllow: units.KPa(150), Shape: Rectangular}, materials.Standard())
	require.NoError(t, err)
	assert.InDelta(t, 1.2, rect.Geometry.LengthM/rect.Geometry.WidthM, 0.01)
	assert.GreaterOrEqual(t, rect.Geometry.AreaM2, rect.Geometry.RequiredAreaM2)

	circ, err := Calculate(Input{ColumnLoad: units.KN(500), SoilAllow: units.KPa(150), Shape: Circular}, materials.Standard())
	require.NoError(t, err)
	assert.Equal(t, circ.Geometry.LengthM, circ.Geometry.DiameterM)
	assert.GreaterOrEqual(t, circ.Geometry.AreaM2, circ.Geometry.RequiredAreaM2)
	assert.Contains(t, circ.Summary, "Ø")
}

func TestFootingCoverNote(t *testing.T) {
	res, err := Calculate(Input{
		ColumnLoad:           units.KN(500),
		SoilAllow:            units.KPa(150),
		RequiredClearCoverMM: 40,
	}, materials.Standard())
	require.NoError(t, err)
	assert.True(t, hasNote(res.Notes, "cover"))
	assert.Equal(t, 40.0, res.Geometry.CoverMM)
}

func TestEccentricFooting(t *testing.T) {
	concentric, err := Calculate(Input{ColumnLoad: units.KN(500), SoilAllow: units.KPa(150)}, materials.Standard())
	require.NoError(t, err)

	tests := []struct {
		name      string
		in        Input
		enlarged  bool
		overNote  bool
		upliftNot bool
	}{
		{
			name:     "enlarged",
			in:       Input{ColumnLoad: units.KN(500), SoilAllow: units.KPa(150), Eccentricity: units.M(0.3)},
			enlarged: true,
		},
		{
			name:     "fixed plan over pressure",
			in:       Input{ColumnLoad: units.KN(500), SoilAllow: units.KPa(150), Eccentricity: units.M(0.3), FixedPlan: true},
			overNote: true,
		},
		{
			name:      "uplift",
			in:        Input{ColumnLoad: units.KN(500), SoilAllow: units.KPa(150), Eccentricity: units.M(0.5)},
			enlarged:  true,
			upliftNot: true,
		},
		{
			name:     "moment only",
			in:       Input{ColumnLoad: units.KN(500), SoilAllow: units.KPa(150), MomentKNm: 60},
			enlarged: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Calculate(tt.in, materials.Standard())
			require.NoError(t, err)

			b := res.Bearing
			assert.GreaterOrEqual(t, b.PMaxKNm2, b.PMinKNm2)
			load, _ := tt.in.ColumnLoad.KN()
			assert.InDelta(t, 2*load/res.Geometry.AreaM2, b.PMaxKNm2+b.PMinKNm2, 0.05)
			assert.GreaterOrEqual(t, res.Geometry.LengthM, concentric.Geometry.LengthM)
			assert.GreaterOrEqual(t, res.Geometry.WidthM, concentric.Geometry.WidthM)

			assert.Equal(t, tt.enlarged, b.Enlarged)
			if tt.enlarged {
				assert.LessOrEqual(t, b.PMaxKNm2, 150.0)
				assert.True(t, hasNote(res.Notes, "enlarged"))
			}
			assert.Equal(t, tt.overNote, hasNote(res.Notes, "exceeds the allowable"))
			assert.Equal(t, tt.upliftNot, hasNote(res.Notes, "uplift"))
		})
	}
}

func TestPunchingFailureNoted(t *testing.T) {
	res, err := Calculate(Input{ColumnLoad: units.KN(3000), SoilAllow: units.KPa(300)}, materials.Standard())
	require.NoError(t, err)
	require.NotNil(t, res.Checks.Punching)
	assert.False(t, res.Checks.Punching.Pass)
	assert.True(t, hasNote(res.Notes, "Punching"))
	assert.Greater(t, res.Geometry.ThicknessMM, 300.0)
}

func TestFootingMaterialOverrides(t *testing.T) {
	fck := 40.0
	base, err := Calculate(Input{ColumnLoad: units.KN(3000), SoilAllow: units.KPa(300)}, materials.Standard())
	require.NoError(t, err)
	strong, err := Calculate(Input{
		ColumnLoad: units.KN(3000),
		SoilAllow:  units.KPa(300),
		Materials:  &materials.Overrides{FckMPa: &fck},
	}, materials.Standard())
	require.NoError(t, err)
	assert.Less(t, strong.Geometry.ThicknessMM, base.Geometry.ThicknessMM)
}

func TestFootingValidation(t *testing.T) {
	negative := -1.0
	tests := []struct {
		name  string
		in    Input
		field string
	}{
		{"zero load", Input{SoilAllow: units.KPa(150)}, "column_load"},
		{"negative soil", Input{ColumnLoad: units.KN(500), SoilAllow: units.KPa(-5)}, "soil_allow"},
		{"bad shape", Input{ColumnLoad: units.KN(500), SoilAllow: units.KPa(150), Shape: "hexagonal"}, "shape"},
		{"unknown unit", Input{ColumnLoad: units.Force{Value: 5, Unit: "tonf"}, SoilAllow: units.KPa(150)}, "column_load.unit"},
		{"negative cover", Input{ColumnLoad: units.KN(500), SoilAllow: units.KPa(150), RequiredClearCoverMM: -10}, "required_clear_cover_mm"},
		{"bad override", Input{ColumnLoad: units.KN(500), SoilAllow: units.KPa(150), Materials: &materials.Overrides{FckMPa: &negative}}, "materials.fck_mpa"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Calculate(tt.in, materials.Standard())
			require.Error(t, err)
			var ve *core.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
		})
	}

	_, err := Calculate(Input{ColumnLoad: units.Force{Value: 5, Unit: "tonf"}, SoilAllow: units.KPa(150)}, materials.Standard())
	assert.ErrorIs(t, err, units.ErrUnknownUnit)
}
