package wall

import (
	"errors"
	"testing"

	"Armature/internal/calc/materials"
	"Armature/internal/calc/units"
	"Armature/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankineKa(t *testing.T) {
	assert.InDelta(t, 1.0/3, RankineKa(30), 1e-12)
	assert.InDelta(t, 0.2174, RankineKa(40), 1e-4)
}

func TestWallWithSurcharge(t *testing.T) {
	res, err := Calculate(Input{Height: units.M(3), SurchargeKNM2: 10}, materials.Standard())
	require.NoError(t, err)

	p := res.Pressure
	assert.Equal(t, 0.3333, p.Ka)
	// ½·⅓·18·3² and ⅓·10·3
	assert.Equal(t, 27.0, p.TriangularKN)
	assert.Equal(t, 10.0, p.SurchargeKN)
	assert.Equal(t, 37.0, p.BaseShearKN)
	// 27·1 + 10·1.5
	assert.Equal(t, 42.0, p.BaseMomentKNm)

	// d = 110 mm, so the 200 mm minimum governs
	assert.Equal(t, 200.0, res.Geometry.ThicknessMM)
	assert.Equal(t, 148.0, res.Geometry.EffectiveDepthMM)
	assert.True(t, res.Checks.Bending.Pass)
	assert.True(t, res.Checks.Shear.Pass)
	assert.Nil(t, res.Checks.Punching)
	assert.Contains(t, res.Notes, StemOnlyNote)

	require.Len(t, res.Bbs, 2)
	assert.Equal(t, "Vertical bars", res.Bbs[0].Name)
	assert.Equal(t, 0.6, res.Quantities.ConcreteVolumeM3)
}

func TestWallThicknessGovernedByMoment(t *testing.T) {
	res, err := Calculate(Input{Height: units.MM(5000)}, materials.Standard())
	require.NoError(t, err)
	assert.Equal(t, 125.0, res.Pressure.BaseMomentKNm)
	// √(125e6 / (0.138·25·1000)) = 190.3, + 40 cover + 12 bar
	assert.InDelta(t, 242.3, res.Geometry.ThicknessMM, 0.1)
	assert.InDelta(t, 190.3, res.Geometry.EffectiveDepthMM, 0.1)
	assert.InDelta(t, 1.212, res.Quantities.ConcreteVolumeM3, 0.001)
}

func TestWallKaInputOverridesFriction(t *testing.T) {
	res, err := Calculate(Input{Height: units.M(3), Ka: 0.5, FrictionAngleDeg: 30}, materials.Standard())
	require.NoError(t, err)
	assert.Equal(t, 0.5, res.Pressure.Ka)
	assert.Equal(t, 40.5, res.Pressure.TriangularKN)
}

func TestWallMonotonicAndIdempotent(t *testing.T) {
	prev := 0.0
	for h := 1.0; h <= 8; h += 0.5 {
		res, err := Calculate(Input{Height: units.M(h), SurchargeKNM2: 5}, materials.Standard())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.Geometry.ThicknessMM, prev)
		prev = res.Geometry.ThicknessMM

		again, err := Calculate(Input{Height: units.M(h), SurchargeKNM2: 5}, materials.Standard())
		require.NoError(t, err)
		assert.Equal(t, res, again)
	}
}

func TestWallCoverNote(t *testing.T) {
	res, err := Calculate(Input{Height: units.M(3), RequiredClearCoverMM: 25}, materials.Standard())
	require.NoError(t, err)
	assert.Len(t, res.Notes, 2)
	assert.Contains(t, res.Notes[1], "cover")
}

func TestWallValidation(t *testing.T) {
	tests := []struct {
		name  string
		in    Input
		field string
	}{
		{"zero height", Input{}, "height"},
		{"ka out of range", Input{Height: units.M(3), Ka: 1.5}, "ka"},
		{"friction out of range", Input{Height: units.M(3), FrictionAngleDeg: 95}, "friction_angle_deg"},
		{"negative surcharge", Input{Height: units.M(3), SurchargeKNM2: -1}, "surcharge_kn_m2"},
		{"unknown unit", Input{Height: units.Length{Value: 3, Unit: "yd"}}, "height.unit"},
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
