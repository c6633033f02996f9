package units

import (
	"errors"
	"math"
	"testing"

	"Armature/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMeters(t *testing.T) {
	tests := []struct {
		value float64
		unit  LengthUnit
		want  float64
	}{
		{2.5, Meter, 2.5},
		{2500, Millimeter, 2.5},
		{250, Centimeter, 2.5},
		{10, Foot, 3.048},
		{12, Inch, 0.3048},
		{3, "", 3},
	}
	for _, tt := range tests {
		t.Run(string(tt.unit), func(t *testing.T) {
			got, err := ToMeters(tt.value, tt.unit)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestToKN(t *testing.T) {
	got, err := ToKN(1000, Newton)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got, 1e-12)

	got, err = ToKN(1000, KilogramForce)
	require.NoError(t, err)
	assert.InDelta(t, 9.80665, got, 1e-12)

	got, err = ToKN(12, Kilonewton)
	require.NoError(t, err)
	assert.Equal(t, 12.0, got)
}

func TestKNPerM2(t *testing.T) {
	for _, unit := range []PressureUnit{Kilopascal, KNPerSqMeter, KNPerSqMeterASCII} {
		got, err := KNPerM2(150, unit)
		require.NoError(t, err)
		assert.Equal(t, 150.0, got)
	}
	got, err := KNPerM2(0.2, Megapascal)
	require.NoError(t, err)
	assert.InDelta(t, 200.0, got, 1e-9)
}

func TestUnknownUnit(t *testing.T) {
	_, err := ToMeters(1, "yd")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownUnit))
	assert.True(t, core.IsValidation(err))

	_, err = ToKN(1, "lbf")
	assert.ErrorIs(t, err, ErrUnknownUnit)

	_, err = KNPerM2(1, "psi")
	assert.ErrorIs(t, err, ErrUnknownUnit)

	_, err = PositiveMeters("height", Length{Value: 3, Unit: "yd"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "height.unit")
}

func TestEnsurePositive(t *testing.T) {
	assert.NoError(t, EnsurePositive("load", 0.001))

	for _, v := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		err := EnsurePositive("load", v)
		require.Error(t, err)
		var ve *core.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "load", ve.Field)
	}

	assert.NoError(t, EnsureNonNegative("surcharge", 0))
	assert.Error(t, EnsureNonNegative("surcharge", -5))
}

func TestPositiveHelpers(t *testing.T) {
	v, err := PositiveKN("column_load", Force{Value: 500000, Unit: Newton})
	require.NoError(t, err)
	assert.InDelta(t, 500.0, v, 1e-9)

	_, err = PositiveKNPerM2("soil_allow", KPa(0))
	assert.Error(t, err)

	v, err = PositiveMeters("rise", MM(3000))
	require.NoError(t, err)
	assert.InDelta(t, 3.0, v, 1e-12)
}
