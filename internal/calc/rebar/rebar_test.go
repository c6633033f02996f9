package rebar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnitWeightKgPerM(t *testing.T) {
	for _, d := range []float64{6, 8, 10, 12, 16, 20, 25, 32, 40} {
		assert.Equal(t, d*d/162, UnitWeightKgPerM(d), "d=%v", d)
	}
	assert.InDelta(t, 0.617, UnitWeightKgPerM(10), 0.001)
	assert.InDelta(t, 2.469, UnitWeightKgPerM(20), 0.001)
}

func TestDefaultHookLengthM(t *testing.T) {
	tests := []struct {
		name   string
		hook   HookType
		d      float64
		custom float64
		want   float64
	}{
		{"empty", "", 12, 0, 0},
		{"none", HookNone, 12, 0, 0},
		{"90", Hook90, 12, 0, 0.108},
		{"135", Hook135, 10, 0, 0.12},
		{"180", Hook180, 16, 0, 0.256},
		{"custom", HookCustom, 16, 150, 0.15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, DefaultHookLengthM(tt.hook, tt.d, tt.custom), 1e-12)
		})
	}
}

func TestHookTypeValid(t *testing.T) {
	assert.True(t, HookType("").Valid())
	assert.True(t, Hook135.Valid())
	assert.True(t, HookCustom.Valid())
	assert.False(t, HookType("45").Valid())
	assert.False(t, HookNone.Hooked())
}

func TestTotalBendAllowanceM(t *testing.T) {
	assert.Equal(t, 0.0, TotalBendAllowanceM(nil, 12))
	// two 90° bends on a 12 mm bar: 2·(90/45)·0.012
	assert.InDelta(t, 0.048, TotalBendAllowanceM([]float64{90, 90}, 12), 1e-12)
	assert.InDelta(t, 0.016, TotalBendAllowanceM([]float64{45}, 16), 1e-12)
}

func TestLapAndDevelopment(t *testing.T) {
	assert.InDelta(t, 0.6, SuggestLapLengthM(12), 1e-12)
	assert.InDelta(t, 0.64, DevelopmentLengthM(16), 1e-12)
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 2.01, RoundTo(2.0083, 2))
	assert.Equal(t, 2.5, RoundTo(2.45, 1))
	assert.Equal(t, 3.0, RoundTo(2.5, 0))
	assert.Equal(t, 0.889, RoundTo(144.0/162, 3))
	assert.Equal(t, 1265.0, RoundTo(10*100*1.10*1.15, 2))
}
