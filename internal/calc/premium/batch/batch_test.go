package batch

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"Armature/internal/calc/footing"
	"Armature/internal/calc/materials"
	"Armature/internal/calc/units"
	"Armature/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func column(load float64) footing.Input {
	return footing.Input{ColumnLoad: units.KN(load), SoilAllow: units.KPa(150)}
}

func TestFootings(t *testing.T) {
	in := FootingBatchInput{Items: []FootingItem{
		{Input: column(500)},
		{Mark: "C7", Input: column(900)},
	}}
	res, err := Footings(in, materials.Standard())
	require.NoError(t, err)
	require.Len(t, res.Results, 2)

	assert.Equal(t, "F1", res.Results[0].Mark)
	assert.Equal(t, "C7", res.Results[1].Mark)
	assert.Equal(t, 2.01, res.Results[0].Geometry.LengthM)
	assert.Greater(t, res.Results[1].Geometry.LengthM, res.Results[0].Geometry.LengthM)

	single, err := footing.Calculate(column(900), materials.Standard())
	require.NoError(t, err)
	assert.Equal(t, single, res.Results[1].Result)

	q0, q1 := res.Results[0].Quantities, res.Results[1].Quantities
	assert.InDelta(t, q0.ConcreteVolumeM3+q1.ConcreteVolumeM3, res.Totals.ConcreteVolumeM3, 1e-9)
	assert.Equal(t, q0.CementBags+q1.CementBags, res.Totals.CementBags)
}

func TestFootingsFailsWithIndex(t *testing.T) {
	in := FootingBatchInput{Items: []FootingItem{{Input: column(500)}, {Input: column(0)}}}
	_, err := Footings(in, materials.Standard())
	var ve *core.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "items[1](F2).column_load", ve.Field)

	in.Items[1].Mark = "C7"
	_, err = Footings(in, materials.Standard())
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "items[1](C7).column_load", ve.Field)
	assert.Contains(t, err.Error(), "C7")

	_, err = Footings(FootingBatchInput{}, materials.Standard())
	assert.True(t, core.IsValidation(err))
}

func TestFootingHandler(t *testing.T) {
	h := &Handler{Defaults: materials.Standard()}
	body := `{"items":[{"mark":"A","column_load":{"value":500,"unit":"kN"},"soil_allow":{"value":150,"unit":"kPa"}}]}`
	rec := httptest.NewRecorder()
	h.Footing(rec, httptest.NewRequest(http.MethodPost, "/api/tools/footing/batch", bytes.NewBufferString(body)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"mark":"A"`)
	assert.Contains(t, rec.Body.String(), `"length_m":2.01`)

	rec = httptest.NewRecorder()
	h.Footing(rec, httptest.NewRequest(http.MethodPost, "/api/tools/footing/batch", bytes.NewBufferString(`{"items":[]}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
