package materials

import (
	"os"
	"path/filepath"
	"testing"

	"Armature/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardIsValid(t *testing.T) {
	d := Standard()
	require.NoError(t, d.Validate())
	assert.Equal(t, 0.138, d.Mat.MomentCoefficient)
	assert.Equal(t, 0.17, d.QuickCheck.PunchingCoefficient)
	assert.Equal(t, 0.15, d.QuickCheck.CementFractionOfMass)
	assert.Equal(t, 0.10, d.QuickCheck.FootingEnlargement)
}

func TestWithDoesNotMutate(t *testing.T) {
	base := Standard()
	fck := 30.0
	margin := 0.0

	got, err := base.With(&Overrides{FckMPa: &fck, FootingEnlargement: &margin})
	require.NoError(t, err)

	assert.Equal(t, 30.0, got.Material.FckMPa)
	assert.Equal(t, 0.0, got.QuickCheck.FootingEnlargement)
	assert.Equal(t, 25.0, base.Material.FckMPa)
	assert.Equal(t, Standard(), base)
}

func TestWithRejectsNonPositive(t *testing.T) {
	zero := 0.0
	_, err := Standard().With(&Overrides{FyMPa: &zero})
	require.Error(t, err)
	assert.True(t, core.IsValidation(err))
	assert.Contains(t, err.Error(), "materials.fy_mpa")

	got, err := Standard().With(nil)
	require.NoError(t, err)
	assert.Equal(t, Standard(), got)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "defaults.yaml")
	doc := `
material:
  fck_mpa: 30
footing:
  cover_mm: 75
bbs:
  stock_length_m: 9
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	d, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 30.0, d.Material.FckMPa)
	assert.Equal(t, 75.0, d.Footing.CoverMM)
	assert.Equal(t, 9.0, d.BBS.StockLengthM)
	// untouched keys keep the built-in value
	assert.Equal(t, 415.0, d.Material.FyMPa)
	assert.Equal(t, 12.0, d.Footing.BarDiameterMM)
}

func TestLoadFileInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("material:\n  fck_mpa: -5\n"), 0o644))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.True(t, core.IsValidation(err))

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
