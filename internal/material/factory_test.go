package material

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"material-texture-bench/internal/hostdoc"
)

func TestGetOrCreateCreatesWithDefaults(t *testing.T) {
	d := hostdoc.New()
	tx, err := d.Begin("create faces and materials")
	require.NoError(t, err)
	defer tx.Rollback()

	rec, err := NewFactory(d, nil).GetOrCreate(4)
	require.NoError(t, err)
	assert.Equal(t, 4, rec.Index)
	assert.Equal(t, "Test_Face_4", rec.Name)
	assert.Equal(t, hostdoc.Color{R: 125, G: 125, B: 125}, rec.Color)
	assert.Zero(t, rec.Shininess)
	assert.Zero(t, rec.Transparency)
	assert.True(t, rec.UseRenderAppearance)
	assert.False(t, rec.HasAppearanceAsset())
}

func TestGetOrCreateReusesUntouched(t *testing.T) {
	d := hostdoc.New()
	tx, err := d.Begin("create faces and materials")
	require.NoError(t, err)
	defer tx.Rollback()

	id, err := d.CreateMaterial("Test_Face_1")
	require.NoError(t, err)
	require.NoError(t, d.UpdateMaterial(id, func(m *hostdoc.Material) {
		m.Shininess = 64
		m.Transparency = 30
	}))

	f := NewFactory(d, nil)
	rec, err := f.GetOrCreate(1)
	require.NoError(t, err)
	assert.Equal(t, id, rec.ID)
	assert.Equal(t, 64, rec.Shininess)
	assert.Equal(t, 30, rec.Transparency)

	again, err := f.GetOrCreate(1)
	require.NoError(t, err)
	assert.Equal(t, rec, again)
	assert.Equal(t, 1, d.Count(hostdoc.KindMaterial))
}

func TestGetOrCreateOutsideTransaction(t *testing.T) {
	_, err := NewFactory(hostdoc.New(), nil).GetOrCreate(0)
	assert.ErrorIs(t, err, hostdoc.ErrNoTransaction)
}
