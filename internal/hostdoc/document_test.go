package hostdoc

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"material-texture-bench/internal/geometry"
)

func begin(t *testing.T, d *Document, name string) *Transaction {
	t.Helper()
	tx, err := d.Begin(name)
	require.NoError(t, err)
	return tx
}

func commit(t *testing.T, tx *Transaction) {
	t.Helper()
	status, err := tx.Commit()
	require.NoError(t, err)
	require.Equal(t, TransactionCommitted, status)
}

func TestMutationsNeedTransaction(t *testing.T) {
	d := NewWithLibrary()
	_, err := d.CreateMaterial("m")
	assert.ErrorIs(t, err, ErrNoTransaction)
	assert.ErrorIs(t, d.Delete(nil), ErrNoTransaction)

	tx := begin(t, d, "one")
	_, err = d.Begin("two")
	assert.ErrorIs(t, err, ErrTransactionActive)
	assert.ErrorIs(t, d.RefreshActiveView(), ErrTransactionActive)
	commit(t, tx)

	_, err = tx.Commit()
	assert.ErrorIs(t, err, ErrTransactionDone)
	require.NoError(t, d.RefreshActiveView())
	assert.Equal(t, 1, d.ActiveView().Refreshes)
}

func TestRollbackRestoresSnapshot(t *testing.T) {
	d := NewWithLibrary()
	before := d.Count(KindAppearanceAsset)

	tx := begin(t, d, "create")
	id, err := d.CreateMaterial("Test_Face_0")
	require.NoError(t, err)
	require.NoError(t, d.Delete(d.Collect(KindAppearanceAsset, nil)))
	assert.Zero(t, d.Count(KindAppearanceAsset))
	assert.Equal(t, TransactionRolledBack, tx.Rollback())

	_, ok := d.Material(id)
	assert.False(t, ok)
	assert.Equal(t, before, d.Count(KindAppearanceAsset))
	assert.Equal(t, TransactionRolledBack, tx.Rollback())
}

func TestMaterialNamesAreUnique(t *testing.T) {
	d := New()
	tx := begin(t, d, "create")
	defer tx.Rollback()

	_, err := d.CreateMaterial("Test_Face_0")
	require.NoError(t, err)
	_, err = d.CreateMaterial("Test_Face_0")
	assert.ErrorIs(t, err, ErrNameInUse)
}

func TestUpdateMaterialValidates(t *testing.T) {
	d := New()
	tx := begin(t, d, "create")
	defer tx.Rollback()

	id, err := d.CreateMaterial("m")
	require.NoError(t, err)
	assert.ErrorIs(t, d.UpdateMaterial(id, func(m *Material) { m.Shininess = 200 }), ErrInvalidValue)
	assert.ErrorIs(t, d.UpdateMaterial(id, func(m *Material) { m.AppearanceAssetID = ElementID{1} }), ErrNotFound)
	require.NoError(t, d.UpdateMaterial(id, func(m *Material) {
		m.Name = "renamed"
		m.Color = Color{R: 125, G: 125, B: 125}
	}))
	got, ok := d.Material(id)
	require.True(t, ok)
	assert.Equal(t, "m", got.Name)
	assert.Equal(t, uint8(125), got.Color.G)
}

func TestDuplicateAppearanceAsset(t *testing.T) {
	d := NewWithLibrary()
	generic, ok := d.AppearanceAssetByName("Generic")
	require.True(t, ok)

	tx := begin(t, d, "dup")
	defer tx.Rollback()

	id, err := d.DuplicateAppearanceAsset(generic, "Test_Face_0")
	require.NoError(t, err)
	el, ok := d.AppearanceAsset(id)
	require.True(t, ok)
	assert.Equal(t, "Test_Face_0", el.Name)
	assert.Equal(t, "Test_Face_0", el.Asset.Name)
	assert.NotNil(t, el.Asset.FindByName(GenericDiffuse))

	_, err = d.DuplicateAppearanceAsset(generic, "Test_Face_0")
	assert.ErrorIs(t, err, ErrNameInUse)
	_, err = d.DuplicateAppearanceAsset(ElementID{9}, "x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteAndRegenerate(t *testing.T) {
	d := NewWithLibrary()
	generic, _ := d.AppearanceAssetByName("Generic")

	tx := begin(t, d, "setup")
	mat, err := d.CreateMaterial("Test_Face_0")
	require.NoError(t, err)
	asset, err := d.DuplicateAppearanceAsset(generic, "Test_Face_0")
	require.NoError(t, err)
	require.NoError(t, d.UpdateMaterial(mat, func(m *Material) { m.AppearanceAssetID = asset }))
	shape, err := geometry.BuildFace(geometry.Quad(0, 0, 10, 0), mat)
	require.NoError(t, err)
	shapeID, err := d.CreateDirectShape(CategoryGenericModel, "Test_Face_0", shape)
	require.NoError(t, err)
	commit(t, tx)

	tx = begin(t, d, "delete")
	err = d.Delete([]ElementID{asset, ElementID{7}})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, d.NeedsRegeneration())
	require.NoError(t, d.Delete([]ElementID{mat}))
	d.Regenerate()
	commit(t, tx)

	assert.False(t, d.NeedsRegeneration())
	assert.Equal(t, 1, d.Regenerations())
	s, ok := d.DirectShape(shapeID)
	require.True(t, ok)
	assert.Equal(t, InvalidElementID, s.Shape.Faces[0].MaterialID)
}

func TestCreateDirectShapeNeedsMaterials(t *testing.T) {
	d := New()
	tx := begin(t, d, "shape")
	defer tx.Rollback()

	shape, err := geometry.BuildFace(geometry.Quad(0, 0, 10, 0), ElementID{3})
	require.NoError(t, err)
	_, err = d.CreateDirectShape(CategoryGenericModel, "x", shape)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	d := NewWithLibrary()
	generic, _ := d.AppearanceAssetByName("Generic")
	tx := begin(t, d, "setup")
	mat, err := d.CreateMaterial("Test_Face_3")
	require.NoError(t, err)
	_, err = d.DuplicateAppearanceAsset(generic, "Test_Face_3")
	require.NoError(t, err)
	shape, err := geometry.BuildFace(geometry.Quad(100, 100, 10, 9), mat)
	require.NoError(t, err)
	_, err = d.CreateDirectShape(CategoryGenericModel, "Test_Face_3", shape)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "doc.yaml")
	assert.ErrorIs(t, d.Save(path), ErrTransactionActive)
	commit(t, tx)
	require.NoError(t, d.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, d.Count(KindMaterial), got.Count(KindMaterial))
	assert.Equal(t, d.Count(KindAppearanceAsset), got.Count(KindAppearanceAsset))
	m, ok := got.MaterialByName("Test_Face_3")
	require.True(t, ok)
	assert.Equal(t, mat, m.ID)

	shapes := got.Collect(KindDirectShape, nil)
	require.Len(t, shapes, 1)
	s, _ := got.DirectShape(shapes[0])
	assert.Equal(t, geometry.XYZ{100, 110, 9}, s.Shape.Faces[0].Vertices[1])

	id, _ := got.AppearanceAssetByName("Test_Face_3")
	el, _ := got.AppearanceAsset(id)
	tr := el.Asset.FindByName(GenericTransparency)
	require.NotNil(t, tr)
	assert.True(t, tr.IsValidValue(1))
	assert.False(t, tr.IsValidValue(1.5))
}

func TestOpenMissingSeedsLibrary(t *testing.T) {
	d, err := Open(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	_, ok := d.AppearanceAssetByName("Generic")
	assert.True(t, ok)
}
