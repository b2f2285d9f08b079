package hostdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditScopeCommit(t *testing.T) {
	d := NewWithLibrary()
	generic, _ := d.AppearanceAssetByName("Generic")
	tx := begin(t, d, "edit")

	scope, err := d.OpenEditScope()
	require.NoError(t, err)
	_, err = d.OpenEditScope()
	assert.ErrorIs(t, err, ErrEditScopeActive)

	asset, err := scope.Start(generic)
	require.NoError(t, err)
	tr := asset.FindByName(GenericTransparency)
	require.True(t, tr.Writable())
	require.NoError(t, tr.SetDouble(0.4))
	assert.ErrorIs(t, tr.SetDouble(4), ErrInvalidValue)
	assert.ErrorIs(t, tr.SetBool(true), ErrWrongKind)

	diffuse := asset.FindByName(GenericDiffuse)
	ub, err := diffuse.AddConnectedAsset(UnifiedBitmapSchema)
	require.NoError(t, err)
	require.NoError(t, ub.FindByName(UnifiedbitmapBitmap).SetString("a.jpg"))
	assert.ErrorIs(t, ub.FindByName(UnifiedbitmapBitmap).SetString(""), ErrInvalidValue)

	_, err = tx.Commit()
	assert.ErrorIs(t, err, ErrEditScopeActive)

	require.NoError(t, scope.Commit(true))
	assert.False(t, scope.isActive())
	assert.False(t, tr.Writable())
	assert.ErrorIs(t, tr.SetDouble(0.1), ErrReadOnly)
	require.NoError(t, scope.Close())
	commit(t, tx)

	el, _ := d.AppearanceAsset(generic)
	assert.InDelta(t, 0.4, el.Asset.FindByName(GenericTransparency).Double, 1e-9)
	conn := el.Asset.FindByName(GenericDiffuse).ConnectedAsset(0)
	require.NotNil(t, conn)
	assert.Equal(t, UnifiedBitmapSchema, conn.Name)
	assert.Equal(t, "a.jpg", conn.FindByName(UnifiedbitmapBitmap).Str)
	assert.False(t, el.RenderStale)
}

func TestEditScopeCloseDiscards(t *testing.T) {
	d := NewWithLibrary()
	generic, _ := d.AppearanceAssetByName("Generic")
	tx := begin(t, d, "edit")
	defer tx.Rollback()

	scope, err := d.OpenEditScope()
	require.NoError(t, err)
	asset, err := scope.Start(generic)
	require.NoError(t, err)
	require.NoError(t, asset.FindByName(GenericTransparency).SetDouble(0.9))
	require.NoError(t, scope.Close())
	assert.ErrorIs(t, scope.Commit(true), ErrEditScopeClosed)

	el, _ := d.AppearanceAsset(generic)
	assert.Zero(t, el.Asset.FindByName(GenericTransparency).Double)

	_, err = d.OpenEditScope()
	assert.NoError(t, err)
}

func TestEditScopeDeferredRender(t *testing.T) {
	d := NewWithLibrary()
	generic, _ := d.AppearanceAssetByName("Generic")
	tx := begin(t, d, "edit")

	scope, err := d.OpenEditScope()
	require.NoError(t, err)
	_, err = scope.Start(generic)
	require.NoError(t, err)
	require.NoError(t, scope.Commit(false))
	el, _ := d.AppearanceAsset(generic)
	assert.True(t, el.RenderStale)

	d.Regenerate()
	commit(t, tx)
	el, _ = d.AppearanceAsset(generic)
	assert.False(t, el.RenderStale)
}

func TestReadOnlyCopiesRejectWrites(t *testing.T) {
	d := NewWithLibrary()
	generic, _ := d.AppearanceAssetByName("Generic")
	el, _ := d.AppearanceAsset(generic)
	p := el.Asset.FindByName(GenericTransparency)
	assert.ErrorIs(t, p.SetDouble(0.5), ErrReadOnly)
	_, err := p.AddConnectedAsset(UnifiedBitmapSchema)
	assert.ErrorIs(t, err, ErrReadOnly)
}

func TestWalkFindsNestedBitmap(t *testing.T) {
	d := NewWithLibrary()
	id, ok := d.AppearanceAssetByName("Wood - Oak")
	require.True(t, ok)
	el, _ := d.AppearanceAsset(id)

	var owner string
	el.Asset.Walk(func(a *Asset, p *Property) bool {
		if p.Name == UnifiedbitmapBitmap {
			owner = a.Name
			return false
		}
		return true
	})
	assert.Equal(t, UnifiedBitmapSchema, owner)
}
