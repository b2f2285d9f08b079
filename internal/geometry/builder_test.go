package geometry

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFaceQuad(t *testing.T) {
	mat := uuid.New()
	shape, err := BuildFace(Quad(100, 100, 10, 6), mat)
	require.NoError(t, err)

	assert.Equal(t, OutcomeMesh, shape.Outcome)
	require.Len(t, shape.Faces, 1)
	assert.Equal(t, XYZ{100, 110, 6}, shape.Faces[0].Vertices[1])
	assert.Equal(t, []uuid.UUID{mat}, shape.MaterialIDs())
}

func TestBuilderRejectsBadFaces(t *testing.T) {
	tests := map[string]struct {
		verts []XYZ
		want  error
	}{
		"two vertices": {[]XYZ{{0, 0, 0}, {1, 0, 0}}, ErrDegenerateFace},
		"collinear":    {[]XYZ{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}}, ErrDegenerateFace},
		"coincident":   {[]XYZ{{0, 0, 0}, {0, 0, 0}, {1, 1, 0}}, ErrDegenerateFace},
		"non-planar":   {[]XYZ{{0, 0, 0}, {0, 1, 0}, {1, 1, 1}, {1, 0, 0}}, ErrNonPlanarFace},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := BuildFace(tc.verts, uuid.New())
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestBuilderOrdering(t *testing.T) {
	var b Builder
	assert.ErrorIs(t, b.AddFace(Face{Vertices: Quad(0, 0, 1, 0)}), ErrBuilderState)
	assert.ErrorIs(t, b.Build(), ErrBuilderState)
	_, err := b.Result()
	assert.ErrorIs(t, err, ErrBuilderState)

	require.NoError(t, b.OpenConnectedFaceSet(false))
	assert.ErrorIs(t, b.OpenConnectedFaceSet(false), ErrBuilderState)
	assert.ErrorIs(t, b.Build(), ErrBuilderState)
}

func TestBuilderClosedTetrahedronIsSolid(t *testing.T) {
	a, bb, c, d := XYZ{0, 0, 0}, XYZ{1, 0, 0}, XYZ{0, 1, 0}, XYZ{0, 0, 1}
	var b Builder
	require.NoError(t, b.OpenConnectedFaceSet(true))
	for _, f := range [][]XYZ{{a, c, bb}, {a, bb, d}, {a, d, c}, {bb, c, d}} {
		require.NoError(t, b.AddFace(Face{Vertices: f}))
	}
	require.NoError(t, b.CloseConnectedFaceSet())
	require.NoError(t, b.Build())
	shape, err := b.Result()
	require.NoError(t, err)
	assert.Equal(t, OutcomeSolid, shape.Outcome)
	assert.Len(t, shape.Faces, 4)
}
