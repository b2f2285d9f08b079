package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameFor(t *testing.T) {
	assert.Equal(t, "Test_Face_0", NameFor(0))
	assert.Equal(t, "Test_Face_42", NameFor(42))
	assert.Equal(t, NameFor(7), NameFor(7))
}

func TestIsTestEntity(t *testing.T) {
	tests := map[string]bool{
		"Test_Face_0":          true,
		"test_face_12":         true,
		"Old TEST_FACE_3 copy": true,
		"Test_Face_":           true,
		"Generic":              false,
		"Test Face 1":          false,
		"":                     false,
	}
	for name, want := range tests {
		assert.Equal(t, want, IsTestEntity(name), name)
	}
}

func TestIndexOf(t *testing.T) {
	i, ok := IndexOf(NameFor(17))
	assert.True(t, ok)
	assert.Equal(t, 17, i)

	for _, name := range []string{"Test_Face_", "Test_Face_x", "Generic", "Test_Face_-1"} {
		_, ok := IndexOf(name)
		assert.False(t, ok, name)
	}
}
