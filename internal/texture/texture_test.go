package texture

import (
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/ftrvxmtrx/tga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJPEG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, jpeg.Encode(f, img, nil))
}

func TestOpenAndCopy(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "TestMaterial.jpg")
	writeJPEG(t, src, 64, 32)

	tmpl, err := Open(src)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", tmpl.Format)
	assert.Equal(t, 64, tmpl.Width)
	assert.Equal(t, 32, tmpl.Height)

	require.NoError(t, os.WriteFile(CopyPath(dir, "Test_Face_0"), []byte("stale"), 0o644))
	dst, err := tmpl.CopyTo(dir, "Test_Face_0")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Test_Face_0.jpg"), dst)

	want, _ := os.ReadFile(src)
	got, _ := os.ReadFile(dst)
	assert.Equal(t, want, got)
}

func writeTGA(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, tga.Encode(f, img))
}

func TestOpenTemplateFormats(t *testing.T) {
	tests := map[string]struct {
		file   string
		write  func(*testing.T, string, int, int)
		format string
	}{
		"jpeg":           {file: "TestMaterial.jpg", write: writeJPEG, format: "jpeg"},
		"tga":            {file: "TestMaterial.tga", write: writeTGA, format: "tga"},
		"tga upper case": {file: "TestMaterial.TGA", write: writeTGA, format: "tga"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			src := filepath.Join(dir, tc.file)
			tc.write(t, src, 16, 8)

			tmpl, err := Open(src)
			require.NoError(t, err)
			assert.Equal(t, tc.format, tmpl.Format)
			assert.Equal(t, 16, tmpl.Width)
			assert.Equal(t, 8, tmpl.Height)

			img, err := tmpl.Image()
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 16, 8), img.Bounds())

			dst, err := tmpl.CopyTo(dir, "Test_Face_0")
			require.NoError(t, err)
			want, _ := os.ReadFile(src)
			got, _ := os.ReadFile(dst)
			assert.Equal(t, want, got)
		})
	}
}

func TestOpenRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	_, err := Open(filepath.Join(dir, "missing.jpg"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.jpg")
	require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0o644))
	_, err = Open(bad)
	assert.Error(t, err)
}

func TestWritePreview(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "TestMaterial.jpg")
	writeJPEG(t, src, 200, 100)
	tmpl, err := Open(src)
	require.NoError(t, err)

	dst, err := tmpl.WritePreview(dir, "Test_Face_2", 50)
	require.NoError(t, err)
	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestDownsampleKeepsAspect(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 300, 150))
	out := Downsample(img, 60)
	assert.Equal(t, 60, out.Bounds().Dx())
	assert.Equal(t, 30, out.Bounds().Dy())
	assert.Same(t, img, Downsample(img, 500))
}

func TestScanAndRemoveBeyond(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"Test_Face_0.jpg", "Test_Face_1.jpg", "Test_Face_4.jpg", "Test_Face_4.preview.webp",
		"TestMaterial.jpg", "notes.txt",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	c, err := ScanCopies(dir)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []string{
		filepath.Join(dir, "Test_Face_1.jpg"),
		filepath.Join(dir, "Test_Face_4.jpg"),
		filepath.Join(dir, "Test_Face_4.preview.webp"),
	}, c.Beyond(1))

	n, err := c.RemoveBeyond(1)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	_, err = os.Stat(filepath.Join(dir, "Test_Face_0.jpg"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "TestMaterial.jpg"))
	assert.NoError(t, err)
}
