// Package texture handles the template image copied next to every generated material.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Template is the source image, read once per run.
type Template struct {
	Path   string
	Format string
	Width  int
	Height int

	data []byte
	img  *image.NRGBA
}

// Open reads and validates the template image at path.
func Open(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("texture: read %s: %w", path, err)
	}
	cfg, format, err := decodeConfig(path, data)
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return nil, fmt.Errorf("texture: empty image %s", path)
	}
	return &Template{Path: path, Format: format, Width: cfg.Width, Height: cfg.Height, data: data}, nil
}

// CopyPath returns where the copy for name lives in dir.
func CopyPath(dir, name string) string {
	return filepath.Join(dir, name+".jpg")
}

// CopyTo writes the template bytes unchanged to dir/<name>.jpg, replacing any
// existing file, and returns the path.
func (t *Template) CopyTo(dir, name string) (string, error) {
	dst := CopyPath(dir, name)
	if err := os.WriteFile(dst, t.data, 0o644); err != nil {
		return "", fmt.Errorf("texture: copy %s: %w", dst, err)
	}
	return dst, nil
}

// Image decodes the template on first use.
func (t *Template) Image() (*image.NRGBA, error) {
	if t.img != nil {
		return t.img, nil
	}
	img, err := decode(t.Path, t.data)
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", t.Path, err)
	}
	t.img = toNRGBA(img)
	return t.img, nil
}

// TGA has no magic number, so it is never sniffed; the extension decides.
func isTGA(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".tga")
}

func decodeConfig(path string, data []byte) (image.Config, string, error) {
	if isTGA(path) {
		cfg, err := tga.DecodeConfig(bytes.NewReader(data))
		return cfg, "tga", err
	}
	return image.DecodeConfig(bytes.NewReader(data))
}

func decode(path string, data []byte) (image.Image, error) {
	if isTGA(path) {
		return tga.Decode(bytes.NewReader(data))
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}

// toNRGBA converts any image to NRGBA format.
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	switch src.(type) {
	case *image.YCbCr, *image.Gray:
		// No alpha in the source
		draw.Draw(dst, b, src, b.Min, draw.Src)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				dst.Pix[dst.PixOffset(x, y)+3] = 255
			}
		}
	default:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
				i := dst.PixOffset(x, y)
				dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2], dst.Pix[i+3] = c.R, c.G, c.B, c.A
			}
		}
	}
	return dst
}
