package texture

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
)

// PreviewPath returns where the preview for name lives in dir.
func PreviewPath(dir, name string) string {
	return filepath.Join(dir, name+".preview.webp")
}

// WritePreview writes a WebP thumbnail of the template, at most size pixels
// on its longer side, to dir/<name>.preview.webp.
func (t *Template) WritePreview(dir, name string, size int) (string, error) {
	img, err := t.Image()
	if err != nil {
		return "", err
	}
	thumb := Downsample(img, size)

	dst := PreviewPath(dir, name)
	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("texture: preview %s: %w", dst, err)
	}
	defer f.Close()

	if err := nativewebp.Encode(f, thumb, nil); err != nil {
		return "", fmt.Errorf("texture: WebP encode %s: %w", dst, err)
	}
	return dst, f.Close()
}

// Downsample scales img so its longer side is at most size, keeping the
// aspect ratio. Alpha is premultiplied while filtering to avoid dark fringes.
func Downsample(img *image.NRGBA, size int) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if size <= 0 || (w <= size && h <= size) {
		return img
	}
	tw, th := size, size
	if w > h {
		th = max(1, h*size/w)
	} else {
		tw = max(1, w*size/h)
	}

	premul := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			si := img.PixOffset(x, y)
			di := premul.PixOffset(x, y)
			a := float64(img.Pix[si+3]) / 255.0
			premul.Pix[di] = uint8(float64(img.Pix[si])*a + 0.5)
			premul.Pix[di+1] = uint8(float64(img.Pix[si+1])*a + 0.5)
			premul.Pix[di+2] = uint8(float64(img.Pix[si+2])*a + 0.5)
			premul.Pix[di+3] = img.Pix[si+3]
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	draw.CatmullRom.Scale(dst, dst.Bounds(), premul, premul.Bounds(), draw.Src, nil)

	out := image.NewNRGBA(dst.Bounds())
	for y := 0; y < th; y++ {
		for x := 0; x < tw; x++ {
			si := dst.PixOffset(x, y)
			di := out.PixOffset(x, y)
			if a := float64(dst.Pix[si+3]); a > 1 {
				inv := 255.0 / a
				out.Pix[di] = clamp8(float64(dst.Pix[si]) * inv)
				out.Pix[di+1] = clamp8(float64(dst.Pix[si+1]) * inv)
				out.Pix[di+2] = clamp8(float64(dst.Pix[si+2]) * inv)
			}
			out.Pix[di+3] = dst.Pix[si+3]
		}
	}
	return out
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
