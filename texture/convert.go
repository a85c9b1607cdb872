// Package texture converts between raster3d's Plane[Pixel] and the
// standard library's image.Image, and encodes planes out to disk.
package texture

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/HugoSmits86/nativewebp"
	_ "github.com/ftrvxmtrx/tga"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/cpuforge/raster3d"
)

// Decode reads and decodes any registered image format (PNG, JPEG, TGA,
// BMP, TIFF) from r into a Plane[Pixel].
func Decode(r io.Reader) (*raster3d.Plane[raster3d.Pixel], error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("texture: decode: %w", err)
	}
	return FromImage(img), nil
}

// DecodeFile opens path and decodes it with Decode.
func DecodeFile(path string) (*raster3d.Plane[raster3d.Pixel], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture: open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// FromImage converts any image.Image into a Plane[Pixel], normalizing
// through its NRGBA color model so every source format lands on the
// same straight-alpha byte layout Pixel uses.
func FromImage(src image.Image) *raster3d.Plane[raster3d.Pixel] {
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	plane := raster3d.NewPlane[raster3d.Pixel](width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, a := src.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			plane.SetUnchecked(x, y, raster3d.Pixel{
				R: uint8(unpremultiply(r, a)),
				G: uint8(unpremultiply(g, a)),
				B: uint8(unpremultiply(b, a)),
				A: uint8(a >> 8),
			})
		}
	}
	return plane
}

// unpremultiply converts a 16-bit alpha-premultiplied channel value, as
// returned by image.Color.RGBA, back to an 8-bit straight channel.
func unpremultiply(c, a uint32) uint32 {
	if a == 0 {
		return 0
	}
	v := c * 0xff / a
	if v > 0xff {
		v = 0xff
	}
	return v
}

// ToImage converts plane into a standard library *image.NRGBA.
func ToImage(plane *raster3d.Plane[raster3d.Pixel]) *image.NRGBA {
	width, height := plane.Width(), plane.Height()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := plane.AtUnchecked(x, y)
			i := img.PixOffset(x, y)
			img.Pix[i+0] = p.R
			img.Pix[i+1] = p.G
			img.Pix[i+2] = p.B
			img.Pix[i+3] = p.A
		}
	}
	return img
}

// EncodeWebP encodes plane as a lossless WebP image to w.
func EncodeWebP(w io.Writer, plane *raster3d.Plane[raster3d.Pixel]) error {
	if err := nativewebp.Encode(w, ToImage(plane), nil); err != nil {
		return fmt.Errorf("texture: encode webp: %w", err)
	}
	return nil
}

// SaveWebP encodes plane as a lossless WebP image and writes it to
// path.
func SaveWebP(path string, plane *raster3d.Plane[raster3d.Pixel]) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("texture: create %s: %w", path, err)
	}
	defer f.Close()
	return EncodeWebP(f, plane)
}
