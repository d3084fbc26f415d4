// Package texture decodes image files into RGBA pixel data for upload.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp" // BMP decoder registration
)

// Load reads and decodes the image at path.
func Load(path string) (*image.RGBA, error) {
	return LoadWith(os.ReadFile, path)
}

// LoadWith decodes the image at path with its bytes supplied by load, such
// as an asset manager's cached reader.
func LoadWith(load func(string) ([]byte, error), path string) (*image.RGBA, error) {
	data, err := load(path)
	if err != nil {
		return nil, err
	}
	img, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

// Decode decodes data. Formats with a magic number (PNG, JPEG, BMP) are
// recognized by content; PPM and TGA are chosen by ext (for example ".ppm"),
// falling back to the PPM magic for unknown extensions.
func Decode(data []byte, ext string) (*image.RGBA, error) {
	if !filetype.IsImage(data) {
		switch strings.ToLower(ext) {
		case ".ppm", ".pnm":
			return DecodePPM(data)
		case ".tga":
			return DecodeTGA(data)
		}
		if bytes.HasPrefix(data, []byte("P6")) || bytes.HasPrefix(data, []byte("P3")) {
			return DecodePPM(data)
		}
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return ToRGBA(img), nil
}

// ToRGBA converts any image to *image.RGBA anchored at the origin.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// pixelsFit reports whether width*height <= limit without overflowing.
// width and height must be positive.
func pixelsFit(width, height, limit int) bool {
	return height <= limit && width <= limit/height
}

// Solid returns a 1x1 image of color c, used when a texture fails to load.
func Solid(c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, c)
	return img
}
