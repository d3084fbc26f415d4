package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types.
const (
	TGATypeUncompressed = 2  // uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

// DecodeTGA decodes an uncompressed or RLE true-color TGA image with 24 or
// 32 bits per pixel.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	if len(data) < 18 {
		return nil, errors.New("tga: header truncated")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := int(data[2])
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topToBottom := data[17]&0x20 != 0

	if colorMapType != 0 {
		return nil, errors.New("tga: color-mapped images not supported")
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("tga: unsupported image type %d", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("tga: unsupported bit depth %d", bpp)
	}
	if width == 0 || height == 0 {
		return nil, errors.New("tga: empty image")
	}

	offset := 18 + idLength
	if offset > len(data) {
		return nil, errors.New("tga: data truncated")
	}

	src := data[offset:]
	bytesPP := bpp / 8
	limit := len(src) / bytesPP
	if imageType == TGATypeRLE {
		// An RLE packet is a header byte plus at least one pixel and covers
		// at most 128 pixels.
		limit = len(src) / (1 + bytesPP) * 128
	}
	if !pixelsFit(width, height, limit) {
		return nil, fmt.Errorf("tga: %dx%d image larger than its %d bytes of data", width, height, len(src))
	}

	d := tgaDecoder{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		src:         src,
		bytesPP:     bytesPP,
		topToBottom: topToBottom,
	}
	if imageType == TGATypeUncompressed {
		return d.img, d.raw()
	}
	return d.img, d.rle()
}

type tgaDecoder struct {
	img         *image.RGBA
	src         []byte
	pos         int
	bytesPP     int
	topToBottom bool
	pixel       int
}

// read consumes one BGR(A) pixel.
func (d *tgaDecoder) read() (color.RGBA, bool) {
	if d.pos+d.bytesPP > len(d.src) {
		return color.RGBA{}, false
	}
	p := d.src[d.pos : d.pos+d.bytesPP]
	d.pos += d.bytesPP
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if d.bytesPP == 4 {
		c.A = p[3]
	}
	return c, true
}

// put stores c at the next pixel in file order.
func (d *tgaDecoder) put(c color.RGBA) {
	b := d.img.Bounds()
	x := d.pixel % b.Dx()
	y := d.pixel / b.Dx()
	if !d.topToBottom {
		y = b.Dy() - 1 - y
	}
	d.img.SetRGBA(x, y, c)
	d.pixel++
}

func (d *tgaDecoder) total() int {
	return d.img.Bounds().Dx() * d.img.Bounds().Dy()
}

func (d *tgaDecoder) raw() error {
	for d.pixel < d.total() {
		c, ok := d.read()
		if !ok {
			return errors.New("tga: pixel data truncated")
		}
		d.put(c)
	}
	return nil
}

func (d *tgaDecoder) rle() error {
	for d.pixel < d.total() {
		if d.pos >= len(d.src) {
			return errors.New("tga: rle data truncated")
		}
		packet := d.src[d.pos]
		d.pos++
		count := int(packet&0x7f) + 1

		if packet&0x80 != 0 {
			c, ok := d.read()
			if !ok {
				return errors.New("tga: rle data truncated")
			}
			for i := 0; i < count && d.pixel < d.total(); i++ {
				d.put(c)
			}
			continue
		}
		for i := 0; i < count && d.pixel < d.total(); i++ {
			c, ok := d.read()
			if !ok {
				return errors.New("tga: rle data truncated")
			}
			d.put(c)
		}
	}
	return nil
}
