package texture

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"strconv"
)

// DecodePPM decodes a Netpbm pixmap, either binary (P6) or plain text (P3).
// Samples wider than 8 bits are scaled down to 8 bits.
func DecodePPM(data []byte) (*image.RGBA, error) {
	br := bytes.NewReader(data)
	r := bufio.NewReader(br)

	magic, err := ppmToken(r)
	if err != nil {
		return nil, fmt.Errorf("ppm: reading magic: %w", err)
	}
	if magic != "P6" && magic != "P3" {
		return nil, fmt.Errorf("ppm: unsupported magic %q", magic)
	}

	var dims [3]int
	for i, name := range []string{"width", "height", "maxval"} {
		tok, err := ppmToken(r)
		if err != nil {
			return nil, fmt.Errorf("ppm: reading %s: %w", name, err)
		}
		v, err := strconv.Atoi(tok)
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("ppm: invalid %s %q", name, tok)
		}
		dims[i] = v
	}
	width, height, maxval := dims[0], dims[1], dims[2]
	if maxval > 65535 {
		return nil, fmt.Errorf("ppm: maxval %d out of range", maxval)
	}

	wide := maxval > 255
	remaining := r.Buffered() + br.Len()
	if magic == "P6" {
		perPixel := 3
		if wide {
			perPixel = 6
		}
		if !pixelsFit(width, height, remaining/perPixel) {
			return nil, fmt.Errorf("ppm: %dx%d image larger than its %d bytes of data", width, height, remaining)
		}
	} else if !pixelsFit(width, height, (remaining+1)/2/3) {
		// Every plain sample takes at least one digit and one separator.
		return nil, fmt.Errorf("ppm: %dx%d image larger than its %d bytes of data", width, height, remaining)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	n := width * height * 3

	sample := func(v int) uint8 {
		if v > maxval {
			v = maxval
		}
		return uint8(v * 255 / maxval)
	}

	samples := make([]int, 0, n)
	if magic == "P6" {
		// Exactly one whitespace byte separates the header from the raster;
		// ppmToken already consumed it.
		size := n
		if wide {
			size *= 2
		}
		raster := make([]byte, size)
		if _, err := io.ReadFull(r, raster); err != nil {
			return nil, errors.New("ppm: pixel data truncated")
		}
		for i := 0; i < n; i++ {
			if wide {
				samples = append(samples, int(raster[2*i])<<8|int(raster[2*i+1]))
			} else {
				samples = append(samples, int(raster[i]))
			}
		}
	} else {
		for i := 0; i < n; i++ {
			tok, err := ppmToken(r)
			if err != nil {
				return nil, errors.New("ppm: pixel data truncated")
			}
			v, err := strconv.Atoi(tok)
			if err != nil || v < 0 {
				return nil, fmt.Errorf("ppm: invalid sample %q", tok)
			}
			samples = append(samples, v)
		}
	}

	for i := 0; i < width*height; i++ {
		img.Pix[i*4+0] = sample(samples[i*3+0])
		img.Pix[i*4+1] = sample(samples[i*3+1])
		img.Pix[i*4+2] = sample(samples[i*3+2])
		img.Pix[i*4+3] = 255
	}
	return img, nil
}

// ppmToken reads the next whitespace-delimited header token, skipping
// '#' comments. The single whitespace byte after the token is consumed.
func ppmToken(r *bufio.Reader) (string, error) {
	var tok []byte
	for {
		b, err := r.ReadByte()
		if err != nil {
			if err == io.EOF && len(tok) > 0 {
				return string(tok), nil
			}
			return "", err
		}
		switch {
		case b == '#' && len(tok) == 0:
			if _, err := r.ReadBytes('\n'); err != nil {
				return "", err
			}
		case isSpace(b):
			if len(tok) > 0 {
				return string(tok), nil
			}
		default:
			tok = append(tok, b)
		}
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}
