package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types handled by DecodeTGA.
const (
	tgaTrueColor    = 2
	tgaTrueColorRLE = 10
	tgaHeaderSize   = 18
)

var errTGATruncated = errors.New("tga: pixel data truncated")

// DecodeTGA decodes an uncompressed or RLE compressed true-color TGA image
// with 24 or 32 bits per pixel.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < tgaHeaderSize {
		return nil, errors.New("tga: header too short")
	}

	idLength := int(data[0])
	if data[1] != 0 {
		return nil, errors.New("tga: color-mapped images not supported")
	}
	kind := data[2]
	if kind != tgaTrueColor && kind != tgaTrueColorRLE {
		return nil, fmt.Errorf("tga: unsupported image type %d", kind)
	}
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("tga: unsupported bit depth %d", bpp)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, errTGATruncated
	}

	r := &tgaReader{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		src:         data[offset:],
		stride:      bpp / 8,
		width:       width,
		height:      height,
		topToBottom: data[17]&0x20 != 0,
	}
	if kind == tgaTrueColor {
		err := r.raw()
		return r.img, err
	}
	r.rle()
	return r.img, nil
}

// tgaReader walks BGR(A) pixel data and writes it in image order.
type tgaReader struct {
	img         *image.RGBA
	src         []byte
	pos         int
	stride      int
	width       int
	height      int
	topToBottom bool
	written     int
}

func (r *tgaReader) next() (color.RGBA, bool) {
	if r.pos+r.stride > len(r.src) {
		return color.RGBA{}, false
	}
	p := r.src[r.pos : r.pos+r.stride]
	r.pos += r.stride
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 0xff}
	if r.stride == 4 {
		c.A = p[3]
	}
	return c, true
}

func (r *tgaReader) put(c color.RGBA) {
	x := r.written % r.width
	y := r.written / r.width
	if !r.topToBottom {
		y = r.height - 1 - y
	}
	r.img.SetRGBA(x, y, c)
	r.written++
}

func (r *tgaReader) raw() error {
	total := r.width * r.height
	if len(r.src) < total*r.stride {
		return errTGATruncated
	}
	for r.written < total {
		c, _ := r.next()
		r.put(c)
	}
	return nil
}

// rle decodes run-length packets. A truncated stream leaves the rest of
// the image transparent.
func (r *tgaReader) rle() {
	total := r.width * r.height
	for r.written < total && r.pos < len(r.src) {
		header := r.src[r.pos]
		r.pos++
		count := int(header&0x7f) + 1

		if header&0x80 != 0 {
			c, ok := r.next()
			if !ok {
				return
			}
			for i := 0; i < count && r.written < total; i++ {
				r.put(c)
			}
			continue
		}
		for i := 0; i < count && r.written < total; i++ {
			c, ok := r.next()
			if !ok {
				return
			}
			r.put(c)
		}
	}
}
