package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

var (
	red   = color.RGBA{R: 255, A: 255}
	green = color.RGBA{G: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// checker returns a 2x2 image: red green on the top row, blue white below.
func checker() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, red)
	img.Set(1, 0, green)
	img.Set(0, 1, blue)
	img.Set(1, 1, white)
	return img
}

func assertChecker(t *testing.T, img *image.RGBA) {
	t.Helper()
	require.Equal(t, image.Rect(0, 0, 2, 2), img.Bounds())
	assert.Equal(t, red, img.RGBAAt(0, 0))
	assert.Equal(t, green, img.RGBAAt(1, 0))
	assert.Equal(t, blue, img.RGBAAt(0, 1))
	assert.Equal(t, white, img.RGBAAt(1, 1))
}

func TestDecode_PNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, checker()))

	img, err := Decode(buf.Bytes(), "brick.png")
	require.NoError(t, err)
	assertChecker(t, img)
}

func TestDecode_BMP(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, checker()))

	// Sniffing ignores a misleading extension.
	img, err := Decode(buf.Bytes(), "brick.png")
	require.NoError(t, err)
	assertChecker(t, img)
}

func TestDecode_NotAnImage(t *testing.T) {
	_, err := Decode([]byte("newmtl brick\nKd 1 0 0\n"), "brick.jpg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "brick.jpg: not an image")
}

// tgaHeader builds an 18 byte header for a w x h true-color image.
func tgaHeader(kind byte, w, h int, bpp byte, topToBottom bool) []byte {
	hdr := make([]byte, tgaHeaderSize)
	hdr[2] = kind
	hdr[12], hdr[13] = byte(w), byte(w>>8)
	hdr[14], hdr[15] = byte(h), byte(h>>8)
	hdr[16] = bpp
	if topToBottom {
		hdr[17] = 0x20
	}
	return hdr
}

func TestDecodeTGA_Uncompressed(t *testing.T) {
	// Bottom-to-top rows, BGR order.
	data := tgaHeader(tgaTrueColor, 2, 2, 24, false)
	data = append(data,
		255, 0, 0, 255, 255, 255, // blue, white
		0, 0, 255, 0, 255, 0, // red, green
	)

	img, err := Decode(data, "SIGN.TGA")
	require.NoError(t, err)
	assertChecker(t, img)
}

func TestDecodeTGA_RLE(t *testing.T) {
	data := tgaHeader(tgaTrueColorRLE, 3, 1, 32, true)
	data = append(data,
		0x81, 0, 0, 255, 128, // run of 2 half transparent red
		0x00, 255, 0, 0, 255, // raw packet, 1 blue pixel
	)

	img, err := DecodeTGA(data)
	require.NoError(t, err)
	rgba := ToRGBA(img)
	assert.Equal(t, color.RGBA{R: 255, A: 128}, rgba.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 255, A: 128}, rgba.RGBAAt(1, 0))
	assert.Equal(t, blue, rgba.RGBAAt(2, 0))
}

func TestDecodeTGA_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short header", []byte{0, 0, 2}},
		{"color mapped", func() []byte { h := tgaHeader(tgaTrueColor, 1, 1, 24, false); h[1] = 1; return h }()},
		{"grayscale", tgaHeader(3, 1, 1, 8, false)},
		{"16 bit", tgaHeader(tgaTrueColor, 1, 1, 16, false)},
		{"truncated pixels", append(tgaHeader(tgaTrueColor, 2, 2, 24, false), 1, 2, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTGA(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestFlipVertical(t *testing.T) {
	img := ToRGBA(checker())
	FlipVertical(img)

	assert.Equal(t, blue, img.RGBAAt(0, 0))
	assert.Equal(t, white, img.RGBAAt(1, 0))
	assert.Equal(t, red, img.RGBAAt(0, 1))
	assert.Equal(t, green, img.RGBAAt(1, 1))
}

func TestToRGBA_SubImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	src.SetRGBA(2, 2, red)
	sub := src.SubImage(image.Rect(2, 2, 4, 4))

	got := ToRGBA(sub)
	assert.Equal(t, image.Rect(0, 0, 2, 2), got.Bounds())
	assert.Equal(t, red, got.RGBAAt(0, 0))

	same := image.NewRGBA(image.Rect(0, 0, 1, 1))
	assert.Same(t, same, ToRGBA(same))
}
