package renderer

import (
	"context"
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/cityblocks/internal/assets"
	"github.com/Faultbox/cityblocks/internal/engine/texture"
)

// Texture is a GL texture handle.
type Texture struct {
	ID            uint32
	Width, Height int
}

// loadImage resolves a descriptor to RGBA pixels: inline pixels are used
// as given, a locator is fetched and decoded.
func loadImage(ctx context.Context, fetcher assets.Fetcher, desc assets.TextureDescriptor) (*image.RGBA, error) {
	var img *image.RGBA
	if desc.Locator == "" {
		if desc.Width <= 0 || desc.Height <= 0 || len(desc.Pixels) != desc.Width*desc.Height*4 {
			return nil, fmt.Errorf("inline texture: %d bytes for %dx%d", len(desc.Pixels), desc.Width, desc.Height)
		}
		img = &image.RGBA{
			Pix:    desc.Pixels,
			Stride: desc.Width * 4,
			Rect:   image.Rect(0, 0, desc.Width, desc.Height),
		}
	} else {
		if fetcher == nil {
			return nil, fmt.Errorf("%w: %s: no fetcher", assets.ErrResourceUnavailable, desc.Locator)
		}
		data, err := fetcher.Fetch(ctx, desc.Locator)
		if err != nil {
			return nil, err
		}
		img, err = texture.Decode(data, desc.Locator)
		if err != nil {
			return nil, err
		}
	}

	if desc.FlipY {
		flipped := image.NewRGBA(img.Rect)
		copy(flipped.Pix, img.Pix)
		texture.FlipVertical(flipped)
		img = flipped
	}
	return img, nil
}

func uploadTexture(img *image.RGBA) *Texture {
	t := &Texture{Width: img.Rect.Dx(), Height: img.Rect.Dy()}

	gl.GenTextures(1, &t.ID)
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(t.Width), int32(t.Height), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return t
}
