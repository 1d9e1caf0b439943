// inputs/image.go
package inputs

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/richinsley/goshaderview/graphics"
)

// ImageChannel represents a static image texture input.
type ImageChannel struct {
	gl         graphics.Backend
	textureID  uint32
	resolution [3]float32
}

// vflip vertically flips the provided RGBA image so that row zero ends up at
// the bottom, which is where texture coordinate v=0 samples.
func vflip(src *image.RGBA) *image.RGBA {
	bounds := src.Bounds()
	flipped := image.NewRGBA(bounds)
	height := bounds.Dy()

	rowSize := bounds.Dx() * 4
	for y := 0; y < height; y++ {
		srcRow := src.Pix[((height-1)-y)*src.Stride:]
		dstRow := flipped.Pix[y*flipped.Stride:]
		copy(dstRow, srcRow[:rowSize])
	}
	return flipped
}

// NewImageChannel uploads img as a texture.
func NewImageChannel(gl graphics.Backend, img image.Image, flip bool) (*ImageChannel, error) {
	if img == nil {
		return nil, fmt.Errorf("input image is nil")
	}

	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	if flip {
		rgba = vflip(rgba)
	}

	size := rgba.Rect.Size()
	if size.X == 0 || size.Y == 0 {
		return nil, fmt.Errorf("input image is empty (%dx%d)", size.X, size.Y)
	}

	return &ImageChannel{
		gl:         gl,
		textureID:  gl.CreateTexture(rgba),
		resolution: [3]float32{float32(size.X), float32(size.Y), 1.0},
	}, nil
}

// --- IChannel Interface Implementation ---

func (c *ImageChannel) GetTextureID() uint32 {
	return c.textureID
}

func (c *ImageChannel) ChannelRes() [3]float32 {
	return c.resolution
}

func (c *ImageChannel) Destroy() {
	if c.textureID != 0 {
		c.gl.DeleteTexture(c.textureID)
		c.textureID = 0
	}
}

func (c *ImageChannel) GetSamplerType() string {
	return "sampler2D"
}
