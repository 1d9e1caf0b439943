package inputs

import (
	"image"

	"github.com/richinsley/goshaderview/graphics"
)

// XORPattern returns the classic x^y test image: red and green carry the
// coordinates, blue their xor.
func XORPattern(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < width; x++ {
			px := row[x*4 : x*4+4]
			px[0] = uint8(x)
			px[1] = uint8(y)
			px[2] = uint8(x ^ y)
			px[3] = 0xff
		}
	}
	return img
}

// NewPatternChannel uploads an XOR pattern of the given size.
func NewPatternChannel(gl graphics.Backend, width, height int) (*ImageChannel, error) {
	return NewImageChannel(gl, XORPattern(width, height), false)
}
