package inputs

import (
	"image"
	"image/color"
	"testing"

	"github.com/richinsley/goshaderview/graphics/fakegl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXORPattern(t *testing.T) {
	img := XORPattern(256, 256)
	require.Equal(t, image.Pt(256, 256), img.Rect.Size())

	assert.Equal(t, color.RGBA{0, 0, 0, 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{5, 3, 6, 255}, img.RGBAAt(5, 3))
	assert.Equal(t, color.RGBA{255, 0, 255, 255}, img.RGBAAt(255, 0))
	assert.Equal(t, color.RGBA{170, 85, 255, 255}, img.RGBAAt(170, 85))
}

func TestXORPatternWrapsCoordinates(t *testing.T) {
	img := XORPattern(300, 2)
	assert.Equal(t, color.RGBA{44, 1, 45, 255}, img.RGBAAt(300-256, 1))
	assert.Equal(t, img.RGBAAt(10, 1), img.RGBAAt(266, 1))
}

func TestPatternChannel(t *testing.T) {
	gl := fakegl.New()
	ch, err := NewPatternChannel(gl, 64, 32)
	require.NoError(t, err)

	assert.NotZero(t, ch.GetTextureID())
	assert.Equal(t, [3]float32{64, 32, 1}, ch.ChannelRes())
	assert.Equal(t, "sampler2D", ch.GetSamplerType())
	assert.Equal(t, 1, gl.LiveTextures())

	ch.Destroy()
	ch.Destroy()
	assert.Equal(t, 0, gl.LiveTextures())
	assert.Empty(t, gl.Errors)
}

func TestImageChannelRejectsEmpty(t *testing.T) {
	gl := fakegl.New()
	_, err := NewImageChannel(gl, nil, false)
	assert.Error(t, err)
	_, err = NewImageChannel(gl, image.NewRGBA(image.Rect(0, 0, 0, 4)), false)
	assert.Error(t, err)
	assert.Equal(t, 0, gl.LiveTextures())
}

func TestVFlip(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 3))
	src.SetRGBA(1, 0, color.RGBA{1, 2, 3, 4})
	out := vflip(src)
	assert.Equal(t, color.RGBA{1, 2, 3, 4}, out.RGBAAt(1, 2))
	assert.Equal(t, color.RGBA{}, out.RGBAAt(1, 0))
}
