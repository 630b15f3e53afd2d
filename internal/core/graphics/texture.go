package graphics

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
)

var ErrImageDecode = errors.New("texture decode failed")

// TextureDecoder turns an encoded texture page into RGBA pixels. PNG and
// JPEG are recognised by their magic bytes.
type TextureDecoder struct{}

func NewTextureDecoder() *TextureDecoder {
	return &TextureDecoder{}
}

func (d *TextureDecoder) Decode(blob []byte) (*image.RGBA, error) {
	img, _, err := image.Decode(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba, nil
	}

	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba, nil
}
