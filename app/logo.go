package app

import (
	"bytes"
	_ "embed"
	"image"
	"image/color"

	"golang.org/x/image/bmp"
)

//go:embed logo.bmp
var logoBMP []byte

// Logo decodes the built-in logo. The color of the top-left pixel is
// treated as transparent.
func Logo() (image.Image, error) {
	src, err := bmp.Decode(bytes.NewReader(logoBMP))
	if err != nil {
		return nil, err
	}
	return keyOut(src), nil
}

func keyOut(src image.Image) image.Image {
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	if b.Empty() {
		return dst
	}
	key := color.NRGBAModel.Convert(src.At(b.Min.X, b.Min.Y))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			if c == key {
				continue
			}
			dst.SetNRGBA(x, y, c)
		}
	}
	return dst
}
