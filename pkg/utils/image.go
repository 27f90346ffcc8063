package utils

import (
	"bytes"
	"image"
	"image/png"

	"golang.design/x/clipboard"
	"golang.org/x/image/draw"
)

// ScaleImage scales the given image by an integer factor using
// nearest neighbour sampling, keeping the hard pixel edges of
// the source.
func ScaleImage(img image.Image, factor int) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// CopyImage places the given image on the system clipboard as
// a PNG.
func CopyImage(img image.Image) error {
	err := clipboard.Init()
	if err != nil {
		return err
	}

	// encode image to byte slice
	var b bytes.Buffer
	if err := png.Encode(&b, img); err != nil {
		return err
	}

	clipboard.Write(clipboard.FmtImage, b.Bytes())

	return nil
}
