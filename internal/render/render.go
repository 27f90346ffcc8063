// Package render converts the machine's monochrome pixel plane
// into a packed RGBA surface ready for a display driver to
// present.
package render

import (
	"fmt"
	"image"

	"github.com/crispvm/go-chip8/internal/chip8"
)

// PlaneSize is the expected length of a pixel plane.
const PlaneSize = chip8.Width * chip8.Height

// SurfaceSize is the length of the packed RGBA surface in
// bytes.
const SurfaceSize = 4 * PlaneSize

// Surface is a packed RGBA pixel buffer, 4 bytes per pixel. A
// Surface is allocated once and overwritten in place every
// frame.
type Surface struct {
	pix [SurfaceSize]uint8
}

// NewSurface returns a Surface with every pixel black and
// fully opaque.
func NewSurface() *Surface {
	s := &Surface{}
	for i := 3; i < len(s.pix); i += 4 {
		s.pix[i] = 0xFF
	}
	return s
}

// Bytes returns the backing RGBA pixel data. The slice aliases
// the surface; it is overwritten by the next Render.
func (s *Surface) Bytes() []byte {
	return s.pix[:]
}

// Image returns the surface as an image for screenshotting.
// The image shares the surface's backing pixels.
func (s *Surface) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    s.pix[:],
		Stride: 4 * chip8.Width,
		Rect:   image.Rect(0, 0, chip8.Width, chip8.Height),
	}
}

// Render overwrites the surface with the given pixel plane:
// full intensity white where the plane is lit, black elsewhere,
// alpha always opaque. The plane must be exactly PlaneSize
// bytes; any other length is a contract violation and panics
// before the surface is touched, since truncating or padding
// would silently corrupt the displayed state.
func Render(plane []byte, s *Surface) {
	if len(plane) != PlaneSize {
		panic(fmt.Sprintf("render: pixel plane of %d bytes, want %d", len(plane), PlaneSize))
	}

	for i, p := range plane {
		var v uint8
		if p != 0 {
			v = 0xFF
		}
		s.pix[i*4] = v
		s.pix[i*4+1] = v
		s.pix[i*4+2] = v
		s.pix[i*4+3] = 0xFF
	}
}
