package render

import (
	"bytes"
	"testing"
)

func TestRender(t *testing.T) {
	t.Run("all off", func(t *testing.T) {
		s := NewSurface()
		Render(make([]byte, PlaneSize), s)

		pix := s.Bytes()
		for i := 0; i < PlaneSize; i++ {
			if pix[i*4] != 0 || pix[i*4+1] != 0 || pix[i*4+2] != 0 {
				t.Fatalf("expected pixel %d to be black, got (%d,%d,%d)", i, pix[i*4], pix[i*4+1], pix[i*4+2])
			}
			if pix[i*4+3] != 0xFF {
				t.Fatalf("expected pixel %d to be opaque, got alpha %d", i, pix[i*4+3])
			}
		}
	})

	t.Run("single pixel", func(t *testing.T) {
		s := NewSurface()
		plane := make([]byte, PlaneSize)
		plane[0] = 1
		Render(plane, s)

		pix := s.Bytes()
		if pix[0] != 0xFF || pix[1] != 0xFF || pix[2] != 0xFF || pix[3] != 0xFF {
			t.Errorf("expected first pixel to be opaque white, got (%d,%d,%d,%d)", pix[0], pix[1], pix[2], pix[3])
		}
		for i := 1; i < PlaneSize; i++ {
			if pix[i*4] != 0 || pix[i*4+3] != 0xFF {
				t.Fatalf("expected pixel %d to be opaque black", i)
			}
		}
	})

	t.Run("channels agree", func(t *testing.T) {
		s := NewSurface()
		plane := make([]byte, PlaneSize)
		for i := 0; i < PlaneSize; i += 3 {
			plane[i] = 1
		}
		Render(plane, s)

		pix := s.Bytes()
		for i := 0; i < PlaneSize; i++ {
			r, g, b, a := pix[i*4], pix[i*4+1], pix[i*4+2], pix[i*4+3]
			if a != 0xFF {
				t.Fatalf("expected pixel %d alpha 255, got %d", i, a)
			}
			if r != g || g != b || (r != 0 && r != 0xFF) {
				t.Fatalf("expected pixel %d channels all 0 or all 255, got (%d,%d,%d)", i, r, g, b)
			}
			lit := plane[i] != 0
			if lit != (r == 0xFF) {
				t.Fatalf("expected pixel %d to match plane", i)
			}
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		plane := make([]byte, PlaneSize)
		for i := range plane {
			plane[i] = byte(i % 2)
		}

		a, b := NewSurface(), NewSurface()
		Render(plane, a)
		Render(plane, b)
		Render(plane, b) // render twice with the same plane
		if !bytes.Equal(a.Bytes(), b.Bytes()) {
			t.Error("expected byte identical surfaces for the same plane")
		}
	})

	t.Run("overwrites previous frame", func(t *testing.T) {
		s := NewSurface()
		lit := make([]byte, PlaneSize)
		for i := range lit {
			lit[i] = 1
		}
		Render(lit, s)
		Render(make([]byte, PlaneSize), s)
		for i, b := range s.Bytes() {
			if i%4 == 3 {
				continue
			}
			if b != 0 {
				t.Fatal("expected surface to be overwritten in place")
			}
		}
	})
}

func TestRenderShortPlane(t *testing.T) {
	s := NewSurface()
	plane := make([]byte, PlaneSize)
	for i := range plane {
		plane[i] = 1
	}
	Render(plane, s)
	before := make([]byte, SurfaceSize)
	copy(before, s.Bytes())

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic rendering a short plane")
		}
		if !bytes.Equal(before, s.Bytes()) {
			t.Error("expected surface to be left unmodified")
		}
	}()
	Render(make([]byte, PlaneSize-1), s)
}

func TestSurfaceImage(t *testing.T) {
	s := NewSurface()
	plane := make([]byte, PlaneSize)
	plane[65] = 1 // (1, 1)
	Render(plane, s)

	img := s.Image()
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 32 {
		t.Fatalf("unexpected image bounds %v", img.Bounds())
	}
	r, g, b, a := img.At(1, 1).RGBA()
	if r != 0xFFFF || g != 0xFFFF || b != 0xFFFF || a != 0xFFFF {
		t.Error("expected (1,1) to be opaque white")
	}
}
