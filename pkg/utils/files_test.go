package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	program := []byte{0x12, 0x00, 0xA2, 0x2A}

	t.Run("bare", func(t *testing.T) {
		path := filepath.Join(dir, "pong.ch8")
		if err := os.WriteFile(path, program, 0o644); err != nil {
			t.Fatal(err)
		}
		got, err := LoadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, program) {
			t.Error("expected bare file to load unchanged")
		}
	})

	t.Run("gzip", func(t *testing.T) {
		var buf bytes.Buffer
		w := gzip.NewWriter(&buf)
		if _, err := w.Write(program); err != nil {
			t.Fatal(err)
		}
		if err := w.Close(); err != nil {
			t.Fatal(err)
		}

		path := filepath.Join(dir, "pong.ch8.gz")
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			t.Fatal(err)
		}
		got, err := LoadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, program) {
			t.Error("expected gzip file to decompress to the program")
		}
	})

	t.Run("zip", func(t *testing.T) {
		var buf bytes.Buffer
		w := zip.NewWriter(&buf)
		f, err := w.Create("pong.ch8")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := f.Write(program); err != nil {
			t.Fatal(err)
		}
		if err := w.Close(); err != nil {
			t.Fatal(err)
		}

		path := filepath.Join(dir, "pong.zip")
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			t.Fatal(err)
		}
		got, err := LoadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, program) {
			t.Error("expected first zip entry to load")
		}
	})

	t.Run("7z", func(t *testing.T) {
		// a store-compressed archive holding pong.ch8 with the
		// program bytes above
		archive := []byte{
			0x37, 0x7a, 0xbc, 0xaf, 0x27, 0x1c, 0x00, 0x03, 0xce, 0x8b, 0x15, 0xed,
			0x04, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x60, 0x00, 0x00, 0x00,
			0x00, 0x00, 0x00, 0x00, 0x54, 0x93, 0x90, 0xe2, 0x12, 0x00, 0xa2, 0x2a,
			0x01, 0x04, 0x06, 0x00, 0x01, 0x09, 0x04, 0x00, 0x07, 0x0b, 0x01, 0x00,
			0x01, 0x01, 0x00, 0x0c, 0x04, 0x00, 0x08, 0x0a, 0x01, 0xb5, 0x57, 0xde,
			0x9c, 0x00, 0x00, 0x05, 0x01, 0x11, 0x13, 0x00, 0x70, 0x00, 0x6f, 0x00,
			0x6e, 0x00, 0x67, 0x00, 0x2e, 0x00, 0x63, 0x00, 0x68, 0x00, 0x38, 0x00,
			0x00, 0x00, 0x14, 0x0a, 0x01, 0x00, 0x2d, 0x4c, 0x6e, 0x25, 0xd9, 0x38,
			0xdd, 0x01, 0x12, 0x0a, 0x01, 0x00, 0x2d, 0x4c, 0x6e, 0x25, 0xd9, 0x38,
			0xdd, 0x01, 0x13, 0x0a, 0x01, 0x00, 0x45, 0x5d, 0x6d, 0x25, 0xd9, 0x38,
			0xdd, 0x01, 0x15, 0x06, 0x01, 0x00, 0x20, 0x80, 0xa4, 0x81, 0x00, 0x00,
		}

		path := filepath.Join(dir, "pong.7z")
		if err := os.WriteFile(path, archive, 0o644); err != nil {
			t.Fatal(err)
		}
		got, err := LoadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, program) {
			t.Error("expected first 7z entry to load")
		}
	})

	t.Run("missing", func(t *testing.T) {
		if _, err := LoadFile(filepath.Join(dir, "nope.ch8")); err == nil {
			t.Error("expected error for a missing file")
		}
	})
}
