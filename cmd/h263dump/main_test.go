/*
DESCRIPTION
  Testing functions for the h263dump CLI's pure helpers.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)
*/

package main

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestClampQuant(t *testing.T) {
	tests := []struct {
		in   uint8
		want uint8
	}{
		{0, 1},
		{1, 1},
		{16, 16},
		{31, 31},
		{200, 31},
	}
	for _, test := range tests {
		if got := clampQuant(test.in); got != test.want {
			t.Errorf("clampQuant(%d) = %d; want %d", test.in, got, test.want)
		}
	}
}

func TestOpenInputStdin(t *testing.T) {
	rc, err := openInput("-")
	if err != nil {
		t.Fatalf("openInput(-) = %v", err)
	}
	defer rc.Close()
	if rc == nil {
		t.Fatal("openInput(-) returned a nil ReadCloser")
	}
}

func TestOpenInputFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stream.h263")
	if err := os.WriteFile(path, []byte{0x00, 0x00, 0x80}, 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	rc, err := openInput(path)
	if err != nil {
		t.Fatalf("openInput(%q) = %v", path, err)
	}
	rc.Close()
}

func TestOpenInputMissingFile(t *testing.T) {
	if _, err := openInput(filepath.Join(t.TempDir(), "missing.h263")); err == nil {
		t.Fatal("openInput(missing file) = nil error; want an error")
	}
}

func TestWriteImagePNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.png")
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))

	if err := writeImage(path, img, "png"); err != nil {
		t.Fatalf("writeImage(png) = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Errorf("written file does not decode as PNG: %v", err)
	}
}

func TestWriteImageBMP(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.bmp")
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))

	if err := writeImage(path, img, "bmp"); err != nil {
		t.Fatalf("writeImage(bmp) = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat written file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("writeImage(bmp) produced an empty file")
	}
}
