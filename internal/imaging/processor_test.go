// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/olegiv/folio-go/internal/model"
)

// createTestImage builds a gradient image of the given dimensions.
func createTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return img
}

func TestProcessorIsImage(t *testing.T) {
	p := NewProcessor(t.TempDir())

	tests := []struct {
		mimeType string
		want     bool
	}{
		{model.MimeTypeJPEG, true},
		{model.MimeTypePNG, true},
		{model.MimeTypeGIF, true},
		{model.MimeTypeWebP, true},
		{"application/pdf", false},
		{"application/octet-stream", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.mimeType, func(t *testing.T) {
			if got := p.IsImage(tt.mimeType); got != tt.want {
				t.Errorf("IsImage(%q) = %v, want %v", tt.mimeType, got, tt.want)
			}
		})
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"jpeg magic bytes", []byte{0xFF, 0xD8, 0xFF, 0xE0}, "jpeg"},
		{"png magic bytes", []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, "png"},
		{"gif magic bytes", []byte{0x47, 0x49, 0x46, 0x38, 0x39, 0x61}, "gif"},
		{"unknown", []byte{0x00, 0x01, 0x02, 0x03}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectFormat(tt.data); got != tt.want {
				t.Errorf("detectFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectFormatFromFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"photo.jpg", "jpeg"},
		{"photo.jpeg", "jpeg"},
		{"photo.PNG", "png"},
		{"banner.gif", "gif"},
		{"banner.webp", "webp"},
		{"noextension", "jpeg"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := detectFormatFromFilename(tt.filename); got != tt.want {
				t.Errorf("detectFormatFromFilename(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}

func TestFormatToMimeType(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"jpeg", model.MimeTypeJPEG},
		{"jpg", model.MimeTypeJPEG},
		{"png", model.MimeTypePNG},
		{"gif", model.MimeTypeGIF},
		{"webp", model.MimeTypeWebP},
		{"unknown", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			if got := formatToMimeType(tt.format); got != tt.want {
				t.Errorf("formatToMimeType(%q) = %v, want %v", tt.format, got, tt.want)
			}
		})
	}
}

func TestApplyOrientation(t *testing.T) {
	// Verify no panic and non-nil result for all orientation values,
	// including out-of-range ones.
	for orientation := 0; orientation <= 9; orientation++ {
		t.Run(fmt.Sprintf("orientation_%d", orientation), func(t *testing.T) {
			img := createTestImage(10, 20)
			result := applyOrientation(img, orientation)
			if result == nil {
				t.Fatal("applyOrientation returned nil")
			}
		})
	}

	// Rotations swap dimensions.
	rotated := applyOrientation(createTestImage(10, 20), 6)
	if b := rotated.Bounds(); b.Dx() != 20 || b.Dy() != 10 {
		t.Errorf("orientation 6 bounds = %dx%d, want 20x10", b.Dx(), b.Dy())
	}
}

func TestProcessImageAndVariants(t *testing.T) {
	dir := t.TempDir()
	p := NewProcessor(dir)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, createTestImage(2000, 1000), &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}

	result, err := p.ProcessImage(&buf, "test-uuid", "photo.jpg")
	if err != nil {
		t.Fatalf("ProcessImage: %v", err)
	}
	if result.Width != 2000 || result.Height != 1000 {
		t.Errorf("dimensions = %dx%d, want 2000x1000", result.Width, result.Height)
	}
	if result.MimeType != model.MimeTypeJPEG {
		t.Errorf("MimeType = %q, want %q", result.MimeType, model.MimeTypeJPEG)
	}
	if _, err := os.Stat(result.FilePath); err != nil {
		t.Errorf("original not on disk: %v", err)
	}

	variants, err := p.CreateAllVariants(result.FilePath, "test-uuid", "photo.jpg")
	if err != nil {
		t.Fatalf("CreateAllVariants: %v", err)
	}
	if len(variants) != len(model.ImageVariants) {
		t.Errorf("got %d variants, want %d", len(variants), len(model.ImageVariants))
	}
	for _, v := range variants {
		if _, err := os.Stat(v.FilePath); err != nil {
			t.Errorf("variant %s not on disk: %v", v.Type, err)
		}
	}

	if err := p.DeleteImageFiles("test-uuid"); err != nil {
		t.Fatalf("DeleteImageFiles: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "originals", "test-uuid")); !os.IsNotExist(err) {
		t.Error("originals directory still present after delete")
	}
}

func TestCreateVariantSkipsSmallerSource(t *testing.T) {
	dir := t.TempDir()
	p := NewProcessor(dir)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, createTestImage(100, 100), &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
	result, err := p.ProcessImage(&buf, "small-uuid", "small.jpg")
	if err != nil {
		t.Fatalf("ProcessImage: %v", err)
	}

	// 100x100 source is below the medium target and medium does not crop.
	v, err := p.CreateVariant(result.FilePath, "small-uuid", "small.jpg",
		model.ImageVariants[model.VariantMedium], model.VariantMedium)
	if err != nil {
		t.Fatalf("CreateVariant: %v", err)
	}
	if v != nil {
		t.Errorf("expected nil variant for smaller source, got %+v", v)
	}
}

func TestSaveImageFileRejectsTraversal(t *testing.T) {
	p := NewProcessor(t.TempDir())

	if _, err := p.saveImageFile("../escape", "photo.jpg", []byte("x")); err == nil {
		t.Error("expected error for subdirectory traversal")
	}
	if _, err := p.saveImageFile("originals/ok", "..", []byte("x")); err == nil {
		t.Error("expected error for invalid filename")
	}
}
