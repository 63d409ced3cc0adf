// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/olegiv/folio-go/internal/model"
)

// memFile adapts a bytes.Reader to multipart.File.
type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func jpegFixture(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 64, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
	return buf.Bytes()
}

func uploadHeader(filename, mimeType string, size int64) *multipart.FileHeader {
	h := &multipart.FileHeader{
		Filename: filename,
		Size:     size,
		Header:   textproto.MIMEHeader{},
	}
	if mimeType != "" {
		h.Header.Set("Content-Type", mimeType)
	}
	return h
}

func TestMediaUpload(t *testing.T) {
	dir := t.TempDir()
	svc := NewMediaService(dir)

	data := jpegFixture(t, 1200, 600)
	result, err := svc.Upload(memFile{bytes.NewReader(data)}, uploadHeader("my photo.jpg", model.MimeTypeJPEG, int64(len(data))))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if result.Width != 1200 || result.Height != 600 {
		t.Errorf("dimensions = %dx%d, want 1200x600", result.Width, result.Height)
	}
	if result.Filename != "my-photo.jpg" {
		t.Errorf("Filename = %q, want %q", result.Filename, "my-photo.jpg")
	}
	wantPath := "/uploads/originals/" + result.UUID + "/my-photo.jpg"
	if result.Path != wantPath {
		t.Errorf("Path = %q, want %q", result.Path, wantPath)
	}

	onDisk := filepath.Join(dir, "originals", result.UUID, "my-photo.jpg")
	if _, err := os.Stat(onDisk); err != nil {
		t.Errorf("original not on disk: %v", err)
	}

	if err := svc.Delete(result.UUID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(onDisk); !os.IsNotExist(err) {
		t.Error("original still on disk after Delete")
	}
}

func TestMediaUploadRejectsOversize(t *testing.T) {
	svc := NewMediaService(t.TempDir())

	_, err := svc.Upload(memFile{bytes.NewReader(nil)}, uploadHeader("big.jpg", model.MimeTypeJPEG, MaxUploadSize+1))
	if err == nil || !strings.Contains(err.Error(), "exceeds maximum") {
		t.Errorf("expected size error, got %v", err)
	}
}

func TestMediaUploadRejectsUnsupportedType(t *testing.T) {
	svc := NewMediaService(t.TempDir())

	_, err := svc.Upload(memFile{bytes.NewReader([]byte("%PDF-1.4"))}, uploadHeader("cv.pdf", "application/pdf", 8))
	if err == nil || !strings.Contains(err.Error(), "not allowed") {
		t.Errorf("expected type error, got %v", err)
	}
}

func TestMediaUploadDetectsTypeFromExtension(t *testing.T) {
	svc := NewMediaService(t.TempDir())

	data := jpegFixture(t, 50, 50)
	result, err := svc.Upload(memFile{bytes.NewReader(data)}, uploadHeader("photo.jpg", "", int64(len(data))))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if result.UUID == "" {
		t.Error("expected a generated UUID")
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"photo.jpg", "photo.jpg"},
		{"my photo.jpg", "my-photo.jpg"},
		{`a"b<c>.png`, "abc.png"},
		{"../../evil.png", "evil.png"},
		{"noext", "noext.jpg"},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.input); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestMediaURLs(t *testing.T) {
	svc := NewMediaService(t.TempDir())

	if got := svc.URL("abc", "p.jpg", ""); got != "/uploads/originals/abc/p.jpg" {
		t.Errorf("URL original = %q", got)
	}
	if got := svc.ThumbnailURL("abc", "p.jpg"); got != "/uploads/thumbnail/abc/p.jpg" {
		t.Errorf("ThumbnailURL = %q", got)
	}
}
