// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/olegiv/folio-go/internal/imaging"
	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/util"
)

// Upload limits
const (
	MaxUploadSize    = 20 * 1024 * 1024 // 20MB
	DefaultUploadDir = "./uploads"
)

// UploadResult describes a stored image. Path is the public URL path callers
// persist on the profile or project row.
type UploadResult struct {
	UUID     string
	Filename string
	Path     string
	Width    int
	Height   int
	Size     int64
	Variants []*imaging.VariantResult
}

// MediaService stores profile photos and project images on disk. Images are
// not tracked in the database; the owning row keeps the returned path.
type MediaService struct {
	processor *imaging.Processor
	uploadDir string
}

// NewMediaService creates a new media service.
func NewMediaService(uploadDir string) *MediaService {
	if uploadDir == "" {
		uploadDir = DefaultUploadDir
	}
	return &MediaService{
		processor: imaging.NewProcessor(uploadDir),
		uploadDir: uploadDir,
	}
}

// Upload validates, processes, and stores an uploaded image with its resized
// variants.
func (s *MediaService) Upload(file multipart.File, header *multipart.FileHeader) (*UploadResult, error) {
	if header.Size > MaxUploadSize {
		return nil, fmt.Errorf("file size exceeds maximum allowed (%d bytes)", MaxUploadSize)
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = mimeTypeFromExtension(header.Filename)
	}
	if !model.IsSupportedMimeType(mimeType) {
		return nil, fmt.Errorf("file type %s is not allowed", mimeType)
	}

	fileUUID := uuid.New().String()
	filename := sanitizeFilename(header.Filename)

	processResult, err := s.processor.ProcessImage(file, fileUUID, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to process image: %w", err)
	}

	variants, err := s.processor.CreateAllVariants(processResult.FilePath, fileUUID, filename)
	if err != nil {
		// The original is stored; losing variants is not fatal.
		variants = nil
	}

	return &UploadResult{
		UUID:     fileUUID,
		Filename: filename,
		Path:     s.URL(fileUUID, filename, ""),
		Width:    processResult.Width,
		Height:   processResult.Height,
		Size:     processResult.Size,
		Variants: variants,
	}, nil
}

// Delete removes the original and all variants of a stored image.
func (s *MediaService) Delete(fileUUID string) error {
	return s.processor.DeleteImageFiles(fileUUID)
}

// URL returns the public path for a stored image, optionally for a variant.
func (s *MediaService) URL(fileUUID, filename, variant string) string {
	if variant == "" || variant == "original" {
		return fmt.Sprintf("/uploads/originals/%s/%s", fileUUID, filename)
	}
	return fmt.Sprintf("/uploads/%s/%s/%s", variant, fileUUID, filename)
}

// ThumbnailURL returns the thumbnail path for a stored image.
func (s *MediaService) ThumbnailURL(fileUUID, filename string) string {
	return s.URL(fileUUID, filename, model.VariantThumbnail)
}

func sanitizeFilename(filename string) string {
	base, err := util.SanitizeFilename(filename)
	if err != nil {
		base = "upload"
	}
	filename = base

	replacer := strings.NewReplacer(
		" ", "-",
		"'", "",
		"\"", "",
		"<", "",
		">", "",
		"&", "",
		"#", "",
		"?", "",
		"%", "",
	)
	filename = replacer.Replace(filename)

	if filepath.Ext(filename) == "" {
		filename += ".jpg"
	}
	return filename
}

func mimeTypeFromExtension(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return model.MimeTypeJPEG
	case ".png":
		return model.MimeTypePNG
	case ".gif":
		return model.MimeTypeGIF
	case ".webp":
		return model.MimeTypeWebP
	default:
		return "application/octet-stream"
	}
}
