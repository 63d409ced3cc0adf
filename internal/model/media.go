// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Supported upload MIME types. Only raster images are accepted; the portfolio
// stores a profile photo and one image per project.
const (
	MimeTypeJPEG = "image/jpeg"
	MimeTypePNG  = "image/png"
	MimeTypeGIF  = "image/gif"
	MimeTypeWebP = "image/webp"
)

// IsSupportedMimeType reports whether the MIME type can be uploaded.
func IsSupportedMimeType(mimeType string) bool {
	switch mimeType {
	case MimeTypeJPEG, MimeTypePNG, MimeTypeGIF, MimeTypeWebP:
		return true
	default:
		return false
	}
}

// Image variant names.
const (
	VariantThumbnail = "thumbnail"
	VariantMedium    = "medium"
	VariantLarge     = "large"
)

// ImageVariantConfig describes one resize target.
type ImageVariantConfig struct {
	Width   int
	Height  int
	Quality int
	Crop    bool
}

// ImageVariants are the resize targets generated for every uploaded image.
var ImageVariants = map[string]ImageVariantConfig{
	VariantThumbnail: {Width: 320, Height: 320, Quality: 80, Crop: true},
	VariantMedium:    {Width: 800, Height: 800, Quality: 85, Crop: false},
	VariantLarge:     {Width: 1600, Height: 1600, Quality: 85, Crop: false},
}
