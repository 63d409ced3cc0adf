// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/olegiv/folio-go/internal/middleware"
	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/service"
)

// UploadResponse describes a stored image and its resize variants.
type UploadResponse struct {
	UUID      string            `json:"uuid"`
	Filename  string            `json:"filename"`
	Path      string            `json:"path"`
	Width     int               `json:"width"`
	Height    int               `json:"height"`
	Size      int64             `json:"size"`
	Thumbnail string            `json:"thumbnail,omitempty"`
	Variants  map[string]string `json:"variants,omitempty"`
}

// AdminUploadMedia stores an uploaded image and generates resize
// variants. The returned path goes into photo_path or image_path on the
// owning entity.
func (h *Handler) AdminUploadMedia(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(service.MaxUploadSize); err != nil {
		WriteBadRequest(w, "Invalid multipart form", nil)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		WriteBadRequest(w, "Missing file field", nil)
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.media.Upload(file, header)
	if err != nil {
		WriteValidationError(w, map[string]string{"file": err.Error()})
		return
	}

	resp := UploadResponse{
		UUID:      result.UUID,
		Filename:  result.Filename,
		Path:      result.Path,
		Width:     result.Width,
		Height:    result.Height,
		Size:      result.Size,
		Thumbnail: h.media.ThumbnailURL(result.UUID, result.Filename),
	}
	if len(result.Variants) > 0 {
		resp.Variants = make(map[string]string, len(result.Variants))
		for _, v := range result.Variants {
			resp.Variants[v.Type] = h.media.URL(result.UUID, result.Filename, v.Type)
		}
	}

	_ = h.events.LogContentEvent(r.Context(), model.EventLevelInfo, "Media uploaded: "+result.Filename,
		middleware.GetUserIDPtr(r), map[string]any{"uuid": result.UUID, "size": result.Size})

	WriteCreated(w, resp)
}

// AdminDeleteMedia removes a stored image and all of its variants by UUID.
func (h *Handler) AdminDeleteMedia(w http.ResponseWriter, r *http.Request) {
	fileUUID := chi.URLParam(r, "uuid")
	if _, err := uuid.Parse(fileUUID); err != nil {
		WriteBadRequest(w, "Invalid media ID", nil)
		return
	}
	if err := h.media.Delete(fileUUID); err != nil {
		WriteInternalError(w, "Failed to delete media")
		return
	}
	WriteNoContent(w)
}
