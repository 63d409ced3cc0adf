// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/store"
)

// EventResponse is one event log entry with decoded metadata.
type EventResponse struct {
	ID        int64           `json:"id"`
	Level     string          `json:"level"`
	Category  string          `json:"category"`
	Message   string          `json:"message"`
	UserID    *int64          `json:"user_id,omitempty"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

func eventToResponse(e model.Event) EventResponse {
	resp := EventResponse{
		ID:        e.ID,
		Level:     e.Level,
		Category:  e.Category,
		Message:   e.Message,
		CreatedAt: e.CreatedAt,
	}
	if e.UserID.Valid {
		id := e.UserID.Int64
		resp.UserID = &id
	}
	if e.Metadata != "" && e.Metadata != "{}" {
		resp.Metadata = json.RawMessage(e.Metadata)
	}
	return resp
}

// AdminListEvents returns event log entries newest first, optionally
// filtered by level and category.
func (h *Handler) AdminListEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	level := r.URL.Query().Get("level")
	category := r.URL.Query().Get("category")
	page := ParsePageParam(r)
	perPage := ParsePerPageParam(r, 50, 200)

	events, err := h.queries.ListEvents(ctx, store.ListEventsParams{
		Level:    level,
		Category: category,
		Limit:    int64(perPage),
		Offset:   int64((page - 1) * perPage),
	})
	if err != nil {
		WriteInternalError(w, "Failed to retrieve events")
		return
	}
	total, err := h.queries.CountEvents(ctx, level, category)
	if err != nil {
		WriteInternalError(w, "Failed to retrieve events")
		return
	}

	out := make([]EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, eventToResponse(e))
	}
	WriteSuccess(w, out, pageMeta(total, page, perPage))
}
