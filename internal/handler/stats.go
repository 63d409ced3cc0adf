// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"time"

	"github.com/olegiv/folio-go/internal/store"
)

// StatsResponse is the admin dashboard traffic summary.
type StatsResponse struct {
	Days         int                `json:"days"`
	TotalVisits  int64              `json:"total_visits"`
	TopPaths     []store.VisitCount `json:"top_paths"`
	TopCountries []store.VisitCount `json:"top_countries"`
	Devices      []store.VisitCount `json:"devices"`
	UnreadMail   int64              `json:"unread_mail"`
}

// AdminStats returns anonymized visit aggregates for the last N days
// (default 30, capped at the retention window of 90).
func (h *Handler) AdminStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	days := ParseIntParam(r, "days", 30, 1, 90)
	cutoff := time.Now().AddDate(0, 0, -days)

	total, err := h.queries.CountVisitsSince(ctx, cutoff)
	if err != nil {
		WriteInternalError(w, "Failed to retrieve stats")
		return
	}
	topPaths, err := h.queries.TopVisitPaths(ctx, cutoff, 10)
	if err != nil {
		WriteInternalError(w, "Failed to retrieve stats")
		return
	}
	topCountries, err := h.queries.TopVisitCountries(ctx, cutoff, 10)
	if err != nil {
		WriteInternalError(w, "Failed to retrieve stats")
		return
	}
	devices, err := h.queries.VisitDeviceBreakdown(ctx, cutoff)
	if err != nil {
		WriteInternalError(w, "Failed to retrieve stats")
		return
	}
	unread, err := h.queries.CountUnreadContacts(ctx)
	if err != nil {
		WriteInternalError(w, "Failed to retrieve stats")
		return
	}

	WriteSuccess(w, StatsResponse{
		Days:         days,
		TotalVisits:  total,
		TopPaths:     topPaths,
		TopCountries: topCountries,
		Devices:      devices,
		UnreadMail:   unread,
	}, nil)
}
