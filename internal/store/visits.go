// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/olegiv/folio-go/internal/model"
)

// CreateVisitParams holds parameters for CreateVisit.
type CreateVisitParams struct {
	Path      string
	Referer   string
	Browser   string
	OS        string
	Device    string
	Country   string
	CreatedAt time.Time
}

// CreateVisit logs one public page view.
func (q *Queries) CreateVisit(ctx context.Context, arg CreateVisitParams) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO visits (path, referer, browser, os, device, country, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		arg.Path, arg.Referer, arg.Browser, arg.OS, arg.Device, arg.Country, arg.CreatedAt)
	return err
}

// CountVisitsSince returns the number of visits on or after the cutoff.
func (q *Queries) CountVisitsSince(ctx context.Context, cutoff time.Time) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM visits WHERE created_at >= ?", cutoff).Scan(&n)
	return n, err
}

// VisitCount is an aggregated count keyed by one visit dimension.
type VisitCount struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// TopVisitPaths returns the most visited paths since the cutoff.
func (q *Queries) TopVisitPaths(ctx context.Context, cutoff time.Time, limit int64) ([]VisitCount, error) {
	return q.visitCounts(ctx,
		"SELECT path, COUNT(*) AS n FROM visits WHERE created_at >= ? GROUP BY path ORDER BY n DESC LIMIT ?",
		cutoff, limit)
}

// TopVisitCountries returns the most common visitor countries since the cutoff.
func (q *Queries) TopVisitCountries(ctx context.Context, cutoff time.Time, limit int64) ([]VisitCount, error) {
	return q.visitCounts(ctx,
		"SELECT country, COUNT(*) AS n FROM visits WHERE created_at >= ? AND country != '' GROUP BY country ORDER BY n DESC LIMIT ?",
		cutoff, limit)
}

// VisitDeviceBreakdown returns visit counts per device type since the cutoff.
func (q *Queries) VisitDeviceBreakdown(ctx context.Context, cutoff time.Time) ([]VisitCount, error) {
	return q.visitCounts(ctx,
		"SELECT device, COUNT(*) AS n FROM visits WHERE created_at >= ? GROUP BY device ORDER BY n DESC",
		cutoff)
}

func (q *Queries) visitCounts(ctx context.Context, query string, args ...any) ([]VisitCount, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []VisitCount
	for rows.Next() {
		var v VisitCount
		if err := rows.Scan(&v.Key, &v.Count); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// ListRecentVisits returns the latest visits for the admin dashboard.
func (q *Queries) ListRecentVisits(ctx context.Context, limit int64) ([]model.Visit, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, path, referer, browser, os, device, country, created_at
		 FROM visits ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Visit
	for rows.Next() {
		var v model.Visit
		if err := rows.Scan(&v.ID, &v.Path, &v.Referer, &v.Browser, &v.OS,
			&v.Device, &v.Country, &v.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// PurgeVisitsBefore deletes visit rows older than the cutoff.
func (q *Queries) PurgeVisitsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, "DELETE FROM visits WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
