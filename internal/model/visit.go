// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Device types recorded for page visits.
const (
	DeviceDesktop = "desktop"
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceBot     = "bot"
)

// Visit is one logged page view on the public site.
type Visit struct {
	ID        int64     `json:"id"`
	Path      string    `json:"path"`
	Referer   string    `json:"referer"`
	Browser   string    `json:"browser"`
	OS        string    `json:"os"`
	Device    string    `json:"device"`
	Country   string    `json:"country"` // ISO 3166-1 alpha-2, empty if unknown
	CreatedAt time.Time `json:"created_at"`
}
