// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"strings"
	"time"
)

// Experience is one CV employment entry. Language-dependent fields live in
// ExperienceTranslation.
type Experience struct {
	ID        int64        `json:"id"`
	StartDate time.Time    `json:"start_date"`
	EndDate   sql.NullTime `json:"end_date,omitempty"`
	Current   bool         `json:"current"`
	Position  int          `json:"position"` // sort order, newest first
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// ExperienceTranslation is one language's field set for an experience entry.
// Unique per (experience_id, language_code).
type ExperienceTranslation struct {
	ID           int64  `json:"id"`
	ExperienceID int64  `json:"experience_id"`
	LanguageCode string `json:"language_code"`
	Company      string `json:"company"`
	Role         string `json:"role"`
	Description  string `json:"description"` // HTML
}

// Education is one CV education entry. Language-dependent fields live in
// EducationTranslation.
type Education struct {
	ID        int64        `json:"id"`
	StartDate time.Time    `json:"start_date"`
	EndDate   sql.NullTime `json:"end_date,omitempty"`
	Position  int          `json:"position"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// EducationTranslation is one language's field set for an education entry.
// Unique per (education_id, language_code).
type EducationTranslation struct {
	ID           int64  `json:"id"`
	EducationID  int64  `json:"education_id"`
	LanguageCode string `json:"language_code"`
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study"`
	Description  string `json:"description"` // HTML
}

// Skill is a CV skill entry. Skill names are proper nouns and are not
// auto-translated.
type Skill struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Proficiency int       `json:"proficiency"` // 1..100
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProficiencyPercent clamps proficiency to 0..100 for display.
func (s *Skill) ProficiencyPercent() int {
	switch {
	case s.Proficiency < 0:
		return 0
	case s.Proficiency > 100:
		return 100
	default:
		return s.Proficiency
	}
}

// splitAndTrim splits s by sep and trims whitespace from each element.
func splitAndTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
