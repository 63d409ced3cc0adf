// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translate

import (
	"context"

	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/store"
)

// FieldSpec declares one auto-translatable field and how the provider should
// treat its content.
type FieldSpec struct {
	Name   string
	Format Format
}

// entityOps binds one entity type tag to its translatable fields and the
// store operations the orchestrator needs: existence check, source-language
// field read, per-language field-set upsert, and the list of languages that
// already have a field set.
type entityOps struct {
	fields    []FieldSpec
	exists    func(ctx context.Context, q *store.Queries, id int64) error
	source    func(ctx context.Context, q *store.Queries, id int64, lang string) (map[string]string, error)
	upsert    func(ctx context.Context, q *store.Queries, id int64, lang string, vals map[string]string) error
	languages func(ctx context.Context, q *store.Queries, id int64) ([]string, error)
}

// registry is the static mapping from entity type tag to its operations.
// The field set per type is explicit and ordered; adding a translatable
// entity means adding exactly one entry here.
var registry = map[string]entityOps{
	model.EntityTypeProfile: {
		fields: []FieldSpec{
			{Name: "name", Format: FormatText},
			{Name: "title", Format: FormatText},
			{Name: "bio", Format: FormatHTML},
			{Name: "location", Format: FormatText},
		},
		exists: func(ctx context.Context, q *store.Queries, id int64) error {
			_, err := q.GetProfileByID(ctx, id)
			return err
		},
		source: func(ctx context.Context, q *store.Queries, id int64, lang string) (map[string]string, error) {
			t, err := q.GetProfileTranslation(ctx, id, lang)
			if err != nil {
				return nil, err
			}
			return map[string]string{
				"name": t.Name, "title": t.Title, "bio": t.Bio, "location": t.Location,
			}, nil
		},
		upsert: func(ctx context.Context, q *store.Queries, id int64, lang string, vals map[string]string) error {
			return q.UpsertProfileTranslation(ctx, store.UpsertProfileTranslationParams{
				ProfileID:    id,
				LanguageCode: lang,
				Name:         vals["name"],
				Title:        vals["title"],
				Bio:          vals["bio"],
				Location:     vals["location"],
			})
		},
		languages: func(ctx context.Context, q *store.Queries, id int64) ([]string, error) {
			ts, err := q.ListProfileTranslations(ctx, id)
			if err != nil {
				return nil, err
			}
			codes := make([]string, len(ts))
			for i, t := range ts {
				codes[i] = t.LanguageCode
			}
			return codes, nil
		},
	},
	model.EntityTypeProject: {
		fields: []FieldSpec{
			{Name: "title", Format: FormatText},
			{Name: "description", Format: FormatText},
			{Name: "detailed_description", Format: FormatHTML},
		},
		exists: func(ctx context.Context, q *store.Queries, id int64) error {
			_, err := q.GetProject(ctx, id)
			return err
		},
		source: func(ctx context.Context, q *store.Queries, id int64, lang string) (map[string]string, error) {
			t, err := q.GetProjectTranslation(ctx, id, lang)
			if err != nil {
				return nil, err
			}
			return map[string]string{
				"title":                t.Title,
				"description":          t.Description,
				"detailed_description": t.DetailedDescription,
			}, nil
		},
		upsert: func(ctx context.Context, q *store.Queries, id int64, lang string, vals map[string]string) error {
			return q.UpsertProjectTranslation(ctx, store.UpsertProjectTranslationParams{
				ProjectID:           id,
				LanguageCode:        lang,
				Title:               vals["title"],
				Description:         vals["description"],
				DetailedDescription: vals["detailed_description"],
			})
		},
		languages: func(ctx context.Context, q *store.Queries, id int64) ([]string, error) {
			ts, err := q.ListProjectTranslations(ctx, id)
			if err != nil {
				return nil, err
			}
			codes := make([]string, len(ts))
			for i, t := range ts {
				codes[i] = t.LanguageCode
			}
			return codes, nil
		},
	},
	model.EntityTypePost: {
		fields: []FieldSpec{
			{Name: "title", Format: FormatText},
			{Name: "excerpt", Format: FormatText},
			{Name: "content", Format: FormatText}, // markdown source, not HTML
		},
		exists: func(ctx context.Context, q *store.Queries, id int64) error {
			_, err := q.GetPost(ctx, id)
			return err
		},
		source: func(ctx context.Context, q *store.Queries, id int64, lang string) (map[string]string, error) {
			t, err := q.GetPostTranslation(ctx, id, lang)
			if err != nil {
				return nil, err
			}
			return map[string]string{
				"title": t.Title, "excerpt": t.Excerpt, "content": t.Content,
			}, nil
		},
		upsert: func(ctx context.Context, q *store.Queries, id int64, lang string, vals map[string]string) error {
			return q.UpsertPostTranslation(ctx, store.UpsertPostTranslationParams{
				PostID:       id,
				LanguageCode: lang,
				Title:        vals["title"],
				Excerpt:      vals["excerpt"],
				Content:      vals["content"],
			})
		},
		languages: func(ctx context.Context, q *store.Queries, id int64) ([]string, error) {
			ts, err := q.ListPostTranslations(ctx, id)
			if err != nil {
				return nil, err
			}
			codes := make([]string, len(ts))
			for i, t := range ts {
				codes[i] = t.LanguageCode
			}
			return codes, nil
		},
	},
	model.EntityTypeExperience: {
		fields: []FieldSpec{
			{Name: "company", Format: FormatText},
			{Name: "role", Format: FormatText},
			{Name: "description", Format: FormatHTML},
		},
		exists: func(ctx context.Context, q *store.Queries, id int64) error {
			_, err := q.GetExperience(ctx, id)
			return err
		},
		source: func(ctx context.Context, q *store.Queries, id int64, lang string) (map[string]string, error) {
			t, err := q.GetExperienceTranslation(ctx, id, lang)
			if err != nil {
				return nil, err
			}
			return map[string]string{
				"company": t.Company, "role": t.Role, "description": t.Description,
			}, nil
		},
		upsert: func(ctx context.Context, q *store.Queries, id int64, lang string, vals map[string]string) error {
			return q.UpsertExperienceTranslation(ctx, store.UpsertExperienceTranslationParams{
				ExperienceID: id,
				LanguageCode: lang,
				Company:      vals["company"],
				Role:         vals["role"],
				Description:  vals["description"],
			})
		},
		languages: func(ctx context.Context, q *store.Queries, id int64) ([]string, error) {
			ts, err := q.ListExperienceTranslations(ctx, id)
			if err != nil {
				return nil, err
			}
			codes := make([]string, len(ts))
			for i, t := range ts {
				codes[i] = t.LanguageCode
			}
			return codes, nil
		},
	},
	model.EntityTypeEducation: {
		fields: []FieldSpec{
			{Name: "institution", Format: FormatText},
			{Name: "degree", Format: FormatText},
			{Name: "field_of_study", Format: FormatText},
			{Name: "description", Format: FormatHTML},
		},
		exists: func(ctx context.Context, q *store.Queries, id int64) error {
			_, err := q.GetEducation(ctx, id)
			return err
		},
		source: func(ctx context.Context, q *store.Queries, id int64, lang string) (map[string]string, error) {
			t, err := q.GetEducationTranslation(ctx, id, lang)
			if err != nil {
				return nil, err
			}
			return map[string]string{
				"institution":    t.Institution,
				"degree":         t.Degree,
				"field_of_study": t.FieldOfStudy,
				"description":    t.Description,
			}, nil
		},
		upsert: func(ctx context.Context, q *store.Queries, id int64, lang string, vals map[string]string) error {
			return q.UpsertEducationTranslation(ctx, store.UpsertEducationTranslationParams{
				EducationID:  id,
				LanguageCode: lang,
				Institution:  vals["institution"],
				Degree:       vals["degree"],
				FieldOfStudy: vals["field_of_study"],
				Description:  vals["description"],
			})
		},
		languages: func(ctx context.Context, q *store.Queries, id int64) ([]string, error) {
			ts, err := q.ListEducationTranslations(ctx, id)
			if err != nil {
				return nil, err
			}
			codes := make([]string, len(ts))
			for i, t := range ts {
				codes[i] = t.LanguageCode
			}
			return codes, nil
		},
	},
}

// Fields returns the declared translatable fields for an entity type. The
// second return is false for unregistered types.
func Fields(entityType string) ([]FieldSpec, bool) {
	ops, ok := registry[entityType]
	if !ok {
		return nil, false
	}
	return ops.fields, true
}

// Registered reports whether an entity type participates in automatic
// translation.
func Registered(entityType string) bool {
	_, ok := registry[entityType]
	return ok
}
