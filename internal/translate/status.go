// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translate

import (
	"context"
	"fmt"

	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/store"
)

// Per-language translation states shown as badges in admin list views.
const (
	StateSource  = "source"  // the default-language field set, the ground truth
	StateReady   = "ready"   // a translation exists for this language
	StatePending = "pending" // no translation yet, none attempted
	StateFailed  = "failed"  // the last automatic attempt failed
	StateMissing = "missing" // the default-language field set itself is absent
)

// statusErrorMax bounds failure reasons in status badges.
const statusErrorMax = 120

// LanguageStatus is one language's translation state for one entity.
type LanguageStatus struct {
	Language string `json:"language"`
	State    string `json:"state"`
	// Manual marks a translation the pipeline will not overwrite. A field
	// set with no record at all also reads as manual: its provenance is
	// unknown, and the safe assumption is that a human wrote it.
	Manual bool   `json:"manual,omitempty"`
	Error  string `json:"error,omitempty"` // truncated failure reason
}

// EntityStatus is the per-language status summary for one entity.
type EntityStatus struct {
	EntityID  int64            `json:"entity_id"`
	Languages []LanguageStatus `json:"languages"`
}

// StatusSummary builds the per-entity, per-language status projection for a
// batch of entities of one type. It is a pure read over field-set presence
// plus translation records: it writes nothing and triggers no translation.
func StatusSummary(ctx context.Context, q *store.Queries, defaultLanguage string, languages []model.Language, entityType string, entityIDs []int64) ([]EntityStatus, error) {
	ops, ok := registry[entityType]
	if !ok {
		return nil, fmt.Errorf("unknown entity type %q", entityType)
	}

	records, err := q.ListTranslationRecordsForEntities(ctx, entityType, entityIDs)
	if err != nil {
		return nil, err
	}
	recordFor := make(map[int64]map[string]model.TranslationRecord, len(entityIDs))
	for _, rec := range records {
		if recordFor[rec.EntityID] == nil {
			recordFor[rec.EntityID] = make(map[string]model.TranslationRecord)
		}
		recordFor[rec.EntityID][rec.LanguageCode] = rec
	}

	out := make([]EntityStatus, 0, len(entityIDs))
	for _, id := range entityIDs {
		present, err := ops.languages(ctx, q, id)
		if err != nil {
			return nil, err
		}
		hasLang := make(map[string]bool, len(present))
		for _, code := range present {
			hasLang[code] = true
		}

		es := EntityStatus{EntityID: id, Languages: make([]LanguageStatus, 0, len(languages))}
		for _, lang := range languages {
			es.Languages = append(es.Languages,
				languageStatus(lang.Code, defaultLanguage, hasLang, recordFor[id]))
		}
		out = append(out, es)
	}
	return out, nil
}

func languageStatus(code, defaultLanguage string, hasLang map[string]bool, records map[string]model.TranslationRecord) LanguageStatus {
	ls := LanguageStatus{Language: code}

	if code == defaultLanguage {
		if hasLang[code] {
			ls.State = StateSource
		} else {
			ls.State = StateMissing
		}
		return ls
	}

	rec, hasRecord := records[code]
	switch {
	case hasRecord && rec.Status == model.TranslationStatusFailed:
		ls.State = StateFailed
		ls.Error = rec.TruncatedError(statusErrorMax)
	case hasLang[code]:
		ls.State = StateReady
		// A translation without a record, or with a manual record, is
		// human-owned.
		ls.Manual = !hasRecord || rec.IsManual()
	default:
		ls.State = StatePending
	}
	return ls
}
