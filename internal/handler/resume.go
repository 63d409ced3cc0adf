// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/olegiv/folio-go/internal/cache"
	"github.com/olegiv/folio-go/internal/middleware"
	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/store"
	"github.com/olegiv/folio-go/internal/util"
)

// PublicExperienceResponse merges an experience row with one language's
// field set.
type PublicExperienceResponse struct {
	ID          int64      `json:"id"`
	Company     string     `json:"company"`
	Role        string     `json:"role"`
	Description string     `json:"description,omitempty"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Current     bool       `json:"current"`
}

// PublicEducationResponse merges an education row with one language's
// field set.
type PublicEducationResponse struct {
	ID           int64      `json:"id"`
	Institution  string     `json:"institution"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"field_of_study,omitempty"`
	Description  string     `json:"description,omitempty"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      *time.Time `json:"end_date,omitempty"`
}

// PublicSkillResponse is a CV skill entry.
type PublicSkillResponse struct {
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	Proficiency int    `json:"proficiency"`
}

// PublicCVResponse is the whole CV in one language.
type PublicCVResponse struct {
	Experiences []PublicExperienceResponse `json:"experiences"`
	Educations  []PublicEducationResponse  `json:"educations"`
	Skills      []PublicSkillResponse      `json:"skills"`
	Language    string                     `json:"language"`
}

// PublicCV returns experiences, educations and skills in the negotiated
// language with default-language fallback. Skill names are not translated.
func (h *Handler) PublicCV(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := middleware.GetLanguageCode(r)

	cvKey := cache.NewContext(lang).Key("cv")
	if h.cv != nil {
		if cached, ok := h.cv.Get(ctx, cvKey); ok {
			WriteSuccess(w, *cached, nil)
			return
		}
	}

	defaultLang, err := h.defaultLanguage(ctx)
	if err != nil {
		WriteInternalError(w, "Failed to retrieve CV")
		return
	}

	experiences, err := h.queries.ListExperiences(ctx)
	if err != nil {
		WriteInternalError(w, "Failed to retrieve CV")
		return
	}
	outExp := make([]PublicExperienceResponse, 0, len(experiences))
	for _, e := range experiences {
		tr, err := h.experienceTranslation(ctx, e.ID, lang, defaultLang)
		if err != nil {
			WriteInternalError(w, "Failed to retrieve CV")
			return
		}
		item := PublicExperienceResponse{
			ID:          e.ID,
			Company:     tr.Company,
			Role:        tr.Role,
			Description: tr.Description,
			StartDate:   e.StartDate,
			Current:     e.Current,
		}
		if e.EndDate.Valid {
			t := e.EndDate.Time
			item.EndDate = &t
		}
		outExp = append(outExp, item)
	}

	educations, err := h.queries.ListEducations(ctx)
	if err != nil {
		WriteInternalError(w, "Failed to retrieve CV")
		return
	}
	outEdu := make([]PublicEducationResponse, 0, len(educations))
	for _, e := range educations {
		tr, err := h.educationTranslation(ctx, e.ID, lang, defaultLang)
		if err != nil {
			WriteInternalError(w, "Failed to retrieve CV")
			return
		}
		item := PublicEducationResponse{
			ID:           e.ID,
			Institution:  tr.Institution,
			Degree:       tr.Degree,
			FieldOfStudy: tr.FieldOfStudy,
			Description:  tr.Description,
			StartDate:    e.StartDate,
		}
		if e.EndDate.Valid {
			t := e.EndDate.Time
			item.EndDate = &t
		}
		outEdu = append(outEdu, item)
	}

	skills, err := h.queries.ListSkills(ctx)
	if err != nil {
		WriteInternalError(w, "Failed to retrieve CV")
		return
	}
	outSkills := make([]PublicSkillResponse, 0, len(skills))
	for _, s := range skills {
		outSkills = append(outSkills, PublicSkillResponse{
			Name:        s.Name,
			Category:    s.Category,
			Proficiency: s.ProficiencyPercent(),
		})
	}

	out := PublicCVResponse{
		Experiences: outExp,
		Educations:  outEdu,
		Skills:      outSkills,
		Language:    lang,
	}
	if h.cv != nil {
		_ = h.cv.Set(ctx, cvKey, &out)
	}
	WriteSuccess(w, out, nil)
}

func (h *Handler) experienceTranslation(ctx context.Context, id int64, lang, defaultLang string) (model.ExperienceTranslation, error) {
	tr, err := h.queries.GetExperienceTranslation(ctx, id, lang)
	if err == nil {
		return tr, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return model.ExperienceTranslation{}, err
	}
	if defaultLang == lang {
		return model.ExperienceTranslation{}, nil
	}
	tr, err = h.queries.GetExperienceTranslation(ctx, id, defaultLang)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ExperienceTranslation{}, nil
	}
	return tr, err
}

func (h *Handler) educationTranslation(ctx context.Context, id int64, lang, defaultLang string) (model.EducationTranslation, error) {
	tr, err := h.queries.GetEducationTranslation(ctx, id, lang)
	if err == nil {
		return tr, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return model.EducationTranslation{}, err
	}
	if defaultLang == lang {
		return model.EducationTranslation{}, nil
	}
	tr, err = h.queries.GetEducationTranslation(ctx, id, defaultLang)
	if errors.Is(err, sql.ErrNoRows) {
		return model.EducationTranslation{}, nil
	}
	return tr, err
}

// AdminExperienceResponse is an experience with every language's field set.
type AdminExperienceResponse struct {
	Experience   model.Experience              `json:"experience"`
	Translations []model.ExperienceTranslation `json:"translations"`
}

// AdminListExperiences returns all experiences with their field sets.
func (h *Handler) AdminListExperiences(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	experiences, err := h.queries.ListExperiences(ctx)
	if err != nil {
		WriteInternalError(w, "Failed to retrieve experiences")
		return
	}

	out := make([]AdminExperienceResponse, 0, len(experiences))
	for _, e := range experiences {
		translations, err := h.queries.ListExperienceTranslations(ctx, e.ID)
		if err != nil {
			WriteInternalError(w, "Failed to retrieve experiences")
			return
		}
		out = append(out, AdminExperienceResponse{Experience: e, Translations: translations})
	}
	WriteSuccess(w, out, nil)
}

// SaveExperienceRequest creates or updates an experience entry.
type SaveExperienceRequest struct {
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Current   bool       `json:"current"`
	Position  int        `json:"position"`

	Language    string `json:"language"`
	Company     string `json:"company"`
	Role        string `json:"role"`
	Description string `json:"description"`
}

func validateExperienceRequest(req *SaveExperienceRequest) map[string]string {
	fieldErrors := map[string]string{}
	if req.Company == "" {
		fieldErrors["company"] = "Company is required"
	}
	if req.Role == "" {
		fieldErrors["role"] = "Role is required"
	}
	if req.StartDate.IsZero() {
		fieldErrors["start_date"] = "Start date is required"
	}
	if req.Current && req.EndDate != nil {
		fieldErrors["end_date"] = "A current position cannot have an end date"
	}
	if len(fieldErrors) > 0 {
		return fieldErrors
	}
	return nil
}

// AdminCreateExperience creates an experience entry and its first field set.
func (h *Handler) AdminCreateExperience(w http.ResponseWriter, r *http.Request) {
	var req SaveExperienceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fieldErrors := validateExperienceRequest(&req); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	ctx := r.Context()
	lang, err := h.resolveSaveLanguage(ctx, req.Language)
	if err != nil {
		writeLanguageError(w, err)
		return
	}

	now := time.Now()
	params := store.CreateExperienceParams{
		StartDate: req.StartDate,
		Current:   req.Current,
		Position:  req.Position,
		CreatedAt: now,
		UpdatedAt: now,
	}
	params.EndDate = util.NullTimeFromPtr(req.EndDate)

	experience, err := h.queries.CreateExperience(ctx, params)
	if err != nil {
		WriteInternalError(w, "Failed to create experience")
		return
	}

	if err := h.queries.UpsertExperienceTranslation(ctx, store.UpsertExperienceTranslationParams{
		ExperienceID: experience.ID,
		LanguageCode: lang,
		Company:      req.Company,
		Role:         req.Role,
		Description:  req.Description,
	}); err != nil {
		WriteInternalError(w, "Failed to create experience")
		return
	}

	h.afterTranslatableSave(ctx, model.EntityTypeExperience, experience.ID, lang)

	_ = h.events.LogContentEvent(ctx, model.EventLevelInfo, "Experience created: "+req.Company,
		middleware.GetUserIDPtr(r), map[string]any{"experience_id": experience.ID, "language": lang})

	WriteCreated(w, experience)
}

// AdminUpdateExperience updates an experience entry and one language's
// field set.
func (h *Handler) AdminUpdateExperience(w http.ResponseWriter, r *http.Request) {
	experience, ok := requireEntityByID(w, r, "experience", func(id int64) (model.Experience, error) {
		return h.queries.GetExperience(r.Context(), id)
	})
	if !ok {
		return
	}

	var req SaveExperienceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fieldErrors := validateExperienceRequest(&req); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	ctx := r.Context()
	lang, err := h.resolveSaveLanguage(ctx, req.Language)
	if err != nil {
		writeLanguageError(w, err)
		return
	}

	params := store.UpdateExperienceParams{
		ID:        experience.ID,
		StartDate: req.StartDate,
		Current:   req.Current,
		Position:  req.Position,
		UpdatedAt: time.Now(),
	}
	params.EndDate = util.NullTimeFromPtr(req.EndDate)

	if err := h.queries.UpdateExperience(ctx, params); err != nil {
		WriteInternalError(w, "Failed to update experience")
		return
	}

	if err := h.queries.UpsertExperienceTranslation(ctx, store.UpsertExperienceTranslationParams{
		ExperienceID: experience.ID,
		LanguageCode: lang,
		Company:      req.Company,
		Role:         req.Role,
		Description:  req.Description,
	}); err != nil {
		WriteInternalError(w, "Failed to update experience")
		return
	}

	h.afterTranslatableSave(ctx, model.EntityTypeExperience, experience.ID, lang)

	updated, err := h.queries.GetExperience(ctx, experience.ID)
	if err != nil {
		WriteInternalError(w, "Failed to update experience")
		return
	}
	WriteSuccess(w, updated, nil)
}

// AdminDeleteExperience removes an experience entry and its translation
// records.
func (h *Handler) AdminDeleteExperience(w http.ResponseWriter, r *http.Request) {
	experience, ok := requireEntityByID(w, r, "experience", func(id int64) (model.Experience, error) {
		return h.queries.GetExperience(r.Context(), id)
	})
	if !ok {
		return
	}

	ctx := r.Context()
	if err := h.queries.DeleteExperience(ctx, experience.ID); err != nil {
		WriteInternalError(w, "Failed to delete experience")
		return
	}
	if err := h.queries.DeleteTranslationRecordsForEntity(ctx, model.EntityTypeExperience, experience.ID); err != nil {
		h.logger.Error("delete translation records", "error", err, "experience_id", experience.ID)
	}
	h.invalidateCVCache(ctx)
	WriteNoContent(w)
}

// AdminEducationResponse is an education with every language's field set.
type AdminEducationResponse struct {
	Education    model.Education              `json:"education"`
	Translations []model.EducationTranslation `json:"translations"`
}

// AdminListEducations returns all educations with their field sets.
func (h *Handler) AdminListEducations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	educations, err := h.queries.ListEducations(ctx)
	if err != nil {
		WriteInternalError(w, "Failed to retrieve educations")
		return
	}

	out := make([]AdminEducationResponse, 0, len(educations))
	for _, e := range educations {
		translations, err := h.queries.ListEducationTranslations(ctx, e.ID)
		if err != nil {
			WriteInternalError(w, "Failed to retrieve educations")
			return
		}
		out = append(out, AdminEducationResponse{Education: e, Translations: translations})
	}
	WriteSuccess(w, out, nil)
}

// SaveEducationRequest creates or updates an education entry.
type SaveEducationRequest struct {
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Position  int        `json:"position"`

	Language     string `json:"language"`
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study"`
	Description  string `json:"description"`
}

func validateEducationRequest(req *SaveEducationRequest) map[string]string {
	fieldErrors := map[string]string{}
	if req.Institution == "" {
		fieldErrors["institution"] = "Institution is required"
	}
	if req.StartDate.IsZero() {
		fieldErrors["start_date"] = "Start date is required"
	}
	if len(fieldErrors) > 0 {
		return fieldErrors
	}
	return nil
}

// AdminCreateEducation creates an education entry and its first field set.
func (h *Handler) AdminCreateEducation(w http.ResponseWriter, r *http.Request) {
	var req SaveEducationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fieldErrors := validateEducationRequest(&req); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	ctx := r.Context()
	lang, err := h.resolveSaveLanguage(ctx, req.Language)
	if err != nil {
		writeLanguageError(w, err)
		return
	}

	now := time.Now()
	params := store.CreateEducationParams{
		StartDate: req.StartDate,
		Position:  req.Position,
		CreatedAt: now,
		UpdatedAt: now,
	}
	params.EndDate = util.NullTimeFromPtr(req.EndDate)

	education, err := h.queries.CreateEducation(ctx, params)
	if err != nil {
		WriteInternalError(w, "Failed to create education")
		return
	}

	if err := h.queries.UpsertEducationTranslation(ctx, store.UpsertEducationTranslationParams{
		EducationID:  education.ID,
		LanguageCode: lang,
		Institution:  req.Institution,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		Description:  req.Description,
	}); err != nil {
		WriteInternalError(w, "Failed to create education")
		return
	}

	h.afterTranslatableSave(ctx, model.EntityTypeEducation, education.ID, lang)

	_ = h.events.LogContentEvent(ctx, model.EventLevelInfo, "Education created: "+req.Institution,
		middleware.GetUserIDPtr(r), map[string]any{"education_id": education.ID, "language": lang})

	WriteCreated(w, education)
}

// AdminUpdateEducation updates an education entry and one language's
// field set.
func (h *Handler) AdminUpdateEducation(w http.ResponseWriter, r *http.Request) {
	education, ok := requireEntityByID(w, r, "education", func(id int64) (model.Education, error) {
		return h.queries.GetEducation(r.Context(), id)
	})
	if !ok {
		return
	}

	var req SaveEducationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fieldErrors := validateEducationRequest(&req); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	ctx := r.Context()
	lang, err := h.resolveSaveLanguage(ctx, req.Language)
	if err != nil {
		writeLanguageError(w, err)
		return
	}

	params := store.UpdateEducationParams{
		ID:        education.ID,
		StartDate: req.StartDate,
		Position:  req.Position,
		UpdatedAt: time.Now(),
	}
	params.EndDate = util.NullTimeFromPtr(req.EndDate)

	if err := h.queries.UpdateEducation(ctx, params); err != nil {
		WriteInternalError(w, "Failed to update education")
		return
	}

	if err := h.queries.UpsertEducationTranslation(ctx, store.UpsertEducationTranslationParams{
		EducationID:  education.ID,
		LanguageCode: lang,
		Institution:  req.Institution,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		Description:  req.Description,
	}); err != nil {
		WriteInternalError(w, "Failed to update education")
		return
	}

	h.afterTranslatableSave(ctx, model.EntityTypeEducation, education.ID, lang)

	updated, err := h.queries.GetEducation(ctx, education.ID)
	if err != nil {
		WriteInternalError(w, "Failed to update education")
		return
	}
	WriteSuccess(w, updated, nil)
}

// AdminDeleteEducation removes an education entry and its translation
// records.
func (h *Handler) AdminDeleteEducation(w http.ResponseWriter, r *http.Request) {
	education, ok := requireEntityByID(w, r, "education", func(id int64) (model.Education, error) {
		return h.queries.GetEducation(r.Context(), id)
	})
	if !ok {
		return
	}

	ctx := r.Context()
	if err := h.queries.DeleteEducation(ctx, education.ID); err != nil {
		WriteInternalError(w, "Failed to delete education")
		return
	}
	if err := h.queries.DeleteTranslationRecordsForEntity(ctx, model.EntityTypeEducation, education.ID); err != nil {
		h.logger.Error("delete translation records", "error", err, "education_id", education.ID)
	}
	h.invalidateCVCache(ctx)
	WriteNoContent(w)
}

// AdminListSkills returns all skills in display order.
func (h *Handler) AdminListSkills(w http.ResponseWriter, r *http.Request) {
	skills, err := h.queries.ListSkills(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to retrieve skills")
		return
	}
	WriteSuccess(w, skills, nil)
}

// SaveSkillRequest creates or updates a skill.
type SaveSkillRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Proficiency int    `json:"proficiency"`
	Position    int    `json:"position"`
}

func validateSkillRequest(req *SaveSkillRequest) map[string]string {
	fieldErrors := map[string]string{}
	if req.Name == "" {
		fieldErrors["name"] = "Name is required"
	}
	if req.Proficiency < 0 || req.Proficiency > 100 {
		fieldErrors["proficiency"] = "Proficiency must be between 0 and 100"
	}
	if len(fieldErrors) > 0 {
		return fieldErrors
	}
	return nil
}

// AdminCreateSkill creates a skill.
func (h *Handler) AdminCreateSkill(w http.ResponseWriter, r *http.Request) {
	var req SaveSkillRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fieldErrors := validateSkillRequest(&req); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	id, err := h.queries.CreateSkill(r.Context(), store.CreateSkillParams{
		Name:        req.Name,
		Category:    req.Category,
		Proficiency: req.Proficiency,
		Position:    req.Position,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		WriteInternalError(w, "Failed to create skill")
		return
	}

	h.invalidateCVCache(r.Context())
	WriteCreated(w, map[string]int64{"id": id})
}

// AdminUpdateSkill updates a skill.
func (h *Handler) AdminUpdateSkill(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid skill ID", nil)
		return
	}

	var req SaveSkillRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fieldErrors := validateSkillRequest(&req); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	if err := h.queries.UpdateSkill(r.Context(), store.UpdateSkillParams{
		ID:          id,
		Name:        req.Name,
		Category:    req.Category,
		Proficiency: req.Proficiency,
		Position:    req.Position,
	}); err != nil {
		WriteInternalError(w, "Failed to update skill")
		return
	}
	h.invalidateCVCache(r.Context())
	WriteNoContent(w)
}

// AdminDeleteSkill removes a skill.
func (h *Handler) AdminDeleteSkill(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid skill ID", nil)
		return
	}
	if err := h.queries.DeleteSkill(r.Context(), id); err != nil {
		WriteInternalError(w, "Failed to delete skill")
		return
	}
	h.invalidateCVCache(r.Context())
	WriteNoContent(w)
}
