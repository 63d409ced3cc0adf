// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/olegiv/folio-go/internal/middleware"
	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/seo"
	"github.com/olegiv/folio-go/internal/store"
	"github.com/olegiv/folio-go/internal/util"
)

// PublicPostResponse merges a post row with one language's field set.
// Content is rendered to sanitized HTML; list responses omit it.
type PublicPostResponse struct {
	ID          int64      `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt"`
	ContentHTML string     `json:"content_html,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Language    string     `json:"language"`
	SEO         *SEOData   `json:"seo,omitempty"`
}

// PublicListPosts returns published posts newest first, paginated.
func (h *Handler) PublicListPosts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := middleware.GetLanguageCode(r)

	page := ParsePageParam(r)
	perPage := ParsePerPageParam(r, 10, 50)

	posts, err := h.queries.ListPublishedPosts(ctx, store.ListPostsParams{
		Limit:  int64(perPage),
		Offset: int64((page - 1) * perPage),
	})
	if err != nil {
		WriteInternalError(w, "Failed to retrieve posts")
		return
	}
	total, err := h.queries.CountPublishedPosts(ctx)
	if err != nil {
		WriteInternalError(w, "Failed to retrieve posts")
		return
	}

	out := make([]PublicPostResponse, 0, len(posts))
	for _, p := range posts {
		tr, usedLang, err := h.postTranslation(ctx, p.ID, lang)
		if err != nil {
			WriteInternalError(w, "Failed to retrieve posts")
			return
		}
		resp := postToPublic(p, tr, usedLang)
		resp.ContentHTML = ""
		out = append(out, resp)
	}

	WriteSuccess(w, out, pageMeta(total, page, perPage))
}

// PublicGetPost returns one published post by slug, content rendered to
// sanitized HTML.
func (h *Handler) PublicGetPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	slug := ParseSlugParam(r)
	if !util.IsValidSlug(slug) {
		WriteNotFound(w, "Post not found")
		return
	}
	post, err := h.queries.GetPostBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Post not found")
			return
		}
		WriteInternalError(w, "Failed to retrieve post")
		return
	}
	// Drafts and scheduled posts stay invisible until published.
	if !post.IsPublished() {
		WriteNotFound(w, "Post not found")
		return
	}

	lang := middleware.GetLanguageCode(r)
	tr, usedLang, err := h.postTranslation(ctx, post.ID, lang)
	if err != nil {
		WriteInternalError(w, "Failed to retrieve post")
		return
	}

	resp := postToPublic(post, tr, usedLang)
	resp.SEO = h.articleSEO(ctx, &seo.ContentData{
		Title:       tr.Title,
		Summary:     tr.Excerpt,
		Body:        resp.ContentHTML,
		Path:        "/posts/" + post.Slug,
		PublishedAt: resp.PublishedAt,
		AuthorName:  h.authorName(ctx, usedLang),
	}, post.UpdatedAt)
	WriteSuccess(w, resp, nil)
}

func postToPublic(p model.Post, tr model.PostTranslation, lang string) PublicPostResponse {
	resp := PublicPostResponse{
		ID:       p.ID,
		Slug:     p.Slug,
		Title:    tr.Title,
		Excerpt:  tr.Excerpt,
		Tags:     p.TagsList(),
		Language: lang,
	}
	if tr.Content != "" {
		resp.ContentHTML = renderMarkdown(tr.Content)
	}
	if p.PublishedAt.Valid {
		t := p.PublishedAt.Time
		resp.PublishedAt = &t
	}
	return resp
}

func (h *Handler) postTranslation(ctx context.Context, postID int64, lang string) (model.PostTranslation, string, error) {
	tr, err := h.queries.GetPostTranslation(ctx, postID, lang)
	if err == nil {
		return tr, lang, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return model.PostTranslation{}, "", err
	}

	defaultLang, err := h.defaultLanguage(ctx)
	if err != nil {
		return model.PostTranslation{}, "", err
	}
	if defaultLang == lang {
		return model.PostTranslation{}, lang, nil
	}
	tr, err = h.queries.GetPostTranslation(ctx, postID, defaultLang)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.PostTranslation{}, defaultLang, nil
		}
		return model.PostTranslation{}, "", err
	}
	return tr, defaultLang, nil
}

// AdminPostResponse is a post with every language's field set.
type AdminPostResponse struct {
	Post         model.Post              `json:"post"`
	Translations []model.PostTranslation `json:"translations"`
}

// AdminListPosts returns all posts newest first, paginated.
func (h *Handler) AdminListPosts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page := ParsePageParam(r)
	perPage := ParsePerPageParam(r, 20, 100)

	posts, err := h.queries.ListPosts(ctx, store.ListPostsParams{
		Limit:  int64(perPage),
		Offset: int64((page - 1) * perPage),
	})
	if err != nil {
		WriteInternalError(w, "Failed to retrieve posts")
		return
	}
	total, err := h.queries.CountPosts(ctx)
	if err != nil {
		WriteInternalError(w, "Failed to retrieve posts")
		return
	}

	WriteSuccess(w, posts, pageMeta(total, page, perPage))
}

// AdminGetPost returns one post with its field sets.
func (h *Handler) AdminGetPost(w http.ResponseWriter, r *http.Request) {
	post, ok := requireEntityByID(w, r, "post", func(id int64) (model.Post, error) {
		return h.queries.GetPost(r.Context(), id)
	})
	if !ok {
		return
	}

	translations, err := h.queries.ListPostTranslations(r.Context(), post.ID)
	if err != nil {
		WriteInternalError(w, "Failed to retrieve post")
		return
	}
	WriteSuccess(w, AdminPostResponse{Post: post, Translations: translations}, nil)
}

// SavePostRequest creates or updates a post. Language selects which field
// set the translatable fields land in; empty means the site default.
type SavePostRequest struct {
	Slug        string     `json:"slug"`
	Status      string     `json:"status"`
	Tags        string     `json:"tags"`
	ScheduledAt *time.Time `json:"scheduled_at"`

	Language string `json:"language"`
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt"`
	Content  string `json:"content"`
}

func (h *Handler) validatePostRequest(req *SavePostRequest) map[string]string {
	fieldErrors := map[string]string{}
	if req.Title == "" {
		fieldErrors["title"] = "Title is required"
	}
	if req.Slug == "" {
		req.Slug = util.Slugify(req.Title)
	}
	if !util.IsValidSlug(req.Slug) {
		fieldErrors["slug"] = "Slug may contain lowercase letters, digits and hyphens"
	}
	if req.Status == "" {
		req.Status = model.PostStatusDraft
	}
	switch req.Status {
	case model.PostStatusDraft, model.PostStatusPublished:
	case model.PostStatusScheduled:
		if req.ScheduledAt == nil || !req.ScheduledAt.After(time.Now()) {
			fieldErrors["scheduled_at"] = "Scheduled time must be in the future"
		}
	default:
		fieldErrors["status"] = "Status must be draft, scheduled or published"
	}
	if len(fieldErrors) > 0 {
		return fieldErrors
	}
	return nil
}

// AdminCreatePost creates a post and its first field set.
func (h *Handler) AdminCreatePost(w http.ResponseWriter, r *http.Request) {
	var req SavePostRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fieldErrors := h.validatePostRequest(&req); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	ctx := r.Context()
	lang, err := h.resolveSaveLanguage(ctx, req.Language)
	if err != nil {
		writeLanguageError(w, err)
		return
	}

	if _, err := h.queries.GetPostBySlug(ctx, req.Slug); err == nil {
		WriteValidationError(w, map[string]string{"slug": "Slug already exists"})
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		WriteInternalError(w, "Failed to create post")
		return
	}

	now := time.Now()
	params := store.CreatePostParams{
		Slug:      req.Slug,
		Status:    req.Status,
		AuthorID:  middleware.GetUserID(r),
		Tags:      req.Tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Status == model.PostStatusPublished {
		params.PublishedAt = sql.NullTime{Time: now, Valid: true}
	}
	params.ScheduledAt = util.NullTimeFromPtr(req.ScheduledAt)

	post, err := h.queries.CreatePost(ctx, params)
	if err != nil {
		WriteInternalError(w, "Failed to create post")
		return
	}

	if err := h.queries.UpsertPostTranslation(ctx, store.UpsertPostTranslationParams{
		PostID:       post.ID,
		LanguageCode: lang,
		Title:        req.Title,
		Excerpt:      req.Excerpt,
		Content:      req.Content,
	}); err != nil {
		WriteInternalError(w, "Failed to create post")
		return
	}

	h.afterTranslatableSave(ctx, model.EntityTypePost, post.ID, lang)

	_ = h.events.LogContentEvent(ctx, model.EventLevelInfo, "Post created: "+post.Slug,
		middleware.GetUserIDPtr(r), map[string]any{"post_id": post.ID, "language": lang})

	WriteCreated(w, post)
}

// AdminUpdatePost updates a post and one language's field set.
func (h *Handler) AdminUpdatePost(w http.ResponseWriter, r *http.Request) {
	post, ok := requireEntityByID(w, r, "post", func(id int64) (model.Post, error) {
		return h.queries.GetPost(r.Context(), id)
	})
	if !ok {
		return
	}

	var req SavePostRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fieldErrors := h.validatePostRequest(&req); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	ctx := r.Context()
	lang, err := h.resolveSaveLanguage(ctx, req.Language)
	if err != nil {
		writeLanguageError(w, err)
		return
	}

	if req.Slug != post.Slug {
		if _, err := h.queries.GetPostBySlug(ctx, req.Slug); err == nil {
			WriteValidationError(w, map[string]string{"slug": "Slug already exists"})
			return
		} else if !errors.Is(err, sql.ErrNoRows) {
			WriteInternalError(w, "Failed to update post")
			return
		}
	}

	now := time.Now()
	params := store.UpdatePostParams{
		ID:          post.ID,
		Slug:        req.Slug,
		Status:      req.Status,
		Tags:        req.Tags,
		UpdatedAt:   now,
		PublishedAt: post.PublishedAt,
	}
	// First transition to published stamps the time; unpublishing clears it.
	switch req.Status {
	case model.PostStatusPublished:
		if !params.PublishedAt.Valid {
			params.PublishedAt = sql.NullTime{Time: now, Valid: true}
		}
	default:
		params.PublishedAt = sql.NullTime{}
	}
	params.ScheduledAt = util.NullTimeFromPtr(req.ScheduledAt)

	if err := h.queries.UpdatePost(ctx, params); err != nil {
		WriteInternalError(w, "Failed to update post")
		return
	}

	if err := h.queries.UpsertPostTranslation(ctx, store.UpsertPostTranslationParams{
		PostID:       post.ID,
		LanguageCode: lang,
		Title:        req.Title,
		Excerpt:      req.Excerpt,
		Content:      req.Content,
	}); err != nil {
		WriteInternalError(w, "Failed to update post")
		return
	}

	h.afterTranslatableSave(ctx, model.EntityTypePost, post.ID, lang)

	_ = h.events.LogContentEvent(ctx, model.EventLevelInfo, "Post updated: "+req.Slug,
		middleware.GetUserIDPtr(r), map[string]any{"post_id": post.ID, "language": lang})

	updated, err := h.queries.GetPost(ctx, post.ID)
	if err != nil {
		WriteInternalError(w, "Failed to update post")
		return
	}
	WriteSuccess(w, updated, nil)
}

// AdminDeletePost removes a post, its field sets and translation records.
func (h *Handler) AdminDeletePost(w http.ResponseWriter, r *http.Request) {
	post, ok := requireEntityByID(w, r, "post", func(id int64) (model.Post, error) {
		return h.queries.GetPost(r.Context(), id)
	})
	if !ok {
		return
	}

	ctx := r.Context()
	if err := h.queries.DeletePost(ctx, post.ID); err != nil {
		WriteInternalError(w, "Failed to delete post")
		return
	}
	if err := h.queries.DeleteTranslationRecordsForEntity(ctx, model.EntityTypePost, post.ID); err != nil {
		h.logger.Error("delete translation records", "error", err, "post_id", post.ID)
	}

	_ = h.events.LogContentEvent(ctx, model.EventLevelInfo, "Post deleted: "+post.Slug,
		middleware.GetUserIDPtr(r), map[string]any{"post_id": post.ID})

	h.invalidateSitemapCache(ctx)
	WriteNoContent(w)
}
