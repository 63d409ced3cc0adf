// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/olegiv/folio-go/internal/model"
)

const postColumns = "id, slug, status, author_id, tags, created_at, updated_at, published_at, scheduled_at"

func scanPost(row interface{ Scan(...any) error }) (model.Post, error) {
	var p model.Post
	err := row.Scan(&p.ID, &p.Slug, &p.Status, &p.AuthorID, &p.Tags,
		&p.CreatedAt, &p.UpdatedAt, &p.PublishedAt, &p.ScheduledAt)
	return p, err
}

func (q *Queries) queryPosts(ctx context.Context, query string, args ...any) ([]model.Post, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListPostsParams holds pagination for ListPosts.
type ListPostsParams struct {
	Limit  int64
	Offset int64
}

// ListPosts returns posts newest first, paginated.
func (q *Queries) ListPosts(ctx context.Context, arg ListPostsParams) ([]model.Post, error) {
	return q.queryPosts(ctx,
		"SELECT "+postColumns+" FROM posts ORDER BY created_at DESC LIMIT ? OFFSET ?",
		arg.Limit, arg.Offset)
}

// ListPublishedPosts returns published posts newest first, paginated.
func (q *Queries) ListPublishedPosts(ctx context.Context, arg ListPostsParams) ([]model.Post, error) {
	return q.queryPosts(ctx,
		`SELECT `+postColumns+` FROM posts WHERE status = 'published'
		 ORDER BY published_at DESC LIMIT ? OFFSET ?`,
		arg.Limit, arg.Offset)
}

// CountPosts returns the total number of posts.
func (q *Queries) CountPosts(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM posts").Scan(&n)
	return n, err
}

// CountPublishedPosts returns the number of published posts.
func (q *Queries) CountPublishedPosts(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM posts WHERE status = 'published'").Scan(&n)
	return n, err
}

// GetPost fetches a post by primary key.
func (q *Queries) GetPost(ctx context.Context, id int64) (model.Post, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+postColumns+" FROM posts WHERE id = ?", id)
	return scanPost(row)
}

// GetPostBySlug fetches a post by slug.
func (q *Queries) GetPostBySlug(ctx context.Context, slug string) (model.Post, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+postColumns+" FROM posts WHERE slug = ?", slug)
	return scanPost(row)
}

// CreatePostParams holds parameters for CreatePost.
type CreatePostParams struct {
	Slug        string
	Status      string
	AuthorID    int64
	Tags        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	PublishedAt sql.NullTime
	ScheduledAt sql.NullTime
}

// CreatePost inserts a new post and returns it.
func (q *Queries) CreatePost(ctx context.Context, arg CreatePostParams) (model.Post, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO posts (slug, status, author_id, tags, created_at, updated_at, published_at, scheduled_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.Slug, arg.Status, arg.AuthorID, arg.Tags, arg.CreatedAt,
		arg.UpdatedAt, arg.PublishedAt, arg.ScheduledAt)
	if err != nil {
		return model.Post{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Post{}, err
	}
	return q.GetPost(ctx, id)
}

// UpdatePostParams holds parameters for UpdatePost.
type UpdatePostParams struct {
	ID          int64
	Slug        string
	Status      string
	Tags        string
	UpdatedAt   time.Time
	PublishedAt sql.NullTime
	ScheduledAt sql.NullTime
}

// UpdatePost updates a post's language-independent fields.
func (q *Queries) UpdatePost(ctx context.Context, arg UpdatePostParams) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE posts SET slug = ?, status = ?, tags = ?, updated_at = ?,
		 published_at = ?, scheduled_at = ? WHERE id = ?`,
		arg.Slug, arg.Status, arg.Tags, arg.UpdatedAt,
		arg.PublishedAt, arg.ScheduledAt, arg.ID)
	return err
}

// DeletePost removes a post; translations cascade.
func (q *Queries) DeletePost(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, "DELETE FROM posts WHERE id = ?", id)
	return err
}

// ListScheduledPostsDue returns scheduled posts whose publish time has passed.
func (q *Queries) ListScheduledPostsDue(ctx context.Context, now time.Time) ([]model.Post, error) {
	return q.queryPosts(ctx,
		`SELECT `+postColumns+` FROM posts
		 WHERE status = 'scheduled' AND scheduled_at IS NOT NULL AND scheduled_at <= ?`,
		now)
}

// PublishScheduledPost flips a due scheduled post to published.
func (q *Queries) PublishScheduledPost(ctx context.Context, id int64, now time.Time) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE posts SET status = 'published', published_at = ?, scheduled_at = NULL,
		 updated_at = ? WHERE id = ?`,
		now, now, id)
	return err
}

// GetPostTranslation fetches one language's field set for a post.
func (q *Queries) GetPostTranslation(ctx context.Context, postID int64, lang string) (model.PostTranslation, error) {
	var t model.PostTranslation
	err := q.db.QueryRowContext(ctx,
		`SELECT id, post_id, language_code, title, excerpt, content
		 FROM post_translations WHERE post_id = ? AND language_code = ?`,
		postID, lang).Scan(
		&t.ID, &t.PostID, &t.LanguageCode, &t.Title, &t.Excerpt, &t.Content)
	return t, err
}

// ListPostTranslations returns every language's field set for a post.
func (q *Queries) ListPostTranslations(ctx context.Context, postID int64) ([]model.PostTranslation, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, post_id, language_code, title, excerpt, content
		 FROM post_translations WHERE post_id = ? ORDER BY language_code`,
		postID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.PostTranslation
	for rows.Next() {
		var t model.PostTranslation
		if err := rows.Scan(&t.ID, &t.PostID, &t.LanguageCode, &t.Title,
			&t.Excerpt, &t.Content); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// UpsertPostTranslationParams holds one language's full field set.
type UpsertPostTranslationParams struct {
	PostID       int64
	LanguageCode string
	Title        string
	Excerpt      string
	Content      string
}

// UpsertPostTranslation inserts or fully replaces one language's field set.
func (q *Queries) UpsertPostTranslation(ctx context.Context, arg UpsertPostTranslationParams) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO post_translations (post_id, language_code, title, excerpt, content)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(post_id, language_code) DO UPDATE SET
		 title = excluded.title, excerpt = excluded.excerpt, content = excluded.content`,
		arg.PostID, arg.LanguageCode, arg.Title, arg.Excerpt, arg.Content)
	return err
}
