// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"newsdesk/internal/dbx"
	"newsdesk/internal/imageurl"
	"newsdesk/internal/models"
)

// PostStore answers filtered, paginated post queries and handles post
// writes. Reads go through the dbx executor so result envelopes from any
// client generation normalize to the same row form; writes need the
// transactional *sql.DB directly.
type PostStore struct {
	db   *sql.DB
	exec dbx.Executor
}

// NewPostStore returns a PostStore backed by the given database.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db, exec: &dbx.SQLExecutor{DB: db}}
}

// NewPostStoreWithExecutor overrides the read executor. Used by legacy
// client adapters and tests.
func NewPostStoreWithExecutor(db *sql.DB, exec dbx.Executor) *PostStore {
	return &PostStore{db: db, exec: exec}
}

const postColumns = `id, title, content, excerpt, category_id, sub_category_id, image_url, status, author_id, created_at, views`

// PostList is one page of results plus the unpaginated match total.
type PostList struct {
	Posts []models.Post
	Total int
}

// List returns the posts matching the filter, newest first, with the total
// match count and each post's tag id set. A page past the end of the
// result set yields an empty slice with the true total.
func (s *PostStore) List(ctx context.Context, f PostFilter) (PostList, error) {
	where, args := f.WhereClause(1)
	limit, offset := f.Limits()

	query := fmt.Sprintf(
		`SELECT `+postColumns+` FROM posts %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2,
	)
	raw, err := s.exec.Execute(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return PostList{}, fmt.Errorf("list posts: %w", err)
	}

	rows := dbx.Normalize(raw)
	posts := make([]models.Post, 0, len(rows))
	for _, r := range rows {
		posts = append(posts, postFromRow(r))
	}

	total, err := s.Count(ctx, f)
	if err != nil {
		return PostList{}, err
	}

	if err := s.attachTags(ctx, posts); err != nil {
		return PostList{}, err
	}

	return PostList{Posts: posts, Total: total}, nil
}

// Count returns the number of posts matching the filter, ignoring
// pagination.
func (s *PostStore) Count(ctx context.Context, f PostFilter) (int, error) {
	where, args := f.WhereClause(1)
	raw, err := s.exec.Execute(ctx, `SELECT COUNT(*) AS count FROM posts `+where, args...)
	if err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	rows := dbx.Normalize(raw)
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Int("count"), nil
}

// FindByID retrieves a single post with its tags. Returns nil if not found.
func (s *PostStore) FindByID(ctx context.Context, id int64) (*models.Post, error) {
	raw, err := s.exec.Execute(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	rows := dbx.Normalize(raw)
	if len(rows) == 0 {
		return nil, nil
	}

	post := postFromRow(rows[0])
	posts := []models.Post{post}
	if err := s.attachTags(ctx, posts); err != nil {
		return nil, err
	}
	return &posts[0], nil
}

// IncrementViews bumps the view counter atomically in the database; view
// counts only ever increase.
func (s *PostStore) IncrementViews(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `UPDATE posts SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	return nil
}

// TotalViews returns the sum of all post view counters.
func (s *PostStore) TotalViews(ctx context.Context) (int, error) {
	raw, err := s.exec.Execute(ctx, `SELECT COALESCE(SUM(views), 0) AS total FROM posts`)
	if err != nil {
		return 0, fmt.Errorf("total views: %w", err)
	}
	rows := dbx.Normalize(raw)
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Int("total"), nil
}

// Create inserts a new post together with its tag set and returns it.
// The image reference is canonicalized before persisting.
func (s *PostStore) Create(ctx context.Context, p *models.Post, tagIDs []int64) (*models.Post, error) {
	if p.Status == "" {
		p.Status = models.PostStatusPublished
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO posts (title, content, excerpt, category_id, sub_category_id,
		                   image_url, status, author_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, p.Title, p.Content, p.Excerpt, p.CategoryID, p.SubCategoryID,
		imageurl.NormalizePtr(p.ImageURL), p.Status, p.AuthorID,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	if err := replaceTags(ctx, tx, id, tagIDs); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create post: %w", err)
	}

	return s.FindByID(ctx, id)
}

// Update replaces a post wholesale, including its tag association set
// (delete-all, insert-new).
func (s *PostStore) Update(ctx context.Context, p *models.Post, tagIDs []int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE posts SET
			title = $1, content = $2, excerpt = $3, category_id = $4,
			sub_category_id = $5, image_url = $6, status = $7, author_id = $8
		WHERE id = $9
	`, p.Title, p.Content, p.Excerpt, p.CategoryID, p.SubCategoryID,
		imageurl.NormalizePtr(p.ImageURL), p.Status, p.AuthorID, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}

	if err := replaceTags(ctx, tx, p.ID, tagIDs); err != nil {
		return err
	}
	return tx.Commit()
}

// Delete removes a post row entirely. Query-level soft deletion is the
// preferred path (status flip via Update); this serves the literal delete
// endpoint. The post_tags rows go with it via ON DELETE CASCADE.
func (s *PostStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// replaceTags rewrites a post's tag association set inside the caller's
// transaction.
func replaceTags(ctx context.Context, tx *sql.Tx, postID int64, tagIDs []int64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM post_tags WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("clear post tags: %w", err)
	}
	for _, tagID := range tagIDs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, postID, tagID)
		if err != nil {
			return fmt.Errorf("insert post tag %d: %w", tagID, err)
		}
	}
	return nil
}

// attachTags fills TagIDs for a page of posts with a single join query.
func (s *PostStore) attachTags(ctx context.Context, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]int64, len(posts))
	byID := make(map[int64]int, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
		byID[posts[i].ID] = i
	}

	raw, err := s.exec.Execute(ctx, `
		SELECT post_id, tag_id FROM post_tags
		WHERE post_id = ANY($1)
		ORDER BY post_id, tag_id
	`, ids)
	if err != nil {
		return fmt.Errorf("attach tags: %w", err)
	}

	for _, r := range dbx.Normalize(raw) {
		if i, ok := byID[r.Int64("post_id")]; ok {
			posts[i].TagIDs = append(posts[i].TagIDs, r.Int64("tag_id"))
		}
	}
	return nil
}

// postFromRow maps a normalized row to the Post model, canonicalizing the
// stored image reference on the way out for rows written before the
// normalization rule existed.
func postFromRow(r dbx.Row) models.Post {
	return models.Post{
		ID:            r.Int64("id"),
		Title:         r.String("title"),
		Content:       r.NullString("content"),
		Excerpt:       r.NullString("excerpt"),
		CategoryID:    r.NullInt64("category_id"),
		SubCategoryID: r.NullInt64("sub_category_id"),
		ImageURL:      imageurl.NormalizePtr(r.NullString("image_url")),
		Status:        models.PostStatus(r.String("status")),
		AuthorID:      r.UUID("author_id"),
		CreatedAt:     r.Time("created_at"),
		Views:         r.Int("views"),
		TagIDs:        []int64{},
	}
}
