// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"newsdesk/internal/dbx"
	"newsdesk/internal/imageurl"
	"newsdesk/internal/models"
	"newsdesk/internal/slug"
)

// PageStore manages standalone site pages.
type PageStore struct {
	db   *sql.DB
	exec dbx.Executor
}

// NewPageStore returns a new PageStore.
func NewPageStore(db *sql.DB) *PageStore {
	return &PageStore{db: db, exec: &dbx.SQLExecutor{DB: db}}
}

// NewPageStoreWithExecutor overrides the read executor for legacy client
// adapters and tests.
func NewPageStoreWithExecutor(db *sql.DB, exec dbx.Executor) *PageStore {
	return &PageStore{db: db, exec: exec}
}

const pageColumns = `id, title, content, slug, status,
	card1_title, card1_content, card2_title, card2_content,
	card3_title, card3_content, image_url, author_id, created_at`

// PageFilter narrows admin page listings. Search matches the title;
// Status restricts unless empty or StatusAll.
type PageFilter struct {
	Search   string
	Status   string
	Page     int
	PageSize int
}

// whereClause renders the predicate with bound parameters.
func (f PageFilter) whereClause() (string, []any) {
	var conds []string
	var args []any
	next := 1

	if f.Status != "" && f.Status != StatusAll {
		conds = append(conds, fmt.Sprintf("status = $%d", next))
		args = append(args, f.Status)
		next++
	}
	if f.Search != "" {
		conds = append(conds, fmt.Sprintf("title ILIKE $%d", next))
		args = append(args, "%"+escapeLike(f.Search)+"%")
		next++
	}

	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

// PageList is one page of results plus the unpaginated total.
type PageList struct {
	Pages []models.Page
	Total int
}

// List returns pages matching the filter, newest first.
func (s *PageStore) List(ctx context.Context, f PageFilter) (PageList, error) {
	where, args := f.whereClause()
	limit, offset := PostFilter{Page: f.Page, PageSize: f.PageSize}.Limits()

	query := fmt.Sprintf(
		`SELECT `+pageColumns+` FROM pages %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2,
	)
	raw, err := s.exec.Execute(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return PageList{}, fmt.Errorf("list pages: %w", err)
	}

	rows := dbx.Normalize(raw)
	pages := make([]models.Page, 0, len(rows))
	for _, r := range rows {
		pages = append(pages, pageFromRow(r))
	}

	raw, err = s.exec.Execute(ctx, `SELECT COUNT(*) AS count FROM pages `+where, args...)
	if err != nil {
		return PageList{}, fmt.Errorf("count pages: %w", err)
	}
	total := 0
	if countRows := dbx.Normalize(raw); len(countRows) > 0 {
		total = countRows[0].Int("count")
	}

	return PageList{Pages: pages, Total: total}, nil
}

// FindBySlug retrieves a published page by its slug. Returns nil if not
// found.
func (s *PageStore) FindBySlug(ctx context.Context, pageSlug string) (*models.Page, error) {
	raw, err := s.exec.Execute(ctx, `
		SELECT `+pageColumns+` FROM pages WHERE slug = $1 AND status = 'published'
	`, pageSlug)
	if err != nil {
		return nil, fmt.Errorf("find page by slug: %w", err)
	}
	rows := dbx.Normalize(raw)
	if len(rows) == 0 {
		return nil, nil
	}
	p := pageFromRow(rows[0])
	return &p, nil
}

// SlugIndex returns the id→slug lookup table used to resolve menu targets.
func (s *PageStore) SlugIndex(ctx context.Context) (map[int64]string, error) {
	raw, err := s.exec.Execute(ctx, `SELECT id, slug FROM pages`)
	if err != nil {
		return nil, fmt.Errorf("page slug index: %w", err)
	}

	index := make(map[int64]string)
	for _, r := range dbx.Normalize(raw) {
		index[r.Int64("id")] = r.String("slug")
	}
	return index, nil
}

// Create inserts a new page. An empty slug is generated from the title.
func (s *PageStore) Create(ctx context.Context, p *models.Page) (*models.Page, error) {
	if p.Slug == "" {
		p.Slug = slug.Generate(p.Title)
	}
	if p.Status == "" {
		p.Status = "published"
	}

	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO pages (title, content, slug, status,
		                   card1_title, card1_content, card2_title, card2_content,
		                   card3_title, card3_content, image_url, author_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`, p.Title, p.Content, p.Slug, p.Status,
		p.Card1Title, p.Card1Content, p.Card2Title, p.Card2Content,
		p.Card3Title, p.Card3Content, imageurl.NormalizePtr(p.ImageURL), p.AuthorID,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	return s.FindByID(ctx, id)
}

// FindByID retrieves a page by ID regardless of status. Returns nil if
// not found.
func (s *PageStore) FindByID(ctx context.Context, id int64) (*models.Page, error) {
	raw, err := s.exec.Execute(ctx, `SELECT `+pageColumns+` FROM pages WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("find page by id: %w", err)
	}
	rows := dbx.Normalize(raw)
	if len(rows) == 0 {
		return nil, nil
	}
	p := pageFromRow(rows[0])
	return &p, nil
}

// Update modifies an existing page wholesale.
func (s *PageStore) Update(ctx context.Context, p *models.Page) error {
	if p.Slug == "" {
		p.Slug = slug.Generate(p.Title)
	}

	_, err := s.db.ExecContext(ctx, `
		UPDATE pages SET
			title = $1, content = $2, slug = $3, status = $4,
			card1_title = $5, card1_content = $6,
			card2_title = $7, card2_content = $8,
			card3_title = $9, card3_content = $10,
			image_url = $11
		WHERE id = $12
	`, p.Title, p.Content, p.Slug, p.Status,
		p.Card1Title, p.Card1Content, p.Card2Title, p.Card2Content,
		p.Card3Title, p.Card3Content, imageurl.NormalizePtr(p.ImageURL), p.ID,
	)
	if err != nil {
		return fmt.Errorf("update page: %w", err)
	}
	return nil
}

// Delete removes a page by ID.
func (s *PageStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM pages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete page: %w", err)
	}
	return nil
}

// pageFromRow maps a normalized row to the Page model, canonicalizing the
// stored image reference.
func pageFromRow(r dbx.Row) models.Page {
	return models.Page{
		ID:           r.Int64("id"),
		Title:        r.String("title"),
		Content:      r.NullString("content"),
		Slug:         r.String("slug"),
		Status:       r.String("status"),
		Card1Title:   r.NullString("card1_title"),
		Card1Content: r.NullString("card1_content"),
		Card2Title:   r.NullString("card2_title"),
		Card2Content: r.NullString("card2_content"),
		Card3Title:   r.NullString("card3_title"),
		Card3Content: r.NullString("card3_content"),
		ImageURL:     imageurl.NormalizePtr(r.NullString("image_url")),
		AuthorID:     r.UUID("author_id"),
		CreatedAt:    r.Time("created_at"),
	}
}
