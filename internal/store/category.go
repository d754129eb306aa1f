// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"newsdesk/internal/dbx"
	"newsdesk/internal/models"
	"newsdesk/internal/slug"
	"newsdesk/internal/taxonomy"
)

// CategoryStore manages the category taxonomy.
type CategoryStore struct {
	db   *sql.DB
	exec dbx.Executor
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db, exec: &dbx.SQLExecutor{DB: db}}
}

// NewCategoryStoreWithExecutor overrides the read executor for legacy
// client adapters and tests.
func NewCategoryStoreWithExecutor(db *sql.DB, exec dbx.Executor) *CategoryStore {
	return &CategoryStore{db: db, exec: exec}
}

// List returns all categories ordered by name.
func (s *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	raw, err := s.exec.Execute(ctx, `SELECT id, name, slug, parent_id FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	rows := dbx.Normalize(raw)
	items := make([]models.Category, 0, len(rows))
	for _, r := range rows {
		items = append(items, models.Category{
			ID:       r.Int64("id"),
			Name:     r.String("name"),
			Slug:     r.String("slug"),
			ParentID: r.NullInt64("parent_id"),
		})
	}
	return items, nil
}

// ListWithCounts returns all categories with post counts: roll-ups for
// roots, direct counts for children. Exactly two bulk queries regardless
// of category count: the per-category counts come from one grouped pass
// over published posts, never a query per category.
func (s *CategoryStore) ListWithCounts(ctx context.Context) ([]models.Category, error) {
	cats, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := s.exec.Execute(ctx, `
		SELECT cid, COUNT(*) AS count FROM (
			SELECT category_id AS cid FROM posts
			WHERE status = 'published' AND category_id IS NOT NULL
			UNION ALL
			SELECT sub_category_id FROM posts
			WHERE status = 'published' AND sub_category_id IS NOT NULL
		) refs
		GROUP BY cid
	`)
	if err != nil {
		return nil, fmt.Errorf("count posts per category: %w", err)
	}

	perCategory := make(map[int64]int)
	for _, r := range dbx.Normalize(raw) {
		perCategory[r.Int64("cid")] = r.Int("count")
	}

	counts := taxonomy.RollupCounts(cats, perCategory)
	for i := range cats {
		cats[i].Count = counts[cats[i].ID]
	}
	return cats, nil
}

// SlugIndex returns the id→slug lookup table used to resolve menu targets.
func (s *CategoryStore) SlugIndex(ctx context.Context) (map[int64]string, error) {
	raw, err := s.exec.Execute(ctx, `SELECT id, slug FROM categories`)
	if err != nil {
		return nil, fmt.Errorf("category slug index: %w", err)
	}

	index := make(map[int64]string)
	for _, r := range dbx.Normalize(raw) {
		index[r.Int64("id")] = r.String("slug")
	}
	return index, nil
}

// FindBySlug retrieves a category by slug. Returns nil if not found.
func (s *CategoryStore) FindBySlug(ctx context.Context, categorySlug string) (*models.Category, error) {
	var c models.Category
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, slug, parent_id FROM categories WHERE slug = $1
	`, categorySlug).Scan(&c.ID, &c.Name, &c.Slug, &c.ParentID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by slug: %w", err)
	}
	return &c, nil
}

// Create inserts a new category. An empty slug is generated from the name.
func (s *CategoryStore) Create(ctx context.Context, c *models.Category) (*models.Category, error) {
	if c.Slug == "" {
		c.Slug = slug.Generate(c.Name)
	}

	var result models.Category
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO categories (name, slug, parent_id)
		VALUES ($1, $2, $3)
		RETURNING id, name, slug, parent_id
	`, c.Name, c.Slug, c.ParentID).Scan(&result.ID, &result.Name, &result.Slug, &result.ParentID)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &result, nil
}

// Update modifies an existing category.
func (s *CategoryStore) Update(ctx context.Context, c *models.Category) error {
	if c.Slug == "" {
		c.Slug = slug.Generate(c.Name)
	}

	_, err := s.db.ExecContext(ctx, `
		UPDATE categories SET name = $1, slug = $2, parent_id = $3 WHERE id = $4
	`, c.Name, c.Slug, c.ParentID, c.ID)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Delete removes a category by ID. Children are promoted to roots
// (ON DELETE SET NULL); posts referencing it lose the reference the same
// way.
func (s *CategoryStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// CountAll returns the number of categories.
func (s *CategoryStore) CountAll(ctx context.Context) (int, error) {
	raw, err := s.exec.Execute(ctx, `SELECT COUNT(*) AS count FROM categories`)
	if err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	rows := dbx.Normalize(raw)
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Int("count"), nil
}
