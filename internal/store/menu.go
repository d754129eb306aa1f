// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"newsdesk/internal/dbx"
	"newsdesk/internal/models"
	"newsdesk/internal/taxonomy"
)

// MenuStore manages the configurable site menu.
type MenuStore struct {
	db         *sql.DB
	exec       dbx.Executor
	pages      *PageStore
	categories *CategoryStore
}

// NewMenuStore returns a MenuStore that resolves navigation targets
// through the given page and category stores.
func NewMenuStore(db *sql.DB, pages *PageStore, categories *CategoryStore) *MenuStore {
	return &MenuStore{
		db:         db,
		exec:       &dbx.SQLExecutor{DB: db},
		pages:      pages,
		categories: categories,
	}
}

// NewMenuStoreWithExecutor overrides the read executor for legacy client
// adapters and tests.
func NewMenuStoreWithExecutor(db *sql.DB, exec dbx.Executor, pages *PageStore, categories *CategoryStore) *MenuStore {
	return &MenuStore{db: db, exec: exec, pages: pages, categories: categories}
}

// List returns all menu items ordered by sort_order (ties by insertion
// order).
func (s *MenuStore) List(ctx context.Context) ([]models.MenuItem, error) {
	raw, err := s.exec.Execute(ctx, `
		SELECT id, label, type, target_id, url, sort_order, parent_id
		FROM menu_items
		ORDER BY sort_order, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}

	rows := dbx.Normalize(raw)
	items := make([]models.MenuItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, models.MenuItem{
			ID:        r.Int64("id"),
			Label:     r.String("label"),
			Type:      models.MenuType(r.String("type")),
			TargetID:  r.NullInt64("target_id"),
			URL:       r.NullString("url"),
			SortOrder: r.Int("sort_order"),
			ParentID:  r.NullInt64("parent_id"),
		})
	}
	return items, nil
}

// Tree bulk-loads the menu table and both target slug tables, then
// assembles the resolved hierarchy in memory: three queries per request
// no matter how deep the menu goes. Any failure degrades to the default
// menu, logged, never propagated.
func (s *MenuStore) Tree(ctx context.Context) []taxonomy.MenuNode {
	items, err := s.List(ctx)
	if err != nil {
		slog.Error("menu load failed, serving default menu", "error", err)
		return taxonomy.DefaultMenu()
	}
	if len(items) == 0 {
		return taxonomy.DefaultMenu()
	}

	pageSlugs, err := s.pages.SlugIndex(ctx)
	if err != nil {
		slog.Error("page slug index failed, serving default menu", "error", err)
		return taxonomy.DefaultMenu()
	}
	categorySlugs, err := s.categories.SlugIndex(ctx)
	if err != nil {
		slog.Error("category slug index failed, serving default menu", "error", err)
		return taxonomy.DefaultMenu()
	}

	return taxonomy.BuildTree(items, taxonomy.TargetResolver{
		PageSlugs:     pageSlugs,
		CategorySlugs: categorySlugs,
	})
}

// Create inserts a new menu item.
func (s *MenuStore) Create(ctx context.Context, it *models.MenuItem) (*models.MenuItem, error) {
	var result models.MenuItem
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO menu_items (label, type, target_id, url, sort_order, parent_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, label, type, target_id, url, sort_order, parent_id
	`, it.Label, it.Type, it.TargetID, it.URL, it.SortOrder, it.ParentID).Scan(
		&result.ID, &result.Label, &result.Type, &result.TargetID,
		&result.URL, &result.SortOrder, &result.ParentID,
	)
	if err != nil {
		return nil, fmt.Errorf("create menu item: %w", err)
	}
	return &result, nil
}

// Update modifies an existing menu item.
func (s *MenuStore) Update(ctx context.Context, it *models.MenuItem) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE menu_items SET
			label = $1, type = $2, target_id = $3, url = $4,
			sort_order = $5, parent_id = $6
		WHERE id = $7
	`, it.Label, it.Type, it.TargetID, it.URL, it.SortOrder, it.ParentID, it.ID)
	if err != nil {
		return fmt.Errorf("update menu item: %w", err)
	}
	return nil
}

// Delete removes a menu item by ID. Children are promoted to roots
// (ON DELETE SET NULL).
func (s *MenuStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	return nil
}
