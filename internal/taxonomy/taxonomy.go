// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package taxonomy turns the flat parent-pointer tables (categories, menu
// items) into navigable trees and computes descendant-inclusive post-count
// roll-ups. All assembly happens in memory on bulk-loaded rows; nothing
// here issues queries.
package taxonomy

import (
	"log/slog"
	"sort"

	"newsdesk/internal/models"
)

// MenuNode is a resolved menu entry ready for rendering. The fallback
// entries of the default menu carry only Name, Href, and Children.
type MenuNode struct {
	ID          int64           `json:"id,omitempty"`
	Label       string          `json:"label,omitempty"`
	Type        models.MenuType `json:"type,omitempty"`
	TargetID    *int64          `json:"target_id,omitempty"`
	URL         *string         `json:"url,omitempty"`
	SortOrder   int             `json:"sort_order,omitempty"`
	ParentID    *int64          `json:"parent_id,omitempty"`
	Name        string          `json:"name"`
	Href        string          `json:"href"`
	Children    []MenuNode      `json:"children"`
	HasChildren bool            `json:"hasChildren"`
}

// TargetResolver supplies bulk-loaded slugs for menu navigation targets.
// Both tables are fetched once per request; nodes never trigger their own
// lookups.
type TargetResolver struct {
	PageSlugs     map[int64]string
	CategorySlugs map[int64]string
}

// DefaultMenu returns the fixed three-entry menu served when no menu items
// are configured. This is an explicit fallback policy, not an error path.
func DefaultMenu() []MenuNode {
	return []MenuNode{
		{Name: "Home", Href: "/", Children: []MenuNode{}},
		{Name: "About", Href: "/about", Children: []MenuNode{}},
		{Name: "Contact", Href: "/contact", Children: []MenuNode{}},
	}
}

// BuildTree assembles the menu hierarchy from a flat item list. Levels are
// grouped by parent pointer and ordered by sort_order ascending, ties kept
// in input order. A visited set guards the traversal so malformed parent
// data cannot recurse forever.
func BuildTree(items []models.MenuItem, targets TargetResolver) []MenuNode {
	if len(items) == 0 {
		return DefaultMenu()
	}

	ordered := make([]models.MenuItem, len(items))
	copy(ordered, items)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].SortOrder < ordered[j].SortOrder
	})

	visited := make(map[int64]bool, len(ordered))
	return buildLevel(ordered, nil, targets, visited)
}

// buildLevel collects the nodes whose parent pointer matches parentID.
func buildLevel(items []models.MenuItem, parentID *int64, targets TargetResolver, visited map[int64]bool) []MenuNode {
	// Non-nil so empty levels serialize as [] rather than null.
	nodes := []MenuNode{}
	for _, it := range items {
		if visited[it.ID] || !parentEqual(it.ParentID, parentID) {
			continue
		}
		visited[it.ID] = true

		id := it.ID
		children := buildLevel(items, &id, targets, visited)
		nodes = append(nodes, MenuNode{
			ID:          it.ID,
			Label:       it.Label,
			Type:        it.Type,
			TargetID:    it.TargetID,
			URL:         it.URL,
			SortOrder:   it.SortOrder,
			ParentID:    it.ParentID,
			Name:        it.Label,
			Href:        targets.resolve(it),
			Children:    children,
			HasChildren: len(children) > 0,
		})
	}
	return nodes
}

// resolve maps a menu item to its navigation target. A broken reference
// degrades to "#", logged, never an error.
func (t TargetResolver) resolve(it models.MenuItem) string {
	switch it.Type {
	case models.MenuTypePage:
		if it.TargetID != nil {
			if s, ok := t.PageSlugs[*it.TargetID]; ok {
				return "/" + s
			}
		}
	case models.MenuTypeCategory:
		if it.TargetID != nil {
			if s, ok := t.CategorySlugs[*it.TargetID]; ok {
				return "/category/" + s
			}
		}
	case models.MenuTypeCustom:
		if it.URL != nil && *it.URL != "" {
			return *it.URL
		}
		return "#"
	default:
		slog.Warn("unknown menu item type", "id", it.ID, "type", it.Type)
		return "#"
	}

	slog.Warn("menu item target not found", "id", it.ID, "type", it.Type)
	return "#"
}

// parentEqual compares two parent pointers (both nil or same value).
func parentEqual(a, b *int64) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

// RollupCounts attributes post counts to categories. perCategory holds the
// direct published-post counts keyed by category id, produced by a single
// grouped pass over posts. Root categories receive their own count plus
// those of their direct children; non-roots keep their direct count.
func RollupCounts(categories []models.Category, perCategory map[int64]int) map[int64]int {
	children := make(map[int64][]int64)
	for _, c := range categories {
		if c.ParentID != nil {
			children[*c.ParentID] = append(children[*c.ParentID], c.ID)
		}
	}

	out := make(map[int64]int, len(categories))
	for _, c := range categories {
		if c.ParentID != nil {
			out[c.ID] = perCategory[c.ID]
			continue
		}
		total := perCategory[c.ID]
		for _, childID := range children[c.ID] {
			total += perCategory[childID]
		}
		out[c.ID] = total
	}
	return out
}
