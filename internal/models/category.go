// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Category is a node in the content taxonomy. The parent pointer forms a
// tree (root = nil parent, two levels deep in practice); acyclicity is
// assumed, not enforced, so traversals guard against malformed data.
type Category struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	ParentID *int64 `json:"parent_id"`

	// Count is the roll-up post count for root categories (own published
	// posts plus those of direct children) and the direct count for
	// children. Populated by the category store, zero otherwise.
	Count int `json:"count"`
}

// IsRoot returns true for top-level categories.
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}
