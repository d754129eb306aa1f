// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// MenuType selects how a menu item's navigation target is interpreted.
type MenuType string

const (
	// MenuTypePage links to a page row via TargetID.
	MenuTypePage MenuType = "page"
	// MenuTypeCategory links to a category row via TargetID.
	MenuTypeCategory MenuType = "category"
	// MenuTypeCustom uses the URL field verbatim.
	MenuTypeCustom MenuType = "custom"
)

// MenuItem is one entry of the configurable site menu. Items form the same
// parent-pointer hierarchy as categories, ordered by SortOrder within each
// level (ties broken by insertion order).
type MenuItem struct {
	ID        int64    `json:"id"`
	Label     string   `json:"label"`
	Type      MenuType `json:"type"`
	TargetID  *int64   `json:"target_id"`
	URL       *string  `json:"url"`
	SortOrder int      `json:"sort_order"`
	ParentID  *int64   `json:"parent_id"`
}
