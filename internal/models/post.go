// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// PostStatus represents the publishing state of a post.
type PostStatus string

const (
	PostStatusPublished PostStatus = "published"
	PostStatusDraft     PostStatus = "draft"
	// PostStatusDeleted is a soft delete: the row persists, query filters
	// exclude it.
	PostStatusDeleted PostStatus = "deleted"
)

// Post is a single published article. Category and sub-category are both
// nullable references into the categories table; the sub-category is
// expected to be a child of the category but the model does not enforce it.
type Post struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Content       *string    `json:"content"`
	Excerpt       *string    `json:"excerpt"`
	CategoryID    *int64     `json:"category_id"`
	SubCategoryID *int64     `json:"sub_category_id"`
	ImageURL      *string    `json:"image_url"`
	Status        PostStatus `json:"status"`
	AuthorID      *uuid.UUID `json:"author_id"`
	CreatedAt     time.Time  `json:"created_at"`
	Views         int        `json:"views"`

	// TagIDs is populated by the post store from the post_tags join.
	TagIDs []int64 `json:"tag_ids"`
}

// IsPublished returns true if the post is in published status.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}
