// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Page is a standalone site page addressed by slug. The three card
// title/content pairs feed the landing-page layout blocks.
type Page struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Content      *string    `json:"content"`
	Slug         string     `json:"slug"`
	Status       string     `json:"status"`
	Card1Title   *string    `json:"card1_title"`
	Card1Content *string    `json:"card1_content"`
	Card2Title   *string    `json:"card2_title"`
	Card2Content *string    `json:"card2_content"`
	Card3Title   *string    `json:"card3_title"`
	Card3Content *string    `json:"card3_content"`
	ImageURL     *string    `json:"image_url"`
	AuthorID     *uuid.UUID `json:"author_id"`
	CreatedAt    time.Time  `json:"created_at"`
}
