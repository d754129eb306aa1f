// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// filter.go builds safe conjunctive predicates from loosely-typed filter
// input. Every value travels as a bound parameter; nothing from the
// request is ever concatenated into query text.
package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"newsdesk/internal/models"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// StatusAll lifts the status restriction for admin listings.
const StatusAll = "all"

// PostFilter is the filter input for post listings. Zero values mean "no
// restriction", except Status: empty defaults to published, StatusAll
// removes the restriction.
type PostFilter struct {
	Search     string
	Status     string
	AuthorID   *uuid.UUID
	CategoryID *int64
	MinDate    *time.Time
	Page       int // 1-based
	PageSize   int
}

// clamp normalizes pagination. Page and size at or below zero fall back to
// sane values rather than erroring; size is capped.
func (f PostFilter) clamp() (page, size int) {
	page = f.Page
	if page < 1 {
		page = 1
	}
	size = f.PageSize
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}

// Limits returns the LIMIT/OFFSET pair after clamping.
func (f PostFilter) Limits() (limit, offset int) {
	page, size := f.clamp()
	return size, (page - 1) * size
}

// Page1 returns the clamped 1-based page number.
func (f PostFilter) Page1() int {
	page, _ := f.clamp()
	return page
}

// Size returns the clamped page size.
func (f PostFilter) Size() int {
	_, size := f.clamp()
	return size
}

// WhereClause renders the conjunctive predicate with $n placeholders
// starting at start. The clause is empty or begins with "WHERE ".
func (f PostFilter) WhereClause(start int) (string, []any) {
	var conds []string
	var args []any
	next := start

	status := f.Status
	if status == "" {
		status = string(models.PostStatusPublished)
	}
	if status != StatusAll {
		conds = append(conds, fmt.Sprintf("status = $%d", next))
		args = append(args, status)
		next++
	}

	if f.AuthorID != nil {
		conds = append(conds, fmt.Sprintf("author_id = $%d", next))
		args = append(args, *f.AuthorID)
		next++
	}

	if f.CategoryID != nil {
		conds = append(conds, fmt.Sprintf("(category_id = $%d OR sub_category_id = $%d)", next, next))
		args = append(args, *f.CategoryID)
		next++
	}

	if f.MinDate != nil {
		conds = append(conds, fmt.Sprintf("created_at >= $%d", next))
		args = append(args, *f.MinDate)
		next++
	}

	if f.Search != "" {
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR content ILIKE $%d)", next, next))
		args = append(args, "%"+escapeLike(f.Search)+"%")
		next++
	}

	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

// escapeLike escapes the LIKE pattern metacharacters so a search term
// matches its text literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
