// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the newsdesk API.
// Handlers are grouped by surface (public, admin) and receive their
// dependencies through the handler struct.
package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"newsdesk/internal/cache"
	"newsdesk/internal/models"
	"newsdesk/internal/store"
)

// Public groups the read-only handlers behind the public API. Reads are
// fronted by the Valkey payload cache, and every failure degrades to an
// empty or default payload with HTTP 200: the public site must keep
// rendering through database trouble.
type Public struct {
	posts      *store.PostStore
	categories *store.CategoryStore
	menu       *store.MenuStore
	pages      *store.PageStore
	tags       *store.TagStore
	settings   *store.SettingStore
	visits     *store.VisitStore
	payloads   *cache.PayloadCache
}

// NewPublic creates a new Public handler group. payloads may be nil when
// Valkey is not configured.
func NewPublic(posts *store.PostStore, categories *store.CategoryStore, menu *store.MenuStore, pages *store.PageStore, tags *store.TagStore, settings *store.SettingStore, visits *store.VisitStore, payloads *cache.PayloadCache) *Public {
	return &Public{
		posts:      posts,
		categories: categories,
		menu:       menu,
		pages:      pages,
		tags:       tags,
		settings:   settings,
		visits:     visits,
		payloads:   payloads,
	}
}

// serveCached answers from the payload cache, or builds the payload and
// stores it. build must return a JSON-encodable value; a nil build result
// is encoded as-is.
func (p *Public) serveCached(w http.ResponseWriter, r *http.Request, key string, build func() any) {
	ctx := r.Context()

	if body, ok := p.payloads.Get(ctx, key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
		return
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(build()); err != nil {
		slog.Error("encode public payload failed", "key", key, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	p.payloads.Set(ctx, key, buf.Bytes())
	w.Header().Set("Content-Type", "application/json")
	w.Write(buf.Bytes())
}

// ListPosts serves the published post listing with paging metadata.
func (p *Public) ListPosts(w http.ResponseWriter, r *http.Request) {
	f := store.PostFilter{
		Search:   strings.TrimSpace(r.URL.Query().Get("search")),
		Status:   string(models.PostStatusPublished),
		Page:     queryInt(r, "page"),
		PageSize: queryInt(r, "limit"),
	}
	if cid := int64(queryInt(r, "category")); cid > 0 {
		f.CategoryID = &cid
	}

	key := fmt.Sprintf("posts:q=%s:c=%d:p=%d:l=%d",
		f.Search, queryInt(r, "category"), f.Page1(), f.Size())

	p.serveCached(w, r, key, func() any {
		list, err := p.posts.List(r.Context(), f)
		if err != nil {
			slog.Error("public post list failed", "error", err)
			list = store.PostList{Posts: []models.Post{}}
		}

		size := f.Size()
		totalPages := (list.Total + size - 1) / size
		return map[string]any{
			"data":       list.Posts,
			"total":      list.Total,
			"page":       f.Page1(),
			"limit":      size,
			"totalPages": totalPages,
		}
	})
}

// GetPost serves a single published post, bumps its view counter and
// records the daily visit. The 404 is the one public error that is not
// absorbed: a missing id has a correct answer.
func (p *Public) GetPost(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, "post not found")
		return
	}

	post, err := p.posts.FindByID(r.Context(), id)
	if err != nil {
		slog.Error("public post fetch failed", "id", id, "error", err)
		writeError(w, http.StatusNotFound, "post not found")
		return
	}
	if post == nil || !post.IsPublished() {
		writeError(w, http.StatusNotFound, "post not found")
		return
	}

	if err := p.posts.IncrementViews(r.Context(), id); err != nil {
		slog.Warn("view increment failed", "id", id, "error", err)
	} else {
		post.Views++
	}
	if err := p.visits.Track(r.Context()); err != nil {
		slog.Warn("visit tracking failed", "error", err)
	}

	writeJSON(w, http.StatusOK, post)
}

// Categories serves all categories with rolled-up published post counts.
func (p *Public) Categories(w http.ResponseWriter, r *http.Request) {
	p.serveCached(w, r, "categories", func() any {
		cats, err := p.categories.ListWithCounts(r.Context())
		if err != nil {
			slog.Error("public category list failed", "error", err)
			return []models.Category{}
		}
		return cats
	})
}

// Menu serves the resolved navigation tree. The store already degrades to
// the default menu on any failure.
func (p *Public) Menu(w http.ResponseWriter, r *http.Request) {
	p.serveCached(w, r, "menu", func() any {
		return p.menu.Tree(r.Context())
	})
}

// GetPage serves a published page by slug.
func (p *Public) GetPage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	page, err := p.pages.FindBySlug(r.Context(), slug)
	if err != nil {
		slog.Error("public page fetch failed", "slug", slug, "error", err)
		writeError(w, http.StatusNotFound, "page not found")
		return
	}
	if page == nil {
		writeError(w, http.StatusNotFound, "page not found")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// Tags serves all tags.
func (p *Public) Tags(w http.ResponseWriter, r *http.Request) {
	p.serveCached(w, r, "tags", func() any {
		tags, err := p.tags.List(r.Context())
		if err != nil {
			slog.Error("public tag list failed", "error", err)
			return []models.Tag{}
		}
		return tags
	})
}

// Settings serves the site settings, defaults when the row is missing or
// unreadable.
func (p *Public) Settings(w http.ResponseWriter, r *http.Request) {
	p.serveCached(w, r, "settings", func() any {
		return p.settings.Get(r.Context())
	})
}
