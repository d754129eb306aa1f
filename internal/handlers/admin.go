// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"newsdesk/internal/cache"
	"newsdesk/internal/models"
	"newsdesk/internal/store"
)

// Admin groups the management API handlers. Every mutation answers the
// {success, id?, error?} envelope and clears the public payload cache.
type Admin struct {
	posts      *store.PostStore
	categories *store.CategoryStore
	tags       *store.TagStore
	menu       *store.MenuStore
	pages      *store.PageStore
	profiles   *store.ProfileStore
	settings   *store.SettingStore
	visits     *store.VisitStore
	payloads   *cache.PayloadCache
}

// NewAdmin creates a new Admin handler group. payloads may be nil when
// Valkey is not configured.
func NewAdmin(posts *store.PostStore, categories *store.CategoryStore, tags *store.TagStore, menu *store.MenuStore, pages *store.PageStore, profiles *store.ProfileStore, settings *store.SettingStore, visits *store.VisitStore, payloads *cache.PayloadCache) *Admin {
	return &Admin{
		posts:      posts,
		categories: categories,
		tags:       tags,
		menu:       menu,
		pages:      pages,
		profiles:   profiles,
		settings:   settings,
		visits:     visits,
		payloads:   payloads,
	}
}

// invalidate clears the public payload cache after a write.
func (a *Admin) invalidate(r *http.Request) {
	a.payloads.InvalidateAll(r.Context())
}

// --- Posts ---

// postRequest is the JSON body for post create/update.
type postRequest struct {
	Title         string     `json:"title"`
	Content       *string    `json:"content"`
	Excerpt       *string    `json:"excerpt"`
	CategoryID    *int64     `json:"category_id"`
	SubCategoryID *int64     `json:"sub_category_id"`
	ImageURL      *string    `json:"image_url"`
	Status        string     `json:"status"`
	AuthorID      *uuid.UUID `json:"author_id"`
	TagIDs        []int64    `json:"tag_ids"`
}

func (pr postRequest) post() *models.Post {
	return &models.Post{
		Title:         strings.TrimSpace(pr.Title),
		Content:       pr.Content,
		Excerpt:       pr.Excerpt,
		CategoryID:    pr.CategoryID,
		SubCategoryID: pr.SubCategoryID,
		ImageURL:      pr.ImageURL,
		Status:        models.PostStatus(pr.Status),
		AuthorID:      pr.AuthorID,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ListPosts serves the admin post listing with the full filter set.
func (a *Admin) ListPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := store.PostFilter{
		Search:   strings.TrimSpace(q.Get("search")),
		Status:   q.Get("status"),
		Page:     queryInt(r, "page"),
		PageSize: queryInt(r, "pageSize"),
	}
	if f.Status == "" {
		f.Status = store.StatusAll
	}
	if author := q.Get("author"); author != "" {
		if id, err := uuid.Parse(author); err == nil {
			f.AuthorID = &id
		}
	}
	if cid := int64(queryInt(r, "category")); cid > 0 {
		f.CategoryID = &cid
	}
	if since := q.Get("since"); since != "" {
		if t, err := time.Parse(time.DateOnly, since); err == nil {
			f.MinDate = &t
		}
	}

	list, err := a.posts.List(r.Context(), f)
	if err != nil {
		slog.Error("admin post list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not list posts")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"data":  list.Posts,
		"total": list.Total,
		"page":  f.Page1(),
	})
}

// CreatePost inserts a new post with its tag set.
func (a *Admin) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if msg := validatePost(req.Title, deref(req.Content), deref(req.Excerpt)); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	created, err := a.posts.Create(r.Context(), req.post(), req.TagIDs)
	if err != nil {
		slog.Error("create post failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not create post")
		return
	}

	a.invalidate(r)
	writeSuccess(w, "id", created.ID)
}

// UpdatePost replaces a post wholesale, tag set included.
func (a *Admin) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req postRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if msg := validatePost(req.Title, deref(req.Content), deref(req.Excerpt)); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	post := req.post()
	post.ID = id
	if post.Status == "" {
		post.Status = models.PostStatusPublished
	}
	if err := a.posts.Update(r.Context(), post, req.TagIDs); err != nil {
		slog.Error("update post failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not update post")
		return
	}

	a.invalidate(r)
	writeSuccess(w, "id", id)
}

// DeletePost removes a post row.
func (a *Admin) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := a.posts.Delete(r.Context(), id); err != nil {
		slog.Error("delete post failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not delete post")
		return
	}

	a.invalidate(r)
	writeSuccess(w)
}

// --- Categories ---

type categoryRequest struct {
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	ParentID *int64 `json:"parent_id"`
}

// ListCategories serves all categories with counts for the admin tree view.
func (a *Admin) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := a.categories.ListWithCounts(r.Context())
	if err != nil {
		slog.Error("admin category list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not list categories")
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

// CreateCategory inserts a category.
func (a *Admin) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if msg := validateName(req.Name); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	created, err := a.categories.Create(r.Context(), &models.Category{
		Name: strings.TrimSpace(req.Name), Slug: req.Slug, ParentID: req.ParentID,
	})
	if err != nil {
		slog.Error("create category failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not create category")
		return
	}

	a.invalidate(r)
	writeSuccess(w, "id", created.ID)
}

// UpdateCategory modifies a category.
func (a *Admin) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req categoryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if msg := validateName(req.Name); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	err := a.categories.Update(r.Context(), &models.Category{
		ID: id, Name: strings.TrimSpace(req.Name), Slug: req.Slug, ParentID: req.ParentID,
	})
	if err != nil {
		slog.Error("update category failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not update category")
		return
	}

	a.invalidate(r)
	writeSuccess(w, "id", id)
}

// DeleteCategory removes a category; children promote to roots.
func (a *Admin) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := a.categories.Delete(r.Context(), id); err != nil {
		slog.Error("delete category failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not delete category")
		return
	}

	a.invalidate(r)
	writeSuccess(w)
}

// --- Tags ---

type tagRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ListTags serves all tags.
func (a *Admin) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := a.tags.List(r.Context())
	if err != nil {
		slog.Error("admin tag list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not list tags")
		return
	}
	writeJSON(w, http.StatusOK, tags)
}

// CreateTag inserts a tag.
func (a *Admin) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req tagRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if msg := validateName(req.Name); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	created, err := a.tags.Create(r.Context(), &models.Tag{
		Name: strings.TrimSpace(req.Name), Slug: req.Slug,
	})
	if err != nil {
		slog.Error("create tag failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not create tag")
		return
	}

	a.invalidate(r)
	writeSuccess(w, "id", created.ID)
}

// UpdateTag renames a tag.
func (a *Admin) UpdateTag(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req tagRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if msg := validateName(req.Name); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	err := a.tags.Update(r.Context(), &models.Tag{
		ID: id, Name: strings.TrimSpace(req.Name), Slug: req.Slug,
	})
	if err != nil {
		slog.Error("update tag failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not update tag")
		return
	}

	a.invalidate(r)
	writeSuccess(w, "id", id)
}

// DeleteTag removes a tag; post associations cascade away.
func (a *Admin) DeleteTag(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := a.tags.Delete(r.Context(), id); err != nil {
		slog.Error("delete tag failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not delete tag")
		return
	}

	a.invalidate(r)
	writeSuccess(w)
}

// --- Menu ---

type menuItemRequest struct {
	Label     string  `json:"label"`
	Type      string  `json:"type"`
	TargetID  *int64  `json:"target_id"`
	URL       *string `json:"url"`
	SortOrder int     `json:"sort_order"`
	ParentID  *int64  `json:"parent_id"`
}

// ListMenuItems serves the flat menu configuration.
func (a *Admin) ListMenuItems(w http.ResponseWriter, r *http.Request) {
	items, err := a.menu.List(r.Context())
	if err != nil {
		slog.Error("admin menu list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not list menu items")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// CreateMenuItem inserts a menu item.
func (a *Admin) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	var req menuItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if msg := validateMenuItem(req.Label, req.Type); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	created, err := a.menu.Create(r.Context(), &models.MenuItem{
		Label:     strings.TrimSpace(req.Label),
		Type:      models.MenuType(req.Type),
		TargetID:  req.TargetID,
		URL:       req.URL,
		SortOrder: req.SortOrder,
		ParentID:  req.ParentID,
	})
	if err != nil {
		slog.Error("create menu item failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not create menu item")
		return
	}

	a.invalidate(r)
	writeSuccess(w, "id", created.ID)
}

// UpdateMenuItem modifies a menu item.
func (a *Admin) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req menuItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if msg := validateMenuItem(req.Label, req.Type); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	err := a.menu.Update(r.Context(), &models.MenuItem{
		ID:        id,
		Label:     strings.TrimSpace(req.Label),
		Type:      models.MenuType(req.Type),
		TargetID:  req.TargetID,
		URL:       req.URL,
		SortOrder: req.SortOrder,
		ParentID:  req.ParentID,
	})
	if err != nil {
		slog.Error("update menu item failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not update menu item")
		return
	}

	a.invalidate(r)
	writeSuccess(w, "id", id)
}

// DeleteMenuItem removes a menu item; children promote to roots.
func (a *Admin) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := a.menu.Delete(r.Context(), id); err != nil {
		slog.Error("delete menu item failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not delete menu item")
		return
	}

	a.invalidate(r)
	writeSuccess(w)
}

// --- Pages ---

type pageRequest struct {
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
}

func (pr pageRequest) page() *models.Page {
	return &models.Page{
		Title:        strings.TrimSpace(pr.Title),
		Content:      pr.Content,
		Slug:         pr.Slug,
		Status:       pr.Status,
		Card1Title:   pr.Card1Title,
		Card1Content: pr.Card1Content,
		Card2Title:   pr.Card2Title,
		Card2Content: pr.Card2Content,
		Card3Title:   pr.Card3Title,
		Card3Content: pr.Card3Content,
		ImageURL:     pr.ImageURL,
		AuthorID:     pr.AuthorID,
	}
}

// ListPages serves the admin page listing.
func (a *Admin) ListPages(w http.ResponseWriter, r *http.Request) {
	f := store.PageFilter{
		Search:   strings.TrimSpace(r.URL.Query().Get("search")),
		Status:   r.URL.Query().Get("status"),
		Page:     queryInt(r, "page"),
		PageSize: queryInt(r, "pageSize"),
	}
	if f.Status == "" {
		f.Status = store.StatusAll
	}

	list, err := a.pages.List(r.Context(), f)
	if err != nil {
		slog.Error("admin page list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not list pages")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"data":  list.Pages,
		"total": list.Total,
	})
}

// CreatePage inserts a page.
func (a *Admin) CreatePage(w http.ResponseWriter, r *http.Request) {
	var req pageRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if msg := validatePage(req.Title, req.Slug); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	created, err := a.pages.Create(r.Context(), req.page())
	if err != nil {
		slog.Error("create page failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not create page")
		return
	}

	a.invalidate(r)
	writeSuccess(w, "id", created.ID)
}

// UpdatePage replaces a page wholesale.
func (a *Admin) UpdatePage(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req pageRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if msg := validatePage(req.Title, req.Slug); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	page := req.page()
	page.ID = id
	if page.Status == "" {
		page.Status = "published"
	}
	if err := a.pages.Update(r.Context(), page); err != nil {
		slog.Error("update page failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not update page")
		return
	}

	a.invalidate(r)
	writeSuccess(w, "id", id)
}

// DeletePage removes a page.
func (a *Admin) DeletePage(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := a.pages.Delete(r.Context(), id); err != nil {
		slog.Error("delete page failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not delete page")
		return
	}

	a.invalidate(r)
	writeSuccess(w)
}

// --- Profiles ---

type profileRequest struct {
	ID        *uuid.UUID `json:"id"`
	FullName  *string    `json:"full_name"`
	Role      string     `json:"role"`
	AvatarURL *string    `json:"avatar_url"`
	Status    string     `json:"status"`
	Email     string     `json:"email"`
}

// ListProfiles serves the admin profile listing.
func (a *Admin) ListProfiles(w http.ResponseWriter, r *http.Request) {
	f := store.ProfileFilter{
		Search:   strings.TrimSpace(r.URL.Query().Get("search")),
		Status:   r.URL.Query().Get("status"),
		Page:     queryInt(r, "page"),
		PageSize: queryInt(r, "pageSize"),
	}
	if f.Status == "" {
		f.Status = store.StatusAll
	}

	list, err := a.profiles.List(r.Context(), f)
	if err != nil {
		slog.Error("admin profile list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not list profiles")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"data":  list.Profiles,
		"total": list.Total,
	})
}

// CreateProfile mirrors an externally provisioned account. The id must be
// the provider-issued UUID.
func (a *Admin) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ID == nil || *req.ID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	created, err := a.profiles.Create(r.Context(), &models.Profile{
		ID:        *req.ID,
		FullName:  req.FullName,
		Role:      req.Role,
		AvatarURL: req.AvatarURL,
		Status:    req.Status,
		Email:     strings.TrimSpace(req.Email),
	})
	if err != nil {
		slog.Error("create profile failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not create profile")
		return
	}

	a.invalidate(r)
	writeSuccess(w, "id", created.ID)
}

// UpdateProfile modifies the display fields and role of a profile. The
// email stays with the identity provider.
func (a *Admin) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req profileRequest
	if !decodeBody(w, r, &req) {
		return
	}

	upErr := a.profiles.Update(r.Context(), &models.Profile{
		ID:        id,
		FullName:  req.FullName,
		Role:      req.Role,
		AvatarURL: req.AvatarURL,
		Status:    req.Status,
	})
	if upErr != nil {
		slog.Error("update profile failed", "id", id, "error", upErr)
		writeError(w, http.StatusInternalServerError, "could not update profile")
		return
	}

	a.invalidate(r)
	writeSuccess(w, "id", id)
}

// DeleteProfile removes the local mirror of an account.
func (a *Admin) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := a.profiles.Delete(r.Context(), id); err != nil {
		slog.Error("delete profile failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not delete profile")
		return
	}

	a.invalidate(r)
	writeSuccess(w)
}

// --- Settings ---

// GetSettings serves the current settings for the admin form.
func (a *Admin) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.settings.Get(r.Context()))
}

// UpdateSettings replaces the settings singleton wholesale.
func (a *Admin) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req models.SiteSettings
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.OrgName) == "" {
		writeError(w, http.StatusBadRequest, "org_name is required")
		return
	}

	if err := a.settings.Update(r.Context(), req); err != nil {
		slog.Error("update settings failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not update settings")
		return
	}

	a.invalidate(r)
	writeSuccess(w)
}

// --- Stats ---

// Stats serves the dashboard snapshot: entity totals, summed counters,
// the five most recent posts and a 7-day visit chart. Each sub-query that
// fails is logged and zeroed so the dashboard still renders.
func (a *Admin) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	totalPosts, err := a.posts.Count(ctx, store.PostFilter{Status: store.StatusAll})
	if err != nil {
		slog.Warn("stats: post count failed", "error", err)
	}
	totalCategories, err := a.categories.CountAll(ctx)
	if err != nil {
		slog.Warn("stats: category count failed", "error", err)
	}
	profileList, err := a.profiles.List(ctx, store.ProfileFilter{Status: store.StatusAll, PageSize: 1})
	if err != nil {
		slog.Warn("stats: profile count failed", "error", err)
	}
	totalViews, err := a.posts.TotalViews(ctx)
	if err != nil {
		slog.Warn("stats: view total failed", "error", err)
	}
	totalVisits, err := a.visits.Total(ctx)
	if err != nil {
		slog.Warn("stats: visit total failed", "error", err)
	}

	recent, err := a.posts.List(ctx, store.PostFilter{Status: store.StatusAll, PageSize: 5})
	if err != nil {
		slog.Warn("stats: recent posts failed", "error", err)
		recent = store.PostList{Posts: []models.Post{}}
	}

	chart, err := a.visits.LastNDays(ctx, 7)
	if err != nil {
		slog.Warn("stats: visit chart failed", "error", err)
		chart = []models.SiteVisit{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"totals": map[string]any{
			"posts":      totalPosts,
			"categories": totalCategories,
			"profiles":   profileList.Total,
			"views":      totalViews,
			"visits":     totalVisits,
		},
		"recentPosts": recent.Posts,
		"visitChart":  chart,
	})
}
