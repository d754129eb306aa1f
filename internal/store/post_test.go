package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"newsdesk/internal/models"
)

func strPtr(s string) *string { return &s }

func TestPostStoreListNormalizesEnvelopes(t *testing.T) {
	// The list result arrives wrapped the way the legacy client wrapped
	// it; counts and tag rows arrive as plain map slices.
	exec := &fakeExec{results: []any{
		map[string]any{"rows": []any{
			map[string]any{
				"id": int64(7), "title": "First", "status": "published",
				"image_url": "photo.jpg", "views": int64(3),
			},
			map[string]any{
				"id": int64(8), "title": "Second", "status": "published",
				"image_url": "/uploads/other.jpg", "views": int64(0),
			},
		}},
		[]map[string]any{{"count": int64(2)}},
		[]map[string]any{
			{"post_id": int64(7), "tag_id": int64(1)},
			{"post_id": int64(7), "tag_id": int64(2)},
		},
	}}
	s := NewPostStoreWithExecutor(nil, exec)

	got, err := s.List(context.Background(), PostFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if got.Total != 2 {
		t.Errorf("total: got %d, want 2", got.Total)
	}
	if len(got.Posts) != 2 {
		t.Fatalf("posts: got %d, want 2", len(got.Posts))
	}
	if got.Posts[0].ID != 7 || got.Posts[1].ID != 8 {
		t.Errorf("order: got %d,%d want 7,8", got.Posts[0].ID, got.Posts[1].ID)
	}
	if got.Posts[0].ImageURL == nil || *got.Posts[0].ImageURL != "/uploads/photo.jpg" {
		t.Errorf("image_url not canonicalized: %v", got.Posts[0].ImageURL)
	}
	if got.Posts[1].ImageURL == nil || *got.Posts[1].ImageURL != "/uploads/other.jpg" {
		t.Errorf("canonical image_url changed: %v", got.Posts[1].ImageURL)
	}
	if len(got.Posts[0].TagIDs) != 2 {
		t.Errorf("tags on post 7: got %v, want two ids", got.Posts[0].TagIDs)
	}
	if len(got.Posts[1].TagIDs) != 0 {
		t.Errorf("tags on post 8: got %v, want none", got.Posts[1].TagIDs)
	}
	if got.Posts[1].TagIDs == nil {
		t.Error("TagIDs must be empty, not nil")
	}
}

func TestPostStoreListPagePastEnd(t *testing.T) {
	exec := &fakeExec{results: []any{
		[]map[string]any{},
		[]map[string]any{{"count": int64(42)}},
	}}
	s := NewPostStoreWithExecutor(nil, exec)

	got, err := s.List(context.Background(), PostFilter{Page: 99})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got.Posts) != 0 {
		t.Errorf("posts: got %d, want 0", len(got.Posts))
	}
	if got.Posts == nil {
		t.Error("posts must be empty, not nil")
	}
	if got.Total != 42 {
		t.Errorf("total: got %d, want 42", got.Total)
	}
	// No posts on the page, so no tag query either.
	if len(exec.queries) != 2 {
		t.Errorf("queries: got %d, want 2", len(exec.queries))
	}
}

func TestPostStoreListPropagatesError(t *testing.T) {
	exec := &fakeExec{err: errors.New("connection refused")}
	s := NewPostStoreWithExecutor(nil, exec)

	if _, err := s.List(context.Background(), PostFilter{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestPostStoreFindByIDMissing(t *testing.T) {
	exec := &fakeExec{results: []any{[]map[string]any{}}}
	s := NewPostStoreWithExecutor(nil, exec)

	got, err := s.FindByID(context.Background(), 404)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing post, got %+v", got)
	}
}

func TestPostStoreCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)
	tags := NewTagStore(db)

	title := "test-create-post-" + uuid.NewString()[:8]
	tagName := "test-tag-" + uuid.NewString()[:8]
	t.Cleanup(func() {
		cleanPosts(t, db, title)
		cleanTags(t, db, tagName)
	})

	tag, err := tags.Create(context.Background(), &models.Tag{Name: tagName, Slug: tagName})
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}

	created, err := s.Create(context.Background(), &models.Post{
		Title:    title,
		Content:  strPtr("<p>body</p>"),
		ImageURL: strPtr("cover.jpg"),
	}, []int64{tag.ID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if created.ID == 0 {
		t.Error("expected non-zero id")
	}
	if created.Status != models.PostStatusPublished {
		t.Errorf("status: got %q, want %q", created.Status, models.PostStatusPublished)
	}
	if created.ImageURL == nil || *created.ImageURL != "/uploads/cover.jpg" {
		t.Errorf("image_url: got %v, want /uploads/cover.jpg", created.ImageURL)
	}
	if len(created.TagIDs) != 1 || created.TagIDs[0] != tag.ID {
		t.Errorf("tag ids: got %v, want [%d]", created.TagIDs, tag.ID)
	}

	found, err := s.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil {
		t.Fatal("expected post, got nil")
	}
	if found.Title != title {
		t.Errorf("title: got %q, want %q", found.Title, title)
	}
}

func TestPostStoreUpdateReplacesTags(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)
	tags := NewTagStore(db)

	title := "test-update-post-" + uuid.NewString()[:8]
	tagA := "test-tag-a-" + uuid.NewString()[:8]
	tagB := "test-tag-b-" + uuid.NewString()[:8]
	t.Cleanup(func() {
		cleanPosts(t, db, title)
		cleanTags(t, db, tagA, tagB)
	})

	a, _ := tags.Create(context.Background(), &models.Tag{Name: tagA, Slug: tagA})
	b, _ := tags.Create(context.Background(), &models.Tag{Name: tagB, Slug: tagB})

	created, err := s.Create(context.Background(), &models.Post{Title: title}, []int64{a.ID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	created.Status = models.PostStatusDraft
	if err := s.Update(context.Background(), created, []int64{b.ID}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	found, err := s.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found.Status != models.PostStatusDraft {
		t.Errorf("status: got %q, want draft", found.Status)
	}
	if len(found.TagIDs) != 1 || found.TagIDs[0] != b.ID {
		t.Errorf("tag ids: got %v, want [%d]", found.TagIDs, b.ID)
	}
}

func TestPostStoreIncrementViews(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)

	title := "test-views-post-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanPosts(t, db, title) })

	created, err := s.Create(context.Background(), &models.Post{Title: title}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	for range 3 {
		if err := s.IncrementViews(context.Background(), created.ID); err != nil {
			t.Fatalf("IncrementViews: %v", err)
		}
	}

	found, _ := s.FindByID(context.Background(), created.ID)
	if found.Views != 3 {
		t.Errorf("views: got %d, want 3", found.Views)
	}
}

func TestPostStoreDelete(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)

	title := "test-delete-post-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanPosts(t, db, title) })

	created, err := s.Create(context.Background(), &models.Post{Title: title}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	found, err := s.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found != nil {
		t.Error("expected nil after delete")
	}
}
