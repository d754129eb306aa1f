package store

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"newsdesk/internal/models"
)

func int64Ptr(n int64) *int64 { return &n }

func TestCategoryStoreListWithCountsRollsUp(t *testing.T) {
	// One list query, one grouped count query: a post filed under child 2
	// must also count toward its parent 1.
	exec := &fakeExec{results: []any{
		[]map[string]any{
			{"id": int64(1), "name": "News", "slug": "news", "parent_id": nil},
			{"id": int64(2), "name": "Local", "slug": "local", "parent_id": int64(1)},
			{"id": int64(3), "name": "Culture", "slug": "culture", "parent_id": nil},
		},
		[]map[string]any{
			{"cid": int64(2), "count": int64(1)},
			{"cid": int64(3), "count": int64(4)},
		},
	}}
	s := NewCategoryStoreWithExecutor(nil, exec)

	cats, err := s.ListWithCounts(context.Background())
	if err != nil {
		t.Fatalf("ListWithCounts: %v", err)
	}
	if len(exec.queries) != 2 {
		t.Fatalf("queries: got %d, want 2", len(exec.queries))
	}

	byID := map[int64]models.Category{}
	for _, c := range cats {
		byID[c.ID] = c
	}
	if byID[1].Count != 1 {
		t.Errorf("root 1 count: got %d, want 1 (rolled up from child)", byID[1].Count)
	}
	if byID[2].Count != 1 {
		t.Errorf("child 2 count: got %d, want 1", byID[2].Count)
	}
	if byID[3].Count != 4 {
		t.Errorf("root 3 count: got %d, want 4", byID[3].Count)
	}
}

func TestCategoryStoreCreateGeneratesSlug(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	name := "Test Category " + uuid.NewString()[:8]
	t.Cleanup(func() { db.Exec("DELETE FROM categories WHERE name = $1", name) })

	created, err := s.Create(context.Background(), &models.Category{Name: name})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Slug == "" {
		t.Error("expected generated slug")
	}

	found, err := s.FindBySlug(context.Background(), created.Slug)
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if found == nil || found.ID != created.ID {
		t.Errorf("FindBySlug: got %+v, want id %d", found, created.ID)
	}
}

func TestCategoryStoreDeletePromotesChildren(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	parentSlug := "test-parent-" + uuid.NewString()[:8]
	childSlug := "test-child-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanCategories(t, db, parentSlug, childSlug) })

	parent, err := s.Create(context.Background(), &models.Category{Name: "Parent", Slug: parentSlug})
	if err != nil {
		t.Fatalf("create parent: %v", err)
	}
	child, err := s.Create(context.Background(), &models.Category{
		Name: "Child", Slug: childSlug, ParentID: int64Ptr(parent.ID),
	})
	if err != nil {
		t.Fatalf("create child: %v", err)
	}

	if err := s.Delete(context.Background(), parent.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	found, err := s.FindBySlug(context.Background(), child.Slug)
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if found == nil {
		t.Fatal("child must survive parent deletion")
	}
	if found.ParentID != nil {
		t.Errorf("child parent_id: got %v, want nil (promoted to root)", *found.ParentID)
	}
}
