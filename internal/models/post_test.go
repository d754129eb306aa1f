package models

import "testing"

// TestPostIsPublished verifies that IsPublished returns true only for the
// "published" status.
func TestPostIsPublished(t *testing.T) {
	tests := []struct {
		name   string
		status PostStatus
		want   bool
	}{
		{name: "published", status: PostStatusPublished, want: true},
		{name: "draft", status: PostStatusDraft, want: false},
		{name: "deleted", status: PostStatusDeleted, want: false},
		{name: "empty status", status: PostStatus(""), want: false},
		{name: "uppercase PUBLISHED", status: PostStatus("PUBLISHED"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Post{Status: tt.status}
			if got := p.IsPublished(); got != tt.want {
				t.Errorf("Post{Status: %q}.IsPublished() = %v, want %v",
					tt.status, got, tt.want)
			}
		})
	}
}

// TestPostStatusConstants verifies the status string constants match the
// values stored in the database enum.
func TestPostStatusConstants(t *testing.T) {
	tests := []struct {
		name     string
		status   PostStatus
		expected string
	}{
		{name: "published", status: PostStatusPublished, expected: "published"},
		{name: "draft", status: PostStatusDraft, expected: "draft"},
		{name: "deleted", status: PostStatusDeleted, expected: "deleted"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if string(tt.status) != tt.expected {
				t.Errorf("PostStatus %s = %q, want %q", tt.name, string(tt.status), tt.expected)
			}
		})
	}
}

// TestCategoryIsRoot verifies root detection on the parent pointer.
func TestCategoryIsRoot(t *testing.T) {
	parent := int64(3)

	root := &Category{ID: 1}
	if !root.IsRoot() {
		t.Error("category with nil parent should be a root")
	}

	child := &Category{ID: 2, ParentID: &parent}
	if child.IsRoot() {
		t.Error("category with a parent should not be a root")
	}
}
