package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

// adminRouter mounts an Admin handler group the way the real router does.
func adminRouter(a *Admin) http.Handler {
	r := chi.NewRouter()
	r.Post("/api/admin/posts", a.CreatePost)
	r.Put("/api/admin/posts/{id}", a.UpdatePost)
	r.Delete("/api/admin/posts/{id}", a.DeletePost)
	r.Post("/api/admin/categories", a.CreateCategory)
	r.Post("/api/admin/tags", a.CreateTag)
	r.Post("/api/admin/menu", a.CreateMenuItem)
	r.Post("/api/admin/pages", a.CreatePage)
	r.Post("/api/admin/profiles", a.CreateProfile)
	r.Put("/api/admin/settings", a.UpdateSettings)
	return r
}

// errorBody decodes the error envelope.
func errorBody(t *testing.T, rr *httptest.ResponseRecorder) (bool, string) {
	t.Helper()
	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return body.Success, body.Error
}

func TestAdminValidationRejects(t *testing.T) {
	// Validation runs before any store call, so an empty Admin is enough.
	a := NewAdmin(nil, nil, nil, nil, nil, nil, nil, nil, nil)
	router := adminRouter(a)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"post without title", http.MethodPost, "/api/admin/posts", `{"content":"x"}`},
		{"post with blank title", http.MethodPost, "/api/admin/posts", `{"title":"   "}`},
		{"post invalid json", http.MethodPost, "/api/admin/posts", `{"title":`},
		{"category without name", http.MethodPost, "/api/admin/categories", `{}`},
		{"tag without name", http.MethodPost, "/api/admin/tags", `{"slug":"x"}`},
		{"menu item without label", http.MethodPost, "/api/admin/menu", `{"type":"custom"}`},
		{"menu item bad type", http.MethodPost, "/api/admin/menu", `{"label":"x","type":"banner"}`},
		{"page without title", http.MethodPost, "/api/admin/pages", `{"slug":"x"}`},
		{"profile without id", http.MethodPost, "/api/admin/profiles", `{"email":"a@b.c"}`},
		{"profile without email", http.MethodPost, "/api/admin/profiles", `{"id":"7f9c24e5-2f86-4a6b-9c11-5a8e1d4e9b01"}`},
		{"settings without org name", http.MethodPut, "/api/admin/settings", `{"org_name":""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status: got %d, want 400", rr.Code)
			}
			success, msg := errorBody(t, rr)
			if success {
				t.Error("success must be false")
			}
			if msg == "" {
				t.Error("error message must be set")
			}
		})
	}
}

func TestAdminInvalidIDRejected(t *testing.T) {
	a := NewAdmin(nil, nil, nil, nil, nil, nil, nil, nil, nil)
	router := adminRouter(a)

	tests := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodPut, "/api/admin/posts/abc", `{"title":"ok"}`},
		{http.MethodDelete, "/api/admin/posts/0", ""},
		{http.MethodDelete, "/api/admin/posts/-3", ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			var body *strings.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			} else {
				body = strings.NewReader("")
			}
			req := httptest.NewRequest(tt.method, tt.path, body)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Errorf("status: got %d, want 400", rr.Code)
			}
		})
	}
}
