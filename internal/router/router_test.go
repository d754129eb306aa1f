package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"newsdesk/internal/handlers"
	"newsdesk/internal/middleware"
	"newsdesk/internal/store"
)

// failingExec makes every store read fail, pushing the public surface onto
// its fallback paths.
type failingExec struct{}

func (failingExec) Execute(ctx context.Context, query string, args ...any) (any, error) {
	return nil, errors.New("db down")
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()

	exec := failingExec{}
	posts := store.NewPostStoreWithExecutor(nil, exec)
	categories := store.NewCategoryStoreWithExecutor(nil, exec)
	pages := store.NewPageStoreWithExecutor(nil, exec)
	menu := store.NewMenuStoreWithExecutor(nil, exec, pages, categories)

	public := handlers.NewPublic(posts, categories, menu, pages, nil, nil, nil, nil)
	admin := handlers.NewAdmin(posts, categories, nil, menu, pages, nil, nil, nil, nil)

	limiter := middleware.NewRateLimiter(100, 100)
	t.Cleanup(limiter.Stop)

	return New(public, admin, limiter, "")
}

func TestHealthEndpoint(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	if rr.Body.String() != `{"status":"ok"}` {
		t.Errorf("body: got %q", rr.Body.String())
	}
}

func TestAdminRequiresToken(t *testing.T) {
	router := testRouter(t)

	paths := []string{
		"/api/admin/posts",
		"/api/admin/categories",
		"/api/admin/settings",
		"/api/admin/stats",
	}
	for _, path := range paths {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("%s: got %d, want 401", path, rr.Code)
		}
	}
}

func TestPublicServesThroughFailure(t *testing.T) {
	router := testRouter(t)

	// Public reads absorb store failures and answer 200.
	for _, path := range []string{"/api/posts", "/api/categories", "/api/menu"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("%s: got %d, want 200", path, rr.Code)
		}
	}
}

func TestPublicRateLimitApplies(t *testing.T) {
	exec := failingExec{}
	posts := store.NewPostStoreWithExecutor(nil, exec)
	categories := store.NewCategoryStoreWithExecutor(nil, exec)
	pages := store.NewPageStoreWithExecutor(nil, exec)
	menu := store.NewMenuStoreWithExecutor(nil, exec, pages, categories)

	public := handlers.NewPublic(posts, categories, menu, pages, nil, nil, nil, nil)
	admin := handlers.NewAdmin(posts, categories, nil, menu, pages, nil, nil, nil, nil)

	limiter := middleware.NewRateLimiter(0.001, 1)
	t.Cleanup(limiter.Stop)

	router := New(public, admin, limiter, "")

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	req.RemoteAddr = "10.1.1.1:9999"

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("first request: got %d, want 200", rr.Code)
	}

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusTooManyRequests {
		t.Errorf("second request: got %d, want 429", rr.Code)
	}

	// Health stays reachable; it sits outside the limited group.
	rr = httptest.NewRecorder()
	healthReq := httptest.NewRequest(http.MethodGet, "/health", nil)
	healthReq.RemoteAddr = "10.1.1.1:9999"
	router.ServeHTTP(rr, healthReq)
	if rr.Code != http.StatusOK {
		t.Errorf("health: got %d, want 200", rr.Code)
	}
}
