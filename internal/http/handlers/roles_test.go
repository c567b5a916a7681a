package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ftmlabs/directory-api/internal/cache"
	"github.com/ftmlabs/directory-api/internal/domain/role"
	"github.com/ftmlabs/directory-api/internal/http/handlers"
	"github.com/gin-gonic/gin"
)

type fakeRolesRepo struct {
	listCalls int
	listFn    func(ctx context.Context, label string) ([]role.Role, error)
	createFn  func(ctx context.Context, req role.CreateRoleRequest) (role.Role, error)
}

func (f *fakeRolesRepo) List(ctx context.Context, label string) ([]role.Role, error) {
	f.listCalls++
	if f.listFn != nil {
		return f.listFn(ctx, label)
	}
	return []role.Role{{ID: 1, Label: role.Superadmin}}, nil
}

func (f *fakeRolesRepo) GetByID(context.Context, int64) (role.Role, error) {
	return role.Role{}, role.ErrNotFound
}

func (f *fakeRolesRepo) Create(ctx context.Context, req role.CreateRoleRequest) (role.Role, error) {
	if f.createFn != nil {
		return f.createFn(ctx, req)
	}
	return role.Role{ID: 5, Label: req.Label}, nil
}

func (f *fakeRolesRepo) Update(context.Context, int64, role.UpdateRoleRequest) (role.Role, error) {
	return role.Role{}, nil
}

func (f *fakeRolesRepo) Delete(context.Context, int64) error {
	return nil
}

func rolesRouter(repo handlers.RolesStore, c *cache.Cache) *gin.Engine {
	h := handlers.NewRolesHandler(repo, c)

	r := gin.New()
	r.GET("/roles", h.ListRoles)
	r.POST("/roles", h.CreateRole)

	return r
}

func TestListRoles_ServedFromCache(t *testing.T) {
	repo := &fakeRolesRepo{}
	r := rolesRouter(repo, cache.New(time.Minute))

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/roles", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("got %d, want 200", w.Code)
		}
	}

	if repo.listCalls != 1 {
		t.Fatalf("repo hit %d times, want 1 (cache miss only)", repo.listCalls)
	}
}

func TestListRoles_FilterBypassesCache(t *testing.T) {
	repo := &fakeRolesRepo{}
	r := rolesRouter(repo, cache.New(time.Minute))

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/roles?role=admin", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("got %d, want 200", w.Code)
		}
	}

	if repo.listCalls != 2 {
		t.Fatalf("filtered list should skip the cache, repo hit %d times", repo.listCalls)
	}
}

func TestCreateRole_InvalidatesCache(t *testing.T) {
	repo := &fakeRolesRepo{}
	r := rolesRouter(repo, cache.New(time.Minute))

	// warm the cache
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/roles", nil))

	w = postJSON(r, "/roles", `{"label":"editor"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("got %d, want 201, body=%s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/roles", nil))

	if repo.listCalls != 2 {
		t.Fatalf("cache not invalidated by write, repo hit %d times", repo.listCalls)
	}
}

func TestCreateRole_LabelTooShortIs422(t *testing.T) {
	r := rolesRouter(&fakeRolesRepo{}, nil)

	w := postJSON(r, "/roles", `{"label":"ab"}`)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("got %d, want 422, body=%s", w.Code, w.Body.String())
	}
}
