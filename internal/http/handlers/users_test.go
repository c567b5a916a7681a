package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ftmlabs/directory-api/internal/domain/user"
	"github.com/ftmlabs/directory-api/internal/http/handlers"
	"github.com/ftmlabs/directory-api/internal/repo/postgres"
	"github.com/gin-gonic/gin"
)

type fakeUsersRepo struct {
	createFn func(ctx context.Context, req user.CreateUserRequest, passwordHash string) (user.User, error)
	getFn    func(ctx context.Context, id int64) (user.User, error)
	listFn   func(ctx context.Context, limit, offset int) ([]user.User, error)
	updateFn func(ctx context.Context, id int64, req user.UpdateUserRequest, passwordHash *string) (user.User, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (f *fakeUsersRepo) Create(ctx context.Context, req user.CreateUserRequest, passwordHash string) (user.User, error) {
	if f.createFn != nil {
		return f.createFn(ctx, req, passwordHash)
	}
	return user.User{}, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id int64) (user.User, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return user.User{}, nil
}

func (f *fakeUsersRepo) List(ctx context.Context, limit, offset int) ([]user.User, error) {
	if f.listFn != nil {
		return f.listFn(ctx, limit, offset)
	}
	return nil, nil
}

func (f *fakeUsersRepo) Update(ctx context.Context, id int64, req user.UpdateUserRequest, passwordHash *string) (user.User, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, req, passwordHash)
	}
	return user.User{}, nil
}

func (f *fakeUsersRepo) Delete(ctx context.Context, id int64) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func usersRouter(repo handlers.UsersStore) *gin.Engine {
	h := handlers.NewUsersHandler(repo)

	r := gin.New()
	r.POST("/users", h.SignUp)
	r.GET("/users", h.ListUsers)
	r.GET("/users/:id", h.GetUserByID)
	r.PUT("/users/:id", h.UpdateUser)
	r.DELETE("/users/:id", h.DeleteUser)

	return r
}

const validSignup = `{
	"email": "jane@example.com",
	"password": "Str0ng&Pass",
	"firstname": "Jane",
	"lastname": "Doe"
}`

func TestSignUp_HashesBeforeStore(t *testing.T) {
	var gotHash string

	repo := &fakeUsersRepo{createFn: func(_ context.Context, req user.CreateUserRequest, passwordHash string) (user.User, error) {
		gotHash = passwordHash
		return user.User{ID: 1, Email: req.Email, Role: "prospect"}, nil
	}}

	r := usersRouter(repo)

	w := postJSON(r, "/users", validSignup)

	if w.Code != http.StatusCreated {
		t.Fatalf("got %d, want 201, body=%s", w.Code, w.Body.String())
	}

	if gotHash == "" || gotHash == "Str0ng&Pass" {
		t.Fatalf("password reached the store unhashed: %q", gotHash)
	}

	var created user.User
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if created.Role != "prospect" {
		t.Fatalf("new signup role %q, want prospect", created.Role)
	}
}

func TestSignUp_DuplicateEmailIs422(t *testing.T) {
	repo := &fakeUsersRepo{createFn: func(context.Context, user.CreateUserRequest, string) (user.User, error) {
		return user.User{}, postgres.ErrEmailAlreadyUsed
	}}

	r := usersRouter(repo)

	w := postJSON(r, "/users", validSignup)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("got %d, want 422, body=%s", w.Code, w.Body.String())
	}

	var resp errResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)

	if len(resp.Fields) != 1 || resp.Fields[0].Field != "email" || resp.Fields[0].Rule != "unique" {
		t.Fatalf("unexpected fields %+v", resp.Fields)
	}
}

func TestGetUserByID_NotFound(t *testing.T) {
	repo := &fakeUsersRepo{getFn: func(context.Context, int64) (user.User, error) {
		return user.User{}, user.ErrNotFound
	}}

	r := usersRouter(repo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/99", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("got %d, want 404", w.Code)
	}
}

func TestGetUserByID_BadID(t *testing.T) {
	r := usersRouter(&fakeUsersRepo{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/abc", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", w.Code)
	}
}

func TestUpdateUser_HashesNewPassword(t *testing.T) {
	var gotHash *string

	repo := &fakeUsersRepo{updateFn: func(_ context.Context, id int64, req user.UpdateUserRequest, passwordHash *string) (user.User, error) {
		gotHash = passwordHash
		return user.User{ID: id}, nil
	}}

	r := usersRouter(repo)

	w := postPut(r, "/users/7", `{"password":"N3w!Secret"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want 200, body=%s", w.Code, w.Body.String())
	}

	if gotHash == nil || *gotHash == "N3w!Secret" {
		t.Fatal("password not hashed before update")
	}
}

func TestUpdateUser_NoPasswordKeepsHashNil(t *testing.T) {
	var gotHash *string

	repo := &fakeUsersRepo{updateFn: func(_ context.Context, id int64, req user.UpdateUserRequest, passwordHash *string) (user.User, error) {
		gotHash = passwordHash
		return user.User{ID: id}, nil
	}}

	r := usersRouter(repo)

	w := postPut(r, "/users/7", `{"firstname":"Janet"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want 200, body=%s", w.Code, w.Body.String())
	}

	if gotHash != nil {
		t.Fatalf("expected nil hash, got %q", *gotHash)
	}
}

func TestDeleteUser(t *testing.T) {
	repo := &fakeUsersRepo{deleteFn: func(_ context.Context, id int64) error {
		if id != 7 {
			t.Fatalf("deleting id %d, want 7", id)
		}
		return nil
	}}

	r := usersRouter(repo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/users/7", nil))

	if w.Code != http.StatusNoContent {
		t.Fatalf("got %d, want 204", w.Code)
	}
}

func TestListUsers_PassesPagination(t *testing.T) {
	repo := &fakeUsersRepo{listFn: func(_ context.Context, limit, offset int) ([]user.User, error) {
		if limit != 5 || offset != 10 {
			t.Fatalf("got limit=%d offset=%d, want 5/10", limit, offset)
		}
		return []user.User{{ID: 1}}, nil
	}}

	r := usersRouter(repo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users?limit=5&offset=10", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", w.Code)
	}
}

func TestListUsers_MalformedPaginationIs400(t *testing.T) {
	repo := &fakeUsersRepo{listFn: func(context.Context, int, int) ([]user.User, error) {
		t.Fatal("repo should not be reached for a malformed query")
		return nil, nil
	}}

	r := usersRouter(repo)

	cases := []string{
		"/users?limit=abc",
		"/users?limit=0",
		"/users?limit=-3",
		"/users?offset=-zz",
		"/users?offset=-1",
		"/users?limit=abc&offset=-zz",
	}

	for _, target := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: got %d, want 400, body=%s", target, w.Code, w.Body.String())
		}
	}
}

func TestListUsers_AbsentPaginationUsesDefaults(t *testing.T) {
	repo := &fakeUsersRepo{listFn: func(_ context.Context, limit, offset int) ([]user.User, error) {
		if limit != 50 || offset != 0 {
			t.Fatalf("got limit=%d offset=%d, want defaults 50/0", limit, offset)
		}
		return nil, nil
	}}

	r := usersRouter(repo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", w.Code)
	}
}
