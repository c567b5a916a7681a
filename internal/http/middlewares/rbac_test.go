package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ftmlabs/directory-api/internal/auth"
	"github.com/ftmlabs/directory-api/internal/domain/role"
	"github.com/ftmlabs/directory-api/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

func rbacRouter(callerRole string, allowed ...string) *gin.Engine {
	verifier := &fakeVerifier{verifyFn: func(string) (*auth.Claims, error) {
		return &auth.Claims{UserID: 1, Email: "u@example.com", Role: callerRole, JTI: "j"}, nil
	}}

	m := middlewares.NewAuthMiddleware(verifier, &fakeRevocations{})

	r := gin.New()
	r.GET("/gated", m.RequireAuth(), m.RequireRole(allowed...), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return r
}

func TestRequireRole_Matrix(t *testing.T) {
	cases := []struct {
		name    string
		caller  string
		allowed []string
		want    int
	}{
		{"exact match", role.Admin, []string{role.Admin}, http.StatusOK},
		{"member of set", role.User, []string{role.Superadmin, role.Admin, role.User}, http.StatusOK},
		{"superadmin in admin set", role.Superadmin, []string{role.Superadmin, role.Admin}, http.StatusOK},
		{"prospect outside member set", role.Prospect, []string{role.Superadmin, role.Admin, role.User}, http.StatusUnauthorized},
		{"user outside admin set", role.User, []string{role.Superadmin, role.Admin}, http.StatusUnauthorized},
		{"admin outside super set", role.Admin, []string{role.Superadmin}, http.StatusUnauthorized},
		{"unknown role", "intruder", []string{role.Superadmin, role.Admin, role.User, role.Prospect}, http.StatusUnauthorized},
		{"empty set rejects everyone", role.Superadmin, nil, http.StatusUnauthorized},
	}

	for _, tc := range cases {
		r := rbacRouter(tc.caller, tc.allowed...)

		req := httptest.NewRequest(http.MethodGet, "/gated", nil)
		req.Header.Set("Authorization", "Bearer token")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != tc.want {
			t.Fatalf("%s: got %d, want %d", tc.name, w.Code, tc.want)
		}
	}
}

func TestRequireRole_NoIdentity(t *testing.T) {
	m := middlewares.NewAuthMiddleware(nil, nil)

	r := gin.New()
	// gate without RequireAuth in front: no actor on the context
	r.GET("/gated", m.RequireRole(role.Admin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("got %d, want 401", w.Code)
	}
}
