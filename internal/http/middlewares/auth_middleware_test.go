package middlewares_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ftmlabs/directory-api/internal/auth"
	"github.com/ftmlabs/directory-api/internal/http/middlewares"
	"github.com/ftmlabs/directory-api/internal/identity"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeVerifier struct {
	verifyFn func(token string) (*auth.Claims, error)
}

func (f *fakeVerifier) VerifyToken(token string) (*auth.Claims, error) {
	return f.verifyFn(token)
}

type fakeRevocations struct {
	revoked map[string]bool
}

func (f *fakeRevocations) IsRevoked(_ context.Context, jti string) bool {
	return f.revoked[jti]
}

func validClaims() *auth.Claims {
	return &auth.Claims{UserID: 7, Email: "jane@example.com", Role: "admin", JTI: "jti-1"}
}

func newAuthRouter(verifier middlewares.TokenVerifier, revoked middlewares.RevocationChecker) (*gin.Engine, *identity.Actor) {
	var seen identity.Actor

	m := middlewares.NewAuthMiddleware(verifier, revoked)

	r := gin.New()
	r.GET("/private", m.RequireAuth(), func(c *gin.Context) {
		if a, ok := identity.ActorFrom(c.Request.Context()); ok {
			seen = a
		}
		c.Status(http.StatusOK)
	})

	return r, &seen
}

func TestRequireAuth_HeaderMatrix(t *testing.T) {
	verifier := &fakeVerifier{verifyFn: func(token string) (*auth.Claims, error) {
		if token == "good" {
			return validClaims(), nil
		}
		return nil, auth.ErrTokenInvalid
	}}

	r, _ := newAuthRouter(verifier, &fakeRevocations{})

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"no bearer prefix", "good", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"invalid token", "Bearer bad", http.StatusUnauthorized},
		{"valid token", "Bearer good", http.StatusOK},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)

		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != tc.want {
			t.Fatalf("%s: got %d, want %d, body=%s", tc.name, w.Code, tc.want, w.Body.String())
		}
	}
}

func TestRequireAuth_RevokedToken(t *testing.T) {
	verifier := &fakeVerifier{verifyFn: func(string) (*auth.Claims, error) {
		return validClaims(), nil
	}}
	revoked := &fakeRevocations{revoked: map[string]bool{"jti-1": true}}

	r, _ := newAuthRouter(verifier, revoked)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer anything")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("revoked token passed: %d", w.Code)
	}
}

func TestRequireAuth_PutsActorOnRequestContext(t *testing.T) {
	verifier := &fakeVerifier{verifyFn: func(string) (*auth.Claims, error) {
		return validClaims(), nil
	}}

	r, seen := newAuthRouter(verifier, &fakeRevocations{})

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer good")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", w.Code)
	}

	if seen.UserID != 7 || seen.Email != "jane@example.com" || seen.Role != "admin" {
		t.Fatalf("actor not propagated: %+v", *seen)
	}
}
