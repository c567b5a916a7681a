package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ftmlabs/directory-api/internal/domain/user"
	"github.com/ftmlabs/directory-api/internal/http/handlers"
	"github.com/ftmlabs/directory-api/internal/http/validation"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)

	if err := validation.Register(); err != nil {
		panic(err)
	}
}

type errResponse struct {
	Message string                `json:"message"`
	Stack   string                `json:"stack"`
	Fields  []handlers.FieldError `json:"fields"`
	Details struct {
		JSON   string                `json:"json"`
		Field  string                `json:"field"`
		Fields []handlers.FieldError `json:"fields"`
	} `json:"details"`
}

func bindRouter() *gin.Engine {
	r := gin.New()
	r.POST("/users", func(ctx *gin.Context) {
		var req user.CreateUserRequest
		if !handlers.BindJSON(ctx, &req) {
			return
		}
		ctx.Status(http.StatusCreated)
	})

	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func postPut(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func TestBindJSON_CollectsEveryViolation(t *testing.T) {
	r := bindRouter()

	// bad email, weak password, firstname too short, lastname missing
	w := postJSON(r, "/users", `{"email":"nope","password":"weak","firstname":"ab"}`)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("got status %d, want 422, body=%s", w.Code, w.Body.String())
	}

	var resp errResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v body=%s", err, w.Body.String())
	}

	if resp.Message != "Validation failed" {
		t.Fatalf("unexpected message %q", resp.Message)
	}

	wantRules := map[string]string{
		"email":     "email",
		"password":  "strongpassword",
		"firstname": "min",
		"lastname":  "required",
	}

	found := map[string]handlers.FieldError{}
	for _, fieldErr := range resp.Fields {
		found[fieldErr.Field] = fieldErr
	}

	for field, rule := range wantRules {
		fieldErr, ok := found[field]
		if !ok {
			t.Fatalf("missing field error for %q: %+v", field, resp.Fields)
		}
		if fieldErr.Rule != rule {
			t.Fatalf("field %q rule mismatch: got %q want %q", field, fieldErr.Rule, rule)
		}
		if fieldErr.Message == "" {
			t.Fatalf("field %q should include a non-empty message", field)
		}
	}
}

func TestBindJSON_SyntaxErrorIsBadRequest(t *testing.T) {
	r := bindRouter()

	// a truncated body surfaces as io.ErrUnexpectedEOF, an empty one as
	// io.EOF, a stray token as *json.SyntaxError; all are the same 400
	cases := map[string]string{
		"truncated":   `{"email": `,
		"empty":       ``,
		"stray_token": `}`,
	}

	for name, body := range cases {
		w := postJSON(r, "/users", body)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: got status %d, want 400, body=%s", name, w.Code, w.Body.String())
		}

		var resp errResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%s: unmarshal: %v", name, err)
		}

		if resp.Details.JSON != "invalid_json_syntax" {
			t.Fatalf("%s: expected invalid_json_syntax, got %q", name, resp.Details.JSON)
		}
	}
}

func TestBindJSON_TypeMismatchUsesJSONFieldNames(t *testing.T) {
	r := bindRouter()

	w := postJSON(r, "/users", `{"email":"a@b.com","password":"Aa1!aaaa","firstname":"Jane","lastname":"Doe","companySIRET":12345678901234}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400, body=%s", w.Code, w.Body.String())
	}

	var resp errResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if resp.Details.JSON != "invalid_json_type" {
		t.Fatalf("expected invalid_json_type, got %q", resp.Details.JSON)
	}

	if resp.Details.Field != "companySIRET" {
		t.Fatalf("expected companySIRET, got %q", resp.Details.Field)
	}
}

func TestBindJSON_ValidPayloadPasses(t *testing.T) {
	r := bindRouter()

	w := postJSON(r, "/users", `{
		"email": "jane@example.com",
		"password": "Str0ng&Pass",
		"firstname": "Jane",
		"lastname": "Doe",
		"phone_number": "+33612345678",
		"language": "french",
		"companySIRET": "12345678901234"
	}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("got status %d, want 201, body=%s", w.Code, w.Body.String())
	}
}
