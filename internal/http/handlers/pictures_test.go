package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ftmlabs/directory-api/internal/domain/picture"
	"github.com/ftmlabs/directory-api/internal/http/handlers"
	"github.com/ftmlabs/directory-api/internal/media"
	"github.com/ftmlabs/directory-api/internal/repo/postgres"
	"github.com/gin-gonic/gin"
)

type fakePicturesRepo struct {
	createFn func(ctx context.Context, req picture.CreatePictureRequest) (picture.Picture, error)
}

func (f *fakePicturesRepo) List(context.Context, int, int) ([]picture.Picture, error) {
	return nil, nil
}

func (f *fakePicturesRepo) GetByID(context.Context, int64) (picture.Picture, error) {
	return picture.Picture{}, nil
}

func (f *fakePicturesRepo) Create(ctx context.Context, req picture.CreatePictureRequest) (picture.Picture, error) {
	if f.createFn != nil {
		return f.createFn(ctx, req)
	}
	return picture.Picture{}, nil
}

func (f *fakePicturesRepo) Update(context.Context, int64, picture.UpdatePictureRequest) (picture.Picture, error) {
	return picture.Picture{}, nil
}

func (f *fakePicturesRepo) Delete(context.Context, int64) error {
	return nil
}

type fakeMediaStore struct {
	saveFn func(fh *multipart.FileHeader) (string, error)
}

func (f *fakeMediaStore) Save(fh *multipart.FileHeader) (string, error) {
	return f.saveFn(fh)
}

func uploadRouter(store handlers.MediaStore) *gin.Engine {
	h := handlers.NewPicturesHandler(&fakePicturesRepo{}, store)

	r := gin.New()
	r.POST("/pictures/upload", h.Upload)

	return r
}

func uploadRequest(t *testing.T, filename string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fw, err := w.CreateFormFile("file", filename)

	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}

	if _, err := fw.Write([]byte("bytes")); err != nil {
		t.Fatalf("write: %v", err)
	}

	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/pictures/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	return req
}

func TestUpload_Success(t *testing.T) {
	store := &fakeMediaStore{saveFn: func(fh *multipart.FileHeader) (string, error) {
		return "http://localhost:8080/media/abc.png", nil
	}}

	r := uploadRouter(store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "photo.png"))

	if w.Code != http.StatusCreated {
		t.Fatalf("got %d, want 201, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Path string `json:"path"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if resp.Path != "http://localhost:8080/media/abc.png" {
		t.Fatalf("unexpected path %q", resp.Path)
	}
}

func TestUpload_BadExtensionIs403(t *testing.T) {
	store := &fakeMediaStore{saveFn: func(*multipart.FileHeader) (string, error) {
		return "", media.ErrBadExtension
	}}

	r := uploadRouter(store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "script.exe"))

	if w.Code != http.StatusForbidden {
		t.Fatalf("got %d, want 403, body=%s", w.Code, w.Body.String())
	}
}

func TestUpload_MissingFileIs400(t *testing.T) {
	store := &fakeMediaStore{saveFn: func(*multipart.FileHeader) (string, error) {
		t.Fatal("store should not be reached")
		return "", nil
	}}

	r := uploadRouter(store)

	req := httptest.NewRequest(http.MethodPost, "/pictures/upload", nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", w.Code)
	}
}

func TestCreatePicture_UnknownPropertyIs422(t *testing.T) {
	// FK failure surfaces as a field violation, not a 500
	repo := &fakePicturesRepo{createFn: func(context.Context, picture.CreatePictureRequest) (picture.Picture, error) {
		return picture.Picture{}, postgres.ErrInvalidReference
	}}

	h := handlers.NewPicturesHandler(repo, nil)

	r := gin.New()
	r.POST("/pictures", h.CreatePicture)

	w := postJSON(r, "/pictures", `{"url":"http://x.test/a.png","alt":"front view","id_property":99}`)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("got %d, want 422, body=%s", w.Code, w.Body.String())
	}
}
