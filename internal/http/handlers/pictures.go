package handlers

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/ftmlabs/directory-api/internal/config"
	"github.com/ftmlabs/directory-api/internal/domain/picture"
	"github.com/ftmlabs/directory-api/internal/media"
	"github.com/ftmlabs/directory-api/internal/repo/postgres"
	"github.com/gin-gonic/gin"
)

type PicturesStore interface {
	List(ctx context.Context, limit, offset int) ([]picture.Picture, error)
	GetByID(ctx context.Context, id int64) (picture.Picture, error)
	Create(ctx context.Context, req picture.CreatePictureRequest) (picture.Picture, error)
	Update(ctx context.Context, id int64, req picture.UpdatePictureRequest) (picture.Picture, error)
	Delete(ctx context.Context, id int64) error
}

type MediaStore interface {
	Save(fh *multipart.FileHeader) (string, error)
}

type PicturesHandler struct {
	repo  PicturesStore
	media MediaStore
}

func NewPicturesHandler(repo PicturesStore, media MediaStore) *PicturesHandler {
	return &PicturesHandler{repo: repo, media: media}
}

func (h *PicturesHandler) ListPictures(ctx *gin.Context) {
	limit, offset, ok := pagination(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	pictures, err := h.repo.List(cctx, limit, offset)

	if err != nil {
		logErr(ctx, "pictures.list", err)
		RespondInternal(ctx, "Could not list pictures")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": pictures,
		"count": len(pictures),
	})
}

func (h *PicturesHandler) GetPictureByID(ctx *gin.Context) {
	id, ok := idParam(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	found, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, picture.ErrNotFound) {
			RespondNotFound(ctx, "Picture not found")
			return
		}

		logErr(ctx, "pictures.get", err)
		RespondInternal(ctx, "Could not fetch picture")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, found)
}

func (h *PicturesHandler) CreatePicture(ctx *gin.Context) {
	var req picture.CreatePictureRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	created, err := h.repo.Create(cctx, req)

	if err != nil {
		if errors.Is(err, postgres.ErrInvalidReference) {
			RespondValidation(ctx, "Validation failed", []FieldError{
				{Field: "id_property", Rule: "exists", Message: "references an unknown property"},
			})
			return
		}

		logErr(ctx, "pictures.create", err)
		RespondInternal(ctx, "Could not create picture")
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// Upload accepts a multipart image and answers with the public path it is
// served from. Anything but jpg/jpeg/png is a 403.
func (h *PicturesHandler) Upload(ctx *gin.Context) {
	fh, err := ctx.FormFile("file")

	if err != nil {
		RespondBadRequest(ctx, "Missing file field", gin.H{"field": "file"})
		return
	}

	path, err := h.media.Save(fh)

	if err != nil {
		if errors.Is(err, media.ErrBadExtension) {
			RespondForbidden(ctx, "File extension not allowed")
			return
		}

		logErr(ctx, "pictures.upload", err)
		RespondInternal(ctx, "Could not store file")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"path": path})
}

func (h *PicturesHandler) UpdatePicture(ctx *gin.Context) {
	id, ok := idParam(ctx)

	if !ok {
		return
	}

	var req picture.UpdatePictureRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	updated, err := h.repo.Update(cctx, id, req)

	if err != nil {
		switch {
		case errors.Is(err, picture.ErrNotFound):
			RespondNotFound(ctx, "Picture not found")
		case errors.Is(err, postgres.ErrInvalidReference):
			RespondValidation(ctx, "Validation failed", []FieldError{
				{Field: "id_property", Rule: "exists", Message: "references an unknown property"},
			})
		default:
			logErr(ctx, "pictures.update", err)
			RespondInternal(ctx, "Could not update picture")
		}
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

func (h *PicturesHandler) DeletePicture(ctx *gin.Context) {
	id, ok := idParam(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	err := h.repo.Delete(cctx, id)

	if err != nil {
		if errors.Is(err, picture.ErrNotFound) {
			RespondNotFound(ctx, "Picture not found")
			return
		}

		logErr(ctx, "pictures.delete", err)
		RespondInternal(ctx, "Could not delete picture")
		return
	}

	ctx.Status(http.StatusNoContent)
}
