package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ftmlabs/directory-api/internal/config"
	"github.com/ftmlabs/directory-api/internal/domain/property"
	"github.com/gin-gonic/gin"
)

type PropertiesStore interface {
	List(ctx context.Context, label string, limit, offset int) ([]property.Property, error)
	GetByID(ctx context.Context, id int64) (property.Property, error)
	Create(ctx context.Context, req property.CreatePropertyRequest) (property.Property, error)
	Update(ctx context.Context, id int64, req property.UpdatePropertyRequest) (property.Property, error)
	Delete(ctx context.Context, id int64) error
}

type PropertiesHandler struct {
	repo PropertiesStore
}

func NewPropertiesHandler(repo PropertiesStore) *PropertiesHandler {
	return &PropertiesHandler{repo: repo}
}

func (h *PropertiesHandler) ListProperties(ctx *gin.Context) {
	limit, offset, ok := pagination(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	properties, err := h.repo.List(cctx, ctx.Query("name"), limit, offset)

	if err != nil {
		logErr(ctx, "properties.list", err)
		RespondInternal(ctx, "Could not list properties")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": properties,
		"count": len(properties),
	})
}

func (h *PropertiesHandler) GetPropertyByID(ctx *gin.Context) {
	id, ok := idParam(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	found, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, property.ErrNotFound) {
			RespondNotFound(ctx, "Property not found")
			return
		}

		logErr(ctx, "properties.get", err)
		RespondInternal(ctx, "Could not fetch property")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, found)
}

func (h *PropertiesHandler) CreateProperty(ctx *gin.Context) {
	var req property.CreatePropertyRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	created, err := h.repo.Create(cctx, req)

	if err != nil {
		logErr(ctx, "properties.create", err)
		RespondInternal(ctx, "Could not create property")
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

func (h *PropertiesHandler) UpdateProperty(ctx *gin.Context) {
	id, ok := idParam(ctx)

	if !ok {
		return
	}

	var req property.UpdatePropertyRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	updated, err := h.repo.Update(cctx, id, req)

	if err != nil {
		if errors.Is(err, property.ErrNotFound) {
			RespondNotFound(ctx, "Property not found")
			return
		}

		logErr(ctx, "properties.update", err)
		RespondInternal(ctx, "Could not update property")
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// DeleteProperty cascades to pictures and reservations through the schema.
func (h *PropertiesHandler) DeleteProperty(ctx *gin.Context) {
	id, ok := idParam(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	err := h.repo.Delete(cctx, id)

	if err != nil {
		if errors.Is(err, property.ErrNotFound) {
			RespondNotFound(ctx, "Property not found")
			return
		}

		logErr(ctx, "properties.delete", err)
		RespondInternal(ctx, "Could not delete property")
		return
	}

	ctx.Status(http.StatusNoContent)
}
