package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ftmlabs/directory-api/internal/config"
	"github.com/ftmlabs/directory-api/internal/domain/family"
	"github.com/gin-gonic/gin"
)

type FamiliesStore interface {
	List(ctx context.Context, limit, offset int) ([]family.Family, error)
	GetByID(ctx context.Context, id int64) (family.Family, error)
	Create(ctx context.Context, req family.CreateFamilyRequest) (family.Family, error)
	Update(ctx context.Context, id int64, req family.UpdateFamilyRequest) (family.Family, error)
	Delete(ctx context.Context, id int64) error
}

type FamiliesHandler struct {
	repo FamiliesStore
}

func NewFamiliesHandler(repo FamiliesStore) *FamiliesHandler {
	return &FamiliesHandler{repo: repo}
}

func (h *FamiliesHandler) ListFamilies(ctx *gin.Context) {
	limit, offset, ok := pagination(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	families, err := h.repo.List(cctx, limit, offset)

	if err != nil {
		logErr(ctx, "families.list", err)
		RespondInternal(ctx, "Could not list families")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": families,
		"count": len(families),
	})
}

func (h *FamiliesHandler) GetFamilyByID(ctx *gin.Context) {
	id, ok := idParam(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	found, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, family.ErrNotFound) {
			RespondNotFound(ctx, "Family not found")
			return
		}

		logErr(ctx, "families.get", err)
		RespondInternal(ctx, "Could not fetch family")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, found)
}

// CreateFamily is open like signup: the directory accepts new member cards
// without a session.
func (h *FamiliesHandler) CreateFamily(ctx *gin.Context) {
	var req family.CreateFamilyRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	created, err := h.repo.Create(cctx, req)

	if err != nil {
		logErr(ctx, "families.create", err)
		RespondInternal(ctx, "Could not create family")
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

func (h *FamiliesHandler) UpdateFamily(ctx *gin.Context) {
	id, ok := idParam(ctx)

	if !ok {
		return
	}

	var req family.UpdateFamilyRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	updated, err := h.repo.Update(cctx, id, req)

	if err != nil {
		if errors.Is(err, family.ErrNotFound) {
			RespondNotFound(ctx, "Family not found")
			return
		}

		logErr(ctx, "families.update", err)
		RespondInternal(ctx, "Could not update family")
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

func (h *FamiliesHandler) DeleteFamily(ctx *gin.Context) {
	id, ok := idParam(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	err := h.repo.Delete(cctx, id)

	if err != nil {
		if errors.Is(err, family.ErrNotFound) {
			RespondNotFound(ctx, "Family not found")
			return
		}

		logErr(ctx, "families.delete", err)
		RespondInternal(ctx, "Could not delete family")
		return
	}

	ctx.Status(http.StatusNoContent)
}
