package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ftmlabs/directory-api/internal/cache"
	"github.com/ftmlabs/directory-api/internal/config"
	"github.com/ftmlabs/directory-api/internal/domain/role"
	"github.com/ftmlabs/directory-api/internal/repo/postgres"
	"github.com/gin-gonic/gin"
)

type RolesStore interface {
	List(ctx context.Context, label string) ([]role.Role, error)
	GetByID(ctx context.Context, id int64) (role.Role, error)
	Create(ctx context.Context, req role.CreateRoleRequest) (role.Role, error)
	Update(ctx context.Context, id int64, req role.UpdateRoleRequest) (role.Role, error)
	Delete(ctx context.Context, id int64) error
}

// The role set barely ever changes, so list reads come from a short-lived
// cache. Writes clear it.
type RolesHandler struct {
	repo  RolesStore
	cache *cache.Cache
}

func NewRolesHandler(repo RolesStore, c *cache.Cache) *RolesHandler {
	return &RolesHandler{repo: repo, cache: c}
}

const rolesCacheKey = "roles.all"

func (h *RolesHandler) ListRoles(ctx *gin.Context) {
	label := ctx.Query("role")

	if label == "" && h.cache != nil {
		if v, ok := h.cache.Get(rolesCacheKey); ok {
			if roles, ok := v.([]role.Role); ok {
				ctx.JSON(http.StatusOK, gin.H{"items": roles, "count": len(roles)})
				return
			}
		}
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	roles, err := h.repo.List(cctx, label)

	if err != nil {
		logErr(ctx, "roles.list", err)
		RespondInternal(ctx, "Could not list roles")
		return
	}

	if label == "" && h.cache != nil {
		h.cache.Set(rolesCacheKey, roles)
	}

	ctx.JSON(http.StatusOK, gin.H{"items": roles, "count": len(roles)})
}

func (h *RolesHandler) GetRoleByID(ctx *gin.Context) {
	id, ok := idParam(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	found, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, role.ErrNotFound) {
			RespondNotFound(ctx, "Role not found")
			return
		}

		logErr(ctx, "roles.get", err)
		RespondInternal(ctx, "Could not fetch role")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, found)
}

func (h *RolesHandler) CreateRole(ctx *gin.Context) {
	var req role.CreateRoleRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	created, err := h.repo.Create(cctx, req)

	if err != nil {
		if errors.Is(err, postgres.ErrDuplicate) {
			RespondValidation(ctx, "Validation failed", []FieldError{
				{Field: "label", Rule: "unique", Message: "is already in use"},
			})
			return
		}

		logErr(ctx, "roles.create", err)
		RespondInternal(ctx, "Could not create role")
		return
	}

	h.invalidate()

	ctx.JSON(http.StatusCreated, created)
}

func (h *RolesHandler) UpdateRole(ctx *gin.Context) {
	id, ok := idParam(ctx)

	if !ok {
		return
	}

	var req role.UpdateRoleRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	updated, err := h.repo.Update(cctx, id, req)

	if err != nil {
		if errors.Is(err, role.ErrNotFound) {
			RespondNotFound(ctx, "Role not found")
			return
		}

		logErr(ctx, "roles.update", err)
		RespondInternal(ctx, "Could not update role")
		return
	}

	h.invalidate()

	ctx.JSON(http.StatusOK, updated)
}

func (h *RolesHandler) DeleteRole(ctx *gin.Context) {
	id, ok := idParam(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	err := h.repo.Delete(cctx, id)

	if err != nil {
		if errors.Is(err, role.ErrNotFound) {
			RespondNotFound(ctx, "Role not found")
			return
		}

		logErr(ctx, "roles.delete", err)
		RespondInternal(ctx, "Could not delete role")
		return
	}

	h.invalidate()

	ctx.Status(http.StatusNoContent)
}

func (h *RolesHandler) invalidate() {
	if h.cache != nil {
		h.cache.Delete(rolesCacheKey)
	}
}
