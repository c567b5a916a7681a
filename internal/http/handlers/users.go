package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ftmlabs/directory-api/internal/config"
	"github.com/ftmlabs/directory-api/internal/domain/user"
	"github.com/ftmlabs/directory-api/internal/repo/postgres"
	"github.com/ftmlabs/directory-api/internal/security"
	"github.com/gin-gonic/gin"
)

type UsersStore interface {
	Create(ctx context.Context, req user.CreateUserRequest, passwordHash string) (user.User, error)
	GetByID(ctx context.Context, id int64) (user.User, error)
	List(ctx context.Context, limit, offset int) ([]user.User, error)
	Update(ctx context.Context, id int64, req user.UpdateUserRequest, passwordHash *string) (user.User, error)
	Delete(ctx context.Context, id int64) error
}

type UsersHandler struct {
	repo UsersStore
}

func NewUsersHandler(repo UsersStore) *UsersHandler {
	return &UsersHandler{repo: repo}
}

// SignUp is the one unauthenticated write: anyone may register and lands
// as a prospect until promoted.
func (h *UsersHandler) SignUp(ctx *gin.Context) {
	var req user.CreateUserRequest

	if !BindJSON(ctx, &req) {
		return
	}

	hash, err := security.HashPassword(req.Password)

	if err != nil {
		logErr(ctx, "users.hash", err)
		RespondInternal(ctx, "Could not create user")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	u, err := h.repo.Create(cctx, req, hash)

	if err != nil {
		if errors.Is(err, postgres.ErrEmailAlreadyUsed) {
			RespondValidation(ctx, "Validation failed", []FieldError{
				{Field: "email", Rule: "unique", Message: "is already in use"},
			})
			return
		}

		logErr(ctx, "users.create", err)
		RespondInternal(ctx, "Could not create user")
		return
	}

	ctx.JSON(http.StatusCreated, u)
}

func (h *UsersHandler) ListUsers(ctx *gin.Context) {
	limit, offset, ok := pagination(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	users, err := h.repo.List(cctx, limit, offset)

	if err != nil {
		logErr(ctx, "users.list", err)
		RespondInternal(ctx, "Could not list users")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": users,
		"count": len(users),
	})
}

func (h *UsersHandler) GetUserByID(ctx *gin.Context) {
	id, ok := idParam(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	u, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}

		logErr(ctx, "users.get", err)
		RespondInternal(ctx, "Could not fetch user")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, u)
}

func (h *UsersHandler) UpdateUser(ctx *gin.Context) {
	id, ok := idParam(ctx)

	if !ok {
		return
	}

	var req user.UpdateUserRequest

	if !BindJSON(ctx, &req) {
		return
	}

	var passwordHash *string

	if req.Password != nil {
		hash, err := security.HashPassword(*req.Password)

		if err != nil {
			logErr(ctx, "users.hash", err)
			RespondInternal(ctx, "Could not update user")
			return
		}

		passwordHash = &hash
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	u, err := h.repo.Update(cctx, id, req, passwordHash)

	if err != nil {
		switch {
		case errors.Is(err, user.ErrNotFound):
			RespondNotFound(ctx, "User not found")
		case errors.Is(err, postgres.ErrEmailAlreadyUsed):
			RespondValidation(ctx, "Validation failed", []FieldError{
				{Field: "email", Rule: "unique", Message: "is already in use"},
			})
		default:
			logErr(ctx, "users.update", err)
			RespondInternal(ctx, "Could not update user")
		}
		return
	}

	ctx.JSON(http.StatusOK, u)
}

// DeleteUser removes the row; notifications and reservations go with it
// through the schema cascades.
func (h *UsersHandler) DeleteUser(ctx *gin.Context) {
	id, ok := idParam(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	err := h.repo.Delete(cctx, id)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}

		logErr(ctx, "users.delete", err)
		RespondInternal(ctx, "Could not delete user")
		return
	}

	ctx.Status(http.StatusNoContent)
}
