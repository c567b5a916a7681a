package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ftmlabs/directory-api/internal/auth"
	"github.com/ftmlabs/directory-api/internal/config"
	"github.com/ftmlabs/directory-api/internal/domain/user"
	"github.com/ftmlabs/directory-api/internal/http/middlewares"
	"github.com/ftmlabs/directory-api/internal/observability"
	"github.com/ftmlabs/directory-api/internal/security"
	"github.com/gin-gonic/gin"
)

type UserReader interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
}

type AuthHandler struct {
	users   UserReader
	jwt     *auth.Manager
	revoker TokenRevoker
	prom    *observability.Prom
}

func NewAuthHandler(users UserReader, jwtManager *auth.Manager, revoker TokenRevoker, prom *observability.Prom) *AuthHandler {
	return &AuthHandler{
		users:   users,
		jwt:     jwtManager,
		revoker: revoker,
		prom:    prom,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login tells an unknown email apart from a wrong password on purpose;
// the enumeration risk is accepted so the frontend can steer the user.
func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	foundUser, err := h.users.GetByEmail(cctx, req.Email)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			h.countLogin("unknown_email")
			RespondNotFound(ctx, "Invalid email")
			return
		}

		logErr(ctx, "login.lookup", err)
		RespondInternal(ctx, "Could not log in")
		return
	}

	if !security.CheckPassword(foundUser.PasswordHash, req.Password) {
		h.countLogin("bad_password")
		RespondUnauthorized(ctx, "Invalid password")
		return
	}

	token, err := h.jwt.GenerateToken(foundUser.ID, foundUser.Email, foundUser.Role)

	if err != nil {
		logErr(ctx, "login.sign", err)
		RespondInternal(ctx, "Could not generate token")
		return
	}

	h.countLogin("ok")

	ctx.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  foundUser,
	})
}

// Logout revokes the presented token for the rest of its lifetime. A second
// logout with the same token still succeeds, revocation is idempotent.
func (h *AuthHandler) Logout(ctx *gin.Context) {
	claims, ok := middlewares.ClaimsFromContext(ctx)

	if !ok {
		RespondUnauthorized(ctx, "Missing identity context")
		return
	}

	expiresAt := time.Now().Add(h.jwt.TTL())

	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	if err := h.revoker.Revoke(cctx, claims.JTI, expiresAt); err != nil {
		logErr(ctx, "logout.revoke", err)
		RespondInternal(ctx, "Could not log out")
		return
	}

	if h.prom != nil {
		h.prom.TokensRevokedTotal.Inc()
	}

	ctx.Status(http.StatusNoContent)
}

func (h *AuthHandler) countLogin(result string) {
	if h.prom != nil {
		h.prom.LoginsTotal.WithLabelValues(result).Inc()
	}
}
