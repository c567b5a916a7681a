package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	redis Pinger
}

func NewHealthHandler(db, redis Pinger) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

func (h *HealthHandler) Healthz(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readyz checks the backing stores. Redis being down does not fail
// readiness, revocation degrades gracefully without it.
func (h *HealthHandler) Readyz(ctx *gin.Context) {
	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	if h.db != nil {
		if err := h.db.Ping(cctx); err != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"db":     "down",
			})
			return
		}
	}

	redisStatus := "ok"

	if h.redis != nil {
		if err := h.redis.Ping(cctx); err != nil {
			redisStatus = "down"
		}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"redis":  redisStatus,
	})
}
