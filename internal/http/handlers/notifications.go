package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ftmlabs/directory-api/internal/config"
	"github.com/ftmlabs/directory-api/internal/domain/notification"
	"github.com/ftmlabs/directory-api/internal/repo/postgres"
	"github.com/gin-gonic/gin"
)

type NotificationsStore interface {
	List(ctx context.Context, limit, offset int) ([]notification.Notification, error)
	GetByID(ctx context.Context, id int64) (notification.Notification, error)
	Create(ctx context.Context, req notification.CreateNotificationRequest) (notification.Notification, error)
	Update(ctx context.Context, id int64, req notification.UpdateNotificationRequest) (notification.Notification, error)
	Delete(ctx context.Context, id int64) error
}

type NotificationsHandler struct {
	repo NotificationsStore
}

func NewNotificationsHandler(repo NotificationsStore) *NotificationsHandler {
	return &NotificationsHandler{repo: repo}
}

func (h *NotificationsHandler) ListNotifications(ctx *gin.Context) {
	limit, offset, ok := pagination(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	notifications, err := h.repo.List(cctx, limit, offset)

	if err != nil {
		logErr(ctx, "notifications.list", err)
		RespondInternal(ctx, "Could not list notification preferences")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": notifications,
		"count": len(notifications),
	})
}

func (h *NotificationsHandler) GetNotificationByID(ctx *gin.Context) {
	id, ok := idParam(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	found, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, notification.ErrNotFound) {
			RespondNotFound(ctx, "Notification preference not found")
			return
		}

		logErr(ctx, "notifications.get", err)
		RespondInternal(ctx, "Could not fetch notification preference")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, found)
}

func (h *NotificationsHandler) CreateNotification(ctx *gin.Context) {
	var req notification.CreateNotificationRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	created, err := h.repo.Create(cctx, req)

	if err != nil {
		if errors.Is(err, postgres.ErrInvalidReference) {
			RespondValidation(ctx, "Validation failed", []FieldError{
				{Field: "id_user", Rule: "exists", Message: "references an unknown user"},
			})
			return
		}

		logErr(ctx, "notifications.create", err)
		RespondInternal(ctx, "Could not create notification preference")
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

func (h *NotificationsHandler) UpdateNotification(ctx *gin.Context) {
	id, ok := idParam(ctx)

	if !ok {
		return
	}

	var req notification.UpdateNotificationRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	updated, err := h.repo.Update(cctx, id, req)

	if err != nil {
		if errors.Is(err, notification.ErrNotFound) {
			RespondNotFound(ctx, "Notification preference not found")
			return
		}

		logErr(ctx, "notifications.update", err)
		RespondInternal(ctx, "Could not update notification preference")
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

func (h *NotificationsHandler) DeleteNotification(ctx *gin.Context) {
	id, ok := idParam(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	err := h.repo.Delete(cctx, id)

	if err != nil {
		if errors.Is(err, notification.ErrNotFound) {
			RespondNotFound(ctx, "Notification preference not found")
			return
		}

		logErr(ctx, "notifications.delete", err)
		RespondInternal(ctx, "Could not delete notification preference")
		return
	}

	ctx.Status(http.StatusNoContent)
}
