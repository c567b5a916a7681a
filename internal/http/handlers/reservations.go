package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ftmlabs/directory-api/internal/config"
	"github.com/ftmlabs/directory-api/internal/domain/reservation"
	"github.com/ftmlabs/directory-api/internal/repo/postgres"
	"github.com/gin-gonic/gin"
)

type ReservationsStore interface {
	List(ctx context.Context, limit, offset int) ([]reservation.Reservation, error)
	GetByID(ctx context.Context, id int64) (reservation.Reservation, error)
	Create(ctx context.Context, req reservation.CreateReservationRequest) (reservation.Reservation, error)
	Update(ctx context.Context, id int64, req reservation.UpdateReservationRequest) (reservation.Reservation, error)
	Delete(ctx context.Context, id int64) error
}

type ReservationsHandler struct {
	repo ReservationsStore
}

func NewReservationsHandler(repo ReservationsStore) *ReservationsHandler {
	return &ReservationsHandler{repo: repo}
}

func (h *ReservationsHandler) ListReservations(ctx *gin.Context) {
	limit, offset, ok := pagination(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	reservations, err := h.repo.List(cctx, limit, offset)

	if err != nil {
		logErr(ctx, "reservations.list", err)
		RespondInternal(ctx, "Could not list reservations")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": reservations,
		"count": len(reservations),
	})
}

func (h *ReservationsHandler) GetReservationByID(ctx *gin.Context) {
	id, ok := idParam(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	found, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, reservation.ErrNotFound) {
			RespondNotFound(ctx, "Reservation not found")
			return
		}

		logErr(ctx, "reservations.get", err)
		RespondInternal(ctx, "Could not fetch reservation")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, found)
}

func (h *ReservationsHandler) CreateReservation(ctx *gin.Context) {
	var req reservation.CreateReservationRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	created, err := h.repo.Create(cctx, req)

	if err != nil {
		switch {
		case errors.Is(err, reservation.ErrOverlapping):
			RespondValidation(ctx, "Validation failed", []FieldError{
				{Field: "start_date", Rule: "overlap", Message: "property is already reserved for these dates"},
			})
		case errors.Is(err, postgres.ErrInvalidReference):
			RespondValidation(ctx, "Validation failed", []FieldError{
				{Field: "property", Rule: "exists", Message: "references an unknown property or user"},
			})
		default:
			logErr(ctx, "reservations.create", err)
			RespondInternal(ctx, "Could not create reservation")
		}
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

func (h *ReservationsHandler) UpdateReservation(ctx *gin.Context) {
	id, ok := idParam(ctx)

	if !ok {
		return
	}

	var req reservation.UpdateReservationRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	updated, err := h.repo.Update(cctx, id, req)

	if err != nil {
		switch {
		case errors.Is(err, reservation.ErrNotFound):
			RespondNotFound(ctx, "Reservation not found")
		case errors.Is(err, reservation.ErrDatesSwap):
			RespondValidation(ctx, "Validation failed", []FieldError{
				{Field: "end_date", Rule: "gtfield", Param: "StartDate", Message: "must be after start_date"},
			})
		case errors.Is(err, postgres.ErrInvalidReference):
			RespondValidation(ctx, "Validation failed", []FieldError{
				{Field: "property", Rule: "exists", Message: "references an unknown property"},
			})
		default:
			logErr(ctx, "reservations.update", err)
			RespondInternal(ctx, "Could not update reservation")
		}
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

func (h *ReservationsHandler) DeleteReservation(ctx *gin.Context) {
	id, ok := idParam(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	err := h.repo.Delete(cctx, id)

	if err != nil {
		if errors.Is(err, reservation.ErrNotFound) {
			RespondNotFound(ctx, "Reservation not found")
			return
		}

		logErr(ctx, "reservations.delete", err)
		RespondInternal(ctx, "Could not delete reservation")
		return
	}

	ctx.Status(http.StatusNoContent)
}
