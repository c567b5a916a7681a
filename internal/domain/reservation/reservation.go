package reservation

import (
	"errors"
	"time"
)

var (
	ErrNotFound    = errors.New("reservation not found")
	ErrDatesSwap   = errors.New("end date must be after start date")
	ErrOverlapping = errors.New("property already reserved for these dates")
)

type Reservation struct {
	ID         int64     `json:"id"`
	PropertyID int64     `json:"property"`
	UserID     int64     `json:"user"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
}

type CreateReservationRequest struct {
	PropertyID int64     `json:"property" binding:"required"`
	UserID     int64     `json:"user" binding:"required"`
	StartDate  time.Time `json:"start_date" binding:"required"`
	EndDate    time.Time `json:"end_date" binding:"required,gtfield=StartDate"`
}

type UpdateReservationRequest struct {
	PropertyID *int64     `json:"property"`
	StartDate  *time.Time `json:"start_date"`
	EndDate    *time.Time `json:"end_date"`
}
