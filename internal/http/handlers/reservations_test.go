package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/ftmlabs/directory-api/internal/domain/reservation"
	"github.com/ftmlabs/directory-api/internal/http/handlers"
	"github.com/gin-gonic/gin"
)

type fakeReservationsRepo struct {
	createFn func(ctx context.Context, req reservation.CreateReservationRequest) (reservation.Reservation, error)
	updateFn func(ctx context.Context, id int64, req reservation.UpdateReservationRequest) (reservation.Reservation, error)
}

func (f *fakeReservationsRepo) List(context.Context, int, int) ([]reservation.Reservation, error) {
	return nil, nil
}

func (f *fakeReservationsRepo) GetByID(context.Context, int64) (reservation.Reservation, error) {
	return reservation.Reservation{}, nil
}

func (f *fakeReservationsRepo) Create(ctx context.Context, req reservation.CreateReservationRequest) (reservation.Reservation, error) {
	if f.createFn != nil {
		return f.createFn(ctx, req)
	}
	return reservation.Reservation{}, nil
}

func (f *fakeReservationsRepo) Update(ctx context.Context, id int64, req reservation.UpdateReservationRequest) (reservation.Reservation, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, req)
	}
	return reservation.Reservation{}, nil
}

func (f *fakeReservationsRepo) Delete(context.Context, int64) error {
	return nil
}

func reservationsRouter(repo handlers.ReservationsStore) *gin.Engine {
	h := handlers.NewReservationsHandler(repo)

	r := gin.New()
	r.POST("/reservations", h.CreateReservation)
	r.PUT("/reservations/:id", h.UpdateReservation)

	return r
}

func TestCreateReservation_EndBeforeStartIs422(t *testing.T) {
	r := reservationsRouter(&fakeReservationsRepo{createFn: func(context.Context, reservation.CreateReservationRequest) (reservation.Reservation, error) {
		t.Fatal("repo should not be reached for an invalid window")
		return reservation.Reservation{}, nil
	}})

	w := postJSON(r, "/reservations", `{
		"property": 1,
		"user": 2,
		"start_date": "2026-09-10T12:00:00Z",
		"end_date": "2026-09-08T12:00:00Z"
	}`)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("got %d, want 422, body=%s", w.Code, w.Body.String())
	}

	var resp errResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)

	found := false
	for _, f := range resp.Fields {
		if f.Field == "end_date" && f.Rule == "gtfield" {
			found = true
		}
	}

	if !found {
		t.Fatalf("missing gtfield violation on end_date: %+v", resp.Fields)
	}
}

func TestCreateReservation_OverlapIs422(t *testing.T) {
	r := reservationsRouter(&fakeReservationsRepo{createFn: func(context.Context, reservation.CreateReservationRequest) (reservation.Reservation, error) {
		return reservation.Reservation{}, reservation.ErrOverlapping
	}})

	w := postJSON(r, "/reservations", `{
		"property": 1,
		"user": 2,
		"start_date": "2026-09-08T12:00:00Z",
		"end_date": "2026-09-10T12:00:00Z"
	}`)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("got %d, want 422, body=%s", w.Code, w.Body.String())
	}
}

func TestCreateReservation_Valid(t *testing.T) {
	start := time.Date(2026, 9, 8, 12, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 2)

	r := reservationsRouter(&fakeReservationsRepo{createFn: func(_ context.Context, req reservation.CreateReservationRequest) (reservation.Reservation, error) {
		if !req.StartDate.Equal(start) || !req.EndDate.Equal(end) {
			t.Fatalf("window mismatch: %v..%v", req.StartDate, req.EndDate)
		}
		return reservation.Reservation{ID: 1, PropertyID: req.PropertyID, UserID: req.UserID, StartDate: req.StartDate, EndDate: req.EndDate}, nil
	}})

	w := postJSON(r, "/reservations", `{
		"property": 1,
		"user": 2,
		"start_date": "2026-09-08T12:00:00Z",
		"end_date": "2026-09-10T12:00:00Z"
	}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("got %d, want 201, body=%s", w.Code, w.Body.String())
	}
}

func TestUpdateReservation_DatesSwapIs422(t *testing.T) {
	r := reservationsRouter(&fakeReservationsRepo{updateFn: func(context.Context, int64, reservation.UpdateReservationRequest) (reservation.Reservation, error) {
		return reservation.Reservation{}, reservation.ErrDatesSwap
	}})

	w := postPut(r, "/reservations/3", `{"end_date": "2020-01-01T00:00:00Z"}`)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("got %d, want 422, body=%s", w.Code, w.Body.String())
	}
}

func TestUpdateReservation_NotFound(t *testing.T) {
	r := reservationsRouter(&fakeReservationsRepo{updateFn: func(context.Context, int64, reservation.UpdateReservationRequest) (reservation.Reservation, error) {
		return reservation.Reservation{}, reservation.ErrNotFound
	}})

	w := postPut(r, "/reservations/3", `{"property": 5}`)

	if w.Code != http.StatusNotFound {
		t.Fatalf("got %d, want 404", w.Code)
	}
}
