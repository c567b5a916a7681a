package postgres

import (
	"context"
	"errors"

	"github.com/ftmlabs/directory-api/internal/domain/reservation"
	"github.com/ftmlabs/directory-api/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReservationsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewReservationsRepo(pool *pgxpool.Pool, prom *observability.Prom) *ReservationsRepo {
	return &ReservationsRepo{
		pool: pool,
		prom: prom,
	}
}

func (r *ReservationsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

const reservationColumns = `id, property_id, user_id, start_date, end_date`

func scanReservation(row pgx.Row) (reservation.Reservation, error) {
	var res reservation.Reservation

	err := row.Scan(&res.ID, &res.PropertyID, &res.UserID, &res.StartDate, &res.EndDate)

	return res, err
}

func (r *ReservationsRepo) List(ctx context.Context, limit, offset int) ([]reservation.Reservation, error) {
	var out []reservation.Reservation

	err := r.observe("reservations.list", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT `+reservationColumns+` FROM reservations ORDER BY start_date ASC LIMIT $1 OFFSET $2`,
			limit, offset)

		if err != nil {
			return err
		}

		defer rows.Close()

		out = make([]reservation.Reservation, 0, limit)

		for rows.Next() {
			res, err := scanReservation(rows)

			if err != nil {
				return err
			}

			out = append(out, res)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *ReservationsRepo) GetByID(ctx context.Context, id int64) (reservation.Reservation, error) {
	var res reservation.Reservation

	err := r.observe("reservations.get_by_id", func() error {
		var err error
		res, err = scanReservation(r.pool.QueryRow(ctx,
			`SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id))
		return err
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return reservation.Reservation{}, reservation.ErrNotFound
		}

		return reservation.Reservation{}, err
	}

	return res, nil
}

// Create refuses a booking whose window overlaps an existing one for the
// same property before inserting.
func (r *ReservationsRepo) Create(ctx context.Context, req reservation.CreateReservationRequest) (reservation.Reservation, error) {
	var res reservation.Reservation

	err := r.observe("reservations.create", func() error {
		tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})

		if err != nil {
			return err
		}

		defer func() { _ = tx.Rollback(ctx) }()

		var clash bool

		err = tx.QueryRow(ctx,
			`SELECT EXISTS (
				SELECT 1 FROM reservations
				WHERE property_id = $1 AND start_date < $3 AND end_date > $2
			)`,
			req.PropertyID, req.StartDate, req.EndDate,
		).Scan(&clash)

		if err != nil {
			return err
		}

		if clash {
			return reservation.ErrOverlapping
		}

		res, err = scanReservation(tx.QueryRow(ctx,
			`INSERT INTO reservations (property_id, user_id, start_date, end_date)
			VALUES ($1, $2, $3, $4)
			RETURNING `+reservationColumns,
			req.PropertyID, req.UserID, req.StartDate, req.EndDate,
		))

		if err != nil {
			return err
		}

		return tx.Commit(ctx)
	})

	if err != nil {
		if errors.Is(err, reservation.ErrOverlapping) {
			return reservation.Reservation{}, err
		}

		return reservation.Reservation{}, mapConstraintErr(err)
	}

	return res, nil
}

func (r *ReservationsRepo) Update(ctx context.Context, id int64, req reservation.UpdateReservationRequest) (reservation.Reservation, error) {
	var res reservation.Reservation

	err := r.observe("reservations.update", func() error {
		var err error
		res, err = scanReservation(r.pool.QueryRow(ctx,
			`UPDATE reservations
			SET property_id = COALESCE($2, property_id),
				start_date = COALESCE($3, start_date),
				end_date = COALESCE($4, end_date)
			WHERE id = $1
			RETURNING `+reservationColumns,
			id, req.PropertyID, req.StartDate, req.EndDate,
		))
		return err
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return reservation.Reservation{}, reservation.ErrNotFound
		}

		// the schema CHECK rejects a window whose end precedes its start
		if isCheckViolation(err) {
			return reservation.Reservation{}, reservation.ErrDatesSwap
		}

		return reservation.Reservation{}, mapConstraintErr(err)
	}

	return res, nil
}

func (r *ReservationsRepo) Delete(ctx context.Context, id int64) error {
	return r.observe("reservations.delete", func() error {
		tag, err := r.pool.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id)

		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return reservation.ErrNotFound
		}

		return nil
	})
}
