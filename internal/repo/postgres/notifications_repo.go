package postgres

import (
	"context"
	"errors"

	"github.com/ftmlabs/directory-api/internal/domain/notification"
	"github.com/ftmlabs/directory-api/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NotificationsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewNotificationsRepo(pool *pgxpool.Pool, prom *observability.Prom) *NotificationsRepo {
	return &NotificationsRepo{
		pool: pool,
		prom: prom,
	}
}

func (r *NotificationsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

const notificationColumns = `id, zone, vertical_trade, sms, email, user_id`

func scanNotification(row pgx.Row) (notification.Notification, error) {
	var n notification.Notification

	err := row.Scan(&n.ID, &n.Zone, &n.VerticalTrade, &n.SMS, &n.Email, &n.UserID)

	return n, err
}

func (r *NotificationsRepo) List(ctx context.Context, limit, offset int) ([]notification.Notification, error) {
	var out []notification.Notification

	err := r.observe("notifications.list", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT `+notificationColumns+` FROM notifications ORDER BY id ASC LIMIT $1 OFFSET $2`,
			limit, offset)

		if err != nil {
			return err
		}

		defer rows.Close()

		out = make([]notification.Notification, 0, limit)

		for rows.Next() {
			n, err := scanNotification(rows)

			if err != nil {
				return err
			}

			out = append(out, n)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *NotificationsRepo) GetByID(ctx context.Context, id int64) (notification.Notification, error) {
	var n notification.Notification

	err := r.observe("notifications.get_by_id", func() error {
		var err error
		n, err = scanNotification(r.pool.QueryRow(ctx,
			`SELECT `+notificationColumns+` FROM notifications WHERE id = $1`, id))
		return err
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notification.Notification{}, notification.ErrNotFound
		}

		return notification.Notification{}, err
	}

	return n, nil
}

func (r *NotificationsRepo) Create(ctx context.Context, req notification.CreateNotificationRequest) (notification.Notification, error) {
	var n notification.Notification

	err := r.observe("notifications.create", func() error {
		var err error
		n, err = scanNotification(r.pool.QueryRow(ctx,
			`INSERT INTO notifications (zone, vertical_trade, sms, email, user_id)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+notificationColumns,
			req.Zone, req.VerticalTrade, *req.SMS, *req.Email, req.UserID,
		))
		return err
	})

	if err != nil {
		return notification.Notification{}, mapConstraintErr(err)
	}

	return n, nil
}

func (r *NotificationsRepo) Update(ctx context.Context, id int64, req notification.UpdateNotificationRequest) (notification.Notification, error) {
	var n notification.Notification

	err := r.observe("notifications.update", func() error {
		var err error
		n, err = scanNotification(r.pool.QueryRow(ctx,
			`UPDATE notifications
			SET zone = COALESCE($2, zone),
				vertical_trade = COALESCE($3, vertical_trade),
				sms = COALESCE($4, sms),
				email = COALESCE($5, email)
			WHERE id = $1
			RETURNING `+notificationColumns,
			id, req.Zone, req.VerticalTrade, req.SMS, req.Email,
		))
		return err
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notification.Notification{}, notification.ErrNotFound
		}

		return notification.Notification{}, mapConstraintErr(err)
	}

	return n, nil
}

func (r *NotificationsRepo) Delete(ctx context.Context, id int64) error {
	return r.observe("notifications.delete", func() error {
		tag, err := r.pool.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)

		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return notification.ErrNotFound
		}

		return nil
	})
}
