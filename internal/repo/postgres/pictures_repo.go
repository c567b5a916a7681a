package postgres

import (
	"context"
	"errors"

	"github.com/ftmlabs/directory-api/internal/domain/picture"
	"github.com/ftmlabs/directory-api/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PicturesRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewPicturesRepo(pool *pgxpool.Pool, prom *observability.Prom) *PicturesRepo {
	return &PicturesRepo{
		pool: pool,
		prom: prom,
	}
}

func (r *PicturesRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *PicturesRepo) List(ctx context.Context, limit, offset int) ([]picture.Picture, error) {
	var out []picture.Picture

	err := r.observe("pictures.list", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT id, url, alt, property_id FROM pictures ORDER BY id ASC LIMIT $1 OFFSET $2`,
			limit, offset)

		if err != nil {
			return err
		}

		defer rows.Close()

		out = make([]picture.Picture, 0, limit)

		for rows.Next() {
			var p picture.Picture

			if err := rows.Scan(&p.ID, &p.URL, &p.Alt, &p.PropertyID); err != nil {
				return err
			}

			out = append(out, p)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *PicturesRepo) GetByID(ctx context.Context, id int64) (picture.Picture, error) {
	var p picture.Picture

	err := r.observe("pictures.get_by_id", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT id, url, alt, property_id FROM pictures WHERE id = $1`, id).
			Scan(&p.ID, &p.URL, &p.Alt, &p.PropertyID)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return picture.Picture{}, picture.ErrNotFound
		}

		return picture.Picture{}, err
	}

	return p, nil
}

func (r *PicturesRepo) Create(ctx context.Context, req picture.CreatePictureRequest) (picture.Picture, error) {
	var p picture.Picture

	err := r.observe("pictures.create", func() error {
		return r.pool.QueryRow(ctx,
			`INSERT INTO pictures (url, alt, property_id) VALUES ($1, $2, $3)
			RETURNING id, url, alt, property_id`,
			req.URL, req.Alt, req.PropertyID,
		).Scan(&p.ID, &p.URL, &p.Alt, &p.PropertyID)
	})

	if err != nil {
		return picture.Picture{}, mapConstraintErr(err)
	}

	return p, nil
}

func (r *PicturesRepo) Update(ctx context.Context, id int64, req picture.UpdatePictureRequest) (picture.Picture, error) {
	var p picture.Picture

	err := r.observe("pictures.update", func() error {
		return r.pool.QueryRow(ctx,
			`UPDATE pictures
			SET url = COALESCE($2, url),
				alt = COALESCE($3, alt),
				property_id = COALESCE($4, property_id)
			WHERE id = $1
			RETURNING id, url, alt, property_id`,
			id, req.URL, req.Alt, req.PropertyID,
		).Scan(&p.ID, &p.URL, &p.Alt, &p.PropertyID)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return picture.Picture{}, picture.ErrNotFound
		}

		return picture.Picture{}, mapConstraintErr(err)
	}

	return p, nil
}

func (r *PicturesRepo) Delete(ctx context.Context, id int64) error {
	return r.observe("pictures.delete", func() error {
		tag, err := r.pool.Exec(ctx, `DELETE FROM pictures WHERE id = $1`, id)

		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return picture.ErrNotFound
		}

		return nil
	})
}
