package postgres

import (
	"context"
	"errors"

	"github.com/ftmlabs/directory-api/internal/domain/picture"
	"github.com/ftmlabs/directory-api/internal/domain/property"
	"github.com/ftmlabs/directory-api/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PropertiesRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewPropertiesRepo(pool *pgxpool.Pool, prom *observability.Prom) *PropertiesRepo {
	return &PropertiesRepo{
		pool: pool,
		prom: prom,
	}
}

func (r *PropertiesRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

// List optionally narrows on an exact label, like the original ?name= query.
func (r *PropertiesRepo) List(ctx context.Context, label string, limit, offset int) ([]property.Property, error) {
	query := `SELECT id, label, lat, long FROM properties ORDER BY id ASC LIMIT $1 OFFSET $2`
	args := []interface{}{limit, offset}

	if label != "" {
		query = `SELECT id, label, lat, long FROM properties WHERE label = $3 ORDER BY id ASC LIMIT $1 OFFSET $2`
		args = append(args, label)
	}

	var out []property.Property

	err := r.observe("properties.list", func() error {
		rows, err := r.pool.Query(ctx, query, args...)

		if err != nil {
			return err
		}

		defer rows.Close()

		out = make([]property.Property, 0, limit)

		for rows.Next() {
			var p property.Property

			if err := rows.Scan(&p.ID, &p.Label, &p.Lat, &p.Long); err != nil {
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

// GetByID also loads the property's pictures, mirroring the original
// include of the picture relation.
func (r *PropertiesRepo) GetByID(ctx context.Context, id int64) (property.Property, error) {
	var p property.Property

	err := r.observe("properties.get_by_id", func() error {
		err := r.pool.QueryRow(ctx,
			`SELECT id, label, lat, long FROM properties WHERE id = $1`, id).
			Scan(&p.ID, &p.Label, &p.Lat, &p.Long)

		if err != nil {
			return err
		}

		rows, err := r.pool.Query(ctx,
			`SELECT id, url, alt, property_id FROM pictures WHERE property_id = $1 ORDER BY id ASC`, id)

		if err != nil {
			return err
		}

		defer rows.Close()

		for rows.Next() {
			var pic picture.Picture

			if err := rows.Scan(&pic.ID, &pic.URL, &pic.Alt, &pic.PropertyID); err != nil {
				return err
			}

			p.Pictures = append(p.Pictures, pic)
		}

		return rows.Err()
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return property.Property{}, property.ErrNotFound
		}

		return property.Property{}, err
	}

	return p, nil
}

// Create inserts the property and its first picture in one transaction, the
// short connect/create chain the original did through its ORM.
func (r *PropertiesRepo) Create(ctx context.Context, req property.CreatePropertyRequest) (property.Property, error) {
	var p property.Property

	err := r.observe("properties.create", func() error {
		tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})

		if err != nil {
			return err
		}

		defer func() { _ = tx.Rollback(ctx) }()

		err = tx.QueryRow(ctx,
			`INSERT INTO properties (label, lat, long) VALUES ($1, $2, $3) RETURNING id, label, lat, long`,
			req.Label, req.Lat, req.Long,
		).Scan(&p.ID, &p.Label, &p.Lat, &p.Long)

		if err != nil {
			return err
		}

		var pic picture.Picture

		err = tx.QueryRow(ctx,
			`INSERT INTO pictures (url, alt, property_id) VALUES ($1, $2, $3) RETURNING id, url, alt, property_id`,
			req.PictureURL, req.PictureAlt, p.ID,
		).Scan(&pic.ID, &pic.URL, &pic.Alt, &pic.PropertyID)

		if err != nil {
			return err
		}

		p.Pictures = append(p.Pictures, pic)

		return tx.Commit(ctx)
	})

	if err != nil {
		return property.Property{}, mapConstraintErr(err)
	}

	return p, nil
}

func (r *PropertiesRepo) Update(ctx context.Context, id int64, req property.UpdatePropertyRequest) (property.Property, error) {
	var p property.Property

	err := r.observe("properties.update", func() error {
		return r.pool.QueryRow(ctx,
			`UPDATE properties
			SET label = COALESCE($2, label),
				lat = COALESCE($3, lat),
				long = COALESCE($4, long)
			WHERE id = $1
			RETURNING id, label, lat, long`,
			id, req.Label, req.Lat, req.Long,
		).Scan(&p.ID, &p.Label, &p.Lat, &p.Long)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return property.Property{}, property.ErrNotFound
		}

		return property.Property{}, mapConstraintErr(err)
	}

	return p, nil
}

// Delete cascades to pictures and reservations through the schema.
func (r *PropertiesRepo) Delete(ctx context.Context, id int64) error {
	return r.observe("properties.delete", func() error {
		tag, err := r.pool.Exec(ctx, `DELETE FROM properties WHERE id = $1`, id)

		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return property.ErrNotFound
		}

		return nil
	})
}
