package postgres

import (
	"context"
	"errors"

	"github.com/ftmlabs/directory-api/internal/domain/role"
	"github.com/ftmlabs/directory-api/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RolesRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewRolesRepo(pool *pgxpool.Pool, prom *observability.Prom) *RolesRepo {
	return &RolesRepo{
		pool: pool,
		prom: prom,
	}
}

func (r *RolesRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

// List optionally narrows on an exact label, like the original ?role= query.
func (r *RolesRepo) List(ctx context.Context, label string) ([]role.Role, error) {
	query := `SELECT id, label FROM roles ORDER BY id ASC`
	args := []interface{}{}

	if label != "" {
		query = `SELECT id, label FROM roles WHERE label = $1 ORDER BY id ASC`
		args = append(args, label)
	}

	var out []role.Role

	err := r.observe("roles.list", func() error {
		rows, err := r.pool.Query(ctx, query, args...)

		if err != nil {
			return err
		}

		defer rows.Close()

		out = []role.Role{}

		for rows.Next() {
			var ro role.Role

			if err := rows.Scan(&ro.ID, &ro.Label); err != nil {
				return err
			}

			out = append(out, ro)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *RolesRepo) GetByID(ctx context.Context, id int64) (role.Role, error) {
	var ro role.Role

	err := r.observe("roles.get_by_id", func() error {
		return r.pool.QueryRow(ctx, `SELECT id, label FROM roles WHERE id = $1`, id).
			Scan(&ro.ID, &ro.Label)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return role.Role{}, role.ErrNotFound
		}

		return role.Role{}, err
	}

	return ro, nil
}

func (r *RolesRepo) Create(ctx context.Context, req role.CreateRoleRequest) (role.Role, error) {
	var ro role.Role

	err := r.observe("roles.create", func() error {
		return r.pool.QueryRow(ctx,
			`INSERT INTO roles (label) VALUES ($1) RETURNING id, label`,
			req.Label,
		).Scan(&ro.ID, &ro.Label)
	})

	if err != nil {
		return role.Role{}, mapConstraintErr(err)
	}

	return ro, nil
}

func (r *RolesRepo) Update(ctx context.Context, id int64, req role.UpdateRoleRequest) (role.Role, error) {
	var ro role.Role

	err := r.observe("roles.update", func() error {
		return r.pool.QueryRow(ctx,
			`UPDATE roles SET label = $2 WHERE id = $1 RETURNING id, label`,
			id, req.Label,
		).Scan(&ro.ID, &ro.Label)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return role.Role{}, role.ErrNotFound
		}

		return role.Role{}, mapConstraintErr(err)
	}

	return ro, nil
}

func (r *RolesRepo) Delete(ctx context.Context, id int64) error {
	return r.observe("roles.delete", func() error {
		tag, err := r.pool.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)

		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return role.ErrNotFound
		}

		return nil
	})
}
