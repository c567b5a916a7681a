package postgres

import (
	"context"
	"errors"

	"github.com/ftmlabs/directory-api/internal/domain/family"
	"github.com/ftmlabs/directory-api/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FamiliesRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewFamiliesRepo(pool *pgxpool.Pool, prom *observability.Prom) *FamiliesRepo {
	return &FamiliesRepo{
		pool: pool,
		prom: prom,
	}
}

func (r *FamiliesRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

const familyColumns = `id, firstname, lastname, linkedin, github, zone, picture_url`

func scanFamily(row pgx.Row) (family.Family, error) {
	var f family.Family

	err := row.Scan(&f.ID, &f.Firstname, &f.Lastname, &f.Linkedin, &f.Github, &f.Zone, &f.PictureURL)

	return f, err
}

func (r *FamiliesRepo) List(ctx context.Context, limit, offset int) ([]family.Family, error) {
	var out []family.Family

	err := r.observe("families.list", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT `+familyColumns+` FROM families ORDER BY id ASC LIMIT $1 OFFSET $2`,
			limit, offset)

		if err != nil {
			return err
		}

		defer rows.Close()

		out = make([]family.Family, 0, limit)

		for rows.Next() {
			f, err := scanFamily(rows)

			if err != nil {
				return err
			}

			out = append(out, f)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *FamiliesRepo) GetByID(ctx context.Context, id int64) (family.Family, error) {
	var f family.Family

	err := r.observe("families.get_by_id", func() error {
		var err error
		f, err = scanFamily(r.pool.QueryRow(ctx,
			`SELECT `+familyColumns+` FROM families WHERE id = $1`, id))
		return err
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return family.Family{}, family.ErrNotFound
		}

		return family.Family{}, err
	}

	return f, nil
}

func (r *FamiliesRepo) Create(ctx context.Context, req family.CreateFamilyRequest) (family.Family, error) {
	var f family.Family

	err := r.observe("families.create", func() error {
		var err error
		f, err = scanFamily(r.pool.QueryRow(ctx,
			`INSERT INTO families (firstname, lastname, linkedin, github, zone, picture_url)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING `+familyColumns,
			req.Firstname, req.Lastname, req.Linkedin, req.Github, req.Zone, req.PictureURL,
		))
		return err
	})

	if err != nil {
		return family.Family{}, mapConstraintErr(err)
	}

	return f, nil
}

func (r *FamiliesRepo) Update(ctx context.Context, id int64, req family.UpdateFamilyRequest) (family.Family, error) {
	var f family.Family

	err := r.observe("families.update", func() error {
		var err error
		f, err = scanFamily(r.pool.QueryRow(ctx,
			`UPDATE families
			SET firstname = COALESCE($2, firstname),
				lastname = COALESCE($3, lastname),
				linkedin = COALESCE($4, linkedin),
				github = COALESCE($5, github),
				zone = COALESCE($6, zone),
				picture_url = COALESCE($7, picture_url)
			WHERE id = $1
			RETURNING `+familyColumns,
			id, req.Firstname, req.Lastname, req.Linkedin, req.Github, req.Zone, req.PictureURL,
		))
		return err
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return family.Family{}, family.ErrNotFound
		}

		return family.Family{}, mapConstraintErr(err)
	}

	return f, nil
}

func (r *FamiliesRepo) Delete(ctx context.Context, id int64) error {
	return r.observe("families.delete", func() error {
		tag, err := r.pool.Exec(ctx, `DELETE FROM families WHERE id = $1`, id)

		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return family.ErrNotFound
		}

		return nil
	})
}
