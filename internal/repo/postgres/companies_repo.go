package postgres

import (
	"context"
	"errors"

	"github.com/ftmlabs/directory-api/internal/domain/company"
	"github.com/ftmlabs/directory-api/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CompaniesRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewCompaniesRepo(pool *pgxpool.Pool, prom *observability.Prom) *CompaniesRepo {
	return &CompaniesRepo{
		pool: pool,
		prom: prom,
	}
}

func (r *CompaniesRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

const companyColumns = `id, label, siret_number, vat_number, city, zip_code, street, country`

func scanCompany(row pgx.Row) (company.Company, error) {
	var c company.Company

	err := row.Scan(
		&c.ID,
		&c.Label,
		&c.SIRETNumber,
		&c.VATNumber,
		&c.City,
		&c.ZipCode,
		&c.Street,
		&c.Country,
	)

	return c, err
}

func (r *CompaniesRepo) List(ctx context.Context, limit, offset int) ([]company.Company, error) {
	var out []company.Company

	err := r.observe("companies.list", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT `+companyColumns+` FROM companies ORDER BY id ASC LIMIT $1 OFFSET $2`,
			limit, offset)

		if err != nil {
			return err
		}

		defer rows.Close()

		out = make([]company.Company, 0, limit)

		for rows.Next() {
			c, err := scanCompany(rows)

			if err != nil {
				return err
			}

			out = append(out, c)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *CompaniesRepo) GetByID(ctx context.Context, id int64) (company.Company, error) {
	var c company.Company

	err := r.observe("companies.get_by_id", func() error {
		var err error
		c, err = scanCompany(r.pool.QueryRow(ctx,
			`SELECT `+companyColumns+` FROM companies WHERE id = $1`, id))
		return err
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrNotFound
		}

		return company.Company{}, err
	}

	return c, nil
}

func (r *CompaniesRepo) Create(ctx context.Context, req company.CreateCompanyRequest) (company.Company, error) {
	var c company.Company

	err := r.observe("companies.create", func() error {
		var err error
		c, err = scanCompany(r.pool.QueryRow(ctx,
			`INSERT INTO companies (label, siret_number, vat_number, city, zip_code, street, country)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING `+companyColumns,
			req.Label, req.SIRETNumber, req.VATNumber, req.City, req.ZipCode, req.Street, req.Country,
		))
		return err
	})

	if err != nil {
		return company.Company{}, mapConstraintErr(err)
	}

	return c, nil
}

func (r *CompaniesRepo) Update(ctx context.Context, id int64, req company.UpdateCompanyRequest) (company.Company, error) {
	var c company.Company

	err := r.observe("companies.update", func() error {
		var err error
		c, err = scanCompany(r.pool.QueryRow(ctx,
			`UPDATE companies
			SET label = COALESCE($2, label),
				siret_number = COALESCE($3, siret_number),
				vat_number = COALESCE($4, vat_number),
				city = COALESCE($5, city),
				zip_code = COALESCE($6, zip_code),
				street = COALESCE($7, street),
				country = COALESCE($8, country)
			WHERE id = $1
			RETURNING `+companyColumns,
			id, req.Label, req.SIRETNumber, req.VATNumber, req.City, req.ZipCode, req.Street, req.Country,
		))
		return err
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrNotFound
		}

		return company.Company{}, mapConstraintErr(err)
	}

	return c, nil
}

func (r *CompaniesRepo) Delete(ctx context.Context, id int64) error {
	return r.observe("companies.delete", func() error {
		tag, err := r.pool.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)

		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return company.ErrNotFound
		}

		return nil
	})
}
