package postgres

import (
	"context"
	"errors"

	"github.com/ftmlabs/directory-api/internal/domain/product"
	"github.com/ftmlabs/directory-api/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewProductsRepo(pool *pgxpool.Pool, prom *observability.Prom) *ProductsRepo {
	return &ProductsRepo{
		pool: pool,
		prom: prom,
	}
}

func (r *ProductsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

// productColumns folds the user_products join table into an owners array so a
// product carries the ids of the users holding it, the way clients consume it.
const productColumns = `p.id, p.label,
	COALESCE(array_agg(up.user_id ORDER BY up.user_id) FILTER (WHERE up.user_id IS NOT NULL), '{}')`

func (r *ProductsRepo) List(ctx context.Context, label string) ([]product.Product, error) {
	var out []product.Product

	err := r.observe("products.list", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT `+productColumns+`
			FROM products p
			LEFT JOIN user_products up ON up.product_id = p.id
			WHERE $1 = '' OR p.label = $1
			GROUP BY p.id
			ORDER BY p.id ASC`, label)

		if err != nil {
			return err
		}

		defer rows.Close()

		out = []product.Product{}

		for rows.Next() {
			var p product.Product

			if err := rows.Scan(&p.ID, &p.Label, &p.Owners); err != nil {
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

func (r *ProductsRepo) GetByID(ctx context.Context, id int64) (product.Product, error) {
	var p product.Product

	err := r.observe("products.get_by_id", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT `+productColumns+`
			FROM products p
			LEFT JOIN user_products up ON up.product_id = p.id
			WHERE p.id = $1
			GROUP BY p.id`, id).
			Scan(&p.ID, &p.Label, &p.Owners)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return product.Product{}, product.ErrNotFound
		}

		return product.Product{}, err
	}

	return p, nil
}

func (r *ProductsRepo) Create(ctx context.Context, req product.CreateProductRequest) (product.Product, error) {
	var p product.Product

	err := r.observe("products.create", func() error {
		return r.pool.QueryRow(ctx,
			`INSERT INTO products (label) VALUES ($1) RETURNING id, label`,
			req.Label,
		).Scan(&p.ID, &p.Label)
	})

	if err != nil {
		return product.Product{}, mapConstraintErr(err)
	}

	p.Owners = []int64{}

	return p, nil
}

func (r *ProductsRepo) Update(ctx context.Context, id int64, req product.UpdateProductRequest) (product.Product, error) {
	var p product.Product

	err := r.observe("products.update", func() error {
		if err := r.pool.QueryRow(ctx,
			`UPDATE products SET label = $2 WHERE id = $1 RETURNING id, label`,
			id, req.Label,
		).Scan(&p.ID, &p.Label); err != nil {
			return err
		}

		return r.pool.QueryRow(ctx,
			`SELECT COALESCE(array_agg(user_id ORDER BY user_id), '{}') FROM user_products WHERE product_id = $1`,
			id,
		).Scan(&p.Owners)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return product.Product{}, product.ErrNotFound
		}

		return product.Product{}, mapConstraintErr(err)
	}

	return p, nil
}

func (r *ProductsRepo) Delete(ctx context.Context, id int64) error {
	return r.observe("products.delete", func() error {
		tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)

		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return product.ErrNotFound
		}

		return nil
	})
}
