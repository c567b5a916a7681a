package postgres

import (
	"context"
	"errors"

	"github.com/ftmlabs/directory-api/internal/domain/role"
	"github.com/ftmlabs/directory-api/internal/domain/user"
	"github.com/ftmlabs/directory-api/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UsersRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewUsersRepo(pool *pgxpool.Pool, prom *observability.Prom) *UsersRepo {
	return &UsersRepo{
		pool: pool,
		prom: prom,
	}
}

func (r *UsersRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

const userColumns = `u.id, u.email, u.password_hash, u.firstname, u.lastname,
	u.phone_number, u.job_title, u.language,
	COALESCE(r.label, ''), u.company_id, u.created_at, u.updated_at`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User

	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Firstname,
		&u.Lastname,
		&u.PhoneNumber,
		&u.JobTitle,
		&u.Language,
		&u.Role,
		&u.CompanyID,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	return u, err
}

// Create inserts a signup as a prospect. The company link is resolved from the
// provided SIRET; an unknown SIRET simply leaves the user without a company.
func (r *UsersRepo) Create(ctx context.Context, req user.CreateUserRequest, passwordHash string) (user.User, error) {
	var u user.User

	err := r.observe("users.create", func() error {
		var err error
		u, err = scanUser(r.pool.QueryRow(ctx,
			`WITH inserted AS (
				INSERT INTO users (email, password_hash, firstname, lastname, phone_number, job_title, language, role_id, company_id)
				VALUES ($1, $2, $3, $4, $5, $6, $7,
					(SELECT id FROM roles WHERE label = $8),
					(SELECT id FROM companies WHERE siret_number = $9))
				RETURNING *
			)
			SELECT `+userColumns+`
			FROM inserted u
			LEFT JOIN roles r ON r.id = u.role_id`,
			req.Email, passwordHash, req.Firstname, req.Lastname,
			req.PhoneNumber, req.JobTitle, req.Language,
			role.Prospect, req.CompanySIRET,
		))
		return err
	})

	if err != nil {
		return user.User{}, mapConstraintErr(err)
	}

	return u, nil
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User

	err := r.observe("users.get_by_email", func() error {
		var err error
		u, err = scanUser(r.pool.QueryRow(ctx,
			`SELECT `+userColumns+`
			FROM users u
			LEFT JOIN roles r ON r.id = u.role_id
			WHERE u.email = $1`, email))
		return err
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}
	return u, nil
}

// GetByID also carries the labels of the products the user holds, resolved
// through the user_products join table.
func (r *UsersRepo) GetByID(ctx context.Context, id int64) (user.User, error) {
	var u user.User

	err := r.observe("users.get_by_id", func() error {
		var err error
		u, err = scanUser(r.pool.QueryRow(ctx,
			`SELECT `+userColumns+`
			FROM users u
			LEFT JOIN roles r ON r.id = u.role_id
			WHERE u.id = $1`, id))

		if err != nil {
			return err
		}

		return r.pool.QueryRow(ctx,
			`SELECT COALESCE(array_agg(p.label ORDER BY p.label), '{}')
			FROM user_products up
			JOIN products p ON p.id = up.product_id
			WHERE up.user_id = $1`, id,
		).Scan(&u.Products)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) List(ctx context.Context, limit, offset int) ([]user.User, error) {
	var out []user.User

	err := r.observe("users.list", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT `+userColumns+`
			FROM users u
			LEFT JOIN roles r ON r.id = u.role_id
			ORDER BY u.id ASC
			LIMIT $1 OFFSET $2`, limit, offset)

		if err != nil {
			return err
		}

		defer rows.Close()

		out = make([]user.User, 0, limit)

		for rows.Next() {
			u, err := scanUser(rows)

			if err != nil {
				return err
			}

			out = append(out, u)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

// Update patches only the fields present in the request. A nil pointer keeps
// the stored value thanks to COALESCE.
func (r *UsersRepo) Update(ctx context.Context, id int64, req user.UpdateUserRequest, passwordHash *string) (user.User, error) {
	var u user.User

	err := r.observe("users.update", func() error {
		var err error
		u, err = scanUser(r.pool.QueryRow(ctx,
			`WITH updated AS (
				UPDATE users
				SET email = COALESCE($2, email),
					password_hash = COALESCE($3, password_hash),
					firstname = COALESCE($4, firstname),
					lastname = COALESCE($5, lastname),
					phone_number = COALESCE($6, phone_number),
					job_title = COALESCE($7, job_title),
					language = COALESCE($8, language),
					role_id = COALESCE((SELECT id FROM roles WHERE label = $9), role_id),
					updated_at = NOW()
				WHERE id = $1
				RETURNING *
			)
			SELECT `+userColumns+`
			FROM updated u
			LEFT JOIN roles r ON r.id = u.role_id`,
			id, req.Email, passwordHash, req.Firstname, req.Lastname,
			req.PhoneNumber, req.JobTitle, req.Language, req.Role,
		))
		return err
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, mapConstraintErr(err)
	}

	return u, nil
}

// Delete relies on the schema's ON DELETE CASCADE to clear the user's
// notifications and reservations, no manual dependent deletes.
func (r *UsersRepo) Delete(ctx context.Context, id int64) error {
	return r.observe("users.delete", func() error {
		tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)

		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return user.ErrNotFound
		}

		return nil
	})
}
