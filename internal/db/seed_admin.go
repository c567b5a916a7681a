package db

import (
	"context"
	"errors"

	"github.com/ftmlabs/directory-api/internal/config"
	"github.com/ftmlabs/directory-api/internal/domain/role"
	"github.com/ftmlabs/directory-api/internal/security"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSuperadmin bootstraps the first superadmin account so the role-gated
// routes are reachable on a fresh database. No-op unless both ADMIN_EMAIL and
// ADMIN_PASSWORD are configured, and idempotent across restarts.
func EnsureSuperadmin(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	// check if the user exists

	var dummy int64

	err := pool.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, cfg.AdminEmail).Scan(&dummy)

	if err == nil {
		return nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := security.HashPassword(cfg.AdminPassword)

	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO users (email, password_hash, firstname, lastname, role_id)
		VALUES ($1, $2, 'Super', 'Admin', (SELECT id FROM roles WHERE label = $3))
		`,
		cfg.AdminEmail, hash, role.Superadmin,
	)

	return err
}
