package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Migrate brings the schema up to date. Goose wants database/sql, so it gets
// its own short-lived connection instead of the pgx pool.
func Migrate(ctx context.Context, dbURL string, log *slog.Logger) error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(&slogGooseLogger{log: log})

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	db, err := sql.Open("pgx", dbURL)

	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}

	defer db.Close()

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

type slogGooseLogger struct {
	log *slog.Logger
}

func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Error(fmt.Sprintf(format, v...), "component", "migrations")
}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.log.Info(fmt.Sprintf(format, v...), "component", "migrations")
}
