package db

import (
	"context"
	"database/sql"
	"embed"
	"time"

	"github.com/KOFI-GYIMAH/github-connector/internal/models"
	"github.com/KOFI-GYIMAH/github-connector/pkg/errors"
	"github.com/KOFI-GYIMAH/github-connector/pkg/logger"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const defaultListLimit = 50

type PostgresDB struct {
	db *sql.DB
}

var _ models.Database = (*PostgresDB)(nil)

func NewPostgresDB(url string) (*PostgresDB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, errors.New(
			"DB_CONNECTION_ERROR",
			"Failed to open database connection",
			"Could not initialize database connection",
			err,
			errors.LevelError,
		)
	}

	// * Invocations are short lived; keep the pool small
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.New(
			"DB_CONNECTION_ERROR",
			"Failed to verify database connection",
			"Database ping failed",
			err,
			errors.LevelError,
		)
	}

	logger.Info("connected to audit database successfully 🎉")
	return &PostgresDB{db: db}, nil
}

func (p *PostgresDB) Migrate() error {
	driver, err := postgres.WithInstance(p.db, &postgres.Config{})
	if err != nil {
		return errors.New(
			"DB_MIGRATION_ERROR",
			"Failed to create migration driver",
			"Could not initialize migration driver instance",
			err,
			errors.LevelError,
		)
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return errors.New(
			"DB_MIGRATION_ERROR",
			"Failed to load migrations",
			"Could not read embedded migration files",
			err,
			errors.LevelError,
		)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return errors.New(
			"DB_MIGRATION_ERROR",
			"Failed to create migration instance",
			"Could not create migration instance with database",
			err,
			errors.LevelError,
		)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return errors.New(
			"DB_MIGRATION_ERROR",
			"Failed to run migrations",
			"Migration up operation failed",
			err,
			errors.LevelError,
		)
	}

	return nil
}

func (p *PostgresDB) Close() error {
	if err := p.db.Close(); err != nil {
		return errors.New(
			"DB_CONNECTION_ERROR",
			"Failed to close database connection",
			"Error while closing database connection",
			err,
			errors.LevelWarning,
		)
	}
	return nil
}

func (p *PostgresDB) RecordInvocation(ctx context.Context, inv *models.Invocation) error {
	query := `
		INSERT INTO invocations (source, action, status_code, duration_ms, error, invoked_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var errText sql.NullString
	if inv.Error != "" {
		errText = sql.NullString{String: inv.Error, Valid: true}
	}

	row := p.db.QueryRowContext(ctx, query,
		string(inv.Source), inv.Action, inv.StatusCode, inv.DurationMS, errText, inv.InvokedAt,
	)

	if err := row.Scan(&inv.ID); err != nil {
		return errors.New(
			"DB_INVOCATION_ERROR",
			"Failed to record invocation",
			"Could not insert invocation audit row",
			err,
			errors.LevelWarning,
		)
	}

	return nil
}

func (p *PostgresDB) ListInvocations(ctx context.Context, limit int) ([]models.Invocation, error) {
	if limit < 1 {
		limit = defaultListLimit
	}

	query := `
		SELECT id, source, action, status_code, duration_ms, error, invoked_at
		FROM invocations
		ORDER BY invoked_at DESC
		LIMIT $1
	`

	rows, err := p.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, errors.New(
			"DB_INVOCATION_ERROR",
			"Failed to list invocations",
			"Could not query invocation audit rows",
			err,
			errors.LevelError,
		)
	}
	defer rows.Close()

	invocations := []models.Invocation{}
	for rows.Next() {
		var (
			inv     models.Invocation
			source  string
			errText sql.NullString
		)
		if err := rows.Scan(&inv.ID, &source, &inv.Action, &inv.StatusCode, &inv.DurationMS, &errText, &inv.InvokedAt); err != nil {
			return nil, errors.New(
				"DB_INVOCATION_ERROR",
				"Failed to read invocation",
				"Could not scan invocation audit row",
				err,
				errors.LevelError,
			)
		}
		inv.Source = models.Source(source)
		inv.Error = errText.String
		invocations = append(invocations, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.New(
			"DB_INVOCATION_ERROR",
			"Failed to list invocations",
			"Error while iterating invocation audit rows",
			err,
			errors.LevelError,
		)
	}

	return invocations, nil
}
