package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/visualvc/versionlog/pkg/store/migrations"
)

// Postgres bundles the repositories sharing one database handle.
type Postgres struct {
	db       *sql.DB
	users    *UserRepository
	versions *VersionRepository
}

// Open connects to Postgres via the pgx stdlib driver and applies pending
// migrations before returning.
func Open(ctx context.Context, dsn string) (*Postgres, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	p := &Postgres{
		db:       db,
		users:    NewUserRepository(db),
		versions: NewVersionRepository(db),
	}

	if err := p.RunMigrations(ctx); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return p, nil
}

// RunMigrations applies the embedded goose migrations.
func (p *Postgres) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.UpContext(ctx, p.db, "."); err != nil {
		return err
	}

	return nil
}

func (p *Postgres) Conn() *sql.DB {
	return p.db
}

func (p *Postgres) Users() UserStore {
	return p.users
}

func (p *Postgres) Versions() VersionStore {
	return p.versions
}

func (p *Postgres) Close() error {
	return p.db.Close()
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505). The database enforces uniqueness atomically, so
// concurrent duplicate inserts resolve to exactly one winner.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
