package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const (
	maxUsernameLen = 150
)

// UserRepository is the Postgres-backed UserStore.
type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts a new credential record and returns its generated id.
// A taken username yields ErrDuplicateUsername; the unique constraint makes
// the check atomic under concurrent registration.
func (r *UserRepository) CreateUser(ctx context.Context, username, passwordHash string) (int64, error) {
	if username == "" || len(username) > maxUsernameLen {
		return 0, fmt.Errorf("%w: username must be 1..%d characters", ErrValidation, maxUsernameLen)
	}
	if passwordHash == "" {
		return 0, fmt.Errorf("%w: password hash must not be empty", ErrValidation)
	}

	query :=
		`INSERT INTO users (username, password_hash)
		 VALUES ($1, $2)
		 RETURNING id
		 `

	var id int64
	err := r.db.QueryRowContext(ctx, query, username, passwordHash).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateUsername
		}
		return 0, fmt.Errorf("db error: %w", err)
	}

	return id, nil
}

// GetUserByUsername looks up a user by exact, case-sensitive username.
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	query :=
		`SELECT id, username, password_hash FROM users
		 WHERE username = $1
		 `

	user := &User{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(&user.ID, &user.Username, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}
