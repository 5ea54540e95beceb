package auth

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/visualvc/versionlog/pkg/store"
)

// ErrInvalidCredentials is returned for unknown usernames and wrong passwords
// alike, so a login failure never reveals whether the account exists.
var ErrInvalidCredentials = errors.New("invalid username or password")

// dummyHash is a bcrypt hash of an unguessable placeholder. Verify runs a
// compare against it when the username is unknown so both failure paths cost
// roughly one bcrypt verification.
const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// Credentials registers and verifies users against a UserStore.
type Credentials struct {
	log   *zap.SugaredLogger
	users store.UserStore
	cost  int
}

func NewCredentials(log *zap.SugaredLogger, users store.UserStore, bcryptCost int) *Credentials {
	return &Credentials{log: log, users: users, cost: bcryptCost}
}

// Register hashes the raw password and persists a new user, returning its id.
// A taken username yields store.ErrDuplicateUsername.
func (cr *Credentials) Register(ctx context.Context, username, rawPassword string) (int64, error) {
	if rawPassword == "" {
		return 0, store.ErrValidation
	}

	hash, err := HashPassword(rawPassword, cr.cost)
	if err != nil {
		return 0, err
	}

	id, err := cr.users.CreateUser(ctx, username, hash)
	if err != nil {
		return 0, err
	}

	cr.log.Infow("User registered", "username", username, "userID", id)
	return id, nil
}

// Verify checks the raw password against the stored hash and returns the
// user id on success. Unknown usernames and mismatched passwords both return
// ErrInvalidCredentials.
func (cr *Credentials) Verify(ctx context.Context, username, rawPassword string) (int64, error) {
	user, err := cr.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			CheckPassword(dummyHash, rawPassword)
			return 0, ErrInvalidCredentials
		}
		return 0, err
	}

	if !CheckPassword(user.PasswordHash, rawPassword) {
		return 0, ErrInvalidCredentials
	}

	return user.ID, nil
}
