package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrDuplicateUsername is returned when registering an already-taken username.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrDuplicateVersion is returned when creating a version entry whose label exists.
	ErrDuplicateVersion = errors.New("version already exists")
	// ErrInvalidDate is returned when a date string is not of the form YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation is returned when a field fails length or presence checks.
	ErrValidation = errors.New("validation failed")
)

// DBTX is the subset of database/sql used by the repositories, satisfied by
// both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const dateLayout = "2006-01-02"

// Date is a calendar date (no time-of-day component). It marshals to and
// from JSON as "YYYY-MM-DD" and scans from Postgres DATE columns.
type Date struct {
	time.Time
}

// ParseDate parses s in YYYY-MM-DD form. Malformed input yields ErrInvalidDate.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("%w: %s", ErrInvalidDate, data)
	}
	parsed, err := ParseDate(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		d.Time = v
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

// User is a persisted credential record. PasswordHash is a bcrypt hash;
// the raw password is never stored.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
}

// VersionEntry is a single logged change record.
type VersionEntry struct {
	ID      int64  `json:"id"`
	Version string `json:"version"`
	Date    Date   `json:"date"`
	Changes string `json:"changes"`
}

// VersionPage is one page of version entries plus navigation hints.
// NextNum and PrevNum are nil when there is no adjacent page.
type VersionPage struct {
	Items   []VersionEntry
	HasNext bool
	HasPrev bool
	NextNum *int
	PrevNum *int
}

// UserStore persists credential records and enforces username uniqueness.
type UserStore interface {
	CreateUser(ctx context.Context, username, passwordHash string) (int64, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
}

// VersionStore persists version entries and enforces label uniqueness.
type VersionStore interface {
	CreateVersion(ctx context.Context, version, dateString, changes string) (*VersionEntry, error)
	ListVersions(ctx context.Context, page, pageSize int, search string) (*VersionPage, error)
	DeleteVersion(ctx context.Context, id int64) error
}
