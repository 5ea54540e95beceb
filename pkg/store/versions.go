package store

import (
	"context"
	"fmt"
	"strings"
)

const (
	maxVersionLen = 50
	maxChangesLen = 200

	// DefaultPageSize is the number of version entries per page.
	DefaultPageSize = 5
)

// VersionRepository is the Postgres-backed VersionStore.
type VersionRepository struct {
	db DBTX
}

func NewVersionRepository(db DBTX) *VersionRepository {
	return &VersionRepository{db: db}
}

// CreateVersion validates and persists a new version entry, returning it with
// its generated id. Malformed dates yield ErrInvalidDate, reused labels
// ErrDuplicateVersion.
func (r *VersionRepository) CreateVersion(ctx context.Context, version, dateString, changes string) (*VersionEntry, error) {
	if version == "" || len(version) > maxVersionLen {
		return nil, fmt.Errorf("%w: version must be 1..%d characters", ErrValidation, maxVersionLen)
	}
	if changes == "" || len(changes) > maxChangesLen {
		return nil, fmt.Errorf("%w: changes must be 1..%d characters", ErrValidation, maxChangesLen)
	}

	date, err := ParseDate(dateString)
	if err != nil {
		return nil, err
	}

	query :=
		`INSERT INTO versions (version, date, changes)
		 VALUES ($1, $2, $3)
		 RETURNING id
		 `

	entry := &VersionEntry{Version: version, Date: date, Changes: changes}
	err = r.db.QueryRowContext(ctx, query, version, date, changes).Scan(&entry.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateVersion
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return entry, nil
}

// ListVersions returns one page of entries ordered by date descending with
// insertion order breaking ties. page is 1-indexed; values below 1 clamp
// to 1. A non-empty search matches entries whose version or changes contains
// it as a case-insensitive substring. A page past the last yields an empty
// item list with HasNext=false.
func (r *VersionRepository) ListVersions(ctx context.Context, page, pageSize int, search string) (*VersionPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	query :=
		`SELECT id, version, date, changes FROM versions
		 WHERE $1 = '' OR version ILIKE $2 ESCAPE '\' OR changes ILIKE $2 ESCAPE '\'
		 ORDER BY date DESC, id ASC
		 LIMIT $3 OFFSET $4
		 `

	// Fetch one row past the page to learn whether a next page exists.
	pattern := "%" + escapeLike(search) + "%"
	rows, err := r.db.QueryContext(ctx, query, search, pattern, pageSize+1, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	items := []VersionEntry{}
	for rows.Next() {
		var entry VersionEntry
		if err := rows.Scan(&entry.ID, &entry.Version, &entry.Date, &entry.Changes); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		items = append(items, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	result := &VersionPage{
		HasNext: len(items) > pageSize,
		HasPrev: page > 1,
	}
	if result.HasNext {
		items = items[:pageSize]
		next := page + 1
		result.NextNum = &next
	}
	if result.HasPrev {
		prev := page - 1
		result.PrevNum = &prev
	}
	result.Items = items

	return result, nil
}

// DeleteVersion removes the entry with the given id. Missing ids yield
// ErrNotFound, so of two concurrent deletes at most one succeeds. Remaining
// ids are never renumbered.
func (r *VersionRepository) DeleteVersion(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM versions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// escapeLike neutralizes LIKE wildcards in a user-supplied search term so it
// only ever matches as a literal substring.
func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
