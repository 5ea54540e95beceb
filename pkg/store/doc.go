// Package store provides Postgres-backed persistence for user credentials
// and version entries, including paginated, filtered retrieval. Schema
// changes are applied with embedded goose migrations.
package store
