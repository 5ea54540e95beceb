// Package versions exposes the authenticated JSON API for version entries:
// paginated, searchable listing, creation, and deletion by id.
package versions
