// Package postgres implements the key, message and presence stores on
// PostgreSQL via bun.
//
// Key registration is a conditional insert (ON CONFLICT DO NOTHING on the
// user-id primary key) so concurrent first-use attempts for the same user
// serialize to exactly one stored pair; losers observe CodeConflict and
// re-read. Message listing is ordered by created_at ascending and excludes
// soft-deleted rows.
package postgres
