// Package postgres implements the store interfaces on PostgreSQL through
// database/sql and the pgx stdlib driver. It also owns the schema: the SQL
// migrations are embedded and applied with goose.
package postgres
