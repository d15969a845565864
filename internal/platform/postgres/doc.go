// Package postgres implements the store interfaces on top of PostgreSQL,
// reached through database/sql with the pgx stdlib driver. Schema changes
// are applied with goose from the embedded migrations directory.
package postgres
