// Package sqlstore implements the store interfaces on database/sql through
// sqlx. The same queries run on PostgreSQL (pgx) and SQLite (modernc); each
// dialect carries its own embedded goose migrations.
package sqlstore
