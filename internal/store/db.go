package store

import "github.com/jmoiron/sqlx"

// DBTX is satisfied by both *sqlx.DB and *sqlx.Tx, so stores can run their
// queries inside or outside a transaction.
type DBTX interface {
	sqlx.ExtContext
}

var (
	_ DBTX = (*sqlx.DB)(nil)
	_ DBTX = (*sqlx.Tx)(nil)
)
