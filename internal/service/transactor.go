package service

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/store"
)

// Transactor runs a unit of work atomically. fn receives the handle that
// stores must be bound to with WithTx.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx store.DBTX) error) error
}

type sqlTransactor struct {
	db *sqlx.DB
}

// NewTransactor returns a Transactor backed by store.RunInTransaction.
func NewTransactor(db *sqlx.DB) Transactor {
	if db == nil {
		panic("db cannot be nil")
	}
	return &sqlTransactor{db: db}
}

func (t *sqlTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, tx store.DBTX) error) error {
	return store.RunInTransaction(ctx, t.db, func(ctx context.Context, tx *sqlx.Tx) error {
		return fn(ctx, tx)
	})
}
