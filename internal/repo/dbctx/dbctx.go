package dbctx

import (
	"context"
	"database/sql"
)

// Context bundles a request context with an optional transaction. Repository
// calls run inside Tx when it is set and against the pool otherwise.
type Context struct {
	Ctx context.Context
	Tx  *sql.Tx
}

func New(ctx context.Context) Context {
	return Context{Ctx: ctx}
}

func (c Context) InTx() bool {
	return c.Tx != nil
}
