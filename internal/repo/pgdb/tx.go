package pgdb

import (
	"context"
	"database/sql"

	"job-marketplace-api/internal/repo/dbctx"
	"job-marketplace-api/pkg/postgres"
)

type TxRunner struct {
	*postgres.Postgres
}

func NewTxRunner(pgdb *postgres.Postgres) *TxRunner {
	return &TxRunner{pgdb}
}

func (r *TxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	return r.Postgres.InTx(ctx, func(tx *sql.Tx) error {
		return fn(dbctx.Context{Ctx: ctx, Tx: tx})
	})
}
