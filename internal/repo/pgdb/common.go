package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"job-marketplace-api/internal/entity"
	"job-marketplace-api/internal/repo/dbctx"
	"job-marketplace-api/internal/repo/repo_errors"
	"job-marketplace-api/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

const (
	uniqueViolation = "23505"
	checkViolation  = "23514"
)

// queryRunner is satisfied by both *sql.DB and *sql.Tx.
type queryRunner interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func runner(p *postgres.Postgres, dbc dbctx.Context) queryRunner {
	if dbc.Tx != nil {
		return dbc.Tx
	}

	return p.Database
}

func ctxOf(dbc dbctx.Context) context.Context {
	if dbc.Ctx == nil {
		return context.Background()
	}

	return dbc.Ctx
}

func paginate(b squirrel.SelectBuilder, pg *entity.PaginationInput) squirrel.SelectBuilder {
	if pg == nil {
		return b
	}
	if pg.Limit > 0 {
		b = b.Limit(uint64(pg.Limit))
	}
	if pg.Offset > 0 {
		b = b.Offset(uint64(pg.Offset))
	}

	return b
}

func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return repo_errors.ErrNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%w: %s", repo_errors.ErrDuplicate, pqErr.Constraint)
		case checkViolation:
			return fmt.Errorf("%w: %s", repo_errors.ErrInvalidValue, pqErr.Constraint)
		}
	}

	return err
}

func exists(p *postgres.Postgres, dbc dbctx.Context, b squirrel.SelectBuilder) (bool, error) {
	sqlReq, args, _ := b.Limit(1).ToSql()

	var one int
	err := runner(p, dbc).QueryRowContext(ctxOf(dbc), sqlReq, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}
