package uow

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"library-lending/internal/infra/db"
	"library-lending/internal/infra/repository"
	"library-lending/internal/pkg/errs"
	"library-lending/internal/pkg/pgconv"
	"library-lending/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
)

const rollbackTimeout = 5 * time.Second

// TxBeginner is satisfied by *pgxpool.Pool.
type TxBeginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

type PostgresUoW struct {
	pool TxBeginner
}

func NewPostgresUoW(pool TxBeginner) *PostgresUoW {
	return &PostgresUoW{pool: pool}
}

// Within runs fn in a single READ COMMITTED transaction. Lost updates are caught by the
// version check in BookRepository.Update, so no stronger isolation is needed.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) (err error) {
	if shared.InTx(ctx, u) {
		return shared.ErrNestedTransaction
	}

	pgxTx, err := u.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return errs.Mark(errs.Wrap(err, "begin transaction"), shared.ErrTransactionBegin)
	}

	defer func() {
		if r := recover(); r != nil {
			rollback(ctx, pgxTx)
			panic(r)
		}
		if err != nil {
			rollback(ctx, pgxTx)
		}
	}()

	if err = fn(shared.MarkInTx(ctx, u), &pgTx{dbtx: pgxTx}); err != nil {
		return err
	}
	if err = ctx.Err(); err != nil {
		return errs.Wrap(err, "transaction aborted before commit")
	}

	if err = pgxTx.Commit(ctx); err != nil {
		if pgconv.IsSerializationConflict(err) {
			return errs.Mark(errs.Wrap(err, "commit transaction"), errs.ErrConcurrencyConflict)
		}
		return errs.Mark(errs.Wrap(err, "commit transaction"), shared.ErrTransactionCommit)
	}
	return nil
}

// rollback must run even when ctx is already cancelled.
func rollback(ctx context.Context, tx pgx.Tx) {
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), rollbackTimeout)
	defer cancel()

	if err := tx.Rollback(rctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		slog.Warn("rollback failed", "error", err.Error())
	}
}

type pgTx struct {
	dbtx db.DBTX

	// Lazy-initialized repositories
	bookRepo   shared.BookRepository
	ledgerRepo shared.LedgerRepository
}

func (t *pgTx) Books() shared.BookRepository {
	if t.bookRepo == nil {
		t.bookRepo = repository.NewBookRepository(t.dbtx)
	}
	return t.bookRepo
}

func (t *pgTx) Ledger() shared.LedgerRepository {
	if t.ledgerRepo == nil {
		t.ledgerRepo = repository.NewLedgerRepository(t.dbtx)
	}
	return t.ledgerRepo
}
