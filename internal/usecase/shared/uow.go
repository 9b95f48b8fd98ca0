package shared

import (
	"context"

	"library-lending/internal/domain/book"
	"library-lending/internal/domain/ledger"
	"library-lending/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrNestedTransaction = errs.New("transaction already open on this unit of work")
	ErrTransactionBegin  = errs.New("failed to begin transaction")
	ErrTransactionCommit = errs.New("failed to commit transaction")
)

type UnitOfWork interface {
	// Within runs fn in one transaction: commit when fn returns nil, rollback otherwise.
	// It never retries; conflicts surface as errs.ErrConcurrencyConflict.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Books() BookRepository
	Ledger() LedgerRepository
}

// BookRepository is the inventory store. Update is a compare-and-swap on the book's version.
type BookRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*book.Book, error)
	FindByISBN(ctx context.Context, isbn book.ISBN) (*book.Book, error)
	Add(ctx context.Context, b *book.Book) (*book.Book, error)
	Update(ctx context.Context, b *book.Book) (*book.Book, error)
}

// LedgerRepository is insert-only.
type LedgerRepository interface {
	Append(ctx context.Context, rec *ledger.Record) (*ledger.Record, error)
}

type txKey struct{}

// MarkInTx tags ctx with the owner of the open transaction.
func MarkInTx(ctx context.Context, owner any) context.Context {
	return context.WithValue(ctx, txKey{}, owner)
}

// InTx reports whether ctx already carries a transaction opened by owner.
func InTx(ctx context.Context, owner any) bool {
	v := ctx.Value(txKey{})
	return v != nil && v == owner
}
