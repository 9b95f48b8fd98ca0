package memstore

import (
	"context"
	"log/slog"

	"library-lending/internal/domain/book"
	"library-lending/internal/domain/ledger"
	"library-lending/internal/infra"
	"library-lending/internal/pkg/errs"
	"library-lending/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

type UnitOfWork struct {
	store *Store
}

func NewUnitOfWork(store *Store) *UnitOfWork {
	return &UnitOfWork{store: store}
}

func (u *UnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) (err error) {
	if shared.InTx(ctx, u) {
		return shared.ErrNestedTransaction
	}
	if err := ctx.Err(); err != nil {
		return errs.Mark(err, shared.ErrTransactionBegin)
	}

	tx := newMemTx(u.store)
	defer func() {
		if r := recover(); r != nil {
			tx.rollback()
			panic(r)
		}
		if err != nil {
			tx.rollback()
		}
	}()

	if err = fn(shared.MarkInTx(ctx, u), tx); err != nil {
		return err
	}
	if err = ctx.Err(); err != nil {
		return errs.Wrap(err, "transaction aborted before commit")
	}

	if err = u.store.commit(tx); err != nil {
		switch {
		case infra.IsKind(err, infra.KindVersionConflict):
			return errs.Mark(err, errs.ErrConcurrencyConflict)
		case infra.IsKind(err, infra.KindDuplicateKey):
			return errs.Mark(err, errs.ErrDuplicateIsbn)
		default:
			return errs.Mark(err, shared.ErrTransactionCommit)
		}
	}
	tx.done = true
	return nil
}

type stagedUpdate struct {
	expected book.Version
	book     *book.Book
}

type memTx struct {
	store   *Store
	inserts []*book.Book
	updates map[uuid.UUID]stagedUpdate
	appends []*ledger.Record
	done    bool
}

func newMemTx(store *Store) *memTx {
	return &memTx{
		store:   store,
		updates: make(map[uuid.UUID]stagedUpdate),
	}
}

func (t *memTx) rollback() {
	if t.done {
		return
	}
	if len(t.inserts)+len(t.updates)+len(t.appends) > 0 {
		slog.Debug("memstore transaction rolled back",
			"inserts", len(t.inserts),
			"updates", len(t.updates),
			"appends", len(t.appends))
	}
	t.inserts, t.appends = nil, nil
	t.updates = make(map[uuid.UUID]stagedUpdate)
	t.done = true
}

func (t *memTx) inserted(id uuid.UUID) bool {
	for _, b := range t.inserts {
		if b.ID() == id {
			return true
		}
	}
	return false
}

// visible returns the book as this transaction sees it.
func (t *memTx) visible(id uuid.UUID) (*book.Book, bool) {
	if w, ok := t.updates[id]; ok {
		return w.book.Clone(), true
	}
	for _, b := range t.inserts {
		if b.ID() == id {
			return b.Clone(), true
		}
	}
	return t.store.book(id)
}

func (t *memTx) Books() shared.BookRepository    { return &bookRepo{tx: t} }
func (t *memTx) Ledger() shared.LedgerRepository { return &ledgerRepo{tx: t} }

type bookRepo struct {
	tx *memTx
}

func (r *bookRepo) FindByID(_ context.Context, id uuid.UUID) (*book.Book, error) {
	b, ok := r.tx.visible(id)
	if !ok {
		return nil, infra.WrapRepoErr("book not found", nil, infra.KindNotFound)
	}
	return b, nil
}

func (r *bookRepo) FindByISBN(_ context.Context, isbn book.ISBN) (*book.Book, error) {
	for _, b := range r.tx.inserts {
		if b.ISBN() == isbn {
			return b.Clone(), nil
		}
	}
	b, ok := r.tx.store.bookByISBN(isbn.String())
	if !ok {
		return nil, infra.WrapRepoErr("book not found", nil, infra.KindNotFound)
	}
	if w, staged := r.tx.updates[b.ID()]; staged {
		return w.book.Clone(), nil
	}
	return b, nil
}

func (r *bookRepo) Add(_ context.Context, b *book.Book) (*book.Book, error) {
	if _, taken := r.tx.store.bookByISBN(b.ISBN().String()); taken {
		return nil, infra.WrapRepoErr("isbn already exists", nil, infra.KindDuplicateKey)
	}
	for _, staged := range r.tx.inserts {
		if staged.ISBN() == b.ISBN() {
			return nil, infra.WrapRepoErr("isbn already exists", nil, infra.KindDuplicateKey)
		}
	}

	stored := book.ReconstructBook(
		uuid.New(),
		b.ISBN().String(),
		b.Name().String(),
		b.Author().String(),
		b.PublicationYear().Int(),
		b.AvailableQuantity(),
		book.InitialVersion,
		b.CreatedAt(),
		b.UpdatedAt(),
	)
	r.tx.inserts = append(r.tx.inserts, stored)
	return stored.Clone(), nil
}

// Update fails fast when the committed version already moved; commit checks again.
func (r *bookRepo) Update(_ context.Context, b *book.Book) (*book.Book, error) {
	if b.AvailableQuantity() < 0 {
		return nil, infra.WrapRepoErr("available quantity must not be negative", nil, infra.KindDBFailure)
	}

	expected := b.Version()
	if w, ok := r.tx.updates[b.ID()]; ok {
		if w.book.Version() != expected {
			return nil, infra.WrapRepoErr("book version changed since read", nil, infra.KindVersionConflict)
		}
		expected = w.expected
	} else {
		current, ok := r.tx.store.book(b.ID())
		if !ok {
			return nil, infra.WrapRepoErr("book not found", nil, infra.KindNotFound)
		}
		if current.Version() != expected {
			return nil, infra.WrapRepoErr("book version changed since read", nil, infra.KindVersionConflict)
		}
	}

	next := book.ReconstructBook(
		b.ID(),
		b.ISBN().String(),
		b.Name().String(),
		b.Author().String(),
		b.PublicationYear().Int(),
		b.AvailableQuantity(),
		b.Version().Next(),
		b.CreatedAt(),
		b.UpdatedAt(),
	)
	r.tx.updates[b.ID()] = stagedUpdate{expected: expected, book: next}
	return next.Clone(), nil
}

type ledgerRepo struct {
	tx *memTx
}

func (r *ledgerRepo) Append(_ context.Context, rec *ledger.Record) (*ledger.Record, error) {
	if _, ok := r.tx.visible(rec.BookID()); !ok {
		return nil, infra.WrapRepoErr("ledger record references unknown book", nil, infra.KindForeignKeyViolated)
	}
	stored := rec.WithID(ulid.Make().String())
	r.tx.appends = append(r.tx.appends, stored)
	return stored, nil
}
