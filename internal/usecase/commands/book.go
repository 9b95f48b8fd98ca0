package commands

import (
	"context"
	"log/slog"
	"time"

	"library-lending/internal/domain/book"
	"library-lending/internal/domain/ledger"
	"library-lending/internal/infra"
	"library-lending/internal/pkg/clock"
	"library-lending/internal/pkg/errs"
	"library-lending/internal/usecase/queries"
	"library-lending/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=book.go -destination=../../../tests/mock/commands/book.go -package=commandsmock

// BookCommands is the inventory mutation service. It is the only writer of stock.
type BookCommands interface {
	CreateBook(ctx context.Context, cmd CreateBookCommand) (*queries.BookView, error)
	BorrowBook(ctx context.Context, cmd BorrowBookCommand) (*queries.BookView, error)
	ReturnBook(ctx context.Context, cmd ReturnBookCommand) (*queries.BookView, error)
}

type bookService struct {
	uow      shared.UnitOfWork
	retry    *shared.ConflictRetryPolicy
	clock    clock.Clock
	recorder shared.Recorder
	logger   *slog.Logger
}

func NewBookService(uow shared.UnitOfWork, retry *shared.ConflictRetryPolicy, clk clock.Clock, recorder shared.Recorder, logger *slog.Logger) BookCommands {
	if recorder == nil {
		recorder = shared.NopRecorder{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &bookService{
		uow:      uow,
		retry:    retry,
		clock:    clk,
		recorder: recorder,
		logger:   logger,
	}
}

// CreateBook is not retried: a conflict here can only be a duplicate ISBN.
func (s *bookService) CreateBook(ctx context.Context, cmd CreateBookCommand) (*queries.BookView, error) {
	candidate, err := book.NewBook(cmd.Name, cmd.Author, cmd.ISBN, cmd.PublicationYear, cmd.Quantity, s.clock.Now())
	if err != nil {
		return nil, err
	}

	var created *book.Book
	err = s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		existing, err := tx.Books().FindByISBN(ctx, candidate.ISBN())
		if err == nil {
			return errs.Mark(
				errs.Newf("book with isbn %s already exists as %s", candidate.ISBN(), existing.ID()),
				errs.ErrDuplicateIsbn,
			)
		}
		if !infra.IsKind(err, infra.KindNotFound) {
			return translateRepoErr(err, "look up isbn %s", candidate.ISBN())
		}

		stored, err := tx.Books().Add(ctx, candidate)
		if err != nil {
			return translateRepoErr(err, "add book with isbn %s", candidate.ISBN())
		}
		created = stored
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "book created", "book_id", created.ID(), "isbn", created.ISBN().String())
	return toBookView(created), nil
}

func (s *bookService) BorrowBook(ctx context.Context, cmd BorrowBookCommand) (*queries.BookView, error) {
	return s.mutateStock(ctx, "BorrowBook", cmd.BookID, cmd.CustomerName, ledger.ActionBorrowed)
}

func (s *bookService) ReturnBook(ctx context.Context, cmd ReturnBookCommand) (*queries.BookView, error) {
	return s.mutateStock(ctx, "ReturnBook", cmd.BookID, cmd.CustomerName, ledger.ActionReturned)
}

// mutateStock runs read, change, versioned update and ledger append as one attempt.
// A version conflict restarts the attempt from a fresh read; every other failure ends it.
func (s *bookService) mutateStock(ctx context.Context, op string, bookID uuid.UUID, customerName string, action ledger.Action) (*queries.BookView, error) {
	customer, err := ledger.NewCustomerName(customerName)
	if err != nil {
		return nil, err
	}

	var updated *book.Book
	err = s.retry.Do(ctx, op, func(ctx context.Context) error {
		return s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			current, err := tx.Books().FindByID(ctx, bookID)
			if err != nil {
				return translateRepoErr(err, "load book %s", bookID)
			}

			now := s.clock.Now()
			if err := applyAction(current, action, now); err != nil {
				return errs.Wrapf(err, "book %s", bookID)
			}

			next, err := tx.Books().Update(ctx, current)
			if err != nil {
				return translateRepoErr(err, "update book %s", bookID)
			}

			rec, err := ledger.NewRecord(bookID, customer, action, now)
			if err != nil {
				return err
			}
			if _, err := tx.Ledger().Append(ctx, rec); err != nil {
				return translateRepoErr(err, "append %s record for book %s", action, bookID)
			}

			updated = next
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	s.recorder.LedgerAppended(action.String())
	s.logger.DebugContext(ctx, "stock changed",
		"book_id", bookID,
		"action", action.String(),
		"available_quantity", updated.AvailableQuantity(),
		"version", int64(updated.Version()))
	return toBookView(updated), nil
}

func applyAction(b *book.Book, action ledger.Action, now time.Time) error {
	switch action {
	case ledger.ActionBorrowed:
		return b.Borrow(now)
	case ledger.ActionReturned:
		return b.Return(now)
	default:
		return ledger.ErrInvalidAction
	}
}

// translateRepoErr maps storage kinds onto the error taxonomy. Anything unknown stays Internal.
func translateRepoErr(err error, format string, args ...any) error {
	wrapped := errs.Wrapf(err, format, args...)
	switch {
	case infra.IsKind(err, infra.KindNotFound), infra.IsKind(err, infra.KindForeignKeyViolated):
		return errs.Mark(wrapped, errs.ErrNotFound)
	case infra.IsKind(err, infra.KindVersionConflict):
		return errs.Mark(wrapped, errs.ErrConcurrencyConflict)
	case infra.IsKind(err, infra.KindDuplicateKey):
		return errs.Mark(wrapped, errs.ErrDuplicateIsbn)
	default:
		return wrapped
	}
}

func toBookView(b *book.Book) *queries.BookView {
	return &queries.BookView{
		ID:                b.ID(),
		ISBN:              b.ISBN().String(),
		Name:              b.Name().String(),
		Author:            b.Author().String(),
		PublicationYear:   b.PublicationYear().Int(),
		AvailableQuantity: b.AvailableQuantity(),
		Version:           int64(b.Version()),
		CreatedAt:         b.CreatedAt(),
		UpdatedAt:         b.UpdatedAt(),
	}
}
