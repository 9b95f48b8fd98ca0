package repository

import (
	"context"

	"library-lending/internal/domain/book"
	"library-lending/internal/infra"
	"library-lending/internal/infra/db"
	"library-lending/internal/infra/repository/converter"
	"library-lending/internal/pkg/pgconv"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// BookRepository is the write side of the books table, bound to one transaction.
type BookRepository struct {
	db db.DBTX
}

func NewBookRepository(dbtx db.DBTX) *BookRepository {
	return &BookRepository{db: dbtx}
}

func (r *BookRepository) FindByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	query, args, err := selectBookQuery(goqu.C("id").Eq(id.String()))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build find book query", err)
	}
	return r.fetchOne(ctx, "find book by id", query, args)
}

func (r *BookRepository) FindByISBN(ctx context.Context, isbn book.ISBN) (*book.Book, error) {
	query, args, err := selectBookQuery(goqu.C("isbn").Eq(isbn.String()))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build find book query", err)
	}
	return r.fetchOne(ctx, "find book by isbn", query, args)
}

func (r *BookRepository) Add(ctx context.Context, b *book.Book) (*book.Book, error) {
	query, args, err := insertBookQuery(b)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build insert book query", err)
	}

	var row converter.BookRow
	if err := scanBookRow(r.db.QueryRow(ctx, query, args...), &row); err != nil {
		if pgconv.IsUniqueViolation(err) {
			return nil, infra.WrapRepoErr("isbn already exists", err, infra.KindDuplicateKey)
		}
		if pgconv.IsCheckViolation(err) {
			return nil, infra.WrapRepoErr("book violates table constraint", err, infra.KindDBFailure)
		}
		return nil, infra.WrapRepoErr("failed to insert book", err)
	}
	return converter.BookRowToDomain(row), nil
}

// Update writes b only if the stored version still equals b.Version().
func (r *BookRepository) Update(ctx context.Context, b *book.Book) (*book.Book, error) {
	query, args, err := updateBookQuery(b)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build update book query", err)
	}

	var row converter.BookRow
	err = scanBookRow(r.db.QueryRow(ctx, query, args...), &row)
	if err == nil {
		return converter.BookRowToDomain(row), nil
	}
	if !pgconv.IsNoRows(err) {
		if pgconv.IsSerializationConflict(err) {
			return nil, infra.WrapRepoErr("concurrent update aborted", err, infra.KindVersionConflict)
		}
		return nil, infra.WrapRepoErr("failed to update book", err)
	}

	exists, err := r.exists(ctx, b.ID())
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, infra.WrapRepoErr("book not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	return nil, infra.WrapRepoErr("book version changed since read", nil, infra.KindVersionConflict)
}

func (r *BookRepository) exists(ctx context.Context, id uuid.UUID) (bool, error) {
	query, args, err := dialect.From(tableBooks).
		Select(goqu.L("1")).
		Where(goqu.C("id").Eq(id.String())).
		Prepared(true).
		ToSQL()
	if err != nil {
		return false, infra.WrapRepoErr("failed to build book existence query", err)
	}

	var one int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&one); err != nil {
		if pgconv.IsNoRows(err) {
			return false, nil
		}
		return false, infra.WrapRepoErr("failed to check book existence", err)
	}
	return true, nil
}

func (r *BookRepository) fetchOne(ctx context.Context, what, query string, args []any) (*book.Book, error) {
	var row converter.BookRow
	if err := scanBookRow(r.db.QueryRow(ctx, query, args...), &row); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("book not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to "+what, err)
	}
	return converter.BookRowToDomain(row), nil
}

func selectBookQuery(where goqu.Expression) (string, []any, error) {
	return dialect.From(tableBooks).
		Select(bookColumns...).
		Where(where).
		Prepared(true).
		ToSQL()
}

func insertBookQuery(b *book.Book) (string, []any, error) {
	return dialect.Insert(tableBooks).
		Rows(converter.BookToInsertRecord(b)).
		Returning(bookColumns...).
		Prepared(true).
		ToSQL()
}

func updateBookQuery(b *book.Book) (string, []any, error) {
	return dialect.Update(tableBooks).
		Set(goqu.Record{
			"available_quantity": b.AvailableQuantity(),
			"updated_at":         b.UpdatedAt(),
			"version":            goqu.L("? + 1", goqu.C("version")),
		}).
		Where(
			goqu.C("id").Eq(b.ID().String()),
			goqu.C("version").Eq(int64(b.Version())),
		).
		Returning(bookColumns...).
		Prepared(true).
		ToSQL()
}

func scanBookRow(row pgx.Row, dst *converter.BookRow) error {
	return row.Scan(
		&dst.ID,
		&dst.ISBN,
		&dst.Name,
		&dst.Author,
		&dst.PublicationYear,
		&dst.AvailableQuantity,
		&dst.Version,
		&dst.CreatedAt,
		&dst.UpdatedAt,
	)
}
