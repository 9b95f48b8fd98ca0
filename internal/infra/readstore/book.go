package readstore

import (
	"context"

	"library-lending/internal/infra"
	"library-lending/internal/infra/db"
	"library-lending/internal/pkg/pgconv"
	"library-lending/internal/usecase/queries"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookReadStore struct {
	db db.DBTX
}

func NewBookReadStore(dbtx db.DBTX) *BookReadStore {
	return &BookReadStore{db: dbtx}
}

func (r *BookReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookView, error) {
	query, args, err := bookSelect().
		Where(goqu.C("id").Eq(id.String())).
		ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build book view query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get book view by id", err)
	}
	view, err := pgx.CollectExactlyOneRow(rows, scanBookView)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("book not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan book view", err)
	}
	return view, nil
}

func (r *BookReadStore) List(ctx context.Context) ([]*queries.BookView, error) {
	query, args, err := bookSelect().ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build list books query", err)
	}
	return r.collect(ctx, "list books", query, args)
}

// Search ANDs the non-nil filter fields. Name and author use ILIKE, ISBN is exact.
func (r *BookReadStore) Search(ctx context.Context, filter queries.BookFilter) ([]*queries.BookView, error) {
	query, args, err := bookSelect().
		Where(searchConditions(filter)...).
		ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build search books query", err)
	}
	return r.collect(ctx, "search books", query, args)
}

func (r *BookReadStore) collect(ctx context.Context, what, query string, args []any) ([]*queries.BookView, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to "+what, err)
	}
	views, err := pgx.CollectRows(rows, scanBookView)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan rows for "+what, err)
	}
	if views == nil {
		views = []*queries.BookView{}
	}
	return views, nil
}

func searchConditions(f queries.BookFilter) []goqu.Expression {
	conds := make([]goqu.Expression, 0, 3)
	if f.Name != nil {
		conds = append(conds, goqu.C("name").ILike(containsPattern(*f.Name)))
	}
	if f.Author != nil {
		conds = append(conds, goqu.C("author").ILike(containsPattern(*f.Author)))
	}
	if f.ISBN != nil {
		conds = append(conds, goqu.C("isbn").Eq(*f.ISBN))
	}
	return conds
}

func bookSelect() *goqu.SelectDataset {
	return dialect.From("books").
		Select(
			"id",
			"isbn",
			"name",
			"author",
			"publication_year",
			"available_quantity",
			"version",
			"created_at",
			"updated_at",
		).
		Order(goqu.Func("lower", goqu.C("name")).Asc(), goqu.C("id").Asc()).
		Prepared(true)
}

func scanBookView(row pgx.CollectableRow) (*queries.BookView, error) {
	var (
		v         queries.BookView
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	if err := row.Scan(
		&v.ID,
		&v.ISBN,
		&v.Name,
		&v.Author,
		&v.PublicationYear,
		&v.AvailableQuantity,
		&v.Version,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	v.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &v, nil
}
