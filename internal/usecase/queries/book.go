package queries

import (
	"context"

	"library-lending/internal/infra"
	"library-lending/internal/pkg/errs"

	"github.com/google/uuid"
)

//go:generate mockgen -source=book.go -destination=../../../tests/mock/queries/book.go -package=queriesmock

type BookReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookView, error)
	List(ctx context.Context) ([]*BookView, error)
	Search(ctx context.Context, filter BookFilter) ([]*BookView, error)
}

type BookQueries interface {
	GetBook(ctx context.Context, id uuid.UUID) (*BookView, error)
	ListBooks(ctx context.Context) ([]*BookView, error)
	SearchBooks(ctx context.Context, filter BookFilter) ([]*BookView, error)
}

type bookQueriesImpl struct {
	repo BookReadStore
}

func NewBookQueries(repo BookReadStore) BookQueries {
	return &bookQueriesImpl{repo: repo}
}

func (q *bookQueriesImpl) GetBook(ctx context.Context, id uuid.UUID) (*BookView, error) {
	v, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(errs.Wrapf(err, "book %s", id), errs.ErrNotFound)
		}
		return nil, errs.Wrap(err, "get book")
	}
	return v, nil
}

func (q *bookQueriesImpl) ListBooks(ctx context.Context) ([]*BookView, error) {
	items, err := q.repo.List(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "list books")
	}
	return items, nil
}

func (q *bookQueriesImpl) SearchBooks(ctx context.Context, filter BookFilter) ([]*BookView, error) {
	filter = filter.Normalize()
	if filter.IsEmpty() {
		return q.ListBooks(ctx)
	}
	items, err := q.repo.Search(ctx, filter)
	if err != nil {
		return nil, errs.Wrap(err, "search books")
	}
	return items, nil
}
