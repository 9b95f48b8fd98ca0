package readstore

import (
	"context"
	"time"

	"library-lending/internal/infra"
	"library-lending/internal/infra/db"
	"library-lending/internal/pkg/pgconv"
	"library-lending/internal/usecase/queries"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// LedgerReadStore lists borrow/return records newest first, joined with their book.
type LedgerReadStore struct {
	db db.DBTX
}

func NewLedgerReadStore(dbtx db.DBTX) *LedgerReadStore {
	return &LedgerReadStore{db: dbtx}
}

func (r *LedgerReadStore) ListAll(ctx context.Context) ([]*queries.LedgerEntryView, error) {
	query, args, err := ledgerSelect(queries.LedgerFilter{}).ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build list ledger query", err)
	}
	return r.collect(ctx, query, args)
}

func (r *LedgerReadStore) ListFirstPage(ctx context.Context, filter queries.LedgerFilter, limit int32) ([]*queries.LedgerEntryView, error) {
	query, args, err := ledgerSelect(filter).
		Limit(uint(limit)). // #nosec G115 -- limit is validated by the caller
		ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build ledger first page query", err)
	}
	return r.collect(ctx, query, args)
}

// ListKeyset continues after (lastOccurredAt, lastID) in newest-first order.
func (r *LedgerReadStore) ListKeyset(ctx context.Context, filter queries.LedgerFilter, lastOccurredAt time.Time, lastID string, limit int32) ([]*queries.LedgerEntryView, error) {
	query, args, err := ledgerSelect(filter).
		Where(goqu.Or(
			goqu.I("r.occurred_at").Lt(lastOccurredAt),
			goqu.And(
				goqu.I("r.occurred_at").Eq(lastOccurredAt),
				goqu.I("r.id").Lt(lastID),
			),
		)).
		Limit(uint(limit)). // #nosec G115 -- limit is validated by the caller
		ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build ledger keyset query", err)
	}
	return r.collect(ctx, query, args)
}

func (r *LedgerReadStore) collect(ctx context.Context, query string, args []any) ([]*queries.LedgerEntryView, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list ledger", err)
	}
	views, err := pgx.CollectRows(rows, scanLedgerEntry)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan ledger rows", err)
	}
	if views == nil {
		views = []*queries.LedgerEntryView{}
	}
	return views, nil
}

func ledgerSelect(filter queries.LedgerFilter) *goqu.SelectDataset {
	ds := dialect.From(goqu.T("borrow_book_records").As("r")).
		LeftJoin(goqu.T("books").As("b"), goqu.On(goqu.I("b.id").Eq(goqu.I("r.book_id")))).
		Select(
			goqu.I("r.id"),
			goqu.I("r.book_id"),
			goqu.I("b.isbn").As("book_isbn"),
			goqu.I("b.name").As("book_name"),
			goqu.I("r.customer_name"),
			goqu.I("r.action"),
			goqu.I("r.occurred_at"),
		).
		Order(goqu.I("r.occurred_at").Desc(), goqu.I("r.id").Desc()).
		Prepared(true)
	if filter.BookID != nil {
		ds = ds.Where(goqu.I("r.book_id").Eq(filter.BookID.String()))
	}
	return ds
}

func scanLedgerEntry(row pgx.CollectableRow) (*queries.LedgerEntryView, error) {
	var (
		v          queries.LedgerEntryView
		isbn, name pgtype.Text
	)
	if err := row.Scan(
		&v.ID,
		&v.BookID,
		&isbn,
		&name,
		&v.CustomerName,
		&v.Action,
		&v.OccurredAt,
	); err != nil {
		return nil, err
	}
	v.BookISBN = pgconv.StringFromPgtype(isbn)
	v.BookName = pgconv.StringFromPgtype(name)
	v.OccurredAt = v.OccurredAt.UTC()
	return &v, nil
}
