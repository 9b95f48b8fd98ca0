package queries

import (
	"context"
	"time"

	"library-lending/internal/pkg/errs"
)

//go:generate mockgen -source=ledger.go -destination=../../../tests/mock/queries/ledger.go -package=queriesmock

type LedgerReadStore interface {
	ListAll(ctx context.Context) ([]*LedgerEntryView, error)
	ListFirstPage(ctx context.Context, filter LedgerFilter, limit int32) ([]*LedgerEntryView, error)
	ListKeyset(ctx context.Context, filter LedgerFilter, lastOccurredAt time.Time, lastID string, limit int32) ([]*LedgerEntryView, error)
}

type LedgerQueries interface {
	// ListLedger returns every record, newest first.
	ListLedger(ctx context.Context) ([]*LedgerEntryView, error)
	ListLedgerPage(ctx context.Context, filter LedgerFilter, cursor *Cursor, limit int) ([]*LedgerEntryView, *Cursor, error)
}

type ledgerQueriesImpl struct {
	repo LedgerReadStore
}

func NewLedgerQueries(repo LedgerReadStore) LedgerQueries {
	return &ledgerQueriesImpl{repo: repo}
}

func (q *ledgerQueriesImpl) ListLedger(ctx context.Context) ([]*LedgerEntryView, error) {
	items, err := q.repo.ListAll(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "list ledger")
	}
	return items, nil
}

func (q *ledgerQueriesImpl) ListLedgerPage(ctx context.Context, filter LedgerFilter, cursor *Cursor, limit int) ([]*LedgerEntryView, *Cursor, error) {
	limit = ValidateLimit(limit)
	// fetch one extra row to learn whether another page exists
	fetch := int32(limit + 1) // #nosec G115 -- limit is capped by ValidateLimit

	var (
		items []*LedgerEntryView
		err   error
	)
	if cursor == nil || cursor.After == "" {
		items, err = q.repo.ListFirstPage(ctx, filter, fetch)
	} else {
		lastAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, derr
		}
		items, err = q.repo.ListKeyset(ctx, filter, lastAt, lastID, fetch)
	}
	if err != nil {
		return nil, nil, errs.Wrap(err, "list ledger page")
	}

	if len(items) <= limit {
		return items, nil, nil
	}
	items = items[:limit]
	last := items[len(items)-1]
	return items, &Cursor{After: EncodeAfterCursor(last.OccurredAt, last.ID)}, nil
}
