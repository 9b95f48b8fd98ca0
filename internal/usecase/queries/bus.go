package queries

import (
	"context"

	"library-lending/internal/usecase/pipeline"

	"github.com/google/uuid"
)

type bookQueryBus struct {
	next     BookQueries
	pipeline *pipeline.Pipeline
}

// NewBookQueryBus sends every call to next through p.
func NewBookQueryBus(next BookQueries, p *pipeline.Pipeline) BookQueries {
	return &bookQueryBus{next: next, pipeline: p}
}

func (b *bookQueryBus) GetBook(ctx context.Context, id uuid.UUID) (*BookView, error) {
	return pipeline.Send(ctx, b.pipeline, query("GetBook", id), func(ctx context.Context) (*BookView, error) {
		return b.next.GetBook(ctx, id)
	})
}

func (b *bookQueryBus) ListBooks(ctx context.Context) ([]*BookView, error) {
	return pipeline.Send(ctx, b.pipeline, query("ListBooks", nil), func(ctx context.Context) ([]*BookView, error) {
		return b.next.ListBooks(ctx)
	})
}

func (b *bookQueryBus) SearchBooks(ctx context.Context, filter BookFilter) ([]*BookView, error) {
	return pipeline.Send(ctx, b.pipeline, query("SearchBooks", filter), func(ctx context.Context) ([]*BookView, error) {
		return b.next.SearchBooks(ctx, filter)
	})
}

type ledgerQueryBus struct {
	next     LedgerQueries
	pipeline *pipeline.Pipeline
}

// NewLedgerQueryBus sends every call to next through p.
func NewLedgerQueryBus(next LedgerQueries, p *pipeline.Pipeline) LedgerQueries {
	return &ledgerQueryBus{next: next, pipeline: p}
}

func (b *ledgerQueryBus) ListLedger(ctx context.Context) ([]*LedgerEntryView, error) {
	return pipeline.Send(ctx, b.pipeline, query("ListLedger", nil), func(ctx context.Context) ([]*LedgerEntryView, error) {
		return b.next.ListLedger(ctx)
	})
}

type ledgerPage struct {
	items []*LedgerEntryView
	next  *Cursor
}

type ledgerPageRequest struct {
	Filter LedgerFilter
	Cursor *Cursor
	Limit  int
}

func (b *ledgerQueryBus) ListLedgerPage(ctx context.Context, filter LedgerFilter, cursor *Cursor, limit int) ([]*LedgerEntryView, *Cursor, error) {
	req := ledgerPageRequest{Filter: filter, Cursor: cursor, Limit: limit}
	page, err := pipeline.Send(ctx, b.pipeline, query("ListLedgerPage", req), func(ctx context.Context) (ledgerPage, error) {
		items, next, err := b.next.ListLedgerPage(ctx, filter, cursor, limit)
		return ledgerPage{items: items, next: next}, err
	})
	if err != nil {
		return nil, nil, err
	}
	return page.items, page.next, nil
}

func query(name string, payload any) pipeline.Request {
	return pipeline.Request{Name: name, Kind: pipeline.KindQuery, Payload: payload}
}
