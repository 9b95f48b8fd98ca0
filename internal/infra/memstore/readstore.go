package memstore

import (
	"context"
	"strings"
	"time"

	"library-lending/internal/domain/book"
	"library-lending/internal/domain/ledger"
	"library-lending/internal/infra"
	"library-lending/internal/usecase/queries"

	"github.com/google/uuid"
)

// ReadStore serves the query side from committed state.
type ReadStore struct {
	store *Store
}

func NewReadStore(store *Store) *ReadStore {
	return &ReadStore{store: store}
}

func (r *ReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.BookView, error) {
	b, ok := r.store.book(id)
	if !ok {
		return nil, infra.WrapRepoErr("book not found", nil, infra.KindNotFound)
	}
	return toBookView(b), nil
}

func (r *ReadStore) List(_ context.Context) ([]*queries.BookView, error) {
	books := r.store.snapshotBooks()
	out := make([]*queries.BookView, 0, len(books))
	for _, b := range books {
		out = append(out, toBookView(b))
	}
	return out, nil
}

func (r *ReadStore) Search(_ context.Context, filter queries.BookFilter) ([]*queries.BookView, error) {
	out := make([]*queries.BookView, 0)
	for _, b := range r.store.snapshotBooks() {
		if matches(b, filter) {
			out = append(out, toBookView(b))
		}
	}
	return out, nil
}

func matches(b *book.Book, f queries.BookFilter) bool {
	if f.Name != nil && !containsFold(b.Name().String(), *f.Name) {
		return false
	}
	if f.Author != nil && !containsFold(b.Author().String(), *f.Author) {
		return false
	}
	if f.ISBN != nil && b.ISBN().String() != *f.ISBN {
		return false
	}
	return true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func (r *ReadStore) ListAll(_ context.Context) ([]*queries.LedgerEntryView, error) {
	return r.ledgerViews(queries.LedgerFilter{}, nil, 0), nil
}

func (r *ReadStore) ListFirstPage(_ context.Context, filter queries.LedgerFilter, limit int32) ([]*queries.LedgerEntryView, error) {
	return r.ledgerViews(filter, nil, int(limit)), nil
}

func (r *ReadStore) ListKeyset(_ context.Context, filter queries.LedgerFilter, lastOccurredAt time.Time, lastID string, limit int32) ([]*queries.LedgerEntryView, error) {
	after := ledger.ReconstructRecord(lastID, uuid.Nil, "", "", lastOccurredAt)
	return r.ledgerViews(filter, after, int(limit)), nil
}

// ledgerViews walks records newest first, skipping everything not older than after.
func (r *ReadStore) ledgerViews(filter queries.LedgerFilter, after *ledger.Record, limit int) []*queries.LedgerEntryView {
	out := make([]*queries.LedgerEntryView, 0)
	for _, rec := range r.store.snapshotRecords() {
		if filter.BookID != nil && rec.BookID() != *filter.BookID {
			continue
		}
		if after != nil && !newerThan(after, rec) {
			continue
		}
		v := &queries.LedgerEntryView{
			ID:           rec.ID(),
			BookID:       rec.BookID(),
			CustomerName: rec.Customer().String(),
			Action:       rec.Action().String(),
			OccurredAt:   rec.OccurredAt(),
		}
		if b, ok := r.store.book(rec.BookID()); ok {
			v.BookISBN = b.ISBN().String()
			v.BookName = b.Name().String()
		}
		out = append(out, v)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
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
