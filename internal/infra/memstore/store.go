package memstore

import (
	"sort"
	"strings"
	"sync"

	"library-lending/internal/domain/book"
	"library-lending/internal/domain/ledger"
	"library-lending/internal/infra"

	"github.com/google/uuid"
)

// Store keeps committed state only. Transactions stage their writes and apply them
// in one critical section at commit, after re-checking every expected version.
type Store struct {
	mu      sync.RWMutex
	books   map[uuid.UUID]*book.Book
	byISBN  map[string]uuid.UUID
	records []*ledger.Record
}

func NewStore() *Store {
	return &Store{
		books:  make(map[uuid.UUID]*book.Book),
		byISBN: make(map[string]uuid.UUID),
	}
}

func (s *Store) book(id uuid.UUID) (*book.Book, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.books[id]
	if !ok {
		return nil, false
	}
	return b.Clone(), true
}

func (s *Store) bookByISBN(isbn string) (*book.Book, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byISBN[isbn]
	if !ok {
		return nil, false
	}
	return s.books[id].Clone(), true
}

func (s *Store) commit(tx *memTx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range tx.inserts {
		if _, taken := s.byISBN[b.ISBN().String()]; taken {
			return infra.WrapRepoErr("isbn already exists", nil, infra.KindDuplicateKey)
		}
	}
	for id, w := range tx.updates {
		current, ok := s.books[id]
		if !ok {
			return infra.WrapRepoErr("book not found", nil, infra.KindNotFound)
		}
		if current.Version() != w.expected {
			return infra.WrapRepoErr("book version changed since read", nil, infra.KindVersionConflict)
		}
	}
	for _, rec := range tx.appends {
		if _, ok := s.books[rec.BookID()]; !ok && !tx.inserted(rec.BookID()) {
			return infra.WrapRepoErr("ledger record references unknown book", nil, infra.KindForeignKeyViolated)
		}
	}

	for _, b := range tx.inserts {
		s.books[b.ID()] = b
		s.byISBN[b.ISBN().String()] = b.ID()
	}
	for id, w := range tx.updates {
		s.books[id] = w.book
	}
	s.records = append(s.records, tx.appends...)
	return nil
}

func (s *Store) snapshotBooks() []*book.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*book.Book, 0, len(s.books))
	for _, b := range s.books {
		out = append(out, b.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		ni, nj := strings.ToLower(out[i].Name().String()), strings.ToLower(out[j].Name().String())
		if ni != nj {
			return ni < nj
		}
		return out[i].ID().String() < out[j].ID().String()
	})
	return out
}

// snapshotRecords returns records newest first.
func (s *Store) snapshotRecords() []*ledger.Record {
	s.mu.RLock()
	out := make([]*ledger.Record, len(s.records))
	copy(out, s.records)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return newerThan(out[i], out[j])
	})
	return out
}

func newerThan(a, b *ledger.Record) bool {
	if !a.OccurredAt().Equal(b.OccurredAt()) {
		return a.OccurredAt().After(b.OccurredAt())
	}
	return a.ID() > b.ID()
}
