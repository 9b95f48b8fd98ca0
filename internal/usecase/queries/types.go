package queries

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// BookView represents read-optimized book data
type BookView struct {
	ID                uuid.UUID `json:"id"`
	ISBN              string    `json:"isbn"`
	Name              string    `json:"name"`
	Author            string    `json:"author"`
	PublicationYear   int       `json:"publication_year"`
	AvailableQuantity int       `json:"available_quantity"`
	Version           int64     `json:"version"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// LedgerEntryView is a ledger record joined with the book it references.
// BookISBN and BookName are empty when the book row is gone.
type LedgerEntryView struct {
	ID           string    `json:"id"`
	BookID       uuid.UUID `json:"book_id"`
	BookISBN     string    `json:"book_isbn"`
	BookName     string    `json:"book_name"`
	CustomerName string    `json:"customer_name"`
	Action       string    `json:"action"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// BookFilter: nil fields are ignored. Name and Author match case-insensitive substrings, ISBN matches exactly.
type BookFilter struct {
	Name   *string
	Author *string
	ISBN   *string
}

func (f BookFilter) Normalize() BookFilter {
	return BookFilter{
		Name:   trimmedOrNil(f.Name),
		Author: trimmedOrNil(f.Author),
		ISBN:   trimmedOrNil(f.ISBN),
	}
}

func (f BookFilter) IsEmpty() bool {
	return f.Name == nil && f.Author == nil && f.ISBN == nil
}

type LedgerFilter struct {
	BookID *uuid.UUID
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
