package book

import (
	"time"

	"github.com/google/uuid"
)

// Book is the contended inventory record. Only AvailableQuantity changes after creation,
// and every stored change advances Version.
type Book struct {
	id                uuid.UUID
	isbn              ISBN
	name              Title
	author            Author
	publicationYear   PublicationYear
	availableQuantity Quantity
	version           Version
	createdAt         time.Time
	updatedAt         time.Time
}

// NewBook validates a book that has not been stored yet. The store assigns its id and version.
func NewBook(name, author, isbn string, year, quantity int, now time.Time) (*Book, error) {
	title, err := NewTitle(name)
	if err != nil {
		return nil, err
	}
	au, err := NewAuthor(author)
	if err != nil {
		return nil, err
	}
	code, err := NewISBN(isbn)
	if err != nil {
		return nil, err
	}
	py, err := NewPublicationYear(year, now)
	if err != nil {
		return nil, err
	}
	qty, err := NewQuantity(quantity)
	if err != nil {
		return nil, err
	}

	return &Book{
		isbn:              code,
		name:              title,
		author:            au,
		publicationYear:   py,
		availableQuantity: qty,
		createdAt:         now,
		updatedAt:         now,
	}, nil
}

// ReconstructBook rebuilds a stored Book without re-running creation rules.
func ReconstructBook(id uuid.UUID, isbn, name, author string, year, quantity int, version Version, createdAt, updatedAt time.Time) *Book {
	return &Book{
		id:                id,
		isbn:              ISBN{value: isbn},
		name:              Title{text: name},
		author:            Author{name: author},
		publicationYear:   PublicationYear{year: year},
		availableQuantity: Quantity{value: quantity},
		version:           version,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

func (b *Book) ID() uuid.UUID                    { return b.id }
func (b *Book) ISBN() ISBN                       { return b.isbn }
func (b *Book) Name() Title                      { return b.name }
func (b *Book) Author() Author                   { return b.author }
func (b *Book) PublicationYear() PublicationYear { return b.publicationYear }
func (b *Book) AvailableQuantity() int           { return b.availableQuantity.Int() }
func (b *Book) Version() Version                 { return b.version }
func (b *Book) CreatedAt() time.Time             { return b.createdAt }
func (b *Book) UpdatedAt() time.Time             { return b.updatedAt }

func (b *Book) IsPersisted() bool { return b.version > 0 }

// Borrow takes one copy out of stock.
func (b *Book) Borrow(now time.Time) error {
	if b.availableQuantity.Int() <= 0 {
		return ErrOutOfStock
	}
	b.availableQuantity = Quantity{value: b.availableQuantity.Int() - 1}
	b.updatedAt = now
	return nil
}

// Return puts one copy back. Stock has no upper bound.
func (b *Book) Return(now time.Time) error {
	b.availableQuantity = Quantity{value: b.availableQuantity.Int() + 1}
	b.updatedAt = now
	return nil
}

// Clone returns an independent copy, used by stores that hand out snapshots.
func (b *Book) Clone() *Book {
	c := *b
	return &c
}
