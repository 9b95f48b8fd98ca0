//go:build unit || e2e

package builder

import (
	"time"

	dombook "library-lending/internal/domain/book"
	reqdto "library-lending/internal/handler/dto/request"
	"library-lending/internal/usecase/commands"
	"library-lending/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookBuilder struct {
	ID                uuid.UUID
	ISBN              string
	Name              string
	Author            string
	PublicationYear   int
	AvailableQuantity int
	Version           int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func NewBookBuilder() *BookBuilder {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	return &BookBuilder{
		ID:                uuid.New(),
		ISBN:              "978-0-13-468599-1",
		Name:              "The Go Programming Language",
		Author:            "Alan Donovan",
		PublicationYear:   2015,
		AvailableQuantity: 3,
		Version:           1,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func (b *BookBuilder) With(mutate func(*BookBuilder)) *BookBuilder {
	mutate(b)
	return b
}

func (b *BookBuilder) WithISBN(isbn string) *BookBuilder {
	b.ISBN = isbn
	return b
}

func (b *BookBuilder) WithQuantity(q int) *BookBuilder {
	b.AvailableQuantity = q
	return b
}

func (b *BookBuilder) WithName(name string) *BookBuilder {
	b.Name = name
	return b
}

func (b *BookBuilder) WithAuthor(author string) *BookBuilder {
	b.Author = author
	return b
}

// BuildNew returns an unsaved book validated against the builder's CreatedAt.
func (b *BookBuilder) BuildNew() (*dombook.Book, error) {
	return dombook.NewBook(b.Name, b.Author, b.ISBN, b.PublicationYear, b.AvailableQuantity, b.CreatedAt)
}

// BuildDomain returns a persisted book without validation.
func (b *BookBuilder) BuildDomain() *dombook.Book {
	return dombook.ReconstructBook(
		b.ID,
		b.ISBN,
		b.Name,
		b.Author,
		b.PublicationYear,
		b.AvailableQuantity,
		dombook.Version(b.Version),
		b.CreatedAt,
		b.UpdatedAt,
	)
}

func (b *BookBuilder) BuildView() *queries.BookView {
	return &queries.BookView{
		ID:                b.ID,
		ISBN:              b.ISBN,
		Name:              b.Name,
		Author:            b.Author,
		PublicationYear:   b.PublicationYear,
		AvailableQuantity: b.AvailableQuantity,
		Version:           b.Version,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

func (b *BookBuilder) BuildCreateCommand() commands.CreateBookCommand {
	return commands.CreateBookCommand{
		Name:            b.Name,
		Author:          b.Author,
		ISBN:            b.ISBN,
		PublicationYear: b.PublicationYear,
		Quantity:        b.AvailableQuantity,
	}
}

func (b *BookBuilder) BuildCreateRequestDTO() reqdto.CreateBookRequest {
	year := b.PublicationYear
	quantity := b.AvailableQuantity
	return reqdto.CreateBookRequest{
		Name:            b.Name,
		Author:          b.Author,
		ISBN:            b.ISBN,
		PublicationYear: &year,
		Quantity:        &quantity,
	}
}
