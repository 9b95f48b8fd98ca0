package commands

import (
	"time"

	"library-lending/internal/domain/book"

	"github.com/google/uuid"
)

type CreateBookCommand struct {
	Name            string `validate:"notblank,max=255"`
	Author          string `validate:"notblank,max=255"`
	ISBN            string `validate:"notblank,max=20"`
	PublicationYear int
	Quantity        int `validate:"gte=0"`
}

// Validate checks the rules that depend on the current time.
func (c CreateBookCommand) Validate(now time.Time) error {
	if c.PublicationYear > now.Year() {
		return book.ErrFuturePublicationYear
	}
	return nil
}

type BorrowBookCommand struct {
	BookID       uuid.UUID `validate:"required"`
	CustomerName string    `validate:"notblank,max=255"`
}

type ReturnBookCommand struct {
	BookID       uuid.UUID `validate:"required"`
	CustomerName string    `validate:"notblank,max=255"`
}
