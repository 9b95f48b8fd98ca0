package request

import (
	"library-lending/internal/usecase/commands"

	"github.com/google/uuid"
)

// Pointers let a missing number be told apart from zero.
type CreateBookRequest struct {
	Name            string `json:"name" binding:"required"`
	Author          string `json:"author" binding:"required"`
	ISBN            string `json:"isbn" binding:"required"`
	PublicationYear *int   `json:"publicationYear" binding:"required"`
	Quantity        *int   `json:"quantity" binding:"required"`
}

func (r CreateBookRequest) ToCommand() commands.CreateBookCommand {
	return commands.CreateBookCommand{
		Name:            r.Name,
		Author:          r.Author,
		ISBN:            r.ISBN,
		PublicationYear: *r.PublicationYear,
		Quantity:        *r.Quantity,
	}
}

// CustomerRequest is the body of borrow and return.
type CustomerRequest struct {
	CustomerName string `json:"customerName" binding:"required"`
}

func (r CustomerRequest) ToBorrowCommand(bookID uuid.UUID) commands.BorrowBookCommand {
	return commands.BorrowBookCommand{BookID: bookID, CustomerName: r.CustomerName}
}

func (r CustomerRequest) ToReturnCommand(bookID uuid.UUID) commands.ReturnBookCommand {
	return commands.ReturnBookCommand{BookID: bookID, CustomerName: r.CustomerName}
}

type SearchBooksQuery struct {
	Name   *string `form:"name"`
	Author *string `form:"author"`
	ISBN   *string `form:"isbn"`
}

type LedgerQuery struct {
	BookID *string `form:"book_id"`
	Limit  *int    `form:"limit"`
	After  string  `form:"after"`
}

// Paged reports whether the caller asked for a page instead of the full ledger.
func (q LedgerQuery) Paged() bool {
	return q.BookID != nil || q.Limit != nil || q.After != ""
}
