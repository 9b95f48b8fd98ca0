package book

import "library-lending/internal/pkg/errs"

var (
	ErrEmptyISBN             = errs.Mark(errs.New("isbn must not be empty"), errs.ErrValidation)
	ErrISBNTooLong           = errs.Mark(errs.New("isbn must be at most 20 characters"), errs.ErrValidation)
	ErrInvalidISBN           = errs.Mark(errs.New("isbn must not contain whitespace"), errs.ErrValidation)
	ErrEmptyName             = errs.Mark(errs.New("name must not be empty"), errs.ErrValidation)
	ErrNameTooLong           = errs.Mark(errs.New("name must be at most 255 characters"), errs.ErrValidation)
	ErrEmptyAuthor           = errs.Mark(errs.New("author must not be empty"), errs.ErrValidation)
	ErrAuthorTooLong         = errs.Mark(errs.New("author must be at most 255 characters"), errs.ErrValidation)
	ErrFuturePublicationYear = errs.Mark(errs.New("publication year must not be in the future"), errs.ErrValidation)
	ErrNegativeQuantity      = errs.Mark(errs.New("available quantity must not be negative"), errs.ErrValidation)

	ErrOutOfStock = errs.Mark(errs.New("no copies available to borrow"), errs.ErrOutOfStock)
)
