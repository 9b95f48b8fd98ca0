package ledger

import "library-lending/internal/pkg/errs"

type Action string

const (
	ActionBorrowed Action = "Borrowed"
	ActionReturned Action = "Returned"
)

func (a Action) IsValid() bool {
	return a == ActionBorrowed || a == ActionReturned
}

func (a Action) String() string { return string(a) }

const MaxCustomerNameLength = 255

var (
	ErrEmptyCustomerName   = errs.Mark(errs.New("customer name must not be empty"), errs.ErrValidation)
	ErrCustomerNameTooLong = errs.Mark(errs.New("customer name must be at most 255 characters"), errs.ErrValidation)
	ErrInvalidAction       = errs.Mark(errs.New("ledger action must be Borrowed or Returned"), errs.ErrValidation)
	ErrMissingBook         = errs.Mark(errs.New("ledger record must reference a book"), errs.ErrValidation)
)
