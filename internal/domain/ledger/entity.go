package ledger

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

type CustomerName struct {
	text string
}

func NewCustomerName(s string) (CustomerName, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return CustomerName{}, ErrEmptyCustomerName
	}
	if utf8.RuneCountInString(t) > MaxCustomerNameLength {
		return CustomerName{}, ErrCustomerNameTooLong
	}
	return CustomerName{text: t}, nil
}

func (c CustomerName) String() string { return c.text }

// Record is an immutable borrow/return fact. Its id is assigned when it is appended.
// Timestamps are kept at microsecond precision, the resolution of timestamptz.
type Record struct {
	id         string
	bookID     uuid.UUID
	customer   CustomerName
	action     Action
	occurredAt time.Time
}

func NewRecord(bookID uuid.UUID, customer CustomerName, action Action, occurredAt time.Time) (*Record, error) {
	if bookID == uuid.Nil {
		return nil, ErrMissingBook
	}
	if customer.String() == "" {
		return nil, ErrEmptyCustomerName
	}
	if !action.IsValid() {
		return nil, ErrInvalidAction
	}
	return &Record{
		bookID:     bookID,
		customer:   customer,
		action:     action,
		occurredAt: occurredAt.UTC().Truncate(time.Microsecond),
	}, nil
}

func ReconstructRecord(id string, bookID uuid.UUID, customer string, action Action, occurredAt time.Time) *Record {
	return &Record{
		id:         id,
		bookID:     bookID,
		customer:   CustomerName{text: customer},
		action:     action,
		occurredAt: occurredAt.UTC(),
	}
}

// WithID returns the appended form of r.
func (r *Record) WithID(id string) *Record {
	c := *r
	c.id = id
	return &c
}

func (r *Record) ID() string             { return r.id }
func (r *Record) BookID() uuid.UUID      { return r.bookID }
func (r *Record) Customer() CustomerName { return r.customer }
func (r *Record) Action() Action         { return r.action }
func (r *Record) OccurredAt() time.Time  { return r.occurredAt }
