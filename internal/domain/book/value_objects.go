package book

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	MaxISBNLength = 20
	MaxTextLength = 255
)

type ISBN struct {
	value string
}

func NewISBN(s string) (ISBN, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return ISBN{}, ErrEmptyISBN
	}
	if utf8.RuneCountInString(t) > MaxISBNLength {
		return ISBN{}, ErrISBNTooLong
	}
	if strings.IndexFunc(t, unicode.IsSpace) >= 0 {
		return ISBN{}, ErrInvalidISBN
	}
	return ISBN{value: t}, nil
}

func (i ISBN) String() string { return i.value }

type Title struct {
	text string
}

func NewTitle(s string) (Title, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return Title{}, ErrEmptyName
	}
	if utf8.RuneCountInString(t) > MaxTextLength {
		return Title{}, ErrNameTooLong
	}
	return Title{text: t}, nil
}

func (t Title) String() string { return t.text }

type Author struct {
	name string
}

func NewAuthor(s string) (Author, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return Author{}, ErrEmptyAuthor
	}
	if utf8.RuneCountInString(t) > MaxTextLength {
		return Author{}, ErrAuthorTooLong
	}
	return Author{name: t}, nil
}

func (a Author) String() string { return a.name }

type PublicationYear struct {
	year int
}

// NewPublicationYear rejects years after the year of now.
func NewPublicationYear(year int, now time.Time) (PublicationYear, error) {
	if year > now.Year() {
		return PublicationYear{}, ErrFuturePublicationYear
	}
	return PublicationYear{year: year}, nil
}

func (p PublicationYear) Int() int { return p.year }

type Quantity struct {
	value int
}

func NewQuantity(v int) (Quantity, error) {
	if v < 0 {
		return Quantity{}, ErrNegativeQuantity
	}
	return Quantity{value: v}, nil
}

func (q Quantity) Int() int { return q.value }

// Version is the optimistic concurrency token of a stored Book.
// Zero means the Book has not been persisted yet.
type Version int64

const InitialVersion Version = 1

func (v Version) Next() Version { return v + 1 }
