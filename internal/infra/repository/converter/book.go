package converter

import (
	"time"

	"library-lending/internal/domain/book"
	"library-lending/internal/domain/ledger"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

// BookRow mirrors one row of the books table.
type BookRow struct {
	ID                uuid.UUID `db:"id"`
	ISBN              string    `db:"isbn"`
	Name              string    `db:"name"`
	Author            string    `db:"author"`
	PublicationYear   int       `db:"publication_year"`
	AvailableQuantity int       `db:"available_quantity"`
	Version           int64     `db:"version"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

func BookRowToDomain(row BookRow) *book.Book {
	return book.ReconstructBook(
		row.ID,
		row.ISBN,
		row.Name,
		row.Author,
		row.PublicationYear,
		row.AvailableQuantity,
		book.Version(row.Version),
		row.CreatedAt,
		row.UpdatedAt,
	)
}

// BookToInsertRecord leaves id and version to the column defaults.
func BookToInsertRecord(b *book.Book) goqu.Record {
	return goqu.Record{
		"isbn":               b.ISBN().String(),
		"name":               b.Name().String(),
		"author":             b.Author().String(),
		"publication_year":   b.PublicationYear().Int(),
		"available_quantity": b.AvailableQuantity(),
		"created_at":         b.CreatedAt(),
		"updated_at":         b.UpdatedAt(),
	}
}

func LedgerToInsertRecord(id string, rec *ledger.Record) goqu.Record {
	return goqu.Record{
		"id":            id,
		"book_id":       rec.BookID().String(),
		"customer_name": rec.Customer().String(),
		"action":        rec.Action().String(),
		"occurred_at":   rec.OccurredAt(),
	}
}
