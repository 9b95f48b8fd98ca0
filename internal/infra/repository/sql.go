package repository

import (
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
)

const (
	tableBooks   = "books"
	tableRecords = "borrow_book_records"
)

var dialect = goqu.Dialect("postgres")

var bookColumns = []any{
	"id",
	"isbn",
	"name",
	"author",
	"publication_year",
	"available_quantity",
	"version",
	"created_at",
	"updated_at",
}
