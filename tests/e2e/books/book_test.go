//go:build e2e

package books_test

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"library-lending/internal/handler/dto/request"
	"library-lending/internal/handler/dto/response"
	"library-lending/internal/pkg/errs"
	"library-lending/internal/usecase/commands"
	"library-lending/tests/common/builder"
	"library-lending/tests/common/dbtest"
	"library-lending/tests/common/httptest"
	"library-lending/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	booksURL  = "/api/books"
	bookURL   = "/api/books/%s"
	borrowURL = "/api/books/%s/borrow"
	returnURL = "/api/books/%s/return"
	ledgerURL = "/api/ledger"
)

type BookSuite struct {
	e2e.SharedSuite
}

func (s *BookSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestBookSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookSuite))
}

// =============================================================================
// TestCreateBook
// =============================================================================

func (s *BookSuite) TestCreateBook() {
	s.Run("Normal case: book is stored with version 1", func() {
		t := s.T()

		reqBody := builder.NewBookBuilder().BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, booksURL, reqBody)

		var created response.BookResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)
		require.NotEmpty(t, created.ID)
		assert.Equal(t, "/api/books/"+created.ID, w.Header().Get("Location"))

		want := response.BookResponse{
			ISBN:              reqBody.ISBN,
			Name:              reqBody.Name,
			Author:            reqBody.Author,
			PublicationYear:   *reqBody.PublicationYear,
			AvailableQuantity: *reqBody.Quantity,
			Version:           1,
		}
		if diff := cmp.Diff(want, created,
			cmpopts.IgnoreFields(response.BookResponse{}, "ID", "CreatedAt", "UpdatedAt")); diff != "" {
			t.Errorf("created book mismatch (-want +got):\n%s", diff)
		}

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(bookURL, created.ID), nil)
		var fetched response.BookResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &fetched)
		assert.Equal(t, created.ID, fetched.ID)
	})

	s.Run("Error case: duplicate ISBN is rejected", func() {
		t := s.T()

		reqBody := builder.NewBookBuilder().BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, booksURL, reqBody)
		require.Equal(t, http.StatusCreated, w.Code)

		again := builder.NewBookBuilder().WithName("Another Title").BuildCreateRequestDTO()
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, booksURL, again)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "DuplicateIsbn", "")
	})

	s.Run("Error case: future publication year is a validation error", func() {
		t := s.T()

		reqBody := builder.NewBookBuilder().BuildCreateRequestDTO()
		year := 9999
		reqBody.PublicationYear = &year

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, booksURL, reqBody)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "ValidationError", "")

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, booksURL, nil)
		var list []response.BookResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &list)
		assert.Empty(t, list)
	})
}

// =============================================================================
// TestBorrowAndReturn
// =============================================================================

func (s *BookSuite) TestBorrowAndReturn() {
	s.Run("Normal case: borrow then return restores stock and writes two records", func() {
		t := s.T()

		id := dbtest.InsertBook(t, s.DB, "978-1-00-000001-1", "Round Trip", 1)
		body := request.CustomerRequest{CustomerName: "Alice"}

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(borrowURL, id), body)
		var borrowed response.BookResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &borrowed)
		assert.Equal(t, 0, borrowed.AvailableQuantity)
		assert.Equal(t, int64(2), borrowed.Version)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(returnURL, id), body)
		var returned response.BookResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &returned)
		assert.Equal(t, 1, returned.AvailableQuantity)
		assert.Equal(t, int64(3), returned.Version)

		assert.Equal(t, 2, dbtest.CountLedgerRecords(t, s.DB, id))
	})

	s.Run("Error case: borrowing with no stock leaves no ledger record", func() {
		t := s.T()

		id := dbtest.InsertBook(t, s.DB, "978-1-00-000002-2", "Empty Shelf", 0)
		body := request.CustomerRequest{CustomerName: "Bob"}

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(borrowURL, id), body)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "OutOfStock", "")
		assert.Equal(t, 0, dbtest.CountLedgerRecords(t, s.DB, id))
	})

	s.Run("Error case: unknown book is not found", func() {
		t := s.T()

		body := request.CustomerRequest{CustomerName: "Carol"}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(borrowURL, uuid.New()), body)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "NotFound", "")
	})

	s.Run("Error case: blank customer name is rejected", func() {
		t := s.T()

		id := dbtest.InsertBook(t, s.DB, "978-1-00-000003-3", "Blank Customer", 1)
		body := request.CustomerRequest{CustomerName: "   "}

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(borrowURL, id), body)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "ValidationError", "")
		assert.Equal(t, 0, dbtest.CountLedgerRecords(t, s.DB, id))
	})
}

// =============================================================================
// TestConcurrentBorrows - optimistic concurrency against PostgreSQL
// =============================================================================

func (s *BookSuite) TestConcurrentBorrows() {
	s.Run("Normal case: as many borrowers as retry attempts all succeed", func() {
		t := s.T()

		n := s.Config.Retry.MaxAttempts
		id := dbtest.InsertBook(t, s.DB, "978-1-00-000004-4", "Contended", n)

		var wg sync.WaitGroup
		errCh := make(chan error, n)
		for i := range n {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := s.Commands.BorrowBook(context.Background(), commands.BorrowBookCommand{
					BookID:       id,
					CustomerName: fmt.Sprintf("reader-%d", i),
				})
				errCh <- err
			}(i)
		}
		wg.Wait()
		close(errCh)

		for err := range errCh {
			assert.NoError(t, err)
		}

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(bookURL, id), nil)
		var got response.BookResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &got)
		assert.Equal(t, 0, got.AvailableQuantity)
		assert.Equal(t, int64(1+n), got.Version)
		assert.Equal(t, n, dbtest.CountLedgerRecords(t, s.DB, id))
	})

	s.Run("Normal case: two readers racing for the last copy", func() {
		t := s.T()

		id := dbtest.InsertBook(t, s.DB, "978-1-00-000005-5", "Last Copy", 1)

		var wg sync.WaitGroup
		results := make([]error, 2)
		for i := range 2 {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, results[i] = s.Commands.BorrowBook(context.Background(), commands.BorrowBookCommand{
					BookID:       id,
					CustomerName: fmt.Sprintf("reader-%d", i),
				})
			}(i)
		}
		wg.Wait()

		var ok, outOfStock int
		for _, err := range results {
			switch {
			case err == nil:
				ok++
			case errs.KindOf(err) == errs.KindOutOfStock:
				outOfStock++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}
		assert.Equal(t, 1, ok)
		assert.Equal(t, 1, outOfStock)
		assert.Equal(t, 1, dbtest.CountLedgerRecords(t, s.DB, id))
	})
}

// =============================================================================
// TestLedger
// =============================================================================

func (s *BookSuite) TestLedger() {
	s.Run("Normal case: records come back newest first", func() {
		t := s.T()

		id := dbtest.InsertBook(t, s.DB, "978-1-00-000006-6", "History", 2)
		steps := []struct {
			url      string
			customer string
		}{
			{borrowURL, "Alice"},
			{borrowURL, "Bob"},
			{returnURL, "Alice"},
		}
		for _, step := range steps {
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(step.url, id),
				request.CustomerRequest{CustomerName: step.customer})
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		}

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, ledgerURL, nil)
		var page response.LedgerPageResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &page)

		want := []*response.LedgerEntryResponse{
			{BookID: id.String(), BookISBN: "978-1-00-000006-6", BookName: "History", CustomerName: "Alice", Action: "Returned"},
			{BookID: id.String(), BookISBN: "978-1-00-000006-6", BookName: "History", CustomerName: "Bob", Action: "Borrowed"},
			{BookID: id.String(), BookISBN: "978-1-00-000006-6", BookName: "History", CustomerName: "Alice", Action: "Borrowed"},
		}
		if diff := cmp.Diff(want, page.Records,
			cmpopts.IgnoreFields(response.LedgerEntryResponse{}, "ID", "OccurredAt")); diff != "" {
			t.Errorf("ledger mismatch (-want +got):\n%s", diff)
		}
		assert.Empty(t, page.NextCursor)
	})

	s.Run("Normal case: paging by book follows the cursor", func() {
		t := s.T()

		id := dbtest.InsertBook(t, s.DB, "978-1-00-000007-7", "Paged", 3)
		other := dbtest.InsertBook(t, s.DB, "978-1-00-000008-8", "Noise", 1)
		for i := range 3 {
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(borrowURL, id),
				request.CustomerRequest{CustomerName: fmt.Sprintf("reader-%d", i)})
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(borrowURL, other),
			request.CustomerRequest{CustomerName: "someone"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodGet,
			fmt.Sprintf("%s?book_id=%s&limit=2", ledgerURL, id), nil)
		var first response.LedgerPageResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &first)
		require.Len(t, first.Records, 2)
		require.NotEmpty(t, first.NextCursor)
		assert.Equal(t, "reader-2", first.Records[0].CustomerName)
		assert.Equal(t, "reader-1", first.Records[1].CustomerName)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet,
			fmt.Sprintf("%s?book_id=%s&limit=2&after=%s", ledgerURL, id, first.NextCursor), nil)
		var second response.LedgerPageResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &second)
		require.Len(t, second.Records, 1)
		assert.Equal(t, "reader-0", second.Records[0].CustomerName)
		assert.Empty(t, second.NextCursor)
	})
}
