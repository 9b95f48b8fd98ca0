//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"library-lending/internal/handler/api"
	resdto "library-lending/internal/handler/dto/response"
	"library-lending/internal/pkg/errs"
	"library-lending/internal/usecase/commands"
	"library-lending/internal/usecase/queries"
	"library-lending/tests/common/builder"
	"library-lending/tests/common/httptest"
	"library-lending/tests/common/testutil"
	commandsmock "library-lending/tests/mock/commands"
	queriesmock "library-lending/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookCommands
	mockQueries  *queriesmock.MockBookQueries
	handler      *api.BookHandler
}

func (s *BookHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookQueries(s.mockCtrl)
	s.handler = api.NewBookHandler(s.mockCommands, s.mockQueries)

	s.router.POST("/api/books", s.handler.CreateBook)
	s.router.GET("/api/books", s.handler.ListBooks)
	s.router.GET("/api/books/search", s.handler.SearchBooks)
	s.router.GET("/api/books/:id", s.handler.GetBook)
	s.router.POST("/api/books/:id/borrow", s.handler.BorrowBook)
	s.router.POST("/api/books/:id/return", s.handler.ReturnBook)
}

func (s *BookHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookHandlerTestSuite))
}

type testCaseBook struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

var kindErrors = []struct {
	name       string
	err        error
	wantStatus int
	wantCode   string
}{
	{"validation", errs.Validationf("publication year must not be in the future"), http.StatusBadRequest, "ValidationError"},
	{"not found", errs.NotFoundf("book not found"), http.StatusNotFound, "NotFound"},
	{"out of stock", errs.Mark(errs.New("no copies available to borrow"), errs.ErrOutOfStock), http.StatusConflict, "OutOfStock"},
	{"duplicate isbn", errs.Mark(errs.New("isbn taken"), errs.ErrDuplicateIsbn), http.StatusConflict, "DuplicateIsbn"},
	{"conflict exhausted", errs.Mark(errs.Mark(errs.New("gave up"), errs.ErrConcurrencyConflict), errs.ErrConflictExhausted), http.StatusConflict, "ConflictExhausted"},
	{"internal", errors.New("database error"), http.StatusInternalServerError, "Internal"},
}

// ================================================================================
// TestCreateBook
// ================================================================================

func (s *BookHandlerTestSuite) TestCreateBook() {
	url := "/api/books"

	b := builder.NewBookBuilder()
	reqBody := b.BuildCreateRequestDTO()
	returnView := b.BuildView()

	missing := []testCaseBook{
		{name: "missing field: name", mutate: testutil.Field("name", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: author", mutate: testutil.Field("author", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: isbn", mutate: testutil.Field("isbn", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: publicationYear", mutate: testutil.Field("publicationYear", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: quantity", mutate: testutil.Field("quantity", nil), expectCode: http.StatusBadRequest},
	}
	malformed := []testCaseBook{
		{name: "quantity as string", mutate: testutil.Field("quantity", "three"), expectCode: http.StatusBadRequest},
		{name: "year as fraction", mutate: testutil.Field("publicationYear", 2015.5), expectCode: http.StatusBadRequest},
	}
	accepted := []testCaseBook{
		{name: "zero quantity is passed on", mutate: testutil.Field("quantity", 0), expectCode: http.StatusCreated},
	}

	s.Run("success: returns 201 Created with Location", func() {
		s.mockCommands.EXPECT().CreateBook(gomock.Any(), reqBody.ToCommand()).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)

		var body resdto.BookResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(returnView.ID.String(), body.ID)
		s.Equal(returnView.ISBN, body.ISBN)
		s.Equal(returnView.AvailableQuantity, body.AvailableQuantity)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/books/" + returnView.ID.String()})
	})

	s.Run("request shape", func() {
		for _, group := range [][]testCaseBook{missing, malformed, accepted} {
			for _, tc := range group {
				s.Run(tc.name, func() {
					requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
					if tc.expectCode == http.StatusCreated {
						s.mockCommands.EXPECT().CreateBook(gomock.Any(), gomock.Any()).
							Return(returnView, nil).Times(1)
					}

					rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap)

					if tc.expectCode == http.StatusCreated {
						httptest.AssertSuccessResponse(s.T(), rec, tc.expectCode, nil)
					} else {
						httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "ValidationError", "Invalid request")
					}
				})
			}
		}
	})

	s.Run("error: invalid JSON", func() {
		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, url, `{"name":`)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "ValidationError", "Invalid request")
	})

	s.Run("error: maps error kinds to statuses", func() {
		for _, tc := range kindErrors {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateBook(gomock.Any(), gomock.Any()).
					Return(nil, tc.err).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)
				httptest.AssertErrorResponse(s.T(), rec, tc.wantStatus, tc.wantCode, "")
				httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": ""})
			})
		}
	})
}

// ================================================================================
// TestBorrowAndReturn
// ================================================================================

func (s *BookHandlerTestSuite) TestBorrowBook() {
	bookID := uuid.New()
	url := "/api/books/" + bookID.String() + "/borrow"
	returnView := builder.NewBookBuilder().With(func(b *builder.BookBuilder) { b.ID = bookID }).WithQuantity(2).BuildView()

	s.Run("success: returns the updated book", func() {
		s.mockCommands.EXPECT().
			BorrowBook(gomock.Any(), commands.BorrowBookCommand{BookID: bookID, CustomerName: "Ada"}).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"customerName": "Ada"})

		var body resdto.BookResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(2, body.AvailableQuantity)
	})

	s.Run("error: invalid book id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/books/not-a-uuid/borrow", map[string]any{"customerName": "Ada"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "ValidationError", "Invalid book id")
	})

	s.Run("error: missing customer name", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "ValidationError", "Invalid request")
	})

	s.Run("error: maps error kinds to statuses", func() {
		for _, tc := range kindErrors {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().BorrowBook(gomock.Any(), gomock.Any()).
					Return(nil, tc.err).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"customerName": "Ada"})
				httptest.AssertErrorResponse(s.T(), rec, tc.wantStatus, tc.wantCode, "")
			})
		}
	})
}

func (s *BookHandlerTestSuite) TestReturnBook() {
	bookID := uuid.New()
	url := "/api/books/" + bookID.String() + "/return"
	returnView := builder.NewBookBuilder().With(func(b *builder.BookBuilder) { b.ID = bookID }).WithQuantity(4).BuildView()

	s.Run("success: returns the updated book", func() {
		s.mockCommands.EXPECT().
			ReturnBook(gomock.Any(), commands.ReturnBookCommand{BookID: bookID, CustomerName: "Grace"}).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"customerName": "Grace"})

		var body resdto.BookResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(4, body.AvailableQuantity)
	})

	s.Run("error: unknown book", func() {
		s.mockCommands.EXPECT().ReturnBook(gomock.Any(), gomock.Any()).
			Return(nil, errs.NotFoundf("book %s not found", bookID)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"customerName": "Grace"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "NotFound", bookID.String())
	})
}

// ================================================================================
// Queries
// ================================================================================

func (s *BookHandlerTestSuite) TestGetBook() {
	view := builder.NewBookBuilder().BuildView()

	s.Run("success", func() {
		s.mockQueries.EXPECT().GetBook(gomock.Any(), view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/books/"+view.ID.String(), nil)

		var body resdto.BookResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.Name, body.Name)
	})

	s.Run("error: not found", func() {
		s.mockQueries.EXPECT().GetBook(gomock.Any(), view.ID).Return(nil, errs.NotFoundf("book not found")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/books/"+view.ID.String(), nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "NotFound", "book not found")
	})
}

func (s *BookHandlerTestSuite) TestListBooks() {
	views := []*queries.BookView{
		builder.NewBookBuilder().WithName("Dune").WithISBN("1").BuildView(),
		builder.NewBookBuilder().WithName("Emma").WithISBN("2").BuildView(),
	}

	s.Run("success", func() {
		s.mockQueries.EXPECT().ListBooks(gomock.Any()).Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/books", nil)

		var body []resdto.BookResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body, 2)
		s.Equal("Dune", body[0].Name)
	})

	s.Run("empty catalog is an empty array", func() {
		s.mockQueries.EXPECT().ListBooks(gomock.Any()).Return([]*queries.BookView{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/books", nil)

		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`[]`, rec.Body.String())
	})

	s.Run("error: internal", func() {
		s.mockQueries.EXPECT().ListBooks(gomock.Any()).Return(nil, errors.New("db down")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/books", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal", "Internal server error")
	})
}

func (s *BookHandlerTestSuite) TestSearchBooks() {
	s.Run("passes only the given criteria", func() {
		name, author := "go", "donovan"
		s.mockQueries.EXPECT().
			SearchBooks(gomock.Any(), queries.BookFilter{Name: &name, Author: &author}).
			Return([]*queries.BookView{builder.NewBookBuilder().BuildView()}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/books/search?name=go&author=donovan", nil)

		var body []resdto.BookResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 1)
	})

	s.Run("no criteria", func() {
		s.mockQueries.EXPECT().SearchBooks(gomock.Any(), queries.BookFilter{}).
			Return([]*queries.BookView{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/books/search", nil)
		s.Equal(http.StatusOK, rec.Code)
	})
}
