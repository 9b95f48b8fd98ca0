//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"library-lending/internal/handler/api"
	resdto "library-lending/internal/handler/dto/response"
	"library-lending/internal/pkg/errs"
	"library-lending/internal/usecase/queries"
	"library-lending/tests/common/httptest"
	queriesmock "library-lending/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type LedgerHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockLedgerQueries
}

func (s *LedgerHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockLedgerQueries(s.mockCtrl)
	s.router.GET("/api/ledger", api.NewLedgerHandler(s.mockQueries).ListLedger)
}

func (s *LedgerHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestLedgerHandlerSuite(t *testing.T) {
	suite.Run(t, new(LedgerHandlerTestSuite))
}

func (s *LedgerHandlerTestSuite) entries() []*queries.LedgerEntryView {
	bookID := uuid.New()
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	return []*queries.LedgerEntryView{
		{ID: "01B", BookID: bookID, BookISBN: "111", BookName: "Dune", CustomerName: "Ada", Action: "Returned", OccurredAt: at},
		{ID: "01A", BookID: bookID, BookISBN: "111", BookName: "Dune", CustomerName: "Ada", Action: "Borrowed", OccurredAt: at.Add(-time.Hour)},
	}
}

func (s *LedgerHandlerTestSuite) TestListLedger() {
	s.Run("without parameters returns the whole ledger", func() {
		s.mockQueries.EXPECT().ListLedger(gomock.Any()).Return(s.entries(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/ledger", nil)

		var body resdto.LedgerPageResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body.Records, 2)
		s.Equal("Returned", body.Records[0].Action)
		s.Equal("Dune", body.Records[0].BookName)
		s.Empty(body.NextCursor)
	})

	s.Run("limit switches to pages and exposes the cursor", func() {
		s.mockQueries.EXPECT().
			ListLedgerPage(gomock.Any(), queries.LedgerFilter{}, (*queries.Cursor)(nil), 1).
			Return(s.entries()[:1], &queries.Cursor{After: "next-token"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/ledger?limit=1", nil)

		var body resdto.LedgerPageResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Records, 1)
		s.Equal("next-token", body.NextCursor)
	})

	s.Run("book filter and cursor are forwarded", func() {
		bookID := uuid.New()
		s.mockQueries.EXPECT().
			ListLedgerPage(gomock.Any(), queries.LedgerFilter{BookID: &bookID}, &queries.Cursor{After: "abc"}, queries.DefaultListLimit).
			Return([]*queries.LedgerEntryView{}, nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/ledger?book_id="+bookID.String()+"&after=abc", nil)

		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`{"records":[]}`, rec.Body.String())
	})

	s.Run("oversized limit is capped", func() {
		s.mockQueries.EXPECT().
			ListLedgerPage(gomock.Any(), gomock.Any(), gomock.Any(), queries.MaxListLimit).
			Return(nil, nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/ledger?limit=100000", nil)
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: invalid book_id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/ledger?book_id=nope", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "ValidationError", "Invalid book_id")
	})

	s.Run("error: non-numeric limit", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/ledger?limit=ten", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "ValidationError", "Invalid query")
	})

	s.Run("error: bad cursor", func() {
		s.mockQueries.EXPECT().ListLedgerPage(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil, errs.Validationf("invalid cursor encoding")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/ledger?after=%25%25", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "ValidationError", "invalid cursor encoding")
	})
}
