package api

import (
	"net/http"

	reqdto "library-lending/internal/handler/dto/request"
	resdto "library-lending/internal/handler/dto/response"
	"library-lending/internal/handler/httperr"
	"library-lending/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LedgerHandler struct {
	q queries.LedgerQueries
}

func NewLedgerHandler(q queries.LedgerQueries) *LedgerHandler {
	return &LedgerHandler{q: q}
}

// @Summary List ledger
// @Description Borrow and return records, newest first. Without parameters the whole ledger is returned;
// @Description book_id, limit or after switch to keyset pages.
// @Tags ledger
// @Produce json
// @Param book_id query string false "Only records of this book"
// @Param limit query int false "Page size (default 20, max 200)"
// @Param after query string false "Cursor from a previous page"
// @Success 200 {object} resdto.LedgerPageResponse
// @Failure 400 {object} httperr.Response
// @Router /api/ledger [get]
func (h *LedgerHandler) ListLedger(c *gin.Context) {
	var q reqdto.LedgerQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}

	if !q.Paged() {
		items, err := h.q.ListLedger(c.Request.Context())
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		h.respond(c, items, nil)
		return
	}

	var filter queries.LedgerFilter
	if q.BookID != nil {
		id, err := uuid.Parse(*q.BookID)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid book_id", nil)
			return
		}
		filter.BookID = &id
	}
	limit := queries.DefaultListLimit
	if q.Limit != nil {
		limit = queries.ValidateLimit(*q.Limit)
	}
	var cursor *queries.Cursor
	if q.After != "" {
		cursor = &queries.Cursor{After: q.After}
	}

	items, next, err := h.q.ListLedgerPage(c.Request.Context(), filter, cursor, limit)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respond(c, items, next)
}

func (h *LedgerHandler) respond(c *gin.Context, items []*queries.LedgerEntryView, next *queries.Cursor) {
	records, err := resdto.FromLedgerList(items)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, httperr.InternalMessage, nil)
		return
	}
	res := resdto.LedgerPageResponse{Records: records}
	if next != nil {
		res.NextCursor = next.After
	}
	c.JSON(http.StatusOK, res)
}
