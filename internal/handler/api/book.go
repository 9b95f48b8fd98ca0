package api

import (
	"net/http"

	reqdto "library-lending/internal/handler/dto/request"
	resdto "library-lending/internal/handler/dto/response"
	"library-lending/internal/handler/httperr"
	"library-lending/internal/usecase/commands"
	"library-lending/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookHandler struct {
	cmds commands.BookCommands
	q    queries.BookQueries
}

func NewBookHandler(cmds commands.BookCommands, q queries.BookQueries) *BookHandler {
	return &BookHandler{cmds: cmds, q: q}
}

// @Summary Create book
// @Description Add a title to the catalog with its initial stock
// @Tags books
// @Accept json
// @Produce json
// @Param request body reqdto.CreateBookRequest true "Create book request"
// @Success 201 {object} resdto.BookResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req reqdto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	view, err := h.cmds.CreateBook(c.Request.Context(), req.ToCommand())
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	c.Header("Location", "/api/books/"+view.ID.String())
	h.respondBook(c, http.StatusCreated, view)
}

// @Summary List books
// @Description List every book ordered by name
// @Tags books
// @Produce json
// @Success 200 {array} resdto.BookResponse
// @Router /api/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	items, err := h.q.ListBooks(c.Request.Context())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respondBooks(c, items)
}

// @Summary Search books
// @Description Case-insensitive substring match on name and author, exact match on isbn. Criteria are ANDed.
// @Tags books
// @Produce json
// @Param name query string false "Name contains"
// @Param author query string false "Author contains"
// @Param isbn query string false "Exact ISBN"
// @Success 200 {array} resdto.BookResponse
// @Router /api/books/search [get]
func (h *BookHandler) SearchBooks(c *gin.Context) {
	var q reqdto.SearchBooksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}

	items, err := h.q.SearchBooks(c.Request.Context(), queries.BookFilter{Name: q.Name, Author: q.Author, ISBN: q.ISBN})
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respondBooks(c, items)
}

// @Summary Get book
// @Tags books
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} resdto.BookResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}
	view, err := h.q.GetBook(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respondBook(c, http.StatusOK, view)
}

// @Summary Borrow book
// @Description Take one copy out of stock and record the loan
// @Tags books
// @Accept json
// @Produce json
// @Param id path string true "Book ID"
// @Param request body reqdto.CustomerRequest true "Borrower"
// @Success 200 {object} resdto.BookResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/books/{id}/borrow [post]
func (h *BookHandler) BorrowBook(c *gin.Context) {
	id, req, ok := bindStockChange(c)
	if !ok {
		return
	}
	view, err := h.cmds.BorrowBook(c.Request.Context(), req.ToBorrowCommand(id))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respondBook(c, http.StatusOK, view)
}

// @Summary Return book
// @Description Put one copy back into stock and record the return
// @Tags books
// @Accept json
// @Produce json
// @Param id path string true "Book ID"
// @Param request body reqdto.CustomerRequest true "Returning customer"
// @Success 200 {object} resdto.BookResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/books/{id}/return [post]
func (h *BookHandler) ReturnBook(c *gin.Context) {
	id, req, ok := bindStockChange(c)
	if !ok {
		return
	}
	view, err := h.cmds.ReturnBook(c.Request.Context(), req.ToReturnCommand(id))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respondBook(c, http.StatusOK, view)
}

func (h *BookHandler) respondBook(c *gin.Context, status int, view *queries.BookView) {
	res, err := resdto.FromBookView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, httperr.InternalMessage, nil)
		return
	}
	c.JSON(status, res)
}

func (h *BookHandler) respondBooks(c *gin.Context, items []*queries.BookView) {
	res, err := resdto.FromBookList(items)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, httperr.InternalMessage, nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

func bookID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid book id", nil)
		return uuid.Nil, false
	}
	return id, true
}

func bindStockChange(c *gin.Context) (uuid.UUID, reqdto.CustomerRequest, bool) {
	var req reqdto.CustomerRequest
	id, ok := bookID(c)
	if !ok {
		return uuid.Nil, req, false
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return uuid.Nil, req, false
	}
	return id, req, true
}
