package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"book-api/pkg/dao"
	"book-api/pkg/models"

	"github.com/gin-gonic/gin"
)

// BookStore is satisfied by *dao.BookDAO.
type BookStore interface {
	List(ctx context.Context) ([]models.Book, error)
	Get(ctx context.Context, id uint) (*models.Book, error)
	Create(ctx context.Context, in dao.BookInput) (*models.Book, error)
	Update(ctx context.Context, id uint, in dao.BookInput) (*models.Book, error)
	Delete(ctx context.Context, id uint) error
}

type BooksController struct {
	store BookStore
}

func NewBooksController(store BookStore) *BooksController {
	return &BooksController{store: store}
}

// List handles GET /books/.
// @Summary List all books
// @Tags books
// @Produce json
// @Success 200 {array} BookResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /books/ [get]
func (bc *BooksController) List(c *gin.Context) {
	books, err := bc.store.List(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	c.JSON(http.StatusOK, toBookResponses(books))
}

// Create handles POST /books/.
// @Summary Create a new book
// @Description publishedOn defaults to the creation time; authorId must name an existing author.
// @Tags books
// @Accept json
// @Produce json
// @Param book body BookRequest true "Book"
// @Success 201 {object} BookResponse
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /books/ [post]
func (bc *BooksController) Create(c *gin.Context) {
	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	book, err := bc.store.Create(c.Request.Context(), req.toInput())
	if err != nil {
		bc.respondStoreError(c, err, req, 0, "create book")
		return
	}
	c.Header("Location", fmt.Sprintf("/books/%d", book.ID))
	c.JSON(http.StatusCreated, toBookResponse(book))
}

// Get handles GET /books/:id.
// @Summary Fetch a book
// @Tags books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} BookResponse
// @Failure 404 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /books/{id} [get]
func (bc *BooksController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		respondNotFound(c, "book", c.Param("id"))
		return
	}

	book, err := bc.store.Get(c.Request.Context(), id)
	if err != nil {
		bc.respondStoreError(c, err, BookRequest{}, id, "get book")
		return
	}
	c.JSON(http.StatusOK, toBookResponse(book))
}

// Update handles PUT /books/:id.
// @Summary Update a book
// @Tags books
// @Accept json
// @Produce json
// @Param id path int true "Book ID"
// @Param book body BookRequest true "Book"
// @Success 200 {object} BookResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /books/{id} [put]
func (bc *BooksController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		respondNotFound(c, "book", c.Param("id"))
		return
	}

	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	book, err := bc.store.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		bc.respondStoreError(c, err, req, id, "update book")
		return
	}
	c.JSON(http.StatusOK, toBookResponse(book))
}

// Delete handles DELETE /books/:id.
// @Summary Delete a book
// @Tags books
// @Param id path int true "Book ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /books/{id} [delete]
func (bc *BooksController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		respondNotFound(c, "book", c.Param("id"))
		return
	}

	if err := bc.store.Delete(c.Request.Context(), id); err != nil {
		bc.respondStoreError(c, err, BookRequest{}, id, "delete book")
		return
	}
	c.AbortWithStatus(http.StatusNoContent)
}

func (bc *BooksController) respondStoreError(c *gin.Context, err error, req BookRequest, id uint, op string) {
	switch {
	case errors.Is(err, dao.ErrNotFound):
		respondNotFound(c, "book", id)
	case errors.Is(err, dao.ErrAuthorNotFound):
		respondBadRequest(c, "input payload validation failed", ErrorDetail{
			Field:   "authorId",
			Message: fmt.Sprintf("author %d doesn't exist", req.AuthorID),
		})
	case errors.Is(err, dao.ErrInvalid):
		respondBadRequest(c, err.Error())
	default:
		respondInternalError(c, err, op)
	}
}
